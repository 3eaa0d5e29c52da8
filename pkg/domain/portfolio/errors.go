package portfolio

import "errors"

var (
	// ErrNoPortfolio is returned when the workspace holds no portfolio document.
	ErrNoPortfolio = errors.New("no portfolio found")

	// ErrProjectNotFound is returned when a project id is not in the portfolio.
	ErrProjectNotFound = errors.New("project not found in portfolio")

	// ErrNoProgress is returned when a project carries no task progress.
	ErrNoProgress = errors.New("project has no task progress")
)
