package domain

import (
	"context"

	"github.com/felixgeelhaar/evmkit/pkg/domain/portfolio"
)

// WorkspaceRepository handles the persistence of evmkit artifacts in the .evmkit/ directory.
type WorkspaceRepository interface {
	Initialize() error
	IsInitialized() bool
	SavePortfolio(pf *portfolio.Portfolio) error
	LoadPortfolio(ctx context.Context) (*portfolio.Portfolio, error)
}
