package cli

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/evmkit/pkg/application"
	"github.com/felixgeelhaar/evmkit/pkg/domain/evm"
	"github.com/felixgeelhaar/evmkit/pkg/domain/kpi"
	"github.com/felixgeelhaar/evmkit/pkg/domain/portfolio"
	"github.com/felixgeelhaar/evmkit/pkg/storage"
)

// CLIError wraps domain errors with user-facing messages and actionable hints.
type CLIError struct {
	Message  string
	Hint     string
	Err      error
	ExitCode int
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with a default exit code of 1.
func NewCLIError(msg, hint string, err error) *CLIError {
	return &CLIError{
		Message:  msg,
		Hint:     hint,
		Err:      err,
		ExitCode: 1,
	}
}

// MapError converts known domain errors into CLIErrors with actionable hints.
// Unmapped errors are returned as-is.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var schemaErr *storage.SchemaError
	if errors.As(err, &schemaErr) {
		return &CLIError{
			Message:  "portfolio.yaml does not match the portfolio schema",
			Hint:     "Run 'evmkit validate' to list every problem",
			Err:      err,
			ExitCode: 2,
		}
	}

	switch {
	case errors.Is(err, portfolio.ErrNoPortfolio):
		return NewCLIError("no portfolio found", "Run 'evmkit init <name>' to initialize a workspace", err)
	case errors.Is(err, portfolio.ErrProjectNotFound):
		return NewCLIError("project not found", "Run 'evmkit kpi' or check the project ids in .evmkit/portfolio.yaml", err)
	case errors.Is(err, portfolio.ErrNoProgress):
		return NewCLIError("project has no task progress", "Add a progress section to the project in .evmkit/portfolio.yaml", err)
	case errors.Is(err, application.ErrAlreadyInitialized):
		return NewCLIError("workspace already initialized", "Edit .evmkit/portfolio.yaml or use --project to pick another directory", err)
	case errors.Is(err, evm.ErrInvalidInput):
		return &CLIError{Message: "invalid earned value input", Hint: "Fix the project progress data and retry", Err: err, ExitCode: 2}
	case errors.Is(err, kpi.ErrInvalidInput):
		return &CLIError{Message: "invalid portfolio data", Hint: "Fix the project ids and numeric fields and retry", Err: err, ExitCode: 2}
	}

	return err
}
