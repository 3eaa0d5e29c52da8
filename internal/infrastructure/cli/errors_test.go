package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/felixgeelhaar/evmkit/pkg/application"
	"github.com/felixgeelhaar/evmkit/pkg/domain/evm"
	"github.com/felixgeelhaar/evmkit/pkg/domain/kpi"
	"github.com/felixgeelhaar/evmkit/pkg/domain/portfolio"
	"github.com/felixgeelhaar/evmkit/pkg/storage"
)

func TestCLIError(t *testing.T) {
	t.Run("Error with cause", func(t *testing.T) {
		cause := errors.New("root cause")
		e := NewCLIError("something failed", "try this", cause)
		if e.Error() != "something failed: root cause" {
			t.Fatalf("unexpected: %s", e.Error())
		}
		if e.ExitCode != 1 {
			t.Fatalf("expected exit code 1, got %d", e.ExitCode)
		}
	})

	t.Run("Error without cause", func(t *testing.T) {
		e := NewCLIError("something failed", "try this", nil)
		if e.Error() != "something failed" {
			t.Fatalf("unexpected: %s", e.Error())
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("root")
		e := NewCLIError("msg", "", cause)
		if !errors.Is(e, cause) {
			t.Fatal("errors.Is should match wrapped cause")
		}
	})
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantHint string
		wantCode int
		wantCLI  bool
	}{
		{
			name: "nil returns nil",
			err:  nil,
		},
		{
			name:     "ErrNoPortfolio",
			err:      portfolio.ErrNoPortfolio,
			wantHint: "Run 'evmkit init <name>' to initialize a workspace",
			wantCode: 1,
			wantCLI:  true,
		},
		{
			name:     "wrapped ErrProjectNotFound",
			err:      fmt.Errorf("%w: p9", portfolio.ErrProjectNotFound),
			wantHint: "Run 'evmkit kpi' or check the project ids in .evmkit/portfolio.yaml",
			wantCode: 1,
			wantCLI:  true,
		},
		{
			name:     "ErrNoProgress",
			err:      portfolio.ErrNoProgress,
			wantHint: "Add a progress section to the project in .evmkit/portfolio.yaml",
			wantCode: 1,
			wantCLI:  true,
		},
		{
			name:     "ErrAlreadyInitialized",
			err:      application.ErrAlreadyInitialized,
			wantHint: "Edit .evmkit/portfolio.yaml or use --project to pick another directory",
			wantCode: 1,
			wantCLI:  true,
		},
		{
			name:     "SchemaError",
			err:      &storage.SchemaError{Problems: []string{"projects: is required"}},
			wantHint: "Run 'evmkit validate' to list every problem",
			wantCode: 2,
			wantCLI:  true,
		},
		{
			name:     "evm ValidationError",
			err:      &evm.ValidationError{Problems: []string{"status date is required"}},
			wantHint: "Fix the project progress data and retry",
			wantCode: 2,
			wantCLI:  true,
		},
		{
			name:     "kpi ErrInvalidInput",
			err:      fmt.Errorf("%w: duplicate project ID: p1", kpi.ErrInvalidInput),
			wantHint: "Fix the project ids and numeric fields and retry",
			wantCode: 2,
			wantCLI:  true,
		},
		{
			name: "unmapped error passes through",
			err:  errors.New("something else"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MapError(tt.err)
			if tt.err == nil {
				if result != nil {
					t.Fatal("expected nil")
				}
				return
			}
			if !tt.wantCLI {
				if result != tt.err {
					t.Fatal("unmapped error should pass through unchanged")
				}
				return
			}
			var cliErr *CLIError
			if !errors.As(result, &cliErr) {
				t.Fatalf("expected CLIError, got %T", result)
			}
			if cliErr.Hint != tt.wantHint {
				t.Fatalf("hint = %q, want %q", cliErr.Hint, tt.wantHint)
			}
			if cliErr.ExitCode != tt.wantCode {
				t.Fatalf("exit code = %d, want %d", cliErr.ExitCode, tt.wantCode)
			}
			// Verify original error is preserved
			if !errors.Is(cliErr, tt.err) {
				t.Fatal("CLIError should wrap original error")
			}
		})
	}
}
