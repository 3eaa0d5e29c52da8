package wiring

import (
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/evmkit/pkg/application"
	"github.com/felixgeelhaar/evmkit/pkg/domain"
	"github.com/felixgeelhaar/evmkit/pkg/domain/evm"
	"github.com/felixgeelhaar/evmkit/pkg/domain/kpi"
	"github.com/felixgeelhaar/evmkit/pkg/storage"
)

// AppServices exposes the application layer services wired together with a workspace.
type AppServices struct {
	Workspace  *Workspace
	Calculator *evm.Calculator
	Engine     *kpi.Engine
	Init       *application.InitService
	EVM        *application.EVMService
	Portfolio  *application.PortfolioService
}

type buildOptions struct {
	clock  evm.Clock
	logger *slog.Logger
}

// BuildOption customizes service construction.
type BuildOption func(*buildOptions)

// WithClock sets the clock shared by the calculator, the KPI engine and the services.
func WithClock(c evm.Clock) BuildOption {
	return func(o *buildOptions) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger sets the logger handed to every component.
func WithLogger(l *slog.Logger) BuildOption {
	return func(o *buildOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// BuildAppServices constructs the services for a workspace root. When the
// alert config cannot be loaded services are still returned, built with the
// default thresholds, together with the load error.
func BuildAppServices(root string, opts ...BuildOption) (*AppServices, error) {
	o := buildOptions{clock: evm.SystemClock, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	workspace, err := NewWorkspace(root)
	var loadErr error
	if err != nil {
		loadErr = fmt.Errorf("alert config fallback: %w", err)
	}

	// Create services in dependency order
	calcOpts := append(workspace.Alerts.CalculatorOptions(),
		evm.WithClock(o.clock),
		evm.WithLogger(o.logger))
	calc := evm.NewCalculator(calcOpts...)
	engine := kpi.NewEngine(kpi.WithClock(o.clock), kpi.WithLogger(o.logger))

	open := func(dir string) domain.WorkspaceRepository {
		return storage.NewFilesystemRepository(dir)
	}

	services := &AppServices{
		Workspace:  workspace,
		Calculator: calc,
		Engine:     engine,
		Init:       application.NewInitService(workspace.Repo, o.clock),
		EVM:        application.NewEVMService(calc, workspace.Repo, o.clock, o.logger),
		Portfolio:  application.NewPortfolioService(calc, engine, workspace.Repo, open, o.logger),
	}

	return services, loadErr
}
