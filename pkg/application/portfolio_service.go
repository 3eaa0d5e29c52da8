package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/evmkit/pkg/domain"
	"github.com/felixgeelhaar/evmkit/pkg/domain/evm"
	"github.com/felixgeelhaar/evmkit/pkg/domain/kpi"
	"github.com/felixgeelhaar/evmkit/pkg/domain/portfolio"
)

// RepositoryFactory opens the workspace repository rooted at a directory.
type RepositoryFactory func(root string) domain.WorkspaceRepository

// PortfolioService computes KPI dashboards for one workspace or for every
// workspace below a root directory.
type PortfolioService struct {
	calc   *evm.Calculator
	engine *kpi.Engine
	repo   domain.WorkspaceRepository
	open   RepositoryFactory
	logger *slog.Logger
}

// NewPortfolioService creates a new portfolio service. open is used for
// multi-workspace dashboards and may be nil when only the local workspace is used.
func NewPortfolioService(calc *evm.Calculator, engine *kpi.Engine, repo domain.WorkspaceRepository, open RepositoryFactory, logger *slog.Logger) *PortfolioService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PortfolioService{calc: calc, engine: engine, repo: repo, open: open, logger: logger}
}

// Dashboard computes EVM metrics for every project with task progress and
// feeds them, with the portfolio projects and tasks, to the KPI engine.
func (s *PortfolioService) Dashboard(ctx context.Context, pf portfolio.Portfolio) (*kpi.Dashboard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	metrics := make([]evm.Metrics, 0, len(pf.Projects))
	for _, p := range pf.Projects {
		if !p.HasProgress() {
			continue
		}
		m, err := s.calc.Calculate(p.EVMInput())
		if err != nil {
			return nil, fmt.Errorf("project %s: %w", p.ID, err)
		}
		metrics = append(metrics, m)
	}

	dash, err := s.engine.Calculate(kpi.Input{
		Projects:  pf.KPIProjects(),
		Tasks:     pf.Tasks,
		Metrics:   metrics,
		Timeframe: pf.Timeframe,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("kpi dashboard generated",
		"portfolio", pf.Name,
		"projects", len(pf.Projects),
		"evm_projects", len(metrics),
		"critical", dash.Summary.Critical)

	return &dash, nil
}

// WorkspaceDashboard loads the local workspace portfolio and computes its dashboard.
func (s *PortfolioService) WorkspaceDashboard(ctx context.Context) (*kpi.Dashboard, error) {
	pf, err := s.repo.LoadPortfolio(ctx)
	if err != nil {
		return nil, err
	}
	return s.Dashboard(ctx, *pf)
}

// DiscoverWorkspaces walks root and returns the directories holding a .evmkit workspace.
func (s *PortfolioService) DiscoverWorkspaces(root string) ([]string, error) {
	var workspaces []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() && info.Name() == ".evmkit" {
			workspaces = append(workspaces, filepath.Dir(path))
			return filepath.SkipDir
		}
		return nil
	})
	return workspaces, err
}

// OrgDashboard merges the portfolios of every workspace below root into one
// dashboard. Project and task ids are prefixed with the workspace path
// relative to root so they stay unique across workspaces. Workspace
// timeframes are not merged; tf bounds the whole org view and a zero tf is
// open. Workspaces without a portfolio are skipped.
func (s *PortfolioService) OrgDashboard(ctx context.Context, root string, tf kpi.Timeframe) (*kpi.Dashboard, error) {
	if s.open == nil {
		return nil, errors.New("multi-workspace dashboards need a repository factory")
	}
	dirs, err := s.DiscoverWorkspaces(root)
	if err != nil {
		return nil, err
	}

	merged := portfolio.Portfolio{Name: filepath.Base(root), Timeframe: tf}
	for _, dir := range dirs {
		pf, err := s.open(dir).LoadPortfolio(ctx)
		if err != nil {
			s.logger.Warn("skipping workspace", "path", dir, "error", err)
			continue
		}
		prefix := workspacePrefix(root, dir)
		for _, p := range pf.Projects {
			p.ID = prefix + p.ID
			merged.Projects = append(merged.Projects, p)
		}
		for _, t := range pf.Tasks {
			t.ID = prefix + t.ID
			if t.ProjectID != "" {
				t.ProjectID = prefix + t.ProjectID
			}
			merged.Tasks = append(merged.Tasks, t)
		}
	}

	return s.Dashboard(ctx, merged)
}

// workspacePrefix returns the slash separated path of dir below root.
func workspacePrefix(root, dir string) string {
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." {
		rel = filepath.Base(dir)
	}
	return filepath.ToSlash(rel) + "/"
}
