package application_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/felixgeelhaar/evmkit/pkg/application"
	"github.com/felixgeelhaar/evmkit/pkg/domain"
	"github.com/felixgeelhaar/evmkit/pkg/domain/evm"
	"github.com/felixgeelhaar/evmkit/pkg/domain/kpi"
	"github.com/felixgeelhaar/evmkit/pkg/domain/portfolio"
	"github.com/felixgeelhaar/evmkit/pkg/storage"
)

func openStorage(root string) domain.WorkspaceRepository {
	return storage.NewFilesystemRepository(root)
}

func newPortfolioService(repo domain.WorkspaceRepository, open application.RepositoryFactory) *application.PortfolioService {
	clock := evm.FixedClock(fixedNow)
	return application.NewPortfolioService(
		evm.NewCalculator(evm.WithClock(clock)),
		kpi.NewEngine(kpi.WithClock(clock)),
		repo, open, nil)
}

func TestPortfolioService_Dashboard(t *testing.T) {
	svc := newPortfolioService(&MockRepo{}, nil)
	pf := application.SamplePortfolio("demo", fixedNow)

	dash, err := svc.Dashboard(context.Background(), *pf)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if dash.Summary.Total == 0 {
		t.Fatal("expected computed indicators")
	}
	if got := dash.Summary.Total + len(dash.Unavailable); got != len(kpi.Definitions()) {
		t.Errorf("computed + unavailable = %d, want %d", got, len(kpi.Definitions()))
	}

	var cpi bool
	for _, r := range dash.All() {
		if r.ID == kpi.IDCPI {
			cpi = true
		}
	}
	if !cpi {
		t.Error("expected the CPI indicator from the project with progress")
	}
}

func TestPortfolioService_DashboardInvalidProgress(t *testing.T) {
	svc := newPortfolioService(&MockRepo{}, nil)
	pf := application.SamplePortfolio("demo", fixedNow)
	pf.Projects[0].Progress[0].ID = ""

	_, err := svc.Dashboard(context.Background(), *pf)
	if !errors.Is(err, evm.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "website") {
		t.Errorf("expected project id in error, got %v", err)
	}
}

func TestPortfolioService_WorkspaceDashboard(t *testing.T) {
	svc := newPortfolioService(&MockRepo{}, nil)
	if _, err := svc.WorkspaceDashboard(context.Background()); !errors.Is(err, portfolio.ErrNoPortfolio) {
		t.Fatalf("expected ErrNoPortfolio, got %v", err)
	}

	svc = newPortfolioService(&MockRepo{Portfolio: application.SamplePortfolio("demo", fixedNow)}, nil)
	dash, err := svc.WorkspaceDashboard(context.Background())
	if err != nil {
		t.Fatalf("WorkspaceDashboard: %v", err)
	}
	if dash.Summary.Total == 0 {
		t.Error("expected computed indicators")
	}
}

func TestPortfolioService_DiscoverWorkspaces(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"team-a", "team-b", filepath.Join("nested", "team-c")} {
		if err := os.MkdirAll(filepath.Join(root, name, storage.EvmkitDir), 0700); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(root, "plain"), 0700); err != nil {
		t.Fatal(err)
	}

	svc := newPortfolioService(&MockRepo{}, openStorage)
	workspaces, err := svc.DiscoverWorkspaces(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(workspaces) != 3 {
		t.Errorf("expected 3 workspaces, got %d: %v", len(workspaces), workspaces)
	}
}

func saveWorkspaces(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		repo := storage.NewFilesystemRepository(filepath.Join(root, name))
		if err := repo.Initialize(); err != nil {
			t.Fatal(err)
		}
		if err := repo.SavePortfolio(application.SamplePortfolio(filepath.Base(name), fixedNow)); err != nil {
			t.Fatal(err)
		}
	}
}

func hasResult(d *kpi.Dashboard, id string) bool {
	for _, r := range d.All() {
		if r.ID == id {
			return true
		}
	}
	return false
}

func TestPortfolioService_OrgDashboard(t *testing.T) {
	single, err := newPortfolioService(&MockRepo{}, nil).Dashboard(context.Background(), *application.SamplePortfolio("solo", fixedNow))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		workspaces []string
	}{
		{"distinct names", []string{"team-a", "team-b"}},
		{"same name under different parents", []string{filepath.Join("teamA", "web"), filepath.Join("teamB", "web")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			saveWorkspaces(t, root, tt.workspaces...)
			// A workspace without a portfolio is skipped.
			if err := os.MkdirAll(filepath.Join(root, "empty", storage.EvmkitDir), 0700); err != nil {
				t.Fatal(err)
			}

			svc := newPortfolioService(&MockRepo{}, openStorage)
			org, err := svc.OrgDashboard(context.Background(), root, kpi.Timeframe{})
			if err != nil {
				t.Fatalf("OrgDashboard: %v", err)
			}
			if org.Summary.Total != single.Summary.Total {
				t.Errorf("merged dashboard computed %d indicators, single workspace %d", org.Summary.Total, single.Summary.Total)
			}
		})
	}
}

func TestPortfolioService_OrgDashboardTimeframe(t *testing.T) {
	root := t.TempDir()
	saveWorkspaces(t, root, "team-a", "team-b")
	svc := newPortfolioService(&MockRepo{}, openStorage)

	// The sample delivered project finished in April 2025.
	tests := []struct {
		name string
		tf   kpi.Timeframe
		want bool
	}{
		{"open timeframe", kpi.Timeframe{}, true},
		{"covers the delivery", kpi.Timeframe{Start: date(2025, 1, 1), End: fixedNow}, true},
		{"after the delivery", kpi.Timeframe{Start: date(2025, 5, 1)}, false},
	}
	for _, tt := range tests {
		org, err := svc.OrgDashboard(context.Background(), root, tt.tf)
		if err != nil {
			t.Fatalf("%s: OrgDashboard: %v", tt.name, err)
		}
		if got := hasResult(org, kpi.IDOnTimeDelivery); got != tt.want {
			t.Errorf("%s: on-time delivery computed: want %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestPortfolioService_OrgDashboardWithoutFactory(t *testing.T) {
	svc := newPortfolioService(&MockRepo{}, nil)
	if _, err := svc.OrgDashboard(context.Background(), t.TempDir(), kpi.Timeframe{}); err == nil {
		t.Fatal("expected error without a repository factory")
	}
}
