package application_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/felixgeelhaar/evmkit/pkg/application"
	"github.com/felixgeelhaar/evmkit/pkg/domain/evm"
	"github.com/felixgeelhaar/evmkit/pkg/domain/kpi"
	"github.com/felixgeelhaar/evmkit/pkg/domain/portfolio"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var fixedNow = date(2025, 6, 1)

// overrunProject has BAC=1,000,000, EV=350,000, AC=600,000 and PV=500,000.
func overrunProject() portfolio.Project {
	return portfolio.Project{
		Project: kpi.Project{
			ID:        "proj-a",
			Name:      "Platform",
			Status:    kpi.ProjectActive,
			StartDate: date(2025, 1, 1),
			EndDate:   date(2025, 12, 31),
			Budget:    kpi.Budget{Total: 1_000_000, Spent: 600_000},
		},
		StatusDate: date(2025, 6, 1),
		Progress: []evm.TaskProgress{
			{
				ID:               "design",
				PlannedValue:     500_000,
				ActualCost:       600_000,
				PercentComplete:  70,
				PlannedStartDate: date(2025, 1, 1),
				PlannedEndDate:   date(2025, 5, 1),
			},
			{
				ID:               "build",
				PlannedValue:     500_000,
				PlannedStartDate: date(2025, 7, 1),
				PlannedEndDate:   date(2025, 12, 31),
			},
		},
		History: []evm.HistoryPoint{
			{Date: date(2025, 4, 1), CPI: 0.9, SPI: 0.9},
			{Date: date(2025, 5, 1), CPI: 0.8, SPI: 0.8},
			{Date: date(2025, 6, 1), CPI: 0.6, SPI: 0.7},
		},
	}
}

func newEVMService(repo *MockRepo) *application.EVMService {
	clock := evm.FixedClock(fixedNow)
	calc := evm.NewCalculator(evm.WithClock(clock))
	return application.NewEVMService(calc, repo, clock, nil)
}

func TestEVMService_Analyze(t *testing.T) {
	svc := newEVMService(&MockRepo{})

	report, err := svc.Analyze(context.Background(), overrunProject())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if report.ProjectID != "proj-a" || report.ProjectName != "Platform" {
		t.Errorf("unexpected identity: %s %s", report.ProjectID, report.ProjectName)
	}
	if !report.ReportDate.Equal(fixedNow) {
		t.Errorf("ReportDate = %v, want %v", report.ReportDate, fixedNow)
	}
	if report.Summary.OverallHealth != evm.HealthCritical {
		t.Errorf("OverallHealth = %s, want critical", report.Summary.OverallHealth)
	}
	if report.Summary.RiskLevel != evm.RiskCritical {
		t.Errorf("RiskLevel = %s, want critical", report.Summary.RiskLevel)
	}
	if got := len(report.Summary.Recommendations); got != 4 {
		t.Errorf("expected 4 recommendations, got %d: %v", got, report.Summary.Recommendations)
	}

	var costCritical, trend bool
	for _, a := range report.Alerts {
		if a.Type == evm.AlertCostOverrun && a.Severity == evm.SeverityCritical {
			costCritical = true
		}
		if a.Type == evm.AlertPerformanceDecline {
			trend = true
		}
	}
	if !costCritical {
		t.Error("expected a critical cost overrun alert")
	}
	if !trend {
		t.Error("expected a performance decline alert from the declining history")
	}

	if report.Cost.Status != evm.OverBudget {
		t.Errorf("Cost.Status = %s, want over_budget", report.Cost.Status)
	}
	if math.Abs(report.Cost.VariancePercentage-(-25)) > 1e-9 {
		t.Errorf("VariancePercentage = %v, want -25", report.Cost.VariancePercentage)
	}
	if report.Schedule.Status != evm.BehindSchedule || report.Schedule.VarianceDays >= 0 {
		t.Errorf("unexpected schedule analysis: %+v", report.Schedule)
	}
	if len(report.Forecasts) != 2 {
		t.Errorf("expected 2 forecast scenarios, got %d", len(report.Forecasts))
	}
	if report.Trends.Cost != evm.TrendDeclining {
		t.Errorf("Trends.Cost = %s, want declining", report.Trends.Cost)
	}
}

func TestEVMService_AnalyzeCancelled(t *testing.T) {
	svc := newEVMService(&MockRepo{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Analyze(ctx, overrunProject()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestEVMService_AnalyzeInvalidInput(t *testing.T) {
	svc := newEVMService(&MockRepo{})
	p := overrunProject()
	p.Progress[0].PercentComplete = 140

	if _, err := svc.Analyze(context.Background(), p); !errors.Is(err, evm.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestEVMService_ProjectReport(t *testing.T) {
	idle := overrunProject()
	idle.ID = "idle"
	idle.Progress = nil
	pf := &portfolio.Portfolio{Projects: []portfolio.Project{overrunProject(), idle}}

	loadErr := errors.New("disk on fire")

	tests := []struct {
		name    string
		repo    *MockRepo
		id      string
		wantErr error
	}{
		{"found", &MockRepo{Portfolio: pf}, "proj-a", nil},
		{"unknown project", &MockRepo{Portfolio: pf}, "nope", portfolio.ErrProjectNotFound},
		{"no progress", &MockRepo{Portfolio: pf}, "idle", portfolio.ErrNoProgress},
		{"no portfolio", &MockRepo{}, "proj-a", portfolio.ErrNoPortfolio},
		{"load failure", &MockRepo{LoadError: loadErr}, "proj-a", loadErr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := newEVMService(tt.repo).ProjectReport(context.Background(), tt.id)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ProjectReport: %v", err)
			}
			if report.ProjectID != tt.id {
				t.Errorf("ProjectID = %s, want %s", report.ProjectID, tt.id)
			}
		})
	}
}

func TestEVMService_WorkspaceAlerts(t *testing.T) {
	healthy := overrunProject()
	healthy.ID = "healthy"
	healthy.Progress[0].ActualCost = 350_000
	healthy.Progress[0].PercentComplete = 100
	healthy.History = nil
	idle := overrunProject()
	idle.ID = "idle"
	idle.Progress = nil

	repo := &MockRepo{Portfolio: &portfolio.Portfolio{Projects: []portfolio.Project{overrunProject(), healthy, idle}}}
	alerts, err := newEVMService(repo).WorkspaceAlerts(context.Background())
	if err != nil {
		t.Fatalf("WorkspaceAlerts: %v", err)
	}
	if len(alerts) == 0 {
		t.Fatal("expected alerts for the overrun project")
	}
	for _, a := range alerts {
		if a.ProjectID != "proj-a" {
			t.Errorf("unexpected alert for %s: %s", a.ProjectID, a.Title)
		}
	}
}
