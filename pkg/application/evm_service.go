package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/evmkit/pkg/domain"
	"github.com/felixgeelhaar/evmkit/pkg/domain/evm"
	"github.com/felixgeelhaar/evmkit/pkg/domain/portfolio"
)

// ExecutiveSummary is the short assessment at the top of a project report.
type ExecutiveSummary struct {
	OverallHealth   evm.HealthStatus `json:"overall_health"`
	KeyFindings     []string         `json:"key_findings"`
	Recommendations []string         `json:"recommendations"`
	RiskLevel       evm.RiskRating   `json:"risk_level"`
}

// CostAnalysis summarizes the cost variance of a project.
type CostAnalysis struct {
	Status             evm.CostStatus `json:"status"`
	Variance           float64        `json:"variance"`
	VariancePercentage float64        `json:"variance_percentage"`
}

// ScheduleAnalysis summarizes the schedule variance of a project.
type ScheduleAnalysis struct {
	Status       evm.ScheduleStatus `json:"status"`
	Variance     float64            `json:"variance"`
	VarianceDays float64            `json:"variance_days"`
}

// Report is the earned value report of one project.
type Report struct {
	ProjectID   string                 `json:"project_id"`
	ProjectName string                 `json:"project_name"`
	ReportDate  time.Time              `json:"report_date"`
	Summary     ExecutiveSummary       `json:"executive_summary"`
	Metrics     evm.Metrics            `json:"current_metrics"`
	Trends      evm.TrendAnalysis      `json:"trends"`
	Alerts      []evm.Alert            `json:"alerts"`
	Forecasts   []evm.ForecastScenario `json:"forecasts"`
	Cost        CostAnalysis           `json:"cost_analysis"`
	Schedule    ScheduleAnalysis       `json:"schedule_analysis"`
	Variance    evm.VarianceAnalysis   `json:"variance_analysis"`
}

// EVMService produces earned value reports for workspace projects.
type EVMService struct {
	calc   *evm.Calculator
	repo   domain.WorkspaceRepository
	clock  evm.Clock
	logger *slog.Logger
}

// NewEVMService creates a new EVM service. A nil logger falls back to the default logger.
func NewEVMService(calc *evm.Calculator, repo domain.WorkspaceRepository, clock evm.Clock, logger *slog.Logger) *EVMService {
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = evm.SystemClock
	}
	return &EVMService{calc: calc, repo: repo, clock: clock, logger: logger}
}

// Calculator returns the calculator the service reports with.
func (s *EVMService) Calculator() *evm.Calculator {
	return s.calc
}

// ProjectReport loads the workspace portfolio and reports on one project.
func (s *EVMService) ProjectReport(ctx context.Context, projectID string) (*Report, error) {
	pf, err := s.repo.LoadPortfolio(ctx)
	if err != nil {
		return nil, err
	}
	p, ok := pf.Find(projectID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", portfolio.ErrProjectNotFound, projectID)
	}
	if !p.HasProgress() {
		return nil, fmt.Errorf("%w: %s", portfolio.ErrNoProgress, projectID)
	}
	return s.Analyze(ctx, *p)
}

// Analyze computes metrics, trends, alerts, forecasts and the variance
// analysis of p.
func (s *EVMService) Analyze(ctx context.Context, p portfolio.Project) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m, err := s.calc.Calculate(p.EVMInput())
	if err != nil {
		return nil, fmt.Errorf("project %s: %w", p.ID, err)
	}

	alerts := s.calc.GenerateAlerts(p.ID, m)
	alerts = append(alerts, s.calc.GenerateTrendAlerts(p.ID, p.History)...)

	variance := s.calc.AnalyzeVariances(p.ID, m, p.Progress, p.CostEntries)
	recommendations := append([]string{}, variance.Recommendations.Immediate...)
	recommendations = append(recommendations, variance.Recommendations.ShortTerm...)

	var costPct float64
	if m.BudgetAtCompletion > 0 {
		costPct = m.CostVariance / m.BudgetAtCompletion * 100
	}

	report := &Report{
		ProjectID:   p.ID,
		ProjectName: p.Name,
		ReportDate:  s.clock.Now(),
		Summary: ExecutiveSummary{
			OverallHealth:   evm.Health(m),
			KeyFindings:     evm.KeyFindings(m),
			Recommendations: recommendations,
			RiskLevel:       evm.RiskLevel(m),
		},
		Metrics:   m,
		Trends:    evm.AnalyzeTrends(p.History),
		Alerts:    alerts,
		Forecasts: s.calc.Forecasts(m),
		Cost: CostAnalysis{
			Status:             evm.CostStatusOf(m.CostVariance),
			Variance:           m.CostVariance,
			VariancePercentage: costPct,
		},
		Schedule: ScheduleAnalysis{
			Status:       evm.ScheduleStatusOf(m.ScheduleVariance),
			Variance:     m.ScheduleVariance,
			VarianceDays: evm.VarianceDays(m.ScheduleVariance, m.BudgetAtCompletion, p.StartDate, p.EndDate),
		},
		Variance: variance,
	}

	s.logger.Info("evm report generated",
		"project", p.ID,
		"health", report.Summary.OverallHealth,
		"alerts", len(alerts))

	return report, nil
}

// WorkspaceAlerts returns the threshold and trend alerts of every project
// with task progress, in portfolio order.
func (s *EVMService) WorkspaceAlerts(ctx context.Context) ([]evm.Alert, error) {
	pf, err := s.repo.LoadPortfolio(ctx)
	if err != nil {
		return nil, err
	}

	alerts := []evm.Alert{}
	for _, p := range pf.Projects {
		if !p.HasProgress() {
			continue
		}
		m, err := s.calc.Calculate(p.EVMInput())
		if err != nil {
			return nil, fmt.Errorf("project %s: %w", p.ID, err)
		}
		alerts = append(alerts, s.calc.GenerateAlerts(p.ID, m)...)
		alerts = append(alerts, s.calc.GenerateTrendAlerts(p.ID, p.History)...)
	}
	return alerts, nil
}
