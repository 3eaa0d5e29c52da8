package application

import (
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/evmkit/pkg/domain"
	"github.com/felixgeelhaar/evmkit/pkg/domain/evm"
	"github.com/felixgeelhaar/evmkit/pkg/domain/kpi"
	"github.com/felixgeelhaar/evmkit/pkg/domain/portfolio"
)

// ErrAlreadyInitialized is returned when init runs in an existing workspace.
var ErrAlreadyInitialized = errors.New("workspace already initialized")

// InitService creates workspaces.
type InitService struct {
	repo  domain.WorkspaceRepository
	clock evm.Clock
}

func NewInitService(repo domain.WorkspaceRepository, clock evm.Clock) *InitService {
	if clock == nil {
		clock = evm.SystemClock
	}
	return &InitService{repo: repo, clock: clock}
}

// InitializeWorkspace creates the .evmkit directory and a starter portfolio
// named name. With sample set the portfolio holds a demo project in flight.
func (s *InitService) InitializeWorkspace(name string, sample bool) (*portfolio.Portfolio, error) {
	if s.repo.IsInitialized() {
		return nil, ErrAlreadyInitialized
	}
	if err := s.repo.Initialize(); err != nil {
		return nil, err
	}

	pf := &portfolio.Portfolio{Name: name, Projects: []portfolio.Project{}}
	if sample {
		pf = SamplePortfolio(name, s.clock.Now())
	}
	if err := s.repo.SavePortfolio(pf); err != nil {
		return nil, fmt.Errorf("failed to save portfolio: %w", err)
	}
	return pf, nil
}

// SamplePortfolio returns a demo portfolio around now: one project halfway
// through its schedule running slightly over budget, and one delivered project.
func SamplePortfolio(name string, now time.Time) *portfolio.Portfolio {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := today.AddDate(0, -3, 0)
	end := today.AddDate(0, 3, 0)

	active := portfolio.Project{
		Project: kpi.Project{
			ID:        "website",
			Name:      "Website relaunch",
			Status:    kpi.ProjectActive,
			StartDate: start,
			EndDate:   end,
			Budget:    kpi.Budget{Total: 120000, Spent: 58000},
			Revenue:   180000,
			Costs:     58000,
			Ratings:   []float64{4, 4.5},
			Risks: []kpi.Risk{
				{ID: "vendor-delay", Status: kpi.RiskActive, Exposure: 8000},
				{ID: "scope-creep", Status: kpi.RiskMitigated, Exposure: 12000},
			},
			Issues: []kpi.Issue{
				{ID: "cms-migration", OpenedAt: start.AddDate(0, 1, 0), ResolvedAt: start.AddDate(0, 1, 3)},
			},
			Resources:      kpi.Resources{AvailableHours: 1200, UsedHours: 1020},
			RequiredSkills: []string{"design", "frontend", "cms"},
			TeamSkills:     []string{"design", "frontend"},
		},
		StatusDate: today,
		Progress: []evm.TaskProgress{
			{ID: "discovery", Title: "Discovery", PlannedValue: 20000, ActualCost: 21000, PercentComplete: 100, PlannedStartDate: start, PlannedEndDate: start.AddDate(0, 1, 0)},
			{ID: "design", Title: "Design", PlannedValue: 30000, ActualCost: 27000, PercentComplete: 80, PlannedStartDate: start.AddDate(0, 1, 0), PlannedEndDate: today},
			{ID: "build", Title: "Build", PlannedValue: 50000, ActualCost: 10000, PercentComplete: 10, PlannedStartDate: today.AddDate(0, -1, 0), PlannedEndDate: end.AddDate(0, -1, 0)},
			{ID: "launch", Title: "Launch", PlannedValue: 20000, PercentComplete: 0, PlannedStartDate: end.AddDate(0, -1, 0), PlannedEndDate: end},
		},
		History: []evm.HistoryPoint{
			{Date: today.AddDate(0, -2, 0), CPI: 0.99, SPI: 1.0},
			{Date: today.AddDate(0, -1, 0), CPI: 0.96, SPI: 0.95},
			{Date: today, CPI: 0.93, SPI: 0.90},
		},
		CostEntries: []evm.CostEntry{
			{ID: "labor", Category: "labor", PlannedAmount: 45000, ActualAmount: 48000, Date: today},
			{ID: "licenses", Category: "licenses", PlannedAmount: 10000, ActualAmount: 10000, Date: today},
		},
	}

	delivered := portfolio.Project{
		Project: kpi.Project{
			ID:            "billing",
			Name:          "Billing integration",
			Status:        kpi.ProjectCompleted,
			StartDate:     start.AddDate(0, -4, 0),
			EndDate:       start.AddDate(0, 1, 0),
			ActualEndDate: start.AddDate(0, 1, 5),
			Budget:        kpi.Budget{Total: 60000, Spent: 63000},
			Revenue:       90000,
			Costs:         63000,
			Ratings:       []float64{4.5},
			Resources:     kpi.Resources{AvailableHours: 600, UsedHours: 560},
		},
	}

	return &portfolio.Portfolio{
		Name:     name,
		Projects: []portfolio.Project{active, delivered},
		Tasks: []kpi.Task{
			{ID: "discovery", ProjectID: "website", Status: kpi.TaskCompleted},
			{ID: "design", ProjectID: "website", Status: "in_progress", ReworkCount: 1},
			{ID: "build", ProjectID: "website", Status: "in_progress"},
			{ID: "launch", ProjectID: "website", Status: "pending"},
			{ID: "invoicing", ProjectID: "billing", Status: kpi.TaskCompleted},
		},
	}
}
