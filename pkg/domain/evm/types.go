// Package evm provides earned value management for project execution:
// planned/earned/actual value, performance indices, forecasts, trend
// classification and threshold alerts.
package evm

import (
	"time"
)

// TaskProgress is the progress report of a single task at a status date.
type TaskProgress struct {
	ID               string    `json:"id" yaml:"id"`
	Title            string    `json:"title,omitempty" yaml:"title,omitempty"`
	PlannedValue     float64   `json:"planned_value" yaml:"planned_value"`
	ActualCost       float64   `json:"actual_cost" yaml:"actual_cost"`
	PercentComplete  float64   `json:"percent_complete" yaml:"percent_complete"` // 0..100
	PlannedStartDate time.Time `json:"planned_start_date" yaml:"planned_start_date"`
	PlannedEndDate   time.Time `json:"planned_end_date" yaml:"planned_end_date"`
	Weight           float64   `json:"weight,omitempty" yaml:"weight,omitempty"`
}

// PlannedProgress returns the fraction (0..1) of the task scheduled to be
// done at the given instant, using linear allocation over the planned window.
func (t TaskProgress) PlannedProgress(at time.Time) float64 {
	if at.Before(t.PlannedStartDate) {
		return 0
	}
	if !at.Before(t.PlannedEndDate) {
		return 1
	}
	duration := t.PlannedEndDate.Sub(t.PlannedStartDate)
	elapsed := at.Sub(t.PlannedStartDate)
	return float64(elapsed) / float64(duration)
}

// Input carries everything needed to compute a metrics snapshot.
type Input struct {
	ProjectID        string
	Tasks            []TaskProgress
	TotalBudget      float64 // BAC
	StatusDate       time.Time
	PlannedStartDate time.Time
	PlannedEndDate   time.Time
}

// Metrics is an immutable earned value snapshot.
type Metrics struct {
	PlannedValue               float64   `json:"planned_value"`
	EarnedValue                float64   `json:"earned_value"`
	ActualCost                 float64   `json:"actual_cost"`
	BudgetAtCompletion         float64   `json:"budget_at_completion"`
	CostVariance               float64   `json:"cost_variance"`
	ScheduleVariance           float64   `json:"schedule_variance"`
	CostPerformanceIndex       float64   `json:"cpi"`
	SchedulePerformanceIndex   float64   `json:"spi"`
	EstimateAtCompletion       float64   `json:"estimate_at_completion"`
	EstimateToComplete         float64   `json:"estimate_to_complete"`
	VarianceAtCompletion       float64   `json:"variance_at_completion"`
	ToCompletePerformanceIndex float64   `json:"tcpi"` // +Inf when the budget is exhausted
	PercentComplete            float64   `json:"percent_complete"`
	PercentPlanned             float64   `json:"percent_planned"`
	StatusDate                 time.Time `json:"status_date"`
	PlannedCompletionDate      time.Time `json:"planned_completion_date"`
	ForecastCompletionDate     time.Time `json:"forecast_completion_date"`
}

// HistoryPoint is one entry of a project's metric history.
type HistoryPoint struct {
	Date time.Time `json:"date" yaml:"date"`
	CPI  float64   `json:"cpi" yaml:"cpi"`
	SPI  float64   `json:"spi" yaml:"spi"`
	CV   float64   `json:"cv" yaml:"cv"`
	SV   float64   `json:"sv" yaml:"sv"`
}

// CostEntry is a recorded cost line used by cost breakdowns.
type CostEntry struct {
	ID            string    `json:"id" yaml:"id"`
	TaskID        string    `json:"task_id,omitempty" yaml:"task_id,omitempty"`
	Category      string    `json:"category" yaml:"category"`
	PlannedAmount float64   `json:"planned_amount" yaml:"planned_amount"`
	ActualAmount  float64   `json:"actual_amount" yaml:"actual_amount"`
	Date          time.Time `json:"date" yaml:"date"`
}

// ForecastMethod names a forecast scenario.
type ForecastMethod string

const (
	ForecastCurrentPerformance ForecastMethod = "current_performance"
	ForecastPlannedPerformance ForecastMethod = "planned_performance"
)

// ForecastScenario is one completion forecast with its assumptions.
type ForecastScenario struct {
	Method                 ForecastMethod `json:"method"`
	EstimateAtCompletion   float64        `json:"estimate_at_completion"`
	EstimateToComplete     float64        `json:"estimate_to_complete"`
	ForecastCompletionDate time.Time      `json:"forecast_completion_date"`
	Confidence             float64        `json:"confidence"` // 0..100
	Assumptions            []string       `json:"assumptions"`
}
