// Package kpi computes banded portfolio indicators across the financial,
// schedule, quality, resource and risk categories.
package kpi

import (
	"time"
)

// Category groups indicators on the dashboard.
type Category string

const (
	CategoryFinancial Category = "financial"
	CategorySchedule  Category = "schedule"
	CategoryQuality   Category = "quality"
	CategoryResources Category = "resources"
	CategoryRisk      Category = "risk"
)

// Categories lists every category in dashboard order.
var Categories = []Category{CategoryFinancial, CategorySchedule, CategoryQuality, CategoryResources, CategoryRisk}

// Status is the band an indicator value falls into.
type Status string

const (
	StatusExcellent Status = "excellent"
	StatusGood      Status = "good"
	StatusWarning   Status = "warning"
	StatusCritical  Status = "critical"
)

// Trend is the direction of an indicator relative to its target.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// ProjectStatus is the lifecycle stage of a project.
type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
)

// RiskStatus is the state of a registered risk.
type RiskStatus string

const (
	RiskActive    RiskStatus = "active"
	RiskMitigated RiskStatus = "mitigated"
	RiskResolved  RiskStatus = "resolved"
)

// Budget is the approved total and the amount spent so far.
type Budget struct {
	Total float64 `json:"total"`
	Spent float64 `json:"spent"`
}

// Risk is an entry of a project risk register. Exposure is the monetary
// impact if the risk materializes.
type Risk struct {
	ID       string     `json:"id"`
	Status   RiskStatus `json:"status"`
	Exposure float64    `json:"exposure"`
}

// Issue is a raised project issue. ResolvedAt is zero while the issue is open.
type Issue struct {
	ID         string    `json:"id"`
	OpenedAt   time.Time `json:"opened_at"`
	ResolvedAt time.Time `json:"resolved_at,omitempty"`
}

// Resources is the booked capacity of a project in hours.
type Resources struct {
	AvailableHours float64 `json:"available_hours"`
	UsedHours      float64 `json:"used_hours"`
}

// Project is the portfolio view of a project.
type Project struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Status         ProjectStatus `json:"status"`
	StartDate      time.Time     `json:"start_date"`
	EndDate        time.Time     `json:"end_date"`
	ActualEndDate  time.Time     `json:"actual_end_date,omitempty"`
	Budget         Budget        `json:"budget"`
	Revenue        float64       `json:"revenue,omitempty"`
	Costs          float64       `json:"costs,omitempty"`
	Ratings        []float64     `json:"ratings,omitempty"` // customer ratings on a 1..5 scale
	Risks          []Risk        `json:"risks,omitempty"`
	Issues         []Issue       `json:"issues,omitempty"`
	Resources      Resources     `json:"resources"`
	RequiredSkills []string      `json:"required_skills,omitempty"`
	TeamSkills     []string      `json:"team_skills,omitempty"`
}

// IsCompleted reports whether the project has been delivered.
func (p Project) IsCompleted() bool {
	return p.Status == ProjectCompleted
}

// DeliveredAt returns the actual end date, or the planned end date when no
// actual date was recorded.
func (p Project) DeliveredAt() time.Time {
	if !p.ActualEndDate.IsZero() {
		return p.ActualEndDate
	}
	return p.EndDate
}

// Task is the portfolio view of a task.
type Task struct {
	ID          string `json:"id"`
	ProjectID   string `json:"project_id,omitempty"`
	Status      string `json:"status"`
	ReworkCount int    `json:"rework_count,omitempty"`
}

// TaskCompleted is the task status counted as done.
const TaskCompleted = "completed"

// Timeframe bounds the reporting period. A zero bound is open.
type Timeframe struct {
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
}

// Contains reports whether t lies within the timeframe, inclusive.
func (tf Timeframe) Contains(t time.Time) bool {
	if !tf.Start.IsZero() && t.Before(tf.Start) {
		return false
	}
	if !tf.End.IsZero() && t.After(tf.End) {
		return false
	}
	return true
}

// Result is one computed indicator.
type Result struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Value       float64   `json:"value"`
	Target      float64   `json:"target"`
	Unit        string    `json:"unit"`
	Trend       Trend     `json:"trend"`
	Status      Status    `json:"status"`
	Category    Category  `json:"category"`
	Description string    `json:"description"`
	Calculation string    `json:"calculation"`
	LastUpdated time.Time `json:"last_updated"`
}

// Summary counts indicators per band.
type Summary struct {
	Total     int `json:"total_kpis"`
	Excellent int `json:"excellent_kpis"`
	Good      int `json:"good_kpis"`
	Warning   int `json:"warning_kpis"`
	Critical  int `json:"critical_kpis"`
}

// CategoryGroups holds the indicators of each category.
type CategoryGroups struct {
	Financial []Result `json:"financial"`
	Schedule  []Result `json:"schedule"`
	Quality   []Result `json:"quality"`
	Resources []Result `json:"resources"`
	Risk      []Result `json:"risk"`
}

// TrendGroups holds the indicators by trend.
type TrendGroups struct {
	Improving []Result `json:"improving"`
	Declining []Result `json:"declining"`
	Stable    []Result `json:"stable"`
}

// AlertGroups holds the indicators in the warning and critical bands.
type AlertGroups struct {
	Critical []Result `json:"critical"`
	Warning  []Result `json:"warning"`
}

// Dashboard is the organized view of a computed indicator set.
type Dashboard struct {
	Summary     Summary        `json:"summary"`
	Categories  CategoryGroups `json:"categories"`
	Trends      TrendGroups    `json:"trends"`
	Alerts      AlertGroups    `json:"alerts"`
	Unavailable []string       `json:"unavailable"`
}
