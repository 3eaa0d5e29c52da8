package evm

import (
	"math"
	"sort"
	"time"
)

// majorVarianceShare is the overrun, relative to the planned amount, above
// which a cost category is reported as a major variance.
const majorVarianceShare = 0.10

// recommendationIndexFloor is the CPI/SPI level below which corrective
// recommendations are issued.
const recommendationIndexFloor = 0.9

// CostBreakdown explains cost variance by category. Implementations need
// cost entries that the earned value inputs do not carry.
type CostBreakdown interface {
	AnalyzeCost(m Metrics, tasks []TaskProgress, entries []CostEntry) CostVarianceAnalysis
}

// ScheduleBreakdown explains schedule variance by task.
type ScheduleBreakdown interface {
	AnalyzeSchedule(m Metrics, tasks []TaskProgress) ScheduleVarianceAnalysis
}

// CategoryVariance is the planned and recorded cost of one category.
type CategoryVariance struct {
	Category           string  `json:"category"`
	Planned            float64 `json:"planned"`
	Actual             float64 `json:"actual"`
	Variance           float64 `json:"variance"` // planned - actual
	VariancePercentage float64 `json:"variance_percentage"`
}

// CostVarianceAnalysis is the cost side of a variance report. Wired is false
// when no breakdown source is connected and the figures are placeholders.
type CostVarianceAnalysis struct {
	Wired              bool               `json:"wired"`
	TotalVariance      float64            `json:"total_variance"`
	VariancePercentage float64            `json:"variance_percentage"`
	Categories         []CategoryVariance `json:"categories"`
	MajorVariances     []CategoryVariance `json:"major_variances"`
}

// DelayedTask is a task whose reported progress trails its planned progress.
type DelayedTask struct {
	TaskID         string  `json:"task_id"`
	Title          string  `json:"title,omitempty"`
	PlannedPercent float64 `json:"planned_percent"`
	ActualPercent  float64 `json:"actual_percent"`
	LagPercent     float64 `json:"lag_percent"`
	LagDays        float64 `json:"lag_days"`
}

// ScheduleVarianceAnalysis is the schedule side of a variance report.
type ScheduleVarianceAnalysis struct {
	Wired         bool          `json:"wired"`
	TotalVariance float64       `json:"total_variance"`
	VarianceDays  float64       `json:"variance_days"`
	DelayedTasks  []DelayedTask `json:"delayed_tasks"`
}

// QualityMetrics has no source in earned value data and is always unwired.
type QualityMetrics struct {
	Wired                bool    `json:"wired"`
	DefectRate           float64 `json:"defect_rate"`
	ReworkPercentage     float64 `json:"rework_percentage"`
	CustomerSatisfaction float64 `json:"customer_satisfaction"`
}

// ResourceUtilization has no source in earned value data and is always unwired.
type ResourceUtilization struct {
	Wired      bool    `json:"wired"`
	Planned    float64 `json:"planned"`
	Actual     float64 `json:"actual"`
	Efficiency float64 `json:"efficiency"`
}

// PerformanceAnalysis summarizes efficiency (CPI) and productivity (SPI).
type PerformanceAnalysis struct {
	EfficiencyTrend     float64             `json:"efficiency_trend"`
	ProductivityIndex   float64             `json:"productivity_index"`
	Quality             QualityMetrics      `json:"quality_metrics"`
	ResourceUtilization ResourceUtilization `json:"resource_utilization"`
}

// Recommendations groups corrective actions by horizon.
type Recommendations struct {
	Immediate []string `json:"immediate"`
	ShortTerm []string `json:"short_term"`
	LongTerm  []string `json:"long_term"`
}

// IsEmpty reports whether no recommendation was issued.
func (r Recommendations) IsEmpty() bool {
	return len(r.Immediate) == 0 && len(r.ShortTerm) == 0 && len(r.LongTerm) == 0
}

// VarianceAnalysis combines the cost, schedule and performance analyses.
type VarianceAnalysis struct {
	ProjectID       string                   `json:"project_id"`
	AnalysisDate    time.Time                `json:"analysis_date"`
	Cost            CostVarianceAnalysis     `json:"cost_variance_analysis"`
	Schedule        ScheduleVarianceAnalysis `json:"schedule_variance_analysis"`
	Performance     PerformanceAnalysis      `json:"performance_analysis"`
	Recommendations Recommendations          `json:"recommendations"`
	ActionPlan      []string                 `json:"action_plan"`
}

// AnalyzeVariances builds a variance report using the configured breakdowns.
func (c *Calculator) AnalyzeVariances(projectID string, m Metrics, tasks []TaskProgress, entries []CostEntry) VarianceAnalysis {
	return VarianceAnalysis{
		ProjectID:    projectID,
		AnalysisDate: c.clock.Now(),
		Cost:         c.cost.AnalyzeCost(m, tasks, entries),
		Schedule:     c.schedule.AnalyzeSchedule(m, tasks),
		Performance: PerformanceAnalysis{
			EfficiencyTrend:   m.CostPerformanceIndex,
			ProductivityIndex: m.SchedulePerformanceIndex,
		},
		Recommendations: Recommend(m),
		ActionPlan:      []string{},
	}
}

// Recommend issues fixed corrective actions when CPI or SPI is below 0.9.
func Recommend(m Metrics) Recommendations {
	r := Recommendations{Immediate: []string{}, ShortTerm: []string{}, LongTerm: []string{}}

	if m.CostPerformanceIndex < recommendationIndexFloor {
		r.Immediate = append(r.Immediate, "Review costs immediately and identify the causes of the overrun")
		r.ShortTerm = append(r.ShortTerm, "Apply cost saving measures")
	}
	if m.SchedulePerformanceIndex < recommendationIndexFloor {
		r.Immediate = append(r.Immediate, "Review the schedule and identify delayed tasks")
		r.ShortTerm = append(r.ShortTerm, "Reallocate resources to critical tasks")
	}

	return r
}

// UnwiredCostBreakdown is the default cost breakdown. It reports an empty,
// unwired result.
type UnwiredCostBreakdown struct{}

// AnalyzeCost implements CostBreakdown.
func (UnwiredCostBreakdown) AnalyzeCost(Metrics, []TaskProgress, []CostEntry) CostVarianceAnalysis {
	return CostVarianceAnalysis{
		Categories:     []CategoryVariance{},
		MajorVariances: []CategoryVariance{},
	}
}

// UnwiredScheduleBreakdown is the default schedule breakdown. It reports an
// empty, unwired result.
type UnwiredScheduleBreakdown struct{}

// AnalyzeSchedule implements ScheduleBreakdown.
func (UnwiredScheduleBreakdown) AnalyzeSchedule(Metrics, []TaskProgress) ScheduleVarianceAnalysis {
	return ScheduleVarianceAnalysis{DelayedTasks: []DelayedTask{}}
}

// CostEntryBreakdown groups recorded cost entries by category.
type CostEntryBreakdown struct{}

// AnalyzeCost implements CostBreakdown. Categories are sorted by name; a
// category whose actual cost exceeds its planned amount by more than 10% is
// a major variance.
func (CostEntryBreakdown) AnalyzeCost(_ Metrics, _ []TaskProgress, entries []CostEntry) CostVarianceAnalysis {
	totals := make(map[string]*CategoryVariance)
	for _, e := range entries {
		cv, ok := totals[e.Category]
		if !ok {
			cv = &CategoryVariance{Category: e.Category}
			totals[e.Category] = cv
		}
		cv.Planned += e.PlannedAmount
		cv.Actual += e.ActualAmount
	}

	out := CostVarianceAnalysis{
		Wired:          true,
		Categories:     make([]CategoryVariance, 0, len(totals)),
		MajorVariances: []CategoryVariance{},
	}

	for _, cv := range totals {
		cv.Variance = cv.Planned - cv.Actual
		if cv.Planned > 0 {
			cv.VariancePercentage = cv.Variance / cv.Planned * 100
		}
		out.Categories = append(out.Categories, *cv)
	}
	sort.Slice(out.Categories, func(i, j int) bool {
		return out.Categories[i].Category < out.Categories[j].Category
	})

	var planned, actual float64
	for _, cv := range out.Categories {
		planned += cv.Planned
		actual += cv.Actual
		if cv.Actual-cv.Planned > cv.Planned*majorVarianceShare {
			out.MajorVariances = append(out.MajorVariances, cv)
		}
	}

	out.TotalVariance = planned - actual
	if planned > 0 {
		out.VariancePercentage = out.TotalVariance / planned * 100
	}
	return out
}

// TaskScheduleBreakdown lists tasks whose reported completion trails their
// time-proportional plan at the status date.
type TaskScheduleBreakdown struct{}

// AnalyzeSchedule implements ScheduleBreakdown. VarianceDays is the largest
// task lag, rounded to whole days.
func (TaskScheduleBreakdown) AnalyzeSchedule(m Metrics, tasks []TaskProgress) ScheduleVarianceAnalysis {
	out := ScheduleVarianceAnalysis{
		Wired:         true,
		TotalVariance: m.ScheduleVariance,
		DelayedTasks:  []DelayedTask{},
	}

	maxLag := 0.0
	for _, t := range tasks {
		planned := t.PlannedProgress(m.StatusDate) * 100
		lag := planned - t.PercentComplete
		if lag <= 0 {
			continue
		}
		durationDays := t.PlannedEndDate.Sub(t.PlannedStartDate).Hours() / 24
		lagDays := lag / 100 * math.Max(durationDays, 0)
		out.DelayedTasks = append(out.DelayedTasks, DelayedTask{
			TaskID:         t.ID,
			Title:          t.Title,
			PlannedPercent: planned,
			ActualPercent:  t.PercentComplete,
			LagPercent:     lag,
			LagDays:        lagDays,
		})
		maxLag = math.Max(maxLag, lagDays)
	}

	sort.SliceStable(out.DelayedTasks, func(i, j int) bool {
		return out.DelayedTasks[i].LagPercent > out.DelayedTasks[j].LagPercent
	})
	out.VarianceDays = math.Round(maxLag)
	return out
}
