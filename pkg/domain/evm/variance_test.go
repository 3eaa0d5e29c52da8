package evm

import "testing"

func TestAnalyzeVariances_DefaultsAreUnwired(t *testing.T) {
	m := Metrics{CostPerformanceIndex: 0.85, SchedulePerformanceIndex: 0.95}

	va := newTestCalculator().AnalyzeVariances("p", m, nil, nil)
	if va.Cost.Wired || va.Schedule.Wired {
		t.Error("default breakdowns must report Wired=false")
	}
	if va.Performance.Quality.Wired || va.Performance.ResourceUtilization.Wired {
		t.Error("quality and resource sub-metrics must report Wired=false")
	}
	if va.Cost.Categories == nil || va.Schedule.DelayedTasks == nil {
		t.Error("unwired results must carry empty, non-nil lists")
	}
	if va.Performance.EfficiencyTrend != 0.85 || va.Performance.ProductivityIndex != 0.95 {
		t.Errorf("performance: want 0.85/0.95, got %v/%v", va.Performance.EfficiencyTrend, va.Performance.ProductivityIndex)
	}
	if !va.AnalysisDate.Equal(fixedNow) {
		t.Errorf("analysis date: want %v, got %v", fixedNow, va.AnalysisDate)
	}
}

func TestRecommend(t *testing.T) {
	tests := []struct {
		name          string
		cpi, spi      float64
		wantImmediate int
		wantShortTerm int
	}{
		{"healthy", 1.0, 1.0, 0, 0},
		{"at floor", 0.9, 0.9, 0, 0},
		{"cost problem", 0.85, 1.0, 1, 1},
		{"schedule problem", 1.0, 0.7, 1, 1},
		{"both", 0.5, 0.5, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Recommend(Metrics{CostPerformanceIndex: tt.cpi, SchedulePerformanceIndex: tt.spi})
			if len(r.Immediate) != tt.wantImmediate || len(r.ShortTerm) != tt.wantShortTerm {
				t.Errorf("want %d immediate/%d short term, got %d/%d",
					tt.wantImmediate, tt.wantShortTerm, len(r.Immediate), len(r.ShortTerm))
			}
			if len(r.LongTerm) != 0 {
				t.Errorf("long term: want none, got %v", r.LongTerm)
			}
			if r.IsEmpty() != (tt.wantImmediate == 0) {
				t.Errorf("IsEmpty() = %v", r.IsEmpty())
			}
		})
	}
}

func TestCostEntryBreakdown(t *testing.T) {
	entries := []CostEntry{
		{ID: "1", Category: "materials", PlannedAmount: 1000, ActualAmount: 900},
		{ID: "2", Category: "labor", PlannedAmount: 2000, ActualAmount: 2100},
		{ID: "3", Category: "labor", PlannedAmount: 1000, ActualAmount: 1300},
		{ID: "4", Category: "equipment", PlannedAmount: 500, ActualAmount: 540},
	}

	calc := newTestCalculator(WithCostBreakdown(CostEntryBreakdown{}))
	cost := calc.AnalyzeVariances("p", Metrics{}, nil, entries).Cost

	if !cost.Wired {
		t.Fatal("expected wired cost analysis")
	}
	wantOrder := []string{"equipment", "labor", "materials"}
	if len(cost.Categories) != len(wantOrder) {
		t.Fatalf("categories: want %d, got %d", len(wantOrder), len(cost.Categories))
	}
	for i, name := range wantOrder {
		if cost.Categories[i].Category != name {
			t.Errorf("category %d: want %s, got %s", i, name, cost.Categories[i].Category)
		}
	}

	labor := cost.Categories[1]
	if labor.Planned != 3000 || labor.Actual != 3400 || labor.Variance != -400 {
		t.Errorf("labor totals: got %+v", labor)
	}

	if len(cost.MajorVariances) != 1 || cost.MajorVariances[0].Category != "labor" {
		t.Errorf("major variances: want [labor], got %+v", cost.MajorVariances)
	}
	if cost.TotalVariance != 4500-4840 {
		t.Errorf("total variance: want %v, got %v", 4500-4840, cost.TotalVariance)
	}
}

func TestTaskScheduleBreakdown(t *testing.T) {
	tasks := []TaskProgress{
		{ID: "on-track", PlannedValue: 100, PercentComplete: 100, PlannedStartDate: date(2025, 1, 1), PlannedEndDate: date(2025, 1, 11)},
		{ID: "slightly-late", PlannedValue: 100, PercentComplete: 40, PlannedStartDate: date(2025, 1, 1), PlannedEndDate: date(2025, 1, 11)},
		{ID: "very-late", PlannedValue: 100, PercentComplete: 0, PlannedStartDate: date(2025, 1, 1), PlannedEndDate: date(2025, 1, 21)},
		{ID: "not-started", PlannedValue: 100, PercentComplete: 0, PlannedStartDate: date(2025, 3, 1), PlannedEndDate: date(2025, 4, 1)},
	}
	m := Metrics{StatusDate: date(2025, 1, 11), ScheduleVariance: -250}

	calc := newTestCalculator(WithScheduleBreakdown(TaskScheduleBreakdown{}))
	sched := calc.AnalyzeVariances("p", m, tasks, nil).Schedule

	if !sched.Wired {
		t.Fatal("expected wired schedule analysis")
	}
	if len(sched.DelayedTasks) != 2 {
		t.Fatalf("delayed tasks: want 2, got %d: %+v", len(sched.DelayedTasks), sched.DelayedTasks)
	}
	if sched.DelayedTasks[0].TaskID != "slightly-late" {
		t.Errorf("largest lag first: want slightly-late (60 points), got %s", sched.DelayedTasks[0].TaskID)
	}
	if !approx(sched.DelayedTasks[1].LagPercent, 50) || !approx(sched.DelayedTasks[1].LagDays, 10) {
		t.Errorf("very-late lag: got %+v", sched.DelayedTasks[1])
	}
	if sched.VarianceDays != 10 {
		t.Errorf("variance days: want 10, got %v", sched.VarianceDays)
	}
	if sched.TotalVariance != -250 {
		t.Errorf("total variance: want -250, got %v", sched.TotalVariance)
	}
}
