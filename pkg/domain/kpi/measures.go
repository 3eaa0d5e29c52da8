package kpi

import "math"

// Measure computes the raw value of one indicator. ok is false when the input
// carries no data for it; such indicators are reported as unavailable rather
// than given a placeholder value.
type Measure interface {
	Measure(in Input) (value float64, ok bool)
}

// MeasureFunc adapts a function to the Measure interface.
type MeasureFunc func(in Input) (float64, bool)

// Measure calls f(in).
func (f MeasureFunc) Measure(in Input) (float64, bool) {
	return f(in)
}

func builtinMeasures() map[string]Measure {
	return map[string]Measure{
		IDROI:                  MeasureFunc(roi),
		IDBudgetAccuracy:       MeasureFunc(budgetAccuracy),
		IDProfitMargin:         MeasureFunc(profitMargin),
		IDCPI:                  MeasureFunc(averageCPI),
		IDOnTimeDelivery:       MeasureFunc(onTimeDelivery),
		IDSPI:                  MeasureFunc(averageSPI),
		IDCycleTime:            MeasureFunc(averageCycleTime),
		IDCustomerSatisfaction: MeasureFunc(customerSatisfaction),
		IDReworkRate:           MeasureFunc(reworkRate),
		IDFirstTimeRight:       MeasureFunc(firstTimeRight),
		IDResourceUtilization:  MeasureFunc(resourceUtilization),
		IDProductivity:         MeasureFunc(productivity),
		IDSkillEfficiency:      MeasureFunc(skillEfficiency),
		IDRiskExposure:         MeasureFunc(riskExposure),
		IDRiskMitigation:       MeasureFunc(riskMitigation),
		IDIssueResolution:      MeasureFunc(issueResolution),
	}
}

const dayHours = 24

// projectCost is the recorded cost of a project, falling back to budget spend.
func projectCost(p Project) float64 {
	if p.Costs > 0 {
		return p.Costs
	}
	return p.Budget.Spent
}

// earning returns the revenue and cost totals of projects with revenue.
func earning(projects []Project) (revenue, cost float64, ok bool) {
	for _, p := range projects {
		if p.Revenue <= 0 {
			continue
		}
		revenue += p.Revenue
		cost += projectCost(p)
		ok = true
	}
	return revenue, cost, ok
}

func roi(in Input) (float64, bool) {
	revenue, cost, ok := earning(in.Projects)
	if !ok || cost <= 0 {
		return 0, false
	}
	return (revenue - cost) / cost * 100, true
}

func profitMargin(in Input) (float64, bool) {
	revenue, cost, ok := earning(in.Projects)
	if !ok {
		return 0, false
	}
	return (revenue - cost) / revenue * 100, true
}

// budgetAccuracy skips projects without an approved budget.
func budgetAccuracy(in Input) (float64, bool) {
	var sum float64
	n := 0
	for _, p := range in.Projects {
		if p.Budget.Total <= 0 {
			continue
		}
		sum += (1 - math.Abs(p.Budget.Total-p.Budget.Spent)/p.Budget.Total) * 100
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func averageCPI(in Input) (float64, bool) {
	if len(in.Metrics) == 0 {
		return 0, false
	}
	var sum float64
	for _, m := range in.Metrics {
		sum += m.CostPerformanceIndex
	}
	return sum / float64(len(in.Metrics)), true
}

func averageSPI(in Input) (float64, bool) {
	if len(in.Metrics) == 0 {
		return 0, false
	}
	var sum float64
	for _, m := range in.Metrics {
		sum += m.SchedulePerformanceIndex
	}
	return sum / float64(len(in.Metrics)), true
}

// completed returns the delivered projects whose delivery date falls in the
// reporting timeframe.
func completed(in Input) []Project {
	var out []Project
	for _, p := range in.Projects {
		if p.IsCompleted() && in.Timeframe.Contains(p.DeliveredAt()) {
			out = append(out, p)
		}
	}
	return out
}

func onTimeDelivery(in Input) (float64, bool) {
	done := completed(in)
	if len(done) == 0 {
		return 0, false
	}
	onTime := 0
	for _, p := range done {
		if !p.DeliveredAt().After(p.EndDate) {
			onTime++
		}
	}
	return float64(onTime) / float64(len(done)) * 100, true
}

func averageCycleTime(in Input) (float64, bool) {
	done := completed(in)
	if len(done) == 0 {
		return 0, false
	}
	var days float64
	for _, p := range done {
		days += p.DeliveredAt().Sub(p.StartDate).Hours() / dayHours
	}
	return days / float64(len(done)), true
}

func customerSatisfaction(in Input) (float64, bool) {
	var sum float64
	n := 0
	for _, p := range in.Projects {
		for _, r := range p.Ratings {
			sum += r
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func reworked(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if t.ReworkCount > 0 {
			n++
		}
	}
	return n
}

func reworkRate(in Input) (float64, bool) {
	if len(in.Tasks) == 0 {
		return 0, false
	}
	return float64(reworked(in.Tasks)) / float64(len(in.Tasks)) * 100, true
}

func firstTimeRight(in Input) (float64, bool) {
	if len(in.Tasks) == 0 {
		return 0, false
	}
	total := len(in.Tasks)
	return float64(total-reworked(in.Tasks)) / float64(total) * 100, true
}

func resourceUtilization(in Input) (float64, bool) {
	var available, used float64
	for _, p := range in.Projects {
		available += p.Resources.AvailableHours
		used += p.Resources.UsedHours
	}
	if available <= 0 {
		return 0, false
	}
	return used / available * 100, true
}

func productivity(in Input) (float64, bool) {
	if len(in.Tasks) == 0 {
		return 0, false
	}
	done := 0
	for _, t := range in.Tasks {
		if t.Status == TaskCompleted {
			done++
		}
	}
	return float64(done) / float64(len(in.Tasks)) * 100, true
}

func skillEfficiency(in Input) (float64, bool) {
	required, covered := 0, 0
	for _, p := range in.Projects {
		team := make(map[string]bool, len(p.TeamSkills))
		for _, s := range p.TeamSkills {
			team[s] = true
		}
		for _, s := range p.RequiredSkills {
			required++
			if team[s] {
				covered++
			}
		}
	}
	if required == 0 {
		return 0, false
	}
	return float64(covered) / float64(required) * 100, true
}

func riskExposure(in Input) (float64, bool) {
	var exposure, portfolio float64
	registered := false
	for _, p := range in.Projects {
		portfolio += p.Budget.Total
		for _, r := range p.Risks {
			registered = true
			if r.Status == RiskActive {
				exposure += r.Exposure
			}
		}
	}
	if !registered || portfolio <= 0 {
		return 0, false
	}
	return exposure / portfolio * 100, true
}

func riskMitigation(in Input) (float64, bool) {
	total, handled := 0, 0
	for _, p := range in.Projects {
		for _, r := range p.Risks {
			total++
			if r.Status == RiskMitigated || r.Status == RiskResolved {
				handled++
			}
		}
	}
	if total == 0 {
		return 0, false
	}
	return float64(handled) / float64(total) * 100, true
}

func issueResolution(in Input) (float64, bool) {
	var days float64
	n := 0
	for _, p := range in.Projects {
		for _, is := range p.Issues {
			if is.ResolvedAt.IsZero() {
				continue
			}
			days += is.ResolvedAt.Sub(is.OpenedAt).Hours() / dayHours
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return days / float64(n), true
}
