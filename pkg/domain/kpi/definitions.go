package kpi

import (
	"fmt"
)

// Indicator ids.
const (
	IDROI                  = "roi"
	IDBudgetAccuracy       = "budget_accuracy"
	IDProfitMargin         = "profit_margin"
	IDCPI                  = "cpi"
	IDOnTimeDelivery       = "on_time_delivery"
	IDSPI                  = "spi"
	IDCycleTime            = "cycle_time"
	IDCustomerSatisfaction = "customer_satisfaction"
	IDReworkRate           = "rework_rate"
	IDFirstTimeRight       = "first_time_right"
	IDResourceUtilization  = "resource_utilization"
	IDProductivity         = "productivity"
	IDSkillEfficiency      = "skill_efficiency"
	IDRiskExposure         = "risk_exposure"
	IDRiskMitigation       = "risk_mitigation"
	IDIssueResolution      = "issue_resolution"
)

// Definition is the static description and threshold tuple of an indicator.
//
// The trend compares the value with two margins: for higher-is-better
// indicators the trend is up above TrendUp and down below TrendDown, and
// the comparisons flip when LowerIsBetter is set.
type Definition struct {
	ID            string
	Name          string
	Category      Category
	Unit          string
	Target        float64
	Excellent     float64
	Warning       float64
	Critical      float64
	LowerIsBetter bool
	TrendUp       float64
	TrendDown     float64
	Description   string
	Calculation   string
}

// Status bands value with the definition thresholds.
func (d Definition) Status(value float64) Status {
	return Band(value, d.Target, d.Excellent, d.Warning, d.Critical, d.LowerIsBetter)
}

// Trend classifies value against the trend margins.
func (d Definition) Trend(value float64) Trend {
	if d.LowerIsBetter {
		switch {
		case value < d.TrendUp:
			return TrendUp
		case value > d.TrendDown:
			return TrendDown
		default:
			return TrendStable
		}
	}
	switch {
	case value > d.TrendUp:
		return TrendUp
	case value < d.TrendDown:
		return TrendDown
	default:
		return TrendStable
	}
}

// Validate checks that the thresholds and trend margins are ordered in the
// direction of LowerIsBetter, which keeps banding monotonic.
func (d Definition) Validate() error {
	ordered := func(a, b float64) bool { return a >= b }
	if d.LowerIsBetter {
		ordered = func(a, b float64) bool { return a <= b }
	}
	if !ordered(d.Excellent, d.Target) || !ordered(d.Target, d.Warning) || !ordered(d.Warning, d.Critical) {
		return fmt.Errorf("kpi %s: thresholds out of order (excellent=%g target=%g warning=%g critical=%g lower_is_better=%t)",
			d.ID, d.Excellent, d.Target, d.Warning, d.Critical, d.LowerIsBetter)
	}
	if !ordered(d.TrendUp, d.TrendDown) {
		return fmt.Errorf("kpi %s: trend margins out of order (up=%g down=%g)", d.ID, d.TrendUp, d.TrendDown)
	}
	return nil
}

var definitions = []Definition{
	{
		ID: IDROI, Name: "Return on Investment", Category: CategoryFinancial, Unit: "%",
		Target: 15, Excellent: 20, Warning: 10, Critical: 5,
		TrendUp: 15, TrendDown: 10,
		Description: "Return earned on the cost invested in projects",
		Calculation: "(revenue - cost) / cost × 100",
	},
	{
		ID: IDBudgetAccuracy, Name: "Budget Accuracy", Category: CategoryFinancial, Unit: "%",
		Target: 95, Excellent: 98, Warning: 90, Critical: 80,
		TrendUp: 95, TrendDown: 85,
		Description: "Accuracy of budget estimates compared with actual spend",
		Calculation: "(1 - |budget - spent| / budget) × 100, averaged over projects",
	},
	{
		ID: IDProfitMargin, Name: "Profit Margin", Category: CategoryFinancial, Unit: "%",
		Target: 20, Excellent: 25, Warning: 15, Critical: 10,
		TrendUp: 20, TrendDown: 15,
		Description: "Share of revenue retained as profit",
		Calculation: "(revenue - cost) / revenue × 100",
	},
	{
		ID: IDCPI, Name: "Cost Performance Index", Category: CategoryFinancial,
		Target: 1.0, Excellent: 1.1, Warning: 0.95, Critical: 0.85,
		TrendUp: 1.0, TrendDown: 0.95,
		Description: "Budget efficiency across projects",
		Calculation: "earned value / actual cost, averaged over projects",
	},
	{
		ID: IDOnTimeDelivery, Name: "On-Time Delivery", Category: CategorySchedule, Unit: "%",
		Target: 90, Excellent: 95, Warning: 85, Critical: 75,
		TrendUp: 90, TrendDown: 80,
		Description: "Share of completed projects delivered by their planned end date",
		Calculation: "projects delivered on time / completed projects × 100",
	},
	{
		ID: IDSPI, Name: "Schedule Performance Index", Category: CategorySchedule,
		Target: 1.0, Excellent: 1.1, Warning: 0.95, Critical: 0.85,
		TrendUp: 1.0, TrendDown: 0.95,
		Description: "Schedule efficiency across projects",
		Calculation: "earned value / planned value, averaged over projects",
	},
	{
		ID: IDCycleTime, Name: "Average Cycle Time", Category: CategorySchedule, Unit: "days",
		Target: 60, Excellent: 45, Warning: 75, Critical: 90, LowerIsBetter: true,
		TrendUp: 60, TrendDown: 75,
		Description: "Average time taken to complete a project",
		Calculation: "sum of project durations / completed projects",
	},
	{
		ID: IDCustomerSatisfaction, Name: "Customer Satisfaction", Category: CategoryQuality, Unit: "/5",
		Target: 4.5, Excellent: 4.8, Warning: 4.0, Critical: 3.5,
		TrendUp: 4.5, TrendDown: 4.0,
		Description: "Average customer rating of projects",
		Calculation: "sum of ratings / number of ratings",
	},
	{
		ID: IDReworkRate, Name: "Rework Rate", Category: CategoryQuality, Unit: "%",
		Target: 5, Excellent: 3, Warning: 8, Critical: 15, LowerIsBetter: true,
		TrendUp: 5, TrendDown: 10,
		Description: "Share of tasks that needed rework",
		Calculation: "reworked tasks / total tasks × 100",
	},
	{
		ID: IDFirstTimeRight, Name: "First Time Right", Category: CategoryQuality, Unit: "%",
		Target: 95, Excellent: 98, Warning: 90, Critical: 85,
		TrendUp: 95, TrendDown: 90,
		Description: "Share of tasks done correctly the first time",
		Calculation: "(total tasks - reworked tasks) / total tasks × 100",
	},
	{
		ID: IDResourceUtilization, Name: "Resource Utilization", Category: CategoryResources, Unit: "%",
		Target: 85, Excellent: 90, Warning: 80, Critical: 70,
		TrendUp: 85, TrendDown: 75,
		Description: "Share of available resource hours in use",
		Calculation: "used hours / available hours × 100",
	},
	{
		ID: IDProductivity, Name: "Productivity", Category: CategoryResources, Unit: "%",
		Target: 100, Excellent: 110, Warning: 95, Critical: 85,
		TrendUp: 100, TrendDown: 90,
		Description: "Team productivity",
		Calculation: "completed tasks / planned tasks × 100",
	},
	{
		ID: IDSkillEfficiency, Name: "Skill Efficiency", Category: CategoryResources, Unit: "%",
		Target: 90, Excellent: 95, Warning: 85, Critical: 75,
		TrendUp: 90, TrendDown: 80,
		Description: "How well team skills cover project requirements",
		Calculation: "required skills available / required skills × 100",
	},
	{
		ID: IDRiskExposure, Name: "Risk Exposure", Category: CategoryRisk, Unit: "%",
		Target: 20, Excellent: 15, Warning: 25, Critical: 35, LowerIsBetter: true,
		TrendUp: 20, TrendDown: 30,
		Description: "Share of portfolio value exposed to active risks",
		Calculation: "exposure of active risks / total portfolio budget × 100",
	},
	{
		ID: IDRiskMitigation, Name: "Risk Mitigation Effectiveness", Category: CategoryRisk, Unit: "%",
		Target: 80, Excellent: 90, Warning: 75, Critical: 65,
		TrendUp: 80, TrendDown: 70,
		Description: "Effectiveness of risk mitigation",
		Calculation: "mitigated or resolved risks / identified risks × 100",
	},
	{
		ID: IDIssueResolution, Name: "Issue Resolution Speed", Category: CategoryRisk, Unit: "days",
		Target: 5, Excellent: 3, Warning: 7, Critical: 10, LowerIsBetter: true,
		TrendUp: 5, TrendDown: 7,
		Description: "Average time needed to resolve an issue",
		Calculation: "sum of resolution times / resolved issues",
	},
}

var definitionIndex = map[string]int{}

func init() {
	for i, d := range definitions {
		if err := d.Validate(); err != nil {
			panic(err)
		}
		if _, dup := definitionIndex[d.ID]; dup {
			panic(fmt.Sprintf("kpi %s: duplicate definition", d.ID))
		}
		definitionIndex[d.ID] = i
	}
}

// Definitions returns a copy of every indicator definition in dashboard order.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Lookup returns the definition of id.
func Lookup(id string) (Definition, bool) {
	i, ok := definitionIndex[id]
	if !ok {
		return Definition{}, false
	}
	return definitions[i], true
}
