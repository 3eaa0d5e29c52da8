package evm

import (
	"fmt"
	"time"
)

// AlertType classifies what an alert is about.
type AlertType string

const (
	AlertCostOverrun        AlertType = "cost_overrun"
	AlertScheduleDelay      AlertType = "schedule_delay"
	AlertPerformanceDecline AlertType = "performance_decline"
	AlertBudgetExhaustion   AlertType = "budget_exhaustion"
)

// Severity ranks alerts.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Alert is a threshold breach detected in a metrics snapshot. The engine
// creates alerts active and unread; consumers move them through the
// lifecycle in alert_fsm.go.
type Alert struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"project_id"`
	Type         AlertType `json:"type"`
	Severity     Severity  `json:"severity"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	Threshold    float64   `json:"threshold"`
	CurrentValue float64   `json:"current_value"`
	CreatedAt    time.Time `json:"created_at"`
	IsRead       bool      `json:"is_read"`
	IsActive     bool      `json:"is_active"`
}

// GenerateAlerts evaluates m against the calculator thresholds. Rules are
// independent per metric, so one snapshot can raise several alerts: the CPI
// tier, the SPI tier and the critical cost variance rule. The CV warning tier
// and the SV thresholds are only evaluated with WithExtendedAlertRules.
func (c *Calculator) GenerateAlerts(projectID string, m Metrics) []Alert {
	th := c.thresholds
	alerts := []Alert{}

	cpi := m.CostPerformanceIndex
	if cpi <= th.CPICritical {
		alerts = append(alerts, c.newAlert(projectID, AlertCostOverrun, SeverityCritical,
			"Critical cost overrun",
			fmt.Sprintf("Cost performance index (%.2f) is at or below the critical threshold (%g)", cpi, th.CPICritical),
			th.CPICritical, cpi))
	} else if cpi <= th.CPIWarning {
		alerts = append(alerts, c.newAlert(projectID, AlertCostOverrun, SeverityHigh,
			"Cost overrun warning",
			fmt.Sprintf("Cost performance index (%.2f) is at or below the warning threshold (%g)", cpi, th.CPIWarning),
			th.CPIWarning, cpi))
	}

	spi := m.SchedulePerformanceIndex
	if spi <= th.SPICritical {
		alerts = append(alerts, c.newAlert(projectID, AlertScheduleDelay, SeverityCritical,
			"Critical schedule delay",
			fmt.Sprintf("Schedule performance index (%.2f) is at or below the critical threshold (%g)", spi, th.SPICritical),
			th.SPICritical, spi))
	} else if spi <= th.SPIWarning {
		alerts = append(alerts, c.newAlert(projectID, AlertScheduleDelay, SeverityHigh,
			"Schedule delay warning",
			fmt.Sprintf("Schedule performance index (%.2f) is at or below the warning threshold (%g)", spi, th.SPIWarning),
			th.SPIWarning, spi))
	}

	cv := m.CostVariance
	if cv <= th.CVCritical {
		alerts = append(alerts, c.newAlert(projectID, AlertCostOverrun, SeverityCritical,
			"Critical cost variance",
			fmt.Sprintf("Cost variance (%.2f) exceeded the critical threshold (%.2f)", cv, th.CVCritical),
			th.CVCritical, cv))
	} else if c.extendedRules && cv <= th.CVWarning {
		alerts = append(alerts, c.newAlert(projectID, AlertCostOverrun, SeverityHigh,
			"Cost variance warning",
			fmt.Sprintf("Cost variance (%.2f) exceeded the warning threshold (%.2f)", cv, th.CVWarning),
			th.CVWarning, cv))
	}

	if c.extendedRules {
		alerts = append(alerts, c.extendedAlerts(projectID, m)...)
	}

	return alerts
}

// extendedAlerts covers schedule variance as a percentage of planned value
// and budget exhaustion.
func (c *Calculator) extendedAlerts(projectID string, m Metrics) []Alert {
	th := c.thresholds
	var alerts []Alert

	if m.PlannedValue > 0 {
		svPct := m.ScheduleVariance / m.PlannedValue * 100
		if svPct <= th.SVCritical {
			alerts = append(alerts, c.newAlert(projectID, AlertScheduleDelay, SeverityCritical,
				"Critical schedule variance",
				fmt.Sprintf("Schedule variance (%.1f%% of planned value) exceeded the critical threshold (%g%%)", svPct, th.SVCritical),
				th.SVCritical, svPct))
		} else if svPct <= th.SVWarning {
			alerts = append(alerts, c.newAlert(projectID, AlertScheduleDelay, SeverityHigh,
				"Schedule variance warning",
				fmt.Sprintf("Schedule variance (%.1f%% of planned value) exceeded the warning threshold (%g%%)", svPct, th.SVWarning),
				th.SVWarning, svPct))
		}
	}

	if m.BudgetAtCompletion > 0 && m.ActualCost >= m.BudgetAtCompletion && m.EarnedValue < m.BudgetAtCompletion {
		alerts = append(alerts, c.newAlert(projectID, AlertBudgetExhaustion, SeverityCritical,
			"Budget exhausted",
			fmt.Sprintf("Actual cost (%.2f) has consumed the budget (%.2f) before completion", m.ActualCost, m.BudgetAtCompletion),
			m.BudgetAtCompletion, m.ActualCost))
	}

	return alerts
}

// GenerateTrendAlerts raises a medium performance decline alert for each of
// CPI and SPI whose recent history is declining. CurrentValue carries the
// relative change over the trend window, or the absolute change when the
// window starts at zero.
func (c *Calculator) GenerateTrendAlerts(projectID string, history []HistoryPoint) []Alert {
	alerts := []Alert{}
	cpis, spis := recentSeries(history)

	if Direction(cpis) == TrendDeclining {
		alerts = append(alerts, c.declineAlert(projectID, "Cost", cpis))
	}
	if Direction(spis) == TrendDeclining {
		alerts = append(alerts, c.declineAlert(projectID, "Schedule", spis))
	}
	return alerts
}

func (c *Calculator) declineAlert(projectID, index string, values []float64) Alert {
	title := index + " performance declining"
	if values[0] == 0 {
		change := values[len(values)-1] - values[0]
		return c.newAlert(projectID, AlertPerformanceDecline, SeverityMedium, title,
			fmt.Sprintf("%s performance index changed by %.2f from zero over the last %d reporting periods", index, change, len(values)),
			0, change)
	}
	change := relativeChange(values)
	return c.newAlert(projectID, AlertPerformanceDecline, SeverityMedium, title,
		fmt.Sprintf("%s performance index changed by %.1f%% over the last %d reporting periods", index, change*100, len(values)),
		-trendTolerance, change)
}

func (c *Calculator) newAlert(projectID string, typ AlertType, sev Severity, title, message string, threshold, current float64) Alert {
	return Alert{
		ID:           c.newID(),
		ProjectID:    projectID,
		Type:         typ,
		Severity:     sev,
		Title:        title,
		Message:      message,
		Threshold:    threshold,
		CurrentValue: current,
		CreatedAt:    c.clock.Now(),
		IsRead:       false,
		IsActive:     true,
	}
}
