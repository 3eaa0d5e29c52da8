package evm

import (
	"fmt"
	"math"
	"time"
)

// HealthStatus is the overall condition of a project derived from CPI and SPI.
type HealthStatus string

const (
	HealthExcellent HealthStatus = "excellent"
	HealthGood      HealthStatus = "good"
	HealthWarning   HealthStatus = "warning"
	HealthCritical  HealthStatus = "critical"
)

// RiskRating is the delivery risk implied by the performance indices.
type RiskRating string

const (
	RiskLow      RiskRating = "low"
	RiskMedium   RiskRating = "medium"
	RiskHigh     RiskRating = "high"
	RiskCritical RiskRating = "critical"
)

// CostStatus describes the sign of the cost variance.
type CostStatus string

const (
	UnderBudget CostStatus = "under_budget"
	OverBudget  CostStatus = "over_budget"
)

// ScheduleStatus describes the sign of the schedule variance.
type ScheduleStatus string

const (
	AheadOfSchedule ScheduleStatus = "ahead_of_schedule"
	BehindSchedule  ScheduleStatus = "behind_schedule"
)

// Health rates a snapshot: excellent when both indices reach 0.95, good when
// both reach 0.90, warning when either reaches 0.80.
func Health(m Metrics) HealthStatus {
	cpi, spi := m.CostPerformanceIndex, m.SchedulePerformanceIndex
	switch {
	case cpi >= 0.95 && spi >= 0.95:
		return HealthExcellent
	case cpi >= 0.90 && spi >= 0.90:
		return HealthGood
	case cpi >= 0.80 || spi >= 0.80:
		return HealthWarning
	default:
		return HealthCritical
	}
}

// RiskLevel rates by the weaker of the two indices.
func RiskLevel(m Metrics) RiskRating {
	weakest := math.Min(m.CostPerformanceIndex, m.SchedulePerformanceIndex)
	switch {
	case weakest < 0.8:
		return RiskCritical
	case weakest < 0.9:
		return RiskHigh
	case weakest < 0.95:
		return RiskMedium
	default:
		return RiskLow
	}
}

// KeyFindings reports the cost overrun and schedule delay percentages when
// the corresponding index is below 1.
func KeyFindings(m Metrics) []string {
	findings := []string{}
	if m.CostPerformanceIndex < 1 {
		findings = append(findings, fmt.Sprintf("Cost overrun of %.1f%%", (1-m.CostPerformanceIndex)*100))
	}
	if m.SchedulePerformanceIndex < 1 {
		findings = append(findings, fmt.Sprintf("Schedule delay of %.1f%%", (1-m.SchedulePerformanceIndex)*100))
	}
	return findings
}

// CostStatusOf classifies a cost variance.
func CostStatusOf(cv float64) CostStatus {
	if cv >= 0 {
		return UnderBudget
	}
	return OverBudget
}

// ScheduleStatusOf classifies a schedule variance.
func ScheduleStatusOf(sv float64) ScheduleStatus {
	if sv >= 0 {
		return AheadOfSchedule
	}
	return BehindSchedule
}

// VarianceDays converts a schedule variance into days by scaling the planned
// duration with SV/BAC. It returns 0 when BAC is not positive.
func VarianceDays(sv, bac float64, plannedStart, plannedEnd time.Time) float64 {
	if bac <= 0 {
		return 0
	}
	totalDays := plannedEnd.Sub(plannedStart).Hours() / 24
	return math.Floor(sv/bac*totalDays + 0.5)
}
