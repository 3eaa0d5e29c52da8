package evm

import "math"

// plannedScenarioConfidence is the fixed confidence of the return-to-plan scenario.
const plannedScenarioConfidence = 50

// Forecasts returns the current-performance and planned-performance
// completion scenarios for m.
func (c *Calculator) Forecasts(m Metrics) []ForecastScenario {
	return []ForecastScenario{
		{
			Method:                 ForecastCurrentPerformance,
			EstimateAtCompletion:   m.EstimateAtCompletion,
			EstimateToComplete:     m.EstimateToComplete,
			ForecastCompletionDate: m.ForecastCompletionDate,
			Confidence:             Confidence(m.CostPerformanceIndex, m.SchedulePerformanceIndex),
			Assumptions: []string{
				"Current performance continues",
				"No change in scope",
				"Resources remain available as planned",
			},
		},
		{
			Method:                 ForecastPlannedPerformance,
			EstimateAtCompletion:   m.BudgetAtCompletion,
			EstimateToComplete:     m.BudgetAtCompletion - m.ActualCost,
			ForecastCompletionDate: m.PlannedCompletionDate,
			Confidence:             plannedScenarioConfidence,
			Assumptions: []string{
				"Performance will improve to match the original plan",
				"All current issues will be resolved",
				"No additional risks will materialize",
			},
		},
	}
}

// Confidence maps CPI and SPI to a 0..100 score: each index contributes
// (index-0.5)*100 clamped to [0,100], and the two are averaged and rounded.
func Confidence(cpi, spi float64) float64 {
	return math.Round((indexConfidence(cpi) + indexConfidence(spi)) / 2)
}

func indexConfidence(index float64) float64 {
	return math.Max(0, math.Min(100, (index-0.5)*100))
}
