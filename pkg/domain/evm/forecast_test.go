package evm

import "testing"

func TestForecasts(t *testing.T) {
	m, err := newTestCalculator().Calculate(scenarioA())
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	scenarios := newTestCalculator().Forecasts(m)
	if len(scenarios) != 2 {
		t.Fatalf("expected 2 scenarios, got %d", len(scenarios))
	}

	current := scenarios[0]
	if current.Method != ForecastCurrentPerformance {
		t.Errorf("first scenario: want %s, got %s", ForecastCurrentPerformance, current.Method)
	}
	if current.EstimateAtCompletion != m.EstimateAtCompletion || current.EstimateToComplete != m.EstimateToComplete {
		t.Error("current performance scenario must copy the metric estimates")
	}
	if !current.ForecastCompletionDate.Equal(m.ForecastCompletionDate) {
		t.Error("current performance scenario must copy the forecast date")
	}
	// CPI 0.9375 -> 43.75, SPI 0.9 -> 40, average 41.875
	if current.Confidence != 42 {
		t.Errorf("confidence: want 42, got %v", current.Confidence)
	}
	if len(current.Assumptions) == 0 {
		t.Error("expected assumptions")
	}

	planned := scenarios[1]
	if planned.Method != ForecastPlannedPerformance {
		t.Errorf("second scenario: want %s, got %s", ForecastPlannedPerformance, planned.Method)
	}
	if planned.EstimateAtCompletion != m.BudgetAtCompletion {
		t.Errorf("planned EAC: want BAC %v, got %v", m.BudgetAtCompletion, planned.EstimateAtCompletion)
	}
	if planned.EstimateToComplete != m.BudgetAtCompletion-m.ActualCost {
		t.Errorf("planned ETC: want %v, got %v", m.BudgetAtCompletion-m.ActualCost, planned.EstimateToComplete)
	}
	if !planned.ForecastCompletionDate.Equal(m.PlannedCompletionDate) {
		t.Error("planned scenario must use the planned completion date")
	}
	if planned.Confidence != 50 {
		t.Errorf("planned confidence: want 50, got %v", planned.Confidence)
	}
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		name     string
		cpi, spi float64
		want     float64
	}{
		{"both zero", 0, 0, 0},
		{"at midpoint", 0.5, 0.5, 0},
		{"on plan", 1.0, 1.0, 50},
		{"clamped high", 2.0, 2.0, 100},
		{"mixed", 0.4, 1.2, 35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Confidence(tt.cpi, tt.spi); got != tt.want {
				t.Errorf("Confidence(%v, %v) = %v, want %v", tt.cpi, tt.spi, got, tt.want)
			}
		})
	}
}
