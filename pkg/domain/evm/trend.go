package evm

// TrendDirection classifies the short-window movement of an index.
type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendStable    TrendDirection = "stable"
	TrendDeclining TrendDirection = "declining"
)

const (
	// trendWindow is the number of most recent history points considered.
	trendWindow = 3
	// trendTolerance is the relative change treated as noise.
	trendTolerance = 0.05
)

// TrendAnalysis is the direction of cost, schedule and overall performance.
type TrendAnalysis struct {
	Cost     TrendDirection `json:"cost_trend"`
	Schedule TrendDirection `json:"schedule_trend"`
	Overall  TrendDirection `json:"overall_trend"`
}

// AnalyzeTrends classifies the last three points of history. Fewer than two
// points yield stable for every direction.
func AnalyzeTrends(history []HistoryPoint) TrendAnalysis {
	if len(history) < 2 {
		return TrendAnalysis{Cost: TrendStable, Schedule: TrendStable, Overall: TrendStable}
	}

	cpis, spis := recentSeries(history)
	cost := Direction(cpis)
	schedule := Direction(spis)

	overall := TrendStable
	switch {
	case cost == TrendImproving && schedule == TrendImproving:
		overall = TrendImproving
	case cost == TrendDeclining || schedule == TrendDeclining:
		overall = TrendDeclining
	}

	return TrendAnalysis{Cost: cost, Schedule: schedule, Overall: overall}
}

// recentSeries returns the CPI and SPI values of the trend window.
func recentSeries(history []HistoryPoint) (cpis, spis []float64) {
	recent := history
	if len(recent) > trendWindow {
		recent = recent[len(recent)-trendWindow:]
	}
	cpis = make([]float64, len(recent))
	spis = make([]float64, len(recent))
	for i, p := range recent {
		cpis[i] = p.CPI
		spis[i] = p.SPI
	}
	return cpis, spis
}

// relativeChange returns (last-first)/first, or 0 when undefined.
func relativeChange(values []float64) float64 {
	if len(values) < 2 || values[0] == 0 {
		return 0
	}
	return (values[len(values)-1] - values[0]) / values[0]
}

// Direction compares the last value of a series with its first. A relative
// change beyond ±5% is a trend; a zero first value classifies by sign alone.
func Direction(values []float64) TrendDirection {
	if len(values) < 2 {
		return TrendStable
	}
	first := values[0]
	last := values[len(values)-1]

	if first == 0 {
		switch {
		case last > 0:
			return TrendImproving
		case last < 0:
			return TrendDeclining
		default:
			return TrendStable
		}
	}

	change := (last - first) / first
	switch {
	case change > trendTolerance:
		return TrendImproving
	case change < -trendTolerance:
		return TrendDeclining
	default:
		return TrendStable
	}
}
