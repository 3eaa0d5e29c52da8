package evm

import (
	"encoding/json"
	"math"
)

type metricsAlias Metrics

// metricsJSON shadows the TCPI field so the +Inf sentinel can travel as null.
type metricsJSON struct {
	metricsAlias
	TCPI          *float64 `json:"tcpi"`
	TCPIUnbounded bool     `json:"tcpi_unbounded,omitempty"`
}

// MarshalJSON encodes an unbounded TCPI as null with tcpi_unbounded set,
// since JSON has no representation for infinity.
func (m Metrics) MarshalJSON() ([]byte, error) {
	out := metricsJSON{metricsAlias: metricsAlias(m)}
	if math.IsInf(m.ToCompletePerformanceIndex, 0) || math.IsNaN(m.ToCompletePerformanceIndex) {
		out.TCPIUnbounded = true
	} else {
		tcpi := m.ToCompletePerformanceIndex
		out.TCPI = &tcpi
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores +Inf for a null or unbounded TCPI.
func (m *Metrics) UnmarshalJSON(data []byte) error {
	var in metricsJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*m = Metrics(in.metricsAlias)
	switch {
	case in.TCPIUnbounded || in.TCPI == nil:
		m.ToCompletePerformanceIndex = math.Inf(1)
	default:
		m.ToCompletePerformanceIndex = *in.TCPI
	}
	return nil
}
