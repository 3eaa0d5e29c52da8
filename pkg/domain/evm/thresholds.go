package evm

// Thresholds holds the bounds used for alerting. Values are copied into a
// Calculator and never modified afterwards.
type Thresholds struct {
	CPIWarning  float64 `json:"cpi_warning" yaml:"cpi_warning"`
	CPICritical float64 `json:"cpi_critical" yaml:"cpi_critical"`
	SPIWarning  float64 `json:"spi_warning" yaml:"spi_warning"`
	SPICritical float64 `json:"spi_critical" yaml:"spi_critical"`
	CVWarning   float64 `json:"cv_warning" yaml:"cv_warning"`
	CVCritical  float64 `json:"cv_critical" yaml:"cv_critical"`
	SVWarning   float64 `json:"sv_warning" yaml:"sv_warning"`   // percent of PV
	SVCritical  float64 `json:"sv_critical" yaml:"sv_critical"` // percent of PV
}

// DefaultThresholds returns the standard alerting bounds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		CPIWarning:  0.9,
		CPICritical: 0.8,
		SPIWarning:  0.9,
		SPICritical: 0.8,
		CVWarning:   -10000,
		CVCritical:  -50000,
		SVWarning:   -5,
		SVCritical:  -15,
	}
}

// Validate checks that all bounds are finite and that every critical bound
// is at or below its warning bound.
func (t Thresholds) Validate() error {
	verr := &ValidationError{}
	pairs := []struct {
		name              string
		warning, critical float64
	}{
		{"cpi", t.CPIWarning, t.CPICritical},
		{"spi", t.SPIWarning, t.SPICritical},
		{"cv", t.CVWarning, t.CVCritical},
		{"sv", t.SVWarning, t.SVCritical},
	}
	for _, p := range pairs {
		if !finite(p.warning) || !finite(p.critical) {
			verr.add("%s thresholds must be finite numbers", p.name)
			continue
		}
		if p.critical > p.warning {
			verr.add("%s critical threshold (%g) must not exceed the warning threshold (%g)", p.name, p.critical, p.warning)
		}
	}
	return verr.orNil()
}
