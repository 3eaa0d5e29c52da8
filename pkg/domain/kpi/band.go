package kpi

// Band classifies value against a threshold tuple. For higher-is-better
// indicators the bounds must satisfy excellent >= target >= warning >=
// critical; lowerIsBetter reverses the ordering. The critical bound is the
// edge of the scale and is not consulted: anything short of warning is
// critical.
func Band(value, target, excellent, warning, critical float64, lowerIsBetter bool) Status {
	if lowerIsBetter {
		switch {
		case value <= excellent:
			return StatusExcellent
		case value <= target:
			return StatusGood
		case value <= warning:
			return StatusWarning
		default:
			return StatusCritical
		}
	}

	switch {
	case value >= excellent:
		return StatusExcellent
	case value >= target:
		return StatusGood
	case value >= warning:
		return StatusWarning
	default:
		return StatusCritical
	}
}

// rank orders statuses from worst to best.
func (s Status) rank() int {
	switch s {
	case StatusExcellent:
		return 3
	case StatusGood:
		return 2
	case StatusWarning:
		return 1
	default:
		return 0
	}
}

// Better reports whether s is a strictly better band than other.
func (s Status) Better(other Status) bool {
	return s.rank() > other.rank()
}
