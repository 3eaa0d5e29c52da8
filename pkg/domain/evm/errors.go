package evm

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidInput indicates a structurally invalid calculation input.
// Numeric edge cases never produce it; they degrade to documented sentinels.
var ErrInvalidInput = errors.New("invalid evm input")

// ValidationError lists every structural problem found in an input.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid evm input: " + strings.Join(e.Problems, "; ")
}

// Is allows errors.Is to match ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func (e *ValidationError) add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

func (e *ValidationError) orNil() error {
	if len(e.Problems) == 0 {
		return nil
	}
	return e
}

// Validate checks identifiers, required dates and that every numeric field is
// a finite number.
func (in Input) Validate() error {
	verr := &ValidationError{}

	if !finite(in.TotalBudget) {
		verr.add("total budget must be a finite number")
	}
	if in.StatusDate.IsZero() {
		verr.add("status date is required")
	}
	if in.PlannedEndDate.IsZero() {
		verr.add("planned end date is required")
	}

	seen := make(map[string]bool, len(in.Tasks))
	for i, t := range in.Tasks {
		if strings.TrimSpace(t.ID) == "" {
			verr.add("task at index %d missing ID", i)
		} else if seen[t.ID] {
			verr.add("duplicate task ID: %s", t.ID)
		}
		seen[t.ID] = true

		if !finite(t.PlannedValue) {
			verr.add("task %q planned value must be a finite number", t.ID)
		}
		if !finite(t.ActualCost) {
			verr.add("task %q actual cost must be a finite number", t.ID)
		}
		if !finite(t.PercentComplete) || t.PercentComplete < 0 || t.PercentComplete > 100 {
			verr.add("task %q percent complete must be between 0 and 100", t.ID)
		}
		if t.PlannedStartDate.IsZero() || t.PlannedEndDate.IsZero() {
			verr.add("task %q requires planned start and end dates", t.ID)
		}
	}

	return verr.orNil()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
