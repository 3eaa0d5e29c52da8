package evm

import (
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
)

// Calculator computes earned value snapshots and everything derived from
// them. A Calculator holds no mutable state and is safe for concurrent use.
type Calculator struct {
	thresholds    Thresholds
	clock         Clock
	newID         func() string
	logger        *slog.Logger
	extendedRules bool
	cost          CostBreakdown
	schedule      ScheduleBreakdown
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithThresholds sets the alerting bounds.
func WithThresholds(t Thresholds) Option {
	return func(c *Calculator) { c.thresholds = t }
}

// WithClock sets the time source used for forecasts and alert timestamps.
func WithClock(clock Clock) Option {
	return func(c *Calculator) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithIDGenerator sets the alert id generator.
func WithIDGenerator(fn func() string) Option {
	return func(c *Calculator) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Calculator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithExtendedAlertRules enables the cost variance warning tier, schedule
// variance alerts and budget exhaustion alerts.
func WithExtendedAlertRules() Option {
	return func(c *Calculator) { c.extendedRules = true }
}

// WithCostBreakdown wires a cost variance breakdown.
func WithCostBreakdown(b CostBreakdown) Option {
	return func(c *Calculator) {
		if b != nil {
			c.cost = b
		}
	}
}

// WithScheduleBreakdown wires a schedule variance breakdown.
func WithScheduleBreakdown(b ScheduleBreakdown) Option {
	return func(c *Calculator) {
		if b != nil {
			c.schedule = b
		}
	}
}

// NewCalculator creates a Calculator with default thresholds, the system
// clock and uuid alert ids unless overridden.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		thresholds: DefaultThresholds(),
		clock:      SystemClock,
		newID:      uuid.NewString,
		logger:     slog.Default(),
		cost:       UnwiredCostBreakdown{},
		schedule:   UnwiredScheduleBreakdown{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Thresholds returns a copy of the configured alerting bounds.
func (c *Calculator) Thresholds() Thresholds {
	return c.thresholds
}

// Calculate computes the metrics snapshot for in. Only structural problems
// are reported as errors; every ratio falls back to a sentinel instead.
func (c *Calculator) Calculate(in Input) (Metrics, error) {
	if err := in.Validate(); err != nil {
		return Metrics{}, err
	}

	pv := PlannedValue(in.Tasks, in.StatusDate)
	ev := EarnedValue(in.Tasks)
	ac := ActualCost(in.Tasks)
	bac := in.TotalBudget

	cpi := ratio(ev, ac)
	spi := ratio(ev, pv)
	eac := EstimateAtCompletion(bac, ev, ac, cpi)

	var percentComplete, percentPlanned float64
	if bac > 0 {
		percentComplete = ev / bac * 100
		percentPlanned = pv / bac * 100
	}

	m := Metrics{
		PlannedValue:               pv,
		EarnedValue:                ev,
		ActualCost:                 ac,
		BudgetAtCompletion:         bac,
		CostVariance:               ev - ac,
		ScheduleVariance:           ev - pv,
		CostPerformanceIndex:       cpi,
		SchedulePerformanceIndex:   spi,
		EstimateAtCompletion:       eac,
		EstimateToComplete:         eac - ac,
		VarianceAtCompletion:       bac - eac,
		ToCompletePerformanceIndex: ToCompletePerformanceIndex(bac, ev, ac),
		PercentComplete:            percentComplete,
		PercentPlanned:             percentPlanned,
		StatusDate:                 in.StatusDate,
		PlannedCompletionDate:      in.PlannedEndDate,
		ForecastCompletionDate:     forecastCompletion(c.clock.Now(), in.PlannedEndDate, spi, percentComplete),
	}

	c.logger.Debug("evm metrics computed",
		"project", in.ProjectID,
		"tasks", len(in.Tasks),
		"cpi", cpi,
		"spi", spi)

	return m, nil
}

// PlannedValue sums the time-proportional planned value of tasks at statusDate.
func PlannedValue(tasks []TaskProgress, statusDate time.Time) float64 {
	total := 0.0
	for _, t := range tasks {
		total += t.PlannedValue * t.PlannedProgress(statusDate)
	}
	return total
}

// EarnedValue sums planned value weighted by reported completion.
func EarnedValue(tasks []TaskProgress) float64 {
	total := 0.0
	for _, t := range tasks {
		total += t.PlannedValue * (t.PercentComplete / 100)
	}
	return total
}

// ActualCost sums the cost incurred by tasks.
func ActualCost(tasks []TaskProgress) float64 {
	total := 0.0
	for _, t := range tasks {
		total += t.ActualCost
	}
	return total
}

// EstimateAtCompletion returns AC + (BAC-EV)/CPI, or BAC when CPI is not
// positive and the estimate cannot be extrapolated.
func EstimateAtCompletion(bac, ev, ac, cpi float64) float64 {
	if cpi <= 0 {
		return bac
	}
	return ac + (bac-ev)/cpi
}

// ToCompletePerformanceIndex returns (BAC-EV)/(BAC-AC), or +Inf once the
// remaining budget is zero or negative.
func ToCompletePerformanceIndex(bac, ev, ac float64) float64 {
	remainingBudget := bac - ac
	if remainingBudget <= 0 {
		return math.Inf(1)
	}
	return (bac - ev) / remainingBudget
}

func ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}

// forecastCompletion projects the remaining percentage of work at the
// current SPI, one percentage point per day, from now.
func forecastCompletion(now, plannedEnd time.Time, spi, percentComplete float64) time.Time {
	if spi <= 0 || percentComplete <= 0 {
		return plannedEnd
	}
	remainingWork := 100 - percentComplete
	adjustedDays := remainingWork / spi
	return now.Add(time.Duration(adjustedDays * 24 * float64(time.Hour)))
}
