package kpi

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/felixgeelhaar/evmkit/pkg/domain/evm"
)

// ErrInvalidInput indicates a structurally invalid KPI input.
var ErrInvalidInput = errors.New("invalid kpi input")

// Input is the project and task collection an indicator set is computed from.
// Metrics optionally carries EVM snapshots for the CPI and SPI indicators.
type Input struct {
	Projects  []Project
	Tasks     []Task
	Metrics   []evm.Metrics
	Timeframe Timeframe
}

// Validate checks identifiers and numeric fields.
func (in Input) Validate() error {
	var problems []string

	seen := make(map[string]bool, len(in.Projects))
	for i, p := range in.Projects {
		switch {
		case strings.TrimSpace(p.ID) == "":
			problems = append(problems, fmt.Sprintf("project at index %d missing ID", i))
		case seen[p.ID]:
			problems = append(problems, fmt.Sprintf("duplicate project ID: %s", p.ID))
		}
		seen[p.ID] = true

		for _, v := range []float64{p.Budget.Total, p.Budget.Spent, p.Revenue, p.Costs, p.Resources.AvailableHours, p.Resources.UsedHours} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				problems = append(problems, fmt.Sprintf("project %q has a non-finite numeric field", p.ID))
				break
			}
		}
	}
	for i, t := range in.Tasks {
		if strings.TrimSpace(t.ID) == "" {
			problems = append(problems, fmt.Sprintf("task at index %d missing ID", i))
		}
	}
	if !in.Timeframe.Start.IsZero() && !in.Timeframe.End.IsZero() && in.Timeframe.End.Before(in.Timeframe.Start) {
		problems = append(problems, "timeframe end precedes start")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(problems, "; "))
	}
	return nil
}

// Engine computes indicator dashboards. It carries no state between calls.
type Engine struct {
	clock    evm.Clock
	logger   *slog.Logger
	measures map[string]Measure
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithClock sets the time source for LastUpdated.
func WithClock(c evm.Clock) EngineOption {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMeasure replaces the measure of a known indicator id.
func WithMeasure(id string, m Measure) EngineOption {
	return func(e *Engine) {
		if _, ok := Lookup(id); ok && m != nil {
			e.measures[id] = m
		}
	}
}

// NewEngine creates an Engine with the builtin measures.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		clock:    evm.SystemClock,
		logger:   slog.Default(),
		measures: builtinMeasures(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Calculate computes every indicator with data and organizes the dashboard.
// An empty project collection yields a dashboard without results that lists
// every indicator as unavailable.
func (e *Engine) Calculate(in Input) (Dashboard, error) {
	if err := in.Validate(); err != nil {
		return Dashboard{}, err
	}
	if len(in.Projects) == 0 {
		dash := Organize(nil)
		for _, d := range definitions {
			dash.Unavailable = append(dash.Unavailable, d.ID)
		}
		return dash, nil
	}

	now := e.clock.Now()
	results := make([]Result, 0, len(definitions))
	unavailable := []string{}

	for _, d := range definitions {
		value, ok := e.measures[d.ID].Measure(in)
		if !ok {
			unavailable = append(unavailable, d.ID)
			continue
		}
		results = append(results, Result{
			ID:          d.ID,
			Name:        d.Name,
			Value:       value,
			Target:      d.Target,
			Unit:        d.Unit,
			Trend:       d.Trend(value),
			Status:      d.Status(value),
			Category:    d.Category,
			Description: d.Description,
			Calculation: d.Calculation,
			LastUpdated: now,
		})
	}

	dash := Organize(results)
	dash.Unavailable = unavailable

	e.logger.Debug("kpi dashboard computed",
		"projects", len(in.Projects),
		"tasks", len(in.Tasks),
		"kpis", dash.Summary.Total,
		"unavailable", len(unavailable))

	return dash, nil
}

// ProjectKPIs computes the indicators of a single project. Tasks that belong
// to other projects are ignored.
func (e *Engine) ProjectKPIs(project Project, tasks []Task, metrics []evm.Metrics, tf Timeframe) ([]Result, error) {
	own := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ProjectID == "" || t.ProjectID == project.ID {
			own = append(own, t)
		}
	}

	dash, err := e.Calculate(Input{
		Projects:  []Project{project},
		Tasks:     own,
		Metrics:   metrics,
		Timeframe: tf,
	})
	if err != nil {
		return nil, err
	}
	return dash.All(), nil
}
