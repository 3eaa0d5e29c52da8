package evm

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// Alert lifecycle states. They are derived from the IsRead/IsActive flags so
// an Alert stays a plain value that serializes without machine state.
const (
	AlertStateUnread   = "unread"
	AlertStateRead     = "read"
	AlertStateResolved = "resolved"
)

// Alert lifecycle events.
const (
	AlertEventRead    = "read"
	AlertEventResolve = "resolve"
	AlertEventReopen  = "reopen"
)

type alertContext struct {
	AlertID string
}

// State returns the lifecycle state encoded by the alert flags.
func (a Alert) State() string {
	switch {
	case !a.IsActive:
		return AlertStateResolved
	case a.IsRead:
		return AlertStateRead
	default:
		return AlertStateUnread
	}
}

// MarkRead acknowledges an active alert.
func (a *Alert) MarkRead() error {
	return a.transition(AlertEventRead)
}

// Resolve deactivates an alert.
func (a *Alert) Resolve() error {
	return a.transition(AlertEventResolve)
}

// Reopen reactivates a resolved alert as unread.
func (a *Alert) Reopen() error {
	return a.transition(AlertEventReopen)
}

func (a *Alert) transition(event string) error {
	builder := statekit.NewMachine[alertContext]("alert-machine").
		WithInitial(statekit.StateID(a.State())).
		WithContext(alertContext{AlertID: a.ID})

	builder.State(AlertStateUnread).
		On(AlertEventRead).Target(AlertStateRead).
		On(AlertEventResolve).Target(AlertStateResolved).
		Done()

	builder.State(AlertStateRead).
		On(AlertEventResolve).Target(AlertStateResolved).
		Done()

	builder.State(AlertStateResolved).
		On(AlertEventReopen).Target(AlertStateUnread).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return fmt.Errorf("failed to build alert state machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	before := a.State()
	interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	after := string(interpreter.State().Value)
	if before == after {
		return fmt.Errorf("alert %s: the action '%s' is not allowed in the '%s' state", a.ID, event, before)
	}

	switch after {
	case AlertStateUnread:
		a.IsActive, a.IsRead = true, false
	case AlertStateRead:
		a.IsActive, a.IsRead = true, true
	case AlertStateResolved:
		a.IsActive = false
	}
	return nil
}
