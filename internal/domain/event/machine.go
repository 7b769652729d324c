package event

import (
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// MachineContext is the context passed to the lifecycle state machine.
type MachineContext struct {
	Event *Event
}

// Trigger names for the state machine.
const (
	TriggerStartPayment statekit.EventType = "START_PAYMENT"
	TriggerPublish      statekit.EventType = "PUBLISH"
	TriggerStart        statekit.EventType = "START"
	TriggerFinish       statekit.EventType = "FINISH"
	TriggerCancel       statekit.EventType = "CANCEL"
)

// State IDs for the state machine.
var (
	StateIDDraft          statekit.StateID = statekit.StateID(StatusDraft)
	StateIDPendingPayment statekit.StateID = statekit.StateID(StatusPendingPayment)
	StateIDPublished      statekit.StateID = statekit.StateID(StatusPublished)
	StateIDInProgress     statekit.StateID = statekit.StateID(StatusInProgress)
	StateIDFinished       statekit.StateID = statekit.StateID(StatusFinished)
	StateIDCancelled      statekit.StateID = statekit.StateID(StatusCancelled)
)

// TriggerFor returns the trigger that moves the machine into the target
// status, keeping trigger naming and the transition table aligned.
func TriggerFor(target Status) (statekit.EventType, error) {
	switch target {
	case StatusPendingPayment:
		return TriggerStartPayment, nil
	case StatusPublished:
		return TriggerPublish, nil
	case StatusInProgress:
		return TriggerStart, nil
	case StatusFinished:
		return TriggerFinish, nil
	case StatusCancelled:
		return TriggerCancel, nil
	default:
		return "", fmt.Errorf("no trigger targets status %q", target)
	}
}

// LifecycleMachine wraps the Statekit state machine for event lifecycles.
// The aggregate enforces its own guards; the machine exists for
// validation, simulation, and visualization.
type LifecycleMachine struct {
	interpreter *statekit.Interpreter[MachineContext]
}

// NewLifecycleMachine creates a new state machine for event lifecycles.
// Its transitions mirror validTransitions exactly.
func NewLifecycleMachine() (*LifecycleMachine, error) {
	machine, err := statekit.NewMachine[MachineContext]("event-lifecycle").
		WithInitial(StateIDDraft).
		// Draft state
		State(StateIDDraft).
		On(TriggerStartPayment).Target(StateIDPendingPayment).
		On(TriggerCancel).Target(StateIDCancelled).
		Done().
		// PendingPayment state
		State(StateIDPendingPayment).
		On(TriggerPublish).Target(StateIDPublished).
		On(TriggerCancel).Target(StateIDCancelled).
		Done().
		// Published state
		State(StateIDPublished).
		On(TriggerStart).Target(StateIDInProgress).
		On(TriggerCancel).Target(StateIDCancelled).
		Done().
		// InProgress state
		State(StateIDInProgress).
		On(TriggerFinish).Target(StateIDFinished).
		On(TriggerCancel).Target(StateIDCancelled).
		Done().
		// Finished state (terminal)
		State(StateIDFinished).
		Final().
		Done().
		// Cancelled state (terminal)
		State(StateIDCancelled).
		Final().
		Done().
		Build()

	if err != nil {
		return nil, fmt.Errorf("failed to build state machine: %w", err)
	}

	interp := statekit.NewInterpreter(machine)

	return &LifecycleMachine{
		interpreter: interp,
	}, nil
}

// Start starts the state machine interpreter.
func (m *LifecycleMachine) Start() {
	m.interpreter.Start()
}

// Send sends a trigger to the interpreter.
func (m *LifecycleMachine) Send(trigger statekit.EventType) error {
	if m.interpreter == nil {
		return fmt.Errorf("interpreter not started")
	}
	m.interpreter.Send(statekit.Event{Type: trigger})
	return nil
}

// CurrentState returns the current state.
func (m *LifecycleMachine) CurrentState() statekit.StateID {
	if m.interpreter == nil {
		return ""
	}
	return m.interpreter.State().Value
}

// IsDone returns true if the machine is in a final state.
func (m *LifecycleMachine) IsDone() bool {
	if m.interpreter == nil {
		return false
	}
	return m.interpreter.Done()
}

// XStateJSON represents the XState JSON format for visualization.
type XStateJSON struct {
	ID      string                     `json:"id"`
	Initial string                     `json:"initial"`
	States  map[string]XStateStateJSON `json:"states"`
}

// XStateStateJSON represents a state in XState JSON format.
type XStateStateJSON struct {
	Type string                      `json:"type,omitempty"` // "final" for terminal states
	On   map[string]XStateTransition `json:"on,omitempty"`
}

// XStateTransition represents a transition in XState JSON format.
type XStateTransition struct {
	Target string `json:"target"`
}

// ExportXStateJSON exports the lifecycle definition as XState-compatible
// JSON. The document is generated from the transition table, so it cannot
// drift from the guards the aggregate enforces.
func ExportXStateJSON() ([]byte, error) {
	states := make(map[string]XStateStateJSON, len(AllStatuses()))
	for _, status := range AllStatuses() {
		state := XStateStateJSON{}
		if status.IsFinal() {
			state.Type = "final"
		}
		targets := status.NextValidStatuses()
		if len(targets) > 0 {
			state.On = make(map[string]XStateTransition, len(targets))
			for _, target := range targets {
				trigger, err := TriggerFor(target)
				if err != nil {
					return nil, err
				}
				state.On[string(trigger)] = XStateTransition{Target: string(target)}
			}
		}
		states[string(status)] = state
	}

	xstate := XStateJSON{
		ID:      "event-lifecycle",
		Initial: string(StatusDraft),
		States:  states,
	}
	return json.MarshalIndent(xstate, "", "  ")
}
