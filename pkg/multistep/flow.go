package multistep

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// State is a step ID or StateSubmitted.
type State string

// Event triggers a transition between states.
type Event string

// StateSubmitted is the terminal state after a successful submission.
const StateSubmitted State = "submitted"

const (
	EventNext   Event = "next"
	EventBack   Event = "back"
	EventSubmit Event = "submit"
)

const gotoPrefix = "goto:"

// GoTo returns the event that jumps directly to step.
func GoTo(step string) Event {
	return Event(gotoPrefix + step)
}

// Target returns the step a GoTo event points at.
func (e Event) Target() (string, bool) {
	return strings.CutPrefix(string(e), gotoPrefix)
}

// Guard vetoes a transition by returning an error.
type Guard func(ctx context.Context, from State, event Event) error

// Action runs before the state changes. An error aborts the transition.
type Action func(ctx context.Context, from, to State, event Event) error

// Transition is a guarded edge of the flow.
type Transition struct {
	From    State
	To      State
	Event   Event
	Guards  []Guard
	Actions []Action
}

// Flow is a guarded finite state machine over form steps.
// Guards and actions run while the flow is locked and must not call back
// into the same Flow.
type Flow struct {
	mu          sync.RWMutex
	initial     State
	current     State
	states      map[State]bool
	transitions map[State]map[Event][]Transition
}

// NewFlow creates a flow positioned at initial.
func NewFlow(initial State, transitions ...Transition) (*Flow, error) {
	if initial == "" {
		return nil, errors.Join(ErrInvalidTransition, errors.New("initial state is empty"))
	}
	f := &Flow{
		initial:     initial,
		current:     initial,
		states:      map[State]bool{initial: true},
		transitions: make(map[State]map[Event][]Transition),
	}
	for _, t := range transitions {
		if err := f.AddTransition(t); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// AddTransition registers t. Several transitions may share From and Event;
// the first whose guards all pass wins.
func (f *Flow) AddTransition(t Transition) error {
	if t.From == "" || t.To == "" || t.Event == "" {
		return ErrInvalidTransition
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.transitions[t.From]; !ok {
		f.transitions[t.From] = make(map[Event][]Transition)
	}
	f.transitions[t.From][t.Event] = append(f.transitions[t.From][t.Event], t)
	f.states[t.From] = true
	f.states[t.To] = true
	return nil
}

func (f *Flow) Current() State {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.current
}

// Fire runs the first transition whose guards pass and returns the new state.
// Failures are *TransitionError values.
func (f *Flow) Fire(ctx context.Context, event Event) (State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	from := f.current
	candidates := f.transitions[from][event]
	if len(candidates) == 0 {
		return from, &TransitionError{From: from, Event: event, Kind: ErrNoTransition}
	}

	t, reason := pick(ctx, candidates, from, event)
	if t == nil {
		return from, &TransitionError{From: from, Event: event, Kind: ErrTransitionRejected, Reason: reason}
	}

	for _, action := range t.Actions {
		if action == nil {
			continue
		}
		if err := action(ctx, from, t.To, event); err != nil {
			return from, &TransitionError{From: from, Event: event, Kind: ErrActionFailed, Reason: err}
		}
	}

	f.current = t.To
	return t.To, nil
}

// CanFire reports whether Fire would find a transition whose guards pass.
// Guards are evaluated, so their side effects happen.
func (f *Flow) CanFire(ctx context.Context, event Event) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	t, _ := pick(ctx, f.transitions[f.current][event], f.current, event)
	return t != nil
}

// Restore moves the flow to a known state without running guards or actions.
func (f *Flow) Restore(state State) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.states[state] {
		return errors.Join(ErrUnknownState, errors.New(string(state)))
	}
	f.current = state
	return nil
}

// Reset moves the flow back to its initial state.
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = f.initial
}

// pick returns the first transition whose guards pass, or the last guard error.
func pick(ctx context.Context, candidates []Transition, from State, event Event) (*Transition, error) {
	var reason error
	for i := range candidates {
		if err := runGuards(ctx, candidates[i].Guards, from, event); err != nil {
			reason = err
			continue
		}
		return &candidates[i], nil
	}
	return nil, reason
}

func runGuards(ctx context.Context, guards []Guard, from State, event Event) error {
	for _, guard := range guards {
		if guard == nil {
			continue
		}
		if err := guard(ctx, from, event); err != nil {
			return err
		}
	}
	return nil
}
