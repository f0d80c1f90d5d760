package multistep

import (
	"errors"
	"fmt"

	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/validator"
)

var (
	ErrInvalidTransition  = errors.New("invalid transition: from, to and event are required")
	ErrUnknownState       = errors.New("unknown state")
	ErrNoTransition       = errors.New("no transition available")
	ErrTransitionRejected = errors.New("transition rejected by guard")
	ErrActionFailed       = errors.New("transition action failed")

	ErrInvalidDefinition = errors.New("invalid form definition")
	ErrUnknownStep       = errors.New("unknown step")
	ErrUnknownField      = errors.New("unknown field")
	ErrNotVisited        = errors.New("step has not been visited yet")
	ErrStepInvalid       = errors.New("current step has validation errors")
	ErrFormInvalid       = errors.New("form has validation errors")
	ErrSubmitted         = errors.New("form already submitted")
	ErrSessionClosed     = errors.New("session closed")
	ErrNoStore           = errors.New("no draft store configured")
	ErrDraftMismatch     = errors.New("draft belongs to another form")
)

// TransitionError reports a failed Fire. Kind is one of ErrNoTransition,
// ErrTransitionRejected or ErrActionFailed; Reason is the guard or action error.
type TransitionError struct {
	From   State
	Event  Event
	Kind   error
	Reason error
}

func (e *TransitionError) Error() string {
	if e.Reason == nil {
		return fmt.Sprintf("%s: state %q, event %q", e.Kind, e.From, e.Event)
	}
	return fmt.Sprintf("%s: state %q, event %q: %v", e.Kind, e.From, e.Event, e.Reason)
}

func (e *TransitionError) Unwrap() []error {
	if e.Reason == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Reason}
}

// FormInvalidError carries the validation errors that blocked a step change
// (Step set) or a submission (Step empty).
type FormInvalidError struct {
	Step   string
	Errors validator.ValidationErrors
}

func (e *FormInvalidError) Error() string {
	if e.Step != "" {
		return fmt.Sprintf("step %q: %s", e.Step, e.Errors.Error())
	}
	return e.Errors.Error()
}

func (e *FormInvalidError) Unwrap() []error {
	kind := ErrFormInvalid
	if e.Step != "" {
		kind = ErrStepInvalid
	}
	return []error{kind, e.Errors}
}

// IsTransitionError reports whether err came from a rejected or impossible transition.
func IsTransitionError(err error) bool {
	var e *TransitionError
	return errors.As(err, &e)
}

// InvalidErrors returns the validation errors carried by err, if any.
func InvalidErrors(err error) validator.ValidationErrors {
	var e *FormInvalidError
	if errors.As(err, &e) {
		return e.Errors
	}
	return nil
}
