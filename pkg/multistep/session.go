package multistep

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/debounce"
	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/drafts"
	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/formvalidation"
	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/logger"
	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/validator"
)

const (
	autoSaveKey     = "draft"
	autoSaveTimeout = 10 * time.Second
)

// Session drives one user through a Definition: it owns the form data, the
// validation engine and the step flow.
//
// Lock order is opMu, then the flow, then dataMu. Guards and actions run
// under the flow lock and only ever take dataMu.
type Session struct {
	id  string
	def *Definition

	engine        *formvalidation.Engine
	flow          *Flow
	fieldDebounce *debounce.Keyed[string]
	saveDebounce  *debounce.Keyed[string]

	store            drafts.Store
	submitter        Submitter
	logger           *slog.Logger
	now              func() time.Time
	debounceDelay    time.Duration
	autoSaveDelay    time.Duration
	validateOnChange *bool

	opMu sync.Mutex

	dataMu    sync.RWMutex
	data      validator.FormData
	step      string
	visited   []string
	submitted bool
	closed    bool
}

// NewSession starts a session on the first step of def with every field
// empty. def must have been prepared.
func NewSession(def *Definition, opts ...Option) (*Session, error) {
	if def == nil || def.fieldStep == nil {
		return nil, fmt.Errorf("%w: definition is not prepared", ErrInvalidDefinition)
	}

	s := &Session{
		id:            uuid.NewString(),
		def:           def,
		logger:        logger.Discard(),
		now:           time.Now,
		autoSaveDelay: DefaultAutoSaveDelay,
		data:          make(validator.FormData, len(def.fields)),
		step:          def.Steps[0].ID,
		visited:       []string{def.Steps[0].ID},
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, field := range def.fields {
		s.data[field] = validator.Empty()
	}
	s.logger = s.logger.With(
		logger.Component("multistep"),
		logger.FormID(def.ID),
		logger.SessionID(s.id),
	)

	s.engine = formvalidation.New(formvalidation.Config{
		FormData:         formvalidation.FormDataFunc(s.Data),
		Rules:            def.compiled,
		ValidateOnChange: s.validateOnChange,
		DebounceMs:       int(s.debounceDelay / time.Millisecond),
	}, formvalidation.WithLogger(s.logger))
	s.fieldDebounce = debounce.New[string](s.engine.DebounceDelay())
	s.saveDebounce = debounce.New[string](s.autoSaveDelay)

	flow, err := s.buildFlow()
	if err != nil {
		return nil, err
	}
	s.flow = flow
	return s, nil
}

func (s *Session) buildFlow() (*Flow, error) {
	steps := s.def.Steps
	var transitions []Transition
	for i, step := range steps {
		from := State(step.ID)
		if i+1 < len(steps) {
			transitions = append(transitions, Transition{
				From:    from,
				To:      State(steps[i+1].ID),
				Event:   EventNext,
				Guards:  []Guard{s.stepValid},
				Actions: []Action{s.logTransition},
			})
		} else {
			transitions = append(transitions, Transition{
				From:    from,
				To:      StateSubmitted,
				Event:   EventSubmit,
				Guards:  []Guard{s.formValid},
				Actions: []Action{s.submit, s.logTransition},
			})
		}
		if i > 0 {
			transitions = append(transitions, Transition{
				From:    from,
				To:      State(steps[i-1].ID),
				Event:   EventBack,
				Actions: []Action{s.logTransition},
			})
		}
		for j, target := range steps {
			if j == i {
				continue
			}
			transitions = append(transitions, Transition{
				From:    from,
				To:      State(target.ID),
				Event:   GoTo(target.ID),
				Guards:  []Guard{s.visitedGuard(target.ID)},
				Actions: []Action{s.logTransition},
			})
		}
	}
	return NewFlow(State(steps[0].ID), transitions...)
}

func (s *Session) ID() string { return s.id }

func (s *Session) Definition() *Definition { return s.def }

// Engine exposes the validation engine for field state queries.
func (s *Session) Engine() *formvalidation.Engine { return s.engine }

// Data returns a copy of the form data.
func (s *Session) Data() validator.FormData {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	return s.data.Clone()
}

func (s *Session) value(field string) validator.Value {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	return s.data.Get(field)
}

func (s *Session) writable() error {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	return s.writableLocked()
}

func (s *Session) writableLocked() error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.submitted {
		return ErrSubmitted
	}
	return nil
}

// SetValue stores a field value. With validate-on-change enabled the field is
// revalidated once typing settles, against whatever value it holds by then.
func (s *Session) SetValue(field string, value validator.Value) error {
	if !s.def.HasField(field) {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	s.dataMu.Lock()
	if err := s.writableLocked(); err != nil {
		s.dataMu.Unlock()
		return err
	}
	s.data[field] = value
	s.dataMu.Unlock()

	if s.engine.ValidateOnChange() {
		s.fieldDebounce.Trigger(field, func() { s.validateField(field) })
	}
	s.scheduleSave()
	return nil
}

func (s *Session) validateField(field string) {
	errs := s.engine.ValidateField(field, s.value(field))
	s.logger.Debug("field validated", logger.Field(field), logger.ErrorCount(len(errs)))
}

// Touch marks a field as touched so its errors become visible.
func (s *Session) Touch(field string) error {
	if !s.def.HasField(field) {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	if err := s.writable(); err != nil {
		return err
	}
	s.engine.TouchField(field)
	s.scheduleSave()
	return nil
}

// Current returns the step the user is on. After submission it stays on the
// last step.
func (s *Session) Current() StepDef {
	s.dataMu.RLock()
	id := s.step
	s.dataMu.RUnlock()

	step, _, _ := s.def.Step(id)
	return step
}

func (s *Session) StepIndex() int {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	_, idx, _ := s.def.Step(s.step)
	return idx
}

// Visited returns the IDs of the steps reached so far, in visiting order.
func (s *Session) Visited() []string {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	return slices.Clone(s.visited)
}

func (s *Session) IsSubmitted() bool {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	return s.submitted
}

// Progress is the percentage of steps completed: 0 on the first step and 100
// once submitted.
func (s *Session) Progress() float64 {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	return s.progressLocked()
}

func (s *Session) progressLocked() float64 {
	if s.submitted {
		return 100
	}
	_, idx, _ := s.def.Step(s.step)
	return float64(idx) / float64(len(s.def.Steps)) * 100
}

// ValidateStep touches and validates every field of the current step.
func (s *Session) ValidateStep() (bool, validator.ValidationErrors) {
	return s.validateStep(s.Current())
}

func (s *Session) validateStep(step StepDef) (bool, validator.ValidationErrors) {
	var all validator.ValidationErrors
	for _, field := range step.Fields {
		s.fieldDebounce.Cancel(field)
		s.engine.TouchField(field)
		all = append(all, s.engine.ValidateField(field, s.value(field))...)
	}
	return len(all) == 0, all
}

// Next advances to the following step. An invalid required step is rejected
// with an error matching ErrStepInvalid; its fields stay touched so the errors
// show.
func (s *Session) Next(ctx context.Context) error {
	return s.fire(ctx, EventNext)
}

// Back returns to the previous step without validating.
func (s *Session) Back(ctx context.Context) error {
	return s.fire(ctx, EventBack)
}

// GoTo jumps to an already visited step. Jumping to the current step is a no-op.
func (s *Session) GoTo(ctx context.Context, stepID string) error {
	if _, _, ok := s.def.Step(stepID); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStep, stepID)
	}
	if s.Current().ID == stepID {
		return s.writable()
	}
	return s.fire(ctx, GoTo(stepID))
}

// Submit validates the whole form from the last step and hands it to the
// Submitter. Validation failures match ErrFormInvalid.
func (s *Session) Submit(ctx context.Context) error {
	return s.fire(ctx, EventSubmit)
}

func (s *Session) fire(ctx context.Context, event Event) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := s.writable(); err != nil {
		return err
	}

	to, err := s.flow.Fire(ctx, event)
	if err != nil {
		s.logger.DebugContext(ctx, "transition failed", logger.Event(string(event)), logger.Error(err))
		return err
	}

	s.dataMu.Lock()
	if to == StateSubmitted {
		s.submitted = true
	} else {
		s.step = string(to)
		if !slices.Contains(s.visited, s.step) {
			s.visited = append(s.visited, s.step)
		}
	}
	s.dataMu.Unlock()

	s.persist(ctx)
	return nil
}

func (s *Session) stepValid(_ context.Context, from State, _ Event) error {
	step, _, _ := s.def.Step(string(from))
	ok, errs := s.validateStep(step)
	if ok || step.Optional {
		return nil
	}
	return &FormInvalidError{Step: step.ID, Errors: errs}
}

func (s *Session) formValid(_ context.Context, _ State, _ Event) error {
	for _, field := range s.def.fields {
		s.fieldDebounce.Cancel(field)
		s.engine.TouchField(field)
	}
	res := s.engine.ValidateAll()
	if res.IsValid {
		return nil
	}
	return &FormInvalidError{Errors: res.Errors}
}

func (s *Session) visitedGuard(target string) Guard {
	return func(context.Context, State, Event) error {
		s.dataMu.RLock()
		defer s.dataMu.RUnlock()
		if !slices.Contains(s.visited, target) {
			return fmt.Errorf("%w: %q", ErrNotVisited, target)
		}
		return nil
	}
}

func (s *Session) submit(ctx context.Context, _, _ State, _ Event) error {
	if s.submitter == nil {
		return nil
	}
	return s.submitter.Submit(ctx, Submission{
		SessionID:   s.id,
		FormID:      s.def.ID,
		Data:        s.Data(),
		SubmittedAt: s.now(),
	})
}

func (s *Session) logTransition(ctx context.Context, from, to State, event Event) error {
	s.logger.InfoContext(ctx, "step changed",
		logger.Event(string(event)),
		slog.String("from", string(from)),
		slog.String("to", string(to)),
	)
	return nil
}

// Draft captures the session as a persistable draft.
func (s *Session) Draft() drafts.Draft {
	var touched []string
	for field, ok := range s.engine.Touched() {
		if ok {
			touched = append(touched, field)
		}
	}
	slices.Sort(touched)

	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	return drafts.Draft{
		ID:        s.id,
		FormID:    s.def.ID,
		Step:      s.step,
		Visited:   slices.Clone(s.visited),
		Data:      s.data.Clone(),
		Touched:   touched,
		Submitted: s.submitted,
		UpdatedAt: s.now(),
	}
}

// Save writes the current draft to the store.
func (s *Session) Save(ctx context.Context) error {
	if s.store == nil {
		return ErrNoStore
	}
	s.saveDebounce.Cancel(autoSaveKey)
	if err := s.store.Save(ctx, s.Draft()); err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "draft saved", logger.DraftID(s.id))
	return nil
}

func (s *Session) persist(ctx context.Context) {
	if s.store == nil {
		return
	}
	if err := s.Save(ctx); err != nil {
		s.logger.ErrorContext(ctx, "failed to save draft", logger.Error(err))
	}
}

func (s *Session) scheduleSave() {
	if s.store == nil {
		return
	}
	s.saveDebounce.Trigger(autoSaveKey, func() {
		ctx, cancel := context.WithTimeout(context.Background(), autoSaveTimeout)
		defer cancel()
		s.persist(ctx)
	})
}

// Restore replaces the session state with the draft saved under the session
// ID. Unknown fields and steps in the draft are dropped; touched fields are
// revalidated.
func (s *Session) Restore(ctx context.Context) error {
	if s.store == nil {
		return ErrNoStore
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.dataMu.RLock()
	closed := s.closed
	s.dataMu.RUnlock()
	if closed {
		return ErrSessionClosed
	}

	d, err := s.store.Load(ctx, s.id)
	if err != nil {
		return err
	}
	return s.apply(ctx, d)
}

func (s *Session) apply(ctx context.Context, d drafts.Draft) error {
	if d.FormID != s.def.ID {
		return fmt.Errorf("%w: %q", ErrDraftMismatch, d.FormID)
	}
	if _, _, ok := s.def.Step(d.Step); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStep, d.Step)
	}

	state := State(d.Step)
	if d.Submitted {
		state = StateSubmitted
	}
	if err := s.flow.Restore(state); err != nil {
		return err
	}

	data := make(validator.FormData, len(s.def.fields))
	for _, field := range s.def.fields {
		data[field] = d.Data.Get(field)
	}
	visited := []string{s.def.Steps[0].ID}
	for _, id := range append(slices.Clone(d.Visited), d.Step) {
		if _, _, ok := s.def.Step(id); ok && !slices.Contains(visited, id) {
			visited = append(visited, id)
		}
	}

	s.dataMu.Lock()
	s.data = data
	s.step = d.Step
	s.visited = visited
	s.submitted = d.Submitted
	s.dataMu.Unlock()

	s.engine.ClearAllErrors()
	for _, field := range d.Touched {
		if s.def.HasField(field) {
			s.engine.TouchField(field)
			s.engine.ValidateField(field, data[field])
		}
	}

	s.logger.InfoContext(ctx, "draft restored", logger.DraftID(d.ID), logger.Step(d.Step))
	return nil
}

// Snapshot is a point-in-time view of a session.
type Snapshot struct {
	SessionID string                               `json:"session_id"`
	FormID    string                               `json:"form_id"`
	Step      string                               `json:"step"`
	StepIndex int                                  `json:"step_index"`
	StepCount int                                  `json:"step_count"`
	Progress  float64                              `json:"progress"`
	Visited   []string                             `json:"visited"`
	Submitted bool                                 `json:"submitted"`
	Data      validator.FormData                   `json:"data"`
	Summary   formvalidation.Summary               `json:"summary"`
	Fields    map[string]formvalidation.FieldState `json:"fields"`
}

func (s *Session) Snapshot() Snapshot {
	summary := s.engine.Summary()
	fields := make(map[string]formvalidation.FieldState, len(s.def.fields))
	for _, field := range s.def.fields {
		fields[field] = s.engine.GetFieldState(field)
	}

	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	_, idx, _ := s.def.Step(s.step)
	return Snapshot{
		SessionID: s.id,
		FormID:    s.def.ID,
		Step:      s.step,
		StepIndex: idx,
		StepCount: len(s.def.Steps),
		Progress:  s.progressLocked(),
		Visited:   slices.Clone(s.visited),
		Submitted: s.submitted,
		Data:      s.data.Clone(),
		Summary:   summary,
		Fields:    fields,
	}
}

// Close cancels pending validations and flushes a pending auto-save.
// Further changes fail with ErrSessionClosed.
func (s *Session) Close() error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.dataMu.Lock()
	if s.closed {
		s.dataMu.Unlock()
		return nil
	}
	s.closed = true
	s.dataMu.Unlock()

	s.fieldDebounce.Stop()
	s.saveDebounce.FlushAll()
	s.saveDebounce.Stop()
	s.logger.Debug("session closed")
	return nil
}
