package formvalidation

import (
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/logger"
	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/validator"
)

// Engine tracks per-field validation errors and touched state for one form.
// Validation runs eagerly; errors are surfaced (ShowError) only once a field
// has been touched. All methods are safe for concurrent use.
type Engine struct {
	mu         sync.RWMutex
	errors     map[string]validator.ValidationErrors
	touched    map[string]bool
	validating bool

	source           FormSource
	rules            validator.Rules
	validateOnChange bool
	debounce         time.Duration

	logger    *slog.Logger
	afterFunc AfterFunc
}

// Result is the outcome of ValidateAll.
type Result struct {
	IsValid bool                       `json:"is_valid"`
	Errors  validator.ValidationErrors `json:"errors"`
}

// FieldState is the display state of one field.
type FieldState struct {
	HasError  bool   `json:"has_error"`
	IsTouched bool   `json:"is_touched"`
	Error     string `json:"error,omitempty"`
	IsValid   bool   `json:"is_valid"`
	ShowError bool   `json:"show_error"`
}

// CancelFunc stops a scheduled validation. It reports whether the call was
// still pending.
type CancelFunc func() bool

// New creates an engine with empty error and touched maps.
func New(cfg Config, opts ...Option) *Engine {
	e := &Engine{
		errors:           make(map[string]validator.ValidationErrors),
		touched:          make(map[string]bool),
		source:           cfg.FormData,
		rules:            cfg.Rules,
		validateOnChange: true,
		debounce:         DefaultDebounceMs * time.Millisecond,
		logger:           logger.Discard(),
		afterFunc:        defaultAfterFunc,
	}
	if e.source == nil {
		e.source = Static(nil)
	}
	if e.rules == nil {
		e.rules = validator.Rules{}
	}
	if cfg.ValidateOnChange != nil {
		e.validateOnChange = *cfg.ValidateOnChange
	}
	if cfg.DebounceMs > 0 {
		e.debounce = time.Duration(cfg.DebounceMs) * time.Millisecond
	}

	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With(logger.Component("formvalidation"))
	return e
}

func (e *Engine) data() validator.FormData {
	data := e.source.FormData()
	if data == nil {
		return validator.FormData{}
	}
	return data
}

// Rules returns the rule table the engine validates against.
func (e *Engine) Rules() validator.Rules { return e.rules }

func (e *Engine) ValidateOnChange() bool { return e.validateOnChange }

func (e *Engine) DebounceDelay() time.Duration { return e.debounce }

// Errors returns a copy of the error map. Fields without errors are absent.
func (e *Engine) Errors() map[string]validator.ValidationErrors {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return maps.Clone(e.errors)
}

// Touched returns a copy of the touched map.
func (e *Engine) Touched() map[string]bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return maps.Clone(e.touched)
}

// IsValidating reports whether ValidateAll is running.
func (e *Engine) IsValidating() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.validating
}

// ValidateField validates value against the field's rules and the current form
// data, replaces the field's entry in the error map and returns the errors.
func (e *Engine) ValidateField(field string, value validator.Value) validator.ValidationErrors {
	errs := validator.ValidateField(field, value, e.rules[field], e.data())
	e.SetFieldErrors(field, errs)
	return errs
}

// SetFieldErrors replaces the stored errors of one field.
func (e *Engine) SetFieldErrors(field string, errs validator.ValidationErrors) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(errs) == 0 {
		delete(e.errors, field)
		return
	}
	e.errors[field] = errs
}

// ValidateAll validates every field present in the form data, in sorted order,
// and replaces the whole error map. Fields without rules produce no errors.
func (e *Engine) ValidateAll() Result {
	e.mu.Lock()
	e.validating = true
	e.mu.Unlock()

	start := time.Now()
	data := e.data()
	next := make(map[string]validator.ValidationErrors)
	all := validator.ValidationErrors{}
	for _, field := range data.Fields() {
		errs := validator.ValidateField(field, data[field], e.rules[field], data)
		if len(errs) > 0 {
			next[field] = errs
			all = append(all, errs...)
		}
	}

	e.mu.Lock()
	e.errors = next
	e.validating = false
	e.mu.Unlock()

	e.logger.Debug("form validated",
		logger.ErrorCount(len(all)),
		logger.Duration(time.Since(start)),
	)
	return Result{IsValid: len(all) == 0, Errors: all}
}

// ValidateFieldDebounced schedules ValidateField(field, value) after the
// debounce delay. Every call creates an independent timer: a previous pending
// call for the same field is not cancelled, the caller owns the returned
// CancelFunc.
func (e *Engine) ValidateFieldDebounced(field string, value validator.Value) CancelFunc {
	t := e.afterFunc(e.debounce, func() {
		errs := e.ValidateField(field, value)
		e.logger.Debug("debounced validation", logger.Field(field), logger.ErrorCount(len(errs)))
	})
	return t.Stop
}

// TouchField marks a field as touched. It does not validate.
func (e *Engine) TouchField(field string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.touched[field] = true
}

// GetFieldError returns the first error message of a field.
func (e *Engine) GetFieldError(field string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if errs := e.errors[field]; len(errs) > 0 {
		return errs[0].Message, true
	}
	return "", false
}

func (e *Engine) HasFieldError(field string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.errors[field]) > 0
}

func (e *Engine) IsFieldTouched(field string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.touched[field]
}

// GetFieldState combines error and touched state. ShowError is HasError and
// IsTouched; IsValid is no error and touched.
func (e *Engine) GetFieldState(field string) FieldState {
	e.mu.RLock()
	defer e.mu.RUnlock()

	errs := e.errors[field]
	state := FieldState{
		HasError:  len(errs) > 0,
		IsTouched: e.touched[field],
	}
	if state.HasError {
		state.Error = errs[0].Message
	}
	state.IsValid = !state.HasError && state.IsTouched
	state.ShowError = state.HasError && state.IsTouched
	return state
}

// ClearFieldError empties the error list of one field.
func (e *Engine) ClearFieldError(field string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.errors, field)
}

// ClearAllErrors resets both the error and the touched maps.
func (e *Engine) ClearAllErrors() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.errors = make(map[string]validator.ValidationErrors)
	e.touched = make(map[string]bool)
}

// GetValidationSuggestions returns live-typing hints for the field's current value.
func (e *Engine) GetValidationSuggestions(field string) []string {
	data := e.data()
	return validator.Suggestions(field, data.Get(field), e.rules[field], data)
}
