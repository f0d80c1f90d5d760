package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrorType classifies a validation failure.
type ErrorType string

const (
	TypeRequired ErrorType = "required"
	TypeLength   ErrorType = "length"
	TypeFormat   ErrorType = "format"
	TypeCustom   ErrorType = "custom"
)

// ValidationError represents a single validation error with translation support.
type ValidationError struct {
	Field             string         `json:"field"`
	Message           string         `json:"message"`
	Type              ErrorType      `json:"type"`
	TranslationKey    string         `json:"-"`
	TranslationValues map[string]any `json:"-"`
}

// Args flattens TranslationValues into key/value pairs accepted by i18n translators.
func (e ValidationError) Args() []string {
	if len(e.TranslationValues) == 0 {
		return nil
	}
	args := make([]string, 0, len(e.TranslationValues)*2)
	for k, v := range e.TranslationValues {
		args = append(args, k, fmt.Sprint(v))
	}
	return args
}

// ValidationErrors represents a collection of validation errors.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(ve))
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Get returns the messages reported for a field, in rule order.
func (ve ValidationErrors) Get(field string) []string {
	var messages []string
	for _, err := range ve {
		if err.Field == field {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

func (ve ValidationErrors) GetErrors(field string) []ValidationError {
	var out []ValidationError
	for _, err := range ve {
		if err.Field == field {
			out = append(out, err)
		}
	}
	return out
}

func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range ve {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

// ByType returns the errors of the given type.
func (ve ValidationErrors) ByType(t ErrorType) ValidationErrors {
	var out ValidationErrors
	for _, err := range ve {
		if err.Type == t {
			out = append(out, err)
		}
	}
	return out
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// ExtractValidationErrors extracts ValidationErrors from an error chain.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return verrs
	}
	return nil
}

func IsValidationError(err error) bool {
	return ExtractValidationErrors(err) != nil
}

// CustomFunc is a field-level check that can inspect the whole form.
// Returning nil accepts the value. Returning an error wrapping ErrInvalidValue
// rejects it with the default message; any other error rejects it and its
// text becomes the message.
type CustomFunc func(value Value, data FormData) error

// Pattern pairs a regular expression with the kind used to pick its message.
type Pattern struct {
	Kind   PatternKind
	Regexp *regexp.Regexp
}

// Rule is one declarative constraint attached to a field.
// Zero MinLength/MaxLength mean the bound is not set.
type Rule struct {
	Required  bool
	MinLength int
	MaxLength int
	Pattern   *Pattern
	Custom    CustomFunc
}

// Rules maps a field name to its ordered rule entries.
type Rules map[string][]Rule
