package validator

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ValidateField evaluates every rule entry declared for field against value.
// Failures are collected in rule order rather than short-circuited; a required
// entry that fails on an empty value contributes only its required error, and
// empty values never fail length, pattern or custom checks.
// The result depends only on its arguments.
func ValidateField(field string, value Value, rules []Rule, data FormData) ValidationErrors {
	if len(rules) == 0 {
		return nil
	}

	var errs ValidationErrors
	empty := value.IsEmpty()

	for _, rule := range rules {
		if empty {
			if rule.Required {
				errs.Add(requiredError(field))
			}
			continue
		}

		if text, ok := value.Text(); ok {
			length := utf8.RuneCountInString(text)
			if rule.MinLength > 0 && length < rule.MinLength {
				errs.Add(minLengthError(field, rule.MinLength))
			}
			if rule.MaxLength > 0 && length > rule.MaxLength {
				errs.Add(maxLengthError(field, rule.MaxLength))
			}
			if rule.Pattern != nil && !rule.Pattern.matches(text) {
				errs.Add(formatError(field, rule.Pattern.Kind))
			}
		}

		if rule.Custom != nil {
			if err := runCustom(rule.Custom, value, data); err != nil {
				errs.Add(customError(field, err))
			}
		}
	}

	return errs
}

// ValidateForm validates every field present in data, in sorted field order.
// Fields without rules produce no errors.
func ValidateForm(data FormData, rules Rules) ValidationErrors {
	var errs ValidationErrors
	for _, field := range data.Fields() {
		errs = append(errs, ValidateField(field, data[field], rules[field], data)...)
	}
	return errs
}

// PanicError reports a custom check that panicked.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("custom rule panicked: %v", e.Value)
}

func (e *PanicError) Unwrap() error { return ErrInvalidValue }

// runCustom invokes fn, converting a panic into a *PanicError.
func runCustom(fn CustomFunc, value Value, data FormData) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	return fn(value, data)
}

func requiredError(field string) ValidationError {
	return ValidationError{
		Field:          field,
		Message:        fmt.Sprintf("%s é obrigatório", field),
		Type:           TypeRequired,
		TranslationKey: "validation.required",
		TranslationValues: map[string]any{
			"field": field,
		},
	}
}

func minLengthError(field string, min int) ValidationError {
	return ValidationError{
		Field:          field,
		Message:        fmt.Sprintf("%s deve ter pelo menos %d caracteres", field, min),
		Type:           TypeLength,
		TranslationKey: "validation.min_length",
		TranslationValues: map[string]any{
			"field": field,
			"min":   min,
		},
	}
}

func maxLengthError(field string, max int) ValidationError {
	return ValidationError{
		Field:          field,
		Message:        fmt.Sprintf("%s deve ter no máximo %d caracteres", field, max),
		Type:           TypeLength,
		TranslationKey: "validation.max_length",
		TranslationValues: map[string]any{
			"field": field,
			"max":   max,
		},
	}
}

func customError(field string, err error) ValidationError {
	if errors.Is(err, ErrInvalidValue) {
		return ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("%s é inválido", field),
			Type:           TypeCustom,
			TranslationKey: "validation.custom",
			TranslationValues: map[string]any{
				"field": field,
			},
		}
	}
	return ValidationError{
		Field:   field,
		Message: err.Error(),
		Type:    TypeCustom,
	}
}
