package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// PatternKind tags a pattern so the format message is chosen by kind,
// independent of the expression text.
type PatternKind string

const (
	PatternEmail        PatternKind = "email"
	PatternPhone        PatternKind = "phone"
	PatternCPF          PatternKind = "cpf"
	PatternDigits       PatternKind = "digits"
	PatternLetters      PatternKind = "letters"
	PatternAlphanumeric PatternKind = "alphanumeric"
	PatternCustom       PatternKind = "custom"
)

var (
	emailRegex        = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex        = regexp.MustCompile(`^\(?\d{2}\)?\s?\d{4,5}-?\d{4}$`)
	cpfRegex          = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)
	digitsRegex       = regexp.MustCompile(`^\d+$`)
	lettersRegex      = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s]+$`)
	alphanumericRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
)

var builtinPatterns = map[PatternKind]*regexp.Regexp{
	PatternEmail:        emailRegex,
	PatternPhone:        phoneRegex,
	PatternCPF:          cpfRegex,
	PatternDigits:       digitsRegex,
	PatternLetters:      lettersRegex,
	PatternAlphanumeric: alphanumericRegex,
}

var formatMessages = map[PatternKind]string{
	PatternEmail:        "Digite um email válido",
	PatternPhone:        "Digite um telefone válido",
	PatternCPF:          "Digite um CPF válido",
	PatternDigits:       "Digite apenas números",
	PatternLetters:      "Digite apenas letras",
	PatternAlphanumeric: "Digite apenas letras e números",
}

// ParsePatternKind resolves a kind name, case-insensitively.
func ParsePatternKind(name string) (PatternKind, error) {
	kind := PatternKind(strings.ToLower(strings.TrimSpace(name)))
	if kind == PatternCustom {
		return kind, nil
	}
	if _, ok := builtinPatterns[kind]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPattern, name)
	}
	return kind, nil
}

// PatternFor returns the built-in pattern of a kind. It panics for PatternCustom
// and unknown kinds; use CustomPattern for user expressions.
func PatternFor(kind PatternKind) *Pattern {
	re, ok := builtinPatterns[kind]
	if !ok {
		panic(fmt.Sprintf("validator: no built-in pattern for kind %q", kind))
	}
	return &Pattern{Kind: kind, Regexp: re}
}

// CustomPattern compiles a user expression. Its mismatch message is the generic
// "Formato inválido para <field>".
func CustomPattern(expr string) (*Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.Join(ErrInvalidPattern, err)
	}
	return &Pattern{Kind: PatternCustom, Regexp: re}, nil
}

// MustCustomPattern is like CustomPattern but panics on an invalid expression.
func MustCustomPattern(expr string) *Pattern {
	p, err := CustomPattern(expr)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Pattern) matches(s string) bool {
	if p == nil || p.Regexp == nil {
		return true
	}
	return p.Regexp.MatchString(s)
}

func formatError(field string, kind PatternKind) ValidationError {
	msg, ok := formatMessages[kind]
	key := "validation.format." + string(kind)
	if !ok {
		msg = fmt.Sprintf("Formato inválido para %s", field)
		key = "validation.format.custom"
	}
	return ValidationError{
		Field:          field,
		Message:        msg,
		Type:           TypeFormat,
		TranslationKey: key,
		TranslationValues: map[string]any{
			"field": field,
		},
	}
}
