package validator

import (
	"errors"
	"fmt"
)

// RuleSpec is the serialisable form of a Rule, as written in form definitions.
// Preset copies a named preset before the remaining keys are applied on top of it.
type RuleSpec struct {
	Preset    string `yaml:"preset,omitempty" json:"preset,omitempty"`
	Required  bool   `yaml:"required,omitempty" json:"required,omitempty"`
	MinLength int    `yaml:"min_length,omitempty" json:"min_length,omitempty" validate:"gte=0"`
	MaxLength int    `yaml:"max_length,omitempty" json:"max_length,omitempty" validate:"gte=0"`
	Pattern   string `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Expr      string `yaml:"expr,omitempty" json:"expr,omitempty"`
	Custom    string `yaml:"custom,omitempty" json:"custom,omitempty"`
}

// Compile turns the spec into a Rule, resolving custom names through reg.
func (s RuleSpec) Compile(reg *Registry) (Rule, error) {
	var rule Rule
	if s.Preset != "" {
		preset, ok := Presets()[s.Preset]
		if !ok {
			return Rule{}, fmt.Errorf("%w: %q", ErrUnknownPreset, s.Preset)
		}
		rule = preset
	}

	rule.Required = rule.Required || s.Required
	if s.MinLength > 0 {
		rule.MinLength = s.MinLength
	}
	if s.MaxLength > 0 {
		rule.MaxLength = s.MaxLength
	}

	switch {
	case s.Pattern == "" && s.Expr != "":
		return Rule{}, fmt.Errorf("%w: expr requires pattern: custom", ErrInvalidPattern)
	case s.Pattern != "":
		kind, err := ParsePatternKind(s.Pattern)
		if err != nil {
			return Rule{}, err
		}
		if kind == PatternCustom {
			p, err := CustomPattern(s.Expr)
			if err != nil {
				return Rule{}, err
			}
			rule.Pattern = p
		} else {
			rule.Pattern = PatternFor(kind)
		}
	}

	if s.Custom != "" {
		if reg == nil {
			reg = NewRegistry()
		}
		fn, ok := reg.Lookup(s.Custom)
		if !ok {
			return Rule{}, fmt.Errorf("%w: %q", ErrUnknownCustom, s.Custom)
		}
		rule.Custom = fn
	}

	return rule, nil
}

// CompileRules compiles a whole rule table. All failures are reported together.
func CompileRules(specs map[string][]RuleSpec, reg *Registry) (Rules, error) {
	if reg == nil {
		reg = NewRegistry()
	}

	rules := make(Rules, len(specs))
	var errs []error
	for field, list := range specs {
		compiled := make([]Rule, 0, len(list))
		for i, spec := range list {
			rule, err := spec.Compile(reg)
			if err != nil {
				errs = append(errs, fmt.Errorf("field %q rule %d: %w", field, i, err))
				continue
			}
			compiled = append(compiled, rule)
		}
		rules[field] = compiled
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return rules, nil
}
