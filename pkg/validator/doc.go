// Package validator implements declarative, field-level form validation.
//
// A form is a FormData map of field names to Values. Each field may carry an
// ordered list of Rule entries; a Rule combines a required flag, rune-length
// bounds, a tagged Pattern and an optional CustomFunc. ValidateField evaluates
// every entry and collects the failures instead of stopping at the first one,
// so a caller always sees the complete list for a field.
//
// Empty values (absent, or a string that is blank after trimming) only ever
// produce required errors. Length, pattern and custom checks run on non-empty
// values only, and length and pattern checks apply to strings only.
//
// # Patterns
//
// Built-in patterns are tagged with a PatternKind and their failure message is
// chosen by kind:
//
//	validator.Rule{Required: true, Pattern: validator.PatternFor(validator.PatternEmail)}
//
// User expressions are wrapped with CustomPattern and report the generic
// "Formato inválido para <field>" message.
//
// # Custom checks
//
// A CustomFunc returns nil to accept the value. Returning ErrInvalidValue (or
// an error wrapping it) rejects the value with the default message; any other
// error rejects it and its text is shown to the user. A panicking check is
// reported as a *PanicError and treated as ErrInvalidValue.
//
// # Declarative rules
//
// RuleSpec is the YAML/JSON form of a Rule. CompileRules resolves presets,
// pattern kinds and named custom checks (see Registry) into Rules.
//
// # Translation
//
// Every built-in error carries a TranslationKey and TranslationValues that
// match the catalogs embedded in Locales. Messages default to Brazilian
// Portuguese.
package validator
