package validator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies the dynamic shape of a form field value.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindString
	KindNumber
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "empty"
	}
}

// Value is a form field value: a string, a number, a boolean, or nothing.
// The zero Value is Empty.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
}

func String(s string) Value { return Value{kind: KindString, str: s} }

func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

func Int(i int) Value { return Value{kind: KindNumber, num: float64(i)} }

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

func Empty() Value { return Value{} }

// ValueOf converts a decoded JSON scalar (or a Go primitive) into a Value.
// Unsupported types yield Empty and false.
func ValueOf(v any) (Value, bool) {
	switch val := v.(type) {
	case nil:
		return Empty(), true
	case Value:
		return val, true
	case string:
		return String(val), true
	case bool:
		return Bool(val), true
	case float64:
		return Number(val), true
	case float32:
		return Number(float64(val)), true
	case int:
		return Int(val), true
	case int32:
		return Number(float64(val)), true
	case int64:
		return Number(float64(val)), true
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return Empty(), false
		}
		return Number(f), true
	default:
		return Empty(), false
	}
}

func (v Value) Kind() Kind { return v.kind }

// IsEmpty reports whether the value is absent or a string that is blank after trimming.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindEmpty:
		return true
	case KindString:
		return strings.TrimSpace(v.str) == ""
	default:
		return false
	}
}

// Text returns the string payload. The second result is false for non-string values.
func (v Value) Text() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// Float returns the numeric payload. The second result is false for non-number values.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Truth returns the boolean payload. The second result is false for non-bool values.
func (v Value) Truth() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Any returns the value as a plain Go scalar (nil for Empty).
func (v Value) Any() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Any())
}

func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	parsed, ok := ValueOf(raw)
	if !ok {
		return fmt.Errorf("%w: unsupported JSON value %s", ErrInvalidValue, string(data))
	}
	*v = parsed
	return nil
}

// FormData maps field names to their current values.
type FormData map[string]Value

// Get returns the value of a field, Empty when absent.
func (d FormData) Get(field string) Value {
	if d == nil {
		return Empty()
	}
	return d[field]
}

// Fields returns the field names in sorted order.
func (d FormData) Fields() []string {
	fields := make([]string, 0, len(d))
	for name := range d {
		fields = append(fields, name)
	}
	slices.Sort(fields)
	return fields
}

// Clone returns a shallow copy; Values are immutable so this is a full copy.
func (d FormData) Clone() FormData {
	if d == nil {
		return FormData{}
	}
	out := make(FormData, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// FormDataOf converts a decoded JSON object into FormData.
func FormDataOf(raw map[string]any) (FormData, error) {
	out := make(FormData, len(raw))
	for field, v := range raw {
		val, ok := ValueOf(v)
		if !ok {
			return nil, fmt.Errorf("%w: field %q has unsupported type %T", ErrInvalidValue, field, v)
		}
		out[field] = val
	}
	return out, nil
}
