package formvalidation

import (
	"slices"

	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/validator"
)

// Summary is derived from the error map, the touched map and the form data.
type Summary struct {
	IsValid              bool                       `json:"is_valid"`
	ErrorCount           int                        `json:"error_count"`
	TouchedFieldsCount   int                        `json:"touched_fields_count"`
	TotalFields          int                        `json:"total_fields"`
	CompletionPercentage float64                    `json:"completion_percentage"`
	Errors               validator.ValidationErrors `json:"errors"`
}

// Summary computes the current validation summary. Errors are ordered by field
// name, then by rule order. IsValid holds exactly when ErrorCount is zero.
// Only touched fields present in the form data count towards completion.
func (e *Engine) Summary() Summary {
	data := e.data()
	total := len(data)

	e.mu.RLock()
	defer e.mu.RUnlock()

	fields := make([]string, 0, len(e.errors))
	for field := range e.errors {
		fields = append(fields, field)
	}
	slices.Sort(fields)

	all := validator.ValidationErrors{}
	for _, field := range fields {
		all = append(all, e.errors[field]...)
	}

	touched := 0
	for field, t := range e.touched {
		if _, ok := data[field]; t && ok {
			touched++
		}
	}

	s := Summary{
		IsValid:            len(all) == 0,
		ErrorCount:         len(all),
		TouchedFieldsCount: touched,
		TotalFields:        total,
		Errors:             all,
	}
	if total > 0 {
		s.CompletionPercentage = float64(touched) / float64(total) * 100
	}
	return s
}
