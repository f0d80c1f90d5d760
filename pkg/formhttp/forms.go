package formhttp

import (
	"fmt"
	"net/http"

	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/formvalidation"
	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/i18n"
	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/multistep"
	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/validator"
)

func (h *Handler) listForms(*http.Request) (Response, error) {
	out := make([]FormSummary, 0, len(h.formIDs))
	for _, id := range h.formIDs {
		out = append(out, summarize(h.forms[id]))
	}
	return JSON(out, WithMeta(map[string]any{"count": len(out)})), nil
}

func (h *Handler) getForm(r *http.Request) (Response, error) {
	def, err := h.form(r)
	if err != nil {
		return nil, err
	}
	return JSON(def), nil
}

type validateRequest struct {
	Data     map[string]validator.Value `json:"data"`
	Touched  []string                   `json:"touched,omitempty"`
	TouchAll bool                       `json:"touch_all,omitempty"`
}

// validateForm runs every rule against the posted data without creating a
// session. Fields the form does not declare are ignored; errors show for
// touched fields only.
func (h *Handler) validateForm(r *http.Request) (Response, error) {
	def, err := h.form(r)
	if err != nil {
		return nil, err
	}
	var req validateRequest
	if err := decode(r, &req, false); err != nil {
		return nil, err
	}

	data := h.formData(def, req.Data)
	engine := formvalidation.New(formvalidation.Config{
		FormData: formvalidation.Static(data),
		Rules:    def.CompiledRules(),
	}, formvalidation.WithLogger(h.logger))
	engine.ValidateAll()

	if req.TouchAll {
		for _, field := range def.Fields() {
			engine.TouchField(field)
		}
	}
	for _, field := range req.Touched {
		if def.HasField(field) {
			engine.TouchField(field)
		}
	}

	lang := i18n.GetLocale(r.Context())
	summary := h.summaryView(lang, engine.Summary())
	states := make(map[string]formvalidation.FieldState, len(data))
	for _, field := range def.Fields() {
		states[field] = engine.GetFieldState(field)
	}
	return JSON(ValidationView{
		Summary: summary,
		Fields:  fieldViews(states, summary.Errors),
	}), nil
}

type suggestionsRequest struct {
	Field string          `json:"field"`
	Value validator.Value `json:"value"`
}

func (h *Handler) suggestions(r *http.Request) (Response, error) {
	def, err := h.form(r)
	if err != nil {
		return nil, err
	}
	var req suggestionsRequest
	if err := decode(r, &req, false); err != nil {
		return nil, err
	}
	if !def.HasField(req.Field) {
		return nil, fmt.Errorf("%w: %q", multistep.ErrUnknownField, req.Field)
	}

	value := h.sanitize(req.Value)
	hints := validator.Suggestions(req.Field, value, def.CompiledRules()[req.Field], validator.FormData{req.Field: value})
	if hints == nil {
		hints = []string{}
	}
	return JSON(map[string]any{
		"field":       req.Field,
		"suggestions": hints,
	}), nil
}

// formData keeps the declared fields of raw, sanitized, and fills the rest
// with empty values.
func (h *Handler) formData(def *multistep.Definition, raw map[string]validator.Value) validator.FormData {
	fields := def.Fields()
	data := make(validator.FormData, len(fields))
	for _, field := range fields {
		data[field] = h.sanitize(raw[field])
	}
	return data
}
