package formhttp

import (
	"fmt"

	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/formvalidation"
	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/multistep"
	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/validator"
)

type StepSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Fields   int    `json:"fields"`
	Optional bool   `json:"optional,omitempty"`
}

// FormSummary is the list entry of a form.
type FormSummary struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Steps       []StepSummary `json:"steps"`
}

func summarize(def *multistep.Definition) FormSummary {
	steps := make([]StepSummary, len(def.Steps))
	for i, st := range def.Steps {
		steps[i] = StepSummary{ID: st.ID, Title: st.Title, Fields: len(st.Fields), Optional: st.Optional}
	}
	return FormSummary{ID: def.ID, Title: def.Title, Description: def.Description, Steps: steps}
}

// SummaryView is a validation summary with localized messages.
type SummaryView struct {
	formvalidation.Summary
	Message string `json:"message"`
}

// ValidationView is the result of a stateless form validation.
type ValidationView struct {
	Summary SummaryView                          `json:"summary"`
	Fields  map[string]formvalidation.FieldState `json:"fields"`
}

// SessionView is a session snapshot with localized messages and the
// definition of the current step.
type SessionView struct {
	multistep.Snapshot
	Summary     SummaryView                          `json:"summary"`
	Fields      map[string]formvalidation.FieldState `json:"fields"`
	CurrentStep multistep.StepDef                    `json:"current_step"`
}

func (h *Handler) summaryView(lang string, s formvalidation.Summary) SummaryView {
	s.Errors = h.localize(lang, s.Errors)
	if s.IsValid {
		return SummaryView{Summary: s, Message: h.translate(lang, "summary.valid", "Formulário válido")}
	}
	msg := fmt.Sprintf("%d erro(s) encontrado(s)", s.ErrorCount)
	if h.translator != nil {
		msg = h.translator.N(lang, "summary.invalid", s.ErrorCount)
	}
	return SummaryView{Summary: s, Message: msg}
}

// fieldViews swaps each field's first error for its localized form.
func fieldViews(states map[string]formvalidation.FieldState, localized validator.ValidationErrors) map[string]formvalidation.FieldState {
	out := make(map[string]formvalidation.FieldState, len(states))
	for field, st := range states {
		if st.HasError {
			if errs := localized.GetErrors(field); len(errs) > 0 {
				st.Error = errs[0].Message
			}
		}
		out[field] = st
	}
	return out
}

func (h *Handler) sessionView(lang string, s *multistep.Session) SessionView {
	snap := s.Snapshot()
	summary := h.summaryView(lang, snap.Summary)
	current, _, _ := s.Definition().Step(snap.Step)
	return SessionView{
		Snapshot:    snap,
		Summary:     summary,
		Fields:      fieldViews(snap.Fields, summary.Errors),
		CurrentStep: current,
	}
}
