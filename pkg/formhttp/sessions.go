package formhttp

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/i18n"
	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/logger"
	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/multistep"
	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/validator"
)

type createSessionRequest struct {
	DraftID string                     `json:"draft_id,omitempty"`
	Data    map[string]validator.Value `json:"data,omitempty"`
}

// createSession starts a session, or resumes one when draft_id is given: a
// live session with that ID is returned as is, otherwise the draft is loaded
// from the store.
func (h *Handler) createSession(r *http.Request) (Response, error) {
	def, err := h.form(r)
	if err != nil {
		return nil, err
	}
	var req createSessionRequest
	if err := decode(r, &req, true); err != nil {
		return nil, err
	}
	lang := i18n.GetLocale(r.Context())

	if req.DraftID != "" {
		if s, ok := h.registry.Get(req.DraftID); ok {
			if s.Definition().ID != def.ID {
				return nil, fmt.Errorf("%w: %q", multistep.ErrDraftMismatch, s.Definition().ID)
			}
			return JSON(h.sessionView(lang, s)), nil
		}
	}

	s, err := multistep.NewSession(def, h.newSessionOptions(req.DraftID)...)
	if err != nil {
		return nil, err
	}
	if req.DraftID != "" {
		if err := s.Restore(r.Context()); err != nil {
			_ = s.Close()
			return nil, err
		}
	}
	for field, value := range req.Data {
		if err := s.SetValue(field, h.sanitize(value)); err != nil {
			_ = s.Close()
			return nil, err
		}
	}

	h.registry.Put(s)
	h.logger.InfoContext(r.Context(), "session started",
		logger.SessionID(s.ID()),
		logger.FormID(def.ID),
		logger.DraftID(req.DraftID),
	)
	return JSON(h.sessionView(lang, s), WithStatus(http.StatusCreated)), nil
}

func (h *Handler) newSessionOptions(id string) []multistep.Option {
	opts := append([]multistep.Option{}, h.sessionOpts...)
	opts = append(opts, multistep.WithLogger(h.logger), multistep.WithSessionID(id))
	if h.store != nil {
		opts = append(opts, multistep.WithStore(h.store))
	}
	if h.submitter != nil {
		opts = append(opts, multistep.WithSubmitter(h.submitter))
	}
	return opts
}

func (h *Handler) getSession(r *http.Request) (Response, error) {
	s, err := h.session(r)
	if err != nil {
		return nil, err
	}
	return JSON(h.sessionView(i18n.GetLocale(r.Context()), s)), nil
}

func (h *Handler) deleteSession(r *http.Request) (Response, error) {
	id := chi.URLParam(r, "sessionID")
	if !h.registry.Remove(id) {
		return nil, fmt.Errorf("%w: %q", ErrSessionNotFound, id)
	}
	return NoContent(), nil
}

type setFieldRequest struct {
	Value validator.Value `json:"value"`
	Touch bool            `json:"touch,omitempty"`
}

// setField stores a value. With touch set the field is validated at once, the
// way a blur would; otherwise validation follows the session's debounce.
func (h *Handler) setField(r *http.Request) (Response, error) {
	s, err := h.session(r)
	if err != nil {
		return nil, err
	}
	var req setFieldRequest
	if err := decode(r, &req, false); err != nil {
		return nil, err
	}

	field := chi.URLParam(r, "field")
	value := h.sanitize(req.Value)
	if err := s.SetValue(field, value); err != nil {
		return nil, err
	}
	if req.Touch {
		if err := s.Touch(field); err != nil {
			return nil, err
		}
		s.Engine().ValidateField(field, value)
	}
	return JSON(h.sessionView(i18n.GetLocale(r.Context()), s)), nil
}

func (h *Handler) next(r *http.Request) (Response, error) {
	return h.transition(r, (*multistep.Session).Next)
}

func (h *Handler) back(r *http.Request) (Response, error) {
	return h.transition(r, (*multistep.Session).Back)
}

func (h *Handler) submit(r *http.Request) (Response, error) {
	return h.transition(r, (*multistep.Session).Submit)
}

func (h *Handler) goTo(r *http.Request) (Response, error) {
	step := chi.URLParam(r, "step")
	return h.transition(r, func(s *multistep.Session, ctx context.Context) error {
		return s.GoTo(ctx, step)
	})
}

func (h *Handler) transition(r *http.Request, move func(*multistep.Session, context.Context) error) (Response, error) {
	s, err := h.session(r)
	if err != nil {
		return nil, err
	}
	if err := move(s, r.Context()); err != nil {
		return nil, err
	}
	return JSON(h.sessionView(i18n.GetLocale(r.Context()), s)), nil
}

// saveDraft persists the session now instead of waiting for auto-save.
func (h *Handler) saveDraft(r *http.Request) (Response, error) {
	s, err := h.session(r)
	if err != nil {
		return nil, err
	}
	if err := s.Save(r.Context()); err != nil {
		return nil, err
	}
	return JSON(map[string]any{"draft_id": s.ID()}), nil
}
