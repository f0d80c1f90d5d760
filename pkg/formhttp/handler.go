package formhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"

	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/drafts"
	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/i18n"
	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/logger"
	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/multistep"
	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/validator"
)

// Handler serves the form API over a fixed set of prepared definitions.
type Handler struct {
	forms   map[string]*multistep.Definition
	formIDs []string

	registry     *Registry
	translator   *i18n.Translator
	store        drafts.Store
	submitter    multistep.Submitter
	policy       *bluemonday.Policy
	sessionOpts  []multistep.Option
	maxSessions  int
	maxBodyBytes int64
	logger       *slog.Logger

	router chi.Router
}

// New registers forms by ID. Every definition must be prepared and stored
// under its own ID.
func New(forms map[string]*multistep.Definition, opts ...Option) (*Handler, error) {
	h := &Handler{
		forms:        make(map[string]*multistep.Definition, len(forms)),
		policy:       bluemonday.StrictPolicy(),
		maxSessions:  DefaultMaxSessions,
		maxBodyBytes: DefaultMaxBodyBytes,
		logger:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.With(logger.Component("formhttp"))

	for id, def := range forms {
		switch {
		case def == nil:
			return nil, fmt.Errorf("%w: %q is nil", ErrInvalidForm, id)
		case def.ID != id:
			return nil, fmt.Errorf("%w: %q registered as %q", ErrInvalidForm, def.ID, id)
		case def.CompiledRules() == nil:
			return nil, fmt.Errorf("%w: %q is not prepared", ErrInvalidForm, id)
		}
		h.forms[id] = def
		h.formIDs = append(h.formIDs, id)
	}
	sort.Strings(h.formIDs)

	h.registry = NewRegistry(h.maxSessions, h.logger)
	h.router = h.routes()
	return h, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// Registry exposes the live sessions.
func (h *Handler) Registry() *Registry { return h.registry }

// Close closes every live session, flushing pending drafts.
func (h *Handler) Close() {
	h.registry.CloseAll()
}

func (h *Handler) routes() chi.Router {
	r := chi.NewRouter()

	var extr i18n.LangExtractor
	if h.translator != nil {
		extr = i18n.DefaultLangExtractor(i18n.WithMatcher(h.translator.Matcher()))
	}
	r.Use(requestID, h.accessLog, h.limitBody, i18n.Middleware(extr))

	r.NotFound(h.wrap(func(*http.Request) (Response, error) {
		return nil, ErrRouteNotFound
	}))
	r.MethodNotAllowed(h.wrap(func(r *http.Request) (Response, error) {
		return h.errorResponse(r, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "errors.bad_request", nil), nil
	}))

	r.Route("/forms", func(r chi.Router) {
		r.Get("/", h.wrap(h.listForms))
		r.Route("/{formID}", func(r chi.Router) {
			r.Get("/", h.wrap(h.getForm))
			r.Post("/validate", h.wrap(h.validateForm))
			r.Post("/suggestions", h.wrap(h.suggestions))
			r.Post("/sessions", h.wrap(h.createSession))
		})
	})

	r.Route("/sessions/{sessionID}", func(r chi.Router) {
		r.Get("/", h.wrap(h.getSession))
		r.Delete("/", h.wrap(h.deleteSession))
		r.Put("/fields/{field}", h.wrap(h.setField))
		r.Post("/next", h.wrap(h.next))
		r.Post("/back", h.wrap(h.back))
		r.Post("/submit", h.wrap(h.submit))
		r.Post("/goto/{step}", h.wrap(h.goTo))
		r.Post("/save", h.wrap(h.saveDraft))
	})

	return r
}

// apiFunc is an endpoint. A returned error is rendered through classify.
type apiFunc func(r *http.Request) (Response, error)

func (h *Handler) wrap(fn apiFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := fn(r)
		switch {
		case err != nil:
			resp = h.fail(r, err)
		case resp == nil:
			resp = h.fail(r, ErrNilResponse)
		}
		if err := resp.Render(w, r); err != nil {
			h.logger.ErrorContext(r.Context(), "failed to render response", logger.Error(err))
		}
	}
}

func (h *Handler) fail(r *http.Request, err error) Response {
	class := classify(err)
	if class.status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed", logger.Error(err))
	} else {
		h.logger.DebugContext(r.Context(), "request rejected", logger.Error(err))
	}
	return h.errorResponse(r, class.status, class.code, class.key, class.errs)
}

func (h *Handler) errorResponse(r *http.Request, status int, code, key string, errs validator.ValidationErrors) Response {
	lang := i18n.GetLocale(r.Context())
	detail := &ErrorDetail{
		Code:    code,
		Message: h.translate(lang, key, http.StatusText(status)),
	}
	if len(errs) > 0 {
		detail.Details = make(map[string][]string)
		for _, e := range h.localize(lang, errs) {
			detail.Details[e.Field] = append(detail.Details[e.Field], e.Message)
		}
	}
	return JSONError(status, detail)
}

func (h *Handler) translate(lang, key, def string, args ...string) string {
	if h.translator == nil || key == "" {
		return def
	}
	return h.translator.Td(lang, key, def, args...)
}

// localize returns a copy of errs with messages rendered for lang.
func (h *Handler) localize(lang string, errs validator.ValidationErrors) validator.ValidationErrors {
	if errs == nil {
		return nil
	}
	out := make(validator.ValidationErrors, len(errs))
	for i, e := range errs {
		e.Message = h.translate(lang, e.TranslationKey, e.Message, e.Args()...)
		out[i] = e
	}
	return out
}

// decode reads a JSON body into v. An empty body leaves v untouched when
// optional is set.
func decode(r *http.Request, v any, optional bool) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return nil
		}
		return errors.Join(ErrBadRequest, err)
	}
	return nil
}

// sanitize strips markup from string values; other kinds pass through.
func (h *Handler) sanitize(v validator.Value) validator.Value {
	if v.Kind() != validator.KindString {
		return v
	}
	s, _ := v.Text()
	return validator.String(html.UnescapeString(h.policy.Sanitize(s)))
}

func (h *Handler) form(r *http.Request) (*multistep.Definition, error) {
	id := chi.URLParam(r, "formID")
	def, ok := h.forms[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFormNotFound, id)
	}
	return def, nil
}

func (h *Handler) session(r *http.Request) (*multistep.Session, error) {
	id := chi.URLParam(r, "sessionID")
	s, ok := h.registry.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSessionNotFound, id)
	}
	return s, nil
}
