package formhttp

import (
	"errors"
	"net/http"

	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/drafts"
	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/multistep"
	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/validator"
)

var (
	ErrFormNotFound    = errors.New("form not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrRouteNotFound   = errors.New("route not found")
	ErrBadRequest      = errors.New("bad request")
	ErrInvalidForm     = errors.New("invalid form registration")
	ErrNilResponse     = errors.New("handler returned nil response")
)

// Error codes in ErrorDetail.Code.
const (
	CodeBadRequest       = "bad_request"
	CodeNotFound         = "not_found"
	CodeMethodNotAllowed = "method_not_allowed"
	CodeValidation       = "validation_error"
	CodeStepInvalid      = "step_invalid"
	CodeFormInvalid      = "form_invalid"
	CodeTransition       = "transition_error"
	CodeDraftMismatch    = "draft_mismatch"
	CodeSubmitFailed     = "submission_failed"
	CodeInternal         = "internal_error"
)

// errorClass is how an error is presented: status, machine code and the
// catalog key of its human message.
type errorClass struct {
	status int
	code   string
	key    string
	errs   validator.ValidationErrors
}

// classify maps domain errors onto HTTP semantics. Validation failures carry
// their field errors so they end up in ErrorDetail.Details.
func classify(err error) errorClass {
	var invalid *multistep.FormInvalidError
	switch {
	case errors.As(err, &invalid):
		if invalid.Step != "" {
			return errorClass{http.StatusUnprocessableEntity, CodeStepInvalid, "errors.step_invalid", invalid.Errors}
		}
		return errorClass{http.StatusUnprocessableEntity, CodeFormInvalid, "errors.form_invalid", invalid.Errors}
	case validator.IsValidationError(err):
		return errorClass{http.StatusUnprocessableEntity, CodeValidation, "errors.form_invalid", validator.ExtractValidationErrors(err)}
	case errors.Is(err, ErrFormNotFound),
		errors.Is(err, ErrSessionNotFound),
		errors.Is(err, ErrRouteNotFound),
		errors.Is(err, drafts.ErrDraftNotFound),
		errors.Is(err, multistep.ErrUnknownStep),
		errors.Is(err, multistep.ErrUnknownField):
		return errorClass{status: http.StatusNotFound, code: CodeNotFound, key: "errors.not_found"}
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, validator.ErrInvalidValue),
		errors.Is(err, drafts.ErrEmptyID),
		errors.Is(err, multistep.ErrNoStore):
		return errorClass{status: http.StatusBadRequest, code: CodeBadRequest, key: "errors.bad_request"}
	case errors.Is(err, multistep.ErrDraftMismatch):
		return errorClass{status: http.StatusConflict, code: CodeDraftMismatch, key: "errors.transition"}
	case errors.Is(err, multistep.ErrActionFailed):
		return errorClass{status: http.StatusBadGateway, code: CodeSubmitFailed, key: "errors.internal"}
	case multistep.IsTransitionError(err),
		errors.Is(err, multistep.ErrSubmitted),
		errors.Is(err, multistep.ErrSessionClosed):
		return errorClass{status: http.StatusConflict, code: CodeTransition, key: "errors.transition"}
	default:
		return errorClass{status: http.StatusInternalServerError, code: CodeInternal, key: "errors.internal"}
	}
}
