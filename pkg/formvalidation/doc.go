// Package formvalidation is the stateful validation engine of a form.
//
// An Engine pairs a rule table with a live FormSource and keeps, per field,
// the latest list of validation errors and whether the user has touched the
// field. Validation is eager, display is gated: GetFieldState reports
// ShowError only for touched fields with errors.
//
//	data := validator.FormData{"email": validator.String("")}
//	e := formvalidation.New(formvalidation.Config{
//	    FormData: formvalidation.FormDataFunc(func() validator.FormData { return data }),
//	    Rules:    validator.Rules{"email": {validator.EmailRule()}},
//	})
//	e.TouchField("email")
//	e.ValidateField("email", data["email"])
//	e.GetFieldState("email").ShowError // true
//
// ValidateFieldDebounced is a raw primitive: each call starts its own timer and
// returns a CancelFunc. Per-field de-duplication lives in the orchestrator
// (see package multistep).
package formvalidation
