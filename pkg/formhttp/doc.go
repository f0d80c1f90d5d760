// Package formhttp exposes form definitions, stateless validation and
// multi-step sessions as a JSON API on a chi router.
//
// Routes:
//
//	GET    /forms                          list forms
//	GET    /forms/{formID}                 form definition
//	POST   /forms/{formID}/validate        {data, touched, touch_all}
//	POST   /forms/{formID}/suggestions     {field, value}
//	POST   /forms/{formID}/sessions        {draft_id?, data?}
//	GET    /sessions/{id}                  snapshot
//	PUT    /sessions/{id}/fields/{field}   {value, touch}
//	POST   /sessions/{id}/next | back | submit | save
//	POST   /sessions/{id}/goto/{step}
//	DELETE /sessions/{id}
//
// Every body is an Envelope. Failures carry an ErrorDetail whose Details
// maps fields to messages rendered in the negotiated language (cookie, query
// parameter or Accept-Language):
//
//	{"error": {"code": "step_invalid", "message": "...", "details": {"email": ["..."]}}}
//
// Status codes: 422 for validation failures, 404 for unknown forms, sessions,
// steps and fields, 400 for malformed bodies, 409 for moves the current step
// does not allow, 502 when the submitter fails.
//
// String values are stripped of markup before they reach the validator.
// Live sessions are kept in a bounded Registry; evicted sessions are closed,
// which flushes their draft, and can be resumed with draft_id.
package formhttp
