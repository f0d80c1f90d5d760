// Package multistep runs multi-step forms.
//
// A Definition, usually loaded from YAML, lists the steps of a form and the
// validation rules of every field:
//
//	id: contact
//	title: Contact
//	steps:
//	  - id: personal
//	    fields: [name, email]
//	  - id: details
//	    fields: [message]
//	rules:
//	  name:
//	    - preset: name
//	  email:
//	    - preset: email
//
// A Session holds the values for one user. SetValue revalidates the field once
// typing settles, Next only leaves a step whose fields are valid, and Submit
// validates the whole form before calling the Submitter. Steps form a guarded
// state machine (Flow): "next", "back", "submit" and "goto:<step>" events,
// where goto is only allowed to steps already visited.
//
// With a drafts.Store the session saves a draft after every step change and
// shortly after edits, and Restore resumes from it.
package multistep
