// Package validation holds the registration form's field registry.
//
// # Overview
//
// Every validated form field is identified by a FieldID. The Registry maps
// each FieldID to a FieldRule: a predicate over the raw field value plus an
// ordered list of (precondition, message) pairs. When a value is invalid the
// first matching precondition picks the message shown to the user.
//
// # Single field (keystroke / blur)
//
//	reg := validation.NewRegistry()
//	res, err := reg.Validate(validation.Email, "ada@example")
//	// res.Valid == false
//	// res.Message == "Email address must be formatted correctly."
//
// Unknown field ids are rejected with ErrUnknownField instead of passing
// silently.
//
// # Several fields (submit)
//
//	v := reg.Make(map[validation.FieldID]string{
//	    validation.Name:  "Ada",
//	    validation.Email: "ada@example.com",
//	}, validation.Name, validation.Email)
//
//	if v.Fails() {
//	    // v.Errors() returns *Errors with Bag map[string][]string
//	    // JSON: {"errors": {"field": ["message"]}}
//	}
//
// Every listed field is evaluated, so the error bag carries all problems at
// once rather than stopping on the first.
//
// # Rules
//
//   - name   — not blank, first letter upper case, at least two characters
//   - email  — local@domain.tld, no '@' in the local part, no '.' in the domain
//   - cc-num — 13 to 16 digits
//   - zip    — exactly 5 digits
//   - cvv    — exactly 3 digits
package validation
