package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ── Field identifiers ────────────────────────────────────────────────────────

// FieldID names a validated form field. The values match the input ids of
// the registration page.
type FieldID string

const (
	Name       FieldID = "name"
	Email      FieldID = "email"
	CardNumber FieldID = "cc-num"
	Zip        FieldID = "zip"
	CVV        FieldID = "cvv"
)

// ErrUnknownField is returned for a field id the registry has no rule for.
var ErrUnknownField = errors.New("unknown field")

// ParseFieldID converts a raw id into a FieldID.
func ParseFieldID(s string) (FieldID, error) {
	switch id := FieldID(s); id {
	case Name, Email, CardNumber, Zip, CVV:
		return id, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// ── Types ────────────────────────────────────────────────────────────────────

// Result is the outcome of validating one field value.
type Result struct {
	Field   FieldID `json:"field"`
	Valid   bool    `json:"valid"`
	Message string  `json:"message,omitempty"`
}

// Errors holds validation errors for the fields that failed.
// JSON output: {"errors": {"field": ["msg1", "msg2"]}}
type Errors struct {
	Bag map[string][]string `json:"errors"`
}

func (e *Errors) add(field, msg string) {
	if e.Bag == nil {
		e.Bag = make(map[string][]string)
	}
	e.Bag[field] = append(e.Bag[field], msg)
}

// Has returns true if there are any errors.
func (e *Errors) Has() bool { return len(e.Bag) > 0 }

// First returns the first error for a field.
func (e *Errors) First(field string) string {
	if msgs, ok := e.Bag[field]; ok && len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// ── Rules ────────────────────────────────────────────────────────────────────

type condition struct {
	when    func(value string) bool
	message string
}

// FieldRule is the predicate and message selection for one field.
type FieldRule struct {
	ID         FieldID
	valid      func(value string) bool
	conditions []condition
}

// Valid reports whether value satisfies the rule.
func (r FieldRule) Valid(value string) bool { return r.valid(value) }

// Message returns the most relevant message for an invalid value, or "" when
// value is valid or no precondition matches.
func (r FieldRule) Message(value string) string {
	if r.Valid(value) {
		return ""
	}
	for _, c := range r.conditions {
		if c.when(value) {
			return c.message
		}
	}
	return ""
}

// Check evaluates value against the rule.
func (r FieldRule) Check(value string) Result {
	ok := r.Valid(value)
	res := Result{Field: r.ID, Valid: ok}
	if !ok {
		res.Message = r.Message(value)
	}
	return res
}

var (
	emailRX   = regexp.MustCompile(`(?i)^[^@]+@[^@.]+\.[a-z]+$`)
	cardRX    = regexp.MustCompile(`^\d{13,16}$`)
	zipRX     = regexp.MustCompile(`^\d{5}$`)
	cvvRX     = regexp.MustCompile(`^\d{3}$`)
	otherwise = func(string) bool { return true }
)

func blank(value string) bool { return strings.TrimSpace(value) == "" }

func firstRuneLower(value string) bool {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(value))
	return !unicode.IsUpper(r)
}

func tooShort(value string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(value)) < 2
}

func nameRule() FieldRule {
	return FieldRule{
		ID: Name,
		valid: func(v string) bool {
			return !blank(v) && !firstRuneLower(v) && !tooShort(v)
		},
		conditions: []condition{
			{blank, "Please enter your name."},
			{firstRuneLower, "The first character of your name must be uppercase."},
			{tooShort, "Your name must have at least two characters."},
		},
	}
}

// patternRule builds the blank-or-malformed rule shared by the email and
// payment fields.
func patternRule(id FieldID, rx *regexp.Regexp, blankMsg, formatMsg string) FieldRule {
	return FieldRule{
		ID:    id,
		valid: rx.MatchString,
		conditions: []condition{
			{blank, blankMsg},
			{otherwise, formatMsg},
		},
	}
}

// ── Registry ─────────────────────────────────────────────────────────────────

// Registry is the immutable table of field rules.
type Registry struct {
	rules map[FieldID]FieldRule
	order []FieldID
}

// NewRegistry builds the registry with the rules of the registration form.
func NewRegistry() *Registry {
	rules := []FieldRule{
		nameRule(),
		patternRule(Email, emailRX,
			"Email address cannot be empty.",
			"Email address must be formatted correctly."),
		patternRule(CardNumber, cardRX,
			"Please enter your credit card number.",
			"Credit card number must be 13 to 16 digits long."),
		patternRule(Zip, zipRX,
			"Please enter your zip code.",
			"Zip code must be 5 digits long."),
		patternRule(CVV, cvvRX,
			"Please enter your CVV.",
			"CVV must be 3 digits long."),
	}

	reg := &Registry{rules: make(map[FieldID]FieldRule, len(rules))}
	for _, r := range rules {
		reg.rules[r.ID] = r
		reg.order = append(reg.order, r.ID)
	}
	return reg
}

// Rule returns the rule registered for id.
func (reg *Registry) Rule(id FieldID) (FieldRule, bool) {
	r, ok := reg.rules[id]
	return r, ok
}

// Fields returns the registered field ids in declaration order.
func (reg *Registry) Fields() []FieldID {
	return append([]FieldID(nil), reg.order...)
}

// Validate checks a single raw value.
func (reg *Registry) Validate(id FieldID, value string) (Result, error) {
	r, ok := reg.rules[id]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownField, id)
	}
	return r.Check(value), nil
}

// ── Validator ────────────────────────────────────────────────────────────────

// Validator validates a set of fields from one form snapshot.
type Validator struct {
	registry *Registry
	data     map[FieldID]string
	fields   []FieldID
	results  []Result
	errors   *Errors
	ran      bool
}

// Make creates a Validator over data for the listed fields. A missing entry
// in data is validated as an empty value.
func (reg *Registry) Make(data map[FieldID]string, fields ...FieldID) *Validator {
	return &Validator{
		registry: reg,
		data:     data,
		fields:   fields,
		errors:   &Errors{},
	}
}

// Fails runs validation and returns true if any field is invalid.
func (v *Validator) Fails() bool {
	v.validate()
	return v.errors.Has()
}

// Passes runs validation and returns true if all fields are valid.
func (v *Validator) Passes() bool { return !v.Fails() }

// Errors returns the validation error bag.
func (v *Validator) Errors() *Errors {
	v.validate()
	return v.errors
}

// Results returns one Result per validated field, in the order given to Make.
func (v *Validator) Results() []Result {
	v.validate()
	return v.results
}

func (v *Validator) validate() {
	if v.ran {
		return
	}
	v.ran = true

	for _, field := range v.fields {
		res, err := v.registry.Validate(field, v.data[field])
		if err != nil {
			v.errors.add(string(field), err.Error())
			v.results = append(v.results, Result{Field: field, Message: err.Error()})
			continue
		}
		v.results = append(v.results, res)
		if !res.Valid {
			v.errors.add(string(field), res.Message)
		}
	}
}
