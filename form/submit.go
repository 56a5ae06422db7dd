package form

import "github.com/greatxrider/interactive-form-project/http/validation"

// Snapshot is the raw state of the form at one moment, as a browser would
// post it.
type Snapshot struct {
	Fields       map[validation.FieldID]string `json:"fields" yaml:"fields"`
	JobRole      string                        `json:"title,omitempty" yaml:"title"`
	OtherJobRole string                        `json:"other_job_role,omitempty" yaml:"other_job_role"`
	Design       string                        `json:"design,omitempty" yaml:"design"`
	Color        string                        `json:"color,omitempty" yaml:"color"`
	Activities   []string                      `json:"activities,omitempty" yaml:"activities"`
	Payment      PaymentMethod                 `json:"payment,omitempty" yaml:"payment"`
}

// Submission is the outcome of the submission gate.
type Submission struct {
	Allowed bool                `json:"allowed"`
	Results []validation.Result `json:"results"`
	Errors  *validation.Errors  `json:"-"`
}

// Submit runs the submission gate over a snapshot. Name and email are always
// validated; the card fields only when paying by credit card. Every required
// field is evaluated so that all problems surface together.
func Submit(reg *validation.Registry, snap Snapshot) Submission {
	method := snap.Payment
	if method == "" {
		method = DefaultPaymentMethod
	}

	v := reg.Make(snap.Fields, method.RequiredFields()...)
	return Submission{
		Allowed: v.Passes(),
		Results: v.Results(),
		Errors:  v.Errors(),
	}
}
