package form

import (
	"fmt"
	"slices"

	"github.com/greatxrider/interactive-form-project/http/validation"
)

// JobRole is one option of the job role selector.
type JobRole struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Design is one option of the shirt design selector.
type Design struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Options is everything the page offers to choose from.
type Options struct {
	JobRoles   []JobRole     `json:"job_roles"`
	Designs    []Design      `json:"designs"`
	Colors     []ColorOption `json:"colors"`
	Activities []Activity    `json:"activities"`
}

// View is the desired UI state derived from the controller state. A thin
// adapter applies it to whatever renders the form.
type View struct {
	Fields       []validation.Result  `json:"fields"`
	JobRole      string               `json:"title"`
	OtherJobRole ElementView          `json:"other_job_role"`
	Design       string               `json:"design"`
	Color        ColorSelectView      `json:"color"`
	Activities   []Activity           `json:"activities"`
	Total        int                  `json:"total"`
	TotalLabel   string               `json:"total_label"`
	Payment      PaymentMethod        `json:"payment"`
	Sections     []PaymentSectionView `json:"payment_sections"`
}

// Controller owns the state of one form. It is not safe for concurrent use;
// callers serialise events the way a browser event loop would.
type Controller struct {
	registry *validation.Registry
	options  Options

	fields       map[validation.FieldID]string
	touched      map[validation.FieldID]bool
	jobRole      string
	otherJobRole string
	design       string
	color        string
	payment      PaymentMethod
	schedule     *Schedule
}

// NewController returns a controller in the page-load state: nothing entered,
// credit card selected, colour selector disabled.
func NewController(reg *validation.Registry, opts Options) (*Controller, error) {
	schedule, err := NewSchedule(opts.Activities)
	if err != nil {
		return nil, err
	}
	return &Controller{
		registry: reg,
		options:  opts,
		fields:   make(map[validation.FieldID]string),
		touched:  make(map[validation.FieldID]bool),
		payment:  DefaultPaymentMethod,
		schedule: schedule,
	}, nil
}

// SetField stores a field value and validates it. It backs both keystroke and
// blur validation.
func (c *Controller) SetField(id validation.FieldID, value string) (validation.Result, error) {
	res, err := c.registry.Validate(id, value)
	if err != nil {
		return validation.Result{}, err
	}
	c.fields[id] = value
	c.touched[id] = true
	return res, nil
}

// SelectJobRole changes the job role. Leaving "other" clears the free-text
// value along with disabling it.
func (c *Controller) SelectJobRole(role string) error {
	if !slices.ContainsFunc(c.options.JobRoles, func(r JobRole) bool { return r.Value == role }) {
		return fmt.Errorf("%w: job role %q", ErrUnknownOption, role)
	}
	c.jobRole = role
	if role != OtherJobRole {
		c.otherJobRole = ""
	}
	return nil
}

// SetOtherJobRole stores the free-text job role.
func (c *Controller) SetOtherJobRole(value string) error {
	if JobRoleView(c.jobRole).Disabled {
		return fmt.Errorf("%w: other job role", ErrFieldDisabled)
	}
	c.otherJobRole = value
	return nil
}

// SelectDesign changes the design and pre-selects its first colour.
func (c *Controller) SelectDesign(design string) error {
	if !slices.ContainsFunc(c.options.Designs, func(d Design) bool { return d.Value == design }) {
		return fmt.Errorf("%w: design %q", ErrUnknownOption, design)
	}
	c.design = design
	c.color, _ = FirstColor(design, c.options.Colors)
	return nil
}

// SelectColor picks one of the colours shown for the current design.
func (c *Controller) SelectColor(color string) error {
	if ColorView(c.design, "", c.options.Colors).Disabled {
		return fmt.Errorf("%w: color", ErrFieldDisabled)
	}
	ok := slices.ContainsFunc(c.options.Colors, func(o ColorOption) bool {
		return o.Value == color && o.Theme == c.design
	})
	if !ok {
		return fmt.Errorf("%w: color %q for design %q", ErrUnknownOption, color, c.design)
	}
	c.color = color
	return nil
}

// SelectPayment changes the payment method.
func (c *Controller) SelectPayment(raw string) error {
	m, err := ParsePaymentMethod(raw)
	if err != nil {
		return err
	}
	c.payment = m
	return nil
}

// ToggleActivity checks or unchecks an activity and returns the conflict
// changes it caused.
func (c *Controller) ToggleActivity(id string, checked bool) ([]Change, error) {
	return c.schedule.Toggle(id, checked)
}

// ResetActivities unchecks every activity.
func (c *Controller) ResetActivities() []Change {
	return c.schedule.Reset()
}

// Snapshot returns the raw state of the form.
func (c *Controller) Snapshot() Snapshot {
	fields := make(map[validation.FieldID]string, len(c.fields))
	for k, v := range c.fields {
		fields[k] = v
	}
	return Snapshot{
		Fields:       fields,
		JobRole:      c.jobRole,
		OtherJobRole: c.otherJobRole,
		Design:       c.design,
		Color:        c.color,
		Activities:   c.schedule.Checked(),
		Payment:      c.payment,
	}
}

// Restore replays a snapshot onto a fresh page-load state, in the order a
// user would fill the form in.
func (c *Controller) Restore(snap Snapshot) error {
	for _, id := range c.registry.Fields() {
		if v, ok := snap.Fields[id]; ok {
			if _, err := c.SetField(id, v); err != nil {
				return err
			}
		}
	}
	if snap.JobRole != "" {
		if err := c.SelectJobRole(snap.JobRole); err != nil {
			return err
		}
	}
	if snap.OtherJobRole != "" {
		if err := c.SetOtherJobRole(snap.OtherJobRole); err != nil {
			return err
		}
	}
	if snap.Design != "" {
		if err := c.SelectDesign(snap.Design); err != nil {
			return err
		}
	}
	if snap.Color != "" {
		if err := c.SelectColor(snap.Color); err != nil {
			return err
		}
	}
	for _, id := range snap.Activities {
		if _, err := c.ToggleActivity(id, true); err != nil {
			return err
		}
	}
	if snap.Payment != "" {
		if err := c.SelectPayment(string(snap.Payment)); err != nil {
			return err
		}
	}
	return nil
}

// Submit runs the submission gate. Every required field counts as touched
// afterwards so the view shows all of their results.
func (c *Controller) Submit() Submission {
	sub := Submit(c.registry, c.Snapshot())
	for _, r := range sub.Results {
		c.touched[r.Field] = true
	}
	return sub
}

// View derives the desired UI state.
func (c *Controller) View() View {
	var results []validation.Result
	for _, id := range c.registry.Fields() {
		if !c.touched[id] {
			continue
		}
		res, _ := c.registry.Validate(id, c.fields[id])
		results = append(results, res)
	}

	activities := c.schedule.Activities()
	total := Total(activities)

	return View{
		Fields:       results,
		JobRole:      c.jobRole,
		OtherJobRole: JobRoleView(c.jobRole),
		Design:       c.design,
		Color:        ColorView(c.design, c.color, c.options.Colors),
		Activities:   activities,
		Total:        total,
		TotalLabel:   TotalLabel(total),
		Payment:      c.payment,
		Sections:     PaymentView(c.payment),
	}
}
