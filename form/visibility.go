package form

// OtherJobRole is the job role value that reveals the free-text field.
const OtherJobRole = "other"

// ElementView is the desired state of a single input.
type ElementView struct {
	Hidden   bool `json:"hidden"`
	Disabled bool `json:"disabled"`
}

// JobRoleView derives the other-job-role input from the selected role.
func JobRoleView(role string) ElementView {
	if role == OtherJobRole {
		return ElementView{}
	}
	return ElementView{Hidden: true, Disabled: true}
}

// ColorOption is one option of the shirt colour selector. Theme is the design
// the colour belongs to.
type ColorOption struct {
	Value string `json:"value" yaml:"value" toml:"value"`
	Label string `json:"label" yaml:"label" toml:"label"`
	Theme string `json:"theme" yaml:"theme" toml:"theme"`
}

// ColorOptionView is a colour option with its derived flags.
type ColorOptionView struct {
	ColorOption
	Hidden   bool `json:"hidden"`
	Selected bool `json:"selected"`
}

// ColorSelectView is the desired state of the colour selector.
type ColorSelectView struct {
	Disabled bool              `json:"disabled"`
	Options  []ColorOptionView `json:"options"`
}

// FirstColor returns the first colour belonging to design.
func FirstColor(design string, options []ColorOption) (string, bool) {
	for _, o := range options {
		if o.Theme == design {
			return o.Value, true
		}
	}
	return "", false
}

// ColorView derives the colour selector from the chosen design. Only colours
// of that design are shown. selected names the chosen colour; when it is not
// one of the shown colours the first shown colour is selected instead.
func ColorView(design, selected string, options []ColorOption) ColorSelectView {
	view := ColorSelectView{
		Disabled: design == "",
		Options:  make([]ColorOptionView, len(options)),
	}

	if design != "" {
		valid := false
		for _, o := range options {
			if o.Theme == design && o.Value == selected {
				valid = true
				break
			}
		}
		if !valid {
			selected, _ = FirstColor(design, options)
		}
	}

	for i, o := range options {
		shown := design != "" && o.Theme == design
		view.Options[i] = ColorOptionView{
			ColorOption: o,
			Hidden:      !shown,
			Selected:    shown && o.Value == selected,
		}
	}
	return view
}

// PaymentSectionView is the desired state of one payment sub-form.
type PaymentSectionView struct {
	Method PaymentMethod `json:"method"`
	Hidden bool          `json:"hidden"`
}

// PaymentView shows the section of the chosen method and hides the others.
func PaymentView(method PaymentMethod) []PaymentSectionView {
	sections := make([]PaymentSectionView, len(PaymentMethods))
	for i, m := range PaymentMethods {
		sections[i] = PaymentSectionView{Method: m, Hidden: m != method}
	}
	return sections
}
