// Package catalog loads the options the registration page offers: job roles,
// shirt designs and colours, and the conference activities.
//
// A catalogue file is YAML (.yaml, .yml) or TOML (.toml). When no file is
// configured the embedded default catalogue is used.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/greatxrider/interactive-form-project/form"
)

//go:embed default.yaml
var defaultYAML []byte

var (
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
	ErrInvalid           = errors.New("invalid catalog")
)

// Option is a selector option.
type Option struct {
	Value string `yaml:"value" toml:"value" json:"value"`
	Label string `yaml:"label" toml:"label" json:"label"`
}

// Activity is an activity entry as written in a catalogue file. Day and Time
// together form the scheduling key.
type Activity struct {
	ID   string `yaml:"id" toml:"id" json:"id"`
	Name string `yaml:"name" toml:"name" json:"name"`
	Day  string `yaml:"day" toml:"day" json:"day,omitempty"`
	Time string `yaml:"time" toml:"time" json:"time,omitempty"`
	Cost int    `yaml:"cost" toml:"cost" json:"cost"`
}

// SchedulingKey joins day and time; an activity without both is unscheduled.
func (a Activity) SchedulingKey() form.SchedulingKey {
	if a.Day == "" || a.Time == "" {
		return form.Unscheduled
	}
	return form.SchedulingKey(a.Day + " " + a.Time)
}

// Catalog is the decoded catalogue file.
type Catalog struct {
	JobRoles   []Option           `yaml:"job_roles" toml:"job_roles" json:"job_roles"`
	Designs    []Option           `yaml:"designs" toml:"designs" json:"designs"`
	Colors     []form.ColorOption `yaml:"colors" toml:"colors" json:"colors"`
	Activities []Activity         `yaml:"activities" toml:"activities" json:"activities"`
}

// Default returns the embedded catalogue.
func Default() (*Catalog, error) {
	return Parse(defaultYAML, ".yaml")
}

// Load reads a catalogue file, choosing the decoder by extension. An empty
// path loads the embedded default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a catalogue in the format named by ext.
func Parse(data []byte, ext string) (*Catalog, error) {
	var c Catalog
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the catalogue for duplicate ids, negative costs, colours of
// unknown designs and a missing "other" job role.
func (c *Catalog) Validate() error {
	var errs []error

	if err := uniqueValues("job role", c.JobRoles); err != nil {
		errs = append(errs, err)
	}
	if err := uniqueValues("design", c.Designs); err != nil {
		errs = append(errs, err)
	}
	if !slices.ContainsFunc(c.JobRoles, func(o Option) bool { return o.Value == form.OtherJobRole }) {
		errs = append(errs, fmt.Errorf("job roles: missing %q option", form.OtherJobRole))
	}

	designs := make(map[string]bool, len(c.Designs))
	for _, d := range c.Designs {
		designs[d.Value] = true
	}
	for _, col := range c.Colors {
		if !designs[col.Theme] {
			errs = append(errs, fmt.Errorf("color %q: unknown design %q", col.Value, col.Theme))
		}
	}

	seen := make(map[string]bool, len(c.Activities))
	for _, a := range c.Activities {
		switch {
		case a.ID == "":
			errs = append(errs, errors.New("activity without id"))
		case seen[a.ID]:
			errs = append(errs, fmt.Errorf("duplicate activity %q", a.ID))
		}
		seen[a.ID] = true
		if a.Cost < 0 {
			errs = append(errs, fmt.Errorf("activity %q: negative cost %d", a.ID, a.Cost))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

func uniqueValues(kind string, opts []Option) error {
	seen := make(map[string]bool, len(opts))
	for _, o := range opts {
		if o.Value == "" {
			return fmt.Errorf("%s without value", kind)
		}
		if seen[o.Value] {
			return fmt.Errorf("duplicate %s %q", kind, o.Value)
		}
		seen[o.Value] = true
	}
	return nil
}

// Options converts the catalogue into the form's option set.
func (c *Catalog) Options() form.Options {
	opts := form.Options{
		JobRoles:   make([]form.JobRole, len(c.JobRoles)),
		Designs:    make([]form.Design, len(c.Designs)),
		Colors:     append([]form.ColorOption(nil), c.Colors...),
		Activities: make([]form.Activity, len(c.Activities)),
	}
	for i, r := range c.JobRoles {
		opts.JobRoles[i] = form.JobRole{Value: r.Value, Label: r.Label}
	}
	for i, d := range c.Designs {
		opts.Designs[i] = form.Design{Value: d.Value, Label: d.Label}
	}
	for i, a := range c.Activities {
		opts.Activities[i] = form.Activity{
			ID:       a.ID,
			Name:     a.Name,
			Schedule: a.SchedulingKey(),
			Cost:     a.Cost,
		}
	}
	return opts
}
