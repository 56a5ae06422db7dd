// Package report renders form results for the terminal.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/greatxrider/interactive-form-project/catalog"
	"github.com/greatxrider/interactive-form-project/form"
)

var (
	ColorGreen    = lipgloss.Color("82")
	ColorRed      = lipgloss.Color("196")
	ColorBlue     = lipgloss.Color("39")
	ColorGray     = lipgloss.Color("250")
	ColorWhite    = lipgloss.Color("15")
	ColorDarkGray = lipgloss.Color("240")
)

var (
	RootStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Italic(true)

	BranchStyle = lipgloss.NewStyle().
			Foreground(ColorDarkGray)

	ValidStyle   = lipgloss.NewStyle().Foreground(ColorGreen)
	InvalidStyle = lipgloss.NewStyle().Foreground(ColorRed)
)

func newTree(root string) *tree.Tree {
	return tree.New().
		Root(RootStyle.Render(root)).
		EnumeratorStyle(BranchStyle).
		Enumerator(tree.RoundedEnumerator)
}

func branch(title, info string) *tree.Tree {
	return tree.New().Root(lipgloss.JoinHorizontal(
		lipgloss.Top,
		HeaderStyle.Render(title),
		" ",
		InfoStyle.Render(info),
	))
}

// Submission renders the submission gate outcome next to the derived view.
func Submission(view form.View, sub form.Submission) string {
	status := ValidStyle.Render("ready to submit")
	if !sub.Allowed {
		status = InvalidStyle.Render("blocked")
	}
	t := newTree("Registration " + status)

	fields := branch("Fields", fmt.Sprintf("(%d checked)", len(sub.Results)))
	for _, r := range sub.Results {
		if r.Valid {
			fields.Child(ValidStyle.Render("✓ " + string(r.Field)))
		} else {
			fields.Child(InvalidStyle.Render("✗ "+string(r.Field)) + " " + InfoStyle.Render(r.Message))
		}
	}
	t.Child(fields)

	activities := branch("Activities", view.TotalLabel)
	for _, a := range view.Activities {
		mark := "[ ]"
		switch {
		case a.Checked:
			mark = "[x]"
		case a.Disabled:
			mark = "[-]"
		}
		line := fmt.Sprintf("%s %s $%d", mark, a.Name, a.Cost)
		if a.Schedule != form.Unscheduled {
			line += " " + InfoStyle.Render(string(a.Schedule))
		}
		activities.Child(line)
	}
	t.Child(activities)

	t.Child(branch("Payment", string(view.Payment)))
	return t.String()
}

// Catalog renders the loaded catalogue.
func Catalog(c *catalog.Catalog) string {
	t := newTree("Catalog")

	roles := branch("Job roles", fmt.Sprintf("(%d)", len(c.JobRoles)))
	for _, r := range c.JobRoles {
		roles.Child(r.Label)
	}
	t.Child(roles)

	designs := branch("Designs", fmt.Sprintf("(%d)", len(c.Designs)))
	for _, d := range c.Designs {
		var colors []string
		for _, col := range c.Colors {
			if col.Theme == d.Value {
				colors = append(colors, col.Value)
			}
		}
		designs.Child(d.Label + " " + InfoStyle.Render(strings.Join(colors, ", ")))
	}
	t.Child(designs)

	acts := branch("Activities", fmt.Sprintf("(%d)", len(c.Activities)))
	for _, a := range c.Activities {
		line := fmt.Sprintf("%s $%d", a.Name, a.Cost)
		if key := a.SchedulingKey(); key != form.Unscheduled {
			line += " " + InfoStyle.Render(string(key))
		}
		acts.Child(line)
	}
	t.Child(acts)

	return t.String()
}
