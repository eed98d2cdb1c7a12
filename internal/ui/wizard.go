package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	activeSymbol = "◆"
	borderTop    = "┌"
	borderSide   = "│"
	borderBottom = "└"
	checkSymbol  = "✓"

	// NewCategoryOption is the category choice that asks for a fresh name.
	NewCategoryOption = "+ New category..."
)

var ErrEmptyField = errors.New("cannot be empty")

func WizardTheme() *huh.Theme {
	t := huh.ThemeBase()
	red := lipgloss.Color("1")
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.SetString("✗").Foreground(red)
	t.Blurred.ErrorMessage = t.Blurred.ErrorMessage.SetString("✗").Foreground(red)
	return t
}

// Required builds a validator that rejects blank input, naming label in the
// message.
func Required(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(label + " " + ErrEmptyField.Error())
		}
		return nil
	}
}

// CategoryOptions lists existing categories followed by the new-category
// choice. With no categories the new-category choice is the only option.
func CategoryOptions(categories []string) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(categories)+1)
	for _, c := range categories {
		opts = append(opts, huh.NewOption(c, c))
	}
	return append(opts, huh.NewOption(NewCategoryOption, NewCategoryOption))
}

// ResolveCategory returns the category a form picked: the typed name when
// the new-category choice was selected, the selection otherwise.
func ResolveCategory(selected, typed string) string {
	if selected == NewCategoryOption {
		return strings.TrimSpace(typed)
	}
	return selected
}

// Confirm asks a yes/no question on the terminal. Aborting counts as no.
func Confirm(prompt string) bool {
	var ok bool
	err := huh.NewConfirm().
		Title(prompt).
		Affirmative("Delete").
		Negative("Cancel").
		Value(&ok).
		WithTheme(WizardTheme()).
		Run()
	return err == nil && ok
}

func borderStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
}

// RenderDone is the closing box after a change: a heading, a detail line,
// and one checked line per follow-up that happened.
func RenderDone(heading, detail string, checks []string) string {
	var b strings.Builder

	border := borderStyle()

	b.WriteString(border.Render(borderTop))
	b.WriteString(" ")
	b.WriteString(activeSymbol)
	b.WriteString(" ")
	b.WriteString(heading)
	b.WriteString("\n")

	if detail != "" {
		b.WriteString(border.Render(borderSide))
		b.WriteString(" ")
		b.WriteString(detail)
		b.WriteString("\n")
	}

	if len(checks) > 0 {
		b.WriteString(border.Render(borderSide))
		b.WriteString("\n")
	}
	for _, check := range checks {
		b.WriteString(border.Render(borderSide))
		b.WriteString(" ")
		b.WriteString(checkSymbol)
		b.WriteString(" ")
		b.WriteString(check)
		b.WriteString("\n")
	}

	b.WriteString(border.Render(borderBottom))
	b.WriteString("\n")

	return b.String()
}
