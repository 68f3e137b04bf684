package pretty_print

import (
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sierrasoftworks/humane-errors-go"
)

// renderHumaneError builds the CLI display of err: the message, the advice
// of every error in the chain and the messages of the causes.
func renderHumaneError(err error, options *PrintOptions) string { //nolint:golint-sl // CLI output, not logging
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	section := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("8"))
	code := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))
	bullet := lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Render("•")

	if options.NoColor {
		header, section, code = lipgloss.NewStyle(), lipgloss.NewStyle(), lipgloss.NewStyle()
		bullet = "•"
	}

	var he humane.Error
	if !errors.As(err, &he) {
		return header.Render("✗ "+err.Error()) + "\n"
	}

	var causes []string
	var advice []string
	for cur := error(he); cur != nil; {
		var next humane.Error
		if !errors.As(cur, &next) {
			causes = append(causes, cur.Error())
			break
		}

		causes = append(causes, next.Error())
		advice = append(next.Advice(), advice...)
		cur = next.Cause()
	}

	var b strings.Builder
	b.WriteString(header.Render("✗ " + he.Error()))
	b.WriteString("\n\n")

	if len(advice) > 0 {
		b.WriteString(section.Render("💡 What you can do:") + "\n")
		for _, tip := range advice {
			b.WriteString("  " + bullet + " " + tip + "\n")
		}
		b.WriteString("\n")
	}

	if len(causes) > 1 {
		b.WriteString(section.Render("🔎 Root causes:") + "\n")
		for _, c := range causes[1:] {
			b.WriteString("  " + bullet + " " + code.Render(c) + "\n")
		}
	}

	return b.String()
}
