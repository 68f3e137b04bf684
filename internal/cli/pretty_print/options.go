package pretty_print

import (
	"os"
	"slices"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"
)

// PrintOptions controls how messages are formatted
type PrintOptions struct {
	// Theme is the glamour/chroma theme the styles are derived from
	Theme Theme

	// IndentSize is the number of spaces context lines are indented with
	IndentSize int

	// NoColor disables colored output
	NoColor bool

	// LevelIcons maps print levels to their display icons
	LevelIcons map[PrintLevel]string

	// IconStyles maps print levels to their icon styles
	IconStyles map[PrintLevel]themeStyleFunc

	ContextStyle themeStyleFunc
	MessageStyle themeStyleFunc

	// Error is rendered with its advice and causes instead of the message
	Error error

	// NoNewline omits the trailing newline
	NoNewline bool
}

type themeStyleFunc func(theme Theme) lipgloss.Style

// DefaultOptions returns the print options derived from the configuration and the terminal.
func DefaultOptions() *PrintOptions {
	options := &PrintOptions{
		Theme:      TokyoNightStyle,
		IndentSize: 4,
		LevelIcons: map[PrintLevel]string{
			NoOp:     "",
			DebugLvl: "D",
			InfoLvl:  "ℹ",
			OkLvl:    "✓",
			WarnLvl:  "!",
			ErrLvl:   "✗",
		},
		IconStyles: map[PrintLevel]themeStyleFunc{
			NoOp:     secondaryStyle,
			DebugLvl: secondaryStyle,
			InfoLvl:  infoStyle,
			OkLvl:    okStyle,
			WarnLvl:  warnStyle,
			ErrLvl:   errStyle,
		},
		ContextStyle: secondaryStyle,
		MessageStyle: normalStyle,
	}

	if theme := viper.GetString("output.theme"); slices.Contains(AllThemeNames(), theme) {
		options.Theme = Theme(theme)
	}

	if !IsTerminal() {
		options.Theme = NoTTYStyle
		options.NoColor = true
	}

	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		options.NoColor = true
	}

	return options
}

// renderMarkdown renders md for the terminal. The markdown theme and
// renderer failures return md unchanged.
func renderMarkdown(theme Theme, md string) string {
	if theme == MarkdownStyle {
		return md
	}

	if !IsTerminal() {
		theme = NoTTYStyle
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(string(theme)),
		glamour.WithWordWrap(0),
	)
	if err != nil {
		return md
	}

	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

// Option is a function that modifies PrintOptions
type Option func(*PrintOptions)

func WithIndentSize(size int) Option {
	return func(o *PrintOptions) {
		o.IndentSize = size
	}
}

func WithNoColor(noColor bool) Option {
	return func(o *PrintOptions) {
		o.NoColor = noColor
	}
}

// WithIcon sets a custom icon for a print level
func WithIcon(level PrintLevel, icon string) Option {
	return func(o *PrintOptions) {
		o.LevelIcons[level] = icon
	}
}

// WithError renders err with its advice and root causes
func WithError(err error) Option {
	return func(o *PrintOptions) {
		o.Error = err
	}
}

func WithoutNewline() Option {
	return func(o *PrintOptions) {
		o.NoNewline = true
	}
}

func WithTheme(theme Theme) Option {
	return func(o *PrintOptions) {
		o.Theme = theme
	}
}
