package pretty_print

import (
	"strings"
)

type PrintLevel int

const (
	NoOp PrintLevel = iota
	DebugLvl
	InfoLvl
	OkLvl
	WarnLvl
	ErrLvl
)

// FormatWithOptions formats msg with an icon for lvl and one indented line per context entry.
func FormatWithOptions(lvl PrintLevel, msg string, context []string, opts ...Option) string {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	if lvl == ErrLvl && options.Error != nil {
		return renderHumaneError(options.Error, options)
	}

	icon, ok := options.LevelIcons[lvl]
	if !ok {
		icon = options.LevelIcons[InfoLvl]
	}

	style, ok := options.IconStyles[lvl]
	if !ok {
		style = options.IconStyles[InfoLvl]
	}

	render := func(f themeStyleFunc, s string) string {
		if options.NoColor {
			return s
		}
		return f(options.Theme).Render(s)
	}

	var b strings.Builder
	b.WriteString(render(style, icon))
	b.WriteString(" ")
	b.WriteString(render(options.MessageStyle, msg))

	indent := strings.Repeat(" ", options.IndentSize)
	for _, c := range context {
		b.WriteString("\n")
		b.WriteString(indent)
		b.WriteString(render(options.ContextStyle, c))
	}

	if !options.NoNewline {
		b.WriteString("\n")
	}

	return b.String()
}

// Format formats a message with the default options
func Format(lvl PrintLevel, msg string, context ...string) string {
	return FormatWithOptions(lvl, msg, context)
}

func FormatOk(msg string, context ...string) string {
	return Format(OkLvl, msg, context...)
}

func FormatInfo(msg string, context ...string) string {
	return Format(InfoLvl, msg, context...)
}

func FormatWarn(msg string, context ...string) string {
	return Format(WarnLvl, msg, context...)
}

// FormatError formats err with its advice and root causes.
func FormatError(err error, context ...string) string {
	return FormatWithOptions(ErrLvl, "", context, WithError(err))
}
