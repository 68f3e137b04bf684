package pretty_print

import (
	"os"

	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

type Theme string

const (
	AsciiStyle      Theme = "ascii"
	DarkStyle       Theme = "dark"
	DraculaStyle    Theme = "dracula"
	TokyoNightStyle Theme = "tokyo-night"
	LightStyle      Theme = "light"
	NoTTYStyle      Theme = "notty"

	// MarkdownStyle emits the raw markdown without rendering it
	MarkdownStyle Theme = "markdown"
)

var styleMap = map[Theme]ansi.StyleConfig{
	AsciiStyle:      styles.ASCIIStyleConfig,
	DarkStyle:       styles.DarkStyleConfig,
	DraculaStyle:    styles.DraculaStyleConfig,
	TokyoNightStyle: styles.TokyoNightStyleConfig,
	LightStyle:      styles.LightStyleConfig,
	NoTTYStyle:      styles.NoTTYStyleConfig,
	MarkdownStyle:   styles.NoTTYStyleConfig,
}

func AllThemes() []Theme {
	return []Theme{AsciiStyle, DarkStyle, DraculaStyle, TokyoNightStyle, LightStyle, NoTTYStyle}
}

func AllThemeNames() []string {
	themes := AllThemes()
	names := make([]string, len(themes))
	for i, theme := range themes {
		names[i] = string(theme)
	}
	return names
}

// IsTerminal reports whether stdout is an interactive terminal.
func IsTerminal() bool {
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// themeStyle returns a foreground style from the theme's chroma palette.
// Themes without the requested color fall back to a neutral style.
func themeStyle(theme Theme, pick func(*ansi.Chroma) ansi.StylePrimitive) lipgloss.Style {
	cfg, ok := styleMap[theme]
	if !ok || cfg.CodeBlock.Chroma == nil {
		return lipgloss.NewStyle()
	}

	primitive := pick(cfg.CodeBlock.Chroma)
	if primitive.Color == nil {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(*primitive.Color))
}

func boldStyle(theme Theme) lipgloss.Style {
	return normalStyle(theme).Bold(true)
}

func normalStyle(theme Theme) lipgloss.Style {
	return themeStyle(theme, func(c *ansi.Chroma) ansi.StylePrimitive { return c.Text })
}

func secondaryStyle(theme Theme) lipgloss.Style {
	return themeStyle(theme, func(c *ansi.Chroma) ansi.StylePrimitive { return c.KeywordType })
}

func errStyle(theme Theme) lipgloss.Style {
	return themeStyle(theme, func(c *ansi.Chroma) ansi.StylePrimitive { return c.GenericDeleted })
}

func warnStyle(theme Theme) lipgloss.Style {
	return themeStyle(theme, func(c *ansi.Chroma) ansi.StylePrimitive { return c.LiteralString })
}

func infoStyle(theme Theme) lipgloss.Style {
	return themeStyle(theme, func(c *ansi.Chroma) ansi.StylePrimitive { return c.LiteralStringEscape })
}

func okStyle(theme Theme) lipgloss.Style {
	return themeStyle(theme, func(c *ansi.Chroma) ansi.StylePrimitive { return c.NameAttribute })
}
