// Package theme holds the lipgloss styles used for diagnostics on stderr.
// Reports on stdout are never styled.
package theme

import "github.com/charmbracelet/lipgloss"

// Colors is the palette shared by every style.
type Colors struct {
	Accent  lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Text    lipgloss.Color
	TextDim lipgloss.Color
	Divider lipgloss.Color
}

// Theme bundles the pre-built styles.
type Theme struct {
	Colors Colors

	Header  lipgloss.Style
	Label   lipgloss.Style
	Info    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Divider lipgloss.Style
	Spinner lipgloss.Style

	Icons IconSet
}

type IconSet struct {
	Success string
	Warning string
	Error   string
	Present string
	Missing string
}

func Default() *Theme {
	c := Colors{
		Accent:  lipgloss.Color("99"),
		Success: lipgloss.Color("86"),
		Warning: lipgloss.Color("214"),
		Error:   lipgloss.Color("196"),
		Text:    lipgloss.Color("252"),
		TextDim: lipgloss.Color("241"),
		Divider: lipgloss.Color("240"),
	}

	return &Theme{
		Colors:  c,
		Header:  lipgloss.NewStyle().Foreground(c.Accent).Bold(true),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Muted:   lipgloss.NewStyle().Foreground(c.TextDim),
		Success: lipgloss.NewStyle().Foreground(c.Success).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(c.Warning),
		Error:   lipgloss.NewStyle().Foreground(c.Error).Bold(true),
		Divider: lipgloss.NewStyle().Foreground(c.Divider),
		Spinner: lipgloss.NewStyle().Foreground(c.Accent),
		Icons: IconSet{
			Success: "✓",
			Warning: "⚠",
			Error:   "✗",
			Present: "✓",
			Missing: "✗",
		},
	}
}

// Current is the theme used by the command line.
var Current = Default()

// Exists renders the marker shown next to a config path.
func (t *Theme) Exists(ok bool) string {
	if ok {
		return t.Success.Render(t.Icons.Present)
	}
	return t.Muted.Render(t.Icons.Missing)
}

func (t *Theme) ErrorLine(msg string) string {
	return t.Error.Render(t.Icons.Error + " " + msg)
}

func (t *Theme) WarningLine(msg string) string {
	return t.Warning.Render(t.Icons.Warning + " " + msg)
}
