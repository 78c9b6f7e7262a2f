package styles

import "github.com/charmbracelet/lipgloss"

// Theme colors
var (
	CBg      = lipgloss.Color("#0B0F14") // near-black
	CPanel   = lipgloss.Color("#0F1720") // slightly lighter
	CBorder  = lipgloss.Color("#874BFD")
	CMuted   = lipgloss.Color("#8AA0B6")
	CText    = lipgloss.Color("#D6E2F0")
	CAccent  = lipgloss.Color("#7EE787") // green-ish
	CAccent2 = lipgloss.Color("#79C0FF") // blue-ish
	CWarn    = lipgloss.Color("#FFA657") // orange
	CError   = lipgloss.Color("#FF5F5F")
	CPink    = lipgloss.Color("#F25D94")
)

// Gradient endpoints used for addresses and the app title
const (
	FadeFrom  = "#F25D94"
	FadeTo    = "#EDFF82"
	TitleFrom = "#7EE787"
	TitleTo   = "#82CFFD"
)

// Shared styles
var (
	AppStyle = lipgloss.NewStyle().
			Background(CBg).
			Foreground(CText)

	TitleStyle = lipgloss.NewStyle().
			Foreground(CAccent2).
			Bold(true)

	PanelStyle = lipgloss.NewStyle().
			Background(CPanel).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(CBorder).
			Padding(1, 2)

	NavStyle = lipgloss.NewStyle().
			Background(CPanel).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(CBorder).
			Padding(0, 1)

	HotkeyStyle = lipgloss.NewStyle().
			Foreground(CMuted)

	HotkeyKeyStyle = lipgloss.NewStyle().
			Foreground(CAccent).
			Bold(true)

	HelpRightStyle = lipgloss.NewStyle().
			Foreground(CMuted)

	MutedStyle = lipgloss.NewStyle().Foreground(CMuted)
	WarnStyle  = lipgloss.NewStyle().Foreground(CWarn).Bold(true)
	ValueStyle = lipgloss.NewStyle().Foreground(CAccent2).Bold(true)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF7DB")).
			Background(lipgloss.Color("#888B7E")).
			Padding(0, 3).
			MarginRight(2)

	activeButtonStyle = buttonStyle.
				Background(CPink).
				Underline(true)
)

// Key renders a key with accent styling
func Key(s string) string {
	return HotkeyKeyStyle.Render(s)
}

// Button renders a labelled button with its hotkey. Disabled buttons are greyed.
func Button(key, label string, enabled bool) string {
	if !enabled {
		return buttonStyle.Faint(true).Render(label)
	}
	return activeButtonStyle.Render(label) + Key(key)
}

// Muted renders secondary text
func Muted(s string) string {
	return MutedStyle.Render(s)
}

// Tabs renders a tab strip with the selected tab highlighted.
func Tabs(labels []string, selected int) string {
	var out []string
	for i, l := range labels {
		if i == selected {
			out = append(out, activeButtonStyle.Render(l))
		} else {
			out = append(out, buttonStyle.Render(l))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}
