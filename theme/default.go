package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

// Theme defines the colour scheme and styling for the application
type Theme struct {
	// Log level colours
	Debug *pterm.Style
	Info  *pterm.Style
	Warn  *pterm.Style
	Error *pterm.Style

	// Component colours
	Success   *pterm.Style
	Highlight *pterm.Style
	Muted     *pterm.Style

	// Functional colours
	Endpoint pterm.Color
	Counts   pterm.Color

	UI UIStyles
}

// UIStyles are the lipgloss styles used by the full screen viewer
type UIStyles struct {
	Title          lipgloss.Style
	Icon           lipgloss.Style
	TableBorder    lipgloss.Style
	TableHeader    lipgloss.Style
	TableSelected  lipgloss.Style
	TableCell      lipgloss.Style
	Details        lipgloss.Style
	Button         lipgloss.Style
	ButtonDisabled lipgloss.Style
	Status         lipgloss.Style
	StatusError    lipgloss.Style
	Dialog         lipgloss.Style
	DialogTitle    lipgloss.Style
	DialogMessage  lipgloss.Style
	DialogButton   lipgloss.Style
	Help           lipgloss.Style
}

// Default returns the default application theme
func Default() *Theme {
	return &Theme{
		Debug: pterm.NewStyle(pterm.FgLightBlue),
		Info:  pterm.NewStyle(pterm.FgGreen),
		Warn:  pterm.NewStyle(pterm.FgYellow, pterm.Bold),
		Error: pterm.NewStyle(pterm.FgRed, pterm.Bold),

		Success:   pterm.NewStyle(pterm.FgGreen, pterm.Bold),
		Highlight: pterm.NewStyle(pterm.FgCyan, pterm.Bold),
		Muted:     pterm.NewStyle(pterm.FgGray),

		Endpoint: pterm.FgLightBlue,
		Counts:   pterm.FgLightYellow,

		UI: uiStyles(
			lipgloss.Color("#7aa2f7"),
			lipgloss.Color("#c0caf5"),
			lipgloss.Color("#565f89"),
			lipgloss.Color("#f7768e"),
			lipgloss.Color("#1a1b26"),
		),
	}
}

// Light returns a light theme variant
func Light() *Theme {
	t := Default()
	t.Info = pterm.NewStyle(pterm.FgBlack)
	t.Highlight = pterm.NewStyle(pterm.FgBlue, pterm.Bold)
	t.Endpoint = pterm.FgBlue
	t.Counts = pterm.FgMagenta
	t.UI = uiStyles(
		lipgloss.Color("#2e7de9"),
		lipgloss.Color("#3760bf"),
		lipgloss.Color("#a1a6c5"),
		lipgloss.Color("#c64343"),
		lipgloss.Color("#e1e2e7"),
	)
	return t
}

func uiStyles(accent, text, muted, danger, base lipgloss.Color) UIStyles {
	return UIStyles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(accent),
		Icon:        lipgloss.NewStyle().Foreground(accent).MarginRight(1),
		TableBorder: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted),
		TableHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(muted).
			BorderBottom(true).
			Padding(0, 1),
		TableSelected: lipgloss.NewStyle().Bold(true).Foreground(base).Background(accent),
		TableCell:     lipgloss.NewStyle().Foreground(text).Padding(0, 1),
		Details:       lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
		Button: lipgloss.NewStyle().
			Foreground(base).
			Background(accent).
			Bold(true).
			Padding(0, 3),
		ButtonDisabled: lipgloss.NewStyle().
			Foreground(muted).
			Background(base).
			Padding(0, 3),
		Status:      lipgloss.NewStyle().Foreground(muted),
		StatusError: lipgloss.NewStyle().Foreground(danger),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(danger).
			Padding(1, 2),
		DialogTitle:   lipgloss.NewStyle().Bold(true).Foreground(danger),
		DialogMessage: lipgloss.NewStyle().Foreground(text),
		DialogButton: lipgloss.NewStyle().
			Foreground(base).
			Background(danger).
			Bold(true).
			Padding(0, 3),
		Help: lipgloss.NewStyle().Foreground(muted),
	}
}

// GetTheme returns the theme by name, unknown names fall back to the default
func GetTheme(name string) *Theme {
	switch name {
	case "light":
		return Light()
	default:
		return Default()
	}
}

// ColourSplash Colours for the splash screen
func ColourSplash(message ...any) string {
	return pterm.LightGreen(message...)
}

// ColourVersion Colours Version numbers, used for the splash screen
func ColourVersion(message ...any) string {
	return pterm.LightYellow(message...)
}

// StyleUrl Colours for URLs and hyperlinks
func StyleUrl(message ...any) string {
	return pterm.LightBlue(message...)
}

// Hyperlink creates a hyperlink in the terminal
func Hyperlink(uri string, text string) string {
	return "\x1b]8;;" + uri + "\x07" + text + "\x1b]8;;\x07" + "\u001b[0m"
}
