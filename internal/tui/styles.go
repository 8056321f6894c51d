package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/motovision/motovision/internal/version"
)

// Application branding constants
const (
	AppName   = "MOTOVISION FLEET CONSOLE"
	GitHubURL = "github.com/motovision/motovision"
)

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Layout constants for responsive terminal width
const (
	MinTerminalWidth = 72 // Minimum supported terminal width
	MaxContentWidth  = 120
)

// Theme is the resolved color palette. Two axes come from preferences:
// dark/light background and the standard/alternate accent set.
type Theme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color

	Text      lipgloss.Color
	Subtle    lipgloss.Color
	Border    lipgloss.Color
	Highlight lipgloss.Color
}

// NewTheme builds the palette for the given preference flags.
func NewTheme(dark, altPalette bool) Theme {
	t := Theme{
		Primary:   lipgloss.Color("#005CA7"), // fleet blue
		Secondary: lipgloss.Color("#4CAF50"),
		Warning:   lipgloss.Color("#FFA500"),
		Error:     lipgloss.Color("#F44336"),
	}
	if altPalette {
		t.Primary = lipgloss.Color("#7D56F4")
		t.Secondary = lipgloss.Color("#43BF6D")
	}

	if dark {
		t.Text = lipgloss.Color("#FFFFFF")
		t.Subtle = lipgloss.Color("#626262")
	} else {
		t.Text = lipgloss.Color("#1A1A1A")
		t.Subtle = lipgloss.Color("#8A8A8A")
	}
	t.Border = t.Primary
	t.Highlight = t.Secondary
	return t
}

// Title style - bold, padded
func (t Theme) TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true).
		Padding(1, 0).
		MarginBottom(1)
}

// Subtitle style
func (t Theme) SubtitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Subtle).
		Italic(true)
}

// Help text style
func (t Theme) HelpStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Subtle).
		Padding(1, 0)
}

// Error banner style
func (t Theme) ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Error).
		Bold(true).
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Error)
}

// Warning banner style
func (t Theme) WarningStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Warning).
		Bold(true).
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Warning)
}

// Success message style
func (t Theme) SuccessStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Secondary).
		Bold(true)
}

// Field error style (inline, under an input)
func (t Theme) FieldErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Error)
}

// Selected list entry style
func (t Theme) SelectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Highlight).
		Bold(true)
}

// Section header style (yard title in the board)
func (t Theme) SectionStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true).
		Underline(true)
}

// Spinner style
func (t Theme) SpinnerStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Primary)
}

// Focused input label style
func (t Theme) FocusedLabelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true)
}

// Blurred input label style
func (t Theme) BlurredLabelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Subtle)
}

// StatusBadge renders a status pill in the status's own display color.
func (t Theme) StatusBadge(label, hexColor string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(hexColor)).
		Bold(true).
		Render("● " + label)
}

// SectorPanel renders the sector preview box (letter + color name).
func (t Theme) SectorPanel(setor, corSetor, hexColor string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(hexColor)).
		Padding(0, 2).
		Render("Setor " + setor + " · " + corSetor)
}

// RenderMenuItem renders a menu item with selection indicator
func (t Theme) RenderMenuItem(text string, selected bool) string {
	if selected {
		return t.SelectedStyle().Render("→ " + text)
	}
	return lipgloss.NewStyle().Foreground(t.Text).PaddingLeft(2).Render(text)
}

// buildHeaderContent creates header content with app name and version
func (t Theme) buildHeaderContent() string {
	left := lipgloss.NewStyle().
		Foreground(t.Text).
		Bold(true).
		Render(AppName + " v" + AppVersion())

	right := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Render(GitHubURL)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

// RenderAppContainer is the shared wrapper for every screen: full-terminal
// bordered panel with a header (name, version) and a context-sensitive
// footer. Screens render their content separately and pass it here.
func (t Theme) RenderAppContainer(content, footerText string, terminalWidth, terminalHeight int) string {
	header := t.buildHeaderContent()
	footer := lipgloss.NewStyle().Foreground(t.Subtle).Render(footerText)

	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(t.Border).
		Width(terminalWidth - 4).
		Padding(0, 1)

	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(t.Border).
		Width(terminalWidth - 4).
		Padding(0, 1)

	contentStyle := lipgloss.NewStyle().
		Width(terminalWidth - 4)

	inner := lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render(header),
		contentStyle.Render(content),
		footerStyle.Render(footer),
	)

	bordered := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		Width(terminalWidth - 2).
		Height(terminalHeight - 2).
		AlignVertical(lipgloss.Top).
		Render(inner)

	return lipgloss.Place(
		terminalWidth,
		terminalHeight,
		lipgloss.Left,
		lipgloss.Top,
		bordered,
	)
}
