package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/motovision/motovision/internal/i18n"
)

// Settings rows
const (
	settingDarkMode = iota
	settingAltPalette
	settingLocale
	settingCount
)

// SettingsModel edits the persisted preferences. Every change is written
// through immediately and the shared theme/translator are rebuilt in place,
// so the rest of the UI picks the change up on its next render.
type SettingsModel struct {
	deps *Deps

	cursor int
	Err    string

	Width  int
	Height int
}

// NewSettingsModel creates the preferences screen.
func NewSettingsModel(deps *Deps) SettingsModel {
	return SettingsModel{deps: deps}
}

// Init initializes the settings screen
func (m SettingsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the settings screen
func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "q", "esc":
		return m, func() tea.Msg { return goBackMsg{} }

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < settingCount-1 {
			m.cursor++
		}

	case "enter", " ", "left", "right":
		m.toggle()
	}

	return m, nil
}

// toggle flips the selected preference and persists the whole set.
func (m *SettingsModel) toggle() {
	prefs := m.deps.Prefs

	switch m.cursor {
	case settingDarkMode:
		prefs.DarkMode = !prefs.DarkMode
	case settingAltPalette:
		prefs.AltPalette = !prefs.AltPalette
	case settingLocale:
		prefs.Locale = nextLocale(prefs.Locale)
	}

	if err := prefs.Save(m.deps.KV); err != nil {
		m.Err = err.Error()
		return
	}
	m.Err = ""

	m.deps.Prefs = prefs
	m.deps.Tr = prefs.Translator()
	m.deps.Theme = NewTheme(prefs.DarkMode, prefs.AltPalette)
}

func nextLocale(current string) string {
	locales := i18n.Supported()
	for i, l := range locales {
		if l == current {
			return locales[(i+1)%len(locales)]
		}
	}
	return i18n.DefaultLocale
}

// View renders the settings screen
func (m SettingsModel) View() string {
	theme := m.deps.Theme
	prefs := m.deps.Prefs
	var b strings.Builder

	b.WriteString(theme.TitleStyle().Render("Configurações"))
	b.WriteString("\n\n")

	rows := []string{
		fmt.Sprintf("Modo escuro      %s", onOff(prefs.DarkMode)),
		fmt.Sprintf("Paleta alterna   %s", onOff(prefs.AltPalette)),
		fmt.Sprintf("Idioma           %s", prefs.Locale),
	}
	for i, row := range rows {
		b.WriteString(theme.RenderMenuItem(row, i == m.cursor))
		b.WriteString("\n")
	}

	if m.Err != "" {
		b.WriteString("\n")
		b.WriteString(theme.FieldErrorStyle().Render(m.Err))
		b.WriteString("\n")
	}

	return theme.RenderAppContainer(
		b.String(),
		"↑/↓: navigate • enter: toggle • esc: back",
		m.Width, m.Height,
	)
}

func onOff(v bool) string {
	if v {
		return "ligado"
	}
	return "desligado"
}
