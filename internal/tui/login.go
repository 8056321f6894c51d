package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// LoginModel is the credential entry screen. Submitting stores the pair
// locally; the board's first load is what actually proves the credentials
// against the server.
type LoginModel struct {
	deps *Deps

	EmailInput    textinput.Model
	PasswordInput textinput.Model
	focusIndex    int

	// Banner shown above the form (session-expired prompt)
	Banner string
	// Inline error from the last submit attempt
	Err string

	Width  int
	Height int
}

// NewLoginModel creates the login screen, optionally with a banner message.
func NewLoginModel(deps *Deps, banner string) LoginModel {
	email := textinput.New()
	email.Placeholder = "email@exemplo.com"
	email.CharLimit = 120
	email.Width = 40
	email.Focus()
	if stored, ok := deps.Creds.Email(); ok {
		email.SetValue(stored)
	}

	password := textinput.New()
	password.Placeholder = "senha"
	password.CharLimit = 120
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return LoginModel{
		deps:          deps,
		EmailInput:    email,
		PasswordInput: password,
		Banner:        banner,
	}
}

// Init initializes the login screen
func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the login screen
func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, func() tea.Msg { return goBackMsg{} }

		case "tab", "shift+tab", "up", "down":
			if keyMsg.String() == "shift+tab" || keyMsg.String() == "up" {
				m.focusIndex--
			} else {
				m.focusIndex++
			}
			if m.focusIndex < 0 {
				m.focusIndex = 1
			}
			if m.focusIndex > 1 {
				m.focusIndex = 0
			}
			m.applyFocus()
			return m, textinput.Blink

		case "enter":
			if m.focusIndex == 0 {
				m.focusIndex = 1
				m.applyFocus()
				return m, textinput.Blink
			}
			return m.submit()
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.EmailInput, cmd = m.EmailInput.Update(msg)
	cmds = append(cmds, cmd)
	m.PasswordInput, cmd = m.PasswordInput.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *LoginModel) applyFocus() {
	if m.focusIndex == 0 {
		m.EmailInput.Focus()
		m.PasswordInput.Blur()
	} else {
		m.EmailInput.Blur()
		m.PasswordInput.Focus()
	}
}

// submit validates and stores the credential pair, then moves to the board.
func (m LoginModel) submit() (tea.Model, tea.Cmd) {
	email := strings.TrimSpace(m.EmailInput.Value())
	password := m.PasswordInput.Value()

	if email == "" || password == "" {
		m.Err = m.deps.Tr("form.errors.required")
		return m, nil
	}

	if _, err := m.deps.Creds.Set(email, password); err != nil {
		m.Err = err.Error()
		return m, nil
	}

	return m, func() tea.Msg {
		return screenTransitionMsg{screen: ScreenBoard}
	}
}

// View renders the login screen
func (m LoginModel) View() string {
	theme := m.deps.Theme
	var b strings.Builder

	b.WriteString(theme.TitleStyle().Render("Login"))
	b.WriteString("\n\n")

	if m.Banner != "" {
		b.WriteString(theme.WarningStyle().Render(m.Banner))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderField("Email", m.EmailInput.View(), m.focusIndex == 0))
	b.WriteString("\n")
	b.WriteString(m.renderField("Senha", m.PasswordInput.View(), m.focusIndex == 1))
	b.WriteString("\n")

	if m.Err != "" {
		b.WriteString(theme.FieldErrorStyle().Render(m.Err))
		b.WriteString("\n")
	}

	return theme.RenderAppContainer(
		b.String(),
		"tab: next field • enter: sign in • esc: quit",
		m.Width, m.Height,
	)
}

func (m LoginModel) renderField(label, input string, focused bool) string {
	theme := m.deps.Theme
	style := theme.BlurredLabelStyle()
	if focused {
		style = theme.FocusedLabelStyle()
	}
	return style.Render(label) + "\n" + input + "\n"
}
