package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/motovision/motovision/internal/api"
	"github.com/motovision/motovision/internal/fleet"
)

// Messages for async patio operations. These are distinct from the board's
// message types so an in-flight board load arriving after a screen change
// can never be applied to this screen's state.
type patioListLoadedMsg struct {
	token  uint64
	patios []api.Patio
	err    error
}

type patioMotosLoadedMsg struct {
	token uint64
	motos []api.Moto
	err   error
}

type patioSavedMsg struct {
	err error
}

type patioDeletedMsg struct {
	err error
}

// Patio screen modes
type patioMode int

const (
	patioModeList patioMode = iota
	patioModeForm
	patioModeConfirm
)

// PatiosModel is the yard manager: list, create, edit, delete. A yard
// mutation can strand vehicles and changes grouping everywhere, so after
// any mutation both the patio and moto lists are reloaded concurrently and
// the editor is dismissed only once both have landed.
type PatiosModel struct {
	deps *Deps

	patioState *fleet.ListState[api.Patio]
	motoState  *fleet.ListState[api.Moto]
	guard      *fleet.SessionGuard

	mode    patioMode
	cursor  int
	editing *api.Patio

	NomeInput     textinput.Model
	EnderecoInput textinput.Model
	formFocus     int
	FieldErrs     fleet.FieldErrors

	Banner string
	saving bool
	// pendingLoads counts the post-mutation reloads still in flight; the
	// editor stays open until it reaches zero.
	pendingLoads int

	Spinner spinner.Model

	Width  int
	Height int
}

// NewPatiosModel creates the yard management screen.
func NewPatiosModel(deps *Deps) PatiosModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = deps.Theme.SpinnerStyle()

	nome := textinput.New()
	nome.Placeholder = "Pátio Central"
	nome.CharLimit = 80
	nome.Width = 40

	endereco := textinput.New()
	endereco.Placeholder = "Av. Paulista, 1000"
	endereco.CharLimit = 200
	endereco.Width = 40

	return PatiosModel{
		deps:          deps,
		patioState:    &fleet.ListState[api.Patio]{},
		motoState:     &fleet.ListState[api.Moto]{},
		guard:         &fleet.SessionGuard{},
		NomeInput:     nome,
		EnderecoInput: endereco,
		FieldErrs:     fleet.FieldErrors{},
		Spinner:       s,
	}
}

// Init loads both lists; motos are needed for the orphan warning.
func (m PatiosModel) Init() tea.Cmd {
	return tea.Batch(m.loadPatiosCmd(), m.loadMotosCmd(), m.Spinner.Tick)
}

func (m PatiosModel) loadPatiosCmd() tea.Cmd {
	token := m.patioState.Begin()
	client := m.deps.Client
	return func() tea.Msg {
		patios, err := client.ListPatios()
		return patioListLoadedMsg{token: token, patios: patios, err: err}
	}
}

func (m PatiosModel) loadMotosCmd() tea.Cmd {
	token := m.motoState.Begin()
	client := m.deps.Client
	return func() tea.Msg {
		motos, err := client.ListMotos()
		return patioMotosLoadedMsg{token: token, motos: motos, err: err}
	}
}

// Update handles messages for the patio screen
func (m PatiosModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case patioModeForm:
			return m.updateFormMode(msg)
		case patioModeConfirm:
			return m.updateConfirmMode(msg)
		default:
			return m.updateListMode(msg)
		}

	case patioListLoadedMsg:
		applied := m.patioState.Apply(msg.token, msg.patios, msg.err)
		m.settlePending(applied)
		if applied && msg.err != nil {
			return m.routeError(msg.err)
		}
		m.clampCursor()
		return m, nil

	case patioMotosLoadedMsg:
		applied := m.motoState.Apply(msg.token, msg.motos, msg.err)
		m.settlePending(applied)
		if applied && msg.err != nil {
			return m.routeError(msg.err)
		}
		return m, nil

	case patioSavedMsg:
		m.saving = false
		if msg.err != nil {
			return m.routeError(msg.err)
		}
		// Join both reloads before dismissing the editor
		m.pendingLoads = 2
		return m, tea.Batch(m.loadPatiosCmd(), m.loadMotosCmd(), m.Spinner.Tick)

	case patioDeletedMsg:
		m.saving = false
		if msg.err != nil {
			m.mode = patioModeList
			return m.routeError(msg.err)
		}
		m.pendingLoads = 2
		return m, tea.Batch(m.loadPatiosCmd(), m.loadMotosCmd(), m.Spinner.Tick)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// settlePending counts down the post-mutation reload join and closes the
// editor once both lists have landed.
func (m *PatiosModel) settlePending(applied bool) {
	if !applied || m.pendingLoads == 0 {
		return
	}
	m.pendingLoads--
	if m.pendingLoads == 0 {
		m.mode = patioModeList
		m.editing = nil
	}
}

func (m PatiosModel) updateListMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	patios, _, _ := m.patioState.Snapshot()

	switch msg.String() {
	case "q", "esc":
		return m, func() tea.Msg { return goBackMsg{} }

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(patios)-1 {
			m.cursor++
		}

	case "r":
		m.Banner = ""
		return m, tea.Batch(m.loadPatiosCmd(), m.loadMotosCmd(), m.Spinner.Tick)

	case "n":
		m.openForm(nil)
		return m, textinput.Blink

	case "enter", "e":
		if p := m.selectedPatio(); p != nil {
			m.openForm(p)
			return m, textinput.Blink
		}

	case "d":
		if m.selectedPatio() != nil {
			m.mode = patioModeConfirm
		}
	}

	return m, nil
}

func (m *PatiosModel) openForm(p *api.Patio) {
	m.mode = patioModeForm
	m.editing = p
	m.FieldErrs = fleet.FieldErrors{}
	m.formFocus = 0
	if p != nil {
		m.NomeInput.SetValue(p.Nome)
		m.EnderecoInput.SetValue(p.Endereco)
	} else {
		m.NomeInput.SetValue("")
		m.EnderecoInput.SetValue("")
	}
	m.NomeInput.Focus()
	m.EnderecoInput.Blur()
}

func (m PatiosModel) updateFormMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = patioModeList
		m.editing = nil
		return m, nil

	case "tab", "shift+tab", "up", "down":
		m.formFocus = 1 - m.formFocus
		if m.formFocus == 0 {
			m.NomeInput.Focus()
			m.EnderecoInput.Blur()
		} else {
			m.NomeInput.Blur()
			m.EnderecoInput.Focus()
		}
		return m, textinput.Blink

	case "enter":
		if m.formFocus == 0 {
			m.formFocus = 1
			m.NomeInput.Blur()
			m.EnderecoInput.Focus()
			return m, textinput.Blink
		}
		return m.submitForm()
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.NomeInput, cmd = m.NomeInput.Update(msg)
	cmds = append(cmds, cmd)
	m.EnderecoInput, cmd = m.EnderecoInput.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m PatiosModel) submitForm() (tea.Model, tea.Cmd) {
	payload, errs := fleet.ValidatePatio(m.NomeInput.Value(), m.EnderecoInput.Value(), m.deps.Tr)
	m.FieldErrs = errs
	if len(errs) > 0 {
		return m, nil
	}

	m.saving = true
	client := m.deps.Client
	editing := m.editing
	return m, tea.Batch(
		func() tea.Msg {
			var err error
			if editing != nil {
				_, err = client.UpdatePatio(editing.ID, payload)
			} else {
				_, err = client.CreatePatio(payload)
			}
			return patioSavedMsg{err: err}
		},
		m.Spinner.Tick,
	)
}

func (m PatiosModel) updateConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		p := m.selectedPatio()
		if p == nil {
			m.mode = patioModeList
			return m, nil
		}
		m.saving = true
		client := m.deps.Client
		id := p.ID
		return m, tea.Batch(
			func() tea.Msg { return patioDeletedMsg{err: client.DeletePatio(id)} },
			m.Spinner.Tick,
		)

	case "n", "esc":
		m.mode = patioModeList
	}
	return m, nil
}

func (m PatiosModel) routeError(err error) (tea.Model, tea.Cmd) {
	routed := fleet.Route(err, m.deps.Tr)
	if routed.Kind == fleet.RouteSessionExpired {
		if m.guard.ShouldPrompt() {
			return m, transitionCmd(ScreenLogin, loginData{banner: routed.Message})
		}
		return m, nil
	}
	m.Banner = routed.Message
	return m, nil
}

func (m PatiosModel) selectedPatio() *api.Patio {
	patios, _, _ := m.patioState.Snapshot()
	if m.cursor < 0 || m.cursor >= len(patios) {
		return nil
	}
	p := patios[m.cursor]
	return &p
}

func (m *PatiosModel) clampCursor() {
	patios, _, _ := m.patioState.Snapshot()
	if m.cursor >= len(patios) {
		m.cursor = len(patios) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the patio screen
func (m PatiosModel) View() string {
	theme := m.deps.Theme
	var b strings.Builder

	b.WriteString(theme.TitleStyle().Render("Pátios"))
	b.WriteString("\n\n")

	if m.Banner != "" {
		b.WriteString(theme.ErrorStyle().Render(m.Banner))
		b.WriteString("\n\n")
	}

	switch m.mode {
	case patioModeForm:
		b.WriteString(m.renderForm())
	case patioModeConfirm:
		b.WriteString(m.renderConfirm())
	default:
		b.WriteString(m.renderList())
	}

	footer := "↑/↓: navigate • n: new • enter: edit • d: delete • r: refresh • esc: back"
	if m.mode == patioModeForm {
		footer = "tab: next field • enter: save • esc: cancel"
	} else if m.mode == patioModeConfirm {
		footer = "y: delete • n: cancel"
	}

	return theme.RenderAppContainer(b.String(), footer, m.Width, m.Height)
}

func (m PatiosModel) renderList() string {
	theme := m.deps.Theme
	var b strings.Builder

	patios, loading, _ := m.patioState.Snapshot()
	motos, _, _ := m.motoState.Snapshot()

	if loading || m.saving {
		b.WriteString(m.Spinner.View())
		b.WriteString(theme.SubtitleStyle().Render(" carregando..."))
		b.WriteString("\n\n")
	}

	if len(patios) == 0 && !loading {
		b.WriteString(theme.SubtitleStyle().Render("Nenhum pátio cadastrado."))
		b.WriteString("\n")
	}

	for i, p := range patios {
		count := len(fleet.OrphanedMotos(motos, p.Nome))
		line := fmt.Sprintf("%-24s %s", p.Nome, theme.SubtitleStyle().Render(p.Endereco))
		line += theme.SubtitleStyle().Render(fmt.Sprintf("  (%d motos)", count))
		b.WriteString(theme.RenderMenuItem(line, i == m.cursor))
		b.WriteString("\n")
	}

	return b.String()
}

func (m PatiosModel) renderForm() string {
	theme := m.deps.Theme
	var b strings.Builder

	title := "Novo Pátio"
	if m.editing != nil {
		title = "Editar Pátio · " + m.editing.Nome
	}
	b.WriteString(theme.SectionStyle().Render(title))
	b.WriteString("\n\n")

	b.WriteString(m.renderFormField("Nome", m.NomeInput.View(), "nome", m.formFocus == 0))
	b.WriteString(m.renderFormField("Endereço", m.EnderecoInput.View(), "endereco", m.formFocus == 1))

	if m.saving || m.pendingLoads > 0 {
		b.WriteString(m.Spinner.View())
		b.WriteString(theme.SubtitleStyle().Render(" salvando..."))
		b.WriteString("\n")
	}

	return b.String()
}

func (m PatiosModel) renderFormField(label, input, errKey string, focused bool) string {
	theme := m.deps.Theme
	style := theme.BlurredLabelStyle()
	if focused {
		style = theme.FocusedLabelStyle()
	}
	out := style.Render(label) + "\n" + input + "\n"
	if msg, ok := m.FieldErrs[errKey]; ok {
		out += theme.FieldErrorStyle().Render(msg) + "\n"
	}
	return out + "\n"
}

// renderConfirm renders the deletion prompt, listing the plates of every
// vehicle still assigned to the yard. Deletion proceeds anyway; those
// vehicles fall back to the unknown-yard section.
func (m PatiosModel) renderConfirm() string {
	theme := m.deps.Theme
	p := m.selectedPatio()
	if p == nil {
		return ""
	}

	var b strings.Builder
	motos, _, _ := m.motoState.Snapshot()
	orphans := fleet.OrphanedMotos(motos, p.Nome)

	prompt := fmt.Sprintf("Excluir o pátio %s? (y/n)", p.Nome)
	if len(orphans) > 0 {
		placas := make([]string, len(orphans))
		for i, moto := range orphans {
			placas[i] = moto.Placa
		}
		prompt += fmt.Sprintf("\n\n%d moto(s) ficarão sem pátio: %s",
			len(orphans), strings.Join(placas, ", "))
	}
	b.WriteString(theme.WarningStyle().Render(prompt))
	b.WriteString("\n")

	if m.saving {
		b.WriteString("\n")
		b.WriteString(m.Spinner.View())
		b.WriteString(theme.SubtitleStyle().Render(" excluindo..."))
		b.WriteString("\n")
	}

	return b.String()
}
