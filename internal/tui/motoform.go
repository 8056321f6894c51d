package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/motovision/motovision/internal/api"
	"github.com/motovision/motovision/internal/fleet"
	"github.com/motovision/motovision/internal/status"
)

type motoSavedMsg struct {
	err error
}

// Form field order
const (
	fieldModelo = iota
	fieldPlaca
	fieldStatus
	fieldDescricao
	fieldPatio
	motoFieldCount
)

// MotoFormModel is the create/edit screen for a vehicle. Status and yard
// are pick-one selectors cycled with left/right; the rest are text inputs.
// Validation happens entirely locally before anything touches the network.
type MotoFormModel struct {
	deps *Deps

	// Editing is nil when creating
	Editing *api.Moto
	patios  []api.Patio

	ModeloInput    textinput.Model
	PlacaInput     textinput.Model
	DescricaoInput textinput.Model
	statusIndex    int
	patioIndex     int
	focusIndex     int

	FieldErrs fleet.FieldErrors
	Banner    string
	saving    bool
	guard     *fleet.SessionGuard

	Width  int
	Height int
}

// NewMotoFormModel seeds the form from an existing moto (edit) or blank
// (create). The patio list comes from the board's last snapshot; it is the
// set of valid yard references.
func NewMotoFormModel(deps *Deps, moto *api.Moto, patios []api.Patio) MotoFormModel {
	modelo := textinput.New()
	modelo.Placeholder = "Honda CG 160"
	modelo.CharLimit = 80
	modelo.Width = 40
	modelo.Focus()

	placa := textinput.New()
	placa.Placeholder = "ABC1D23"
	placa.CharLimit = 7
	placa.Width = 40

	descricao := textinput.New()
	descricao.Placeholder = "observações (opcional)"
	descricao.CharLimit = 200
	descricao.Width = 40

	m := MotoFormModel{
		deps:           deps,
		Editing:        moto,
		patios:         patios,
		ModeloInput:    modelo,
		PlacaInput:     placa,
		DescricaoInput: descricao,
		FieldErrs:      fleet.FieldErrors{},
		guard:          &fleet.SessionGuard{},
	}

	if moto != nil {
		m.ModeloInput.SetValue(moto.Modelo)
		m.PlacaInput.SetValue(moto.Placa)
		m.DescricaoInput.SetValue(moto.Descricao)
		for i, s := range status.All() {
			if s == moto.Status {
				m.statusIndex = i
			}
		}
		for i, p := range patios {
			if p.Nome == moto.NomePatio {
				m.patioIndex = i
			}
		}
	}

	return m
}

// Init initializes the form screen
func (m MotoFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the form screen
func (m MotoFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)

	case motoSavedMsg:
		m.saving = false
		if msg.err != nil {
			return m.routeError(msg.err)
		}
		// The board reloads on entry, so the list reflects the mutation
		return m, func() tea.Msg { return goBackMsg{} }
	}

	return m.updateInputs(msg)
}

func (m MotoFormModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, func() tea.Msg { return goBackMsg{} }

	case "tab", "down":
		m.focusIndex = (m.focusIndex + 1) % motoFieldCount
		m.applyFocus()
		return m, textinput.Blink

	case "shift+tab", "up":
		m.focusIndex = (m.focusIndex - 1 + motoFieldCount) % motoFieldCount
		m.applyFocus()
		return m, textinput.Blink

	case "left", "right":
		delta := 1
		if msg.String() == "left" {
			delta = -1
		}
		switch m.focusIndex {
		case fieldStatus:
			n := len(status.All())
			m.statusIndex = (m.statusIndex + delta + n) % n
			return m, nil
		case fieldPatio:
			if n := len(m.patios); n > 0 {
				m.patioIndex = (m.patioIndex + delta + n) % n
			}
			return m, nil
		}

	case "enter":
		if m.focusIndex < motoFieldCount-1 {
			m.focusIndex++
			m.applyFocus()
			return m, textinput.Blink
		}
		return m.submit()
	}

	return m.updateInputs(msg)
}

func (m MotoFormModel) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.ModeloInput, cmd = m.ModeloInput.Update(msg)
	cmds = append(cmds, cmd)
	m.PlacaInput, cmd = m.PlacaInput.Update(msg)
	cmds = append(cmds, cmd)
	m.DescricaoInput, cmd = m.DescricaoInput.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *MotoFormModel) applyFocus() {
	m.ModeloInput.Blur()
	m.PlacaInput.Blur()
	m.DescricaoInput.Blur()
	switch m.focusIndex {
	case fieldModelo:
		m.ModeloInput.Focus()
	case fieldPlaca:
		m.PlacaInput.Focus()
	case fieldDescricao:
		m.DescricaoInput.Focus()
	}
}

func (m MotoFormModel) selectedStatus() string {
	return status.All()[m.statusIndex]
}

func (m MotoFormModel) selectedPatio() string {
	if m.patioIndex < 0 || m.patioIndex >= len(m.patios) {
		return ""
	}
	return m.patios[m.patioIndex].Nome
}

// submit validates locally; any field error blocks the network call.
func (m MotoFormModel) submit() (tea.Model, tea.Cmd) {
	input := fleet.MotoInput{
		Modelo:    m.ModeloInput.Value(),
		Placa:     m.PlacaInput.Value(),
		Status:    m.selectedStatus(),
		Descricao: m.DescricaoInput.Value(),
		NomePatio: m.selectedPatio(),
	}

	payload, errs := fleet.ValidateMoto(input, m.patios, m.deps.Tr)
	m.FieldErrs = errs
	if len(errs) > 0 {
		return m, nil
	}

	m.saving = true
	client := m.deps.Client
	editing := m.Editing
	return m, func() tea.Msg {
		var err error
		if editing != nil {
			_, err = client.UpdateMoto(editing.ID, payload)
		} else {
			_, err = client.CreateMoto(payload)
		}
		return motoSavedMsg{err: err}
	}
}

func (m MotoFormModel) routeError(err error) (tea.Model, tea.Cmd) {
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

// View renders the form screen
func (m MotoFormModel) View() string {
	theme := m.deps.Theme
	tr := m.deps.Tr
	var b strings.Builder

	title := "Nova Moto"
	if m.Editing != nil {
		title = "Editar Moto · " + m.Editing.Placa
	}
	b.WriteString(theme.TitleStyle().Render(title))
	b.WriteString("\n\n")

	if m.Banner != "" {
		b.WriteString(theme.ErrorStyle().Render(m.Banner))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderField("Modelo", m.ModeloInput.View(), fieldModelo))
	b.WriteString(m.renderField("Placa", m.PlacaInput.View(), fieldPlaca))

	statusLabel := status.Label(m.selectedStatus(), tr)
	if preview := status.SetorPreview(m.selectedStatus()); preview != nil {
		statusLabel = theme.StatusBadge(statusLabel, preview.Color)
	}
	b.WriteString(m.renderField("Status", "◂ "+statusLabel+" ▸", fieldStatus))

	b.WriteString(m.renderField("Descrição", m.DescricaoInput.View(), fieldDescricao))

	patioLabel := m.selectedPatio()
	if patioLabel == "" {
		patioLabel = tr("patio.unknownYard")
	}
	b.WriteString(m.renderField("Pátio", "◂ "+patioLabel+" ▸", fieldPatio))

	if preview := status.SetorPreview(m.selectedStatus()); preview != nil {
		b.WriteString("\n")
		b.WriteString(theme.SectorPanel(preview.Setor, preview.CorSetor, preview.Color))
		b.WriteString("\n")
	}

	if m.saving {
		b.WriteString("\n")
		b.WriteString(theme.SubtitleStyle().Render("salvando..."))
		b.WriteString("\n")
	}

	return theme.RenderAppContainer(
		b.String(),
		"tab: next field • ◂/▸: change selection • enter: save • esc: cancel",
		m.Width, m.Height,
	)
}

// renderField renders a labeled field with its inline error, if any.
func (m MotoFormModel) renderField(label, input string, field int) string {
	theme := m.deps.Theme
	style := theme.BlurredLabelStyle()
	if m.focusIndex == field {
		style = theme.FocusedLabelStyle()
	}

	out := style.Render(label) + "\n" + input + "\n"
	if msg, ok := m.FieldErrs[fieldKey(field)]; ok {
		out += theme.FieldErrorStyle().Render(msg) + "\n"
	}
	return out + "\n"
}

func fieldKey(field int) string {
	switch field {
	case fieldModelo:
		return "modelo"
	case fieldPlaca:
		return "placa"
	case fieldStatus:
		return "status"
	case fieldDescricao:
		return "descricao"
	case fieldPatio:
		return "nomePatio"
	}
	return ""
}
