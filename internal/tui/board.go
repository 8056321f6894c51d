package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/motovision/motovision/internal/api"
	"github.com/motovision/motovision/internal/fleet"
	"github.com/motovision/motovision/internal/status"
)

// Messages for async board operations
type motosLoadedMsg struct {
	token uint64
	motos []api.Moto
	err   error
}

type patiosLoadedMsg struct {
	token  uint64
	patios []api.Patio
	err    error
}

type motoDeletedMsg struct {
	err error
}

// BoardModel is the vehicle board: every moto grouped by yard, loaded when
// the screen is entered. Moto and patio loads are independent; neither
// blocks the other and each keeps its own error state.
type BoardModel struct {
	deps *Deps

	motoState  *fleet.ListState[api.Moto]
	patioState *fleet.ListState[api.Patio]
	guard      *fleet.SessionGuard

	// StatusFilter narrows the moto list server-side; empty means all.
	StatusFilter string

	cursor        int
	Banner        string
	BannerIsError bool
	ConfirmDelete *api.Moto
	deleting      bool

	Spinner spinner.Model

	Width  int
	Height int
}

// NewBoardModel creates the board. The session guard is per screen lifetime,
// so a burst of concurrent auth failures routes to login exactly once.
func NewBoardModel(deps *Deps) BoardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = deps.Theme.SpinnerStyle()

	return BoardModel{
		deps:       deps,
		motoState:  &fleet.ListState[api.Moto]{},
		patioState: &fleet.ListState[api.Patio]{},
		guard:      &fleet.SessionGuard{},
		Spinner:    s,
	}
}

// Init starts both loads concurrently
func (m BoardModel) Init() tea.Cmd {
	return tea.Batch(
		m.loadMotosCmd(),
		m.loadPatiosCmd(),
		m.Spinner.Tick,
	)
}

// loadMotosCmd begins a moto load generation and returns the command that
// completes it. The token is claimed now, not inside the closure, so the
// order of initiation decides which response wins.
func (m BoardModel) loadMotosCmd() tea.Cmd {
	token := m.motoState.Begin()
	client := m.deps.Client
	filter := m.StatusFilter
	return func() tea.Msg {
		var motos []api.Moto
		var err error
		if filter == "" {
			motos, err = client.ListMotos()
		} else {
			motos, err = client.FilterMotos(api.MotoFilter{Status: filter})
		}
		return motosLoadedMsg{token: token, motos: motos, err: err}
	}
}

func (m BoardModel) loadPatiosCmd() tea.Cmd {
	token := m.patioState.Begin()
	client := m.deps.Client
	return func() tea.Msg {
		patios, err := client.ListPatios()
		return patiosLoadedMsg{token: token, patios: patios, err: err}
	}
}

// Update handles messages for the board screen
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.ConfirmDelete != nil {
			return m.updateConfirmMode(msg)
		}
		return m.updateNormalMode(msg)

	case motosLoadedMsg:
		if m.motoState.Apply(msg.token, msg.motos, msg.err) && msg.err != nil {
			return m.routeError(msg.err)
		}
		m.clampCursor()
		return m, nil

	case patiosLoadedMsg:
		if m.patioState.Apply(msg.token, msg.patios, msg.err) && msg.err != nil {
			return m.routeError(msg.err)
		}
		return m, nil

	case motoDeletedMsg:
		m.deleting = false
		if msg.err != nil {
			return m.routeError(msg.err)
		}
		// Moto mutation invalidates the moto list only
		return m, tea.Batch(m.loadMotosCmd(), m.Spinner.Tick)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// updateNormalMode handles keyboard input outside the delete confirmation
func (m BoardModel) updateNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.flatMotos())-1 {
			m.cursor++
		}

	case "r":
		m.Banner = ""
		return m, tea.Batch(m.loadMotosCmd(), m.loadPatiosCmd(), m.Spinner.Tick)

	case "f":
		m.StatusFilter = nextStatusFilter(m.StatusFilter)
		m.cursor = 0
		return m, tea.Batch(m.loadMotosCmd(), m.Spinner.Tick)

	case "n":
		patios, _, _ := m.patioState.Snapshot()
		return m, transitionCmd(ScreenMotoForm, motoFormData{patios: patios})

	case "enter", "e":
		if moto := m.selectedMoto(); moto != nil {
			patios, _, _ := m.patioState.Snapshot()
			return m, transitionCmd(ScreenMotoForm, motoFormData{moto: moto, patios: patios})
		}

	case "d":
		if moto := m.selectedMoto(); moto != nil {
			m.ConfirmDelete = moto
		}

	case "p":
		return m, transitionCmd(ScreenPatios, nil)

	case "s":
		return m, transitionCmd(ScreenSettings, nil)
	}

	return m, nil
}

// updateConfirmMode handles the delete confirmation prompt
func (m BoardModel) updateConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		moto := m.ConfirmDelete
		m.ConfirmDelete = nil
		m.deleting = true
		client := m.deps.Client
		id := moto.ID
		return m, tea.Batch(
			func() tea.Msg { return motoDeletedMsg{err: client.DeleteMoto(id)} },
			m.Spinner.Tick,
		)

	case "n", "esc":
		m.ConfirmDelete = nil
	}
	return m, nil
}

// routeError classifies a failed call. Session expiry navigates to login at
// most once for this screen instance; everything else becomes a banner.
func (m BoardModel) routeError(err error) (tea.Model, tea.Cmd) {
	routed := fleet.Route(err, m.deps.Tr)

	if routed.Kind == fleet.RouteSessionExpired {
		if m.guard.ShouldPrompt() {
			return m, transitionCmd(ScreenLogin, loginData{banner: routed.Message})
		}
		return m, nil
	}

	m.Banner = routed.Message
	m.BannerIsError = routed.Kind != fleet.RouteNetwork
	return m, nil
}

func transitionCmd(screen Screen, data interface{}) tea.Cmd {
	return func() tea.Msg {
		return screenTransitionMsg{screen: screen, data: data}
	}
}

// nextStatusFilter cycles all → first status → ... → last status → all.
func nextStatusFilter(current string) string {
	all := status.All()
	if current == "" {
		return all[0]
	}
	for i, s := range all {
		if s == current && i+1 < len(all) {
			return all[i+1]
		}
	}
	return ""
}

// sections groups the current moto snapshot by yard.
func (m BoardModel) sections() []fleet.Section {
	motos, _, _ := m.motoState.Snapshot()
	return fleet.GroupByPatio(motos, m.deps.Tr("patio.unknownYard"))
}

// flatMotos flattens the grouped sections for cursor navigation.
func (m BoardModel) flatMotos() []api.Moto {
	var flat []api.Moto
	for _, sec := range m.sections() {
		flat = append(flat, sec.Motos...)
	}
	return flat
}

func (m BoardModel) selectedMoto() *api.Moto {
	flat := m.flatMotos()
	if m.cursor < 0 || m.cursor >= len(flat) {
		return nil
	}
	moto := flat[m.cursor]
	return &moto
}

func (m *BoardModel) clampCursor() {
	if n := len(m.flatMotos()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the board screen
func (m BoardModel) View() string {
	theme := m.deps.Theme
	tr := m.deps.Tr
	var b strings.Builder

	title := "Frota"
	if m.StatusFilter != "" {
		title += " · " + status.Label(m.StatusFilter, tr)
	}
	b.WriteString(theme.TitleStyle().Render(title))
	b.WriteString("\n\n")

	if m.Banner != "" {
		style := theme.WarningStyle()
		if m.BannerIsError {
			style = theme.ErrorStyle()
		}
		b.WriteString(style.Render(m.Banner))
		b.WriteString("\n\n")
	}

	if m.ConfirmDelete != nil {
		prompt := fmt.Sprintf("Excluir a moto %s (%s)? (y/n)",
			m.ConfirmDelete.Placa, m.ConfirmDelete.Modelo)
		b.WriteString(theme.WarningStyle().Render(prompt))
		b.WriteString("\n\n")
	}

	_, motosLoading, _ := m.motoState.Snapshot()
	_, patiosLoading, _ := m.patioState.Snapshot()
	if motosLoading || patiosLoading || m.deleting {
		b.WriteString(m.Spinner.View())
		b.WriteString(theme.SubtitleStyle().Render(" carregando..."))
		b.WriteString("\n\n")
	}

	sections := m.sections()
	if len(sections) == 0 && !motosLoading {
		b.WriteString(theme.SubtitleStyle().Render("Nenhuma moto cadastrada."))
		b.WriteString("\n")
	}

	index := 0
	for _, sec := range sections {
		header := fmt.Sprintf("%s (%d)", sec.Titulo, len(sec.Motos))
		b.WriteString(theme.SectionStyle().Render(header))
		b.WriteString("\n")

		for _, moto := range sec.Motos {
			b.WriteString(m.renderMoto(moto, index == m.cursor))
			b.WriteString("\n")
			index++
		}
		b.WriteString("\n")
	}

	return theme.RenderAppContainer(
		b.String(),
		"↑/↓: navigate • n: new • enter: edit • d: delete • f: filter • r: refresh • p: yards • s: settings • q: quit",
		m.Width, m.Height,
	)
}

// renderMoto renders one vehicle row with its status badge and sector.
func (m BoardModel) renderMoto(moto api.Moto, selected bool) string {
	theme := m.deps.Theme
	tr := m.deps.Tr

	badge := status.Label(moto.Status, tr)
	if preview := status.SetorPreview(moto.Status); preview != nil {
		badge = theme.StatusBadge(badge, preview.Color) +
			theme.SubtitleStyle().Render(fmt.Sprintf("  Setor %s", preview.Setor))
	}

	line := fmt.Sprintf("%-8s %-20s %s", moto.Placa, moto.Modelo, badge)
	if moto.Descricao != "" {
		line += theme.SubtitleStyle().Render("  " + moto.Descricao)
	}
	return theme.RenderMenuItem(line, selected)
}
