package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/motovision/motovision/internal/api"
	"github.com/motovision/motovision/internal/config"
	"github.com/motovision/motovision/internal/credstore"
	"github.com/motovision/motovision/internal/i18n"
	"github.com/motovision/motovision/internal/storage"
)

// Screen represents the current active screen in the application
type Screen string

const (
	ScreenLogin    Screen = "login"
	ScreenBoard    Screen = "board"
	ScreenMotoForm Screen = "motoform"
	ScreenPatios   Screen = "patios"
	ScreenSettings Screen = "settings"
)

// Messages for screen transitions
type screenTransitionMsg struct {
	screen Screen
	data   interface{}
}

type goBackMsg struct{}

// motoFormData seeds the vehicle form screen. A nil moto means create.
type motoFormData struct {
	moto   *api.Moto
	patios []api.Patio
}

// loginData optionally carries a banner shown above the login form, used
// for the session-expired prompt.
type loginData struct {
	banner string
}

// Deps is the shared application state every screen reads from. Settings
// mutates the preferences and theme in place, which is why screens hold a
// pointer rather than a copy.
type Deps struct {
	KV     *storage.Store
	Creds  *credstore.Store
	Client *api.Client
	Prefs  config.Preferences
	Tr     i18n.Translator
	Theme  Theme
}

// NewDeps assembles the shared state from an opened key-value store.
func NewDeps(kv *storage.Store) *Deps {
	creds := credstore.New(kv)
	prefs := config.Load(kv)
	return &Deps{
		KV:     kv,
		Creds:  creds,
		Client: api.NewClient(prefs.BaseURL, creds),
		Prefs:  prefs,
		Tr:     prefs.Translator(),
		Theme:  NewTheme(prefs.DarkMode, prefs.AltPalette),
	}
}

// AppModel is the top-level coordinator model that manages screen transitions
type AppModel struct {
	deps *Deps

	CurrentScreen  Screen
	PreviousScreen Screen

	LoginModel    LoginModel
	BoardModel    BoardModel
	MotoFormModel MotoFormModel
	PatiosModel   PatiosModel
	SettingsModel SettingsModel

	Width  int
	Height int
}

// NewAppModel creates the application model. The start screen depends on
// whether a credential token is already stored: a returning user lands on
// the board directly.
func NewAppModel(deps *Deps) AppModel {
	model := AppModel{deps: deps}

	if _, err := deps.Creds.Token(); err != nil {
		model.CurrentScreen = ScreenLogin
		model.LoginModel = NewLoginModel(deps, "")
	} else {
		model.CurrentScreen = ScreenBoard
		model.BoardModel = NewBoardModel(deps)
	}
	return model
}

// Init initializes the application
func (m AppModel) Init() tea.Cmd {
	switch m.CurrentScreen {
	case ScreenLogin:
		return m.LoginModel.Init()
	case ScreenBoard:
		return m.BoardModel.Init()
	default:
		return nil
	}
}

// Update handles all messages and routes them to the appropriate screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.LoginModel.Width, m.LoginModel.Height = msg.Width, msg.Height
		m.BoardModel.Width, m.BoardModel.Height = msg.Width, msg.Height
		m.MotoFormModel.Width, m.MotoFormModel.Height = msg.Width, msg.Height
		m.PatiosModel.Width, m.PatiosModel.Height = msg.Width, msg.Height
		m.SettingsModel.Width, m.SettingsModel.Height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		// Global quit handler
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case screenTransitionMsg:
		return m.transitionTo(msg.screen, msg.data)

	case goBackMsg:
		return m.goBack()
	}

	return m.updateCurrentScreen(msg)
}

// updateCurrentScreen routes updates to the currently active screen
func (m AppModel) updateCurrentScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.CurrentScreen {
	case ScreenLogin:
		updated, c := m.LoginModel.Update(msg)
		m.LoginModel = updated.(LoginModel)
		cmd = c

	case ScreenBoard:
		updated, c := m.BoardModel.Update(msg)
		m.BoardModel = updated.(BoardModel)
		cmd = c

	case ScreenMotoForm:
		updated, c := m.MotoFormModel.Update(msg)
		m.MotoFormModel = updated.(MotoFormModel)
		cmd = c

	case ScreenPatios:
		updated, c := m.PatiosModel.Update(msg)
		m.PatiosModel = updated.(PatiosModel)
		cmd = c

	case ScreenSettings:
		updated, c := m.SettingsModel.Update(msg)
		m.SettingsModel = updated.(SettingsModel)
		cmd = c
	}

	return m, cmd
}

// transitionTo transitions to a new screen
func (m AppModel) transitionTo(screen Screen, data interface{}) (tea.Model, tea.Cmd) {
	m.PreviousScreen = m.CurrentScreen
	m.CurrentScreen = screen

	var cmd tea.Cmd

	switch screen {
	case ScreenLogin:
		banner := ""
		if d, ok := data.(loginData); ok {
			banner = d.banner
		}
		m.LoginModel = NewLoginModel(m.deps, banner)
		m.LoginModel.Width, m.LoginModel.Height = m.Width, m.Height
		cmd = m.LoginModel.Init()

	case ScreenBoard:
		m.BoardModel = NewBoardModel(m.deps)
		m.BoardModel.Width, m.BoardModel.Height = m.Width, m.Height
		cmd = m.BoardModel.Init()

	case ScreenMotoForm:
		d, _ := data.(motoFormData)
		m.MotoFormModel = NewMotoFormModel(m.deps, d.moto, d.patios)
		m.MotoFormModel.Width, m.MotoFormModel.Height = m.Width, m.Height
		cmd = m.MotoFormModel.Init()

	case ScreenPatios:
		m.PatiosModel = NewPatiosModel(m.deps)
		m.PatiosModel.Width, m.PatiosModel.Height = m.Width, m.Height
		cmd = m.PatiosModel.Init()

	case ScreenSettings:
		m.SettingsModel = NewSettingsModel(m.deps)
		m.SettingsModel.Width, m.SettingsModel.Height = m.Width, m.Height
		cmd = m.SettingsModel.Init()
	}

	return m, cmd
}

// goBack returns to the previous screen
func (m AppModel) goBack() (tea.Model, tea.Cmd) {
	switch m.CurrentScreen {
	case ScreenLogin, ScreenBoard:
		// Top-level screens quit instead
		return m, tea.Quit

	case ScreenMotoForm, ScreenPatios, ScreenSettings:
		return m.transitionTo(ScreenBoard, nil)

	default:
		return m, tea.Quit
	}
}

// View renders the current screen
func (m AppModel) View() string {
	switch m.CurrentScreen {
	case ScreenLogin:
		return m.LoginModel.View()
	case ScreenBoard:
		return m.BoardModel.View()
	case ScreenMotoForm:
		return m.MotoFormModel.View()
	case ScreenPatios:
		return m.PatiosModel.View()
	case ScreenSettings:
		return m.SettingsModel.View()
	default:
		return "Unknown screen"
	}
}
