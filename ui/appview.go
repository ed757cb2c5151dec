package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"scantui/client"
	"scantui/config"
	appmodel "scantui/model"
)

type AppView struct {
	// Reference to core data model
	dataModel *appmodel.Model

	// UI Components
	viewport viewport.Model
	textarea textarea.Model

	// Window state
	width  int
	height int
	ready  bool

	showHelp bool

	// Loading spinner (bubbles/spinner)
	loadingSpinner spinner.Model

	// Session manager overlay
	showSessionManager  bool
	selectedSessionIdx  int
	sessionFilterMode   bool
	sessionFilterInput  textinput.Model
	filteredSessionList []client.SessionSummary

	// Delete confirmation state
	confirmDeleteSession *client.SessionSummary

	// Auth modal
	authModal AuthModalState

	// Settings view state
	settings SettingsState

	// Info modal state (for simple notifications/errors)
	showInfoModal  bool
	infoModalTitle string
	infoModalMsg   string
	infoModalType  ModalType
}

func NewAppView(cfg *config.Config, c *client.Client, version string) AppView {
	ta := textarea.New()
	ta.Placeholder = "Type a message; sending creates a session if none is selected"
	ta.Prompt = "┃ "
	ta.CharLimit = 0
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accentColor)

	filterInput := textinput.New()
	filterInput.Placeholder = "filter sessions"
	filterInput.CharLimit = 64

	return AppView{
		dataModel:      appmodel.NewModel(cfg, c, version),
		textarea:       ta,
		loadingSpinner: sp,
		sessionFilterInput: filterInput,
		authModal:          NewAuthModalState(),
		settings:           NewSettingsState(),
	}
}

// Model exposes the core data model, mainly for tests.
func (a AppView) Model() *appmodel.Model {
	return a.dataModel
}

func (a AppView) Init() tea.Cmd {
	return tea.Batch(
		a.dataModel.ResolveIdentityCmd(),
		a.dataModel.LoadConfigCmd(),
		a.loadingSpinner.Tick,
		textarea.Blink,
	)
}

func (a AppView) View() string {
	if !a.ready {
		return "Initializing..."
	}

	// Hold the first real frame until who-am-i resolves so a logged-in
	// user never sees a logged-out flash.
	if !a.dataModel.Auth.Checked {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
			a.loadingSpinner.View()+" Connecting to agent service...")
	}

	var body string
	switch a.dataModel.ActiveView {
	case appmodel.ViewConversation:
		body = a.renderConversation()
	case appmodel.ViewSkills:
		body = a.renderSkills()
	case appmodel.ViewSettings:
		body = a.renderSettings()
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		a.renderHeader(),
		body,
		a.renderStatusBar(),
	)

	// Overlays replace the frame entirely
	switch {
	case a.showInfoModal:
		return RenderInfoModal(a.infoModalTitle, a.infoModalMsg, a.infoModalType, a.width, a.height)
	case a.confirmDeleteSession != nil:
		return RenderConfirmModal(
			"Delete Session",
			"Delete this session and all of its messages?\nThis cannot be undone.\n\n"+truncateID(a.confirmDeleteSession.SessionID),
			a.width, a.height)
	case a.authModal.Active:
		return a.renderAuthModal()
	case a.showSessionManager:
		return a.renderSessionManager()
	}

	return view
}
