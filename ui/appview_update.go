package ui

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	appmodel "scantui/model"
)

const (
	headerHeight    = 2
	statusBarHeight = 1
	inputHeight     = 3
)

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

		chromeHeight := headerHeight + statusBarHeight + inputHeight + 2
		if !a.ready {
			a.viewport = viewport.New(msg.Width, msg.Height-chromeHeight)
			a.ready = true
		} else {
			a.viewport.Width = msg.Width
			a.viewport.Height = msg.Height - chromeHeight
		}
		a.textarea.SetWidth(msg.Width - 2)
		a.updateViewportContent(true)
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.loadingSpinner, cmd = a.loadingSpinner.Update(msg)
		return a, cmd

	case markdownRenderedMsg:
		if msg.MessageIndex >= 0 && msg.MessageIndex < a.dataModel.Buffer.Len() {
			a.dataModel.Buffer.Messages[msg.MessageIndex].Rendered = msg.Rendered
			a.updateViewportContent(false)
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Data messages from the model's commands
	if handled, next, cmd := a.handleDataMessage(msg); handled {
		return next, cmd
	}

	return a, nil
}

func (a AppView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Overlays take key priority over the main screen
	switch {
	case a.showInfoModal:
		switch msg.String() {
		case "enter", "esc":
			a.showInfoModal = false
		}
		return a, nil

	case a.confirmDeleteSession != nil:
		return a.handleDeleteConfirmKey(msg)

	case a.authModal.Active:
		return a.handleAuthModalKey(msg)

	case a.showSessionManager:
		return a.handleSessionManagerKey(msg)
	}

	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit

	case "tab":
		a.dataModel.ActiveView = (a.dataModel.ActiveView + 1) % 3
		return a, nil

	case "shift+tab":
		a.dataModel.ActiveView = (a.dataModel.ActiveView + 2) % 3
		return a, nil

	case "ctrl+s":
		a.openSessionManager()
		return a, a.dataModel.FetchSessionListCmd()

	case "ctrl+n":
		cmd := a.dataModel.StartNewSession()
		a.updateViewportContent(true)
		return a, cmd

	case "ctrl+a":
		if !a.dataModel.Auth.Authenticated() {
			a.authModal.Open(false)
		}
		return a, nil

	case "ctrl+x":
		if a.dataModel.Auth.Authenticated() {
			return a, a.dataModel.LogoutCmd()
		}
		return a, nil

	case "ctrl+y":
		// Copy the newest assistant reply
		for i := a.dataModel.Buffer.Len() - 1; i >= 0; i-- {
			m := a.dataModel.Buffer.Messages[i]
			if m.Role == "assistant" && !m.Local {
				clipboard.WriteAll(m.Content)
				break
			}
		}
		return a, nil

	case "ctrl+h":
		a.showHelp = !a.showHelp
		return a, nil
	}

	switch a.dataModel.ActiveView {
	case appmodel.ViewSettings:
		return a.handleSettingsKey(msg)
	case appmodel.ViewSkills:
		// Read-only catalog, no keys beyond the globals
		return a, nil
	}

	return a.handleConversationKey(msg)
}

func (a AppView) handleConversationKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		text := a.textarea.Value()
		wasSending := a.dataModel.Buffer.Sending
		cmd := a.dataModel.StartSend(text)
		if cmd != nil || (!wasSending && strings.TrimSpace(text) != "") {
			// Send started or a local notice was appended; a drop while
			// another send is in flight keeps the typed text.
			a.textarea.Reset()
			a.updateViewportContent(true)
		}
		return a, cmd

	case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.textarea, cmd = a.textarea.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

func (a AppView) handleDeleteConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		sessionID := a.confirmDeleteSession.SessionID
		a.confirmDeleteSession = nil
		return a, a.dataModel.DeleteSessionCmd(sessionID)
	case "n", "N", "esc":
		a.confirmDeleteSession = nil
	}
	return a, nil
}

func (a *AppView) showError(title string, err error) {
	a.showInfoModal = true
	a.infoModalTitle = title
	a.infoModalMsg = err.Error()
	a.infoModalType = ModalTypeError
}

func (a *AppView) showNotice(title, message string) {
	a.showInfoModal = true
	a.infoModalTitle = title
	a.infoModalMsg = message
	a.infoModalType = ModalTypeInfo
}
