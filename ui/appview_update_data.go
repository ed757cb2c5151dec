package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"scantui/config"
	appmodel "scantui/model"
)

// handleDataMessage routes completions coming back from the model's
// commands into the model's Apply transitions, then reconciles the
// incidental UI state (viewport, modals, spinners).
func (a AppView) handleDataMessage(msg tea.Msg) (bool, AppView, tea.Cmd) {
	switch msg := msg.(type) {
	case appmodel.IdentityResolvedMsg:
		cmd := a.dataModel.ApplyIdentityResolved(msg)
		return true, a, cmd

	case appmodel.LoginResultMsg:
		a.authModal.Busy = false
		if msg.Err != nil {
			a.authModal.Notice = msg.Err.Error()
			return true, a, nil
		}
		cmd := a.dataModel.ApplyLoginResult(msg)
		a.authModal.Close()
		a.updateViewportContent(true)
		return true, a, cmd

	case appmodel.RegisterResultMsg:
		a.authModal.Busy = false
		if msg.Err != nil {
			a.authModal.Notice = msg.Err.Error()
			return true, a, nil
		}
		// Registration never authenticates; prompt for the login step.
		a.authModal.SwitchToLogin(msg.Username)
		a.authModal.Notice = "Account created. Log in with your new credentials."
		return true, a, nil

	case appmodel.LogoutResultMsg:
		a.dataModel.ApplyLogoutResult(msg)
		a.showSessionManager = false
		a.updateViewportContent(true)
		return true, a, nil

	case appmodel.SessionsListMsg:
		a.dataModel.ApplySessionsList(msg)
		if a.showSessionManager {
			a.refreshSessionFilter()
		}
		return true, a, nil

	case appmodel.SessionSelectedMsg:
		if !a.dataModel.ApplySessionSelected(msg) {
			// Superseded selection; drop silently
			return true, a, nil
		}
		if msg.Err != nil && msg.Messages == nil {
			a.showError("Load Session", msg.Err)
			return true, a, nil
		}
		if msg.Err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("Directory refresh after select failed: %v", msg.Err)
		}
		a.showSessionManager = false
		a.updateViewportContent(true)
		return true, a, a.renderHistoryMarkdown()

	case appmodel.SessionDeletedMsg:
		a.dataModel.ApplySessionDeleted(msg)
		if !msg.Deleted && msg.Err != nil {
			a.showError("Delete Session", msg.Err)
			return true, a, nil
		}
		if a.showSessionManager {
			a.refreshSessionFilter()
			if a.selectedSessionIdx >= len(a.filteredSessionList) && a.selectedSessionIdx > 0 {
				a.selectedSessionIdx--
			}
		}
		a.updateViewportContent(true)
		return true, a, nil

	case appmodel.ChatResultMsg:
		cmd := a.dataModel.ApplyChatResult(msg)
		a.updateViewportContent(true)
		cmds := []tea.Cmd{cmd}
		if n := a.dataModel.Buffer.Len(); n > 0 {
			last := a.dataModel.Buffer.Messages[n-1]
			if last.Role == "assistant" && last.Content != "" {
				cmds = append(cmds, a.renderMarkdownAsync(n-1, last.Content))
			}
		}
		return true, a, tea.Batch(cmds...)

	case appmodel.ConfigLoadedMsg:
		cmd := a.dataModel.ApplyConfigLoaded(msg)
		a.settings.BaseURL.SetValue(a.dataModel.LLM.DraftBaseURL)
		a.settings.APIKey.Reset()
		return true, a, cmd

	case appmodel.ModelsListMsg:
		if !a.dataModel.ApplyModelsList(msg) {
			return true, a, nil
		}
		if msg.Err != nil {
			a.showError("Fetch Models", msg.Err)
			return true, a, nil
		}
		a.settings.ClampModelIndex(a.dataModel)
		return true, a, nil

	case appmodel.ConfigSavedMsg:
		a.dataModel.ApplyConfigSaved(msg)
		if msg.Err != nil {
			a.showError("Save Configuration", msg.Err)
			return true, a, nil
		}
		a.settings.APIKey.Reset()
		a.showNotice("Configuration", "Configuration saved.")
		return true, a, nil

	case appmodel.SkillsListMsg:
		a.dataModel.ApplySkillsList(msg)
		return true, a, nil
	}

	return false, a, nil
}
