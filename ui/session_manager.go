package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"scantui/client"
)

func (a *AppView) openSessionManager() {
	a.showSessionManager = true
	a.selectedSessionIdx = 0
	a.sessionFilterMode = false
	a.sessionFilterInput.Reset()
	a.refreshSessionFilter()
}

// refreshSessionFilter recomputes the visible list from the directory
// and the current filter text.
func (a *AppView) refreshSessionFilter() {
	sessions := a.dataModel.Directory.Sessions
	filterValue := a.sessionFilterInput.Value()
	if filterValue == "" {
		a.filteredSessionList = sessions
		return
	}

	targets := make([]string, len(sessions))
	for i, s := range sessions {
		targets[i] = s.SessionID + " " + s.UpdatedAt
	}

	matches := fuzzy.Find(filterValue, targets)
	filtered := make([]client.SessionSummary, 0, len(matches))
	for _, match := range matches {
		filtered = append(filtered, sessions[match.Index])
	}
	a.filteredSessionList = filtered

	if a.selectedSessionIdx >= len(a.filteredSessionList) {
		a.selectedSessionIdx = 0
	}
}

func (a AppView) handleSessionManagerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.sessionFilterMode {
		switch msg.String() {
		case "enter", "esc":
			a.sessionFilterMode = false
			a.sessionFilterInput.Blur()
		default:
			var cmd tea.Cmd
			a.sessionFilterInput, cmd = a.sessionFilterInput.Update(msg)
			a.refreshSessionFilter()
			return a, cmd
		}
		return a, nil
	}

	switch msg.String() {
	case "esc", "q", "ctrl+s":
		a.showSessionManager = false
		return a, nil

	case "up", "k":
		if a.selectedSessionIdx > 0 {
			a.selectedSessionIdx--
		}
		return a, nil

	case "down", "j":
		if a.selectedSessionIdx < len(a.filteredSessionList)-1 {
			a.selectedSessionIdx++
		}
		return a, nil

	case "/":
		a.sessionFilterMode = true
		a.sessionFilterInput.Focus()
		return a, nil

	case "n":
		a.showSessionManager = false
		cmd := a.dataModel.StartNewSession()
		a.updateViewportContent(true)
		return a, cmd

	case "r":
		return a, a.dataModel.FetchSessionListCmd()

	case "d":
		if a.selectedSessionIdx < len(a.filteredSessionList) {
			session := a.filteredSessionList[a.selectedSessionIdx]
			a.confirmDeleteSession = &session
		}
		return a, nil

	case "enter":
		if a.selectedSessionIdx < len(a.filteredSessionList) {
			session := a.filteredSessionList[a.selectedSessionIdx]
			return a, a.dataModel.SelectSessionCmd(session.SessionID)
		}
		return a, nil
	}

	return a, nil
}

func (a AppView) renderSessionManager() string {
	listWidth := 70
	if a.width < listWidth+10 {
		listWidth = a.width - 10
	}

	var lines []string
	if a.sessionFilterMode || a.sessionFilterInput.Value() != "" {
		lines = append(lines, "  "+a.sessionFilterInput.View())
		lines = append(lines, "")
	}

	if len(a.filteredSessionList) == 0 {
		empty := "No sessions yet. Send a message to start one."
		if a.sessionFilterInput.Value() != "" {
			empty = "No sessions match the filter."
		}
		lines = append(lines, "  "+DimStyle.Render(empty))
	}

	for i, session := range a.filteredSessionList {
		marker := "  "
		line := fmt.Sprintf("%s  %3d msgs  %s",
			truncateID(session.SessionID), session.MessageCount, formatSessionTime(session.UpdatedAt))
		if session.SessionID == a.dataModel.Directory.CurrentID {
			line += "  " + DimStyle.Render("(current)")
		}
		if i == a.selectedSessionIdx {
			marker = SelectedStyle.Render("> ")
			line = SelectedStyle.Render(line)
		}
		lines = append(lines, "  "+marker+line)
	}

	footer := FormatFooter(
		"j/k", "Navigate", "Enter", "Select", "d", "Delete",
		"n", "New", "/", "Filter", "r", "Refresh", "Esc", "Close")

	title := fmt.Sprintf("Sessions (%d)", len(a.dataModel.Directory.Sessions))
	padded := make([]string, len(lines))
	for i, line := range lines {
		padded[i] = lipgloss.NewStyle().Width(listWidth).Render(line)
	}
	return RenderModal(title, padded, footer, ModalTypeInfo, listWidth, a.width, a.height)
}

// formatSessionTime trims a server timestamp down to something short
// enough for the list row.
func formatSessionTime(ts string) string {
	if idx := strings.IndexAny(ts, "T "); idx > 0 && len(ts) >= idx+6 {
		return ts[:idx] + " " + ts[idx+1:idx+6]
	}
	return ts
}
