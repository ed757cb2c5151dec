package model

import (
	tea "github.com/charmbracelet/bubbletea"

	"scantui/config"
)

// FetchSessionListCmd retrieves the session summaries for the current
// identity. Safe to run concurrently with anything else: its only
// effect is the wholesale list replacement in ApplySessionsList.
func (m *Model) FetchSessionListCmd() tea.Cmd {
	c := m.Client
	return func() tea.Msg {
		sessions, err := c.ListSessions()
		return SessionsListMsg{Sessions: sessions, Err: err}
	}
}

// ApplySessionsList replaces the directory list on success.
func (m *Model) ApplySessionsList(msg SessionsListMsg) {
	if msg.Err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("Error listing sessions: %v", msg.Err)
		}
		return
	}
	m.Directory.Replace(msg.Sessions)
}

// SelectSessionCmd makes sessionID the viewed session, then loads its
// history and refreshes the directory. The two round trips run
// sequentially inside one command; the viewed id is captured now so the
// result can be discarded if the selection changes before it resolves.
func (m *Model) SelectSessionCmd(sessionID string) tea.Cmd {
	m.Directory.CurrentID = sessionID
	c := m.Client
	return func() tea.Msg {
		history, err := c.GetHistory(sessionID)
		if err != nil {
			return SessionSelectedMsg{SessionID: sessionID, Err: err}
		}
		sessions, err := c.ListSessions()
		if err != nil {
			// History loaded fine; the refresh failure only means the
			// directory keeps its previous list.
			return SessionSelectedMsg{SessionID: sessionID, Messages: history, Err: err}
		}
		return SessionSelectedMsg{SessionID: sessionID, Messages: history, Sessions: sessions}
	}
}

// ApplySessionSelected installs a selection result. Returns false when
// the result is stale: the viewed session changed while the round trips
// were in flight, and Session A's history must never show under
// Session B's id.
func (m *Model) ApplySessionSelected(msg SessionSelectedMsg) bool {
	if msg.SessionID != m.Directory.CurrentID {
		if config.DebugLog != nil {
			config.DebugLog.Printf("Discarding stale history for session %s (now viewing %s)",
				msg.SessionID, m.Directory.CurrentID)
		}
		return false
	}
	if msg.Messages != nil {
		m.Buffer.ReplaceHistory(msg.Messages)
	}
	if msg.Sessions != nil {
		m.Directory.Replace(msg.Sessions)
	}
	return true
}

// DeleteSessionCmd deletes a session and then refreshes the directory.
// Confirmation is the caller's responsibility; by the time this runs
// the user has already said yes.
func (m *Model) DeleteSessionCmd(sessionID string) tea.Cmd {
	c := m.Client
	return func() tea.Msg {
		if err := c.DeleteSession(sessionID); err != nil {
			return SessionDeletedMsg{SessionID: sessionID, Err: err}
		}
		sessions, err := c.ListSessions()
		return SessionDeletedMsg{SessionID: sessionID, Deleted: true, Sessions: sessions, Err: err}
	}
}

// ApplySessionDeleted reacts to a deletion. When the delete itself
// failed nothing is touched. When it succeeded and the deleted session
// was the one being viewed, the selection and the buffer are cleared;
// deleting any other session leaves both alone.
func (m *Model) ApplySessionDeleted(msg SessionDeletedMsg) {
	if !msg.Deleted {
		return
	}
	if msg.SessionID == m.Directory.CurrentID {
		m.Directory.ClearSelection()
		m.Buffer.Clear()
	}
	if msg.Sessions != nil {
		m.Directory.Replace(msg.Sessions)
	}
}

// StartNewSession clears the viewed session and the buffer locally. No
// backend call: the next successful send makes the service mint a fresh
// session id, which the send protocol then adopts. The returned command
// only refreshes the directory listing.
func (m *Model) StartNewSession() tea.Cmd {
	m.Directory.ClearSelection()
	m.Buffer.Clear()
	return m.FetchSessionListCmd()
}
