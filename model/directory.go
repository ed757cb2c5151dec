package model

import "scantui/client"

// SessionDirectory holds the session summaries for the current identity
// and the id of the session being viewed. The list order reflects the
// last fetch; identity is always the session id, never array position.
type SessionDirectory struct {
	Sessions  []client.SessionSummary
	CurrentID string
}

// Replace swaps in a freshly fetched summary list wholesale.
func (d *SessionDirectory) Replace(sessions []client.SessionSummary) {
	d.Sessions = sessions
}

// Find returns the summary for the given session id, or nil.
func (d *SessionDirectory) Find(sessionID string) *client.SessionSummary {
	for i := range d.Sessions {
		if d.Sessions[i].SessionID == sessionID {
			return &d.Sessions[i]
		}
	}
	return nil
}

// ClearSelection drops the viewed-session id without touching the list.
func (d *SessionDirectory) ClearSelection() {
	d.CurrentID = ""
}

// Reset drops both the list and the selection (logout).
func (d *SessionDirectory) Reset() {
	d.Sessions = nil
	d.CurrentID = ""
}
