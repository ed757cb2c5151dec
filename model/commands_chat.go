package model

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"scantui/config"
)

const authRequiredNotice = "Please log in before sending messages."

// StartSend runs the send protocol up to the network call. The
// preconditions are synchronous: an empty input or an already in-flight
// send is dropped (not queued), and without an identity no request is
// issued at all; a local assistant notice explains the rejection
// instead. Otherwise the user message is appended optimistically, the
// single-flight flag is set, and the round trip is dispatched carrying
// the viewed session id (empty asks the service for a new session).
//
// A nil return means no send was started.
func (m *Model) StartSend(text string) tea.Cmd {
	text = strings.TrimSpace(text)
	if text == "" || m.Buffer.Sending {
		return nil
	}
	if !m.Auth.Authenticated() {
		m.Buffer.AppendLocalNotice(authRequiredNotice)
		return nil
	}

	m.Buffer.Sending = true
	m.Buffer.AppendUser(text)

	sessionID := m.Directory.CurrentID
	c := m.Client
	return func() tea.Msg {
		resp, err := c.SendChat(sessionID, text)
		return ChatResultMsg{Resp: resp, Err: err}
	}
}

// ApplyChatResult completes the send protocol. The single-flight flag
// is cleared first, unconditionally. A failure keeps the optimistic
// user message and appends one visible assistant message embedding the
// error text. On success the response's session id is adopted when the
// client had none (or the service assigned a different one) and the
// directory is refreshed so the new message count appears; the reply is
// appended after the user message that provoked it.
func (m *Model) ApplyChatResult(msg ChatResultMsg) tea.Cmd {
	m.Buffer.Sending = false

	if msg.Err != nil {
		m.Buffer.AppendLocalNotice(fmt.Sprintf("Request failed: %v", msg.Err))
		return nil
	}

	m.Buffer.ConfirmPending()

	var cmd tea.Cmd
	if msg.Resp.SessionID != "" {
		if msg.Resp.SessionID != m.Directory.CurrentID {
			if config.DebugLog != nil {
				config.DebugLog.Printf("Adopting session %s assigned by the service", msg.Resp.SessionID)
			}
			m.Directory.CurrentID = msg.Resp.SessionID
		}
		cmd = m.FetchSessionListCmd()
	}

	m.Buffer.AppendAssistant(msg.Resp.Reply, msg.Resp.ToolCalls)
	return cmd
}
