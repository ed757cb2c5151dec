package model

import (
	tea "github.com/charmbracelet/bubbletea"

	"scantui/config"
)

// ResolveIdentityCmd queries who-am-i at startup. The answer always
// arrives as an IdentityResolvedMsg, success or not, so the UI can gate
// its first render on Auth.Checked rather than on identity presence.
func (m *Model) ResolveIdentityCmd() tea.Cmd {
	c := m.Client
	return func() tea.Msg {
		user, err := c.Me()
		return IdentityResolvedMsg{User: user, Err: err}
	}
}

// ApplyIdentityResolved records the startup resolution. A failure here
// is the expected "not authenticated" answer and is swallowed into an
// absent identity, never surfaced. Success cascades into the session
// directory and skill catalog loads.
func (m *Model) ApplyIdentityResolved(msg IdentityResolvedMsg) tea.Cmd {
	m.Auth.Checked = true
	if msg.Err != nil || msg.User == nil {
		m.Auth.Clear()
		if config.DebugLog != nil {
			config.DebugLog.Printf("Identity resolution: not authenticated (%v)", msg.Err)
		}
		return nil
	}
	m.Auth.Set(msg.User)
	if config.DebugLog != nil {
		config.DebugLog.Printf("Identity resolved: %s", msg.User.Username)
	}
	return tea.Batch(m.FetchSessionListCmd(), m.FetchSkillsCmd())
}

// LoginCmd authenticates with the service. Bad credentials come back as
// a LoginResultMsg with Err set; the UI surfaces it, never swallows it.
func (m *Model) LoginCmd(username, password string) tea.Cmd {
	c := m.Client
	return func() tea.Msg {
		user, err := c.Login(username, password)
		return LoginResultMsg{User: user, Err: err}
	}
}

// ApplyLoginResult installs the identity on success, reloads the
// session directory and skill catalog, and switches to the
// conversation view. On failure nothing changes; the caller displays
// the error.
func (m *Model) ApplyLoginResult(msg LoginResultMsg) tea.Cmd {
	if msg.Err != nil {
		return nil
	}
	m.Auth.Set(msg.User)
	m.ActiveView = ViewConversation
	return tea.Batch(m.FetchSessionListCmd(), m.FetchSkillsCmd())
}

// RegisterCmd creates an account. Registration does not authenticate;
// a session requires a follow-up login with the same credentials.
func (m *Model) RegisterCmd(username, password string) tea.Cmd {
	c := m.Client
	return func() tea.Msg {
		user, err := c.Register(username, password)
		if err != nil {
			return RegisterResultMsg{Err: err}
		}
		return RegisterResultMsg{Username: user.Username}
	}
}

// LogoutCmd invalidates the credential server-side.
func (m *Model) LogoutCmd() tea.Cmd {
	c := m.Client
	return func() tea.Msg {
		return LogoutResultMsg{Err: c.Logout()}
	}
}

// ApplyLogoutResult clears the identity, the session directory, and the
// conversation buffer unconditionally. A failed network call does not
// keep a stale identity's session list on screen.
func (m *Model) ApplyLogoutResult(msg LogoutResultMsg) {
	if msg.Err != nil && config.DebugLog != nil {
		config.DebugLog.Printf("Logout call failed, clearing local state anyway: %v", msg.Err)
	}
	m.Auth.Clear()
	m.Directory.Reset()
	m.Buffer.Clear()
}
