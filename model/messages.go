package model

import "scantui/client"

type IdentityResolvedMsg struct {
	User *client.Identity
	Err  error
}

type LoginResultMsg struct {
	User *client.Identity
	Err  error
}

type RegisterResultMsg struct {
	Username string
	Err      error
}

type LogoutResultMsg struct {
	Err error
}

type SessionsListMsg struct {
	Sessions []client.SessionSummary
	Err      error
}

// SessionSelectedMsg carries the outcome of one select gesture. The
// SessionID is captured at dispatch time so a superseded selection can
// be detected and discarded when it resolves.
type SessionSelectedMsg struct {
	SessionID string
	Messages  []client.Message
	Sessions  []client.SessionSummary
	Err       error
}

// SessionDeletedMsg carries the outcome of a deletion. Deleted reports
// whether the service accepted the delete; the refresh that follows can
// fail independently.
type SessionDeletedMsg struct {
	SessionID string
	Deleted   bool
	Sessions  []client.SessionSummary
	Err       error
}

type ChatResultMsg struct {
	Resp *client.ChatResponse
	Err  error
}

type ConfigLoadedMsg struct {
	Config *client.LlmConfig
	Err    error
}

// ModelsListMsg carries a completed model-list fetch. Token identifies
// the fetch it answers; Requested is the model id the caller asked to
// prefer after replacement.
type ModelsListMsg struct {
	Token     string
	Requested string
	Models    []string
	Err       error
}

type ConfigSavedMsg struct {
	Config *client.LlmConfig
	Err    error
}

type SkillsListMsg struct {
	Skills []client.SkillSummary
	Err    error
}
