package client

// Identity is the authenticated account as reported by the service.
type Identity struct {
	Username string `json:"username"`
}

// SessionSummary describes one conversation session owned by the
// current identity. The session id is opaque and server-assigned.
type SessionSummary struct {
	SessionID    string `json:"session_id"`
	UserID       string `json:"user_id"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
	MessageCount int    `json:"message_count"`
}

// ToolCall is one tool invocation made by the agent while producing a
// reply. Output is opaque text; nil means the tool produced none.
type ToolCall struct {
	Tool   string         `json:"tool"`
	Input  map[string]any `json:"input,omitempty"`
	Output any            `json:"output,omitempty"`
}

// Message is a single history entry of a session.
type Message struct {
	Role      string     `json:"role"`
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// LlmConfig is the global model/provider configuration. The api key
// itself never appears in a response; ApiKeySet is derived server-side.
type LlmConfig struct {
	Model     string `json:"model"`
	BaseURL   string `json:"base_url"`
	ApiKeySet bool   `json:"api_key_set"`
}

// SkillSummary describes one skill available to the agent.
type SkillSummary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// ChatResponse is the reply to one chat turn. SessionID echoes an
// existing session or carries the id of a freshly created one.
type ChatResponse struct {
	SessionID string     `json:"session_id"`
	Reply     string     `json:"reply"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

type chatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}

type authRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ConfigUpdate is the save payload. APIKey is a pointer so that an
// empty draft omits the field entirely ("leave unchanged") instead of
// sending an explicit clear.
type ConfigUpdate struct {
	Model   string  `json:"model"`
	BaseURL string  `json:"base_url"`
	APIKey  *string `json:"api_key,omitempty"`
}

// ModelsOverride carries one-shot credentials for a model list fetch.
// It is never persisted server-side.
type ModelsOverride struct {
	BaseURL string `json:"base_url,omitempty"`
	APIKey  string `json:"api_key,omitempty"`
}
