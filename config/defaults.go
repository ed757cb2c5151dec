package config

import "time"

// DefaultRequestTimeout bounds a single round trip to the agent service.
// Chat turns can run tools server-side, so this is generous.
const DefaultRequestTimeout = 120 * time.Second

func DefaultSettings() *Settings {
	return &Settings{
		ServerURL:          "http://127.0.0.1:8000",
		RequestTimeoutSecs: int(DefaultRequestTimeout / time.Second),
	}
}

func GenerateSettingsTemplate() string {
	return `# scantui Settings
# Location: ~/.config/scantui/settings.toml
# This file uses TOML format: https://toml.io

# Base URL of the scan-agent service
server_url = "http://127.0.0.1:8000"

# Timeout in seconds for a single request to the service
request_timeout_secs = 120

# Directory for the debug log (conversation data stays on the server)
# state_directory = "~/.local/state/scantui"
`
}
