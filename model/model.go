package model

import (
	"scantui/client"
	"scantui/config"
)

// View selects which of the three main screens is visible.
type View int

const (
	ViewConversation View = iota
	ViewSkills
	ViewSettings
)

// Model holds the core application data and business logic state.
// Each store exclusively owns its entity: no operation writes another
// store's fields directly; cross-store effects happen only through the
// Apply transitions in this package.
type Model struct {
	// Core dependencies
	Config *config.Config
	Client *client.Client

	// Stores
	Auth      AuthState
	Directory SessionDirectory
	Buffer    ConversationBuffer
	LLM       ConfigStore

	// Skill catalog (read-only display list, fetched after auth)
	Skills []client.SkillSummary

	// Active screen
	ActiveView View

	// Application metadata
	Version string
}

// NewModel creates a new Model with the given configuration and client.
func NewModel(cfg *config.Config, c *client.Client, version string) *Model {
	return &Model{
		Config:  cfg,
		Client:  c,
		Version: version,
	}
}
