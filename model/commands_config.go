package model

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"scantui/client"
	"scantui/config"
)

// LoadConfigCmd fetches the confirmed configuration.
func (m *Model) LoadConfigCmd() tea.Cmd {
	m.LLM.Loading = true
	c := m.Client
	return func() tea.Msg {
		cfg, err := c.GetConfig()
		return ConfigLoadedMsg{Config: cfg, Err: err}
	}
}

// ApplyConfigLoaded installs a loaded configuration: the draft base-url
// is seeded from it and the draft api-key is always blanked, since the
// secret never round-trips and an empty draft means "unchanged" on
// save. When a key is already set or a base-url exists, a model fetch
// with the stored credentials follows immediately, preferring the
// confirmed model id, so the selector has content without the user
// re-entering anything.
func (m *Model) ApplyConfigLoaded(msg ConfigLoadedMsg) tea.Cmd {
	m.LLM.Loading = false
	if msg.Err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("Error loading configuration: %v", msg.Err)
		}
		return nil
	}
	m.LLM.Confirmed = msg.Config
	m.LLM.DraftBaseURL = msg.Config.BaseURL
	m.LLM.DraftAPIKey = ""
	if msg.Config.ApiKeySet || msg.Config.BaseURL != "" {
		return m.FetchModelsCmd(false, msg.Config.Model)
	}
	return nil
}

// FetchModelsCmd requests the model list. With useDraftCredentials the
// draft base-url/api-key override the stored ones for this call only;
// they are not persisted. Each fetch carries a token; only the newest
// fetch's completion is applied.
func (m *Model) FetchModelsCmd(useDraftCredentials bool, requested string) tea.Cmd {
	token := m.LLM.BeginModelFetch()

	var override *client.ModelsOverride
	if useDraftCredentials {
		baseURL := strings.TrimSpace(m.LLM.DraftBaseURL)
		if baseURL != "" || m.LLM.DraftAPIKey != "" {
			override = &client.ModelsOverride{BaseURL: baseURL, APIKey: m.LLM.DraftAPIKey}
		}
	}

	c := m.Client
	return func() tea.Msg {
		models, err := c.ListModels(override)
		return ModelsListMsg{Token: token, Requested: requested, Models: models, Err: err}
	}
}

// ApplyModelsList installs a completed fetch. Returns false when the
// result answers a superseded fetch and was discarded. On success the
// list is replaced wholesale and the selection rule picks the draft
// model deterministically; a stale or now-invalid id is never kept
// silently.
func (m *Model) ApplyModelsList(msg ModelsListMsg) bool {
	if !m.LLM.AcceptModelFetch(msg.Token) {
		if config.DebugLog != nil {
			config.DebugLog.Printf("Discarding superseded model list (token %s)", msg.Token)
		}
		return false
	}
	if msg.Err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("Error fetching models: %v", msg.Err)
		}
		return true
	}
	m.LLM.ReplaceModels(msg.Models, msg.Requested)
	return true
}

// SaveConfigCmd sends the draft. Model and base-url always go; the
// api-key goes only when the draft is non-empty, so an untouched field
// never clears the stored secret.
func (m *Model) SaveConfigCmd() tea.Cmd {
	update := client.ConfigUpdate{
		Model:   m.LLM.DraftModel,
		BaseURL: strings.TrimSpace(m.LLM.DraftBaseURL),
	}
	if m.LLM.DraftAPIKey != "" {
		key := m.LLM.DraftAPIKey
		update.APIKey = &key
	}

	c := m.Client
	return func() tea.Msg {
		cfg, err := c.UpdateConfig(update)
		return ConfigSavedMsg{Config: cfg, Err: err}
	}
}

// ApplyConfigSaved replaces the confirmed configuration from the save
// response and blanks the draft api-key again. A failure changes
// nothing; the caller displays the error.
func (m *Model) ApplyConfigSaved(msg ConfigSavedMsg) {
	if msg.Err != nil {
		return
	}
	m.LLM.Confirmed = msg.Config
	m.LLM.DraftAPIKey = ""
}

// FetchSkillsCmd retrieves the read-only skill catalog.
func (m *Model) FetchSkillsCmd() tea.Cmd {
	c := m.Client
	return func() tea.Msg {
		skills, err := c.ListSkills()
		return SkillsListMsg{Skills: skills, Err: err}
	}
}

// ApplySkillsList replaces the catalog on success.
func (m *Model) ApplySkillsList(msg SkillsListMsg) {
	if msg.Err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("Error listing skills: %v", msg.Err)
		}
		return
	}
	m.Skills = msg.Skills
}
