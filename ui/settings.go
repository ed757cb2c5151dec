package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	appmodel "scantui/model"
)

// Settings form fields, in navigation order.
const (
	settingsFieldModel = iota
	settingsFieldBaseURL
	settingsFieldAPIKey
	settingsFieldFetch
	settingsFieldSave
	settingsFieldCount
)

// SettingsState is the presentation half of the configuration form. The
// authoritative draft lives in the data model; the text inputs here are
// synced into it on every keystroke.
type SettingsState struct {
	FocusIdx int
	ModelIdx int
	BaseURL  textinput.Model
	APIKey   textinput.Model
}

func NewSettingsState() SettingsState {
	baseURL := textinput.New()
	baseURL.Placeholder = "provider default"
	baseURL.CharLimit = 256

	apiKey := textinput.New()
	apiKey.Placeholder = "leave blank to keep current key"
	apiKey.CharLimit = 256
	apiKey.EchoMode = textinput.EchoPassword
	apiKey.EchoCharacter = '•'

	return SettingsState{
		BaseURL: baseURL,
		APIKey:  apiKey,
	}
}

// ClampModelIndex realigns the selector cursor with the draft model
// after the list has been replaced wholesale.
func (s *SettingsState) ClampModelIndex(dm *appmodel.Model) {
	s.ModelIdx = 0
	for i, id := range dm.LLM.Models {
		if id == dm.LLM.DraftModel {
			s.ModelIdx = i
			return
		}
	}
}

func (s *SettingsState) applyFocus() {
	if s.FocusIdx == settingsFieldBaseURL {
		s.BaseURL.Focus()
	} else {
		s.BaseURL.Blur()
	}
	if s.FocusIdx == settingsFieldAPIKey {
		s.APIKey.Focus()
	} else {
		s.APIKey.Blur()
	}
}

func (a AppView) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "shift+tab":
		a.settings.FocusIdx = (a.settings.FocusIdx + settingsFieldCount - 1) % settingsFieldCount
		a.settings.applyFocus()
		return a, nil

	case "down":
		a.settings.FocusIdx = (a.settings.FocusIdx + 1) % settingsFieldCount
		a.settings.applyFocus()
		return a, nil

	case "enter":
		switch a.settings.FocusIdx {
		case settingsFieldFetch:
			if a.dataModel.LLM.ModelsLoading {
				return a, nil
			}
			return a, a.dataModel.FetchModelsCmd(true, "")
		case settingsFieldSave:
			return a, a.dataModel.SaveConfigCmd()
		default:
			a.settings.FocusIdx = (a.settings.FocusIdx + 1) % settingsFieldCount
			a.settings.applyFocus()
			return a, nil
		}

	case "left", "right":
		if a.settings.FocusIdx == settingsFieldModel && len(a.dataModel.LLM.Models) > 0 {
			n := len(a.dataModel.LLM.Models)
			if msg.String() == "left" {
				a.settings.ModelIdx = (a.settings.ModelIdx + n - 1) % n
			} else {
				a.settings.ModelIdx = (a.settings.ModelIdx + 1) % n
			}
			a.dataModel.LLM.DraftModel = a.dataModel.LLM.Models[a.settings.ModelIdx]
			return a, nil
		}
	}

	var cmd tea.Cmd
	switch a.settings.FocusIdx {
	case settingsFieldBaseURL:
		a.settings.BaseURL, cmd = a.settings.BaseURL.Update(msg)
		a.dataModel.LLM.DraftBaseURL = a.settings.BaseURL.Value()
	case settingsFieldAPIKey:
		a.settings.APIKey, cmd = a.settings.APIKey.Update(msg)
		a.dataModel.LLM.DraftAPIKey = a.settings.APIKey.Value()
	}
	return a, cmd
}

func (a AppView) renderSettings() string {
	contentWidth := a.width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}

	labelFor := func(field int, label string) string {
		if a.settings.FocusIdx == field {
			return SelectedStyle.Render("> " + label)
		}
		return DimStyle.Render("  " + label)
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("LLM Configuration"))
	b.WriteString("\n\n")

	if a.dataModel.LLM.Loading {
		b.WriteString("  " + a.loadingSpinner.View() + " Loading configuration...\n")
		return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
	}

	// Model selector
	b.WriteString(labelFor(settingsFieldModel, "Model"))
	b.WriteString("  ")
	switch {
	case a.dataModel.LLM.ModelsLoading:
		b.WriteString(a.loadingSpinner.View() + " fetching models...")
	case len(a.dataModel.LLM.Models) == 0:
		b.WriteString(DimStyle.Render("no models; set credentials and fetch"))
	default:
		b.WriteString(fmt.Sprintf("◀ %s ▶  %s",
			a.dataModel.LLM.DraftModel,
			DimStyle.Render(fmt.Sprintf("(%d/%d)", a.settings.ModelIdx+1, len(a.dataModel.LLM.Models)))))
	}
	b.WriteString("\n\n")

	b.WriteString(labelFor(settingsFieldBaseURL, "Base URL"))
	b.WriteString("  " + a.settings.BaseURL.View())
	b.WriteString("\n\n")

	keyStatus := DimStyle.Render("(no key stored)")
	if a.dataModel.LLM.Confirmed != nil && a.dataModel.LLM.Confirmed.ApiKeySet {
		keyStatus = StatusStyle.Render("(key stored)")
	}
	b.WriteString(labelFor(settingsFieldAPIKey, "API Key"))
	b.WriteString("  " + a.settings.APIKey.View() + "  " + keyStatus)
	b.WriteString("\n\n")

	b.WriteString(labelFor(settingsFieldFetch, "[ Fetch models with these credentials ]"))
	b.WriteString("\n\n")
	b.WriteString(labelFor(settingsFieldSave, "[ Save configuration ]"))
	b.WriteString("\n\n")

	if a.dataModel.LLM.Confirmed != nil {
		b.WriteString(DimStyle.Render(fmt.Sprintf("  Saved: model=%s base_url=%s",
			valueOrDash(a.dataModel.LLM.Confirmed.Model),
			valueOrDash(a.dataModel.LLM.Confirmed.BaseURL))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("  up/down navigate · left/right choose model · enter activate"))

	bodyHeight := a.height - headerHeight - statusBarHeight
	return lipgloss.NewStyle().
		Padding(1, 2).
		Width(a.width).
		Height(bodyHeight).
		Render(b.String())
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
