package model

import (
	"github.com/google/uuid"

	"scantui/client"
)

// ConfigStore holds the confirmed model/provider configuration, the
// last-fetched model list, and the local draft edited in the settings
// view. The draft api-key is never seeded from the service: an empty
// draft means "leave unchanged" on save, not "clear the secret".
type ConfigStore struct {
	Confirmed *client.LlmConfig
	Models    []string

	DraftModel   string
	DraftBaseURL string
	DraftAPIKey  string

	Loading       bool
	ModelsLoading bool

	// fetchToken identifies the newest model-list fetch; a completion
	// carrying any other token has been superseded and is discarded.
	fetchToken string
}

// BeginModelFetch marks a new fetch as the current one and returns its
// token for the completion message to carry.
func (s *ConfigStore) BeginModelFetch() string {
	s.ModelsLoading = true
	s.fetchToken = uuid.New().String()
	return s.fetchToken
}

// AcceptModelFetch reports whether a completed fetch is still current.
// A stale completion leaves the store untouched, including the loading
// flag, which belongs to the fetch that superseded it.
func (s *ConfigStore) AcceptModelFetch(token string) bool {
	if token != s.fetchToken {
		return false
	}
	s.ModelsLoading = false
	return true
}

// ReplaceModels swaps in a freshly fetched model list wholesale and
// applies the selection rule: prefer the explicitly requested id if the
// new list contains it, else the previous selection if still present,
// else the first entry, else empty.
func (s *ConfigStore) ReplaceModels(models []string, requested string) {
	s.Models = models
	s.DraftModel = SelectModel(requested, s.DraftModel, models)
}

// SelectModel resolves which model id ends up selected after a list
// replacement. Deterministic: requested > previous > first > empty.
func SelectModel(requested, previous string, models []string) string {
	if requested != "" && containsModel(models, requested) {
		return requested
	}
	if previous != "" && containsModel(models, previous) {
		return previous
	}
	if len(models) > 0 {
		return models[0]
	}
	return ""
}

func containsModel(models []string, id string) bool {
	for _, m := range models {
		if m == id {
			return true
		}
	}
	return false
}
