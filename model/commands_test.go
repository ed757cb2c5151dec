package model_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"scantui/client"
	"scantui/config"
	"scantui/model"
)

func newTestModel(t *testing.T, handler http.Handler) *model.Model {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := client.New(srv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("client.New() error = %v", err)
	}
	return model.NewModel(&config.Config{ServerURL: srv.URL}, c, "test")
}

func authenticate(m *model.Model, username string) {
	m.Auth.Set(&client.Identity{Username: username})
	m.Auth.Checked = true
}

func TestStartSendRequiresAuthentication(t *testing.T) {
	requests := 0
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	cmd := m.StartSend("hello")

	if cmd != nil {
		t.Error("StartSend() without identity returned a command, want nil")
	}
	if requests != 0 {
		t.Errorf("requests = %d, want 0 (no network call when unauthenticated)", requests)
	}
	if m.Buffer.Len() != 1 {
		t.Fatalf("Buffer.Len() = %d, want exactly one local notice", m.Buffer.Len())
	}
	notice := m.Buffer.Messages[0]
	if notice.Role != "assistant" || !notice.Local {
		t.Errorf("notice Role=%q Local=%v, want local assistant message", notice.Role, notice.Local)
	}
	if m.Buffer.Sending {
		t.Error("Sending = true after rejected send")
	}
}

func TestStartSendDropsEmptyAndInFlight(t *testing.T) {
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected network call")
	}))
	authenticate(m, "mara")

	if cmd := m.StartSend("   \n  "); cmd != nil {
		t.Error("StartSend(whitespace) returned a command, want nil")
	}
	if m.Buffer.Len() != 0 {
		t.Errorf("Buffer.Len() = %d after whitespace send, want 0", m.Buffer.Len())
	}

	m.Buffer.Sending = true
	if cmd := m.StartSend("queued?"); cmd != nil {
		t.Error("StartSend() during in-flight send returned a command, want drop")
	}
	if m.Buffer.Len() != 0 {
		t.Error("dropped send still appended a message")
	}
}

func TestSendProtocolAdoptsAssignedSession(t *testing.T) {
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/chat":
			var req map[string]string
			json.NewDecoder(r.Body).Decode(&req)
			if req["session_id"] != "" {
				t.Errorf("session_id in request = %q, want omitted/empty for a fresh session", req["session_id"])
			}
			json.NewEncoder(w).Encode(client.ChatResponse{
				SessionID: "s-new",
				Reply:     "scan started",
			})
		case "/api/sessions":
			json.NewEncoder(w).Encode(map[string][]client.SessionSummary{
				"sessions": {{SessionID: "s-new", MessageCount: 2}},
			})
		}
	}))
	authenticate(m, "mara")

	cmd := m.StartSend("scan the subnet")
	if cmd == nil {
		t.Fatal("StartSend() = nil, want a dispatch command")
	}
	if !m.Buffer.Sending {
		t.Error("Sending = false while a send is in flight")
	}
	if m.Buffer.Len() != 1 || !m.Buffer.Messages[0].Pending {
		t.Fatal("optimistic user message not appended as pending")
	}

	msg, ok := cmd().(model.ChatResultMsg)
	if !ok {
		t.Fatal("command did not produce a ChatResultMsg")
	}
	refresh := m.ApplyChatResult(msg)

	if m.Buffer.Sending {
		t.Error("Sending = true after completion")
	}
	if m.Directory.CurrentID != "s-new" {
		t.Errorf("CurrentID = %q, want adopted id %q", m.Directory.CurrentID, "s-new")
	}
	if refresh == nil {
		t.Fatal("ApplyChatResult() returned no directory refresh after adoption")
	}
	m.ApplySessionsList(refresh().(model.SessionsListMsg))
	if m.Directory.Find("s-new") == nil {
		t.Error("directory has no summary for the adopted session id")
	}
	if m.Buffer.Len() != 2 {
		t.Fatalf("Buffer.Len() = %d, want user + assistant", m.Buffer.Len())
	}
	if m.Buffer.Messages[0].Pending {
		t.Error("user message still pending after confirmed turn")
	}
	if m.Buffer.Messages[1].Role != "assistant" || m.Buffer.Messages[1].Content != "scan started" {
		t.Errorf("reply = %+v", m.Buffer.Messages[1])
	}
}

func TestSendFailureKeepsOptimisticMessage(t *testing.T) {
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"detail": "provider unreachable"})
	}))
	authenticate(m, "mara")
	m.Directory.CurrentID = "s-1"

	cmd := m.StartSend("hello")
	msg := cmd().(model.ChatResultMsg)
	m.ApplyChatResult(msg)

	if m.Buffer.Sending {
		t.Error("Sending = true after failed send")
	}
	if m.Buffer.Len() != 2 {
		t.Fatalf("Buffer.Len() = %d, want optimistic user + error notice", m.Buffer.Len())
	}
	if m.Buffer.Messages[0].Role != "user" {
		t.Error("optimistic user message was removed on failure")
	}
	notice := m.Buffer.Messages[1]
	if !notice.Local || notice.Role != "assistant" {
		t.Errorf("error surfaced as Role=%q Local=%v, want local assistant notice", notice.Role, notice.Local)
	}
	if m.Directory.CurrentID != "s-1" {
		t.Errorf("CurrentID = %q changed by a failed send", m.Directory.CurrentID)
	}
}

func TestStaleSelectionIsDiscarded(t *testing.T) {
	histories := map[string][]client.Message{
		"s-a": {{Role: "user", Content: "about A"}},
		"s-b": {{Role: "user", Content: "about B"}},
	}
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/history":
			json.NewEncoder(w).Encode(map[string][]client.Message{
				"messages": histories[r.URL.Query().Get("session_id")],
			})
		case "/api/sessions":
			json.NewEncoder(w).Encode(map[string][]client.SessionSummary{
				"sessions": {{SessionID: "s-a"}, {SessionID: "s-b"}},
			})
		}
	}))
	authenticate(m, "mara")

	cmdA := m.SelectSessionCmd("s-a")
	msgA := cmdA().(model.SessionSelectedMsg)

	// The user clicks B before A's history arrives.
	cmdB := m.SelectSessionCmd("s-b")
	msgB := cmdB().(model.SessionSelectedMsg)

	if m.ApplySessionSelected(msgA) {
		t.Error("ApplySessionSelected(stale A) = true, want discard")
	}
	if m.Buffer.Len() != 0 {
		t.Error("stale history reached the buffer")
	}

	if !m.ApplySessionSelected(msgB) {
		t.Error("ApplySessionSelected(current B) = false, want applied")
	}
	if m.Buffer.Len() != 1 || m.Buffer.Messages[0].Content != "about B" {
		t.Errorf("Buffer = %+v, want Session B's history", m.Buffer.Messages)
	}
	if len(m.Directory.Sessions) != 2 {
		t.Errorf("directory not refreshed alongside selection: %d sessions", len(m.Directory.Sessions))
	}
}

func TestSelectionHistoryFailureLeavesBuffer(t *testing.T) {
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Session not found"})
	}))
	authenticate(m, "mara")
	m.Buffer.ReplaceHistory([]client.Message{{Role: "user", Content: "still here"}})

	cmd := m.SelectSessionCmd("s-missing")
	msg := cmd().(model.SessionSelectedMsg)

	if !m.ApplySessionSelected(msg) {
		t.Fatal("selection result for the viewed session reported stale")
	}
	if msg.Err == nil {
		t.Fatal("SessionSelectedMsg.Err = nil, want history failure")
	}
	if m.Buffer.Len() != 1 || m.Buffer.Messages[0].Content != "still here" {
		t.Error("failed history load mutated the buffer")
	}
}

func TestDeleteViewedSessionClearsSelection(t *testing.T) {
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			json.NewEncoder(w).Encode(map[string][]client.SessionSummary{
				"sessions": {{SessionID: "s-other"}},
			})
		}
	}))
	authenticate(m, "mara")
	m.Directory.CurrentID = "s-viewed"
	m.Buffer.AppendUser("doomed")
	m.Buffer.ConfirmPending()

	msg := m.DeleteSessionCmd("s-viewed")().(model.SessionDeletedMsg)
	m.ApplySessionDeleted(msg)

	if m.Directory.CurrentID != "" {
		t.Errorf("CurrentID = %q after deleting the viewed session, want cleared", m.Directory.CurrentID)
	}
	if m.Buffer.Len() != 0 {
		t.Error("buffer still holds messages of the deleted session")
	}
	if len(m.Directory.Sessions) != 1 {
		t.Error("directory not refreshed after deletion")
	}
}

func TestDeleteOtherSessionLeavesViewAlone(t *testing.T) {
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			json.NewEncoder(w).Encode(map[string][]client.SessionSummary{
				"sessions": {{SessionID: "s-viewed"}},
			})
		}
	}))
	authenticate(m, "mara")
	m.Directory.CurrentID = "s-viewed"
	m.Buffer.AppendUser("unrelated")
	m.Buffer.ConfirmPending()

	msg := m.DeleteSessionCmd("s-other")().(model.SessionDeletedMsg)
	m.ApplySessionDeleted(msg)

	if m.Directory.CurrentID != "s-viewed" {
		t.Errorf("CurrentID = %q, want untouched", m.Directory.CurrentID)
	}
	if m.Buffer.Len() != 1 {
		t.Error("deleting an unviewed session cleared the buffer")
	}
}

func TestDeleteFailureChangesNothing(t *testing.T) {
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Not your session"})
	}))
	authenticate(m, "mara")
	m.Directory.CurrentID = "s-viewed"
	m.Directory.Replace([]client.SessionSummary{{SessionID: "s-viewed"}})

	msg := m.DeleteSessionCmd("s-viewed")().(model.SessionDeletedMsg)
	m.ApplySessionDeleted(msg)

	if msg.Deleted {
		t.Error("Deleted = true for rejected delete")
	}
	if m.Directory.CurrentID != "s-viewed" || len(m.Directory.Sessions) != 1 {
		t.Error("failed delete mutated the directory")
	}
}

func TestLogoutClearsLocalStateEvenOnFailure(t *testing.T) {
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	authenticate(m, "mara")
	m.Directory.CurrentID = "s-1"
	m.Directory.Replace([]client.SessionSummary{{SessionID: "s-1"}})
	m.Buffer.AppendUser("secret conversation")
	m.Buffer.ConfirmPending()

	msg := m.LogoutCmd()().(model.LogoutResultMsg)
	if msg.Err == nil {
		t.Fatal("LogoutResultMsg.Err = nil, want transport failure")
	}
	m.ApplyLogoutResult(msg)

	if m.Auth.Authenticated() {
		t.Error("identity survives a failed logout call")
	}
	if m.Directory.CurrentID != "" || len(m.Directory.Sessions) != 0 {
		t.Error("session directory survives logout")
	}
	if m.Buffer.Len() != 0 {
		t.Error("conversation buffer survives logout")
	}
}

func TestIdentityResolutionFailureIsSwallowed(t *testing.T) {
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Not authenticated"})
	}))

	msg := m.ResolveIdentityCmd()().(model.IdentityResolvedMsg)
	cmd := m.ApplyIdentityResolved(msg)

	if !m.Auth.Checked {
		t.Error("Auth.Checked = false after resolution completed")
	}
	if m.Auth.Authenticated() {
		t.Error("failed resolution installed an identity")
	}
	if cmd != nil {
		t.Error("failed resolution triggered follow-up loads")
	}
}

func TestConfigLoadSeedsDraftAndChainsModelFetch(t *testing.T) {
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/config":
			json.NewEncoder(w).Encode(client.LlmConfig{
				Model:     "qwen3",
				BaseURL:   "http://llm.local",
				ApiKeySet: true,
			})
		case "/api/config/models":
			if r.Method != http.MethodGet {
				t.Errorf("stored-credential fetch used %s, want GET", r.Method)
			}
			json.NewEncoder(w).Encode(map[string][]string{"models": {"llama3", "qwen3"}})
		}
	}))
	m.LLM.DraftAPIKey = "typed-but-not-saved"

	loadMsg := m.LoadConfigCmd()().(model.ConfigLoadedMsg)
	fetchCmd := m.ApplyConfigLoaded(loadMsg)

	if m.LLM.DraftBaseURL != "http://llm.local" {
		t.Errorf("DraftBaseURL = %q, want seeded from loaded config", m.LLM.DraftBaseURL)
	}
	if m.LLM.DraftAPIKey != "" {
		t.Error("DraftAPIKey not blanked on load; the secret never round-trips")
	}
	if fetchCmd == nil {
		t.Fatal("no model fetch chained despite stored credentials")
	}

	fetchMsg := fetchCmd().(model.ModelsListMsg)
	if !m.ApplyModelsList(fetchMsg) {
		t.Fatal("chained fetch result reported stale")
	}
	if m.LLM.DraftModel != "qwen3" {
		t.Errorf("DraftModel = %q, want confirmed model preferred", m.LLM.DraftModel)
	}
	if m.LLM.ModelsLoading {
		t.Error("ModelsLoading = true after fetch completed")
	}
}

func TestSupersededModelFetchIsDiscarded(t *testing.T) {
	reply := []string{"old-model"}
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string][]string{"models": reply})
	}))

	firstCmd := m.FetchModelsCmd(false, "")
	firstMsg := firstCmd().(model.ModelsListMsg)

	reply = []string{"new-model"}
	secondCmd := m.FetchModelsCmd(false, "")
	secondMsg := secondCmd().(model.ModelsListMsg)

	if m.ApplyModelsList(firstMsg) {
		t.Error("superseded fetch result applied")
	}
	if len(m.LLM.Models) != 0 {
		t.Error("superseded fetch replaced the model list")
	}

	if !m.ApplyModelsList(secondMsg) {
		t.Fatal("current fetch result discarded")
	}
	if len(m.LLM.Models) != 1 || m.LLM.Models[0] != "new-model" {
		t.Errorf("Models = %v, want the newest fetch's list", m.LLM.Models)
	}
}

func TestFetchModelsWithDraftCredentialsPosts(t *testing.T) {
	var gotMethod string
	var gotBody map[string]string
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string][]string{"models": {"m1"}})
	}))
	m.LLM.DraftBaseURL = "http://draft.local"
	m.LLM.DraftAPIKey = "sk-draft"

	msg := m.FetchModelsCmd(true, "")().(model.ModelsListMsg)
	if !m.ApplyModelsList(msg) {
		t.Fatal("fetch result discarded")
	}
	if gotMethod != http.MethodPost {
		t.Errorf("draft-credential fetch used %s, want POST", gotMethod)
	}
	if gotBody["base_url"] != "http://draft.local" || gotBody["api_key"] != "sk-draft" {
		t.Errorf("override body = %v", gotBody)
	}
}

func TestSaveConfigOmitsEmptyDraftKey(t *testing.T) {
	var captured map[string]json.RawMessage
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(client.LlmConfig{Model: "qwen3", ApiKeySet: true})
	}))
	m.LLM.DraftModel = "qwen3"
	m.LLM.DraftBaseURL = "  http://llm.local  "

	msg := m.SaveConfigCmd()().(model.ConfigSavedMsg)
	m.ApplyConfigSaved(msg)

	if _, present := captured["api_key"]; present {
		t.Error("save sent api_key for an untouched field")
	}
	var baseURL string
	json.Unmarshal(captured["base_url"], &baseURL)
	if baseURL != "http://llm.local" {
		t.Errorf("base_url = %q, want trimmed", baseURL)
	}
	if m.LLM.Confirmed == nil || !m.LLM.Confirmed.ApiKeySet {
		t.Error("confirmed config not replaced from the save response")
	}

	m.LLM.DraftAPIKey = "sk-new"
	msg = m.SaveConfigCmd()().(model.ConfigSavedMsg)
	m.ApplyConfigSaved(msg)

	if _, present := captured["api_key"]; !present {
		t.Error("save omitted api_key for an edited field")
	}
	if m.LLM.DraftAPIKey != "" {
		t.Error("DraftAPIKey not blanked after a successful save")
	}
}

func TestStartNewSessionIsLocal(t *testing.T) {
	requests := 0
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		json.NewEncoder(w).Encode(map[string][]client.SessionSummary{"sessions": {}})
	}))
	authenticate(m, "mara")
	m.Directory.CurrentID = "s-1"
	m.Buffer.AppendUser("old turn")
	m.Buffer.ConfirmPending()

	cmd := m.StartNewSession()

	if m.Directory.CurrentID != "" || m.Buffer.Len() != 0 {
		t.Error("StartNewSession() did not clear selection and buffer")
	}
	if requests != 0 {
		t.Error("StartNewSession() made a network call before its refresh command ran")
	}
	if cmd == nil {
		t.Fatal("StartNewSession() returned no directory refresh")
	}
	if _, ok := cmd().(model.SessionsListMsg); !ok {
		t.Error("refresh command did not produce a SessionsListMsg")
	}
}
