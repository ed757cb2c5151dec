package ui

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	markdown "github.com/MichaelMure/go-term-markdown"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"

	"scantui/client"
	"scantui/config"
	appmodel "scantui/model"
)

type markdownRenderedMsg struct {
	MessageIndex int
	Rendered     string
}

func (a AppView) renderHeader() string {
	tabs := []struct {
		view  appmodel.View
		label string
	}{
		{appmodel.ViewConversation, "Chat"},
		{appmodel.ViewSkills, "Skills"},
		{appmodel.ViewSettings, "Settings"},
	}

	var rendered []string
	for _, tab := range tabs {
		if tab.view == a.dataModel.ActiveView {
			rendered = append(rendered, ActiveTabStyle.Render(tab.label))
		} else {
			rendered = append(rendered, InactiveTabStyle.Render(tab.label))
		}
	}

	left := TitleStyle.Render("scantui") + "  " + strings.Join(rendered, "  ")

	var right string
	if a.dataModel.Auth.Authenticated() {
		right = DimStyle.Render("user: ") + UserStyle.Render(a.dataModel.Auth.Username())
	} else {
		right = DimStyle.Render("not logged in · ctrl+a to log in")
	}

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	header := left + strings.Repeat(" ", gap) + right

	return header + "\n" + BorderStyle.Render(strings.Repeat("─", max(a.width, 0)))
}

func (a AppView) renderConversation() string {
	var b strings.Builder
	b.WriteString(a.viewport.View())
	b.WriteString("\n")

	if a.dataModel.Buffer.Sending {
		b.WriteString(a.loadingSpinner.View() + DimStyle.Render(" agent is working..."))
	} else {
		b.WriteString(a.textarea.View())
	}
	return b.String()
}

// updateViewportContent rebuilds the transcript. goToBottom follows the
// newest message, as after a send or a history load.
func (a *AppView) updateViewportContent(goToBottom bool) {
	if !a.ready {
		return
	}

	var content strings.Builder
	for _, msg := range a.dataModel.Buffer.Messages {
		content.WriteString(a.renderMessage(msg))
		content.WriteString("\n")
	}

	if a.dataModel.Buffer.Len() == 0 {
		sessionHint := "No session selected. Sending a message starts a new one."
		if a.dataModel.Directory.CurrentID != "" {
			sessionHint = "Session " + truncateID(a.dataModel.Directory.CurrentID) + " is empty."
		}
		content.WriteString(DimStyle.Render(sessionHint))
	}

	a.viewport.SetContent(content.String())
	if goToBottom {
		a.viewport.GotoBottom()
	}
}

func (a AppView) renderMessage(msg appmodel.Message) string {
	var b strings.Builder

	var timestamp string
	if !msg.Timestamp.IsZero() {
		timestamp = DimStyle.Render(msg.Timestamp.Format("[15:04]")) + " "
	}

	body := msg.Rendered
	if body == "" {
		body = msg.Content
	}

	switch msg.Role {
	case "user":
		bar := UserStyle.Render("┃")
		b.WriteString(fmt.Sprintf("%s %s%s", bar, timestamp, UserStyle.Render("You")))
		if msg.Pending {
			b.WriteString(DimStyle.Render("  (sending)"))
		}
		b.WriteString("\n")
		for _, line := range strings.Split(body, "\n") {
			b.WriteString(fmt.Sprintf("%s %s\n", bar, line))
		}
	default:
		name := "Agent"
		if msg.Local {
			name = "Agent (local)"
		}
		b.WriteString(fmt.Sprintf("%s%s\n%s\n", timestamp, AssistantStyle.Render(name), body))
		for _, tc := range msg.ToolCalls {
			b.WriteString(renderToolCall(tc))
		}
	}

	return b.String()
}

// renderToolCall shows one tool invocation beneath its assistant
// message: name and input on one line, output indented under it.
func renderToolCall(tc client.ToolCall) string {
	var b strings.Builder
	b.WriteString(ToolCallStyle.Render(fmt.Sprintf("  ⚙ %s %s", tc.Tool, formatToolInput(tc.Input))))
	b.WriteString("\n")
	if tc.Output != nil {
		output := fmt.Sprintf("%v", tc.Output)
		for _, line := range strings.Split(strings.TrimRight(output, "\n"), "\n") {
			b.WriteString(DimStyle.Render("    " + line))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (a AppView) renderStatusBar() string {
	var parts []string

	session := "no session"
	if a.dataModel.Directory.CurrentID != "" {
		session = "session " + truncateID(a.dataModel.Directory.CurrentID)
	}
	parts = append(parts, session)

	if count := len(a.dataModel.Directory.Sessions); count > 0 {
		parts = append(parts, fmt.Sprintf("%d sessions", count))
	}
	if a.dataModel.LLM.Confirmed != nil && a.dataModel.LLM.Confirmed.Model != "" {
		parts = append(parts, "model "+a.dataModel.LLM.Confirmed.Model)
	}
	if a.dataModel.Buffer.Sending {
		parts = append(parts, "sending...")
	}

	left := StatusStyle.Render(strings.Join(parts, " · "))
	right := HelpStyle.Render("ctrl+s sessions · ctrl+n new · tab views · ctrl+h help")
	if a.showHelp {
		right = HelpStyle.Render("enter send · ctrl+y copy reply · ctrl+a login · ctrl+x logout · ctrl+c quit")
	}

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderMarkdownAsync renders one message body off the update loop and
// reports back with the message index.
func (a AppView) renderMarkdownAsync(messageIndex int, content string) tea.Cmd {
	width := a.width - 4
	return func() tea.Msg {
		start := time.Now()

		defaultExt := markdown.Extensions()
		customExt := defaultExt &^ parser.Autolink
		p := parser.NewWithExtensions(customExt)
		r := markdown.NewRenderer(width, 0)
		doc := p.Parse([]byte(content))
		rendered := gomarkdown.Render(doc, r)

		if config.DebugLog != nil {
			config.DebugLog.Printf("Markdown rendered for message %d in %v", messageIndex, time.Since(start))
		}

		return markdownRenderedMsg{
			MessageIndex: messageIndex,
			Rendered:     strings.TrimRight(string(rendered), "\n"),
		}
	}
}

// renderHistoryMarkdown queues markdown rendering for a freshly loaded
// history, newest first since the viewport shows the bottom.
func (a AppView) renderHistoryMarkdown() tea.Cmd {
	var cmds []tea.Cmd
	for i := a.dataModel.Buffer.Len() - 1; i >= 0; i-- {
		msg := a.dataModel.Buffer.Messages[i]
		if msg.Role == "assistant" && msg.Rendered == "" && msg.Content != "" {
			cmds = append(cmds, a.renderMarkdownAsync(i, msg.Content))
		}
	}
	return tea.Batch(cmds...)
}

func truncateID(id string) string {
	if len(id) > 12 {
		return id[:12] + "…"
	}
	return id
}

func formatToolInput(input map[string]any) string {
	if len(input) == 0 {
		return "{}"
	}
	data, err := json.Marshal(input)
	if err != nil {
		return fmt.Sprintf("%v", input)
	}
	return string(data)
}
