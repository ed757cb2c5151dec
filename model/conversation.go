package model

import (
	"time"

	"scantui/client"
)

// ConversationBuffer holds the messages of the currently viewed session,
// including optimistic entries not yet confirmed by the service.
// Sending is the single-flight flag: at most one send may be in flight,
// and further send attempts are dropped while it is set.
type ConversationBuffer struct {
	Messages []Message
	Sending  bool
}

// ReplaceHistory swaps in a session's full history. This is a wholesale
// replacement, never a merge with whatever was on screen before.
func (b *ConversationBuffer) ReplaceHistory(history []client.Message) {
	messages := make([]Message, 0, len(history))
	for _, msg := range history {
		messages = append(messages, Message{
			Role:      msg.Role,
			Content:   msg.Content,
			ToolCalls: msg.ToolCalls,
		})
	}
	b.Messages = messages
}

// AppendUser appends an optimistic user entry before its round trip
// resolves, so the transcript reflects intent without waiting.
func (b *ConversationBuffer) AppendUser(text string) {
	b.Messages = append(b.Messages, Message{
		Role:      "user",
		Content:   text,
		Timestamp: time.Now(),
		Pending:   true,
	})
}

// ConfirmPending clears the pending mark on the optimistic user entry.
func (b *ConversationBuffer) ConfirmPending() {
	for i := len(b.Messages) - 1; i >= 0; i-- {
		if b.Messages[i].Pending {
			b.Messages[i].Pending = false
			return
		}
	}
}

// AppendAssistant appends the agent's reply for the latest turn.
func (b *ConversationBuffer) AppendAssistant(reply string, toolCalls []client.ToolCall) {
	b.Messages = append(b.Messages, Message{
		Role:      "assistant",
		Content:   reply,
		Timestamp: time.Now(),
		ToolCalls: toolCalls,
	})
}

// AppendLocalNotice appends a client-only assistant message. It never
// reaches the service and does not count toward any session's history.
func (b *ConversationBuffer) AppendLocalNotice(text string) {
	b.Messages = append(b.Messages, Message{
		Role:      "assistant",
		Content:   text,
		Timestamp: time.Now(),
		Local:     true,
	})
}

// Clear empties the buffer. The single-flight flag is left alone; it is
// owned by the send protocol and cleared there unconditionally.
func (b *ConversationBuffer) Clear() {
	b.Messages = nil
}

// Len returns the number of buffered messages.
func (b *ConversationBuffer) Len() int {
	return len(b.Messages)
}
