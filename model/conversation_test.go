package model_test

import (
	"testing"

	"scantui/client"
	"scantui/model"
)

func TestReplaceHistoryIsWholesale(t *testing.T) {
	var buf model.ConversationBuffer
	buf.AppendUser("stale local entry")

	buf.ReplaceHistory([]client.Message{
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "hi there"},
	})

	if buf.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (no merge with previous contents)", buf.Len())
	}
	if buf.Messages[0].Content != "hello" || buf.Messages[1].Content != "hi there" {
		t.Errorf("Messages = %+v", buf.Messages)
	}
	for i, msg := range buf.Messages {
		if msg.Pending || msg.Local {
			t.Errorf("Messages[%d] marked Pending=%v Local=%v after history load", i, msg.Pending, msg.Local)
		}
	}
}

func TestConfirmPendingClearsNewestOptimisticEntry(t *testing.T) {
	var buf model.ConversationBuffer
	buf.AppendUser("first")
	buf.ConfirmPending()
	buf.AppendUser("second")

	buf.ConfirmPending()

	for i, msg := range buf.Messages {
		if msg.Pending {
			t.Errorf("Messages[%d] still Pending after ConfirmPending()", i)
		}
	}
}

func TestClearLeavesSendingFlagAlone(t *testing.T) {
	var buf model.ConversationBuffer
	buf.AppendUser("in flight")
	buf.Sending = true

	buf.Clear()

	if buf.Len() != 0 {
		t.Errorf("Len() after Clear() = %d, want 0", buf.Len())
	}
	if !buf.Sending {
		t.Error("Clear() reset Sending; the flag belongs to the send protocol")
	}
}

func TestAppendLocalNoticeIsAssistantAndLocal(t *testing.T) {
	var buf model.ConversationBuffer
	buf.AppendLocalNotice("something went wrong")

	if buf.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", buf.Len())
	}
	msg := buf.Messages[0]
	if msg.Role != "assistant" || !msg.Local {
		t.Errorf("notice Role=%q Local=%v, want assistant local message", msg.Role, msg.Local)
	}
}
