package model

import (
	"time"

	"scantui/client"
)

// Message represents a chat message in the conversation buffer
type Message struct {
	Role      string
	Content   string
	Rendered  string // Cached rendered markdown
	Timestamp time.Time
	ToolCalls []client.ToolCall

	// Pending marks an optimistic user entry whose round trip has not
	// resolved yet.
	Pending bool
	// Local marks a client-only notice that was never sent to the
	// service and is not part of any session's history.
	Local bool
}
