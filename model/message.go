package model

import "time"

// Message represents a chat turn in the tool panel
type Message struct {
	ID        string
	Role      string
	Content   string
	Rendered  string // Cached rendered markdown
	Timestamp time.Time
	Tool      *ToolRef           // Optional attached tool artifact
	Highlight *HighlightSnapshot // Optional quoted document selection
}
