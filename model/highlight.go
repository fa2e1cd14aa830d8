package model

// HighlightEvent is a user text selection forwarded to the tool panel.
// Created on selection, consumed once, then discarded.
type HighlightEvent struct {
	Text    string
	Context string   // surrounding lines for grounding the request
	Tool    ToolType // requested artifact; ToolAsk routes to the compose box
}

// HighlightSnapshot is the durable copy of a highlight kept on the
// message it produced.
type HighlightSnapshot struct {
	Text    string
	Context string
}

// Snapshot converts the ephemeral event into its message-attached form
func (e HighlightEvent) Snapshot() *HighlightSnapshot {
	return &HighlightSnapshot{Text: e.Text, Context: e.Context}
}
