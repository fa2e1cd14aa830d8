package model

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// FetchToolContent resolves the tool payload for a message restored
// from history without inline content. Returns nil when the payload is
// already loaded, when there is nothing to fetch, or when a fetch for
// the same message is still outstanding (duplicate opens are serialized
// per message id).
func (m *Model) FetchToolContent(messageID string) tea.Cmd {
	if m.Services.Tools == nil {
		return nil
	}
	idx := m.MessageIndexByID(messageID)
	if idx < 0 {
		return nil
	}
	ref := m.Messages[idx].Tool
	if ref == nil || ref.Loaded() || ref.ID == "" {
		return nil
	}
	if m.inflightTools[messageID] {
		return nil
	}
	m.inflightTools[messageID] = true

	svc := m.Services.Tools
	toolID := ref.ID
	timeout := m.requestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		payload, err := svc.FetchTool(ctx, toolID)
		return ToolContentMsg{MessageID: messageID, ToolID: toolID, Payload: payload, Err: err}
	}
}

// ToolFetchInFlight reports whether a fetch for the message is pending
func (m *Model) ToolFetchInFlight(messageID string) bool {
	return m.inflightTools[messageID]
}

// CompleteToolFetch backfills the payload onto the message. This is the
// only mutation of an appended message. The ref state is monotonic: it
// moves to loaded and never reverts, so a failed fetch leaves the ref
// fetchable again.
func (m *Model) CompleteToolFetch(msg ToolContentMsg) error {
	delete(m.inflightTools, msg.MessageID)
	if msg.Err != nil {
		return fmt.Errorf("tool fetch failed: %w", msg.Err)
	}

	idx := m.MessageIndexByID(msg.MessageID)
	if idx < 0 {
		return fmt.Errorf("tool fetch for unknown message %s", msg.MessageID)
	}
	ref := m.Messages[idx].Tool
	if ref == nil || ref.ID != msg.ToolID {
		return fmt.Errorf("tool fetch mismatch for message %s", msg.MessageID)
	}
	if !ref.Loaded() {
		ref.Payload = msg.Payload
	}
	return nil
}
