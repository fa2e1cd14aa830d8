package model

import (
	"time"

	"folio/config"
)

// Model holds the core application data and business logic state
type Model struct {
	// Core dependencies
	Config   *config.Config
	Keys     *config.KeyBindingsConfig
	Services Services

	// Application data
	Study    *StudyData
	Position Position
	Messages []Message

	// Runtime state (not UI)
	Pending            bool // at most one outstanding chat send
	NeedsInitialRender bool
	Quitting           bool

	// Tool fetches in flight, keyed by message ID. Duplicate opens for
	// the same message are dropped until the first fetch completes.
	inflightTools map[string]bool

	// Application metadata
	Version string
}

// NewModel creates a new Model with the given configuration. Study data
// and chat history arrive asynchronously via LoadStudyData/LoadHistory.
func NewModel(cfg *config.Config, keys *config.KeyBindingsConfig, services Services, version string) *Model {
	return &Model{
		Config:        cfg,
		Keys:          keys,
		Services:      services,
		Position:      Position{Page: 1},
		inflightTools: make(map[string]bool),
		Version:       version,
	}
}

// ApplyStudyData installs loaded study data and restores the last-read
// position, clamped against the freshly derived page count.
func (m *Model) ApplyStudyData(data *StudyData) {
	m.Study = data
	page := data.LastRead.Page
	if page < 1 {
		page = 1
	}
	m.Position = Position{Page: 1}
	m.NavigateTo(page, data.LastRead.SectionID, data.LastRead.ChapterID)
}

// SeedHistory converts prior turns into the message list. Turns that
// reference a tool response without inline content get a ToolRef with a
// nil payload, resolved on demand.
func (m *Model) SeedHistory(turns []HistoryTurn) {
	messages := make([]Message, 0, len(turns))
	for _, turn := range turns {
		msg := Message{
			ID:        turn.ID,
			Role:      turn.Role,
			Content:   turn.Text,
			Timestamp: turn.Timestamp,
		}
		if turn.ToolResponseID != "" {
			msg.Tool = &ToolRef{
				Type: turn.ToolType,
				ID:   turn.ToolResponseID,
			}
		}
		messages = append(messages, msg)
	}
	m.Messages = messages
	m.NeedsInitialRender = len(messages) > 0
}

// MessageIndexByID returns the index of a message, or -1
func (m *Model) MessageIndexByID(id string) int {
	for i := range m.Messages {
		if m.Messages[i].ID == id {
			return i
		}
	}
	return -1
}

// LastAssistantMessage returns the most recent assistant turn, or nil
func (m *Model) LastAssistantMessage() *Message {
	for i := len(m.Messages) - 1; i >= 0; i-- {
		if m.Messages[i].Role == "assistant" {
			return &m.Messages[i]
		}
	}
	return nil
}

// requestTimeout is the deadline applied to every async service call.
// A hung backend clears the pending flag through the timeout error
// instead of wedging the panel.
func (m *Model) requestTimeout() time.Duration {
	seconds := 30
	if m.Config != nil && m.Config.RequestTimeoutSeconds > 0 {
		seconds = m.Config.RequestTimeoutSeconds
	}
	return time.Duration(seconds) * time.Second
}
