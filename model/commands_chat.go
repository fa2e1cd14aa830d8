package model

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// Send appends a user message and starts the async generation request.
// Returns nil while a send is already pending: extra submissions are
// silently dropped, never queued. The eventual assistant counterpart is
// appended by CompleteSend, so message order is the order sends were
// issued.
func (m *Model) Send(text string, highlight *HighlightSnapshot, tool ToolType) tea.Cmd {
	if m.Pending || m.Services.Chat == nil {
		return nil
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	userMsg := Message{
		ID:        uuid.New().String(),
		Role:      "user",
		Content:   text,
		Timestamp: time.Now(),
		Highlight: highlight,
	}
	m.Messages = append(m.Messages, userMsg)
	m.Pending = true

	svc := m.Services.Chat
	timeout := m.requestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		reply, err := svc.Generate(ctx, text, highlight, tool)
		return ChatReplyMsg{UserMessageID: userMsg.ID, Reply: reply, Err: err}
	}
}

// SendForHighlight synthesizes a user message for an immediate tool
// request from a document selection, bypassing manual compose.
func (m *Model) SendForHighlight(ev HighlightEvent) tea.Cmd {
	prompt := fmt.Sprintf("%s from the highlighted passage: %q",
		highlightVerb(ev.Tool), ev.Text)
	return m.Send(prompt, ev.Snapshot(), ev.Tool)
}

func highlightVerb(tool ToolType) string {
	switch tool {
	case ToolFlashcard:
		return "Create flashcards"
	case ToolQuiz:
		return "Create a quiz"
	case ToolDiagram:
		return "Draw a diagram"
	case ToolGame:
		return "Make a study game"
	default:
		return "Explain"
	}
}

// CompleteSend finishes the protocol: the assistant message is appended
// and the pending flag clears. On error the flag still clears and the
// user message stays in the list; the error is returned for a notice.
// A tool artifact on the reply is stored on the message, never opened
// automatically.
func (m *Model) CompleteSend(msg ChatReplyMsg) error {
	m.Pending = false
	if msg.Err != nil {
		return fmt.Errorf("request failed: %w", msg.Err)
	}
	if msg.Reply == nil {
		return fmt.Errorf("empty reply")
	}

	m.Messages = append(m.Messages, Message{
		ID:        uuid.New().String(),
		Role:      "assistant",
		Content:   msg.Reply.Text,
		Timestamp: time.Now(),
		Tool:      msg.Reply.Tool,
	})
	return nil
}
