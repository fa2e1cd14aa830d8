package model_test

import (
	"context"
	"errors"
	"testing"

	"folio/model"
	"folio/service/testutil"
)

func newChatModel(chat *testutil.FakeChat) *model.Model {
	m := newTestModel()
	m.Services = model.Services{Chat: chat}
	return m
}

func TestSendAppendsUserMessageAndSetsPending(t *testing.T) {
	chat := &testutil.FakeChat{}
	m := newChatModel(chat)

	cmd := m.Send("what is a vector clock?", nil, model.ToolAsk)
	if cmd == nil {
		t.Fatal("Send() returned nil cmd")
	}
	if !m.Pending {
		t.Error("Pending flag not set")
	}
	if len(m.Messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(m.Messages))
	}
	if m.Messages[0].Role != "user" {
		t.Errorf("role = %s, want user", m.Messages[0].Role)
	}

	// Run the async request and complete the protocol
	msg := cmd()
	reply, ok := msg.(model.ChatReplyMsg)
	if !ok {
		t.Fatalf("cmd returned %T, want ChatReplyMsg", msg)
	}
	if err := m.CompleteSend(reply); err != nil {
		t.Fatalf("CompleteSend() error = %v", err)
	}
	if m.Pending {
		t.Error("Pending flag not cleared")
	}
	if len(m.Messages) != 2 || m.Messages[1].Role != "assistant" {
		t.Errorf("assistant message not appended: %+v", m.Messages)
	}
}

func TestSendDroppedWhilePending(t *testing.T) {
	chat := &testutil.FakeChat{}
	m := newChatModel(chat)

	first := m.Send("first", nil, model.ToolAsk)
	if first == nil {
		t.Fatal("first Send() returned nil")
	}

	// Extra sends are dropped silently: no new message, no request
	second := m.Send("second", nil, model.ToolAsk)
	if second != nil {
		t.Error("second Send() should return nil while pending")
	}
	if len(m.Messages) != 1 {
		t.Errorf("got %d messages, want 1 (dropped send must not append)", len(m.Messages))
	}

	first()
	if chat.Calls != 1 {
		t.Errorf("chat called %d times, want 1", chat.Calls)
	}
}

func TestSendIgnoresBlankInput(t *testing.T) {
	m := newChatModel(&testutil.FakeChat{})
	if cmd := m.Send("   \n  ", nil, model.ToolAsk); cmd != nil {
		t.Error("blank input must not start a send")
	}
	if len(m.Messages) != 0 {
		t.Error("blank input must not append a message")
	}
}

func TestCompleteSendError(t *testing.T) {
	m := newChatModel(&testutil.FakeChat{})
	m.Send("hello", nil, model.ToolAsk)

	err := m.CompleteSend(model.ChatReplyMsg{Err: errors.New("backend down")})
	if err == nil {
		t.Fatal("CompleteSend() should surface the error")
	}
	if m.Pending {
		t.Error("Pending must clear even on error")
	}
	if len(m.Messages) != 1 {
		t.Error("failed send must keep the user message and append nothing")
	}

	// A new send works after the failure
	if cmd := m.Send("retry", nil, model.ToolAsk); cmd == nil {
		t.Error("Send() should accept input after a failed send")
	}
}

func TestSendForHighlight(t *testing.T) {
	var gotTool model.ToolType
	var gotHighlight *model.HighlightSnapshot
	chat := &testutil.FakeChat{
		GenerateFunc: func(ctx context.Context, prompt string, highlight *model.HighlightSnapshot, tool model.ToolType) (*model.ChatReply, error) {
			gotTool = tool
			gotHighlight = highlight
			return &model.ChatReply{Text: "cards", Tool: &model.ToolRef{Type: tool, ID: "t-1"}}, nil
		},
	}
	m := newChatModel(chat)

	ev := model.HighlightEvent{Text: "logical time", Tool: model.ToolFlashcard}
	cmd := m.SendForHighlight(ev)
	if cmd == nil {
		t.Fatal("SendForHighlight() returned nil")
	}
	cmd()

	if gotTool != model.ToolFlashcard {
		t.Errorf("tool = %s, want flashcard", gotTool)
	}
	if gotHighlight == nil || gotHighlight.Text != "logical time" {
		t.Errorf("highlight not forwarded: %+v", gotHighlight)
	}
}
