package model_test

import (
	"errors"
	"testing"
	"time"

	"folio/model"
	"folio/service/testutil"
)

func newToolModel(tools *testutil.FakeTools) *model.Model {
	m := newTestModel()
	m.Services = model.Services{Tools: tools}
	m.SeedHistory([]model.HistoryTurn{
		{ID: "msg-1", Role: "user", Text: "make flashcards", Timestamp: time.Now()},
		{ID: "msg-2", Role: "assistant", Text: "Here you go.",
			ToolResponseID: "tool-1", ToolType: model.ToolFlashcard, Timestamp: time.Now()},
	})
	return m
}

func TestSeedHistoryCreatesUnloadedToolRef(t *testing.T) {
	m := newToolModel(&testutil.FakeTools{})

	if len(m.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(m.Messages))
	}
	ref := m.Messages[1].Tool
	if ref == nil {
		t.Fatal("tool ref not created from history turn")
	}
	if ref.Loaded() {
		t.Error("history tool ref must start unloaded")
	}
	if ref.ID != "tool-1" || ref.Type != model.ToolFlashcard {
		t.Errorf("ref = %+v", ref)
	}
}

func TestFetchToolContentBackfills(t *testing.T) {
	payload := &model.ToolPayload{Flashcards: []model.Flashcard{{Front: "q", Back: "a"}}}
	tools := &testutil.FakeTools{Payloads: map[string]*model.ToolPayload{"tool-1": payload}}
	m := newToolModel(tools)

	cmd := m.FetchToolContent("msg-2")
	if cmd == nil {
		t.Fatal("FetchToolContent() returned nil for fetchable ref")
	}
	if !m.ToolFetchInFlight("msg-2") {
		t.Error("fetch not marked in flight")
	}

	msg := cmd().(model.ToolContentMsg)
	if err := m.CompleteToolFetch(msg); err != nil {
		t.Fatalf("CompleteToolFetch() error = %v", err)
	}
	if m.ToolFetchInFlight("msg-2") {
		t.Error("in-flight mark not cleared")
	}
	if !m.Messages[1].Tool.Loaded() {
		t.Error("payload not backfilled")
	}
}

func TestFetchToolContentSerializedPerMessage(t *testing.T) {
	tools := &testutil.FakeTools{Payloads: map[string]*model.ToolPayload{"tool-1": {}}}
	m := newToolModel(tools)

	first := m.FetchToolContent("msg-2")
	if first == nil {
		t.Fatal("first fetch returned nil")
	}
	if second := m.FetchToolContent("msg-2"); second != nil {
		t.Error("duplicate fetch for the same message must be dropped")
	}

	first()
	if tools.Calls != 1 {
		t.Errorf("service called %d times, want 1", tools.Calls)
	}
}

func TestFetchToolContentSkipsLoadedRef(t *testing.T) {
	tools := &testutil.FakeTools{}
	m := newToolModel(tools)
	m.Messages[1].Tool.Payload = &model.ToolPayload{Game: "word hunt"}

	if cmd := m.FetchToolContent("msg-2"); cmd != nil {
		t.Error("loaded ref must not be fetched again")
	}
	if cmd := m.FetchToolContent("msg-1"); cmd != nil {
		t.Error("message without a tool ref must not be fetched")
	}
	if cmd := m.FetchToolContent("nope"); cmd != nil {
		t.Error("unknown message must not be fetched")
	}
}

func TestCompleteToolFetchErrorLeavesRefFetchable(t *testing.T) {
	tools := &testutil.FakeTools{Err: errors.New("gone")}
	m := newToolModel(tools)

	cmd := m.FetchToolContent("msg-2")
	msg := cmd().(model.ToolContentMsg)

	if err := m.CompleteToolFetch(msg); err == nil {
		t.Fatal("CompleteToolFetch() should surface the fetch error")
	}
	if m.Messages[1].Tool.Loaded() {
		t.Error("failed fetch must not mark the ref loaded")
	}

	// The ref can be fetched again after the failure
	tools.Err = nil
	tools.Payloads = map[string]*model.ToolPayload{"tool-1": {Game: "retry"}}
	if cmd := m.FetchToolContent("msg-2"); cmd == nil {
		t.Error("ref must be fetchable again after a failed fetch")
	}
}
