package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"folio/config"
	"folio/model"
	"folio/service/testutil"
)

func TestSendFollowsOverriddenBinding(t *testing.T) {
	kb := config.DefaultKeybindings()
	kb.Actions = map[string]string{"send": "ctrl+s"}
	keys := newKeymap(kb)

	dataModel := model.NewModel(testConfig(), kb, model.Services{
		Chat: &testutil.FakeChat{},
	}, "test")
	tp := NewToolPanelView(dataModel, keys)
	tp.SetSize(60, 20)
	tp.textarea.SetValue("what is a vector clock?")

	// Plain enter no longer sends once the action is overridden
	tp, _ = tp.Update(tea.KeyMsg{Type: tea.KeyEnter}, keys)
	if len(dataModel.Messages) != 0 || dataModel.Pending {
		t.Fatal("enter must not send after an override")
	}

	tp, cmd := tp.Update(tea.KeyMsg{Type: tea.KeyCtrlS}, keys)
	if cmd == nil {
		t.Fatal("overridden send key must send")
	}
	if len(dataModel.Messages) != 1 || !dataModel.Pending {
		t.Fatalf("messages = %d, pending = %v after send", len(dataModel.Messages), dataModel.Pending)
	}
	if tp.textarea.Value() != "" {
		t.Error("compose box must clear on send")
	}
}

func TestSendDefaultsToEnter(t *testing.T) {
	keys := testKeys()
	dataModel := model.NewModel(testConfig(), config.DefaultKeybindings(), model.Services{
		Chat: &testutil.FakeChat{},
	}, "test")
	tp := NewToolPanelView(dataModel, keys)
	tp.SetSize(60, 20)
	tp.textarea.SetValue("hello")

	_, cmd := tp.Update(tea.KeyMsg{Type: tea.KeyEnter}, keys)
	if cmd == nil || len(dataModel.Messages) != 1 {
		t.Fatal("enter must send with default bindings")
	}
}
