package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"folio/config"
	"folio/model"
	"folio/service/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		ContentsWidth:          30,
		ContentsCollapsedWidth: 6,
		ToolPanelWidth:         48,
		ToolPanelMinWidth:      36,
		NarrowBreakpoint:       100,
		RequestTimeoutSeconds:  30,
	}
}

// testAppView builds a ready AppView with study data installed and the
// window sized, skipping the async load path.
func testAppView(t *testing.T, width, height int) AppView {
	t.Helper()

	dataModel := model.NewModel(testConfig(), config.DefaultKeybindings(), model.Services{
		Chat:      &testutil.FakeChat{},
		Positions: &testutil.FakePositions{},
	}, "test")
	dataModel.Study = &model.StudyData{
		Title: "Ordering",
		TOC: &model.TableOfContents{
			Chapters: []model.Chapter{{
				ID:    "ch-1",
				Title: "Foundations",
				Sections: []model.Section{
					{ID: "s-1", Title: "Introduction", Page: 1},
					{ID: "s-2", Title: "Definitions", Page: 2},
				},
			}},
		},
		Pages: []string{"# One\n\nfirst page", "# Two\n\nsecond page"},
	}

	a := NewAppView(dataModel)
	a.loading = false
	m, _ := a.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return m.(AppView)
}

func TestDragResizeFollowsHeldMotion(t *testing.T) {
	a := testAppView(t, 160, 40)

	// contents 30 + document + handle at 111 + panel 48
	handleX := a.lc.HandleX(160, true)
	if handleX != 111 {
		t.Fatalf("HandleX = %d, want 111", handleX)
	}

	m, _ := a.Update(tea.MouseMsg{
		X: handleX, Y: 5,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
		Type:   tea.MouseLeft,
	})
	a = m.(AppView)
	if !a.lc.State.Resizing {
		t.Fatal("press on the handle must start a drag")
	}

	// Motion with the button held still carries the left button, and
	// under cell-motion reporting its legacy Type is MouseLeft too
	m, _ = a.Update(tea.MouseMsg{
		X: 100, Y: 5,
		Action: tea.MouseActionMotion,
		Button: tea.MouseButtonLeft,
		Type:   tea.MouseLeft,
	})
	a = m.(AppView)
	if !a.lc.State.Resizing {
		t.Fatal("drag must continue through motion")
	}
	if got := a.lc.ToolPanelWidth(160, true); got != 59 {
		t.Errorf("panel width = %d after drag to x=100, want 59", got)
	}

	m, _ = a.Update(tea.MouseMsg{
		X: 100, Y: 5,
		Action: tea.MouseActionRelease,
		Button: tea.MouseButtonLeft,
		Type:   tea.MouseRelease,
	})
	a = m.(AppView)
	if a.lc.State.Resizing {
		t.Error("release must end the drag")
	}
	if got := a.lc.ToolPanelWidth(160, true); got != 59 {
		t.Errorf("panel width = %d after release, want 59", got)
	}
}

func TestWheelScrollsDocumentUnderPointer(t *testing.T) {
	a := testAppView(t, 160, 40)
	a.document.vp.SetContent(strings.Repeat("line\n", 100))

	m, _ := a.Update(tea.MouseMsg{
		X: 50, Y: 5,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonWheelDown,
		Type:   tea.MouseWheelDown,
	})
	a = m.(AppView)
	if a.document.vp.YOffset != 3 {
		t.Errorf("document YOffset = %d after wheel down, want 3", a.document.vp.YOffset)
	}
}

func TestNarrowHidesDocumentIndependently(t *testing.T) {
	a := testAppView(t, 80, 40)
	if !a.lc.State.Narrow {
		t.Fatal("80 columns must be narrow")
	}

	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d"), Alt: true})
	a = m.(AppView)
	if !a.lc.State.DocumentHidden {
		t.Fatal("alt+d must hide the document pane")
	}

	// The tool panel takes all stacked rows and the separator goes away
	if a.toolPanel.height != a.paneHeight() {
		t.Errorf("tool panel height = %d, want %d", a.toolPanel.height, a.paneHeight())
	}
	if strings.Contains(a.View(), "───") {
		t.Error("hidden document must not leave the pane separator on screen")
	}

	m, _ = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d"), Alt: true})
	a = m.(AppView)
	if a.lc.State.DocumentHidden {
		t.Error("alt+d must bring the document pane back")
	}
	if !strings.Contains(a.View(), "───") {
		t.Error("stacked panes must be separated again")
	}
}

func TestNarrowPointerRoutingSplitsByRow(t *testing.T) {
	a := testAppView(t, 80, 40)

	// pane rows: title 0, document 1..19, separator 20, tool panel below
	if !a.overDocument(5, 5) {
		t.Error("row 5 must hit the document pane")
	}
	if a.overDocument(5, 25) {
		t.Error("row 25 is below the stacked document pane")
	}
	if !a.overToolPanel(5, 25) {
		t.Error("row 25 must hit the tool panel")
	}
	if a.overToolPanel(5, 5) {
		t.Error("row 5 must not hit the tool panel")
	}
	if a.overDocument(5, 0) || a.overToolPanel(5, 0) {
		t.Error("the title bar row belongs to neither pane")
	}
}
