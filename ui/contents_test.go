package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"folio/config"
	"folio/model"
)

func testKeys() keymap {
	return newKeymap(config.DefaultKeybindings())
}

func testContentsView() ContentsView {
	c := NewContentsView()
	c.SetTOC(&model.TableOfContents{
		Chapters: []model.Chapter{
			{
				ID:    "ch-1",
				Title: "Foundations",
				Sections: []model.Section{
					{ID: "s-1", Title: "Introduction", Page: 1},
					{ID: "s-2", Title: "Definitions", Page: 5},
				},
			},
			{
				ID:    "ch-2",
				Title: "Vector Clocks",
				Sections: []model.Section{
					{ID: "s-3", Title: "Vector Clocks", Page: 11},
				},
			},
			{
				ID:    "ch-3",
				Title: "Empty Chapter",
			},
		},
	})
	return c
}

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestEntriesHideSectionsOfClickableChapters(t *testing.T) {
	c := testContentsView()
	entries := c.entries()

	// ch-1 + 2 sections, ch-2 (clickable, section hidden), ch-3
	if len(entries) != 5 {
		t.Fatalf("got %d entries, want 5", len(entries))
	}
	for _, e := range entries {
		if e.chapterIdx == 1 && e.sectionIdx >= 0 {
			t.Error("clickable chapter must not list its duplicate section")
		}
	}
}

func TestToggleCollapsesExpandableChapter(t *testing.T) {
	c := testContentsView()

	c, _ = c.Update(keyMsg(" "), testKeys()) // cursor on ch-1
	if len(c.entries()) != 3 {
		t.Errorf("got %d entries after collapse, want 3", len(c.entries()))
	}

	c, _ = c.Update(keyMsg(" "), testKeys())
	if len(c.entries()) != 5 {
		t.Errorf("got %d entries after re-expand, want 5", len(c.entries()))
	}
}

func TestActivateSectionEmitsNavigation(t *testing.T) {
	c := testContentsView()
	c.cursor = 2 // ch-1 > Definitions

	_, cmd := c.Update(keyMsg("enter"), testKeys())
	if cmd == nil {
		t.Fatal("no command emitted")
	}
	nav, ok := cmd().(model.NavigationMsg)
	if !ok {
		t.Fatalf("got %T, want NavigationMsg", cmd())
	}
	if nav.Page != 5 || nav.SectionID != "s-2" || nav.ChapterID != "ch-1" {
		t.Errorf("NavigationMsg = %+v", nav)
	}
}

func TestActivateClickableChapterNavigatesToFirstSection(t *testing.T) {
	c := testContentsView()
	c.cursor = 3 // ch-2, clickable

	_, cmd := c.Update(keyMsg("enter"), testKeys())
	if cmd == nil {
		t.Fatal("clickable chapter must navigate")
	}
	nav := cmd().(model.NavigationMsg)
	if nav.Page != 11 || nav.SectionID != "s-3" || nav.ChapterID != "ch-2" {
		t.Errorf("NavigationMsg = %+v", nav)
	}
}

func TestActivateExpandableChapterTogglesInstead(t *testing.T) {
	c := testContentsView()
	c.cursor = 0 // ch-1, expandable

	c2, cmd := c.Update(keyMsg("enter"), testKeys())
	if cmd != nil {
		t.Error("expandable chapter must toggle, not navigate")
	}
	if len(c2.entries()) != 3 {
		t.Errorf("got %d entries, want 3 after toggle", len(c2.entries()))
	}
}

func TestActivateEmptyChapterDoesNothing(t *testing.T) {
	c := testContentsView()
	c.cursor = 4 // ch-3, no sections

	_, cmd := c.Update(keyMsg("enter"), testKeys())
	if cmd != nil {
		t.Error("chapter without sections must not navigate")
	}
}

func TestContentsBindingsFollowOverrides(t *testing.T) {
	kb := config.DefaultKeybindings()
	kb.Actions = map[string]string{
		"contents_open":   "o",
		"contents_toggle": "t",
	}
	keys := newKeymap(kb)

	c := testContentsView()
	c.cursor = 2 // ch-1 > Definitions

	// The defaults go inert once the actions are overridden
	if _, cmd := c.Update(keyMsg("enter"), keys); cmd != nil {
		t.Error("enter must not activate after an override")
	}

	_, cmd := c.Update(keyMsg("o"), keys)
	if cmd == nil {
		t.Fatal("overridden open key must activate")
	}
	if nav := cmd().(model.NavigationMsg); nav.Page != 5 {
		t.Errorf("nav page = %d, want 5", nav.Page)
	}

	c.cursor = 0
	c, _ = c.Update(keyMsg(" "), keys)
	if len(c.entries()) != 5 {
		t.Error("space must not toggle after an override")
	}
	c, _ = c.Update(keyMsg("t"), keys)
	if len(c.entries()) != 3 {
		t.Errorf("got %d entries after overridden toggle, want 3", len(c.entries()))
	}
}

func TestFilterNarrowsEntries(t *testing.T) {
	c := testContentsView()
	c.filterMode = true
	c.filterInput.SetValue("defi")

	entries := c.entries()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if c.entryTitle(entries[0]) != "Definitions" {
		t.Errorf("filtered to %q", c.entryTitle(entries[0]))
	}
}

func TestCursorStaysInBounds(t *testing.T) {
	c := testContentsView()
	for i := 0; i < 20; i++ {
		c, _ = c.Update(keyMsg("j"), testKeys())
	}
	if c.cursor != len(c.entries())-1 {
		t.Errorf("cursor = %d, want %d", c.cursor, len(c.entries())-1)
	}

	for i := 0; i < 20; i++ {
		c, _ = c.Update(keyMsg("k"), testKeys())
	}
	if c.cursor != 0 {
		t.Errorf("cursor = %d, want 0", c.cursor)
	}
}
