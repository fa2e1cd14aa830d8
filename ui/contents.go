package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	"folio/model"
)

// contentsEntry is one visible row of the contents pane: a chapter, or
// a section of an expanded chapter.
type contentsEntry struct {
	chapterIdx int
	sectionIdx int // -1 for a chapter row
}

// ContentsView renders the chapter/section hierarchy and emits
// navigation requests. Expand state is local and transient; all
// chapters start expanded. It never mutates the reading position.
type ContentsView struct {
	toc *model.TableOfContents

	cursor    int
	collapsed map[int]bool // chapterIdx -> sections hidden

	filterMode  bool
	filterInput textinput.Model
}

func NewContentsView() ContentsView {
	filterInput := textinput.New()
	filterInput.Prompt = "Filter: "
	filterInput.CharLimit = 64

	return ContentsView{
		collapsed:   make(map[int]bool),
		filterInput: filterInput,
	}
}

// SetTOC installs the table of contents once study data loads
func (c *ContentsView) SetTOC(toc *model.TableOfContents) {
	c.toc = toc
	c.cursor = 0
	c.collapsed = make(map[int]bool)
}

// entries returns the currently visible rows, honoring expand state and
// the fuzzy filter.
func (c *ContentsView) entries() []contentsEntry {
	if c.toc == nil {
		return nil
	}

	var all []contentsEntry
	for ci := range c.toc.Chapters {
		all = append(all, contentsEntry{chapterIdx: ci, sectionIdx: -1})
		ch := &c.toc.Chapters[ci]
		if !ch.Expandable() || c.collapsed[ci] {
			continue
		}
		for si := range ch.Sections {
			all = append(all, contentsEntry{chapterIdx: ci, sectionIdx: si})
		}
	}

	query := strings.TrimSpace(c.filterInput.Value())
	if !c.filterMode || query == "" {
		return all
	}

	labels := make([]string, len(all))
	for i, e := range all {
		labels[i] = c.entryTitle(e)
	}
	matches := fuzzy.Find(query, labels)
	filtered := make([]contentsEntry, 0, len(matches))
	for _, m := range matches {
		filtered = append(filtered, all[m.Index])
	}
	return filtered
}

func (c *ContentsView) entryTitle(e contentsEntry) string {
	ch := &c.toc.Chapters[e.chapterIdx]
	if e.sectionIdx < 0 {
		return ch.Title
	}
	return ch.Sections[e.sectionIdx].Title
}

// entryPage returns the page an entry anchors to; chapters use their
// first section. ok is false for a chapter with no sections.
func (c *ContentsView) entryPage(e contentsEntry) (int, bool) {
	ch := &c.toc.Chapters[e.chapterIdx]
	if e.sectionIdx >= 0 {
		return ch.Sections[e.sectionIdx].Page, true
	}
	if first := ch.FirstSection(); first != nil {
		return first.Page, true
	}
	return 0, false
}

// Update handles key input while the contents pane is focused
func (c ContentsView) Update(msg tea.KeyMsg, keys keymap) (ContentsView, tea.Cmd) {
	if c.filterMode {
		return c.updateFilter(msg, keys)
	}

	entries := c.entries()

	switch msg.String() {
	case keys.get("contents_down"), "down":
		if c.cursor < len(entries)-1 {
			c.cursor++
		}
	case keys.get("contents_up"), "up":
		if c.cursor > 0 {
			c.cursor--
		}
	case keys.get("contents_toggle"):
		c = c.toggleAtCursor(entries)
	case keys.get("contents_open"):
		return c.activateAtCursor(entries)
	case keys.get("contents_filter"):
		c.filterMode = true
		c.filterInput.Focus()
		c.cursor = 0
	}
	return c, nil
}

func (c ContentsView) updateFilter(msg tea.KeyMsg, keys keymap) (ContentsView, tea.Cmd) {
	switch msg.String() {
	case "esc":
		c.filterMode = false
		c.filterInput.Blur()
		c.filterInput.SetValue("")
		c.cursor = 0
		return c, nil
	case keys.get("contents_open"):
		return c.activateAtCursor(c.entries())
	case "down":
		if c.cursor < len(c.entries())-1 {
			c.cursor++
		}
		return c, nil
	case "up":
		if c.cursor > 0 {
			c.cursor--
		}
		return c, nil
	}

	var cmd tea.Cmd
	c.filterInput, cmd = c.filterInput.Update(msg)
	c.cursor = 0
	return c, cmd
}

func (c ContentsView) toggleAtCursor(entries []contentsEntry) ContentsView {
	if c.cursor >= len(entries) {
		return c
	}
	e := entries[c.cursor]
	if e.sectionIdx >= 0 {
		return c
	}
	if !c.toc.Chapters[e.chapterIdx].Expandable() {
		return c
	}
	c.collapsed[e.chapterIdx] = !c.collapsed[e.chapterIdx]
	return c
}

// activateAtCursor resolves the selected entry into a navigation
// request. An expandable chapter toggles instead; a clickable chapter
// navigates to its first section, carrying that section's id and the
// chapter's id.
func (c ContentsView) activateAtCursor(entries []contentsEntry) (ContentsView, tea.Cmd) {
	if c.cursor >= len(entries) {
		return c, nil
	}
	e := entries[c.cursor]
	ch := &c.toc.Chapters[e.chapterIdx]

	if e.sectionIdx < 0 {
		if ch.Expandable() {
			return c.toggleAtCursor(entries), nil
		}
		first := ch.FirstSection()
		if first == nil {
			return c, nil
		}
		return c, navigateCmd(first.Page, first.ID, ch.ID)
	}

	sec := &ch.Sections[e.sectionIdx]
	return c, navigateCmd(sec.Page, sec.ID, ch.ID)
}

func navigateCmd(page int, sectionID, chapterID string) tea.Cmd {
	return func() tea.Msg {
		return model.NavigationMsg{Page: page, SectionID: sectionID, ChapterID: chapterID}
	}
}

// View renders the pane at the given width and height. A collapsed
// sidebar shows chapter numbers only.
func (c *ContentsView) View(width, height int, collapsed bool, pos model.Position, focused bool) string {
	if c.toc == nil || width <= 0 {
		return ""
	}

	var lines []string
	title := "Contents"
	if collapsed {
		title = "C"
	}
	lines = append(lines, TitleStyle.Render(runewidth.Truncate(title, width, "")))

	if c.filterMode && !collapsed {
		lines = append(lines, c.filterInput.View())
	}

	if collapsed {
		for ci := range c.toc.Chapters {
			label := fmt.Sprintf("%d", ci+1)
			if c.chapterIsCurrent(ci, pos) {
				label = SelectedStyle.Render(label)
			} else {
				label = DimStyle.Render(label)
			}
			lines = append(lines, label)
		}
		return pad(strings.Join(lines, "\n"), width, height)
	}

	entries := c.entries()
	for i, e := range entries {
		lines = append(lines, c.renderEntry(e, width, i == c.cursor && focused, pos))
		if len(lines) >= height {
			break
		}
	}
	if len(entries) == 0 {
		lines = append(lines, DimStyle.Render("No matches"))
	}

	return pad(strings.Join(lines, "\n"), width, height)
}

func (c *ContentsView) renderEntry(e contentsEntry, width int, selected bool, pos model.Position) string {
	ch := &c.toc.Chapters[e.chapterIdx]

	var label string
	current := false
	if e.sectionIdx < 0 {
		marker := "  "
		if ch.Expandable() {
			if c.collapsed[e.chapterIdx] {
				marker = "▸ "
			} else {
				marker = "▾ "
			}
		}
		label = marker + ch.Title
		current = c.chapterIsCurrent(e.chapterIdx, pos)
	} else {
		sec := &ch.Sections[e.sectionIdx]
		label = fmt.Sprintf("    %s · p%d", sec.Title, sec.Page)
		current = sec.Page == pos.Page
	}

	label = runewidth.Truncate(label, width, "…")

	switch {
	case selected:
		return SelectedStyle.Render(label)
	case current:
		return HighlightStyle.Render(label)
	case e.sectionIdx < 0:
		return TitleStyle.Render(label)
	default:
		return label
	}
}

// chapterIsCurrent checks the chapter's own anchor page, exact match
func (c *ContentsView) chapterIsCurrent(chapterIdx int, pos model.Position) bool {
	first := c.toc.Chapters[chapterIdx].FirstSection()
	return first != nil && first.Page == pos.Page
}

// pad fits a block into width x height, truncating extra lines
func pad(content string, width, height int) string {
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	style := lipgloss.NewStyle().Width(width).MaxWidth(width)
	for i, line := range lines {
		lines[i] = style.Render(line)
	}
	return strings.Join(lines, "\n")
}
