package ui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"folio/model"
)

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// documentHeaderRows is the title line above the viewport
const documentHeaderRows = 1

// copyResultMsg reports the outcome of a clipboard write
type copyResultMsg struct {
	err error
}

// DocumentView renders the current page's markdown and supports
// line-wise text selection, feeding highlights to the tool panel.
type DocumentView struct {
	vp viewport.Model

	page       int
	totalPages int
	title      string
	source     string // raw markdown, re-rendered when selection clears

	plainLines []string // rendered page stripped of ANSI, for highlights

	// Selection mode. The anchor stays put while the cursor extends the
	// range; both are line indices into plainLines.
	selecting bool
	selAnchor int
	selCursor int

	// Mouse drag selection, active only between press and release
	mouseSelecting bool

	width  int
	height int
}

func NewDocumentView() DocumentView {
	return DocumentView{vp: viewport.New(0, 0)}
}

// SetSize resizes the pane; the viewport loses the header row
func (d *DocumentView) SetSize(width, height int) {
	d.width = width
	d.vp.Width = width
	h := height - documentHeaderRows
	if h < 1 {
		h = 1
	}
	d.vp.Height = h
	d.height = height
}

// SetPage installs a page's markdown. Selection is discarded: the
// highlight event is ephemeral and dies with the page.
func (d *DocumentView) SetPage(page, totalPages int, title, content string) {
	d.page = page
	d.totalPages = totalPages
	d.title = title
	d.source = content
	d.selecting = false
	d.mouseSelecting = false

	if content == "" {
		d.plainLines = nil
		d.vp.SetContent(DimStyle.Render("This page has no content."))
		d.vp.GotoTop()
		return
	}

	rendered := renderMarkdown(content, d.width-2)
	d.plainLines = strings.Split(stripANSI(rendered), "\n")
	d.vp.SetContent(rendered)
	d.vp.GotoTop()
}

// Page returns the page currently shown
func (d *DocumentView) Page() int {
	return d.page
}

// Selecting reports whether selection mode is active
func (d *DocumentView) Selecting() bool {
	return d.selecting
}

// Update handles key input while the document pane is focused
func (d DocumentView) Update(msg tea.KeyMsg, keys keymap) (DocumentView, tea.Cmd) {
	if d.selecting {
		return d.updateSelection(msg, keys)
	}

	switch msg.String() {
	case keys.get("next_page"):
		if d.page < d.totalPages {
			return d, navigateCmd(d.page+1, "", "")
		}
		return d, nil
	case keys.get("prev_page"):
		if d.page > 1 {
			return d, navigateCmd(d.page-1, "", "")
		}
		return d, nil
	case keys.get("select_mode"):
		d.selecting = true
		d.selAnchor = d.vp.YOffset
		d.selCursor = d.selAnchor
		d.refreshSelection()
		return d, nil
	}

	var cmd tea.Cmd
	d.vp, cmd = d.vp.Update(msg)
	return d, cmd
}

func (d DocumentView) updateSelection(msg tea.KeyMsg, keys keymap) (DocumentView, tea.Cmd) {
	switch msg.String() {
	case "esc":
		d.clearSelection()
		return d, nil
	case "j", "down":
		if d.selCursor < len(d.plainLines)-1 {
			d.selCursor++
			d.scrollSelectionIntoView()
			d.refreshSelection()
		}
		return d, nil
	case "k", "up":
		if d.selCursor > 0 {
			d.selCursor--
			d.scrollSelectionIntoView()
			d.refreshSelection()
		}
		return d, nil
	case keys.get("copy_selection"):
		text := d.selectionText()
		d.clearSelection()
		return d, copySelectionCmd(text)
	case keys.get("quote_selection"):
		ev := d.highlightEvent(model.ToolAsk)
		d.clearSelection()
		return d, func() tea.Msg { return model.HighlightQuoteMsg{Event: ev} }
	case keys.get("selection_flashcards"):
		return d.emitTool(model.ToolFlashcard)
	case keys.get("selection_quiz"):
		return d.emitTool(model.ToolQuiz)
	case keys.get("selection_diagram"):
		return d.emitTool(model.ToolDiagram)
	case keys.get("selection_game"):
		return d.emitTool(model.ToolGame)
	}
	return d, nil
}

func (d DocumentView) emitTool(tool model.ToolType) (DocumentView, tea.Cmd) {
	ev := d.highlightEvent(tool)
	d.clearSelection()
	return d, func() tea.Msg { return model.HighlightToolMsg{Event: ev} }
}

// HandleMouse processes pane-relative mouse events. A left press
// anchors a drag selection, motion extends it, release anywhere ends
// it — ending on any release is deliberate, so a drag can never get
// stuck. Branches on Action: while the button is held the terminal
// reports motion events that still carry the button, so the anchor
// must only ever move on a press.
func (d DocumentView) HandleMouse(msg tea.MouseMsg) (DocumentView, bool) {
	line, onContent := d.lineForMouse(msg)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !onContent {
			return d, false
		}
		d.selecting = true
		d.mouseSelecting = true
		d.selAnchor = line
		d.selCursor = line
		d.refreshSelection()
		return d, true
	case tea.MouseActionMotion:
		if !d.mouseSelecting || !onContent {
			return d, false
		}
		if line != d.selCursor {
			d.selCursor = line
			d.refreshSelection()
		}
		return d, true
	case tea.MouseActionRelease:
		if !d.mouseSelecting {
			return d, false
		}
		if onContent {
			d.selCursor = line
		}
		d.mouseSelecting = false
		d.refreshSelection()
		return d, true
	}
	return d, false
}

func (d *DocumentView) lineForMouse(msg tea.MouseMsg) (int, bool) {
	if d.vp.Height <= 0 {
		return 0, false
	}
	if msg.Y < documentHeaderRows || msg.Y >= documentHeaderRows+d.vp.Height {
		return 0, false
	}
	line := d.vp.YOffset + (msg.Y - documentHeaderRows)
	if line < 0 || line >= len(d.plainLines) {
		return 0, false
	}
	return line, true
}

func (d *DocumentView) selectionBounds() (int, int) {
	start, end := d.selAnchor, d.selCursor
	if start > end {
		start, end = end, start
	}
	return start, end
}

func (d *DocumentView) selectionText() string {
	start, end := d.selectionBounds()
	if start < 0 || end >= len(d.plainLines) {
		return ""
	}
	return strings.TrimSpace(strings.Join(d.plainLines[start:end+1], "\n"))
}

// highlightEvent packages the selection with two lines of surrounding
// context on each side.
func (d *DocumentView) highlightEvent(tool model.ToolType) model.HighlightEvent {
	start, end := d.selectionBounds()
	ctxStart := start - 2
	if ctxStart < 0 {
		ctxStart = 0
	}
	ctxEnd := end + 2
	if ctxEnd > len(d.plainLines)-1 {
		ctxEnd = len(d.plainLines) - 1
	}
	context := ""
	if ctxStart <= ctxEnd && ctxEnd < len(d.plainLines) {
		context = strings.TrimSpace(strings.Join(d.plainLines[ctxStart:ctxEnd+1], "\n"))
	}
	return model.HighlightEvent{
		Text:    d.selectionText(),
		Context: context,
		Tool:    tool,
	}
}

func (d *DocumentView) clearSelection() {
	d.selecting = false
	d.mouseSelecting = false
	d.refreshSelection()
}

func (d *DocumentView) scrollSelectionIntoView() {
	if d.selCursor < d.vp.YOffset {
		d.vp.SetYOffset(d.selCursor)
	}
	if d.selCursor >= d.vp.YOffset+d.vp.Height {
		d.vp.SetYOffset(d.selCursor - d.vp.Height + 1)
	}
}

// refreshSelection re-renders the viewport content with the selected
// lines styled.
func (d *DocumentView) refreshSelection() {
	if len(d.plainLines) == 0 {
		return
	}
	if !d.selecting {
		if d.source != "" {
			d.vp.SetContent(renderMarkdown(d.source, d.width-2))
		}
		return
	}

	start, end := d.selectionBounds()
	lines := make([]string, len(d.plainLines))
	for i, line := range d.plainLines {
		if i >= start && i <= end {
			lines[i] = SelectionStyle.Render("▌" + line)
		} else {
			lines[i] = " " + line
		}
	}
	d.vp.SetContent(strings.Join(lines, "\n"))
}

func copySelectionCmd(text string) tea.Cmd {
	return func() tea.Msg {
		if text == "" {
			return copyResultMsg{err: fmt.Errorf("nothing selected")}
		}
		return copyResultMsg{err: clipboard.WriteAll(text)}
	}
}

// View renders the page header and viewport
func (d *DocumentView) View() string {
	header := TitleStyle.Render(d.title) +
		DimStyle.Render(fmt.Sprintf("  ·  page %d/%d", d.page, d.totalPages))
	if d.selecting {
		header += HighlightStyle.Render("  [select]")
	}
	return header + "\n" + d.vp.View()
}
