package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"folio/config"
	appmodel "folio/model"
)

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	// Keep the spinner animated while anything is waiting on a service
	if _, ok := msg.(spinner.TickMsg); ok {
		if a.loading || a.dataModel.Pending || a.toolPanel.waitTranscript ||
			(a.toolPanel.overlayOpen && a.dataModel.ToolFetchInFlight(a.toolPanel.overlayMsgID)) {
			a.toolPanel.loadingSpinner, cmd = a.toolPanel.loadingSpinner.Update(msg)
			a.toolPanel.refresh(false)
			return a, cmd
		}
		return a, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.lc.ApplyViewport(msg.Width)
		if a.lc.State.Narrow && a.focus == paneContents {
			cmds = append(cmds, a.cycleFocus())
		}
		a.applySizes()
		a.toolPanel.refresh(false)
		return a, tea.Batch(cmds...)

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case appmodel.StudyDataLoadedMsg:
		return a.handleStudyDataLoaded(msg)

	case appmodel.HistoryLoadedMsg:
		return a.handleHistoryLoaded(msg)

	case appmodel.MarkdownRenderedMsg:
		if msg.MessageIndex >= 0 && msg.MessageIndex < len(a.dataModel.Messages) {
			a.dataModel.Messages[msg.MessageIndex].Rendered = msg.Rendered
			a.toolPanel.refresh(true)
		}
		return a, nil

	case appmodel.NavigationMsg:
		return a.handleNavigation(msg)

	case appmodel.HighlightQuoteMsg:
		a.toolPanel.QuoteHighlight(msg.Event)
		a.focus = paneTool
		cmds = append(cmds, a.toolPanel.Focus())
		cmds = append(cmds, a.notice.show("Selection quoted in chat", noticeInfo))
		return a, tea.Batch(cmds...)

	case appmodel.HighlightToolMsg:
		sendCmd := a.toolPanel.SendForHighlight(msg.Event)
		if sendCmd == nil {
			return a, a.notice.show("A request is already in progress", noticeWarn)
		}
		a.focus = paneTool
		cmds = append(cmds, a.toolPanel.Focus(), sendCmd)
		return a, tea.Batch(cmds...)

	case appmodel.ChatReplyMsg:
		if err := a.dataModel.CompleteSend(msg); err != nil {
			a.toolPanel.refresh(true)
			return a, a.notice.show(fmt.Sprintf("Request failed: %v", err), noticeError)
		}
		a.toolPanel.refresh(true)
		return a, nil

	case appmodel.ToolContentMsg:
		if err := a.dataModel.CompleteToolFetch(msg); err != nil {
			a.toolPanel.CloseOverlay()
			a.toolPanel.refresh(false)
			return a, a.notice.show(fmt.Sprintf("Could not load tool: %v", err), noticeError)
		}
		a.toolPanel.refresh(false)
		return a, nil

	case appmodel.TranscriptionMsg:
		if err := a.toolPanel.HandleTranscription(msg); err != nil {
			return a, a.notice.show(err.Error(), noticeWarn)
		}
		return a, nil

	case appmodel.RecordTickMsg:
		return a, a.toolPanel.HandleRecordTick()

	case appmodel.PositionRecordedMsg:
		// Reading-position persistence is best effort
		if msg.Err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("Position record failed: %v", msg.Err)
		}
		return a, nil

	case appmodel.NoticeExpiredMsg:
		a.notice.expire(msg)
		return a, nil

	case copyResultMsg:
		if msg.err != nil {
			return a, a.notice.show(fmt.Sprintf("Copy failed: %v", msg.err), noticeError)
		}
		return a, a.notice.show("Copied to clipboard", noticeInfo)
	}

	// Component housekeeping messages (cursor blink and the like)
	a.toolPanel.textarea, cmd = a.toolPanel.textarea.Update(msg)
	return a, cmd
}

func (a AppView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	keyStr := msg.String()

	if keyStr == "ctrl+c" {
		a.dataModel.Quitting = true
		return a, tea.Quit
	}

	// Fatal startup modal: only retry or quit
	if a.initErr != nil {
		switch keyStr {
		case "r":
			a.initErr = nil
			a.loading = true
			return a, tea.Batch(a.dataModel.LoadStudyData(), a.toolPanel.loadingSpinner.Tick)
		case "q", "esc":
			a.dataModel.Quitting = true
			return a, tea.Quit
		}
		return a, nil
	}

	if a.loading {
		return a, nil
	}

	if a.showHelp {
		switch keyStr {
		case a.keys.get("help"), "esc", "?", "q":
			a.showHelp = false
		}
		return a, nil
	}

	switch keyStr {
	case a.keys.get("quit"):
		a.dataModel.Quitting = true
		return a, tea.Quit

	case a.keys.get("help"), "?":
		// "?" only opens help when the compose box is not capturing text
		if keyStr == "?" && a.focus == paneTool {
			break
		}
		a.showHelp = true
		return a, nil

	case a.keys.get("toggle_contents"):
		a.lc.ToggleContents(a.width)
		if a.focus == paneContents && a.lc.ContentsWidth(a.hasTOC()) == 0 {
			cmds = append(cmds, a.cycleFocus())
		}
		a.applySizes()
		return a, tea.Batch(cmds...)

	case a.keys.get("hide_document"):
		a.lc.SetDocumentHidden(!a.lc.State.DocumentHidden, a.width)
		if a.focus == paneDocument && a.lc.State.DocumentHidden {
			cmds = append(cmds, a.cycleFocus())
		}
		a.applySizes()
		return a, tea.Batch(cmds...)

	case a.keys.get("focus_next_pane"):
		cmds = append(cmds, a.cycleFocus())
		return a, tea.Batch(cmds...)

	case a.keys.get("grow_tool_panel"):
		a.lc.ResizeBy(a.width, 2)
		a.applySizes()
		return a, nil

	case a.keys.get("shrink_tool_panel"):
		a.lc.ResizeBy(a.width, -2)
		a.applySizes()
		return a, nil
	}

	var cmd tea.Cmd
	switch a.focus {
	case paneContents:
		a.contents, cmd = a.contents.Update(msg, a.keys)
	case paneDocument:
		a.document, cmd = a.document.Update(msg, a.keys)
	case paneTool:
		a.toolPanel, cmd = a.toolPanel.Update(msg, a.keys)
	}
	return a, cmd
}

// handleMouse routes pointer events: the resize drag takes priority,
// then the drag handle, then the pane under the pointer. A release
// anywhere ends an active resize, even outside the handle. Routing
// branches on Action/Button, not the legacy Type field: with cell
// motion enabled, motion while the button is held reports the button,
// so Type conflates a drag with the press that started it.
func (a AppView) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.initErr != nil || a.loading || a.showHelp || a.toolPanel.overlayOpen {
		return a, nil
	}

	if a.lc.State.Resizing {
		switch msg.Action {
		case tea.MouseActionMotion:
			a.lc.DragTo(a.width, msg.X)
			a.applySizes()
		case tea.MouseActionRelease:
			a.lc.EndResize()
			a.applySizes()
		}
		return a, nil
	}

	hasTOC := a.hasTOC()
	leftPress := msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft

	if leftPress && a.lc.OverHandle(a.width, hasTOC, msg.X) {
		a.lc.BeginResize()
		return a, nil
	}

	// Wheel scrolls whichever pane the pointer is over
	if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
		if a.overDocument(msg.X, msg.Y) {
			if msg.Button == tea.MouseButtonWheelUp {
				a.document.vp.LineUp(3)
			} else {
				a.document.vp.LineDown(3)
			}
		} else if a.overToolPanel(msg.X, msg.Y) {
			if msg.Button == tea.MouseButtonWheelUp {
				a.toolPanel.vp.LineUp(3)
			} else {
				a.toolPanel.vp.LineDown(3)
			}
		}
		return a, nil
	}

	if a.overDocument(msg.X, msg.Y) || (msg.Action == tea.MouseActionRelease && a.document.mouseSelecting) {
		local := msg
		local.X = msg.X - a.documentX()
		local.Y = msg.Y - 1 // title bar row
		var handled bool
		a.document, handled = a.document.HandleMouse(local)
		if handled && leftPress {
			a.focus = paneDocument
			a.toolPanel.Blur()
		}
	}

	return a, nil
}

// documentX is the left edge of the document pane in window coordinates
func (a *AppView) documentX() int {
	if a.lc.State.Narrow {
		return 0
	}
	return a.lc.ContentsWidth(a.hasTOC())
}

// overDocument reports whether a window coordinate is on the document
// pane. Side-by-side panes split on X; stacked narrow panes split on Y.
func (a *AppView) overDocument(x, y int) bool {
	if a.lc.State.DocumentHidden {
		return false
	}
	if a.lc.State.Narrow {
		return y >= 1 && y < 1+a.document.height
	}
	left := a.documentX()
	return x >= left && x < left+a.lc.DocumentWidth(a.width, a.hasTOC())
}

func (a *AppView) overToolPanel(x, y int) bool {
	if a.lc.State.Narrow {
		return y >= 1 && y < a.height-1 && !a.overDocument(x, y)
	}
	return x >= a.width-a.lc.ToolPanelWidth(a.width, a.hasTOC())
}

func (a AppView) handleStudyDataLoaded(msg appmodel.StudyDataLoadedMsg) (tea.Model, tea.Cmd) {
	a.loading = false
	if msg.Err != nil {
		a.initErr = msg.Err
		return a, nil
	}
	a.initErr = nil
	a.dataModel.ApplyStudyData(msg.Data)
	a.contents.SetTOC(msg.Data.TOC)
	a.applySizes()
	return a, a.dataModel.LoadHistory()
}

func (a AppView) handleHistoryLoaded(msg appmodel.HistoryLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		return a, a.notice.show("Could not load chat history", noticeWarn)
	}
	a.dataModel.SeedHistory(msg.Turns)

	// History markdown renders off the update loop so a long
	// conversation does not stall first paint
	var cmds []tea.Cmd
	if a.dataModel.NeedsInitialRender {
		a.dataModel.NeedsInitialRender = false
		for i := range a.dataModel.Messages {
			m := &a.dataModel.Messages[i]
			if m.Role == "assistant" {
				cmds = append(cmds, renderMessageMarkdownAsync(i, m.Content, a.toolPanel.vp.Width-2))
			} else {
				m.Rendered = m.Content
			}
		}
	}
	a.toolPanel.refresh(true)
	return a, tea.Batch(cmds...)
}

func (a AppView) handleNavigation(msg appmodel.NavigationMsg) (tea.Model, tea.Cmd) {
	changed := a.dataModel.NavigateTo(msg.Page, msg.SectionID, msg.ChapterID)
	noticeCmd := a.notice.show(
		fmt.Sprintf("Page %d of %d", a.dataModel.Position.Page, a.dataModel.TotalPages()),
		noticeInfo)
	if !changed {
		return a, noticeCmd
	}
	a.syncDocument()
	return a, tea.Batch(noticeCmd, a.dataModel.RecordPosition())
}
