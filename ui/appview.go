package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"folio/config"
	"folio/layout"
	appmodel "folio/model"
)

type pane int

const (
	paneContents pane = iota
	paneDocument
	paneTool
)

// AppView is the root bubbletea model. It owns the three panes, the
// layout controller that splits the window between them, and the
// transient UI state (help, notices, the fatal startup modal).
type AppView struct {
	dataModel *appmodel.Model
	keys      keymap

	lc *layout.Controller

	contents  ContentsView
	document  DocumentView
	toolPanel ToolPanelView

	focus pane

	// Window state
	width  int
	height int
	ready  bool

	// Startup
	loading bool
	initErr error

	showHelp bool

	notice notice
}

func NewAppView(dataModel *appmodel.Model) AppView {
	cfg := dataModel.Config
	keys := newKeymap(dataModel.Keys)

	constants := layout.Constants{
		ContentsCollapsedWidth: cfg.ContentsCollapsedWidth,
		ContentsExpandedWidth:  cfg.ContentsWidth,
		HandleThickness:        1,
		MinToolPanelWidth:      cfg.ToolPanelMinWidth,
		MaxToolPanelFrac:       0.6,
		HiddenDocMargin:        10,
		NarrowBreakpoint:       cfg.NarrowBreakpoint,
		NarrowToolPanelWidth:   cfg.ToolPanelWidth,
	}

	a := AppView{
		dataModel: dataModel,
		keys:      keys,
		lc:        layout.NewController(constants, cfg.ToolPanelWidth),
		contents:  NewContentsView(),
		document:  NewDocumentView(),
		toolPanel: NewToolPanelView(dataModel, keys),
		focus:     paneDocument,
		loading:   true,
	}
	return a
}

func (a AppView) Init() tea.Cmd {
	return tea.Batch(
		a.dataModel.LoadStudyData(),
		a.toolPanel.loadingSpinner.Tick,
	)
}

func (a *AppView) hasTOC() bool {
	return a.dataModel.Study != nil && a.dataModel.Study.TOC != nil &&
		len(a.dataModel.Study.TOC.Chapters) > 0
}

func (a *AppView) paneHeight() int {
	h := a.height - 2 // title bar + status bar
	if h < 1 {
		h = 1
	}
	return h
}

// applySizes pushes the derived pane geometry into the pane views.
// Called after any change that moves a pane boundary.
func (a *AppView) applySizes() {
	if a.width == 0 {
		return
	}
	h := a.paneHeight()
	if a.lc.State.Narrow {
		if a.lc.State.DocumentHidden {
			a.toolPanel.SetSize(a.width, h)
		} else {
			// One row goes to the separator between the stacked panes
			docH := h / 2
			toolH := h - docH - 1
			if toolH < 1 {
				toolH = 1
			}
			a.document.SetSize(a.width, docH)
			a.toolPanel.SetSize(a.width, toolH)
		}
	} else {
		a.document.SetSize(a.lc.DocumentWidth(a.width, a.hasTOC()), h)
		a.toolPanel.SetSize(a.lc.ToolPanelWidth(a.width, a.hasTOC()), h)
	}
	a.syncDocument()
}

// syncDocument re-renders the current page into the document pane
func (a *AppView) syncDocument() {
	study := a.dataModel.Study
	if study == nil {
		return
	}
	page := a.dataModel.Position.Page
	content, ok := study.PageContent(page)
	if !ok {
		content = "_This page is not available._"
	}
	title := study.Title
	if sec, _, ok := study.TOC.SectionForPage(page); ok {
		title = sec.Title
	}
	a.document.SetPage(page, a.dataModel.TotalPages(), title, content)
}

// cycleFocus moves keyboard focus to the next visible pane
func (a *AppView) cycleFocus() tea.Cmd {
	order := []pane{paneContents, paneDocument, paneTool}
	visible := func(p pane) bool {
		switch p {
		case paneContents:
			return !a.lc.State.Narrow && a.lc.ContentsWidth(a.hasTOC()) > 0 &&
				!a.lc.State.ContentsCollapsed
		case paneDocument:
			return !a.lc.State.DocumentHidden
		default:
			return true
		}
	}

	start := 0
	for i, p := range order {
		if p == a.focus {
			start = i
			break
		}
	}
	for i := 1; i <= len(order); i++ {
		next := order[(start+i)%len(order)]
		if visible(next) {
			a.focus = next
			break
		}
	}

	if a.focus == paneTool {
		return a.toolPanel.Focus()
	}
	a.toolPanel.Blur()
	return nil
}

func (a AppView) View() string {
	if !a.ready {
		return "Initializing..."
	}

	if a.initErr != nil {
		return a.renderFatalModal()
	}

	if a.loading {
		body := a.toolPanel.loadingSpinner.View() + " Opening document..."
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, body)
	}

	if a.showHelp {
		return a.renderHelpModal(a.width, a.height)
	}

	if a.toolPanel.overlayOpen {
		return a.renderToolOverlay(a.width, a.height)
	}

	var body string
	if a.lc.State.Narrow {
		if a.lc.State.DocumentHidden {
			body = a.toolPanel.View(a.focus == paneTool)
		} else {
			body = lipgloss.JoinVertical(lipgloss.Left,
				a.document.View(),
				strings.Repeat("─", a.width),
				a.toolPanel.View(a.focus == paneTool),
			)
		}
	} else {
		var columns []string

		if cw := a.lc.ContentsWidth(a.hasTOC()); cw > 0 {
			columns = append(columns,
				a.contents.View(cw, a.paneHeight(), a.lc.State.ContentsCollapsed,
					a.dataModel.Position, a.focus == paneContents))
		}

		if !a.lc.State.DocumentHidden {
			columns = append(columns, a.document.View())
		}

		columns = append(columns, a.renderHandle())
		columns = append(columns, a.toolPanel.View(a.focus == paneTool))

		body = lipgloss.JoinHorizontal(lipgloss.Top, columns...)
	}

	return a.renderTitleBar() + "\n" + body + "\n" + a.renderStatusBar()
}

// renderHandle draws the drag handle between document and tool panel
func (a *AppView) renderHandle() string {
	ch := "│"
	style := BorderStyle
	if a.lc.State.Resizing {
		ch = "┃"
		style = FocusedBorderStyle
	}
	lines := make([]string, a.paneHeight())
	for i := range lines {
		lines[i] = ch
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (a *AppView) renderTitleBar() string {
	title := "Folio"
	if a.dataModel.Study != nil {
		title = a.dataModel.Study.Title
		if a.dataModel.Study.Author != "" {
			title += DimStyle.Render(" · " + a.dataModel.Study.Author)
		}
	}
	page := fmt.Sprintf("p. %d/%d", a.dataModel.Position.Page, a.dataModel.TotalPages())
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(page)
	if gap < 1 {
		gap = 1
	}
	return TitleStyle.Render(title) + strings.Repeat(" ", gap) + StatusStyle.Render(page)
}

func (a *AppView) renderStatusBar() string {
	if a.notice.active() {
		return a.notice.render()
	}
	if a.document.Selecting() {
		return FormatFooter(
			a.keys.display("copy_selection"), "Copy",
			a.keys.display("quote_selection"), "Quote",
			a.keys.display("selection_flashcards"), "Flashcards",
			a.keys.display("selection_quiz"), "Quiz",
			"Esc", "Cancel",
		)
	}
	return FormatFooter(
		a.keys.display("focus_next_pane"), "Focus",
		a.keys.display("toggle_contents"), "Contents",
		a.keys.display("help"), "Help",
		a.keys.display("quit"), "Quit",
	)
}

// renderFatalModal blocks the UI when the document could not be opened
func (a *AppView) renderFatalModal() string {
	modalWidth := 60
	if a.width < modalWidth+10 {
		modalWidth = a.width - 10
	}
	if modalWidth < 20 {
		modalWidth = 20
	}

	titleSection := lipgloss.NewStyle().
		Bold(true).
		Foreground(dangerColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		Render("Could Not Open Document")

	msg := a.initErr.Error()
	if config.DebugLog != nil {
		config.DebugLog.Printf("Fatal init error: %v", a.initErr)
	}

	messageSection := lipgloss.NewStyle().
		Width(modalWidth).
		Align(lipgloss.Center).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Padding(1, 0).
		Render(msg)

	footerSection := lipgloss.NewStyle().
		Foreground(dimColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render("Press r to retry, q to quit")

	content := strings.Join([]string{titleSection, messageSection, footerSection}, "\n")
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}
