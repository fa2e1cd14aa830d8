package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"folio/model"
)

// ToolPanelView owns the chat surface: message history, compose box,
// voice capture and the tool overlay. The message list itself lives on
// the shared data model; this view is the only writer through it.
type ToolPanelView struct {
	dataModel *model.Model

	vp       viewport.Model
	textarea textarea.Model

	loadingSpinner spinner.Model

	// Voice capture: Idle <-> Recording, with a once-per-second
	// elapsed tick while recording.
	recording      bool
	recordSeconds  int
	waitTranscript bool

	// Quoted highlight attached to the next send
	pendingQuote *model.HighlightSnapshot

	// Tool overlay
	overlayOpen  bool
	overlayMsgID string

	width  int
	height int
}

func NewToolPanelView(dataModel *model.Model, kb keymap) ToolPanelView {
	ta := textarea.New()
	ta.Placeholder = "Ask about what you are reading..."
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.SetWidth(40)

	// Enter sends; newline needs the modifier
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys(kb.get("insert_newline")))

	ta.SetPromptFunc(2, func(lineIdx int) string {
		if lineIdx == 0 {
			return "> "
		}
		return "| "
	})

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return ToolPanelView{
		dataModel:      dataModel,
		vp:             viewport.New(0, 0),
		textarea:       ta,
		loadingSpinner: sp,
	}
}

// SetSize reserves rows for the header, compose box and status line
func (t *ToolPanelView) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.textarea.SetWidth(width - 2)
	vpHeight := height - t.textarea.Height() - 3
	if vpHeight < 1 {
		vpHeight = 1
	}
	t.vp.Width = width
	t.vp.Height = vpHeight
	t.refresh(false)
}

// Focus gives the compose box keyboard focus
func (t *ToolPanelView) Focus() tea.Cmd {
	t.textarea.Focus()
	return textarea.Blink
}

// Blur removes compose focus
func (t *ToolPanelView) Blur() {
	t.textarea.Blur()
}

// QuoteHighlight routes a document selection into the compose box as
// quoted context for the next send.
func (t *ToolPanelView) QuoteHighlight(ev model.HighlightEvent) {
	t.pendingQuote = ev.Snapshot()
}

// send runs the message protocol: append + pending + async request.
// A send while one is outstanding is silently dropped by the model.
func (t *ToolPanelView) send() tea.Cmd {
	text := t.textarea.Value()
	quote := t.pendingQuote
	cmd := t.dataModel.Send(text, quote, model.ToolAsk)
	if cmd == nil {
		return nil
	}
	t.textarea.Reset()
	t.pendingQuote = nil
	t.refresh(true)
	return tea.Batch(cmd, t.loadingSpinner.Tick)
}

// SendForHighlight fires an immediate tool request from a selection,
// synthesizing the user message. Dropped while a send is pending.
func (t *ToolPanelView) SendForHighlight(ev model.HighlightEvent) tea.Cmd {
	cmd := t.dataModel.SendForHighlight(ev)
	if cmd == nil {
		return nil
	}
	t.refresh(true)
	return tea.Batch(cmd, t.loadingSpinner.Tick)
}

// toggleRecording flips the capture state. Stopping hands the clip to
// transcription; the recognized text lands in the compose box.
func (t *ToolPanelView) toggleRecording() tea.Cmd {
	if t.recording {
		t.recording = false
		clip := model.AudioClip{Duration: time.Duration(t.recordSeconds) * time.Second}
		t.waitTranscript = true
		return t.dataModel.Transcribe(clip)
	}
	t.recording = true
	t.recordSeconds = 0
	return recordTick()
}

func recordTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return model.RecordTickMsg{}
	})
}

// HandleRecordTick advances the elapsed counter while recording. The
// tick chain stops as soon as recording does.
func (t *ToolPanelView) HandleRecordTick() tea.Cmd {
	if !t.recording {
		return nil
	}
	t.recordSeconds++
	return recordTick()
}

// HandleTranscription appends recognized text to the compose box
func (t *ToolPanelView) HandleTranscription(msg model.TranscriptionMsg) error {
	t.waitTranscript = false
	if msg.Err != nil {
		return fmt.Errorf("transcription failed: %w", msg.Err)
	}
	current := t.textarea.Value()
	if current != "" && !strings.HasSuffix(current, " ") {
		current += " "
	}
	t.textarea.SetValue(current + msg.Text)
	return nil
}

// openLatestTool opens the overlay for the most recent message carrying
// a tool artifact. When the content is not yet loaded it starts the
// fetch; the model drops duplicate fetches for the same message.
func (t *ToolPanelView) openLatestTool() tea.Cmd {
	for i := len(t.dataModel.Messages) - 1; i >= 0; i-- {
		msg := &t.dataModel.Messages[i]
		if msg.Tool == nil {
			continue
		}
		t.overlayOpen = true
		t.overlayMsgID = msg.ID
		if msg.Tool.Loaded() {
			return nil
		}
		return tea.Batch(t.dataModel.FetchToolContent(msg.ID), t.loadingSpinner.Tick)
	}
	return nil
}

// CloseOverlay dismisses the tool overlay
func (t *ToolPanelView) CloseOverlay() {
	t.overlayOpen = false
	t.overlayMsgID = ""
}

// yankReply copies the last assistant message to the clipboard
func (t *ToolPanelView) yankReply() tea.Cmd {
	last := t.dataModel.LastAssistantMessage()
	if last == nil {
		return func() tea.Msg { return copyResultMsg{err: fmt.Errorf("no reply to copy")} }
	}
	content := last.Content
	return func() tea.Msg {
		return copyResultMsg{err: clipboard.WriteAll(content)}
	}
}

// Update handles key input while the tool panel is focused
func (t ToolPanelView) Update(msg tea.KeyMsg, keys keymap) (ToolPanelView, tea.Cmd) {
	if t.overlayOpen {
		if msg.String() == "esc" {
			t.CloseOverlay()
		}
		return t, nil
	}

	switch msg.String() {
	case keys.get("send"):
		cmd := t.send()
		return t, cmd
	case keys.get("record_toggle"):
		cmd := t.toggleRecording()
		return t, cmd
	case keys.get("open_tool"):
		cmd := t.openLatestTool()
		return t, cmd
	case keys.get("yank_reply"):
		return t, t.yankReply()
	case keys.get("clear_input"):
		t.textarea.Reset()
		t.pendingQuote = nil
		return t, nil
	case "pgup":
		t.vp.HalfViewUp()
		return t, nil
	case "pgdown":
		t.vp.HalfViewDown()
		return t, nil
	}

	var cmd tea.Cmd
	t.textarea, cmd = t.textarea.Update(msg)
	return t, cmd
}

// refresh rebuilds the message viewport from the shared message list.
// Rendered markdown is cached on the message.
func (t *ToolPanelView) refresh(gotoBottom bool) {
	if t.vp.Width <= 0 {
		return
	}
	if len(t.dataModel.Messages) == 0 && !t.dataModel.Pending {
		t.vp.SetContent(DimStyle.Render("No messages yet. Select text in the document or just ask."))
		return
	}

	var content strings.Builder
	for i := range t.dataModel.Messages {
		msg := &t.dataModel.Messages[i]
		if msg.Rendered == "" {
			if msg.Role == "assistant" {
				msg.Rendered = renderMarkdown(msg.Content, t.vp.Width-2)
			} else {
				msg.Rendered = msg.Content
			}
		}
		content.WriteString(t.formatMessage(msg))
	}

	if t.dataModel.Pending {
		content.WriteString(fmt.Sprintf("%s %s\n", t.loadingSpinner.View(), DimStyle.Render("Waiting for response...")))
	}

	t.vp.SetContent(content.String())
	if gotoBottom {
		t.vp.GotoBottom()
	}
}

func (t *ToolPanelView) formatMessage(msg *model.Message) string {
	timestamp := DimStyle.Render(msg.Timestamp.Format("[15:04]"))

	var role string
	switch msg.Role {
	case "user":
		role = UserStyle.Render("You")
	case "assistant":
		role = AssistantStyle.Render("Assistant")
	default:
		role = DimStyle.Render("System")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", timestamp, role)

	if msg.Highlight != nil && msg.Highlight.Text != "" {
		for _, line := range strings.Split(msg.Highlight.Text, "\n") {
			b.WriteString(DimStyle.Render("┃ "+line) + "\n")
		}
	}

	b.WriteString(msg.Rendered)
	if !strings.HasSuffix(msg.Rendered, "\n") {
		b.WriteString("\n")
	}

	if msg.Tool != nil {
		label := fmt.Sprintf("❖ %s", msg.Tool.Type.DisplayName())
		if !msg.Tool.Loaded() {
			label += " (press to load)"
		}
		b.WriteString(HighlightStyle.Render(label) + "\n")
	}

	b.WriteString("\n")
	return b.String()
}

// View renders the panel: header, messages, compose, status
func (t *ToolPanelView) View(focused bool) string {
	header := TitleStyle.Render("Study Tools")
	if t.recording {
		header += lipgloss.NewStyle().Foreground(dangerColor).Bold(true).
			Render(fmt.Sprintf("  ● REC %02d:%02d", t.recordSeconds/60, t.recordSeconds%60))
	} else if t.waitTranscript {
		header += DimStyle.Render("  transcribing...")
	}

	var quoteLine string
	if t.pendingQuote != nil {
		quote := t.pendingQuote.Text
		if len(quote) > 60 {
			quote = quote[:60] + "…"
		}
		quoteLine = DimStyle.Render("Quoting: "+quote) + "\n"
	}

	return header + "\n" + t.vp.View() + "\n" + quoteLine + t.textarea.View()
}
