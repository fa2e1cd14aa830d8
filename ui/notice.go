package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"folio/model"
)

const noticeDuration = 3 * time.Second

type noticeLevel int

const (
	noticeInfo noticeLevel = iota
	noticeWarn
	noticeError
)

// notice is a transient non-blocking notification shown in the status
// line. The sequence number keeps a stale expiry tick from clearing a
// newer notice.
type notice struct {
	text  string
	level noticeLevel
	seq   int
}

func (n *notice) active() bool {
	return n.text != ""
}

// show replaces the current notice and returns the expiry tick command
func (n *notice) show(text string, level noticeLevel) tea.Cmd {
	n.text = text
	n.level = level
	n.seq++
	seq := n.seq
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return model.NoticeExpiredMsg{Seq: seq}
	})
}

// expire clears the notice if the tick matches the current sequence
func (n *notice) expire(msg model.NoticeExpiredMsg) {
	if msg.Seq == n.seq {
		n.text = ""
	}
}

func (n *notice) render() string {
	if !n.active() {
		return ""
	}
	style := DimStyle
	switch n.level {
	case noticeWarn:
		style = lipgloss.NewStyle().Foreground(warningColor)
	case noticeError:
		style = lipgloss.NewStyle().Foreground(dangerColor).Bold(true)
	}
	return style.Render(n.text)
}
