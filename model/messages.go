package model

// Typed events routed through the bubbletea update loop. Panes emit
// these instead of calling into each other directly.

type StudyDataLoadedMsg struct {
	Data *StudyData
	Err  error
}

type HistoryLoadedMsg struct {
	Turns []HistoryTurn
	Err   error
}

// NavigationMsg is a request to move the reading position, emitted by
// the contents pane or the document pane. Only the root orchestrator
// applies it.
type NavigationMsg struct {
	Page      int
	SectionID string
	ChapterID string
}

// HighlightQuoteMsg routes a selection into the compose box as quoted
// context.
type HighlightQuoteMsg struct {
	Event HighlightEvent
}

// HighlightToolMsg requests immediate generation of a named tool from a
// selection, bypassing manual compose.
type HighlightToolMsg struct {
	Event HighlightEvent
}

type ChatReplyMsg struct {
	UserMessageID string
	Reply         *ChatReply
	Err           error
}

type ToolContentMsg struct {
	MessageID string
	ToolID    string
	Payload   *ToolPayload
	Err       error
}

type TranscriptionMsg struct {
	Text string
	Err  error
}

type RecordTickMsg struct{}

type PositionRecordedMsg struct {
	Err error
}

type MarkdownRenderedMsg struct {
	MessageIndex int
	Rendered     string
}

type NoticeExpiredMsg struct {
	Seq int
}
