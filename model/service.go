package model

import (
	"context"
	"time"
)

// Note: service interfaces live in the model package so that both the
// service implementations and the UI can depend on them without import
// cycles. The service package implements these.

// StudyData is everything a reading session starts from
type StudyData struct {
	Title         string
	Author        string
	ChatSessionID string
	TOC           *TableOfContents // optional; nil disables the contents pane
	LastRead      Position
	Pages         []string // markdown source per page, Pages[0] is page 1
}

// PageContent returns the markdown for a 1-based page number.
// Pages beyond the supplied content render as an empty-state.
func (d *StudyData) PageContent(page int) (string, bool) {
	if d == nil || page < 1 || page > len(d.Pages) {
		return "", false
	}
	return d.Pages[page-1], true
}

// HistoryTurn is a prior chat turn supplied by the history service.
// Turns with a ToolResponseID but no inline payload are resolved lazily.
type HistoryTurn struct {
	ID             string
	Role           string
	Text           string
	ModelID        string
	ToolResponseID string
	ToolType       ToolType
	Timestamp      time.Time
}

// ChatReply is the assistant's answer to a send, with an optional
// generated tool artifact.
type ChatReply struct {
	Text string
	Tool *ToolRef
}

// AudioClip is a captured voice recording handed to transcription.
// Capture itself is stubbed; only the duration is meaningful.
type AudioClip struct {
	Duration time.Duration
}

// StudyService supplies the session's study data
type StudyService interface {
	LoadStudyData(ctx context.Context) (*StudyData, error)
}

// ChatHistoryService supplies prior turns for a chat session
type ChatHistoryService interface {
	History(ctx context.Context, sessionID string) ([]HistoryTurn, error)
}

// ToolGenerator produces an assistant reply, optionally with a tool
// artifact, from a prompt and an optional highlighted snippet.
type ToolGenerator interface {
	Generate(ctx context.Context, prompt string, highlight *HighlightSnapshot, tool ToolType) (*ChatReply, error)
}

// ToolContentService resolves a tool artifact's content by id
type ToolContentService interface {
	FetchTool(ctx context.Context, id string) (*ToolPayload, error)
}

// TranscriptionService turns a captured clip into text
type TranscriptionService interface {
	Transcribe(ctx context.Context, clip AudioClip) (string, error)
}

// PositionSink receives every navigation, fire-and-forget. The core
// never reads positions back within a session.
type PositionSink interface {
	RecordPosition(page int, sectionID, chapterID string) error
}

// Services bundles all external collaborators of the core
type Services struct {
	Study       StudyService
	History     ChatHistoryService
	Chat        ToolGenerator
	Tools       ToolContentService
	Transcriber TranscriptionService
	Positions   PositionSink
}
