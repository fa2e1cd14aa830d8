// Package testutil provides configurable fakes for the model's service
// interfaces, for use in unit tests.
package testutil

import (
	"context"
	"sync"

	"folio/model"
)

// FakeChat implements model.ToolGenerator with a pluggable function
type FakeChat struct {
	GenerateFunc func(ctx context.Context, prompt string, highlight *model.HighlightSnapshot, tool model.ToolType) (*model.ChatReply, error)
	Calls        int
}

func (f *FakeChat) Generate(ctx context.Context, prompt string, highlight *model.HighlightSnapshot, tool model.ToolType) (*model.ChatReply, error) {
	f.Calls++
	if f.GenerateFunc != nil {
		return f.GenerateFunc(ctx, prompt, highlight, tool)
	}
	return &model.ChatReply{Text: "fake reply"}, nil
}

// FakeTools implements model.ToolContentService backed by a map
type FakeTools struct {
	Payloads map[string]*model.ToolPayload
	Err      error
	Calls    int
}

func (f *FakeTools) FetchTool(ctx context.Context, id string) (*model.ToolPayload, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Payloads[id], nil
}

// FakeStudy implements model.StudyService returning fixed data
type FakeStudy struct {
	Data *model.StudyData
	Err  error
}

func (f *FakeStudy) LoadStudyData(ctx context.Context) (*model.StudyData, error) {
	return f.Data, f.Err
}

// FakeHistory implements model.ChatHistoryService returning fixed turns
type FakeHistory struct {
	Turns []model.HistoryTurn
	Err   error
}

func (f *FakeHistory) History(ctx context.Context, sessionID string) ([]model.HistoryTurn, error) {
	return f.Turns, f.Err
}

// FakeTranscriber implements model.TranscriptionService
type FakeTranscriber struct {
	Text string
	Err  error
}

func (f *FakeTranscriber) Transcribe(ctx context.Context, clip model.AudioClip) (string, error) {
	return f.Text, f.Err
}

// FakePositions records every position it receives
type FakePositions struct {
	mu       sync.Mutex
	Recorded []model.Position
	Err      error
}

func (f *FakePositions) RecordPosition(page int, sectionID, chapterID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Recorded = append(f.Recorded, model.Position{Page: page, SectionID: sectionID, ChapterID: chapterID})
	return f.Err
}

// Count returns how many positions were recorded
func (f *FakePositions) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Recorded)
}

// Last returns the most recently recorded position
func (f *FakePositions) Last() model.Position {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Recorded) == 0 {
		return model.Position{}
	}
	return f.Recorded[len(f.Recorded)-1]
}
