package service

import (
	"context"
	"testing"
	"time"

	"folio/model"
)

func testOptions() Options {
	return Options{Latency: 0}
}

func TestGeneratePerToolType(t *testing.T) {
	library := newToolLibrary()
	chat := &StubChat{opts: testOptions(), library: library}
	ctx := context.Background()

	source := "The clock condition constrains clocks by causality. Concurrent events receive numbers anyway. Numbers alone cannot recover causality."
	highlight := &model.HighlightSnapshot{Text: source}

	tests := []struct {
		tool  model.ToolType
		check func(t *testing.T, p *model.ToolPayload)
	}{
		{model.ToolFlashcard, func(t *testing.T, p *model.ToolPayload) {
			if len(p.Flashcards) == 0 {
				t.Error("no flashcards generated")
			}
		}},
		{model.ToolQuiz, func(t *testing.T, p *model.ToolPayload) {
			if len(p.Questions) == 0 {
				t.Fatal("no questions generated")
			}
			q := p.Questions[0]
			if q.Answer < 0 || q.Answer >= len(q.Choices) {
				t.Errorf("answer index %d out of range", q.Answer)
			}
		}},
		{model.ToolDiagram, func(t *testing.T, p *model.ToolPayload) {
			if len(p.Diagrams) == 0 {
				t.Error("no diagram generated")
			}
		}},
		{model.ToolGame, func(t *testing.T, p *model.ToolPayload) {
			if p.Game == "" {
				t.Error("no game generated")
			}
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.tool), func(t *testing.T) {
			reply, err := chat.Generate(ctx, "prompt", highlight, tt.tool)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if reply.Tool == nil || !reply.Tool.Loaded() {
				t.Fatal("tool reply must carry a loaded artifact")
			}
			if reply.Tool.Type != tt.tool {
				t.Errorf("tool type = %s, want %s", reply.Tool.Type, tt.tool)
			}
			tt.check(t, reply.Tool.Payload)

			// The artifact must be resolvable by id later
			stored, ok := library.get(reply.Tool.ID)
			if !ok || stored != reply.Tool.Payload {
				t.Error("artifact not stored in the library under its id")
			}
		})
	}
}

func TestGeneratePlainAnswer(t *testing.T) {
	chat := &StubChat{opts: testOptions(), library: newToolLibrary()}

	reply, err := chat.Generate(context.Background(), "What is drift?", nil, model.ToolAsk)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if reply.Tool != nil {
		t.Error("plain answer must not carry a tool artifact")
	}
	if reply.Text == "" {
		t.Error("empty answer text")
	}
}

func TestFetchTool(t *testing.T) {
	library := newToolLibrary()
	tools := &StubTools{opts: testOptions(), library: library}
	ctx := context.Background()

	payload, err := tools.FetchTool(ctx, historyToolID)
	if err != nil {
		t.Fatalf("FetchTool() error = %v", err)
	}
	if len(payload.Flashcards) == 0 {
		t.Error("seeded history artifact has no flashcards")
	}

	if _, err := tools.FetchTool(ctx, "no-such-id"); err == nil {
		t.Error("unknown id must return an error")
	}
}

func TestTranscribeRejectsShortClips(t *testing.T) {
	tr := &StubTranscriber{opts: testOptions()}
	ctx := context.Background()

	if _, err := tr.Transcribe(ctx, model.AudioClip{Duration: 200 * time.Millisecond}); err == nil {
		t.Error("sub-second clip must fail transcription")
	}

	text, err := tr.Transcribe(ctx, model.AudioClip{Duration: 3 * time.Second})
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if text == "" {
		t.Error("empty transcription")
	}
}

func TestGenerateHonorsCancellation(t *testing.T) {
	chat := &StubChat{opts: Options{Latency: time.Minute}, library: newToolLibrary()}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := chat.Generate(ctx, "prompt", nil, model.ToolAsk); err == nil {
		t.Error("cancelled context must abort generation")
	}
}

func TestDemoStudyDataConsistency(t *testing.T) {
	data := demoStudyData()

	if data.TOC.MaxPage() != len(data.Pages) {
		t.Errorf("TOC max page %d != %d pages of content", data.TOC.MaxPage(), len(data.Pages))
	}

	for _, ch := range data.TOC.Chapters {
		for _, sec := range ch.Sections {
			if _, ok := data.PageContent(sec.Page); !ok {
				t.Errorf("section %s anchors page %d with no content", sec.ID, sec.Page)
			}
		}
	}
}

func TestHistorySessionAndLazyToolRef(t *testing.T) {
	hist := &StubHistory{opts: testOptions()}
	ctx := context.Background()

	if _, err := hist.History(ctx, "wrong-session"); err == nil {
		t.Error("unknown session must return an error")
	}

	turns, err := hist.History(ctx, sessionID)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}

	var lazy *model.HistoryTurn
	for i := range turns {
		if turns[i].ToolResponseID != "" {
			lazy = &turns[i]
		}
	}
	if lazy == nil {
		t.Fatal("history must contain a turn with a tool response reference")
	}

	// The referenced artifact resolves through the tool service
	tools := &StubTools{opts: testOptions(), library: newToolLibrary()}
	if _, err := tools.FetchTool(ctx, lazy.ToolResponseID); err != nil {
		t.Errorf("history tool reference does not resolve: %v", err)
	}
}
