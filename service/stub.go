package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"folio/config"
	"folio/model"
)

// wait simulates a backend round trip, honoring cancellation
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// toolLibrary stores generated payloads by id so that a ToolRef can be
// resolved later, the way a restored chat history resolves tool
// responses on demand. Shared between chat and tool stubs.
type toolLibrary struct {
	mu       sync.Mutex
	payloads map[string]*model.ToolPayload
}

func newToolLibrary() *toolLibrary {
	lib := &toolLibrary{payloads: make(map[string]*model.ToolPayload)}
	// Seed the artifact referenced by the canned chat history.
	lib.payloads[historyToolID] = &model.ToolPayload{
		Flashcards: []model.Flashcard{
			{Front: "What does a logical clock order?", Back: "Events, by causality rather than wall-clock time."},
			{Front: "What does C(a) < C(b) tell you?", Back: "Nothing certain: the converse of the clock condition does not hold."},
		},
	}
	return lib
}

func (l *toolLibrary) put(payload *model.ToolPayload) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := uuid.New().String()
	l.payloads[id] = payload
	return id
}

func (l *toolLibrary) get(id string) (*model.ToolPayload, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p, ok := l.payloads[id]
	return p, ok
}

// StubChat generates deterministic replies and tool artifacts from the
// prompt and highlighted snippet.
type StubChat struct {
	opts    Options
	library *toolLibrary
}

func (s *StubChat) Generate(ctx context.Context, prompt string, highlight *model.HighlightSnapshot, tool model.ToolType) (*model.ChatReply, error) {
	if err := wait(ctx, s.opts.Latency); err != nil {
		return nil, err
	}

	source := prompt
	if highlight != nil && highlight.Text != "" {
		source = highlight.Text
	}

	switch tool {
	case model.ToolFlashcard:
		payload := &model.ToolPayload{Flashcards: flashcardsFrom(source)}
		return s.replyWith(tool, payload, "Here are flashcards for the selected passage."), nil
	case model.ToolQuiz:
		payload := &model.ToolPayload{Questions: quizFrom(source)}
		return s.replyWith(tool, payload, "Here is a short quiz on the selected passage."), nil
	case model.ToolDiagram:
		payload := &model.ToolPayload{Diagrams: diagramsFrom(source)}
		return s.replyWith(tool, payload, "Here is a diagram of the main ideas."), nil
	case model.ToolGame:
		payload := &model.ToolPayload{Game: gameFrom(source)}
		return s.replyWith(tool, payload, "Here is a study game for this material."), nil
	default:
		return &model.ChatReply{Text: answerFrom(prompt, highlight)}, nil
	}
}

func (s *StubChat) replyWith(tool model.ToolType, payload *model.ToolPayload, text string) *model.ChatReply {
	id := s.library.put(payload)
	return &model.ChatReply{
		Text: text,
		Tool: &model.ToolRef{Type: tool, ID: id, Payload: payload},
	}
}

func answerFrom(prompt string, highlight *model.HighlightSnapshot) string {
	if highlight != nil && highlight.Text != "" {
		return fmt.Sprintf(
			"The passage you highlighted makes a single claim: %s\n\nIn short, it asks you to reason about ordering without appealing to physical time. Re-read the surrounding paragraph with that in mind.",
			strings.TrimSpace(firstSentence(highlight.Text)))
	}
	return fmt.Sprintf(
		"Good question. Start from the chapter's definition and work forward: %s\n\nIf that does not resolve it, try generating flashcards for the section you are on.",
		strings.TrimSpace(firstSentence(prompt)))
}

func flashcardsFrom(source string) []model.Flashcard {
	sentences := splitSentences(source)
	cards := make([]model.Flashcard, 0, len(sentences))
	for _, s := range sentences {
		if len(cards) == 5 {
			break
		}
		words := strings.Fields(s)
		if len(words) < 4 {
			continue
		}
		front := fmt.Sprintf("Complete the idea: %q", strings.Join(words[:3], " ")+" ...")
		cards = append(cards, model.Flashcard{Front: front, Back: s})
	}
	return cards
}

func quizFrom(source string) []model.QuizQuestion {
	sentences := splitSentences(source)
	questions := make([]model.QuizQuestion, 0, len(sentences))
	for _, s := range sentences {
		if len(questions) == 3 {
			break
		}
		if len(strings.Fields(s)) < 4 {
			continue
		}
		questions = append(questions, model.QuizQuestion{
			Question: "Which statement matches the text?",
			Choices: []string{
				s,
				"The text makes the opposite claim.",
				"The text does not address this.",
			},
			Answer: 0,
		})
	}
	return questions
}

func diagramsFrom(source string) []string {
	terms := keyTerms(source, 4)
	if len(terms) < 2 {
		return nil
	}
	var b strings.Builder
	b.WriteString("flowchart TD\n")
	for i := 0; i < len(terms)-1; i++ {
		fmt.Fprintf(&b, "    %c[%s] --> %c[%s]\n", 'A'+i, terms[i], 'A'+i+1, terms[i+1])
	}
	return []string{b.String()}
}

func gameFrom(source string) string {
	terms := keyTerms(source, 6)
	return fmt.Sprintf(
		"Matching game: write each of these terms on a card: %s. Shuffle, then pair each term with its definition from the passage. Score one point per correct pair; replay until you clear the deck twice in a row.",
		strings.Join(terms, ", "))
}

func firstSentence(text string) string {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return text
	}
	return sentences[0]
}

func splitSentences(text string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '?' || r == '!' || r == '\n'
	}) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part+".")
		}
	}
	return out
}

// keyTerms picks the longest distinct words as stand-in concepts
func keyTerms(text string, n int) []string {
	seen := make(map[string]bool)
	var terms []string
	for _, w := range strings.Fields(text) {
		w = strings.Trim(strings.ToLower(w), ".,;:!?\"'()[]")
		if len(w) < 6 || seen[w] {
			continue
		}
		seen[w] = true
		terms = append(terms, w)
		if len(terms) == n {
			break
		}
	}
	return terms
}

// StubTools resolves tool artifacts by id from the shared library
type StubTools struct {
	opts    Options
	library *toolLibrary
}

func (s *StubTools) FetchTool(ctx context.Context, id string) (*model.ToolPayload, error) {
	if err := wait(ctx, s.opts.Latency); err != nil {
		return nil, err
	}
	payload, ok := s.library.get(id)
	if !ok {
		return nil, fmt.Errorf("unknown tool response %q", id)
	}
	return payload, nil
}

// StubTranscriber returns canned recognized text
type StubTranscriber struct {
	opts Options
}

func (s *StubTranscriber) Transcribe(ctx context.Context, clip model.AudioClip) (string, error) {
	if err := wait(ctx, s.opts.Latency); err != nil {
		return "", err
	}
	if clip.Duration < time.Second {
		return "", fmt.Errorf("clip too short to transcribe")
	}
	return "Can you explain how the clock condition relates to causal ordering?", nil
}

// StubPositions records the last reported position, fire-and-forget
type StubPositions struct {
	mu   sync.Mutex
	last model.Position
}

func (s *StubPositions) RecordPosition(page int, sectionID, chapterID string) error {
	s.mu.Lock()
	s.last = model.Position{Page: page, SectionID: sectionID, ChapterID: chapterID}
	s.mu.Unlock()
	if config.DebugLog != nil {
		config.DebugLog.Printf("[Service] position recorded: page=%d section=%s chapter=%s", page, sectionID, chapterID)
	}
	return nil
}

// Last returns the most recently recorded position
func (s *StubPositions) Last() model.Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}
