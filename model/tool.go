package model

// ToolType names a generated study aid
type ToolType string

const (
	ToolAsk       ToolType = "ask"
	ToolFlashcard ToolType = "flashcard"
	ToolQuiz      ToolType = "quiz"
	ToolDiagram   ToolType = "diagram"
	ToolGame      ToolType = "game"
)

// DisplayName returns a human-readable label for the tool type
func (t ToolType) DisplayName() string {
	switch t {
	case ToolFlashcard:
		return "Flashcards"
	case ToolQuiz:
		return "Quiz"
	case ToolDiagram:
		return "Diagram"
	case ToolGame:
		return "Game"
	default:
		return "Chat"
	}
}

// Flashcard is a single front/back study card
type Flashcard struct {
	Front string
	Back  string
}

// QuizQuestion is a multiple-choice question with one correct answer
type QuizQuestion struct {
	Question string
	Choices  []string
	Answer   int // index into Choices
}

// ToolPayload holds the structured content of a tool artifact.
// Exactly one of the fields is populated, matching the ToolRef type.
type ToolPayload struct {
	Flashcards []Flashcard
	Questions  []QuizQuestion
	Diagrams   []string // diagram sources, rendered as code blocks
	Game       string   // free-text game description
}

// Empty reports whether the payload carries no usable content
func (p *ToolPayload) Empty() bool {
	if p == nil {
		return true
	}
	return len(p.Flashcards) == 0 && len(p.Questions) == 0 &&
		len(p.Diagrams) == 0 && p.Game == ""
}

// ToolRef attaches a tool artifact to a message. Payload may be nil for
// history-restored messages; it is then fetched on demand by ID. The
// ref only moves forward: no ref, then ref without payload, then payload
// loaded. It never reverts.
type ToolRef struct {
	Type    ToolType
	ID      string
	Payload *ToolPayload
}

// Loaded reports whether the artifact content is available inline
func (r *ToolRef) Loaded() bool {
	return r != nil && r.Payload != nil
}
