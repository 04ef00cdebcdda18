package generate

import (
	"errors"
	"fmt"
)

// Task is one of the AI-backed transformations over the active document.
type Task string

const (
	TaskFlashcard  Task = "flashcard"
	TaskQuiz       Task = "quiz"
	TaskHighlight  Task = "highlight"
	TaskVocabulary Task = "vocabulary"
)

// Flashcard is a question/answer pair. Identity is positional in the owning
// list; there is no independent id.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QuizQuestion is a multiple-choice question. Answer should be one of
// Options, but membership is not enforced at parse time.
type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// Highlight categories, in decreasing exam relevance.
const (
	CategorySureExam      = "Sure Exam Question"
	CategoryImportant     = "Important"
	CategoryLessImportant = "Less Important"
)

// categoryColors maps each category to its display color. Unknown
// categories normalize to CategoryImportant.
var categoryColors = map[string]string{
	CategorySureExam:      "#FF6B6B",
	CategoryImportant:     "#FFD93D",
	CategoryLessImportant: "#90EE90",
}

// Highlight is one extracted key passage.
type Highlight struct {
	ID       int    `json:"id"`
	Text     string `json:"text"`
	Category string `json:"category"`
	Color    string `json:"color"`
}

// VocabInsight is the model's deep dive on one collected vocabulary term.
type VocabInsight struct {
	Word             string   `json:"word"`
	Definition       string   `json:"definition"`
	CorrectExamples  []string `json:"correctExamples"`
	IncorrectExample string   `json:"incorrectExample"`
}

var (
	// ErrMalformedResponse means the model output was not parseable JSON
	// even after stripping markdown fencing.
	ErrMalformedResponse = errors.New("model response is not valid JSON")

	// ErrInvalidShape means the model output parsed but was not an array.
	ErrInvalidShape = errors.New("model response is not a JSON array")
)

// EndpointError reports a non-2xx status or a response missing the expected
// payload path from the model endpoint.
type EndpointError struct {
	StatusCode int
	Message    string
}

func (e *EndpointError) Error() string {
	return fmt.Sprintf("model endpoint error (status %d): %s", e.StatusCode, e.Message)
}
