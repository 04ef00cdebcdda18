package generate

import (
	"fmt"
	"strings"
)

// Item-count policy per task: one item per N words of input, clamped.
const (
	flashcardWordsPerItem = 100
	flashcardMinItems     = 5
	flashcardMaxItems     = 30

	quizWordsPerItem = 150
	quizMinItems     = 5
	quizMaxItems     = 20

	highlightWordsPerItem = 80
	highlightMinItems     = 5
	highlightMaxItems     = 15
)

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// TargetCount derives the target output-item count for a task from the
// input's word count. TaskVocabulary has no sizing policy (one insight per
// submitted term) and returns 0.
func TargetCount(task Task, text string) int {
	words := WordCount(text)
	switch task {
	case TaskFlashcard:
		return clamp(words/flashcardWordsPerItem, flashcardMinItems, flashcardMaxItems)
	case TaskQuiz:
		return clamp(words/quizWordsPerItem, quizMinItems, quizMaxItems)
	case TaskHighlight:
		return clamp(words/highlightWordsPerItem, highlightMinItems, highlightMaxItems)
	}
	return 0
}

// HighlightBand maps input length to a textual count range handed to the
// model instead of an exact target.
func HighlightBand(text string) string {
	words := WordCount(text)
	switch {
	case words < 300:
		return "5-8"
	case words < 1000:
		return "10-20"
	default:
		return "20-40"
	}
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// BuildFlashcardPrompt builds the flashcard instruction for the given text.
// Prompt construction is deterministic: same text, same prompt.
func BuildFlashcardPrompt(text string) string {
	n := TargetCount(TaskFlashcard, text)
	var sb strings.Builder
	fmt.Fprintf(&sb, "Based on the following text, generate %d flashcards as question-answer pairs.\n", n)
	sb.WriteString(`Format ONLY as a JSON array of objects with "question" and "answer". Return only the array, no other text.`)
	sb.WriteString("\n\nText:\n")
	sb.WriteString(text)
	return sb.String()
}

// BuildQuizPrompt builds the multiple-choice quiz instruction.
func BuildQuizPrompt(text string) string {
	n := TargetCount(TaskQuiz, text)
	var sb strings.Builder
	fmt.Fprintf(&sb, "Based on the following text, generate %d multiple-choice quiz questions.\n", n)
	sb.WriteString(`Format ONLY as a JSON array of objects with "question", "options" (array of exactly 4 strings), and "answer" (the correct option). Return only the array, no other text.`)
	sb.WriteString("\n\nText:\n")
	sb.WriteString(text)
	return sb.String()
}

// BuildHighlightPrompt builds the categorized-highlight instruction. In
// banded mode (the default) the model gets a count range derived from input
// length; legacy mode asks for an exact count.
func BuildHighlightPrompt(text string, legacyCount bool) string {
	var sb strings.Builder
	if legacyCount {
		fmt.Fprintf(&sb, "Based on the following text, identify %d key sentences or phrases a student should memorize.\n", TargetCount(TaskHighlight, text))
	} else {
		fmt.Fprintf(&sb, "Based on the following text, identify %s key sentences or phrases a student should memorize.\n", HighlightBand(text))
	}
	sb.WriteString(`Format ONLY as a JSON array of objects with "text" and "category". Return only the array, no other text.

Categories:
"Sure Exam Question" - very likely to appear on an exam
"Important" - core material worth reviewing
"Less Important" - supporting detail`)
	sb.WriteString("\n\nText:\n")
	sb.WriteString(text)
	return sb.String()
}

// BuildVocabPrompt builds the vocabulary deep-dive instruction for a batch
// of collected terms.
func BuildVocabPrompt(words []string) string {
	var sb strings.Builder
	sb.WriteString(`For each of the following vocabulary terms, explain the word for a language learner.
Format ONLY as a JSON array with one object per term, each with "word", "definition", "correctExamples" (array of 2 example sentences using the word correctly), and "incorrectExample" (one sentence misusing the word). Return only the array, no other text.`)
	sb.WriteString("\n\nTerms:\n")
	for _, w := range words {
		sb.WriteString("- ")
		sb.WriteString(w)
		sb.WriteByte('\n')
	}
	return sb.String()
}
