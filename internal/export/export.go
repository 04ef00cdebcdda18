// Package export renders generated study material as plain text for
// download.
package export

import (
	"fmt"
	"strings"

	"recallify/internal/generate"
)

// FormatFlashcards renders one Q/A block per card.
func FormatFlashcards(cards []generate.Flashcard) string {
	var b strings.Builder
	for i, c := range cards {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Q: %s\nA: %s\n", c.Question, c.Answer)
	}
	return b.String()
}

// FormatQuiz renders each question with lettered options and the answer.
func FormatQuiz(questions []generate.QuizQuestion) string {
	var b strings.Builder
	for i, q := range questions {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, q.Question)
		for j, opt := range q.Options {
			fmt.Fprintf(&b, "   %c) %s\n", 'A'+j, opt)
		}
		fmt.Fprintf(&b, "Answer: %s\n", q.Answer)
	}
	return b.String()
}

// FormatHighlights renders one numbered line per highlight with its category.
func FormatHighlights(highlights []generate.Highlight) string {
	var b strings.Builder
	for i, h := range highlights {
		fmt.Fprintf(&b, "%d. %s [%s]\n", i+1, h.Text, h.Category)
	}
	return b.String()
}

// FormatVocabInsights renders one block per word with definition and
// usage examples.
func FormatVocabInsights(insights []generate.VocabInsight) string {
	var b strings.Builder
	for i, v := range insights {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s\n%s\n", v.Word, v.Definition)
		for _, ex := range v.CorrectExamples {
			fmt.Fprintf(&b, "  Correct: %s\n", ex)
		}
		if v.IncorrectExample != "" {
			fmt.Fprintf(&b, "  Incorrect: %s\n", v.IncorrectExample)
		}
	}
	return b.String()
}
