package generate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var codeFenceRe = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*\n?(.*?)\\s*```$")

// stripCodeFence removes a surrounding markdown code fence, with or without
// a language tag, leaving the inner content.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if m := codeFenceRe.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return s
}

// decodeArray trims and de-fences raw model output and decodes it as a JSON
// array. Non-JSON fails with ErrMalformedResponse; valid JSON that is not
// an array fails with ErrInvalidShape.
func decodeArray(raw string) ([]json.RawMessage, error) {
	cleaned := stripCodeFence(raw)

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &items); err == nil {
		return items, nil
	}

	var probe any
	if err := json.Unmarshal([]byte(cleaned), &probe); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedResponse, truncate(cleaned, 120))
	}
	return nil, ErrInvalidShape
}

// ParseFlashcards normalizes raw model output into flashcards. Items that
// are not JSON objects are skipped; missing fields default to empty strings.
func ParseFlashcards(raw string) ([]Flashcard, error) {
	items, err := decodeArray(raw)
	if err != nil {
		return nil, err
	}

	cards := make([]Flashcard, 0, len(items))
	for _, item := range items {
		var card Flashcard
		if err := json.Unmarshal(item, &card); err != nil {
			continue
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// ParseQuiz normalizes raw model output into quiz questions. A missing
// answer falls back to the first option, then to the empty string.
func ParseQuiz(raw string) ([]QuizQuestion, error) {
	items, err := decodeArray(raw)
	if err != nil {
		return nil, err
	}

	questions := make([]QuizQuestion, 0, len(items))
	for _, item := range items {
		var q QuizQuestion
		if err := json.Unmarshal(item, &q); err != nil {
			continue
		}
		if q.Options == nil {
			q.Options = []string{}
		}
		if q.Answer == "" && len(q.Options) > 0 {
			q.Answer = q.Options[0]
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// minHighlightLen is the shortest trimmed highlight text kept, exclusive.
const minHighlightLen = 10

// ParseHighlights normalizes raw model output into highlights. Items whose
// trimmed text is 10 characters or shorter are dropped; kept items get a
// zero-based sequential id, a normalized category, and the category's color
// when the model supplied none.
func ParseHighlights(raw string) ([]Highlight, error) {
	items, err := decodeArray(raw)
	if err != nil {
		return nil, err
	}

	highlights := make([]Highlight, 0, len(items))
	for _, item := range items {
		var h Highlight
		if err := json.Unmarshal(item, &h); err != nil {
			continue
		}
		h.Text = strings.TrimSpace(h.Text)
		if len([]rune(h.Text)) <= minHighlightLen {
			continue
		}
		if _, ok := categoryColors[h.Category]; !ok {
			h.Category = CategoryImportant
		}
		if h.Color == "" {
			h.Color = categoryColors[h.Category]
		}
		h.ID = len(highlights)
		highlights = append(highlights, h)
	}
	return highlights, nil
}

// ParseVocabInsights normalizes raw model output into vocabulary insights.
func ParseVocabInsights(raw string) ([]VocabInsight, error) {
	items, err := decodeArray(raw)
	if err != nil {
		return nil, err
	}

	insights := make([]VocabInsight, 0, len(items))
	for _, item := range items {
		var v VocabInsight
		if err := json.Unmarshal(item, &v); err != nil {
			continue
		}
		if v.CorrectExamples == nil {
			v.CorrectExamples = []string{}
		}
		insights = append(insights, v)
	}
	return insights, nil
}
