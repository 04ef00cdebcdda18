package generate

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseFlashcards_WellFormed(t *testing.T) {
	raw := `[{"question":"What is ATP?","answer":"The cell's energy currency."},
	        {"question":"Where is DNA stored?","answer":"In the nucleus."}]`
	cards, err := ParseFlashcards(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
	if cards[0].Question != "What is ATP?" || cards[0].Answer != "The cell's energy currency." {
		t.Errorf("unexpected first card: %+v", cards[0])
	}
}

func TestParseFlashcards_FenceEquivalence(t *testing.T) {
	inner := `[{"question":"q","answer":"a"}]`
	variants := []string{
		inner,
		"```json\n" + inner + "\n```",
		"```\n" + inner + "\n```",
		"  \n```json\n" + inner + "\n```  \n",
	}
	want, err := ParseFlashcards(inner)
	if err != nil {
		t.Fatalf("unexpected error on unwrapped input: %v", err)
	}
	for _, v := range variants {
		got, err := ParseFlashcards(v)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", v, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("fenced variant parsed differently: %+v vs %+v", got, want)
		}
	}
}

func TestParseFlashcards_MissingFieldsDefaultEmpty(t *testing.T) {
	cards, err := ParseFlashcards(`[{"question":"only q"},{"answer":"only a"},{}]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(cards))
	}
	if cards[0].Answer != "" || cards[1].Question != "" {
		t.Errorf("expected empty defaults, got %+v", cards)
	}
}

func TestParseFlashcards_MalformedItemSkipped(t *testing.T) {
	cards, err := ParseFlashcards(`["just a string", {"question":"q","answer":"a"}, 42]`)
	if err != nil {
		t.Fatalf("a malformed item must not abort the batch: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("expected 1 surviving card, got %d", len(cards))
	}
}

func TestDecodeArray_NotJSON(t *testing.T) {
	_, err := ParseFlashcards("not json")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestDecodeArray_NotAnArray(t *testing.T) {
	_, err := ParseFlashcards(`{"question":"q"}`)
	if !errors.Is(err, ErrInvalidShape) {
		t.Errorf("expected ErrInvalidShape, got %v", err)
	}
}

func TestParseQuiz_AnswerFallbacks(t *testing.T) {
	raw := `[
	  {"question":"q1","options":["a","b","c","d"],"answer":"c"},
	  {"question":"q2","options":["w","x","y","z"]},
	  {"question":"q3"}
	]`
	questions, err := ParseQuiz(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(questions))
	}
	if questions[0].Answer != "c" {
		t.Errorf("expected explicit answer kept, got %q", questions[0].Answer)
	}
	if questions[1].Answer != "w" {
		t.Errorf("expected fallback to first option, got %q", questions[1].Answer)
	}
	if questions[2].Answer != "" {
		t.Errorf("expected empty answer with no options, got %q", questions[2].Answer)
	}
	if questions[2].Options == nil || len(questions[2].Options) != 0 {
		t.Errorf("expected empty options slice, got %#v", questions[2].Options)
	}
}

func TestParseHighlights_FilterAndDefaults(t *testing.T) {
	raw := "```json\n" + `[
	  {"text":"ok","category":"Important"},
	  {"text":"  the mitochondria is the powerhouse of the cell  ","category":"Sure Exam Question"},
	  {"text":"a perfectly reasonable highlight","category":"Made Up Category"},
	  {"text":"short one","category":"Important"}
	]` + "\n```"
	highlights, err := ParseHighlights(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(highlights) != 2 {
		t.Fatalf("expected 2 surviving highlights, got %d: %+v", len(highlights), highlights)
	}

	first := highlights[0]
	if first.ID != 0 {
		t.Errorf("expected zero-based sequential id, got %d", first.ID)
	}
	if first.Text != "the mitochondria is the powerhouse of the cell" {
		t.Errorf("expected trimmed text, got %q", first.Text)
	}
	if first.Category != CategorySureExam {
		t.Errorf("expected category kept, got %q", first.Category)
	}
	if first.Color != categoryColors[CategorySureExam] {
		t.Errorf("expected default color for category, got %q", first.Color)
	}

	second := highlights[1]
	if second.ID != 1 {
		t.Errorf("expected id 1, got %d", second.ID)
	}
	if second.Category != CategoryImportant {
		t.Errorf("expected unknown category normalized to Important, got %q", second.Category)
	}
}

func TestParseHighlights_AllDropped(t *testing.T) {
	highlights, err := ParseHighlights(`[{"text":"tiny"},{"text":"also tiny"}]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(highlights) != 0 {
		t.Errorf("expected all short items dropped, got %+v", highlights)
	}
}

func TestParseHighlights_ExplicitColorKept(t *testing.T) {
	highlights, err := ParseHighlights(`[{"text":"osmosis moves water across membranes","category":"Important","color":"#ABCDEF"}]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(highlights) != 1 || highlights[0].Color != "#ABCDEF" {
		t.Errorf("expected model-supplied color kept, got %+v", highlights)
	}
}

func TestParseVocabInsights(t *testing.T) {
	raw := `[{"word":"ephemeral","definition":"lasting a very short time",
	  "correctExamples":["The ephemeral mist burned off by noon.","Fame can be ephemeral."],
	  "incorrectExample":"The mountain was ephemeral for millions of years."},
	  {"word":"bare"}]`
	insights, err := ParseVocabInsights(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(insights) != 2 {
		t.Fatalf("expected 2 insights, got %d", len(insights))
	}
	if insights[0].Word != "ephemeral" || len(insights[0].CorrectExamples) != 2 {
		t.Errorf("unexpected first insight: %+v", insights[0])
	}
	if insights[1].CorrectExamples == nil {
		t.Error("expected missing examples defaulted to empty slice")
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `[1]`, `[1]`},
		{"json tag", "```json\n[1]\n```", `[1]`},
		{"bare fence", "```\n[1]\n```", `[1]`},
		{"unclosed fence left alone", "```json\n[1]", "```json\n[1]"},
		{"surrounding whitespace", "  ```json\n[1]\n```  ", `[1]`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := stripCodeFence(tc.in); got != tc.want {
				t.Errorf("stripCodeFence(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
