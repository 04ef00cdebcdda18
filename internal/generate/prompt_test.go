package generate

import (
	"strings"
	"testing"
)

func wordsOf(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestTargetCount_Flashcards(t *testing.T) {
	tests := []struct {
		name  string
		words int
		want  int
	}{
		{"short text clamps to min", 50, 5},
		{"exact density", 1200, 12},
		{"long text clamps to max", 10000, 30},
		{"empty text", 0, 5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := TargetCount(TaskFlashcard, wordsOf(tc.words)); got != tc.want {
				t.Errorf("TargetCount(flashcard, %d words) = %d, want %d", tc.words, got, tc.want)
			}
		})
	}
}

func TestTargetCount_Quiz(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{100, 5},
		{1500, 10},
		{9000, 20},
	}
	for _, tc := range tests {
		if got := TargetCount(TaskQuiz, wordsOf(tc.words)); got != tc.want {
			t.Errorf("TargetCount(quiz, %d words) = %d, want %d", tc.words, got, tc.want)
		}
	}
}

func TestTargetCount_HighlightLegacy(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{100, 5},
		{800, 10},
		{4000, 15},
	}
	for _, tc := range tests {
		if got := TargetCount(TaskHighlight, wordsOf(tc.words)); got != tc.want {
			t.Errorf("TargetCount(highlight, %d words) = %d, want %d", tc.words, got, tc.want)
		}
	}
}

func TestHighlightBand(t *testing.T) {
	tests := []struct {
		words int
		want  string
	}{
		{0, "5-8"},
		{299, "5-8"},
		{300, "10-20"},
		{999, "10-20"},
		{1000, "20-40"},
		{5000, "20-40"},
	}
	for _, tc := range tests {
		if got := HighlightBand(wordsOf(tc.words)); got != tc.want {
			t.Errorf("HighlightBand(%d words) = %q, want %q", tc.words, got, tc.want)
		}
	}
}

func TestBuildPrompts_Deterministic(t *testing.T) {
	text := wordsOf(400)
	if BuildFlashcardPrompt(text) != BuildFlashcardPrompt(text) {
		t.Error("flashcard prompt is not deterministic")
	}
	if BuildQuizPrompt(text) != BuildQuizPrompt(text) {
		t.Error("quiz prompt is not deterministic")
	}
	if BuildHighlightPrompt(text, false) != BuildHighlightPrompt(text, false) {
		t.Error("highlight prompt is not deterministic")
	}
	if BuildVocabPrompt([]string{"ubiquitous"}) != BuildVocabPrompt([]string{"ubiquitous"}) {
		t.Error("vocab prompt is not deterministic")
	}
}

func TestBuildFlashcardPrompt_EmbedsCountAndText(t *testing.T) {
	text := wordsOf(1200)
	prompt := BuildFlashcardPrompt(text)
	if !strings.Contains(prompt, "generate 12 flashcards") {
		t.Errorf("expected target count 12 in prompt, got %q", prompt[:100])
	}
	if !strings.Contains(prompt, text) {
		t.Error("expected input text embedded in prompt")
	}
	if !strings.Contains(prompt, "Return only the array") {
		t.Error("expected array-only constraint in prompt")
	}
}

func TestBuildHighlightPrompt_Modes(t *testing.T) {
	text := wordsOf(500)
	banded := BuildHighlightPrompt(text, false)
	if !strings.Contains(banded, "10-20") {
		t.Errorf("expected band 10-20 in banded prompt")
	}
	legacy := BuildHighlightPrompt(text, true)
	if !strings.Contains(legacy, "identify 6 key sentences") {
		t.Errorf("expected exact count 6 in legacy prompt, got %q", legacy[:120])
	}
	for _, cat := range []string{CategorySureExam, CategoryImportant, CategoryLessImportant} {
		if !strings.Contains(banded, cat) {
			t.Errorf("expected category %q in prompt", cat)
		}
	}
}

func TestBuildVocabPrompt_ListsTerms(t *testing.T) {
	prompt := BuildVocabPrompt([]string{"ephemeral", "ubiquitous"})
	if !strings.Contains(prompt, "- ephemeral") || !strings.Contains(prompt, "- ubiquitous") {
		t.Errorf("expected terms listed in prompt, got %q", prompt)
	}
}
