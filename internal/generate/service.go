package generate

import (
	"context"
	"fmt"
	"log/slog"
)

// TextGenerator produces model text for a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service runs the full prompt -> model -> normalize pipeline for each
// generation task. One endpoint call per invocation, no retry; failures
// abort only that invocation.
type Service struct {
	gen                  TextGenerator
	log                  *slog.Logger
	legacyHighlightCount bool
}

func NewService(gen TextGenerator, log *slog.Logger, legacyHighlightCount bool) *Service {
	return &Service{
		gen:                  gen,
		log:                  log,
		legacyHighlightCount: legacyHighlightCount,
	}
}

// Flashcards generates question/answer pairs from the document text.
func (s *Service) Flashcards(ctx context.Context, text string) ([]Flashcard, error) {
	raw, err := s.gen.Generate(ctx, BuildFlashcardPrompt(text))
	if err != nil {
		return nil, fmt.Errorf("generate flashcards: %w", err)
	}
	cards, err := ParseFlashcards(raw)
	if err != nil {
		return nil, fmt.Errorf("parse flashcards: %w", err)
	}
	s.log.Info("generated flashcards", "count", len(cards))
	return cards, nil
}

// Quiz generates multiple-choice questions from the document text.
func (s *Service) Quiz(ctx context.Context, text string) ([]QuizQuestion, error) {
	raw, err := s.gen.Generate(ctx, BuildQuizPrompt(text))
	if err != nil {
		return nil, fmt.Errorf("generate quiz: %w", err)
	}
	questions, err := ParseQuiz(raw)
	if err != nil {
		return nil, fmt.Errorf("parse quiz: %w", err)
	}
	s.log.Info("generated quiz", "count", len(questions))
	return questions, nil
}

// Highlights generates categorized key passages from the document text.
func (s *Service) Highlights(ctx context.Context, text string) ([]Highlight, error) {
	raw, err := s.gen.Generate(ctx, BuildHighlightPrompt(text, s.legacyHighlightCount))
	if err != nil {
		return nil, fmt.Errorf("generate highlights: %w", err)
	}
	highlights, err := ParseHighlights(raw)
	if err != nil {
		return nil, fmt.Errorf("parse highlights: %w", err)
	}
	s.log.Info("generated highlights", "count", len(highlights))
	return highlights, nil
}

// VocabInsights generates one insight per collected vocabulary term.
func (s *Service) VocabInsights(ctx context.Context, words []string) ([]VocabInsight, error) {
	raw, err := s.gen.Generate(ctx, BuildVocabPrompt(words))
	if err != nil {
		return nil, fmt.Errorf("generate vocabulary insights: %w", err)
	}
	insights, err := ParseVocabInsights(raw)
	if err != nil {
		return nil, fmt.Errorf("parse vocabulary insights: %w", err)
	}
	s.log.Info("generated vocabulary insights", "terms", len(words), "count", len(insights))
	return insights, nil
}
