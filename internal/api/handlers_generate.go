package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"recallify/internal/export"
	"recallify/internal/generate"
)

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFromRequest(w, r)
	if sess == nil {
		return
	}

	tool := chi.URLParam(r, "tool")
	task, ok := taskFromTool(tool)
	if !ok || task == generate.TaskVocabulary {
		jsonError(w, "unknown tool: "+tool, http.StatusNotFound)
		return
	}

	doc := sess.Document()
	if doc == nil {
		jsonError(w, "no document loaded", http.StatusConflict)
		return
	}

	token := sess.Begin(task)

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.GenerateTimeout)
	defer cancel()

	var result any
	var err error
	switch task {
	case generate.TaskFlashcard:
		result, err = s.generator.Flashcards(ctx, doc.Text)
	case generate.TaskQuiz:
		result, err = s.generator.Quiz(ctx, doc.Text)
	case generate.TaskHighlight:
		result, err = s.generator.Highlights(ctx, doc.Text)
	}
	if err != nil {
		s.writeGenerateError(w, tool, err)
		return
	}

	stored := sess.Complete(task, token, result)
	if !stored {
		s.log.Info("generation superseded", "tool", tool, "session", sess.ID)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"items": result, "stored": stored})
}

func (s *Server) writeGenerateError(w http.ResponseWriter, tool string, err error) {
	var endpointErr *generate.EndpointError
	switch {
	case errors.As(err, &endpointErr):
		s.log.Error("generation endpoint failure", "tool", tool, "status", endpointErr.StatusCode, "error", err)
		jsonError(w, err.Error(), http.StatusBadGateway)
	case errors.Is(err, generate.ErrMalformedResponse), errors.Is(err, generate.ErrInvalidShape):
		s.log.Error("generation response unusable", "tool", tool, "error", err)
		jsonError(w, err.Error(), http.StatusBadGateway)
	case errors.Is(err, context.DeadlineExceeded):
		jsonError(w, "generation timed out", http.StatusGatewayTimeout)
	default:
		s.log.Error("generation failed", "tool", tool, "error", err)
		jsonError(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleGetResults(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFromRequest(w, r)
	if sess == nil {
		return
	}
	task, ok := taskFromTool(chi.URLParam(r, "tool"))
	if !ok {
		jsonError(w, "unknown tool", http.StatusNotFound)
		return
	}
	result := sess.Result(task)
	if result == nil {
		jsonError(w, "no results for tool", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"items": result})
}

// handlePutResults accepts client-side edits to stored results. The payload
// is the bare item array for the tool.
func (s *Server) handlePutResults(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFromRequest(w, r)
	if sess == nil {
		return
	}
	task, ok := taskFromTool(chi.URLParam(r, "tool"))
	if !ok {
		jsonError(w, "unknown tool", http.StatusNotFound)
		return
	}

	var result any
	var err error
	switch task {
	case generate.TaskFlashcard:
		var items []generate.Flashcard
		err = json.NewDecoder(r.Body).Decode(&items)
		result = items
	case generate.TaskQuiz:
		var items []generate.QuizQuestion
		err = json.NewDecoder(r.Body).Decode(&items)
		result = items
	case generate.TaskHighlight:
		var items []generate.Highlight
		err = json.NewDecoder(r.Body).Decode(&items)
		result = items
	case generate.TaskVocabulary:
		var items []generate.VocabInsight
		err = json.NewDecoder(r.Body).Decode(&items)
		result = items
	}
	if err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	sess.SetResult(task, result)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"items": result})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFromRequest(w, r)
	if sess == nil {
		return
	}
	tool := chi.URLParam(r, "tool")
	task, ok := taskFromTool(tool)
	if !ok {
		jsonError(w, "unknown tool", http.StatusNotFound)
		return
	}
	result := sess.Result(task)
	if result == nil {
		jsonError(w, "no results for tool", http.StatusNotFound)
		return
	}

	var body string
	switch items := result.(type) {
	case []generate.Flashcard:
		body = export.FormatFlashcards(items)
	case []generate.QuizQuestion:
		body = export.FormatQuiz(items)
	case []generate.Highlight:
		body = export.FormatHighlights(items)
	case []generate.VocabInsight:
		body = export.FormatVocabInsights(items)
	default:
		jsonError(w, "stored results are not exportable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", tool+".txt"))
	w.Write([]byte(body))
}
