package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"recallify/internal/generate"
	"recallify/internal/vocab"
)

type vocabState struct {
	Words    []string `json:"words"`
	Count    int      `json:"count"`
	Sendable bool     `json:"sendable"`
}

func cartState(c *vocab.Cart) vocabState {
	words := c.Words()
	n := len(words)
	return vocabState{
		Words:    words,
		Count:    n,
		Sendable: n >= vocab.SendMin && n <= vocab.SendMax,
	}
}

func (s *Server) handleGetVocab(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFromRequest(w, r)
	if sess == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cartState(sess.Cart()))
}

func (s *Server) handleAddVocab(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFromRequest(w, r)
	if sess == nil {
		return
	}

	var req struct {
		Word string `json:"word"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	added := sess.Cart().Add(req.Word)
	state := cartState(sess.Cart())
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"added":    added,
		"words":    state.Words,
		"count":    state.Count,
		"sendable": state.Sendable,
	})
}

func (s *Server) handleRemoveVocab(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFromRequest(w, r)
	if sess == nil {
		return
	}
	word := chi.URLParam(r, "word")
	if !sess.Cart().Remove(word) {
		jsonError(w, "word not in cart", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cartState(sess.Cart()))
}

func (s *Server) handleClearVocab(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFromRequest(w, r)
	if sess == nil {
		return
	}
	sess.Cart().Clear()
	w.WriteHeader(http.StatusNoContent)
}

// handleSendVocab hands the cart batch to the generator. The cart is only
// cleared when its size is inside the send window.
func (s *Server) handleSendVocab(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFromRequest(w, r)
	if sess == nil {
		return
	}

	words, err := sess.Cart().TrySend()
	if err != nil {
		var nse *vocab.NotSendableError
		if errors.As(err, &nse) {
			jsonError(w, err.Error(), http.StatusConflict)
			return
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	token := sess.Begin(generate.TaskVocabulary)

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.GenerateTimeout)
	defer cancel()

	insights, genErr := s.generator.VocabInsights(ctx, words)
	if genErr != nil {
		// The batch was consumed; put the words back so the user can retry.
		for _, word := range words {
			sess.Cart().Add(word)
		}
		s.writeGenerateError(w, "vocab", genErr)
		return
	}

	stored := sess.Complete(generate.TaskVocabulary, token, insights)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"items": insights, "stored": stored})
}
