// Package session keeps per-user study state in memory: the active
// document, generated results per tool, and the vocabulary cart.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"recallify/internal/generate"
	"recallify/internal/vocab"
)

// Document is the source text a session's tools operate on.
type Document struct {
	Name string `json:"fileName"`
	Text string `json:"text"`
}

// Session holds everything belonging to one study session.
type Session struct {
	mu sync.Mutex

	ID        string
	CreatedAt time.Time
	updatedAt time.Time

	doc     *Document
	results map[generate.Task]any
	seq     map[generate.Task]uint64
	cart    *vocab.Cart
}

func newSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		CreatedAt: now,
		updatedAt: now,
		results:   make(map[generate.Task]any),
		seq:       make(map[generate.Task]uint64),
		cart:      vocab.NewCart(),
	}
}

// Cart returns the session's vocabulary cart. The cart does its own locking.
func (s *Session) Cart() *vocab.Cart {
	return s.cart
}

// SetDocument replaces the active document and discards all stored results.
// A new document invalidates in-flight generations for every tool.
func (s *Session) SetDocument(name, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = &Document{Name: name, Text: text}
	s.results = make(map[generate.Task]any)
	for task := range s.seq {
		s.seq[task]++
	}
	s.touch()
}

// Document returns a copy of the active document, or nil if none is set.
func (s *Session) Document() *Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return nil
	}
	d := *s.doc
	return &d
}

// ClearDocument removes the document and all derived results.
func (s *Session) ClearDocument() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = nil
	s.results = make(map[generate.Task]any)
	for task := range s.seq {
		s.seq[task]++
	}
	s.touch()
}

// Begin marks the start of a generation for a tool and returns a token.
// Only the most recently issued token per task may commit a result, so a
// slow earlier call cannot overwrite a later one.
func (s *Session) Begin(task generate.Task) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq[task]++
	s.touch()
	return s.seq[task]
}

// Complete stores a generation result if the token is still current.
// It reports whether the result was accepted.
func (s *Session) Complete(task generate.Task, token uint64, result any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seq[task] != token {
		return false
	}
	s.results[task] = result
	s.touch()
	return true
}

// SetResult stores a result directly, superseding any in-flight generation
// for the task. Used when the client edits results in place.
func (s *Session) SetResult(task generate.Task, result any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq[task]++
	s.results[task] = result
	s.touch()
}

// Result returns the stored result for a task, or nil.
func (s *Session) Result(task generate.Task) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results[task]
}

func (s *Session) touch() {
	s.updatedAt = time.Now()
}

// Touch refreshes the session's eviction clock.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
}

// Store is a thread-safe in-memory session registry with TTL eviction.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Create registers a new session under a fresh ID.
func (st *Store) Create() *Session {
	s := newSession(uuid.NewString())
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
	return s
}

// Get returns the session for id, or nil if unknown or expired. An
// expired session is evicted on access rather than waiting for the next
// cleanup pass.
func (st *Store) Get(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	s := st.sessions[id]
	if s == nil {
		return nil
	}
	s.mu.Lock()
	idle := time.Since(s.updatedAt)
	s.mu.Unlock()
	if idle > st.ttl {
		delete(st.sessions, id)
		return nil
	}
	return s
}

// Delete removes a session.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// Cleanup removes sessions idle longer than the TTL.
func (st *Store) Cleanup() {
	st.mu.Lock()
	defer st.mu.Unlock()
	now := time.Now()
	for id, s := range st.sessions {
		s.mu.Lock()
		idle := now.Sub(s.updatedAt)
		s.mu.Unlock()
		if idle > st.ttl {
			delete(st.sessions, id)
		}
	}
}

// StartCleanup runs Cleanup on the given interval until stop is closed.
func (st *Store) StartCleanup(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				st.Cleanup()
			case <-stop:
				return
			}
		}
	}()
}
