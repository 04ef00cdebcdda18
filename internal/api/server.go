package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"recallify/internal/config"
	"recallify/internal/generate"
	"recallify/internal/ingest"
	"recallify/internal/session"
)

// Server is the HTTP API server for recallify.
type Server struct {
	router      chi.Router
	coordinator *ingest.Coordinator
	generator   *generate.Service
	sessions    *session.Store
	log         *slog.Logger
	cfg         config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(coord *ingest.Coordinator, gen *generate.Service, sessions *session.Store, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		coordinator: coord,
		generator:   gen,
		sessions:    sessions,
		log:         log,
		cfg:         cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)

		r.Route("/{sessionID}", func(r chi.Router) {
			r.Delete("/", s.handleDeleteSession)

			r.Post("/ingest", s.handleIngest)
			r.Post("/paste", s.handlePaste)

			r.Get("/document", s.handleGetDocument)
			r.Put("/document", s.handleUpdateDocument)
			r.Delete("/document", s.handleClearDocument)

			r.Post("/generate/{tool}", s.handleGenerate)
			r.Get("/results/{tool}", s.handleGetResults)
			r.Put("/results/{tool}", s.handlePutResults)
			r.Get("/export/{tool}", s.handleExport)

			r.Route("/vocab", func(r chi.Router) {
				r.Get("/", s.handleGetVocab)
				r.Post("/", s.handleAddVocab)
				r.Delete("/", s.handleClearVocab)
				r.Delete("/{word}", s.handleRemoveVocab)
				r.Post("/send", s.handleSendVocab)
			})
		})
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// sessionFromRequest resolves the session URL parameter, writing a 404 and
// returning nil when the session is unknown.
func (s *Server) sessionFromRequest(w http.ResponseWriter, r *http.Request) *session.Session {
	id := chi.URLParam(r, "sessionID")
	sess := s.sessions.Get(id)
	if sess == nil {
		jsonError(w, "session not found", http.StatusNotFound)
		return nil
	}
	return sess
}

// taskFromTool maps a URL tool segment to its generation task.
func taskFromTool(tool string) (generate.Task, bool) {
	switch tool {
	case "flashcards":
		return generate.TaskFlashcard, true
	case "quiz":
		return generate.TaskQuiz, true
	case "highlights":
		return generate.TaskHighlight, true
	case "vocab":
		return generate.TaskVocabulary, true
	default:
		return "", false
	}
}
