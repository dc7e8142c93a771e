// Package stub is a self-contained stand-in for the remote assistant
// service. It implements the full wire contract with deterministic
// canned content, so the client can be demoed and end-to-end tested
// without the real backend.
package stub

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server holds the stub's in-memory document list.
type Server struct {
	mu   sync.Mutex
	docs []string
}

// New creates a stub with no documents.
func New() *Server {
	return &Server{}
}

// NewWithDocuments creates a stub that already knows the given
// document names, useful for tests that skip the upload step.
func NewWithDocuments(docs ...string) *Server {
	return &Server{docs: docs}
}

// Router builds the chi router serving the assistant API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/documents", s.handleListDocuments)
	r.Post("/upload", s.handleUpload)
	r.Delete("/documents", s.handleClearDocuments)
	r.Post("/query", s.handleQuery)
	r.Post("/quiz/generate", s.handleGenerateQuiz)
	r.Post("/quiz/check", s.handleCheckAnswer)
	r.Post("/flashcards/generate", s.handleGenerateFlashcards)

	return r
}

// ListenAndServe runs the stub on the given port until the process exits.
func (s *Server) ListenAndServe(port int) error {
	addr := fmt.Sprintf(":%d", port)
	log.Printf("stub assistant listening on http://localhost%s", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	docs := make([]string, len(s.docs))
	copy(docs, s.docs)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string][]string{"documents": docs})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeDetail(w, http.StatusBadRequest, "No files provided")
		return
	}

	s.mu.Lock()
	for _, fh := range files {
		s.docs = append(s.docs, fh.Filename)
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("Processed %d files", len(files))})
}

func (s *Server) handleClearDocuments(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.docs = nil
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"message": "All documents cleared"})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string  `json:"question"`
		Mode     string  `json:"mode"`
		Company  *string `json:"company"`
		Topic    *string `json:"topic"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeDetail(w, http.StatusBadRequest, "question is required")
		return
	}

	s.mu.Lock()
	docs := make([]string, len(s.docs))
	copy(docs, s.docs)
	s.mu.Unlock()

	answer := fmt.Sprintf("Here is what your materials say about %q.", req.Question)
	if req.Company != nil {
		answer += fmt.Sprintf(" Focused on %s.", *req.Company)
	}

	type citation struct {
		Source  string `json:"source"`
		Page    int    `json:"page"`
		Content string `json:"content"`
	}
	var sources []citation
	for i, doc := range docs {
		if i >= 3 {
			break
		}
		sources = append(sources, citation{
			Source:  doc,
			Page:    i + 1,
			Content: fmt.Sprintf("Excerpt from %s related to the question.", doc),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"answer":  answer,
		"sources": sources,
		"mode":    req.Mode,
	})
}

func (s *Server) handleGenerateQuiz(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Topic        *string `json:"topic"`
		Difficulty   string  `json:"difficulty"`
		NumQuestions int     `json:"num_questions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.NumQuestions < 1 {
		writeDetail(w, http.StatusBadRequest, "num_questions must be at least 1")
		return
	}
	if req.Difficulty == "" {
		req.Difficulty = "medium"
	}

	topic := "your materials"
	if req.Topic != nil && *req.Topic != "" {
		topic = *req.Topic
	}

	type question struct {
		Question   string `json:"question"`
		Difficulty string `json:"difficulty"`
	}
	questions := make([]question, req.NumQuestions)
	for i := range questions {
		questions[i] = question{
			Question:   fmt.Sprintf("Question %d: explain a key concept from %s.", i+1, topic),
			Difficulty: req.Difficulty,
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"questions": questions})
}

func (s *Server) handleCheckAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question   string  `json:"question"`
		UserAnswer string  `json:"user_answer"`
		Topic      *string `json:"topic"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Question) == "" || strings.TrimSpace(req.UserAnswer) == "" {
		writeDetail(w, http.StatusBadRequest, "question and user_answer are required")
		return
	}

	// Deterministic grading: longer answers that mention the word
	// "concept" count as correct, scaled by length.
	correct := strings.Contains(strings.ToLower(req.UserAnswer), "concept") || len(req.UserAnswer) >= 80
	score := 0
	feedback := "Your answer misses the key idea. Revisit the material and try to name the concept explicitly."
	if correct {
		score = 70 + min(len(req.UserAnswer), 120)/4
		if score > 100 {
			score = 100
		}
		feedback = "Good answer. You identified the concept and explained it."
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"is_correct":     correct,
		"score":          score,
		"correct_answer": fmt.Sprintf("A model answer for: %s", req.Question),
		"feedback":       feedback,
	})
}

func (s *Server) handleGenerateFlashcards(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Topic    *string `json:"topic"`
		NumCards int     `json:"num_cards"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.NumCards < 1 {
		writeDetail(w, http.StatusBadRequest, "num_cards must be at least 1")
		return
	}

	topic := "your materials"
	if req.Topic != nil && *req.Topic != "" {
		topic = *req.Topic
	}

	type card struct {
		Front string `json:"front"`
		Back  string `json:"back"`
	}
	cards := make([]card, req.NumCards)
	for i := range cards {
		cards[i] = card{
			Front: fmt.Sprintf("Term %d from %s", i+1, topic),
			Back:  fmt.Sprintf("Definition %d: the explanation of term %d in %s.", i+1, i+1, topic),
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"flashcards": cards})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("stub: encoding response: %v", err)
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
