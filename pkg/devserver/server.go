// Package devserver hosts a blueprint during form development: it serves the
// document itself, accepts submissions with the same validation the client
// runs, and exposes Prometheus metrics. It is a development aid, not a
// production submission backend.
package devserver

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-formflow/pkg/blueprint"
	"github.com/goliatone/go-formflow/pkg/form"
)

const maxStoredSubmissions = 100

// Submission is one accepted payload, tagged for later inspection.
type Submission struct {
	ID         string         `json:"id"`
	ReceivedAt time.Time      `json:"received_at"`
	Values     map[string]any `json:"values"`
}

// Option customises the server.
type Option func(*Server)

// WithLogger overrides the standard logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetricsRegistry supplies the Prometheus registry backing /metrics.
func WithMetricsRegistry(registry *prometheus.Registry) Option {
	return func(s *Server) {
		if registry != nil {
			s.registry = registry
		}
	}
}

type snapshot struct {
	raw []byte
	bp  blueprint.Blueprint
}

// Server serves one blueprint file over HTTP.
type Server struct {
	path     string
	logger   *log.Logger
	registry *prometheus.Registry
	router   chi.Router

	mu          sync.RWMutex
	current     snapshot
	submissions []Submission

	received *prometheus.CounterVec
}

// New reads and parses the blueprint at path and builds the HTTP surface.
func New(path string, options ...Option) (*Server, error) {
	s := &Server{
		path:   path,
		logger: log.New(os.Stderr, "devserver ", log.LstdFlags),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}

	s.received = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "formflow_devserver_submissions_total",
			Help: "Submissions received, partitioned by result.",
		},
		[]string{"result"},
	)
	if err := s.registry.Register(s.received); err != nil {
		return nil, fmt.Errorf("devserver: register metrics: %w", err)
	}

	if err := s.Reload(); err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	router.Get("/blueprint.json", s.handleBlueprint)
	router.Post("/blueprint.json", s.handleSubmission)
	router.Get("/submissions", s.handleSubmissions)
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	s.router = router

	return s, nil
}

// Handler returns the HTTP surface for mounting or serving.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Reload re-reads the blueprint file, keeping the previous document when the
// new one fails to parse so a mid-edit save does not take the server down.
func (s *Server) Reload() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("devserver: read blueprint: %w", err)
	}
	bp, err := blueprint.Parse(raw)
	if err != nil {
		return fmt.Errorf("devserver: parse blueprint: %w", err)
	}

	s.mu.Lock()
	s.current = snapshot{raw: raw, bp: bp}
	s.mu.Unlock()
	return nil
}

// Submissions returns a copy of the accepted submissions, newest last.
func (s *Server) Submissions() []Submission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Submission(nil), s.submissions...)
}

func (s *Server) handleBlueprint(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	raw := s.current.raw
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(raw)
}

func (s *Server) handleSubmission(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.received.WithLabelValues("malformed").Inc()
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": "malformed JSON payload",
		})
		return
	}

	s.mu.RLock()
	bp := s.current.bp
	s.mu.RUnlock()

	state := form.NewState()
	for name, value := range payload {
		state.SetValue(name, value)
	}

	if errs := form.Evaluate(bp, state); len(errs) > 0 {
		s.received.WithLabelValues("invalid").Inc()
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"errors": errs,
		})
		return
	}

	submission := Submission{
		ID:         uuid.NewString(),
		ReceivedAt: time.Now().UTC(),
		Values:     payload,
	}

	s.mu.Lock()
	s.submissions = append(s.submissions, submission)
	if len(s.submissions) > maxStoredSubmissions {
		s.submissions = s.submissions[len(s.submissions)-maxStoredSubmissions:]
	}
	s.mu.Unlock()

	s.received.WithLabelValues("accepted").Inc()
	s.logger.Printf("accepted submission %s (%d fields)", submission.ID, len(payload))
	writeJSON(w, http.StatusAccepted, map[string]any{"id": submission.ID})
}

func (s *Server) handleSubmissions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Submissions())
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
