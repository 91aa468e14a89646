// Package health serves liveness, readiness and metrics endpoints while a
// simulation runs.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp,omitempty"`
	Version   string `json:"version,omitempty"`
	Commit    string `json:"commit,omitempty"`
}

// ReadyResponse represents the JSON response for readiness check endpoints.
type ReadyResponse struct {
	Status string            `json:"status"`
	Phase  string            `json:"phase"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Run phases reported by /ready
const (
	PhaseLoading   = "loading"
	PhaseRunning   = "running"
	PhaseCompleted = "completed"
)

// Server is a lightweight HTTP server for status endpoints.
type Server struct {
	serviceName string
	version     string
	commit      string
	addr        string
	metrics     http.Handler
	server      *http.Server
	logger      *logrus.Logger

	mu     sync.RWMutex
	phase  string
	checks map[string]string
}

// Config holds the configuration for the health server.
type Config struct {
	ServiceName string
	Version     string
	Commit      string
	Addr        string
	Logger      *logrus.Logger
	Metrics     http.Handler
}

// NewServer creates a new health server in the loading phase.
func NewServer(cfg Config) *Server {
	addr := cfg.Addr
	if addr == "" {
		addr = ":9102"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
	}

	return &Server{
		serviceName: cfg.ServiceName,
		version:     cfg.Version,
		commit:      cfg.Commit,
		addr:        addr,
		metrics:     cfg.Metrics,
		logger:      logger,
		phase:       PhaseLoading,
		checks:      make(map[string]string),
	}
}

// SetPhase records the current run phase. The server is ready once
// seasons have loaded.
func (s *Server) SetPhase(phase string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = phase
}

// SetCheck records the outcome of a named readiness check
func (s *Server) SetCheck(name, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checks[name] = status
}

// IsReady returns whether the server is ready.
func (s *Server) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase != PhaseLoading
}

// Handler returns the status routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/live", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics)
	}
	return mux
}

// Start starts the server in the background and stops it when ctx is done.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		s.logger.WithFields(logrus.Fields{
			"addr":    s.addr,
			"service": s.serviceName,
		}).Info("Status server starting")

		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.WithError(err).Error("Status server error")
		}
	}()

	go func() {
		<-ctx.Done()
		_ = s.Shutdown()
	}()

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Service:   s.serviceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   s.version,
		Commit:    s.commit,
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	response := ReadyResponse{
		Status: "ok",
		Phase:  s.phase,
		Checks: make(map[string]string, len(s.checks)),
	}
	for name, status := range s.checks {
		response.Checks[name] = status
	}
	s.mu.RUnlock()

	code := http.StatusOK
	if response.Phase == PhaseLoading {
		response.Status = "not_ready"
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, response)
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
