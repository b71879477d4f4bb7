// Package httpapi exposes the question-answering service over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docnav/internal/core/domain"
	"github.com/custodia-labs/docnav/internal/core/ports/driving"
	"github.com/custodia-labs/docnav/internal/logger"
)

// Config holds HTTP server configuration.
type Config struct {
	// Addr is the listen address (default :8080).
	Addr string

	// APIKey, when non-empty, must match the X-Api-Key request header.
	APIKey string

	// ShutdownTimeout bounds graceful shutdown (default 10s).
	ShutdownTimeout time.Duration
}

// Server serves the query API.
type Server struct {
	cfg     Config
	queries driving.QueryService
	httpSrv *http.Server
}

// queryRequest is the POST /v1/query body.
type queryRequest struct {
	Question string `json:"question"`
	TopK     int    `json:"top_k,omitempty"`
}

// queryResponse is the successful answer payload.
type queryResponse struct {
	Answer     string   `json:"answer"`
	Sources    []string `json:"sources"`
	ChunksUsed int      `json:"chunks_used"`
	ModelUsed  string   `json:"model_used"`
}

// errorResponse is the error payload for all non-2xx statuses.
type errorResponse struct {
	ErrorKind string `json:"error_kind"`
	Message   string `json:"message"`
}

// NewServer creates an HTTP server for the query service.
func NewServer(cfg Config, queries driving.QueryService) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	s := &Server{cfg: cfg, queries: queries}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/query", s.handleQuery)
	mux.HandleFunc("/healthz", s.handleHealth)

	s.httpSrv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.withRequestID(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler returns the root HTTP handler. Exposed for tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// Run listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Listening on %s", s.cfg.Addr)
		if err := s.httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return <-errCh
}

// withRequestID tags every request with an ID for log correlation and
// applies the CORS headers the browser clients need.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", reqID)

		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Api-Key")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		logger.Debug("[%s] %s %s", reqID, r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use POST")
		return
	}

	if s.cfg.APIKey != "" && r.Header.Get("X-Api-Key") != s.cfg.APIKey {
		writeError(w, http.StatusUnauthorized, "unauthorized", "invalid or missing API key")
		return
	}

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	answer, err := s.queries.Ask(r.Context(), req.Question, req.TopK)
	if err != nil {
		s.writeAskError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, queryResponse{
		Answer:     answer.Text,
		Sources:    answer.Sources,
		ChunksUsed: answer.ChunksUsed,
		ModelUsed:  answer.Model,
	})
}

// writeAskError maps domain errors to HTTP statuses. Internal detail
// stays in the logs; clients get the error kind and a short message.
func (s *Server) writeAskError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyQuestion):
		writeError(w, http.StatusBadRequest, "empty_question", "question must not be empty")
	case errors.Is(err, domain.ErrIndexNotBuilt):
		writeError(w, http.StatusServiceUnavailable, "index_not_built", "no index has been built yet")
	case errors.Is(err, domain.ErrCorruptIndex), errors.Is(err, domain.ErrIndexIntegrity):
		logger.Error("Index unusable: %v", err)
		writeError(w, http.StatusServiceUnavailable, "index_unusable", "the stored index could not be loaded")
	case errors.Is(err, domain.ErrUpstream):
		logger.Error("Upstream failure: %v", err)
		writeError(w, http.StatusBadGateway, "upstream_error", upstreamMessage(err))
	default:
		logger.Error("Query failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func upstreamMessage(err error) string {
	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		return fmt.Sprintf("%s service unavailable", upstream.Dependency)
	}
	return "upstream service unavailable"
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, errorResponse{ErrorKind: kind, Message: strings.TrimSpace(message)})
}
