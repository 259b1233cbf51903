package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MikeSquared-Agency/decoy/internal/metrics"
	"github.com/MikeSquared-Agency/decoy/internal/processor"
)

// apiKeyHeader carries the pre-shared key trusted integrators send.
const apiKeyHeader = "X-API-Key"

type Server struct {
	router *chi.Mux
	port   int
	apiKey string
	proc   *processor.Processor
}

// NewServer builds the HTTP surface. Everything except the liveness check
// and the metrics scrape requires the pre-shared API key; an auth failure
// is rejected before any session logic runs.
func NewServer(port int, apiKey string, proc *processor.Processor) *Server {
	s := &Server{
		port:   port,
		apiKey: apiKey,
		proc:   proc,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(s.requireAPIKey)
		r.Post("/honeypot/webhook", s.handleWebhook)
		r.Get("/api/v1/decoy/status", s.handleStatus)
		r.Get("/api/v1/decoy/sessions", s.handleListSessions)
		r.Get("/api/v1/decoy/sessions/{sessionID}", s.handleGetSession)
	})

	s.router = r
	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	slog.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(apiKeyHeader) != s.apiKey {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid API key"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

type webhookMessage struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

type webhookRequest struct {
	SessionID string          `json:"sessionId"`
	Message   *webhookMessage `json:"message"`
}

// handleWebhook is the turn endpoint. A honeypot never errors toward the
// monitored party: malformed bodies and missing messages get a benign
// acknowledgment, not a 4xx.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var req webhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == nil {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "success",
			"message": "honeypot active",
		})
		return
	}

	resp := s.proc.HandleMessage(r.Context(), req.SessionID, req.Message.Sender, req.Message.Text)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"agent":    "decoy",
		"status":   "engaging",
		"sessions": len(s.proc.SessionIDs()),
	})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"sessions": s.proc.SessionIDs()})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	snap, ok := s.proc.SessionSnapshot(sessionID)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
