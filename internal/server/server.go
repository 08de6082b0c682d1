// Package server exposes the bridge snapshots over HTTP as plain JSON.
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"hyperliquid-bridge-lab/internal/domain"
	"hyperliquid-bridge-lab/internal/orchestrator"
	"hyperliquid-bridge-lab/internal/registry"
)

// Server serves the read-side API.
type Server struct {
	orch   *orchestrator.Orchestrator
	sets   *registry.Sets
	logger *log.Logger
}

// New creates a server.
func New(orch *orchestrator.Orchestrator, sets *registry.Sets, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{orch: orch, sets: sets, logger: logger}
}

// apiResponse is the JSON envelope for every endpoint.
type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors)

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/stats", s.handleStats)
	r.Get("/api/transactions", s.handleTransactions)
	r.Get("/api/assets", s.handleAssets)
	r.Get("/api/chains", s.handleChains)

	return r
}

// cors opens the read-only API to browser dashboards and answers
// preflight requests before routing.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, resp apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Printf("encode response: %v", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: map[string]string{"status": "ok"}})
}

// snapshot resolves the common timeframe/chain query parameters.
func (s *Server) snapshot(r *http.Request) (*domain.Snapshot, error) {
	tf := domain.ParseTimeframe(r.URL.Query().Get("timeframe"))
	chain := r.URL.Query().Get("chain")

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	return s.orch.Snapshot(ctx, tf, chain)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshot(r)
	if err != nil {
		s.writeJSON(w, http.StatusServiceUnavailable, apiResponse{Error: err.Error()})
		return
	}
	// Degraded snapshots still serve data; the error rides along in the
	// envelope as a diagnostic.
	s.writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: snap.Stats, Error: snap.FetchError})
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshot(r)
	if err != nil {
		s.writeJSON(w, http.StatusServiceUnavailable, apiResponse{Error: err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: snap.Transactions, Error: snap.FetchError})
}

func (s *Server) handleAssets(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: s.sets.Assets()})
}

func (s *Server) handleChains(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: s.sets.Chains()})
}
