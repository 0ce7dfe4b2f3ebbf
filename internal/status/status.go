// Package status serves the dashboard's latest snapshot over HTTP so
// wall-mounted TVs and monitoring can poll the same numbers the terminal
// shows.
package status

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"packtv/internal/kpi"
)

// Server exposes /healthz and /kpi.json. The snapshot is swapped in
// whole on each dashboard refresh.
type Server struct {
	mu   sync.RWMutex
	snap *kpi.Snapshot

	srv *http.Server
	log *zap.Logger
}

// New builds a server listening on addr.
func New(addr string, log *zap.Logger) *Server {
	s := &Server{log: log}
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/kpi.json", func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		if s.snap == nil {
			http.Error(w, "no snapshot yet", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(s.snap); err != nil {
			s.log.Warn("encoding snapshot", zap.Error(err))
		}
	})
	s.srv = &http.Server{Addr: addr, Handler: mux}
	return s
}

// Serve blocks until the server shuts down.
func (s *Server) Serve() error {
	err := s.srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// SetSnapshot publishes a new snapshot.
func (s *Server) SetSnapshot(snap *kpi.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler { return s.srv.Handler }

// Close shuts the server down gracefully.
func (s *Server) Close(ctx context.Context) error { return s.srv.Shutdown(ctx) }
