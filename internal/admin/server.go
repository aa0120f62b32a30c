// Package admin runs the operator listener: pprof profiles, a health probe and
// a description of the running configuration. It is kept off the public port.
package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/corricelli/NGSS-Dynamic-Data-Gem/internal"
)

// Info describes the running form for operators
type Info struct {
	CatalogSource      string   `json:"catalog_source"`
	CatalogFingerprint string   `json:"catalog_fingerprint"`
	Phenomena          []string `json:"phenomena"`
	Endpoint           string   `json:"endpoint"`
	StartedAt          string   `json:"started_at"`
}

// Server is the admin listener
type Server struct {
	router *chi.Mux
	info   Info
	logger *internal.Logger
}

// NewServer creates the admin router
func NewServer(info Info, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	if info.StartedAt == "" {
		info.StartedAt = time.Now().UTC().Format(time.RFC3339)
	}

	s := &Server{
		router: chi.NewRouter(),
		info:   info,
		logger: logger.Named("admin"),
	}
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Mount("/debug", middleware.Profiler())
	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/info", s.handleInfo)
	return s
}

// Handler exposes the router
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.info)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Serve listens on addr until ctx is cancelled
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("admin server listening on %s", addr)
		s.logger.Info("view profiles: go tool pprof -http=:8081 http://%s/debug/pprof/profile?seconds=30", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("admin server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("admin server shutdown: %w", err)
	}
	<-errCh
	return nil
}
