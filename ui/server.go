package ui

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/corricelli/NGSS-Dynamic-Data-Gem/app"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/internal"
)

// Options tune the web surface
type Options struct {
	// AutoRedirect answers an accepted HTML submission with a redirect to the external form
	AutoRedirect bool
	// ShutdownTimeout bounds graceful shutdown in Serve
	ShutdownTimeout time.Duration
}

// Server represents the web server for the parameter form
type Server struct {
	router    *gin.Engine
	templates *template.Template
	forms     *app.FormService
	logger    *internal.Logger
	opts      Options
}

// NewServer creates a new web server instance with its routes registered
func NewServer(forms *app.FormService, opts Options, logger *internal.Logger) (*Server, error) {
	if forms == nil {
		return nil, fmt.Errorf("form service cannot be nil")
	}
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}

	templates, err := parseTemplates(assets)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		router:    gin.New(),
		templates: templates,
		forms:     forms,
		logger:    logger.Named("http"),
		opts:      opts,
	}
	if err := s.setupMiddleware(); err != nil {
		return nil, fmt.Errorf("failed to set up middleware: %w", err)
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.POST("/submit", s.handleSubmit)
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api")
	api.GET("/catalog", s.handleCatalog)
	api.POST("/submissions", s.handleCreateSubmission)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("form server listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down form server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("form server shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
