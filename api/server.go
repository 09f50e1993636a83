// Package api serves comparisons over HTTP as JSON.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/coder26-cmd/anti-plagiarism/domain"
	"github.com/coder26-cmd/anti-plagiarism/internal/version"
)

// Server is the HTTP front end of a ComparisonService
type Server struct {
	service         domain.ComparisonService
	logger          *slog.Logger
	maxRequestBytes int64
	router          *mux.Router
}

// NewServer builds the router. logger may be nil.
func NewServer(service domain.ComparisonService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		service:         service,
		logger:          logger,
		maxRequestBytes: domain.DefaultMaxRequestBytes,
	}

	router := mux.NewRouter()
	router.Use(s.logRequests)

	router.HandleFunc("/healthz", s.healthHandler).Methods("GET")
	router.HandleFunc("/api/v1/compare", s.compareHandler).Methods("POST")
	router.HandleFunc("/api/v1/canonicalize", s.canonicalizeHandler).Methods("POST")

	s.router = router
	return s
}

// SetMaxRequestBytes limits the size of accepted request bodies
func (s *Server) SetMaxRequestBytes(n int64) {
	s.maxRequestBytes = n
}

// Handler returns the routed handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server starting", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("http server shutting down")
	return server.Shutdown(shutdownCtx)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		rec.Header().Set("Server", version.UserAgent())
		next.ServeHTTP(rec, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}
