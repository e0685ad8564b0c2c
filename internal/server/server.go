// Package server exposes the resolver as an HTTP JSON endpoint.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// Options configures the HTTP server.
type Options struct {
	Addr           string
	RequestTimeout time.Duration
	// Metrics is mounted on /metrics when set.
	Metrics http.Handler
}

// NewRouter creates the HTTP router with all routes configured.
func NewRouter(r Resolver, log logrus.FieldLogger, opts Options) *chi.Mux {
	h := NewResolveHandler(r, log)
	mux := chi.NewRouter()

	// Global middleware
	mux.Use(middleware.CleanPath)
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(RequestLogger(log))
	mux.Use(middleware.Recoverer)
	mux.Use(CORS)

	mux.Get("/health", Health)
	if opts.Metrics != nil {
		mux.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	mux.Route("/api/v1", func(api chi.Router) {
		if opts.RequestTimeout > 0 {
			api.Use(middleware.Timeout(opts.RequestTimeout))
		}
		api.Get("/resolve", h.Get)
		api.Post("/resolve", h.Post)
	})

	return mux
}

// ListenAndServe runs the server until ctx is done, then shuts it down.
func ListenAndServe(ctx context.Context, handler http.Handler, opts Options, log logrus.FieldLogger) error {
	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", opts.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
