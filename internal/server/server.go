// Package server exposes the projection engine and the reinvestment book over
// HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/iwvelando/cashflow-forecast/internal/session"
	"go.uber.org/zap"
)

// WebAPI is the HTTP front end of the projection service.
type WebAPI struct {
	router *chi.Mux
	logger *zap.Logger
	server *http.Server
	cfg    *Config
}

// NewWebAPI wires the API routes around the given book. A nil cfg uses
// DefaultConfig and a nil book starts empty.
func NewWebAPI(logger *zap.Logger, cfg *Config, book *session.Book, version string) *WebAPI {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if book == nil {
		book = session.NewBook(logger)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(requestLogger(logger))
	router.Use(middleware.Recoverer)

	h := newHandler(logger, book, cfg.UploadSizeBytes(), version)
	router.Route("/api", func(r chi.Router) {
		r.Get("/version", h.handleVersion)

		r.Get("/events", h.handleListEvents)
		r.Delete("/events", h.handleClearAll)
		r.Get("/events/export", h.handleExportEvents)
		r.Post("/events/{category}", h.handleAddEvent)
		r.Delete("/events/{category}", h.handleClearCategory)

		r.Post("/projection", h.handleProjection)
		r.Post("/projection/csv", h.handleProjectionCSV)
	})

	return &WebAPI{
		router: router,
		logger: logger,
		cfg:    cfg,
		server: &http.Server{
			Addr:    cfg.Address,
			Handler: router,
		},
	}
}

// Handler returns the routed HTTP handler.
func (w *WebAPI) Handler() http.Handler {
	return w.router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (w *WebAPI) Start(ctx context.Context) error {
	serverErrors := make(chan error, 1)

	go func() {
		w.logger.Info("starting server",
			zap.String("op", "server.Start"),
			zap.String("addr", w.server.Addr),
		)
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		w.logger.Info("shutdown initiated", zap.String("op", "server.Start"))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), w.cfg.ShutdownTimeoutDuration())
		defer cancel()

		if err := w.server.Shutdown(shutdownCtx); err != nil {
			w.logger.Error("graceful shutdown failed",
				zap.String("op", "server.Start"),
				zap.Error(err),
			)
			return w.server.Close()
		}
	}

	return nil
}

func normalizeVersion(version string) string {
	trimmed := strings.TrimSpace(version)
	if trimmed == "" {
		return "dev"
	}
	return trimmed
}
