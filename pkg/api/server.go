// Package api binsave REST API
//
// @title           binsave REST API
// @version         1.0.0
// @description     Read, write and persist the fields of a fixed-schema binary record.
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in              header
// @name            X-API-Key
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/swaggo/swag"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// Routes builds the router for the server
func (s *Server) Routes() http.Handler {
	metrics := s.metrics
	if metrics == nil {
		metrics = NewMetrics()
		s.metrics = metrics
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", metrics.Handler())

	// API key authentication middleware for protected routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(metrics.InstrumentAuthMiddleware(apiKeyMiddleware(s.config.APIKey)))

		// Health check
		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", s.handleHealth))

		// Record operations
		r.Get("/layout", metrics.InstrumentHandler("GET", "/api/v1/layout", s.handleLayout))
		r.Get("/fields/{name}", metrics.InstrumentHandler("GET", "/api/v1/fields/{name}", s.handleGetField))
		r.Put("/fields/{name}", metrics.InstrumentHandler("PUT", "/api/v1/fields/{name}", s.handlePutField))
		r.Get("/export", metrics.InstrumentHandler("GET", "/api/v1/export", s.handleExport))
		r.Post("/import", metrics.InstrumentHandler("POST", "/api/v1/import", s.handleImport))
		r.Post("/persist", metrics.InstrumentHandler("POST", "/api/v1/persist", s.handlePersist))
	})

	// Swagger documentation (unprotected)
	r.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
		if err != nil {
			Logger().Error("generate swagger doc", zap.Error(err))
			http.Error(w, "Failed to generate Swagger documentation", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(doc))
	})

	return r
}

// StartServer serves session until ctx is cancelled, then shuts down
// gracefully
func StartServer(ctx context.Context, session RecordSession, config ServerConfig) error {
	server := NewServer(session, config, NewMetrics())

	addr := net.JoinHostPort(config.Bind, strconv.Itoa(config.Port))
	SwaggerInfo.Host = addr

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		Logger().Info("starting binsave REST API server",
			zap.String("addr", addr),
			zap.String("session", session.ID().String()),
			zap.String("metrics", fmt.Sprintf("http://%s/metrics", addr)))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	Logger().Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
