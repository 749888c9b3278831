// Package server implements the relay service: a stateless HTTP
// endpoint that validates explanation requests, optionally
// authenticates them, builds the prompt, and calls the generative API
// with a server-held key.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/exply-app/exply/internal/auth"
	"github.com/exply-app/exply/internal/config"
	"github.com/exply-app/exply/internal/llm"
	"github.com/exply-app/exply/internal/usage"
)

// Server is the exply relay.
type Server struct {
	cfg        config.ServerConfig
	provider   llm.Provider
	verifier   auth.Verifier // nil when no identity provider is configured
	meter      *usage.Store  // nil when metering is disabled
	router     chi.Router
	httpServer *http.Server
}

// New creates a relay server. verifier and meter may be nil; the
// configured auth policy decides what a nil verifier means (fail closed
// under PolicyRequired, fail open under PolicyOpen).
func New(cfg config.ServerConfig, provider llm.Provider, verifier auth.Verifier, meter *usage.Store) *Server {
	s := &Server{
		cfg:      cfg,
		provider: provider,
		verifier: verifier,
		meter:    meter,
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(90 * time.Second))

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           300,
	}
	if s.cfg.AllowAllOrigins {
		// Browser extensions call from arbitrary page origins.
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		switch {
		case s.verifier != nil:
			r.Use(auth.Middleware(s.verifier))
		case s.cfg.AuthPolicy == config.PolicyRequired:
			log.Warn().Msg("no identity provider configured and auth_policy=required; rejecting all /explain requests")
			r.Use(auth.RejectAll())
		default:
			log.Warn().Msg("no identity provider configured; serving /explain unauthenticated (auth_policy=open)")
		}
		r.Post("/explain", s.handleExplain)
	})

	return r
}

// requestLogger is a zerolog replacement for chi's default logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}

// Router returns the chi router, exported for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Info().Str("addr", addr).Str("provider", s.provider.Name()).Msg("exply relay listening")
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
