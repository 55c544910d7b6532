// Package server exposes the brokerage core as a JSON HTTP API for the
// web front end. The ledger lives in memory for the lifetime of the
// process: one snapshot behind a mutex, replaced wholesale on every
// applied transition.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/miraclehq/miracle"
	"github.com/miraclehq/miracle/insight"
)

// Config holds server configuration.
type Config struct {
	Port    int
	Log     zerolog.Logger
	Catalog *miracle.Catalog
	Ledger  *miracle.Ledger
	Insight *insight.Client
}

// Server is the HTTP server around one catalog and one live ledger.
type Server struct {
	router  *chi.Mux
	server  *http.Server
	log     zerolog.Logger
	catalog *miracle.Catalog
	insight *insight.Client

	mu     sync.Mutex
	ledger *miracle.Ledger
}

// New creates the HTTP server and wires its middleware and routes.
func New(cfg Config) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		log:     cfg.Log.With().Str("component", "server").Logger(),
		catalog: cfg.Catalog,
		insight: cfg.Insight,
		ledger:  cfg.Ledger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	// the SPA runs on its own dev origin
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/instruments", s.handleListInstruments)
		r.Get("/instruments/{symbol}", s.handleGetInstrument)

		r.Get("/portfolio", s.handleGetPortfolio)
		r.Get("/portfolio/performance", s.handleGetPerformance)
		r.Get("/portfolio/allocation", s.handleGetAllocation)

		r.Post("/trades", s.handleCreateTrade)
		r.Get("/transactions", s.handleListTransactions)

		r.Get("/pies", s.handleListPies)
		r.Post("/pies", s.handleCreatePie)
		r.Delete("/pies/{id}", s.handleDeletePie)

		r.Post("/deposits", s.handleCreateDeposit)
		r.Post("/withdrawals", s.handleCreateWithdrawal)

		r.Get("/insights/instruments/{symbol}", s.handleInstrumentInsight)
		r.Get("/insights/portfolio", s.handlePortfolioInsight)
	})
}

// ServeHTTP makes the server usable as a plain http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// snapshot returns the current ledger. The pointer is safe to read from
// without the lock: snapshots are immutable.
func (s *Server) snapshot() *miracle.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger
}

// swap applies one transition and installs the resulting snapshot. On
// error the current snapshot stays in place.
func (s *Server) swap(apply func(*miracle.Ledger) (*miracle.Ledger, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := apply(s.ledger)
	if err != nil {
		return err
	}
	s.ledger = next
	return nil
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
