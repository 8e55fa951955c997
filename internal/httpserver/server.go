// internal/httpserver/server.go
//
// HTTP server wiring for the Associa leaderboard.
// Responsibilities:
//   - Router + middleware (request IDs, access log, panic recovery, timeouts,
//     JSON, CORS).
//   - Public endpoints: "/", "/health".
//   - Leaderboard endpoints: GET/POST /scores, GET /settings (routes_scores.go).
//
// Notes:
//   - CORS is origin-aware for the configured browser client origins.
//   - Every leaderboard endpoint goes through leaderboard.Core, which applies
//     the lazy daily reset before answering.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/associa/internal/leaderboard"
)

// Server bundles the router and the leaderboard core.
type Server struct {
	r    *chi.Mux
	core *leaderboard.Core
}

// Options tunes middleware.
type Options struct {
	ClientOrigins  []string      // allowed CORS origins
	HandlerTimeout time.Duration // defaults to 10s
}

// New constructs a Server, installs middleware, and registers routes.
func New(core *leaderboard.Core, opts Options) *Server {
	s := &Server{r: chi.NewRouter(), core: core}
	if opts.HandlerTimeout <= 0 {
		opts.HandlerTimeout = 10 * time.Second
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                    // add X-Request-ID
	s.r.Use(chimw.RealIP)                       // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                          // one zerolog line per request
	s.r.Use(chimw.Recoverer)                    // recover from panics
	s.r.Use(chimw.Timeout(opts.HandlerTimeout)) // bound handler time
	s.r.Use(jsonContentType)                    // default JSON responses
	s.r.Use(corsHandler(opts.ClientOrigins))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"associa-leaderboard","endpoints":["/health","GET /scores","POST /scores","GET /settings"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.mountScores(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	s.r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method_not_allowed"})
	})

	return s
}

// Handler exposes the router (useful for tests and embedding).
func (s *Server) Handler() http.Handler { return s.r }

// Run serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsHandler allows the browser game origins to call the API.
func corsHandler(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler
}

// accessLog writes one structured line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		ev := log.Info()
		if ww.Status() >= http.StatusInternalServerError {
			ev = log.Warn()
		}
		ev.Str("requestId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
