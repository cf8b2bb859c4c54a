// internal/httpserver/server.go
//
// HTTP server wiring for the ghostcode backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Game endpoints (require auth): POST /game/start, POST /game/submit,
//     GET /game/leaderboard.
//   - Profile read models (require auth): /profile/stats, /profile/sessions.
//   - Admin read models (require auth + admin): mounted under /admin.
//   - Auth endpoints: /auth/register, /auth/login, /auth/logout, /auth/me.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Game state transitions live in internal/game; handlers here only map
//     transport to the service and its errors to status codes.

package httpserver

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"ghostcode/internal/config"
	"ghostcode/internal/game"
)

// Server bundles router, game session service, and DB handle for read models.
type Server struct {
	r   *chi.Mux
	svc *game.Service
	db  *sql.DB
	cfg config.Config
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, svc *game.Service, db *sql.DB) *Server {
	s := &Server{r: chi.NewRouter(), svc: svc, db: db, cfg: cfg}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"ghostcode","endpoints":["/health","POST /game/start","POST /game/submit","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.mountAuthRoutes()

	// Game + profile (require auth)
	s.r.Route("/game", func(r chi.Router) {
		r.Use(s.requireAuth())
		r.Post("/start", s.handleStart)
		r.Post("/submit", s.handleSubmit)
		r.Get("/leaderboard", s.handleLeaderboard)
	})
	s.r.Route("/profile", func(r chi.Router) {
		r.Use(s.requireAuth())
		r.Get("/stats", s.handleStats)
		r.Get("/sessions", s.handleSessions)
	})

	s.mountAdmin()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", s.cfg.ClientOrigin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
