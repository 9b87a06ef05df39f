// internal/httpserver/server.go
//
// HTTP server wiring for the Wordle hint backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints: POST /game/new, POST /game/guess, POST /game/restart,
//     GET /game/{id}/suggestions, DELETE /game/{id}.
//   - Player stats: GET /stats/me.
//   - Idle sweeper: evicts games untouched for SessionIdleMinutes.
//
// Notes:
//   - CORS is origin‑aware and credentials‑enabled (so the player cookie works).
//   - Every request is tagged with a player ID carried in a signed JWT cookie;
//     guests get one on first contact.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/hint-server/internal/config"
	"github.com/robalobadob/wordle/apps/hint-server/internal/feedback"
	"github.com/robalobadob/wordle/apps/hint-server/internal/game"
	"github.com/robalobadob/wordle/apps/hint-server/internal/stats"
	"github.com/robalobadob/wordle/apps/hint-server/internal/store"
	"github.com/robalobadob/wordle/apps/hint-server/internal/suggest"
	"github.com/robalobadob/wordle/apps/hint-server/internal/words"
)

// Deps are the collaborators a Server needs. Stats and Daily may be nil.
type Deps struct {
	Lexicon *words.Lexicon
	Matrix  *feedback.Matrix
	Engine  *suggest.Engine
	Store   store.Store
	Stats   stats.Store
	Daily   game.SecretPicker
}

// Server bundles the router, the session store and the shared engine.
type Server struct {
	r      *chi.Mux
	deps   Deps
	cfg    config.Config
	player *playerTokens
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps, cfg config.Config) *Server {
	s := &Server{
		r:      chi.NewRouter(),
		deps:   d,
		cfg:    cfg,
		player: newPlayerTokens(cfg.JWTSecret, cfg.CookieName, cfg.JWTExpiresDays),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                       // zerolog request line
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFor(cfg.ClientOrigin))       // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "wordle-hints",
			"endpoints": []string{
				"/health", "/debug/words",
				"POST /game/new", "POST /game/guess", "POST /game/restart",
				"GET /game/{id}/suggestions", "DELETE /game/{id}", "GET /stats/me",
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		t, g := d.Lexicon.Stats()
		writeJSON(w, http.StatusOK, map[string]int{"answers": t, "allowed": g, "matrix": d.Matrix.Size()})
	})

	// Game + stats endpoints, all tagged with a player ID.
	s.r.Group(func(r chi.Router) {
		r.Use(s.withPlayer)
		r.Post("/game/new", s.handleNewGame)
		r.Post("/game/guess", s.handleGuess)
		r.Post("/game/restart", s.handleRestart)
		r.Get("/game/{id}/suggestions", s.handleSuggestions)
		r.Delete("/game/{id}", s.handleDeleteGame)
		r.Get("/stats/me", s.handleStatsMe)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

// RunSweeper evicts idle sessions every interval until ctx is done.
func (s *Server) RunSweeper(ctx context.Context, every time.Duration) {
	idle := time.Duration(s.cfg.SessionIdleMinutes) * time.Minute
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.deps.Store.Sweep(ctx, idle); n > 0 {
				log.Debug().Int("evicted", n).Dur("idle", idle).Msg("sweep sessions")
			}
		}
	}
}

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

// corsFor enables credentialed CORS for a single origin.
func corsFor(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// accessLog writes one debug line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("http")
	})
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
