// internal/httpserver/routes_game.go
//
// Game endpoints:
//   - POST /game/new                → start a game ("random" or "daily" secret)
//   - POST /game/guess              → submit a guess, get feedback + fresh suggestions
//   - POST /game/restart            → re-roll the secret, reset the board
//   - GET  /game/{id}/suggestions   → current ranking without guessing (?limit=N)
//   - DELETE /game/{id}             → drop a finished or abandoned game
//   - GET  /stats/me                → the caller's match statistics
//
// Sessions live in the store; every mutation runs inside store.Update so a
// single game never advances concurrently.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/hint-server/internal/feedback"
	"github.com/robalobadob/wordle/apps/hint-server/internal/game"
	"github.com/robalobadob/wordle/apps/hint-server/internal/store"
	"github.com/robalobadob/wordle/apps/hint-server/internal/suggest"
	"github.com/robalobadob/wordle/apps/hint-server/internal/words"
)

// newGameReq/Res payloads for POST /game/new (Res is also used by restart).
type newGameReq struct {
	Mode   string `json:"mode"`   // "random" (default) | "daily"
	Answer string `json:"answer"` // optional fixed answer (testing)
}
type newGameRes struct {
	GameID      string               `json:"gameId"`
	Mode        string               `json:"mode,omitempty"`
	GuessNumber int                  `json:"guessNumber"`
	Remaining   int                  `json:"remaining"`
	Suggestions []suggest.Suggestion `json:"suggestions"`
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}
type guessRes struct {
	Marks       []feedback.Mark          `json:"marks"`
	Pattern     string                   `json:"pattern"` // X hit, O present, - miss
	State       game.State               `json:"state"`   // "playing" | "won" | "lost"
	GuessNumber int                      `json:"guessNumber"`
	Remaining   int                      `json:"remaining"`
	Progress    float64                  `json:"progress"`
	Suggestions []suggest.Suggestion     `json:"suggestions"`
	Letters     map[string]feedback.Mark `json:"letters"`
	Answer      string                   `json:"answer,omitempty"` // revealed once finished
	StatsError  string                   `json:"statsError,omitempty"`
}

type gameIDReq struct {
	GameID string `json:"gameId"`
}

type suggestionsRes struct {
	GameID      string               `json:"gameId"`
	State       game.State           `json:"state"`
	Remaining   int                  `json:"remaining"`
	Progress    float64              `json:"progress"`
	Suggestions []suggest.Suggestion `json:"suggestions"`
	Candidates  []string             `json:"candidates,omitempty"` // listed once few remain
}

// maxListedCandidates bounds the candidate words echoed by /suggestions.
const maxListedCandidates = 50

// handleNewGame creates a session for the caller and stores it.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json")
			return
		}
	}

	var opts []game.Option
	switch req.Mode {
	case "", "random":
		req.Mode = "random"
	case "daily":
		if s.deps.Daily == nil {
			writeError(w, http.StatusBadRequest, "daily_unavailable")
			return
		}
		opts = append(opts, game.WithPicker(s.deps.Daily))
	default:
		writeError(w, http.StatusBadRequest, "bad_mode")
		return
	}
	if req.Answer != "" {
		ans, err := words.Parse(req.Answer)
		if err != nil || !s.deps.Lexicon.IsTarget(ans) {
			writeError(w, http.StatusBadRequest, "invalid_answer")
			return
		}
		opts = append(opts, game.WithSecret(ans))
	}
	if s.deps.Stats != nil {
		opts = append(opts, game.WithRecorder(s.deps.Stats.Player(playerID(r))))
	}

	g := game.New(s.deps.Lexicon, s.deps.Matrix, s.deps.Engine, opts...)
	if err := s.deps.Store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	log.Info().Str("gameId", g.ID).Str("player", playerID(r)).Str("mode", req.Mode).Msg("new game")

	writeJSON(w, http.StatusOK, newGameRes{
		GameID:      g.ID,
		Mode:        req.Mode,
		GuessNumber: g.GuessNumber(),
		Remaining:   g.Remaining(),
		Suggestions: g.Suggestions(),
	})
}

// handleGuess applies a guess to a stored session.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	var res guessRes
	err := s.deps.Store.Update(r.Context(), req.GameID, func(g *game.Session) error {
		turn, err := g.Submit(r.Context(), req.Guess)
		if err != nil {
			return err
		}
		res = guessRes{
			Marks:       turn.Feedback[:],
			Pattern:     turn.Feedback.String(),
			State:       turn.State,
			GuessNumber: turn.Number,
			Remaining:   turn.Remaining,
			Progress:    turn.Progress,
			Suggestions: turn.Suggestions,
			Letters:     letterMap(g.Letters()),
		}
		if turn.State == game.StateWon || turn.State == game.StateLost {
			res.Answer = g.Secret().String()
		}
		if turn.StatsErr != nil {
			res.StatsError = "stats_unavailable"
		}
		return nil
	})
	if err != nil {
		s.writeGameError(w, req.GameID, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleRestart re-rolls a session's secret in place.
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	var req gameIDReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	var res newGameRes
	err := s.deps.Store.Update(r.Context(), req.GameID, func(g *game.Session) error {
		g.Restart()
		res = newGameRes{
			GameID:      g.ID,
			GuessNumber: g.GuessNumber(),
			Remaining:   g.Remaining(),
			Suggestions: g.Suggestions(),
		}
		return nil
	})
	if err != nil {
		s.writeGameError(w, req.GameID, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleSuggestions returns the current ranking, optionally cut to ?limit=N
// (1..TopK), plus the candidate words once few remain.
func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	limit := s.deps.Engine.TopK()
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 || n > s.deps.Engine.TopK() {
			writeError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = n
	}

	var res suggestionsRes
	err := s.deps.Store.Update(r.Context(), id, func(g *game.Session) error {
		sugg := g.Suggestions()
		res = suggestionsRes{
			GameID:      g.ID,
			State:       g.State(),
			Remaining:   g.Remaining(),
			Progress:    g.Progress(),
			Suggestions: sugg[:min(limit, len(sugg))],
		}
		if res.Remaining <= maxListedCandidates {
			for _, c := range g.Candidates() {
				res.Candidates = append(res.Candidates, c.String())
			}
		}
		return nil
	})
	if err != nil {
		s.writeGameError(w, id, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleDeleteGame removes a session from the store.
func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.deps.Store.Delete(r.Context(), id); err != nil {
		s.writeGameError(w, id, err)
		return
	}
	log.Info().Str("gameId", id).Str("player", playerID(r)).Msg("delete game")
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleStatsMe reports the caller's statistics.
func (s *Server) handleStatsMe(w http.ResponseWriter, r *http.Request) {
	if s.deps.Stats == nil {
		writeError(w, http.StatusNotFound, "stats_disabled")
		return
	}
	id := playerID(r)
	rec, err := s.deps.Stats.Load(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("player", id).Msg("load stats")
		writeError(w, http.StatusInternalServerError, "stats_unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"player": id, "stats": rec})
}

// writeGameError maps store and session errors to HTTP responses.
func (s *Server) writeGameError(w http.ResponseWriter, gameID string, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, game.ErrInvalidWordLength):
		writeError(w, http.StatusBadRequest, "invalid_length")
	case errors.Is(err, game.ErrInvalidCharacter):
		writeError(w, http.StatusBadRequest, "invalid_character")
	case errors.Is(err, game.ErrNotInGuessPool):
		writeError(w, http.StatusBadRequest, "not_in_word_list")
	case errors.Is(err, game.ErrSessionTerminal):
		writeError(w, http.StatusConflict, "game_finished")
	case errors.Is(err, game.ErrDegenerateCandidateSet):
		writeError(w, http.StatusInternalServerError, "internal_inconsistency")
	default:
		log.Error().Err(err).Str("gameId", gameID).Msg("game request")
		writeError(w, http.StatusInternalServerError, "internal_error")
	}
}

func letterMap(in map[byte]feedback.Mark) map[string]feedback.Mark {
	out := make(map[string]feedback.Mark, len(in))
	for c, m := range in {
		out[string(rune(c))] = m
	}
	return out
}
