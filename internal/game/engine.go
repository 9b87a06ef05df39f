// internal/game/engine.go
//
// Game session state machine for a single player.
// Responsibilities:
//   - Create new sessions (6 guesses, 5 letters) with a secret from a SecretPicker.
//   - Validate and apply guesses (length, alphabetic, allowed list).
//   - Score guesses with the two‑pass feedback codec.
//   - Narrow the candidate set and refresh ranked suggestions after each guess.
//   - Track state transitions: playing → won/lost, and report outcomes to a Recorder.
//
// Notes:
//   - A Session is not safe for concurrent use; callers serialise access.
//   - Rejected guesses never change the guess number, candidates or history.
//   - randomID() is a compact hex identifier for correlating server state.

package game

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/hint-server/internal/candidates"
	"github.com/robalobadob/wordle/apps/hint-server/internal/feedback"
	"github.com/robalobadob/wordle/apps/hint-server/internal/suggest"
	"github.com/robalobadob/wordle/apps/hint-server/internal/words"
)

// Session holds the state of one game.
type Session struct {
	ID string

	lex      *words.Lexicon
	engine   *suggest.Engine
	tracker  *candidates.Tracker
	picker   SecretPicker
	recorder Recorder

	secret      words.Word
	fixedSecret bool
	guessNum    int // next guess number, 1..MaxGuesses
	state       State
	wonAt       int
	turns       []Turn
	suggestions []suggest.Suggestion
}

// Option configures a Session.
type Option func(*Session)

// WithSecret fixes the first game's secret. Restart still uses the picker.
func WithSecret(w words.Word) Option {
	return func(s *Session) {
		s.secret = w
		s.fixedSecret = true
	}
}

// WithPicker sets the secret picker (default RandomPicker).
func WithPicker(p SecretPicker) Option {
	return func(s *Session) { s.picker = p }
}

// WithRecorder sets the stats recorder notified when a game finishes.
func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

// New constructs a session awaiting guess 1 with the full candidate set.
// The matrix must have been built from lex's targets.
func New(lex *words.Lexicon, m *feedback.Matrix, engine *suggest.Engine, opts ...Option) *Session {
	s := &Session{
		ID:      randomID(),
		lex:     lex,
		engine:  engine,
		tracker: candidates.New(lex, m),
		picker:  RandomPicker,
	}
	for _, o := range opts {
		o(s)
	}
	if !s.fixedSecret {
		s.secret = s.picker.PickSecret(lex)
	}
	s.begin()
	return s
}

// Restart re-rolls the secret and returns to guess 1 with all targets as candidates.
func (s *Session) Restart() {
	s.secret = s.picker.PickSecret(s.lex)
	s.tracker.Reset()
	s.begin()
}

func (s *Session) begin() {
	s.guessNum = 1
	s.state = StateAwaitingGuess
	s.wonAt = 0
	s.turns = nil
	s.suggestions = s.engine.Rank(s.tracker.Indices())
}

// Submit validates and applies a guess.
//
// Validation rules (checked in order, none of them mutate the session):
//   - Game must not be finished (ErrSessionTerminal).
//   - Guess must be exactly 5 letters (ErrInvalidWordLength) and alphabetic (ErrInvalidCharacter).
//   - Guess must be present in the guess pool (ErrNotInGuessPool).
//
// State transitions:
//   - If all tiles are Hit → Won at this guess number.
//   - Else if this was guess 6 → Lost.
//   - Else → awaiting the next guess.
func (s *Session) Submit(ctx context.Context, raw string) (*Turn, error) {
	if s.state.Terminal() {
		return nil, ErrSessionTerminal
	}
	guess, err := words.Parse(raw)
	if err != nil {
		return nil, err
	}
	if !s.lex.IsGuess(guess) {
		return nil, fmt.Errorf("%w: %s", ErrNotInGuessPool, guess)
	}

	observed := feedback.Compute(guess, s.secret)
	remaining := s.tracker.Filter(guess, observed)
	if remaining == 0 {
		s.state = StateAborted
		log.Error().
			Str("session", s.ID).
			Str("guess", guess.String()).
			Str("feedback", observed.String()).
			Int("guessNumber", s.guessNum).
			Msg("candidate set emptied; feedback matrix and codec disagree")
		return nil, fmt.Errorf("%w: guess %s, feedback %s", ErrDegenerateCandidateSet, guess, observed)
	}

	turn := Turn{
		Number:    s.guessNum,
		Guess:     guess,
		Feedback:  observed,
		Remaining: remaining,
		Progress:  s.tracker.Progress(),
	}

	switch {
	case observed.Solved():
		s.state = StateWon
		s.wonAt = s.guessNum
	case s.guessNum == MaxGuesses:
		s.state = StateLost
	default:
		s.guessNum++
	}
	turn.State = s.state

	s.suggestions = s.engine.Rank(s.tracker.Indices())
	turn.Suggestions = s.suggestions

	if s.state.Terminal() {
		turn.StatsErr = s.record(ctx)
	}
	s.turns = append(s.turns, turn)
	return &turn, nil
}

// record reports a finished game to the recorder, if any.
func (s *Session) record(ctx context.Context) error {
	if s.recorder == nil {
		return nil
	}
	var err error
	if s.state == StateWon {
		err = s.recorder.RecordWin(ctx, s.wonAt)
	} else {
		err = s.recorder.RecordLoss(ctx)
	}
	if err != nil {
		log.Warn().Err(err).Str("session", s.ID).Str("state", s.state.String()).Msg("record stats")
	}
	return err
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// GuessNumber returns the number the next guess will use (1..6).
// After the game ends it is the number of the last accepted guess.
func (s *Session) GuessNumber() int { return s.guessNum }

// WonAt returns the winning guess number, or 0 if the game was not won.
func (s *Session) WonAt() int { return s.wonAt }

// Secret returns the secret word.
func (s *Session) Secret() words.Word { return s.secret }

// Turns returns the accepted guesses so far. Callers must not modify it.
func (s *Session) Turns() []Turn { return s.turns }

// Suggestions returns the ranking for the current candidate set.
func (s *Session) Suggestions() []suggest.Suggestion { return s.suggestions }

// Remaining returns the number of candidates left.
func (s *Session) Remaining() int { return s.tracker.Len() }

// Candidates returns the remaining candidate words.
func (s *Session) Candidates() []words.Word { return s.tracker.Words() }

// Progress returns the narrowing fraction of the candidate set.
func (s *Session) Progress() float64 { return s.tracker.Progress() }

// Letters summarises the best known mark per guessed letter.
func (s *Session) Letters() map[byte]feedback.Mark { return LetterStates(s.turns) }

// randomID returns a compact 16‑hex‑char identifier.
// Collisions are extremely unlikely given crypto/rand entropy.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
