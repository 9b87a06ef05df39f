// internal/game/types.go
//
// Core type definitions for the game session.
// Defines:
//   - State: coarse session state (awaiting guess / won / lost / aborted).
//   - Turn: one accepted guess with its feedback and the refreshed hints.
//   - SecretPicker / Recorder: collaborators injected into a Session.

package game

import (
	"context"

	"github.com/robalobadob/wordle/apps/hint-server/internal/feedback"
	"github.com/robalobadob/wordle/apps/hint-server/internal/suggest"
	"github.com/robalobadob/wordle/apps/hint-server/internal/words"
)

// MaxGuesses is the number of guesses allowed per game.
const MaxGuesses = 6

// State is the coarse state of a session.
type State int

const (
	StateAwaitingGuess State = iota
	StateWon
	StateLost
	// StateAborted follows an internal consistency fault; only Restart leaves it.
	StateAborted
)

// String returns the wire name of the state.
func (s State) String() string {
	switch s {
	case StateWon:
		return "won"
	case StateLost:
		return "lost"
	case StateAborted:
		return "aborted"
	default:
		return "playing"
	}
}

// MarshalText encodes the state as its wire name.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Terminal reports whether no further guesses are accepted.
func (s State) Terminal() bool { return s != StateAwaitingGuess }

// Turn is the outcome of one accepted guess.
type Turn struct {
	Number      int                  // 1-based guess number this turn used
	Guess       words.Word           // the accepted guess
	Feedback    feedback.Feedback    // guess scored against the secret
	State       State                // state after the turn
	Remaining   int                  // candidates left after filtering
	Progress    float64              // narrowing fraction, 0..1
	Suggestions []suggest.Suggestion // ranking for the new candidate set
	StatsErr    error                // non-nil if the stats recorder failed on a finishing turn
}

// SecretPicker chooses the secret for a new or restarted game.
type SecretPicker interface {
	PickSecret(lex *words.Lexicon) words.Word
}

// PickerFunc adapts a function to SecretPicker.
type PickerFunc func(lex *words.Lexicon) words.Word

// PickSecret calls f.
func (f PickerFunc) PickSecret(lex *words.Lexicon) words.Word { return f(lex) }

// RandomPicker draws uniformly from the target pool.
var RandomPicker SecretPicker = PickerFunc(func(lex *words.Lexicon) words.Word {
	return lex.RandomTarget()
})

// Recorder receives finished-game outcomes.
type Recorder interface {
	RecordWin(ctx context.Context, guessNumber int) error
	RecordLoss(ctx context.Context) error
}
