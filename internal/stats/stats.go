// internal/stats/stats.go
//
// Persisted match statistics.
// Implementations:
//   - JSONFile: a single data.json document (one local player).
//   - SQLite:   per-player rows in the app database.
//   - Memory:   per-player records held in a map (tests, ephemeral servers).
//
// Each implementation hands out a game.Recorder per player via Player(id) and
// reads a player's totals back with Load.

package stats

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/robalobadob/wordle/apps/hint-server/internal/game"
)

// ErrBadGuessNumber is returned when a win is recorded outside 1..game.MaxGuesses.
var ErrBadGuessNumber = errors.New("stats: guess number out of range")

// Record is one player's totals. Field names match the data.json document.
type Record struct {
	MatchesPlayed int            `json:"matches_played"`
	MatchesWon    int            `json:"matches_won"`
	MatchesLost   int            `json:"matches_lost"`
	WinIndeces    map[string]int `json:"win_indeces"`
}

// NewRecord returns a zeroed record with every win index present.
func NewRecord() Record {
	r := Record{WinIndeces: make(map[string]int, game.MaxGuesses)}
	for k := 1; k <= game.MaxGuesses; k++ {
		r.WinIndeces[strconv.Itoa(k)] = 0
	}
	return r
}

// Store is a backend that can record and report per-player statistics.
type Store interface {
	Player(id string) game.Recorder
	Load(ctx context.Context, playerID string) (Record, error)
}

// addWin applies a win at guess k.
func (r *Record) addWin(k int) error {
	if err := checkGuessNumber(k); err != nil {
		return err
	}
	r.normalise()
	r.MatchesPlayed++
	r.MatchesWon++
	r.WinIndeces[strconv.Itoa(k)]++
	return nil
}

func (r *Record) addLoss() {
	r.normalise()
	r.MatchesPlayed++
	r.MatchesLost++
}

// normalise fills in win indices missing from hand-edited or older documents.
func (r *Record) normalise() {
	if r.WinIndeces == nil {
		r.WinIndeces = make(map[string]int, game.MaxGuesses)
	}
	for k := 1; k <= game.MaxGuesses; k++ {
		key := strconv.Itoa(k)
		if _, ok := r.WinIndeces[key]; !ok {
			r.WinIndeces[key] = 0
		}
	}
}

func (r Record) clone() Record {
	out := r
	out.WinIndeces = make(map[string]int, len(r.WinIndeces))
	for k, v := range r.WinIndeces {
		out.WinIndeces[k] = v
	}
	return out
}

func checkGuessNumber(k int) error {
	if k < 1 || k > game.MaxGuesses {
		return fmt.Errorf("%w: %d", ErrBadGuessNumber, k)
	}
	return nil
}

// recorderFunc adapts a pair of closures to game.Recorder.
type recorderFunc struct {
	win  func(ctx context.Context, k int) error
	loss func(ctx context.Context) error
}

func (r recorderFunc) RecordWin(ctx context.Context, k int) error { return r.win(ctx, k) }
func (r recorderFunc) RecordLoss(ctx context.Context) error       { return r.loss(ctx) }
