// internal/game/errors.go
//
// Sentinel errors returned by Session.Submit. Match them with errors.Is.
// Validation errors leave the session untouched; ErrDegenerateCandidateSet
// aborts the session.

package game

import (
	"errors"

	"github.com/robalobadob/wordle/apps/hint-server/internal/words"
)

var (
	// ErrInvalidWordLength: the guess is not exactly five letters.
	ErrInvalidWordLength = words.ErrInvalidLength

	// ErrInvalidCharacter: the guess contains a non-alphabetic code point.
	ErrInvalidCharacter = words.ErrInvalidCharacter

	// ErrNotInGuessPool: the guess is well formed but not a legal guess.
	ErrNotInGuessPool = errors.New("game: not in word list")

	// ErrSessionTerminal: the game is already won, lost or aborted.
	ErrSessionTerminal = errors.New("game: game finished")

	// ErrDegenerateCandidateSet: filtering emptied the candidate set. This means the
	// feedback codec and the matrix disagree and is never a user error.
	ErrDegenerateCandidateSet = errors.New("game: candidate set is empty")
)
