// internal/game/letters.go
//
// Keyboard summary for a session.
// LetterStates folds the turn history into one mark per guessed letter,
// keeping the strongest: hit beats present beats miss.

package game

import "github.com/robalobadob/wordle/apps/hint-server/internal/feedback"

// LetterStates returns, for every letter guessed so far, the strongest mark it
// has received: hit beats present beats miss. This is what an on-screen
// keyboard colours its keys with.
func LetterStates(turns []Turn) map[byte]feedback.Mark {
	out := make(map[byte]feedback.Mark)
	for _, t := range turns {
		for i, m := range t.Feedback {
			c := t.Guess[i]
			if prev, seen := out[c]; !seen || m > prev {
				out[c] = m
			}
		}
	}
	return out
}
