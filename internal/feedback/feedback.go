// internal/feedback/feedback.go
//
// Feedback codec: per-letter evaluation of a guess against a target.
//
// Defines:
//   - Mark: result for one position (miss/present/hit).
//   - Feedback: fixed five-position result, comparable and hashable.
//   - Code: Feedback packed base-3 into one byte (0..242), used by the matrix.
//
// Compute implements the two-pass scoring algorithm so repeated letters in the
// guess are credited at most as many times as they occur in the target.

package feedback

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robalobadob/wordle/apps/hint-server/internal/words"
)

// Mark represents the evaluation result for a single letter in a guess.
// The numeric values are the base-3 digits used by Code.
type Mark uint8

const (
	MarkMiss    Mark = iota // letter does not occur (or all occurrences are already credited)
	MarkPresent             // letter occurs at a different position
	MarkHit                 // letter is at this exact position
)

// Symbols used by String / ParseFeedback.
const (
	symbolMiss    = '-'
	symbolPresent = 'O'
	symbolHit     = 'X'
)

// ErrBadPattern is returned by ParseFeedback for malformed input.
var ErrBadPattern = errors.New("feedback: pattern must be 5 of '-', 'O', 'X'")

// String returns the JSON/text name of the mark.
func (m Mark) String() string {
	switch m {
	case MarkHit:
		return "hit"
	case MarkPresent:
		return "present"
	default:
		return "miss"
	}
}

// MarshalText encodes the mark as "hit" / "present" / "miss".
func (m Mark) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// Symbol returns the single-character form of the mark.
func (m Mark) Symbol() byte {
	switch m {
	case MarkHit:
		return symbolHit
	case MarkPresent:
		return symbolPresent
	default:
		return symbolMiss
	}
}

// Feedback is the result of comparing a guess to a target, one Mark per position.
type Feedback [words.Length]Mark

// Code is a Feedback packed as a base-3 number; position 0 is the least significant digit.
type Code uint8

// NumCodes is the number of distinct codes (3^5).
const NumCodes = 243

// AllHit is the code of a fully solved row.
const AllHit Code = NumCodes - 1

// Compute scores guess against target.
//
// Pass 1:
//   - Mark exact matches as Hit.
//   - Count remaining (non‑hit) target letters by letter index.
//
// Pass 2:
//   - For each non‑hit guess letter: if there is remaining count for that letter,
//     mark Present and decrement the count; otherwise mark Miss.
func Compute(guess, target words.Word) Feedback {
	var res Feedback
	var counts [26]uint8

	// First pass: mark hits and collect counts for remaining target letters.
	for i := 0; i < words.Length; i++ {
		if guess[i] == target[i] {
			res[i] = MarkHit
		} else {
			counts[target[i]-'a']++
		}
	}

	// Second pass: resolve presents/misses for non‑hit tiles.
	for i := 0; i < words.Length; i++ {
		if res[i] == MarkHit {
			continue
		}
		j := guess[i] - 'a'
		if counts[j] > 0 {
			res[i] = MarkPresent
			counts[j]--
		}
	}
	return res
}

// Code packs f into a single byte.
func (f Feedback) Code() Code {
	var c Code
	for i := words.Length - 1; i >= 0; i-- {
		c = c*3 + Code(f[i])
	}
	return c
}

// Feedback unpacks c.
func (c Code) Feedback() Feedback {
	var f Feedback
	for i := 0; i < words.Length; i++ {
		f[i] = Mark(c % 3)
		c /= 3
	}
	return f
}

// Solved reports whether every position is a hit.
func (f Feedback) Solved() bool { return f == AllHit.Feedback() }

// String renders f with '-', 'O' and 'X'.
func (f Feedback) String() string {
	var b strings.Builder
	b.Grow(words.Length)
	for _, m := range f {
		b.WriteByte(m.Symbol())
	}
	return b.String()
}

// ParseFeedback reads the String form. Lowercase 'o' / 'x' and '.' for miss are accepted.
func ParseFeedback(s string) (Feedback, error) {
	var f Feedback
	s = strings.TrimSpace(s)
	if len(s) != words.Length {
		return f, fmt.Errorf("%w: %q", ErrBadPattern, s)
	}
	for i := 0; i < words.Length; i++ {
		switch s[i] {
		case symbolMiss, '.':
			f[i] = MarkMiss
		case symbolPresent, 'o':
			f[i] = MarkPresent
		case symbolHit, 'x':
			f[i] = MarkHit
		default:
			return f, fmt.Errorf("%w: %q", ErrBadPattern, s)
		}
	}
	return f, nil
}
