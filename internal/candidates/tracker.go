// internal/candidates/tracker.go
//
// Candidate set for one game: the targets still consistent with every
// feedback observed so far.
// Responsibilities:
//   - Hold the set as a bitset over target indices.
//   - Filter by (guess, feedback): target guesses read the precomputed matrix
//     row, other guesses compute feedback directly.
//   - Report size, indices, words and narrowing progress.
//
// Notes:
//   - The set never grows between resets.
//   - A Tracker belongs to a single session and is not safe for concurrent use.

package candidates

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/robalobadob/wordle/apps/hint-server/internal/feedback"
	"github.com/robalobadob/wordle/apps/hint-server/internal/words"
)

// Tracker owns a shrinking candidate set.
type Tracker struct {
	lex    *words.Lexicon
	matrix *feedback.Matrix
	set    *bitset.BitSet
	n      int
}

// New returns a Tracker holding every target.
func New(lex *words.Lexicon, m *feedback.Matrix) *Tracker {
	t := &Tracker{lex: lex, matrix: m, n: len(lex.Targets())}
	t.Reset()
	return t
}

// Reset restores the full target pool.
func (t *Tracker) Reset() {
	t.set = bitset.New(uint(t.n)).Complement()
}

// Filter keeps only candidates c with Compute(guess, c) == observed and
// returns the number left. The set never grows.
func (t *Tracker) Filter(guess words.Word, observed feedback.Feedback) int {
	want := observed.Code()
	targets := t.lex.Targets()

	if g, ok := t.lex.TargetIndex(guess); ok {
		row := t.matrix.Row(g)
		for i, e := t.set.NextSet(0); e; i, e = t.set.NextSet(i + 1) {
			if row[i] != want {
				t.set.Clear(i)
			}
		}
		return t.Len()
	}

	for i, e := t.set.NextSet(0); e; i, e = t.set.NextSet(i + 1) {
		if feedback.Compute(guess, targets[i]).Code() != want {
			t.set.Clear(i)
		}
	}
	return t.Len()
}

// Len returns the number of remaining candidates.
func (t *Tracker) Len() int { return int(t.set.Count()) }

// Indices returns the remaining target indices in ascending order.
func (t *Tracker) Indices() []int {
	out := make([]int, 0, t.set.Count())
	for i, e := t.set.NextSet(0); e; i, e = t.set.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}

// Words returns the remaining candidates in target-pool order.
func (t *Tracker) Words() []words.Word {
	targets := t.lex.Targets()
	out := make([]words.Word, 0, t.set.Count())
	for i, e := t.set.NextSet(0); e; i, e = t.set.NextSet(i + 1) {
		out = append(out, targets[i])
	}
	return out
}

// Progress is the fraction of the pool eliminated so far: 0 at the start,
// 1 once a single candidate remains.
func (t *Tracker) Progress() float64 {
	if t.n <= 1 {
		return 0
	}
	p := float64(t.n-t.Len()) / float64(t.n-1)
	if p > 1 {
		// an empty set overshoots; clamp for display
		return 1
	}
	return p
}
