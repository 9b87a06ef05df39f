// internal/suggest/engine.go
//
// Recommendation engine: ranks guesses by elimination power.
//
// For a guess w and candidate set C, let p_f be the share of C that would
// answer w with feedback f. The score is
//
//	score(w) = Σ_f p_f · (1 − p_f)
//
// (Gini-Simpson impurity of the feedback partition). Higher means w splits
// C into more, smaller groups. Scores are in [0, 1).
//
// Responsibilities:
//   - Score every word of the configured pool against the current candidates.
//   - Return the top K, descending by score, ties in pool order.
//   - Short-circuit a single remaining candidate to {word: 1}.
//
// Notes:
//   - Pool words that are targets read the feedback matrix; others compute directly.
//   - Scoring is split into contiguous chunks across a bounded errgroup.
//   - The ranking for the untouched full pool is the same for every new game and is memoised.

package suggest

import (
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/hint-server/internal/feedback"
	"github.com/robalobadob/wordle/apps/hint-server/internal/words"
)

// DefaultTopK is the number of suggestions returned by default.
const DefaultTopK = 20

// Pool selects which words are ranked.
type Pool string

const (
	// PoolGuesses ranks every legal guess.
	PoolGuesses Pool = "guesses"
	// PoolTargets ranks target words only.
	PoolTargets Pool = "targets"
)

// Suggestion is one ranked guess.
type Suggestion struct {
	Word  words.Word `json:"word"`
	Score float64    `json:"score"`
}

// poolEntry is a ranked word and its matrix row, or -1 if it has none.
type poolEntry struct {
	word words.Word
	row  int
}

// Engine ranks guesses. It is safe for concurrent use.
type Engine struct {
	lex     *words.Lexicon
	matrix  *feedback.Matrix
	pool    []poolEntry
	topK    int
	workers int

	fullOnce sync.Once
	full     []Suggestion
}

// Option configures an Engine.
type Option func(*Engine)

// WithTopK sets how many suggestions Rank returns. k <= 0 keeps the default.
func WithTopK(k int) Option {
	return func(e *Engine) {
		if k > 0 {
			e.topK = k
		}
	}
}

// WithWorkers bounds scoring concurrency. n <= 0 means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithPool selects the ranked pool. Unknown values keep PoolGuesses.
func WithPool(p Pool) Option {
	return func(e *Engine) {
		if p == PoolTargets {
			e.pool = entriesFor(e.lex, e.lex.Targets())
		}
	}
}

// NewEngine returns an Engine over lex using m for target-pool lookups.
func NewEngine(lex *words.Lexicon, m *feedback.Matrix, opts ...Option) *Engine {
	e := &Engine{
		lex:     lex,
		matrix:  m,
		topK:    DefaultTopK,
		workers: runtime.GOMAXPROCS(0),
	}
	e.pool = entriesFor(lex, lex.Guesses())
	for _, o := range opts {
		o(e)
	}
	return e
}

func entriesFor(lex *words.Lexicon, ws []words.Word) []poolEntry {
	out := make([]poolEntry, len(ws))
	for i, w := range ws {
		row, ok := lex.TargetIndex(w)
		if !ok {
			row = -1
		}
		out[i] = poolEntry{word: w, row: row}
	}
	return out
}

// TopK returns the configured result size.
func (e *Engine) TopK() int { return e.topK }

// Rank scores the pool against candidates (target indices) and returns the best TopK.
func (e *Engine) Rank(candidates []int) []Suggestion {
	switch len(candidates) {
	case 0:
		return nil
	case 1:
		return []Suggestion{{Word: e.lex.Target(candidates[0]), Score: 1}}
	}

	if len(candidates) == e.matrix.Size() {
		e.fullOnce.Do(func() { e.full = e.rank(candidates) })
		return append([]Suggestion(nil), e.full...)
	}
	return e.rank(candidates)
}

// Warm computes and caches the opening ranking over every target.
func (e *Engine) Warm() []Suggestion {
	all := make([]int, e.matrix.Size())
	for i := range all {
		all[i] = i
	}
	return e.Rank(all)
}

// Score returns the elimination-power score of a single guess.
func (e *Engine) Score(guess words.Word, candidates []int) float64 {
	row, ok := e.lex.TargetIndex(guess)
	if !ok {
		row = -1
	}
	return e.score(poolEntry{word: guess, row: row}, candidates)
}

func (e *Engine) rank(candidates []int) []Suggestion {
	scores := make([]float64, len(e.pool))

	chunk := (len(e.pool) + e.workers - 1) / e.workers
	var g errgroup.Group
	g.SetLimit(e.workers)
	for lo := 0; lo < len(e.pool); lo += chunk {
		hi := min(lo+chunk, len(e.pool))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				scores[i] = e.score(e.pool[i], candidates)
			}
			return nil
		})
	}
	_ = g.Wait()

	order := make([]int, len(e.pool))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	k := min(e.topK, len(order))
	out := make([]Suggestion, k)
	for i := 0; i < k; i++ {
		out[i] = Suggestion{Word: e.pool[order[i]].word, Score: scores[order[i]]}
	}
	return out
}

// score computes Σ p·(1−p) over the feedback partition of candidates.
func (e *Engine) score(p poolEntry, candidates []int) float64 {
	var counts [feedback.NumCodes]int32
	if p.row >= 0 {
		row := e.matrix.Row(p.row)
		for _, c := range candidates {
			counts[row[c]]++
		}
	} else {
		targets := e.lex.Targets()
		for _, c := range candidates {
			counts[feedback.Compute(p.word, targets[c]).Code()]++
		}
	}

	total := float64(len(candidates))
	var s float64
	for _, n := range counts {
		if n == 0 {
			continue
		}
		pf := float64(n) / total
		s += pf * (1 - pf)
	}
	return s
}
