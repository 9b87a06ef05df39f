// internal/feedback/matrix.go
//
// Precomputed guess×target feedback table over the target pool.
//
// Row g holds Compute(targets[g], targets[t]).Code() for every t. The table is
// built once at startup by a bounded pool of workers, each filling whole rows
// of a single preallocated slice. BuildMatrix returns only after every worker
// has finished, so callers never observe a partially written row. The result
// is immutable and safe for concurrent readers.

package feedback

import (
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/hint-server/internal/words"
)

// Matrix is an n×n table of feedback codes, n = len(targets).
type Matrix struct {
	n     int
	codes []Code
}

// ProgressFunc receives the number of completed rows out of total.
type ProgressFunc func(done, total int)

type buildConfig struct {
	workers  int
	progress ProgressFunc
}

// BuildOption configures BuildMatrix.
type BuildOption func(*buildConfig)

// WithWorkers bounds the number of concurrent row workers. n <= 0 means GOMAXPROCS.
func WithWorkers(n int) BuildOption {
	return func(c *buildConfig) { c.workers = n }
}

// WithProgress registers a progress observer.
// Calls are serialised and done is strictly increasing; fn must not block for long.
func WithProgress(fn ProgressFunc) BuildOption {
	return func(c *buildConfig) { c.progress = fn }
}

// BuildMatrix computes feedback for every ordered pair of targets.
func BuildMatrix(targets []words.Word, opts ...BuildOption) *Matrix {
	cfg := buildConfig{}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.workers <= 0 {
		cfg.workers = runtime.GOMAXPROCS(0)
	}

	n := len(targets)
	m := &Matrix{n: n, codes: make([]Code, n*n)}

	var (
		mu   sync.Mutex
		done int
	)
	report := func() {
		if cfg.progress == nil {
			return
		}
		mu.Lock()
		done++
		cfg.progress(done, n)
		mu.Unlock()
	}

	var g errgroup.Group
	g.SetLimit(cfg.workers)
	for row := 0; row < n; row++ {
		g.Go(func() error {
			guess := targets[row]
			out := m.codes[row*n : (row+1)*n]
			for t, target := range targets {
				out[t] = Compute(guess, target).Code()
			}
			report()
			return nil
		})
	}
	// Workers never fail; Wait is the completion barrier.
	_ = g.Wait()
	return m
}

// Size returns the number of targets the matrix covers.
func (m *Matrix) Size() int { return m.n }

// Code returns the feedback code for guess index g against target index t.
func (m *Matrix) Code(g, t int) Code { return m.codes[g*m.n+t] }

// Lookup returns the decoded feedback for guess index g against target index t.
func (m *Matrix) Lookup(g, t int) Feedback { return m.Code(g, t).Feedback() }

// Row returns all codes for guess index g, indexed by target. Callers must not modify it.
func (m *Matrix) Row(g int) []Code { return m.codes[g*m.n : (g+1)*m.n] }
