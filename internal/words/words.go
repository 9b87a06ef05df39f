// internal/words/words.go
//
// Word list management for the hint engine.
//
// Responsibilities:
//   - Load the target (answer) and guess (allowed) lists from files or fall back to embedded defaults.
//   - Build an immutable Lexicon with ordered, duplicate-free pools and O(1) lookups.
//   - Supply RandomTarget for secret selection.
//
// Word Lists:
//   - "targets": candidate answers (exactly 5 lowercase letters).
//   - "guesses": valid guesses (always a superset of targets).
//
// Load behavior (Sources):
//   1. If AnswersFile and AllowedFile are both set,
//      load targets from the first and guesses from the second.
//   2. If only AllowedFile is set,
//      load that file and use it for both targets and guesses.
//   3. If neither is set,
//      fall back to the embedded assets lists.
//
// Constraints:
//   • Lines that are blank or start with '#' are skipped.
//   • Lines that are not 5 alphabetic letters are skipped and counted.
//   • A Lexicon is read-only after construction and safe for concurrent use.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/big"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/hint-server/assets"
)

// ErrEmptyTargets is returned when no valid target word was loaded.
var ErrEmptyTargets = errors.New("words: target list is empty")

// Sources says where the word lists come from. Empty paths select the embedded lists.
type Sources struct {
	AnswersFile string
	AllowedFile string
}

// Lexicon holds the target and guess pools.
type Lexicon struct {
	targets     []Word
	guesses     []Word
	targetIndex map[Word]int // word -> position in targets
	guessIndex  map[Word]int // word -> position in guesses
}

// Load reads the lists described by src and builds a Lexicon.
func Load(src Sources) (*Lexicon, error) {
	var ansList, allowList []string

	switch {
	// Case 1: both lists provided
	case src.AnswersFile != "" && src.AllowedFile != "":
		var err error
		if ansList, err = readWordFile(src.AnswersFile); err != nil {
			return nil, err
		}
		if allowList, err = readWordFile(src.AllowedFile); err != nil {
			return nil, err
		}

	// Case 2: only allowed file provided → use for both
	case src.AllowedFile != "":
		var err error
		if allowList, err = readWordFile(src.AllowedFile); err != nil {
			return nil, err
		}
		ansList = allowList

	// Case 3: fallback to embedded defaults
	default:
		var err error
		if ansList, err = readEmbedded(assets.Answers); err != nil {
			return nil, fmt.Errorf("embedded answers: %w", err)
		}
		if allowList, err = readEmbedded(assets.Allowed); err != nil {
			return nil, fmt.Errorf("embedded allowed: %w", err)
		}
	}

	return New(ansList, allowList)
}

func readEmbedded(open func() (fs.File, error)) ([]string, error) {
	f, err := open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}

// New builds a Lexicon from raw lists.
// Invalid entries are dropped, duplicates keep their first position,
// and targets missing from guesses are appended to guesses.
func New(targets, guesses []string) (*Lexicon, error) {
	lx := &Lexicon{
		targetIndex: make(map[Word]int, len(targets)),
		guessIndex:  make(map[Word]int, len(guesses)+len(targets)),
	}

	skipped := 0
	for _, s := range targets {
		w, err := Parse(s)
		if err != nil {
			skipped++
			continue
		}
		if _, dup := lx.targetIndex[w]; dup {
			continue
		}
		lx.targetIndex[w] = len(lx.targets)
		lx.targets = append(lx.targets, w)
	}
	for _, s := range guesses {
		w, err := Parse(s)
		if err != nil {
			skipped++
			continue
		}
		lx.addGuess(w)
	}

	// Ensure all targets are also marked as guesses
	for _, w := range lx.targets {
		lx.addGuess(w)
	}

	if skipped > 0 {
		log.Debug().Int("skipped", skipped).Msg("dropped invalid word list entries")
	}
	if len(lx.targets) == 0 {
		return nil, ErrEmptyTargets
	}
	return lx, nil
}

func (lx *Lexicon) addGuess(w Word) {
	if _, dup := lx.guessIndex[w]; dup {
		return
	}
	lx.guessIndex[w] = len(lx.guesses)
	lx.guesses = append(lx.guesses, w)
}

// Targets returns the target pool in load order. Callers must not modify it.
func (lx *Lexicon) Targets() []Word { return lx.targets }

// Guesses returns the guess pool in load order. Callers must not modify it.
func (lx *Lexicon) Guesses() []Word { return lx.guesses }

// Target returns the target at index i.
func (lx *Lexicon) Target(i int) Word { return lx.targets[i] }

// TargetIndex returns w's position in the target pool.
func (lx *Lexicon) TargetIndex(w Word) (int, bool) {
	i, ok := lx.targetIndex[w]
	return i, ok
}

// IsTarget reports whether w is in the target pool.
func (lx *Lexicon) IsTarget(w Word) bool {
	_, ok := lx.targetIndex[w]
	return ok
}

// IsGuess reports whether w is a legal guess.
func (lx *Lexicon) IsGuess(w Word) bool {
	_, ok := lx.guessIndex[w]
	return ok
}

// Stats returns counts of loaded words: (targets, guesses).
func (lx *Lexicon) Stats() (targetCount int, guessCount int) {
	return len(lx.targets), len(lx.guesses)
}

// RandomTarget returns a uniformly chosen target using crypto/rand.
func (lx *Lexicon) RandomTarget() Word {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(lx.targets))))
	if err != nil {
		// crypto/rand does not fail on supported platforms
		panic(fmt.Sprintf("words: crypto/rand: %v", err))
	}
	return lx.targets[nBig.Int64()]
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	out, err := ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return out, nil
}

// ReadLines splits r into trimmed, lowercased lines, skipping blanks and '#' comments.
// Validation happens in New.
func ReadLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}
