// internal/stats/jsonfile.go
//
// JSONFile keeps a single player's statistics in a JSON document:
//
//	{
//	    "matches_played": 3,
//	    "matches_won": 2,
//	    "matches_lost": 1,
//	    "win_indeces": {"1": 0, "2": 0, "3": 1, "4": 1, "5": 0, "6": 0}
//	}
//
// The document is read on every update and replaced (indent 4) via temp file
// + rename. A missing file reads as a zero record. Player IDs are ignored: the
// file has one owner.

package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/robalobadob/wordle/apps/hint-server/internal/game"
)

// JSONFile is a file-backed Store for one local player.
type JSONFile struct {
	mu   sync.Mutex
	path string
}

// NewJSONFile returns a store over path. The file is created on first update.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Path returns the backing file path.
func (j *JSONFile) Path() string { return j.path }

// RecordWin counts a game won at guess k.
func (j *JSONFile) RecordWin(_ context.Context, k int) error {
	if err := checkGuessNumber(k); err != nil {
		return err
	}
	return j.update(func(r *Record) error { return r.addWin(k) })
}

// RecordLoss counts a lost game.
func (j *JSONFile) RecordLoss(_ context.Context) error {
	return j.update(func(r *Record) error {
		r.addLoss()
		return nil
	})
}

// Player returns j itself: every player shares the one document.
func (j *JSONFile) Player(string) game.Recorder { return j }

// Load reads the document.
func (j *JSONFile) Load(_ context.Context, _ string) (Record, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.read()
}

func (j *JSONFile) update(fn func(*Record) error) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	r, err := j.read()
	if err != nil {
		return err
	}
	if err := fn(&r); err != nil {
		return err
	}
	return j.write(r)
}

// read must be called with mu held.
func (j *JSONFile) read() (Record, error) {
	b, err := os.ReadFile(j.path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewRecord(), nil
	}
	if err != nil {
		return Record{}, fmt.Errorf("stats: read %s: %w", j.path, err)
	}
	var r Record
	if err := json.Unmarshal(b, &r); err != nil {
		return Record{}, fmt.Errorf("stats: decode %s: %w", j.path, err)
	}
	r.normalise()
	return r, nil
}

// write must be called with mu held.
func (j *JSONFile) write(r Record) error {
	b, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(j.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("stats: mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".stats-*.json")
	if err != nil {
		return fmt.Errorf("stats: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("stats: write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), j.path); err != nil {
		return fmt.Errorf("stats: replace %s: %w", j.path, err)
	}
	return nil
}
