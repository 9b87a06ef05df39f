// internal/daily/daily.go
//
// Deterministic "word of the day" selection.
// The index is HMAC-SHA256(salt, YYYY-MM-DD) mod len(targets), so every
// player gets the same secret on the same UTC day and the sequence cannot be
// predicted without the salt.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/wordle/apps/hint-server/internal/game"
	"github.com/robalobadob/wordle/apps/hint-server/internal/words"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % answersLen.
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}

// Picker is a game.SecretPicker returning the day's target.
type Picker struct {
	Salt string
	// Now defaults to time.Now.
	Now func() time.Time
}

// NewPicker returns a Picker keyed by salt.
func NewPicker(salt string) *Picker {
	return &Picker{Salt: salt, Now: time.Now}
}

// PickSecret returns the target for today's date key.
func (p *Picker) PickSecret(lex *words.Lexicon) words.Word {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	return lex.Target(WordIndex(now(), p.Salt, len(lex.Targets())))
}

var _ game.SecretPicker = (*Picker)(nil)
