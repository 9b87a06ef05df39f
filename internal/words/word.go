// internal/words/word.go
//
// Word value type.
// A Word is five lowercase ASCII letters stored inline, so it is comparable,
// usable as a map key and cheap to copy.

package words

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Length is the fixed number of letters in every word.
const Length = 5

var (
	// ErrInvalidLength is returned when input is not exactly Length letters.
	ErrInvalidLength = errors.New("words: word must be exactly 5 letters")

	// ErrInvalidCharacter is returned when input contains anything but a–z / A–Z.
	ErrInvalidCharacter = errors.New("words: word must be alphabetic")
)

// Word is a five-letter lowercase word.
type Word [Length]byte

// Parse trims s, validates it as five ASCII letters and lowercases it.
// Length is counted in code points, so "héllo" is a character error, not a length error.
// Only ASCII letters are folded, so code points such as the Kelvin sign are rejected
// rather than mapped onto a-z.
func Parse(s string) (Word, error) {
	var w Word
	s = strings.TrimSpace(s)
	if n := utf8.RuneCountInString(s); n != Length {
		return w, fmt.Errorf("%w: got %d", ErrInvalidLength, n)
	}
	if !isASCIILetters(s) {
		return w, fmt.Errorf("%w: %q", ErrInvalidCharacter, s)
	}
	for i := 0; i < Length; i++ {
		w[i] = s[i] | 0x20 // ASCII lowercase
	}
	return w, nil
}

// MustParse is Parse for literals known to be valid; it panics otherwise.
func MustParse(s string) Word {
	w, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return w
}

// String returns the lowercase word.
func (w Word) String() string { return string(w[:]) }

// MarshalText encodes the word as its lowercase string.
func (w Word) MarshalText() ([]byte, error) { return []byte(w.String()), nil }

// UnmarshalText parses and validates a word.
func (w *Word) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*w = v
	return nil
}

// isASCIILetters reports whether s is all a–z / A–Z.
func isASCIILetters(s string) bool {
	for _, r := range s {
		if !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z') {
			return false
		}
	}
	return true
}
