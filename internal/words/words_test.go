package words_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/hint-server/internal/words"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr error
	}{
		{in: "crane", want: "crane"},
		{in: "  CRANE\n", want: "crane"},
		{in: "Trace", want: "trace"},
		{in: "cran", wantErr: words.ErrInvalidLength},
		{in: "cranes", wantErr: words.ErrInvalidLength},
		{in: "", wantErr: words.ErrInvalidLength},
		{in: "cr4ne", wantErr: words.ErrInvalidCharacter},
		{in: "héllo", wantErr: words.ErrInvalidCharacter},
		{in: "ab de", wantErr: words.ErrInvalidCharacter},
		// case mapping must not smuggle non-ASCII code points into a-z
		{in: "\u212Arane", wantErr: words.ErrInvalidCharacter}, // Kelvin sign folds to 'k'
		{in: "\u0130abcd", wantErr: words.ErrInvalidCharacter}, // dotted capital I folds to 'i'
		{in: "\u017Flate", wantErr: words.ErrInvalidCharacter}, // long s
		{in: "ＣＲＡＮＥ", wantErr: words.ErrInvalidCharacter},   // fullwidth letters
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			w, err := words.Parse(tc.in)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, w.String())
		})
	}
}

func TestWordText(t *testing.T) {
	var w words.Word
	require.NoError(t, w.UnmarshalText([]byte("SLATE")))
	require.Equal(t, words.MustParse("slate"), w)
	require.Error(t, w.UnmarshalText([]byte("nope")))
	require.Panics(t, func() { words.MustParse("x") })
}

func TestNewLexicon(t *testing.T) {
	lx, err := words.New(
		[]string{"crane", "slate", "crane", "bad!", "trace"},
		[]string{"adieu", "slate", "roate", "toolong"},
	)
	require.NoError(t, err)

	targets, guesses := lx.Stats()
	require.Equal(t, 3, targets, "duplicates and invalid entries dropped")
	require.Equal(t, 5, guesses)

	// guesses keep their own order, missing targets are appended
	var got []string
	for _, w := range lx.Guesses() {
		got = append(got, w.String())
	}
	require.Equal(t, []string{"adieu", "slate", "roate", "crane", "trace"}, got)

	for _, w := range lx.Targets() {
		require.True(t, lx.IsGuess(w), "%s must be a legal guess", w)
		require.True(t, lx.IsTarget(w))
	}
	i, ok := lx.TargetIndex(words.MustParse("trace"))
	require.True(t, ok)
	require.Equal(t, 2, i)
	require.Equal(t, words.MustParse("trace"), lx.Target(i))

	_, ok = lx.TargetIndex(words.MustParse("adieu"))
	require.False(t, ok)
	require.False(t, lx.IsGuess(words.MustParse("zzzzz")))
}

func TestNewLexiconEmptyTargets(t *testing.T) {
	_, err := words.New([]string{"no", "123ab"}, []string{"adieu"})
	require.ErrorIs(t, err, words.ErrEmptyTargets)
}

func TestRandomTargetIsTarget(t *testing.T) {
	lx, err := words.New([]string{"crane", "slate", "trace"}, nil)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		require.True(t, lx.IsTarget(lx.RandomTarget()))
	}
}

func TestReadLines(t *testing.T) {
	in := "# header\n\nCrane\n  slate  \n#comment\ntrace\n"
	got, err := words.ReadLines(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, []string{"crane", "slate", "trace"}, got)
}

func TestLoadEmbedded(t *testing.T) {
	lx, err := words.Load(words.Sources{})
	require.NoError(t, err)

	targets, guesses := lx.Stats()
	require.Greater(t, targets, 1000)
	require.Greater(t, guesses, targets)
	require.True(t, lx.IsTarget(words.MustParse("crane")))
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	answers := filepath.Join(dir, "answers.txt")
	allowed := filepath.Join(dir, "allowed.txt")
	require.NoError(t, os.WriteFile(answers, []byte("crane\ntrace\n"), 0o644))
	require.NoError(t, os.WriteFile(allowed, []byte("adieu\nroate\n"), 0o644))

	t.Run("both", func(t *testing.T) {
		lx, err := words.Load(words.Sources{AnswersFile: answers, AllowedFile: allowed})
		require.NoError(t, err)
		n, g := lx.Stats()
		require.Equal(t, 2, n)
		require.Equal(t, 4, g)
	})

	t.Run("allowed only", func(t *testing.T) {
		lx, err := words.Load(words.Sources{AllowedFile: allowed})
		require.NoError(t, err)
		n, g := lx.Stats()
		require.Equal(t, 2, n)
		require.Equal(t, 2, g)
		require.True(t, lx.IsTarget(words.MustParse("roate")))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := words.Load(words.Sources{AllowedFile: filepath.Join(dir, "nope.txt")})
		require.Error(t, err)
	})
}
