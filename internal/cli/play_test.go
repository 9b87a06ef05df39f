package cli_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/hint-server/internal/cli"
	"github.com/robalobadob/wordle/apps/hint-server/internal/game"
	"github.com/robalobadob/wordle/apps/hint-server/internal/suggest"
	"github.com/robalobadob/wordle/apps/hint-server/internal/words"
)

func newSession(t *testing.T, secret string, opts ...game.Option) *game.Session {
	t.Helper()
	lx, err := words.New([]string{"crane", "slate", "trace"}, []string{"adieu", "buddy"})
	require.NoError(t, err)
	m := cli.BuildMatrix(lx.Targets(), 2, io.Discard)
	require.Equal(t, 3, m.Size())
	opts = append([]game.Option{game.WithSecret(words.MustParse(secret))}, opts...)
	return game.New(lx, m, suggest.NewEngine(lx, m), opts...)
}

func run(t *testing.T, s *game.Session, input string) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, cli.NewPlayer(s, strings.NewReader(input), &out, 3).Run(context.Background()))
	return out.String()
}

func TestPlayWin(t *testing.T) {
	s := newSession(t, "trace")
	out := run(t, s, "crane\n:hints\ntrace\n:quit\n")

	require.Contains(t, out, "3 candidates")
	require.Contains(t, out, "1/6  crane  OXX-X   1 left (100% narrowed)")
	require.Contains(t, out, "try: trace 1.000")
	require.Contains(t, out, "solved in 2!")
	require.Equal(t, game.StateWon, s.State())
}

func TestPlayRejectsBadInput(t *testing.T) {
	s := newSession(t, "trace")
	out := run(t, s, "cran\ncr4ne\nzzzzz\n")

	require.Contains(t, out, "guess must be 5 letters")
	require.Contains(t, out, "letters a-z only")
	require.Contains(t, out, "not in word list")
	require.Equal(t, 1, s.GuessNumber())
}

func TestPlayLossAndRestart(t *testing.T) {
	s := newSession(t, "trace", game.WithPicker(game.PickerFunc(func(*words.Lexicon) words.Word {
		return words.MustParse("slate")
	})))
	in := strings.Repeat("buddy\n", game.MaxGuesses) + "crane\n:restart\nslate\n"
	out := run(t, s, in)

	require.Contains(t, out, "out of guesses, the word was trace")
	require.Contains(t, out, "game over")
	require.Contains(t, out, "new game")
	require.Contains(t, out, "solved in 1!")
}

func TestPlayListsCandidates(t *testing.T) {
	s := newSession(t, "trace")
	out := run(t, s, ":left\ncrane\n:l\n:q\n")

	require.Contains(t, out, "left (3): crane slate trace\n")
	require.Contains(t, out, "left (1): trace\n")
}
