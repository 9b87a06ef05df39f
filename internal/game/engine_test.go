package game_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/hint-server/internal/feedback"
	"github.com/robalobadob/wordle/apps/hint-server/internal/game"
	"github.com/robalobadob/wordle/apps/hint-server/internal/suggest"
	"github.com/robalobadob/wordle/apps/hint-server/internal/words"
)

type fixture struct {
	lex    *words.Lexicon
	matrix *feedback.Matrix
	engine *suggest.Engine
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	lx, err := words.New([]string{"crane", "slate", "trace"}, []string{"adieu", "buddy", "jumpy"})
	require.NoError(t, err)
	m := feedback.BuildMatrix(lx.Targets())
	return fixture{lex: lx, matrix: m, engine: suggest.NewEngine(lx, m)}
}

func (f fixture) session(opts ...game.Option) *game.Session {
	return game.New(f.lex, f.matrix, f.engine, opts...)
}

// fakeRecorder captures outcomes.
type fakeRecorder struct {
	wins   []int
	losses int
	err    error
}

func (r *fakeRecorder) RecordWin(_ context.Context, k int) error {
	r.wins = append(r.wins, k)
	return r.err
}

func (r *fakeRecorder) RecordLoss(context.Context) error {
	r.losses++
	return r.err
}

func fixed(w string) game.SecretPicker {
	return game.PickerFunc(func(*words.Lexicon) words.Word { return words.MustParse(w) })
}

func TestNewSession(t *testing.T) {
	f := newFixture(t)
	s := f.session()

	require.Len(t, s.ID, 16)
	require.Equal(t, game.StateAwaitingGuess, s.State())
	require.Equal(t, 1, s.GuessNumber())
	require.Equal(t, 3, s.Remaining())
	require.True(t, f.lex.IsTarget(s.Secret()))
	require.Len(t, s.Suggestions(), 6)
	require.Empty(t, s.Turns())
}

func TestScenarioCraneTrace(t *testing.T) {
	f := newFixture(t)
	s := f.session(game.WithSecret(words.MustParse("trace")))

	turn, err := s.Submit(context.Background(), "CRANE")
	require.NoError(t, err)
	require.Equal(t, 1, turn.Number)
	require.Equal(t, "OXX-X", turn.Feedback.String())
	require.Equal(t, game.StateAwaitingGuess, turn.State)
	require.Equal(t, 1, turn.Remaining)
	require.Equal(t, 1.0, turn.Progress)
	require.Equal(t, []suggest.Suggestion{{Word: words.MustParse("trace"), Score: 1}}, turn.Suggestions)
	require.Equal(t, 2, s.GuessNumber())
	require.Equal(t, []words.Word{words.MustParse("trace")}, s.Candidates())
}

func TestWinRecordsGuessNumber(t *testing.T) {
	f := newFixture(t)
	rec := &fakeRecorder{}
	s := f.session(game.WithSecret(words.MustParse("trace")), game.WithRecorder(rec))
	ctx := context.Background()

	_, err := s.Submit(ctx, "crane")
	require.NoError(t, err)
	turn, err := s.Submit(ctx, "trace")
	require.NoError(t, err)

	require.Equal(t, game.StateWon, turn.State)
	require.True(t, turn.Feedback.Solved())
	require.NoError(t, turn.StatsErr)
	require.Equal(t, 2, s.WonAt())
	require.Equal(t, []int{2}, rec.wins)
	require.Zero(t, rec.losses)

	_, err = s.Submit(ctx, "slate")
	require.ErrorIs(t, err, game.ErrSessionTerminal)
	require.Len(t, s.Turns(), 2)
}

func TestWinOnLastGuessIsNotLoss(t *testing.T) {
	f := newFixture(t)
	rec := &fakeRecorder{}
	s := f.session(game.WithSecret(words.MustParse("slate")), game.WithRecorder(rec))
	ctx := context.Background()

	for i := 0; i < game.MaxGuesses-1; i++ {
		turn, err := s.Submit(ctx, "buddy")
		require.NoError(t, err)
		require.Equal(t, game.StateAwaitingGuess, turn.State)
	}
	turn, err := s.Submit(ctx, "slate")
	require.NoError(t, err)
	require.Equal(t, game.StateWon, turn.State)
	require.Equal(t, game.MaxGuesses, s.WonAt())
	require.Equal(t, []int{game.MaxGuesses}, rec.wins)
	require.Zero(t, rec.losses)
}

func TestLossAfterSixGuesses(t *testing.T) {
	f := newFixture(t)
	rec := &fakeRecorder{}
	s := f.session(game.WithSecret(words.MustParse("trace")), game.WithRecorder(rec))
	ctx := context.Background()

	var turn *game.Turn
	var err error
	for i := 1; i <= game.MaxGuesses; i++ {
		turn, err = s.Submit(ctx, "adieu")
		require.NoError(t, err)
		require.Equal(t, i, turn.Number)
	}
	require.Equal(t, game.StateLost, turn.State)
	require.Equal(t, game.StateLost, s.State())
	require.Zero(t, s.WonAt())
	require.Equal(t, 1, rec.losses)
	require.Empty(t, rec.wins)

	_, err = s.Submit(ctx, "trace")
	require.ErrorIs(t, err, game.ErrSessionTerminal)
}

func TestRejectedGuessesDoNotMutate(t *testing.T) {
	f := newFixture(t)
	s := f.session(game.WithSecret(words.MustParse("trace")))
	before := s.Suggestions()

	cases := []struct {
		in   string
		want error
	}{
		{"cran", game.ErrInvalidWordLength},
		{"cranes", game.ErrInvalidWordLength},
		{"cr4ne", game.ErrInvalidCharacter},
		{"zzzzz", game.ErrNotInGuessPool},
	}
	for _, tc := range cases {
		turn, err := s.Submit(context.Background(), tc.in)
		require.ErrorIs(t, err, tc.want, tc.in)
		require.Nil(t, turn)
	}

	require.Equal(t, 1, s.GuessNumber())
	require.Equal(t, 3, s.Remaining())
	require.Empty(t, s.Turns())
	require.Equal(t, game.StateAwaitingGuess, s.State())
	require.Equal(t, before, s.Suggestions())
}

func TestRestart(t *testing.T) {
	f := newFixture(t)
	s := f.session(game.WithSecret(words.MustParse("trace")), game.WithPicker(fixed("slate")))
	ctx := context.Background()

	_, err := s.Submit(ctx, "crane")
	require.NoError(t, err)
	_, err = s.Submit(ctx, "trace")
	require.NoError(t, err)
	require.Equal(t, game.StateWon, s.State())

	s.Restart()
	require.Equal(t, game.StateAwaitingGuess, s.State())
	require.Equal(t, 1, s.GuessNumber())
	require.Equal(t, 3, s.Remaining())
	require.Zero(t, s.WonAt())
	require.Empty(t, s.Turns())
	require.Equal(t, words.MustParse("slate"), s.Secret())
	require.Zero(t, s.Progress())

	turn, err := s.Submit(ctx, "slate")
	require.NoError(t, err)
	require.Equal(t, game.StateWon, turn.State)
	require.Equal(t, 1, s.WonAt())
}

func TestRecorderFailureKeepsTurn(t *testing.T) {
	f := newFixture(t)
	rec := &fakeRecorder{err: errors.New("disk full")}
	s := f.session(game.WithSecret(words.MustParse("crane")), game.WithRecorder(rec))

	turn, err := s.Submit(context.Background(), "crane")
	require.NoError(t, err)
	require.Equal(t, game.StateWon, turn.State)
	require.EqualError(t, turn.StatsErr, "disk full")
	require.Equal(t, game.StateWon, s.State())
}

func TestDegenerateCandidateSetAborts(t *testing.T) {
	f := newFixture(t)
	// A secret outside the target pool cannot be explained by any candidate.
	s := f.session(game.WithSecret(words.MustParse("buddy")))

	_, err := s.Submit(context.Background(), "crane")
	require.ErrorIs(t, err, game.ErrDegenerateCandidateSet)
	require.Equal(t, game.StateAborted, s.State())
	require.True(t, s.State().Terminal())

	_, err = s.Submit(context.Background(), "slate")
	require.ErrorIs(t, err, game.ErrSessionTerminal)
}

func TestStateText(t *testing.T) {
	for st, want := range map[game.State]string{
		game.StateAwaitingGuess: "playing",
		game.StateWon:           "won",
		game.StateLost:          "lost",
		game.StateAborted:       "aborted",
	} {
		b, err := st.MarshalText()
		require.NoError(t, err)
		require.Equal(t, want, string(b))
	}
	require.False(t, game.StateAwaitingGuess.Terminal())
}
