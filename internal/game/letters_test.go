package game_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/hint-server/internal/feedback"
	"github.com/robalobadob/wordle/apps/hint-server/internal/game"
	"github.com/robalobadob/wordle/apps/hint-server/internal/words"
)

func TestLetterStatesBestMarkWins(t *testing.T) {
	f := newFixture(t)
	s := f.session(game.WithSecret(words.MustParse("trace")))
	ctx := context.Background()

	_, err := s.Submit(ctx, "adieu") // O--O-
	require.NoError(t, err)
	_, err = s.Submit(ctx, "crane") // OXX-X
	require.NoError(t, err)

	got := s.Letters()
	require.Equal(t, feedback.MarkHit, got['a'], "present then hit upgrades to hit")
	require.Equal(t, feedback.MarkHit, got['e'])
	require.Equal(t, feedback.MarkHit, got['r'])
	require.Equal(t, feedback.MarkPresent, got['c'])
	require.Equal(t, feedback.MarkMiss, got['d'])
	require.Equal(t, feedback.MarkMiss, got['n'])
	_, seen := got['z']
	require.False(t, seen)
}

func TestLetterStatesNeverDowngrades(t *testing.T) {
	turns := []game.Turn{
		{Guess: words.MustParse("speed"), Feedback: mustFeedback(t, "--X--")},
		{Guess: words.MustParse("geese"), Feedback: mustFeedback(t, "-----")},
	}
	require.Equal(t, feedback.MarkHit, game.LetterStates(turns)['e'])
}

func mustFeedback(t *testing.T, s string) feedback.Feedback {
	t.Helper()
	f, err := feedback.ParseFeedback(s)
	require.NoError(t, err)
	return f
}
