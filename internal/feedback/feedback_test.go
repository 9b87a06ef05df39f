package feedback_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/hint-server/internal/feedback"
	"github.com/robalobadob/wordle/apps/hint-server/internal/words"
)

func TestCompute(t *testing.T) {
	cases := []struct {
		guess, target, want string
	}{
		{"crane", "trace", "OXX-X"},
		{"crane", "crane", "XXXXX"},
		{"crane", "slate", "--X-X"},
		{"adieu", "trace", "O--O-"},
		// repeated guess letters are credited at most once per target occurrence
		{"speed", "abide", "--O-O"},
		{"speed", "erase", "O-OO-"},
		{"llama", "hello", "OO---"},
		// a hit consumes its letter before presents are assigned
		{"geese", "sheep", "-OXO-"},
		{"eerie", "where", "O-O-X"},
	}
	for _, tc := range cases {
		t.Run(tc.guess+"/"+tc.target, func(t *testing.T) {
			got := feedback.Compute(words.MustParse(tc.guess), words.MustParse(tc.target))
			require.Equal(t, tc.want, got.String())
		})
	}
}

// TestComputeSelf: every word scores all-hit against itself and nothing else does.
func TestComputeSelf(t *testing.T) {
	ws := []string{"crane", "slate", "trace", "speed", "erase", "abide"}
	for _, a := range ws {
		for _, b := range ws {
			f := feedback.Compute(words.MustParse(a), words.MustParse(b))
			require.Equal(t, a == b, f.Solved(), "%s vs %s", a, b)
		}
	}
}

// TestComputeMarkCounts: hits+presents for a letter never exceed its count in the target.
func TestComputeMarkCounts(t *testing.T) {
	ws := []string{"speed", "erase", "geese", "sheep", "llama", "hello", "eerie", "where"}
	for _, g := range ws {
		for _, tg := range ws {
			guess, target := words.MustParse(g), words.MustParse(tg)
			f := feedback.Compute(guess, target)

			var credited, inTarget [26]int
			for i := range target {
				inTarget[target[i]-'a']++
				if f[i] != feedback.MarkMiss {
					credited[guess[i]-'a']++
				}
			}
			for c := 0; c < 26; c++ {
				require.LessOrEqual(t, credited[c], inTarget[c], "%s vs %s letter %c", g, tg, 'a'+c)
			}
		}
	}
}

func TestCodeRoundTrip(t *testing.T) {
	seen := make(map[feedback.Feedback]bool, feedback.NumCodes)
	for c := 0; c < feedback.NumCodes; c++ {
		f := feedback.Code(c).Feedback()
		require.Equal(t, feedback.Code(c), f.Code())
		require.False(t, seen[f])
		seen[f] = true
	}
	require.True(t, feedback.AllHit.Feedback().Solved())
	require.Equal(t, "XXXXX", feedback.AllHit.Feedback().String())
	require.Equal(t, feedback.Code(0), feedback.Feedback{}.Code())
}

func TestParseFeedback(t *testing.T) {
	f, err := feedback.ParseFeedback("OXX-X")
	require.NoError(t, err)
	require.Equal(t, feedback.Feedback{
		feedback.MarkPresent, feedback.MarkHit, feedback.MarkHit, feedback.MarkMiss, feedback.MarkHit,
	}, f)

	f, err = feedback.ParseFeedback(" ox.-x ")
	require.NoError(t, err)
	require.Equal(t, "OX--X", f.String())

	for _, bad := range []string{"", "XXXX", "XXXXXX", "XXYXX"} {
		_, err := feedback.ParseFeedback(bad)
		require.ErrorIs(t, err, feedback.ErrBadPattern, bad)
	}
}

func TestMarkText(t *testing.T) {
	b, err := feedback.MarkPresent.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "present", string(b))
	require.Equal(t, "hit", feedback.MarkHit.String())
	require.Equal(t, "miss", feedback.MarkMiss.String())
	require.Equal(t, byte('O'), feedback.MarkPresent.Symbol())
}
