// internal/cli/play.go
//
// Line-oriented terminal front end.
// Each input line is a guess or a command:
//
//	:hints    list the current top suggestions
//	:left     list the remaining candidate words
//	:restart  start over with a new secret
//	:quit     leave
//
// Feedback is printed in symbol form: X hit, O present, - miss.

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/robalobadob/wordle/apps/hint-server/internal/feedback"
	"github.com/robalobadob/wordle/apps/hint-server/internal/game"
	"github.com/robalobadob/wordle/apps/hint-server/internal/suggest"
)

// Player drives one Session from a reader and writes to a writer.
type Player struct {
	session *game.Session
	in      *bufio.Scanner
	out     io.Writer
	hints   int // suggestions shown per turn
}

// NewPlayer returns a Player for s. hints <= 0 shows five suggestions per turn.
func NewPlayer(s *game.Session, in io.Reader, out io.Writer, hints int) *Player {
	if hints <= 0 {
		hints = 5
	}
	return &Player{session: s, in: bufio.NewScanner(in), out: out, hints: hints}
}

// Run loops until :quit, EOF or ctx cancellation.
func (p *Player) Run(ctx context.Context) error {
	p.banner()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.prompt()
		if !p.in.Scan() {
			return p.in.Err()
		}
		line := strings.TrimSpace(p.in.Text())
		if line == "" {
			continue
		}

		switch strings.ToLower(line) {
		case ":quit", ":q":
			return nil
		case ":hints", ":h":
			p.printSuggestions(p.session.Suggestions(), len(p.session.Suggestions()))
			continue
		case ":left", ":l":
			p.printCandidates()
			continue
		case ":restart", ":r":
			p.session.Restart()
			fmt.Fprintln(p.out, "new game")
			p.banner()
			continue
		}

		if err := p.guess(ctx, line); err != nil {
			return err
		}
	}
}

// guess submits a line; only internal faults are returned.
func (p *Player) guess(ctx context.Context, line string) error {
	turn, err := p.session.Submit(ctx, line)
	switch {
	case errors.Is(err, game.ErrInvalidWordLength):
		fmt.Fprintln(p.out, "guess must be 5 letters")
		return nil
	case errors.Is(err, game.ErrInvalidCharacter):
		fmt.Fprintln(p.out, "letters a-z only")
		return nil
	case errors.Is(err, game.ErrNotInGuessPool):
		fmt.Fprintln(p.out, "not in word list")
		return nil
	case errors.Is(err, game.ErrSessionTerminal):
		fmt.Fprintln(p.out, "game over: :restart or :quit")
		return nil
	case err != nil:
		return err
	}

	fmt.Fprintf(p.out, "%d/%d  %s  %s   %d left (%.0f%% narrowed)\n",
		turn.Number, game.MaxGuesses, turn.Guess, turn.Feedback, turn.Remaining, turn.Progress*100)
	if turn.StatsErr != nil {
		fmt.Fprintf(p.out, "warning: stats not saved: %v\n", turn.StatsErr)
	}

	switch turn.State {
	case game.StateWon:
		fmt.Fprintf(p.out, "solved in %d!\n", turn.Number)
	case game.StateLost:
		fmt.Fprintf(p.out, "out of guesses, the word was %s\n", p.session.Secret())
	default:
		p.printLetters()
		p.printSuggestions(turn.Suggestions, p.hints)
	}
	return nil
}

func (p *Player) banner() {
	fmt.Fprintf(p.out, "guess the 5-letter word in %d tries. %d candidates.\n",
		game.MaxGuesses, p.session.Remaining())
	p.printSuggestions(p.session.Suggestions(), p.hints)
}

func (p *Player) prompt() {
	if !p.session.State().Terminal() {
		fmt.Fprintf(p.out, "[%d] > ", p.session.GuessNumber())
		return
	}
	fmt.Fprint(p.out, "> ")
}

func (p *Player) printSuggestions(list []suggest.Suggestion, n int) {
	if len(list) == 0 {
		return
	}
	n = min(n, len(list))
	parts := make([]string, n)
	for i, s := range list[:n] {
		parts[i] = fmt.Sprintf("%s %.3f", s.Word, s.Score)
	}
	fmt.Fprintf(p.out, "try: %s\n", strings.Join(parts, ", "))
}

// maxListed bounds the words printed by :left.
const maxListed = 30

func (p *Player) printCandidates() {
	left := p.session.Candidates()
	parts := make([]string, 0, min(len(left), maxListed))
	for _, w := range left[:min(len(left), maxListed)] {
		parts = append(parts, w.String())
	}
	line := strings.Join(parts, " ")
	if len(left) > maxListed {
		line += fmt.Sprintf(" ... (+%d more)", len(left)-maxListed)
	}
	fmt.Fprintf(p.out, "left (%d): %s\n", len(left), line)
}

// printLetters shows the keyboard summary grouped by mark.
func (p *Player) printLetters() {
	groups := map[feedback.Mark][]string{}
	for c, m := range p.session.Letters() {
		groups[m] = append(groups[m], string(rune(c)))
	}
	for _, m := range []feedback.Mark{feedback.MarkHit, feedback.MarkPresent, feedback.MarkMiss} {
		if len(groups[m]) == 0 {
			continue
		}
		sort.Strings(groups[m])
		fmt.Fprintf(p.out, "  %-7s %s\n", m, strings.Join(groups[m], " "))
	}
}
