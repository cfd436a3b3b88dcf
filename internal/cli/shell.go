package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/tales/internal/presentation/tui"
	"github.com/aretw0/tales/pkg/catalog"
	"github.com/aretw0/tales/pkg/domain"
	"github.com/aretw0/tales/pkg/ports"
	"github.com/aretw0/tales/pkg/runner"
)

// DefaultPlayer is recorded when the reader leaves the name blank.
const DefaultPlayer = "Traveler"

// Player is the part of tales.Engine the menu needs.
type Player interface {
	Catalog() *catalog.Catalog
	Play(ctx context.Context, index int, player string, chooser ports.Chooser) (domain.Outcome, error)
	History(ctx context.Context, limit int) ([]string, error)
}

// Shell is the interactive main menu: pick a story, view past adventures or quit.
type Shell struct {
	player      Player
	io          runner.IOHandler
	out         io.Writer
	recentLimit int
	banner      bool
	logger      *slog.Logger
}

// ShellOption configures a Shell.
type ShellOption func(*Shell)

// WithRecentLimit sets how many past adventures are listed.
func WithRecentLimit(n int) ShellOption {
	return func(s *Shell) {
		if n > 0 {
			s.recentLimit = n
		}
	}
}

// WithBanner toggles the program header.
func WithBanner(enabled bool) ShellOption {
	return func(s *Shell) {
		s.banner = enabled
	}
}

// WithShellLogger sets the structured logger.
func WithShellLogger(logger *slog.Logger) ShellOption {
	return func(s *Shell) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewShell creates a menu over player, reading through h and writing menu text to out.
func NewShell(player Player, h runner.IOHandler, out io.Writer, opts ...ShellOption) *Shell {
	s := &Shell{
		player:      player,
		io:          h,
		out:         out,
		recentLimit: 10,
		banner:      true,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run loops over the menu until the reader quits or input ends. Both are a
// normal exit and return nil; so does cancellation of ctx.
func (s *Shell) Run(ctx context.Context) error {
	if s.banner {
		tui.PrintBanner(s.out)
	}

	name, err := s.io.PromptLine(ctx, "Enter your name: ")
	if err != nil {
		return s.finish(err)
	}
	if name == "" {
		name = DefaultPlayer
	}
	fmt.Fprintf(s.out, "\nWelcome, %s!\n\n", name)

	for {
		entries := s.player.Catalog().List()
		historyPick, quitPick := len(entries)+1, len(entries)+2
		s.printMenu(entries, historyPick, quitPick)

		pick, err := s.io.Choose(ctx, 1, quitPick)
		if err != nil {
			return s.finish(err)
		}

		switch pick {
		case quitPick:
			return s.finish(nil)
		case historyPick:
			err = s.showHistory(ctx)
		default:
			err = s.play(ctx, pick, name)
		}
		if err != nil {
			return s.finish(err)
		}

		fmt.Fprint(s.out, "\nBack to main menu...\n\n")
	}
}

func (s *Shell) printMenu(entries []catalog.Entry, historyPick, quitPick int) {
	fmt.Fprintln(s.out, "Pick a story:")
	for i, e := range entries {
		fmt.Fprintf(s.out, "%d) %s\n", i+1, e.Label())
	}
	fmt.Fprintf(s.out, "%d) View past adventures\n", historyPick)
	fmt.Fprintf(s.out, "%d) Quit\n\n", quitPick)
}

// play runs one traversal. Content defects are reported and swallowed so the
// reader returns to the menu; only departures propagate.
func (s *Shell) play(ctx context.Context, index int, name string) error {
	outcome, err := s.player.Play(ctx, index, name, s.io)

	var perr *domain.PersistenceError
	switch {
	case err == nil:
	case errors.As(err, &perr):
		s.logger.Warn("outcome not saved", "error", err)
		s.io.SystemOutput(ctx, fmt.Sprintf("Warning: your adventure could not be saved (%v).", perr.Err))
	case errors.Is(err, domain.ErrGraphIntegrity), errors.Is(err, domain.ErrStepLimit):
		s.logger.Error("traversal aborted", "error", err)
		s.io.SystemOutput(ctx, fmt.Sprintf("ERROR: %v. Ending early.", err))
		return nil
	default:
		return err
	}

	fmt.Fprintf(s.out, "You reached: %s\n", outcome.Ending)
	return s.io.WaitForEnter(ctx, "Press Enter to return to the menu...")
}

func (s *Shell) showHistory(ctx context.Context) error {
	lines, err := s.player.History(ctx, s.recentLimit)
	if err != nil {
		if isInterrupted(err) {
			return err
		}
		s.logger.Warn("history unavailable", "error", err)
		s.io.SystemOutput(ctx, fmt.Sprintf("Warning: past adventures are unavailable (%v).", err))
		return nil
	}

	fmt.Fprintln(s.out, "\n=== Past Adventures ===")
	if len(lines) == 0 {
		fmt.Fprintln(s.out, "No adventures recorded yet.")
	}
	for _, line := range lines {
		fmt.Fprintln(s.out, line)
	}
	return s.io.WaitForEnter(ctx, "Press Enter to return to the menu...")
}

func (s *Shell) finish(err error) error {
	if err != nil && !isInterrupted(err) {
		return err
	}
	fmt.Fprintln(s.out, "\nThanks for playing!")
	return nil
}
