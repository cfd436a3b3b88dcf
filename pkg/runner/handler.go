package runner

import (
	"context"

	"github.com/aretw0/tales/pkg/ports"
)

// IOHandler defines the strategy for interacting with the reader.
// It is everything the menu shell and the Navigator need from a frontend.
type IOHandler interface {
	ports.Presenter
	ports.Chooser

	// PromptLine asks for a free-text answer (e.g. the player's name).
	PromptLine(ctx context.Context, label string) (string, error)

	// WaitForEnter shows msg and blocks until the reader presses Enter.
	WaitForEnter(ctx context.Context, msg string) error

	// SystemOutput presents a meta-message to the user (warnings, status updates).
	// This is distinct from story content.
	SystemOutput(ctx context.Context, msg string) error
}

// ContentRenderer is a function that transforms the content before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)
