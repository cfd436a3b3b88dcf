package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/tales/pkg/domain"
)

// ErrInvalidChoice describes a rejected pick. It never leaves Choose: the
// reader is told and asked again.
var ErrInvalidChoice = errors.New("invalid choice")

// TextHandler implements the standard text-based interface.
type TextHandler struct {
	Reader   *bufio.Reader
	Writer   io.Writer
	Renderer ContentRenderer

	// ClearScreen, when set, is called before each node is presented.
	ClearScreen func()

	inputChan chan inputResult
	startOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithRenderer configures the content renderer.
func WithRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// WithClearScreen configures the function used to clear the screen between nodes.
func WithClearScreen(clear func()) TextHandlerOption {
	return func(h *TextHandler) {
		h.ClearScreen = clear
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader: bufio.NewReader(r),
		Writer: w,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextHandler) initPump() {
	h.startOnce.Do(func() {
		h.inputChan = make(chan inputResult)
		go h.pump()
	})
}

// pump moves blocking reads off the caller's goroutine so a pending prompt
// can still observe context cancellation.
func (h *TextHandler) pump() {
	for {
		text, err := h.Reader.ReadString('\n')

		// If we got text (even with EOF), send it
		if text != "" {
			h.inputChan <- inputResult{text: text}
		}

		if err != nil {
			if err == io.EOF {
				close(h.inputChan)
				return
			}
			h.inputChan <- inputResult{err: err}
			// Backoff for non-fatal errors to prevent CPU spikes on persistent failure
			time.Sleep(50 * time.Millisecond)
		}
	}
}

// readLine returns the next sanitized line, or domain.ErrInputExhausted once
// the stream has closed.
func (h *TextHandler) readLine(ctx context.Context) (string, error) {
	h.initPump()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case res, ok := <-h.inputChan:
			if !ok {
				return "", domain.ErrInputExhausted
			}
			if res.err != nil {
				return "", fmt.Errorf("input error: %w", res.err)
			}

			clean, err := SanitizeInput(strings.TrimSpace(res.text))
			if err != nil {
				fmt.Fprintf(h.Writer, "Error: %v. Please try again.\n", err)
				continue
			}
			return clean, nil
		}
	}
}

// Present renders a node: story header, title, description and numbered options.
func (h *TextHandler) Present(ctx context.Context, story string, node domain.Node) error {
	if h.ClearScreen != nil {
		h.ClearScreen()
	}

	if story != "" {
		fmt.Fprintf(h.Writer, "=== %s ===\n\n", story)
	}
	fmt.Fprintf(h.Writer, "-- %s --\n", node.Title)

	if desc := strings.TrimSpace(node.Description); desc != "" {
		output := desc
		if h.Renderer != nil {
			if rendered, err := h.Renderer(desc); err == nil {
				output = strings.TrimSpace(rendered)
			}
		}
		fmt.Fprintln(h.Writer, output)
	}
	fmt.Fprintln(h.Writer)

	if node.Ending {
		fmt.Fprintln(h.Writer, "=== THE END ===")
		return nil
	}

	for i, opt := range node.Options {
		fmt.Fprintf(h.Writer, "%d) %s\n", i+1, opt.Text)
	}
	fmt.Fprintln(h.Writer)
	return nil
}

// Choose prompts until the reader enters an integer within [min, max].
// Invalid input is reported and re-prompted without bound; the only errors
// returned are domain.ErrInputExhausted, context cancellation and read failures.
func (h *TextHandler) Choose(ctx context.Context, min, max int) (int, error) {
	if min < 1 || min > max {
		return 0, fmt.Errorf("invalid choice bounds [%d, %d]", min, max)
	}

	for {
		fmt.Fprintf(h.Writer, "Choose (%d-%d): ", min, max)

		line, err := h.readLine(ctx)
		if err != nil {
			return 0, err
		}

		pick, err := ParseChoice(line, min, max)
		if err != nil {
			fmt.Fprint(h.Writer, "Invalid choice. Try again.\n\n")
			continue
		}
		return pick, nil
	}
}

// ParseChoice parses a raw line as an integer within [min, max].
func ParseChoice(line string, min, max int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidChoice, line)
	}
	if n < min || n > max {
		return 0, fmt.Errorf("%w: %d is outside %d-%d", ErrInvalidChoice, n, min, max)
	}
	return n, nil
}

// PromptLine asks for a free-text answer.
func (h *TextHandler) PromptLine(ctx context.Context, label string) (string, error) {
	fmt.Fprint(h.Writer, label)
	return h.readLine(ctx)
}

// WaitForEnter shows msg and consumes one line of input.
func (h *TextHandler) WaitForEnter(ctx context.Context, msg string) error {
	fmt.Fprintf(h.Writer, "\n%s\n", msg)
	_, err := h.readLine(ctx)
	return err
}

// SystemOutput prints a meta-message with a distinguishing prefix.
func (h *TextHandler) SystemOutput(ctx context.Context, msg string) error {
	fmt.Fprintf(h.Writer, "[System] %s\n", msg)
	return nil
}

var _ IOHandler = (*TextHandler)(nil)
