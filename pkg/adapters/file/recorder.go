package file

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/aretw0/tales/pkg/domain"
	"github.com/aretw0/tales/pkg/ports"
)

// DefaultPath is the log file used when none is configured.
const DefaultPath = "adventure_log.txt"

const backendName = "file"

// Recorder implements ports.Recorder as an append-only text file, one
// outcome per line.
type Recorder struct {
	Path string
	mu   sync.Mutex
}

// New creates a Recorder writing to path.
// If path is empty, it defaults to DefaultPath in the working directory.
func New(path string) *Recorder {
	if path == "" {
		path = DefaultPath
	}
	return &Recorder{Path: path}
}

// Append writes one record to the end of the log, creating it and its
// directory on first use.
func (r *Recorder) Append(ctx context.Context, o domain.Outcome) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if dir := filepath.Dir(r.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return r.fail("append", fmt.Errorf("failed to ensure log directory: %w", err))
		}
	}

	f, err := os.OpenFile(r.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return r.fail("append", err)
	}

	if _, err := f.WriteString(o.String() + "\n"); err != nil {
		f.Close()
		return r.fail("append", err)
	}
	if err := f.Close(); err != nil {
		return r.fail("append", err)
	}
	return nil
}

// Recent returns the last limit records, oldest first. A missing log is an
// empty history.
func (r *Recorder) Recent(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		return []string{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.Open(r.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, r.fail("read", err)
	}
	defer f.Close()

	// Ring buffer over the tail of the file. It grows with the lines read, so
	// a huge limit costs nothing up front.
	ring := []string{}
	next := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if len(ring) < limit {
			ring = append(ring, line)
			continue
		}
		ring[next] = line
		next = (next + 1) % limit
	}
	if err := scanner.Err(); err != nil {
		return nil, r.fail("read", err)
	}

	return append(ring[next:], ring[:next]...), nil
}

func (r *Recorder) fail(op string, err error) error {
	return &domain.PersistenceError{Op: op, Backend: backendName, Err: err}
}

var _ ports.Recorder = (*Recorder)(nil)
