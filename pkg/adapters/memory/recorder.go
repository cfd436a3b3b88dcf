package memory

import (
	"context"
	"sync"

	"github.com/aretw0/tales/pkg/domain"
	"github.com/aretw0/tales/pkg/ports"
)

// Recorder implements ports.Recorder in memory.
// Safe for concurrent use.
type Recorder struct {
	mu      sync.RWMutex
	records []string

	// FailWith, when set, makes every call return it wrapped in a
	// domain.PersistenceError.
	FailWith error
}

// NewRecorder creates an empty in-memory recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Append stores the rendered record.
func (r *Recorder) Append(ctx context.Context, o domain.Outcome) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWith != nil {
		return &domain.PersistenceError{Op: "append", Backend: "memory", Err: r.FailWith}
	}
	r.records = append(r.records, o.String())
	return nil
}

// Recent returns a copy of the last limit records.
func (r *Recorder) Recent(ctx context.Context, limit int) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.FailWith != nil {
		return nil, &domain.PersistenceError{Op: "read", Backend: "memory", Err: r.FailWith}
	}
	if limit <= 0 {
		return []string{}, nil
	}

	start := max(len(r.records)-limit, 0)
	out := make([]string, len(r.records)-start)
	copy(out, r.records[start:])
	return out, nil
}

// Len is the number of stored records.
func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

var _ ports.Recorder = (*Recorder)(nil)
