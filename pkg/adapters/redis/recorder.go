package redis

import (
	"context"
	"fmt"

	"github.com/aretw0/tales/pkg/domain"
	"github.com/aretw0/tales/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// DefaultKey is the list that holds the outcome log.
const DefaultKey = "tales:outcomes"

// Recorder implements ports.Recorder as a Redis list: RPUSH to append,
// LRANGE over the tail to read.
type Recorder struct {
	client     *backend.Client
	key        string
	maxEntries int64
}

type Option func(*Recorder)

// WithKey sets the list key.
func WithKey(key string) Option {
	return func(r *Recorder) {
		if key != "" {
			r.key = key
		}
	}
}

// WithMaxEntries caps the list length; older records are trimmed on append.
// Zero keeps everything.
func WithMaxEntries(n int) Option {
	return func(r *Recorder) {
		r.maxEntries = int64(max(n, 0))
	}
}

// New creates a new Redis recorder with options.
func New(address, password string, db int, opts ...Option) *Recorder {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis recorder from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Recorder {
	r := &Recorder{
		client: client,
		key:    DefaultKey,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Append pushes the record onto the tail of the list.
func (r *Recorder) Append(ctx context.Context, o domain.Outcome) error {
	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, r.key, o.String())
	if r.maxEntries > 0 {
		pipe.LTrim(ctx, r.key, -r.maxEntries, -1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return &domain.PersistenceError{Op: "append", Backend: "redis", Err: err}
	}
	return nil
}

// Recent returns the last limit records, oldest first.
func (r *Recorder) Recent(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		return []string{}, nil
	}
	lines, err := r.client.LRange(ctx, r.key, int64(-limit), -1).Result()
	if err != nil {
		return nil, &domain.PersistenceError{Op: "read", Backend: "redis", Err: err}
	}
	if lines == nil {
		lines = []string{}
	}
	return lines, nil
}

// Close releases the underlying client.
func (r *Recorder) Close() error {
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}
	return nil
}

var _ ports.Recorder = (*Recorder)(nil)
