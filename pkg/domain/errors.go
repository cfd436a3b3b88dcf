package domain

import (
	"errors"
	"fmt"
)

// ErrInputExhausted is returned when the input stream closes while a prompt is pending.
var ErrInputExhausted = errors.New("input exhausted")

// ErrGraphIntegrity matches any *GraphIntegrityError via errors.Is.
var ErrGraphIntegrity = errors.New("graph integrity error")

// ErrStepLimit is returned when a traversal exceeds its configured step budget.
var ErrStepLimit = errors.New("traversal step limit exceeded")

// IntegrityKind classifies a content defect in a story graph.
type IntegrityKind string

const (
	IntegrityMissingNode   IntegrityKind = "missing_node"
	IntegrityMissingStart  IntegrityKind = "missing_start"
	IntegrityDuplicateNode IntegrityKind = "duplicate_node"
	IntegrityEmptyID       IntegrityKind = "empty_id"
	IntegrityNoOptions     IntegrityKind = "no_options"
	IntegrityEndingOptions IntegrityKind = "ending_with_options"
	IntegrityInvalidOption IntegrityKind = "invalid_option"
	IntegrityDanglingEdge  IntegrityKind = "dangling_edge"
)

// GraphIntegrityError reports an authoring defect in a story graph.
// It aborts the traversal it is found in; it is never retried.
type GraphIntegrityError struct {
	Story  string
	NodeID string
	Kind   IntegrityKind
	Detail string
}

func (e *GraphIntegrityError) Error() string {
	msg := fmt.Sprintf("graph integrity (%s)", e.Kind)
	if e.Story != "" {
		msg += fmt.Sprintf(" in story %q", e.Story)
	}
	if e.NodeID != "" {
		msg += fmt.Sprintf(": node '%s'", e.NodeID)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Is reports whether target is ErrGraphIntegrity.
func (e *GraphIntegrityError) Is(target error) bool {
	return target == ErrGraphIntegrity
}

// PersistenceError wraps an I/O failure of the outcome log.
// It is a warning to the reader, never a reason to discard a completed session.
type PersistenceError struct {
	Op      string // "append" or "recent"
	Backend string // e.g. "file", "redis"
	Err     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s outcome log %s failed: %v", e.Backend, e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
