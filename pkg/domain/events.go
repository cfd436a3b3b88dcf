package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTraversalStart EventType = "traversal_start"
	EventNodeEnter      EventType = "node_enter"
	EventChoice         EventType = "choice"
	EventEnding         EventType = "ending"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id"`
}

// NodeEvent represents entry into a node.
type NodeEvent struct {
	EventBase
	NodeID string `json:"node_id"`
	Ending bool   `json:"ending,omitempty"`
}

// ChoiceEvent represents a reader's pick at a node.
type ChoiceEvent struct {
	EventBase
	NodeID string `json:"node_id"`
	Pick   int    `json:"pick"`
	Target string `json:"target"`
}

// TraversalEvent marks the start or completion of a traversal.
type TraversalEvent struct {
	EventBase
	Story  string `json:"story,omitempty"`
	NodeID string `json:"node_id"`
	Steps  int    `json:"steps"`
}

// LifecycleHooks defines callbacks for navigator observability.
type LifecycleHooks struct {
	OnTraversalStart func(context.Context, *TraversalEvent)
	OnNodeEnter      func(context.Context, *NodeEvent)
	OnChoice         func(context.Context, *ChoiceEvent)
	OnEnding         func(context.Context, *TraversalEvent)
}
