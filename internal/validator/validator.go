package validator

import (
	"errors"
	"fmt"

	"github.com/aretw0/tales/pkg/domain"
)

// AggregateError collects every defect found in a graph.
type AggregateError struct {
	Story  string
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("found %d errors", len(e.Errors))
	if e.Story != "" {
		msg += fmt.Sprintf(" in story %q", e.Story)
	}
	msg += ":\n"
	for _, err := range e.Errors {
		msg += "- " + err.Error() + "\n"
	}
	return msg
}

// Unwrap exposes the individual defects to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// ValidationErrors returns all validation errors if err wraps an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}

// ValidateGraph checks that the start node exists, every node satisfies the
// option/ending invariants and every option target resolves within the graph.
// Reachability and cycles are not checked: both are valid content.
func ValidateGraph(story string, g *domain.Graph) error {
	if g == nil {
		return &AggregateError{Story: story, Errors: []error{
			&domain.GraphIntegrityError{Story: story, Kind: domain.IntegrityMissingStart, Detail: "graph is nil"},
		}}
	}

	var errs []error

	if _, ok := g.Node(g.Start()); !ok {
		errs = append(errs, &domain.GraphIntegrityError{Story: story, NodeID: g.Start(), Kind: domain.IntegrityMissingStart})
	}

	for _, n := range g.Nodes() {
		if err := domain.CheckNode(n); err != nil {
			errs = append(errs, withStory(err, story))
			continue
		}
		for i, opt := range n.Options {
			if _, ok := g.Node(opt.Target); ok {
				continue
			}
			errs = append(errs, &domain.GraphIntegrityError{
				Story:  story,
				NodeID: n.ID,
				Kind:   domain.IntegrityDanglingEdge,
				Detail: fmt.Sprintf("option %d (%q) targets missing node '%s'", i+1, opt.Text, opt.Target),
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Story: story, Errors: errs}
	}
	return nil
}

func withStory(err error, story string) error {
	if ie, ok := err.(*domain.GraphIntegrityError); ok && ie.Story == "" {
		cp := *ie
		cp.Story = story
		return &cp
	}
	return err
}
