package dsl

import "github.com/aretw0/tales/pkg/domain"

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node    domain.Node
	builder *Builder
}

// Title sets the heading shown when the node is entered.
func (n *NodeBuilder) Title(title string) *NodeBuilder {
	n.node.Title = title
	return n
}

// Text sets the narrative description of the node.
func (n *NodeBuilder) Text(description string) *NodeBuilder {
	n.node.Description = description
	return n
}

// Choice appends an option leading to target.
func (n *NodeBuilder) Choice(text, target string) *NodeBuilder {
	n.node.Options = append(n.node.Options, domain.Option{
		Text:   text,
		Target: target,
	})
	return n
}

// Ending marks the node as an ending and drops any options.
func (n *NodeBuilder) Ending() *NodeBuilder {
	n.node.Ending = true
	n.node.Options = nil
	return n
}

// Build returns the underlying domain.Node.
// This is primarily used by the Builder, but exposed for advanced usage.
func (n *NodeBuilder) Build() domain.Node {
	return n.node
}
