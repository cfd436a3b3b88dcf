package domain

import "fmt"

// Graph is an immutable story graph: a mapping of node IDs to nodes plus a start node.
// Accessors return copies, so a Graph can be shared freely once constructed.
type Graph struct {
	start string
	nodes map[string]Node
	order []string
}

// NewGraph builds a Graph and checks the invariants local to each node:
// the start node exists, IDs are unique, endings carry no options and
// every other node offers at least one option.
//
// Option targets are not resolved here. Dangling edges are reported by
// validation and, failing that, when a traversal reaches them.
func NewGraph(start string, nodes ...Node) (*Graph, error) {
	g := &Graph{
		start: start,
		nodes: make(map[string]Node, len(nodes)),
		order: make([]string, 0, len(nodes)),
	}

	for _, n := range nodes {
		if n.ID == "" {
			return nil, &GraphIntegrityError{Kind: IntegrityEmptyID, Detail: fmt.Sprintf("node titled %q has no id", n.Title)}
		}
		if _, dup := g.nodes[n.ID]; dup {
			return nil, &GraphIntegrityError{NodeID: n.ID, Kind: IntegrityDuplicateNode}
		}
		if err := CheckNode(n); err != nil {
			return nil, err
		}
		g.nodes[n.ID] = n.clone()
		g.order = append(g.order, n.ID)
	}

	if start == "" {
		return nil, &GraphIntegrityError{Kind: IntegrityMissingStart, Detail: "start id is empty"}
	}
	if _, ok := g.nodes[start]; !ok {
		return nil, &GraphIntegrityError{NodeID: start, Kind: IntegrityMissingStart}
	}

	return g, nil
}

// CheckNode verifies the option/ending invariants of a single node.
func CheckNode(n Node) error {
	if n.Ending {
		if len(n.Options) > 0 {
			return &GraphIntegrityError{NodeID: n.ID, Kind: IntegrityEndingOptions}
		}
		return nil
	}
	if len(n.Options) == 0 {
		return &GraphIntegrityError{NodeID: n.ID, Kind: IntegrityNoOptions}
	}
	for i, opt := range n.Options {
		if opt.Text == "" || opt.Target == "" {
			return &GraphIntegrityError{
				NodeID: n.ID,
				Kind:   IntegrityInvalidOption,
				Detail: fmt.Sprintf("option %d needs both text and target", i+1),
			}
		}
	}
	return nil
}

// Start returns the ID of the node every traversal begins at.
func (g *Graph) Start() string {
	return g.start
}

// Node looks up a node by ID.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return n.clone(), true
}

// Nodes returns every node in declaration order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id].clone())
	}
	return out
}

// Endings returns the ending nodes in declaration order.
func (g *Graph) Endings() []Node {
	var out []Node
	for _, id := range g.order {
		if n := g.nodes[id]; n.Ending {
			out = append(out, n.clone())
		}
	}
	return out
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.order)
}
