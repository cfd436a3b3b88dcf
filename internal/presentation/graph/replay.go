package graph

import (
	"fmt"

	"github.com/aretw0/tales/pkg/domain"
)

// ReplayOverlay follows picks (1-based option numbers) from the start node and
// returns the nodes passed through, with the last one reached as current.
func ReplayOverlay(g *domain.Graph, picks []int) (*GraphOverlay, error) {
	current := g.Start()
	visited := []string{}

	for step, pick := range picks {
		node, ok := g.Node(current)
		if !ok {
			return nil, &domain.GraphIntegrityError{NodeID: current, Kind: domain.IntegrityMissingNode}
		}
		if node.Ending {
			return nil, fmt.Errorf("step %d: node '%s' is an ending", step+1, current)
		}
		if pick < 1 || pick > len(node.Options) {
			return nil, fmt.Errorf("step %d: pick %d out of range 1-%d at node '%s'", step+1, pick, len(node.Options), current)
		}
		visited = append(visited, current)
		current = node.Options[pick-1].Target
	}

	return &GraphOverlay{VisitedNodes: visited, CurrentNode: current}, nil
}
