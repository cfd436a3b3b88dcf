package content

import (
	"strings"

	"github.com/aretw0/tales/pkg/domain"
)

// StorySpec is the on-disk shape of a story file.
// It uses "mapstructure" tags so the same DTO serves YAML, JSON and frontmatter maps.
type StorySpec struct {
	Name  string     `json:"name" mapstructure:"name" validate:"required"`
	Genre string     `json:"genre,omitempty" mapstructure:"genre"`
	Start string     `json:"start" mapstructure:"start" validate:"required"`
	Nodes []NodeSpec `json:"nodes" mapstructure:"nodes" validate:"required,min=1,dive"`
}

// NodeSpec describes a single node.
type NodeSpec struct {
	ID          string       `json:"id" mapstructure:"id" validate:"required"`
	Title       string       `json:"title" mapstructure:"title" validate:"required"`
	Description string       `json:"description" mapstructure:"description"`
	Ending      bool         `json:"ending,omitempty" mapstructure:"ending"`
	Options     []OptionSpec `json:"options,omitempty" mapstructure:"options" validate:"dive"`
}

// OptionSpec is one labeled edge. "to_node_id" and "jump_to" are accepted
// as aliases of "to".
type OptionSpec struct {
	Text   string `json:"text" mapstructure:"text" validate:"required"`
	To     string `json:"to" mapstructure:"to" validate:"required_without_all=ToFull JumpTo"`
	ToFull string `json:"to_node_id,omitempty" mapstructure:"to_node_id"`
	JumpTo string `json:"jump_to,omitempty" mapstructure:"jump_to"`
}

// Target resolves the alias chain to the destination node id.
func (o OptionSpec) Target() string {
	switch {
	case o.To != "":
		return o.To
	case o.ToFull != "":
		return o.ToFull
	default:
		return o.JumpTo
	}
}

// Node converts the spec into its domain form.
func (n NodeSpec) Node() domain.Node {
	node := domain.Node{
		ID:          n.ID,
		Title:       n.Title,
		Description: strings.TrimSpace(n.Description),
		Ending:      n.Ending,
	}
	for _, o := range n.Options {
		node.Options = append(node.Options, domain.Option{Text: o.Text, Target: o.Target()})
	}
	return node
}
