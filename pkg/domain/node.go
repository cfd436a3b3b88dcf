package domain

// Option is a reader-facing choice and the node it leads to.
type Option struct {
	Text   string `json:"text" yaml:"text"`
	Target string `json:"to" yaml:"to"`
}

// Node represents a single narrative beat in a story graph.
type Node struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Options are presented to the reader numbered 1..N in this order.
	Options []Option `json:"options,omitempty" yaml:"options,omitempty"`

	// Ending marks a sink node. Options of an ending node are never consulted.
	Ending bool `json:"ending,omitempty" yaml:"ending,omitempty"`
}

func (n Node) clone() Node {
	if n.Options != nil {
		n.Options = append([]Option(nil), n.Options...)
	}
	return n
}
