package loam

// NodeMetadata is the frontmatter of a story document.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
//
// A directory holds one story. Exactly one document carries the story header
// (story, start, optionally genre); every other document is a node whose
// markdown body is the node description.
type NodeMetadata struct {
	ID      string         `json:"id" mapstructure:"id"`
	Title   string         `json:"title" mapstructure:"title"`
	Ending  bool           `json:"ending" mapstructure:"ending"`
	Options []LoaderOption `json:"options" mapstructure:"options"`

	// Story header fields.
	Story string `json:"story,omitempty" mapstructure:"story"`
	Genre string `json:"genre,omitempty" mapstructure:"genre"`
	Start string `json:"start,omitempty" mapstructure:"start"`
}

// LoaderOption is one choice as written in frontmatter.
type LoaderOption struct {
	Text   string `json:"text" mapstructure:"text"`
	To     string `json:"to" mapstructure:"to"`
	ToFull string `json:"to_node_id" mapstructure:"to_node_id"`
	JumpTo string `json:"jump_to" mapstructure:"jump_to"`
}

// IsHeader reports whether the document describes the story rather than a node.
func (m NodeMetadata) IsHeader() bool {
	return m.Story != ""
}
