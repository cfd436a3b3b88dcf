package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/tales/internal/validator"
	"github.com/aretw0/tales/pkg/domain"
	validate "github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ErrInvalidContent is returned when a story file is structurally malformed.
var ErrInvalidContent = errors.New("invalid story content")

// Story is a decoded, constructed story ready to be catalogued.
type Story struct {
	Name  string
	Genre string
	Graph *domain.Graph
}

// Label is the menu form of the story name.
func (s Story) Label() string {
	if s.Genre == "" {
		return s.Name
	}
	return fmt.Sprintf("%s (%s)", s.Name, s.Genre)
}

var structValidator = validate.New(validate.WithRequiredStructEnabled())

// Decode parses YAML or JSON story content. JSON is accepted because it is a
// subset of YAML.
func Decode(data []byte) (StorySpec, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return StorySpec{}, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	if raw == nil {
		return StorySpec{}, fmt.Errorf("%w: empty document", ErrInvalidContent)
	}
	return DecodeMap(raw)
}

// DecodeMap converts a generic map (from YAML, JSON or frontmatter) into a StorySpec.
// Unknown keys are rejected so typos in content fail loudly.
func DecodeMap(raw map[string]any) (StorySpec, error) {
	var spec StorySpec
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &spec,
		ErrorUnused: true,
	})
	if err != nil {
		return StorySpec{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return StorySpec{}, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	if err := structValidator.Struct(spec); err != nil {
		return StorySpec{}, fmt.Errorf("%w: %s", ErrInvalidContent, describe(err))
	}
	return spec, nil
}

// Build turns a spec into a fully validated Story.
func Build(spec StorySpec) (Story, error) {
	nodes := make([]domain.Node, 0, len(spec.Nodes))
	for _, n := range spec.Nodes {
		nodes = append(nodes, n.Node())
	}

	g, err := domain.NewGraph(spec.Start, nodes...)
	if err != nil {
		var gie *domain.GraphIntegrityError
		if errors.As(err, &gie) {
			gie.Story = spec.Name
		}
		return Story{}, err
	}
	if err := validator.ValidateGraph(spec.Name, g); err != nil {
		return Story{}, err
	}

	return Story{Name: spec.Name, Genre: spec.Genre, Graph: g}, nil
}

// Parse is Decode followed by Build.
func Parse(data []byte) (Story, error) {
	spec, err := Decode(data)
	if err != nil {
		return Story{}, err
	}
	return Build(spec)
}

func describe(err error) string {
	var verrs validate.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed '%s'", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}
