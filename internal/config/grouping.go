package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// GroupingSpec is one level of a grouper hierarchy as configured.
//
// Recognized fields are typed; any other key a site author puts on a
// grouping level (icons, colors, template hints) is kept verbatim in Extra
// for template consumption.
type GroupingSpec struct {
	Name        string          `yaml:"-"`
	Description string          `yaml:"-"`
	Sorter      string          `yaml:"-"`
	Groups      []*GroupingSpec `yaml:"-"`
	Extra       map[string]any  `yaml:"-"`
}

// UnmarshalYAML decodes a grouping level, collecting unrecognized keys into
// Extra. A `groups` value that is not a sequence is a structural failure and
// aborts the load.
func (s *GroupingSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("grouping must be a mapping, got %s at line %d", kindName(value.Kind), value.Line)
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valNode := value.Content[i+1]

		switch keyNode.Value {
		case "name":
			if err := valNode.Decode(&s.Name); err != nil {
				return fmt.Errorf("invalid group name at line %d: %w", valNode.Line, err)
			}
		case "description":
			if err := valNode.Decode(&s.Description); err != nil {
				return fmt.Errorf("invalid group description at line %d: %w", valNode.Line, err)
			}
		case "sorter":
			if err := valNode.Decode(&s.Sorter); err != nil {
				return fmt.Errorf("invalid group sorter at line %d: %w", valNode.Line, err)
			}
		case "groups":
			if valNode.Kind != yaml.SequenceNode {
				return fmt.Errorf("groups must be a sequence, got %s at line %d", kindName(valNode.Kind), valNode.Line)
			}
			if err := valNode.Decode(&s.Groups); err != nil {
				return err
			}
		default:
			var v any
			if err := valNode.Decode(&v); err != nil {
				return fmt.Errorf("invalid value for %q at line %d: %w", keyNode.Value, valNode.Line, err)
			}
			if s.Extra == nil {
				s.Extra = make(map[string]any)
			}
			s.Extra[keyNode.Value] = v
		}
	}
	return nil
}

// MarshalYAML renders the spec back to its configured shape, used by Init.
func (s *GroupingSpec) MarshalYAML() (any, error) {
	out := map[string]any{}
	if s.Name != "" {
		out["name"] = s.Name
	}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if s.Sorter != "" {
		out["sorter"] = s.Sorter
	}
	if len(s.Groups) > 0 {
		out["groups"] = s.Groups
	}
	for k, v := range s.Extra {
		out[k] = v
	}
	return out, nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}
