package schema

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalText returns the canonical JSON encoding of the spec tree, used
// for the database column and the API.
func MarshalText(s *FeatureSpec) (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encoding feature spec: %w", err)
	}
	return string(data), nil
}

// UnmarshalText parses a JSON-encoded spec tree and validates it.
func UnmarshalText(data string) (*FeatureSpec, error) {
	var s FeatureSpec
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("decoding feature spec: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid feature spec: %w", err)
	}
	return &s, nil
}

// yamlLeaf is the authored form of a tensor or scalar feature.
type yamlLeaf struct {
	DType string  `yaml:"dtype"`
	Shape []int64 `yaml:"shape"`
}

// UnmarshalYAML decodes the authored catalog form of a feature tree.
// A mapping with a "dtype" key is a leaf (tensor when a shape is given,
// scalar otherwise); any other mapping is a dict of named features.
func (s *FeatureSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: feature must be a mapping", value.Line)
	}

	if hasKey(value, "dtype") {
		var leaf yamlLeaf
		if err := value.Decode(&leaf); err != nil {
			return err
		}
		s.DType = DType(leaf.DType)
		s.Shape = leaf.Shape
		if len(leaf.Shape) > 0 {
			s.Kind = KindTensor
		} else {
			s.Kind = KindScalar
		}
		return nil
	}

	fields := make(map[string]*FeatureSpec, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		name := value.Content[i].Value
		child := &FeatureSpec{}
		if err := child.UnmarshalYAML(value.Content[i+1]); err != nil {
			return err
		}
		fields[name] = child
	}
	s.Kind = KindDict
	s.Fields = fields
	return nil
}

func hasKey(mapping *yaml.Node, key string) bool {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return true
		}
	}
	return false
}
