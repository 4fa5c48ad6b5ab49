package value

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes the first YAML document in data into a Value.
//
// Scalars are resolved by their YAML tag: !!null, !!bool, !!int and !!float
// map to the matching kinds, everything else (including !!timestamp and
// !!binary) is kept as its literal string. Aliases are expanded in place.
func ParseYAML(data []byte) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Value{}, err
	}
	if doc.Kind == 0 || (doc.Kind == yaml.DocumentNode && len(doc.Content) == 0) {
		return Value{}, fmt.Errorf("empty YAML document")
	}
	return fromYAMLNode(&doc)
}

func fromYAMLNode(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return fromYAMLNode(n.Content[0])

	case yaml.AliasNode:
		if n.Alias == nil {
			return Value{}, fmt.Errorf("line %d: unresolved alias %q", n.Line, n.Value)
		}
		return fromYAMLNode(n.Alias)

	case yaml.SequenceNode:
		seq := make([]Value, 0, len(n.Content))
		for _, c := range n.Content {
			elem, err := fromYAMLNode(c)
			if err != nil {
				return Value{}, err
			}
			seq = append(seq, elem)
		}
		return Value{kind: KindSequence, seq: seq}, nil

	case yaml.MappingNode:
		if len(n.Content)%2 != 0 {
			return Value{}, fmt.Errorf("line %d: mapping has an odd number of nodes", n.Line)
		}
		entries := make([]Entry, 0, len(n.Content)/2)
		for i := 0; i < len(n.Content); i += 2 {
			keyNode, valNode := n.Content[i], n.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return Value{}, fmt.Errorf("line %d: mapping keys must be scalars", keyNode.Line)
			}
			val, err := fromYAMLNode(valNode)
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", keyNode.Value, err)
			}
			entries = append(entries, Entry{Key: keyNode.Value, Value: val})
		}
		return Value{kind: KindMapping, entries: entries}, nil

	case yaml.ScalarNode:
		return fromYAMLScalar(n)
	}
	return Value{}, fmt.Errorf("line %d: unsupported YAML node kind %v", n.Line, n.Kind)
}

func fromYAMLScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return Bool(b), nil
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return Number(f), nil
	default:
		return String(n.Value), nil
	}
}
