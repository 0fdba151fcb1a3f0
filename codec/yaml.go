package codec

import (
	"reflect"

	"gopkg.in/yaml.v3"

	structmap "github.com/reoring/structmap"
)

// EncodeYAML renders the view as a YAML mapping with keys in declaration
// order. A yaml.Node mapping is built by hand because yaml.Marshal on a Go map
// would lose the ordering guarantee.
func EncodeYAML[P any, V any](m *structmap.Map[P, V]) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i, key := range m.Keys() {
		v, err := m.At(i)
		if err != nil {
			return nil, err
		}
		kn := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
		vn := &yaml.Node{}
		if err := vn.Encode(v); err != nil {
			return nil, wrapEncode(key, err)
		}
		root.Content = append(root.Content, kn, vn)
	}
	out, err := yaml.Marshal(root)
	if err != nil {
		return nil, wrapEncode("", err)
	}
	return out, nil
}

// DecodeYAML parses a YAML mapping and writes each member through the view,
// with the same strict unknown-member and type-mismatch posture as DecodeJSON.
func DecodeYAML[P any](m *structmap.Map[P, any], data []byte) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return structmap.Issues{structmap.Issue{
			Path:    "/",
			Code:    structmap.CodeParseError,
			Message: err.Error(),
			Cause:   err,
		}}
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return structmap.Issues{structmap.Issue{
			Path:    "/",
			Code:    structmap.CodeParseError,
			Message: "expected a YAML mapping",
			Hint:    "got node kind " + kindName(root.Kind),
		}}
	}
	var iss structmap.Issues
	for i := 0; i+1 < len(root.Content); i += 2 {
		kn, vn := root.Content[i], root.Content[i+1]
		key := kn.Value
		idx, ok := m.Layout().IndexOf(key)
		if !ok {
			iss = appendErr(iss, unknownMember(m, key))
			continue
		}
		e, _ := m.Layout().Entry(idx)
		nv := reflect.New(e.Type)
		if err := vn.Decode(nv.Interface()); err != nil {
			iss = structmap.AppendIssues(iss, structmap.Issue{
				Path:    "/" + key,
				Code:    structmap.CodeParseError,
				Message: err.Error(),
				Cause:   err,
			})
			continue
		}
		if err := m.Set(key, nv.Elem().Interface()); err != nil {
			iss = appendErr(iss, err)
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
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
