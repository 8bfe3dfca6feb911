package export

import (
	"io"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/ssargent/binsave/pkg/codec"
)

// Encode writes the export of r to w as a YAML mapping in declaration order
func Encode(w io.Writer, r *codec.Record) error {
	values, err := Export(r)
	if err != nil {
		return err
	}

	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range Names(r.Schema()) {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: values[name]},
		)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, "encode export")
	}
	return errors.Wrap(enc.Close(), "encode export")
}

// Decode reads a mapping written by Encode. Every value is read as text.
func Decode(rd io.Reader) (map[string]string, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(rd).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]string{}, nil
		}
		return nil, errors.Wrap(err, "decode export")
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, errors.Newf("decode export: expected a mapping, got %s", kindName(root.Kind))
	}

	values := make(map[string]string, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return nil, errors.Newf("decode export: value of %q is not a scalar", key.Value)
		}
		values[key.Value] = value.Value
	}
	return values, nil
}

func kindName(kind yaml.Kind) string {
	switch kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "document"
	}
}
