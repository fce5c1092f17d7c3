package tree

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// In YAML an element is a mapping with the keys tag, attrs and children:
//
//	tag: track
//	children:
//	  - {tag: note, attrs: {key: 60, beat: 0, len: 1, vel: 0.8}}
//
// Attribute values are kept as plain scalars and always read back as
// strings.

func (e *Element) MarshalYAML() (interface{}, error) {
	return e.yamlNode(), nil
}

func (e *Element) yamlNode() *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	n.Content = append(n.Content, scalar("tag"), scalar(e.Tag))
	if len(e.Attrs) > 0 {
		attrs := &yaml.Node{Kind: yaml.MappingNode, Style: yaml.FlowStyle}
		for _, a := range e.Attrs {
			attrs.Content = append(attrs.Content, scalar(a.Name), scalar(a.Value))
		}
		n.Content = append(n.Content, scalar("attrs"), attrs)
	}
	if len(e.Children) > 0 {
		children := &yaml.Node{Kind: yaml.SequenceNode}
		for _, c := range e.Children {
			if c == nil {
				continue
			}
			cn := c.yamlNode()
			if len(c.Children) == 0 {
				cn.Style = yaml.FlowStyle
			}
			children.Content = append(children.Content, cn)
		}
		n.Content = append(n.Content, scalar("children"), children)
	}
	return n
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: v}
}

func (e *Element) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.DocumentNode && len(value.Content) == 1 {
		value = value.Content[0]
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: element must be a mapping", value.Line)
	}
	e.Tag = ""
	e.Attrs = e.Attrs[:0]
	e.Children = e.Children[:0]
	for i := 0; i+1 < len(value.Content); i += 2 {
		k, v := value.Content[i], value.Content[i+1]
		switch k.Value {
		case "tag":
			e.Tag = v.Value
		case "attrs":
			if v.Kind != yaml.MappingNode {
				return fmt.Errorf("line %d: attrs must be a mapping", v.Line)
			}
			for j := 0; j+1 < len(v.Content); j += 2 {
				e.Attrs = append(e.Attrs, Attr{Name: v.Content[j].Value, Value: v.Content[j+1].Value})
			}
		case "children":
			if v.Kind != yaml.SequenceNode {
				return fmt.Errorf("line %d: children must be a sequence", v.Line)
			}
			for _, cn := range v.Content {
				child := new(Element)
				if err := child.UnmarshalYAML(cn); err != nil {
					return err
				}
				e.Children = append(e.Children, child)
			}
		}
	}
	return nil
}

func encodeYAML(w io.Writer, e *Element) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(e); err != nil {
		return fmt.Errorf("could not encode yaml: %w", err)
	}
	return enc.Close()
}

func decodeYAML(r io.Reader) (*Element, error) {
	e := new(Element)
	if err := yaml.NewDecoder(r).Decode(e); err != nil {
		return nil, fmt.Errorf("could not decode yaml: %w", err)
	}
	return e, nil
}
