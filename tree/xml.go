package tree

import (
	"encoding/xml"
	"fmt"
	"io"
)

func (e *Element) MarshalXML(enc *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: e.Tag}}
	for _, a := range e.Attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, c := range e.Children {
		if c == nil {
			continue
		}
		if err := enc.Encode(c); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

func (e *Element) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	e.Tag = start.Name.Local
	e.Attrs = e.Attrs[:0]
	e.Children = e.Children[:0]
	for _, a := range start.Attr {
		e.Attrs = append(e.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
	}
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child := new(Element)
			if err := child.UnmarshalXML(dec, t); err != nil {
				return err
			}
			e.Children = append(e.Children, child)
		case xml.EndElement:
			return nil
		}
	}
}

func encodeXML(w io.Writer, e *Element) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(e); err != nil {
		return fmt.Errorf("could not encode xml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func decodeXML(r io.Reader) (*Element, error) {
	e := new(Element)
	if err := xml.NewDecoder(r).Decode(e); err != nil {
		return nil, fmt.Errorf("could not decode xml: %w", err)
	}
	return e, nil
}
