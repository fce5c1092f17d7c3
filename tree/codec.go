package tree

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

type Format int

const (
	XML Format = iota
	YAML
)

var ErrUnknownFormat = errors.New("unknown format")

func (f Format) String() string {
	switch f {
	case XML:
		return "xml"
	case YAML:
		return "yaml"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat accepts the format names and the usual file extensions,
// with or without the leading dot.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "xml":
		return XML, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return XML, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatOf guesses the format from a file name, defaulting to XML.
func FormatOf(path string) Format {
	f, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return XML
	}
	return f
}

func Encode(w io.Writer, e *Element, f Format) error {
	switch f {
	case XML:
		return encodeXML(w, e)
	case YAML:
		return encodeYAML(w, e)
	}
	return fmt.Errorf("%w: %v", ErrUnknownFormat, f)
}

// Decode reads an element tree in either format. Content starting with '<'
// is parsed as XML, anything else as YAML.
func Decode(b []byte) (*Element, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return nil, errors.New("empty document")
	}
	if trimmed[0] == '<' {
		return decodeXML(bytes.NewReader(trimmed))
	}
	return decodeYAML(bytes.NewReader(trimmed))
}
