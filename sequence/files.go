package sequence

import (
	"fmt"
	"io"
	"os"

	"github.com/notetrack/notetrack/tree"
)

// Load reads a track file in XML or YAML and deserializes it into the
// sequence. Only syntax errors of the file are returned; a file without a
// track element loads as an empty sequence.
func (s *Sequence) Load(r io.Reader) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("could not read track: %w", err)
	}
	e, err := tree.Decode(b)
	if err != nil {
		return fmt.Errorf("could not decode track: %w", err)
	}
	s.Deserialize(e)
	return nil
}

// Save serializes the sequence and writes it in the given format.
func (s *Sequence) Save(w io.Writer, f tree.Format) error {
	if err := tree.Encode(w, s.Serialize(), f); err != nil {
		return fmt.Errorf("could not write track: %w", err)
	}
	return nil
}

// LoadFile loads the track file at path.
func (s *Sequence) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open track file: %w", err)
	}
	defer f.Close()
	return s.Load(f)
}

// SaveFile writes the track to path, choosing the format from the file
// extension.
func (s *Sequence) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create track file: %w", err)
	}
	if err := s.Save(f, tree.FormatOf(path)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
