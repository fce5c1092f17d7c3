// Package report renders text summaries of sequences with text/template.
// The templates get the sprig function map, so custom templates can use e.g.
// {{ .Notes | len }} or {{ .Track | upper }}.
package report

import (
	"embed"
	"fmt"
	"io"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/viterin/vek/vek32"

	"github.com/notetrack/notetrack"
	"github.com/notetrack/notetrack/sequence"
)

type Reporter struct {
	Template *template.Template
}

// Summary is the data passed to the templates.
type Summary struct {
	Track        string
	Count        int
	FirstBeat    float32
	LastBeat     float32
	LowKey       int
	HighKey      int
	MeanVelocity float32
	Notes        []notetrack.Note
}

//go:embed templates/*.tmpl
var templateFS embed.FS

// New returns a reporter using the built-in templates, info.tmpl and
// notes.tmpl.
func New() (*Reporter, error) {
	tmpl, err := template.New("base").Funcs(sprig.TxtFuncMap()).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf(`could not create templates: %v`, err)
	}
	return &Reporter{Template: tmpl}, nil
}

// NewFromFile returns a reporter with a single template, named after the
// file.
func NewFromFile(path string) (*Reporter, error) {
	tmpl, err := template.New(filepath.Base(path)).Funcs(sprig.TxtFuncMap()).ParseFiles(path)
	if err != nil {
		return nil, fmt.Errorf(`could not create template based on file "%v": %v`, path, err)
	}
	return &Reporter{Template: tmpl}, nil
}

// Summarize collects the summary of the sequence.
func Summarize(s *sequence.Sequence) Summary {
	ret := Summary{Count: s.Len(), Notes: s.Notes()}
	if t := s.Track(); t != nil {
		ret.Track = t.Label()
	}
	if ret.Count == 0 {
		return ret
	}
	ret.FirstBeat, ret.LastBeat = s.FirstBeat(), s.LastBeat()
	velocities := make([]float32, len(ret.Notes))
	ret.LowKey, ret.HighKey = ret.Notes[0].Key, ret.Notes[0].Key
	for i, n := range ret.Notes {
		velocities[i] = n.Velocity
		ret.LowKey = min(ret.LowKey, n.Key)
		ret.HighKey = max(ret.HighKey, n.Key)
	}
	ret.MeanVelocity = vek32.Mean(velocities)
	return ret
}

// Execute renders the named template. An empty name renders the first
// template of a reporter made with NewFromFile, or info.tmpl.
func (r *Reporter) Execute(w io.Writer, name string, data Summary) error {
	if name == "" {
		name = r.Template.Name()
		if name == "base" {
			name = "info.tmpl"
		}
	}
	if err := r.Template.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf(`could not execute template "%v": %v`, name, err)
	}
	return nil
}
