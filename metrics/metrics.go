// Package metrics exposes the change notifications of sequences as
// Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/notetrack/notetrack"
	"github.com/notetrack/notetrack/sequence"
)

type Collector struct {
	added    *prometheus.CounterVec
	removed  *prometheus.CounterVec
	changed  *prometheus.CounterVec
	reloads  *prometheus.CounterVec
	lastBeat *prometheus.GaugeVec
	notes    *prometheus.GaugeVec
}

// New creates the metrics and registers them to reg. With a nil reg, the
// metrics are created but not registered.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		added: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "notetrack",
			Name:      "notes_added_total",
			Help:      "Number of notes inserted into a track.",
		}, []string{"track"}),
		removed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "notetrack",
			Name:      "notes_removed_total",
			Help:      "Number of notes removed from a track.",
		}, []string{"track"}),
		changed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "notetrack",
			Name:      "notes_changed_total",
			Help:      "Number of note changes on a track.",
		}, []string{"track"}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "notetrack",
			Name:      "sequence_reloads_total",
			Help:      "Number of bulk replacements (import, load, reset) of a track.",
		}, []string{"track"}),
		lastBeat: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "notetrack",
			Name:      "last_beat",
			Help:      "End of the note ending last on a track, 0 for an empty track.",
		}, []string{"track"}),
		notes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "notetrack",
			Name:      "notes",
			Help:      "Number of notes stored on a track.",
		}, []string{"track"}),
	}
	if reg != nil {
		for _, m := range []prometheus.Collector{c.added, c.removed, c.changed, c.reloads, c.lastBeat, c.notes} {
			if err := reg.Register(m); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

// Listener returns a sequence listener updating the metrics of the track
// label. The note count gauge is only updated once the sequence is given to
// Attach, as the listener is needed to construct the sequence.
func (c *Collector) Listener(track string) *Listener {
	return &Listener{c: c, track: track}
}

// Listener implements sequence.Listener.
type Listener struct {
	c     *Collector
	track string
	seq   *sequence.Sequence
}

// Attach sets the sequence whose size is reported.
func (l *Listener) Attach(s *sequence.Sequence) { l.seq = s }

func (l *Listener) updateSize() {
	if l.seq != nil {
		l.c.notes.WithLabelValues(l.track).Set(float64(l.seq.Len()))
	}
}

func (l *Listener) NoteAdded(notetrack.Note) {
	l.c.added.WithLabelValues(l.track).Inc()
	l.updateSize()
}

func (l *Listener) NoteRemoving(notetrack.Note) {
	l.c.removed.WithLabelValues(l.track).Inc()
}

func (l *Listener) NotesRemoved() { l.updateSize() }

func (l *Listener) NoteChanged(before, after notetrack.Note) {
	l.c.changed.WithLabelValues(l.track).Inc()
}

func (l *Listener) RangeChanged(first, last float32) {
	if last == sequence.NoBeat {
		last = 0
	}
	l.c.lastBeat.WithLabelValues(l.track).Set(float64(last))
}

func (l *Listener) SequenceChanged() {
	l.c.reloads.WithLabelValues(l.track).Inc()
	l.updateSize()
}
