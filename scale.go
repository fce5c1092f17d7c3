package notetrack

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/notetrack/notetrack/tree"
)

// ChromaticSize is the number of semitones in an octave.
const ChromaticSize = 12

type (
	// Scale is a named set of keys within one octave, given as semitone
	// offsets from the root in ascending order, always starting at 0. For
	// example, the major scale is {0, 2, 4, 5, 7, 9, 11}.
	Scale struct {
		Name string
		Keys []int
	}

	// Function is a scale degree used as the root of a chord, counting from
	// zero: Tonic is the first degree of the scale.
	Function int
)

const (
	Tonic Function = iota
	Supertonic
	Mediant
	Subdominant
	Dominant
	Submediant
	Subtonic
)

// Degrees used for building chords.
const (
	degreeI   = 0
	degreeIII = 2
	degreeV   = 4
	degreeVII = 6
)

// Element tags and attributes of the persisted scale.
const (
	ScaleTag           = "scale"
	ScaleNameAttr      = "name"
	ScaleIntervalsAttr = "intervals"
)

// ParseScale builds a scale from its textual intervals, e.g. "2 2 1 2 2 2 1".
// Each token is the distance to the next degree; the last token completes
// the octave. A token that is not an integer still adds a degree, with a
// distance of 0.
func ParseScale(name, intervals string) Scale {
	s := Scale{Name: name}
	key := 0
	for _, token := range strings.Fields(intervals) {
		delta, _ := strconv.Atoi(token)
		s.Keys = append(s.Keys, key)
		key += delta
	}
	return s
}

func (s Scale) Size() int { return len(s.Keys) }

// Valid reports whether the scale has a name and at least one key.
func (s Scale) Valid() bool { return len(s.Keys) > 0 && s.Name != "" }

// DisplayName returns the name in title case, for user interfaces.
func (s Scale) DisplayName() string {
	return cases.Title(language.English).String(s.Name)
}

// Key returns the semitone offset of the given scale degree. Degrees past
// the size of the scale continue into the next octaves, unless oneOctave is
// set, in which case the result is folded back to the first octave.
// Negative degrees count downwards.
func (s Scale) Key(degree int, oneOctave bool) int {
	size := s.Size()
	if size == 0 {
		return 0
	}
	octave, index := degree/size, degree%size
	if index < 0 {
		index += size
		octave--
	}
	if oneOctave {
		return s.Keys[index]
	}
	return s.Keys[index] + ChromaticSize*octave
}

func (s Scale) PowerChord(fn Function, oneOctave bool) []int {
	return s.chord(fn, oneOctave, degreeI, degreeV)
}

func (s Scale) Triad(fn Function, oneOctave bool) []int {
	return s.chord(fn, oneOctave, degreeI, degreeIII, degreeV)
}

func (s Scale) SeventhChord(fn Function, oneOctave bool) []int {
	return s.chord(fn, oneOctave, degreeI, degreeIII, degreeV, degreeVII)
}

func (s Scale) chord(fn Function, oneOctave bool, degrees ...int) []int {
	ret := make([]int, len(degrees))
	for i, d := range degrees {
		ret[i] = s.Key(d+int(fn), oneOctave)
	}
	return ret
}

// SeemsMinor reports whether the third degree is a minor third.
func (s Scale) SeemsMinor() bool {
	return s.Size() > degreeIII && s.Key(degreeIII, false) == 3
}

// Intervals returns the textual form of the scale: the distances between
// successive keys, with the final distance completing the octave.
func (s Scale) Intervals() string {
	var b strings.Builder
	prev := 0
	for _, key := range s.Keys {
		if key > 0 {
			b.WriteString(strconv.Itoa(key - prev))
			b.WriteByte(' ')
			prev = key
		}
	}
	b.WriteString(strconv.Itoa(ChromaticSize - prev))
	return b.String()
}

func (s Scale) Copy() Scale {
	keys := make([]int, len(s.Keys))
	copy(keys, s.Keys)
	return Scale{Name: s.Name, Keys: keys}
}

func (s Scale) Serialize() *tree.Element {
	return tree.New(ScaleTag).Set(ScaleNameAttr, s.Name).Set(ScaleIntervalsAttr, s.Intervals())
}

// Deserialize reads the scale from e, which can be the scale element itself
// or its parent. If no scale element is found, the scale is left untouched;
// otherwise missing attributes leave the scale unnamed or empty.
func (s *Scale) Deserialize(e *tree.Element) {
	root := e.Find(ScaleTag)
	if root == nil {
		return
	}
	*s = ParseScale(root.String(ScaleNameAttr, ""), root.String(ScaleIntervalsAttr, ""))
}
