package sequence

import (
	"fmt"
	"math"
)

// Check verifies that the content index and the order index hold the same
// notes, that the order index is sorted and that the beat range matches the
// stored notes.
func (s *Sequence) Check() error {
	if len(s.byID) != len(s.order) {
		return fmt.Errorf("index sizes differ: %d by id, %d in order", len(s.byID), len(s.order))
	}
	last := NoBeat
	first := float32(math.Inf(1))
	for i, r := range s.order {
		if s.byID[r.ID] != r {
			return fmt.Errorf("note %v at %d is not the instance in the content index", r.ID, i)
		}
		if i > 0 && compareRecords(s.order[i-1], r) >= 0 {
			return fmt.Errorf("order index not sorted at %d", i)
		}
		last = max(last, r.End())
		first = min(first, r.Beat)
	}
	if last != s.lastBeat {
		return fmt.Errorf("last beat is %v, expected %v", s.lastBeat, last)
	}
	if first != s.firstBeat {
		return fmt.Errorf("first beat is %v, expected %v", s.firstBeat, first)
	}
	return nil
}
