package marker

import "fmt"

// ID uniquely identifies a marker within a List.
type ID uint64

// Affinity determines where a marker lands when text is inserted exactly
// at its position.
type Affinity uint8

const (
	// AffinityLeft keeps the marker before text inserted at its position.
	AffinityLeft Affinity = iota

	// AffinityRight moves the marker after text inserted at its position.
	AffinityRight
)

// String returns the affinity name.
func (a Affinity) String() string {
	if a == AffinityLeft {
		return "left"
	}
	return "right"
}

// entry is one slot in the list: a gap of content bytes or a marker.
type entry struct {
	gap      int // content byte count; meaningful only when marker == false
	marker   bool
	id       ID
	affinity Affinity
}

// List is a sequential list of markers separated by gaps.
// List is not safe for concurrent use; the owning editor serializes
// access along with the buffer it tracks.
type List struct {
	entries []entry
	index   map[ID]int // marker id -> slot in entries
	nextID  ID
}

// NewList creates an empty marker list tracking a zero-length buffer.
func NewList() *List {
	return &List{
		entries: []entry{{gap: 0}},
		index:   make(map[ID]int),
	}
}

// NewListWithSize creates a marker list tracking a buffer of size bytes.
func NewListWithSize(size int) *List {
	if size < 0 {
		size = 0
	}
	return &List{
		entries: []entry{{gap: size}},
		index:   make(map[ID]int),
	}
}

// Create adds a marker at position with the given affinity and returns
// its id. The position is clamped to [0, BufferSize()].
func (l *List) Create(position int, affinity Affinity) ID {
	if position < 0 {
		position = 0
	}
	if size := l.BufferSize(); position > size {
		position = size
	}

	id := l.nextID
	l.nextID++

	// Locate the first gap whose inclusive [start, end] range contains
	// the position. Scanning to the first such gap resolves the
	// boundary case where several gaps meet at the same cumulative
	// offset.
	cumulative := 0
	insertSlot := 0
	for i, e := range l.entries {
		if e.marker {
			continue
		}
		gapStart := cumulative
		gapEnd := cumulative + e.gap
		if position >= gapStart && position <= gapEnd {
			before := position - gapStart
			after := e.gap - before

			// Replace the gap with [Gap(before), Marker, Gap(after)].
			l.entries[i] = entry{gap: before}
			rest := make([]entry, 0, len(l.entries)+2)
			rest = append(rest, l.entries[:i+1]...)
			rest = append(rest, entry{marker: true, id: id, affinity: affinity}, entry{gap: after})
			rest = append(rest, l.entries[i+1:]...)
			l.entries = rest
			insertSlot = i + 1
			break
		}
		cumulative = gapEnd
	}

	l.reindexFrom(insertSlot)
	return id
}

// Delete removes a marker explicitly. Deleting an unknown id is a no-op.
func (l *List) Delete(id ID) {
	slot, ok := l.index[id]
	if !ok {
		return
	}
	l.entries = append(l.entries[:slot], l.entries[slot+1:]...)
	delete(l.index, id)
	l.mergeGapsAt(slot)
	l.reindexFrom(slot)
}

// Position returns the current byte position of a marker. It reports
// false when the marker no longer exists (deleted explicitly or swallowed
// by a deletion).
func (l *List) Position(id ID) (int, bool) {
	slot, ok := l.index[id]
	if !ok {
		return 0, false
	}
	pos := 0
	for _, e := range l.entries[:slot] {
		if !e.marker {
			pos += e.gap
		}
	}
	return pos, true
}

// AdjustForInsert shifts markers for an insertion of length bytes at
// position. Exactly one gap grows. When a marker sits exactly at the
// insertion point the affinity decides: left-affinity markers stay put
// (the gap after them grows), right-affinity markers move forward (the
// gap before them grows).
func (l *List) AdjustForInsert(position, length int) {
	if length <= 0 {
		return
	}

	cumulative := 0
	target := -1
	for i, e := range l.entries {
		if e.marker {
			continue
		}
		gapStart := cumulative
		gapEnd := cumulative + e.gap

		if position >= gapStart && position < gapEnd {
			// Strictly inside this gap.
			target = i
			break
		}
		if position == gapEnd {
			// At the gap's right edge. If a marker sits here, its
			// affinity picks which side receives the insertion.
			if i+1 < len(l.entries) && l.entries[i+1].marker {
				if l.entries[i+1].affinity == AffinityLeft {
					target = i + 2
				} else {
					target = i
				}
				break
			}
			target = i
			break
		}
		cumulative = gapEnd
	}

	if target >= 0 && !l.entries[target].marker {
		l.entries[target].gap += length
	}
}

// AdjustForDelete shrinks gaps and removes markers for a deletion of
// length bytes starting at position. Markers strictly inside the deleted
// range are removed; gaps overlapping it lose the overlapped bytes.
func (l *List) AdjustForDelete(position, length int) {
	if length <= 0 {
		return
	}
	deleteEnd := position + length

	// Forward pass: record gap shrinks and marker removals.
	type action struct {
		slot   int
		shrink int // 0 means remove the marker at slot
	}
	var actions []action
	cumulative := 0
	for i, e := range l.entries {
		if e.marker {
			if position <= cumulative && cumulative < deleteEnd {
				actions = append(actions, action{slot: i})
				delete(l.index, e.id)
			}
			continue
		}
		gapStart := cumulative
		gapEnd := cumulative + e.gap
		if deleteEnd <= gapStart {
			break
		}
		if position < gapEnd {
			overlapStart := max(position, gapStart)
			overlapEnd := min(deleteEnd, gapEnd)
			if overlapEnd > overlapStart {
				actions = append(actions, action{slot: i, shrink: overlapEnd - overlapStart})
			}
		}
		cumulative = gapEnd
	}

	// Apply back-to-front so recorded slots stay valid.
	for i := len(actions) - 1; i >= 0; i-- {
		a := actions[i]
		if a.shrink == 0 {
			l.entries = append(l.entries[:a.slot], l.entries[a.slot+1:]...)
		} else {
			l.entries[a.slot].gap -= a.shrink
		}
	}

	l.mergeAllAdjacentGaps()
	l.reindexAll()
}

// BufferSize returns the tracked buffer length: the sum of all gaps.
func (l *List) BufferSize() int {
	size := 0
	for _, e := range l.entries {
		if !e.marker {
			size += e.gap
		}
	}
	return size
}

// Count returns the number of live markers.
func (l *List) Count() int {
	return len(l.index)
}

// IDs returns the ids of live markers in buffer order.
func (l *List) IDs() []ID {
	ids := make([]ID, 0, len(l.index))
	for _, e := range l.entries {
		if e.marker {
			ids = append(ids, e.id)
		}
	}
	return ids
}

// mergeGapsAt merges the gap at slot with an adjacent gap, if any.
func (l *List) mergeGapsAt(slot int) {
	if slot > 0 && slot < len(l.entries) && !l.entries[slot-1].marker && !l.entries[slot].marker {
		l.entries[slot-1].gap += l.entries[slot].gap
		l.entries = append(l.entries[:slot], l.entries[slot+1:]...)
		return
	}
	if slot+1 < len(l.entries) && !l.entries[slot].marker && !l.entries[slot+1].marker {
		l.entries[slot].gap += l.entries[slot+1].gap
		l.entries = append(l.entries[:slot+1], l.entries[slot+2:]...)
	}
}

// mergeAllAdjacentGaps collapses every run of adjacent gaps into one.
func (l *List) mergeAllAdjacentGaps() {
	i := 0
	for i+1 < len(l.entries) {
		if !l.entries[i].marker && !l.entries[i+1].marker {
			l.entries[i].gap += l.entries[i+1].gap
			l.entries = append(l.entries[:i+1], l.entries[i+2:]...)
			continue
		}
		i++
	}
	if len(l.entries) == 0 {
		l.entries = append(l.entries, entry{})
	}
}

// reindexAll rebuilds the id index from scratch.
func (l *List) reindexAll() {
	clear(l.index)
	for i, e := range l.entries {
		if e.marker {
			l.index[e.id] = i
		}
	}
}

// reindexFrom refreshes index entries for markers at or after slot.
func (l *List) reindexFrom(slot int) {
	for i := slot; i < len(l.entries); i++ {
		if l.entries[i].marker {
			l.index[l.entries[i].id] = i
		}
	}
}

// CheckInvariants verifies the structural invariants. It returns an
// error describing the first violation found. Intended for tests and
// debug assertions; a violation means the position tracking is corrupt.
func (l *List) CheckInvariants() error {
	if len(l.entries) == 0 {
		return fmt.Errorf("marker list is empty")
	}
	if l.entries[0].marker {
		return fmt.Errorf("list must start with a gap")
	}
	if l.entries[len(l.entries)-1].marker {
		return fmt.Errorf("list must end with a gap")
	}
	for i := 0; i+1 < len(l.entries); i++ {
		if !l.entries[i].marker && !l.entries[i+1].marker {
			return fmt.Errorf("adjacent gaps at slots %d and %d", i, i+1)
		}
	}
	markerCount := 0
	for i, e := range l.entries {
		if !e.marker {
			continue
		}
		markerCount++
		slot, ok := l.index[e.id]
		if !ok {
			return fmt.Errorf("marker %d at slot %d missing from index", e.id, i)
		}
		if slot != i {
			return fmt.Errorf("marker %d index points to slot %d, actual slot %d", e.id, slot, i)
		}
	}
	if markerCount != len(l.index) {
		return fmt.Errorf("index holds %d ids, list holds %d markers", len(l.index), markerCount)
	}
	return nil
}
