package cursor

import "sort"

// ID identifies a cursor within a Cursors set. IDs are stable for the
// lifetime of the cursor and never reused.
type ID uint64

// Cursors is a multi-cursor set. It always contains at least one
// cursor, and exactly one member is primary. The zero value is not
// usable; call NewSet.
type Cursors struct {
	cursors   map[ID]Cursor
	primaryID ID
	nextID    ID
}

// NewSet returns a set containing a single primary cursor at byte 0.
func NewSet() *Cursors {
	s := &Cursors{
		cursors: make(map[ID]Cursor),
		nextID:  1,
	}
	id := s.allocate(New(0))
	s.primaryID = id
	return s
}

func (s *Cursors) allocate(c Cursor) ID {
	id := s.nextID
	s.nextID++
	s.cursors[id] = c
	return id
}

// Primary returns the primary cursor.
func (s *Cursors) Primary() Cursor {
	return s.cursors[s.primaryID]
}

// PrimaryID returns the ID of the primary cursor.
func (s *Cursors) PrimaryID() ID {
	return s.primaryID
}

// Get returns the cursor with the given ID.
func (s *Cursors) Get(id ID) (Cursor, bool) {
	c, ok := s.cursors[id]
	return c, ok
}

// Set replaces the cursor with the given ID. Unknown IDs are ignored.
func (s *Cursors) Set(id ID, c Cursor) {
	if _, ok := s.cursors[id]; ok {
		s.cursors[id] = c
	}
}

// Add inserts a new cursor at pos and makes it primary, returning its
// ID.
func (s *Cursors) Add(pos int) ID {
	id := s.allocate(New(pos))
	s.primaryID = id
	return id
}

// AddCursor inserts c and makes it primary, returning its ID.
func (s *Cursors) AddCursor(c Cursor) ID {
	id := s.allocate(c)
	s.primaryID = id
	return id
}

// Remove deletes the cursor with the given ID. Removing the last
// cursor is refused. When the primary is removed, the surviving
// cursor with the lowest position becomes primary.
func (s *Cursors) Remove(id ID) bool {
	if len(s.cursors) <= 1 {
		return false
	}
	if _, ok := s.cursors[id]; !ok {
		return false
	}
	delete(s.cursors, id)
	if id == s.primaryID {
		s.primaryID = s.lowestID()
	}
	return true
}

// RemoveSecondary drops every cursor except the primary.
func (s *Cursors) RemoveSecondary() {
	primary := s.cursors[s.primaryID]
	clear(s.cursors)
	s.cursors[s.primaryID] = primary
}

// Count returns the number of cursors.
func (s *Cursors) Count() int {
	return len(s.cursors)
}

// IDs returns all cursor IDs, ordered by the cursors' selection start
// positions (ties broken by ID).
func (s *Cursors) IDs() []ID {
	ids := make([]ID, 0, len(s.cursors))
	for id := range s.cursors {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := s.cursors[ids[i]], s.cursors[ids[j]]
		if sa, sb := a.SelectionStart(), b.SelectionStart(); sa != sb {
			return sa < sb
		}
		return ids[i] < ids[j]
	})
	return ids
}

// Positions returns all cursor positions in buffer order.
func (s *Cursors) Positions() []int {
	ids := s.IDs()
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = s.cursors[id].Position
	}
	return out
}

// AdjustForEdit relocates every cursor for an edit that replaced
// oldLen bytes at editPos with newLen bytes.
func (s *Cursors) AdjustForEdit(editPos, oldLen, newLen int) {
	for id, c := range s.cursors {
		s.cursors[id] = c.AdjustForEdit(editPos, oldLen, newLen)
	}
}

// Normalize removes cursors that are exact duplicates of another
// (same position, same selection), keeping the one with the lowest
// ID. Overlapping but non-identical selections are left alone. If the
// primary is removed as a duplicate, its surviving twin becomes
// primary.
func (s *Cursors) Normalize() {
	ids := make([]ID, 0, len(s.cursors))
	for id := range s.cursors {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	type key struct {
		pos, anchor int
		hasAnchor   bool
	}
	seen := make(map[key]ID, len(ids))
	for _, id := range ids {
		c := s.cursors[id]
		k := key{c.Position, c.Anchor, c.HasAnchor}
		keeper, dup := seen[k]
		if !dup {
			seen[k] = id
			continue
		}
		delete(s.cursors, id)
		if id == s.primaryID {
			s.primaryID = keeper
		}
	}
}

func (s *Cursors) lowestID() ID {
	var best ID
	bestPos := -1
	for id, c := range s.cursors {
		if bestPos < 0 || c.Position < bestPos || (c.Position == bestPos && id < best) {
			best = id
			bestPos = c.Position
		}
	}
	return best
}
