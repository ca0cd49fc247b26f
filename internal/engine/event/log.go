package event

import (
	"sync"
	"time"
)

// DefaultSnapshotInterval is how many appended events separate
// automatic snapshots.
const DefaultSnapshotInterval = 100

// Entry is a logged event with its capture time.
type Entry struct {
	Event       Event
	Timestamp   int64 // milliseconds since the Unix epoch
	Description string
}

// CursorState is a cursor's position and optional anchor as captured
// in a snapshot.
type CursorState struct {
	Position int
	Anchor   *int
}

// Snapshot is a full copy of buffer content and cursor positions taken
// after the event at LogIndex was applied. Replays resume from the
// nearest snapshot instead of the beginning.
type Snapshot struct {
	LogIndex int
	Content  string
	Cursors  []CursorState
}

// Log is an append-only event log with an undo position. Entries at
// indexes below currentIndex are the applied past; entries at or above
// it are the redoable future. Safe for concurrent use.
type Log struct {
	mu               sync.RWMutex
	entries          []Entry
	currentIndex     int
	snapshots        []Snapshot
	snapshotInterval int
}

// NewLog returns an empty log with the default snapshot interval.
func NewLog() *Log {
	return &Log{snapshotInterval: DefaultSnapshotInterval}
}

// Append records ev at the current position and returns its index.
// Any entries past the current position (undone, not redone) are
// discarded first.
func (l *Log) Append(ev Event, description string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentIndex < len(l.entries) {
		l.entries = l.entries[:l.currentIndex]
		l.dropSnapshotsAfterLocked(l.currentIndex)
	}
	l.entries = append(l.entries, Entry{
		Event:       ev,
		Timestamp:   time.Now().UnixMilli(),
		Description: description,
	})
	l.currentIndex = len(l.entries)
	return l.currentIndex - 1
}

// Undo steps the current position back by one and returns the event
// that was undone. Returns false at the beginning of history.
func (l *Log) Undo() (Event, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentIndex == 0 {
		return nil, false
	}
	l.currentIndex--
	return l.entries[l.currentIndex].Event, true
}

// Redo steps the current position forward by one and returns the event
// that was reapplied. Returns false at the end of history.
func (l *Log) Redo() (Event, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentIndex >= len(l.entries) {
		return nil, false
	}
	ev := l.entries[l.currentIndex].Event
	l.currentIndex++
	return ev, true
}

// CanUndo reports whether Undo would succeed.
func (l *Log) CanUndo() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.currentIndex > 0
}

// CanRedo reports whether Redo would succeed.
func (l *Log) CanRedo() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.currentIndex < len(l.entries)
}

// CurrentIndex returns the undo position: the number of applied
// entries.
func (l *Log) CurrentIndex() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.currentIndex
}

// Len returns the total number of entries, applied or not.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Entries returns a copy of all entries in append order.
func (l *Log) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Range returns a copy of entries in [start, end), clamped to valid
// bounds.
func (l *Log) Range(start, end int) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	start = max(0, min(start, len(l.entries)))
	end = max(start, min(end, len(l.entries)))
	out := make([]Entry, end-start)
	copy(out, l.entries[start:end])
	return out
}

// LastEvent returns the most recently applied event, if any.
func (l *Log) LastEvent() (Event, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.currentIndex == 0 {
		return nil, false
	}
	return l.entries[l.currentIndex-1].Event, true
}

// Clear discards all entries and snapshots.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
	l.currentIndex = 0
	l.snapshots = nil
}

// SetSnapshotInterval sets how many appends separate automatic
// snapshots. Non-positive intervals disable them.
func (l *Log) SetSnapshotInterval(n int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.snapshotInterval = n
}

// SnapshotInterval returns the configured snapshot interval.
func (l *Log) SnapshotInterval() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshotInterval
}

// SnapshotDue reports whether the number of applied entries has
// reached a snapshot boundary.
func (l *Log) SnapshotDue() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.snapshotInterval <= 0 || l.currentIndex == 0 {
		return false
	}
	return l.currentIndex%l.snapshotInterval == 0
}

// RecordSnapshot stores a snapshot of the given content and cursors at
// the current log position.
func (l *Log) RecordSnapshot(content string, cursors []CursorState) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cp := make([]CursorState, len(cursors))
	copy(cp, cursors)
	l.snapshots = append(l.snapshots, Snapshot{
		LogIndex: l.currentIndex,
		Content:  content,
		Cursors:  cp,
	})
}

// NearestSnapshot returns the latest snapshot taken at or before
// index, or false when no snapshot qualifies.
func (l *Log) NearestSnapshot(index int) (Snapshot, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for i := len(l.snapshots) - 1; i >= 0; i-- {
		if l.snapshots[i].LogIndex <= index {
			return l.snapshots[i], true
		}
	}
	return Snapshot{}, false
}

func (l *Log) dropSnapshotsAfterLocked(index int) {
	keep := l.snapshots[:0]
	for _, s := range l.snapshots {
		if s.LogIndex <= index {
			keep = append(keep, s)
		}
	}
	l.snapshots = keep
}
