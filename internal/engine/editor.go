package engine

import (
	"sync"

	"github.com/inkstone-edit/inkstone/internal/engine/buffer"
	"github.com/inkstone-edit/inkstone/internal/engine/cursor"
	"github.com/inkstone-edit/inkstone/internal/engine/event"
	"github.com/inkstone-edit/inkstone/internal/engine/marker"
)

// Editor is the editing-model facade: a buffer, its marker list, a
// cursor set and the event log, mutated in lockstep. Safe for
// concurrent use.
type Editor struct {
	mu      sync.RWMutex
	buf     *buffer.Buffer
	markers *marker.List
	cursors *cursor.Cursors
	log     *event.Log

	tabWidth           int
	snapshotInterval   int
	scanChunkSize      int
	largeFileThreshold int
	initialContent     string
}

// New returns an editor over an empty buffer, or over the content
// given via WithContent.
func New(opts ...Option) *Editor {
	e := &Editor{
		tabWidth:         4,
		snapshotInterval: event.DefaultSnapshotInterval,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.buf = buffer.NewFromString(e.initialContent, e.bufferOptions()...)
	e.finishInit()
	return e
}

// Open returns an editor over the contents of the file at path.
func Open(path string, opts ...Option) (*Editor, error) {
	e := &Editor{
		tabWidth:         4,
		snapshotInterval: event.DefaultSnapshotInterval,
	}
	for _, opt := range opts {
		opt(e)
	}
	buf, err := buffer.Load(path, e.bufferOptions()...)
	if err != nil {
		return nil, err
	}
	e.buf = buf
	e.finishInit()
	return e, nil
}

func (e *Editor) bufferOptions() []buffer.Option {
	var opts []buffer.Option
	if e.scanChunkSize > 0 {
		opts = append(opts, buffer.WithScanChunkSize(e.scanChunkSize))
	}
	if e.largeFileThreshold > 0 {
		opts = append(opts, buffer.WithLargeFileThreshold(e.largeFileThreshold))
	}
	return opts
}

func (e *Editor) finishInit() {
	e.markers = marker.NewListWithSize(e.buf.Len())
	e.cursors = cursor.NewSet()
	e.log = event.NewLog()
	e.log.SetSnapshotInterval(e.snapshotInterval)
}

// Buffer returns the underlying buffer.
func (e *Editor) Buffer() *buffer.Buffer {
	return e.buf
}

// Log returns the event log.
func (e *Editor) Log() *event.Log {
	return e.log
}

// Content returns the whole buffer as a string.
func (e *Editor) Content() string {
	return e.buf.String()
}

// ===========================================================================
// Content edits
// ===========================================================================

// InsertAt places text at a byte position and records the edit. The
// position saturates to buffer bounds.
func (e *Editor) InsertAt(pos int, text string) {
	if text == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	pos = e.clampLocked(pos)
	ev := event.Insert{Position: pos, Text: text, Cursor: e.cursors.PrimaryID()}
	e.applyLocked(ev)
	e.appendLocked(ev, "insert")
}

// DeleteRange removes the byte range [start, end) and records the
// edit, capturing the removed text so it can be undone. The range
// saturates to buffer bounds.
func (e *Editor) DeleteRange(start, end int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	start = e.clampLocked(start)
	end = e.clampLocked(end)
	if end < start {
		start, end = end, start
	}
	if start == end {
		return
	}
	ev := event.Delete{
		Start:       start,
		End:         end,
		DeletedText: e.buf.Slice(start, end),
		Cursor:      e.cursors.PrimaryID(),
	}
	e.applyLocked(ev)
	e.appendLocked(ev, "delete")
}

// InsertAtCursors types text at every cursor. Insertions are applied
// from the highest position down so earlier ones do not displace later
// ones; each insertion is logged individually.
func (e *Editor) InsertAtCursors(text string) {
	if text == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	ids := e.cursors.IDs()
	for i := len(ids) - 1; i >= 0; i-- {
		c, ok := e.cursors.Get(ids[i])
		if !ok {
			continue
		}
		ev := event.Insert{Position: c.Position, Text: text, Cursor: ids[i]}
		e.applyLocked(ev)
		e.appendLocked(ev, "insert")
	}
	e.cursors.Normalize()
}

// applyLocked pushes a content event through the pipeline: buffer
// first, then markers, then cursors. Non-content events are no-ops.
func (e *Editor) applyLocked(ev event.Event) {
	switch ev := ev.(type) {
	case event.Insert:
		e.buf.Insert(ev.Position, ev.Text)
		e.markers.AdjustForInsert(ev.Position, len(ev.Text))
		e.cursors.AdjustForEdit(ev.Position, 0, len(ev.Text))
	case event.Delete:
		e.buf.Delete(ev.Start, ev.End)
		e.markers.AdjustForDelete(ev.Start, ev.End-ev.Start)
		e.cursors.AdjustForEdit(ev.Start, ev.End-ev.Start, 0)
	}
}

func (e *Editor) appendLocked(ev event.Event, description string) {
	e.log.Append(ev, description)
	if e.log.SnapshotDue() {
		e.log.RecordSnapshot(e.buf.String(), e.cursorStatesLocked())
	}
}

func (e *Editor) cursorStatesLocked() []event.CursorState {
	ids := e.cursors.IDs()
	out := make([]event.CursorState, 0, len(ids))
	for _, id := range ids {
		c, _ := e.cursors.Get(id)
		state := event.CursorState{Position: c.Position}
		if c.HasAnchor {
			anchor := c.Anchor
			state.Anchor = &anchor
		}
		out = append(out, state)
	}
	return out
}

func (e *Editor) clampLocked(pos int) int {
	if pos < 0 {
		return 0
	}
	if n := e.buf.Len(); pos > n {
		return n
	}
	return pos
}

// ===========================================================================
// Undo / redo
// ===========================================================================

// Undo reverts the most recent logged event. Content events are
// inverted through the pipeline; navigation events rewind the log
// position without touching state. False at the start of history.
func (e *Editor) Undo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	ev, ok := e.log.Undo()
	if !ok {
		return false
	}
	if inv, ok := ev.Inverse(); ok {
		e.applyLocked(inv)
	}
	return true
}

// Redo reapplies the most recently undone event. False at the end of
// history.
func (e *Editor) Redo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	ev, ok := e.log.Redo()
	if !ok {
		return false
	}
	if ev.ModifiesBuffer() {
		e.applyLocked(ev)
	}
	return true
}

// CanUndo reports whether Undo would succeed.
func (e *Editor) CanUndo() bool { return e.log.CanUndo() }

// CanRedo reports whether Redo would succeed.
func (e *Editor) CanRedo() bool { return e.log.CanRedo() }

// ===========================================================================
// Cursors
// ===========================================================================

// PrimaryCursor returns the primary cursor.
func (e *Editor) PrimaryCursor() cursor.Cursor {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cursors.Primary()
}

// CursorCount returns the number of cursors.
func (e *Editor) CursorCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cursors.Count()
}

// CursorPositions returns every cursor position in buffer order.
func (e *Editor) CursorPositions() []int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cursors.Positions()
}

// MoveCursor moves the cursor with the given ID. With extend true the
// selection grows from its anchor. The position saturates to buffer
// bounds.
func (e *Editor) MoveCursor(id cursor.ID, pos int, extend bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, ok := e.cursors.Get(id)
	if !ok {
		return ErrUnknownCursor
	}
	pos = e.clampLocked(pos)
	c = c.MoveTo(pos, extend)
	e.cursors.Set(id, c)

	ev := event.MoveCursor{Cursor: id, Position: pos}
	if c.HasAnchor {
		anchor := c.Anchor
		ev.Anchor = &anchor
	}
	e.appendLocked(ev, "move cursor")
	return nil
}

// MovePrimary moves the primary cursor.
func (e *Editor) MovePrimary(pos int, extend bool) error {
	return e.MoveCursor(e.cursors.PrimaryID(), pos, extend)
}

// AddCursor adds a cursor at pos, makes it primary and returns its ID.
func (e *Editor) AddCursor(pos int) cursor.ID {
	e.mu.Lock()
	defer e.mu.Unlock()

	pos = e.clampLocked(pos)
	id := e.cursors.Add(pos)
	e.appendLocked(event.AddCursor{Cursor: id, Position: pos}, "add cursor")
	return id
}

// RemoveCursor removes the cursor with the given ID. Removing the last
// cursor fails with ErrLastCursor.
func (e *Editor) RemoveCursor(id cursor.ID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.cursors.Get(id); !ok {
		return ErrUnknownCursor
	}
	if !e.cursors.Remove(id) {
		return ErrLastCursor
	}
	e.appendLocked(event.RemoveCursor{Cursor: id}, "remove cursor")
	return nil
}

// MoveUp moves the primary cursor one line up, aiming for its sticky
// visual column.
func (e *Editor) MoveUp() {
	e.moveVertical(-1)
}

// MoveDown moves the primary cursor one line down, aiming for its
// sticky visual column.
func (e *Editor) MoveDown() {
	e.moveVertical(1)
}

func (e *Editor) moveVertical(dir int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.cursors.PrimaryID()
	c, _ := e.cursors.Get(id)

	lineStart := e.buf.LineStartAt(c.Position)
	line := []byte(e.buf.LineContentAt(c.Position))

	sticky := c.StickyColumn
	if sticky < 0 {
		sticky = cursor.VisualColumn(line, c.Position-lineStart, e.tabWidth)
	}

	var targetStart int
	if dir < 0 {
		start, ok := e.buf.PrevLineStart(c.Position)
		if !ok {
			return
		}
		targetStart = start
	} else {
		start, ok := e.buf.NextLineStart(c.Position)
		if !ok {
			return
		}
		targetStart = start
	}

	targetLine := []byte(e.buf.LineContentAt(targetStart))
	c.Position = targetStart + cursor.ColumnToByte(targetLine, sticky, e.tabWidth)
	c.StickyColumn = sticky
	c.HasAnchor = false
	e.cursors.Set(id, c)

	e.appendLocked(event.MoveCursor{Cursor: id, Position: c.Position}, "move cursor")
}

// ===========================================================================
// Markers
// ===========================================================================

// CreateMarker places a marker at pos with the given affinity and
// returns its ID. The position saturates to buffer bounds.
func (e *Editor) CreateMarker(pos int, affinity marker.Affinity) marker.ID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.markers.Create(e.clampLocked(pos), affinity)
}

// DeleteMarker removes a marker.
func (e *Editor) DeleteMarker(id marker.ID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.markers.Position(id); !ok {
		return ErrUnknownMarker
	}
	e.markers.Delete(id)
	return nil
}

// MarkerPosition returns the current byte position of a marker.
func (e *Editor) MarkerPosition(id marker.ID) (int, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	pos, ok := e.markers.Position(id)
	if !ok {
		return 0, ErrUnknownMarker
	}
	return pos, nil
}

// MarkerCount returns the number of live markers.
func (e *Editor) MarkerCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.markers.Count()
}

// ===========================================================================
// Log persistence and replay
// ===========================================================================

// SaveLog writes the event log to path as JSON Lines.
func (e *Editor) SaveLog(path string) error {
	return e.log.SaveFile(path)
}

// ReplayLog loads a JSON Lines event log and replays every content
// event into a fresh editor. Cursor and view events are applied where
// they still make sense and skipped otherwise.
func ReplayLog(path string, opts ...Option) (*Editor, error) {
	log, err := event.LoadFile(path)
	if err != nil {
		return nil, err
	}

	e := New(opts...)
	for _, entry := range log.Entries() {
		e.replayEvent(entry.Event)
	}
	return e, nil
}

func (e *Editor) replayEvent(ev event.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch ev := ev.(type) {
	case event.Insert, event.Delete:
		e.applyLocked(ev)
		e.appendLocked(ev, "")
	case event.MoveCursor:
		if c, ok := e.cursors.Get(ev.Cursor); ok {
			c = c.MoveTo(e.clampLocked(ev.Position), false)
			if ev.Anchor != nil {
				c = c.SetAnchor(e.clampLocked(*ev.Anchor))
			}
			e.cursors.Set(ev.Cursor, c)
		}
		e.appendLocked(ev, "")
	case event.AddCursor:
		e.cursors.Add(e.clampLocked(ev.Position))
		e.appendLocked(ev, "")
	case event.RemoveCursor:
		e.cursors.Remove(ev.Cursor)
		e.appendLocked(ev, "")
	default:
		e.appendLocked(ev, "")
	}
}
