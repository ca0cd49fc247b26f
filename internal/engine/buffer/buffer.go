package buffer

import (
	"sync"

	"github.com/google/uuid"

	"github.com/inkstone-edit/inkstone/internal/engine/store"
)

// Buffer is a text buffer: an abstract byte store, a lazily built line
// index, an optional file path and a modified flag. Safe for
// concurrent use.
type Buffer struct {
	mu       sync.RWMutex
	id       uuid.UUID
	content  store.Store
	lines    *lineIndex
	path     string
	modified bool

	scanChunkSize      int
	largeFileThreshold int
}

// New returns an empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		id:                 uuid.New(),
		content:            store.New(),
		scanChunkSize:      defaultScanChunkSize,
		largeFileThreshold: defaultLargeFileThreshold,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.lines = newLineIndex(b.scanChunkSize)
	return b
}

// NewFromString returns a buffer holding s with a fully built line
// index.
func NewFromString(s string, opts ...Option) *Buffer {
	b := New(opts...)
	b.content = store.FromString(s)
	b.lines.rebuild([]byte(s))
	return b
}

// ID returns the buffer's unique identity.
func (b *Buffer) ID() uuid.UUID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.id
}

// Insert places text at the given byte position. Positions outside the
// buffer saturate to the nearest end. Empty text is a no-op.
func (b *Buffer) Insert(pos int, text string) {
	if text == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	pos = clamp(pos, 0, b.content.Len())
	b.content = b.content.Insert(pos, []byte(text))
	b.lines.invalidate()
	b.modified = true
}

// Delete removes the byte range [start, end). The range saturates to
// buffer bounds; an empty or inverted range is a no-op.
func (b *Buffer) Delete(start, end int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	start = clamp(start, 0, b.content.Len())
	end = clamp(end, start, b.content.Len())
	if start >= end {
		return
	}
	b.content = b.content.Remove(start, end)
	b.lines.invalidate()
	b.modified = true
}

// Slice returns the text in [start, end) as a string. The range
// saturates to buffer bounds.
func (b *Buffer) Slice(start, end int) string {
	return string(b.SliceBytes(start, end))
}

// SliceBytes returns the bytes in [start, end). Sparse gap bytes are
// omitted. The range saturates to buffer bounds.
func (b *Buffer) SliceBytes(start, end int) []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()

	start = clamp(start, 0, b.content.Len())
	end = clamp(end, start, b.content.Len())
	out := make([]byte, 0, end-start)
	it := b.content.Bytes(start, end)
	for it.Next() {
		out = append(out, it.Byte())
	}
	return out
}

// String returns the whole buffer as a string, with sparse gaps
// rendered as spaces.
func (b *Buffer) String() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return string(b.content.Materialize(' '))
}

// Len returns the buffer length in bytes.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.Len()
}

// IsEmpty reports whether the buffer holds no bytes.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// IsAtEOF reports whether pos is at or past the end of the buffer.
func (b *Buffer) IsAtEOF(pos int) bool {
	return pos >= b.Len()
}

// ByteAt returns the byte at pos. The second return is false for
// positions inside sparse gaps or out of range.
func (b *Buffer) ByteAt(pos int) (byte, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.ByteAt(pos)
}

// LineToByte returns the byte offset where the given 0-indexed line
// starts, extending the line index scan as needed. Lines past the end
// resolve to Len().
func (b *Buffer) LineToByte(line int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lines.lineToByte(b.content, line)
}

// ByteToLineLazy returns the line containing pos without scanning.
// Beyond the scanned frontier the result is an estimate.
func (b *Buffer) ByteToLineLazy(pos int) LineNumber {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lines.byteToLineLazy(b.content, pos)
}

// EnsureScannedTo extends the line index scan to at least pos.
func (b *Buffer) EnsureScannedTo(pos int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	b.lines.ensureScannedTo(b.content, pos)
}

// RegisterLineStart tells the index that a line starts at pos, letting
// the scanned region grow as the caller walks the file. Hints far past
// the frontier are discarded.
func (b *Buffer) RegisterLineStart(pos int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	b.lines.registerLineStart(b.content, pos)
}

// ApproximateLineCount returns the line count once known exactly. The
// second return is false until the content has been fully scanned.
func (b *Buffer) ApproximateLineCount() (int, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lines.approximateLineCount()
}

// ScannedUpTo returns the line index frontier. Exposed for tests.
func (b *Buffer) ScannedUpTo() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lines.frontier()
}

// CachedLineCount returns how many line starts the index holds.
// Exposed for tests.
func (b *Buffer) CachedLineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lines.cachedCount()
}

// Path returns the file path the buffer was loaded from or saved to.
func (b *Buffer) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.path
}

// SetPath associates the buffer with a file path.
func (b *Buffer) SetPath(path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.path = path
}

// Modified reports whether the buffer changed since the last save or
// load.
func (b *Buffer) Modified() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.modified
}

// ClearModified resets the modified flag.
func (b *Buffer) ClearModified() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.modified = false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
