package buffer

import "github.com/inkstone-edit/inkstone/internal/engine/store"

// lineStartSearchWindow caps how far LineStartAt scans backward for a
// newline. Pathologically long lines are treated as starting at the
// window edge rather than forcing an O(n) scan.
const lineStartSearchWindow = 100_000

// LineStartAt returns the byte offset where the line containing pos
// starts, scanning backward from pos without consulting the line
// index.
func (b *Buffer) LineStartAt(pos int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return scanLineStart(b.content, pos)
}

// LineEndAt returns the offset of the newline ending the line that
// contains pos, or Len() on the last line.
func (b *Buffer) LineEndAt(pos int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return scanLineEnd(b.content, pos)
}

// PrevLineStart returns the start of the line before the one
// containing pos. False when already on the first line.
func (b *Buffer) PrevLineStart(pos int) (int, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	start := scanLineStart(b.content, pos)
	if start == 0 {
		return 0, false
	}
	return scanLineStart(b.content, start-1), true
}

// NextLineStart returns the start of the line after the one containing
// pos. False when on the last line.
func (b *Buffer) NextLineStart(pos int) (int, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	end := scanLineEnd(b.content, pos)
	if end >= b.content.Len() {
		return 0, false
	}
	return end + 1, true
}

// IsLastLine reports whether the given 0-indexed line is the last one.
func (b *Buffer) IsLastLine(line int) bool {
	return b.LineToByte(line+1) >= b.Len()
}

// LineEndByte returns the offset just before the newline ending the
// given line, or Len() on the last line.
func (b *Buffer) LineEndByte(line int) int {
	next := b.LineToByte(line + 1)
	if next >= b.Len() {
		return b.Len()
	}
	return max(next-1, 0)
}

// LineEndByteWithNewline returns the offset just past the newline
// ending the given line, or Len() on the last line.
func (b *Buffer) LineEndByteWithNewline(line int) int {
	next := b.LineToByte(line + 1)
	if next >= b.Len() {
		return b.Len()
	}
	return next
}

// LineContentAt returns the text of the line containing pos, without
// the trailing newline and without consulting the line index.
func (b *Buffer) LineContentAt(pos int) string {
	start := b.LineStartAt(pos)
	end := b.LineEndAt(pos)
	return b.Slice(start, end)
}

// PrevCharBoundary returns the largest UTF-8 rune boundary strictly
// before pos, or 0.
func (b *Buffer) PrevCharBoundary(pos int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	pos = clamp(pos, 0, b.content.Len())
	if pos == 0 {
		return 0
	}
	pos--
	for pos > 0 {
		c, ok := b.content.ByteAt(pos)
		if !ok || !isContinuation(c) {
			break
		}
		pos--
	}
	return pos
}

// NextCharBoundary returns the smallest UTF-8 rune boundary strictly
// after pos, or Len().
func (b *Buffer) NextCharBoundary(pos int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := b.content.Len()
	pos = clamp(pos, 0, n)
	if pos >= n {
		return n
	}
	pos++
	for pos < n {
		c, ok := b.content.ByteAt(pos)
		if !ok || !isContinuation(c) {
			break
		}
		pos++
	}
	return pos
}

// PrevWordBoundary returns the start of the word before pos, skipping
// any whitespace in between.
func (b *Buffer) PrevWordBoundary(pos int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	pos = clamp(pos, 0, b.content.Len())
	for pos > 0 {
		c, ok := b.content.ByteAt(pos - 1)
		if ok && !isWordByte(c) {
			pos--
			continue
		}
		break
	}
	for pos > 0 {
		c, ok := b.content.ByteAt(pos - 1)
		if ok && isWordByte(c) {
			pos--
			continue
		}
		break
	}
	return pos
}

// NextWordBoundary returns the start of the word after pos, skipping
// the rest of the current word and any whitespace after it.
func (b *Buffer) NextWordBoundary(pos int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := b.content.Len()
	pos = clamp(pos, 0, n)
	for pos < n {
		c, ok := b.content.ByteAt(pos)
		if ok && isWordByte(c) {
			pos++
			continue
		}
		break
	}
	for pos < n {
		c, ok := b.content.ByteAt(pos)
		if ok && !isWordByte(c) {
			pos++
			continue
		}
		break
	}
	return pos
}

func scanLineStart(s store.Store, pos int) int {
	pos = min(pos, s.Len())
	searchStart := max(pos-lineStartSearchWindow, 0)

	it := s.BytesReverse(searchStart, pos)
	for it.Next() {
		if it.Byte() == '\n' {
			return it.Pos() + 1
		}
	}
	return searchStart
}

func scanLineEnd(s store.Store, pos int) int {
	pos = min(pos, s.Len())

	it := s.Bytes(pos, s.Len())
	for it.Next() {
		if it.Byte() == '\n' {
			return it.Pos()
		}
	}
	return s.Len()
}

func isContinuation(c byte) bool {
	return c&0xC0 == 0x80
}

func isWordByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c >= 0x80
}
