package buffer

// LineIterator walks the buffer line by line in either direction
// using byte-offset scans, never forcing the line index to extend.
// Lines visited going forward are registered with the index so it
// grows as the caller reads through the file.
type LineIterator struct {
	b   *Buffer
	pos int
}

// Lines returns an iterator positioned at the start of the line
// containing pos.
func (b *Buffer) Lines(pos int) *LineIterator {
	pos = clamp(pos, 0, b.Len())
	return &LineIterator{b: b, pos: b.LineStartAt(pos)}
}

// Next returns the line at the current position and advances past it.
// False at EOF.
func (it *LineIterator) Next() (start int, content string, ok bool) {
	if it.pos >= it.b.Len() {
		return 0, "", false
	}
	start = it.pos
	end := it.b.LineEndAt(start)
	content = it.b.Slice(start, end)

	it.b.RegisterLineStart(start)

	if end >= it.b.Len() {
		it.pos = it.b.Len()
	} else {
		it.pos = end + 1
	}
	return start, content, true
}

// Prev steps back one line and returns it. False on the first line.
func (it *LineIterator) Prev() (start int, content string, ok bool) {
	if it.pos == 0 {
		return 0, "", false
	}
	start = it.b.LineStartAt(it.pos - 1)
	end := it.b.LineEndAt(start)
	content = it.b.Slice(start, end)
	it.pos = start
	return start, content, true
}

// CurrentPosition returns the byte offset the iterator is at.
func (it *LineIterator) CurrentPosition() int {
	return it.pos
}
