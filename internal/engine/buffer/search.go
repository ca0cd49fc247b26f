package buffer

import "bytes"

// FindNext returns the position of the next occurrence of pattern at
// or after from, wrapping around to the start of the buffer when
// nothing follows. False when the pattern does not occur at all.
func (b *Buffer) FindNext(pattern string, from int) (int, bool) {
	if pattern == "" {
		return 0, false
	}
	content := b.SliceBytes(0, b.Len())
	from = clamp(from, 0, len(content))

	pat := []byte(pattern)
	if i := bytes.Index(content[from:], pat); i >= 0 {
		return from + i, true
	}
	if i := bytes.Index(content[:min(from+len(pat)-1, len(content))], pat); i >= 0 {
		return i, true
	}
	return 0, false
}
