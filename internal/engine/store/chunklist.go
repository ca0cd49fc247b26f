package store

// chunk is a run of bytes in a ChunkList: either a data chunk backed by
// an immutable byte slice, or a sparse gap of gapLen bytes with no data.
type chunk struct {
	data   []byte // nil for sparse gaps
	gapLen int    // only meaningful when data is nil
}

func (c chunk) len() int {
	if c.data != nil {
		return len(c.data)
	}
	return c.gapLen
}

func (c chunk) isGap() bool {
	return c.data == nil
}

// ChunkList is the reference Store implementation: an immutable sequence
// of chunks. Mutations copy the chunk headers but share the underlying
// byte slices, so versions are cheap and safe to read concurrently as
// long as callers never mutate slices handed to Insert.
type ChunkList struct {
	chunks []chunk
	length int
}

// Compile-time interface check.
var _ Store = ChunkList{}

// New returns an empty ChunkList.
func New() ChunkList {
	return ChunkList{}
}

// FromBytes returns a ChunkList holding a copy of data.
func FromBytes(data []byte) ChunkList {
	if len(data) == 0 {
		return ChunkList{}
	}
	owned := make([]byte, len(data))
	copy(owned, data)
	return ChunkList{chunks: []chunk{{data: owned}}, length: len(owned)}
}

// FromString returns a ChunkList holding the bytes of s.
func FromString(s string) ChunkList {
	return FromBytes([]byte(s))
}

// Gap returns a ChunkList consisting of a single sparse gap of n bytes.
func Gap(n int) ChunkList {
	if n <= 0 {
		return ChunkList{}
	}
	return ChunkList{chunks: []chunk{{gapLen: n}}, length: n}
}

// Len returns the total byte length, including sparse gaps.
func (cl ChunkList) Len() int {
	return cl.length
}

// Insert returns a new ChunkList with data inserted at pos.
func (cl ChunkList) Insert(pos int, data []byte) Store {
	if len(data) == 0 {
		return cl
	}
	pos = clamp(pos, 0, cl.length)

	owned := make([]byte, len(data))
	copy(owned, data)
	inserted := chunk{data: owned}

	out := make([]chunk, 0, len(cl.chunks)+2)
	placed := false
	cur := 0
	for _, c := range cl.chunks {
		if placed || pos > cur+c.len() {
			out = append(out, c)
			cur += c.len()
			continue
		}
		// pos falls within [cur, cur+c.len()]
		before, after := splitChunk(c, pos-cur)
		out = appendChunk(out, before)
		out = appendChunk(out, inserted)
		out = appendChunk(out, after)
		placed = true
		cur += c.len()
	}
	if !placed {
		out = appendChunk(out, inserted)
	}
	return ChunkList{chunks: out, length: cl.length + len(owned)}
}

// Remove returns a new ChunkList with bytes in [start, end) removed.
func (cl ChunkList) Remove(start, end int) Store {
	start = clamp(start, 0, cl.length)
	end = clamp(end, 0, cl.length)
	if start >= end {
		return cl
	}

	out := make([]chunk, 0, len(cl.chunks)+1)
	cur := 0
	for _, c := range cl.chunks {
		cs, ce := cur, cur+c.len()
		cur = ce
		if ce <= start || cs >= end {
			out = append(out, c)
			continue
		}
		// Keep the parts of the chunk outside [start, end).
		if cs < start {
			head, _ := splitChunk(c, start-cs)
			out = appendChunk(out, head)
		}
		if ce > end {
			_, tail := splitChunk(c, end-cs)
			out = appendChunk(out, tail)
		}
	}
	return ChunkList{chunks: out, length: cl.length - (end - start)}
}

// ByteAt returns the byte at pos, reporting false for out-of-range
// positions and sparse gaps.
func (cl ChunkList) ByteAt(pos int) (byte, bool) {
	if pos < 0 || pos >= cl.length {
		return 0, false
	}
	cur := 0
	for _, c := range cl.chunks {
		if pos < cur+c.len() {
			if c.isGap() {
				return 0, false
			}
			return c.data[pos-cur], true
		}
		cur += c.len()
	}
	return 0, false
}

// Materialize returns the full content, substituting fill for gap bytes.
func (cl ChunkList) Materialize(fill byte) []byte {
	out := make([]byte, 0, cl.length)
	for _, c := range cl.chunks {
		if c.isGap() {
			for i := 0; i < c.gapLen; i++ {
				out = append(out, fill)
			}
			continue
		}
		out = append(out, c.data...)
	}
	return out
}

// Bytes iterates forward over data bytes in [start, end).
func (cl ChunkList) Bytes(start, end int) Iterator {
	start = clamp(start, 0, cl.length)
	end = clamp(end, 0, cl.length)
	it := &chunkIter{cl: cl, pos: start - 1, limit: end, step: 1}
	it.seek(start)
	return it
}

// BytesReverse iterates backward over data bytes in [start, end).
func (cl ChunkList) BytesReverse(start, end int) Iterator {
	start = clamp(start, 0, cl.length)
	end = clamp(end, 0, cl.length)
	it := &chunkIter{cl: cl, pos: end, limit: start, step: -1}
	it.seek(end - 1)
	return it
}

// chunkIter walks a ChunkList byte by byte, skipping gaps. It tracks the
// current chunk index so iteration is O(1) amortized per byte.
type chunkIter struct {
	cl    ChunkList
	pos   int // absolute position of the current byte (one step behind until Next)
	limit int // exclusive upper bound (forward) or inclusive lower bound (reverse)
	step  int // +1 or -1
	ci    int // index of the chunk containing pos
	cs    int // absolute start offset of chunk ci
	b     byte
}

// seek positions ci/cs at the chunk containing pos (or the nearest chunk
// when pos is out of range).
func (it *chunkIter) seek(pos int) {
	it.ci, it.cs = 0, 0
	for it.ci < len(it.cl.chunks) && pos >= it.cs+it.cl.chunks[it.ci].len() {
		it.cs += it.cl.chunks[it.ci].len()
		it.ci++
	}
}

func (it *chunkIter) Next() bool {
	for {
		it.pos += it.step
		if it.step > 0 && it.pos >= it.limit {
			return false
		}
		if it.step < 0 && it.pos < it.limit {
			return false
		}
		// Advance or retreat the chunk cursor to cover pos.
		for it.ci < len(it.cl.chunks) && it.pos >= it.cs+it.cl.chunks[it.ci].len() {
			it.cs += it.cl.chunks[it.ci].len()
			it.ci++
		}
		for it.ci > 0 && it.pos < it.cs {
			it.ci--
			it.cs -= it.cl.chunks[it.ci].len()
		}
		if it.ci >= len(it.cl.chunks) || it.pos < it.cs {
			return false
		}
		c := it.cl.chunks[it.ci]
		if c.isGap() {
			// Skip the whole gap in one step.
			if it.step > 0 {
				it.pos = it.cs + c.len() - 1
			} else {
				it.pos = it.cs
			}
			continue
		}
		it.b = c.data[it.pos-it.cs]
		return true
	}
}

func (it *chunkIter) Pos() int   { return it.pos }
func (it *chunkIter) Byte() byte { return it.b }

// splitChunk splits c at offset n, returning the two halves. Either half
// may be empty.
func splitChunk(c chunk, n int) (chunk, chunk) {
	if n <= 0 {
		return chunk{}, c
	}
	if n >= c.len() {
		return c, chunk{}
	}
	if c.isGap() {
		return chunk{gapLen: n}, chunk{gapLen: c.gapLen - n}
	}
	return chunk{data: c.data[:n]}, chunk{data: c.data[n:]}
}

// appendChunk appends c to out, dropping empty chunks and merging
// adjacent gaps so the chunk count stays bounded.
func appendChunk(out []chunk, c chunk) []chunk {
	if c.len() == 0 {
		return out
	}
	if n := len(out); n > 0 && c.isGap() && out[n-1].isGap() {
		out[n-1].gapLen += c.gapLen
		return out
	}
	return append(out, c)
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
