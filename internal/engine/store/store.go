package store

// Store is an ordered byte sequence with immutable value semantics.
// Insert and Remove return a new logical version; the receiver is never
// modified. Implementations must be safe for concurrent reads.
type Store interface {
	// Insert returns a new store with data inserted at pos.
	// pos is clamped to [0, Len()].
	Insert(pos int, data []byte) Store

	// Remove returns a new store with bytes in [start, end) removed.
	// Bounds are clamped; an empty or inverted range is a no-op.
	Remove(start, end int) Store

	// Len returns the total byte length, including sparse gaps.
	Len() int

	// ByteAt returns the byte at pos. It reports false when pos is out
	// of range or falls inside a sparse gap.
	ByteAt(pos int) (byte, bool)

	// Bytes iterates forward over the data bytes in [start, end),
	// skipping sparse gaps. Bounds are clamped.
	Bytes(start, end int) Iterator

	// BytesReverse iterates backward over the data bytes in [start, end),
	// skipping sparse gaps. Bounds are clamped.
	BytesReverse(start, end int) Iterator

	// Materialize returns the full content as a byte slice, substituting
	// fill for every byte inside a sparse gap.
	Materialize(fill byte) []byte
}

// Iterator walks the data bytes of a store in a fixed direction.
// The usual pattern:
//
//	for it.Next() {
//		pos, b := it.Pos(), it.Byte()
//		...
//	}
type Iterator interface {
	// Next advances to the next byte. It returns false when the
	// iteration is exhausted.
	Next() bool

	// Pos returns the absolute byte offset of the current byte.
	Pos() int

	// Byte returns the current byte.
	Byte() byte
}
