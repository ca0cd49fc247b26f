// Package marker implements a gap-based marker list: content-anchored
// positions that survive edits without rewriting every stored offset.
//
// Markers are stored in a sequential list alternating with gaps, where a
// gap records a run of plain content bytes. A marker's position is the
// sum of the gap sizes before it. Inserting text therefore grows exactly
// one gap, and every marker after the insertion point "moves" for free.
//
// For the buffer "Hello World" with markers at 0 and 6:
//
//	[Gap(0), Marker(m1), Gap(6), Marker(m2), Gap(5)]
//
// After inserting "Beautiful " at position 6 only one entry changes:
//
//	[Gap(0), Marker(m1), Gap(16), Marker(m2), Gap(5)]
//
// Structural invariants, maintained by every mutating operation:
//
//   - the list starts and ends with a gap (possibly zero-length)
//   - no two gaps are adjacent
//   - the id index maps every live marker id to its slot
//   - the sum of gap sizes equals the buffer length
//
// The id index is a derived cache over the entry sequence; the sequence
// itself is the source of truth and the index is rebuilt whenever slots
// shift.
package marker
