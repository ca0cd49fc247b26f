// Package buffer implements a text buffer over an abstract byte store,
// with an incrementally built line index.
//
// The buffer never scans more of the file than a lookup needs. Line
// starts are cached as they are discovered; lookups past the scanned
// frontier either extend the scan in bounded chunks (LineToByte) or
// return an estimate without touching the store (ByteToLineLazy).
// Edits invalidate the index, which rebuilds lazily.
//
// A second family of lookups (LineStartAt, LineEndAt and friends)
// works purely on byte offsets by scanning the store near the given
// position, independent of the line index. These are the workhorses
// for cursor motion in files too large to index eagerly.
//
// All positions are byte offsets. Out-of-range arguments saturate to
// the nearest valid value; nothing in this package panics on bad
// input.
package buffer
