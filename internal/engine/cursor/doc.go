// Package cursor implements cursors and multi-cursor sets over a byte
// buffer.
//
// A Cursor is a byte position plus an optional selection anchor. When
// an anchor is set, the selection spans from the anchor to the cursor
// position in either direction. Cursors also carry a sticky visual
// column that vertical movement aims for when lines are shorter than
// the column the user was on.
//
// Cursors holds a set of cursors keyed by stable IDs, with one cursor
// designated primary. The set adjusts every member in response to
// buffer edits and can normalize itself to an ordered, duplicate-free
// state.
//
// All positions are byte offsets. Neither type touches buffer content;
// callers clamp positions to valid boundaries before moving cursors.
package cursor
