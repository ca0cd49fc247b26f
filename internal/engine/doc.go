// Package engine ties the editing model together: one buffer, its
// markers, a multi-cursor set and the event log, kept consistent
// through every edit.
//
// Edits flow through a fixed pipeline: the buffer content changes
// first (invalidating its line index), then markers adjust, then
// cursors adjust, and only then is the event appended to the log.
// Undo and redo replay logged events backwards and forwards through
// the same pipeline; events that never touched content replay as
// no-ops.
package engine
