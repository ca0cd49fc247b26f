// Package event defines editor events and the append-only log that
// records them.
//
// Every user-visible action is an Event: buffer edits carry enough
// information to invert themselves (deletes remember the deleted
// text), while cursor and view events record intent without touching
// content. The Log appends events in order and keeps a current index
// for undo and redo; appending while rewound truncates the abandoned
// future, so history is linear.
//
// Logs serialize to JSON Lines, one event per line, and can be
// replayed to reconstruct buffer state. Periodic snapshots bound how
// far a replay has to run.
package event
