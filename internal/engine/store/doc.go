// Package store defines the text store contract consumed by the editing
// engine: an opaque, ordered byte sequence with immutable value semantics.
// Every mutating operation returns a new logical version of the store;
// existing versions remain valid and can be read concurrently.
//
// The engine never depends on a particular storage strategy (rope,
// piece table, chunk tree). It consumes the Store interface only. The
// package ships one reference implementation, ChunkList, an immutable
// chunk sequence that supports sparse gap chunks, so the engine is
// constructible and testable without an external rope.
//
// Sparse gaps occupy positions but carry no data. ByteAt reports false
// inside a gap, iterators skip gap bytes, and Materialize substitutes a
// caller-provided fill byte for them.
package store
