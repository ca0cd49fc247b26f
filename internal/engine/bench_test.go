package engine

import (
	"strings"
	"testing"
)

func BenchmarkInsertAt(b *testing.B) {
	e := New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.InsertAt(i, "x")
	}
}

func BenchmarkInsertAtCursors(b *testing.B) {
	e := New(WithContent(strings.Repeat("word ", 1000)))
	for i := 1; i < 8; i++ {
		e.AddCursor(i * 500)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.InsertAtCursors("x")
	}
}

func BenchmarkUndoRedo(b *testing.B) {
	e := New()
	for i := 0; i < 100; i++ {
		e.InsertAt(i, "x")
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Undo()
		e.Redo()
	}
}
