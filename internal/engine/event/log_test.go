package event

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAppendAdvancesIndex(t *testing.T) {
	l := NewLog()
	if l.CanUndo() {
		t.Error("empty log should not undo")
	}

	idx := l.Append(Insert{Position: 0, Text: "a"}, "type a")
	if idx != 0 {
		t.Errorf("first index %d, want 0", idx)
	}
	idx = l.Append(Insert{Position: 1, Text: "b"}, "type b")
	if idx != 1 {
		t.Errorf("second index %d, want 1", idx)
	}
	if l.CurrentIndex() != 2 || l.Len() != 2 {
		t.Errorf("index %d len %d, want 2 2", l.CurrentIndex(), l.Len())
	}
}

func TestUndoRedo(t *testing.T) {
	l := NewLog()
	l.Append(Insert{Position: 0, Text: "a"}, "")
	l.Append(Insert{Position: 1, Text: "b"}, "")

	ev, ok := l.Undo()
	if !ok {
		t.Fatal("undo failed")
	}
	if ins := ev.(Insert); ins.Text != "b" {
		t.Errorf("undid %q, want b", ins.Text)
	}
	if l.CurrentIndex() != 1 {
		t.Errorf("index %d, want 1", l.CurrentIndex())
	}

	ev, ok = l.Redo()
	if !ok {
		t.Fatal("redo failed")
	}
	if ins := ev.(Insert); ins.Text != "b" {
		t.Errorf("redid %q, want b", ins.Text)
	}
	if l.CurrentIndex() != 2 {
		t.Errorf("index %d, want 2", l.CurrentIndex())
	}
}

func TestUndoRedoBoundaries(t *testing.T) {
	l := NewLog()
	if _, ok := l.Undo(); ok {
		t.Error("undo on empty log should fail")
	}
	if _, ok := l.Redo(); ok {
		t.Error("redo on empty log should fail")
	}

	l.Append(Insert{Position: 0, Text: "x"}, "")
	if _, ok := l.Redo(); ok {
		t.Error("redo at end should fail")
	}
	l.Undo()
	if _, ok := l.Undo(); ok {
		t.Error("undo at start should fail")
	}
}

func TestAppendTruncatesFuture(t *testing.T) {
	l := NewLog()
	l.Append(Insert{Position: 0, Text: "a"}, "")
	l.Append(Insert{Position: 1, Text: "b"}, "")

	l.Undo()
	l.Append(Insert{Position: 1, Text: "c"}, "")

	if l.Len() != 2 {
		t.Fatalf("len %d, want 2", l.Len())
	}
	entries := l.Entries()
	if entries[1].Event.(Insert).Text != "c" {
		t.Errorf("entry 1 text %q, want c", entries[1].Event.(Insert).Text)
	}
	if l.CanRedo() {
		t.Error("truncated log should have nothing to redo")
	}
}

func TestInverse(t *testing.T) {
	ins := Insert{Position: 5, Text: "hello"}
	inv, ok := ins.Inverse()
	if !ok {
		t.Fatal("insert should be invertible")
	}
	del := inv.(Delete)
	if del.Start != 5 || del.End != 10 || del.DeletedText != "hello" {
		t.Errorf("inverse delete %+v", del)
	}

	back, ok := del.Inverse()
	if !ok {
		t.Fatal("delete should be invertible")
	}
	if ins2 := back.(Insert); ins2.Position != 5 || ins2.Text != "hello" {
		t.Errorf("round trip %+v", ins2)
	}

	if _, ok := (MoveCursor{}).Inverse(); ok {
		t.Error("cursor motion should not be invertible")
	}
}

func TestModifiesBuffer(t *testing.T) {
	modifying := []Event{Insert{}, Delete{}}
	for _, ev := range modifying {
		if !ev.ModifiesBuffer() {
			t.Errorf("%s should modify buffer", ev.Kind())
		}
	}
	passive := []Event{MoveCursor{}, AddCursor{}, RemoveCursor{}, Scroll{}, SetViewport{}, ChangeMode{}}
	for _, ev := range passive {
		if ev.ModifiesBuffer() {
			t.Errorf("%s should not modify buffer", ev.Kind())
		}
	}
}

func TestRangeAndLastEvent(t *testing.T) {
	l := NewLog()
	for i := 0; i < 5; i++ {
		l.Append(Scroll{LineOffset: i}, "")
	}

	mid := l.Range(1, 3)
	if len(mid) != 2 {
		t.Fatalf("range len %d, want 2", len(mid))
	}
	if mid[0].Event.(Scroll).LineOffset != 1 {
		t.Errorf("range start offset %d, want 1", mid[0].Event.(Scroll).LineOffset)
	}

	if out := l.Range(-3, 99); len(out) != 5 {
		t.Errorf("clamped range len %d, want 5", len(out))
	}

	last, ok := l.LastEvent()
	if !ok || last.(Scroll).LineOffset != 4 {
		t.Errorf("last event %+v ok=%v", last, ok)
	}
}

func TestSnapshots(t *testing.T) {
	l := NewLog()
	l.SetSnapshotInterval(2)

	l.Append(Insert{Position: 0, Text: "a"}, "")
	if l.SnapshotDue() {
		t.Error("snapshot should not be due after 1 append")
	}
	l.Append(Insert{Position: 1, Text: "b"}, "")
	if !l.SnapshotDue() {
		t.Error("snapshot should be due after 2 appends")
	}
	l.RecordSnapshot("ab", []CursorState{{Position: 2}})

	snap, ok := l.NearestSnapshot(5)
	if !ok {
		t.Fatal("expected a snapshot")
	}
	if snap.LogIndex != 2 || snap.Content != "ab" {
		t.Errorf("snapshot %+v", snap)
	}

	if _, ok := l.NearestSnapshot(1); ok {
		t.Error("no snapshot exists at or before index 1")
	}
}

func TestTruncationDropsSnapshots(t *testing.T) {
	l := NewLog()
	l.Append(Insert{Position: 0, Text: "a"}, "")
	l.Append(Insert{Position: 1, Text: "b"}, "")
	l.RecordSnapshot("ab", nil)

	l.Undo()
	l.Undo()
	l.Append(Insert{Position: 0, Text: "z"}, "")

	if _, ok := l.NearestSnapshot(l.Len()); ok {
		t.Error("snapshot from the abandoned branch should be gone")
	}
}

func TestEntryRoundTrip(t *testing.T) {
	anchor := 3
	events := []Event{
		Insert{Position: 5, Text: "héllo\nworld", Cursor: 1},
		Delete{Start: 2, End: 9, DeletedText: "llo\nwor", Cursor: 2},
		MoveCursor{Cursor: 1, Position: 7, Anchor: &anchor},
		MoveCursor{Cursor: 1, Position: 7},
		AddCursor{Cursor: 4, Position: 0},
		RemoveCursor{Cursor: 4},
		Scroll{LineOffset: -3},
		SetViewport{TopLine: 42},
		ChangeMode{Mode: "insert"},
	}

	for _, ev := range events {
		in := Entry{Event: ev, Timestamp: 1700000000000, Description: "d"}
		line, err := MarshalEntry(in)
		if err != nil {
			t.Fatalf("%s: marshal: %v", ev.Kind(), err)
		}
		out, err := UnmarshalEntry(line)
		if err != nil {
			t.Fatalf("%s: unmarshal: %v", ev.Kind(), err)
		}
		if out.Event.Kind() != ev.Kind() {
			t.Errorf("kind %q, want %q", out.Event.Kind(), ev.Kind())
		}
		if out.Timestamp != in.Timestamp {
			t.Errorf("%s: timestamp %d, want %d", ev.Kind(), out.Timestamp, in.Timestamp)
		}
	}
}

func TestMoveCursorAnchorSurvivesRoundTrip(t *testing.T) {
	anchor := 12
	line, err := MarshalEntry(Entry{Event: MoveCursor{Cursor: 1, Position: 20, Anchor: &anchor}})
	if err != nil {
		t.Fatal(err)
	}
	out, err := UnmarshalEntry(line)
	if err != nil {
		t.Fatal(err)
	}
	mv := out.Event.(MoveCursor)
	if mv.Anchor == nil || *mv.Anchor != 12 {
		t.Errorf("anchor %v, want 12", mv.Anchor)
	}

	line, _ = MarshalEntry(Entry{Event: MoveCursor{Cursor: 1, Position: 20}})
	out, _ = UnmarshalEntry(line)
	if out.Event.(MoveCursor).Anchor != nil {
		t.Error("absent anchor should stay nil")
	}
}

func TestSaveLoadFile(t *testing.T) {
	l := NewLog()
	l.Append(Insert{Position: 0, Text: "hello", Cursor: 1}, "greeting")
	l.Append(Delete{Start: 0, End: 2, DeletedText: "he", Cursor: 1}, "")
	l.Append(ChangeMode{Mode: "normal"}, "")

	path := filepath.Join(t.TempDir(), "events.jsonl")
	if err := l.SaveFile(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Len() != 3 {
		t.Fatalf("len %d, want 3", loaded.Len())
	}
	if loaded.CurrentIndex() != 3 {
		t.Errorf("index %d, want 3", loaded.CurrentIndex())
	}
	ins := loaded.Entries()[0]
	if ins.Event.(Insert).Text != "hello" || ins.Description != "greeting" {
		t.Errorf("entry 0: %+v", ins)
	}
	if loaded.Entries()[1].Event.(Delete).DeletedText != "he" {
		t.Errorf("entry 1: %+v", loaded.Entries()[1])
	}
}

func TestLoadFileRejectsGarbage(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.jsonl")
	if err := os.WriteFile(bad, []byte("{\"kind\":\"insert\"}\nnot json\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(bad); err == nil {
		t.Error("loading malformed JSON should fail")
	}

	unknown := filepath.Join(dir, "unknown.jsonl")
	if err := os.WriteFile(unknown, []byte("{\"kind\":\"teleport\"}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(unknown); err == nil {
		t.Error("loading an unknown kind should fail")
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.jsonl")); err == nil {
		t.Error("loading a missing file should fail")
	}
}
