package marker

import (
	"math/rand"
	"testing"
)

func mustInvariants(t *testing.T, l *List) {
	t.Helper()
	if err := l.CheckInvariants(); err != nil {
		t.Fatalf("invariant violated: %v", err)
	}
}

func position(t *testing.T, l *List, id ID) int {
	t.Helper()
	pos, ok := l.Position(id)
	if !ok {
		t.Fatalf("marker %d unexpectedly gone", id)
	}
	return pos
}

func TestNewList(t *testing.T) {
	l := NewList()
	if l.Count() != 0 {
		t.Errorf("expected 0 markers, got %d", l.Count())
	}
	if l.BufferSize() != 0 {
		t.Errorf("expected buffer size 0, got %d", l.BufferSize())
	}
	mustInvariants(t, l)
}

func TestCreateAtStart(t *testing.T) {
	l := NewList()
	m := l.Create(0, AffinityLeft)

	if l.Count() != 1 {
		t.Errorf("expected 1 marker, got %d", l.Count())
	}
	if got := position(t, l, m); got != 0 {
		t.Errorf("expected position 0, got %d", got)
	}
	mustInvariants(t, l)
}

func TestCreateMultiple(t *testing.T) {
	l := NewListWithSize(20)
	m1 := l.Create(5, AffinityLeft)
	m2 := l.Create(15, AffinityRight)

	if got := position(t, l, m1); got != 5 {
		t.Errorf("m1 at %d, want 5", got)
	}
	if got := position(t, l, m2); got != 15 {
		t.Errorf("m2 at %d, want 15", got)
	}
	mustInvariants(t, l)
}

func TestInsertBeforeMarker(t *testing.T) {
	l := NewListWithSize(20)
	m := l.Create(10, AffinityLeft)

	l.AdjustForInsert(5, 5)

	if got := position(t, l, m); got != 15 {
		t.Errorf("marker at %d, want 15", got)
	}
	if l.BufferSize() != 25 {
		t.Errorf("buffer size %d, want 25", l.BufferSize())
	}
	mustInvariants(t, l)
}

func TestInsertAfterMarker(t *testing.T) {
	l := NewListWithSize(20)
	m := l.Create(10, AffinityLeft)

	l.AdjustForInsert(15, 5)

	if got := position(t, l, m); got != 10 {
		t.Errorf("marker at %d, want 10", got)
	}
	mustInvariants(t, l)
}

func TestInsertAtMarkerLeftAffinity(t *testing.T) {
	l := NewListWithSize(20)
	m := l.Create(10, AffinityLeft)

	l.AdjustForInsert(10, 5)

	// Left affinity: insertion lands after the marker.
	if got := position(t, l, m); got != 10 {
		t.Errorf("marker at %d, want 10", got)
	}
	if l.BufferSize() != 25 {
		t.Errorf("buffer size %d, want 25", l.BufferSize())
	}
	mustInvariants(t, l)
}

func TestInsertAtMarkerRightAffinity(t *testing.T) {
	l := NewListWithSize(20)
	m := l.Create(10, AffinityRight)

	l.AdjustForInsert(10, 5)

	// Right affinity: insertion lands before the marker.
	if got := position(t, l, m); got != 15 {
		t.Errorf("marker at %d, want 15", got)
	}
	mustInvariants(t, l)
}

func TestDeleteBeforeMarker(t *testing.T) {
	l := NewListWithSize(20)
	m := l.Create(15, AffinityLeft)

	l.AdjustForDelete(5, 5)

	if got := position(t, l, m); got != 10 {
		t.Errorf("marker at %d, want 10", got)
	}
	if l.BufferSize() != 15 {
		t.Errorf("buffer size %d, want 15", l.BufferSize())
	}
	mustInvariants(t, l)
}

func TestDeleteAfterMarker(t *testing.T) {
	l := NewListWithSize(20)
	m := l.Create(10, AffinityLeft)

	l.AdjustForDelete(15, 5)

	if got := position(t, l, m); got != 10 {
		t.Errorf("marker at %d, want 10", got)
	}
	mustInvariants(t, l)
}

func TestDeleteSwallowsMarker(t *testing.T) {
	l := NewListWithSize(20)
	m := l.Create(10, AffinityLeft)

	l.AdjustForDelete(10, 5)

	if _, ok := l.Position(m); ok {
		t.Error("marker should have been removed")
	}
	if l.Count() != 0 {
		t.Errorf("expected 0 markers, got %d", l.Count())
	}
	mustInvariants(t, l)
}

func TestDeleteSwallowsMultipleMarkers(t *testing.T) {
	l := NewListWithSize(30)
	m1 := l.Create(10, AffinityLeft)
	m2 := l.Create(15, AffinityLeft)
	m3 := l.Create(20, AffinityLeft)

	l.AdjustForDelete(8, 10)

	if _, ok := l.Position(m1); ok {
		t.Error("m1 should have been removed")
	}
	if _, ok := l.Position(m2); ok {
		t.Error("m2 should have been removed")
	}
	if got := position(t, l, m3); got != 10 {
		t.Errorf("m3 at %d, want 10", got)
	}
	if l.Count() != 1 {
		t.Errorf("expected 1 marker, got %d", l.Count())
	}
	mustInvariants(t, l)
}

func TestExplicitDelete(t *testing.T) {
	l := NewListWithSize(20)
	m1 := l.Create(10, AffinityLeft)
	m2 := l.Create(15, AffinityRight)

	l.Delete(m1)

	if _, ok := l.Position(m1); ok {
		t.Error("m1 should be gone")
	}
	if got := position(t, l, m2); got != 15 {
		t.Errorf("m2 at %d, want 15", got)
	}
	if l.Count() != 1 {
		t.Errorf("expected 1 marker, got %d", l.Count())
	}
	mustInvariants(t, l)
}

func TestDeleteUnknownIDIsNoop(t *testing.T) {
	l := NewListWithSize(10)
	l.Create(5, AffinityLeft)
	l.Delete(ID(999))
	if l.Count() != 1 {
		t.Errorf("expected 1 marker, got %d", l.Count())
	}
	mustInvariants(t, l)
}

func TestInsertThenDeleteScenario(t *testing.T) {
	l := NewListWithSize(100)
	m1 := l.Create(10, AffinityLeft)
	m2 := l.Create(20, AffinityLeft)
	m3 := l.Create(30, AffinityLeft)

	l.AdjustForInsert(15, 5)
	if got := position(t, l, m1); got != 10 {
		t.Errorf("m1 at %d, want 10", got)
	}
	if got := position(t, l, m2); got != 25 {
		t.Errorf("m2 at %d, want 25", got)
	}
	if got := position(t, l, m3); got != 35 {
		t.Errorf("m3 at %d, want 35", got)
	}

	l.AdjustForDelete(12, 8)
	if got := position(t, l, m1); got != 10 {
		t.Errorf("m1 at %d, want 10", got)
	}
	if got := position(t, l, m2); got != 17 {
		t.Errorf("m2 at %d, want 17", got)
	}
	if got := position(t, l, m3); got != 27 {
		t.Errorf("m3 at %d, want 27", got)
	}
	mustInvariants(t, l)
}

// Randomized invariant tests over arbitrary edit sequences.

func TestRandomEditsPreserveInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 50; trial++ {
		size := 10 + rng.Intn(990)
		l := NewListWithSize(size)
		for i := 0; i < 5; i++ {
			l.Create(rng.Intn(size+1), Affinity(i%2))
		}

		for op := 0; op < 20; op++ {
			if rng.Intn(2) == 0 {
				pos := rng.Intn(l.BufferSize() + 1)
				l.AdjustForInsert(pos, 1+rng.Intn(50))
			} else if l.BufferSize() > 0 {
				pos := rng.Intn(l.BufferSize())
				n := 1 + rng.Intn(min(20, l.BufferSize()-pos))
				l.AdjustForDelete(pos, n)
			}
			if err := l.CheckInvariants(); err != nil {
				t.Fatalf("trial %d op %d: %v", trial, op, err)
			}
		}
	}
}

func TestRandomEditsPreserveMarkerOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	for trial := 0; trial < 50; trial++ {
		l := NewListWithSize(200)
		var markers []ID
		for i := 0; i < 5; i++ {
			markers = append(markers, l.Create(i*20, AffinityLeft))
		}

		for op := 0; op < 10; op++ {
			if rng.Intn(2) == 0 {
				l.AdjustForInsert(rng.Intn(l.BufferSize()+1), 1+rng.Intn(50))
			} else if l.BufferSize() > 0 {
				pos := rng.Intn(l.BufferSize())
				n := 1 + rng.Intn(min(20, l.BufferSize()-pos))
				l.AdjustForDelete(pos, n)
			}
		}

		prev := -1
		for _, m := range markers {
			pos, ok := l.Position(m)
			if !ok {
				continue
			}
			if pos < prev {
				t.Fatalf("trial %d: marker order violated: %d after %d", trial, pos, prev)
			}
			prev = pos
		}
	}
}

func TestRandomEditsTrackBufferSize(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for trial := 0; trial < 50; trial++ {
		size := 10 + rng.Intn(490)
		l := NewListWithSize(size)
		for i := 0; i < 3; i++ {
			l.Create(rng.Intn(size+1), AffinityLeft)
		}

		expected := size
		for op := 0; op < 15; op++ {
			if rng.Intn(2) == 0 {
				n := 1 + rng.Intn(50)
				l.AdjustForInsert(rng.Intn(expected+1), n)
				expected += n
			} else if expected > 0 {
				pos := rng.Intn(expected)
				n := 1 + rng.Intn(min(20, expected-pos))
				l.AdjustForDelete(pos, n)
				expected -= n
			}
			if l.BufferSize() != expected {
				t.Fatalf("trial %d op %d: buffer size %d, want %d", trial, op, l.BufferSize(), expected)
			}
		}
	}
}
