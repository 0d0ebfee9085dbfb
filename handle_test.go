package tricolor

import "testing"

func TestAsPtrFromPtrRoundTrip(t *testing.T) {
	h := New(DefaultConfig())
	var g Gc[*leaf]

	h.Mutate(func(m *Mutation) {
		g = Allocate[*leaf](m, &leaf{id: 7})
	})

	ptr := g.AsPtr()
	got := FromPtr[*leaf](h, ptr)

	if !GcPtrEq(g, got) {
		t.Fatal("FromPtr(AsPtr(g)) did not round-trip to an equal handle")
	}

	if (*got.Deref()).id != 7 {
		t.Fatalf("round-tripped handle derefs to id %d, want 7", (*got.Deref()).id)
	}
}

func TestCastGcRoundTrip(t *testing.T) {
	h := New(DefaultConfig())
	var g Gc[*leaf]

	h.Mutate(func(m *Mutation) {
		g = Allocate[*leaf](m, &leaf{id: 9})
	})

	// leafAlias shares leaf's exact layout; casting to it and back must
	// preserve identity and the underlying payload.
	casted := CastGc[*leaf, leafAlias](g)
	back := CastGc[leafAlias, *leaf](casted)

	if !GcPtrEq(g, back) {
		t.Fatal("casting to a same-layout type and back lost identity")
	}

	if (*back.Deref()).id != 9 {
		t.Fatalf("round-tripped cast derefs to id %d, want 9", (*back.Deref()).id)
	}
}

func TestGcPtrEqDistinguishesAllocations(t *testing.T) {
	h := New(DefaultConfig())
	var a, b Gc[*leaf]

	h.Mutate(func(m *Mutation) {
		a = Allocate[*leaf](m, &leaf{id: 1})
		b = Allocate[*leaf](m, &leaf{id: 2})
	})

	if GcPtrEq(a, b) {
		t.Fatal("distinct allocations compared equal")
	}

	if !GcPtrEq(a, a) {
		t.Fatal("a handle did not compare equal to itself")
	}
}

func TestWriteReplacesPayload(t *testing.T) {
	h := New(DefaultConfig())
	var g Gc[*leaf]

	h.Mutate(func(m *Mutation) {
		g = Allocate[*leaf](m, &leaf{id: 1})
		g.Write(m, &leaf{id: 2})
	})

	if (*g.Deref()).id != 2 {
		t.Fatalf("after Write, deref id = %d, want 2", (*g.Deref()).id)
	}
}

func TestWriteAcrossHeapsPanics(t *testing.T) {
	h1 := New(DefaultConfig())
	h2 := New(DefaultConfig())
	var g Gc[*leaf]

	h1.Mutate(func(m *Mutation) {
		g = Allocate[*leaf](m, &leaf{id: 1})
	})

	defer func() {
		if recover() == nil {
			t.Fatal("expected Write with a foreign Mutation to panic")
		}
	}()

	h2.Mutate(func(m *Mutation) {
		g.Write(m, &leaf{id: 2})
	})
}
