package keymap

import "testing"

func TestBuildAndResolve(t *testing.T) {
	m := Build([]Pair{
		{SourceID: "C1", Surrogate: 1},
		{SourceID: "C2", Surrogate: 2},
	})
	if m.Len() != 2 {
		t.Fatalf("len = %d, want 2", m.Len())
	}
	if s, ok := m.Resolve("C2"); !ok || s != 2 {
		t.Fatalf("Resolve(C2) = %d,%v", s, ok)
	}
	if _, ok := m.Resolve("C9"); ok {
		t.Fatal("unknown key must not resolve")
	}
}

func TestBuildIgnoresLaterDuplicatesAndEmptyKeys(t *testing.T) {
	m := Build([]Pair{
		{SourceID: "C1", Surrogate: 1},
		{SourceID: "C1", Surrogate: 99},
		{SourceID: "", Surrogate: 2},
	})
	if m.Len() != 1 {
		t.Fatalf("len = %d, want 1", m.Len())
	}
	if s, _ := m.Resolve("C1"); s != 1 {
		t.Fatalf("first association must win, got %d", s)
	}
}
