package hgraph

import "testing"

func TestInMemorySymbolTable(t *testing.T) {
	st := NewInMemorySymbolTable()
	st.AddWord(10, "a")
	st.AddWord(11, "b")

	if st.WordOf(10) != "a" || st.WordOf(11) != "b" {
		t.Fatalf("word lookup wrong: %s %s", st.WordOf(10), st.WordOf(11))
	}
	if st.WordOf(99) != "99" {
		t.Errorf("unknown id should fall back to decimal string, got %q", st.WordOf(99))
	}
	if st.IsNonterminal(10) {
		t.Error("10 should not be a nonterminal")
	}

	id := st.AddNonterminal("S")
	if !st.IsNonterminal(id) {
		t.Error("added nonterminal should report true")
	}
	if st.TargetNonterminalIndex(id) != 0 {
		t.Errorf("first nonterminal index = %d, want 0", st.TargetNonterminalIndex(id))
	}
	id2 := st.AddNonterminal("X")
	if st.TargetNonterminalIndex(id2) != 1 {
		t.Errorf("second nonterminal index = %d, want 1", st.TargetNonterminalIndex(id2))
	}
	if st.WordOf(id) != "S" {
		t.Errorf("WordOf(nonterminal) = %q, want S", st.WordOf(id))
	}
}

func TestIsNonterminal(t *testing.T) {
	pos, ok := IsNonterminal(-1)
	if !ok || pos != 0 {
		t.Errorf("IsNonterminal(-1) = %d, %v; want 0, true", pos, ok)
	}
	pos, ok = IsNonterminal(-3)
	if !ok || pos != 2 {
		t.Errorf("IsNonterminal(-3) = %d, %v; want 2, true", pos, ok)
	}
	if _, ok := IsNonterminal(5); ok {
		t.Error("IsNonterminal(5) should be false")
	}
}
