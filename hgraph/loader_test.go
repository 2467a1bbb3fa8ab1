package hgraph

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleDump = `{
  "goal": "S0-2",
  "nodes": {
    "S0-2": {"i": 0, "j": 2, "edges": ["e0"]},
    "N0-1": {"i": 0, "j": 1, "edges": ["e1"]},
    "N1-2": {"i": 1, "j": 2, "edges": ["e2"]}
  },
  "edges": {
    "e0": {"antecedents": ["N0-1", "N1-2"], "rule": "", "source_path": "p0", "cost": 3.0},
    "e1": {"antecedents": [], "rule": "r1", "source_path": "p1", "cost": 1.0},
    "e2": {"antecedents": [], "rule": "r2", "source_path": "p2", "cost": 2.0}
  },
  "rules": {
    "r1": {"lhs": 6, "source": [10], "target": [10]},
    "r2": {"lhs": 7, "source": [11], "target": [11]}
  }
}`

// nodeShape and edgeShape project the pointer-heavy Node/Hyperedge graph
// down to plain, comparable values so cmp.Diff can report a useful failure
// instead of walking (and potentially looping forever over) live pointers.
type nodeShape struct {
	ID string
	I  int
	J  int
}

type edgeShape struct {
	Antecedents []string
	Cost        float64
	HasRule     bool
}

func nodeShapeOf(n *Node) nodeShape {
	return nodeShape{ID: n.ID, I: n.I, J: n.J}
}

func edgeShapeOf(e *Hyperedge) edgeShape {
	ids := make([]string, len(e.Antecedents))
	for i, a := range e.Antecedents {
		ids[i] = a.ID
	}
	return edgeShape{Antecedents: ids, Cost: e.BestDerivationCost, HasRule: e.Rule != nil}
}

func TestLoadBytes(t *testing.T) {
	hg, err := LoadBytes([]byte(sampleDump))
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	if hg.Goal == nil {
		t.Fatal("expected a goal node")
	}

	wantGoal := nodeShape{ID: "S0-2", I: 0, J: 2}
	if gotGoal := nodeShapeOf(hg.Goal); !cmp.Equal(gotGoal, wantGoal) {
		t.Errorf("goal node mismatch (-got +want):\n%s", cmp.Diff(gotGoal, wantGoal))
	}
	if len(hg.Goal.Edges) != 1 {
		t.Fatalf("goal edges = %d, want 1", len(hg.Goal.Edges))
	}

	wantEdge := edgeShape{Antecedents: []string{"N0-1", "N1-2"}, Cost: 3.0, HasRule: false}
	if gotEdge := edgeShapeOf(hg.Goal.Edges[0]); !cmp.Equal(gotEdge, wantEdge) {
		t.Errorf("edge e0 mismatch (-got +want):\n%s", cmp.Diff(gotEdge, wantEdge))
	}
}

func TestLoadBytesUnknownAntecedent(t *testing.T) {
	bad := `{"goal":"G","nodes":{"G":{"i":0,"j":1,"edges":["e0"]}},
	  "edges":{"e0":{"antecedents":["missing"],"rule":"","source_path":"","cost":0}},
	  "rules":{}}`
	if _, err := LoadBytes([]byte(bad)); err == nil {
		t.Fatal("expected error for unknown antecedent")
	}
}

func TestLoadBytesGoalEdgeHasNoRule(t *testing.T) {
	bad := `{"goal":"G","nodes":{"G":{"i":0,"j":1,"edges":["e0"]}},
	  "edges":{"e0":{"antecedents":[],"rule":"r0","source_path":"","cost":0}},
	  "rules":{"r0":{"lhs":1,"source":[1],"target":[1]}}}`
	if _, err := LoadBytes([]byte(bad)); err == nil {
		t.Fatal("expected error: goal edge must not carry a rule")
	}
}

func TestLoadBytesWithVocabPopulatesSymbolTable(t *testing.T) {
	withVocab := `{
	  "goal": "G",
	  "nodes": {
	    "G": {"i": 0, "j": 1, "edges": ["e0"]},
	    "N": {"i": 0, "j": 1, "edges": ["e1"]}
	  },
	  "edges": {
	    "e0": {"antecedents": ["N"], "rule": "", "source_path": "p0", "cost": 1.0},
	    "e1": {"antecedents": [], "rule": "r0", "source_path": "p1", "cost": 1.0}
	  },
	  "rules": {"r0": {"lhs": 5, "source": [10], "target": [10]}},
	  "vocab": {"10": "hello", "11": "world"}
	}`
	hg, symtab, err := LoadBytesWithVocab([]byte(withVocab))
	if err != nil {
		t.Fatalf("LoadBytesWithVocab: %v", err)
	}
	if hg.Goal == nil {
		t.Fatal("expected a goal node")
	}
	if got := symtab.WordOf(10); got != "hello" {
		t.Errorf("WordOf(10) = %q, want hello", got)
	}
	if got := symtab.WordOf(11); got != "world" {
		t.Errorf("WordOf(11) = %q, want world", got)
	}
	if got := symtab.WordOf(999); got != "999" {
		t.Errorf("WordOf(999) = %q, want decimal fallback 999", got)
	}
}

func TestLoadBytesWithVocabAbsentBehavesLikeLoadBytes(t *testing.T) {
	hg, symtab, err := LoadBytesWithVocab([]byte(sampleDump))
	if err != nil {
		t.Fatalf("LoadBytesWithVocab: %v", err)
	}
	if hg.Goal == nil || hg.Goal.ID != "S0-2" {
		t.Fatalf("goal = %v, want S0-2", hg.Goal)
	}
	if got := symtab.WordOf(10); got != "10" {
		t.Errorf("WordOf(10) = %q, want decimal fallback with no vocab field", got)
	}
}
