package hgraph

import "testing"

func TestLocalCostFeature(t *testing.T) {
	na := &Node{ID: "NA", Edges: []*Hyperedge{{BestDerivationCost: 1.0}}}
	nb := &Node{ID: "NB", Edges: []*Hyperedge{{BestDerivationCost: 2.0}}}
	top := &Hyperedge{Antecedents: []*Node{na, nb}, BestDerivationCost: 3.0}

	f := &LocalCostFeature{Name: "combined", W: 2.0}
	if got, want := f.TransitionCost(top, 0, 2, 0), 0.0; got != want {
		t.Errorf("TransitionCost(top) = %v, want %v", got, want)
	}
	if got, want := f.TransitionCost(na.Edges[0], 0, 1, 0), 1.0; got != want {
		t.Errorf("TransitionCost(na) = %v, want %v", got, want)
	}
	if got, want := f.Weight(), 2.0; got != want {
		t.Errorf("Weight() = %v, want %v", got, want)
	}
}
