package hgraph

import "math"

// LocalCostFeature is a minimal, generically useful FeatureFunction: its
// transition cost at a hyperedge is that edge's own local contribution —
// best-derivation cost minus the best cost already accounted for by its
// antecedents. It lets a caller configure a plausible single-feature
// weight file without implementing a real translation/language model
// feature set, which is out of scope for this module.
type LocalCostFeature struct {
	Name string
	W    float64
}

func (f *LocalCostFeature) Weight() float64 { return f.W }

func (f *LocalCostFeature) TransitionCost(edge *Hyperedge, parentI, parentJ, sentID int) float64 {
	local := edge.BestDerivationCost
	for _, a := range edge.Antecedents {
		local -= bestIncomingCost(a)
	}
	return local
}

func bestIncomingCost(n *Node) float64 {
	best := math.Inf(1)
	for _, e := range n.Edges {
		if e.BestDerivationCost < best {
			best = e.BestDerivationCost
		}
	}
	return best
}
