package cube

import (
	"strconv"
	"strings"

	"github.com/latticeforge/kbest/hgraph"
)

// DerivationState identifies one derivation of its Parent node: a choice of
// hyperedge (EdgePos into Parent.Edges) and, for each antecedent, the
// 1-based rank of the sub-derivation chosen at that antecedent. It is
// immutable once constructed.
type DerivationState struct {
	Parent  *hgraph.Node
	Edge    *hgraph.Hyperedge
	EdgePos int
	Ranks   []int // empty for an axiom edge
	Cost    float64
}

// Signature returns "edge_pos r1 r2 … rm", unique within the scope of a
// single parent node. It depends only on EdgePos and Ranks, never on the
// identity of the underlying hyperedge, so it is stable across runs.
func (d *DerivationState) Signature() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(d.EdgePos))
	for _, r := range d.Ranks {
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(r))
	}
	return b.String()
}

// signatureFor computes a signature without allocating a DerivationState,
// used by successor generation to dedup candidate rank vectors before doing
// any of the work of producing the successor's cost.
func signatureFor(edgePos int, ranks []int) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(edgePos))
	for _, r := range ranks {
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(r))
	}
	return b.String()
}

// incremented returns a copy of ranks with position i incremented by one.
func incremented(ranks []int, i int) []int {
	out := make([]int, len(ranks))
	copy(out, ranks)
	out[i]++
	return out
}
