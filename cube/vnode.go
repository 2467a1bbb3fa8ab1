package cube

import (
	"container/heap"
	"fmt"

	"github.com/latticeforge/kbest/hgraph"
)

// candidateHeap is a min-heap of DerivationState ordered by ascending cost,
// the per-node candidate frontier. A thin adapter over container/heap, no
// indirection beyond the slice itself.
type candidateHeap []*DerivationState

func (h candidateHeap) Len() int            { return len(h) }
func (h candidateHeap) Less(i, j int) bool  { return h[i].Cost < h[j].Cost }
func (h candidateHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x interface{}) { *h = append(*h, x.(*DerivationState)) }
func (h *candidateHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// VirtualNode is the per-hypergraph-node extraction bookkeeping: a
// monotonically growing ranked list (nbests), a candidate frontier heap,
// and the dedup tables that keep the frontier and nbests each internally
// consistent. It refers to its hypergraph node and to its owning Extractor
// by read-only reference, never by direct ownership of descendant state;
// descendants are always reached through the Extractor's node lookup
// table, so clearing that table reclaims everything in one step.
type VirtualNode struct {
	node *hgraph.Node
	ex   *Extractor

	nbests []*DerivationState
	heap   candidateHeap
	seeded bool

	derivationTbl map[string]struct{}
	nbestStrTbl   map[string]struct{}
}

func newVirtualNode(node *hgraph.Node, ex *Extractor) *VirtualNode {
	return &VirtualNode{
		node:          node,
		ex:            ex,
		derivationTbl: make(map[string]struct{}),
		nbestStrTbl:   make(map[string]struct{}),
	}
}

// LazyKBest returns the k-th best derivation at this node (1-based),
// expanding the frontier only as far as necessary. ok is false when fewer
// than k derivations exist for this node; that is not an error.
func (v *VirtualNode) LazyKBest(k int) (*DerivationState, bool, error) {
	if k <= len(v.nbests) {
		return v.nbests[k-1], true, nil
	}

	if !v.seeded {
		if err := v.seed(); err != nil {
			return nil, false, err
		}
		v.seeded = true
	}

	for len(v.nbests) < k && v.heap.Len() > 0 {
		res := heap.Pop(&v.heap).(*DerivationState)

		accept := true
		if v.ex.opts.UniqueNbest {
			yieldStr, err := v.ex.flatYield(res)
			if err != nil {
				return nil, false, err
			}
			if _, seen := v.nbestStrTbl[yieldStr]; seen {
				accept = false
			} else {
				v.nbestStrTbl[yieldStr] = struct{}{}
			}
		}
		if accept {
			v.nbests = append(v.nbests, res)
		}

		if err := v.lazyNext(res); err != nil {
			return nil, false, err
		}
	}

	if k <= len(v.nbests) {
		return v.nbests[k-1], true, nil
	}
	return nil, false, nil
}

// seed initializes the frontier: push the best derivation state of every
// incoming hyperedge, with an all-ones rank vector, onto the heap.
func (v *VirtualNode) seed() error {
	for pos, e := range v.node.Edges {
		ds, ok, err := v.buildBestState(pos, e)
		if err != nil {
			return err
		}
		if !ok {
			// An antecedent produced zero derivations; this edge can
			// never be realized and contributes no candidate.
			continue
		}

		sig := ds.Signature()
		if _, dup := v.derivationTbl[sig]; dup {
			return &HypergraphCorruptError{
				NodeID: v.node.ID,
				Detail: fmt.Sprintf("duplicate derivation signature %q at seeding", sig),
			}
		}
		v.derivationTbl[sig] = struct{}{}
		heap.Push(&v.heap, ds)
	}
	return nil
}

func (v *VirtualNode) buildBestState(pos int, e *hgraph.Hyperedge) (*DerivationState, bool, error) {
	ranks := make([]int, e.NumAntecedents())
	for i, ant := range e.Antecedents {
		ranks[i] = 1
		if len(ant.Edges) == 0 {
			return nil, false, &HypergraphCorruptError{
				NodeID: ant.ID,
				Detail: "empty hyperedge list on a non-goal node",
			}
		}
		childVN := v.ex.vnodeFor(ant)
		_, ok, err := childVN.LazyKBest(1)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, nil
		}
	}
	return &DerivationState{
		Parent:  v.node,
		Edge:    e,
		EdgePos: pos,
		Ranks:   ranks,
		Cost:    e.BestDerivationCost,
	}, true, nil
}

// lazyNext generates last's successors: for each antecedent position,
// form the successor that increments just that position's rank by one, and
// push it onto the frontier if it isn't already there and is realizable.
func (v *VirtualNode) lazyNext(last *DerivationState) error {
	for i := range last.Ranks {
		newRanks := incremented(last.Ranks, i)
		sig := signatureFor(last.EdgePos, newRanks)
		if _, dup := v.derivationTbl[sig]; dup {
			continue
		}

		ant := last.Edge.Antecedents[i]
		childVN := v.ex.vnodeFor(ant)

		childNew, ok, err := childVN.LazyKBest(newRanks[i])
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		childOld, ok, err := childVN.LazyKBest(last.Ranks[i])
		if err != nil {
			return err
		}
		if !ok {
			return &OverflowDerivationStateError{
				NodeID: v.node.ID,
				Detail: "predecessor rank vanished while computing a successor's cost",
			}
		}

		ds := &DerivationState{
			Parent:  v.node,
			Edge:    last.Edge,
			EdgePos: last.EdgePos,
			Ranks:   newRanks,
			Cost:    last.Cost - childOld.Cost + childNew.Cost,
		}
		v.derivationTbl[sig] = struct{}{}
		heap.Push(&v.heap, ds)
	}
	return nil
}
