// Package cube implements lazy k-best derivation extraction (Huang &
// Chiang's cube-pruning "Algorithm 3") over a weighted hypergraph.
package cube

import (
	"time"

	"github.com/latticeforge/kbest/hgraph"
)

// Hooks lets a caller observe extraction without cube importing any
// telemetry library itself (internal/telemetry wires otel and prometheus
// behind these two closures). Either field may be nil.
type Hooks struct {
	BeforeKth func(nodeID string, k int)
	AfterKth  func(nodeID string, k int, ok bool, err error, dur time.Duration)
}

// Extractor is the top-level entry point: a reusable handle over a
// symbol table and a set of feature functions, holding one VirtualNode per
// hypergraph node it has been asked about.
type Extractor struct {
	opts     Options
	symtab   hgraph.SymbolTable
	features []hgraph.FeatureFunction
	rootID   int
	vnodes   map[*hgraph.Node]*VirtualNode

	Hooks *Hooks
}

// NewExtractor constructs an Extractor. symtab must not be nil; features
// may be empty when the caller only needs yields, not scores.
func NewExtractor(opts Options, symtab hgraph.SymbolTable, features []hgraph.FeatureFunction) *Extractor {
	return &Extractor{
		opts:     opts,
		symtab:   symtab,
		features: features,
		rootID:   symtab.AddNonterminal("ROOT"),
		vnodes:   make(map[*hgraph.Node]*VirtualNode),
	}
}

// Reset discards all memoized virtual-node state, so that subsequent calls
// re-derive everything from scratch. Required before switching to a
// different hypergraph.
func (ex *Extractor) Reset() {
	ex.vnodes = make(map[*hgraph.Node]*VirtualNode)
}

func (ex *Extractor) vnodeFor(n *hgraph.Node) *VirtualNode {
	if vn, ok := ex.vnodes[n]; ok {
		return vn
	}
	vn := newVirtualNode(n, ex)
	ex.vnodes[n] = vn
	return vn
}

// KthHypothesis returns the fully formatted k-th best hypothesis at node
// (1-based). ok is false, with a nil error, when fewer than k derivations
// exist; an unreachable rank is not a fatal error. Repeated calls on the
// same Extractor without Reset reuse prior work and return identical lines.
func (ex *Extractor) KthHypothesis(node *hgraph.Node, k int, sentID int) (string, bool, error) {
	if ex.Hooks != nil && ex.Hooks.BeforeKth != nil {
		ex.Hooks.BeforeKth(node.ID, k)
	}
	start := time.Now()

	vn := ex.vnodeFor(node)
	d, ok, err := vn.LazyKBest(k)

	var line string
	if err == nil && ok {
		line, err = ex.Format(d, sentID)
	}

	if ex.Hooks != nil && ex.Hooks.AfterKth != nil {
		ex.Hooks.AfterKth(node.ID, k, ok, err, time.Since(start))
	}
	if err != nil {
		return "", false, err
	}
	return line, ok, nil
}

// Extract drives the whole-sentence loop: deliver up to n
// hypotheses at the hypergraph's goal node to consumer, in rank order,
// stopping early if fewer than n exist. A fresh virtual-node table is used,
// independent of any prior calls on this Extractor. Finish is always
// delivered to consumer exactly once, on every exit path.
func (ex *Extractor) Extract(hg *hgraph.Hypergraph, n int, sentID int, consumer Consumer) error {
	defer consumer.Finish()

	if hg.Goal == nil {
		return nil
	}
	ex.Reset()

	for k := 1; k <= n; k++ {
		line, ok, err := ex.KthHypothesis(hg.Goal, k, sentID)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if err := consumer.Deliver(line); err != nil {
			return &SinkFailureError{Err: err}
		}
	}
	return nil
}

func (ex *Extractor) childDerivation(edge *hgraph.Hyperedge, antIdx, rank int) (*DerivationState, error) {
	child := edge.Antecedents[antIdx]
	vn := ex.vnodeFor(child)
	d, ok, err := vn.LazyKBest(rank)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &OverflowDerivationStateError{
			NodeID: child.ID,
			Detail: "rank expected to already exist from prior successor generation is missing",
		}
	}
	return d, nil
}
