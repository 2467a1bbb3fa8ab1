// Package hgraph defines the read-only data model the lazy k-best extractor
// operates over: a weighted hypergraph of recognized spans (Node) connected
// by grammar-rule applications (Hyperedge), plus the small set of
// collaborator interfaces (SymbolTable, FeatureFunction) the extractor
// consumes but never constructs itself.
//
// A decoder's own hypergraph construction, feature functions, and
// symbol-table population are out of scope for this module. This package
// describes their shape and ships small usable defaults so the CLI and tests
// have something concrete to run against: a JSON dump loader,
// InMemorySymbolTable, and LocalCostFeature.
package hgraph

import "fmt"

// Rule carries a left-hand-side nonterminal identifier and the source/target
// symbol streams of a grammar rule application. A nonterminal placeholder in
// either stream is encoded as a negative int: -1 refers to antecedent 0, -2
// to antecedent 1, and so on.
type Rule struct {
	LHS    int
	Source []int
	Target []int

	// TargetNTIndex maps the i-th nonterminal encountered while walking
	// Target, in order, to the antecedent position it resolves to. When
	// nil, each nonterminal resolves to the antecedent position its
	// placeholder encodes.
	TargetNTIndex []int
}

// IsNonterminal reports whether a symbol id from a rule's Source/Target
// stream is a nonterminal placeholder, and if so which antecedent position
// it names.
func IsNonterminal(sym int) (pos int, ok bool) {
	if sym >= 0 {
		return 0, false
	}
	return -sym - 1, true
}

// Hyperedge is one grammar-rule application: an ordered list of antecedent
// nodes (empty for an axiom), an optional rule (absent for goal-level
// edges), a reference to the originating source path, and the minimum cost
// achievable by any derivation rooted at this edge.
type Hyperedge struct {
	Antecedents        []*Node
	Rule               *Rule // nil for goal edges
	SourcePath         string
	BestDerivationCost float64
}

// NumAntecedents returns the number of antecedent nodes (0 for an axiom).
func (e *Hyperedge) NumAntecedents() int {
	return len(e.Antecedents)
}

// Node represents a parsed span: a non-empty ordered list of incoming
// hyperedges plus the left/right token indices of the span it covers.
type Node struct {
	ID    string
	I, J  int
	Edges []*Hyperedge
}

// Hypergraph is the root container: every node reachable from Goal, plus the
// Goal node itself. Goal is nil if the hypergraph failed to parse/prove a
// derivation for its sentence.
type Hypergraph struct {
	Goal  *Node
	Nodes map[string]*Node
}

// Validate checks the structural invariants required of input: every node,
// the goal included, has a non-empty edge list, and the goal node's hyperedges
// (if any) carry no rule.
func (h *Hypergraph) Validate() error {
	if h.Goal == nil {
		return nil
	}
	for id, n := range h.Nodes {
		if len(n.Edges) == 0 {
			return fmt.Errorf("hgraph: node %q has no incoming hyperedges", id)
		}
	}
	for _, e := range h.Goal.Edges {
		if e.Rule != nil {
			return fmt.Errorf("hgraph: goal node %q has an edge with a non-nil rule", h.Goal.ID)
		}
	}
	return nil
}
