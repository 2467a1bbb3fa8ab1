package hgraph

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
)

// dumpFile is the on-disk JSON shape of a hypergraph dump. It is a
// convenience wire format for the CLI and tests, not part of the core
// algorithm's contract, which operates on the in-memory Hypergraph.
type dumpFile struct {
	Goal  string              `json:"goal"`
	Nodes map[string]dumpNode `json:"nodes"`
	Edges map[string]dumpEdge `json:"edges"`
	Rules map[string]dumpRule `json:"rules"`

	// Vocab optionally maps a decimal symbol id to its surface word, so a
	// dump is self-contained instead of requiring a side-channel
	// vocabulary file. See LoadFileWithVocab.
	Vocab map[string]string `json:"vocab,omitempty"`
}

type dumpNode struct {
	I     int      `json:"i"`
	J     int      `json:"j"`
	Edges []string `json:"edges"`
}

type dumpEdge struct {
	Antecedents []string `json:"antecedents"`
	Rule        string   `json:"rule"`
	SourcePath  string   `json:"source_path"`
	Cost        float64  `json:"cost"`
}

type dumpRule struct {
	LHS           int   `json:"lhs"`
	Source        []int `json:"source"`
	Target        []int `json:"target"`
	TargetNTIndex []int `json:"target_nt_index,omitempty"`
}

// LoadFile reads and parses a hypergraph dump from path.
func LoadFile(path string) (*Hypergraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("hgraph: read %s: %w", path, err)
	}
	return LoadBytes(data)
}

// LoadBytes parses a hypergraph dump already in memory.
func LoadBytes(data []byte) (*Hypergraph, error) {
	var df dumpFile
	if err := json.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("hgraph: parse dump: %w", err)
	}
	return buildHypergraph(df)
}

// LoadFileWithVocab reads and parses a hypergraph dump from path, also
// populating an InMemorySymbolTable from the dump's optional "vocab" field.
// This is the entry point the CLI uses: without it, a freshly constructed
// symbol table has no registered words and every yield prints as the
// decimal ids it was encoded with.
func LoadFileWithVocab(path string) (*Hypergraph, *InMemorySymbolTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("hgraph: read %s: %w", path, err)
	}
	return LoadBytesWithVocab(data)
}

// LoadBytesWithVocab is LoadBytes plus vocabulary population. A dump with no
// "vocab" field behaves exactly like LoadBytes, just with an empty table.
func LoadBytesWithVocab(data []byte) (*Hypergraph, *InMemorySymbolTable, error) {
	var df dumpFile
	if err := json.Unmarshal(data, &df); err != nil {
		return nil, nil, fmt.Errorf("hgraph: parse dump: %w", err)
	}
	hg, err := buildHypergraph(df)
	if err != nil {
		return nil, nil, err
	}

	symtab := NewInMemorySymbolTable()
	ids := make([]string, 0, len(df.Vocab))
	for idStr := range df.Vocab {
		ids = append(ids, idStr)
	}
	sort.Strings(ids)
	for _, idStr := range ids {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			return nil, nil, fmt.Errorf("hgraph: vocab entry %q is not a numeric id: %w", idStr, err)
		}
		symtab.AddWord(id, df.Vocab[idStr])
	}
	return hg, symtab, nil
}

func buildHypergraph(df dumpFile) (*Hypergraph, error) {
	// Deterministic build order, so diagnostics referencing node/edge
	// indices are stable across runs on the same file.
	nodeIDs := make([]string, 0, len(df.Nodes))
	for id := range df.Nodes {
		nodeIDs = append(nodeIDs, id)
	}
	sort.Strings(nodeIDs)

	nodes := make(map[string]*Node, len(df.Nodes))
	for _, id := range nodeIDs {
		dn := df.Nodes[id]
		nodes[id] = &Node{ID: id, I: dn.I, J: dn.J}
	}

	edges := make(map[string]*Hyperedge, len(df.Edges))
	edgeIDs := make([]string, 0, len(df.Edges))
	for id := range df.Edges {
		edgeIDs = append(edgeIDs, id)
	}
	sort.Strings(edgeIDs)

	for _, id := range edgeIDs {
		de := df.Edges[id]

		var rule *Rule
		if de.Rule != "" {
			dr, ok := df.Rules[de.Rule]
			if !ok {
				return nil, fmt.Errorf("hgraph: edge %q references unknown rule %q", id, de.Rule)
			}
			rule = &Rule{
				LHS:           dr.LHS,
				Source:        dr.Source,
				Target:        dr.Target,
				TargetNTIndex: dr.TargetNTIndex,
			}
		}

		ants := make([]*Node, 0, len(de.Antecedents))
		for _, aid := range de.Antecedents {
			an, ok := nodes[aid]
			if !ok {
				return nil, fmt.Errorf("hgraph: edge %q references unknown antecedent %q", id, aid)
			}
			ants = append(ants, an)
		}

		edges[id] = &Hyperedge{
			Antecedents:        ants,
			Rule:               rule,
			SourcePath:         de.SourcePath,
			BestDerivationCost: de.Cost,
		}
	}

	for _, id := range nodeIDs {
		dn := df.Nodes[id]
		n := nodes[id]
		for _, eid := range dn.Edges {
			e, ok := edges[eid]
			if !ok {
				return nil, fmt.Errorf("hgraph: node %q references unknown edge %q", id, eid)
			}
			n.Edges = append(n.Edges, e)
		}
	}

	hg := &Hypergraph{Nodes: nodes}
	if df.Goal != "" {
		goal, ok := nodes[df.Goal]
		if !ok {
			return nil, fmt.Errorf("hgraph: goal %q not found among nodes", df.Goal)
		}
		hg.Goal = goal
	}

	if err := hg.Validate(); err != nil {
		return nil, err
	}
	return hg, nil
}
