package hgraph

import "strconv"

// SymbolTable is the vocabulary collaborator the serializer consumes to turn
// numeric symbol ids back into surface words. A real decoder supplies its
// own, built during grammar loading; it must be stable (no mutation) for the
// duration of an extraction.
type SymbolTable interface {
	WordOf(id int) string
	IsNonterminal(id int) bool
	TargetNonterminalIndex(id int) int
	AddNonterminal(name string) int
}

// InMemorySymbolTable is a minimal, concrete SymbolTable: a convenience for
// the CLI and tests, not a production vocabulary. It tracks words and
// nonterminals in two parallel bidirectional maps.
type InMemorySymbolTable struct {
	words        map[int]string
	wordsInv     map[string]int
	nonterminals map[int]bool
	ntIndex      map[int]int
	nextNTIndex  int
}

// NewInMemorySymbolTable creates an empty symbol table.
func NewInMemorySymbolTable() *InMemorySymbolTable {
	return &InMemorySymbolTable{
		words:        make(map[int]string),
		wordsInv:     make(map[string]int),
		nonterminals: make(map[int]bool),
		ntIndex:      make(map[int]int),
	}
}

// AddWord registers a surface word under id, returning id for chaining.
func (t *InMemorySymbolTable) AddWord(id int, word string) int {
	t.words[id] = word
	t.wordsInv[word] = id
	return id
}

// WordOf returns the surface word for id, or its decimal string if unknown.
func (t *InMemorySymbolTable) WordOf(id int) string {
	if w, ok := t.words[id]; ok {
		return w
	}
	return strconv.Itoa(id)
}

// IsNonterminal reports whether id was registered via AddNonterminal.
func (t *InMemorySymbolTable) IsNonterminal(id int) bool {
	return t.nonterminals[id]
}

// TargetNonterminalIndex returns the bilingual target-nonterminal index
// assigned to id when it was added via AddNonterminal.
func (t *InMemorySymbolTable) TargetNonterminalIndex(id int) int {
	return t.ntIndex[id]
}

// AddNonterminal registers a nonterminal symbol, assigning it the next
// target-nonterminal index, and returns its id. The id space for
// nonterminals is disjoint from AddWord's by convention of the caller (a
// real grammar loader keeps its own counters). A name already registered
// keeps its id; otherwise this convenience table derives the id from its
// current size, len(words)+len(nonterminals), which is 0 on an empty table
// and grows by two per new nonterminal. The derived id is not checked
// against ids already registered with AddWord.
func (t *InMemorySymbolTable) AddNonterminal(name string) int {
	id := len(t.words) + len(t.nonterminals)
	if existing, ok := t.wordsInv[name]; ok {
		id = existing
	}
	t.words[id] = name
	t.wordsInv[name] = id
	t.nonterminals[id] = true
	t.ntIndex[id] = t.nextNTIndex
	t.nextNTIndex++
	return id
}
