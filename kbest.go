// Package kbest extracts the k best weighted derivations from a hypergraph
// produced by a machine-translation decoder.
//
//	hg, _ := hgraph.LoadFile("forest.json")
//	ex := kbest.New(kbest.Options{AddCombinedScore: true}, nil, nil)
//	_ = ex.Extract(hg, 10, 0, cube.NewWriterConsumer(os.Stdout))
package kbest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/latticeforge/kbest/cube"
	"github.com/latticeforge/kbest/hgraph"
)

// Options is an alias of cube.Options, re-exported so callers of this
// package never need to import cube directly for the common case.
type Options = cube.Options

// Extractor is an alias of cube.Extractor.
type Extractor = cube.Extractor

// New constructs an Extractor. symtab defaults to a fresh
// hgraph.InMemorySymbolTable when nil; features may be nil.
func New(opts Options, symtab hgraph.SymbolTable, features []hgraph.FeatureFunction) *Extractor {
	if symtab == nil {
		symtab = hgraph.NewInMemorySymbolTable()
	}
	return cube.NewExtractor(opts, symtab, features)
}

// ExtractFile loads a hypergraph dump from path and writes up to n
// hypotheses to w, one per line, in rank order.
func ExtractFile(path string, n int, sentID int, opts Options, w io.Writer) error {
	hg, err := hgraph.LoadFile(path)
	if err != nil {
		return fmt.Errorf("kbest: %w", err)
	}
	ex := New(opts, nil, nil)
	if err := ex.Extract(hg, n, sentID, cube.NewWriterConsumer(w)); err != nil {
		return fmt.Errorf("kbest: %w", err)
	}
	return nil
}

// ConfigDir returns a per-user kbest directory, creating it if necessary:
// $XDG_CONFIG_HOME/kbest (or the platform equivalent via os.UserConfigDir).
// The CLI does not use it; weights and cache locations come from the
// --weights and --cache-dir flags.
func ConfigDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	dir := filepath.Join(base, "kbest")
	_ = os.MkdirAll(dir, 0o755)
	return dir
}
