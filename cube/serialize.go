package cube

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/latticeforge/kbest/hgraph"
)

// buildNumeric walks a derivation recursively and returns a flat,
// space-separated token stream in which every symbol is still the raw
// integer id from the grammar — tree brackets and alignment spans are
// embedded directly in the stream, but no id has been resolved to its
// surface word yet. resolve does that in a second pass below.
//
// An axiom (a rule application with no antecedents) inlines its target or
// source symbols directly, without its own "(<LHS> ...)" wrapper, even in
// tree mode: per the glossary an axiom "contributes a terminal directly",
// so wrapping it would introduce a spurious unary bracket around every
// preterminal.
func (ex *Extractor) buildNumeric(d *DerivationState, opts Options) (string, error) {
	if d.Edge.Rule == nil {
		return ex.buildNumericGoalEdge(d, opts)
	}
	return ex.buildNumericNormalEdge(d, opts)
}

func (ex *Extractor) buildNumericGoalEdge(d *DerivationState, opts Options) (string, error) {
	var b strings.Builder
	if opts.ExtractTree {
		b.WriteByte('(')
		b.WriteString(strconv.Itoa(ex.rootID))
		if opts.IncludeAlignment {
			fmt.Fprintf(&b, "{%d-%d}", d.Parent.I, d.Parent.J)
		}
		b.WriteByte(' ')
	}
	for i := range d.Edge.Antecedents {
		if i > 0 {
			b.WriteByte(' ')
		}
		child, err := ex.childDerivation(d.Edge, i, rankAt(d, i))
		if err != nil {
			return "", err
		}
		sub, err := ex.buildNumeric(child, opts)
		if err != nil {
			return "", err
		}
		b.WriteString(sub)
	}
	if opts.ExtractTree {
		b.WriteByte(')')
	}
	return b.String(), nil
}

func (ex *Extractor) buildNumericNormalEdge(d *DerivationState, opts Options) (string, error) {
	rule := d.Edge.Rule
	symbols := rule.Target
	if opts.Monolingual {
		symbols = rule.Source
	}

	wrap := opts.ExtractTree && d.Edge.NumAntecedents() > 0

	var b strings.Builder
	if wrap {
		b.WriteByte('(')
		b.WriteString(strconv.Itoa(rule.LHS))
		if opts.IncludeAlignment {
			fmt.Fprintf(&b, "{%d-%d}", d.Parent.I, d.Parent.J)
		}
		b.WriteByte(' ')
	}

	ntSeen := 0
	for i, sym := range symbols {
		if i > 0 {
			b.WriteByte(' ')
		}
		pos, isNT := hgraph.IsNonterminal(sym)
		if !isNT {
			b.WriteString(strconv.Itoa(sym))
			continue
		}

		antIdx := pos
		if opts.Monolingual {
			antIdx = ntSeen
		} else if rule.TargetNTIndex != nil && ntSeen < len(rule.TargetNTIndex) {
			antIdx = rule.TargetNTIndex[ntSeen]
		}
		ntSeen++

		if antIdx < 0 || antIdx >= len(d.Edge.Antecedents) {
			return "", &HypergraphCorruptError{
				NodeID: d.Parent.ID,
				Detail: fmt.Sprintf("nonterminal position %d out of range for %d antecedents", antIdx, len(d.Edge.Antecedents)),
			}
		}
		child, err := ex.childDerivation(d.Edge, antIdx, rankAt(d, antIdx))
		if err != nil {
			return "", err
		}
		sub, err := ex.buildNumeric(child, opts)
		if err != nil {
			return "", err
		}
		b.WriteString(sub)
	}

	if wrap {
		b.WriteByte(')')
	}
	return b.String(), nil
}

func rankAt(d *DerivationState, i int) int {
	if i < len(d.Ranks) {
		return d.Ranks[i]
	}
	return 1
}

// resolve performs the top-level token-resolution pass: split the
// numeric stream on whitespace, and for each token, map its embedded
// integer through the symbol table while preserving any leading "(" or
// trailing ")" characters verbatim.
func (ex *Extractor) resolve(numeric string) string {
	if numeric == "" {
		return ""
	}
	tokens := strings.Split(numeric, " ")
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = ex.resolveToken(tok)
	}
	return strings.Join(out, " ")
}

func (ex *Extractor) resolveToken(tok string) string {
	switch {
	case strings.HasPrefix(tok, "("):
		rest := tok[1:]
		numPart, suffix := rest, ""
		if idx := strings.IndexByte(rest, '{'); idx >= 0 {
			numPart, suffix = rest[:idx], rest[idx:]
		}
		id, err := strconv.Atoi(numPart)
		if err != nil {
			return tok
		}
		return "(" + ex.symtab.WordOf(id) + suffix

	case strings.HasSuffix(tok, ")"):
		idx := strings.IndexByte(tok, ')')
		numPart, rest := tok[:idx], tok[idx:]
		id, err := strconv.Atoi(numPart)
		if err != nil {
			return tok
		}
		return ex.symtab.WordOf(id) + rest

	default:
		id, err := strconv.Atoi(tok)
		if err != nil {
			return tok
		}
		return ex.symtab.WordOf(id)
	}
}

// flatYield produces the surface string used for unique-nbest
// deduplication: always flat, never annotated with alignment, regardless of the
// extractor's configured tree/alignment options.
func (ex *Extractor) flatYield(d *DerivationState) (string, error) {
	flat := ex.opts
	flat.ExtractTree = false
	flat.IncludeAlignment = false
	numeric, err := ex.buildNumeric(d, flat)
	if err != nil {
		return "", err
	}
	return ex.resolve(numeric), nil
}

// Format produces the final output line for a derivation: an optional
// sentence id, the resolved yield, an optional
// per-feature score block, and an optional combined score.
func (ex *Extractor) Format(d *DerivationState, sentID int) (string, error) {
	numeric, err := ex.buildNumeric(d, ex.opts)
	if err != nil {
		return "", err
	}
	yield := ex.resolve(numeric)

	var b strings.Builder
	if sentID >= 0 {
		b.WriteString(strconv.Itoa(sentID))
		b.WriteString(" ||| ")
	}
	b.WriteString(yield)

	if len(ex.features) > 0 {
		costs, err := ex.reconstructCosts(d, sentID)
		if err != nil {
			return "", err
		}
		if ex.opts.SanityCheck {
			if err := ex.sanityCheck(d, costs); err != nil {
				return "", err
			}
		}
		b.WriteString(" |||")
		for _, c := range costs {
			fmt.Fprintf(&b, " %.3f", -c)
		}
	}

	if ex.opts.AddCombinedScore {
		fmt.Fprintf(&b, " ||| %.3f", -d.Cost)
	}

	return b.String(), nil
}
