package grammarcfg

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/gll/pcomb"
)

// Load decodes a grammar document from r and builds the corresponding
// [pcomb.Grammar], defining every rule in declaration order, and returns
// the entry-point [pcomb.Parser] bound to the document's own top-level
// name (which must match one of its declared rules). Declaration order
// does not affect which strings the grammar accepts (forward references
// resolve lazily, per pcomb's own Ref/Define contract) but does affect alt
// tie-breaking within a rule that itself contains no explicit alt ordering
// hint.
func Load(r io.Reader) (*pcomb.Grammar, pcomb.Parser, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, pcomb.Parser{}, pcomb.WrapError(err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, pcomb.Parser{}, pcomb.WrapError(err)
	}

	if len(doc.Rules) == 0 {
		return nil, pcomb.Parser{}, pcomb.ErrEmptyGrammar
	}

	names := make(map[string]bool, len(doc.Rules))
	for _, r := range doc.Rules {
		names[r.Name] = true
	}

	if !names[doc.Name] {
		return nil, pcomb.Parser{}, pcomb.ErrUnknownSymbol.With(slog.String("name", doc.Name))
	}

	g := pcomb.NewGrammar()

	for _, r := range doc.Rules {
		rule := r

		g.Define(rule.Name, func(g *pcomb.Grammar) pcomb.Parser {
			return resolveRule(g, names, rule)
		})
	}

	return g, g.Ref(doc.Name), nil
}

// LoadFile opens path and delegates to Load.
func LoadFile(path string) (*pcomb.Grammar, pcomb.Parser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pcomb.Parser{}, pcomb.WrapError(err)
	}
	defer f.Close()

	return Load(f)
}

// resolveRule builds the parser for one named rule body.
func resolveRule(g *pcomb.Grammar, names map[string]bool, r rule) pcomb.Parser {
	switch {
	case r.Term != "":
		return pcomb.Term(r.Term, tagAction(r.Tag))

	case len(r.Seq) > 0:
		items := make([]pcomb.Parser, len(r.Seq))
		for i, it := range r.Seq {
			items[i] = resolveNode(g, names, it)
		}

		return pcomb.Seq(tagAction(r.Tag), items...)

	case len(r.Alt) > 0:
		items := make([]pcomb.Parser, len(r.Alt))
		for i, it := range r.Alt {
			items[i] = resolveNode(g, names, it)
		}

		return pcomb.AltReduce(tagAction(r.Tag), items...)

	case r.Maybe != nil:
		return pcomb.Maybe(resolveNode(g, names, r.Maybe))

	case r.Many != nil:
		return pcomb.Many(resolveNode(g, names, r.Many))

	case r.Many1 != nil:
		return pcomb.Many1(resolveNode(g, names, r.Many1))

	default:
		// A rule with no body is a stub: an unresolved reference reached
		// during parsing simply contributes no results.
		return g.Ref(r.Name)
	}
}

// resolveNode interprets one YAML value as a parser: a bare string is a
// rule reference if it names a declared rule, otherwise a terminal
// literal; a mapping is an anonymous, unnamed rule body decoded the same
// way as a top-level rule.
func resolveNode(g *pcomb.Grammar, names map[string]bool, v any) pcomb.Parser {
	switch n := v.(type) {
	case string:
		if names[n] {
			return g.Ref(n)
		}

		return pcomb.Term(n)

	case map[string]any:
		return resolveRule(g, names, decodeAnonymous(n))

	default:
		panic(fmt.Sprintf("grammarcfg: unsupported grammar node %#v", v))
	}
}

// decodeAnonymous re-marshals a generic map back through the rule schema,
// reusing the same struct tags Load itself decodes with, so a nested
// mapping in a seq/alt list is interpreted identically to a top-level rule
// body.
func decodeAnonymous(m map[string]any) rule {
	data, err := yaml.Marshal(m)
	if err != nil {
		panic(fmt.Sprintf("grammarcfg: re-encoding nested rule: %v", err))
	}

	var r rule
	if err := yaml.Unmarshal(data, &r); err != nil {
		panic(fmt.Sprintf("grammarcfg: decoding nested rule: %v", err))
	}

	return r
}
