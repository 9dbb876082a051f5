// Package pcomb implements a general context-free parser combinator engine.
//
// # Philosophy
//
// Parsers are values built once and reused across invocations. Every
// combinator constructor is memoized on its arguments, so calling
// Term("a") twice returns the same parser identity. That identity is the
// memo-table key a central trampoline uses to break direct and indirect
// left recursion: no (parser, position) pair is ever computed twice within
// one parse, and every continuation registered against a pair is fired
// exactly once per distinct result discovered for it.
//
// # Grammar
//
// Informal EBNF for the combinator surface itself:
//
//	Parser  → Term | Seq | Alt | Reduce | Epsilon | Maybe | Many | Many1 | Ref
//	Term    → literal string, optionally reduced
//	Seq     → ordered composition of Parsers, default tag "seq"
//	Alt     → first-match-wins-none, all alternatives explored breadth-first
//	Reduce  → replaces a value's tag with an opaque, engine-opaque action
//
// # Example
//
//	g := pcomb.NewGrammar()
//	num := pcomb.Term("1", pcomb.Tag("number"))
//	expr := g.Define("expr", func(g *pcomb.Grammar) pcomb.Parser {
//		return pcomb.Alt(
//			pcomb.Seq(pcomb.Action{}, g.Ref("expr"), pcomb.Term("+"), g.Ref("expr")),
//			num,
//		)
//	})
//	for v := range expr.Parse("1+1") {
//		fmt.Println(v)
//	}
//
// # Non-goals
//
// No error recovery or diagnostic location tracking. No left-factoring,
// grammar normalization, or static analysis. No incremental re-parsing.
// No Unicode-segmentation-aware matching beyond byte prefix equality.
package pcomb
