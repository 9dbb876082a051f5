// Package grammarcfg decodes a declarative YAML grammar document into a
// [pcomb.Grammar]. It is the thin surface syntax spec.md places outside the
// core engine: nothing here touches pcomb's unexported internals, it only
// calls Grammar.Define, Grammar.Ref, and the public combinator
// constructors.
//
// A document is a name and an ordered list of rules; each rule is a term, a
// seq, an alt, a maybe, a many, or a many1. An item of a seq or alt list is
// either a nested mapping of the same shape or a bare string (resolved as a
// rule reference if it names a declared rule, otherwise as a terminal
// literal):
//
//	name: greeting
//	rules:
//	  - name: greeting
//	    alt:
//	      - seq: ["hello", " ", subject]
//	        tag: greet
//	      - term: "bye"
//	        tag: farewell
//	  - name: subject
//	    alt:
//	      - term: "world"
//	      - term: "friend"
package grammarcfg
