package pcomb

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/zeebo/xxh3"
)

// canon is a canonicalizing cache from a structural hash of a combinator's
// constructor name and arguments to the parserNode built for that exact
// combination. It is what lets, e.g., two calls to Term("a") return Parsers
// that share identity, which the trampoline's memo table depends on to
// collapse recursive re-entry into a single computation.
//
// This mirrors the teacher's own pattern of hashing structural content with
// xxh3 to key a sync.Map cache, generalized from source text to combinator
// shape.
var canon sync.Map // map[uint64]*parserNode

// internNode returns the cached node for key, building it with build and
// storing it if this is the first time key has been seen.
func internNode(key uint64, build func() *parserNode) *parserNode {
	if v, ok := canon.Load(key); ok {
		return v.(*parserNode)
	}

	node := build()

	actual, _ := canon.LoadOrStore(key, node)

	return actual.(*parserNode)
}

// hashKey combines a constructor tag with a canonical encoding of its
// arguments into a single xxh3 hash, used as the interning key.
func hashKey(ctor string, parts ...string) uint64 {
	var b strings.Builder

	b.WriteString(ctor)

	for _, p := range parts {
		b.WriteByte(0)
		b.WriteString(p)
	}

	return xxh3.HashString(b.String())
}

// nodeRef renders a parserNode's identity into the flat encoding hashKey
// expects, so that combinators-of-combinators (Seq of Alts, and so on) hash
// their structure rather than their memory addresses.
func nodeRef(n *parserNode) string {
	return strconv.FormatUint(n.id, 36)
}

// Term matches a literal string exactly. On success it produces a KindLeaf
// value holding the matched text, optionally reduced by action.
func Term(literal string, action ...Action) Parser {
	act := Action{}
	if len(action) > 0 {
		act = action[0]
	}

	key := hashKey("term", literal, act.String())

	node := internNode(key, func() *parserNode {
		label := fmt.Sprintf("Term(%q)", literal)

		return newNode(label, func(pos Position, tr *Trampoline, k Continuation) {
			end := int(pos) + len(literal)
			if end > len(tr.input) || string(tr.input[pos:end]) != literal {
				return
			}

			leaf := &Value{Kind: KindLeaf, Leaf: literal}

			k(Result{Value: leaf, Rest: Position(end)})
		})
	})

	p := Parser{node}
	if !act.IsZero() {
		return Reduce(p, act)
	}

	return p
}

// Epsilon matches the empty string at any position, always succeeding
// exactly once with the empty value and no input consumed.
var Epsilon = func() Parser {
	node := newNode("Epsilon", func(pos Position, tr *Trampoline, k Continuation) {
		k(Result{Value: emptyValue, Rest: pos})
	})

	return Parser{node}
}()

// Seq matches each parser in ps in order, threading the position of one
// result into the start of the next. Its value is a KindSeq node whose
// children are the sub-results in order, tagged action (or [SeqTag] if
// action is the zero value).
func Seq(action Action, ps ...Parser) Parser {
	if len(ps) == 0 {
		return Epsilon
	}

	parts := make([]string, 0, len(ps)+1)
	parts = append(parts, action.String())

	for _, p := range ps {
		parts = append(parts, nodeRef(p.node))
	}

	key := hashKey("seq", parts...)

	node := internNode(key, func() *parserNode {
		label := seqLabel("Seq", ps)
		tag := action
		if tag.IsZero() {
			tag = SeqTag
		}

		return newNode(label, func(pos Position, tr *Trampoline, k Continuation) {
			seqStep(ps, 0, pos, tr, nil, tag, k)
		})
	})

	return Parser{node}
}

// seqStep threads the sequence of parsers ps, accumulating child results,
// and invokes k with the combined KindSeq value once every element has
// matched. Each step routes through tr.Push, never a direct invoke, so
// every sub-match participates in memoization.
func seqStep(
	ps []Parser,
	i int,
	pos Position,
	tr *Trampoline,
	acc []*Value,
	tag Action,
	k Continuation,
) {
	if i == len(ps) {
		k(Result{Value: &Value{Kind: KindSeq, Tag: tag, Children: acc}, Rest: pos})

		return
	}

	tr.Push(ps[i], pos, func(r Result) {
		next := make([]*Value, len(acc)+1)
		copy(next, acc)
		next[len(acc)] = r.Value

		seqStep(ps, i+1, r.Rest, tr, next, tag, k)
	})
}

// Alt matches whichever of ps succeed at the current position, producing
// every alternative's result. It is the source of ambiguity in a grammar:
// a caller sees one result per successful alternative, in the order each
// alternative happens to resolve, not necessarily the order given.
func Alt(ps ...Parser) Parser {
	return AltReduce(Action{}, ps...)
}

// AltReduce is [Alt] followed by [Reduce] with action applied to each
// alternative's result independently. It exists as a single combinator
// (rather than composing Alt and Reduce) so both are subject to the same
// interning key, keeping the identity of an alternation whose branches are
// individually reduced stable across constructions.
func AltReduce(action Action, ps ...Parser) Parser {
	if len(ps) == 0 {
		return newFailure()
	}

	parts := make([]string, 0, len(ps)+1)
	parts = append(parts, action.String())

	for _, p := range ps {
		parts = append(parts, nodeRef(p.node))
	}

	key := hashKey("alt", parts...)

	node := internNode(key, func() *parserNode {
		label := seqLabel("Alt", ps)

		return newNode(label, func(pos Position, tr *Trampoline, k Continuation) {
			for _, p := range ps {
				branch := p
				if !action.IsZero() {
					branch = Reduce(branch, action)
				}

				tr.Push(branch, pos, k)
			}
		})
	})

	return Parser{node}
}

// newFailure returns a parser that never succeeds, the identity element for
// an empty alternation.
func newFailure() Parser {
	key := hashKey("fail")

	node := internNode(key, func() *parserNode {
		return newNode("Fail", func(Position, *Trampoline, Continuation) {})
	})

	return Parser{node}
}

// Reduce wraps p's result with a semantic action tag. A zero action is the
// identity: Reduce(p, Action{}) returns p unchanged (same identity, not a
// wrapping node).
//
// The resulting value depends on p's own result per the parser's data
// model: an empty result becomes a reduced node with no children; a KindSeq result
// tagged [SeqTag] has its tag replaced by action, keeping the same
// children; any other result (including an already-reduced one) is wrapped
// as the sole child of a new KindReduced node.
func Reduce(p Parser, action Action) Parser {
	if action.IsZero() {
		return p
	}

	key := hashKey("reduce", nodeRef(p.node), action.String())

	node := internNode(key, func() *parserNode {
		label := fmt.Sprintf("Reduce(%s, %s)", p, action)

		return newNode(label, func(pos Position, tr *Trampoline, k Continuation) {
			tr.Push(p, pos, func(r Result) {
				k(Result{Value: reduceValue(r.Value, action), Rest: r.Rest})
			})
		})
	})

	return Parser{node}
}

func reduceValue(v *Value, action Action) *Value {
	switch {
	case v.Kind == KindEmpty:
		return &Value{Kind: KindReduced, Tag: action, Children: nil}
	case v.Kind == KindSeq && v.Tag == SeqTag:
		return &Value{Kind: KindReduced, Tag: action, Children: v.Children}
	default:
		return &Value{Kind: KindReduced, Tag: action, Children: []*Value{v}}
	}
}

// Maybe matches p zero or one times, always succeeding: once with p's
// result if it matches, and once with the empty value regardless.
func Maybe(p Parser) Parser {
	key := hashKey("maybe", nodeRef(p.node))

	node := internNode(key, func() *parserNode {
		label := fmt.Sprintf("Maybe(%s)", p)

		return newNode(label, func(pos Position, tr *Trampoline, k Continuation) {
			tr.Push(p, pos, k)
			k(Result{Value: emptyValue, Rest: pos})
		})
	})

	return Parser{node}
}

// Many matches p zero or more times, greedily and ambiguously: it produces
// one KindSeq result (tagged [SeqTag]) for every distinct repetition count
// p supports at this position, from zero up to however many the underlying
// grammar allows.
func Many(p Parser) Parser {
	key := hashKey("many", nodeRef(p.node))

	node := internNode(key, func() *parserNode {
		label := fmt.Sprintf("Many(%s)", p)

		var self Parser

		self = Parser{newNode(label, func(pos Position, tr *Trampoline, k Continuation) {
			k(Result{Value: &Value{Kind: KindSeq, Tag: SeqTag}, Rest: pos})

			tr.Push(p, pos, func(head Result) {
				tr.Push(self, head.Rest, func(tail Result) {
					children := append([]*Value{head.Value}, tail.Value.Children...)

					k(Result{
						Value: &Value{Kind: KindSeq, Tag: SeqTag, Children: children},
						Rest:  tail.Rest,
					})
				})
			})
		})}

		return self.node
	})

	return Parser{node}
}

// Many1 matches p one or more times: identical to [Many] except it never
// produces the zero-repetition result.
func Many1(p Parser) Parser {
	key := hashKey("many1", nodeRef(p.node))

	node := internNode(key, func() *parserNode {
		label := fmt.Sprintf("Many1(%s)", p)
		many := Many(p)

		return newNode(label, func(pos Position, tr *Trampoline, k Continuation) {
			tr.Push(p, pos, func(head Result) {
				tr.Push(many, head.Rest, func(tail Result) {
					children := append([]*Value{head.Value}, tail.Value.Children...)

					k(Result{
						Value: &Value{Kind: KindSeq, Tag: SeqTag, Children: children},
						Rest:  tail.Rest,
					})
				})
			})
		})
	})

	return Parser{node}
}

// seqLabel renders a debug label for a variadic combinator.
func seqLabel(ctor string, ps []Parser) string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.String()
	}

	return fmt.Sprintf("%s(%s)", ctor, strings.Join(names, ", "))
}
