package pcomb

import (
	"sync/atomic"

	"github.com/ardnew/gll/log"
)

// Position is an offset into the shared input buffer of one parse. Equality
// is by offset, not by character contents, so memoization keys stay cheap.
type Position int

// Result is the (value, remaining-input) pair every parser success
// produces.
type Result struct {
	Value *Value
	Rest  Position
}

// Continuation receives a Result exactly once per distinct result
// discovered for the (parser, position) key it was registered against.
type Continuation func(Result)

// Protocol is the shape every parser body implements: given a position, the
// trampoline mediating this parse, and a continuation, it either invokes
// the continuation directly (deterministic success) or enqueues work on the
// trampoline. It never invokes the continuation with a result obtained by
// bypassing the trampoline's memo table in a recursive call.
type Protocol func(pos Position, tr *Trampoline, k Continuation)

// nodeSeq assigns each parserNode a stable, process-wide identity used both
// as a memo-table key component and as a component of combinator
// structural-hash cache keys.
var nodeSeq atomic.Uint64

// parserNode is the canonical identity backing a Parser value. Combinator
// constructors are memoized so that structurally identical arguments (e.g.
// two calls to Term("a")) return a Parser wrapping the very same node,
// which is what lets the trampoline detect recursive re-entry.
type parserNode struct {
	id     uint64
	label  string
	fn     Protocol
	logger log.Logger
}

func newNode(label string, fn Protocol) *parserNode {
	return &parserNode{id: nodeSeq.Add(1), label: label, fn: fn}
}

// Parser is a memoized parser combinator handle: a callable
// (position, trampoline, continuation) -> () per the parser protocol.
// Parsers are immutable after construction and safely shared across
// parses.
type Parser struct {
	node *parserNode
}

// invoke routes to the underlying protocol function. Only [Trampoline.Push]
// calls this (the top-level driver goes through Push as well); every other
// reference must go through Push instead, to preserve memoization.
func (p Parser) invoke(pos Position, tr *Trampoline, k Continuation) {
	p.node.fn(pos, tr, k)
}

// String returns a debug label for the parser (its constructor and
// arguments), not part of the value tree.
func (p Parser) String() string {
	if p.node == nil {
		return "<nil-parser>"
	}

	return p.node.label
}
