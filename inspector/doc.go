// Package inspector renders a live view of a [pcomb.Trampoline] as it
// drains: the pending call queue, the memo table, and the results
// discovered so far. It is a pure observability layer over pcomb's public
// Trampoline API (HasNext, Step, Snapshot) — it never influences
// scheduling, and the trampoline it drives is otherwise indistinguishable
// from one driven by [pcomb.Parser.Parse].
package inspector
