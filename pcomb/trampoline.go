package pcomb

import (
	"log/slog"

	"github.com/ardnew/gll/log"
)

// Trampoline is the worklist scheduler that mediates every recursive
// parser invocation. It owns a FIFO call queue of pending thunks and the
// memo table keyed by (parser, position). One Trampoline is created per
// top-level parse and lives until the returned lazy result stream is fully
// consumed or dropped.
type Trampoline struct {
	input  []byte
	queue  []func()
	memo   map[memoKey]*memoEntry
	logger log.Logger
}

// NewTrampoline creates a fresh trampoline over input, with an empty call
// queue and memo table. Most callers should use (Parser).Parse instead of
// constructing a Trampoline directly.
func NewTrampoline(input []byte, logger log.Logger) *Trampoline {
	return &Trampoline{
		input:  input,
		memo:   make(map[memoKey]*memoEntry),
		logger: logger,
	}
}

// HasNext reports whether the call queue is non-empty.
func (t *Trampoline) HasNext() bool { return len(t.queue) > 0 }

// Step pops one thunk from the call queue (FIFO: from the head) and
// executes it. It is a no-op when the queue is empty.
func (t *Trampoline) Step() {
	if len(t.queue) == 0 {
		return
	}

	fn := t.queue[0]
	t.queue = t.queue[1:]

	t.logger.Trace("thunk drained", slog.Int("queued", len(t.queue)))

	fn()
}

// PushStack appends a raw thunk to the tail of the call queue.
func (t *Trampoline) PushStack(fn func()) {
	t.queue = append(t.queue, fn)
}

// Push is the memoizing invocation primitive. It locates or creates the
// memo entry for (p, pos); if newly created, it registers k as the sole
// initial continuation and enqueues a single thunk that invokes the parser
// body, whose result-observing inner continuation deduplicates and fans
// out to every continuation registered so far (and every one registered
// later). If the entry already existed, k is appended to it and immediately
// replayed against every result already discovered.
//
// This dual dispatch is the sole mechanism by which cycles — direct or
// indirect left recursion — terminate: a recursive re-entry into the same
// (parser, position) never re-invokes the parser, it only subscribes for
// results, of which there are finitely many.
func (t *Trampoline) Push(p Parser, pos Position, k Continuation) {
	key := memoKey{node: p.node, pos: pos}

	entry, exists := t.memo[key]
	if !exists {
		entry = &memoEntry{continuations: []Continuation{k}}
		t.memo[key] = entry

		t.logger.Trace("memo miss",
			slog.String("parser", p.String()),
			slog.Int("position", int(pos)),
		)

		t.PushStack(func() {
			p.invoke(pos, t, func(r Result) {
				t.deliver(key, entry, r)
			})
		})

		return
	}

	t.logger.Trace("memo hit",
		slog.String("parser", p.String()),
		slog.Int("position", int(pos)),
		slog.Int("known_results", len(entry.results)),
	)

	entry.continuations = append(entry.continuations, k)

	for _, r := range entry.results {
		result := r

		t.PushStack(func() { k(result) })
	}
}

// deliver is the inner continuation installed by Push for a freshly created
// entry: it records r if it is new, then fans it out to every continuation
// currently registered against the entry (including ones registered after
// this call, via Push's replay branch above).
func (t *Trampoline) deliver(key memoKey, entry *memoEntry, r Result) {
	if entry.hasResult(r) {
		return
	}

	entry.results = append(entry.results, r)

	t.logger.Trace("result discovered",
		slog.String("parser", key.node.label),
		slog.Int("position", int(key.pos)),
		slog.Int("remaining", int(r.Rest)),
	)

	for _, c := range entry.continuations {
		cont := c
		result := r

		t.PushStack(func() { cont(result) })
	}
}

// Snapshot describes the trampoline's current state, for observability
// tools such as the inspector TUI. It is a point-in-time copy; mutating it
// has no effect on the trampoline.
type Snapshot struct {
	QueueLen   int
	MemoRows   []MemoRow
	ResultRows int
}

// MemoRow describes one populated (parser, position) memo entry.
type MemoRow struct {
	Parser        string
	Position      int
	ResultCount   int
	Continuations int
}

// Snapshot captures the trampoline's queue length and memo table shape.
// ResultRows is the sum of each memo entry's discovered-result count, i.e.
// the total number of distinct (sub)parse results found anywhere in the
// table so far, not just those reachable from the root.
func (t *Trampoline) Snapshot() Snapshot {
	rows := make([]MemoRow, 0, len(t.memo))
	resultRows := 0

	for key, entry := range t.memo {
		rows = append(rows, MemoRow{
			Parser:        key.node.label,
			Position:      int(key.pos),
			ResultCount:   len(entry.results),
			Continuations: len(entry.continuations),
		})
		resultRows += len(entry.results)
	}

	return Snapshot{QueueLen: len(t.queue), MemoRows: rows, ResultRows: resultRows}
}

// Results returns the results discovered so far for the (p, pos) memo
// entry — most commonly the root parser at position 0, the entry an
// observability tool cares about. It returns nil if that entry has not been
// pushed yet. The returned slice is a copy; mutating it has no effect on
// the trampoline.
func (t *Trampoline) Results(p Parser, pos Position) []Result {
	entry, ok := t.memo[memoKey{node: p.node, pos: pos}]
	if !ok {
		return nil
	}

	out := make([]Result, len(entry.results))
	copy(out, entry.results)

	return out
}
