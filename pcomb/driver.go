package pcomb

import "iter"

// Parse runs p against input per spec.md §4.7: it allocates a fresh
// trampoline, seeds it with p at offset zero, and yields every distinct
// parse tree produced by a match that consumes the entire input, in
// discovery order. A match that leaves unconsumed input is not a result at
// all — it never reaches the accumulator.
//
// Consuming the sequence step-by-step drives the trampoline forward only as
// far as needed to produce the next result; abandoning iteration early (a
// for-range break) simply drops the trampoline, leaving any further work
// undone.
//
// If p was produced by a [Grammar] built with [WithLogger], the trampoline
// logs each push, memo hit/miss, and drained thunk to that logger.
func (p Parser) Parse(input string) iter.Seq[*Value] {
	return func(yield func(*Value) bool) {
		tr := NewTrampoline([]byte(input), p.node.logger)

		var (
			results []Result
			cursor  int
		)

		tr.Push(p, 0, func(r Result) {
			if int(r.Rest) == len(input) {
				results = append(results, r)
			}
		})

		for {
			for cursor < len(results) {
				v := results[cursor].Value
				cursor++

				if !yield(v) {
					return
				}
			}

			if !tr.HasNext() {
				return
			}

			tr.Step()
		}
	}
}
