package pcomb

import "github.com/ardnew/gll/log"

// nopLogger is used whenever a Grammar or Trampoline is constructed without
// an explicit logger; every call is silently discarded.
var nopLogger = log.Logger{}

// Option configures a [Grammar].
type Option func(*Grammar)

// WithLogger attaches a structured logger to a Grammar. Every symbol Ref'd
// or Define'd afterward carries this logger on its node, so the trampoline
// [Parser.Parse] allocates for that symbol logs at [log.LevelTrace] one line
// per push, memo hit/miss, and drained thunk. Logging never affects
// scheduling order or the discovered result set. Symbols touched before
// WithLogger's effect is applied (i.e. before NewGrammar returns) are not
// possible, since options run before Ref/Define can be called on g.
func WithLogger(logger log.Logger) Option {
	return func(g *Grammar) { g.logger = logger }
}
