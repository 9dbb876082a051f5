package pcomb

import (
	"fmt"
	"sync"

	"github.com/ardnew/gll/log"
)

// Grammar is a named collection of parsers supporting forward and
// recursive references between them. Symbols are registered with Define;
// Ref resolves a name to a stable Parser handle regardless of whether the
// definition has been given yet, which is what makes self- and
// mutually-recursive grammars constructible without any special syntax.
type Grammar struct {
	mu     sync.Mutex
	name   map[string]*parserNode
	logger log.Logger
}

// NewGrammar creates an empty grammar. Symbols are added with Define.
func NewGrammar(opts ...Option) *Grammar {
	g := &Grammar{
		name:   make(map[string]*parserNode),
		logger: nopLogger,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Ref returns the parser bound to name, creating a forward-reference cell
// for it if name has not been touched (by either Ref or Define) yet. The
// returned Parser's identity never changes once created, even if Define
// for name is called afterward: Define binds the same underlying node
// rather than replacing it, so parsers already holding a reference to it
// observe the eventual definition.
func (g *Grammar) Ref(name string) Parser {
	g.mu.Lock()
	defer g.mu.Unlock()

	if node, ok := g.name[name]; ok {
		return Parser{node}
	}

	cell := &refCell{}
	node := newNode(name, cell.invoke)
	node.logger = g.logger
	cellRegistry.Store(node, cell)
	g.name[name] = node

	return Parser{node}
}

// Define builds and binds the parser for name. build receives the grammar
// itself, so it may call g.Ref to refer to itself or to symbols not yet
// defined. Calling Define twice for the same name is a construction-time
// bug and panics; forward-referencing a name via Ref before Define is
// called for it is the normal, expected case and never panics.
func (g *Grammar) Define(name string, build func(g *Grammar) Parser) Parser {
	g.mu.Lock()

	node, exists := g.name[name]
	if exists {
		if cell, ok := nodeCell(node); !ok || cell.bound {
			g.mu.Unlock()

			panic(fmt.Sprintf("pcomb: grammar symbol %q already defined", name))
		}
	} else {
		cell := &refCell{}
		node = newNode(name, cell.invoke)
		node.logger = g.logger
		cellRegistry.Store(node, cell)
		g.name[name] = node
	}

	g.mu.Unlock()

	// build runs outside the lock: it may itself call g.Ref/g.Define for
	// other symbols, including recursively calling Ref(name) to close a
	// self-reference against the cell reserved above.
	built := build(g)

	cell, _ := nodeCell(node)
	cell.bind(built)

	return Parser{node}
}

// refCell backs a forward-declared symbol: before Define binds it, invoking
// it produces no results (an unresolved reference reached during an actual
// parse simply contributes nothing, propagating as ordinary parse
// failure); after binding, it delegates through the trampoline so the
// bound parser still participates in memoization under its own identity.
type refCell struct {
	mu    sync.RWMutex
	bound bool
	to    Parser
}

func (c *refCell) bind(to Parser) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.bound = true
	c.to = to
}

func (c *refCell) invoke(pos Position, tr *Trampoline, k Continuation) {
	c.mu.RLock()
	bound, to := c.bound, c.to
	c.mu.RUnlock()

	if !bound {
		return
	}

	tr.Push(to, pos, k)
}

// cellRegistry associates a parserNode built by Ref with its backing
// refCell, since parserNode itself only stores a Protocol closure.
var cellRegistry sync.Map // map[*parserNode]*refCell

func nodeCell(n *parserNode) (*refCell, bool) {
	v, ok := cellRegistry.Load(n)
	if !ok {
		return nil, false
	}

	return v.(*refCell), true
}
