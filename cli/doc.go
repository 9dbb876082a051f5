// Package cli implements the gll command-line interface: parsing input
// against a grammar (built-in example or YAML file) and launching the
// trampoline inspector. It is a thin kong-based dispatcher over pcomb,
// grammarcfg, examples, and inspector; nothing here is importable engine
// surface.
package cli
