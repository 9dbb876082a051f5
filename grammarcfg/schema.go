package grammarcfg

import "github.com/ardnew/gll/pcomb"

// document is the raw shape of a grammar YAML file.
type document struct {
	Name  string `yaml:"name"`
	Rules []rule `yaml:"rules"`
}

// rule is one named production. Exactly one of Term, Seq, Alt, Maybe, Many,
// Many1 should be set; a rule with none of them defined is a stub that
// yields no results (see resolveRule), matching pcomb's own
// unresolved-reference semantics.
type rule struct {
	Name  string `yaml:"name"`
	Term  string `yaml:"term,omitempty"`
	Seq   []any  `yaml:"seq,omitempty"`
	Alt   []any  `yaml:"alt,omitempty"`
	Tag   string `yaml:"tag,omitempty"`
	Maybe any    `yaml:"maybe,omitempty"`
	Many  any    `yaml:"many,omitempty"`
	Many1 any    `yaml:"many1,omitempty"`
}

// tagAction converts a non-empty YAML tag string into a pcomb.Action,
// returning the zero Action for an empty tag (reduce-identity).
func tagAction(tag string) pcomb.Action {
	if tag == "" {
		return pcomb.Action{}
	}

	return pcomb.Tag(tag)
}
