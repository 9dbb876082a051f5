package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/gll/examples"
	"github.com/ardnew/gll/grammarcfg"
	"github.com/ardnew/gll/inspector"
	"github.com/ardnew/gll/log"
	"github.com/ardnew/gll/pcomb"
)

// builtin maps a grammar name to its constructor, for `--grammar` values
// that don't name a YAML file on disk.
var builtin = map[string]func() pcomb.Parser{
	"arithmetic":         examples.Arithmetic,
	"right-recursive":    examples.RightRecursive,
	"left-recursive":     examples.LeftRecursive,
	"indirect-recursive": examples.IndirectLeftRecursive,
	"exponential":        examples.ExponentialAmbiguity,
	"degenerate":         examples.Degenerate,
	"natural-language":   examples.NaturalLanguage,
}

// resolveGrammar looks up name as a built-in scenario first, then falls
// back to loading it as a YAML grammar file.
func resolveGrammar(name string) (pcomb.Parser, error) {
	if ctor, ok := builtin[name]; ok {
		return ctor(), nil
	}

	_, entry, err := grammarcfg.LoadFile(name)
	if err != nil {
		return pcomb.Parser{}, pcomb.WrapError(err).With(slog.String("grammar", name))
	}

	return entry, nil
}

func loggerFromContext(ctx context.Context) log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(log.Logger); ok {
		return l
	}

	return log.Default()
}

// ParseCmd parses --input against a named built-in grammar or a YAML
// grammar file, printing either the first result or the full result stream.
type ParseCmd struct {
	Grammar string `default:"arithmetic" help:"Built-in grammar name or path to a YAML grammar file." short:"g"`
	Input   string `help:"Input text to parse."                                                        required:""`
	All     bool   `help:"Print every result instead of only the first."`
}

// Run executes the parse command.
func (c *ParseCmd) Run(ctx context.Context, cli *CLI) error {
	p, err := resolveGrammar(c.Grammar)
	if err != nil {
		log.ErrorContext(ctx, "resolve grammar failed", slog.String("grammar", c.Grammar), slog.Any("error", err))

		return err
	}

	logger := loggerFromContext(ctx)

	count := 0

	for v := range p.Parse(c.Input) {
		count++

		fmt.Println(v.String())

		if !c.All {
			break
		}
	}

	if count == 0 {
		logger.Warn("no matches", slog.String("grammar", c.Grammar), slog.String("input", c.Input))
	}

	return nil
}

// InspectCmd launches the trampoline inspector TUI against a single parse.
type InspectCmd struct {
	Grammar string `default:"arithmetic" help:"Built-in grammar name or path to a YAML grammar file." short:"g"`
	Input   string `help:"Input text to parse."                                                        required:""`
}

// Run executes the inspect command.
func (c *InspectCmd) Run(ctx context.Context, cli *CLI) error {
	p, err := resolveGrammar(c.Grammar)
	if err != nil {
		log.ErrorContext(ctx, "resolve grammar failed", slog.String("grammar", c.Grammar), slog.Any("error", err))

		return err
	}

	return inspector.Run(ctx, p, c.Input)
}
