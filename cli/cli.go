package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/gll/pkg"
)

// CLI is the top-level command-line interface for gll.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Parse   ParseCmd   `cmd:"" default:"withargs" help:"Parse input against a grammar"`
	Inspect InspectCmd `cmd:""                    help:"Step through a parse in the trampoline inspector"`
}

// Run executes the gll CLI with the given context and arguments. The exit
// function is called with the appropriate exit code upon completion.
func Run(ctx context.Context, exit func(code int), args ...string) error {
	var cli CLI

	vars := kong.Vars{}.CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups([]kong.Group{cli.Log.group(), cli.Pprof.group()}),
		kong.BindSingletonProvider(func() context.Context { return ctx }),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
			Tree:    true,
		}),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := cli.Log.start(ctx)
	ctx = context.WithValue(ctx, loggerKey{}, logger)

	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}

// loggerKey retrieves the ambient logger configured by logConfig.start
// from a context.Context, for commands that need to hand it to pcomb.
type loggerKey struct{}
