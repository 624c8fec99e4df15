package cli

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/ardnew/gpp/cli/cmd"
	"github.com/ardnew/gpp/lang"
	"github.com/ardnew/gpp/log"
	"github.com/ardnew/gpp/pkg"
)

// CLI is the top-level command-line interface for gpp.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	MaxIterations int              `default:"${maxIterations}" help:"Maximum iterations of one loop activation (0 disables)."`
	Version       kong.VersionFlag `help:"Print version and exit." short:"V"`

	Expand cmd.Expand `cmd:"" default:"withargs" help:"Expand a template (default). Use 'expand <input>' for inputs named like a command."`
	Fmt    cmd.Fmt    `cmd:""                    help:"Print the loop tree of a template."`
	Init   cmd.Init   `cmd:""                    help:"Write current flag values to the configuration file."`
	Repl   cmd.Repl   `cmd:""                    help:"Expand template lines interactively."`
}

// Run executes the gpp CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position.
	cli.Log.scan(args)

	// Missing directories only disable config files and REPL history.
	if err := mkdirAllRequired(); err != nil {
		log.WarnContext(ctx, "cannot create runtime directories",
			slog.Any("error", err),
		)
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath + ".yaml",
		cmd.CacheIdentifier:  cacheDir(),
		"maxIterations":      strconv.Itoa(lang.DefaultMaxIterations),
		"version":            pkg.Name + " " + pkg.Version,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve, configFilePath+".yaml"),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithLangOptions(ctx,
		lang.WithMaxIterations(cli.MaxIterations),
		lang.WithLogger(log.Default()),
	)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx)
}
