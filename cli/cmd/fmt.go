package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/gpp/lang"
)

// Fmt parses a template and prints its loop tree in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as canonical template syntax (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
}

// Source holds the arguments shared by the fmt subcommands.
type Source struct {
	Indent int    `default:"2" help:"Indent width."                     short:"i"`
	Path   string `arg:""      help:"Template file, or '-' for stdin." default:"-" name:"source"`
}

// run parses the source and hands the tree to format.
func (s Source) run(
	ctx context.Context,
	name string,
	format func(context.Context, *lang.Tree) error,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	tree, err := parseFile(ctx, s.Path)
	if err != nil {
		return wrapFileError(err, s.Path)
	}

	if err := format(ctx, tree); err != nil {
		return lang.WrapError(err).
			With(slog.String("format", name))
	}

	return nil
}

// Native re-emits a template in canonical syntax.
type Native struct{ Source }

// Run executes the native command.
func (f *Native) Run(ctx context.Context) error {
	return f.run(ctx, "native", func(ctx context.Context, t *lang.Tree) error {
		return t.Format(ctx, streamsFrom(ctx).Out, f.Indent)
	})
}

// JSON prints the loop tree of a template as JSON.
type JSON struct{ Source }

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) error {
	return j.run(ctx, "json", func(ctx context.Context, t *lang.Tree) error {
		return t.FormatJSON(ctx, streamsFrom(ctx).Out, j.Indent)
	})
}

// YAML prints the loop tree of a template as YAML.
type YAML struct{ Source }

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) error {
	return y.run(ctx, "yaml", func(ctx context.Context, t *lang.Tree) error {
		return t.FormatYAML(ctx, streamsFrom(ctx).Out, y.Indent)
	})
}
