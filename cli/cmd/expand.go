package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/gpp/lang"
	"github.com/ardnew/gpp/log"
)

// Expand unrolls the loops of a template and writes the result.
type Expand struct {
	Input  string `arg:"" help:"Template file, or '-' for stdin."            name:"input"  optional:""`
	Output string `arg:"" help:"Output file, or '-' for stdout (default)."   name:"output" optional:""`
}

// usage is printed when no input is given. It is not an error.
const usage = "no input file"

// Run executes the expand command.
func (e *Expand) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	streams := streamsFrom(ctx)

	if e.Input == "" {
		fmt.Fprintln(streams.Err, usage)

		return nil
	}

	tree, err := parseFile(ctx, e.Input)
	if err != nil {
		return wrapFileError(err, e.Input)
	}

	out, err := tree.ExpandString(ctx)
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("file", e.Input))
	}

	log.DebugContext(ctx, "expanded template",
		slog.String("input", e.Input),
		slog.String("output", e.Output),
		slog.Int("bytes", len(out)),
	)

	return writeOutput(streams.Out, e.Output, out)
}

// wrapFileError attaches the template path to err, keeping lang errors as
// the outermost type so their line numbers are reported.
func wrapFileError(err error, path string) error {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.With(slog.String("file", path))
	}

	return lang.WrapError(err).With(slog.String("file", path))
}

// writeOutput writes s to path, or to stdout when path is empty or "-".
// The file is created only here, after expansion has succeeded.
func writeOutput(stdout io.Writer, path, s string) error {
	if path == "" || path == stdinSource {
		if _, err := io.WriteString(stdout, s); err != nil {
			return ErrWriteOutput.Wrap(err)
		}

		return nil
	}

	if err := os.WriteFile(path, []byte(s), 0o644); err != nil {
		return ErrWriteOutput.
			With(slog.String("file", path)).
			Wrap(err)
	}

	return nil
}
