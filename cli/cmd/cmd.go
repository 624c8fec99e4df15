package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/gpp/lang"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// vars returns the kong variables of the running application, or nil.
func vars(ctx context.Context) kong.Vars {
	ktx := kongContextFrom(ctx)
	if ktx == nil || ktx.Model == nil {
		return nil
	}

	return ktx.Model.Vars()
}

// Streams are the standard streams used by commands.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

type streamsKey struct{}

// WithStreams returns a new context.Context whose commands use s instead of
// the process's standard streams. Nil fields fall back to the os streams.
func WithStreams(ctx context.Context, s Streams) context.Context {
	return context.WithValue(ctx, streamsKey{}, s)
}

func streamsFrom(ctx context.Context) Streams {
	s, _ := ctx.Value(streamsKey{}).(Streams)

	if s.In == nil {
		s.In = os.Stdin
	}

	if s.Out == nil {
		s.Out = os.Stdout
	}

	if s.Err == nil {
		s.Err = os.Stderr
	}

	return s
}

type langOptionsKey struct{}

// WithLangOptions returns a new context.Context carrying options that
// commands pass to the lang parser and expander.
func WithLangOptions(ctx context.Context, opts ...lang.Option) context.Context {
	return context.WithValue(ctx, langOptionsKey{}, opts)
}

func langOptionsFrom(ctx context.Context) []lang.Option {
	opts, _ := ctx.Value(langOptionsKey{}).([]lang.Option)

	return opts
}

// stdinSource is the special path for reading from standard input.
const stdinSource = "-"

// openInput opens path for reading, or returns standard input for "-".
func openInput(ctx context.Context, path string) (io.ReadCloser, error) {
	if path == stdinSource {
		return io.NopCloser(streamsFrom(ctx).In), nil
	}

	return os.Open(path)
}

// parseFile reads and parses the template at path.
func parseFile(ctx context.Context, path string) (*lang.Tree, error) {
	r, err := openInput(ctx, path)
	if err != nil {
		return nil, ErrReadTemplate.Wrap(err)
	}
	defer r.Close()

	return lang.ParseReader(ctx, r, langOptionsFrom(ctx)...)
}
