package lang

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// globalCache stores parsed block lists keyed by the xxh3 hash of their
// source. Trees are immutable, so cached blocks are shared between callers.
var globalCache sync.Map

// entry tracks the parse state of one source.
type entry struct {
	once   sync.Once
	blocks []*Block
	err    error
}

// ParseReader parses a template read from r and returns its [Tree].
// The content is cached after first parse.
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*Tree, error) {
	// Wrap reader with async read-ahead so input is fetched while the
	// previous chunk is copied.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	return ParseString(ctx, string(data), opts...)
}

// ParseString parses template source and returns its [Tree].
// The result is cached so identical sources are parsed only once, even when
// requested from multiple goroutines.
func ParseString(ctx context.Context, source string, opts ...Option) (*Tree, error) {
	t := new(Tree)

	applyDefaults(t)
	applyOptions(t, opts...)

	sourceHash := xxh3.HashString(source)
	sourceKey := strconv.FormatUint(sourceHash, 36)

	value, cacheHit := globalCache.LoadOrStore(sourceKey, new(entry))

	cached, ok := value.(*entry)
	if !ok {
		return nil, ErrParse.
			With(slog.String("issue", "invalid entry type in cache"))
	}

	t.logger.TraceContext(ctx, "cache lookup",
		slog.String("source_hash", strconv.FormatUint(sourceHash, 16)),
		slog.Int("source_bytes", len(source)),
		slog.Bool("cache_hit", cacheHit),
	)

	cached.once.Do(func() {
		cached.blocks, cached.err = parseLines(ctx, Lines(source), t)
	})

	if cached.err != nil {
		return nil, cached.err
	}

	t.Blocks = cached.blocks

	return t, nil
}

// ClearCache removes all cached parse results.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache.Clear()
}
