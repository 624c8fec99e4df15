// Package log provides a concurrency-safe leveled logging interface based on
// [log/slog].
//
// Output format, minimum level, timestamp layout, and caller information are
// fixed when a [Logger] is created with [Make] or derived with [Logger.Wrap].
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("expanded template", slog.Int("lines", n))
//	logger.Error("expansion failed", slog.Any("error", err))
//
// # Configuration
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("kitchen"),
//		log.WithCaller(true))
//
// When pretty printing is enabled (the default), records are colorized with
// lipgloss. Colors are omitted automatically when the output is not a
// terminal.
//
// # Package-level Logger
//
// The functions [Info], [Debug], [Error] and friends write to a shared logger
// that writes to standard error. [Config] reconfigures it.
package log
