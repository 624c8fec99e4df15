// Package cli contains the command line interface for gpp.
//
// # Usage
//
//	gpp [flags] <input> [<output>]
//	gpp fmt [native|json|yaml] <input>
//	gpp init [--force]
//	gpp repl
//
// The default command expands input (a path, or "-" for stdin) and writes the
// result to output, or to stdout when output is omitted. Without an input
// path, gpp prints a short notice to stderr and exits successfully.
//
// An input path that matches a command name (fmt, init, repl, expand) is
// taken as that command. Name the default command explicitly to expand such
// a file:
//
//	gpp expand fmt out.s
//
// # Configuration Files
//
// Flag defaults are read from the user configuration directory, for example
// $XDG_CONFIG_HOME/gpp/config.yaml (see [resolve]) or config.json next to
// it. "gpp init" writes the current flag values to the YAML file.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize log output
//
// Logs are written to stderr; stdout carries only expansion results.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: ~/.cache/gpp/pprof)
package cli
