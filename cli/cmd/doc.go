// Package cmd implements the gpp subcommands: expand (the default), fmt,
// init and repl.
//
// Commands receive their [context.Context] from the kong parser. The CLI
// stores the parsed [kong.Context], the standard streams, and the options
// forwarded to package lang in that context before running a command.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"
)
