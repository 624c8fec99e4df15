package cmd

import (
	"context"

	"github.com/ardnew/gpp/cli/cmd/repl"
	"github.com/ardnew/gpp/log"
)

// Repl starts an interactive session that expands template lines as they
// are entered.
type Repl struct{}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	return repl.Run(ctx, vars(ctx)[CacheIdentifier], log.Default(),
		langOptionsFrom(ctx)...)
}
