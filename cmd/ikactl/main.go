// Command ikactl runs lexicon engine operations from the command line and
// manages the dataset: validation, fingerprinting, database migration and
// import of file-based lexicon entries into PostgreSQL.
//
// Usage:
//
//	ikactl lookup "good morning"
//	ikactl generate --kind poem --length short --seed 7
//	ikactl import --replace
//
// Configuration is read the same way as the server (CONFIG_PATH, ENV).
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
