// Command migrate applies, rolls back and reports the embedded database
// migrations.
//
//	migrate up       apply all pending migrations
//	migrate down     roll back the latest migration
//	migrate status   list migrations and their state
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
