// Command kettle-changelog cuts releases in a Keep a Changelog CHANGELOG.md.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/kettle-rb/kettle-changelog/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
