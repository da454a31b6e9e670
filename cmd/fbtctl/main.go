// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

// Command fbtctl maintains the recommendation rule table: it validates
// rows, repairs definite mismatches, builds the compatibility proofs
// template and revalidates on every save.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := execute(ctx, newRootCmd(), os.Args[1:])
	stop()
	os.Exit(code)
}

// execute runs the command line and maps the result to a process exit code.
func execute(ctx context.Context, cmd *cobra.Command, args []string) int {
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	return 1
}

// Exit codes shared by the subcommands.
const (
	exitFailed   = 1
	exitNotFound = 2
)

// exitError carries a non-zero exit code after the command has already
// printed its own diagnostics.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}
