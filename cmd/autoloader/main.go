// cmd/autoloader/main.go
//
// Entry point for the autoloader CLI. Every exit status is decided here:
// commands return errors and run maps them to process exit codes.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/kingrea/autoloader/locator"
)

// Set via -ldflags at build time.
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := newApp()
	defer a.close()

	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return exitCode(root.ExecuteContext(ctx), stdout, stderr)
}

// exitError carries a specific exit status. An empty message prints nothing.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string {
	return e.msg
}

func exitCode(err error, stdout, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	var notFound *locator.ManifestNotFoundError
	if errors.As(err, &notFound) {
		fmt.Fprint(stdout, notFound.Error())
		return notFound.ExitCode()
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		if exitErr.msg != "" {
			fmt.Fprintln(stderr, exitErr.msg)
		}
		return exitErr.code
	}
	fmt.Fprintln(stderr, err)
	return 1
}
