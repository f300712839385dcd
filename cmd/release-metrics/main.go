package main

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/newrelic/nrdot-release-metrics/internal/domain-adapters/gateways"
	orchestrators "github.com/newrelic/nrdot-release-metrics/internal/domain-orchestrators"
	"github.com/newrelic/nrdot-release-metrics/internal/domain/interfaces"
	"github.com/newrelic/nrdot-release-metrics/internal/external-adapters/git"
	"github.com/newrelic/nrdot-release-metrics/internal/external-adapters/zerolog"
)

// Process exit codes
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// version is stamped at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	a := newApp(os.Stdout, os.Stderr)
	os.Exit(a.run(context.Background(), os.Args[1:]))
}

// app carries the process-wide collaborators so commands stay testable
type app struct {
	stdout      io.Writer
	stderr      io.Writer
	logger      interfaces.Logger
	resolveRepo func() (string, error)
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		logger: zerolog.New(zerolog.Config{Output: stderr, Service: "release-metrics", Version: version}),
		resolveRepo: func() (string, error) {
			return git.NewRemoteResolver(".").Resolve()
		},
	}
}

// run executes the command line and maps the outcome to an exit code
func (a *app) run(ctx context.Context, args []string) int {
	cmd := newRootCommand(a)
	cmd.SetArgs(args)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	var usageErr *usageError
	if errors.As(err, &usageErr) {
		a.logger.Error("Invalid usage", interfaces.F("error", usageErr.Err))
		return exitUsage
	}

	fields := []interfaces.Field{interfaces.F("error", err)}
	if kind, ok := orchestrators.KindOf(err); ok {
		fields = append(fields, interfaces.F("kind", string(kind)))
	}
	var statusErr *gateways.HTTPStatusError
	if errors.As(err, &statusErr) {
		fields = append(fields, interfaces.F("status", statusErr.StatusCode))
	}
	a.logger.Error(failureMessage(err), fields...)

	return exitFailure
}

// failureMessage names the failed phase the way the workflow log reads it
func failureMessage(err error) string {
	kind, _ := orchestrators.KindOf(err)
	switch kind {
	case orchestrators.KindConfig:
		return "Invalid configuration"
	case orchestrators.KindDistributions:
		return "No distributions found!"
	case orchestrators.KindFetchReleases:
		return "Error fetching releases"
	case orchestrators.KindNoMetrics:
		return "No metrics to send."
	case orchestrators.KindSendMetrics:
		return "Error sending metrics"
	default:
		return "Command execution failed"
	}
}

// usageError marks command line mistakes
type usageError struct {
	Err error
}

func (e *usageError) Error() string { return e.Err.Error() }

func (e *usageError) Unwrap() error { return e.Err }

// usageArgs reports positional argument mistakes as usage errors
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return &usageError{Err: err}
		}
		return nil
	}
}
