// Command runnable-host loads runnable modules and runs them once, serves
// them over HTTP, or describes them.
//
//	runnable-host run [--config host.yaml] [--input text | --input-file path] module.wasm
//	runnable-host serve [--config host.yaml] [module.wasm]
//	runnable-host inspect [--json] module.wasm
//	runnable-host schema
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

const (
	configFlag    = "config"
	inputFlag     = "input"
	inputFileFlag = "input-file"
	methodFlag    = "method"
	addrFlag      = "addr"
	jsonFlag      = "json"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line in args and returns the process exit code:
// 0 on success, 1 on failure, 2 on a usage error.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := rootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return 0
	}

	var exit exitError
	if errors.As(err, &exit) {
		return exit.code
	}

	fmt.Fprintf(stderr, "%s: %v\n", cmd.CommandPath(), err)

	var usage usageError
	if errors.As(err, &usage) {
		return 2
	}
	return 1
}

func rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runnable-host",
		Short: "Development host for runnable modules",
		Long: `
runnable-host loads WebAssembly modules built with the runnable SDK and serves
the host imports they call: request fields, HTTP, cache, database, static
files, GraphQL, response headers and logging.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageError{fmt.Errorf("unknown command %q", args[0])}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
			return exitError{code: 2}
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	cmd.AddCommand(
		runCommand(),
		serveCommand(),
		inspectCommand(),
		schemaCommand(),
	)

	return cmd
}

// exitError ends the command with code after its output was already written.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// usageError marks a malformed command line.
type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }
