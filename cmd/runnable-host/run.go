package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/reglet-dev/runnable-sdk/hostfuncs"
)

func runCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [module.wasm]",
		Short: "invoke a module once and print its result",
		Long:  "loads the module, invokes it once with the given input and writes its output to stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFromFlags(cmd.Flags())
			if err != nil {
				return err
			}
			path, err := modulePath(args, cfg)
			if err != nil {
				return err
			}

			data, err := inputFromFlags(cmd)
			if err != nil {
				return err
			}

			method, err := cmd.Flags().GetString(methodFlag)
			if err != nil {
				return errors.Wrap(err, fmt.Sprintf("get string flag '%s' value", methodFlag))
			}

			ctx := cmd.Context()
			rt, err := newRuntime(ctx, cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer rt.close(context.WithoutCancel(ctx))

			inst, err := rt.load(ctx, path)
			if err != nil {
				return err
			}

			out, err := inst.Invoke(ctx, data, hostfuncs.NewRequest(strings.ToUpper(method), "/", data))
			if err != nil {
				return err
			}
			if out.Err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "module returned error %d: %s\n", out.Err.Code, out.Err.Message)
				return exitError{code: 1}
			}

			_, err = cmd.OutOrStdout().Write(out.Output)
			return err
		},
	}

	cmd.Flags().StringP(configFlag, "c", "", "host configuration file")
	cmd.Flags().String(inputFlag, "", "input passed to the module")
	cmd.Flags().String(inputFileFlag, "", "read input from a file, - for stdin")
	cmd.Flags().String(methodFlag, "POST", "method of the request seen by the module")

	return cmd
}

// inputFromFlags returns --input, or the contents named by --input-file.
func inputFromFlags(cmd *cobra.Command) ([]byte, error) {
	input, err := cmd.Flags().GetString(inputFlag)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("get string flag '%s' value", inputFlag))
	}

	inputFile, err := cmd.Flags().GetString(inputFileFlag)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("get string flag '%s' value", inputFileFlag))
	}

	switch inputFile {
	case "":
		return []byte(input), nil
	case "-":
		return io.ReadAll(cmd.InOrStdin())
	default:
		return os.ReadFile(inputFile)
	}
}
