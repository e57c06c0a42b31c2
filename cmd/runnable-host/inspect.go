package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/reglet-dev/runnable-sdk/host"
)

func inspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect module.wasm",
		Short: "list a module's imports and exports",
		Long:  "lists the module's imports and exports and exits non-zero when it cannot be run by this host",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("no module given")
			}

			asJSON, err := cmd.Flags().GetBool(jsonFlag)
			if err != nil {
				return errors.Wrap(err, fmt.Sprintf("get bool flag '%s' value", jsonFlag))
			}

			wasm, err := host.ReadModule(args[0], 0)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			exec, err := host.NewExecutor(ctx)
			if err != nil {
				return err
			}
			defer exec.Close(ctx) //nolint:errcheck

			info, err := exec.Inspect(ctx, wasm)
			if err != nil {
				return err
			}

			stdout := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(info); err != nil {
					return err
				}
			} else if err := writeInfo(stdout, info); err != nil {
				return err
			}

			if !info.Runnable() {
				return exitError{code: 1}
			}
			return nil
		},
	}

	cmd.Flags().Bool(jsonFlag, false, "print JSON instead of a table")

	return cmd
}

func writeInfo(w io.Writer, info host.ModuleInfo) error {
	table := tablewriter.NewWriter(w)
	table.Header("Kind", "Module", "Name", "Params", "Results")

	rows := make([][]string, 0, len(info.Imports)+len(info.Exports))
	for _, f := range info.Imports {
		rows = append(rows, funcRow("import", f))
	}
	for _, f := range info.Exports {
		rows = append(rows, funcRow("export", f))
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if len(info.Missing) > 0 {
		fmt.Fprintf(w, "missing exports: %s\n", strings.Join(info.Missing, ", "))
	}
	if len(info.Unknown) > 0 {
		fmt.Fprintf(w, "unknown imports: %s\n", strings.Join(info.Unknown, ", "))
	}
	return nil
}

func funcRow(kind string, f host.FuncInfo) []string {
	return []string{kind, f.Module, f.Name, strings.Join(f.Params, " "), strings.Join(f.Results, " ")}
}
