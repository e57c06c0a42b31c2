package main

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/reglet-dev/runnable-sdk/host/server"
)

const shutdownTimeout = 10 * time.Second

func serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [module.wasm]",
		Short: "serve a module over HTTP, one invocation per request",
		Long:  "loads the module and invokes it once for every HTTP request until interrupted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFromFlags(cmd.Flags())
			if err != nil {
				return err
			}

			addr, err := cmd.Flags().GetString(addrFlag)
			if err != nil {
				return errors.Wrap(err, fmt.Sprintf("get string flag '%s' value", addrFlag))
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			path, err := modulePath(args, cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			stderr := cmd.ErrOrStderr()
			rt, err := newRuntime(ctx, cfg, stderr)
			if err != nil {
				return err
			}
			defer rt.close(context.WithoutCancel(ctx))

			inst, err := rt.load(ctx, path)
			if err != nil {
				return err
			}

			srv := server.New(inst, cfg.Server.Path, server.WithLogger(newHostLogger(cfg.Logger, stderr)))

			errc := make(chan error, 1)
			go func() { errc <- srv.Listen(cfg.Server.Addr) }()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringP(configFlag, "c", "", "host configuration file")
	cmd.Flags().String(addrFlag, "", "listen address, overrides server.addr")

	return cmd
}
