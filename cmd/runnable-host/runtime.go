package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/reglet-dev/runnable-sdk/config"
	"github.com/reglet-dev/runnable-sdk/host"
)

// runtime is an executor with its backends and tracing.
type runtime struct {
	exec     *host.Executor
	backends *host.Backends
	shutdown func(context.Context) error
}

func (r *runtime) close(ctx context.Context) {
	_ = r.exec.Close(ctx)
	_ = r.backends.Close()
	_ = r.shutdown(ctx)
}

// configFromFlags loads the file named by --config, or the defaults.
func configFromFlags(flags *pflag.FlagSet) (config.Config, error) {
	path, err := flags.GetString(configFlag)
	if err != nil {
		return config.Config{}, errors.Wrap(err, fmt.Sprintf("get string flag '%s' value", configFlag))
	}
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func newRuntime(ctx context.Context, cfg config.Config, stderr io.Writer) (*runtime, error) {
	moduleLogger, err := newModuleLogger(cfg.Logger, stderr)
	if err != nil {
		return nil, errors.Wrap(err, "logger")
	}

	backends, err := host.NewBackends(ctx, cfg, moduleLogger)
	if err != nil {
		return nil, err
	}

	tp, shutdown, err := newTracerProvider(ctx, cfg.Tracing)
	if err != nil {
		_ = backends.Close()
		return nil, errors.Wrap(err, "tracing")
	}

	opts := []host.Option{
		host.WithCapabilities(backends.Caps),
		host.WithLogger(newHostLogger(cfg.Logger, stderr)),
		host.WithTracerProvider(tp),
		host.WithOutput(stderr, stderr),
	}
	if cfg.MaxReadSize > 0 {
		opts = append(opts, host.WithMaxReadSize(cfg.MaxReadSize))
	}

	exec, err := host.NewExecutor(ctx, opts...)
	if err != nil {
		_ = backends.Close()
		_ = shutdown(ctx)
		return nil, err
	}

	return &runtime{exec: exec, backends: backends, shutdown: shutdown}, nil
}

// load reads and instantiates the module at path, named after its file.
func (r *runtime) load(ctx context.Context, path string) (*host.Instance, error) {
	wasm, err := host.ReadModule(path, 0)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return r.exec.Load(ctx, name, wasm)
}

// modulePath picks the module from the positional argument, then the config.
func modulePath(args []string, cfg config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Module != "" {
		return cfg.Module, nil
	}
	return "", errors.New("no module given")
}
