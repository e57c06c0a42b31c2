package host

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/reglet-dev/runnable-sdk/config"
	"github.com/reglet-dev/runnable-sdk/hostfuncs"
	"github.com/reglet-dev/runnable-sdk/infrastructure/cache"
	"github.com/reglet-dev/runnable-sdk/infrastructure/files"
	"github.com/reglet-dev/runnable-sdk/infrastructure/graphql"
	"github.com/reglet-dev/runnable-sdk/infrastructure/httpclient"
	"github.com/reglet-dev/runnable-sdk/infrastructure/logsink"
	"github.com/reglet-dev/runnable-sdk/infrastructure/sqlite"
)

// Backends are the capability backends built from a Config.
type Backends struct {
	Caps hostfuncs.Capabilities
	db   *sqlite.Database
	sink *logsink.Sink
}

// NewBackends builds the backends cfg enables. Module log lines go to logger;
// a nil logger drops them.
func NewBackends(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Backends, error) {
	b := &Backends{Caps: hostfuncs.Capabilities{Request: cfg.Request}}

	if cfg.HTTP.Enabled {
		b.Caps.HTTP = httpclient.New(httpOptions(cfg, cfg.HTTP.Rules)...)
	}

	if cfg.GraphQL.Enabled {
		b.Caps.GraphQL = graphql.New(httpclient.New(httpOptions(cfg, cfg.GraphQL.Rules)...))
	}

	if cfg.Cache.Enabled {
		b.Caps.Cache = cache.New(cfg.Cache.MaxKeys)
	}

	if cfg.File.Enabled {
		src, err := files.NewDir(cfg.File.Root, cfg.File.Patterns...)
		if err != nil {
			return nil, fmt.Errorf("failed to open static files: %w", err)
		}
		b.Caps.Files = src
	}

	if cfg.DB.Enabled {
		db, err := sqlite.Open(ctx, cfg.DB.DSN, cfg.DB.Setup, cfg.DB.Queries)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		b.db = db
		b.Caps.DB = db
	}

	if !cfg.Logger.Enabled {
		logger = nil
	}
	b.sink = logsink.New(logger)
	b.Caps.Logs = b.sink

	return b, nil
}

// Close flushes module logs and closes the database.
func (b *Backends) Close() error {
	if b.sink != nil {
		// stderr sync fails on some terminals
		_ = b.sink.Sync()
	}
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

func httpOptions(cfg config.Config, rules httpclient.Rules) []httpclient.Option {
	opts := []httpclient.Option{httpclient.WithRules(rules)}
	if cfg.HTTP.TimeoutSeconds > 0 {
		opts = append(opts, httpclient.WithTimeout(time.Duration(cfg.HTTP.TimeoutSeconds)*time.Second))
	}
	if cfg.HTTP.MaxBodySize > 0 {
		opts = append(opts, httpclient.WithMaxBodySize(cfg.HTTP.MaxBodySize))
	}
	if cfg.Auth.Enabled && len(cfg.Auth.Headers) > 0 {
		opts = append(opts, httpclient.WithAuthHeaders(cfg.Auth.Headers))
	}
	return opts
}
