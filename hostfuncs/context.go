package hostfuncs

import (
	"context"
)

type importNameKey struct{}

// WithImportName records the import being served in ctx.
func WithImportName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, importNameKey{}, name)
}

// ImportName returns the import being served, or "unknown".
func ImportName(ctx context.Context) string {
	if name, ok := ctx.Value(importNameKey{}).(string); ok {
		return name
	}
	return "unknown"
}
