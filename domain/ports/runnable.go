package ports

import "context"

// Runnable is the unit of logic a guest module registers once for its lifetime.
// The context carries the invocation the call belongs to; capability packages
// read it to reach the host.
type Runnable interface {
	Run(ctx context.Context, input []byte) ([]byte, error)
}
