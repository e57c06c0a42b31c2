//go:build !wasip1

package runnable

import (
	"context"
	"testing"

	"github.com/reglet-dev/runnable-sdk/internal/ffi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewError(t *testing.T) {
	err := NewError(418, "teapot")

	assert.Equal(t, int32(418), err.Code)
	assert.Equal(t, "teapot", err.Error())
}

func TestRunnableFunc(t *testing.T) {
	var r Runnable = RunnableFunc(func(_ context.Context, input []byte) ([]byte, error) {
		return append(input, '!'), nil
	})

	out, err := r.Run(context.Background(), []byte("hi"))
	require.NoError(t, err)
	assert.Equal(t, "hi!", string(out))
}

func TestBind(t *testing.T) {
	t.Cleanup(func() { pending = nil })

	env := ffi.NewEnv(nil, nil)
	bind(env)
	assert.Nil(t, env.Handler(), "nothing registered yet")

	Register(RunnableFunc(func(context.Context, []byte) ([]byte, error) { return []byte("first"), nil }))
	Register(RunnableFunc(func(context.Context, []byte) ([]byte, error) { return []byte("second"), nil }))
	bind(env)

	require.NotNil(t, env.Handler())
	out, err := env.Handler().Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "second", string(out))
}
