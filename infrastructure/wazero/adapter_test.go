package wazero

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/reglet-dev/runnable-sdk/domain/ports"
	"github.com/reglet-dev/runnable-sdk/hostfuncs"
)

func TestDefaultAdapterConfig(t *testing.T) {
	cfg := defaultAdapterConfig()

	if cfg.ModuleName != "env" {
		t.Errorf("ModuleName = %q, want %q", cfg.ModuleName, "env")
	}
}

func TestWithModuleName(t *testing.T) {
	cfg := defaultAdapterConfig()
	WithModuleName("custom_module")(&cfg)

	if cfg.ModuleName != "custom_module" {
		t.Errorf("ModuleName = %q, want %q", cfg.ModuleName, "custom_module")
	}
}

func TestWithCustomHandler(t *testing.T) {
	cfg := defaultAdapterConfig()
	WithCustomHandler(CustomHandler{Name: "test_handler"})(&cfg)

	if len(cfg.CustomHandlers) != 1 {
		t.Fatalf("len(CustomHandlers) = %d, want 1", len(cfg.CustomHandlers))
	}
	if cfg.CustomHandlers[0].Name != "test_handler" {
		t.Errorf("CustomHandlers[0].Name = %q, want %q", cfg.CustomHandlers[0].Name, "test_handler")
	}
}

func TestSignature(t *testing.T) {
	params, results := Signature(hostfuncs.Import{Params: 3, Results: 1})
	assert.Equal(t, []api.ValueType{api.ValueTypeI32, api.ValueTypeI32, api.ValueTypeI32}, params)
	assert.Equal(t, []api.ValueType{api.ValueTypeI32}, results)

	params, results = Signature(hostfuncs.Import{Params: 4})
	assert.Len(t, params, 4)
	assert.Empty(t, results)
}

// callerModule is a guest that imports env.answer and env.get_ffi_result and
// exports them as "answer" and "ffi_result". Host module functions can only be
// called through an importing module.
func callerModule() []byte {
	name := func(s string) []byte { return append([]byte{byte(len(s))}, s...) }
	section := func(id byte, parts ...[]byte) []byte {
		var content []byte
		for _, p := range parts {
			content = append(content, p...)
		}
		return append([]byte{id, byte(len(content))}, content...)
	}

	mod := []byte{0x00, 'a', 's', 'm', 0x01, 0x00, 0x00, 0x00}
	mod = append(mod, section(1,
		[]byte{0x02},
		[]byte{0x60, 0x00, 0x01, 0x7f},             // () -> i32
		[]byte{0x60, 0x02, 0x7f, 0x7f, 0x01, 0x7f}, // (i32, i32) -> i32
	)...)
	mod = append(mod, section(2,
		[]byte{0x02},
		name(ports.HostModuleName), name("answer"), []byte{0x00, 0x00},
		name(ports.HostModuleName), name(ports.ImportGetFFIResult), []byte{0x00, 0x01},
	)...)
	mod = append(mod, section(3, []byte{0x02, 0x00, 0x01})...)
	mod = append(mod, section(7,
		[]byte{0x02},
		name("answer"), []byte{0x00, 0x02},
		name("ffi_result"), []byte{0x00, 0x03},
	)...)
	mod = append(mod, section(10,
		[]byte{0x02},
		[]byte{0x04, 0x00, 0x10, 0x00, 0x0b},                         // call 0
		[]byte{0x08, 0x00, 0x20, 0x00, 0x20, 0x01, 0x10, 0x01, 0x0b}, // local.get 0, local.get 1, call 1
	)...)
	return mod
}

func newRegistry(t *testing.T) *hostfuncs.Registry {
	t.Helper()
	host := hostfuncs.NewHost(hostfuncs.Capabilities{})
	reg, err := hostfuncs.NewRegistry(
		hostfuncs.WithMiddleware(hostfuncs.PanicRecoveryMiddleware(nil)),
		hostfuncs.WithImports(host.Imports()...),
	)
	require.NoError(t, err)
	return reg
}

func TestRegisterWithRuntime(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	reg := newRegistry(t)
	require.NoError(t, RegisterWithRuntime(ctx, rt, reg,
		WithCustomHandler(CustomHandler{
			Name: "answer",
			Handler: api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
				stack[0] = 42
			}),
			ResultTypes: []api.ValueType{api.ValueTypeI32},
		}),
	))

	mod := rt.Module(ports.HostModuleName)
	require.NotNil(t, mod)

	defs := mod.ExportedFunctionDefinitions()
	for _, name := range reg.Names() {
		def, ok := defs[name]
		require.True(t, ok, name)

		imp, _ := reg.Get(name)
		assert.Len(t, def.ParamTypes(), imp.Params, name)
		assert.Len(t, def.ResultTypes(), imp.Results, name)
	}

	guest, err := rt.Instantiate(ctx, callerModule())
	require.NoError(t, err)

	res, err := guest.ExportedFunction("answer").Call(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), res[0])
}

func TestRegisterWithRuntime_UnknownIdent(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	require.NoError(t, RegisterWithRuntime(ctx, rt, newRegistry(t),
		WithCustomHandler(CustomHandler{
			Name:        "answer",
			Handler:     api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) { stack[0] = 0 }),
			ResultTypes: []api.ValueType{api.ValueTypeI32},
		}),
	))

	guest, err := rt.Instantiate(ctx, callerModule())
	require.NoError(t, err)

	res, err := guest.ExportedFunction("ffi_result").Call(ctx, 0, hostfuncs.EncodeI32(12345))
	require.NoError(t, err)
	assert.Equal(t, int32(-1), hostfuncs.DecodeI32(res[0]))
}

func TestCallerName(t *testing.T) {
	ctx := WithCallerName(context.Background(), "guest")
	name, ok := CallerNameFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "guest", name)

	_, ok = CallerNameFromContext(context.Background())
	assert.False(t, ok)
}
