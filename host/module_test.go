package host_test

// Minimal runnable modules assembled in-process. Each exports memory,
// allocate (always returning 1024), deallocate, init and run, and imports
// one "env" function. run(addr, size, ident) executes runBody.

const (
	opLocalGet = 0x20
	opCall     = 0x10
	opI32Const = 0x41
	opEnd      = 0x0b
	typeI32    = 0x7f
	typeFunc   = 0x60
)

func uleb(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			out = append(out, b|0x80)
			continue
		}
		return append(out, b)
	}
}

func sleb(v int32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}

func vec(items ...[]byte) []byte {
	out := uleb(uint32(len(items)))
	for _, item := range items {
		out = append(out, item...)
	}
	return out
}

func wasmName(s string) []byte {
	return append(uleb(uint32(len(s))), s...)
}

func section(id byte, content []byte) []byte {
	out := append([]byte{id}, uleb(uint32(len(content)))...)
	return append(out, content...)
}

func funcType(params, results int) []byte {
	p := make([][]byte, params)
	for i := range p {
		p[i] = []byte{typeI32}
	}
	r := make([][]byte, results)
	for i := range r {
		r[i] = []byte{typeI32}
	}
	out := append([]byte{typeFunc}, vec(p...)...)
	return append(out, vec(r...)...)
}

func funcBody(instrs ...byte) []byte {
	body := append([]byte{0x00}, instrs...)
	body = append(body, opEnd)
	return append(uleb(uint32(len(body))), body...)
}

func export(name string, kind byte, index uint32) []byte {
	out := append(wasmName(name), kind)
	return append(out, uleb(index)...)
}

func buildModule(importName string, importParams int, runBody []byte) []byte {
	mod := []byte{0x00, 'a', 's', 'm', 0x01, 0x00, 0x00, 0x00}

	mod = append(mod, section(1, vec(
		funcType(importParams, 0), // 0: import
		funcType(1, 1),            // 1: allocate
		funcType(2, 0),            // 2: deallocate
		funcType(0, 0),            // 3: init
		funcType(3, 0),            // 4: run
	))...)

	imp := append(wasmName("env"), wasmName(importName)...)
	imp = append(imp, 0x00, 0x00)
	mod = append(mod, section(2, vec(imp))...)

	mod = append(mod, section(3, vec([]byte{1}, []byte{2}, []byte{3}, []byte{4}))...)
	mod = append(mod, section(5, vec([]byte{0x00, 0x01}))...)

	mod = append(mod, section(7, vec(
		export("memory", 0x02, 0),
		export("allocate", 0x00, 1),
		export("deallocate", 0x00, 2),
		export("init", 0x00, 3),
		export("run", 0x00, 4),
	))...)

	allocate := append([]byte{opI32Const}, sleb(1024)...)
	mod = append(mod, section(10, vec(
		funcBody(allocate...),
		funcBody(),
		funcBody(),
		funcBody(runBody...),
	))...)

	return mod
}

// echoModule reports its input as the result.
func echoModule() []byte {
	return buildModule("return_result", 3, []byte{
		opLocalGet, 0, opLocalGet, 1, opLocalGet, 2, opCall, 0,
	})
}

// failModule reports its input as the message of a RunErr with code.
func failModule(code int32) []byte {
	body := append([]byte{opI32Const}, sleb(code)...)
	body = append(body, opLocalGet, 0, opLocalGet, 1, opLocalGet, 2, opCall, 0)
	return buildModule("return_error", 4, body)
}

// silentModule returns from run without reporting anything.
func silentModule() []byte {
	return buildModule("return_result", 3, nil)
}

// foreignModule imports an env function no host serves.
func foreignModule() []byte {
	return buildModule("launch_missiles", 0, nil)
}
