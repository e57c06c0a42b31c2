package hostfuncs

import (
	"context"
	"net/http"
	"time"

	"github.com/reglet-dev/runnable-sdk/domain/entities"
	"github.com/reglet-dev/runnable-sdk/domain/ports"
)

// flatMemory is a linear memory with a bump allocator for placing arguments.
type flatMemory struct {
	buf  []byte
	next int32
}

func newFlatMemory() *flatMemory {
	return &flatMemory{buf: make([]byte, 64*1024), next: 16}
}

func (m *flatMemory) Read(offset, byteCount uint32) ([]byte, bool) {
	end := uint64(offset) + uint64(byteCount)
	if end > uint64(len(m.buf)) {
		return nil, false
	}
	return m.buf[offset:end], true
}

func (m *flatMemory) Write(offset uint32, data []byte) bool {
	end := uint64(offset) + uint64(len(data))
	if end > uint64(len(m.buf)) {
		return false
	}
	copy(m.buf[offset:], data)
	return true
}

// put copies s into memory and returns its address and length.
func (m *flatMemory) put(s string) (int32, int32) {
	addr := m.next
	copy(m.buf[addr:], s)
	m.next += int32(len(s)) + 8
	return addr, int32(len(s))
}

// collect performs the second retrieval step for a size returned by an import.
func collect(h *Host, mem *flatMemory, ident, size int32) (string, int32) {
	n := size
	if n < 0 {
		n = -n
	}
	addr := mem.next
	mem.next += n + 8
	status := h.GetFFIResult(context.Background(), mem, addr, ident)
	return string(mem.buf[addr : addr+n]), status
}

type fakeFetcher struct {
	method  string
	url     string
	body    []byte
	headers http.Header
	resp    []byte
	err     error
}

func (f *fakeFetcher) Fetch(_ context.Context, method, url string, body []byte, headers http.Header) ([]byte, error) {
	f.method, f.url, f.body, f.headers = method, url, body, headers
	return f.resp, f.err
}

type fakeCache struct {
	data map[string][]byte
	ttls map[string]time.Duration
	err  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *fakeCache) Set(key string, val []byte, ttl time.Duration) error {
	if c.err != nil {
		return c.err
	}
	c.data[key] = val
	c.ttls[key] = ttl
	return nil
}

func (c *fakeCache) Get(key string) ([]byte, error) {
	val, ok := c.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return val, nil
}

type fakeDB struct {
	queryType entities.QueryType
	name      string
	vars      []any
	resp      []byte
}

func (d *fakeDB) ExecQuery(_ context.Context, qt entities.QueryType, name string, vars []any) ([]byte, error) {
	d.queryType, d.name, d.vars = qt, name, vars
	return d.resp, nil
}

type logLine struct {
	level entities.LogLevel
	msg   string
	scope ports.LogScope
}

type fakeSink struct {
	lines []logLine
}

func (s *fakeSink) Log(level entities.LogLevel, msg string, scope ports.LogScope) {
	s.lines = append(s.lines, logLine{level: level, msg: msg, scope: scope})
}
