package hostfuncs

import (
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/reglet-dev/runnable-sdk/domain/entities"
)

// FFIVar is a named value queued by add_ffi_var for the next db_exec.
type FFIVar struct {
	Name  string
	Value string
}

// Outcome is what the guest reported through return_result or return_error.
type Outcome struct {
	Err       *entities.RunErr
	Output    []byte
	Completed bool
}

type ffiResult struct {
	data []byte
	err  error
}

// Invocation is the host-side state of one run call.
type Invocation struct {
	Request *Request
	result  *ffiResult
	outcome Outcome
	vars    []FFIVar
	mu      sync.Mutex
	Ident   int32
}

// SetFFIResult stores the result of a capability call for get_ffi_result
// and returns the size the import reports to the guest.
// A result that was never collected is replaced.
func (i *Invocation) SetFFIResult(data []byte, err error) int32 {
	i.mu.Lock()
	defer i.mu.Unlock()

	if err != nil {
		i.result = &ffiResult{err: err}
		return ffiSize(nil, err)
	}
	if data == nil {
		data = []byte{}
	}
	i.result = &ffiResult{data: data}
	return ffiSize(data, nil)
}

// UseFFIResult returns the bytes of the pending result and clears it.
// For an error result the bytes are the error message.
func (i *Invocation) UseFFIResult() ([]byte, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.result == nil {
		return nil, ErrNoResult
	}

	res := i.result
	i.result = nil

	if res.err != nil {
		return []byte(errorMessage(res.err)), nil
	}
	return res.data, nil
}

// AddVar queues a variable for the next database call.
func (i *Invocation) AddVar(name, value string) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.vars = append(i.vars, FFIVar{Name: name, Value: value})
}

// UseVars returns the queued variables in order and clears the queue.
func (i *Invocation) UseVars() []FFIVar {
	i.mu.Lock()
	defer i.mu.Unlock()

	vars := i.vars
	i.vars = nil
	return vars
}

// Outcome returns what the guest has reported so far.
func (i *Invocation) Outcome() Outcome {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.outcome
}

func (i *Invocation) complete(output []byte, runErr *entities.RunErr) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.outcome = Outcome{Output: output, Err: runErr, Completed: true}
}

// Invocations tracks in-flight invocations by ident.
type Invocations struct {
	byIdent map[int32]*Invocation
	next    atomic.Int32
	mu      sync.RWMutex
}

// NewInvocations creates an empty tracker.
func NewInvocations() *Invocations {
	return &Invocations{byIdent: make(map[int32]*Invocation)}
}

// Begin registers a new invocation for req under a fresh ident.
func (s *Invocations) Begin(req *Request) *Invocation {
	ident := s.next.Add(1)
	for ident <= 0 {
		// wrapped around; idents are always positive
		s.next.CompareAndSwap(ident, 0)
		ident = s.next.Add(1)
	}

	inv := &Invocation{Ident: ident, Request: req}

	s.mu.Lock()
	s.byIdent[ident] = inv
	s.mu.Unlock()

	return inv
}

// Get returns the invocation registered under ident.
func (s *Invocations) Get(ident int32) (*Invocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inv, ok := s.byIdent[ident]
	if !ok {
		return nil, errors.Wrapf(ErrInvocationNotFound, "ident %d", ident)
	}
	return inv, nil
}

// End forgets the invocation registered under ident.
func (s *Invocations) End(ident int32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.byIdent, ident)
}

// Len reports how many invocations are in flight.
func (s *Invocations) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.byIdent)
}
