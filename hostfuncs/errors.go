package hostfuncs

import (
	"github.com/pkg/errors"
)

var (
	ErrInvocationNotFound = errors.New("invocation not found")
	ErrNoResult           = errors.New("no ffi result pending")
	ErrKeyNotFound        = errors.New("key not found")
	ErrInvalidFieldType   = errors.New("invalid field type")
	ErrReqNotSet          = errors.New("req is not set")
	ErrCapabilityDisabled = errors.New("capability is not enabled")
	ErrInvalidHeader      = errors.New("header was not formatted correctly")
	ErrMemoryAccess       = errors.New("guest memory access out of range")
	ErrReadTooLarge       = errors.New("guest memory read exceeds limit")
)

// minErrorMessageLen keeps error sizes away from -1, which the guest reads
// as "no message".
const minErrorMessageLen = 2

// errorMessage returns the text sent to the guest for err.
func errorMessage(err error) string {
	msg := err.Error()
	if len(msg) < minErrorMessageLen {
		msg = "host error: " + msg
	}
	return msg
}

// ffiSize encodes a prepared result as the size returned by an import:
// the payload length, or the negative length of the error message.
func ffiSize(data []byte, err error) int32 {
	if err != nil {
		return -int32(len(errorMessage(err))) //nolint:gosec // G115: messages are short
	}
	return int32(len(data)) //nolint:gosec // G115: payloads are bounded by guest memory
}
