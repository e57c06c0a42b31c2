package entities

import "errors"

// Sentinel messages fixed by the boundary protocol.
const (
	UnknownHostErrorMessage = "unknown error returned from host"
	NoRunnableMessage       = "No runnable set"
)

// Codes reported through return_error when the handler did not supply one.
const (
	NoRunnableCode int32 = -1
	DefaultErrCode int32 = 500
)

// RunErr is an application error returned by a Runnable.
// Its Code is reported to the host alongside the message.
type RunErr struct {
	Message string `json:"message"`
	Code    int32  `json:"code"`
}

// NewRunErr creates a RunErr with the given code and message.
func NewRunErr(code int32, message string) RunErr {
	return RunErr{Code: code, Message: message}
}

// Error implements the error interface.
func (e RunErr) Error() string {
	return e.Message
}

// HostErr is a transport error produced when a host call fails.
type HostErr struct {
	Message string `json:"message"`
}

// NewHostErr creates a HostErr carrying the given message.
func NewHostErr(message string) HostErr {
	return HostErr{Message: message}
}

// Error implements the error interface.
func (e HostErr) Error() string {
	return e.Message
}

// ErrUnknownHost is the transport error used whenever the host gives no usable message.
var ErrUnknownHost = HostErr{Message: UnknownHostErrorMessage}

// ErrNoRunnable is reported when run is invoked before a handler was registered.
var ErrNoRunnable = RunErr{Code: NoRunnableCode, Message: NoRunnableMessage}

// RunErrFrom extracts the code and message to report for err.
// Errors that are not a RunErr anywhere in their chain use DefaultErrCode.
func RunErrFrom(err error) RunErr {
	var value RunErr
	if errors.As(err, &value) {
		return RunErr{Code: value.Code, Message: err.Error()}
	}
	var ptr *RunErr
	if errors.As(err, &ptr) && ptr != nil {
		return RunErr{Code: ptr.Code, Message: err.Error()}
	}
	return RunErr{Code: DefaultErrCode, Message: err.Error()}
}
