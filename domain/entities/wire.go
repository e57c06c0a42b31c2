package entities

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidWireCode is returned when an integer does not map to a known wire value.
var ErrInvalidWireCode = errors.New("invalid wire code")

// FieldType selects which part of the current request a key addresses.
type FieldType int32

const (
	FieldTypeMeta   FieldType = 0
	FieldTypeBody   FieldType = 1
	FieldTypeHeader FieldType = 2
	FieldTypeParams FieldType = 3
	FieldTypeState  FieldType = 4
	FieldTypeQuery  FieldType = 5
)

var fieldTypeNames = map[FieldType]string{
	FieldTypeMeta:   "meta",
	FieldTypeBody:   "body",
	FieldTypeHeader: "header",
	FieldTypeParams: "params",
	FieldTypeState:  "state",
	FieldTypeQuery:  "query",
}

// Code returns the wire value.
func (f FieldType) Code() int32 { return int32(f) }

// String returns the lowercase name of the field type.
func (f FieldType) String() string {
	if name, ok := fieldTypeNames[f]; ok {
		return name
	}
	return fmt.Sprintf("FieldType(%d)", int32(f))
}

// ParseFieldType converts a wire value into a FieldType.
func ParseFieldType(code int32) (FieldType, error) {
	f := FieldType(code)
	if _, ok := fieldTypeNames[f]; !ok {
		return 0, fmt.Errorf("field type %d: %w", code, ErrInvalidWireCode)
	}
	return f, nil
}

// FieldTypeFromString converts a name such as "header" into a FieldType.
func FieldTypeFromString(name string) (FieldType, error) {
	return lookupName(fieldTypeNames, name, "field type")
}

// QueryType selects the execution mode of a prepared database query.
type QueryType int32

const (
	QueryTypeInsert QueryType = 0
	QueryTypeSelect QueryType = 1
	QueryTypeUpdate QueryType = 2
	QueryTypeDelete QueryType = 3
)

var queryTypeNames = map[QueryType]string{
	QueryTypeInsert: "insert",
	QueryTypeSelect: "select",
	QueryTypeUpdate: "update",
	QueryTypeDelete: "delete",
}

// Code returns the wire value.
func (q QueryType) Code() int32 { return int32(q) }

// String returns the lowercase name of the query type.
func (q QueryType) String() string {
	if name, ok := queryTypeNames[q]; ok {
		return name
	}
	return fmt.Sprintf("QueryType(%d)", int32(q))
}

// ParseQueryType converts a wire value into a QueryType.
func ParseQueryType(code int32) (QueryType, error) {
	q := QueryType(code)
	if _, ok := queryTypeNames[q]; !ok {
		return 0, fmt.Errorf("query type %d: %w", code, ErrInvalidWireCode)
	}
	return q, nil
}

// QueryTypeFromString converts a name such as "select" into a QueryType.
// Matching is case-insensitive so configuration files may use either case.
func QueryTypeFromString(name string) (QueryType, error) {
	return lookupName(queryTypeNames, name, "query type")
}

// HTTPMethod is the wire encoding of an outbound HTTP method.
type HTTPMethod int32

const (
	MethodGet     HTTPMethod = 0
	MethodHead    HTTPMethod = 1
	MethodOptions HTTPMethod = 2
	MethodPost    HTTPMethod = 3
	MethodPut     HTTPMethod = 4
	MethodPatch   HTTPMethod = 5
	MethodDelete  HTTPMethod = 6
)

var methodNames = map[HTTPMethod]string{
	MethodGet:     "GET",
	MethodHead:    "HEAD",
	MethodOptions: "OPTIONS",
	MethodPost:    "POST",
	MethodPut:     "PUT",
	MethodPatch:   "PATCH",
	MethodDelete:  "DELETE",
}

// Code returns the wire value.
func (m HTTPMethod) Code() int32 { return int32(m) }

// String returns the canonical method name, e.g. "GET".
func (m HTTPMethod) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("HTTPMethod(%d)", int32(m))
}

// ParseHTTPMethod converts a wire value into an HTTPMethod.
func ParseHTTPMethod(code int32) (HTTPMethod, error) {
	m := HTTPMethod(code)
	if _, ok := methodNames[m]; !ok {
		return 0, fmt.Errorf("http method %d: %w", code, ErrInvalidWireCode)
	}
	return m, nil
}

// HTTPMethodFromString converts a method name such as "post" into an HTTPMethod.
func HTTPMethodFromString(name string) (HTTPMethod, error) {
	return lookupName(methodNames, name, "http method")
}

// LogLevel is the severity code carried by the log_msg import.
type LogLevel int32

const (
	LogLevelError LogLevel = 1
	LogLevelWarn  LogLevel = 2
	LogLevelInfo  LogLevel = 3
	LogLevelDebug LogLevel = 4
)

var logLevelNames = map[LogLevel]string{
	LogLevelError: "error",
	LogLevelWarn:  "warn",
	LogLevelInfo:  "info",
	LogLevelDebug: "debug",
}

// Code returns the wire value.
func (l LogLevel) Code() int32 { return int32(l) }

// String returns the lowercase level name.
func (l LogLevel) String() string {
	if name, ok := logLevelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LogLevel(%d)", int32(l))
}

// ParseLogLevel converts a wire value into a LogLevel.
func ParseLogLevel(code int32) (LogLevel, error) {
	l := LogLevel(code)
	if _, ok := logLevelNames[l]; !ok {
		return 0, fmt.Errorf("log level %d: %w", code, ErrInvalidWireCode)
	}
	return l, nil
}

// LogLevelFromString converts a level name such as "warn" into a LogLevel.
func LogLevelFromString(name string) (LogLevel, error) {
	return lookupName(logLevelNames, name, "log level")
}

func lookupName[T ~int32](table map[T]string, name, kind string) (T, error) {
	for v, n := range table {
		if strings.EqualFold(n, name) {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%s %q: %w", kind, name, ErrInvalidWireCode)
}
