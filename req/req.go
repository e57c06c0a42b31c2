// Package req reads and modifies the request that triggered the current invocation.
//
// Only State distinguishes a missing key from an empty value. Every other
// getter returns an empty value when the key is missing or the host call fails.
package req

import (
	"context"

	"github.com/reglet-dev/runnable-sdk/domain/entities"
	"github.com/reglet-dev/runnable-sdk/internal/ffi"
)

// Field reads key from the given part of the request.
func Field(ctx context.Context, field entities.FieldType, key string) ([]byte, error) {
	env, err := ffi.Lookup(ctx)
	if err != nil {
		return nil, err
	}

	keyAddr, keyLen, release := env.PassString(key)
	defer release()

	size := env.Host().RequestGetField(field.Code(), keyAddr, keyLen, env.Ident())
	return env.Result(size)
}

// SetField writes key in the given part of the request.
func SetField(ctx context.Context, field entities.FieldType, key, value string) error {
	env, err := ffi.Lookup(ctx)
	if err != nil {
		return err
	}

	keyAddr, keyLen, releaseKey := env.PassString(key)
	defer releaseKey()
	valAddr, valLen, releaseVal := env.PassString(value)
	defer releaseVal()

	if status := env.Host().RequestSetField(field.Code(), keyAddr, keyLen, valAddr, valLen, env.Ident()); status != 0 {
		return entities.ErrUnknownHost
	}
	return nil
}

func fieldString(ctx context.Context, field entities.FieldType, key string) string {
	val, err := Field(ctx, field, key)
	if err != nil {
		return ""
	}
	return string(val)
}

// Method returns the HTTP method of the request.
func Method(ctx context.Context) string {
	return fieldString(ctx, entities.FieldTypeMeta, "method")
}

// SetMethod overrides the request method seen by later steps.
func SetMethod(ctx context.Context, value string) error {
	return SetField(ctx, entities.FieldTypeMeta, "method", value)
}

// URL returns the full request URL.
func URL(ctx context.Context) string {
	return fieldString(ctx, entities.FieldTypeMeta, "url")
}

// SetURL overrides the request URL.
func SetURL(ctx context.Context, value string) error {
	return SetField(ctx, entities.FieldTypeMeta, "url", value)
}

// ID returns the host-assigned request ID.
func ID(ctx context.Context) string {
	return fieldString(ctx, entities.FieldTypeMeta, "id")
}

// Body returns the raw request body.
func Body(ctx context.Context) []byte {
	val, err := Field(ctx, entities.FieldTypeMeta, "body")
	if err != nil {
		return []byte{}
	}
	return val
}

// BodyString returns the request body as a string.
func BodyString(ctx context.Context) string {
	return string(Body(ctx))
}

// SetBody replaces the request body.
func SetBody(ctx context.Context, value string) error {
	return SetField(ctx, entities.FieldTypeMeta, "body", value)
}

// BodyField returns a top-level field of a JSON request body.
// Strings are returned as-is, other values as JSON.
func BodyField(ctx context.Context, key string) string {
	return fieldString(ctx, entities.FieldTypeBody, key)
}

// SetBodyField sets a top-level field of a JSON request body.
func SetBodyField(ctx context.Context, key, value string) error {
	return SetField(ctx, entities.FieldTypeBody, key, value)
}

// Header returns a request header. Lookup is case-insensitive.
func Header(ctx context.Context, key string) string {
	return fieldString(ctx, entities.FieldTypeHeader, key)
}

// SetHeader sets a request header.
func SetHeader(ctx context.Context, key, value string) error {
	return SetField(ctx, entities.FieldTypeHeader, key, value)
}

// URLParam returns a named path parameter.
func URLParam(ctx context.Context, key string) string {
	return fieldString(ctx, entities.FieldTypeParams, key)
}

// SetURLParam sets a named path parameter.
func SetURLParam(ctx context.Context, key, value string) error {
	return SetField(ctx, entities.FieldTypeParams, key, value)
}

// QueryParam returns a parameter from the URL query string.
func QueryParam(ctx context.Context, key string) string {
	return fieldString(ctx, entities.FieldTypeQuery, key)
}

// State returns a value from the request state and whether it was present.
// A present value may be empty.
func State(ctx context.Context, key string) ([]byte, bool) {
	val, err := Field(ctx, entities.FieldTypeState, key)
	if err != nil {
		return nil, false
	}
	return val, true
}

// StateString is State for string values.
func StateString(ctx context.Context, key string) (string, bool) {
	val, ok := State(ctx, key)
	return string(val), ok
}

// SetState stores a value in the request state.
func SetState(ctx context.Context, key, value string) error {
	return SetField(ctx, entities.FieldTypeState, key, value)
}
