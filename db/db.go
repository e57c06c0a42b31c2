// Package db executes queries the host has prepared by name.
//
// Arguments are sent to the host one at a time before the query itself runs.
// Insert returns {"lastInsertID": n}, Update and Delete return
// {"rowsAffected": n}, Select returns a JSON array of rows keyed by column.
package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/reglet-dev/runnable-sdk/domain/entities"
	"github.com/reglet-dev/runnable-sdk/internal/ffi"
)

// Arg is a named query argument.
type Arg struct {
	Name  string
	Value string
}

// NewArg creates an Arg.
func NewArg(name, value string) Arg {
	return Arg{Name: name, Value: value}
}

// InsertResult is the payload returned by Insert.
type InsertResult struct {
	LastInsertID int64 `json:"lastInsertID"`
}

// ExecResult is the payload returned by Update and Delete.
type ExecResult struct {
	RowsAffected int64 `json:"rowsAffected"`
}

// Insert runs the named insert query.
func Insert(ctx context.Context, name string, args ...Arg) ([]byte, error) {
	return exec(ctx, entities.QueryTypeInsert, name, args)
}

// Select runs the named select query.
func Select(ctx context.Context, name string, args ...Arg) ([]byte, error) {
	return exec(ctx, entities.QueryTypeSelect, name, args)
}

// Update runs the named update query.
func Update(ctx context.Context, name string, args ...Arg) ([]byte, error) {
	return exec(ctx, entities.QueryTypeUpdate, name, args)
}

// Delete runs the named delete query.
func Delete(ctx context.Context, name string, args ...Arg) ([]byte, error) {
	return exec(ctx, entities.QueryTypeDelete, name, args)
}

// InsertID runs the named insert query and decodes its result.
func InsertID(ctx context.Context, name string, args ...Arg) (int64, error) {
	payload, err := Insert(ctx, name, args...)
	if err != nil {
		return 0, err
	}

	var res InsertResult
	if err := json.Unmarshal(payload, &res); err != nil {
		return 0, fmt.Errorf("db: decode insert result: %w", err)
	}
	return res.LastInsertID, nil
}

// RowsAffected decodes the result of Update or Delete.
func RowsAffected(payload []byte) (int64, error) {
	var res ExecResult
	if err := json.Unmarshal(payload, &res); err != nil {
		return 0, fmt.Errorf("db: decode exec result: %w", err)
	}
	return res.RowsAffected, nil
}

// SelectInto runs the named select query and decodes the rows into dest.
func SelectInto(ctx context.Context, name string, dest any, args ...Arg) error {
	payload, err := Select(ctx, name, args...)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("db: decode rows: %w", err)
	}
	return nil
}

func exec(ctx context.Context, queryType entities.QueryType, name string, args []Arg) ([]byte, error) {
	env, err := ffi.Lookup(ctx)
	if err != nil {
		return nil, err
	}

	for _, arg := range args {
		if err := addVar(env, arg); err != nil {
			return nil, err
		}
	}

	nameAddr, nameLen, release := env.PassString(name)
	defer release()

	size := env.Host().DBExec(queryType.Code(), nameAddr, nameLen, env.Ident())
	return env.Result(size)
}

func addVar(env *ffi.Env, arg Arg) error {
	nameAddr, nameLen, releaseName := env.PassString(arg.Name)
	defer releaseName()
	valAddr, valLen, releaseVal := env.PassString(arg.Value)
	defer releaseVal()

	if status := env.Host().AddFFIVar(nameAddr, nameLen, valAddr, valLen, env.Ident()); status != 0 {
		return entities.ErrUnknownHost
	}
	return nil
}
