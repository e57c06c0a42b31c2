package sqlite

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/runnable-sdk/domain/entities"
)

func openTestDB(t *testing.T) *Database {
	t.Helper()

	db, err := Open(context.Background(), ":memory:",
		[]string{"CREATE TABLE users (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL, age INTEGER)"},
		[]Query{
			{Name: "InsertUser", Type: "insert", VarCount: 2, Query: "INSERT INTO users (name, age) VALUES (?, ?)"},
			{Name: "SelectUser", Type: "select", VarCount: 1, Query: "SELECT id, name, age FROM users WHERE name = ?"},
			{Name: "UpdateAge", Type: "update", VarCount: 2, Query: "UPDATE users SET age = ? WHERE name = ?"},
			{Name: "DeleteUser", Type: "delete", VarCount: 1, Query: "DELETE FROM users WHERE name = ?"},
		},
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDatabase_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	out, err := db.ExecQuery(ctx, entities.QueryTypeInsert, "InsertUser", []any{"alice", "30"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"lastInsertID":1}`, string(out))

	out, err = db.ExecQuery(ctx, entities.QueryTypeSelect, "SelectUser", []any{"alice"})
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(out, &rows))
	want := []map[string]any{{"id": float64(1), "name": "alice", "age": float64(30)}}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("select rows mismatch (-want +got):\n%s", diff)
	}

	out, err = db.ExecQuery(ctx, entities.QueryTypeUpdate, "UpdateAge", []any{"31", "alice"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"rowsAffected":1}`, string(out))

	out, err = db.ExecQuery(ctx, entities.QueryTypeDelete, "DeleteUser", []any{"alice"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"rowsAffected":1}`, string(out))

	out, err = db.ExecQuery(ctx, entities.QueryTypeSelect, "SelectUser", []any{"alice"})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))
}

func TestDatabase_Errors(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.ExecQuery(ctx, entities.QueryTypeSelect, "Nope", nil)
	assert.ErrorIs(t, err, ErrQueryNotFound)

	_, err = db.ExecQuery(ctx, entities.QueryTypeSelect, "InsertUser", []any{"a", "1"})
	assert.ErrorIs(t, err, ErrQueryTypeMismatch)

	_, err = db.ExecQuery(ctx, entities.QueryTypeInsert, "InsertUser", []any{"a"})
	assert.ErrorIs(t, err, ErrQueryVarsMismatch)
}

func TestOpen_InvalidQuery(t *testing.T) {
	setup := []string{"CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT)"}

	tests := []struct {
		name  string
		query Query
	}{
		{name: "syntax", query: Query{Name: "Bad", Type: "select", Query: "SELECT FROM nowhere"}},
		{name: "unknown table", query: Query{Name: "Missing", Type: "select", Query: "SELECT * FROM accounts"}},
		{name: "unknown column", query: Query{Name: "Column", Type: "insert", VarCount: 1, Query: "INSERT INTO users (email) VALUES (?)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(context.Background(), ":memory:", setup, []Query{tt.query})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to Prepare query "+tt.query.Name)
		})
	}

	_, err := Open(context.Background(), ":memory:", nil, []Query{
		{Name: "BadType", Type: "upsert", Query: "SELECT 1"},
	})
	assert.ErrorIs(t, err, entities.ErrInvalidWireCode)
}

func TestOpen_CompileDoesNotExecute(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Prepare(context.Background(), Query{
		Name: "InsertAnon", Type: "insert", Query: "INSERT INTO users (name) VALUES ('anon')",
	}))
	out, err := db.ExecQuery(context.Background(), entities.QueryTypeSelect, "SelectUser", []any{"anon"})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))
}
