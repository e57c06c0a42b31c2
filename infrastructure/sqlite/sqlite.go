// Package sqlite is the database backend behind db_exec.
//
// Modules cannot send SQL. The host prepares a fixed set of named queries and
// a module runs one by name, with exactly as many variables as it declares.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/reglet-dev/runnable-sdk/domain/entities"
)

var (
	ErrQueryNotFound     = errors.New("query not found")
	ErrQueryTypeMismatch = errors.New("query type incorrect")
	ErrQueryVarsMismatch = errors.New("number of variables incorrect")
)

// Query is a named, prepared statement.
type Query struct {
	Name     string `json:"name" yaml:"name" validate:"required"`
	Type     string `json:"type" yaml:"type" validate:"required,oneof=insert select update delete"`
	Query    string `json:"query" yaml:"query" validate:"required"`
	VarCount int    `json:"varCount" yaml:"varCount" validate:"min=0"`
}

type prepared struct {
	stmt     *sql.Stmt
	qt       entities.QueryType
	varCount int
}

// Database runs prepared queries against an SQLite database.
type Database struct {
	db      *sql.DB
	queries map[string]prepared
}

// Open opens the database at dsn (":memory:" for a private in-memory
// database), runs setup statements in order and prepares queries.
func Open(ctx context.Context, dsn string, setup []string, queries []Query) (*Database, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to Open")
	}
	// one connection so ":memory:" is shared by every statement
	db.SetMaxOpenConns(1)

	for _, stmt := range setup {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, errors.Wrapf(err, "failed to run setup statement %q", stmt)
		}
	}

	d := &Database{db: db, queries: make(map[string]prepared, len(queries))}
	for _, q := range queries {
		if err := d.Prepare(ctx, q); err != nil {
			_ = db.Close()
			return nil, errors.Wrapf(err, "failed to Prepare query %s", q.Name)
		}
	}
	return d, nil
}

// Prepare adds q, replacing any query with the same name.
func (d *Database) Prepare(ctx context.Context, q Query) error {
	qt, err := entities.QueryTypeFromString(q.Type)
	if err != nil {
		return err
	}

	if err := d.compile(ctx, q); err != nil {
		return err
	}

	stmt, err := d.db.PrepareContext(ctx, q.Query)
	if err != nil {
		return errors.Wrap(err, "failed to PrepareContext")
	}

	if old, ok := d.queries[q.Name]; ok {
		_ = old.stmt.Close()
	}
	d.queries[q.Name] = prepared{stmt: stmt, qt: qt, varCount: q.VarCount}
	return nil
}

// compile checks that q is valid SQL against the current schema. The driver
// compiles prepared statements on first use, so q is run under EXPLAIN, which
// compiles it without executing it. Its variables are bound to NULL.
func (d *Database) compile(ctx context.Context, q Query) error {
	rows, err := d.db.QueryContext(ctx, "EXPLAIN "+q.Query, make([]any, q.VarCount)...)
	if err != nil {
		return errors.Wrap(err, "failed to compile")
	}
	return rows.Close()
}

// Close releases the prepared statements and the database.
func (d *Database) Close() error {
	for _, q := range d.queries {
		_ = q.stmt.Close()
	}
	return d.db.Close()
}

// ExecQuery runs the query registered under name. qt must match its type.
func (d *Database) ExecQuery(ctx context.Context, qt entities.QueryType, name string, vars []any) ([]byte, error) {
	q, ok := d.queries[name]
	if !ok {
		return nil, errors.Wrapf(ErrQueryNotFound, "%q", name)
	}
	if q.qt != qt {
		return nil, errors.Wrapf(ErrQueryTypeMismatch, "%q is %s, not %s", name, q.qt, qt)
	}
	if q.varCount != len(vars) {
		return nil, errors.Wrapf(ErrQueryVarsMismatch, "expected %d variables, got %d", q.varCount, len(vars))
	}

	switch qt {
	case entities.QueryTypeSelect:
		return d.query(ctx, q.stmt, vars)
	case entities.QueryTypeInsert:
		res, err := q.stmt.ExecContext(ctx, vars...)
		if err != nil {
			return nil, errors.Wrap(err, "failed to Exec")
		}
		// 0 is a valid answer when the driver has none
		id, _ := res.LastInsertId()
		return marshal(struct {
			LastInsertID int64 `json:"lastInsertID"`
		}{id})
	default:
		res, err := q.stmt.ExecContext(ctx, vars...)
		if err != nil {
			return nil, errors.Wrap(err, "failed to Exec")
		}
		n, _ := res.RowsAffected()
		return marshal(struct {
			RowsAffected int64 `json:"rowsAffected"`
		}{n})
	}
}

func (d *Database) query(ctx context.Context, stmt *sql.Stmt, vars []any) ([]byte, error) {
	rows, err := stmt.QueryContext(ctx, vars...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to Query")
	}
	defer rows.Close()

	result, err := rowsToMaps(rows)
	if err != nil {
		return nil, errors.Wrap(err, "failed to rowsToMaps")
	}
	return marshal(result)
}

// rowsToMaps reads every row into a map keyed by column name.
// BLOB and TEXT both come back as strings.
func rowsToMaps(rows *sql.Rows) ([]map[string]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get Columns")
	}

	results := []map[string]any{}
	for rows.Next() {
		vals := make([]any, len(cols))
		dest := make([]any, len(cols))
		for i := range vals {
			dest[i] = &vals[i]
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, errors.Wrap(err, "failed to Scan row")
		}

		row := make(map[string]any, len(cols))
		for i, c := range cols {
			if b, ok := vals[i].([]byte); ok {
				row[c] = string(b)
				continue
			}
			row[c] = vals[i]
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate rows")
	}
	return results, nil
}

func marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	return data, errors.Wrap(err, "failed to Marshal result")
}
