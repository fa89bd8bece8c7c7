package provider

import (
	"context"
	"database/sql"
)

// Rows is the minimal row cursor the introspection pipelines consume.
// Both pgx rows and database/sql rows adapt onto it.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// Querier is the host-provided connection: anything able to execute a
// parameterized text query and return rows. Every catalog query goes through
// it and honors the context's cancellation.
type Querier interface {
	Query(ctx context.Context, query string, args ...any) (Rows, error)
}

// DBQuerier adapts a database/sql handle to Querier. The mysql, mssql and
// oracle providers connect through their drivers and wrap the resulting
// *sql.DB here.
type DBQuerier struct {
	DB *sql.DB
}

// Query implements Querier.
func (q DBQuerier) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := q.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return sqlRows{rows}, nil
}

type sqlRows struct {
	rows *sql.Rows
}

func (r sqlRows) Next() bool             { return r.rows.Next() }
func (r sqlRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r sqlRows) Err() error             { return r.rows.Err() }
func (r sqlRows) Close()                 { _ = r.rows.Close() }
