// Package providertest contains an in-memory Querier for exercising
// introspection pipelines without a live database.
package providertest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sqlshape/sqlshape/pkg/provider"
)

// RowSet is one canned result: rows of column values in query order.
type RowSet struct {
	Rows [][]any
	// FailScan, when set, makes Scan fail on the row with this index.
	FailScan int
	// Err is reported by Err after the cursor is exhausted.
	Err error

	pos int
}

// FakeQuerier serves canned row sets keyed by a marker substring of the SQL
// text. The first marker found in the incoming query wins; a query matching
// no marker is an error, which keeps tests honest about which statements a
// pipeline actually issues.
type FakeQuerier struct {
	mu      sync.Mutex
	markers []string
	results map[string]*RowSet
	errs    map[string]error

	// Queries records every SQL text received, in order.
	Queries []string
	// Args records the bind arguments of every query, in order.
	Args [][]any
}

// NewFakeQuerier creates an empty fake.
func NewFakeQuerier() *FakeQuerier {
	return &FakeQuerier{
		results: make(map[string]*RowSet),
		errs:    make(map[string]error),
	}
}

// On registers rows for queries containing marker.
func (f *FakeQuerier) On(marker string, rows [][]any) *FakeQuerier {
	f.markers = append(f.markers, marker)
	f.results[marker] = &RowSet{Rows: rows, FailScan: -1}
	return f
}

// OnError makes queries containing marker fail outright.
func (f *FakeQuerier) OnError(marker string, err error) *FakeQuerier {
	f.markers = append(f.markers, marker)
	f.errs[marker] = err
	return f
}

// Query implements provider.Querier. It honors context cancellation before
// matching, like a real driver would.
func (f *FakeQuerier) Query(ctx context.Context, query string, args ...any) (provider.Rows, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.Queries = append(f.Queries, query)
	f.Args = append(f.Args, args)
	f.mu.Unlock()

	for _, marker := range f.markers {
		if !strings.Contains(query, marker) {
			continue
		}
		if err, ok := f.errs[marker]; ok {
			return nil, err
		}
		rs := f.results[marker]
		return &fakeRows{set: &RowSet{Rows: rs.Rows, FailScan: rs.FailScan, Err: rs.Err}}, nil
	}
	return nil, fmt.Errorf("providertest: unexpected query: %s", query)
}

type fakeRows struct {
	set *RowSet
}

func (r *fakeRows) Next() bool {
	return r.set.pos < len(r.set.Rows)
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.set.pos >= len(r.set.Rows) {
		return fmt.Errorf("providertest: Scan past end of rows")
	}
	row := r.set.Rows[r.set.pos]
	if r.set.FailScan == r.set.pos {
		r.set.pos++
		return fmt.Errorf("providertest: injected scan failure")
	}
	r.set.pos++
	if len(dest) != len(row) {
		return fmt.Errorf("providertest: Scan got %d targets for %d columns", len(dest), len(row))
	}
	for i, src := range row {
		if err := assign(dest[i], src); err != nil {
			return fmt.Errorf("providertest: column %d: %w", i, err)
		}
	}
	return nil
}

func (r *fakeRows) Err() error { return r.set.Err }
func (r *fakeRows) Close()     {}

func assign(dest, src any) error {
	switch d := dest.(type) {
	case *string:
		if src == nil {
			*d = ""
			return nil
		}
		s, ok := src.(string)
		if !ok {
			return fmt.Errorf("cannot scan %T into *string", src)
		}
		*d = s
	case **string:
		if src == nil {
			*d = nil
			return nil
		}
		s, ok := src.(string)
		if !ok {
			return fmt.Errorf("cannot scan %T into **string", src)
		}
		*d = &s
	case *int64:
		n, err := toInt64(src)
		if err != nil {
			return err
		}
		*d = n
	case **int64:
		if src == nil {
			*d = nil
			return nil
		}
		n, err := toInt64(src)
		if err != nil {
			return err
		}
		*d = &n
	case *int:
		n, err := toInt64(src)
		if err != nil {
			return err
		}
		*d = int(n)
	case *bool:
		if src == nil {
			*d = false
			return nil
		}
		b, ok := src.(bool)
		if !ok {
			return fmt.Errorf("cannot scan %T into *bool", src)
		}
		*d = b
	case *any:
		*d = src
	default:
		return fmt.Errorf("unsupported scan target %T", dest)
	}
	return nil
}

func toInt64(src any) (int64, error) {
	switch n := src.(type) {
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("cannot scan %T into integer", src)
	}
}
