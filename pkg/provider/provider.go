package provider

import (
	"context"
	"fmt"

	"github.com/sqlshape/sqlshape/pkg/dialect"
	"github.com/sqlshape/sqlshape/pkg/model"
	"github.com/sqlshape/sqlshape/pkg/sqltype"
)

// IntrospectOptions narrows what Introspect reads from the catalog.
type IntrospectOptions struct {
	// Schema selects the namespace to introspect. Empty means the dialect's
	// default schema.
	Schema string

	// Table restricts introspection to a single table by exact name. Empty
	// means every table in the schema.
	Table string

	// TablePattern restricts introspection to tables matching a SQL LIKE
	// pattern, e.g. "order%". Table takes precedence when both are set.
	TablePattern string
}

// Provider is one dialect's full surface: type resolution, the data type
// registry, and catalog introspection. Implementations are stateless apart
// from the connection they are given; one provider value is safe for
// concurrent use.
type Provider interface {
	// Dialect identifies which engine this provider speaks to.
	Dialect() dialect.ID

	// TypeMap returns the dialect's resolution chains. The returned map is
	// shared and must be treated as read-only after startup.
	TypeMap() *sqltype.Map

	// DataTypes returns the dialect's native type registry.
	DataTypes() Registry

	// ListTables returns the table names of the selected schema in
	// lexicographic order.
	ListTables(ctx context.Context, q Querier, opts IntrospectOptions) ([]string, error)

	// Introspect reads the catalog and returns a normalized snapshot. It is
	// atomic: any phase failure returns a nil schema and an
	// IntrospectionError naming the phase.
	Introspect(ctx context.Context, q Querier, opts IntrospectOptions) (*model.Schema, error)
}

// IntrospectTable introspects exactly one table. A table absent from the
// catalog is ErrTableNotFound rather than an empty snapshot.
func IntrospectTable(ctx context.Context, p Provider, q Querier, schema, table string) (*model.Schema, error) {
	s, err := p.Introspect(ctx, q, IntrospectOptions{Schema: schema, Table: table})
	if err != nil {
		return nil, err
	}
	if len(s.Tables) == 0 {
		return nil, fmt.Errorf("%w: %s.%s", ErrTableNotFound, schema, table)
	}
	return s, nil
}
