// Package postgres implements type resolution and catalog introspection for
// PostgreSQL. Catalog reads go through pg_catalog and information_schema;
// aggregation of constraint and index member columns happens server-side so
// ordering is pinned by the queries themselves.
package postgres
