// Package dialect provides a shared registry describing the SQL dialects
// supported by sqlshape. Consumers import this package to make decisions based
// on uniform metadata (default schemas, type-resolution defaults, constraint
// naming scope).
//
// Minimal usage example:
//
//	import "github.com/sqlshape/sqlshape/pkg/dialect"
//
//	func ceiling(db string) int {
//	    id, _ := dialect.ParseID(db)
//	    return dialect.MustGet(id).TypeDefaults.MaxStringLength
//	}
//
// The package exposes constants for IDs (e.g., dialect.Postgres) and a
// registry `All` for advanced consumers.
package dialect
