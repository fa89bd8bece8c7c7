package postgres

import (
	"context"

	"github.com/sqlshape/sqlshape/pkg/provider"
	"github.com/sqlshape/sqlshape/pkg/sqltype"
)

// NewRegistry builds the built-in PostgreSQL type registry.
func NewRegistry() *provider.StaticRegistry {
	return provider.NewStaticRegistry([]provider.TypeInfo{
		{Name: "boolean", Kind: sqltype.KindBool, Category: provider.CategoryBoolean, Aliases: []string{"bool"}},

		{Name: "smallint", Kind: sqltype.KindInt16, Category: provider.CategoryNumeric, Aliases: []string{"int2"},
			MinValue: provider.DecimalBound("-32768"), MaxValue: provider.DecimalBound("32767")},
		{Name: "integer", Kind: sqltype.KindInt32, Category: provider.CategoryNumeric, Aliases: []string{"int", "int4"},
			MinValue: provider.DecimalBound("-2147483648"), MaxValue: provider.DecimalBound("2147483647")},
		{Name: "bigint", Kind: sqltype.KindInt64, Category: provider.CategoryNumeric, Aliases: []string{"int8"},
			MinValue: provider.DecimalBound("-9223372036854775808"), MaxValue: provider.DecimalBound("9223372036854775807")},
		{Name: "real", Kind: sqltype.KindFloat32, Category: provider.CategoryNumeric, Aliases: []string{"float4"}},
		{Name: "double precision", Kind: sqltype.KindFloat64, Category: provider.CategoryNumeric, Aliases: []string{"float8"}},
		{Name: "numeric", Kind: sqltype.KindDecimal, Category: provider.CategoryNumeric, Aliases: []string{"decimal"},
			AcceptsPrecisionScale: true},
		{Name: "money", Kind: sqltype.KindDecimal, Category: provider.CategoryNumeric,
			MinValue: provider.DecimalBound("-92233720368547758.08"), MaxValue: provider.DecimalBound("92233720368547758.07")},
		{Name: "serial", Kind: sqltype.KindInt32, Category: provider.CategoryNumeric},
		{Name: "bigserial", Kind: sqltype.KindInt64, Category: provider.CategoryNumeric},

		{Name: "text", Kind: sqltype.KindString, Category: provider.CategoryString},
		{Name: "varchar", Kind: sqltype.KindString, Category: provider.CategoryString,
			Aliases: []string{"character varying"}, AcceptsLength: true, MaxLength: 10485760},
		{Name: "char", Kind: sqltype.KindChar, Category: provider.CategoryString,
			Aliases: []string{"character", "bpchar"}, AcceptsLength: true, MaxLength: 10485760},

		{Name: "bytea", Kind: sqltype.KindBinary, Category: provider.CategoryBinary},

		{Name: "date", Kind: sqltype.KindDate, Category: provider.CategoryTemporal},
		{Name: "time", Kind: sqltype.KindTime, Category: provider.CategoryTemporal, Aliases: []string{"time without time zone", "timetz", "time with time zone"}},
		{Name: "timestamp", Kind: sqltype.KindDateTime, Category: provider.CategoryTemporal, Aliases: []string{"timestamp without time zone"}},
		{Name: "timestamptz", Kind: sqltype.KindDateTimeOffset, Category: provider.CategoryTemporal, Aliases: []string{"timestamp with time zone"}},
		{Name: "interval", Kind: sqltype.KindInterval, Category: provider.CategoryTemporal},

		{Name: "json", Kind: sqltype.KindJSON, Category: provider.CategoryDocument},
		{Name: "jsonb", Kind: sqltype.KindJSON, Category: provider.CategoryDocument},
		{Name: "xml", Kind: sqltype.KindXML, Category: provider.CategoryDocument},

		{Name: "uuid", Kind: sqltype.KindGUID, Category: provider.CategoryOther},
		{Name: "inet", Kind: sqltype.KindNetwork, Category: provider.CategoryNetwork},
		{Name: "cidr", Kind: sqltype.KindNetwork, Category: provider.CategoryNetwork},
		{Name: "macaddr", Kind: sqltype.KindNetwork, Category: provider.CategoryNetwork, Aliases: []string{"macaddr8"}},
	})
}

const userTypesQuery = `
SELECT t.typname,
       CASE t.typtype WHEN 'e' THEN 'enum' WHEN 'd' THEN 'domain' ELSE 'composite' END
FROM pg_type t
JOIN pg_namespace n ON n.oid = t.typnamespace
WHERE n.nspname = $1
  AND t.typtype IN ('e', 'd', 'c')
  AND NOT EXISTS (SELECT 1 FROM pg_class c WHERE c.reltype = t.oid AND c.relkind <> 'c')
ORDER BY t.typname`

// DiscoverUserDefined loads enum, domain and composite types of one schema
// into the registry as Custom entries.
func DiscoverUserDefined(ctx context.Context, q provider.Querier, r *provider.StaticRegistry, schema string) error {
	rows, err := q.Query(ctx, userTypesQuery, schema)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var name, typtype string
		if err := rows.Scan(&name, &typtype); err != nil {
			return err
		}
		kind := sqltype.KindOpaque
		if typtype == "enum" {
			kind = sqltype.KindEnum
		}
		r.Add(provider.TypeInfo{
			Name:     name,
			Kind:     kind,
			Category: provider.CategoryUserTypes,
			Custom:   true,
		})
	}
	return rows.Err()
}
