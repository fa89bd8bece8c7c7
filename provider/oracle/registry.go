package oracle

import (
	"context"

	"github.com/sqlshape/sqlshape/pkg/provider"
	"github.com/sqlshape/sqlshape/pkg/sqltype"
)

// NewRegistry builds the built-in Oracle type registry.
func NewRegistry() *provider.StaticRegistry {
	return provider.NewStaticRegistry([]provider.TypeInfo{
		// NUMBER(38) is the widest exact numeric the engine stores.
		{Name: "number", Kind: sqltype.KindDecimal, Category: provider.CategoryNumeric,
			Aliases:               []string{"numeric", "decimal", "integer", "int", "smallint"},
			AcceptsPrecisionScale: true,
			MinValue:              provider.DecimalBound("-99999999999999999999999999999999999999"),
			MaxValue:              provider.DecimalBound("99999999999999999999999999999999999999")},
		{Name: "binary_float", Kind: sqltype.KindFloat32, Category: provider.CategoryNumeric},
		{Name: "binary_double", Kind: sqltype.KindFloat64, Category: provider.CategoryNumeric, Aliases: []string{"float", "double precision"}},

		{Name: "varchar2", Kind: sqltype.KindString, Category: provider.CategoryString,
			Aliases: []string{"varchar"}, AcceptsLength: true, MaxLength: 4000},
		{Name: "nvarchar2", Kind: sqltype.KindString, Category: provider.CategoryString, AcceptsLength: true, MaxLength: 4000},
		{Name: "char", Kind: sqltype.KindChar, Category: provider.CategoryString, AcceptsLength: true, MaxLength: 2000},
		{Name: "nchar", Kind: sqltype.KindChar, Category: provider.CategoryString, AcceptsLength: true, MaxLength: 2000},
		{Name: "clob", Kind: sqltype.KindString, Category: provider.CategoryString},
		{Name: "nclob", Kind: sqltype.KindString, Category: provider.CategoryString},
		{Name: "long", Kind: sqltype.KindString, Category: provider.CategoryString},

		{Name: "raw", Kind: sqltype.KindBinary, Category: provider.CategoryBinary, AcceptsLength: true, MaxLength: 2000},
		{Name: "blob", Kind: sqltype.KindBinary, Category: provider.CategoryBinary},
		{Name: "bfile", Kind: sqltype.KindBinary, Category: provider.CategoryBinary},
		{Name: "long raw", Kind: sqltype.KindBinary, Category: provider.CategoryBinary},

		{Name: "date", Kind: sqltype.KindDateTime, Category: provider.CategoryTemporal},
		{Name: "timestamp", Kind: sqltype.KindDateTime, Category: provider.CategoryTemporal},
		{Name: "timestamp with time zone", Kind: sqltype.KindDateTimeOffset, Category: provider.CategoryTemporal},
		{Name: "timestamp with local time zone", Kind: sqltype.KindDateTimeOffset, Category: provider.CategoryTemporal},
		{Name: "interval day to second", Kind: sqltype.KindInterval, Category: provider.CategoryTemporal},
		{Name: "interval year to month", Kind: sqltype.KindInterval, Category: provider.CategoryTemporal},

		{Name: "json", Kind: sqltype.KindJSON, Category: provider.CategoryDocument},
		{Name: "xmltype", Kind: sqltype.KindXML, Category: provider.CategoryDocument, Aliases: []string{"sys.xmltype"}},

		{Name: "rowid", Kind: sqltype.KindOpaque, Category: provider.CategoryOther, Aliases: []string{"urowid"}},
		{Name: "sdo_geometry", Kind: sqltype.KindGeometry, Category: provider.CategorySpatial},
	})
}

const userTypesQuery = `
SELECT type_name, typecode
FROM all_types
WHERE owner = COALESCE(NULLIF(:1, ''), SYS_CONTEXT('USERENV', 'CURRENT_SCHEMA'))
ORDER BY type_name`

// DiscoverUserDefined loads object and collection types of one schema into
// the registry as Custom entries.
func DiscoverUserDefined(ctx context.Context, q provider.Querier, r *provider.StaticRegistry, schema string) error {
	rows, err := q.Query(ctx, userTypesQuery, schema)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var name, typecode string
		if err := rows.Scan(&name, &typecode); err != nil {
			return err
		}
		r.Add(provider.TypeInfo{
			Name:     name,
			Kind:     sqltype.KindOpaque,
			Category: provider.CategoryUserTypes,
			Custom:   true,
		})
	}
	return rows.Err()
}
