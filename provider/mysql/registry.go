package mysql

import (
	"context"
	"strings"

	"github.com/sqlshape/sqlshape/pkg/provider"
	"github.com/sqlshape/sqlshape/pkg/sqltype"
)

// NewRegistry builds the built-in MySQL type registry.
func NewRegistry() *provider.StaticRegistry {
	return provider.NewStaticRegistry([]provider.TypeInfo{
		{Name: "tinyint", Kind: sqltype.KindInt8, Category: provider.CategoryNumeric,
			MinValue: provider.DecimalBound("-128"), MaxValue: provider.DecimalBound("127")},
		{Name: "smallint", Kind: sqltype.KindInt16, Category: provider.CategoryNumeric,
			MinValue: provider.DecimalBound("-32768"), MaxValue: provider.DecimalBound("32767")},
		{Name: "mediumint", Kind: sqltype.KindInt32, Category: provider.CategoryNumeric,
			MinValue: provider.DecimalBound("-8388608"), MaxValue: provider.DecimalBound("8388607")},
		{Name: "int", Kind: sqltype.KindInt32, Category: provider.CategoryNumeric, Aliases: []string{"integer"},
			MinValue: provider.DecimalBound("-2147483648"), MaxValue: provider.DecimalBound("2147483647")},
		{Name: "bigint", Kind: sqltype.KindInt64, Category: provider.CategoryNumeric,
			MinValue: provider.DecimalBound("-9223372036854775808"), MaxValue: provider.DecimalBound("9223372036854775807")},
		{Name: "float", Kind: sqltype.KindFloat32, Category: provider.CategoryNumeric},
		{Name: "double", Kind: sqltype.KindFloat64, Category: provider.CategoryNumeric, Aliases: []string{"real"}},
		// DECIMAL(65) is the widest exact numeric MySQL stores.
		{Name: "decimal", Kind: sqltype.KindDecimal, Category: provider.CategoryNumeric, Aliases: []string{"numeric"},
			AcceptsPrecisionScale: true,
			MinValue:              provider.DecimalBound("-99999999999999999999999999999999999999999999999999999999999999999"),
			MaxValue:              provider.DecimalBound("99999999999999999999999999999999999999999999999999999999999999999")},
		{Name: "bit", Kind: sqltype.KindBinary, Category: provider.CategoryNumeric, AcceptsLength: true, MaxLength: 64},
		{Name: "year", Kind: sqltype.KindInt16, Category: provider.CategoryTemporal},

		{Name: "varchar", Kind: sqltype.KindString, Category: provider.CategoryString, AcceptsLength: true, MaxLength: 65535},
		{Name: "char", Kind: sqltype.KindChar, Category: provider.CategoryString, AcceptsLength: true, MaxLength: 255},
		{Name: "tinytext", Kind: sqltype.KindString, Category: provider.CategoryString},
		{Name: "text", Kind: sqltype.KindString, Category: provider.CategoryString},
		{Name: "mediumtext", Kind: sqltype.KindString, Category: provider.CategoryString},
		{Name: "longtext", Kind: sqltype.KindString, Category: provider.CategoryString},

		{Name: "binary", Kind: sqltype.KindBinary, Category: provider.CategoryBinary, AcceptsLength: true, MaxLength: 255},
		{Name: "varbinary", Kind: sqltype.KindBinary, Category: provider.CategoryBinary, AcceptsLength: true, MaxLength: 65535},
		{Name: "tinyblob", Kind: sqltype.KindBinary, Category: provider.CategoryBinary},
		{Name: "blob", Kind: sqltype.KindBinary, Category: provider.CategoryBinary},
		{Name: "mediumblob", Kind: sqltype.KindBinary, Category: provider.CategoryBinary},
		{Name: "longblob", Kind: sqltype.KindBinary, Category: provider.CategoryBinary},

		{Name: "date", Kind: sqltype.KindDate, Category: provider.CategoryTemporal},
		{Name: "time", Kind: sqltype.KindTime, Category: provider.CategoryTemporal},
		{Name: "datetime", Kind: sqltype.KindDateTime, Category: provider.CategoryTemporal},
		{Name: "timestamp", Kind: sqltype.KindDateTimeOffset, Category: provider.CategoryTemporal},

		{Name: "json", Kind: sqltype.KindJSON, Category: provider.CategoryDocument},

		{Name: "enum", Kind: sqltype.KindEnum, Category: provider.CategoryOther},
		{Name: "set", Kind: sqltype.KindOpaque, Category: provider.CategoryOther},

		{Name: "geometry", Kind: sqltype.KindGeometry, Category: provider.CategorySpatial,
			Aliases: []string{"point", "linestring", "polygon", "multipoint", "multilinestring", "multipolygon", "geometrycollection"}},
	})
}

const enumColumnsQuery = `
SELECT DISTINCT c.COLUMN_TYPE
FROM information_schema.COLUMNS c
WHERE c.TABLE_SCHEMA = COALESCE(NULLIF(?, ''), DATABASE())
  AND c.DATA_TYPE IN ('enum', 'set')
ORDER BY c.COLUMN_TYPE`

// DiscoverUserDefined registers the schema's enum and set column shapes.
// MySQL has no standalone user-defined types; enums live inline in the
// column definition, so each distinct definition becomes one Custom entry.
func DiscoverUserDefined(ctx context.Context, q provider.Querier, r *provider.StaticRegistry, schema string) error {
	rows, err := q.Query(ctx, enumColumnsQuery, schema)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var columnType string
		if err := rows.Scan(&columnType); err != nil {
			return err
		}
		kind := sqltype.KindEnum
		if strings.HasPrefix(strings.ToLower(columnType), "set(") {
			kind = sqltype.KindOpaque
		}
		r.Add(provider.TypeInfo{
			Name:     columnType,
			Kind:     kind,
			Category: provider.CategoryUserTypes,
			Custom:   true,
		})
	}
	return rows.Err()
}
