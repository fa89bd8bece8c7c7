package mssql

import (
	"context"

	"github.com/sqlshape/sqlshape/pkg/provider"
	"github.com/sqlshape/sqlshape/pkg/sqltype"
)

// NewRegistry builds the built-in SQL Server type registry.
func NewRegistry() *provider.StaticRegistry {
	return provider.NewStaticRegistry([]provider.TypeInfo{
		{Name: "bit", Kind: sqltype.KindBool, Category: provider.CategoryBoolean},

		{Name: "tinyint", Kind: sqltype.KindInt16, Category: provider.CategoryNumeric,
			MinValue: provider.DecimalBound("0"), MaxValue: provider.DecimalBound("255")},
		{Name: "smallint", Kind: sqltype.KindInt16, Category: provider.CategoryNumeric,
			MinValue: provider.DecimalBound("-32768"), MaxValue: provider.DecimalBound("32767")},
		{Name: "int", Kind: sqltype.KindInt32, Category: provider.CategoryNumeric,
			MinValue: provider.DecimalBound("-2147483648"), MaxValue: provider.DecimalBound("2147483647")},
		{Name: "bigint", Kind: sqltype.KindInt64, Category: provider.CategoryNumeric,
			MinValue: provider.DecimalBound("-9223372036854775808"), MaxValue: provider.DecimalBound("9223372036854775807")},
		{Name: "real", Kind: sqltype.KindFloat32, Category: provider.CategoryNumeric},
		{Name: "float", Kind: sqltype.KindFloat64, Category: provider.CategoryNumeric},
		{Name: "decimal", Kind: sqltype.KindDecimal, Category: provider.CategoryNumeric, Aliases: []string{"numeric"},
			AcceptsPrecisionScale: true,
			MinValue:              provider.DecimalBound("-99999999999999999999999999999999999999"),
			MaxValue:              provider.DecimalBound("99999999999999999999999999999999999999")},
		{Name: "money", Kind: sqltype.KindDecimal, Category: provider.CategoryNumeric,
			MinValue: provider.DecimalBound("-922337203685477.5808"), MaxValue: provider.DecimalBound("922337203685477.5807")},
		{Name: "smallmoney", Kind: sqltype.KindDecimal, Category: provider.CategoryNumeric,
			MinValue: provider.DecimalBound("-214748.3648"), MaxValue: provider.DecimalBound("214748.3647")},

		{Name: "varchar", Kind: sqltype.KindString, Category: provider.CategoryString, AcceptsLength: true, MaxLength: 8000},
		{Name: "nvarchar", Kind: sqltype.KindString, Category: provider.CategoryString, AcceptsLength: true, MaxLength: 4000},
		{Name: "char", Kind: sqltype.KindChar, Category: provider.CategoryString, AcceptsLength: true, MaxLength: 8000},
		{Name: "nchar", Kind: sqltype.KindChar, Category: provider.CategoryString, AcceptsLength: true, MaxLength: 4000},
		{Name: "text", Kind: sqltype.KindString, Category: provider.CategoryString},
		{Name: "ntext", Kind: sqltype.KindString, Category: provider.CategoryString},

		{Name: "binary", Kind: sqltype.KindBinary, Category: provider.CategoryBinary, AcceptsLength: true, MaxLength: 8000},
		{Name: "varbinary", Kind: sqltype.KindBinary, Category: provider.CategoryBinary, AcceptsLength: true, MaxLength: 8000},
		{Name: "image", Kind: sqltype.KindBinary, Category: provider.CategoryBinary},
		{Name: "rowversion", Kind: sqltype.KindBinary, Category: provider.CategoryBinary, Aliases: []string{"timestamp"}},

		{Name: "date", Kind: sqltype.KindDate, Category: provider.CategoryTemporal},
		{Name: "time", Kind: sqltype.KindTime, Category: provider.CategoryTemporal},
		{Name: "datetime", Kind: sqltype.KindDateTime, Category: provider.CategoryTemporal},
		{Name: "datetime2", Kind: sqltype.KindDateTime, Category: provider.CategoryTemporal},
		{Name: "smalldatetime", Kind: sqltype.KindDateTime, Category: provider.CategoryTemporal},
		{Name: "datetimeoffset", Kind: sqltype.KindDateTimeOffset, Category: provider.CategoryTemporal},

		{Name: "xml", Kind: sqltype.KindXML, Category: provider.CategoryDocument},

		{Name: "uniqueidentifier", Kind: sqltype.KindGUID, Category: provider.CategoryOther},
		{Name: "sql_variant", Kind: sqltype.KindOpaque, Category: provider.CategoryOther},
		{Name: "hierarchyid", Kind: sqltype.KindOpaque, Category: provider.CategoryOther},

		{Name: "geometry", Kind: sqltype.KindGeometry, Category: provider.CategorySpatial},
		{Name: "geography", Kind: sqltype.KindGeography, Category: provider.CategorySpatial},
	})
}

const userTypesQuery = `
SELECT ty.name, bt.name
FROM sys.types ty
JOIN sys.schemas s ON s.schema_id = ty.schema_id
LEFT JOIN sys.types bt ON bt.user_type_id = ty.system_type_id AND bt.is_user_defined = 0
WHERE ty.is_user_defined = 1 AND s.name = @p1
ORDER BY ty.name`

// DiscoverUserDefined loads alias types of one schema into the registry as
// Custom entries carrying the kind of their base type.
func DiscoverUserDefined(ctx context.Context, q provider.Querier, r *provider.StaticRegistry, schema string) error {
	rows, err := q.Query(ctx, userTypesQuery, schema)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var baseName *string
		if err := rows.Scan(&name, &baseName); err != nil {
			return err
		}
		kind := sqltype.KindOpaque
		if baseName != nil {
			if base, ok := r.Describe(*baseName); ok {
				kind = base.Kind
			}
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
