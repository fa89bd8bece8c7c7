package mssql

import (
	"github.com/sqlshape/sqlshape/pkg/dialect"
	"github.com/sqlshape/sqlshape/pkg/sqltype"
)

func sql(t sqltype.SQLType) *sqltype.SQLType { return &t }

func sem(s sqltype.SemanticType) *sqltype.SemanticType { return &s }

// nonUnicodeMaxLength is the varchar/char ceiling; the nvarchar/nchar ceiling
// comes from the dialect capability (4000).
const nonUnicodeMaxLength = 8000

// NewTypeMap builds the SQL Server resolution chains with the built-in
// defaults.
func NewTypeMap() *sqltype.Map {
	return NewTypeMapWith(sqltype.ContextFor(dialect.SQLServer))
}

// NewTypeMapWith builds the chains against a caller-supplied resolution
// context, such as one produced from a config profile.
func NewTypeMapWith(ctx sqltype.Context) *sqltype.Map {
	m := sqltype.NewMap(ctx, forwardFallback, reverseFallback)
	registerForward(m)
	registerReverse(m)
	return m
}

// forwardFallback sends opaque data to sql_variant, the engine's dynamic
// type; anything else unclassified becomes unbounded unicode text.
func forwardFallback(s sqltype.SemanticType, ctx sqltype.Context) sqltype.SQLType {
	if s.Kind == sqltype.KindOpaque {
		return sqltype.Plain("sql_variant")
	}
	return sqltype.LargeObject("nvarchar(max)")
}

func reverseFallback(name string, meta sqltype.CatalogMeta, ctx sqltype.Context) sqltype.SemanticType {
	return sqltype.Semantic(sqltype.KindOpaque)
}

func registerForward(m *sqltype.Map) {
	m.RegisterForward(sqltype.AffinityBoolean, func(s sqltype.SemanticType, ctx sqltype.Context) *sqltype.SQLType {
		if s.Kind != sqltype.KindBool {
			return nil
		}
		return sql(sqltype.Plain("bit"))
	})

	m.RegisterForward(sqltype.AffinityNumeric, func(s sqltype.SemanticType, ctx sqltype.Context) *sqltype.SQLType {
		switch s.Kind {
		case sqltype.KindInt8:
			return sql(sqltype.Plain("smallint"))
		case sqltype.KindInt16:
			return sql(sqltype.Plain("smallint"))
		case sqltype.KindInt32:
			return sql(sqltype.Plain("int"))
		case sqltype.KindInt64:
			return sql(sqltype.Plain("bigint"))
		case sqltype.KindFloat32:
			return sql(sqltype.Plain("real"))
		case sqltype.KindFloat64:
			return sql(sqltype.Plain("float"))
		case sqltype.KindDecimal:
			p, sc := ctx.DecimalShape(s)
			return sql(sqltype.Sized("decimal", p, sc))
		}
		return nil
	})

	m.RegisterForward(sqltype.AffinityTemporal, func(s sqltype.SemanticType, ctx sqltype.Context) *sqltype.SQLType {
		switch s.Kind {
		case sqltype.KindDate:
			return sql(sqltype.Plain("date"))
		case sqltype.KindTime:
			return sql(sqltype.Plain("time"))
		case sqltype.KindDateTime:
			return sql(sqltype.Plain("datetime2"))
		case sqltype.KindDateTimeOffset:
			return sql(sqltype.Plain("datetimeoffset"))
		}
		return nil
	})

	m.RegisterForward(sqltype.AffinityText, func(s sqltype.SemanticType, ctx sqltype.Context) *sqltype.SQLType {
		if s.Kind != sqltype.KindString && s.Kind != sqltype.KindChar {
			return nil
		}
		unicode := s.Unicode || ctx.UnicodeByDefault
		length := ctx.StringLength(s)

		ceiling := ctx.MaxStringLength
		base, lob := "varchar", "varchar(max)"
		if unicode {
			base, lob = "nvarchar", "nvarchar(max)"
		} else {
			ceiling = nonUnicodeMaxLength
		}
		if length == sqltype.LengthUnbounded || length > ceiling {
			t := sqltype.LargeObject(lob)
			t.Unicode = unicode
			return sql(t)
		}
		if s.Kind == sqltype.KindChar {
			if unicode {
				base = "nchar"
			} else {
				base = "char"
			}
			t := sqltype.Bounded(base, length)
			t.FixedLength = true
			t.Unicode = unicode
			return sql(t)
		}
		t := sqltype.Bounded(base, length)
		t.Unicode = unicode
		return sql(t)
	})

	m.RegisterForward(sqltype.AffinityBinary, func(s sqltype.SemanticType, ctx sqltype.Context) *sqltype.SQLType {
		if s.Kind != sqltype.KindBinary {
			return nil
		}
		if s.Length > 0 && s.Length <= nonUnicodeMaxLength {
			return sql(sqltype.Bounded("varbinary", s.Length))
		}
		return sql(sqltype.LargeObject("varbinary(max)"))
	})

	m.RegisterForward(sqltype.AffinityJSON, func(s sqltype.SemanticType, ctx sqltype.Context) *sqltype.SQLType {
		switch s.Kind {
		case sqltype.KindJSON:
			// No native json type; stored as unbounded unicode text.
			t := sqltype.LargeObject("nvarchar(max)")
			t.Unicode = true
			return sql(t)
		case sqltype.KindXML:
			return sql(sqltype.Plain("xml"))
		}
		return nil
	})

	m.RegisterForward(sqltype.AffinitySpecial, func(s sqltype.SemanticType, ctx sqltype.Context) *sqltype.SQLType {
		if s.Kind != sqltype.KindGUID {
			return nil
		}
		return sql(sqltype.Plain("uniqueidentifier"))
	})
}

func registerReverse(m *sqltype.Map) {
	m.RegisterReverse(sqltype.AffinityBoolean, func(name string, meta sqltype.CatalogMeta, ctx sqltype.Context) *sqltype.SemanticType {
		if name != "bit" {
			return nil
		}
		return sem(sqltype.Semantic(sqltype.KindBool))
	})

	m.RegisterReverse(sqltype.AffinityNumeric, func(name string, meta sqltype.CatalogMeta, ctx sqltype.Context) *sqltype.SemanticType {
		switch name {
		case "tinyint":
			// Unsigned 0..255 does not fit int8.
			return sem(sqltype.Semantic(sqltype.KindInt16))
		case "smallint":
			return sem(sqltype.Semantic(sqltype.KindInt16))
		case "int":
			return sem(sqltype.Semantic(sqltype.KindInt32))
		case "bigint":
			return sem(sqltype.Semantic(sqltype.KindInt64))
		case "real":
			return sem(sqltype.Semantic(sqltype.KindFloat32))
		case "float":
			return sem(sqltype.Semantic(sqltype.KindFloat64))
		case "decimal", "numeric":
			return sem(sqltype.SemanticDecimal(
				meta.PrecisionOr(ctx.DefaultDecimalPrecision),
				meta.ScaleOr(ctx.DefaultDecimalScale)))
		case "money":
			return sem(sqltype.SemanticDecimal(19, 4))
		case "smallmoney":
			return sem(sqltype.SemanticDecimal(10, 4))
		}
		return nil
	})

	m.RegisterReverse(sqltype.AffinityTemporal, func(name string, meta sqltype.CatalogMeta, ctx sqltype.Context) *sqltype.SemanticType {
		switch name {
		case "date":
			return sem(sqltype.Semantic(sqltype.KindDate))
		case "time":
			return sem(sqltype.Semantic(sqltype.KindTime))
		case "datetime", "datetime2", "smalldatetime":
			return sem(sqltype.Semantic(sqltype.KindDateTime))
		case "datetimeoffset":
			return sem(sqltype.Semantic(sqltype.KindDateTimeOffset))
		}
		return nil
	})

	// Fixed 36-character storage reads back as a GUID even though the engine
	// has a native uniqueidentifier; ported schemas use it.
	m.RegisterReverse(sqltype.AffinityText, func(name string, meta sqltype.CatalogMeta, ctx sqltype.Context) *sqltype.SemanticType {
		if (name == "char" || name == "nchar") && meta.LengthOr(0) == 36 {
			return sem(sqltype.Semantic(sqltype.KindGUID))
		}
		return nil
	})

	m.RegisterReverse(sqltype.AffinityText, func(name string, meta sqltype.CatalogMeta, ctx sqltype.Context) *sqltype.SemanticType {
		switch name {
		case "varchar":
			return sem(sqltype.SemanticString(meta.LengthOr(ctx.DefaultStringLength), false, false))
		case "nvarchar":
			return sem(sqltype.SemanticString(meta.LengthOr(ctx.DefaultStringLength), true, false))
		case "char":
			return sem(sqltype.SemanticString(meta.LengthOr(1), false, true))
		case "nchar":
			return sem(sqltype.SemanticString(meta.LengthOr(1), true, true))
		case "text":
			return sem(sqltype.SemanticString(sqltype.LengthUnbounded, false, false))
		case "ntext":
			return sem(sqltype.SemanticString(sqltype.LengthUnbounded, true, false))
		}
		return nil
	})

	m.RegisterReverse(sqltype.AffinityBinary, func(name string, meta sqltype.CatalogMeta, ctx sqltype.Context) *sqltype.SemanticType {
		switch name {
		case "binary", "varbinary":
			t := sqltype.Semantic(sqltype.KindBinary)
			t.Length = meta.LengthOr(0)
			return sem(t)
		case "image":
			t := sqltype.Semantic(sqltype.KindBinary)
			t.Length = sqltype.LengthUnbounded
			return sem(t)
		case "timestamp", "rowversion":
			t := sqltype.Semantic(sqltype.KindBinary)
			t.Length = 8
			return sem(t)
		}
		return nil
	})

	m.RegisterReverse(sqltype.AffinityJSON, func(name string, meta sqltype.CatalogMeta, ctx sqltype.Context) *sqltype.SemanticType {
		if name != "xml" {
			return nil
		}
		return sem(sqltype.Semantic(sqltype.KindXML))
	})

	m.RegisterReverse(sqltype.AffinitySpecial, func(name string, meta sqltype.CatalogMeta, ctx sqltype.Context) *sqltype.SemanticType {
		switch name {
		case "uniqueidentifier":
			return sem(sqltype.Semantic(sqltype.KindGUID))
		case "sql_variant":
			return sem(sqltype.Semantic(sqltype.KindOpaque))
		}
		return nil
	})
}
