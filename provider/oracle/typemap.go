package oracle

import (
	"fmt"
	"strings"

	"github.com/sqlshape/sqlshape/pkg/dialect"
	"github.com/sqlshape/sqlshape/pkg/sqltype"
)

func sql(t sqltype.SQLType) *sqltype.SQLType { return &t }

func sem(s sqltype.SemanticType) *sqltype.SemanticType { return &s }

// rawMaxLength is the raw(n) ceiling; larger binary data needs a blob.
const rawMaxLength = 2000

// NewTypeMap builds the Oracle resolution chains with the built-in defaults.
func NewTypeMap() *sqltype.Map {
	return NewTypeMapWith(sqltype.ContextFor(dialect.Oracle))
}

// NewTypeMapWith builds the chains against a caller-supplied resolution
// context, such as one produced from a config profile.
func NewTypeMapWith(ctx sqltype.Context) *sqltype.Map {
	m := sqltype.NewMap(ctx, forwardFallback, reverseFallback)
	registerForward(m)
	registerReverse(m)
	return m
}

func forwardFallback(s sqltype.SemanticType, ctx sqltype.Context) sqltype.SQLType {
	return sqltype.LargeObject("clob")
}

func reverseFallback(name string, meta sqltype.CatalogMeta, ctx sqltype.Context) sqltype.SemanticType {
	return sqltype.Semantic(sqltype.KindOpaque)
}

// charString renders the length semantics explicitly: widths count
// characters, not bytes, regardless of the database character set.
func charString(base string, length int) sqltype.SQLType {
	return sqltype.SQLType{
		Name:   fmt.Sprintf("%s(%d char)", base, length),
		Length: length,
	}
}

// number renders an integer-capacity NUMBER(p). The embedded width is a
// decimal precision, so it lives in Precision, not Length.
func number(precision int) sqltype.SQLType {
	return sqltype.SQLType{
		Name:      fmt.Sprintf("number(%d)", precision),
		Precision: precision,
	}
}

func registerForward(m *sqltype.Map) {
	m.RegisterForward(sqltype.AffinityBoolean, func(s sqltype.SemanticType, ctx sqltype.Context) *sqltype.SQLType {
		if s.Kind != sqltype.KindBool {
			return nil
		}
		return sql(number(1))
	})

	m.RegisterForward(sqltype.AffinityNumeric, func(s sqltype.SemanticType, ctx sqltype.Context) *sqltype.SQLType {
		switch s.Kind {
		case sqltype.KindInt8:
			return sql(number(3))
		case sqltype.KindInt16:
			return sql(number(5))
		case sqltype.KindInt32:
			return sql(number(10))
		case sqltype.KindInt64:
			return sql(number(19))
		case sqltype.KindFloat32:
			return sql(sqltype.Plain("binary_float"))
		case sqltype.KindFloat64:
			return sql(sqltype.Plain("binary_double"))
		case sqltype.KindDecimal:
			p, sc := ctx.DecimalShape(s)
			return sql(sqltype.Sized("number", p, sc))
		}
		return nil
	})

	m.RegisterForward(sqltype.AffinityTemporal, func(s sqltype.SemanticType, ctx sqltype.Context) *sqltype.SQLType {
		switch s.Kind {
		case sqltype.KindDate:
			return sql(sqltype.Plain("date"))
		case sqltype.KindTime, sqltype.KindDateTime:
			// No standalone time-of-day type.
			return sql(sqltype.Plain("timestamp"))
		case sqltype.KindDateTimeOffset:
			return sql(sqltype.Plain("timestamp with time zone"))
		case sqltype.KindInterval:
			return sql(sqltype.Plain("interval day to second"))
		}
		return nil
	})

	m.RegisterForward(sqltype.AffinityText, func(s sqltype.SemanticType, ctx sqltype.Context) *sqltype.SQLType {
		if s.Kind != sqltype.KindString && s.Kind != sqltype.KindChar {
			return nil
		}
		length := ctx.StringLength(s)
		if length == sqltype.LengthUnbounded || length > ctx.MaxStringLength {
			return sql(sqltype.LargeObject("clob"))
		}
		if s.Kind == sqltype.KindChar {
			t := charString("char", length)
			t.FixedLength = true
			return sql(t)
		}
		return sql(charString("varchar2", length))
	})

	m.RegisterForward(sqltype.AffinityBinary, func(s sqltype.SemanticType, ctx sqltype.Context) *sqltype.SQLType {
		if s.Kind != sqltype.KindBinary {
			return nil
		}
		if s.Length > 0 && s.Length <= rawMaxLength {
			return sql(sqltype.Bounded("raw", s.Length))
		}
		return sql(sqltype.LargeObject("blob"))
	})

	m.RegisterForward(sqltype.AffinityJSON, func(s sqltype.SemanticType, ctx sqltype.Context) *sqltype.SQLType {
		switch s.Kind {
		case sqltype.KindJSON:
			return sql(sqltype.LargeObject("clob"))
		case sqltype.KindXML:
			return sql(sqltype.Plain("sys.xmltype"))
		}
		return nil
	})

	m.RegisterForward(sqltype.AffinitySpecial, func(s sqltype.SemanticType, ctx sqltype.Context) *sqltype.SQLType {
		if s.Kind != sqltype.KindGUID {
			return nil
		}
		return sql(sqltype.Bounded("raw", 16))
	})
}

func registerReverse(m *sqltype.Map) {
	// number(1,0) holds the engine's boolean convention.
	m.RegisterReverse(sqltype.AffinityBoolean, func(name string, meta sqltype.CatalogMeta, ctx sqltype.Context) *sqltype.SemanticType {
		if name != "number" || meta.Precision == nil {
			return nil
		}
		if *meta.Precision == 1 && meta.ScaleOr(0) == 0 {
			return sem(sqltype.Semantic(sqltype.KindBool))
		}
		return nil
	})

	m.RegisterReverse(sqltype.AffinityNumeric, func(name string, meta sqltype.CatalogMeta, ctx sqltype.Context) *sqltype.SemanticType {
		switch name {
		case "number", "numeric", "decimal":
			if meta.Precision != nil && meta.ScaleOr(0) == 0 {
				switch p := *meta.Precision; {
				case p <= 5:
					return sem(sqltype.Semantic(sqltype.KindInt16))
				case p <= 10:
					return sem(sqltype.Semantic(sqltype.KindInt32))
				case p <= 19:
					return sem(sqltype.Semantic(sqltype.KindInt64))
				}
			}
			return sem(sqltype.SemanticDecimal(
				meta.PrecisionOr(ctx.DefaultDecimalPrecision),
				meta.ScaleOr(ctx.DefaultDecimalScale)))
		case "integer", "int", "smallint":
			return sem(sqltype.Semantic(sqltype.KindInt64))
		case "binary_float":
			return sem(sqltype.Semantic(sqltype.KindFloat32))
		case "binary_double", "float", "double precision":
			return sem(sqltype.Semantic(sqltype.KindFloat64))
		}
		return nil
	})

	// Temporal names carry embedded fractional-second precision, e.g.
	// "timestamp(6) with time zone", so these match on prefix.
	m.RegisterReverse(sqltype.AffinityTemporal, func(name string, meta sqltype.CatalogMeta, ctx sqltype.Context) *sqltype.SemanticType {
		switch {
		case name == "date":
			return sem(sqltype.Semantic(sqltype.KindDateTime))
		case strings.HasPrefix(name, "interval day"), strings.HasPrefix(name, "interval year"):
			return sem(sqltype.Semantic(sqltype.KindInterval))
		case strings.HasPrefix(name, "timestamp"):
			if strings.Contains(name, "time zone") {
				return sem(sqltype.Semantic(sqltype.KindDateTimeOffset))
			}
			return sem(sqltype.Semantic(sqltype.KindDateTime))
		}
		return nil
	})

	m.RegisterReverse(sqltype.AffinityText, func(name string, meta sqltype.CatalogMeta, ctx sqltype.Context) *sqltype.SemanticType {
		if (name == "char" || name == "nchar") && meta.LengthOr(0) == 36 {
			return sem(sqltype.Semantic(sqltype.KindGUID))
		}
		return nil
	})

	m.RegisterReverse(sqltype.AffinityText, func(name string, meta sqltype.CatalogMeta, ctx sqltype.Context) *sqltype.SemanticType {
		switch name {
		case "varchar2", "varchar", "nvarchar2":
			return sem(sqltype.SemanticString(meta.LengthOr(ctx.DefaultStringLength), true, false))
		case "char", "nchar":
			return sem(sqltype.SemanticString(meta.LengthOr(1), true, true))
		case "clob", "nclob", "long":
			return sem(sqltype.SemanticString(sqltype.LengthUnbounded, true, false))
		}
		return nil
	})

	m.RegisterReverse(sqltype.AffinityBinary, func(name string, meta sqltype.CatalogMeta, ctx sqltype.Context) *sqltype.SemanticType {
		switch name {
		case "raw":
			// raw(16) is the conventional GUID storage.
			if meta.LengthOr(0) == 16 {
				return sem(sqltype.Semantic(sqltype.KindGUID))
			}
			t := sqltype.Semantic(sqltype.KindBinary)
			t.Length = meta.LengthOr(0)
			return sem(t)
		case "blob", "bfile", "long raw":
			t := sqltype.Semantic(sqltype.KindBinary)
			t.Length = sqltype.LengthUnbounded
			return sem(t)
		}
		return nil
	})

	m.RegisterReverse(sqltype.AffinityJSON, func(name string, meta sqltype.CatalogMeta, ctx sqltype.Context) *sqltype.SemanticType {
		switch name {
		case "json":
			return sem(sqltype.Semantic(sqltype.KindJSON))
		case "xmltype", "sys.xmltype":
			return sem(sqltype.Semantic(sqltype.KindXML))
		}
		return nil
	})
}
