package postgres

import (
	"github.com/sqlshape/sqlshape/pkg/dialect"
	"github.com/sqlshape/sqlshape/pkg/sqltype"
)

func sql(t sqltype.SQLType) *sqltype.SQLType { return &t }

func sem(s sqltype.SemanticType) *sqltype.SemanticType { return &s }

// NewTypeMap builds the PostgreSQL resolution chains. Extension rules
// (PostGIS and friends) are layered on by the host via pkg/extension.
func NewTypeMap() *sqltype.Map {
	return NewTypeMapWith(sqltype.ContextFor(dialect.Postgres))
}

// NewTypeMapWith builds the chains against a caller-supplied resolution
// context, such as one produced from a config profile.
func NewTypeMapWith(ctx sqltype.Context) *sqltype.Map {
	m := sqltype.NewMap(ctx, forwardFallback, reverseFallback)
	registerForward(m)
	registerReverse(m)
	return m
}

// forwardFallback escapes unclassifiable kinds to text, the dialect's
// unbounded string type.
func forwardFallback(s sqltype.SemanticType, ctx sqltype.Context) sqltype.SQLType {
	return sqltype.LargeObject("text")
}

func reverseFallback(name string, meta sqltype.CatalogMeta, ctx sqltype.Context) sqltype.SemanticType {
	return sqltype.Semantic(sqltype.KindOpaque)
}

func registerForward(m *sqltype.Map) {
	m.RegisterForward(sqltype.AffinityBoolean, func(s sqltype.SemanticType, ctx sqltype.Context) *sqltype.SQLType {
		if s.Kind != sqltype.KindBool {
			return nil
		}
		return sql(sqltype.Plain("boolean"))
	})

	m.RegisterForward(sqltype.AffinityNumeric, func(s sqltype.SemanticType, ctx sqltype.Context) *sqltype.SQLType {
		switch s.Kind {
		case sqltype.KindInt8, sqltype.KindInt16:
			return sql(sqltype.Plain("smallint"))
		case sqltype.KindInt32:
			if s.AutoIncrement {
				return sql(sqltype.Plain("serial"))
			}
			return sql(sqltype.Plain("integer"))
		case sqltype.KindInt64:
			if s.AutoIncrement {
				return sql(sqltype.Plain("bigserial"))
			}
			return sql(sqltype.Plain("bigint"))
		case sqltype.KindFloat32:
			return sql(sqltype.Plain("real"))
		case sqltype.KindFloat64:
			return sql(sqltype.Plain("double precision"))
		case sqltype.KindDecimal:
			p, sc := ctx.DecimalShape(s)
			return sql(sqltype.Sized("numeric", p, sc))
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
			return sql(sqltype.Plain("timestamp"))
		case sqltype.KindDateTimeOffset:
			return sql(sqltype.Plain("timestamptz"))
		case sqltype.KindInterval:
			return sql(sqltype.Plain("interval"))
		}
		return nil
	})

	m.RegisterForward(sqltype.AffinityText, func(s sqltype.SemanticType, ctx sqltype.Context) *sqltype.SQLType {
		if s.Kind != sqltype.KindString && s.Kind != sqltype.KindChar && s.Kind != sqltype.KindEnum {
			return nil
		}
		length := ctx.StringLength(s)
		if length == sqltype.LengthUnbounded || length >= ctx.MaxStringLength {
			return sql(sqltype.LargeObject("text"))
		}
		if s.Kind == sqltype.KindChar {
			t := sqltype.Bounded("char", length)
			t.FixedLength = true
			return sql(t)
		}
		return sql(sqltype.Bounded("varchar", length))
	})

	m.RegisterForward(sqltype.AffinityBinary, func(s sqltype.SemanticType, ctx sqltype.Context) *sqltype.SQLType {
		if s.Kind != sqltype.KindBinary {
			return nil
		}
		return sql(sqltype.Plain("bytea"))
	})

	m.RegisterForward(sqltype.AffinityJSON, func(s sqltype.SemanticType, ctx sqltype.Context) *sqltype.SQLType {
		switch s.Kind {
		case sqltype.KindJSON:
			return sql(sqltype.Plain("jsonb"))
		case sqltype.KindXML:
			return sql(sqltype.Plain("xml"))
		}
		return nil
	})

	m.RegisterForward(sqltype.AffinitySpecial, func(s sqltype.SemanticType, ctx sqltype.Context) *sqltype.SQLType {
		switch s.Kind {
		case sqltype.KindGUID:
			return sql(sqltype.Plain("uuid"))
		case sqltype.KindNetwork:
			return sql(sqltype.Plain("inet"))
		}
		return nil
	})
}

func registerReverse(m *sqltype.Map) {
	m.RegisterReverse(sqltype.AffinityBoolean, func(name string, meta sqltype.CatalogMeta, ctx sqltype.Context) *sqltype.SemanticType {
		if name != "boolean" && name != "bool" {
			return nil
		}
		return sem(sqltype.Semantic(sqltype.KindBool))
	})

	m.RegisterReverse(sqltype.AffinityNumeric, func(name string, meta sqltype.CatalogMeta, ctx sqltype.Context) *sqltype.SemanticType {
		switch name {
		case "smallint", "int2":
			return sem(sqltype.Semantic(sqltype.KindInt16))
		case "integer", "int", "int4":
			return sem(sqltype.Semantic(sqltype.KindInt32))
		case "bigint", "int8":
			return sem(sqltype.Semantic(sqltype.KindInt64))
		case "real", "float4":
			return sem(sqltype.Semantic(sqltype.KindFloat32))
		case "double precision", "float8":
			return sem(sqltype.Semantic(sqltype.KindFloat64))
		case "numeric", "decimal":
			return sem(sqltype.SemanticDecimal(
				meta.PrecisionOr(ctx.DefaultDecimalPrecision),
				meta.ScaleOr(ctx.DefaultDecimalScale)))
		case "money":
			return sem(sqltype.SemanticDecimal(19, 2))
		}
		return nil
	})

	m.RegisterReverse(sqltype.AffinityTemporal, func(name string, meta sqltype.CatalogMeta, ctx sqltype.Context) *sqltype.SemanticType {
		switch name {
		case "date":
			return sem(sqltype.Semantic(sqltype.KindDate))
		case "time", "timetz", "time without time zone", "time with time zone":
			return sem(sqltype.Semantic(sqltype.KindTime))
		case "timestamp", "timestamp without time zone":
			return sem(sqltype.Semantic(sqltype.KindDateTime))
		case "timestamptz", "timestamp with time zone":
			return sem(sqltype.Semantic(sqltype.KindDateTimeOffset))
		case "interval":
			return sem(sqltype.Semantic(sqltype.KindInterval))
		}
		return nil
	})

	// A fixed 36-character string column is treated as GUID storage.
	// Registered ahead of the generic char rule so it wins the bucket walk.
	m.RegisterReverse(sqltype.AffinityText, func(name string, meta sqltype.CatalogMeta, ctx sqltype.Context) *sqltype.SemanticType {
		if (name == "character" || name == "char" || name == "bpchar") && meta.LengthOr(0) == 36 {
			return sem(sqltype.Semantic(sqltype.KindGUID))
		}
		return nil
	})

	m.RegisterReverse(sqltype.AffinityText, func(name string, meta sqltype.CatalogMeta, ctx sqltype.Context) *sqltype.SemanticType {
		switch name {
		case "text":
			return sem(sqltype.SemanticString(sqltype.LengthUnbounded, true, false))
		case "character varying", "varchar":
			return sem(sqltype.SemanticString(meta.LengthOr(sqltype.LengthUnbounded), true, false))
		case "character", "char", "bpchar":
			return sem(sqltype.SemanticString(meta.LengthOr(1), true, true))
		case "name":
			return sem(sqltype.SemanticString(64, true, false))
		}
		return nil
	})

	m.RegisterReverse(sqltype.AffinityBinary, func(name string, meta sqltype.CatalogMeta, ctx sqltype.Context) *sqltype.SemanticType {
		if name != "bytea" {
			return nil
		}
		return sem(sqltype.Semantic(sqltype.KindBinary))
	})

	m.RegisterReverse(sqltype.AffinityJSON, func(name string, meta sqltype.CatalogMeta, ctx sqltype.Context) *sqltype.SemanticType {
		switch name {
		case "json", "jsonb":
			return sem(sqltype.Semantic(sqltype.KindJSON))
		case "xml":
			return sem(sqltype.Semantic(sqltype.KindXML))
		}
		return nil
	})

	m.RegisterReverse(sqltype.AffinitySpecial, func(name string, meta sqltype.CatalogMeta, ctx sqltype.Context) *sqltype.SemanticType {
		switch name {
		case "uuid":
			return sem(sqltype.Semantic(sqltype.KindGUID))
		case "inet", "cidr", "macaddr", "macaddr8":
			return sem(sqltype.Semantic(sqltype.KindNetwork))
		}
		return nil
	})
}
