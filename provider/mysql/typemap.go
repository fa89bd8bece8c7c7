package mysql

import (
	"github.com/sqlshape/sqlshape/pkg/dialect"
	"github.com/sqlshape/sqlshape/pkg/sqltype"
)

func sql(t sqltype.SQLType) *sqltype.SQLType { return &t }

func sem(s sqltype.SemanticType) *sqltype.SemanticType { return &s }

// NewTypeMap builds the MySQL resolution chains with the built-in defaults.
func NewTypeMap() *sqltype.Map {
	return NewTypeMapWith(sqltype.ContextFor(dialect.MySQL))
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
	return sqltype.LargeObject("longtext")
}

func reverseFallback(name string, meta sqltype.CatalogMeta, ctx sqltype.Context) sqltype.SemanticType {
	return sqltype.Semantic(sqltype.KindOpaque)
}

func registerForward(m *sqltype.Map) {
	m.RegisterForward(sqltype.AffinityBoolean, func(s sqltype.SemanticType, ctx sqltype.Context) *sqltype.SQLType {
		if s.Kind != sqltype.KindBool {
			return nil
		}
		// tinyint(1) is the engine's boolean convention; the embedded width
		// is a display precision, not a storage length.
		return sql(sqltype.SQLType{Name: "tinyint(1)", Precision: 1})
	})

	m.RegisterForward(sqltype.AffinityNumeric, func(s sqltype.SemanticType, ctx sqltype.Context) *sqltype.SQLType {
		switch s.Kind {
		case sqltype.KindInt8:
			return sql(sqltype.Plain("tinyint"))
		case sqltype.KindInt16:
			return sql(sqltype.Plain("smallint"))
		case sqltype.KindInt32:
			return sql(sqltype.Plain("int"))
		case sqltype.KindInt64:
			return sql(sqltype.Plain("bigint"))
		case sqltype.KindFloat32:
			return sql(sqltype.Plain("float"))
		case sqltype.KindFloat64:
			return sql(sqltype.Plain("double"))
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
			return sql(sqltype.Plain("datetime"))
		case sqltype.KindDateTimeOffset:
			return sql(sqltype.Plain("timestamp"))
		case sqltype.KindInterval:
			// No native interval type; stored as elapsed time.
			return sql(sqltype.Plain("time"))
		}
		return nil
	})

	m.RegisterForward(sqltype.AffinityText, func(s sqltype.SemanticType, ctx sqltype.Context) *sqltype.SQLType {
		if s.Kind != sqltype.KindString && s.Kind != sqltype.KindChar {
			return nil
		}
		length := ctx.StringLength(s)
		if length == sqltype.LengthUnbounded || length >= ctx.MaxStringLength {
			return sql(sqltype.LargeObject("longtext"))
		}
		if s.Kind == sqltype.KindChar && length <= 255 {
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
		if s.Length > 0 && s.Length < ctx.MaxStringLength {
			return sql(sqltype.Bounded("varbinary", s.Length))
		}
		return sql(sqltype.LargeObject("longblob"))
	})

	m.RegisterForward(sqltype.AffinityJSON, func(s sqltype.SemanticType, ctx sqltype.Context) *sqltype.SQLType {
		switch s.Kind {
		case sqltype.KindJSON:
			return sql(sqltype.Plain("json"))
		case sqltype.KindXML:
			return sql(sqltype.LargeObject("longtext"))
		}
		return nil
	})

	m.RegisterForward(sqltype.AffinitySpecial, func(s sqltype.SemanticType, ctx sqltype.Context) *sqltype.SQLType {
		if s.Kind != sqltype.KindGUID {
			return nil
		}
		// GUIDs are stored as their canonical 36-character text form.
		t := sqltype.Bounded("char", 36)
		t.FixedLength = true
		return sql(t)
	})
}

func registerReverse(m *sqltype.Map) {
	// The catalog reports tinyint's numeric precision as 3; a precision of 1
	// only arises from a rendered tinyint(1), the boolean convention.
	m.RegisterReverse(sqltype.AffinityBoolean, func(name string, meta sqltype.CatalogMeta, ctx sqltype.Context) *sqltype.SemanticType {
		if name == "tinyint" && meta.PrecisionOr(0) == 1 {
			return sem(sqltype.Semantic(sqltype.KindBool))
		}
		return nil
	})

	m.RegisterReverse(sqltype.AffinityNumeric, func(name string, meta sqltype.CatalogMeta, ctx sqltype.Context) *sqltype.SemanticType {
		switch name {
		case "tinyint":
			return sem(sqltype.Semantic(sqltype.KindInt8))
		case "smallint":
			return sem(sqltype.Semantic(sqltype.KindInt16))
		case "mediumint", "int", "integer":
			return sem(sqltype.Semantic(sqltype.KindInt32))
		case "bigint":
			return sem(sqltype.Semantic(sqltype.KindInt64))
		case "float":
			return sem(sqltype.Semantic(sqltype.KindFloat32))
		case "double", "real":
			return sem(sqltype.Semantic(sqltype.KindFloat64))
		case "decimal", "numeric":
			return sem(sqltype.SemanticDecimal(
				meta.PrecisionOr(ctx.DefaultDecimalPrecision),
				meta.ScaleOr(ctx.DefaultDecimalScale)))
		case "bit":
			if meta.PrecisionOr(1) == 1 {
				return sem(sqltype.Semantic(sqltype.KindBool))
			}
			return sem(sqltype.Semantic(sqltype.KindBinary))
		case "year":
			return sem(sqltype.Semantic(sqltype.KindInt16))
		}
		return nil
	})

	m.RegisterReverse(sqltype.AffinityTemporal, func(name string, meta sqltype.CatalogMeta, ctx sqltype.Context) *sqltype.SemanticType {
		switch name {
		case "date":
			return sem(sqltype.Semantic(sqltype.KindDate))
		case "time":
			return sem(sqltype.Semantic(sqltype.KindTime))
		case "datetime":
			return sem(sqltype.Semantic(sqltype.KindDateTime))
		case "timestamp":
			return sem(sqltype.Semantic(sqltype.KindDateTimeOffset))
		}
		return nil
	})

	// Fixed 36-character storage reads back as a GUID; varchar(36) does not,
	// variable width is ordinary string data.
	m.RegisterReverse(sqltype.AffinityText, func(name string, meta sqltype.CatalogMeta, ctx sqltype.Context) *sqltype.SemanticType {
		if name == "char" && meta.LengthOr(0) == 36 {
			return sem(sqltype.Semantic(sqltype.KindGUID))
		}
		return nil
	})

	m.RegisterReverse(sqltype.AffinityText, func(name string, meta sqltype.CatalogMeta, ctx sqltype.Context) *sqltype.SemanticType {
		switch name {
		case "varchar":
			return sem(sqltype.SemanticString(meta.LengthOr(ctx.DefaultStringLength), true, false))
		case "char":
			return sem(sqltype.SemanticString(meta.LengthOr(1), true, true))
		case "tinytext", "text", "mediumtext", "longtext":
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
		case "tinyblob", "blob", "mediumblob", "longblob":
			t := sqltype.Semantic(sqltype.KindBinary)
			t.Length = sqltype.LengthUnbounded
			return sem(t)
		}
		return nil
	})

	m.RegisterReverse(sqltype.AffinityJSON, func(name string, meta sqltype.CatalogMeta, ctx sqltype.Context) *sqltype.SemanticType {
		if name != "json" {
			return nil
		}
		return sem(sqltype.Semantic(sqltype.KindJSON))
	})

	m.RegisterReverse(sqltype.AffinitySpecial, func(name string, meta sqltype.CatalogMeta, ctx sqltype.Context) *sqltype.SemanticType {
		if name != "enum" {
			return nil
		}
		return sem(sqltype.Semantic(sqltype.KindEnum))
	})
}
