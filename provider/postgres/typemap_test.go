package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sqlshape/sqlshape/pkg/dialect"
	"github.com/sqlshape/sqlshape/pkg/sqltype"
)

// roundTripKind renders a kind forward, then feeds the rendered base name and
// numeric metadata back through reverse resolution, the way a catalog row
// created from that DDL would come back.
func roundTripKind(m *sqltype.Map, kind sqltype.Kind) sqltype.Kind {
	out := m.ResolveSQLType(sqltype.Semantic(kind))
	base := out.Name
	if i := strings.IndexByte(base, '('); i >= 0 {
		base = strings.TrimSpace(base[:i])
	}
	meta := sqltype.CatalogMeta{}
	if out.Length != 0 {
		l := int64(out.Length)
		meta.Length = &l
	}
	if out.Precision != 0 {
		p := int64(out.Precision)
		meta.Precision = &p
	}
	if out.Scale != 0 {
		s := int64(out.Scale)
		meta.Scale = &s
	}
	return m.ResolveSemanticType(base, meta).Kind
}

func TestForwardResolution(t *testing.T) {
	m := NewTypeMap()

	tests := []struct {
		name string
		in   sqltype.SemanticType
		want string
	}{
		{"bool", sqltype.Semantic(sqltype.KindBool), "boolean"},
		{"int16", sqltype.Semantic(sqltype.KindInt16), "smallint"},
		{"int32", sqltype.Semantic(sqltype.KindInt32), "integer"},
		{"int64", sqltype.Semantic(sqltype.KindInt64), "bigint"},
		{"serial", sqltype.SemanticType{Kind: sqltype.KindInt32, AutoIncrement: true}, "serial"},
		{"bigserial", sqltype.SemanticType{Kind: sqltype.KindInt64, AutoIncrement: true}, "bigserial"},
		{"float64", sqltype.Semantic(sqltype.KindFloat64), "double precision"},
		{"decimal", sqltype.SemanticDecimal(18, 2), "numeric(18,2)"},
		{"datetimeoffset", sqltype.Semantic(sqltype.KindDateTimeOffset), "timestamptz"},
		{"guid", sqltype.Semantic(sqltype.KindGUID), "uuid"},
		{"json", sqltype.Semantic(sqltype.KindJSON), "jsonb"},
		{"network", sqltype.Semantic(sqltype.KindNetwork), "inet"},
		{"binary", sqltype.Semantic(sqltype.KindBinary), "bytea"},
		{"opaque falls back to text", sqltype.Semantic(sqltype.KindOpaque), "text"},
		{"geometry without extension falls back to text", sqltype.Semantic(sqltype.KindGeometry), "text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.ResolveSQLType(tt.in).Name)
		})
	}
}

func TestStringLengthThresholds(t *testing.T) {
	m := NewTypeMap()

	tests := []struct {
		length int
		want   string
	}{
		{1, "varchar(1)"},
		{10, "varchar(10)"},
		{4000, "varchar(4000)"},
		{10485760, "text"},
		{sqltype.LengthUnbounded, "text"},
	}
	for _, tt := range tests {
		out := m.ResolveSQLType(sqltype.SemanticString(tt.length, true, false))
		assert.Equal(t, tt.want, out.Name)
	}

	// Default length fills in when none is declared.
	out := m.ResolveSQLType(sqltype.SemanticString(0, true, false))
	assert.Equal(t, "varchar(255)", out.Name)

	// The large-object result carries the sentinel, not an invented number.
	out = m.ResolveSQLType(sqltype.SemanticString(sqltype.LengthUnbounded, true, false))
	assert.True(t, out.Unbounded())
}

func TestReverseResolution(t *testing.T) {
	m := NewTypeMap()

	tests := []struct {
		name string
		meta sqltype.CatalogMeta
		want sqltype.Kind
	}{
		{"boolean", sqltype.CatalogMeta{}, sqltype.KindBool},
		{"bigint", sqltype.CatalogMeta{}, sqltype.KindInt64},
		{"double precision", sqltype.CatalogMeta{}, sqltype.KindFloat64},
		{"timestamp with time zone", sqltype.CatalogMeta{}, sqltype.KindDateTimeOffset},
		{"uuid", sqltype.CatalogMeta{}, sqltype.KindGUID},
		{"jsonb", sqltype.CatalogMeta{}, sqltype.KindJSON},
		{"inet", sqltype.CatalogMeta{}, sqltype.KindNetwork},
		{"bytea", sqltype.CatalogMeta{}, sqltype.KindBinary},
		{"hstore", sqltype.CatalogMeta{}, sqltype.KindOpaque},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.ResolveSemanticType(tt.name, tt.meta).Kind)
		})
	}
}

func TestReverseStringShapes(t *testing.T) {
	m := NewTypeMap()

	out := m.ResolveSemanticType("character varying", sqltype.Meta(255, -1, -1))
	assert.Equal(t, sqltype.KindString, out.Kind)
	assert.Equal(t, 255, out.Length)

	// varchar without a modifier is unbounded.
	out = m.ResolveSemanticType("character varying", sqltype.CatalogMeta{})
	assert.Equal(t, sqltype.LengthUnbounded, out.Length)

	out = m.ResolveSemanticType("text", sqltype.CatalogMeta{})
	assert.Equal(t, sqltype.LengthUnbounded, out.Length)

	out = m.ResolveSemanticType("character", sqltype.Meta(8, -1, -1))
	assert.Equal(t, sqltype.KindChar, out.Kind)
	assert.True(t, out.FixedLength)
}

func TestChar36ReadsAsGUID(t *testing.T) {
	m := NewTypeMap()

	out := m.ResolveSemanticType("character", sqltype.Meta(36, -1, -1))
	assert.Equal(t, sqltype.KindGUID, out.Kind)

	// One off the magic width stays a plain fixed string.
	out = m.ResolveSemanticType("character", sqltype.Meta(35, -1, -1))
	assert.Equal(t, sqltype.KindChar, out.Kind)
}

func TestReverseDecimalUsesCatalogMetadata(t *testing.T) {
	m := NewTypeMap()

	out := m.ResolveSemanticType("numeric", sqltype.Meta(-1, 10, 2))
	assert.Equal(t, sqltype.KindDecimal, out.Kind)
	assert.Equal(t, 10, out.Precision)
	assert.Equal(t, 2, out.Scale)

	// Bare numeric takes the dialect defaults.
	out = m.ResolveSemanticType("numeric", sqltype.CatalogMeta{})
	assert.Equal(t, 38, out.Precision)
	assert.Equal(t, 6, out.Scale)
}

func TestKindRoundTrip(t *testing.T) {
	m := NewTypeMap()

	tests := []struct {
		kind sqltype.Kind
		want sqltype.Kind
	}{
		{sqltype.KindBool, sqltype.KindBool},
		{sqltype.KindInt8, sqltype.KindInt16}, // smallint is the narrowest integer
		{sqltype.KindInt16, sqltype.KindInt16},
		{sqltype.KindInt32, sqltype.KindInt32},
		{sqltype.KindInt64, sqltype.KindInt64},
		{sqltype.KindFloat32, sqltype.KindFloat32},
		{sqltype.KindFloat64, sqltype.KindFloat64},
		{sqltype.KindDecimal, sqltype.KindDecimal},
		{sqltype.KindString, sqltype.KindString},
		{sqltype.KindChar, sqltype.KindChar},
		{sqltype.KindBinary, sqltype.KindBinary},
		{sqltype.KindDate, sqltype.KindDate},
		{sqltype.KindTime, sqltype.KindTime},
		{sqltype.KindDateTime, sqltype.KindDateTime},
		{sqltype.KindDateTimeOffset, sqltype.KindDateTimeOffset},
		{sqltype.KindInterval, sqltype.KindInterval},
		{sqltype.KindGUID, sqltype.KindGUID},
		{sqltype.KindNetwork, sqltype.KindNetwork},
		{sqltype.KindJSON, sqltype.KindJSON},
		{sqltype.KindXML, sqltype.KindXML},
		{sqltype.KindEnum, sqltype.KindString},     // stored as varchar
		{sqltype.KindGeometry, sqltype.KindString}, // text escape without PostGIS
		{sqltype.KindOpaque, sqltype.KindString},   // text escape
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, roundTripKind(m, tt.kind))
		})
	}
}

func TestTypeMapHonorsCustomContext(t *testing.T) {
	ctx := sqltype.ContextFor(dialect.Postgres)
	ctx.DefaultStringLength = 64
	m := NewTypeMapWith(ctx)

	out := m.ResolveSQLType(sqltype.Semantic(sqltype.KindString))
	assert.Equal(t, "varchar(64)", out.Name)

	// Maps built without an explicit context keep the dialect defaults.
	out = NewTypeMap().ResolveSQLType(sqltype.Semantic(sqltype.KindString))
	assert.Equal(t, "varchar(255)", out.Name)
}
