package oracle

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

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
		{"bool", sqltype.Semantic(sqltype.KindBool), "number(1)"},
		{"int16", sqltype.Semantic(sqltype.KindInt16), "number(5)"},
		{"int32", sqltype.Semantic(sqltype.KindInt32), "number(10)"},
		{"int64", sqltype.Semantic(sqltype.KindInt64), "number(19)"},
		{"float32", sqltype.Semantic(sqltype.KindFloat32), "binary_float"},
		{"decimal", sqltype.SemanticDecimal(18, 2), "number(18,2)"},
		{"date", sqltype.Semantic(sqltype.KindDate), "date"},
		{"time has no standalone type", sqltype.Semantic(sqltype.KindTime), "timestamp"},
		{"datetimeoffset", sqltype.Semantic(sqltype.KindDateTimeOffset), "timestamp with time zone"},
		{"interval", sqltype.Semantic(sqltype.KindInterval), "interval day to second"},
		{"json stores in a lob", sqltype.Semantic(sqltype.KindJSON), "clob"},
		{"xml", sqltype.Semantic(sqltype.KindXML), "sys.xmltype"},
		{"guid", sqltype.Semantic(sqltype.KindGUID), "raw(16)"},
		{"opaque falls back to clob", sqltype.Semantic(sqltype.KindOpaque), "clob"},
		{"geometry falls back to clob", sqltype.Semantic(sqltype.KindGeometry), "clob"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.ResolveSQLType(tt.in).Name)
		})
	}
}

func TestStringCeilings(t *testing.T) {
	m := NewTypeMap()

	tests := []struct {
		length int
		want   string
	}{
		{1, "varchar2(1 char)"},
		{4000, "varchar2(4000 char)"},
		{4001, "clob"},
		{sqltype.LengthUnbounded, "clob"},
	}
	for _, tt := range tests {
		out := m.ResolveSQLType(sqltype.SemanticString(tt.length, true, false))
		assert.Equal(t, tt.want, out.Name)
	}

	// No declared length gets the dialect default width.
	out := m.ResolveSQLType(sqltype.Semantic(sqltype.KindString))
	assert.Equal(t, "varchar2(255 char)", out.Name)

	// Fixed strings render as char and keep the flag.
	out = m.ResolveSQLType(sqltype.SemanticString(10, true, true))
	assert.Equal(t, "char(10 char)", out.Name)
	assert.True(t, out.FixedLength)

	// Above-ceiling results carry the sentinel so the width round-trips.
	out = m.ResolveSQLType(sqltype.SemanticString(4001, true, false))
	assert.True(t, out.Unbounded())
}

func TestBinaryResolution(t *testing.T) {
	m := NewTypeMap()

	small := sqltype.Semantic(sqltype.KindBinary)
	small.Length = 64
	assert.Equal(t, "raw(64)", m.ResolveSQLType(small).Name)

	big := sqltype.Semantic(sqltype.KindBinary)
	big.Length = rawMaxLength + 1
	assert.Equal(t, "blob", m.ResolveSQLType(big).Name)

	assert.Equal(t, "blob", m.ResolveSQLType(sqltype.Semantic(sqltype.KindBinary)).Name)
}

func TestReverseResolution(t *testing.T) {
	m := NewTypeMap()

	tests := []struct {
		name string
		meta sqltype.CatalogMeta
		want sqltype.Kind
	}{
		{"binary_double", sqltype.CatalogMeta{}, sqltype.KindFloat64},
		{"date", sqltype.CatalogMeta{}, sqltype.KindDateTime},
		{"timestamp(6)", sqltype.CatalogMeta{}, sqltype.KindDateTime},
		{"timestamp(6) with time zone", sqltype.CatalogMeta{}, sqltype.KindDateTimeOffset},
		{"timestamp(0) with local time zone", sqltype.CatalogMeta{}, sqltype.KindDateTimeOffset},
		{"interval day(2) to second(6)", sqltype.CatalogMeta{}, sqltype.KindInterval},
		{"clob", sqltype.CatalogMeta{}, sqltype.KindString},
		{"blob", sqltype.CatalogMeta{}, sqltype.KindBinary},
		{"xmltype", sqltype.CatalogMeta{}, sqltype.KindXML},
		{"json", sqltype.CatalogMeta{}, sqltype.KindJSON},
		{"sdo_geometry falls back to opaque", sqltype.CatalogMeta{}, sqltype.KindOpaque},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.ResolveSemanticType(tt.name, tt.meta).Kind)
		})
	}
}

func TestReverseNumberTiers(t *testing.T) {
	m := NewTypeMap()

	tests := []struct {
		precision, scale int
		want             sqltype.Kind
	}{
		{1, 0, sqltype.KindBool},
		{5, 0, sqltype.KindInt16},
		{10, 0, sqltype.KindInt32},
		{19, 0, sqltype.KindInt64},
		{20, 0, sqltype.KindDecimal},
		{10, 2, sqltype.KindDecimal},
	}
	for _, tt := range tests {
		out := m.ResolveSemanticType("NUMBER", sqltype.Meta(-1, tt.precision, tt.scale))
		assert.Equal(t, tt.want, out.Kind, "number(%d,%d)", tt.precision, tt.scale)
	}

	// Bare number keeps the dialect's decimal defaults.
	out := m.ResolveSemanticType("NUMBER", sqltype.CatalogMeta{})
	assert.Equal(t, sqltype.KindDecimal, out.Kind)
	assert.Equal(t, 38, out.Precision)
	assert.Equal(t, 6, out.Scale)
}

func TestReverseStringShapes(t *testing.T) {
	m := NewTypeMap()

	out := m.ResolveSemanticType("VARCHAR2", sqltype.Meta(100, -1, -1))
	assert.Equal(t, sqltype.KindString, out.Kind)
	assert.Equal(t, 100, out.Length)

	// Fixed 36-char columns read back as GUIDs; variable width does not.
	out = m.ResolveSemanticType("CHAR", sqltype.Meta(36, -1, -1))
	assert.Equal(t, sqltype.KindGUID, out.Kind)
	out = m.ResolveSemanticType("NCHAR", sqltype.Meta(36, -1, -1))
	assert.Equal(t, sqltype.KindGUID, out.Kind)
	out = m.ResolveSemanticType("VARCHAR2", sqltype.Meta(36, -1, -1))
	assert.Equal(t, sqltype.KindString, out.Kind)

	out = m.ResolveSemanticType("CLOB", sqltype.CatalogMeta{})
	assert.Equal(t, sqltype.LengthUnbounded, out.Length)
}

func TestReverseRawShapes(t *testing.T) {
	m := NewTypeMap()

	out := m.ResolveSemanticType("RAW", sqltype.Meta(16, -1, -1))
	assert.Equal(t, sqltype.KindGUID, out.Kind)

	out = m.ResolveSemanticType("RAW", sqltype.Meta(32, -1, -1))
	assert.Equal(t, sqltype.KindBinary, out.Kind)
	assert.Equal(t, 32, out.Length)

	out = m.ResolveSemanticType("LONG RAW", sqltype.CatalogMeta{})
	assert.Equal(t, sqltype.KindBinary, out.Kind)
	assert.Equal(t, sqltype.LengthUnbounded, out.Length)
}

func TestIntegerTiersCarryPrecision(t *testing.T) {
	m := NewTypeMap()

	tests := []struct {
		in        sqltype.SemanticType
		precision int
	}{
		{sqltype.Semantic(sqltype.KindBool), 1},
		{sqltype.Semantic(sqltype.KindInt8), 3},
		{sqltype.Semantic(sqltype.KindInt16), 5},
		{sqltype.Semantic(sqltype.KindInt32), 10},
		{sqltype.Semantic(sqltype.KindInt64), 19},
	}
	for _, tt := range tests {
		out := m.ResolveSQLType(tt.in)
		// The width embedded in number(p) is a precision, not a length.
		assert.Equal(t, tt.precision, out.Precision, out.Name)
		assert.Zero(t, out.Length, out.Name)
		assert.Zero(t, out.Scale, out.Name)
	}
}

func TestKindRoundTrip(t *testing.T) {
	m := NewTypeMap()

	tests := []struct {
		kind sqltype.Kind
		want sqltype.Kind
	}{
		{sqltype.KindBool, sqltype.KindBool},
		{sqltype.KindInt8, sqltype.KindInt16}, // number(3) sits in the int16 tier
		{sqltype.KindInt16, sqltype.KindInt16},
		{sqltype.KindInt32, sqltype.KindInt32},
		{sqltype.KindInt64, sqltype.KindInt64},
		{sqltype.KindFloat32, sqltype.KindFloat32},
		{sqltype.KindFloat64, sqltype.KindFloat64},
		{sqltype.KindDecimal, sqltype.KindDecimal},
		{sqltype.KindString, sqltype.KindString},
		{sqltype.KindChar, sqltype.KindChar},
		{sqltype.KindBinary, sqltype.KindBinary},
		{sqltype.KindDate, sqltype.KindDateTime}, // date carries a time component
		{sqltype.KindTime, sqltype.KindDateTime}, // no standalone time-of-day type
		{sqltype.KindDateTime, sqltype.KindDateTime},
		{sqltype.KindDateTimeOffset, sqltype.KindDateTimeOffset},
		{sqltype.KindInterval, sqltype.KindInterval},
		{sqltype.KindGUID, sqltype.KindGUID},
		{sqltype.KindJSON, sqltype.KindString}, // stored in a clob
		{sqltype.KindXML, sqltype.KindXML},
		{sqltype.KindOpaque, sqltype.KindString}, // clob escape
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, roundTripKind(m, tt.kind))
		})
	}
}
