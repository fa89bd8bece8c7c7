package mssql

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
		{"bool", sqltype.Semantic(sqltype.KindBool), "bit"},
		{"int32", sqltype.Semantic(sqltype.KindInt32), "int"},
		{"float64", sqltype.Semantic(sqltype.KindFloat64), "float"},
		{"decimal", sqltype.SemanticDecimal(18, 2), "decimal(18,2)"},
		{"datetime", sqltype.Semantic(sqltype.KindDateTime), "datetime2"},
		{"datetimeoffset", sqltype.Semantic(sqltype.KindDateTimeOffset), "datetimeoffset"},
		{"guid", sqltype.Semantic(sqltype.KindGUID), "uniqueidentifier"},
		{"xml", sqltype.Semantic(sqltype.KindXML), "xml"},
		{"json has no native type", sqltype.Semantic(sqltype.KindJSON), "nvarchar(max)"},
		{"opaque maps to the dynamic type", sqltype.Semantic(sqltype.KindOpaque), "sql_variant"},
		{"geometry falls back to text escape", sqltype.Semantic(sqltype.KindGeometry), "nvarchar(max)"},
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
		length  int
		unicode bool
		want    string
	}{
		{1, true, "nvarchar(1)"},
		{4000, true, "nvarchar(4000)"},
		{4001, true, "nvarchar(max)"},
		{sqltype.LengthUnbounded, true, "nvarchar(max)"},
		{8000, false, "varchar(8000)"},
		{8001, false, "varchar(max)"},
	}
	for _, tt := range tests {
		out := m.ResolveSQLType(sqltype.SemanticString(tt.length, tt.unicode, false))
		assert.Equal(t, tt.want, out.Name)
	}

	// Above-ceiling results carry the sentinel so the width round-trips.
	out := m.ResolveSQLType(sqltype.SemanticString(4001, true, true))
	assert.Equal(t, "nvarchar(max)", out.Name)
	assert.True(t, out.Unbounded())

	// Fixed strings within the ceiling keep their n-prefix by unicode flag.
	out = m.ResolveSQLType(sqltype.SemanticString(10, true, true))
	assert.Equal(t, "nchar(10)", out.Name)
	out = m.ResolveSQLType(sqltype.SemanticString(10, false, true))
	assert.Equal(t, "char(10)", out.Name)
}

func TestReverseResolution(t *testing.T) {
	m := NewTypeMap()

	tests := []struct {
		name string
		meta sqltype.CatalogMeta
		want sqltype.Kind
	}{
		{"bit", sqltype.CatalogMeta{}, sqltype.KindBool},
		{"tinyint", sqltype.CatalogMeta{}, sqltype.KindInt16},
		{"datetime2", sqltype.CatalogMeta{}, sqltype.KindDateTime},
		{"uniqueidentifier", sqltype.CatalogMeta{}, sqltype.KindGUID},
		{"sql_variant", sqltype.CatalogMeta{}, sqltype.KindOpaque},
		{"xml", sqltype.CatalogMeta{}, sqltype.KindXML},
		{"rowversion", sqltype.CatalogMeta{}, sqltype.KindBinary},
		{"hierarchyid", sqltype.CatalogMeta{}, sqltype.KindOpaque},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.ResolveSemanticType(tt.name, tt.meta).Kind)
		})
	}
}

func TestReverseStringShapes(t *testing.T) {
	m := NewTypeMap()

	out := m.ResolveSemanticType("nvarchar", sqltype.Meta(100, -1, -1))
	assert.Equal(t, 100, out.Length)
	assert.True(t, out.Unicode)

	// max columns surface the catalog's -1 marker as the unbounded sentinel.
	length := int64(-1)
	out = m.ResolveSemanticType("nvarchar", sqltype.CatalogMeta{Length: &length})
	assert.Equal(t, sqltype.LengthUnbounded, out.Length)

	out = m.ResolveSemanticType("varchar", sqltype.Meta(50, -1, -1))
	assert.False(t, out.Unicode)

	out = m.ResolveSemanticType("nchar", sqltype.Meta(36, -1, -1))
	assert.Equal(t, sqltype.KindGUID, out.Kind)
}

func TestKindRoundTrip(t *testing.T) {
	m := NewTypeMap()

	tests := []struct {
		kind sqltype.Kind
		want sqltype.Kind
	}{
		{sqltype.KindBool, sqltype.KindBool},
		{sqltype.KindInt8, sqltype.KindInt16}, // smallint is the narrowest signed integer
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
		{sqltype.KindInterval, sqltype.KindString}, // no interval type, text escape
		{sqltype.KindGUID, sqltype.KindGUID},
		{sqltype.KindJSON, sqltype.KindString}, // stored as nvarchar(max)
		{sqltype.KindXML, sqltype.KindXML},
		{sqltype.KindOpaque, sqltype.KindOpaque},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, roundTripKind(m, tt.kind))
		})
	}
}
