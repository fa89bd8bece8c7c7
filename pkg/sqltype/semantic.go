package sqltype

// Kind is the dialect-neutral classification of a column's data.
type Kind string

const (
	KindBool    Kind = "bool"
	KindInt8    Kind = "int8"
	KindInt16   Kind = "int16"
	KindInt32   Kind = "int32"
	KindInt64   Kind = "int64"
	KindFloat32 Kind = "float32"
	KindFloat64 Kind = "float64"
	KindDecimal Kind = "decimal"

	KindString Kind = "string"
	KindChar   Kind = "char"
	KindBinary Kind = "binary"

	KindDate           Kind = "date"
	KindTime           Kind = "time"
	KindDateTime       Kind = "datetime"
	KindDateTimeOffset Kind = "datetimeoffset"
	KindInterval       Kind = "interval"

	KindGUID Kind = "guid"
	KindJSON Kind = "json"
	KindXML  Kind = "xml"

	KindGeometry  Kind = "geometry"
	KindGeography Kind = "geography"
	KindNetwork   Kind = "network"

	KindEnum Kind = "enum"

	// KindOpaque tags a column whose type the engine cannot classify. It is
	// always produced explicitly by a fallback rule, never by the absence of
	// a match.
	KindOpaque Kind = "opaque"
)

// LengthUnbounded is the sentinel recorded for large-object lengths so the
// value round-trips through resolution without inventing a number.
const LengthUnbounded = -1

// SemanticType is the dialect-neutral description of a column's intended data
// kind and shape. Instances are immutable once built: constructors and rules
// copy, never mutate.
type SemanticType struct {
	Kind          Kind `json:"kind"`
	Length        int  `json:"length,omitempty"`
	Precision     int  `json:"precision,omitempty"`
	Scale         int  `json:"scale,omitempty"`
	Unicode       bool `json:"unicode,omitempty"`
	FixedLength   bool `json:"fixedLength,omitempty"`
	AutoIncrement bool `json:"autoIncrement,omitempty"`
}

// Unbounded reports whether the descriptor carries the unbounded sentinel.
func (s SemanticType) Unbounded() bool {
	return s.Length == LengthUnbounded
}

// Semantic builds a plain descriptor for kinds without shape metadata.
func Semantic(kind Kind) SemanticType {
	return SemanticType{Kind: kind}
}

// SemanticString builds a string descriptor. fixed selects the char kind.
func SemanticString(length int, unicode, fixed bool) SemanticType {
	kind := KindString
	if fixed {
		kind = KindChar
	}
	return SemanticType{Kind: kind, Length: length, Unicode: unicode, FixedLength: fixed}
}

// SemanticDecimal builds a decimal descriptor with explicit precision/scale.
func SemanticDecimal(precision, scale int) SemanticType {
	return SemanticType{Kind: KindDecimal, Precision: precision, Scale: scale}
}

// CatalogMeta carries the numeric metadata of one catalog row. Length,
// precision and scale always come from dedicated catalog fields; they are
// never re-parsed out of the type name string.
type CatalogMeta struct {
	Length    *int64
	Precision *int64
	Scale     *int64
	Nullable  bool
}

// Meta builds a CatalogMeta from plain ints; negative arguments mean absent.
func Meta(length, precision, scale int) CatalogMeta {
	m := CatalogMeta{}
	if length >= 0 {
		l := int64(length)
		m.Length = &l
	}
	if precision >= 0 {
		p := int64(precision)
		m.Precision = &p
	}
	if scale >= 0 {
		s := int64(scale)
		m.Scale = &s
	}
	return m
}

// LengthOr returns the catalog length or def when absent.
func (m CatalogMeta) LengthOr(def int) int {
	if m.Length == nil {
		return def
	}
	return int(*m.Length)
}

// PrecisionOr returns the catalog precision or def when absent.
func (m CatalogMeta) PrecisionOr(def int) int {
	if m.Precision == nil {
		return def
	}
	return int(*m.Precision)
}

// ScaleOr returns the catalog scale or def when absent.
func (m CatalogMeta) ScaleOr(def int) int {
	if m.Scale == nil {
		return def
	}
	return int(*m.Scale)
}
