package sqltype

import "github.com/sqlshape/sqlshape/pkg/dialect"

// Context supplies the dialect defaults consulted during resolution. A zero
// length, precision or scale on a descriptor is filled from here.
type Context struct {
	Dialect                 dialect.ID
	DefaultStringLength     int
	MaxStringLength         int
	DefaultDecimalPrecision int
	DefaultDecimalScale     int
	UnicodeByDefault        bool
}

// ContextFor builds the resolution context from a dialect's registered
// capability metadata.
func ContextFor(id dialect.ID) Context {
	cap := dialect.MustGet(id)
	return Context{
		Dialect:                 id,
		DefaultStringLength:     cap.TypeDefaults.StringLength,
		MaxStringLength:         cap.TypeDefaults.MaxStringLength,
		DefaultDecimalPrecision: cap.TypeDefaults.DecimalPrecision,
		DefaultDecimalScale:     cap.TypeDefaults.DecimalScale,
		UnicodeByDefault:        cap.TypeDefaults.UnicodeByDefault,
	}
}

// StringLength returns the effective length for a string descriptor: the
// declared length when positive, the unbounded sentinel when carried, else
// the dialect default.
func (c Context) StringLength(s SemanticType) int {
	if s.Length == LengthUnbounded {
		return LengthUnbounded
	}
	if s.Length > 0 {
		return s.Length
	}
	return c.DefaultStringLength
}

// DecimalShape returns the effective precision and scale for a decimal
// descriptor, filling absent values from the dialect defaults.
func (c Context) DecimalShape(s SemanticType) (int, int) {
	precision, scale := s.Precision, s.Scale
	if precision <= 0 {
		precision = c.DefaultDecimalPrecision
		scale = c.DefaultDecimalScale
	}
	return precision, scale
}
