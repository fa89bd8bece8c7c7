package sqltype

import "fmt"

// SQLType is the concrete, dialect-specific type syntax for a column clause.
// Name is always syntactically valid for the owning dialect; any numeric
// metadata embedded in Name agrees with the separate fields.
type SQLType struct {
	Name        string `json:"name"`
	Length      int    `json:"length,omitempty"`
	Precision   int    `json:"precision,omitempty"`
	Scale       int    `json:"scale,omitempty"`
	Unicode     bool   `json:"unicode,omitempty"`
	FixedLength bool   `json:"fixedLength,omitempty"`
}

// Plain builds a descriptor whose name carries no embedded metadata.
func Plain(name string) SQLType {
	return SQLType{Name: name}
}

// Bounded builds a descriptor with an embedded length, e.g. "varchar(36)".
func Bounded(base string, length int) SQLType {
	return SQLType{Name: fmt.Sprintf("%s(%d)", base, length), Length: length}
}

// LargeObject builds a descriptor for an unbounded type. Length records the
// unbounded sentinel so the value round-trips.
func LargeObject(name string) SQLType {
	return SQLType{Name: name, Length: LengthUnbounded}
}

// Sized builds a descriptor with embedded precision and scale,
// e.g. "decimal(18,2)".
func Sized(base string, precision, scale int) SQLType {
	return SQLType{
		Name:      fmt.Sprintf("%s(%d,%d)", base, precision, scale),
		Precision: precision,
		Scale:     scale,
	}
}

// Render returns the column-clause text. Name already embeds any numeric
// metadata, so the two never disagree.
func (t SQLType) Render() string {
	return t.Name
}

// Unbounded reports whether the descriptor carries the unbounded sentinel.
func (t SQLType) Unbounded() bool {
	return t.Length == LengthUnbounded
}
