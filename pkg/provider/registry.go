package provider

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sqlshape/sqlshape/pkg/sqltype"
)

// Category groups native types the way documentation groups them.
type Category string

const (
	CategoryNumeric   Category = "numeric"
	CategoryString    Category = "string"
	CategoryBinary    Category = "binary"
	CategoryTemporal  Category = "temporal"
	CategoryBoolean   Category = "boolean"
	CategoryDocument  Category = "document"
	CategorySpatial   Category = "spatial"
	CategoryNetwork   Category = "network"
	CategoryOther     Category = "other"
	CategoryUserTypes Category = "user"
)

// TypeInfo describes one native type a dialect exposes, including what shape
// arguments it accepts and, for exact numerics, its representable range.
type TypeInfo struct {
	Name     string        `json:"name"`
	Kind     sqltype.Kind  `json:"kind"`
	Category Category      `json:"category"`
	Aliases  []string      `json:"aliases,omitempty"`

	AcceptsLength         bool `json:"acceptsLength,omitempty"`
	AcceptsPrecisionScale bool `json:"acceptsPrecisionScale,omitempty"`
	MaxLength             int  `json:"maxLength,omitempty"`

	// MinValue/MaxValue bound exact numeric types. Kept as decimals because
	// NUMBER(38) and DECIMAL(65) exceed what int64 can hold.
	MinValue *decimal.Decimal `json:"minValue,omitempty"`
	MaxValue *decimal.Decimal `json:"maxValue,omitempty"`

	// Custom marks enum, domain and other user-defined types discovered at
	// runtime rather than shipped with the dialect.
	Custom bool `json:"custom,omitempty"`
}

// Registry answers questions about a dialect's native types. Built-in entries
// are static; DiscoverUserDefined may add Custom entries from a live catalog.
type Registry interface {
	// Describe resolves a native type by name or alias, case-insensitively.
	Describe(name string) (TypeInfo, bool)

	// Lookup is the strict form of Describe: a miss is ErrTypeNotFound.
	Lookup(name string) (TypeInfo, error)

	// Names returns every registered type name in lexicographic order.
	Names() []string

	// ByCategory returns the types of one category in lexicographic order.
	ByCategory(c Category) []TypeInfo
}

// StaticRegistry is the Registry the dialect packages construct from their
// built-in type tables. User-defined types can be merged in with Add.
type StaticRegistry struct {
	byName map[string]TypeInfo
	names  []string
}

// NewStaticRegistry builds a registry from built-in entries. Duplicate names
// or aliases panic: the tables are package literals and overlaps are bugs.
func NewStaticRegistry(infos []TypeInfo) *StaticRegistry {
	r := &StaticRegistry{byName: make(map[string]TypeInfo, len(infos))}
	for _, info := range infos {
		r.add(info)
	}
	return r
}

func (r *StaticRegistry) add(info TypeInfo) {
	key := strings.ToLower(info.Name)
	if _, ok := r.byName[key]; ok {
		panic(fmt.Sprintf("provider: duplicate type registration %q", info.Name))
	}
	r.byName[key] = info
	r.names = append(r.names, info.Name)
	for _, alias := range info.Aliases {
		ak := strings.ToLower(alias)
		if _, ok := r.byName[ak]; ok {
			panic(fmt.Sprintf("provider: duplicate type alias %q", alias))
		}
		r.byName[ak] = info
	}
	sort.Strings(r.names)
}

// Add merges a discovered user-defined type. Re-adding an existing name
// replaces the entry, so repeated discovery runs stay idempotent.
func (r *StaticRegistry) Add(info TypeInfo) {
	key := strings.ToLower(info.Name)
	if _, ok := r.byName[key]; !ok {
		r.names = append(r.names, info.Name)
		sort.Strings(r.names)
	}
	r.byName[key] = info
}

// Describe implements Registry.
func (r *StaticRegistry) Describe(name string) (TypeInfo, bool) {
	info, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return info, ok
}

// Lookup implements Registry.
func (r *StaticRegistry) Lookup(name string) (TypeInfo, error) {
	info, ok := r.Describe(name)
	if !ok {
		return TypeInfo{}, fmt.Errorf("%w: %q", ErrTypeNotFound, name)
	}
	return info, nil
}

// Names implements Registry.
func (r *StaticRegistry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// ByCategory implements Registry.
func (r *StaticRegistry) ByCategory(c Category) []TypeInfo {
	var out []TypeInfo
	for _, name := range r.names {
		info := r.byName[strings.ToLower(name)]
		if info.Category == c {
			out = append(out, info)
		}
	}
	return out
}

// DecimalBound builds a pointer bound from a decimal literal string. It
// panics on malformed input; callers pass package-level constants only.
func DecimalBound(s string) *decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(fmt.Sprintf("provider: bad decimal bound %q: %v", s, err))
	}
	return &d
}
