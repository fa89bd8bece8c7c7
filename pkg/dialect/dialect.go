package dialect

import "strings"

// ID is the canonical identifier for a SQL dialect supported by sqlshape.
// Use these constants to look up capability information.
type ID string

const (
	Postgres  ID = "postgres"
	MySQL     ID = "mysql"
	SQLServer ID = "mssql"
	Oracle    ID = "oracle"
)

// NamingScope describes where constraint names must be unique for a dialect.
type NamingScope string

const (
	// ScopeSchema means constraint names are unique within a schema
	// (PostgreSQL, Oracle, SQL Server).
	ScopeSchema NamingScope = "schema"

	// ScopeTable means constraint names only need to be unique within
	// their table (MySQL index names).
	ScopeTable NamingScope = "table"
)

// TypeDefaults holds the dialect defaults consulted during type resolution.
type TypeDefaults struct {
	// StringLength is applied when a string descriptor carries no length.
	StringLength int `json:"stringLength"`

	// MaxStringLength is the bounded-type ceiling: lengths at or above it
	// resolve to the dialect's large-object type.
	MaxStringLength int `json:"maxStringLength"`

	// DecimalPrecision and DecimalScale are applied when a decimal
	// descriptor carries neither.
	DecimalPrecision int `json:"decimalPrecision"`
	DecimalScale     int `json:"decimalScale"`

	// UnicodeByDefault reports whether bare string types store unicode
	// without a distinct type name (true everywhere except SQL Server).
	UnicodeByDefault bool `json:"unicodeByDefault"`
}

// Capability describes one dialect in a way all consumers use uniformly.
type Capability struct {
	// Human-friendly vendor or product name, e.g. "PostgreSQL".
	Name string `json:"name"`

	// Canonical ID used across the codebase, e.g. "postgres".
	ID ID `json:"id"`

	// DefaultSchema is the schema introspected when the caller names none.
	DefaultSchema string `json:"defaultSchema"`

	// SystemSchemas are never introspected.
	SystemSchemas []string `json:"systemSchemas,omitempty"`

	// ConstraintScope is where constraint names must be unique.
	ConstraintScope NamingScope `json:"constraintScope"`

	// TypeDefaults feed sqltype.Context construction.
	TypeDefaults TypeDefaults `json:"typeDefaults"`

	// HasDynamicType reports whether the dialect has a true dynamic-type
	// column (only SQL Server's sql_variant). Opaque semantic kinds map to
	// it there and to a text escape everywhere else.
	HasDynamicType bool `json:"hasDynamicType"`

	// Common aliases (driver names, env labels) that map to this dialect.
	Aliases []string `json:"aliases,omitempty"`
}

// All is a registry of capabilities keyed by the canonical dialect ID.
var All = map[ID]Capability{
	Postgres: {
		Name:            "PostgreSQL",
		ID:              Postgres,
		DefaultSchema:   "public",
		SystemSchemas:   []string{"pg_catalog", "information_schema", "pg_toast"},
		ConstraintScope: ScopeSchema,
		TypeDefaults: TypeDefaults{
			StringLength:     255,
			MaxStringLength:  10485760,
			DecimalPrecision: 38,
			DecimalScale:     6,
			UnicodeByDefault: true,
		},
		Aliases: []string{"postgresql", "pgsql", "pgx"},
	},
	MySQL: {
		Name:            "MySQL",
		ID:              MySQL,
		DefaultSchema:   "",
		SystemSchemas:   []string{"mysql", "information_schema", "performance_schema", "sys"},
		ConstraintScope: ScopeTable,
		TypeDefaults: TypeDefaults{
			StringLength:     255,
			MaxStringLength:  65535,
			DecimalPrecision: 38,
			DecimalScale:     6,
			UnicodeByDefault: true,
		},
		Aliases: []string{"mariadb", "aurora-mysql"},
	},
	SQLServer: {
		Name:            "Microsoft SQL Server",
		ID:              SQLServer,
		DefaultSchema:   "dbo",
		SystemSchemas:   []string{"sys", "INFORMATION_SCHEMA", "guest"},
		ConstraintScope: ScopeSchema,
		TypeDefaults: TypeDefaults{
			StringLength:     255,
			MaxStringLength:  4000,
			DecimalPrecision: 38,
			DecimalScale:     6,
			UnicodeByDefault: false,
		},
		HasDynamicType: true,
		Aliases:        []string{"sqlserver", "azure-sql"},
	},
	Oracle: {
		Name:            "Oracle Database",
		ID:              Oracle,
		DefaultSchema:   "",
		SystemSchemas:   []string{"SYS", "SYSTEM", "XDB", "CTXSYS", "MDSYS"},
		ConstraintScope: ScopeSchema,
		TypeDefaults: TypeDefaults{
			StringLength:     255,
			MaxStringLength:  4000,
			DecimalPrecision: 38,
			DecimalScale:     6,
			UnicodeByDefault: true,
		},
		Aliases: []string{"oracledb", "godror"},
	},
}

// nameToID is a normalized lookup index from any known name/alias to the canonical ID.
var nameToID map[string]ID

func init() {
	nameToID = make(map[string]ID, len(All)*3)
	for id, cap := range All {
		nameToID[strings.ToLower(string(id))] = id
		if cap.Name != "" {
			nameToID[strings.ToLower(cap.Name)] = id
		}
		for _, a := range cap.Aliases {
			if a == "" {
				continue
			}
			nameToID[strings.ToLower(a)] = id
		}
	}
}

// ParseID attempts to resolve an arbitrary dialect name (canonical id, alias,
// or product name) to a canonical ID. Returns false if unknown.
func ParseID(name string) (ID, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return "", false
	}
	id, ok := nameToID[n]
	return id, ok
}

// IDs returns the list of all known dialect IDs.
func IDs() []ID {
	out := make([]ID, 0, len(All))
	for id := range All {
		out = append(out, id)
	}
	return out
}

// Get returns capabilities for the given ID and a boolean indicating existence.
func Get(id ID) (Capability, bool) {
	c, ok := All[id]
	return c, ok
}

// MustGet returns capabilities for the given ID and panics if not found.
func MustGet(id ID) Capability {
	c, ok := Get(id)
	if !ok {
		panic("dialect: unknown dialect id: " + string(id))
	}
	return c
}
