package model

import (
	"sort"
	"strings"

	"github.com/sqlshape/sqlshape/pkg/dialect"
	"github.com/sqlshape/sqlshape/pkg/sqltype"
)

// Schema is a read-only introspection snapshot: a freshly produced,
// provider-independent view of one database schema. The core never mutates a
// Schema after returning it.
type Schema struct {
	Dialect dialect.ID `json:"dialect"`
	Name    string     `json:"name"`
	Tables  []Table    `json:"tables"`
}

// Table holds one table with all of its structure, ordered deterministically:
// columns by ordinal, everything else by name.
type Table struct {
	Schema string `json:"schema"`
	Name   string `json:"name"`

	Columns            []Column            `json:"columns"`
	PrimaryKey         *PrimaryKey         `json:"primaryKey,omitempty"`
	UniqueConstraints  []UniqueConstraint  `json:"uniqueConstraints,omitempty"`
	ForeignKeys        []ForeignKey        `json:"foreignKeys,omitempty"`
	CheckConstraints   []CheckConstraint   `json:"checkConstraints,omitempty"`
	DefaultConstraints []DefaultConstraint `json:"defaultConstraints,omitempty"`
	Indexes            []Index             `json:"indexes,omitempty"`
}

// Column is one introspected column. Type is the normalized semantic
// descriptor; DeclaredType preserves the catalog's complete type text when
// the dialect provides one.
type Column struct {
	Schema string `json:"schema"`
	Table  string `json:"table"`
	Name   string `json:"name"`

	Ordinal      int                  `json:"ordinal"`
	Type         sqltype.SemanticType `json:"type"`
	DeclaredType string               `json:"declaredType,omitempty"`

	Nullable        bool `json:"nullable"`
	IsPrimaryKey    bool `json:"isPrimaryKey,omitempty"`
	IsAutoIncrement bool `json:"isAutoIncrement,omitempty"`
	IsUnique        bool `json:"isUnique,omitempty"`
	IsUnicode       bool `json:"isUnicode,omitempty"`
	IsIndexed       bool `json:"isIndexed,omitempty"`

	// Foreign key linkage, populated when exactly one foreign key covers
	// this column.
	ForeignTable  string `json:"foreignTable,omitempty"`
	ForeignColumn string `json:"foreignColumn,omitempty"`

	CheckExpression   string `json:"checkExpression,omitempty"`
	DefaultExpression string `json:"defaultExpression,omitempty"`
}

// IndexColumn is one ordered member of an index or constraint.
type IndexColumn struct {
	Name       string `json:"name"`
	Descending bool   `json:"descending,omitempty"`
}

// PrimaryKey is a table's primary key; at most one exists per table.
type PrimaryKey struct {
	Name    string        `json:"name,omitempty"`
	Columns []IndexColumn `json:"columns"`
}

// UniqueConstraint is a named uniqueness constraint.
type UniqueConstraint struct {
	Name    string        `json:"name"`
	Columns []IndexColumn `json:"columns"`
}

// ForeignKey pairs source and referenced columns positionally; both slices
// always have the same length.
type ForeignKey struct {
	Name              string        `json:"name"`
	Columns           []IndexColumn `json:"columns"`
	ReferencedSchema  string        `json:"referencedSchema,omitempty"`
	ReferencedTable   string        `json:"referencedTable"`
	ReferencedColumns []string      `json:"referencedColumns"`
}

// CheckConstraint holds a check expression. ColumnName is set only when the
// dialect links the check to a column, or when the whole-word heuristic
// matched exactly one column; otherwise the check stays table-scoped.
type CheckConstraint struct {
	Name       string `json:"name"`
	Expression string `json:"expression"`
	ColumnName string `json:"columnName,omitempty"`
}

// DefaultConstraint holds a column default. Name is empty on dialects that do
// not name default constraints.
type DefaultConstraint struct {
	Name       string `json:"name,omitempty"`
	ColumnName string `json:"columnName"`
	Expression string `json:"expression"`
}

// Index is a standalone index, excluding indexes that merely back a
// constraint already represented on the table.
type Index struct {
	Name    string        `json:"name"`
	Columns []IndexColumn `json:"columns"`
	Unique  bool          `json:"unique,omitempty"`
}

// Column returns the named column, matched case-insensitively.
func (t *Table) Column(name string) (*Column, bool) {
	for i := range t.Columns {
		if strings.EqualFold(t.Columns[i].Name, name) {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// ColumnNames returns the table's column names in ordinal order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Table returns the named table within the schema.
func (s *Schema) Table(schema, name string) (*Table, bool) {
	for i := range s.Tables {
		if s.Tables[i].Schema == schema && s.Tables[i].Name == name {
			return &s.Tables[i], true
		}
	}
	return nil, false
}

// Normalize sorts every collection into the canonical order so that repeated
// introspection of an unchanged database compares field-for-field equal.
func (s *Schema) Normalize() {
	sort.Slice(s.Tables, func(i, j int) bool {
		if s.Tables[i].Schema != s.Tables[j].Schema {
			return s.Tables[i].Schema < s.Tables[j].Schema
		}
		return s.Tables[i].Name < s.Tables[j].Name
	})
	for i := range s.Tables {
		s.Tables[i].normalize()
	}
}

func (t *Table) normalize() {
	sort.Slice(t.Columns, func(i, j int) bool { return t.Columns[i].Ordinal < t.Columns[j].Ordinal })
	sort.Slice(t.UniqueConstraints, func(i, j int) bool { return t.UniqueConstraints[i].Name < t.UniqueConstraints[j].Name })
	sort.Slice(t.ForeignKeys, func(i, j int) bool { return t.ForeignKeys[i].Name < t.ForeignKeys[j].Name })
	sort.Slice(t.CheckConstraints, func(i, j int) bool { return t.CheckConstraints[i].Name < t.CheckConstraints[j].Name })
	sort.Slice(t.DefaultConstraints, func(i, j int) bool {
		if t.DefaultConstraints[i].ColumnName != t.DefaultConstraints[j].ColumnName {
			return t.DefaultConstraints[i].ColumnName < t.DefaultConstraints[j].ColumnName
		}
		return t.DefaultConstraints[i].Name < t.DefaultConstraints[j].Name
	})
	sort.Slice(t.Indexes, func(i, j int) bool { return t.Indexes[i].Name < t.Indexes[j].Name })
}
