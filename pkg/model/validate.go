package model

import (
	"fmt"
	"strings"

	"github.com/sqlshape/sqlshape/pkg/dialect"
)

// Validate checks the structural invariants of the schema model: column names
// unique per table (case-insensitive), foreign key source/referenced column
// counts matching, at most one primary key per table, and constraint names
// unique within the dialect's naming scope. It returns the first violation
// found.
func (s *Schema) Validate() error {
	cap, ok := dialect.Get(s.Dialect)
	if !ok {
		return fmt.Errorf("schema references unknown dialect %q", s.Dialect)
	}

	schemaScoped := make(map[string]string) // constraint name -> owning table
	for i := range s.Tables {
		t := &s.Tables[i]
		if err := t.validate(); err != nil {
			return err
		}

		if cap.ConstraintScope != dialect.ScopeSchema {
			continue
		}
		for _, name := range t.constraintNames() {
			key := strings.ToLower(name)
			if owner, dup := schemaScoped[key]; dup && owner != t.Name {
				return fmt.Errorf("constraint name %q used by both %s and %s but must be unique per schema", name, owner, t.Name)
			}
			schemaScoped[key] = t.Name
		}
	}
	return nil
}

func (t *Table) validate() error {
	seen := make(map[string]struct{}, len(t.Columns))
	for _, c := range t.Columns {
		key := strings.ToLower(c.Name)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("table %s.%s: duplicate column name %q", t.Schema, t.Name, c.Name)
		}
		seen[key] = struct{}{}
	}

	for _, fk := range t.ForeignKeys {
		if len(fk.Columns) != len(fk.ReferencedColumns) {
			return fmt.Errorf("table %s.%s: foreign key %q has %d source columns but %d referenced columns",
				t.Schema, t.Name, fk.Name, len(fk.Columns), len(fk.ReferencedColumns))
		}
		if len(fk.Columns) == 0 {
			return fmt.Errorf("table %s.%s: foreign key %q has no columns", t.Schema, t.Name, fk.Name)
		}
	}

	names := make(map[string]struct{})
	for _, name := range t.constraintNames() {
		key := strings.ToLower(name)
		if _, dup := names[key]; dup {
			return fmt.Errorf("table %s.%s: duplicate constraint name %q", t.Schema, t.Name, name)
		}
		names[key] = struct{}{}
	}
	return nil
}

// constraintNames lists every named constraint on the table. Unnamed defaults
// are skipped; dialects that name them report the catalog name.
func (t *Table) constraintNames() []string {
	var names []string
	if t.PrimaryKey != nil && t.PrimaryKey.Name != "" {
		names = append(names, t.PrimaryKey.Name)
	}
	for _, u := range t.UniqueConstraints {
		names = append(names, u.Name)
	}
	for _, fk := range t.ForeignKeys {
		names = append(names, fk.Name)
	}
	for _, c := range t.CheckConstraints {
		names = append(names, c.Name)
	}
	for _, d := range t.DefaultConstraints {
		if d.Name != "" {
			names = append(names, d.Name)
		}
	}
	return names
}
