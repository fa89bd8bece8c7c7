package model

import (
	"fmt"
	"reflect"
)

// Difference records one field-level divergence between two schema snapshots.
type Difference struct {
	Table  string `json:"table"`
	Object string `json:"object"`
	Left   string `json:"left"`
	Right  string `json:"right"`
}

func (d Difference) String() string {
	return fmt.Sprintf("%s: %s: %q != %q", d.Table, d.Object, d.Left, d.Right)
}

// Diff compares two normalized snapshots table by table. It reports missing
// tables, missing columns and any structural field that differs; identical
// snapshots yield a nil slice. Both inputs should come from Normalize-d
// introspection results so that ordering noise never shows up as a diff.
func Diff(left, right *Schema) []Difference {
	var diffs []Difference

	rightTables := make(map[string]*Table, len(right.Tables))
	for i := range right.Tables {
		t := &right.Tables[i]
		rightTables[t.Schema+"."+t.Name] = t
	}

	seen := make(map[string]struct{}, len(left.Tables))
	for i := range left.Tables {
		lt := &left.Tables[i]
		key := lt.Schema + "." + lt.Name
		seen[key] = struct{}{}

		rt, ok := rightTables[key]
		if !ok {
			diffs = append(diffs, Difference{Table: key, Object: "table", Left: "present", Right: "absent"})
			continue
		}
		diffs = append(diffs, diffTables(key, lt, rt)...)
	}

	for i := range right.Tables {
		rt := &right.Tables[i]
		key := rt.Schema + "." + rt.Name
		if _, ok := seen[key]; !ok {
			diffs = append(diffs, Difference{Table: key, Object: "table", Left: "absent", Right: "present"})
		}
	}
	return diffs
}

func diffTables(key string, left, right *Table) []Difference {
	var diffs []Difference

	rightCols := make(map[string]*Column, len(right.Columns))
	for i := range right.Columns {
		rightCols[right.Columns[i].Name] = &right.Columns[i]
	}
	for i := range left.Columns {
		lc := &left.Columns[i]
		rc, ok := rightCols[lc.Name]
		if !ok {
			diffs = append(diffs, Difference{Table: key, Object: "column " + lc.Name, Left: "present", Right: "absent"})
			continue
		}
		if !reflect.DeepEqual(*lc, *rc) {
			diffs = append(diffs, Difference{
				Table:  key,
				Object: "column " + lc.Name,
				Left:   fmt.Sprintf("%+v", *lc),
				Right:  fmt.Sprintf("%+v", *rc),
			})
		}
		delete(rightCols, lc.Name)
	}
	for name := range rightCols {
		diffs = append(diffs, Difference{Table: key, Object: "column " + name, Left: "absent", Right: "present"})
	}

	// Fixed iteration order keeps diff output stable across runs.
	pairs := []struct {
		object      string
		left, right any
	}{
		{"primary key", left.PrimaryKey, right.PrimaryKey},
		{"unique constraints", left.UniqueConstraints, right.UniqueConstraints},
		{"foreign keys", left.ForeignKeys, right.ForeignKeys},
		{"check constraints", left.CheckConstraints, right.CheckConstraints},
		{"default constraints", left.DefaultConstraints, right.DefaultConstraints},
		{"indexes", left.Indexes, right.Indexes},
	}
	for _, pair := range pairs {
		if !reflect.DeepEqual(pair.left, pair.right) {
			diffs = append(diffs, Difference{
				Table:  key,
				Object: pair.object,
				Left:   fmt.Sprintf("%+v", pair.left),
				Right:  fmt.Sprintf("%+v", pair.right),
			})
		}
	}
	return diffs
}
