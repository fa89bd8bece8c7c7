package common

import "github.com/sqlshape/sqlshape/pkg/model"

// ApplyPrimaryKey records the primary key on the table and flags its member
// columns.
func ApplyPrimaryKey(t *model.Table, pk model.PrimaryKey) {
	t.PrimaryKey = &pk
	for _, ic := range pk.Columns {
		if col, ok := t.Column(ic.Name); ok {
			col.IsPrimaryKey = true
		}
	}
}

// ApplyUnique records a unique constraint. Single-column constraints also
// flag the column itself.
func ApplyUnique(t *model.Table, uc model.UniqueConstraint) {
	t.UniqueConstraints = append(t.UniqueConstraints, uc)
	if len(uc.Columns) == 1 {
		if col, ok := t.Column(uc.Columns[0].Name); ok {
			col.IsUnique = true
		}
	}
}

// ApplyForeignKey records a foreign key. Single-column keys also populate the
// column's linkage fields; composite keys stay table-level only.
func ApplyForeignKey(t *model.Table, fk model.ForeignKey) {
	t.ForeignKeys = append(t.ForeignKeys, fk)
	if len(fk.Columns) == 1 && len(fk.ReferencedColumns) == 1 {
		if col, ok := t.Column(fk.Columns[0].Name); ok {
			col.ForeignTable = fk.ReferencedTable
			col.ForeignColumn = fk.ReferencedColumns[0]
		}
	}
}

// ApplyCheck records a check constraint. When the engine linked it to a
// column, or the whole-word heuristic finds exactly one candidate, the
// expression is also mirrored onto the column.
func ApplyCheck(t *model.Table, cc model.CheckConstraint) {
	if cc.ColumnName == "" {
		if name, ok := MatchCheckColumn(cc.Expression, t.ColumnNames()); ok {
			cc.ColumnName = name
		}
	}
	t.CheckConstraints = append(t.CheckConstraints, cc)
	if cc.ColumnName != "" {
		if col, ok := t.Column(cc.ColumnName); ok {
			col.CheckExpression = cc.Expression
		}
	}
}

// ApplyIndex records a standalone index and flags its member columns.
func ApplyIndex(t *model.Table, idx model.Index) {
	t.Indexes = append(t.Indexes, idx)
	for _, ic := range idx.Columns {
		if col, ok := t.Column(ic.Name); ok {
			col.IsIndexed = true
		}
	}
}
