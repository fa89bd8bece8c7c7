package oracle

import (
	"context"
	"strings"

	"github.com/sqlshape/sqlshape/pkg/dialect"
	"github.com/sqlshape/sqlshape/pkg/logger"
	"github.com/sqlshape/sqlshape/pkg/model"
	"github.com/sqlshape/sqlshape/pkg/provider"
	"github.com/sqlshape/sqlshape/pkg/sqltype"
	"github.com/sqlshape/sqlshape/provider/common"
)

// Provider implements provider.Provider for Oracle Database.
type Provider struct {
	typeMap *sqltype.Map
	types   *provider.StaticRegistry
	log     *logger.Logger
}

// New builds the Oracle provider. log may be nil.
func New(log *logger.Logger) *Provider {
	return NewWith(log, sqltype.ContextFor(dialect.Oracle))
}

// NewWith builds the provider around a caller-supplied resolution context,
// typically one carrying config-profile overrides.
func NewWith(log *logger.Logger, ctx sqltype.Context) *Provider {
	return &Provider{
		typeMap: NewTypeMapWith(ctx),
		types:   NewRegistry(),
		log:     log,
	}
}

func (p *Provider) Dialect() dialect.ID          { return dialect.Oracle }
func (p *Provider) TypeMap() *sqltype.Map        { return p.typeMap }
func (p *Provider) DataTypes() provider.Registry { return p.types }

// An empty schema argument selects the session's current schema.
const ownerGuard = "COALESCE(NULLIF(:1, ''), SYS_CONTEXT('USERENV', 'CURRENT_SCHEMA'))"

const listTablesQuery = `
SELECT table_name
FROM all_tables
WHERE owner = ` + ownerGuard + `
ORDER BY table_name`

// ListTables implements provider.Provider.
func (p *Provider) ListTables(ctx context.Context, q provider.Querier, opts provider.IntrospectOptions) ([]string, error) {
	rows, err := q.Query(ctx, listTablesQuery, opts.Schema)
	if err != nil {
		return nil, provider.WrapPhase(dialect.Oracle, "tables", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, provider.WrapPhase(dialect.Oracle, "tables", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, provider.WrapPhase(dialect.Oracle, "tables", err)
	}
	return names, nil
}

// char_length is 0 for non-character types; data_length supplies the byte
// width for raw columns.
const columnsQuery = `
SELECT c.table_name, c.column_name, c.column_id, c.data_type,
       COALESCE(c.char_length, 0), COALESCE(c.data_length, 0), c.data_precision, c.data_scale,
       c.nullable, c.data_default, c.identity_column
FROM all_tab_columns c
JOIN all_tables t ON t.owner = c.owner AND t.table_name = c.table_name
WHERE c.owner = ` + ownerGuard

// System-generated NOT NULL checks carry GENERATED NAME and are noise here.
const constraintsQuery = `
SELECT c.table_name, c.constraint_name, c.constraint_type,
       LISTAGG(cc.column_name, ',') WITHIN GROUP (ORDER BY cc.position),
       COALESCE(rc.owner, ''), COALESCE(rc.table_name, ''),
       COALESCE(rcols.cols, ''),
       COALESCE(c.search_condition_vc, '')
FROM all_constraints c
JOIN all_cons_columns cc ON cc.owner = c.owner AND cc.constraint_name = c.constraint_name
LEFT JOIN all_constraints rc ON rc.owner = c.r_owner AND rc.constraint_name = c.r_constraint_name
LEFT JOIN (SELECT owner, constraint_name,
                  LISTAGG(column_name, ',') WITHIN GROUP (ORDER BY position) AS cols
           FROM all_cons_columns
           GROUP BY owner, constraint_name) rcols
  ON rcols.owner = c.r_owner AND rcols.constraint_name = c.r_constraint_name
WHERE c.owner = ` + ownerGuard + `
  AND c.constraint_type IN ('P', 'U', 'R', 'C')
  AND NOT (c.constraint_type = 'C' AND c.generated = 'GENERATED NAME')
GROUP BY c.table_name, c.constraint_name, c.constraint_type, rc.owner, rc.table_name, rcols.cols,
         c.search_condition_vc
ORDER BY c.table_name, c.constraint_name`

const indexesQuery = `
SELECT i.table_name, i.index_name,
       CASE i.uniqueness WHEN 'UNIQUE' THEN 1 ELSE 0 END,
       LISTAGG(ic.column_name || CASE WHEN ic.descend = 'DESC' THEN ' DESC' ELSE '' END, ',')
           WITHIN GROUP (ORDER BY ic.column_position)
FROM all_indexes i
JOIN all_ind_columns ic ON ic.index_owner = i.owner AND ic.index_name = i.index_name
WHERE i.owner = ` + ownerGuard + `
  AND NOT EXISTS (SELECT 1 FROM all_constraints ac
                  WHERE ac.owner = i.owner AND ac.index_name = i.index_name)
GROUP BY i.table_name, i.index_name, i.uniqueness
ORDER BY i.table_name, i.index_name`

// Introspect implements provider.Provider.
func (p *Provider) Introspect(ctx context.Context, q provider.Querier, opts provider.IntrospectOptions) (*model.Schema, error) {
	s := &model.Schema{Dialect: dialect.Oracle, Name: opts.Schema}
	tables := make(map[string]*model.Table)

	if err := p.loadColumns(ctx, q, opts, tables); err != nil {
		return nil, provider.WrapPhase(dialect.Oracle, "columns", err)
	}
	if err := p.loadConstraints(ctx, q, opts.Schema, tables); err != nil {
		return nil, provider.WrapPhase(dialect.Oracle, "constraints", err)
	}
	if err := p.loadIndexes(ctx, q, opts.Schema, tables); err != nil {
		return nil, provider.WrapPhase(dialect.Oracle, "indexes", err)
	}

	s.Tables = make([]model.Table, 0, len(tables))
	for _, t := range tables {
		s.Tables = append(s.Tables, *t)
	}
	s.Normalize()
	p.log.Debugf("oracle: introspected %d tables", len(s.Tables))
	return s, nil
}

func (p *Provider) loadColumns(ctx context.Context, q provider.Querier, opts provider.IntrospectOptions, tables map[string]*model.Table) error {
	query := columnsQuery
	args := []any{opts.Schema}
	switch {
	case opts.Table != "":
		query += " AND c.table_name = :2"
		args = append(args, opts.Table)
	case opts.TablePattern != "":
		query += " AND c.table_name LIKE :2"
		args = append(args, opts.TablePattern)
	}
	query += "\nORDER BY c.table_name, c.column_id"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	ai := autoIncrement{}
	for rows.Next() {
		var (
			tableName, colName, dataType string
			ordinal                      int
			charLen, dataLen             int64
			precision, scale             *int64
			nullable, identityCol        string
			defaultExpr                  *string
		)
		if err := rows.Scan(&tableName, &colName, &ordinal, &dataType,
			&charLen, &dataLen, &precision, &scale, &nullable, &defaultExpr, &identityCol); err != nil {
			return err
		}

		t := tables[tableName]
		if t == nil {
			t = &model.Table{Schema: opts.Schema, Name: tableName}
			tables[tableName] = t
		}

		length := charLen
		if length == 0 {
			length = dataLen
		}
		meta := sqltype.CatalogMeta{Length: &length, Precision: precision, Scale: scale,
			Nullable: strings.EqualFold(nullable, "Y")}

		col := model.Column{
			Schema:   opts.Schema,
			Table:    tableName,
			Name:     colName,
			Ordinal:  ordinal,
			Type:     p.typeMap.ResolveSemanticType(dataType, meta),
			Nullable: meta.Nullable,
		}
		col.IsUnicode = col.Type.Unicode
		def := ""
		if defaultExpr != nil {
			def = strings.TrimSpace(*defaultExpr)
		}
		col.IsAutoIncrement = ai.Detect(identityCol, def)
		col.Type.AutoIncrement = col.IsAutoIncrement
		common.ClassifyGUIDDefault(&col, def)
		if def != "" && !col.IsAutoIncrement && !strings.EqualFold(def, "null") {
			col.DefaultExpression = def
			t.DefaultConstraints = append(t.DefaultConstraints, model.DefaultConstraint{
				ColumnName: colName,
				Expression: def,
			})
		}

		t.Columns = append(t.Columns, col)
	}
	return rows.Err()
}

func (p *Provider) loadConstraints(ctx context.Context, q provider.Querier, schema string, tables map[string]*model.Table) error {
	rows, err := q.Query(ctx, constraintsQuery, schema)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var tableName, conName, conType, cols, refSchema, refTable, refCols, condition string
		if err := rows.Scan(&tableName, &conName, &conType, &cols, &refSchema, &refTable, &refCols, &condition); err != nil {
			return err
		}
		t := tables[tableName]
		if t == nil {
			continue
		}

		columns := common.ParseIndexColumns(cols)
		switch conType {
		case "P":
			common.ApplyPrimaryKey(t, model.PrimaryKey{Name: conName, Columns: columns})
		case "U":
			common.ApplyUnique(t, model.UniqueConstraint{Name: conName, Columns: columns})
		case "R":
			common.ApplyForeignKey(t, model.ForeignKey{
				Name:              conName,
				Columns:           columns,
				ReferencedSchema:  refSchema,
				ReferencedTable:   refTable,
				ReferencedColumns: common.ParseNameList(refCols),
			})
		case "C":
			cc := model.CheckConstraint{Name: conName, Expression: condition}
			if len(columns) == 1 {
				cc.ColumnName = columns[0].Name
			}
			common.ApplyCheck(t, cc)
		}
	}
	return rows.Err()
}

func (p *Provider) loadIndexes(ctx context.Context, q provider.Querier, schema string, tables map[string]*model.Table) error {
	rows, err := q.Query(ctx, indexesQuery, schema)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var tableName, indexName, cols string
		var unique int
		if err := rows.Scan(&tableName, &indexName, &unique, &cols); err != nil {
			return err
		}
		if t := tables[tableName]; t != nil {
			common.ApplyIndex(t, model.Index{
				Name:    indexName,
				Columns: common.ParseIndexColumns(cols),
				Unique:  unique == 1,
			})
		}
	}
	return rows.Err()
}
