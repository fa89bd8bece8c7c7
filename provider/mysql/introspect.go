package mysql

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

// Provider implements provider.Provider for MySQL and MariaDB.
type Provider struct {
	typeMap *sqltype.Map
	types   *provider.StaticRegistry
	log     *logger.Logger
}

// New builds the MySQL provider. log may be nil.
func New(log *logger.Logger) *Provider {
	return NewWith(log, sqltype.ContextFor(dialect.MySQL))
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

func (p *Provider) Dialect() dialect.ID          { return dialect.MySQL }
func (p *Provider) TypeMap() *sqltype.Map        { return p.typeMap }
func (p *Provider) DataTypes() provider.Registry { return p.types }

// An empty schema argument selects the connection's current database via
// DATABASE(), so every query carries the same COALESCE guard.
const schemaGuard = "COALESCE(NULLIF(?, ''), DATABASE())"

const listTablesQuery = `
SELECT TABLE_NAME
FROM information_schema.TABLES
WHERE TABLE_SCHEMA = ` + schemaGuard + ` AND TABLE_TYPE = 'BASE TABLE'
ORDER BY TABLE_NAME`

// ListTables implements provider.Provider.
func (p *Provider) ListTables(ctx context.Context, q provider.Querier, opts provider.IntrospectOptions) ([]string, error) {
	rows, err := q.Query(ctx, listTablesQuery, opts.Schema)
	if err != nil {
		return nil, provider.WrapPhase(dialect.MySQL, "tables", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, provider.WrapPhase(dialect.MySQL, "tables", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, provider.WrapPhase(dialect.MySQL, "tables", err)
	}
	return names, nil
}

const columnsQuery = `
SELECT c.TABLE_NAME, c.COLUMN_NAME, c.ORDINAL_POSITION,
       c.DATA_TYPE, c.COLUMN_TYPE,
       c.CHARACTER_MAXIMUM_LENGTH, c.NUMERIC_PRECISION, c.NUMERIC_SCALE,
       c.IS_NULLABLE, c.COLUMN_DEFAULT, c.EXTRA
FROM information_schema.COLUMNS c
JOIN information_schema.TABLES t
  ON t.TABLE_SCHEMA = c.TABLE_SCHEMA AND t.TABLE_NAME = c.TABLE_NAME
WHERE c.TABLE_SCHEMA = ` + schemaGuard + ` AND t.TABLE_TYPE = 'BASE TABLE'`

const keyConstraintsQuery = `
SELECT tc.TABLE_NAME, tc.CONSTRAINT_NAME, tc.CONSTRAINT_TYPE,
       GROUP_CONCAT(kcu.COLUMN_NAME ORDER BY kcu.ORDINAL_POSITION SEPARATOR ','),
       COALESCE(kcu.REFERENCED_TABLE_SCHEMA, ''),
       COALESCE(kcu.REFERENCED_TABLE_NAME, ''),
       COALESCE(GROUP_CONCAT(kcu.REFERENCED_COLUMN_NAME ORDER BY kcu.ORDINAL_POSITION SEPARATOR ','), '')
FROM information_schema.TABLE_CONSTRAINTS tc
JOIN information_schema.KEY_COLUMN_USAGE kcu
  ON kcu.CONSTRAINT_SCHEMA = tc.CONSTRAINT_SCHEMA
 AND kcu.CONSTRAINT_NAME = tc.CONSTRAINT_NAME
 AND kcu.TABLE_NAME = tc.TABLE_NAME
WHERE tc.TABLE_SCHEMA = ` + schemaGuard + `
  AND tc.CONSTRAINT_TYPE IN ('PRIMARY KEY', 'UNIQUE', 'FOREIGN KEY')
GROUP BY tc.TABLE_NAME, tc.CONSTRAINT_NAME, tc.CONSTRAINT_TYPE,
         kcu.REFERENCED_TABLE_SCHEMA, kcu.REFERENCED_TABLE_NAME
ORDER BY tc.TABLE_NAME, tc.CONSTRAINT_NAME`

const checkConstraintsQuery = `
SELECT tc.TABLE_NAME, cc.CONSTRAINT_NAME, cc.CHECK_CLAUSE
FROM information_schema.CHECK_CONSTRAINTS cc
JOIN information_schema.TABLE_CONSTRAINTS tc
  ON tc.CONSTRAINT_SCHEMA = cc.CONSTRAINT_SCHEMA
 AND tc.CONSTRAINT_NAME = cc.CONSTRAINT_NAME
WHERE tc.TABLE_SCHEMA = ` + schemaGuard + ` AND tc.CONSTRAINT_TYPE = 'CHECK'
ORDER BY tc.TABLE_NAME, cc.CONSTRAINT_NAME`

const indexesQuery = `
SELECT s.TABLE_NAME, s.INDEX_NAME, MIN(s.NON_UNIQUE),
       GROUP_CONCAT(CONCAT(s.COLUMN_NAME, IF(s.COLLATION = 'D', ' DESC', ''))
                    ORDER BY s.SEQ_IN_INDEX SEPARATOR ',')
FROM information_schema.STATISTICS s
WHERE s.TABLE_SCHEMA = ` + schemaGuard + `
  AND s.INDEX_NAME <> 'PRIMARY'
  AND NOT EXISTS (
      SELECT 1
      FROM information_schema.TABLE_CONSTRAINTS tc
      WHERE tc.TABLE_SCHEMA = s.TABLE_SCHEMA
        AND tc.TABLE_NAME = s.TABLE_NAME
        AND tc.CONSTRAINT_NAME = s.INDEX_NAME)
GROUP BY s.TABLE_NAME, s.INDEX_NAME
ORDER BY s.TABLE_NAME, s.INDEX_NAME`

// Introspect implements provider.Provider.
func (p *Provider) Introspect(ctx context.Context, q provider.Querier, opts provider.IntrospectOptions) (*model.Schema, error) {
	s := &model.Schema{Dialect: dialect.MySQL, Name: opts.Schema}
	tables := make(map[string]*model.Table)

	if err := p.loadColumns(ctx, q, opts, tables); err != nil {
		return nil, provider.WrapPhase(dialect.MySQL, "columns", err)
	}
	if err := p.loadConstraints(ctx, q, opts.Schema, tables); err != nil {
		return nil, provider.WrapPhase(dialect.MySQL, "constraints", err)
	}
	if err := p.loadIndexes(ctx, q, opts.Schema, tables); err != nil {
		return nil, provider.WrapPhase(dialect.MySQL, "indexes", err)
	}

	s.Tables = make([]model.Table, 0, len(tables))
	for _, t := range tables {
		s.Tables = append(s.Tables, *t)
	}
	s.Normalize()
	p.log.Debugf("mysql: introspected %d tables", len(s.Tables))
	return s, nil
}

func (p *Provider) loadColumns(ctx context.Context, q provider.Querier, opts provider.IntrospectOptions, tables map[string]*model.Table) error {
	query := columnsQuery
	args := []any{opts.Schema}
	switch {
	case opts.Table != "":
		query += " AND c.TABLE_NAME = ?"
		args = append(args, opts.Table)
	case opts.TablePattern != "":
		query += " AND c.TABLE_NAME LIKE ?"
		args = append(args, opts.TablePattern)
	}
	query += "\nORDER BY c.TABLE_NAME, c.ORDINAL_POSITION"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	ai := autoIncrement{}
	for rows.Next() {
		var (
			tableName, colName, dataType, columnType string
			ordinal                                  int
			charLen, numPrec, numScale               *int64
			isNullable, extra                        string
			defaultExpr                              *string
		)
		if err := rows.Scan(&tableName, &colName, &ordinal, &dataType, &columnType,
			&charLen, &numPrec, &numScale, &isNullable, &defaultExpr, &extra); err != nil {
			return err
		}

		t := tables[tableName]
		if t == nil {
			t = &model.Table{Schema: opts.Schema, Name: tableName}
			tables[tableName] = t
		}

		meta := sqltype.CatalogMeta{Length: charLen, Precision: numPrec, Scale: numScale,
			Nullable: strings.EqualFold(isNullable, "YES")}

		col := model.Column{
			Schema:       opts.Schema,
			Table:        tableName,
			Name:         colName,
			Ordinal:      ordinal,
			Type:         resolveColumnType(p.typeMap, dataType, columnType, meta),
			DeclaredType: columnType,
			Nullable:     meta.Nullable,
		}
		col.IsUnicode = col.Type.Unicode
		col.IsAutoIncrement = ai.Detect(extra)
		col.Type.AutoIncrement = col.IsAutoIncrement
		if defaultExpr != nil && !col.IsAutoIncrement {
			col.DefaultExpression = *defaultExpr
			common.ClassifyGUIDDefault(&col, *defaultExpr)
			t.DefaultConstraints = append(t.DefaultConstraints, model.DefaultConstraint{
				ColumnName: colName,
				Expression: *defaultExpr,
			})
		}

		t.Columns = append(t.Columns, col)
	}
	return rows.Err()
}

// resolveColumnType maps a catalog row to a semantic descriptor. The bool
// convention tinyint(1) lives only in the complete declared type, so it is
// special-cased here rather than parsed out of the name in a reverse rule.
func resolveColumnType(m *sqltype.Map, dataType, columnType string, meta sqltype.CatalogMeta) sqltype.SemanticType {
	if strings.HasPrefix(strings.ToLower(columnType), "tinyint(1)") {
		return sqltype.Semantic(sqltype.KindBool)
	}
	return m.ResolveSemanticType(dataType, meta)
}

func (p *Provider) loadConstraints(ctx context.Context, q provider.Querier, schema string, tables map[string]*model.Table) error {
	rows, err := q.Query(ctx, keyConstraintsQuery, schema)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var tableName, conName, conType, cols, refSchema, refTable, refCols string
		if err := rows.Scan(&tableName, &conName, &conType, &cols, &refSchema, &refTable, &refCols); err != nil {
			return err
		}
		t := tables[tableName]
		if t == nil {
			continue
		}

		columns := common.ParseIndexColumns(cols)
		switch conType {
		case "PRIMARY KEY":
			common.ApplyPrimaryKey(t, model.PrimaryKey{Name: conName, Columns: columns})
		case "UNIQUE":
			common.ApplyUnique(t, model.UniqueConstraint{Name: conName, Columns: columns})
		case "FOREIGN KEY":
			common.ApplyForeignKey(t, model.ForeignKey{
				Name:              conName,
				Columns:           columns,
				ReferencedSchema:  refSchema,
				ReferencedTable:   refTable,
				ReferencedColumns: common.ParseNameList(refCols),
			})
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	return p.loadChecks(ctx, q, schema, tables)
}

// loadChecks attaches check constraints. MySQL's catalog does not link a
// check to its columns, so attribution falls to the whole-word heuristic.
func (p *Provider) loadChecks(ctx context.Context, q provider.Querier, schema string, tables map[string]*model.Table) error {
	rows, err := q.Query(ctx, checkConstraintsQuery, schema)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var tableName, conName, clause string
		if err := rows.Scan(&tableName, &conName, &clause); err != nil {
			return err
		}
		if t := tables[tableName]; t != nil {
			common.ApplyCheck(t, model.CheckConstraint{Name: conName, Expression: clause})
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
		var nonUnique int
		if err := rows.Scan(&tableName, &indexName, &nonUnique, &cols); err != nil {
			return err
		}
		if t := tables[tableName]; t != nil {
			common.ApplyIndex(t, model.Index{
				Name:    indexName,
				Columns: common.ParseIndexColumns(cols),
				Unique:  nonUnique == 0,
			})
		}
	}
	return rows.Err()
}
