package postgres

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

// Provider implements provider.Provider for PostgreSQL.
type Provider struct {
	typeMap *sqltype.Map
	types   *provider.StaticRegistry
	log     *logger.Logger
}

// New builds the PostgreSQL provider. log may be nil.
func New(log *logger.Logger) *Provider {
	return NewWith(log, sqltype.ContextFor(dialect.Postgres))
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

func (p *Provider) Dialect() dialect.ID           { return dialect.Postgres }
func (p *Provider) TypeMap() *sqltype.Map         { return p.typeMap }
func (p *Provider) DataTypes() provider.Registry  { return p.types }

const listTablesQuery = `
SELECT table_name
FROM information_schema.tables
WHERE table_schema = $1 AND table_type = 'BASE TABLE'
ORDER BY table_name`

// ListTables implements provider.Provider.
func (p *Provider) ListTables(ctx context.Context, q provider.Querier, opts provider.IntrospectOptions) ([]string, error) {
	rows, err := q.Query(ctx, listTablesQuery, p.schemaName(opts))
	if err != nil {
		return nil, provider.WrapPhase(dialect.Postgres, "tables", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, provider.WrapPhase(dialect.Postgres, "tables", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, provider.WrapPhase(dialect.Postgres, "tables", err)
	}
	return names, nil
}

const columnsQuery = `
SELECT c.table_name, c.column_name, c.ordinal_position,
       c.data_type, c.udt_name,
       c.character_maximum_length, c.numeric_precision, c.numeric_scale,
       c.is_nullable, c.column_default, c.is_identity
FROM information_schema.columns c
JOIN information_schema.tables t
  ON t.table_schema = c.table_schema AND t.table_name = c.table_name
WHERE c.table_schema = $1 AND t.table_type = 'BASE TABLE'`

const constraintsQuery = `
SELECT rel.relname, con.conname, con.contype,
       string_agg(att.attname, ',' ORDER BY ord.n),
       COALESCE(fnsp.nspname, ''), COALESCE(frel.relname, ''),
       COALESCE(string_agg(fatt.attname, ',' ORDER BY ord.n), ''),
       pg_get_constraintdef(con.oid)
FROM pg_constraint con
JOIN pg_class rel ON rel.oid = con.conrelid
JOIN pg_namespace nsp ON nsp.oid = rel.relnamespace
JOIN LATERAL unnest(con.conkey) WITH ORDINALITY AS ord(attnum, n) ON true
JOIN pg_attribute att ON att.attrelid = con.conrelid AND att.attnum = ord.attnum
LEFT JOIN pg_class frel ON frel.oid = con.confrelid
LEFT JOIN pg_namespace fnsp ON fnsp.oid = frel.relnamespace
LEFT JOIN pg_attribute fatt ON fatt.attrelid = con.confrelid AND fatt.attnum = con.confkey[ord.n]
WHERE nsp.nspname = $1 AND con.contype IN ('p', 'u', 'f', 'c')
GROUP BY rel.relname, con.conname, con.contype, con.oid, fnsp.nspname, frel.relname
ORDER BY rel.relname, con.conname`

const indexesQuery = `
SELECT tc.relname, ic.relname, ix.indisunique,
       string_agg(a.attname || CASE WHEN (ix.indoption[ord.n - 1] & 1) = 1 THEN ' DESC' ELSE '' END,
                  ',' ORDER BY ord.n)
FROM pg_index ix
JOIN pg_class ic ON ic.oid = ix.indexrelid
JOIN pg_class tc ON tc.oid = ix.indrelid
JOIN pg_namespace nsp ON nsp.oid = tc.relnamespace
JOIN LATERAL unnest(ix.indkey) WITH ORDINALITY AS ord(attnum, n) ON true
JOIN pg_attribute a ON a.attrelid = tc.oid AND a.attnum = ord.attnum
WHERE nsp.nspname = $1
  AND NOT ix.indisprimary
  AND NOT EXISTS (SELECT 1 FROM pg_constraint c WHERE c.conindid = ix.indexrelid)
GROUP BY tc.relname, ic.relname, ix.indisunique
ORDER BY tc.relname, ic.relname`

// Introspect implements provider.Provider. Phases run sequentially; the
// first failure aborts the whole snapshot.
func (p *Provider) Introspect(ctx context.Context, q provider.Querier, opts provider.IntrospectOptions) (*model.Schema, error) {
	schemaName := p.schemaName(opts)
	s := &model.Schema{Dialect: dialect.Postgres, Name: schemaName}
	tables := make(map[string]*model.Table)

	if err := p.loadColumns(ctx, q, schemaName, opts, tables); err != nil {
		return nil, provider.WrapPhase(dialect.Postgres, "columns", err)
	}
	if err := p.loadConstraints(ctx, q, schemaName, tables); err != nil {
		return nil, provider.WrapPhase(dialect.Postgres, "constraints", err)
	}
	if err := p.loadIndexes(ctx, q, schemaName, tables); err != nil {
		return nil, provider.WrapPhase(dialect.Postgres, "indexes", err)
	}

	s.Tables = make([]model.Table, 0, len(tables))
	for _, t := range tables {
		s.Tables = append(s.Tables, *t)
	}
	s.Normalize()
	p.log.Debugf("postgres: introspected %d tables in schema %q", len(s.Tables), schemaName)
	return s, nil
}

func (p *Provider) schemaName(opts provider.IntrospectOptions) string {
	if opts.Schema != "" {
		return opts.Schema
	}
	return dialect.MustGet(dialect.Postgres).DefaultSchema
}

func (p *Provider) loadColumns(ctx context.Context, q provider.Querier, schemaName string, opts provider.IntrospectOptions, tables map[string]*model.Table) error {
	query := columnsQuery
	args := []any{schemaName}
	switch {
	case opts.Table != "":
		query += " AND c.table_name = $2"
		args = append(args, opts.Table)
	case opts.TablePattern != "":
		query += " AND c.table_name LIKE $2"
		args = append(args, opts.TablePattern)
	}
	query += "\nORDER BY c.table_name, c.ordinal_position"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	ai := autoIncrement{}
	for rows.Next() {
		var (
			tableName, colName, dataType, udtName string
			ordinal                               int
			charLen, numPrec, numScale            *int64
			isNullable, isIdentity                string
			defaultExpr                           *string
		)
		if err := rows.Scan(&tableName, &colName, &ordinal, &dataType, &udtName,
			&charLen, &numPrec, &numScale, &isNullable, &defaultExpr, &isIdentity); err != nil {
			return err
		}

		t := tables[tableName]
		if t == nil {
			t = &model.Table{Schema: schemaName, Name: tableName}
			tables[tableName] = t
		}

		meta := sqltype.CatalogMeta{Length: charLen, Precision: numPrec, Scale: numScale,
			Nullable: strings.EqualFold(isNullable, "YES")}

		col := model.Column{
			Schema:   schemaName,
			Table:    tableName,
			Name:     colName,
			Ordinal:  ordinal,
			Type:     p.resolveColumnType(dataType, udtName, meta),
			Nullable: meta.Nullable,
		}
		col.IsUnicode = col.Type.Unicode
		if defaultExpr != nil {
			col.DefaultExpression = *defaultExpr
			col.IsAutoIncrement = ai.Detect(isIdentity, *defaultExpr)
			common.ClassifyGUIDDefault(&col, *defaultExpr)
			if !col.IsAutoIncrement {
				t.DefaultConstraints = append(t.DefaultConstraints, model.DefaultConstraint{
					ColumnName: colName,
					Expression: *defaultExpr,
				})
			}
		} else {
			col.IsAutoIncrement = ai.Detect(isIdentity, "")
		}
		col.Type.AutoIncrement = col.IsAutoIncrement

		t.Columns = append(t.Columns, col)
	}
	return rows.Err()
}

// resolveColumnType maps one catalog row to a semantic descriptor. Rows typed
// USER-DEFINED resolve through the udt name; enums discovered into the
// registry keep their enum kind instead of degrading to opaque.
func (p *Provider) resolveColumnType(dataType, udtName string, meta sqltype.CatalogMeta) sqltype.SemanticType {
	if strings.EqualFold(dataType, "USER-DEFINED") {
		if info, ok := p.types.Describe(udtName); ok && info.Custom && info.Kind == sqltype.KindEnum {
			return sqltype.Semantic(sqltype.KindEnum)
		}
		return p.typeMap.ResolveSemanticType(udtName, meta)
	}
	if strings.EqualFold(dataType, "ARRAY") {
		return sqltype.Semantic(sqltype.KindOpaque)
	}
	return p.typeMap.ResolveSemanticType(dataType, meta)
}

func (p *Provider) loadConstraints(ctx context.Context, q provider.Querier, schemaName string, tables map[string]*model.Table) error {
	rows, err := q.Query(ctx, constraintsQuery, schemaName)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var tableName, conName, conType, cols, refSchema, refTable, refCols, definition string
		if err := rows.Scan(&tableName, &conName, &conType, &cols, &refSchema, &refTable, &refCols, &definition); err != nil {
			return err
		}
		t := tables[tableName]
		if t == nil {
			continue
		}

		columns := common.ParseIndexColumns(cols)
		switch conType {
		case "p":
			common.ApplyPrimaryKey(t, model.PrimaryKey{Name: conName, Columns: columns})
		case "u":
			common.ApplyUnique(t, model.UniqueConstraint{Name: conName, Columns: columns})
		case "f":
			common.ApplyForeignKey(t, model.ForeignKey{
				Name:              conName,
				Columns:           columns,
				ReferencedSchema:  refSchema,
				ReferencedTable:   refTable,
				ReferencedColumns: common.ParseNameList(refCols),
			})
		case "c":
			cc := model.CheckConstraint{Name: conName, Expression: trimCheckDef(definition)}
			if len(columns) == 1 {
				cc.ColumnName = columns[0].Name
			}
			common.ApplyCheck(t, cc)
		}
	}
	return rows.Err()
}

// trimCheckDef strips the leading CHECK keyword pg_get_constraintdef emits,
// keeping just the expression.
func trimCheckDef(def string) string {
	s := strings.TrimSpace(def)
	if rest, ok := strings.CutPrefix(s, "CHECK "); ok {
		return strings.TrimSpace(rest)
	}
	return s
}

func (p *Provider) loadIndexes(ctx context.Context, q provider.Querier, schemaName string, tables map[string]*model.Table) error {
	rows, err := q.Query(ctx, indexesQuery, schemaName)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var tableName, indexName, cols string
		var unique bool
		if err := rows.Scan(&tableName, &indexName, &unique, &cols); err != nil {
			return err
		}
		t := tables[tableName]
		if t == nil {
			continue
		}
		common.ApplyIndex(t, model.Index{
			Name:    indexName,
			Columns: common.ParseIndexColumns(cols),
			Unique:  unique,
		})
	}
	return rows.Err()
}
