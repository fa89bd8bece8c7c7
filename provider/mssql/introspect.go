package mssql

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

// Provider implements provider.Provider for Microsoft SQL Server.
type Provider struct {
	typeMap *sqltype.Map
	types   *provider.StaticRegistry
	log     *logger.Logger
}

// New builds the SQL Server provider. log may be nil.
func New(log *logger.Logger) *Provider {
	return NewWith(log, sqltype.ContextFor(dialect.SQLServer))
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

func (p *Provider) Dialect() dialect.ID          { return dialect.SQLServer }
func (p *Provider) TypeMap() *sqltype.Map        { return p.typeMap }
func (p *Provider) DataTypes() provider.Registry { return p.types }

const listTablesQuery = `
SELECT t.name
FROM sys.tables t
JOIN sys.schemas s ON s.schema_id = t.schema_id
WHERE s.name = @p1
ORDER BY t.name`

// ListTables implements provider.Provider.
func (p *Provider) ListTables(ctx context.Context, q provider.Querier, opts provider.IntrospectOptions) ([]string, error) {
	rows, err := q.Query(ctx, listTablesQuery, p.schemaName(opts))
	if err != nil {
		return nil, provider.WrapPhase(dialect.SQLServer, "tables", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, provider.WrapPhase(dialect.SQLServer, "tables", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, provider.WrapPhase(dialect.SQLServer, "tables", err)
	}
	return names, nil
}

// max_length counts bytes; the CASE halves it for the two-byte unicode types
// and passes the -1 "max" marker through unchanged.
const columnsQuery = `
SELECT t.name, c.name, c.column_id, ty.name,
       CASE WHEN c.max_length = -1 THEN -1
            WHEN ty.name IN ('nchar', 'nvarchar') THEN c.max_length / 2
            ELSE CAST(c.max_length AS int) END,
       CAST(c.precision AS int), CAST(c.scale AS int),
       c.is_nullable, c.is_identity,
       dc.name, dc.definition
FROM sys.tables t
JOIN sys.schemas s ON s.schema_id = t.schema_id
JOIN sys.columns c ON c.object_id = t.object_id
JOIN sys.types ty ON ty.user_type_id = c.user_type_id
LEFT JOIN sys.default_constraints dc ON dc.object_id = c.default_object_id
WHERE s.name = @p1`

const keyConstraintsQuery = `
SELECT t.name, kc.name, kc.type,
       STRING_AGG(c.name + CASE WHEN ic.is_descending_key = 1 THEN ' DESC' ELSE '' END, ',')
           WITHIN GROUP (ORDER BY ic.key_ordinal)
FROM sys.key_constraints kc
JOIN sys.tables t ON t.object_id = kc.parent_object_id
JOIN sys.schemas s ON s.schema_id = t.schema_id
JOIN sys.index_columns ic ON ic.object_id = kc.parent_object_id AND ic.index_id = kc.unique_index_id
JOIN sys.columns c ON c.object_id = ic.object_id AND c.column_id = ic.column_id
WHERE s.name = @p1
GROUP BY t.name, kc.name, kc.type
ORDER BY t.name, kc.name`

const foreignKeysQuery = `
SELECT t.name, fk.name,
       STRING_AGG(pc.name, ',') WITHIN GROUP (ORDER BY fkc.constraint_column_id),
       rs.name, rt.name,
       STRING_AGG(rc.name, ',') WITHIN GROUP (ORDER BY fkc.constraint_column_id)
FROM sys.foreign_keys fk
JOIN sys.tables t ON t.object_id = fk.parent_object_id
JOIN sys.schemas s ON s.schema_id = t.schema_id
JOIN sys.foreign_key_columns fkc ON fkc.constraint_object_id = fk.object_id
JOIN sys.columns pc ON pc.object_id = fkc.parent_object_id AND pc.column_id = fkc.parent_column_id
JOIN sys.tables rt ON rt.object_id = fk.referenced_object_id
JOIN sys.schemas rs ON rs.schema_id = rt.schema_id
JOIN sys.columns rc ON rc.object_id = fkc.referenced_object_id AND rc.column_id = fkc.referenced_column_id
WHERE s.name = @p1
GROUP BY t.name, fk.name, rs.name, rt.name
ORDER BY t.name, fk.name`

// parent_column_id links a check to its column; 0 means table-scoped.
const checkConstraintsQuery = `
SELECT t.name, cc.name, cc.definition, COALESCE(col.name, '')
FROM sys.check_constraints cc
JOIN sys.tables t ON t.object_id = cc.parent_object_id
JOIN sys.schemas s ON s.schema_id = t.schema_id
LEFT JOIN sys.columns col ON col.object_id = cc.parent_object_id AND col.column_id = cc.parent_column_id
WHERE s.name = @p1
ORDER BY t.name, cc.name`

const indexesQuery = `
SELECT t.name, i.name, i.is_unique,
       STRING_AGG(c.name + CASE WHEN ic.is_descending_key = 1 THEN ' DESC' ELSE '' END, ',')
           WITHIN GROUP (ORDER BY ic.key_ordinal)
FROM sys.indexes i
JOIN sys.tables t ON t.object_id = i.object_id
JOIN sys.schemas s ON s.schema_id = t.schema_id
JOIN sys.index_columns ic ON ic.object_id = i.object_id AND ic.index_id = i.index_id
JOIN sys.columns c ON c.object_id = ic.object_id AND c.column_id = ic.column_id
WHERE s.name = @p1
  AND i.is_primary_key = 0 AND i.is_unique_constraint = 0
  AND i.type > 0 AND ic.key_ordinal > 0
GROUP BY t.name, i.name, i.is_unique
ORDER BY t.name, i.name`

// Introspect implements provider.Provider.
func (p *Provider) Introspect(ctx context.Context, q provider.Querier, opts provider.IntrospectOptions) (*model.Schema, error) {
	schemaName := p.schemaName(opts)
	s := &model.Schema{Dialect: dialect.SQLServer, Name: schemaName}
	tables := make(map[string]*model.Table)

	if err := p.loadColumns(ctx, q, schemaName, opts, tables); err != nil {
		return nil, provider.WrapPhase(dialect.SQLServer, "columns", err)
	}
	if err := p.loadConstraints(ctx, q, schemaName, tables); err != nil {
		return nil, provider.WrapPhase(dialect.SQLServer, "constraints", err)
	}
	if err := p.loadIndexes(ctx, q, schemaName, tables); err != nil {
		return nil, provider.WrapPhase(dialect.SQLServer, "indexes", err)
	}

	s.Tables = make([]model.Table, 0, len(tables))
	for _, t := range tables {
		s.Tables = append(s.Tables, *t)
	}
	s.Normalize()
	p.log.Debugf("mssql: introspected %d tables in schema %q", len(s.Tables), schemaName)
	return s, nil
}

func (p *Provider) schemaName(opts provider.IntrospectOptions) string {
	if opts.Schema != "" {
		return opts.Schema
	}
	return dialect.MustGet(dialect.SQLServer).DefaultSchema
}

func (p *Provider) loadColumns(ctx context.Context, q provider.Querier, schemaName string, opts provider.IntrospectOptions, tables map[string]*model.Table) error {
	query := columnsQuery
	args := []any{schemaName}
	switch {
	case opts.Table != "":
		query += " AND t.name = @p2"
		args = append(args, opts.Table)
	case opts.TablePattern != "":
		query += " AND t.name LIKE @p2"
		args = append(args, opts.TablePattern)
	}
	query += "\nORDER BY t.name, c.column_id"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	ai := autoIncrement{}
	for rows.Next() {
		var (
			tableName, colName, typeName string
			ordinal                      int
			length, precision, scale     int64
			nullable, isIdentity         bool
			dcName, dcDef                *string
		)
		if err := rows.Scan(&tableName, &colName, &ordinal, &typeName,
			&length, &precision, &scale, &nullable, &isIdentity, &dcName, &dcDef); err != nil {
			return err
		}

		t := tables[tableName]
		if t == nil {
			t = &model.Table{Schema: schemaName, Name: tableName}
			tables[tableName] = t
		}

		meta := sqltype.CatalogMeta{Length: &length, Precision: &precision, Scale: &scale, Nullable: nullable}

		col := model.Column{
			Schema:   schemaName,
			Table:    tableName,
			Name:     colName,
			Ordinal:  ordinal,
			Type:     p.typeMap.ResolveSemanticType(typeName, meta),
			Nullable: nullable,
		}
		col.IsUnicode = col.Type.Unicode
		col.IsAutoIncrement = ai.Detect(isIdentity)
		col.Type.AutoIncrement = col.IsAutoIncrement
		if dcDef != nil {
			col.DefaultExpression = *dcDef
			common.ClassifyGUIDDefault(&col, *dcDef)
			dc := model.DefaultConstraint{ColumnName: colName, Expression: *dcDef}
			if dcName != nil {
				dc.Name = *dcName
			}
			t.DefaultConstraints = append(t.DefaultConstraints, dc)
		}

		t.Columns = append(t.Columns, col)
	}
	return rows.Err()
}

func (p *Provider) loadConstraints(ctx context.Context, q provider.Querier, schemaName string, tables map[string]*model.Table) error {
	if err := p.loadKeys(ctx, q, schemaName, tables); err != nil {
		return err
	}
	if err := p.loadForeignKeys(ctx, q, schemaName, tables); err != nil {
		return err
	}
	return p.loadChecks(ctx, q, schemaName, tables)
}

func (p *Provider) loadKeys(ctx context.Context, q provider.Querier, schemaName string, tables map[string]*model.Table) error {
	rows, err := q.Query(ctx, keyConstraintsQuery, schemaName)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var tableName, conName, conType, cols string
		if err := rows.Scan(&tableName, &conName, &conType, &cols); err != nil {
			return err
		}
		t := tables[tableName]
		if t == nil {
			continue
		}
		columns := common.ParseIndexColumns(cols)
		// kc.type is CHAR(2), padded to two characters.
		switch strings.TrimSpace(conType) {
		case "PK":
			common.ApplyPrimaryKey(t, model.PrimaryKey{Name: conName, Columns: columns})
		case "UQ":
			common.ApplyUnique(t, model.UniqueConstraint{Name: conName, Columns: columns})
		}
	}
	return rows.Err()
}

func (p *Provider) loadForeignKeys(ctx context.Context, q provider.Querier, schemaName string, tables map[string]*model.Table) error {
	rows, err := q.Query(ctx, foreignKeysQuery, schemaName)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var tableName, fkName, cols, refSchema, refTable, refCols string
		if err := rows.Scan(&tableName, &fkName, &cols, &refSchema, &refTable, &refCols); err != nil {
			return err
		}
		if t := tables[tableName]; t != nil {
			common.ApplyForeignKey(t, model.ForeignKey{
				Name:              fkName,
				Columns:           common.ParseIndexColumns(cols),
				ReferencedSchema:  refSchema,
				ReferencedTable:   refTable,
				ReferencedColumns: common.ParseNameList(refCols),
			})
		}
	}
	return rows.Err()
}

func (p *Provider) loadChecks(ctx context.Context, q provider.Querier, schemaName string, tables map[string]*model.Table) error {
	rows, err := q.Query(ctx, checkConstraintsQuery, schemaName)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var tableName, conName, definition, colName string
		if err := rows.Scan(&tableName, &conName, &definition, &colName); err != nil {
			return err
		}
		if t := tables[tableName]; t != nil {
			common.ApplyCheck(t, model.CheckConstraint{
				Name:       conName,
				Expression: definition,
				ColumnName: colName,
			})
		}
	}
	return rows.Err()
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
		if t := tables[tableName]; t != nil {
			common.ApplyIndex(t, model.Index{
				Name:    indexName,
				Columns: common.ParseIndexColumns(cols),
				Unique:  unique,
			})
		}
	}
	return rows.Err()
}
