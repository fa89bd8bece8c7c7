package mssql

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlshape/sqlshape/pkg/provider"
	"github.com/sqlshape/sqlshape/pkg/provider/providertest"
	"github.com/sqlshape/sqlshape/pkg/sqltype"
)

func catalogFake() *providertest.FakeQuerier {
	return providertest.NewFakeQuerier().
		On("sys.default_constraints", [][]any{
			{"employees", "id", 1, "int", int64(4), int64(10), int64(0), false, true, nil, nil},
			{"employees", "name", 2, "nvarchar", int64(100), int64(0), int64(0), false, false, nil, nil},
			{"employees", "bio", 3, "nvarchar", int64(-1), int64(0), int64(0), true, false, nil, nil},
			{"employees", "badge", 4, "uniqueidentifier", int64(16), int64(0), int64(0), false, false, "DF_employees_badge", "(newid())"},
			{"employees", "salary", 5, "decimal", int64(9), int64(18), int64(2), false, false, nil, nil},
			{"employees", "attrs", 6, "sql_variant", int64(8016), int64(0), int64(0), true, false, nil, nil},
			{"timesheets", "employee_id", 1, "int", int64(4), int64(10), int64(0), false, false, nil, nil},
			{"timesheets", "day", 2, "date", int64(3), int64(10), int64(0), false, false, nil, nil},
		}).
		On("sys.key_constraints", [][]any{
			{"employees", "PK_employees", "PK", "id"},
			{"employees", "UQ_employees_badge", "UQ", "badge"},
		}).
		On("sys.foreign_keys", [][]any{
			{"timesheets", "FK_timesheets_employees", "employee_id", "dbo", "employees", "id"},
		}).
		On("sys.check_constraints", [][]any{
			{"employees", "CK_employees_salary", "([salary]>(0))", "salary"},
		}).
		On("sys.indexes", [][]any{
			{"employees", "IX_employees_name", false, "name DESC"},
		})
}

func TestIntrospectBuildsSchema(t *testing.T) {
	p := New(nil)
	s, err := p.Introspect(context.Background(), catalogFake(), provider.IntrospectOptions{})
	require.NoError(t, err)

	assert.Equal(t, "dbo", s.Name)
	require.Len(t, s.Tables, 2)

	emp, ok := s.Table("dbo", "employees")
	require.True(t, ok)

	id, _ := emp.Column("id")
	assert.True(t, id.IsPrimaryKey)
	assert.True(t, id.IsAutoIncrement)
	assert.Equal(t, sqltype.KindInt32, id.Type.Kind)

	name, _ := emp.Column("name")
	assert.Equal(t, sqltype.KindString, name.Type.Kind)
	assert.Equal(t, 100, name.Type.Length)
	assert.True(t, name.IsUnicode)

	bio, _ := emp.Column("bio")
	assert.Equal(t, sqltype.LengthUnbounded, bio.Type.Length)

	attrs, _ := emp.Column("attrs")
	assert.Equal(t, sqltype.KindOpaque, attrs.Type.Kind)
}

func TestNamedDefaultConstraints(t *testing.T) {
	p := New(nil)
	s, err := p.Introspect(context.Background(), catalogFake(), provider.IntrospectOptions{})
	require.NoError(t, err)

	emp, _ := s.Table("dbo", "employees")
	require.Len(t, emp.DefaultConstraints, 1)
	dc := emp.DefaultConstraints[0]
	assert.Equal(t, "DF_employees_badge", dc.Name)
	assert.Equal(t, "badge", dc.ColumnName)
	assert.Equal(t, "(newid())", dc.Expression)

	badge, _ := emp.Column("badge")
	assert.Equal(t, sqltype.KindGUID, badge.Type.Kind)
	assert.True(t, badge.IsUnique)
}

func TestCheckLinkageComesFromCatalog(t *testing.T) {
	p := New(nil)
	s, err := p.Introspect(context.Background(), catalogFake(), provider.IntrospectOptions{})
	require.NoError(t, err)

	emp, _ := s.Table("dbo", "employees")
	require.Len(t, emp.CheckConstraints, 1)
	assert.Equal(t, "salary", emp.CheckConstraints[0].ColumnName)

	salary, _ := emp.Column("salary")
	assert.Equal(t, "([salary]>(0))", salary.CheckExpression)
	assert.Equal(t, 18, salary.Type.Precision)
	assert.Equal(t, 2, salary.Type.Scale)
}

func TestForeignKeyAndIndexes(t *testing.T) {
	p := New(nil)
	s, err := p.Introspect(context.Background(), catalogFake(), provider.IntrospectOptions{})
	require.NoError(t, err)

	ts, _ := s.Table("dbo", "timesheets")
	require.Len(t, ts.ForeignKeys, 1)
	empID, _ := ts.Column("employee_id")
	assert.Equal(t, "employees", empID.ForeignTable)

	emp, _ := s.Table("dbo", "employees")
	require.Len(t, emp.Indexes, 1)
	idx := emp.Indexes[0]
	assert.Equal(t, "IX_employees_name", idx.Name)
	require.Len(t, idx.Columns, 1)
	assert.True(t, idx.Columns[0].Descending)
}

func TestIntrospectFailureIsAtomic(t *testing.T) {
	fake := providertest.NewFakeQuerier().
		On("sys.default_constraints", [][]any{
			{"employees", "id", 1, "int", int64(4), int64(10), int64(0), false, true, nil, nil},
		}).
		On("sys.key_constraints", [][]any{}).
		On("sys.foreign_keys", [][]any{}).
		OnError("sys.check_constraints", errors.New("timeout"))

	p := New(nil)
	s, err := p.Introspect(context.Background(), fake, provider.IntrospectOptions{})
	assert.Nil(t, s)

	var ie *provider.IntrospectionError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "constraints", ie.Phase)
}
