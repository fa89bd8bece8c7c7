package mysql

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
		On("information_schema.COLUMNS c", [][]any{
			{"inventory", "product_id", 1, "int", "int", nil, int64(10), int64(0), "NO", nil, ""},
			{"inventory", "warehouse", 2, "varchar", "varchar(32)", int64(32), nil, nil, "NO", nil, ""},
			{"products", "id", 1, "int", "int", nil, int64(10), int64(0), "NO", nil, "auto_increment"},
			{"products", "sku", 2, "varchar", "varchar(64)", int64(64), nil, nil, "NO", nil, ""},
			{"products", "active", 3, "tinyint", "tinyint(1)", nil, int64(3), int64(0), "NO", "1", ""},
			{"products", "uid", 4, "char", "char(36)", int64(36), nil, nil, "NO", nil, ""},
			{"products", "price", 5, "decimal", "decimal(10,2)", nil, int64(10), int64(2), "NO", nil, ""},
			{"products", "category", 6, "enum", "enum('tools','parts')", int64(5), nil, nil, "YES", nil, ""},
		}).
		On("KEY_COLUMN_USAGE", [][]any{
			{"inventory", "inv_product_fk", "FOREIGN KEY", "product_id", "shop", "products", "id"},
			{"products", "PRIMARY", "PRIMARY KEY", "id", "", "", ""},
			{"products", "sku_uq", "UNIQUE", "sku", "", "", ""},
		}).
		On("CHECK_CONSTRAINTS", [][]any{
			{"products", "price_chk", "(`price` > 0)"},
		}).
		On("STATISTICS", [][]any{
			{"products", "idx_category", 1, "category"},
		})
}

func TestIntrospectBuildsSchema(t *testing.T) {
	p := New(nil)
	s, err := p.Introspect(context.Background(), catalogFake(), provider.IntrospectOptions{Schema: "shop"})
	require.NoError(t, err)

	require.Len(t, s.Tables, 2)
	assert.Equal(t, "inventory", s.Tables[0].Name)
	assert.Equal(t, "products", s.Tables[1].Name)

	products, ok := s.Table("shop", "products")
	require.True(t, ok)

	id, _ := products.Column("id")
	assert.True(t, id.IsPrimaryKey)
	assert.True(t, id.IsAutoIncrement)
	assert.Equal(t, sqltype.KindInt32, id.Type.Kind)

	sku, _ := products.Column("sku")
	assert.True(t, sku.IsUnique)
	assert.Equal(t, "varchar(64)", sku.DeclaredType)
	assert.Equal(t, 64, sku.Type.Length)

	active, _ := products.Column("active")
	assert.Equal(t, sqltype.KindBool, active.Type.Kind)

	uid, _ := products.Column("uid")
	assert.Equal(t, sqltype.KindGUID, uid.Type.Kind)

	category, _ := products.Column("category")
	assert.Equal(t, sqltype.KindEnum, category.Type.Kind)
	assert.True(t, category.IsIndexed)
}

func TestCheckAttributionUsesHeuristic(t *testing.T) {
	p := New(nil)
	s, err := p.Introspect(context.Background(), catalogFake(), provider.IntrospectOptions{Schema: "shop"})
	require.NoError(t, err)

	products, _ := s.Table("shop", "products")
	require.Len(t, products.CheckConstraints, 1)
	assert.Equal(t, "price", products.CheckConstraints[0].ColumnName)

	price, _ := products.Column("price")
	assert.Equal(t, "(`price` > 0)", price.CheckExpression)
}

func TestForeignKeyLinkage(t *testing.T) {
	p := New(nil)
	s, err := p.Introspect(context.Background(), catalogFake(), provider.IntrospectOptions{Schema: "shop"})
	require.NoError(t, err)

	inventory, _ := s.Table("shop", "inventory")
	require.Len(t, inventory.ForeignKeys, 1)
	fk := inventory.ForeignKeys[0]
	assert.Equal(t, "products", fk.ReferencedTable)
	assert.Equal(t, []string{"id"}, fk.ReferencedColumns)

	productID, _ := inventory.Column("product_id")
	assert.Equal(t, "products", productID.ForeignTable)
	assert.Equal(t, "id", productID.ForeignColumn)
}

func TestGUIDDefaultClassifiesBinaryColumn(t *testing.T) {
	fake := providertest.NewFakeQuerier().
		On("information_schema.COLUMNS c", [][]any{
			{"events", "id", 1, "varbinary", "varbinary(16)", int64(16), nil, nil, "NO", "uuid_to_bin(uuid())", "DEFAULT_GENERATED"},
			{"events", "payload", 2, "varbinary", "varbinary(16)", int64(16), nil, nil, "YES", nil, ""},
		}).
		On("KEY_COLUMN_USAGE", [][]any{}).
		On("CHECK_CONSTRAINTS", [][]any{}).
		On("STATISTICS", [][]any{})

	p := New(nil)
	s, err := p.Introspect(context.Background(), fake, provider.IntrospectOptions{Schema: "shop"})
	require.NoError(t, err)

	events, ok := s.Table("shop", "events")
	require.True(t, ok)

	// varbinary(16) alone is plain binary; the generator default marks the
	// column as GUID storage.
	id, _ := events.Column("id")
	assert.Equal(t, sqltype.KindGUID, id.Type.Kind)

	payload, _ := events.Column("payload")
	assert.Equal(t, sqltype.KindBinary, payload.Type.Kind)
}

func TestIntrospectFailureIsAtomic(t *testing.T) {
	fake := providertest.NewFakeQuerier().
		On("information_schema.COLUMNS c", [][]any{
			{"products", "id", 1, "int", "int", nil, int64(10), int64(0), "NO", nil, ""},
		}).
		OnError("KEY_COLUMN_USAGE", errors.New("server gone away"))

	p := New(nil)
	s, err := p.Introspect(context.Background(), fake, provider.IntrospectOptions{Schema: "shop"})
	assert.Nil(t, s)

	var ie *provider.IntrospectionError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "constraints", ie.Phase)
}

func TestDiscoverEnumShapes(t *testing.T) {
	fake := providertest.NewFakeQuerier().
		On("DATA_TYPE IN ('enum', 'set')", [][]any{
			{"enum('tools','parts')"},
			{"set('a','b')"},
		})

	reg := NewRegistry()
	require.NoError(t, DiscoverUserDefined(context.Background(), fake, reg, "shop"))

	info, ok := reg.Describe("enum('tools','parts')")
	require.True(t, ok)
	assert.True(t, info.Custom)
	assert.Equal(t, sqltype.KindEnum, info.Kind)

	info, _ = reg.Describe("set('a','b')")
	assert.Equal(t, sqltype.KindOpaque, info.Kind)
}
