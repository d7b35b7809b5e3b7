package seeder

import (
	"testing"

	"github.com/Rana718/tableseed/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func table(name string, refs ...string) *types.SchemaTable {
	t := &types.SchemaTable{
		Name:    name,
		Columns: []types.SchemaColumn{{Name: "id", Type: "integer", IsPrimary: true, IsAutoIncrement: true}},
	}
	for _, ref := range refs {
		t.Columns = append(t.Columns, types.SchemaColumn{
			Name:             ref + "_id",
			Type:             "integer",
			ForeignKeyTable:  ref,
			ForeignKeyColumn: "id",
		})
	}
	return t
}

func TestBuildInsertionOrder(t *testing.T) {
	g := NewDependencyGraph()
	g.AddTable(table("comments", "posts", "users"))
	g.AddTable(table("posts", "users"))
	g.AddTable(table("users"))
	g.AddTable(table("tags"))

	order, err := g.BuildInsertionOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"users", "posts", "comments", "tags"}, order)
	assert.Equal(t, order, g.GetOrder())
}

func TestBuildInsertionOrder_IgnoresTablesNotAdded(t *testing.T) {
	g := NewDependencyGraph()
	g.AddTable(table("posts", "users"))

	order, err := g.BuildInsertionOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"posts"}, order)
}

func TestBuildInsertionOrder_SelfReference(t *testing.T) {
	g := NewDependencyGraph()
	g.AddTable(table("categories", "categories"))

	order, err := g.BuildInsertionOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"categories"}, order)
}

func TestBuildInsertionOrder_Cycle(t *testing.T) {
	g := NewDependencyGraph()
	g.AddTable(table("a", "b"))
	g.AddTable(table("b", "a"))

	_, err := g.BuildInsertionOrder()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circular dependency")
}
