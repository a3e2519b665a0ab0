package deps

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapddl/pkg/catalog"
	"github.com/leapstack-labs/leapddl/pkg/ddl"
)

const shopSQL = `
CREATE TABLE line_items (
  order_id INT, sku VARCHAR(20),
  FOREIGN KEY (order_id) REFERENCES orders (id),
  FOREIGN KEY (sku) REFERENCES products (sku)
);
CREATE TABLE orders (
  id INT PRIMARY KEY, customer_id INT,
  FOREIGN KEY (customer_id) REFERENCES customers (id)
);
CREATE TABLE customers (id INT PRIMARY KEY, referrer_id INT,
  FOREIGN KEY (referrer_id) REFERENCES customers (id));
CREATE TABLE products (sku VARCHAR(20) PRIMARY KEY);
CREATE TABLE audit_log (id INT);
`

func buildGraph(t *testing.T, sql string) *Graph {
	t.Helper()
	cat := catalog.New(catalog.Version{})
	unit := ddl.NewUnit(cat, ddl.DefaultOptions())
	unit.ApplySQL(sql)
	report := unit.Finish()
	require.Empty(t, report.ParseErrors)
	return Build(cat)
}

func ids(nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}

func TestBuild(t *testing.T) {
	g := buildGraph(t, shopSQL)

	assert.Equal(t, 5, g.Len())
	assert.Equal(t, 3, g.EdgeCount())
	assert.Equal(t, []string{"mydb.orders", "mydb.products"}, g.References("mydb.line_items"))
	assert.Equal(t, []string{"mydb.orders"}, g.ReferencedBy("mydb.customers"))
	assert.Equal(t, []string{"mydb.customers"}, g.SelfReferencing())

	n, ok := g.Node("mydb.products")
	require.True(t, ok)
	assert.Equal(t, "products", n.Table.Name)
}

func TestCreationOrder(t *testing.T) {
	g := buildGraph(t, shopSQL)

	order, err := g.CreationOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"mydb.audit_log",
		"mydb.customers",
		"mydb.orders",
		"mydb.products",
		"mydb.line_items",
	}, ids(order))
}

func TestLevels(t *testing.T) {
	g := buildGraph(t, shopSQL)

	levels, err := g.Levels()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"mydb.audit_log", "mydb.customers", "mydb.products"},
		{"mydb.orders"},
		{"mydb.line_items"},
	}, levels)
	assert.Equal(t, []string{"mydb.audit_log", "mydb.customers", "mydb.products"}, g.Roots())
}

func TestDependentsAndDependencies(t *testing.T) {
	g := buildGraph(t, shopSQL)

	assert.Equal(t, []string{"mydb.line_items", "mydb.orders"}, g.Dependents("mydb.customers"))
	assert.Empty(t, g.Dependents("mydb.line_items"))
	assert.Equal(t, []string{"mydb.customers", "mydb.orders", "mydb.products"}, g.Dependencies("mydb.line_items"))
	assert.Empty(t, g.Dependencies("mydb.audit_log"))
}

func TestCycle(t *testing.T) {
	g := buildGraph(t, `
CREATE TABLE a (id INT PRIMARY KEY, b_id INT, FOREIGN KEY (b_id) REFERENCES b (id));
CREATE TABLE b (id INT PRIMARY KEY, c_id INT, FOREIGN KEY (c_id) REFERENCES c (id));
CREATE TABLE c (id INT PRIMARY KEY, a_id INT, FOREIGN KEY (a_id) REFERENCES a (id));
CREATE TABLE d (id INT);
`)

	assert.Equal(t, []string{"mydb.a", "mydb.c", "mydb.b", "mydb.a"}, g.Cycle())

	_, err := g.CreationOrder()
	var cycleErr *CycleError
	require.True(t, errors.As(err, &cycleErr))
	assert.Equal(t, "foreign key cycle: mydb.a -> mydb.c -> mydb.b -> mydb.a", err.Error())

	_, err = g.Levels()
	require.Error(t, err)
}

func TestUnresolvedForeignKeyAddsNoEdge(t *testing.T) {
	g := buildGraph(t, "CREATE TABLE t (x INT, FOREIGN KEY (x) REFERENCES missing (id));")

	assert.Equal(t, 1, g.Len())
	assert.Equal(t, 0, g.EdgeCount())
}

func TestAddEdge_UnknownTable(t *testing.T) {
	g := NewGraph()
	g.AddTable(&catalog.Table{})

	require.Error(t, g.AddEdge("a", "b"))
}
