// Package deps builds the dependency graph of the tables of a catalog. A
// table depends on every table its foreign keys reference, so the graph
// gives the order in which the tables can be created, and what a change to
// one table reaches.
package deps

import (
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/leapddl/pkg/catalog"
)

// Node is one table of the graph.
type Node struct {
	// ID is the qualified table name, schema.table
	ID    string
	Table *catalog.Table
}

// Graph is the dependency graph of a catalog. Edges run from a referenced
// table to the tables that reference it.
type Graph struct {
	nodes   map[string]*Node
	edges   map[string][]string // referenced -> referencing
	parents map[string][]string // referencing -> referenced
	// self lists tables with a foreign key to themselves. Such keys never
	// constrain the creation order.
	self []string
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:   make(map[string]*Node),
		edges:   make(map[string][]string),
		parents: make(map[string][]string),
	}
}

// Build returns the graph of every table of cat. Foreign keys whose target
// did not resolve add no edge.
func Build(cat *catalog.Catalog) *Graph {
	g := NewGraph()
	for _, s := range cat.Schemas {
		for _, t := range s.Tables {
			g.AddTable(t)
		}
	}
	for _, s := range cat.Schemas {
		for _, t := range s.Tables {
			for _, fk := range t.ForeignKeys {
				if fk.ReferencedTable == nil {
					continue
				}
				_ = g.AddEdge(ID(fk.ReferencedTable), ID(t))
			}
		}
	}
	return g
}

// ID returns the node ID of t.
func ID(t *catalog.Table) string {
	if t.Owner == nil {
		return t.Name
	}
	return t.Owner.Name + "." + t.Name
}

// AddTable adds t to the graph, replacing any table with the same ID.
func (g *Graph) AddTable(t *catalog.Table) {
	id := ID(t)
	if n, ok := g.nodes[id]; ok {
		n.Table = t
		return
	}
	g.nodes[id] = &Node{ID: id, Table: t}
	g.edges[id] = nil
	g.parents[id] = nil
}

// AddEdge records that child references parent.
func (g *Graph) AddEdge(parent, child string) error {
	if _, ok := g.nodes[parent]; !ok {
		return fmt.Errorf("referenced table %q is not in the graph", parent)
	}
	if _, ok := g.nodes[child]; !ok {
		return fmt.Errorf("referencing table %q is not in the graph", child)
	}
	if parent == child {
		if !slices.Contains(g.self, parent) {
			g.self = append(g.self, parent)
		}
		return nil
	}
	if !slices.Contains(g.edges[parent], child) {
		g.edges[parent] = append(g.edges[parent], child)
	}
	if !slices.Contains(g.parents[child], parent) {
		g.parents[child] = append(g.parents[child], parent)
	}
	return nil
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Len returns the number of tables.
func (g *Graph) Len() int { return len(g.nodes) }

// EdgeCount returns the number of distinct table-to-table references.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, children := range g.edges {
		count += len(children)
	}
	return count
}

// References returns the tables id references directly.
func (g *Graph) References(id string) []string {
	return sorted(g.parents[id])
}

// ReferencedBy returns the tables that reference id directly.
func (g *Graph) ReferencedBy(id string) []string {
	return sorted(g.edges[id])
}

// SelfReferencing returns the tables with a foreign key to themselves.
func (g *Graph) SelfReferencing() []string {
	return sorted(g.self)
}

// Cycle returns one cycle of references, first table repeated last, or nil
// when the tables can be created in some order.
func (g *Graph) Cycle() []string {
	const (
		unvisited = iota
		active
		done
	)
	state := make(map[string]int, len(g.nodes))
	from := make(map[string]string)
	var cycle []string

	var visit func(id string) bool
	visit = func(id string) bool {
		state[id] = active
		for _, child := range sorted(g.edges[id]) {
			switch state[child] {
			case unvisited:
				from[child] = id
				if visit(child) {
					return true
				}
			case active:
				cycle = []string{child}
				for cur := id; cur != child; cur = from[cur] {
					cycle = append(cycle, cur)
				}
				cycle = append(cycle, child)
				slices.Reverse(cycle)
				return true
			}
		}
		state[id] = done
		return false
	}

	for _, id := range g.ids() {
		if state[id] == unvisited && visit(id) {
			return cycle
		}
	}
	return nil
}

// CycleError is returned when foreign keys reference each other in a loop,
// so no table of the loop can be created first without disabling checks.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return "foreign key cycle: " + strings.Join(e.Path, " -> ")
}

// CreationOrder returns the tables in an order in which each is created after
// every table it references. Ties are broken by name.
func (g *Graph) CreationOrder() ([]*Node, error) {
	if c := g.Cycle(); c != nil {
		return nil, &CycleError{Path: c}
	}

	visited := make(map[string]bool, len(g.nodes))
	order := make([]*Node, 0, len(g.nodes))
	var visit func(id string)
	visit = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true
		for _, parent := range sorted(g.parents[id]) {
			visit(parent)
		}
		order = append(order, g.nodes[id])
	}
	for _, id := range g.ids() {
		visit(id)
	}
	return order, nil
}

// Levels groups the tables by depth. Level 0 references nothing; a table at
// level n references at least one table at level n-1. Tables of one level
// are independent of each other.
func (g *Graph) Levels() ([][]string, error) {
	if c := g.Cycle(); c != nil {
		return nil, &CycleError{Path: c}
	}

	level := make(map[string]int, len(g.nodes))
	var depth func(id string) int
	depth = func(id string) int {
		if l, ok := level[id]; ok {
			return l
		}
		l := 0
		for _, parent := range g.parents[id] {
			l = max(l, depth(parent)+1)
		}
		level[id] = l
		return l
	}

	var levels [][]string
	for _, id := range g.ids() {
		l := depth(id)
		for len(levels) <= l {
			levels = append(levels, nil)
		}
		levels[l] = append(levels[l], id)
	}
	return levels, nil
}

// Dependents returns every table that references id, directly or through
// other tables. These are the tables a DROP TABLE of id would break.
func (g *Graph) Dependents(id string) []string {
	return g.reach(id, g.edges)
}

// Dependencies returns every table id references, directly or through other
// tables.
func (g *Graph) Dependencies(id string) []string {
	return g.reach(id, g.parents)
}

func (g *Graph) reach(id string, next map[string][]string) []string {
	seen := make(map[string]bool)
	var walk func(string)
	walk = func(cur string) {
		for _, n := range next[cur] {
			if !seen[n] && n != id {
				seen[n] = true
				walk(n)
			}
		}
	}
	walk(id)

	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Roots returns the tables that reference no other table.
func (g *Graph) Roots() []string {
	var roots []string
	for _, id := range g.ids() {
		if len(g.parents[id]) == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}

func (g *Graph) ids() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func sorted(ids []string) []string {
	out := slices.Clone(ids)
	slices.Sort(out)
	return out
}
