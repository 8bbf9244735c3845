// Package graph строит граф связей таблиц по именам колонок и ищет пути в нём.
package graph

import (
	"maps"
	"slices"
)

// Graph неизменяемый снимок: смежность, владельцы колонок и колонки таблиц.
// Пересобирается целиком при каждом построении.
type Graph struct {
	tables  []string
	adj     map[string]map[string]int
	owners  map[string]map[string]string
	columns map[string][]string
}

func newGraph() *Graph {
	return &Graph{
		adj:     make(map[string]map[string]int),
		owners:  make(map[string]map[string]string),
		columns: make(map[string][]string),
	}
}

func (g *Graph) addTable(name string, columns []string) {
	if _, ok := g.adj[name]; !ok {
		g.tables = append(g.tables, name)
		g.adj[name] = make(map[string]int)
	}
	g.columns[name] = slices.Clone(columns)
}

// addEdge добавляет симметричное ребро и запоминает колонку на стороне владельца
func (g *Graph) addEdge(owner, target, column string) {
	g.adj[owner][target] = 1
	g.adj[target][owner] = 1
	if g.owners[owner] == nil {
		g.owners[owner] = make(map[string]string)
	}
	if _, seen := g.owners[owner][target]; !seen {
		g.owners[owner][target] = column
	}
}

// Tables возвращает таблицы в порядке сканирования
func (g *Graph) Tables() []string {
	return slices.Clone(g.tables)
}

// Has сообщает, есть ли таблица в графе
func (g *Graph) Has(table string) bool {
	_, ok := g.adj[table]
	return ok
}

// Weight возвращает вес ребра a-b
func (g *Graph) Weight(a, b string) (int, bool) {
	w, ok := g.adj[a][b]
	return w, ok
}

// Neighbors возвращает соседей в лексическом порядке
func (g *Graph) Neighbors(table string) []string {
	return slices.Sorted(maps.Keys(g.adj[table]))
}

// OwningColumn возвращает колонку таблицы a, ссылающуюся на b
func (g *Graph) OwningColumn(a, b string) (string, bool) {
	c, ok := g.owners[a][b]
	return c, ok
}

// Columns возвращает колонки таблицы, прочитанные при построении
func (g *Graph) Columns(table string) []string {
	return slices.Clone(g.columns[table])
}

// Edge ребро графа со стороны владельца колонки
type Edge struct {
	Owner  string
	Target string
	Column string
}

// Edges возвращает все рёбра, упорядоченные по владельцу и цели
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for _, owner := range g.tables {
		for _, target := range slices.Sorted(maps.Keys(g.owners[owner])) {
			edges = append(edges, Edge{Owner: owner, Target: target, Column: g.owners[owner][target]})
		}
	}
	return edges
}
