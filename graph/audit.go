package graph

import "relgraph/database"

// Audit сравнение объявленных внешних ключей с выведенными рёбрами
type Audit struct {
	// Confirmed выведенные рёбра, подтверждённые ограничением
	Confirmed []Edge
	// Missed ограничения, которые эвристика не нашла
	Missed []database.Relation
	// Unconfirmed выведенные рёбра без ограничения в DDL
	Unconfirmed []Edge
}

// Compare сверяет граф с ограничениями FOREIGN KEY
func (g *Graph) Compare(declared []database.Relation) Audit {
	var a Audit
	seen := make(map[Edge]bool, len(declared))
	for _, r := range declared {
		e := Edge{Owner: r.SourceTable, Target: r.TargetTable, Column: r.SourceColumn}
		if col, ok := g.OwningColumn(r.SourceTable, r.TargetTable); ok && col == r.SourceColumn {
			if !seen[e] {
				a.Confirmed = append(a.Confirmed, e)
			}
			seen[e] = true
			continue
		}
		a.Missed = append(a.Missed, r)
	}
	for _, e := range g.Edges() {
		if !seen[e] {
			a.Unconfirmed = append(a.Unconfirmed, e)
		}
	}
	return a
}
