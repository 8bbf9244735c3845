package graph

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"relgraph/database"
)

// Builder строит граф по схеме
type Builder struct {
	policies []TargetPolicy
	logger   *zap.Logger
}

// NewBuilder создаёт построитель. Без политик используются DefaultPolicies.
func NewBuilder(logger *zap.Logger, policies ...TargetPolicy) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(policies) == 0 {
		policies = DefaultPolicies
	}
	return &Builder{policies: policies, logger: logger}
}

// Build читает все таблицы и колонки схемы и возвращает новый снимок графа
func (b *Builder) Build(ctx context.Context, schema database.Schema) (*Graph, error) {
	names, err := schema.ListTables(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "scan schema")
	}

	tables := make([]database.Table, 0, len(names))
	for _, name := range names {
		cols, err := schema.ListColumns(ctx, name)
		if err != nil {
			return nil, errors.Wrapf(err, "scan table %s", name)
		}
		t := database.Table{Name: name}
		for _, c := range cols {
			t.Columns = append(t.Columns, database.Column{Name: c})
		}
		tables = append(tables, t)
	}

	g := b.FromTables(tables)
	b.logger.Info("Relationship graph built",
		zap.Int("tables", len(names)),
		zap.Int("edges", len(g.Edges())))
	return g, nil
}

// FromTables строит граф из уже прочитанных таблиц. Чистая функция.
func (b *Builder) FromTables(tables []database.Table) *Graph {
	g := newGraph()
	for _, t := range tables {
		g.addTable(t.Name, t.ColumnNames())
	}
	exists := func(name string) bool { return g.Has(name) }

	for _, t := range tables {
		for _, col := range t.Columns {
			candidate, ok := Candidate(col.Name)
			if !ok {
				continue
			}
			target, policy, found := b.resolveTarget(candidate, exists)
			if !found {
				b.logger.Debug("Column does not reference a table",
					zap.String("table", t.Name),
					zap.String("column", col.Name))
				continue
			}
			g.addEdge(t.Name, target, col.Name)
			b.logger.Debug("Edge inferred",
				zap.String("table", t.Name),
				zap.String("column", col.Name),
				zap.String("target", target),
				zap.String("policy", policy))
		}
	}
	return g
}

func (b *Builder) resolveTarget(candidate string, exists func(string) bool) (string, string, bool) {
	for _, p := range b.policies {
		if target, ok := p.Resolve(candidate, exists); ok {
			return target, p.Name, true
		}
	}
	return "", "", false
}
