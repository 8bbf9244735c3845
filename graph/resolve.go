package graph

import "github.com/cockroachdb/errors"

// ErrUnresolvableColumns путь есть, но для перехода нет колонки ни с одной стороны
var ErrUnresolvableColumns = errors.New("no column information")

// ResolvedStep один переход пути с колонками, нужными для объявления связи.
// Column и NextColumn подставляют ключи таблиц, если колонка-владелец не найдена.
type ResolvedStep struct {
	Table           string
	NextTable       string
	Column          string
	NextColumn      string
	LocalKey        string
	ThroughLocalKey string
	// Owner таблица, в которой лежит колонка внешнего ключа
	Owner string
}

// ForeignKey возвращает настоящую колонку внешнего ключа перехода
func (s ResolvedStep) ForeignKey() string {
	if s.Owner == s.NextTable && s.Owner != s.Table {
		return s.NextColumn
	}
	return s.Column
}

// Reverse разворачивает переход
func (s ResolvedStep) Reverse() ResolvedStep {
	return ResolvedStep{
		Table:           s.NextTable,
		NextTable:       s.Table,
		Column:          s.NextColumn,
		NextColumn:      s.Column,
		LocalKey:        s.ThroughLocalKey,
		ThroughLocalKey: s.LocalKey,
		Owner:           s.Owner,
	}
}

// ReversePath разворачивает путь целиком, чтобы он читался от конечной таблицы
func ReversePath(steps []ResolvedStep) []ResolvedStep {
	out := make([]ResolvedStep, len(steps))
	for i, s := range steps {
		out[len(steps)-1-i] = s.Reverse()
	}
	return out
}

// Resolve превращает путь таблиц в переходы с колонками.
// Если хотя бы для одного перехода нет колонки, отклоняется весь путь.
func (g *Graph) Resolve(path []string) ([]ResolvedStep, error) {
	var steps []ResolvedStep
	for i := 0; i+1 < len(path); i++ {
		cur, next := path[i], path[i+1]

		column, hasColumn := g.OwningColumn(cur, next)
		nextColumn, hasNext := g.OwningColumn(next, cur)
		if !hasColumn && !hasNext {
			return nil, errors.Wrapf(ErrUnresolvableColumns, "%s to %s", cur, next)
		}

		localKey := IdentityKey(g.columns[cur])
		throughLocalKey := IdentityKey(g.columns[next])

		owner := cur
		if !hasColumn {
			owner = next
			column = localKey
		}
		if !hasNext {
			nextColumn = throughLocalKey
		}

		steps = append(steps, ResolvedStep{
			Table:           cur,
			NextTable:       next,
			Column:          column,
			NextColumn:      nextColumn,
			LocalKey:        localKey,
			ThroughLocalKey: throughLocalKey,
			Owner:           owner,
		})
	}
	return steps, nil
}
