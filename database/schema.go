package database

import (
	"context"

	"github.com/cockroachdb/errors"
)

// ErrUnsupportedSchema возвращается, когда схему нельзя прочитать
var ErrUnsupportedSchema = errors.New("unsupported schema backend")

// ErrTableNotFound возвращается для отсутствующей таблицы
var ErrTableNotFound = errors.New("table not found")

// Schema читает живую схему базы. Кэширования между вызовами нет.
type Schema interface {
	ListTables(ctx context.Context) ([]string, error)
	TableExists(ctx context.Context, name string) (bool, error)
	ListColumns(ctx context.Context, table string) ([]string, error)
}

// StaticSchema схема из заранее известного набора таблиц (DDL-файл, тесты)
type StaticSchema struct {
	tables []Table
	index  map[string]int
}

// NewStaticSchema строит схему; порядок таблиц сохраняется
func NewStaticSchema(tables []Table) *StaticSchema {
	s := &StaticSchema{index: make(map[string]int, len(tables))}
	for _, t := range tables {
		if i, dup := s.index[t.Name]; dup {
			s.tables[i] = t
			continue
		}
		s.index[t.Name] = len(s.tables)
		s.tables = append(s.tables, t)
	}
	return s
}

// ListTables возвращает имена таблиц
func (s *StaticSchema) ListTables(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(s.tables))
	for _, t := range s.tables {
		names = append(names, t.Name)
	}
	return names, nil
}

// TableExists проверяет наличие таблицы
func (s *StaticSchema) TableExists(_ context.Context, name string) (bool, error) {
	_, ok := s.index[name]
	return ok, nil
}

// ListColumns возвращает колонки таблицы в исходном порядке
func (s *StaticSchema) ListColumns(_ context.Context, table string) ([]string, error) {
	i, ok := s.index[table]
	if !ok {
		return nil, errors.Wrapf(ErrTableNotFound, "list columns of %s", table)
	}
	return s.tables[i].ColumnNames(), nil
}
