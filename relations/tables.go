package relations

import (
	"context"
	"fmt"
	"slices"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"relgraph/naming"
)

// frameworkTables служебные таблицы Laravel, для которых модели не нужны
var frameworkTables = []string{
	"cache", "cache_locks", "failed_jobs", "job_batches",
	"jobs", "migrations", "password_reset_tokens", "sessions",
}

// ConnectedModel модель таблицы, смежной с таблицей другой модели
type ConnectedModel struct {
	Model   string
	Table   string
	HasFile bool
}

// ModelLinks модель и её непосредственные соседи по графу
type ModelLinks struct {
	Model     string
	Table     string
	Connected []ConnectedModel
}

// ListModels перечисляет модели с моделями смежных таблиц
func (s *Service) ListModels(ctx context.Context) ([]ModelLinks, error) {
	g, err := s.builder.Build(ctx, s.schema)
	if err != nil {
		return nil, errors.Wrap(err, "analyze schema")
	}
	models, err := s.store.List()
	if err != nil {
		return nil, err
	}

	out := make([]ModelLinks, 0, len(models))
	for _, m := range models {
		links := ModelLinks{Model: m, Table: s.store.TableName(m)}
		for _, table := range g.Neighbors(links.Table) {
			if table == links.Table {
				continue
			}
			other := naming.TableToModel(table)
			links.Connected = append(links.Connected, ConnectedModel{
				Model:   other,
				Table:   table,
				HasFile: s.store.Exists(other),
			})
		}
		out = append(out, links)
	}
	return out, nil
}

// TablesWithoutModels возвращает таблицы схемы, у которых нет модели.
// Служебные таблицы и таблицы, совпадающие с единственным числом таблицы модели, пропускаются.
func (s *Service) TablesWithoutModels(ctx context.Context) ([]string, error) {
	tables, err := s.schema.ListTables(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list tables")
	}
	models, err := s.store.List()
	if err != nil {
		return nil, err
	}

	var modelTables, singular []string
	for _, m := range models {
		t := s.store.TableName(m)
		modelTables = append(modelTables, t)
		singular = append(singular, naming.Singular(t))
	}

	var missing []string
	for _, t := range tables {
		if slices.Contains(modelTables, t) ||
			slices.Contains(frameworkTables, t) ||
			slices.Contains(singular, t) {
			continue
		}
		missing = append(missing, t)
	}
	return missing, nil
}

// CreateModels создаёт модель для каждой таблицы, по одному сообщению на таблицу
func (s *Service) CreateModels(ctx context.Context, tables []string) []string {
	messages := make([]string, 0, len(tables))
	for _, table := range tables {
		m := naming.TableToModel(table)
		if s.store.Exists(m) {
			messages = append(messages, fmt.Sprintf("Model for table %s already exists: %s", table, m))
			continue
		}
		if _, err := s.store.Scaffold(ctx, m); err != nil {
			s.logger.Warn("Model scaffolding failed", zap.String("table", table), zap.Error(err))
			messages = append(messages, fmt.Sprintf("Failed to create model for table %s: %v", table, err))
			continue
		}
		messages = append(messages, fmt.Sprintf("Created model for table %s: %s", table, m))
	}
	return messages
}
