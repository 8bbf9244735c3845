// Package model читает и изменяет исходники моделей Eloquent на диске.
package model

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"relgraph/database"
	"relgraph/naming"
)

const (
	sourceExt        = ".php"
	defaultNamespace = `App\Models`
)

// ErrModelNotFound у модели нет файла
var ErrModelNotFound = errors.New("model not found")

// Store источник исходников моделей
type Store interface {
	Read(model string) (string, error)
	Write(model, source string) error
	Exists(model string) bool
	List() ([]string, error)
	TableName(model string) string
	Scaffold(ctx context.Context, model string) (string, error)
}

var _ Store = (*FileStore)(nil)

// FileStore хранит модели в каталоге models, фабрики в каталоге factories
type FileStore struct {
	modelsDir    string
	factoriesDir string
	namespace    string
	schema       database.Schema
	logger       *zap.Logger
}

// NewFileStore создаёт хранилище. schema нужна только для Scaffold.
func NewFileStore(modelsDir, factoriesDir, namespace string, schema database.Schema, logger *zap.Logger) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &FileStore{
		modelsDir:    modelsDir,
		factoriesDir: factoriesDir,
		namespace:    strings.Trim(namespace, `\`),
		schema:       schema,
		logger:       logger,
	}
}

// Path путь к файлу модели
func (s *FileStore) Path(model string) string {
	return filepath.Join(s.modelsDir, naming.Basename(model)+sourceExt)
}

// Exists проверяет наличие файла модели
func (s *FileStore) Exists(model string) bool {
	info, err := os.Stat(s.Path(model))
	return err == nil && !info.IsDir()
}

// Read читает исходник модели
func (s *FileStore) Read(model string) (string, error) {
	data, err := os.ReadFile(s.Path(model))
	if errors.Is(err, os.ErrNotExist) {
		return "", errors.Wrapf(ErrModelNotFound, "%s", model)
	}
	if err != nil {
		return "", errors.Wrapf(err, "read model %s", model)
	}
	return string(data), nil
}

// Write перезаписывает исходник модели
func (s *FileStore) Write(model, source string) error {
	if err := os.WriteFile(s.Path(model), []byte(source), 0o644); err != nil {
		return errors.Wrapf(err, "write model %s", model)
	}
	s.logger.Debug("Model written", zap.String("model", model))
	return nil
}

// List возвращает имена моделей, отсортированные по имени
func (s *FileStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.modelsDir)
	if err != nil {
		return nil, errors.Wrapf(err, "list models in %s", s.modelsDir)
	}
	var models []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != sourceExt {
			continue
		}
		models = append(models, strings.TrimSuffix(e.Name(), sourceExt))
	}
	slices.Sort(models)
	return models, nil
}

// TableName таблица модели: свойство $table из исходника, иначе snake(plural(model))
func (s *FileStore) TableName(model string) string {
	if src, err := s.Read(model); err == nil {
		if table, ok := TableProperty(src); ok {
			return table
		}
	}
	return naming.ModelToTable(model)
}

// Scaffold создаёт модель и фабрику по колонкам таблицы, если их ещё нет
func (s *FileStore) Scaffold(ctx context.Context, model string) (string, error) {
	model = naming.Basename(model)
	table := naming.ModelToTable(model)

	if s.schema == nil {
		return "", errors.Newf("cannot scaffold %s: no schema available", model)
	}
	ok, err := s.schema.TableExists(ctx, table)
	if err != nil {
		return "", errors.Wrapf(err, "scaffold %s", model)
	}
	if !ok {
		return "", errors.Wrapf(database.ErrTableNotFound, "table %s does not exist in the database", table)
	}
	columns, err := s.schema.ListColumns(ctx, table)
	if err != nil {
		return "", errors.Wrapf(err, "scaffold %s", model)
	}
	fillable, guarded := splitColumns(columns)

	if err := os.MkdirAll(s.modelsDir, 0o755); err != nil {
		return "", errors.Wrap(err, "models directory is not writable")
	}
	if !s.Exists(model) {
		if err := s.Write(model, renderModel(s.namespace, model, fillable, guarded)); err != nil {
			return "", err
		}
		s.logger.Info("Model scaffolded", zap.String("model", model), zap.String("table", table))
	}

	if s.factoriesDir != "" {
		if err := s.writeFactory(model, fillable); err != nil {
			return "", err
		}
	}
	return s.Read(model)
}

func (s *FileStore) writeFactory(model string, fillable []string) error {
	path := filepath.Join(s.factoriesDir, model+"Factory"+sourceExt)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(s.factoriesDir, 0o755); err != nil {
		return errors.Wrap(err, "factories directory is not writable")
	}
	if err := os.WriteFile(path, []byte(renderFactory(s.namespace, model, fillable)), 0o644); err != nil {
		return errors.Wrapf(err, "write factory for %s", model)
	}
	return nil
}

// служебные колонки не попадают в $fillable
var guardedColumns = []string{"id", "uuid", "created_at", "updated_at", "deleted_at"}

func splitColumns(columns []string) (fillable, guarded []string) {
	for _, c := range columns {
		if slices.Contains(guardedColumns, c) {
			guarded = append(guarded, c)
		} else {
			fillable = append(fillable, c)
		}
	}
	return fillable, guarded
}
