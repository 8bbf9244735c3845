// Package relations строит и удаляет объявления связей между моделями.
package relations

import (
	"context"
	"fmt"
	"slices"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"relgraph/database"
	"relgraph/generate"
	"relgraph/graph"
	"relgraph/model"
	"relgraph/naming"
)

var (
	// ErrValidation неверная комбинация аргументов или неизвестная модель
	ErrValidation = errors.New("invalid selection")
	// ErrNoPath между таблицами моделей нет пути
	ErrNoPath = errors.New("no path found")
	// ErrMissingModel у модели нет файла и его не удалось создать
	ErrMissingModel = errors.New("missing model")
)

// Selector выбор пар моделей: пара, модель со всеми связанными или все со всеми
type Selector struct {
	Start string
	End   string
	All   bool
}

// Service оркестратор build/remove
type Service struct {
	schema    database.Schema
	store     model.Store
	builder   *graph.Builder
	generator *generate.Generator
	logger    *zap.Logger
}

// NewService создаёт оркестратор. nil generator заменяется генератором по умолчанию.
func NewService(schema database.Schema, store model.Store, generator *generate.Generator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if generator == nil {
		generator = generate.New("")
	}
	return &Service{
		schema:    schema,
		store:     store,
		builder:   graph.NewBuilder(logger),
		generator: generator,
		logger:    logger,
	}
}

func validationError(format string, args ...any) error {
	err := errors.Mark(errors.Newf(format, args...), ErrValidation)
	return errors.WithHint(err, "usage: build|remove START END, START --all, or --all")
}

func (s *Service) validate(sel Selector) error {
	if sel.Start != "" && sel.End == "" && !sel.All {
		return validationError("If a start model is provided without an end model, --all must be used.")
	}
	if sel.Start == "" && !sel.All {
		return validationError("Please provide at least a start model or use --all with a starting model, or provide a start and end model.")
	}
	for _, m := range []string{sel.Start, sel.End} {
		if m != "" && !s.store.Exists(m) {
			return validationError("Model %s does not exist.", m)
		}
	}
	return nil
}

// Build добавляет недостающие объявления связей для выбранных пар.
// Ошибку возвращают только проверка аргументов и чтение схемы, остальное попадает в сообщения.
func (s *Service) Build(ctx context.Context, sel Selector) ([]string, error) {
	if err := s.validate(sel); err != nil {
		return nil, err
	}

	g, err := s.builder.Build(ctx, s.schema)
	if err != nil {
		return nil, errors.Wrap(err, "analyze schema")
	}
	p := &pass{Service: s, graph: g}

	switch {
	case sel.Start != "" && sel.End != "":
		p.pair(ctx, sel.Start, sel.End)
	case sel.Start != "":
		connected := p.connectedModels(sel.Start)
		if len(connected) == 0 {
			return []string{fmt.Sprintf("No connected models found for %s", sel.Start)}, nil
		}
		for _, other := range connected {
			p.pair(ctx, sel.Start, other)
		}
	default:
		models, err := s.store.List()
		if err != nil {
			return nil, err
		}
		for _, a := range models {
			for _, b := range models {
				if a != b {
					p.pair(ctx, a, b)
				}
			}
		}
	}
	return p.messages, nil
}

// Remove удаляет объявления, которые Build добавил бы для выбранных пар.
// Отсутствующее объявление не считается ошибкой. Граф не строится.
func (s *Service) Remove(_ context.Context, sel Selector) error {
	if err := s.validate(sel); err != nil {
		return err
	}

	if sel.Start != "" && sel.End != "" {
		s.removePair(sel.Start, sel.End)
		return nil
	}

	models, err := s.store.List()
	if err != nil {
		return err
	}
	for _, a := range models {
		if sel.Start != "" && a != sel.Start {
			continue
		}
		for _, b := range models {
			if a != b {
				s.removePair(a, b)
			}
		}
	}
	return nil
}

func (s *Service) removePair(a, b string) {
	s.removeDeclaration(a, naming.RelationshipName(b, false))
	s.removeDeclaration(b, naming.RelationshipName(a, true))
}

func (s *Service) removeDeclaration(m, name string) {
	src, err := s.store.Read(m)
	if err != nil {
		s.logger.Debug("Skip removal", zap.String("model", m), zap.Error(err))
		return
	}
	out, ok := model.RemoveDeclaration(src, name)
	if !ok {
		return
	}
	if err := s.store.Write(m, out); err != nil {
		s.logger.Warn("Failed to remove relationship",
			zap.String("model", m),
			zap.String("relationship", name),
			zap.Error(err))
		return
	}
	s.logger.Info("Relationship removed", zap.String("model", m), zap.String("relationship", name))
}

// pass состояние одного вызова Build: снимок графа и накопленные сообщения
type pass struct {
	*Service
	graph    *graph.Graph
	messages []string
}

func (p *pass) addf(format string, args ...any) {
	p.messages = append(p.messages, fmt.Sprintf(format, args...))
}

// connectedModels модели всех таблиц, достижимых из таблицы модели
func (p *pass) connectedModels(m string) []string {
	var models []string
	for _, table := range p.graph.ReachableFrom(p.store.TableName(m)) {
		other := naming.TableToModel(table)
		if other != naming.Basename(m) && !slices.Contains(models, other) {
			models = append(models, other)
		}
	}
	return models
}

// ensure создаёт файл модели, если его нет. false: модель недоступна, пара пропускается.
func (p *pass) ensure(ctx context.Context, m string) bool {
	if p.store.Exists(m) {
		return true
	}
	if _, err := p.store.Scaffold(ctx, m); err != nil {
		err = errors.Mark(err, ErrMissingModel)
		p.logger.Warn("Model scaffolding failed", zap.String("model", m), zap.Error(err))
		p.addf("Failed to generate model %s: %v", m, err)
		p.addf("%s model path does not exist.", m)
		return false
	}
	p.addf("Generated model: %s", m)
	return true
}

func (p *pass) pair(ctx context.Context, a, b string) {
	start, end := p.store.TableName(a), p.store.TableName(b)
	path := p.graph.ShortestPath(start, end)
	if len(path) == 0 {
		p.logger.Debug("No path", zap.String("start", start), zap.String("end", end), zap.Error(ErrNoPath))
		p.addf("No path found between %s and %s.", a, b)
		return
	}

	steps, err := p.graph.Resolve(path)
	if err != nil {
		p.logger.Debug("Path not resolved", zap.Strings("path", path), zap.Error(err))
		p.addf("Column information not found for %s to %s.", a, b)
		return
	}
	if !generate.Acceptable(steps) {
		p.addf("Resolved Path not acceptable for %s to %s.", a, b)
		return
	}

	// файлы моделей создаются только для пары, которая даст объявление
	if !p.ensure(ctx, a) || !p.ensure(ctx, b) {
		return
	}

	p.attach(a, b, false, steps)
	p.attach(b, a, true, graph.ReversePath(steps))
}

// attach дописывает объявление связи с related в модель m, если его ещё нет
func (p *pass) attach(m, related string, reversed bool, steps []graph.ResolvedStep) {
	name := naming.RelationshipName(related, reversed)

	src, err := p.store.Read(m)
	if err != nil {
		p.addf("Failed to read model %s: %v", m, err)
		return
	}
	if model.HasDeclaration(src, name) {
		p.logger.Debug("Relationship exists", zap.String("model", m), zap.String("relationship", name))
		return
	}

	decl, err := p.generator.Generate(name, related, reversed, steps)
	if errors.Is(err, generate.ErrUnacceptablePath) {
		p.addf("Resolved Path not acceptable for %s to %s.", m, related)
		return
	}
	if err != nil {
		p.addf("Failed to generate %s on %s: %v", name, m, err)
		return
	}

	out, ok := model.AppendDeclaration(src, decl)
	if !ok {
		p.addf("No class body found in model %s, %s() not added.", m, name)
		return
	}
	if err := p.store.Write(m, out); err != nil {
		p.addf("Failed to write model %s: %v", m, err)
		return
	}
	kind := generate.SelectKind(len(steps))
	p.logger.Info("Relationship added",
		zap.String("model", m),
		zap.String("relationship", name),
		zap.String("kind", kind.Method(reversed)))
	p.addf("Added %s %s() to %s.", kind.Method(reversed), name, m)
}
