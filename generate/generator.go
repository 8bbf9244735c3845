package generate

import (
	"bytes"
	"strings"

	"github.com/cockroachdb/errors"

	"relgraph/graph"
	"relgraph/naming"
)

// ErrUnacceptablePath путь пуст или у первого перехода нет колонки
var ErrUnacceptablePath = errors.New("resolved path not acceptable")

// DefaultNamespace пространство имён моделей Laravel
const DefaultNamespace = `\App\Models`

// Generator рендерит объявления связей Eloquent
type Generator struct {
	namespace string
}

// New создаёт генератор; пустое пространство имён заменяется DefaultNamespace
func New(namespace string) *Generator {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	namespace = `\` + strings.Trim(namespace, `\`)
	return &Generator{namespace: namespace}
}

// Acceptable: объявление пишется, только если путь не пуст и у первого перехода есть колонка
func Acceptable(steps []graph.ResolvedStep) bool {
	return len(steps) > 0 && steps[0].Column != ""
}

// Class полное имя класса модели
func (g *Generator) Class(model string) string {
	return g.namespace + `\` + naming.Basename(model)
}

func (g *Generator) tableClass(table string) string {
	return g.Class(naming.TableToModel(table))
}

// Generate рендерит метод name на модели, связанной с relatedModel.
// steps читаются от модели, в которую пишется метод.
func (g *Generator) Generate(name, relatedModel string, reversed bool, steps []graph.ResolvedStep) (string, error) {
	if !Acceptable(steps) {
		return "", errors.Wrapf(ErrUnacceptablePath, "%s to %s", name, relatedModel)
	}

	kind := SelectKind(len(steps))
	related := g.Class(relatedModel)

	var args []string
	switch kind {
	case Direct:
		args = g.direct(related, reversed, steps[0])
	case ThroughOne:
		args = g.throughOne(related, reversed, steps[0], steps[1])
	case ThroughMany:
		args = g.throughMany(related, steps)
	}

	rel := kind.relation(reversed)
	var buf bytes.Buffer
	err := methodTemplate.Execute(&buf, methodData{
		Doc:        rel.doc,
		Related:    related,
		Name:       name,
		ReturnType: rel.returnType,
		Method:     rel.method,
		Arguments:  formatArguments(args),
	})
	if err != nil {
		return "", errors.Wrapf(err, "render %s", name)
	}
	return buf.String(), nil
}

func (g *Generator) direct(related string, reversed bool, s graph.ResolvedStep) []string {
	// hasMany: ключ родителя; belongsTo: ключ владельца на стороне связанной таблицы
	key := s.LocalKey
	if reversed {
		key = s.ThroughLocalKey
	}
	return []string{classArg(related), quote(s.ForeignKey()), quote(key)}
}

func (g *Generator) throughOne(related string, reversed bool, first, second graph.ResolvedStep) []string {
	through := g.tableClass(first.NextTable)
	if reversed {
		return []string{
			classArg(related),
			classArg(through),
			"foreignKeyLookup: [" + classArg(related) + " => " + quote(second.ForeignKey()) + "]",
			"localKeyLookup: [" + classArg(through) + " => " + quote(second.LocalKey) + "]",
		}
	}
	return []string{
		classArg(related),
		classArg(through),
		quote(first.ForeignKey()),
		quote(second.ForeignKey()),
		quote(first.LocalKey),
		quote(second.LocalKey),
	}
}

func (g *Generator) throughMany(related string, steps []graph.ResolvedStep) []string {
	var intermediates, foreignKeys, localKeys []string
	for i, s := range steps {
		if i < len(steps)-1 {
			intermediates = append(intermediates, classArg(g.tableClass(s.NextTable)))
		}
		foreignKeys = append(foreignKeys, quote(s.ForeignKey()))
		localKeys = append(localKeys, quote(s.LocalKey))
	}
	return []string{
		classArg(related),
		"[" + strings.Join(intermediates, ", ") + "]",
		"[" + strings.Join(foreignKeys, ", ") + "]",
		"[" + strings.Join(localKeys, ", ") + "]",
	}
}

func classArg(class string) string { return class + "::class" }

func quote(s string) string { return "'" + s + "'" }
