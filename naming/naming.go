// Package naming содержит соглашения об именах таблиц, моделей и связей.
// Множественное число: github.com/jinzhu/inflection, регистр: github.com/go-openapi/inflect.
package naming

import (
	"strings"

	"github.com/go-openapi/inflect"
	"github.com/jinzhu/inflection"
)

// ForeignKeySuffix суффикс колонки-кандидата во внешний ключ
const ForeignKeySuffix = "_id"

func Plural(s string) string   { return inflection.Plural(s) }
func Singular(s string) string { return inflection.Singular(s) }

// Studly: post_comments -> PostComments
func Studly(s string) string { return inflect.Camelize(s) }

// Camel: PostComment -> postComment
func Camel(s string) string { return inflect.CamelizeDownFirst(s) }

// Snake: PostComment -> post_comment
func Snake(s string) string { return inflect.Underscore(s) }

// Basename отрезает пространство имён: \App\Models\User -> User
func Basename(class string) string {
	class = strings.TrimRight(class, `\`)
	if i := strings.LastIndex(class, `\`); i >= 0 {
		return class[i+1:]
	}
	return class
}

// TableToModel: post_comments -> PostComment
func TableToModel(table string) string {
	return Studly(Singular(table))
}

// ModelToTable: PostComment -> post_comments
func ModelToTable(model string) string {
	return Snake(Plural(Basename(model)))
}

// RelationshipName имя метода связи: прямое направление во множественном
// числе, обратное в единственном.
func RelationshipName(relatedModel string, reversed bool) string {
	name := Camel(Basename(relatedModel))
	if reversed {
		return Singular(name)
	}
	return Plural(name)
}
