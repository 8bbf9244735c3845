package graph

import (
	"regexp"
	"strings"

	"relgraph/naming"
)

// TargetPolicy правило, сопоставляющее кандидату (колонка без _id) таблицу
type TargetPolicy struct {
	Name    string
	Resolve func(candidate string, exists func(string) bool) (string, bool)
}

var (
	// ExactMatch: user_id -> user
	ExactMatch = TargetPolicy{
		Name: "exact",
		Resolve: func(candidate string, exists func(string) bool) (string, bool) {
			return candidate, exists(candidate)
		},
	}

	// PluralMatch: user_id -> users
	PluralMatch = TargetPolicy{
		Name: "plural",
		Resolve: func(candidate string, exists func(string) bool) (string, bool) {
			plural := naming.Plural(candidate)
			return plural, exists(plural)
		},
	}

	// NumberedMatch: region2_id -> regions2 (шардированные семейства таблиц)
	NumberedMatch = TargetPolicy{
		Name: "numbered",
		Resolve: func(candidate string, exists func(string) bool) (string, bool) {
			m := reNumbered.FindStringSubmatch(candidate)
			if m == nil {
				return "", false
			}
			numbered := naming.Plural(m[1]) + m[2]
			return numbered, exists(numbered)
		},
	}

	// DefaultPolicies порядок важен: побеждает первое совпадение
	DefaultPolicies = []TargetPolicy{ExactMatch, PluralMatch, NumberedMatch}
)

var reNumbered = regexp.MustCompile(`^(.+?)(\d+)$`)

// Candidate отрезает суффикс внешнего ключа; false, если суффикса нет
func Candidate(column string) (string, bool) {
	if !strings.HasSuffix(column, naming.ForeignKeySuffix) {
		return "", false
	}
	c := strings.TrimSuffix(column, naming.ForeignKeySuffix)
	return c, c != ""
}

// IdentityKey ключ таблицы: id, если есть, иначе первая колонка
func IdentityKey(columns []string) string {
	for _, c := range columns {
		if c == "id" {
			return c
		}
	}
	if len(columns) == 0 {
		return ""
	}
	return columns[0]
}
