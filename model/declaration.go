package model

import (
	"regexp"
	"strings"
)

var (
	reAnyDeclaration = regexp.MustCompile(`(?i)public\s+function\s+([a-zA-Z_][a-zA-Z0-9_]*)\s*\(`)
	reTableProperty  = regexp.MustCompile(`protected\s+\$table\s*=\s*['"]([^'"]+)['"]\s*;`)
)

func declarationPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)public\s+function\s+` + regexp.QuoteMeta(name) + `\s*\(`)
}

// HasDeclaration ищет сигнатуру public function name( в исходнике модели
func HasDeclaration(source, name string) bool {
	return declarationPattern(name).MatchString(source)
}

// Declarations возвращает имена всех публичных методов в порядке объявления
func Declarations(source string) []string {
	var names []string
	for _, m := range reAnyDeclaration.FindAllStringSubmatch(source, -1) {
		names = append(names, m[1])
	}
	return names
}

// DuplicateDeclarations возвращает имена методов, объявленных больше одного раза
func DuplicateDeclarations(source string) []string {
	seen := make(map[string]int)
	var dups []string
	for _, name := range Declarations(source) {
		seen[name]++
		if seen[name] == 2 {
			dups = append(dups, name)
		}
	}
	return dups
}

// AppendDeclaration вставляет объявление перед последней закрывающей скобкой класса.
// false: закрывающей скобки нет, исходник возвращается без изменений.
func AppendDeclaration(source, declaration string) (string, bool) {
	end := strings.LastIndex(source, "}")
	if end < 0 {
		return source, false
	}
	head := strings.TrimRight(source[:end], " \t\r\n")
	return head + "\n\n" + strings.TrimRight(declaration, " \t\r\n") + "\n}\n", true
}

// RemoveDeclaration удаляет метод name вместе с doc-блоком: от сигнатуры
// до парной закрывающей скобки. Возвращает false, если метода нет.
func RemoveDeclaration(source, name string) (string, bool) {
	pattern := declarationPattern(name)
	removed := false
	for {
		loc := pattern.FindStringIndex(source)
		if loc == nil {
			return source, removed
		}
		end, ok := matchBody(source, loc[1])
		if !ok {
			return source, removed
		}
		start := declarationStart(source, loc[0])
		source = source[:start] + source[end:]
		removed = true
	}
}

// declarationStart отступает от сигнатуры через doc-блок и пробелы перед ним
func declarationStart(source string, signature int) int {
	start := signature
	trimmed := strings.TrimRight(source[:start], " \t\r\n")
	if strings.HasSuffix(trimmed, "*/") {
		if doc := strings.LastIndex(trimmed, "/**"); doc >= 0 {
			start = doc
		}
	}
	return len(strings.TrimRight(source[:start], " \t\r\n"))
}

// matchBody находит конец тела метода, начиная после открывающей скобки
// списка параметров. Скобки внутри строк и комментариев не считаются.
func matchBody(source string, from int) (int, bool) {
	depth := 0
	opened := false
	for i := from; i < len(source); i++ {
		switch c := source[i]; c {
		case '\'', '"':
			i = skipString(source, i)
		case '/':
			if i+1 < len(source) && source[i+1] == '/' {
				i = skipUntil(source, i, "\n")
			} else if i+1 < len(source) && source[i+1] == '*' {
				i = skipUntil(source, i+2, "*/") + 1
			}
		case ';':
			if !opened {
				return 0, false
			}
		case '{':
			depth++
			opened = true
		case '}':
			depth--
			if opened && depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}

func skipString(source string, i int) int {
	quote := source[i]
	for j := i + 1; j < len(source); j++ {
		switch source[j] {
		case '\\':
			j++
		case quote:
			return j
		}
	}
	return len(source)
}

func skipUntil(source string, i int, marker string) int {
	if j := strings.Index(source[i:], marker); j >= 0 {
		return i + j
	}
	return len(source)
}

// TableProperty читает protected $table = '...' из исходника модели
func TableProperty(source string) (string, bool) {
	m := reTableProperty.FindStringSubmatch(source)
	if m == nil {
		return "", false
	}
	return m[1], true
}
