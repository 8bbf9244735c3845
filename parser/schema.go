package parser

import (
	"os"
	"regexp"
	"strings"

	"relgraph/database"
)

var (
	reTable      = regexp.MustCompile("(?is)CREATE TABLE\\s+(?:IF NOT EXISTS\\s+)?((?:[\\w\"`\\[\\]]+\\.)?[\\w\"`\\[\\]]+)\\s*\\((.*?)\\)\\s*;")
	reCol        = regexp.MustCompile("(?i)^\\s*[\"`\\[]?([A-Za-z_]\\w*)[\"`\\]]?\\s+([A-Za-z0-9()_,]+)")
	// служебные строки внутри CREATE TABLE: ключевое слово, затем пробел или скобка
	reConstraint = regexp.MustCompile(`(?i)^(PRIMARY\s+KEY|CONSTRAINT|FOREIGN\s+KEY|UNIQUE|CHECK|INDEX|KEY)[\s(]`)
)

// ParseSQLSchema парсит CREATE TABLE из SQL файла
func ParseSQLSchema(path string) ([]database.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSchemaText(string(data)), nil
}

// ParseSchemaText парсит CREATE TABLE из текста DDL
func ParseSchemaText(text string) []database.Table {
	var tables []database.Table
	for _, m := range reTable.FindAllStringSubmatch(text, -1) {
		name := unquoteIdent(m[1])
		block := m[2]
		t := database.Table{Name: name}

		for _, line := range strings.Split(block, "\n") {
			line = strings.TrimSpace(line)
			if line == "" || isConstraintLine(line) {
				continue
			}
			line = strings.TrimSuffix(line, ",")
			if caps := reCol.FindStringSubmatch(line); caps != nil {
				t.Columns = append(t.Columns, database.Column{
					Name: caps[1],
					Type: caps[2],
				})
			}
		}
		tables = append(tables, t)
	}
	return tables
}

func isConstraintLine(line string) bool {
	return reConstraint.MatchString(line)
}

// unquoteIdent убирает кавычки и префикс схемы: "public"."users" -> users
func unquoteIdent(ident string) string {
	if i := strings.LastIndex(ident, "."); i >= 0 {
		ident = ident[i+1:]
	}
	return strings.Trim(ident, "\"`[]")
}
