package parser

import (
	"os"
	"regexp"

	"relgraph/database"
)

var (
	reAlterRel = regexp.MustCompile(
		`(?i)ALTER TABLE\s+(?:ONLY\s+)?([\w."]+)\s+ADD CONSTRAINT\s+(\w+)\s+FOREIGN KEY\s*\(\s*"?(\w+)"?\s*\)\s+REFERENCES\s+([\w."]+)\s*\(\s*"?(\w+)"?\s*\)`,
	)
	reInlineRel = regexp.MustCompile(
		`(?i)(?:CONSTRAINT\s+(\w+)\s+)?FOREIGN KEY\s*\(\s*"?(\w+)"?\s*\)\s+REFERENCES\s+([\w."]+)\s*\(\s*"?(\w+)"?\s*\)`,
	)
)

// ParseRelations парсит внешние ключи из SQL файла
func ParseRelations(path string) ([]database.Relation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRelationsText(string(data)), nil
}

// ParseRelationsText находит ALTER TABLE ... FOREIGN KEY и FOREIGN KEY внутри CREATE TABLE
func ParseRelationsText(text string) []database.Relation {
	var rels []database.Relation
	for _, m := range reAlterRel.FindAllStringSubmatch(text, -1) {
		rels = append(rels, database.Relation{
			ConstraintName: m[2],
			SourceTable:    unquoteIdent(m[1]),
			SourceColumn:   m[3],
			TargetTable:    unquoteIdent(m[4]),
			TargetColumn:   m[5],
		})
	}

	for _, tm := range reTable.FindAllStringSubmatch(text, -1) {
		source := unquoteIdent(tm[1])
		for _, m := range reInlineRel.FindAllStringSubmatch(tm[2], -1) {
			rels = append(rels, database.Relation{
				ConstraintName: m[1],
				SourceTable:    source,
				SourceColumn:   m[2],
				TargetTable:    unquoteIdent(m[3]),
				TargetColumn:   m[4],
			})
		}
	}
	return rels
}
