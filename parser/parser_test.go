package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relgraph/database"
)

const blogDDL = `
CREATE TABLE users (
    id INTEGER,
    name VARCHAR(255),
    PRIMARY KEY (id)
);

CREATE TABLE IF NOT EXISTS "public"."posts" (
    id INTEGER,
    "user_id" INTEGER,
    title VARCHAR(255),
    CONSTRAINT fk_posts_user FOREIGN KEY (user_id) REFERENCES users (id)
);

CREATE TABLE comments (
    id INTEGER,
    post_id INTEGER,
    user_id INTEGER
);

ALTER TABLE comments ADD CONSTRAINT fk_comments_post FOREIGN KEY (post_id) REFERENCES posts (id);
`

func TestParseSchemaText(t *testing.T) {
	tables := ParseSchemaText(blogDDL)
	require.Len(t, tables, 3)

	assert.Equal(t, "users", tables[0].Name)
	assert.Equal(t, []string{"id", "name"}, tables[0].ColumnNames())

	assert.Equal(t, "posts", tables[1].Name)
	assert.Equal(t, []string{"id", "user_id", "title"}, tables[1].ColumnNames())
	assert.Equal(t, "VARCHAR(255)", tables[1].Columns[2].Type)

	assert.Equal(t, []string{"id", "post_id", "user_id"}, tables[2].ColumnNames())
}

func TestParseSchemaText_KeywordPrefixedColumns(t *testing.T) {
	tables := ParseSchemaText(`CREATE TABLE items (
    id bigint,
    checklist_id bigint,
    index_id bigint,
    unique_code varchar(10),
    key_name varchar(10),
    primary_color varchar(10),
    PRIMARY KEY (id),
    UNIQUE (unique_code),
    CHECK(index_id > 0),
    INDEX idx_items_checklist (checklist_id)
);`)
	require.Len(t, tables, 1)
	assert.Equal(t,
		[]string{"id", "checklist_id", "index_id", "unique_code", "key_name", "primary_color"},
		tables[0].ColumnNames())
}

func TestParseRelationsText(t *testing.T) {
	rels := ParseRelationsText(blogDDL)
	require.Len(t, rels, 2)

	assert.Contains(t, rels, database.Relation{
		ConstraintName: "fk_comments_post",
		SourceTable:    "comments",
		SourceColumn:   "post_id",
		TargetTable:    "posts",
		TargetColumn:   "id",
	})
	assert.Contains(t, rels, database.Relation{
		ConstraintName: "fk_posts_user",
		SourceTable:    "posts",
		SourceColumn:   "user_id",
		TargetTable:    "users",
		TargetColumn:   "id",
	})
}

func TestParseFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.sql")
	require.NoError(t, os.WriteFile(path, []byte(blogDDL), 0o644))

	tables, err := ParseSQLSchema(path)
	require.NoError(t, err)
	assert.Len(t, tables, 3)

	rels, err := ParseRelations(path)
	require.NoError(t, err)
	assert.Len(t, rels, 2)

	_, err = ParseSQLSchema(filepath.Join(t.TempDir(), "missing.sql"))
	assert.Error(t, err)
}
