package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"relgraph/database"
)

func TestCompare(t *testing.T) {
	g := NewBuilder(nil).FromTables([]database.Table{
		table("users", "id", "name"),
		table("posts", "id", "user_id", "editor_id"),
		table("comments", "id", "post_id", "user_id"),
	})

	audit := g.Compare([]database.Relation{
		{ConstraintName: "fk_posts_user", SourceTable: "posts", SourceColumn: "user_id", TargetTable: "users", TargetColumn: "id"},
		{ConstraintName: "fk_posts_editor", SourceTable: "posts", SourceColumn: "editor_id", TargetTable: "users", TargetColumn: "id"},
		{ConstraintName: "fk_comments_post", SourceTable: "comments", SourceColumn: "post_id", TargetTable: "posts", TargetColumn: "id"},
	})

	assert.Equal(t, []Edge{
		{Owner: "posts", Target: "users", Column: "user_id"},
		{Owner: "comments", Target: "posts", Column: "post_id"},
	}, audit.Confirmed)
	assert.Len(t, audit.Missed, 1)
	assert.Equal(t, "fk_posts_editor", audit.Missed[0].ConstraintName)
	assert.Equal(t, []Edge{{Owner: "comments", Target: "users", Column: "user_id"}}, audit.Unconfirmed)
}
