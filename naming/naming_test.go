package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableModelConversions(t *testing.T) {
	cases := []struct {
		table, model string
	}{
		{"users", "User"},
		{"post_comments", "PostComment"},
		{"categories", "Category"},
	}
	for _, c := range cases {
		assert.Equal(t, c.model, TableToModel(c.table), c.table)
		assert.Equal(t, c.table, ModelToTable(c.model), c.model)
	}
}

func TestRelationshipName(t *testing.T) {
	assert.Equal(t, "posts", RelationshipName("Post", false))
	assert.Equal(t, "post", RelationshipName("Post", true))
	assert.Equal(t, "postComments", RelationshipName("PostComment", false))
	assert.Equal(t, "user", RelationshipName(`\App\Models\User`, true))
	assert.Equal(t, "categories", RelationshipName("Category", false))
}

func TestPluralSingular(t *testing.T) {
	assert.Equal(t, "regions", Plural("region"))
	assert.Equal(t, "region", Singular("regions"))
	assert.Equal(t, "Users", Studly("users"))
	assert.Equal(t, "user_id", Snake("UserId"))
}

func TestBasename(t *testing.T) {
	assert.Equal(t, "User", Basename(`\App\Models\User`))
	assert.Equal(t, "User", Basename("User"))
}
