package graph

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Direct(t *testing.T) {
	g := build(blogTables()...)

	steps, err := g.Resolve([]string{"users", "posts"})
	require.NoError(t, err)
	require.Len(t, steps, 1)

	s := steps[0]
	assert.Equal(t, "users", s.Table)
	assert.Equal(t, "posts", s.NextTable)
	assert.Equal(t, "id", s.Column, "falls back to the local key")
	assert.Equal(t, "user_id", s.NextColumn)
	assert.Equal(t, "id", s.LocalKey)
	assert.Equal(t, "id", s.ThroughLocalKey)
	assert.Equal(t, "posts", s.Owner)
	assert.Equal(t, "user_id", s.ForeignKey())
}

func TestResolve_ThroughIntermediate(t *testing.T) {
	g := build(table("a", "id"), table("b", "id", "a_id"), table("c", "code", "b_id"))

	steps, err := g.Resolve(g.ShortestPath("a", "c"))
	require.NoError(t, err)
	require.Len(t, steps, 2)

	assert.Equal(t, "a_id", steps[0].ForeignKey())
	assert.Equal(t, "b_id", steps[1].ForeignKey())
	assert.Equal(t, "code", steps[1].ThroughLocalKey, "first column when id is absent")

	for _, s := range steps {
		assert.NotEmpty(t, s.Column)
	}
}

func TestResolve_RejectsWholePath(t *testing.T) {
	g := build(table("a", "id"), table("b", "id", "a_id"))

	_, err := g.Resolve([]string{"a", "b", "z"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnresolvableColumns))
	assert.Contains(t, err.Error(), "b to z")
}

func TestResolve_ShortPath(t *testing.T) {
	g := build(table("a", "id"))
	steps, err := g.Resolve([]string{"a"})
	require.NoError(t, err)
	assert.Empty(t, steps)
}

func TestReversePath(t *testing.T) {
	g := build(table("a", "id"), table("b", "id", "a_id"), table("c", "id", "b_id"))
	steps, err := g.Resolve([]string{"a", "b", "c"})
	require.NoError(t, err)

	rev := ReversePath(steps)
	require.Len(t, rev, 2)
	assert.Equal(t, "c", rev[0].Table)
	assert.Equal(t, "b", rev[0].NextTable)
	assert.Equal(t, "b_id", rev[0].Column)
	assert.Equal(t, "b_id", rev[0].ForeignKey())
	assert.Equal(t, "b", rev[1].Table)
	assert.Equal(t, "a", rev[1].NextTable)
	assert.Equal(t, "a_id", rev[1].ForeignKey())
}

func TestIdentityKey(t *testing.T) {
	assert.Equal(t, "id", IdentityKey([]string{"name", "id"}))
	assert.Equal(t, "code", IdentityKey([]string{"code", "name"}))
	assert.Equal(t, "", IdentityKey(nil))
}
