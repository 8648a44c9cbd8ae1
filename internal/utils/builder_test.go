package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSelect(t *testing.T) {
	query, args, err := NewQueryBuilder("public").
		Select("id", "passed").
		From("submissions").
		Where("user_id = ?", "u1").
		And("problem_id = ?", "p1").
		OrderBy("created_at", false).
		Limit(10).
		Build()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id, passed FROM public.submissions WHERE user_id = ? AND problem_id = ? ORDER BY created_at DESC LIMIT ?",
		query)
	assert.Equal(t, []interface{}{"u1", "p1", 10}, args)
}

func TestBuildSelectWithoutConditions(t *testing.T) {
	query, args, err := NewQueryBuilder("").
		Select("id").
		From("submissions").
		Build()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM submissions", query)
	assert.Empty(t, args)
}

func TestBuildInsert(t *testing.T) {
	query, args, err := NewQueryBuilder("public").
		Insert("id", "code").
		Into("submissions").
		Values(1, "print(1)").
		Values(2, "print(2)").
		Build()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO public.submissions (id, code) VALUES (?, ?), (?, ?)", query)
	assert.Equal(t, []interface{}{1, "print(1)", 2, "print(2)"}, args)
}

func TestBuildRejectsMalformedQueries(t *testing.T) {
	_, _, err := NewQueryBuilder("public").Insert("id", "code").Into("submissions").Values(1).Build()
	assert.Error(t, err)

	_, _, err = NewQueryBuilder("public").Select("id").Build()
	assert.Error(t, err)

	_, _, err = NewQueryBuilder("").From("submissions").Build()
	assert.Error(t, err)
}
