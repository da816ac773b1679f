package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchCondition(t *testing.T) {
	t.Run("builds prefix and word prefix patterns", func(t *testing.T) {
		cond, args, next := searchCondition("name", "han", 1)

		assert.Equal(t, "(name ILIKE $1 OR name ILIKE $2)", cond)
		assert.Equal(t, []interface{}{"han%", "% han%"}, args)
		assert.Equal(t, 3, next)
	})

	t.Run("empty query yields no condition", func(t *testing.T) {
		cond, args, next := searchCondition("name", "", 1)

		assert.Empty(t, cond)
		assert.Nil(t, args)
		assert.Equal(t, 1, next)
	})

	t.Run("whitespace only query yields no condition", func(t *testing.T) {
		cond, args, next := searchCondition("name", "   \t ", 4)

		assert.Empty(t, cond)
		assert.Nil(t, args)
		assert.Equal(t, 4, next)
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		_, args, _ := searchCondition("title", "  moby ", 1)

		assert.Equal(t, []interface{}{"moby%", "% moby%"}, args)
	})

	t.Run("escapes pattern metacharacters", func(t *testing.T) {
		_, args, _ := searchCondition("name", `50%_off\`, 1)

		assert.Equal(t, []interface{}{`50\%\_off\\%`, `% 50\%\_off\\%`}, args)
	})

	t.Run("continues placeholder numbering", func(t *testing.T) {
		cond, _, next := searchCondition("b.title", "x", 3)

		assert.Equal(t, "(b.title ILIKE $3 OR b.title ILIKE $4)", cond)
		assert.Equal(t, 5, next)
	})
}
