package testcatalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okian/ensemble/internal/domain/model"
	"github.com/okian/ensemble/internal/testcatalog"
)

func TestItems_Deterministic(t *testing.T) {
	a := testcatalog.New(testcatalog.WithSeed(7)).Items(50)
	b := testcatalog.New(testcatalog.WithSeed(7)).Items(50)

	require.Len(t, a, 50)
	assert.Equal(t, a, b)

	// A different seed produces a different catalog.
	c := testcatalog.New(testcatalog.WithSeed(8)).Items(50)
	assert.NotEqual(t, a, c)
}

func TestItems_Shape(t *testing.T) {
	items := testcatalog.New().Items(25)
	require.Len(t, items, 25)

	roles := make(map[model.Role]int)
	for _, it := range items {
		assert.NotEmpty(t, it.ID)
		assert.True(t, it.Role.Valid())
		assert.GreaterOrEqual(t, it.Price, 15.0)
		assert.LessOrEqual(t, it.Price, 400.0)
		assert.GreaterOrEqual(t, it.Popularity, 0.0)
		assert.LessOrEqual(t, it.Popularity, 1.0)
		for dim, c := range it.AttributeConfidence {
			assert.GreaterOrEqual(t, c, 0.3, "confidence for %s", dim)
			assert.LessOrEqual(t, c, 1.0, "confidence for %s", dim)
		}
		roles[it.Role]++
	}

	// Cycling guarantees every core role is populated.
	assert.Positive(t, roles[model.RoleTop])
	assert.Positive(t, roles[model.RoleBottom])
	assert.Positive(t, roles[model.RoleShoes])
}

func TestIntent_Deterministic(t *testing.T) {
	a := testcatalog.New(testcatalog.WithSeed(11))
	b := testcatalog.New(testcatalog.WithSeed(11))

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Intent(), b.Intent())
	}
}
