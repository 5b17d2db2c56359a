package database

import (
	"context"
	"testing"

	"github.com/PlatonKara/foodgram-backend/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ingredientNames(ingredients []*models.Ingredient) []string {
	names := make([]string, len(ingredients))
	for i, ing := range ingredients {
		names[i] = ing.Name
	}
	return names
}

func TestSearchByPrefix(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seedIngredient(t, db, "salt", "g")
	seedIngredient(t, db, "sugar", "g")
	seedIngredient(t, db, "sea salt", "g")
	seedIngredient(t, db, "flour", "g")

	found, err := db.IngredientRepo().SearchByPrefix(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, []string{"salt", "sea salt", "sugar"}, ingredientNames(found))

	found, err = db.IngredientRepo().SearchByPrefix(ctx, "sa")
	require.NoError(t, err)
	assert.Equal(t, []string{"salt"}, ingredientNames(found))

	// Prefix match only, never substring.
	found, err = db.IngredientRepo().SearchByPrefix(ctx, "alt")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestSearchByPrefixEmptyReturnsAll(t *testing.T) {
	db := newTestDB(t)

	seedIngredient(t, db, "salt", "g")
	seedIngredient(t, db, "flour", "g")

	found, err := db.IngredientRepo().SearchByPrefix(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"flour", "salt"}, ingredientNames(found))
}

func TestSearchByPrefixEscapesLikeMetacharacters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seedIngredient(t, db, "100% cocoa", "g")
	seedIngredient(t, db, "1000 island dressing", "ml")

	found, err := db.IngredientRepo().SearchByPrefix(ctx, "100%")
	require.NoError(t, err)
	assert.Equal(t, []string{"100% cocoa"}, ingredientNames(found))
}

func TestIngredientNameUnitPairIsUnique(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seedIngredient(t, db, "salt", "g")

	err := db.IngredientRepo().Add(ctx, &models.Ingredient{Name: "salt", MeasurementUnit: "g"})
	assert.Error(t, err)

	// Same name under a different unit is a distinct ingredient.
	err = db.IngredientRepo().Add(ctx, &models.Ingredient{Name: "salt", MeasurementUnit: "tbsp"})
	assert.NoError(t, err)
}

func TestFindByIDs(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	salt := seedIngredient(t, db, "salt", "g")
	sugar := seedIngredient(t, db, "sugar", "g")

	found, err := db.IngredientRepo().FindByIDs(ctx, []uuid.UUID{salt.ID, sugar.ID})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	// A missing ID shows up as a shorter result, which is how callers
	// detect dangling references.
	found, err = db.IngredientRepo().FindByIDs(ctx, []uuid.UUID{salt.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, found, 1)
}
