package services

import (
	"context"
	"testing"

	"github.com/PlatonKara/foodgram-backend/errs"
	"github.com/PlatonKara/foodgram-backend/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelationAddFavorite(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	author := seedUser(t, db, "alice")
	fan := seedUser(t, db, "bob")
	recipe := seedRecipe(t, db, author, "pancakes")

	svc := NewRelationService(db)

	entry, err := svc.Add(ctx, models.RelationFavorite, fan.ID, recipe.ID)
	require.NoError(t, err)
	require.NotNil(t, entry.Recipe)
	assert.Equal(t, recipe.ID, entry.Recipe.ID)
	assert.Nil(t, entry.Author)

	related, err := svc.IsRelated(ctx, models.RelationFavorite, fan.ID, recipe.ID)
	require.NoError(t, err)
	assert.True(t, related)
}

func TestRelationAddTwiceIsConflict(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	author := seedUser(t, db, "alice")
	fan := seedUser(t, db, "bob")
	recipe := seedRecipe(t, db, author, "pancakes")

	svc := NewRelationService(db)

	_, err := svc.Add(ctx, models.RelationCart, fan.ID, recipe.ID)
	require.NoError(t, err)

	_, err = svc.Add(ctx, models.RelationCart, fan.ID, recipe.ID)
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))
}

func TestRelationAddMissingTarget(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	fan := seedUser(t, db, "bob")

	svc := NewRelationService(db)

	_, err := svc.Add(ctx, models.RelationFavorite, fan.ID, uuid.New())
	assert.True(t, errs.IsNotFound(err))

	_, err = svc.Add(ctx, models.RelationSubscribe, fan.ID, uuid.New())
	assert.True(t, errs.IsNotFound(err))
}

func TestRelationAddUnknownKind(t *testing.T) {
	db := newTestDB(t)
	fan := seedUser(t, db, "bob")

	svc := NewRelationService(db)

	_, err := svc.Add(context.Background(), models.RelationKind("like"), fan.ID, uuid.New())
	assert.Error(t, err)
}

func TestRelationRemove(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	author := seedUser(t, db, "alice")
	fan := seedUser(t, db, "bob")
	recipe := seedRecipe(t, db, author, "pancakes")

	svc := NewRelationService(db)

	_, err := svc.Add(ctx, models.RelationFavorite, fan.ID, recipe.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, models.RelationFavorite, fan.ID, recipe.ID))

	// Removing an absent pair is NotFound, not a silent no-op.
	err = svc.Remove(ctx, models.RelationFavorite, fan.ID, recipe.ID)
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestSubscribeToSelf(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")

	svc := NewRelationService(db)

	_, err := svc.Add(context.Background(), models.RelationSubscribe, user.ID, user.ID)
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

func TestSubscribeReturnsAuthorPreview(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	author := seedUser(t, db, "alice")
	follower := seedUser(t, db, "bob")
	seedRecipe(t, db, author, "pancakes")
	seedRecipe(t, db, author, "stew")

	svc := NewRelationService(db)

	entry, err := svc.Add(ctx, models.RelationSubscribe, follower.ID, author.ID)
	require.NoError(t, err)
	require.NotNil(t, entry.Author)
	assert.Equal(t, "alice", entry.Author.User.Username)
	assert.Equal(t, int64(2), entry.Author.RecipesCount)
	assert.Len(t, entry.Author.Recipes, 2)
	assert.Nil(t, entry.Recipe)
}

func TestIsRelatedAnonymous(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "alice")
	recipe := seedRecipe(t, db, author, "pancakes")

	svc := NewRelationService(db)

	related, err := svc.IsRelated(context.Background(), models.RelationFavorite, uuid.Nil, recipe.ID)
	require.NoError(t, err)
	assert.False(t, related)
}

func TestSubscriptionsCapsRecipePreview(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	author := seedUser(t, db, "alice")
	follower := seedUser(t, db, "bob")
	for _, name := range []string{"a", "b", "c"} {
		seedRecipe(t, db, author, name)
	}

	svc := NewRelationService(db)

	_, err := svc.Add(ctx, models.RelationSubscribe, follower.ID, author.ID)
	require.NoError(t, err)

	previews, count, err := svc.Subscriptions(ctx, follower.ID, 10, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, previews, 1)
	assert.Len(t, previews[0].Recipes, 2)
	// The count reflects everything published, not the capped preview.
	assert.Equal(t, int64(3), previews[0].RecipesCount)

	previews, _, err = svc.Subscriptions(ctx, follower.ID, 10, 0, 0)
	require.NoError(t, err)
	require.Len(t, previews, 1)
	assert.Len(t, previews[0].Recipes, 3)
}
