package database

import (
	"context"
	"testing"
	"time"

	"github.com/PlatonKara/foodgram-backend/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelationAddAndExists(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	recipe := seedRecipe(t, db, alice, "pancakes", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))

	exists, err := db.RelationRepo().Exists(ctx, models.RelationFavorite, bob.ID, recipe.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	seedRelation(t, db, models.RelationFavorite, bob.ID, recipe.ID)

	exists, err = db.RelationRepo().Exists(ctx, models.RelationFavorite, bob.ID, recipe.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	// Kinds are independent dimensions of the same pair.
	exists, err = db.RelationRepo().Exists(ctx, models.RelationCart, bob.ID, recipe.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRelationUniqueIndexRejectsDuplicates(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	recipe := seedRecipe(t, db, alice, "pancakes", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))

	seedRelation(t, db, models.RelationFavorite, bob.ID, recipe.ID)

	err := db.RelationRepo().Add(ctx, &models.UserRelation{
		UserID:   bob.ID,
		TargetID: recipe.ID,
		Kind:     models.RelationFavorite,
	})
	assert.Error(t, err)
}

func TestRelationRemoveReportsRows(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	recipe := seedRecipe(t, db, alice, "pancakes", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))

	seedRelation(t, db, models.RelationCart, bob.ID, recipe.ID)

	rows, err := db.RelationRepo().Remove(ctx, models.RelationCart, bob.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = db.RelationRepo().Remove(ctx, models.RelationCart, bob.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}

func TestTargetIDs(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	pancakes := seedRecipe(t, db, alice, "pancakes", base)
	stew := seedRecipe(t, db, alice, "stew", base.Add(time.Hour))

	seedRelation(t, db, models.RelationFavorite, bob.ID, pancakes.ID)
	seedRelation(t, db, models.RelationFavorite, bob.ID, stew.ID)
	seedRelation(t, db, models.RelationCart, bob.ID, stew.ID)

	ids, err := db.RelationRepo().TargetIDs(ctx, models.RelationFavorite, bob.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{pancakes.ID, stew.ID}, ids)

	ids, err = db.RelationRepo().TargetIDs(ctx, models.RelationCart, bob.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{stew.ID}, ids)
}

func TestFindFollowedAuthors(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	follower := seedUser(t, db, "zoe")
	carol := seedUser(t, db, "carol")
	alice := seedUser(t, db, "alice")
	seedUser(t, db, "unfollowed")

	seedRelation(t, db, models.RelationSubscribe, follower.ID, carol.ID)
	seedRelation(t, db, models.RelationSubscribe, follower.ID, alice.ID)

	users, count, err := db.RelationRepo().FindFollowedAuthors(ctx, follower.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "carol", users[1].Username)

	users, count, err = db.RelationRepo().FindFollowedAuthors(ctx, follower.ID, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	require.Len(t, users, 1)
	assert.Equal(t, "carol", users[0].Username)
}
