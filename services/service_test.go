package services

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/PlatonKara/foodgram-backend/database"
	"github.com/PlatonKara/foodgram-backend/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) database.Database {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	db := database.New(gdb)
	require.NoError(t, db.AutoMigrate())
	return db
}

// memImageStore keeps stored blobs in memory so recipe tests never touch disk.
type memImageStore struct {
	saved map[string][]byte
}

func newMemImageStore() *memImageStore {
	return &memImageStore{saved: make(map[string][]byte)}
}

func (m *memImageStore) Save(_ context.Context, name string, data []byte, _ string) (string, error) {
	m.saved[name] = data
	return "mem://" + name, nil
}

func seedUser(t *testing.T, db database.Database, username string) *models.User {
	t.Helper()
	user := &models.User{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
	}
	require.NoError(t, db.UserRepo().Add(context.Background(), user))
	return user
}

func seedTag(t *testing.T, db database.Database, name string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: name, Color: "#" + name, Slug: name}
	require.NoError(t, db.TagRepo().Add(context.Background(), tag))
	return tag
}

func seedIngredient(t *testing.T, db database.Database, name, unit string) *models.Ingredient {
	t.Helper()
	ingredient := &models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, db.IngredientRepo().Add(context.Background(), ingredient))
	return ingredient
}

func seedRecipe(t *testing.T, db database.Database, author *models.User, name string) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		Name:        name,
		Text:        "steps for " + name,
		Image:       "recipes/" + name + ".png",
		CookingTime: 10,
		PubDate:     time.Now().UTC(),
		AuthorID:    author.ID,
	}
	require.NoError(t, db.RecipeRepo().Add(context.Background(), recipe))
	return recipe
}

var testImagePayload = "data:image/png;base64," +
	base64.StdEncoding.EncodeToString([]byte("not a real png, nobody decodes it here"))
