package database

import (
	"github.com/PlatonKara/foodgram-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	db *gorm.DB

	userRepo       *UserRepo
	tagRepo        *TagRepo
	ingredientRepo *IngredientRepo
	recipeRepo     *RecipeRepo
	relationRepo   *RelationRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:             db,
		userRepo:       NewUserRepo(db),
		tagRepo:        NewTagRepo(db),
		ingredientRepo: NewIngredientRepo(db),
		recipeRepo:     NewRecipeRepo(db),
		relationRepo:   NewRelationRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) IngredientRepo() *IngredientRepo {
	return d.ingredientRepo
}

func (d Database) RecipeRepo() *RecipeRepo {
	return d.recipeRepo
}

func (d Database) RelationRepo() *RelationRepo {
	return d.relationRepo
}

// Transaction runs fn against a Database bound to a single transaction.
// Any error returned by fn rolls the whole transaction back.
func (d Database) Transaction(fn func(tx Database) error) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// AutoMigrate creates or updates the schema for every entity.
func (d Database) AutoMigrate() error {
	return d.db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.UserRelation{},
	)
}
