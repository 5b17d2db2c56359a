package database

import (
	"context"

	"github.com/PlatonKara/foodgram-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipeFilter narrows a recipe listing. Nil pointer fields are inactive.
// TagSlugs is a union: a recipe matches when it carries ANY of the slugs.
type RecipeFilter struct {
	TagSlugs    []string
	AuthorID    *uuid.UUID
	FavoritedBy *uuid.UUID
	InCartOf    *uuid.UUID
}

// ShoppingListRow is one aggregated line of a user's shopping list.
type ShoppingListRow struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Total           int    `json:"total"`
}

type RecipeRepo struct {
	db *gorm.DB
}

func NewRecipeRepo(db *gorm.DB) *RecipeRepo {
	return &RecipeRepo{db}
}

// FindByID returns a recipe with its author, tags and quantified ingredients.
func (r *RecipeRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		First(&recipe, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// FindPage returns one page of recipes matching the filter, newest first,
// plus the total match count for the pagination envelope.
func (r *RecipeRepo) FindPage(ctx context.Context, filter RecipeFilter, limit, offset int) ([]*models.Recipe, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Recipe{})

	if len(filter.TagSlugs) > 0 {
		// Subquery keeps the result set free of join duplicates when a
		// recipe matches more than one slug.
		tagged := r.db.Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs)
		query = query.Where("recipes.id IN (?)", tagged)
	}
	if filter.AuthorID != nil {
		query = query.Where("recipes.author_id = ?", *filter.AuthorID)
	}
	if filter.FavoritedBy != nil {
		query = query.Where("recipes.id IN (?)", r.relationTargets(*filter.FavoritedBy, models.RelationFavorite))
	}
	if filter.InCartOf != nil {
		query = query.Where("recipes.id IN (?)", r.relationTargets(*filter.InCartOf, models.RelationCart))
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var recipes []*models.Recipe
	err := query.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Order("pub_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&recipes).Error
	return recipes, count, err
}

func (r *RecipeRepo) relationTargets(userID uuid.UUID, kind models.RelationKind) *gorm.DB {
	return r.db.Table("user_relations").
		Select("user_relations.target_id").
		Where("user_relations.user_id = ? AND user_relations.kind = ?", userID, kind)
}

// FindByAuthor returns an author's recipes, newest first, optionally capped.
// A non-positive limit means unlimited.
func (r *RecipeRepo) FindByAuthor(ctx context.Context, authorID uuid.UUID, limit int) ([]*models.Recipe, error) {
	query := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("pub_date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var recipes []*models.Recipe
	err := query.Find(&recipes).Error
	return recipes, err
}

// CountByAuthor returns how many recipes an author has published.
func (r *RecipeRepo) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}

// Add inserts a new recipe row. Associations are written separately so the
// authoring service controls the transaction boundary.
func (r *RecipeRepo) Add(ctx context.Context, recipe *models.Recipe) error {
	return r.db.WithContext(ctx).Omit("Tags", "Ingredients", "Author").Create(recipe).Error
}

// UpdateFields persists the mutable scalar columns of an existing recipe.
func (r *RecipeRepo) UpdateFields(ctx context.Context, recipe *models.Recipe) error {
	return r.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("id = ?", recipe.ID).
		Updates(map[string]any{
			"name":         recipe.Name,
			"text":         recipe.Text,
			"image":        recipe.Image,
			"cooking_time": recipe.CookingTime,
		}).Error
}

// ReplaceTags swaps the recipe's tag set wholesale.
func (r *RecipeRepo) ReplaceTags(ctx context.Context, recipe *models.Recipe, tags []models.Tag) error {
	return r.db.WithContext(ctx).Model(recipe).Association("Tags").Replace(tags)
}

// ReplaceIngredientLinks deletes every link row of the recipe and recreates
// the given set. Delete-then-create keeps update semantics identical to
// create semantics.
func (r *RecipeRepo) ReplaceIngredientLinks(ctx context.Context, recipeID uuid.UUID, links []models.RecipeIngredient) error {
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Delete(&models.RecipeIngredient{}).Error; err != nil {
		return err
	}
	if len(links) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&links).Error
}

// Delete removes a recipe and, through its cascades and an explicit sweep of
// the generic relation rows, everything hanging off it.
func (r *RecipeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("target_id = ? AND kind IN ?", id,
			[]models.RelationKind{models.RelationFavorite, models.RelationCart}).
			Delete(&models.UserRelation{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, "id = ?", id).Error
	})
}

// AggregateCart sums ingredient amounts across every recipe in the user's
// cart, grouped by (name, unit), ordered alphabetically.
func (r *RecipeRepo) AggregateCart(ctx context.Context, userID uuid.UUID) ([]ShoppingListRow, error) {
	var rows []ShoppingListRow
	err := r.db.WithContext(ctx).
		Table("recipe_ingredients").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN user_relations ON user_relations.target_id = recipe_ingredients.recipe_id").
		Where("user_relations.user_id = ? AND user_relations.kind = ?", userID, models.RelationCart).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name").
		Scan(&rows).Error
	return rows, err
}
