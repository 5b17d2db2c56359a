package database

import (
	"context"

	"github.com/PlatonKara/foodgram-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IngredientRepo struct {
	db *gorm.DB
}

func NewIngredientRepo(db *gorm.DB) *IngredientRepo {
	return &IngredientRepo{db}
}

// FindAll returns all ingredients ordered by name.
func (r *IngredientRepo) FindAll(ctx context.Context) ([]*models.Ingredient, error) {
	var ingredients []*models.Ingredient
	err := r.db.WithContext(ctx).Order("name").Find(&ingredients).Error
	return ingredients, err
}

// SearchByPrefix returns ingredients whose name starts with the given prefix,
// ordered by name. An empty prefix returns everything.
func (r *IngredientRepo) SearchByPrefix(ctx context.Context, prefix string) ([]*models.Ingredient, error) {
	if prefix == "" {
		return r.FindAll(ctx)
	}

	var ingredients []*models.Ingredient
	err := r.db.WithContext(ctx).
		Where("name LIKE ? ESCAPE '\\'", escapeLike(prefix)+"%").
		Order("name").
		Find(&ingredients).Error
	return ingredients, err
}

// FindByID returns an ingredient by its ID
func (r *IngredientRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := r.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// FindByIDs returns the ingredients matching the given IDs. Callers compare
// lengths to detect references to missing ingredients.
func (r *IngredientRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ingredients).Error
	return ingredients, err
}

// Add inserts a new ingredient into the database
func (r *IngredientRepo) Add(ctx context.Context, ingredient *models.Ingredient) error {
	return r.db.WithContext(ctx).Create(ingredient).Error
}

// escapeLike neutralizes LIKE metacharacters in user-supplied prefixes.
func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
