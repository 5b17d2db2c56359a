package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe is an authored recipe. Tags are a plain many-to-many; ingredients go
// through RecipeIngredient so each link carries an amount. A recipe and its
// link rows live and die together (see services.RecipeService).
type Recipe struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name        string    `json:"name" db:"name" gorm:"type:text;not null"`
	Text        string    `json:"text" db:"text" gorm:"type:text;not null"`
	Image       string    `json:"image" db:"image" gorm:"type:text;not null"`
	CookingTime int       `json:"cooking_time" db:"cooking_time" gorm:"not null"`
	PubDate     time.Time `json:"pub_date" db:"pub_date" gorm:"not null;autoCreateTime;index"`
	AuthorID    uuid.UUID `json:"author_id" db:"author_id" gorm:"type:uuid;not null;index"`

	Author      User               `json:"-" gorm:"foreignKey:AuthorID;references:ID"`
	Tags        []Tag              `json:"tags,omitempty" gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Ingredients []RecipeIngredient `json:"ingredients,omitempty" gorm:"foreignKey:RecipeID;references:ID;constraint:OnDelete:CASCADE"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeIngredient is the join row carrying the quantity of one ingredient
// within one recipe. One row per (recipe, ingredient) pair.
type RecipeIngredient struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	RecipeID     uuid.UUID `json:"recipe_id" db:"recipe_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_recipe_ingredient"`
	IngredientID uuid.UUID `json:"ingredient_id" db:"ingredient_id" gorm:"type:uuid;not null;uniqueIndex:idx_recipe_ingredient"`
	Amount       int       `json:"amount" db:"amount" gorm:"not null"`

	Ingredient Ingredient `json:"ingredient,omitempty" gorm:"foreignKey:IngredientID;references:ID;constraint:OnDelete:CASCADE"`
}

func (ri *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}
