package api

import (
	"github.com/PlatonKara/foodgram-backend/models"
	"github.com/PlatonKara/foodgram-backend/services"
	"github.com/google/uuid"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	recipeHandler     recipeHandler
	ingredientHandler ingredientHandler
	tagHandler        tagHandler
	userHandler       userHandler
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error  string `json:"error"`
	Status string `json:"status"`
	Field  string `json:"field,omitempty"`
}

// UserView is a user profile with the requester-specific subscription flag.
type UserView struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsSubscribed bool      `json:"is_subscribed"`
}

// IngredientInRecipeView flattens a link row with its ingredient.
type IngredientInRecipeView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	Amount          int       `json:"amount"`
}

// RecipeView is the full recipe representation for GET responses.
type RecipeView struct {
	ID               uuid.UUID                `json:"id"`
	Tags             []models.Tag             `json:"tags"`
	Author           UserView                 `json:"author"`
	Ingredients      []IngredientInRecipeView `json:"ingredients"`
	IsFavorited      bool                     `json:"is_favorited"`
	IsInShoppingCart bool                     `json:"is_in_shopping_cart"`
	Name             string                   `json:"name"`
	Image            string                   `json:"image"`
	Text             string                   `json:"text"`
	CookingTime      int                      `json:"cooking_time"`
}

// ShortRecipeView is the compact projection used by favorites, cart entries
// and subscription previews.
type ShortRecipeView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
}

// SubscriptionView is a followed author with a recipe preview.
type SubscriptionView struct {
	UserView
	Recipes      []ShortRecipeView `json:"recipes"`
	RecipesCount int64             `json:"recipes_count"`
}

func newUserView(user *models.User, isSubscribed bool) UserView {
	return UserView{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed,
	}
}

func newShortRecipeView(recipe *models.Recipe) ShortRecipeView {
	return ShortRecipeView{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}

// recipeFlags carries the requester-specific annotations for one recipe.
type recipeFlags struct {
	favorited      bool
	inCart         bool
	authorFollowed bool
}

func newRecipeView(recipe *models.Recipe, flags recipeFlags) RecipeView {
	ingredients := make([]IngredientInRecipeView, 0, len(recipe.Ingredients))
	for _, link := range recipe.Ingredients {
		ingredients = append(ingredients, IngredientInRecipeView{
			ID:              link.IngredientID,
			Name:            link.Ingredient.Name,
			MeasurementUnit: link.Ingredient.MeasurementUnit,
			Amount:          link.Amount,
		})
	}

	tags := recipe.Tags
	if tags == nil {
		tags = []models.Tag{}
	}

	return RecipeView{
		ID:               recipe.ID,
		Tags:             tags,
		Author:           newUserView(&recipe.Author, flags.authorFollowed),
		Ingredients:      ingredients,
		IsFavorited:      flags.favorited,
		IsInShoppingCart: flags.inCart,
		Name:             recipe.Name,
		Image:            recipe.Image,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
	}
}

func newSubscriptionView(preview *services.AuthorPreview) SubscriptionView {
	recipes := make([]ShortRecipeView, 0, len(preview.Recipes))
	for _, recipe := range preview.Recipes {
		recipes = append(recipes, newShortRecipeView(recipe))
	}
	return SubscriptionView{
		UserView:     newUserView(preview.User, true),
		Recipes:      recipes,
		RecipesCount: preview.RecipesCount,
	}
}

// idSet answers membership questions for requester annotation maps.
type idSet map[uuid.UUID]struct{}

func newIDSet(ids []uuid.UUID) idSet {
	set := make(idSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (s idSet) has(id uuid.UUID) bool {
	_, ok := s[id]
	return ok
}
