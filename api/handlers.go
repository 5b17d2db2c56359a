package api

import (
	"github.com/PlatonKara/foodgram-backend/database"
	"github.com/PlatonKara/foodgram-backend/services"
	"github.com/PlatonKara/foodgram-backend/storage"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, images storage.ImageStore, renderer services.ShoppingListRenderer) *routeHandlers {
	recipeService := services.NewRecipeService(db, images)
	relationService := services.NewRelationService(db)
	shoppingListService := services.NewShoppingListService(db)

	return &routeHandlers{
		recipeHandler: newRecipeHandler(
			recipeService,
			relationService,
			shoppingListService,
			renderer,
			db.RecipeRepo(),
			db.RelationRepo(),
		),
		ingredientHandler: newIngredientHandler(db.IngredientRepo()),
		tagHandler:        newTagHandler(db.TagRepo()),
		userHandler:       newUserHandler(relationService, db.UserRepo(), db.RelationRepo()),
	}
}
