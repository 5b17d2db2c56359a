package api

import (
	"net/http"

	"github.com/PlatonKara/foodgram-backend/models"
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the API surface. Read endpoints take optional identity
// (personalization flags); mutations require it.
func setupRoutes(r chi.Router, handlers *routeHandlers, auth authMiddleware) {
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Reference data, no identity needed
		r.Get("/tags", handlers.tagHandler.listTags())
		r.Get("/tags/{tagID}", handlers.tagHandler.getTag())
		r.Get("/ingredients", handlers.ingredientHandler.listIngredients())
		r.Get("/ingredients/{ingredientID}", handlers.ingredientHandler.getIngredient())

		// Reads with optional identity
		r.Group(func(r chi.Router) {
			r.Use(auth.identify)

			r.Get("/recipes", handlers.recipeHandler.listRecipes())
			r.Get("/recipes/{recipeID}", handlers.recipeHandler.getRecipe())
			r.Get("/users", handlers.userHandler.listUsers())
			r.Get("/users/{userID}", handlers.userHandler.getUser())
		})

		// Mutations and personal views, identity required
		r.Group(func(r chi.Router) {
			r.Use(auth.authenticate)

			r.Post("/recipes", handlers.recipeHandler.createRecipe())
			r.Put("/recipes/{recipeID}", handlers.recipeHandler.updateRecipe())
			r.Patch("/recipes/{recipeID}", handlers.recipeHandler.updateRecipe())
			r.Delete("/recipes/{recipeID}", handlers.recipeHandler.deleteRecipe())

			r.Post("/recipes/{recipeID}/favorite", handlers.recipeHandler.toggleRelation(models.RelationFavorite))
			r.Delete("/recipes/{recipeID}/favorite", handlers.recipeHandler.toggleRelation(models.RelationFavorite))
			r.Post("/recipes/{recipeID}/shopping_cart", handlers.recipeHandler.toggleRelation(models.RelationCart))
			r.Delete("/recipes/{recipeID}/shopping_cart", handlers.recipeHandler.toggleRelation(models.RelationCart))
			r.Get("/recipes/download_shopping_cart", handlers.recipeHandler.downloadShoppingCart())

			r.Get("/users/me", handlers.userHandler.getMe())
			r.Get("/users/subscriptions", handlers.userHandler.listSubscriptions())
			r.Post("/users/{userID}/subscribe", handlers.userHandler.toggleSubscription())
			r.Delete("/users/{userID}/subscribe", handlers.userHandler.toggleSubscription())
		})
	})
}
