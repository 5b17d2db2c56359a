package api

import (
	"net/http"

	"github.com/PlatonKara/foodgram-backend/database"
	"github.com/PlatonKara/foodgram-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type ingredientHandler struct {
	responder      Responder
	logger         zerolog.Logger
	ingredientRepo *database.IngredientRepo
}

func newIngredientHandler(ingredientRepo *database.IngredientRepo) ingredientHandler {
	logger := log.With().Str("handlerName", "ingredientHandler").Logger()

	return ingredientHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		ingredientRepo: ingredientRepo,
	}
}

// listIngredients serves the lookup endpoint: `name` is a starts-with match.
// The ingredient list is reference data and goes out unpaginated.
func (h ingredientHandler) listIngredients() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ingredients, err := h.ingredientRepo.SearchByPrefix(r.Context(), r.URL.Query().Get("name"))
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "ingredients", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, ingredients)
	}
}

func (h ingredientHandler) getIngredient() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ingredientID, err := parseIDParam(r, "ingredientID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		ingredient, err := h.ingredientRepo.FindByID(r.Context(), ingredientID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "ingredient", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, ingredient)
	}
}
