package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/PlatonKara/foodgram-backend/database"
	"github.com/PlatonKara/foodgram-backend/errs"
	"github.com/PlatonKara/foodgram-backend/models"
	"github.com/PlatonKara/foodgram-backend/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type recipeHandler struct {
	responder    Responder
	logger       zerolog.Logger
	validate     *validator.Validate
	recipes      *services.RecipeService
	relations    *services.RelationService
	shoppingList *services.ShoppingListService
	renderer     services.ShoppingListRenderer
	recipeRepo   *database.RecipeRepo
	relationRepo *database.RelationRepo
}

func newRecipeHandler(
	recipes *services.RecipeService,
	relations *services.RelationService,
	shoppingList *services.ShoppingListService,
	renderer services.ShoppingListRenderer,
	recipeRepo *database.RecipeRepo,
	relationRepo *database.RelationRepo,
) recipeHandler {
	logger := log.With().Str("handlerName", "recipeHandler").Logger()

	return recipeHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		validate:     validator.New(),
		recipes:      recipes,
		relations:    relations,
		shoppingList: shoppingList,
		renderer:     renderer,
		recipeRepo:   recipeRepo,
		relationRepo: relationRepo,
	}
}

// listRecipes returns a filtered, paginated recipe listing. The favorite and
// cart filters only apply for authenticated requesters; anonymous requests
// carrying them get an unfiltered listing.
func (h recipeHandler) listRecipes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requesterID, authenticated := ctxGetUserID(r.Context())

		var filter database.RecipeFilter
		query := r.URL.Query()

		if slugs := query["tags"]; len(slugs) > 0 {
			filter.TagSlugs = slugs
		}
		if author := query.Get("author"); author != "" {
			authorID, err := uuid.Parse(author)
			if err != nil {
				h.responder.WriteError(w, errs.NewBadRequestError("invalid author id"))
				return
			}
			filter.AuthorID = &authorID
		}
		if authenticated {
			if query.Get("is_favorited") == "1" {
				filter.FavoritedBy = &requesterID
			}
			if query.Get("is_in_shopping_cart") == "1" {
				filter.InCartOf = &requesterID
			}
		}

		page, limit := pageParams(r)
		recipes, count, err := h.recipeRepo.FindPage(r.Context(), filter, limit, (page-1)*limit)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "recipes", err))
			return
		}

		favorites, carts, follows, err := h.requesterSets(r, requesterID, authenticated)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		views := make([]RecipeView, 0, len(recipes))
		for _, recipe := range recipes {
			views = append(views, newRecipeView(recipe, recipeFlags{
				favorited:      favorites.has(recipe.ID),
				inCart:         carts.has(recipe.ID),
				authorFollowed: follows.has(recipe.AuthorID),
			}))
		}

		h.responder.WriteJSON(w, http.StatusOK, newPage(r, count, page, limit, views))
	}
}

func (h recipeHandler) getRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recipeID, err := parseIDParam(r, "recipeID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		recipe, err := h.recipeRepo.FindByID(r.Context(), recipeID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "recipe", err))
			return
		}

		requesterID, authenticated := ctxGetUserID(r.Context())
		favorites, carts, follows, err := h.requesterSets(r, requesterID, authenticated)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, newRecipeView(recipe, recipeFlags{
			favorited:      favorites.has(recipe.ID),
			inCart:         carts.has(recipe.ID),
			authorFollowed: follows.has(recipe.AuthorID),
		}))
	}
}

func (h recipeHandler) createRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, _ := ctxGetUserID(r.Context())

		input, err := h.decodeInput(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		recipe, err := h.recipes.Create(r.Context(), authorID, input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, http.StatusCreated, newRecipeView(recipe, recipeFlags{}))
	}
}

func (h recipeHandler) updateRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, _ := ctxGetUserID(r.Context())

		recipeID, err := parseIDParam(r, "recipeID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		input, err := h.decodeInput(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		recipe, err := h.recipes.Update(r.Context(), recipeID, actorID, input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		favorited, _ := h.relations.IsRelated(r.Context(), models.RelationFavorite, actorID, recipe.ID)
		inCart, _ := h.relations.IsRelated(r.Context(), models.RelationCart, actorID, recipe.ID)

		h.responder.WriteJSON(w, http.StatusOK, newRecipeView(recipe, recipeFlags{
			favorited: favorited,
			inCart:    inCart,
		}))
	}
}

func (h recipeHandler) deleteRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, _ := ctxGetUserID(r.Context())

		recipeID, err := parseIDParam(r, "recipeID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.recipes.Delete(r.Context(), recipeID, actorID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// toggleRelation serves POST/DELETE for both the favorite and shopping_cart
// actions; the kind is fixed per route.
func (h recipeHandler) toggleRelation(kind models.RelationKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := ctxGetUserID(r.Context())

		recipeID, err := parseIDParam(r, "recipeID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if r.Method == http.MethodDelete {
			if err := h.relations.Remove(r.Context(), kind, userID, recipeID); err != nil {
				h.responder.WriteError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}

		entry, err := h.relations.Add(r.Context(), kind, userID, recipeID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, http.StatusCreated, newShortRecipeView(entry.Recipe))
	}
}

// downloadShoppingCart aggregates the requester's cart and streams the
// rendered document. An empty cart is an error, not an empty file.
func (h recipeHandler) downloadShoppingCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := ctxGetUserID(r.Context())

		items, err := h.shoppingList.Build(r.Context(), userID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		document, err := h.renderer.Render(items)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to render shopping list", err))
			return
		}

		w.Header().Set("Content-Type", h.renderer.ContentType())
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.renderer.Filename()))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(document); err != nil {
			h.logger.Error().Err(err).Msg("error writing shopping list document")
		}
	}
}

// requesterSets loads the requester's favorite/cart/subscription target sets
// in three queries so listing annotation stays O(1) per row.
func (h recipeHandler) requesterSets(r *http.Request, requesterID uuid.UUID, authenticated bool) (favorites, carts, follows idSet, err error) {
	if !authenticated {
		return idSet{}, idSet{}, idSet{}, nil
	}

	favoriteIDs, err := h.relationRepo.TargetIDs(r.Context(), models.RelationFavorite, requesterID)
	if err != nil {
		return nil, nil, nil, errs.NewDatabaseError("find", "favorites", err)
	}
	cartIDs, err := h.relationRepo.TargetIDs(r.Context(), models.RelationCart, requesterID)
	if err != nil {
		return nil, nil, nil, errs.NewDatabaseError("find", "cart entries", err)
	}
	followIDs, err := h.relationRepo.TargetIDs(r.Context(), models.RelationSubscribe, requesterID)
	if err != nil {
		return nil, nil, nil, errs.NewDatabaseError("find", "subscriptions", err)
	}
	return newIDSet(favoriteIDs), newIDSet(cartIDs), newIDSet(followIDs), nil
}

func (h recipeHandler) decodeInput(r *http.Request) (services.RecipeInput, error) {
	var input services.RecipeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Error().Err(err).Msg("Failed to decode recipe request body")
		return input, errs.NewBadRequestError("malformed request body")
	}

	if err := h.validate.Struct(input); err != nil {
		var invalid validator.ValidationErrors
		if ok := errors.As(err, &invalid); ok && len(invalid) > 0 {
			field := strings.ToLower(invalid[0].Field())
			return input, errs.NewValidationError(field, "missing or invalid value")
		}
		return input, errs.NewBadRequestError("invalid recipe payload")
	}
	return input, nil
}

func parseIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return uuid.Nil, errs.NewBadRequestError("missing " + name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid " + name)
	}
	return id, nil
}
