package api

import (
	"net/http"
	"strconv"

	"github.com/PlatonKara/foodgram-backend/database"
	"github.com/PlatonKara/foodgram-backend/errs"
	"github.com/PlatonKara/foodgram-backend/models"
	"github.com/PlatonKara/foodgram-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type userHandler struct {
	responder    Responder
	logger       zerolog.Logger
	relations    *services.RelationService
	userRepo     *database.UserRepo
	relationRepo *database.RelationRepo
}

func newUserHandler(relations *services.RelationService, userRepo *database.UserRepo, relationRepo *database.RelationRepo) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		relations:    relations,
		userRepo:     userRepo,
		relationRepo: relationRepo,
	}
}

func (h userHandler) listUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, limit := pageParams(r)
		users, count, err := h.userRepo.FindPage(r.Context(), limit, (page-1)*limit)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "users", err))
			return
		}

		follows := idSet{}
		if requesterID, authenticated := ctxGetUserID(r.Context()); authenticated {
			followIDs, err := h.relationRepo.TargetIDs(r.Context(), models.RelationSubscribe, requesterID)
			if err != nil {
				h.responder.WriteError(w, errs.NewDatabaseError("find", "subscriptions", err))
				return
			}
			follows = newIDSet(followIDs)
		}

		views := make([]UserView, 0, len(users))
		for _, user := range users {
			views = append(views, newUserView(user, follows.has(user.ID)))
		}

		h.responder.WriteJSON(w, http.StatusOK, newPage(r, count, page, limit, views))
	}
}

func (h userHandler) getUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := parseIDParam(r, "userID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.userRepo.FindByID(r.Context(), userID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "user", err))
			return
		}

		isSubscribed := false
		if requesterID, authenticated := ctxGetUserID(r.Context()); authenticated {
			isSubscribed, err = h.relations.IsRelated(r.Context(), models.RelationSubscribe, requesterID, user.ID)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
		}

		h.responder.WriteJSON(w, http.StatusOK, newUserView(user, isSubscribed))
	}
}

func (h userHandler) getMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requesterID, _ := ctxGetUserID(r.Context())

		user, err := h.userRepo.FindByID(r.Context(), requesterID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "user", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, newUserView(user, false))
	}
}

// listSubscriptions returns the authors the requester follows, each with a
// recipe preview capped by `recipes_limit`. Non-numeric limits are ignored.
func (h userHandler) listSubscriptions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requesterID, _ := ctxGetUserID(r.Context())

		recipesLimit := 0
		if raw := r.URL.Query().Get("recipes_limit"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
				recipesLimit = parsed
			}
		}

		page, limit := pageParams(r)
		previews, count, err := h.relations.Subscriptions(r.Context(), requesterID, limit, (page-1)*limit, recipesLimit)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		views := make([]SubscriptionView, 0, len(previews))
		for _, preview := range previews {
			views = append(views, newSubscriptionView(preview))
		}

		h.responder.WriteJSON(w, http.StatusOK, newPage(r, count, page, limit, views))
	}
}

func (h userHandler) toggleSubscription() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requesterID, _ := ctxGetUserID(r.Context())

		authorID, err := parseIDParam(r, "userID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if r.Method == http.MethodDelete {
			if err := h.relations.Remove(r.Context(), models.RelationSubscribe, requesterID, authorID); err != nil {
				h.responder.WriteError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}

		entry, err := h.relations.Add(r.Context(), models.RelationSubscribe, requesterID, authorID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, http.StatusCreated, newSubscriptionView(entry.Author))
	}
}
