package services

import (
	"context"
	"fmt"

	"github.com/PlatonKara/foodgram-backend/database"
	"github.com/PlatonKara/foodgram-backend/errs"
	"github.com/PlatonKara/foodgram-backend/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RelationEntry is the representation of a created toggle row. Recipe is set
// for favorite/cart relations; Author for subscriptions.
type RelationEntry struct {
	Relation *models.UserRelation
	Recipe   *models.Recipe
	Author   *AuthorPreview
}

// AuthorPreview is a followed author's profile together with a capped recipe
// preview and the total number of recipes they have published.
type AuthorPreview struct {
	User         *models.User
	Recipes      []*models.Recipe
	RecipesCount int64
}

// RelationService implements the add/remove semantics shared by favorites,
// cart membership and subscriptions. One service, parameterized by kind,
// instead of three near-identical ones.
type RelationService struct {
	db     database.Database
	logger zerolog.Logger
}

func NewRelationService(db database.Database) *RelationService {
	return &RelationService{
		db:     db,
		logger: log.With().Str("serviceName", "relationService").Logger(),
	}
}

// Add creates the (user, target) row for the given kind. An existing pair is
// a conflict; subscribing to yourself is a validation error. The returned
// entry carries the projection the contract expects for each kind.
func (s *RelationService) Add(ctx context.Context, kind models.RelationKind, userID, targetID uuid.UUID) (*RelationEntry, error) {
	if !kind.Valid() {
		return nil, errs.NewBadRequestError("unknown relation kind")
	}

	entry := &RelationEntry{}

	switch kind {
	case models.RelationSubscribe:
		if userID == targetID {
			return nil, errs.NewValidationError("author", "subscribing to yourself is not allowed")
		}
		author, err := s.db.UserRepo().FindByID(ctx, targetID)
		if err != nil {
			return nil, errs.NewDatabaseError("find", "user", err)
		}
		preview, err := s.authorPreview(ctx, author, 0)
		if err != nil {
			return nil, err
		}
		entry.Author = preview
	default:
		recipe, err := s.db.RecipeRepo().FindByID(ctx, targetID)
		if err != nil {
			return nil, errs.NewDatabaseError("find", "recipe", err)
		}
		entry.Recipe = recipe
	}

	exists, err := s.db.RelationRepo().Exists(ctx, kind, userID, targetID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", string(kind), err)
	}
	if exists {
		return nil, errs.NewConflictError(fmt.Sprintf("%s entry already exists", kind))
	}

	relation := &models.UserRelation{
		UserID:   userID,
		TargetID: targetID,
		Kind:     kind,
	}
	if err := s.db.RelationRepo().Add(ctx, relation); err != nil {
		// A concurrent add races past the Exists check and trips the
		// unique index; NewDatabaseError surfaces that as Conflict.
		return nil, errs.NewDatabaseError("create", string(kind), err)
	}
	entry.Relation = relation

	s.logger.Info().
		Str("kind", string(kind)).
		Str("userID", userID.String()).
		Str("targetID", targetID.String()).
		Msg("relation added")

	return entry, nil
}

// Remove deletes the (user, target) row for the given kind. A missing pair is
// NotFound.
func (s *RelationService) Remove(ctx context.Context, kind models.RelationKind, userID, targetID uuid.UUID) error {
	if !kind.Valid() {
		return errs.NewBadRequestError("unknown relation kind")
	}

	rows, err := s.db.RelationRepo().Remove(ctx, kind, userID, targetID)
	if err != nil {
		return errs.NewDatabaseError("delete", string(kind), err)
	}
	if rows == 0 {
		return errs.NewNotFoundError(fmt.Sprintf("%s entry", kind))
	}

	s.logger.Info().
		Str("kind", string(kind)).
		Str("userID", userID.String()).
		Str("targetID", targetID.String()).
		Msg("relation removed")

	return nil
}

// IsRelated reports whether the user holds the relation. Anonymous callers
// (userID == uuid.Nil) are never related to anything.
func (s *RelationService) IsRelated(ctx context.Context, kind models.RelationKind, userID, targetID uuid.UUID) (bool, error) {
	if userID == uuid.Nil {
		return false, nil
	}
	return s.db.RelationRepo().Exists(ctx, kind, userID, targetID)
}

// Subscriptions returns one page of the authors the user follows, each with
// a recipe preview capped at recipesLimit (non-positive means unlimited) and
// their published-recipe count.
func (s *RelationService) Subscriptions(ctx context.Context, userID uuid.UUID, limit, offset, recipesLimit int) ([]*AuthorPreview, int64, error) {
	authors, count, err := s.db.RelationRepo().FindFollowedAuthors(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, errs.NewDatabaseError("find", "subscriptions", err)
	}

	previews := make([]*AuthorPreview, 0, len(authors))
	for _, author := range authors {
		preview, err := s.authorPreview(ctx, author, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		previews = append(previews, preview)
	}
	return previews, count, nil
}

func (s *RelationService) authorPreview(ctx context.Context, author *models.User, recipesLimit int) (*AuthorPreview, error) {
	recipes, err := s.db.RecipeRepo().FindByAuthor(ctx, author.ID, recipesLimit)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "recipes", err)
	}
	count, err := s.db.RecipeRepo().CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, errs.NewDatabaseError("count", "recipes", err)
	}
	return &AuthorPreview{User: author, Recipes: recipes, RecipesCount: count}, nil
}
