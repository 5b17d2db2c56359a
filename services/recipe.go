package services

import (
	"context"
	"fmt"

	"github.com/PlatonKara/foodgram-backend/database"
	"github.com/PlatonKara/foodgram-backend/errs"
	"github.com/PlatonKara/foodgram-backend/models"
	"github.com/PlatonKara/foodgram-backend/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// IngredientEntry references an existing ingredient with the amount used.
type IngredientEntry struct {
	ID     uuid.UUID `json:"id" validate:"required"`
	Amount int       `json:"amount" validate:"required"`
}

// RecipeInput is a recipe submission. Image carries the base64 payload
// (optionally a data URI); on update an empty image keeps the stored one.
type RecipeInput struct {
	Name        string            `json:"name" validate:"required,max=200"`
	Text        string            `json:"text" validate:"required"`
	Image       string            `json:"image"`
	CookingTime int               `json:"cooking_time"`
	Ingredients []IngredientEntry `json:"ingredients"`
	Tags        []uuid.UUID       `json:"tags"`
}

// RecipeService validates and persists a recipe together with its tag and
// ingredient associations as one atomic unit.
type RecipeService struct {
	db     database.Database
	images storage.ImageStore
	logger zerolog.Logger
}

func NewRecipeService(db database.Database, images storage.ImageStore) *RecipeService {
	return &RecipeService{
		db:     db,
		images: images,
		logger: log.With().Str("serviceName", "recipeService").Logger(),
	}
}

// Create validates the submission, stores the image, and writes the recipe
// row plus its associations inside one transaction. The author is the acting
// identity and never changes afterwards.
func (s *RecipeService) Create(ctx context.Context, authorID uuid.UUID, input RecipeInput) (*models.Recipe, error) {
	if err := s.validate(ctx, input, true); err != nil {
		return nil, err
	}

	imageRef, err := s.storeImage(ctx, input.Image)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		Name:        input.Name,
		Text:        input.Text,
		Image:       imageRef,
		CookingTime: input.CookingTime,
		AuthorID:    authorID,
	}

	err = s.db.Transaction(func(tx database.Database) error {
		if err := tx.RecipeRepo().Add(ctx, recipe); err != nil {
			return errs.NewDatabaseError("create", "recipe", err)
		}
		return s.writeAssociations(ctx, tx, recipe, input)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("recipeID", recipe.ID.String()).
		Str("authorID", authorID.String()).
		Msg("recipe created")

	return s.db.RecipeRepo().FindByID(ctx, recipe.ID)
}

// Update rewrites the recipe's fields and replaces its tag set and ingredient
// link rows wholesale, all inside one transaction. Only the author may update.
func (s *RecipeService) Update(ctx context.Context, recipeID, actorID uuid.UUID, input RecipeInput) (*models.Recipe, error) {
	recipe, err := s.db.RecipeRepo().FindByID(ctx, recipeID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "recipe", err)
	}
	if recipe.AuthorID != actorID {
		return nil, errs.NewForbiddenError("only the author can modify a recipe")
	}

	if err := s.validate(ctx, input, false); err != nil {
		return nil, err
	}

	imageRef := recipe.Image
	if input.Image != "" {
		imageRef, err = s.storeImage(ctx, input.Image)
		if err != nil {
			return nil, err
		}
	}

	recipe.Name = input.Name
	recipe.Text = input.Text
	recipe.Image = imageRef
	recipe.CookingTime = input.CookingTime

	err = s.db.Transaction(func(tx database.Database) error {
		if err := tx.RecipeRepo().UpdateFields(ctx, recipe); err != nil {
			return errs.NewDatabaseError("update", "recipe", err)
		}
		return s.writeAssociations(ctx, tx, recipe, input)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("recipeID", recipe.ID.String()).Msg("recipe updated")

	return s.db.RecipeRepo().FindByID(ctx, recipe.ID)
}

// Delete removes the recipe and its dependent rows. Only the author may delete.
func (s *RecipeService) Delete(ctx context.Context, recipeID, actorID uuid.UUID) error {
	recipe, err := s.db.RecipeRepo().FindByID(ctx, recipeID)
	if err != nil {
		return errs.NewDatabaseError("find", "recipe", err)
	}
	if recipe.AuthorID != actorID {
		return errs.NewForbiddenError("only the author can delete a recipe")
	}

	if err := s.db.RecipeRepo().Delete(ctx, recipeID); err != nil {
		return errs.NewDatabaseError("delete", "recipe", err)
	}

	s.logger.Info().Str("recipeID", recipeID.String()).Msg("recipe deleted")
	return nil
}

// validate runs the submission checks in contract order, reporting the first
// failure keyed by the field that failed.
func (s *RecipeService) validate(ctx context.Context, input RecipeInput, requireImage bool) error {
	if len(input.Ingredients) == 0 {
		return errs.NewValidationError("ingredients", "at least one ingredient is required")
	}
	ingredientIDs := make([]uuid.UUID, 0, len(input.Ingredients))
	seen := make(map[uuid.UUID]struct{}, len(input.Ingredients))
	for _, entry := range input.Ingredients {
		if _, ok := seen[entry.ID]; ok {
			return errs.NewValidationError("ingredients", "ingredients must not repeat")
		}
		seen[entry.ID] = struct{}{}
		ingredientIDs = append(ingredientIDs, entry.ID)
	}
	found, err := s.db.IngredientRepo().FindByIDs(ctx, ingredientIDs)
	if err != nil {
		return errs.NewDatabaseError("find", "ingredients", err)
	}
	if len(found) != len(ingredientIDs) {
		return errs.NewValidationError("ingredients", "one or more ingredients do not exist")
	}

	if len(input.Tags) == 0 {
		return errs.NewValidationError("tags", "at least one tag is required")
	}
	seenTags := make(map[uuid.UUID]struct{}, len(input.Tags))
	for _, id := range input.Tags {
		if _, ok := seenTags[id]; ok {
			return errs.NewValidationError("tags", "tags must not repeat")
		}
		seenTags[id] = struct{}{}
	}
	foundTags, err := s.db.TagRepo().FindByIDs(ctx, input.Tags)
	if err != nil {
		return errs.NewDatabaseError("find", "tags", err)
	}
	if len(foundTags) != len(input.Tags) {
		return errs.NewValidationError("tags", "one or more tags do not exist")
	}

	if input.CookingTime < models.MinCookingTime || input.CookingTime > models.MaxCookingTime {
		return errs.NewValidationError("cooking_time",
			fmt.Sprintf("cooking time must be between %d and %d", models.MinCookingTime, models.MaxCookingTime))
	}
	for _, entry := range input.Ingredients {
		if entry.Amount < models.MinAmount || entry.Amount > models.MaxAmount {
			return errs.NewValidationError("ingredients",
				fmt.Sprintf("amount must be between %d and %d", models.MinAmount, models.MaxAmount))
		}
	}

	if input.Image == "" {
		if requireImage {
			return errs.NewValidationError("image", "image is required")
		}
		return nil
	}
	if _, _, err := DecodeBase64Image(input.Image); err != nil {
		return errs.NewValidationError("image", "image payload is not decodable")
	}
	return nil
}

// writeAssociations replaces the tag set and ingredient link rows inside the
// caller's transaction.
func (s *RecipeService) writeAssociations(ctx context.Context, tx database.Database, recipe *models.Recipe, input RecipeInput) error {
	tags := make([]models.Tag, len(input.Tags))
	for i, id := range input.Tags {
		tags[i] = models.Tag{ID: id}
	}
	if err := tx.RecipeRepo().ReplaceTags(ctx, recipe, tags); err != nil {
		return errs.NewDatabaseError("replace tags of", "recipe", err)
	}

	links := make([]models.RecipeIngredient, len(input.Ingredients))
	for i, entry := range input.Ingredients {
		links[i] = models.RecipeIngredient{
			RecipeID:     recipe.ID,
			IngredientID: entry.ID,
			Amount:       entry.Amount,
		}
	}
	if err := tx.RecipeRepo().ReplaceIngredientLinks(ctx, recipe.ID, links); err != nil {
		return errs.NewDatabaseError("replace ingredients of", "recipe", err)
	}
	return nil
}

// storeImage decodes the base64 payload and hands the bytes to the image
// store, returning the stored reference for the recipe row.
func (s *RecipeService) storeImage(ctx context.Context, payload string) (string, error) {
	data, ext, err := DecodeBase64Image(payload)
	if err != nil {
		return "", errs.NewValidationError("image", "image payload is not decodable")
	}
	name := fmt.Sprintf("recipes/%s%s", uuid.NewString(), ext)
	ref, err := s.images.Save(ctx, name, data, mimeForExt(ext))
	if err != nil {
		return "", errs.NewInternalErrorWithCause("failed to store recipe image", err)
	}
	return ref, nil
}
