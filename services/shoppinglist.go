package services

import (
	"context"
	"net/http"

	"github.com/PlatonKara/foodgram-backend/database"
	"github.com/PlatonKara/foodgram-backend/errs"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ErrEmptyShoppingCart signals that the user's cart holds no recipes. The
// document renderer must never be invoked in that case.
var ErrEmptyShoppingCart = errs.NewApiErr(http.StatusBadRequest, "no recipes in shopping cart")

// ShoppingListRenderer turns the aggregated rows into a downloadable
// document. Rendering engines (PDF and friends) are external collaborators;
// this interface is the whole contract.
type ShoppingListRenderer interface {
	Render(items []database.ShoppingListRow) ([]byte, error)
	ContentType() string
	Filename() string
}

// ShoppingListService sums ingredient amounts across every recipe in a
// user's cart, grouped by ingredient name and unit.
type ShoppingListService struct {
	db     database.Database
	logger zerolog.Logger
}

func NewShoppingListService(db database.Database) *ShoppingListService {
	return &ShoppingListService{
		db:     db,
		logger: log.With().Str("serviceName", "shoppingListService").Logger(),
	}
}

// Build returns the aggregated shopping list, alphabetical by ingredient
// name, or ErrEmptyShoppingCart when the cart is empty.
func (s *ShoppingListService) Build(ctx context.Context, userID uuid.UUID) ([]database.ShoppingListRow, error) {
	rows, err := s.db.RecipeRepo().AggregateCart(ctx, userID)
	if err != nil {
		return nil, errs.NewDatabaseError("aggregate", "shopping cart", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyShoppingCart
	}

	s.logger.Debug().
		Str("userID", userID.String()).
		Int("lines", len(rows)).
		Msg("shopping list built")

	return rows, nil
}
