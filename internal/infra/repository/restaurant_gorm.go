package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/store"
)

// RestaurantGateway treats the restaurant as its own scope. It is created
// at sign-up and never removed from the floor client.
type RestaurantGateway struct {
	gormGateway[models.Restaurant, models.RestaurantPatch]
}

func NewRestaurantGateway(db *gorm.DB) *RestaurantGateway {
	g := newGormGateway[models.Restaurant, models.RestaurantPatch](db, "restaurant")
	g.scopeCol = "id"
	return &RestaurantGateway{gormGateway: g}
}

func (g *RestaurantGateway) List(
	ctx context.Context,
	scopeID string,
	_ models.RestaurantFilter,
) ([]*models.Restaurant, error) {
	return g.find(g.scoped(ctx, scopeID))
}

func (g *RestaurantGateway) Insert(context.Context, *models.Restaurant) (*models.Restaurant, error) {
	return nil, apperr.Validation("restaurant_create_not_allowed")
}

func (g *RestaurantGateway) Delete(context.Context, string, string) error {
	return apperr.Validation("restaurant_delete_not_allowed")
}

var _ store.Gateway[models.Restaurant, models.RestaurantPatch, models.RestaurantFilter] = (*RestaurantGateway)(nil)
