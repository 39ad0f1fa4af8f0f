package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/store"
)

type ClientGateway struct {
	gormGateway[models.Client, models.ClientPatch]
}

func NewClientGateway(db *gorm.DB) *ClientGateway {
	g := newGormGateway[models.Client, models.ClientPatch](db, "client")
	g.order = []string{"last_visit DESC NULLS LAST", "created_at DESC"}
	g.search = []string{"first_name", "last_name", "phone", "email"}
	return &ClientGateway{gormGateway: g}
}

func (g *ClientGateway) List(
	ctx context.Context,
	scopeID string,
	_ models.ClientFilter,
) ([]*models.Client, error) {
	return g.find(g.scoped(ctx, scopeID))
}

// FindByPhone looks a guest up by exact phone within the restaurant.
func (g *ClientGateway) FindByPhone(
	ctx context.Context,
	scopeID string,
	phone string,
) (*models.Client, error) {

	var client models.Client
	if err := g.db.WithContext(ctx).
		Where("restaurant_id = ? AND phone = ?", scopeID, phone).
		First(&client).Error; err != nil {
		return nil, translate(g.entity, "fetch", err)
	}
	return &client, nil
}

var _ store.Gateway[models.Client, models.ClientPatch, models.ClientFilter] = (*ClientGateway)(nil)
