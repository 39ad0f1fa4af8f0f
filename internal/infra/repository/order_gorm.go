package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/store"
)

type OrderGateway struct {
	gormGateway[models.Order, models.OrderPatch]
}

func NewOrderGateway(db *gorm.DB) *OrderGateway {
	g := newGormGateway[models.Order, models.OrderPatch](db, "order")
	g.order = []string{"created_at DESC"}
	g.preloads = []string{"Table", "Client"}
	g.search = []string{"notes"}
	return &OrderGateway{gormGateway: g}
}

func (g *OrderGateway) List(
	ctx context.Context,
	scopeID string,
	filter models.OrderFilter,
) ([]*models.Order, error) {

	q := g.scoped(ctx, scopeID)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	return g.find(q)
}

var _ store.Gateway[models.Order, models.OrderPatch, models.OrderFilter] = (*OrderGateway)(nil)
