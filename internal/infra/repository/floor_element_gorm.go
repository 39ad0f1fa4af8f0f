package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/store"
)

type FloorElementGateway struct {
	gormGateway[models.FloorElement, models.FloorElementPatch]
}

func NewFloorElementGateway(db *gorm.DB) *FloorElementGateway {
	g := newGormGateway[models.FloorElement, models.FloorElementPatch](db, "floor_element")
	g.order = []string{"created_at ASC"}
	g.search = []string{"label"}
	return &FloorElementGateway{gormGateway: g}
}

func (g *FloorElementGateway) List(
	ctx context.Context,
	scopeID string,
	_ models.FloorElementFilter,
) ([]*models.FloorElement, error) {
	return g.find(g.scoped(ctx, scopeID))
}

var _ store.Gateway[models.FloorElement, models.FloorElementPatch, models.FloorElementFilter] = (*FloorElementGateway)(nil)
