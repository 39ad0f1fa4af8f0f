package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/store"
)

type TableGateway struct {
	gormGateway[models.Table, models.TablePatch]
}

func NewTableGateway(db *gorm.DB) *TableGateway {
	g := newGormGateway[models.Table, models.TablePatch](db, "table")
	g.order = []string{"number ASC"}
	g.search = []string{"number"}
	return &TableGateway{gormGateway: g}
}

func (g *TableGateway) List(
	ctx context.Context,
	scopeID string,
	_ models.TableFilter,
) ([]*models.Table, error) {
	return g.find(g.scoped(ctx, scopeID))
}

var _ store.Gateway[models.Table, models.TablePatch, models.TableFilter] = (*TableGateway)(nil)
