package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/store"
)

type ReservationGateway struct {
	gormGateway[models.Reservation, models.ReservationPatch]
}

func NewReservationGateway(db *gorm.DB) *ReservationGateway {
	g := newGormGateway[models.Reservation, models.ReservationPatch](db, "reservation")
	g.order = []string{"date ASC", "time ASC"}
	g.preloads = []string{"Client", "Table"}
	g.search = []string{"notes", "special_requests"}
	return &ReservationGateway{gormGateway: g}
}

func (g *ReservationGateway) List(
	ctx context.Context,
	scopeID string,
	filter models.ReservationFilter,
) ([]*models.Reservation, error) {

	q := g.scoped(ctx, scopeID)
	if filter.Date != "" {
		q = q.Where("date = ?", filter.Date)
	}
	return g.find(q)
}

var _ store.Gateway[models.Reservation, models.ReservationPatch, models.ReservationFilter] = (*ReservationGateway)(nil)
