package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/store"
)

type WaitlistGateway struct {
	gormGateway[models.WaitlistEntry, models.WaitlistPatch]
}

func NewWaitlistGateway(db *gorm.DB) *WaitlistGateway {
	g := newGormGateway[models.WaitlistEntry, models.WaitlistPatch](db, "waitlist_entry")
	g.order = []string{"joined_at ASC"}
	g.preloads = []string{"Client"}
	g.search = []string{"notes"}
	return &WaitlistGateway{gormGateway: g}
}

// List returns the open queue unless the filter asks for closed entries.
func (g *WaitlistGateway) List(
	ctx context.Context,
	scopeID string,
	filter models.WaitlistFilter,
) ([]*models.WaitlistEntry, error) {

	q := g.scoped(ctx, scopeID)
	if !filter.IncludeClosed {
		q = q.Where("status IN ?", []models.WaitlistStatus{
			models.WaitlistWaiting,
			models.WaitlistNotified,
		})
	}
	return g.find(q)
}

var _ store.Gateway[models.WaitlistEntry, models.WaitlistPatch, models.WaitlistFilter] = (*WaitlistGateway)(nil)
