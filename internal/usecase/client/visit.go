package client

import (
	"context"
	"time"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/domain/order"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/stores"
	"github.com/BruksfildServices01/restaurant-floor/internal/usecase"
)

// RecordVisit credits a settled bill to the guest.
type RecordVisit struct {
	clients *stores.Clients
	now     func() time.Time
}

func NewRecordVisit(clients *stores.Clients) *RecordVisit {
	return &RecordVisit{clients: clients, now: time.Now}
}

func (uc *RecordVisit) Execute(ctx context.Context, actor usecase.Actor, clientID string, amount float64) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if amount < 0 {
		return apperr.Validation("invalid_amount")
	}

	return uc.clients.Mutate(ctx, clientID, func(c models.Client) (models.ClientPatch, error) {
		if c.RestaurantID != actor.RestaurantID {
			return models.ClientPatch{}, apperr.Validation("scope_mismatch")
		}

		visits := c.VisitCount + 1
		spent := order.FromCents(order.Cents(c.TotalSpent) + order.Cents(amount))
		at := uc.now().UTC()

		return models.ClientPatch{
			VisitCount: &visits,
			TotalSpent: &spent,
			LastVisit:  &at,
		}, nil
	})
}
