package reservation

import (
	"context"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/audit"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/stores"
	"github.com/BruksfildServices01/restaurant-floor/internal/usecase"
)

type DeleteReservation struct {
	reservations *stores.Reservations
	audit        *audit.Dispatcher
}

func NewDeleteReservation(reservations *stores.Reservations, audit *audit.Dispatcher) *DeleteReservation {
	return &DeleteReservation{reservations: reservations, audit: audit}
}

// Execute removes a booking. A seated party is at its table, so it must
// be completed instead.
func (uc *DeleteReservation) Execute(ctx context.Context, actor usecase.Actor, id string) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	r, ok := uc.reservations.Get(id)
	if !ok {
		return apperr.NotFound("reservation_not_found")
	}
	if r.RestaurantID != actor.RestaurantID {
		return apperr.Validation("scope_mismatch")
	}
	if r.Status == models.ReservationSeated {
		return apperr.Conflict("reservation_seated")
	}

	if err := uc.reservations.Delete(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		RestaurantID: actor.RestaurantID,
		UserID:       actor.UserID,
		Action:       "reservation_deleted",
		Entity:       "reservation",
		EntityID:     id,
		Metadata:     map[string]any{"date": r.Date, "time": r.Time},
	})
	return nil
}
