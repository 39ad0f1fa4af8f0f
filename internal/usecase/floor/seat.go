package floor

import (
	"context"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/audit"
	domain "github.com/BruksfildServices01/restaurant-floor/internal/domain/floor"
	"github.com/BruksfildServices01/restaurant-floor/internal/domain/reservation"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/stores"
	"github.com/BruksfildServices01/restaurant-floor/internal/usecase"
)

type SeatInput struct {
	ReservationID string `json:"reservation_id"`
	// TableID overrides the table assigned on the reservation.
	TableID string `json:"table_id,omitempty"`
}

// SeatReservation seats a party and occupies its table in one unit of
// work. Both caches change only after the commit.
type SeatReservation struct {
	stores *stores.Set
	audit  *audit.Dispatcher
}

func NewSeatReservation(s *stores.Set, audit *audit.Dispatcher) *SeatReservation {
	return &SeatReservation{stores: s, audit: audit}
}

func (uc *SeatReservation) Execute(ctx context.Context, actor usecase.Actor, in SeatInput) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	releaseRes, err := uc.stores.Reservations.Reserve(in.ReservationID)
	if err != nil {
		return err
	}
	defer releaseRes()

	r, ok := uc.stores.Reservations.Get(in.ReservationID)
	if !ok {
		return apperr.NotFound("reservation_not_found")
	}
	if r.RestaurantID != actor.RestaurantID {
		return apperr.Validation("scope_mismatch")
	}
	if err := reservation.CanSeat(r.Status); err != nil {
		return err
	}

	tableID := in.TableID
	if tableID == "" && r.TableID != nil {
		tableID = *r.TableID
	}
	if tableID == "" {
		return apperr.Validation("table_required")
	}

	releaseTable, err := uc.stores.Tables.Reserve(tableID)
	if err != nil {
		return err
	}
	defer releaseTable()

	t, ok := uc.stores.Tables.Get(tableID)
	if !ok {
		return apperr.NotFound("table_not_found")
	}
	if t.Capacity < r.PartySize {
		return apperr.Validation("table_too_small")
	}

	tablePatch, err := domain.Next(*t, domain.ReservationSeated, domain.Facts{ReservationID: r.ID})
	if err != nil {
		return err
	}

	seated := models.ReservationSeated
	resPatch := models.ReservationPatch{Status: &seated, TableID: &tableID}

	if err := uc.stores.Floor.Apply(ctx, actor.RestaurantID,
		domain.ReservationChange(r.ID, resPatch),
		domain.TableChange(tableID, tablePatch),
	); err != nil {
		return err
	}

	if err := uc.stores.Reservations.Reconcile(r.ID, resPatch); err != nil {
		return err
	}
	if err := uc.stores.Tables.Reconcile(tableID, tablePatch); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		RestaurantID: actor.RestaurantID,
		UserID:       actor.UserID,
		Action:       "reservation_seated",
		Entity:       "reservation",
		EntityID:     r.ID,
		Metadata:     map[string]any{"table_id": tableID},
	})
	return nil
}
