package reservation

import (
	"context"
	"time"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/audit"
	domain "github.com/BruksfildServices01/restaurant-floor/internal/domain/reservation"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/stores"
	"github.com/BruksfildServices01/restaurant-floor/internal/timezone"
	"github.com/BruksfildServices01/restaurant-floor/internal/usecase"
)

type RestaurantSource interface {
	Restaurant() (*models.Restaurant, bool)
}

type SaveReservation struct {
	reservations *stores.Reservations
	restaurants  RestaurantSource
	audit        *audit.Dispatcher
	now          func() time.Time
}

func NewSaveReservation(reservations *stores.Reservations, restaurants RestaurantSource, audit *audit.Dispatcher) *SaveReservation {
	return &SaveReservation{reservations: reservations, restaurants: restaurants, audit: audit, now: time.Now}
}

// bookable checks the restaurant's opening hours and booking window.
// Without a loaded restaurant there is nothing to check against.
func (uc *SaveReservation) bookable(r models.Reservation) error {
	if uc.restaurants == nil {
		return nil
	}
	rest, ok := uc.restaurants.Restaurant()
	if !ok {
		return nil
	}

	settings := rest.Settings.Data()
	if err := domain.WithinOpeningHours(settings.OpeningHours, r.Date, r.Time); err != nil {
		return err
	}
	today := timezone.DateIn(uc.now(), rest.Timezone())
	return domain.WithinBookingWindow(r.Date, today, settings.AdvanceBookingDays)
}

func (uc *SaveReservation) Create(ctx context.Context, actor usecase.Actor, r models.Reservation) (*models.Reservation, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	r.ID = ""
	r.RestaurantID = actor.RestaurantID
	r.Status = models.ReservationPending
	r.CreatedBy = actor.UserID
	r.Client, r.Table = nil, nil

	if err := domain.Validate(r); err != nil {
		return nil, err
	}
	if err := uc.bookable(r); err != nil {
		return nil, err
	}

	created, err := uc.reservations.Create(ctx, &r)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		RestaurantID: actor.RestaurantID,
		UserID:       actor.UserID,
		Action:       "reservation_created",
		Entity:       "reservation",
		EntityID:     created.ID,
		Metadata: map[string]any{
			"date":       created.Date,
			"time":       created.Time,
			"party_size": created.PartySize,
		},
	})
	return created, nil
}

// Update edits booking details. Status moves go through ChangeStatus.
func (uc *SaveReservation) Update(ctx context.Context, actor usecase.Actor, id string, p models.ReservationPatch) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if p.Status != nil {
		return apperr.Validation("status_not_editable")
	}

	err := uc.reservations.Mutate(ctx, id, func(r models.Reservation) (models.ReservationPatch, error) {
		if r.RestaurantID != actor.RestaurantID {
			return models.ReservationPatch{}, apperr.Validation("scope_mismatch")
		}
		next := r
		p.Apply(&next)
		if err := domain.Validate(next); err != nil {
			return models.ReservationPatch{}, err
		}
		if p.Date != nil || p.Time != nil {
			if err := uc.bookable(next); err != nil {
				return models.ReservationPatch{}, err
			}
		}
		return p, nil
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		RestaurantID: actor.RestaurantID,
		UserID:       actor.UserID,
		Action:       "reservation_updated",
		Entity:       "reservation",
		EntityID:     id,
	})
	return nil
}
