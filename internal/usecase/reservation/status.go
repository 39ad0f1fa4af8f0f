package reservation

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/audit"
	domain "github.com/BruksfildServices01/restaurant-floor/internal/domain/reservation"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/notify"
	"github.com/BruksfildServices01/restaurant-floor/internal/stores"
	"github.com/BruksfildServices01/restaurant-floor/internal/usecase"
)

type ChangeStatus struct {
	reservations *stores.Reservations
	texts        *usecase.Texts
	audit        *audit.Dispatcher
	log          logrus.FieldLogger
}

func NewChangeStatus(
	reservations *stores.Reservations,
	texts *usecase.Texts,
	audit *audit.Dispatcher,
	log logrus.FieldLogger,
) *ChangeStatus {
	return &ChangeStatus{
		reservations: reservations,
		texts:        texts,
		audit:        audit,
		log:          log.WithField("usecase", "reservation_status"),
	}
}

// Execute applies a guarded status change. Seating needs a table and is
// done by the floor's SeatReservation instead.
func (uc *ChangeStatus) Execute(
	ctx context.Context,
	actor usecase.Actor,
	id string,
	status models.ReservationStatus,
) (*models.Reservation, error) {

	if err := actor.Validate(); err != nil {
		return nil, err
	}
	if status == models.ReservationSeated {
		return nil, apperr.Validation("seat_requires_table")
	}

	var from models.ReservationStatus
	err := uc.reservations.Mutate(ctx, id, func(r models.Reservation) (models.ReservationPatch, error) {
		if r.RestaurantID != actor.RestaurantID {
			return models.ReservationPatch{}, apperr.Validation("scope_mismatch")
		}
		from = r.Status
		if err := domain.CanTransition(r.Status, status); err != nil {
			return models.ReservationPatch{}, err
		}
		return models.ReservationPatch{Status: &status}, nil
	})
	if err != nil {
		return nil, err
	}

	r, _ := uc.reservations.Get(id)

	uc.audit.Dispatch(audit.Event{
		RestaurantID: actor.RestaurantID,
		UserID:       actor.UserID,
		Action:       "reservation_status_changed",
		Entity:       "reservation",
		EntityID:     id,
		Metadata:     map[string]any{"from": from, "to": status},
	})

	if status == models.ReservationConfirmed && uc.texts != nil && uc.texts.Enabled() {
		if err := uc.sendConfirmation(ctx, actor, r); err != nil {
			uc.log.WithError(err).WithField("reservation", id).Warn("confirmation sms not sent")
		}
	}

	return r, nil
}

// Confirm is ChangeStatus to confirmed. The confirmation text is best
// effort: a failed send is logged and the confirmation stands.
func (uc *ChangeStatus) Confirm(ctx context.Context, actor usecase.Actor, id string) (*models.Reservation, error) {
	return uc.Execute(ctx, actor, id, models.ReservationConfirmed)
}

// Remind texts the guest about today's booking and reports send failures.
func (uc *ChangeStatus) Remind(ctx context.Context, actor usecase.Actor, id string) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if uc.texts == nil {
		return apperr.Validation("sms_unavailable")
	}

	r, ok := uc.reservations.Get(id)
	if !ok {
		return apperr.NotFound("reservation_not_found")
	}
	switch r.Status {
	case models.ReservationPending, models.ReservationConfirmed:
	default:
		return apperr.Validation("reservation_closed")
	}

	phone, err := uc.texts.PhoneOf(r.ClientID, r.Client)
	if err != nil {
		return err
	}
	body := notify.ReservationReminder(uc.texts.RestaurantName(), r.Time)
	if err := uc.texts.Send(ctx, actor, phone, body); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		RestaurantID: actor.RestaurantID,
		UserID:       actor.UserID,
		Action:       "reservation_reminded",
		Entity:       "reservation",
		EntityID:     id,
	})
	return nil
}

func (uc *ChangeStatus) sendConfirmation(ctx context.Context, actor usecase.Actor, r *models.Reservation) error {
	phone, err := uc.texts.PhoneOf(r.ClientID, r.Client)
	if err != nil {
		return err
	}
	body := notify.ReservationConfirmation(uc.texts.RestaurantName(), r.Date, r.Time, r.PartySize)
	return uc.texts.Send(ctx, actor, phone, body)
}
