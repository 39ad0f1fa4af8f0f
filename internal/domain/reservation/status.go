package reservation

import (
	"regexp"
	"strings"
	"time"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
)

// ===============================
// Reservation Status
// ===============================

var allowed = map[models.ReservationStatus][]models.ReservationStatus{
	models.ReservationPending: {
		models.ReservationConfirmed,
		models.ReservationCancelled,
		models.ReservationNoShow,
	},
	models.ReservationConfirmed: {
		models.ReservationSeated,
		models.ReservationCancelled,
		models.ReservationNoShow,
	},
	models.ReservationSeated: {
		models.ReservationCompleted,
	},
}

func CanTransition(from, to models.ReservationStatus) error {
	for _, next := range allowed[from] {
		if next == to {
			return nil
		}
	}
	return apperr.Conflict("invalid_transition")
}

// CanSeat accepts pending reservations too, for walk-ins that were
// never confirmed.
func CanSeat(current models.ReservationStatus) error {
	if current == models.ReservationPending {
		return nil
	}
	return CanTransition(current, models.ReservationSeated)
}

// ===============================
// Validations
// ===============================

var timeOfDay = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

func Validate(r models.Reservation) error {
	if strings.TrimSpace(r.ClientID) == "" {
		return apperr.Validation("client_required")
	}
	if r.PartySize < 1 {
		return apperr.Validation("invalid_party_size")
	}
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		return apperr.Validation("invalid_date")
	}
	if !timeOfDay.MatchString(r.Time) {
		return apperr.Validation("invalid_time")
	}
	return nil
}
