package reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
)

func TestCanTransition(t *testing.T) {
	ok := [][2]models.ReservationStatus{
		{models.ReservationPending, models.ReservationConfirmed},
		{models.ReservationPending, models.ReservationCancelled},
		{models.ReservationPending, models.ReservationNoShow},
		{models.ReservationConfirmed, models.ReservationSeated},
		{models.ReservationConfirmed, models.ReservationCancelled},
		{models.ReservationSeated, models.ReservationCompleted},
	}
	for _, tc := range ok {
		assert.NoError(t, CanTransition(tc[0], tc[1]), "%s -> %s", tc[0], tc[1])
	}

	bad := [][2]models.ReservationStatus{
		{models.ReservationCancelled, models.ReservationConfirmed},
		{models.ReservationCompleted, models.ReservationSeated},
		{models.ReservationSeated, models.ReservationCancelled},
		{models.ReservationPending, models.ReservationCompleted},
	}
	for _, tc := range bad {
		err := CanTransition(tc[0], tc[1])
		assert.True(t, apperr.HasCode(err, "invalid_transition"), "%s -> %s", tc[0], tc[1])
	}
}

func TestCanSeat(t *testing.T) {
	assert.NoError(t, CanSeat(models.ReservationPending))
	assert.NoError(t, CanSeat(models.ReservationConfirmed))
	assert.Error(t, CanSeat(models.ReservationNoShow))
}

func TestValidate(t *testing.T) {
	base := models.Reservation{ClientID: "c1", PartySize: 2, Date: "2026-03-14", Time: "19:30"}
	assert.NoError(t, Validate(base))

	cases := map[string]func(*models.Reservation){
		"client_required":    func(r *models.Reservation) { r.ClientID = "" },
		"invalid_party_size": func(r *models.Reservation) { r.PartySize = 0 },
		"invalid_date":       func(r *models.Reservation) { r.Date = "14/03/2026" },
		"invalid_time":       func(r *models.Reservation) { r.Time = "25:00" },
	}
	for code, mutate := range cases {
		r := base
		mutate(&r)
		assert.True(t, apperr.HasCode(Validate(r), code), code)
	}
}
