package reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
)

func TestWithinOpeningHours(t *testing.T) {
	hours := map[string]models.DayHours{
		"saturday": {Open: "18:00", Close: "01:00"},
		"monday":   {Closed: true},
		"tuesday":  {Open: "11:30", Close: "15:00"},
	}

	// 2026-05-02 is a Saturday, 2026-05-04 a Monday
	assert.NoError(t, WithinOpeningHours(hours, "2026-05-02", "20:00"))
	assert.NoError(t, WithinOpeningHours(hours, "2026-05-02", "00:30"))
	assert.True(t, apperr.HasCode(WithinOpeningHours(hours, "2026-05-02", "17:59"), "outside_opening_hours"))
	assert.True(t, apperr.HasCode(WithinOpeningHours(hours, "2026-05-04", "20:00"), "restaurant_closed"))
	assert.True(t, apperr.HasCode(WithinOpeningHours(hours, "2026-05-05", "15:00"), "outside_opening_hours"))
	assert.True(t, apperr.HasCode(WithinOpeningHours(hours, "2026-05-06", "12:00"), "restaurant_closed"))

	assert.NoError(t, WithinOpeningHours(nil, "2026-05-04", "03:00"))
}

func TestWithinBookingWindow(t *testing.T) {
	assert.NoError(t, WithinBookingWindow("2026-05-31", "2026-05-01", 30))
	assert.True(t, apperr.HasCode(WithinBookingWindow("2026-06-01", "2026-05-01", 30), "too_far_in_advance"))
	assert.NoError(t, WithinBookingWindow("2027-01-01", "2026-05-01", 0))
}
