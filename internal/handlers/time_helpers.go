package handlers

import (
	"time"

	"github.com/BruksfildServices01/restaurant-floor/internal/stores"
	"github.com/BruksfildServices01/restaurant-floor/internal/timezone"
)

// restaurantTimezone resolves the restaurant's configured timezone.
func restaurantTimezone(s *stores.Set) string {
	if r, ok := s.Restaurant(); ok && r.Timezone() != "" {
		return r.Timezone()
	}
	return timezone.DefaultTimezone
}

func parseDateInRestaurant(s *stores.Set, date string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		date,
		timezone.Location(restaurantTimezone(s)),
	)
}
