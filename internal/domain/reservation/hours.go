package reservation

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
)

// WithinOpeningHours checks a booking's date and HH:MM time against the
// restaurant's hours for that weekday (keys "monday".."sunday"). A
// restaurant with no hours configured takes bookings at any time, and a
// close earlier than open runs past midnight.
func WithinOpeningHours(hours map[string]models.DayHours, date, at string) error {
	if len(hours) == 0 {
		return nil
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return apperr.Validation("invalid_date")
	}

	dh, ok := hours[strings.ToLower(day.Weekday().String())]
	if !ok || dh.Closed || dh.Open == "" || dh.Close == "" {
		return apperr.Validation("restaurant_closed")
	}

	parseHM := func(hm string) (int, bool) {
		t, err := time.Parse("15:04", hm)
		if err != nil {
			return 0, false
		}
		return t.Hour()*60 + t.Minute(), true
	}

	start, ok1 := parseHM(dh.Open)
	end, ok2 := parseHM(dh.Close)
	when, ok3 := parseHM(at)
	if !ok1 || !ok2 {
		return apperr.Validation("invalid_opening_hours")
	}
	if !ok3 {
		return apperr.Validation("invalid_time")
	}

	inside := when >= start && when < end
	if end <= start {
		inside = when >= start || when < end
	}
	if !inside {
		return apperr.Validation("outside_opening_hours")
	}
	return nil
}

// WithinBookingWindow rejects dates more than maxDays after today. Zero
// or negative maxDays means no limit.
func WithinBookingWindow(date, today string, maxDays int) error {
	if maxDays <= 0 {
		return nil
	}
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return apperr.Validation("invalid_date")
	}
	t, err := time.Parse("2006-01-02", today)
	if err != nil {
		return apperr.Validation("invalid_date")
	}
	if d.After(t.AddDate(0, 0, maxDays)) {
		return apperr.Validation("too_far_in_advance")
	}
	return nil
}
