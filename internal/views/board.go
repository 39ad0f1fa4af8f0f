package views

import (
	"context"
	"time"

	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/timezone"
)

const DefaultRefresh = time.Minute

// WaitBoard re-renders the waitlist on a fixed interval. Source is read on
// every tick, so rows always reflect the current cache.
type WaitBoard struct {
	Source   func() []*models.WaitlistEntry
	Render   func([]WaitRow)
	Interval time.Duration
	Now      func() time.Time
}

// Run renders once immediately and then on every tick until ctx is done.
func (b *WaitBoard) Run(ctx context.Context) error {
	interval := b.Interval
	if interval <= 0 {
		interval = DefaultRefresh
	}
	now := b.Now
	if now == nil {
		now = time.Now
	}

	b.Render(WaitRows(b.Source(), now()))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			b.Render(WaitRows(b.Source(), now()))
		}
	}
}

type Snapshot struct {
	Tables       []*models.Table
	Orders       []*models.Order
	Reservations []*models.Reservation
	Waitlist     []*models.WaitlistEntry
	Timezone     string
}

type Counts struct {
	ActiveOrders       int `json:"active_orders"`
	TodaysReservations int `json:"todays_reservations"`
	WaitingParties     int `json:"waiting_parties"`
	OccupiedTables     int `json:"occupied_tables"`
	Tables             int `json:"tables"`
}

func Dashboard(s Snapshot, now time.Time) Counts {
	c := Counts{
		ActiveOrders:       len(ActiveOrders(s.Orders)),
		TodaysReservations: len(TodaysReservations(s.Reservations, now, s.Timezone)),
		Tables:             len(s.Tables),
	}
	for _, w := range s.Waitlist {
		if w.Status == models.WaitlistWaiting || w.Status == models.WaitlistNotified {
			c.WaitingParties++
		}
	}
	for _, t := range s.Tables {
		if t.Status == models.TableOccupied {
			c.OccupiedTables++
		}
	}
	return c
}

// Today is a convenience for callers holding a restaurant record.
func Today(r *models.Restaurant, now time.Time) string {
	tz := timezone.DefaultTimezone
	if r != nil && r.Timezone() != "" {
		tz = r.Timezone()
	}
	return timezone.DateIn(now, tz)
}
