// Package views derives read-only presentations from cached snapshots.
// Nothing here mutates a store.
package views

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/restaurant-floor/internal/domain/order"
	"github.com/BruksfildServices01/restaurant-floor/internal/domain/waitlist"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/timezone"
)

// UrgentAfter is how long a party may wait before its row is flagged.
const UrgentAfter = 15 * time.Minute

func ActiveOrders(orders []*models.Order) []*models.Order {
	out := make([]*models.Order, 0, len(orders))
	for _, o := range orders {
		if order.IsActive(o.Status) {
			out = append(out, o)
		}
	}
	return out
}

// TodaysReservations keeps the reservations dated on the day now falls on
// in the restaurant's timezone.
func TodaysReservations(res []*models.Reservation, now time.Time, tz string) []*models.Reservation {
	today := timezone.DateIn(now, tz)

	out := make([]*models.Reservation, 0, len(res))
	for _, r := range res {
		if r.Date == today {
			out = append(out, r)
		}
	}
	return out
}

func WaitElapsed(e *models.WaitlistEntry, now time.Time) time.Duration {
	d := now.Sub(e.JoinedAt)
	if d < 0 {
		return 0
	}
	return d
}

type WaitRow struct {
	EntryID   string                `json:"entry_id"`
	Name      string                `json:"name"`
	PartySize int                   `json:"party_size"`
	Status    models.WaitlistStatus `json:"status"`
	Minutes   int                   `json:"minutes"`
	Label     string                `json:"label"`
	Urgent    bool                  `json:"urgent"`
}

func NewWaitRow(e *models.WaitlistEntry, now time.Time) WaitRow {
	minutes := int(WaitElapsed(e, now) / time.Minute)

	row := WaitRow{
		EntryID:   e.ID,
		PartySize: e.PartySize,
		Status:    e.Status,
		Minutes:   minutes,
		Label:     fmt.Sprintf("%d min", minutes),
		Urgent:    time.Duration(minutes)*time.Minute > UrgentAfter,
	}
	if e.Client != nil {
		row.Name = e.Client.FullName()
	}
	return row
}

func WaitRows(entries []*models.WaitlistEntry, now time.Time) []WaitRow {
	rows := make([]WaitRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, NewWaitRow(e, now))
	}
	return rows
}

// Waiting keeps the entries still waiting or notified, in order.
func Waiting(entries []*models.WaitlistEntry) []*models.WaitlistEntry {
	out := make([]*models.WaitlistEntry, 0, len(entries))
	for _, e := range entries {
		if waitlist.IsOpen(e.Status) {
			out = append(out, e)
		}
	}
	return out
}

type Tier string

const (
	TierVIP      Tier = "vip"
	TierRegular  Tier = "regular"
	TierStandard Tier = "standard"
)

func ClientTier(totalSpent float64) Tier {
	switch {
	case totalSpent > 500:
		return TierVIP
	case totalSpent > 100:
		return TierRegular
	}
	return TierStandard
}
