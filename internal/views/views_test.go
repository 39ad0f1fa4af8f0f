package views

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/restaurant-floor/internal/models"
)

func TestActiveOrders(t *testing.T) {
	orders := []*models.Order{
		{ID: "1", Status: models.OrderPending},
		{ID: "2", Status: models.OrderServed},
		{ID: "3", Status: models.OrderReady},
		{ID: "4", Status: models.OrderPaid},
	}

	got := ActiveOrders(orders)
	require.Len(t, got, 2)
	assert.Same(t, orders[0], got[0])
	assert.Same(t, orders[2], got[1])
}

func TestTodaysReservationsUsesRestaurantTimezone(t *testing.T) {
	now := time.Date(2026, 5, 2, 1, 0, 0, 0, time.UTC)
	res := []*models.Reservation{
		{ID: "a", Date: "2026-05-01"},
		{ID: "b", Date: "2026-05-02"},
	}

	sp := TodaysReservations(res, now, "America/Sao_Paulo")
	require.Len(t, sp, 1)
	assert.Equal(t, "a", sp[0].ID)

	utc := TodaysReservations(res, now, "UTC")
	require.Len(t, utc, 1)
	assert.Equal(t, "b", utc[0].ID)
}

func TestWaitRow(t *testing.T) {
	now := time.Date(2026, 5, 2, 20, 0, 0, 0, time.UTC)
	e := &models.WaitlistEntry{
		ID:        "w1",
		PartySize: 3,
		JoinedAt:  now.Add(-16*time.Minute - 40*time.Second),
		Client:    &models.Client{FirstName: "Ana", LastName: "Silva"},
	}

	row := NewWaitRow(e, now)
	assert.Equal(t, 16, row.Minutes)
	assert.Equal(t, "16 min", row.Label)
	assert.True(t, row.Urgent)
	assert.Equal(t, "Ana Silva", row.Name)

	e.JoinedAt = now.Add(-15*time.Minute - 59*time.Second)
	row = NewWaitRow(e, now)
	assert.Equal(t, 15, row.Minutes)
	assert.False(t, row.Urgent)

	e.JoinedAt = now.Add(time.Minute)
	assert.Equal(t, time.Duration(0), WaitElapsed(e, now))
}

func TestClientTier(t *testing.T) {
	assert.Equal(t, TierVIP, ClientTier(500.01))
	assert.Equal(t, TierRegular, ClientTier(500))
	assert.Equal(t, TierRegular, ClientTier(100.5))
	assert.Equal(t, TierStandard, ClientTier(100))
	assert.Equal(t, TierStandard, ClientTier(0))
}

func TestDashboard(t *testing.T) {
	now := time.Date(2026, 5, 2, 15, 0, 0, 0, time.UTC)
	s := Snapshot{
		Tables: []*models.Table{
			{Status: models.TableOccupied}, {Status: models.TableAvailable}, {Status: models.TableOccupied},
		},
		Orders:       []*models.Order{{Status: models.OrderPending}, {Status: models.OrderPaid}},
		Reservations: []*models.Reservation{{Date: "2026-05-02"}, {Date: "2026-05-03"}},
		Waitlist: []*models.WaitlistEntry{
			{Status: models.WaitlistWaiting}, {Status: models.WaitlistNotified}, {Status: models.WaitlistSeated},
		},
		Timezone: "UTC",
	}

	assert.Equal(t, Counts{
		ActiveOrders:       1,
		TodaysReservations: 1,
		WaitingParties:     2,
		OccupiedTables:     2,
		Tables:             3,
	}, Dashboard(s, now))
}

func TestWaitBoardRendersFromCurrentSource(t *testing.T) {
	base := time.Date(2026, 5, 2, 20, 0, 0, 0, time.UTC)

	var mu sync.Mutex
	entries := []*models.WaitlistEntry{{ID: "w1", JoinedAt: base}}
	var renders [][]WaitRow

	board := &WaitBoard{
		Source: func() []*models.WaitlistEntry {
			mu.Lock()
			defer mu.Unlock()
			return append([]*models.WaitlistEntry(nil), entries...)
		},
		Render: func(rows []WaitRow) {
			mu.Lock()
			defer mu.Unlock()
			renders = append(renders, rows)
		},
		Interval: 5 * time.Millisecond,
		Now:      func() time.Time { return base.Add(2 * time.Minute) },
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- board.Run(ctx) }()

	mu.Lock()
	entries = append(entries, &models.WaitlistEntry{ID: "w2", JoinedAt: base})
	mu.Unlock()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(renders) > 0 && len(renders[len(renders)-1]) == 2
	}, time.Second, time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "2 min", renders[0][0].Label)
}

func TestToday(t *testing.T) {
	now := time.Date(2026, 5, 2, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-05-01", Today(nil, now))

	r := &models.Restaurant{Settings: models.DefaultSettings("EUR", "Europe/Lisbon")}
	assert.Equal(t, "2026-05-02", Today(r, now))
}

func TestWaitingDropsClosedEntries(t *testing.T) {
	entries := []*models.WaitlistEntry{
		{ID: "a", Status: models.WaitlistWaiting},
		{ID: "b", Status: models.WaitlistSeated},
		{ID: "c", Status: models.WaitlistNotified},
		{ID: "d", Status: models.WaitlistCancelled},
	}

	open := Waiting(entries)
	require.Len(t, open, 2)
	assert.Equal(t, "a", open[0].ID)
	assert.Equal(t, "c", open[1].ID)
}
