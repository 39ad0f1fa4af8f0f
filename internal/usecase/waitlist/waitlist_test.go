package waitlist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	domain "github.com/BruksfildServices01/restaurant-floor/internal/domain/waitlist"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/notify"
	"github.com/BruksfildServices01/restaurant-floor/internal/testutil"
	"github.com/BruksfildServices01/restaurant-floor/internal/usecase"
)

var clock = time.Date(2026, 5, 2, 19, 30, 0, 0, time.UTC)

type env struct {
	fx     *testutil.Fixture
	actor  usecase.Actor
	outbox *testutil.Outbox
	join   *Join
	status *ChangeStatus
}

func newEnv(t *testing.T) *env {
	t.Helper()
	fx := testutil.NewFixture(t)
	fx.Load(t)

	outbox := &testutil.Outbox{}
	join := NewJoin(fx.Stores, nil)
	join.now = func() time.Time { return clock }
	status := NewChangeStatus(fx.Stores, usecase.NewTexts(outbox, fx.Stores), nil)
	status.now = func() time.Time { return clock.Add(10 * time.Minute) }

	return &env{
		fx:     fx,
		actor:  usecase.Actor{RestaurantID: fx.Scope, UserID: fx.UserID},
		outbox: outbox,
		join:   join,
		status: status,
	}
}

func (e *env) party(t *testing.T, name, phone string) *models.WaitlistEntry {
	t.Helper()
	entry, err := e.join.Execute(context.Background(), e.actor, domain.Party{Name: name, Phone: phone, PartySize: 2})
	require.NoError(t, err)
	return entry
}

func TestJoinCreatesClientOnce(t *testing.T) {
	e := newEnv(t)

	first := e.party(t, "Ana Maria Souza", "+5511999990000")
	assert.Equal(t, models.WaitlistWaiting, first.Status)
	require.NotNil(t, first.EstimatedWaitTime)
	assert.Equal(t, 15, *first.EstimatedWaitTime)
	assert.True(t, clock.Equal(first.JoinedAt))
	require.NotNil(t, first.Client)
	assert.Equal(t, "Ana", first.Client.FirstName)
	assert.Equal(t, "Maria Souza", first.Client.LastName)

	second := e.party(t, "Ana", "+5511999990000")
	assert.Equal(t, first.ClientID, second.ClientID)

	var count int64
	e.fx.DB.Model(&models.Client{}).Where("phone = ?", "+5511999990000").Count(&count)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, 1, e.fx.Stores.Clients.Len())

	items := e.fx.Stores.Waitlist.Items()
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID)
}

func TestJoinReusesClientMissingFromCache(t *testing.T) {
	e := newEnv(t)
	existing := e.fx.SeedClient(t, "Bruno", "+5521888880000")

	entry := e.party(t, "Bruno", "+5521888880000")
	assert.Equal(t, existing.ID, entry.ClientID)
	_, cached := e.fx.Stores.Clients.Get(existing.ID)
	assert.True(t, cached)
}

func TestJoinValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.join.Execute(ctx, e.actor, domain.Party{Phone: "1", PartySize: 2})
	assert.True(t, apperr.HasCode(err, "name_required"))
	_, err = e.join.Execute(ctx, e.actor, domain.Party{Name: "A", PartySize: 2})
	assert.True(t, apperr.HasCode(err, "phone_required"))
	_, err = e.join.Execute(ctx, e.actor, domain.Party{Name: "A", Phone: "1"})
	assert.True(t, apperr.HasCode(err, "invalid_party_size"))

	assert.Zero(t, e.fx.Stores.Clients.Len())
}

func TestNotifyMarksOnlyAfterSend(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	entry := e.party(t, "Ana", "+5511999990000")

	e.outbox.Err = errors.New("broker down")
	require.Error(t, e.status.Notify(ctx, e.actor, entry.ID))
	got, _ := e.fx.Stores.Waitlist.Get(entry.ID)
	assert.Equal(t, models.WaitlistWaiting, got.Status)
	assert.Nil(t, got.NotifiedAt)

	e.outbox.Err = nil
	require.NoError(t, e.status.Notify(ctx, e.actor, entry.ID))
	got, _ = e.fx.Stores.Waitlist.Get(entry.ID)
	assert.Equal(t, models.WaitlistNotified, got.Status)
	require.NotNil(t, got.NotifiedAt)

	sent := e.outbox.Messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "+5511999990000", sent[0].To)
	assert.Contains(t, sent[0].Body, "Bistro Centro")

	require.NoError(t, e.status.Notify(ctx, e.actor, entry.ID))
	assert.Len(t, e.outbox.Messages(), 2)
}

func TestNotifyWhileSendingIsRejected(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	entry := e.party(t, "Ana", "+5511999990000")

	var second error
	e.outbox.OnSend = func(notify.SMS) {
		second = e.status.Notify(ctx, e.actor, entry.ID)
	}

	require.NoError(t, e.status.Notify(ctx, e.actor, entry.ID))
	assert.True(t, apperr.HasCode(second, "mutation_in_flight"))
	assert.Len(t, e.outbox.Messages(), 1)
}

func TestStatusGuardAndSeatedAt(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	entry := e.party(t, "Ana", "+5511999990000")

	require.NoError(t, e.status.Execute(ctx, e.actor, entry.ID, models.WaitlistSeated))
	got, _ := e.fx.Stores.Waitlist.Get(entry.ID)
	require.NotNil(t, got.SeatedAt)
	assert.True(t, clock.Add(10*time.Minute).Equal(*got.SeatedAt))

	err := e.status.Execute(ctx, e.actor, entry.ID, models.WaitlistWaiting)
	assert.True(t, apperr.HasCode(err, "invalid_transition"))

	err = e.status.Notify(ctx, e.actor, entry.ID)
	assert.True(t, apperr.HasCode(err, "invalid_transition"))
}

func TestSeatAtTable(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	tbl := e.fx.SeedTable(t, "3", 2)
	_, err := e.fx.Stores.Tables.Fetch(ctx, e.fx.Scope, models.TableFilter{})
	require.NoError(t, err)
	entry := e.party(t, "Ana", "+5511999990000")

	require.NoError(t, e.status.Seat(ctx, e.actor, entry.ID, tbl.ID))

	got, _ := e.fx.Stores.Waitlist.Get(entry.ID)
	assert.Equal(t, models.WaitlistSeated, got.Status)
	gotTbl, _ := e.fx.Stores.Tables.Get(tbl.ID)
	assert.Equal(t, models.TableOccupied, gotTbl.Status)

	other := e.party(t, "Bia", "+5511777770000")
	err = e.status.Seat(ctx, e.actor, other.ID, tbl.ID)
	assert.True(t, apperr.HasCode(err, "table_occupied"))
	still, _ := e.fx.Stores.Waitlist.Get(other.ID)
	assert.Equal(t, models.WaitlistWaiting, still.Status)
}

func TestRemoveDropsEntry(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	entry := e.party(t, "Ana", "+5511999990000")
	other := e.party(t, "Bia", "+5511777770000")

	require.NoError(t, e.status.Remove(ctx, e.actor, entry.ID))

	items := e.fx.Stores.Waitlist.Items()
	require.Len(t, items, 1)
	assert.Equal(t, other.ID, items[0].ID)

	var count int64
	e.fx.DB.Model(&models.WaitlistEntry{}).Where("id = ?", entry.ID).Count(&count)
	assert.Zero(t, count)

	assert.True(t, apperr.HasCode(e.status.Remove(ctx, e.actor, entry.ID), "waitlist_entry_not_found"))
}
