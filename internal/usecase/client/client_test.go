package client

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/testutil"
	"github.com/BruksfildServices01/restaurant-floor/internal/usecase"
)

func setup(t *testing.T) (*testutil.Fixture, usecase.Actor, *models.Client) {
	t.Helper()
	fx := testutil.NewFixture(t)
	c := fx.SeedClient(t, "Ana", "+5511999990000")
	fx.Load(t)
	return fx, usecase.Actor{RestaurantID: fx.Scope, UserID: fx.UserID}, c
}

func TestTags(t *testing.T) {
	fx, actor, c := setup(t)
	ctx := context.Background()
	uc := NewTags(fx.Stores.Clients, nil)

	require.NoError(t, uc.AddTag(ctx, actor, c.ID, "vip"))
	before, _ := fx.Stores.Clients.Get(c.ID)
	assert.Equal(t, []string{"vip"}, []string(before.Tags))

	require.NoError(t, uc.AddTag(ctx, actor, c.ID, "vip"))
	after, _ := fx.Stores.Clients.Get(c.ID)
	assert.Same(t, before, after, "duplicate tag must not touch the cache")

	var stored models.Client
	require.NoError(t, fx.DB.First(&stored, "id = ?", c.ID).Error)
	assert.Equal(t, []string{"vip"}, []string(stored.Tags))

	require.NoError(t, uc.RemoveTag(ctx, actor, c.ID, "vip"))
	got, _ := fx.Stores.Clients.Get(c.ID)
	assert.Empty(t, got.Tags)

	assert.True(t, apperr.HasCode(uc.AddTag(ctx, actor, c.ID, "  "), "tag_required"))
	assert.True(t, apperr.HasCode(uc.AddTag(ctx, actor, "missing", "x"), "client_not_found"))
}

func TestRecordVisit(t *testing.T) {
	fx, actor, c := setup(t)
	ctx := context.Background()

	at := time.Date(2026, 5, 2, 21, 0, 0, 0, time.UTC)
	uc := NewRecordVisit(fx.Stores.Clients)
	uc.now = func() time.Time { return at }

	require.NoError(t, uc.Execute(ctx, actor, c.ID, 25.85))
	require.NoError(t, uc.Execute(ctx, actor, c.ID, 0.1))

	got, _ := fx.Stores.Clients.Get(c.ID)
	assert.Equal(t, 2, got.VisitCount)
	assert.Equal(t, 25.95, got.TotalSpent)
	require.NotNil(t, got.LastVisit)
	assert.True(t, at.Equal(*got.LastVisit))

	assert.True(t, apperr.HasCode(uc.Execute(ctx, actor, c.ID, -1), "invalid_amount"))
}

func TestSaveClient(t *testing.T) {
	fx, actor, _ := setup(t)
	ctx := context.Background()
	uc := NewSaveClient(fx.Stores.Clients, nil)

	_, err := uc.Create(ctx, actor, models.Client{FirstName: "Bruno"})
	assert.True(t, apperr.HasCode(err, "contact_required"))

	created, err := uc.Create(ctx, actor, models.Client{FirstName: " Bruno ", Email: "BRUNO@Mail.com", VisitCount: 9})
	require.NoError(t, err)
	assert.Equal(t, "Bruno", created.FirstName)
	assert.Equal(t, "bruno@mail.com", created.Email)
	assert.Zero(t, created.VisitCount)

	items := fx.Stores.Clients.Items()
	assert.Equal(t, created.ID, items[0].ID, "new clients go first")

	visits := 50
	notes := "window seat"
	require.NoError(t, uc.Update(ctx, actor, created.ID, models.ClientPatch{Notes: &notes, VisitCount: &visits}))
	got, _ := fx.Stores.Clients.Get(created.ID)
	assert.Equal(t, "window seat", got.Notes)
	assert.Zero(t, got.VisitCount)

	require.NoError(t, uc.Delete(ctx, actor, created.ID))
	_, ok := fx.Stores.Clients.Get(created.ID)
	assert.False(t, ok)

	var count int64
	fx.DB.Unscoped().Model(&models.Client{}).Where("id = ?", created.ID).Count(&count)
	assert.Equal(t, int64(1), count, "clients are soft deleted")
}
