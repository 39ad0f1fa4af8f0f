package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/domain/floor"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
)

func TestFloorGatewayCreateWith(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)
	tables := NewTableGateway(gdb)
	orders := NewOrderGateway(gdb)
	uow := NewFloorGateway(gdb)

	table, err := tables.Insert(ctx, &models.Table{RestaurantID: "r1", Number: "1", Capacity: 2, Width: 60, Height: 60})
	require.NoError(t, err)

	order := &models.Order{ID: uuid.NewString(), RestaurantID: "r1", TableID: &table.ID}
	status := models.TableOccupied
	require.NoError(t, uow.CreateWith(ctx, "r1", order,
		floor.TableChange(table.ID, models.TablePatch{Status: &status, CurrentOrderID: &order.ID}),
	))

	got, err := tables.Get(ctx, "r1", table.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TableOccupied, got.Status)
	assert.Equal(t, order.ID, *got.CurrentOrderID)

	_, err = orders.Get(ctx, "r1", order.ID)
	assert.NoError(t, err)
}

func TestFloorGatewayRollsBackOnMissingRow(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)
	tables := NewTableGateway(gdb)
	orders := NewOrderGateway(gdb)
	uow := NewFloorGateway(gdb)

	order := &models.Order{ID: uuid.NewString(), RestaurantID: "r1"}
	status := models.TableOccupied
	err := uow.CreateWith(ctx, "r1", order,
		floor.TableChange("missing", models.TablePatch{Status: &status}),
	)
	assert.True(t, apperr.HasCode(err, "table_not_found"))

	_, err = orders.Get(ctx, "r1", order.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	// Apply is all-or-nothing too
	table, err := tables.Insert(ctx, &models.Table{RestaurantID: "r1", Number: "1", Capacity: 2, Width: 60, Height: 60})
	require.NoError(t, err)

	cleaning := models.TableCleaning
	paid := models.OrderPaid
	err = uow.Apply(ctx, "r1",
		floor.TableChange(table.ID, models.TablePatch{Status: &cleaning}),
		floor.OrderChange("missing", models.OrderPatch{Status: &paid}),
	)
	assert.True(t, apperr.HasCode(err, "order_not_found"))

	got, err := tables.Get(ctx, "r1", table.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TableAvailable, got.Status)
}

func TestFloorGatewayScopes(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)
	tables := NewTableGateway(gdb)
	uow := NewFloorGateway(gdb)

	table, err := tables.Insert(ctx, &models.Table{RestaurantID: "r1", Number: "1", Capacity: 2, Width: 60, Height: 60})
	require.NoError(t, err)

	status := models.TableCleaning
	err = uow.Apply(ctx, "r2", floor.TableChange(table.ID, models.TablePatch{Status: &status}))
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	err = uow.CreateWith(ctx, "r2", &models.Order{ID: uuid.NewString(), RestaurantID: "r1"})
	assert.True(t, apperr.HasCode(err, "scope_mismatch"))

	assert.True(t, apperr.HasCode(uow.Apply(ctx, ""), "scope_required"))
}
