package order

import (
	"context"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/audit"
	"github.com/BruksfildServices01/restaurant-floor/internal/stores"
	"github.com/BruksfildServices01/restaurant-floor/internal/usecase"
)

type DeleteOrder struct {
	stores *stores.Set
	audit  *audit.Dispatcher
}

func NewDeleteOrder(s *stores.Set, audit *audit.Dispatcher) *DeleteOrder {
	return &DeleteOrder{stores: s, audit: audit}
}

// Execute removes an order. An order its table still points at can't be
// removed; settle it first so the table is released.
func (uc *DeleteOrder) Execute(ctx context.Context, actor usecase.Actor, id string) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	o, ok := uc.stores.Orders.Get(id)
	if !ok {
		return apperr.NotFound("order_not_found")
	}
	if o.RestaurantID != actor.RestaurantID {
		return apperr.Validation("scope_mismatch")
	}
	if o.TableID != nil {
		if t, ok := uc.stores.Tables.Get(*o.TableID); ok && t.CurrentOrderID != nil && *t.CurrentOrderID == id {
			return apperr.Conflict("order_holds_table")
		}
	}

	if err := uc.stores.Orders.Delete(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		RestaurantID: actor.RestaurantID,
		UserID:       actor.UserID,
		Action:       "order_deleted",
		Entity:       "order",
		EntityID:     id,
		Metadata:     map[string]any{"status": o.Status, "total": o.Total},
	})
	return nil
}
