package order

import (
	"context"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/audit"
	domain "github.com/BruksfildServices01/restaurant-floor/internal/domain/order"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/stores"
	"github.com/BruksfildServices01/restaurant-floor/internal/usecase"
)

// EditOrder changes items and tip. Every edit rewrites the item list and
// all derived totals in a single patch, so the cached order is never seen
// with items and totals out of step.
type EditOrder struct {
	orders  *stores.Orders
	taxRate float64
	audit   *audit.Dispatcher
}

func NewEditOrder(orders *stores.Orders, taxRate float64, audit *audit.Dispatcher) *EditOrder {
	return &EditOrder{orders: orders, taxRate: taxRate, audit: audit}
}

func (uc *EditOrder) AddItem(ctx context.Context, actor usecase.Actor, orderID string, item models.OrderItem) error {
	return uc.edit(ctx, actor, orderID, "order_item_added", func(o models.Order) ([]models.OrderItem, float64, error) {
		items, err := domain.AddItem(o.Items, item)
		return items, o.Tip, err
	})
}

func (uc *EditOrder) RemoveItem(ctx context.Context, actor usecase.Actor, orderID, itemID string) error {
	return uc.edit(ctx, actor, orderID, "order_item_removed", func(o models.Order) ([]models.OrderItem, float64, error) {
		items, err := domain.RemoveItem(o.Items, itemID)
		return items, o.Tip, err
	})
}

func (uc *EditOrder) UpdateItemQuantity(ctx context.Context, actor usecase.Actor, orderID, itemID string, qty int) error {
	return uc.edit(ctx, actor, orderID, "order_item_updated", func(o models.Order) ([]models.OrderItem, float64, error) {
		items, err := domain.SetQuantity(o.Items, itemID, qty)
		return items, o.Tip, err
	})
}

func (uc *EditOrder) SetTip(ctx context.Context, actor usecase.Actor, orderID string, tip float64) error {
	if tip < 0 {
		return apperr.Validation("invalid_tip")
	}
	return uc.edit(ctx, actor, orderID, "order_tip_set", func(o models.Order) ([]models.OrderItem, float64, error) {
		return o.Items, tip, nil
	})
}

func (uc *EditOrder) edit(
	ctx context.Context,
	actor usecase.Actor,
	orderID string,
	action string,
	change func(models.Order) ([]models.OrderItem, float64, error),
) error {

	if err := actor.Validate(); err != nil {
		return err
	}

	var total float64
	err := uc.orders.Mutate(ctx, orderID, func(o models.Order) (models.OrderPatch, error) {
		if o.RestaurantID != actor.RestaurantID {
			return models.OrderPatch{}, apperr.Validation("scope_mismatch")
		}
		if err := domain.CanEdit(o.Status); err != nil {
			return models.OrderPatch{}, err
		}

		items, tip, err := change(o)
		if err != nil {
			return models.OrderPatch{}, err
		}

		totals := domain.Compute(items, tip, uc.taxRate)
		total = totals.Total
		return totals.Patch(items), nil
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		RestaurantID: actor.RestaurantID,
		UserID:       actor.UserID,
		Action:       action,
		Entity:       "order",
		EntityID:     orderID,
		Metadata:     map[string]any{"total": total},
	})
	return nil
}
