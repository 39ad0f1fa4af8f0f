package order

import (
	"context"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/audit"
	"github.com/BruksfildServices01/restaurant-floor/internal/domain/floor"
	domain "github.com/BruksfildServices01/restaurant-floor/internal/domain/order"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/stores"
	"github.com/BruksfildServices01/restaurant-floor/internal/usecase"
)

type ChangeOrderStatus struct {
	stores *stores.Set
	audit  *audit.Dispatcher
}

func NewChangeOrderStatus(s *stores.Set, audit *audit.Dispatcher) *ChangeOrderStatus {
	return &ChangeOrderStatus{stores: s, audit: audit}
}

// Execute moves the order forward along the kitchen pipeline. Marking it
// paid here settles without a payment gateway (cash at the counter).
func (uc *ChangeOrderStatus) Execute(
	ctx context.Context,
	actor usecase.Actor,
	orderID string,
	status models.OrderStatus,
) (*models.Order, error) {

	if err := actor.Validate(); err != nil {
		return nil, err
	}

	if status == models.OrderPaid {
		o, err := settle(ctx, uc.stores, actor, orderID, models.OrderPatch{})
		if err != nil {
			return nil, err
		}
		uc.dispatch(actor, o)
		return o, nil
	}

	err := uc.stores.Orders.Mutate(ctx, orderID, func(o models.Order) (models.OrderPatch, error) {
		if o.RestaurantID != actor.RestaurantID {
			return models.OrderPatch{}, apperr.Validation("scope_mismatch")
		}
		if err := domain.CanAdvance(o.Status, status); err != nil {
			return models.OrderPatch{}, err
		}
		return models.OrderPatch{Status: &status}, nil
	})
	if err != nil {
		return nil, err
	}

	o, _ := uc.stores.Orders.Get(orderID)
	uc.dispatch(actor, o)
	return o, nil
}

func (uc *ChangeOrderStatus) dispatch(actor usecase.Actor, o *models.Order) {
	uc.audit.Dispatch(audit.Event{
		RestaurantID: actor.RestaurantID,
		UserID:       actor.UserID,
		Action:       "order_status_changed",
		Entity:       "order",
		EntityID:     o.ID,
		Metadata:     map[string]any{"status": o.Status},
	})
}

// settle marks the order paid and releases its table in one unit of
// work. extra carries payment details written with the status.
func settle(
	ctx context.Context,
	s *stores.Set,
	actor usecase.Actor,
	orderID string,
	extra models.OrderPatch,
) (*models.Order, error) {

	release, err := s.Orders.Reserve(orderID)
	if err != nil {
		return nil, err
	}
	defer release()

	return settleReserved(ctx, s, actor, orderID, extra)
}

// settleReserved is settle for a caller that already holds the order's
// in-flight slot.
func settleReserved(
	ctx context.Context,
	s *stores.Set,
	actor usecase.Actor,
	orderID string,
	extra models.OrderPatch,
) (*models.Order, error) {

	o, ok := s.Orders.Get(orderID)
	if !ok {
		return nil, apperr.NotFound("order_not_found")
	}
	if o.RestaurantID != actor.RestaurantID {
		return nil, apperr.Validation("scope_mismatch")
	}
	if err := domain.CanAdvance(o.Status, models.OrderPaid); err != nil {
		return nil, err
	}

	paid := models.OrderPaid
	extra.Status = &paid
	changes := []floor.Change{floor.OrderChange(orderID, extra)}

	var (
		tableID    string
		tablePatch models.TablePatch
	)
	if o.TableID != nil {
		if t, ok := s.Tables.Get(*o.TableID); ok {
			releaseTable, err := s.Tables.Reserve(t.ID)
			if err != nil {
				return nil, err
			}
			defer releaseTable()

			open := domain.OpenOnTable(s.Orders.Items(), t.ID, orderID)
			tablePatch, err = floor.Next(*t, floor.OrderPaid, floor.Facts{OrderID: orderID, OpenOrderIDs: open})
			if err != nil {
				return nil, err
			}
			tableID = t.ID
			changes = append(changes, floor.TableChange(tableID, tablePatch))
		}
	}

	if err := s.Floor.Apply(ctx, o.RestaurantID, changes...); err != nil {
		return nil, err
	}

	if err := s.Orders.Reconcile(orderID, extra); err != nil {
		return nil, err
	}
	if tableID != "" {
		if err := s.Tables.Reconcile(tableID, tablePatch); err != nil {
			return nil, err
		}
	}

	updated, _ := s.Orders.Get(orderID)
	return updated, nil
}
