package order

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/audit"
	"github.com/BruksfildServices01/restaurant-floor/internal/domain/floor"
	domain "github.com/BruksfildServices01/restaurant-floor/internal/domain/order"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/stores"
	"github.com/BruksfildServices01/restaurant-floor/internal/usecase"
)

type OpenInput struct {
	TableID  string             `json:"table_id"`
	ClientID *string            `json:"client_id,omitempty"`
	Items    []models.OrderItem `json:"items"`
	Notes    string             `json:"notes,omitempty"`
}

// OpenOrder creates an order and seats its table in one unit of work.
type OpenOrder struct {
	stores  *stores.Set
	taxRate float64
	audit   *audit.Dispatcher
}

func NewOpenOrder(s *stores.Set, taxRate float64, audit *audit.Dispatcher) *OpenOrder {
	return &OpenOrder{stores: s, taxRate: taxRate, audit: audit}
}

func (uc *OpenOrder) Execute(
	ctx context.Context,
	actor usecase.Actor,
	in OpenInput,
) (*models.Order, error) {

	if err := actor.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.TableID) == "" {
		return nil, apperr.Validation("table_required")
	}
	if len(in.Items) == 0 {
		return nil, apperr.Validation("items_required")
	}

	items, err := domain.Normalize(in.Items)
	if err != nil {
		return nil, err
	}

	release, err := uc.stores.Tables.Reserve(in.TableID)
	if err != nil {
		return nil, err
	}
	defer release()

	table, ok := uc.stores.Tables.Get(in.TableID)
	if !ok {
		return nil, apperr.NotFound("table_not_found")
	}
	if table.RestaurantID != actor.RestaurantID {
		return nil, apperr.Validation("scope_mismatch")
	}

	tableID := table.ID
	totals := domain.Compute(items, 0, uc.taxRate)
	o := &models.Order{
		ID:           uuid.NewString(),
		RestaurantID: actor.RestaurantID,
		TableID:      &tableID,
		ClientID:     in.ClientID,
		Items:        datatypes.JSONSlice[models.OrderItem](items),
		Status:       models.OrderPending,
		Subtotal:     totals.Subtotal,
		Tax:          totals.Tax,
		Tip:          totals.Tip,
		Total:        totals.Total,
		Notes:        in.Notes,
		CreatedBy:    actor.UserID,
	}

	tablePatch, err := floor.Next(*table, floor.OrderCreated, floor.Facts{OrderID: o.ID})
	if err != nil {
		return nil, err
	}

	if err := uc.stores.Floor.CreateWith(ctx, actor.RestaurantID, o, floor.TableChange(table.ID, tablePatch)); err != nil {
		return nil, err
	}

	seated := *table
	tablePatch.Apply(&seated)
	o.Table = &seated

	if err := uc.stores.Orders.Admit(o); err != nil {
		return nil, err
	}
	if err := uc.stores.Tables.Reconcile(table.ID, tablePatch); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		RestaurantID: actor.RestaurantID,
		UserID:       actor.UserID,
		Action:       "order_created",
		Entity:       "order",
		EntityID:     o.ID,
		Metadata: map[string]any{
			"table_id": table.ID,
			"total":    o.Total,
		},
	})

	return o, nil
}
