package floor

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/audit"
	domain "github.com/BruksfildServices01/restaurant-floor/internal/domain/floor"
	"github.com/BruksfildServices01/restaurant-floor/internal/domain/order"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/stores"
	"github.com/BruksfildServices01/restaurant-floor/internal/usecase"
)

// EditLayout places, moves and removes tables and decorations on the
// floor plan.
type EditLayout struct {
	stores *stores.Set
	audit  *audit.Dispatcher
}

func NewEditLayout(s *stores.Set, audit *audit.Dispatcher) *EditLayout {
	return &EditLayout{stores: s, audit: audit}
}

func (uc *EditLayout) CreateTable(ctx context.Context, actor usecase.Actor, t models.Table) (*models.Table, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	t.ID = ""
	t.RestaurantID = actor.RestaurantID
	t.Number = strings.TrimSpace(t.Number)
	t.Status = models.TableAvailable
	t.CurrentOrderID, t.CurrentReservationID = nil, nil
	if t.Shape == "" {
		t.Shape = models.ShapeSquare
	}

	if err := domain.ValidateTable(t, uc.stores.Tables.Items()); err != nil {
		return nil, err
	}

	created, err := uc.stores.Tables.Create(ctx, &t)
	if err != nil {
		return nil, err
	}

	uc.dispatch(actor, "table_created", "table", created.ID, map[string]any{"number": created.Number})
	return created, nil
}

// UpdateTable edits the table's shape and seating. Status and the
// current order and reservation only move through floor events.
func (uc *EditLayout) UpdateTable(ctx context.Context, actor usecase.Actor, id string, p models.TablePatch) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	p.Status, p.CurrentOrderID, p.CurrentReservationID = nil, nil, nil

	err := uc.stores.Tables.Mutate(ctx, id, func(t models.Table) (models.TablePatch, error) {
		if t.RestaurantID != actor.RestaurantID {
			return models.TablePatch{}, apperr.Validation("scope_mismatch")
		}
		next := t
		p.Apply(&next)
		if err := domain.ValidateTable(next, uc.stores.Tables.Items()); err != nil {
			return models.TablePatch{}, err
		}
		return p, nil
	})
	if err != nil {
		return err
	}

	uc.dispatch(actor, "table_updated", "table", id, nil)
	return nil
}

func (uc *EditLayout) MoveTable(ctx context.Context, actor usecase.Actor, id string, to models.Position) error {
	return uc.UpdateTable(ctx, actor, id, models.TablePatch{Position: &to})
}

func (uc *EditLayout) DeleteTable(ctx context.Context, actor usecase.Actor, id string) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if len(order.OpenOnTable(uc.stores.Orders.Items(), id, "")) > 0 {
		return apperr.Conflict("table_has_active_order")
	}
	if err := uc.stores.Tables.Delete(ctx, id); err != nil {
		return err
	}

	uc.dispatch(actor, "table_deleted", "table", id, nil)
	return nil
}

func (uc *EditLayout) CreateElement(ctx context.Context, actor usecase.Actor, e models.FloorElement) (*models.FloorElement, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	e.ID = ""
	e.RestaurantID = actor.RestaurantID
	if err := domain.ValidateElement(e); err != nil {
		return nil, err
	}

	created, err := uc.stores.FloorElements.Create(ctx, &e)
	if err != nil {
		return nil, err
	}

	uc.dispatch(actor, "element_created", "floor_element", created.ID, map[string]any{"type": created.Type})
	return created, nil
}

func (uc *EditLayout) UpdateElement(ctx context.Context, actor usecase.Actor, id string, p models.FloorElementPatch) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	err := uc.stores.FloorElements.Mutate(ctx, id, func(e models.FloorElement) (models.FloorElementPatch, error) {
		if e.RestaurantID != actor.RestaurantID {
			return models.FloorElementPatch{}, apperr.Validation("scope_mismatch")
		}
		next := e
		p.Apply(&next)
		if err := domain.ValidateElement(next); err != nil {
			return models.FloorElementPatch{}, err
		}
		return p, nil
	})
	if err != nil {
		return err
	}

	uc.dispatch(actor, "element_updated", "floor_element", id, nil)
	return nil
}

func (uc *EditLayout) MoveElement(ctx context.Context, actor usecase.Actor, id string, to models.Position) error {
	return uc.UpdateElement(ctx, actor, id, models.FloorElementPatch{Position: &to})
}

func (uc *EditLayout) DeleteElement(ctx context.Context, actor usecase.Actor, id string) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := uc.stores.FloorElements.Delete(ctx, id); err != nil {
		return err
	}

	uc.dispatch(actor, "element_deleted", "floor_element", id, nil)
	return nil
}

func (uc *EditLayout) dispatch(actor usecase.Actor, action, entity, id string, meta map[string]any) {
	uc.audit.Dispatch(audit.Event{
		RestaurantID: actor.RestaurantID,
		UserID:       actor.UserID,
		Action:       action,
		Entity:       entity,
		EntityID:     id,
		Metadata:     meta,
	})
}
