package floor

import (
	"context"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/audit"
	domain "github.com/BruksfildServices01/restaurant-floor/internal/domain/floor"
	"github.com/BruksfildServices01/restaurant-floor/internal/domain/order"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/stores"
	"github.com/BruksfildServices01/restaurant-floor/internal/usecase"
)

type ChangeTableStatus struct {
	stores *stores.Set
	audit  *audit.Dispatcher
}

func NewChangeTableStatus(s *stores.Set, audit *audit.Dispatcher) *ChangeTableStatus {
	return &ChangeTableStatus{stores: s, audit: audit}
}

// Execute applies a manual status change. Freeing a table is refused
// while any unpaid order still sits on it.
func (uc *ChangeTableStatus) Execute(
	ctx context.Context,
	actor usecase.Actor,
	tableID string,
	status models.TableStatus,
) error {

	if err := actor.Validate(); err != nil {
		return err
	}

	t, ok := uc.stores.Tables.Get(tableID)
	if !ok {
		return apperr.NotFound("table_not_found")
	}
	if t.Status == status && status != models.TableAvailable {
		return nil
	}

	var from models.TableStatus
	err := uc.stores.Tables.Mutate(ctx, tableID, func(t models.Table) (models.TablePatch, error) {
		if t.RestaurantID != actor.RestaurantID {
			return models.TablePatch{}, apperr.Validation("scope_mismatch")
		}
		from = t.Status

		if status == models.TableAvailable {
			open := order.OpenOnTable(uc.stores.Orders.Items(), t.ID, "")
			return domain.Next(t, domain.TableFreed, domain.Facts{OpenOrderIDs: open})
		}

		if err := domain.CanTransition(t.Status, status); err != nil {
			return models.TablePatch{}, err
		}
		return models.TablePatch{Status: &status}, nil
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		RestaurantID: actor.RestaurantID,
		UserID:       actor.UserID,
		Action:       "table_status_changed",
		Entity:       "table",
		EntityID:     tableID,
		Metadata:     map[string]any{"from": from, "to": status},
	})
	return nil
}
