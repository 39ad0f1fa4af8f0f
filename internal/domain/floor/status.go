package floor

import (
	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
)

// ===============================
// Table Status
// ===============================

var allowed = map[models.TableStatus][]models.TableStatus{
	models.TableAvailable: {models.TableOccupied, models.TableReserved},
	models.TableOccupied:  {models.TableCleaning},
	models.TableCleaning:  {models.TableAvailable},
	models.TableReserved:  {models.TableOccupied},
}

// CanTransition guards every table status change. Any status may go back
// to available and a same-status move is a no-op.
func CanTransition(from, to models.TableStatus) error {
	if !to.Valid() {
		return apperr.Validation("invalid_status")
	}
	if from == to || to == models.TableAvailable {
		return nil
	}
	for _, next := range allowed[from] {
		if next == to {
			return nil
		}
	}
	return apperr.Validation("invalid_transition")
}
