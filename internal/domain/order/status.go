package order

import (
	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
)

// ===============================
// Order Status
// ===============================

var pipeline = []models.OrderStatus{
	models.OrderPending,
	models.OrderInProgress,
	models.OrderReady,
	models.OrderServed,
	models.OrderPaid,
}

func rank(s models.OrderStatus) int {
	for i, st := range pipeline {
		if st == s {
			return i
		}
	}
	return -1
}

// CanAdvance allows forward moves along the kitchen pipeline only.
func CanAdvance(from, to models.OrderStatus) error {
	next := rank(to)
	if next < 0 {
		return apperr.Validation("invalid_status")
	}
	if next <= rank(from) {
		return apperr.Conflict("invalid_transition")
	}
	return nil
}

// CanEdit rejects item and tip changes once the bill is settled.
func CanEdit(current models.OrderStatus) error {
	if current == models.OrderPaid {
		return apperr.Validation("order_closed")
	}
	return nil
}

// IsActive reports whether the kitchen or floor still works the order.
func IsActive(s models.OrderStatus) bool {
	return s != models.OrderServed && s != models.OrderPaid
}

// IsOpen reports whether the order still holds its table.
func IsOpen(s models.OrderStatus) bool {
	return s != models.OrderPaid
}

// OpenOnTable lists unpaid orders seated at tableID, skipping exceptID.
func OpenOnTable(orders []*models.Order, tableID, exceptID string) []string {
	var ids []string
	for _, o := range orders {
		if o.ID == exceptID || !IsOpen(o.Status) {
			continue
		}
		if o.TableID != nil && *o.TableID == tableID {
			ids = append(ids, o.ID)
		}
	}
	return ids
}
