package floor

import (
	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
)

// ===============================
// Floor Events
// ===============================

type Event string

const (
	OrderCreated      Event = "order_created"
	OrderPaid         Event = "order_paid"
	ReservationSeated Event = "reservation_seated"
	WaitlistSeated    Event = "waitlist_seated"
	TableFreed        Event = "table_freed"
)

// Facts is what the caller knows about the rest of the floor when an
// event hits a table.
type Facts struct {
	OrderID       string
	ReservationID string

	// OpenOrderIDs lists unpaid orders on the table, excluding OrderID.
	OpenOrderIDs []string
}

// Next is the single place that decides how a table reacts to a floor
// event. The returned patch is empty when nothing changes.
func Next(t models.Table, ev Event, f Facts) (models.TablePatch, error) {
	var p models.TablePatch

	switch ev {

	case OrderCreated:
		if err := seat(t, &p); err != nil {
			return p, err
		}
		id := f.OrderID
		p.CurrentOrderID = &id

	case OrderPaid:
		if len(f.OpenOrderIDs) > 0 {
			if t.CurrentOrderID == nil || *t.CurrentOrderID == f.OrderID {
				next := f.OpenOrderIDs[0]
				p.CurrentOrderID = &next
			}
			return p, nil
		}
		if t.Status == models.TableOccupied {
			status := models.TableCleaning
			p.Status = &status
		}
		none := ""
		p.CurrentOrderID = &none

	case ReservationSeated:
		if t.Status == models.TableOccupied {
			return p, apperr.Conflict("table_occupied")
		}
		if err := seat(t, &p); err != nil {
			return p, err
		}
		id := f.ReservationID
		p.CurrentReservationID = &id

	case WaitlistSeated:
		if t.Status == models.TableOccupied {
			return p, apperr.Conflict("table_occupied")
		}
		if err := seat(t, &p); err != nil {
			return p, err
		}

	case TableFreed:
		if len(f.OpenOrderIDs) > 0 {
			return p, apperr.Conflict("table_has_active_order")
		}
		status := models.TableAvailable
		none := ""
		p.Status = &status
		p.CurrentOrderID = &none
		p.CurrentReservationID = &none

	default:
		return p, apperr.Validation("unknown_event")
	}

	return p, nil
}

func seat(t models.Table, p *models.TablePatch) error {
	if t.Status == models.TableOccupied {
		return nil
	}
	if err := CanTransition(t.Status, models.TableOccupied); err != nil {
		return err
	}
	status := models.TableOccupied
	p.Status = &status
	return nil
}
