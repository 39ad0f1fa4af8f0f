package floor

import (
	"context"

	"github.com/BruksfildServices01/restaurant-floor/internal/models"
)

// Row is a record that belongs to one restaurant.
type Row interface {
	GetID() string
	GetRestaurantID() string
}

// Change is one scoped column update inside a unit of work.
type Change struct {
	Entity  string
	Model   any
	ID      string
	Columns map[string]any
}

// UnitOfWork commits changes that span entities (an order and its table,
// a reservation and its table) all together or not at all.
type UnitOfWork interface {
	Apply(ctx context.Context, scopeID string, changes ...Change) error
	CreateWith(ctx context.Context, scopeID string, row Row, changes ...Change) error
}

func TableChange(id string, p models.TablePatch) Change {
	return Change{Entity: "table", Model: &models.Table{}, ID: id, Columns: p.Columns()}
}

func OrderChange(id string, p models.OrderPatch) Change {
	return Change{Entity: "order", Model: &models.Order{}, ID: id, Columns: p.Columns()}
}

func ReservationChange(id string, p models.ReservationPatch) Change {
	return Change{Entity: "reservation", Model: &models.Reservation{}, ID: id, Columns: p.Columns()}
}

func WaitlistChange(id string, p models.WaitlistPatch) Change {
	return Change{Entity: "waitlist_entry", Model: &models.WaitlistEntry{}, ID: id, Columns: p.Columns()}
}

func ClientChange(id string, p models.ClientPatch) Change {
	return Change{Entity: "client", Model: &models.Client{}, ID: id, Columns: p.Columns()}
}

// Empty reports whether the change would write nothing.
func (c Change) Empty() bool {
	return len(c.Columns) == 0
}
