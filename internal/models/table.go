package models

import (
	"time"

	"gorm.io/gorm"
)

type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableOccupied  TableStatus = "occupied"
	TableReserved  TableStatus = "reserved"
	TableCleaning  TableStatus = "cleaning"
)

func (s TableStatus) Valid() bool {
	switch s {
	case TableAvailable, TableOccupied, TableReserved, TableCleaning:
		return true
	}
	return false
}

type TableShape string

const (
	ShapeCircle    TableShape = "circle"
	ShapeRectangle TableShape = "rectangle"
	ShapeSquare    TableShape = "square"
)

func (s TableShape) Valid() bool {
	switch s {
	case ShapeCircle, ShapeRectangle, ShapeSquare:
		return true
	}
	return false
}

// Position is a point on the floor plan, stored as position_x / position_y.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Table struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	RestaurantID string `gorm:"size:36;index;not null" json:"restaurant_id"`

	Number   string      `gorm:"size:20;not null" json:"number"`
	Capacity int         `gorm:"not null" json:"capacity"`
	Status   TableStatus `gorm:"size:20;not null;default:'available'" json:"status"`

	Position Position   `gorm:"embedded;embeddedPrefix:position_" json:"position"`
	Shape    TableShape `gorm:"size:20;default:'square'" json:"shape"`
	Width    float64    `json:"width"`
	Height   float64    `json:"height"`

	CurrentReservationID *string `gorm:"size:36" json:"current_reservation_id,omitempty"`
	CurrentOrderID       *string `gorm:"size:36" json:"current_order_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t Table) GetID() string           { return t.ID }
func (t Table) GetRestaurantID() string { return t.RestaurantID }

func (t *Table) BeforeCreate(tx *gorm.DB) error {
	ensureID(&t.ID)
	if t.Status == "" {
		t.Status = TableAvailable
	}
	return nil
}

type TableFilter struct{}

type TablePatch struct {
	Number   *string      `json:"number,omitempty"`
	Capacity *int         `json:"capacity,omitempty"`
	Status   *TableStatus `json:"status,omitempty"`
	Position *Position    `json:"position,omitempty"`
	Shape    *TableShape  `json:"shape,omitempty"`
	Width    *float64     `json:"width,omitempty"`
	Height   *float64     `json:"height,omitempty"`

	// Empty string clears the reference.
	CurrentReservationID *string `json:"current_reservation_id,omitempty"`
	CurrentOrderID       *string `json:"current_order_id,omitempty"`
}

func (p TablePatch) Apply(t *Table) {
	if p.Number != nil {
		t.Number = *p.Number
	}
	if p.Capacity != nil {
		t.Capacity = *p.Capacity
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Position != nil {
		t.Position = *p.Position
	}
	if p.Shape != nil {
		t.Shape = *p.Shape
	}
	if p.Width != nil {
		t.Width = *p.Width
	}
	if p.Height != nil {
		t.Height = *p.Height
	}
	if p.CurrentReservationID != nil {
		t.CurrentReservationID = optionalRef(*p.CurrentReservationID)
	}
	if p.CurrentOrderID != nil {
		t.CurrentOrderID = optionalRef(*p.CurrentOrderID)
	}
}

func (p TablePatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.Number != nil {
		cols["number"] = *p.Number
	}
	if p.Capacity != nil {
		cols["capacity"] = *p.Capacity
	}
	if p.Status != nil {
		cols["status"] = string(*p.Status)
	}
	if p.Position != nil {
		cols["position_x"] = p.Position.X
		cols["position_y"] = p.Position.Y
	}
	if p.Shape != nil {
		cols["shape"] = string(*p.Shape)
	}
	if p.Width != nil {
		cols["width"] = *p.Width
	}
	if p.Height != nil {
		cols["height"] = *p.Height
	}
	if p.CurrentReservationID != nil {
		cols["current_reservation_id"] = optionalRef(*p.CurrentReservationID)
	}
	if p.CurrentOrderID != nil {
		cols["current_order_id"] = optionalRef(*p.CurrentOrderID)
	}
	return cols
}

func optionalRef(id string) *string {
	if id == "" {
		return nil
	}
	return strPtr(id)
}
