package models

import (
	"time"

	"gorm.io/gorm"
)

type ElementType string

const (
	ElementTable  ElementType = "table"
	ElementBar    ElementType = "bar"
	ElementWall   ElementType = "wall"
	ElementDoor   ElementType = "door"
	ElementWindow ElementType = "window"
	ElementPlant  ElementType = "plant"
)

func (t ElementType) Valid() bool {
	switch t {
	case ElementTable, ElementBar, ElementWall, ElementDoor, ElementWindow, ElementPlant:
		return true
	}
	return false
}

// FloorElement is a non-table decoration drawn on the floor plan.
type FloorElement struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	RestaurantID string `gorm:"size:36;index;not null" json:"restaurant_id"`

	Type     ElementType `gorm:"size:20;not null" json:"type"`
	Position Position    `gorm:"embedded;embeddedPrefix:position_" json:"position"`
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	Rotation *float64    `json:"rotation,omitempty"`
	Label    *string     `gorm:"size:100" json:"label,omitempty"`
	TableID  *string     `gorm:"size:36" json:"table_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e FloorElement) GetID() string           { return e.ID }
func (e FloorElement) GetRestaurantID() string { return e.RestaurantID }

func (e *FloorElement) BeforeCreate(tx *gorm.DB) error {
	ensureID(&e.ID)
	return nil
}

type FloorElementFilter struct{}

type FloorElementPatch struct {
	Type     *ElementType `json:"type,omitempty"`
	Position *Position    `json:"position,omitempty"`
	Width    *float64     `json:"width,omitempty"`
	Height   *float64     `json:"height,omitempty"`
	Rotation *float64     `json:"rotation,omitempty"`
	Label    *string      `json:"label,omitempty"`
}

func (p FloorElementPatch) Apply(e *FloorElement) {
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.Position != nil {
		e.Position = *p.Position
	}
	if p.Width != nil {
		e.Width = *p.Width
	}
	if p.Height != nil {
		e.Height = *p.Height
	}
	if p.Rotation != nil {
		r := *p.Rotation
		e.Rotation = &r
	}
	if p.Label != nil {
		e.Label = optionalRef(*p.Label)
	}
}

func (p FloorElementPatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.Type != nil {
		cols["type"] = string(*p.Type)
	}
	if p.Position != nil {
		cols["position_x"] = p.Position.X
		cols["position_y"] = p.Position.Y
	}
	if p.Width != nil {
		cols["width"] = *p.Width
	}
	if p.Height != nil {
		cols["height"] = *p.Height
	}
	if p.Rotation != nil {
		cols["rotation"] = *p.Rotation
	}
	if p.Label != nil {
		cols["label"] = optionalRef(*p.Label)
	}
	return cols
}
