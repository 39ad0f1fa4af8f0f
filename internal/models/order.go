package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderInProgress OrderStatus = "in_progress"
	OrderReady      OrderStatus = "ready"
	OrderServed     OrderStatus = "served"
	OrderPaid       OrderStatus = "paid"
)

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentMobile PaymentMethod = "mobile"
)

// OrderItem lives inside the order's items JSON column.
type OrderItem struct {
	ID         string   `json:"id"`
	MenuItemID string   `json:"menu_item_id"`
	Name       string   `json:"name,omitempty"`
	Quantity   int      `json:"quantity"`
	Price      float64  `json:"price"`
	Notes      string   `json:"notes,omitempty"`
	Modifiers  []string `json:"modifiers,omitempty"`
}

// Order keeps Subtotal, Tax and Total derived from Items and Tip. They are
// always written together with the item list.
type Order struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	RestaurantID string `gorm:"size:36;index;not null" json:"restaurant_id"`

	TableID  *string `gorm:"size:36;index" json:"table_id,omitempty"`
	Table    *Table  `gorm:"foreignKey:TableID" json:"table,omitempty"`
	ClientID *string `gorm:"size:36" json:"client_id,omitempty"`
	Client   *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	Items  datatypes.JSONSlice[OrderItem] `json:"items"`
	Status OrderStatus                    `gorm:"size:20;not null;default:'pending'" json:"status"`

	Subtotal float64 `gorm:"not null;default:0" json:"subtotal"`
	Tax      float64 `gorm:"not null;default:0" json:"tax"`
	Tip      float64 `gorm:"not null;default:0" json:"tip"`
	Total    float64 `gorm:"not null;default:0" json:"total"`
	Refunded float64 `gorm:"not null;default:0" json:"refunded"`

	PaymentMethod   *PaymentMethod `gorm:"size:20" json:"payment_method,omitempty"`
	PaymentIntentID *string        `gorm:"size:64" json:"payment_intent_id,omitempty"`
	Notes           string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy       string         `gorm:"size:36" json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o Order) GetID() string           { return o.ID }
func (o Order) GetRestaurantID() string { return o.RestaurantID }

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	ensureID(&o.ID)
	if o.Status == "" {
		o.Status = OrderPending
	}
	if o.Items == nil {
		o.Items = datatypes.JSONSlice[OrderItem]{}
	}
	return nil
}

type OrderFilter struct {
	Status OrderStatus
}

type OrderPatch struct {
	Items           *[]OrderItem   `json:"items,omitempty"`
	Status          *OrderStatus   `json:"status,omitempty"`
	Subtotal        *float64       `json:"subtotal,omitempty"`
	Tax             *float64       `json:"tax,omitempty"`
	Tip             *float64       `json:"tip,omitempty"`
	Total           *float64       `json:"total,omitempty"`
	Refunded        *float64       `json:"refunded,omitempty"`
	PaymentMethod   *PaymentMethod `json:"payment_method,omitempty"`
	PaymentIntentID *string        `json:"payment_intent_id,omitempty"`
	Notes           *string        `json:"notes,omitempty"`
}

func (p OrderPatch) Apply(o *Order) {
	if p.Items != nil {
		o.Items = cloneItems(*p.Items)
	}
	if p.Status != nil {
		o.Status = *p.Status
	}
	if p.Subtotal != nil {
		o.Subtotal = *p.Subtotal
	}
	if p.Tax != nil {
		o.Tax = *p.Tax
	}
	if p.Tip != nil {
		o.Tip = *p.Tip
	}
	if p.Total != nil {
		o.Total = *p.Total
	}
	if p.Refunded != nil {
		o.Refunded = *p.Refunded
	}
	if p.PaymentMethod != nil {
		m := *p.PaymentMethod
		o.PaymentMethod = &m
	}
	if p.PaymentIntentID != nil {
		o.PaymentIntentID = optionalRef(*p.PaymentIntentID)
	}
	if p.Notes != nil {
		o.Notes = *p.Notes
	}
}

func (p OrderPatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.Items != nil {
		cols["items"] = cloneItems(*p.Items)
	}
	if p.Status != nil {
		cols["status"] = string(*p.Status)
	}
	if p.Subtotal != nil {
		cols["subtotal"] = *p.Subtotal
	}
	if p.Tax != nil {
		cols["tax"] = *p.Tax
	}
	if p.Tip != nil {
		cols["tip"] = *p.Tip
	}
	if p.Total != nil {
		cols["total"] = *p.Total
	}
	if p.Refunded != nil {
		cols["refunded"] = *p.Refunded
	}
	if p.PaymentMethod != nil {
		cols["payment_method"] = string(*p.PaymentMethod)
	}
	if p.PaymentIntentID != nil {
		cols["payment_intent_id"] = optionalRef(*p.PaymentIntentID)
	}
	if p.Notes != nil {
		cols["notes"] = *p.Notes
	}
	return cols
}

func cloneItems(in []OrderItem) datatypes.JSONSlice[OrderItem] {
	out := make(datatypes.JSONSlice[OrderItem], len(in))
	copy(out, in)
	return out
}
