package models

import (
	"time"

	"gorm.io/gorm"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationSeated    ReservationStatus = "seated"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationNoShow    ReservationStatus = "no_show"
)

type Reservation struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	RestaurantID string `gorm:"size:36;index;not null" json:"restaurant_id"`

	ClientID string  `gorm:"size:36;not null" json:"client_id"`
	Client   *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	// Date is YYYY-MM-DD and Time is HH:MM, both in the restaurant's timezone.
	Date      string            `gorm:"size:10;index;not null" json:"date"`
	Time      string            `gorm:"size:5;not null" json:"time"`
	PartySize int               `gorm:"not null" json:"party_size"`
	Status    ReservationStatus `gorm:"size:20;not null;default:'pending'" json:"status"`

	TableID *string `gorm:"size:36" json:"table_id,omitempty"`
	Table   *Table  `gorm:"foreignKey:TableID" json:"table,omitempty"`

	SpecialRequests string  `gorm:"type:text" json:"special_requests,omitempty"`
	Notes           string  `gorm:"type:text" json:"notes,omitempty"`
	AssignedTo      *string `gorm:"size:36" json:"assigned_to,omitempty"`
	CreatedBy       string  `gorm:"size:36" json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r Reservation) GetID() string           { return r.ID }
func (r Reservation) GetRestaurantID() string { return r.RestaurantID }

func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	ensureID(&r.ID)
	if r.Status == "" {
		r.Status = ReservationPending
	}
	return nil
}

type ReservationFilter struct {
	Date string
}

type ReservationPatch struct {
	Date            *string            `json:"date,omitempty"`
	Time            *string            `json:"time,omitempty"`
	PartySize       *int               `json:"party_size,omitempty"`
	Status          *ReservationStatus `json:"status,omitempty"`
	TableID         *string            `json:"table_id,omitempty"`
	SpecialRequests *string            `json:"special_requests,omitempty"`
	Notes           *string            `json:"notes,omitempty"`
	AssignedTo      *string            `json:"assigned_to,omitempty"`
}

func (p ReservationPatch) Apply(r *Reservation) {
	if p.Date != nil {
		r.Date = *p.Date
	}
	if p.Time != nil {
		r.Time = *p.Time
	}
	if p.PartySize != nil {
		r.PartySize = *p.PartySize
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.TableID != nil {
		r.TableID = optionalRef(*p.TableID)
		if r.Table != nil && (r.TableID == nil || r.Table.ID != *r.TableID) {
			r.Table = nil
		}
	}
	if p.SpecialRequests != nil {
		r.SpecialRequests = *p.SpecialRequests
	}
	if p.Notes != nil {
		r.Notes = *p.Notes
	}
	if p.AssignedTo != nil {
		r.AssignedTo = optionalRef(*p.AssignedTo)
	}
}

func (p ReservationPatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.Date != nil {
		cols["date"] = *p.Date
	}
	if p.Time != nil {
		cols["time"] = *p.Time
	}
	if p.PartySize != nil {
		cols["party_size"] = *p.PartySize
	}
	if p.Status != nil {
		cols["status"] = string(*p.Status)
	}
	if p.TableID != nil {
		cols["table_id"] = optionalRef(*p.TableID)
	}
	if p.SpecialRequests != nil {
		cols["special_requests"] = *p.SpecialRequests
	}
	if p.Notes != nil {
		cols["notes"] = *p.Notes
	}
	if p.AssignedTo != nil {
		cols["assigned_to"] = optionalRef(*p.AssignedTo)
	}
	return cols
}
