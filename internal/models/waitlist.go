package models

import (
	"time"

	"gorm.io/gorm"
)

type WaitlistStatus string

const (
	WaitlistWaiting   WaitlistStatus = "waiting"
	WaitlistNotified  WaitlistStatus = "notified"
	WaitlistSeated    WaitlistStatus = "seated"
	WaitlistCancelled WaitlistStatus = "cancelled"
)

// WaitlistEntry is one party queued for a table. Wait time is never
// stored; it is derived from JoinedAt.
type WaitlistEntry struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	RestaurantID string `gorm:"size:36;index;not null" json:"restaurant_id"`

	ClientID string  `gorm:"size:36;not null" json:"client_id"`
	Client   *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	PartySize         int            `gorm:"not null" json:"party_size"`
	Status            WaitlistStatus `gorm:"size:20;not null;default:'waiting'" json:"status"`
	EstimatedWaitTime *int           `json:"estimated_wait_time,omitempty"`

	JoinedAt   time.Time  `gorm:"not null" json:"joined_at"`
	NotifiedAt *time.Time `json:"notified_at,omitempty"`
	SeatedAt   *time.Time `json:"seated_at,omitempty"`
	Notes      string     `gorm:"type:text" json:"notes,omitempty"`
}

func (WaitlistEntry) TableName() string {
	return "waitlist"
}

func (w WaitlistEntry) GetID() string           { return w.ID }
func (w WaitlistEntry) GetRestaurantID() string { return w.RestaurantID }

func (w *WaitlistEntry) BeforeCreate(tx *gorm.DB) error {
	ensureID(&w.ID)
	if w.Status == "" {
		w.Status = WaitlistWaiting
	}
	if w.JoinedAt.IsZero() {
		w.JoinedAt = time.Now().UTC()
	}
	return nil
}

type WaitlistFilter struct {
	IncludeClosed bool
}

type WaitlistPatch struct {
	PartySize         *int            `json:"party_size,omitempty"`
	Status            *WaitlistStatus `json:"status,omitempty"`
	EstimatedWaitTime *int            `json:"estimated_wait_time,omitempty"`
	NotifiedAt        *time.Time      `json:"notified_at,omitempty"`
	SeatedAt          *time.Time      `json:"seated_at,omitempty"`
	Notes             *string         `json:"notes,omitempty"`
}

func (p WaitlistPatch) Apply(w *WaitlistEntry) {
	if p.PartySize != nil {
		w.PartySize = *p.PartySize
	}
	if p.Status != nil {
		w.Status = *p.Status
	}
	if p.EstimatedWaitTime != nil {
		v := *p.EstimatedWaitTime
		w.EstimatedWaitTime = &v
	}
	if p.NotifiedAt != nil {
		v := *p.NotifiedAt
		w.NotifiedAt = &v
	}
	if p.SeatedAt != nil {
		v := *p.SeatedAt
		w.SeatedAt = &v
	}
	if p.Notes != nil {
		w.Notes = *p.Notes
	}
}

func (p WaitlistPatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.PartySize != nil {
		cols["party_size"] = *p.PartySize
	}
	if p.Status != nil {
		cols["status"] = string(*p.Status)
	}
	if p.EstimatedWaitTime != nil {
		cols["estimated_wait_time"] = *p.EstimatedWaitTime
	}
	if p.NotifiedAt != nil {
		cols["notified_at"] = *p.NotifiedAt
	}
	if p.SeatedAt != nil {
		cols["seated_at"] = *p.SeatedAt
	}
	if p.Notes != nil {
		cols["notes"] = *p.Notes
	}
	return cols
}
