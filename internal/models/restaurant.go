package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DayHours struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed,omitempty"`
}

type RestaurantSettings struct {
	OpeningHours        map[string]DayHours `json:"opening_hours,omitempty"`
	Currency            string              `json:"currency"`
	Timezone            string              `json:"timezone"`
	ReservationDuration int                 `json:"reservation_duration"`
	AdvanceBookingDays  int                 `json:"advance_booking_days"`
	SMSNotifications    bool                `json:"sms_notifications"`
}

// Restaurant is the tenant root. Its own ID is the scope every other
// entity is partitioned by.
type Restaurant struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Address string `gorm:"size:255" json:"address"`
	Phone   string `gorm:"size:30" json:"phone"`
	Email   string `gorm:"size:100" json:"email"`
	OwnerID string `gorm:"size:36" json:"owner_id"`

	Settings         datatypes.JSONType[RestaurantSettings] `json:"settings"`
	PaymentAccountID *string                                `gorm:"size:64" json:"payment_account_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r Restaurant) GetID() string           { return r.ID }
func (r Restaurant) GetRestaurantID() string { return r.ID }

func (r *Restaurant) BeforeCreate(tx *gorm.DB) error {
	ensureID(&r.ID)
	return nil
}

type RestaurantFilter struct{}

type RestaurantPatch struct {
	Name     *string             `json:"name,omitempty"`
	Address  *string             `json:"address,omitempty"`
	Phone    *string             `json:"phone,omitempty"`
	Email    *string             `json:"email,omitempty"`
	Settings *RestaurantSettings `json:"settings,omitempty"`
}

func (p RestaurantPatch) Apply(r *Restaurant) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Address != nil {
		r.Address = *p.Address
	}
	if p.Phone != nil {
		r.Phone = *p.Phone
	}
	if p.Email != nil {
		r.Email = *p.Email
	}
	if p.Settings != nil {
		r.Settings = datatypes.NewJSONType(*p.Settings)
	}
}

func (p RestaurantPatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Address != nil {
		cols["address"] = *p.Address
	}
	if p.Phone != nil {
		cols["phone"] = *p.Phone
	}
	if p.Email != nil {
		cols["email"] = *p.Email
	}
	if p.Settings != nil {
		cols["settings"] = datatypes.NewJSONType(*p.Settings)
	}
	return cols
}

// DefaultSettings fills a new restaurant's settings. Blank currency and
// timezone fall back to BRL and America/Sao_Paulo.
func DefaultSettings(currency, timezone string) datatypes.JSONType[RestaurantSettings] {
	if currency == "" {
		currency = "BRL"
	}
	if timezone == "" {
		timezone = "America/Sao_Paulo"
	}
	return datatypes.NewJSONType(RestaurantSettings{
		Currency:            currency,
		Timezone:            timezone,
		ReservationDuration: 90,
		AdvanceBookingDays:  30,
		SMSNotifications:    true,
	})
}

func (r Restaurant) Currency() string {
	return r.Settings.Data().Currency
}

func (r Restaurant) Timezone() string {
	return r.Settings.Data().Timezone
}
