package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Client is a guest known to the restaurant. Removal is always soft.
type Client struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	RestaurantID string `gorm:"size:36;index;not null" json:"restaurant_id"`

	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100" json:"last_name"`
	Email     string `gorm:"size:100" json:"email,omitempty"`
	Phone     string `gorm:"size:30;index" json:"phone"`

	Tags                datatypes.JSONSlice[string] `json:"tags"`
	Allergies           datatypes.JSONSlice[string] `json:"allergies"`
	DietaryRestrictions datatypes.JSONSlice[string] `json:"dietary_restrictions"`
	Preferences         datatypes.JSONSlice[string] `json:"preferences"`
	Notes               string                      `gorm:"type:text" json:"notes,omitempty"`

	VisitCount    int        `gorm:"default:0" json:"visit_count"`
	TotalSpent    float64    `gorm:"default:0" json:"total_spent"`
	AverageRating *float64   `json:"average_rating,omitempty"`
	LastVisit     *time.Time `json:"last_visit,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c Client) GetID() string           { return c.ID }
func (c Client) GetRestaurantID() string { return c.RestaurantID }

func (c Client) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	for _, list := range []*datatypes.JSONSlice[string]{
		&c.Tags, &c.Allergies, &c.DietaryRestrictions, &c.Preferences,
	} {
		if *list == nil {
			*list = datatypes.JSONSlice[string]{}
		}
	}
	return nil
}

type ClientFilter struct{}

type ClientPatch struct {
	FirstName           *string    `json:"first_name,omitempty"`
	LastName            *string    `json:"last_name,omitempty"`
	Email               *string    `json:"email,omitempty"`
	Phone               *string    `json:"phone,omitempty"`
	Tags                *[]string  `json:"tags,omitempty"`
	Allergies           *[]string  `json:"allergies,omitempty"`
	DietaryRestrictions *[]string  `json:"dietary_restrictions,omitempty"`
	Preferences         *[]string  `json:"preferences,omitempty"`
	Notes               *string    `json:"notes,omitempty"`
	VisitCount          *int       `json:"visit_count,omitempty"`
	TotalSpent          *float64   `json:"total_spent,omitempty"`
	LastVisit           *time.Time `json:"last_visit,omitempty"`
}

func (p ClientPatch) Apply(c *Client) {
	if p.FirstName != nil {
		c.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		c.LastName = *p.LastName
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Tags != nil {
		c.Tags = cloneStrings(*p.Tags)
	}
	if p.Allergies != nil {
		c.Allergies = cloneStrings(*p.Allergies)
	}
	if p.DietaryRestrictions != nil {
		c.DietaryRestrictions = cloneStrings(*p.DietaryRestrictions)
	}
	if p.Preferences != nil {
		c.Preferences = cloneStrings(*p.Preferences)
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	if p.VisitCount != nil {
		c.VisitCount = *p.VisitCount
	}
	if p.TotalSpent != nil {
		c.TotalSpent = *p.TotalSpent
	}
	if p.LastVisit != nil {
		v := *p.LastVisit
		c.LastVisit = &v
	}
}

func (p ClientPatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.FirstName != nil {
		cols["first_name"] = *p.FirstName
	}
	if p.LastName != nil {
		cols["last_name"] = *p.LastName
	}
	if p.Email != nil {
		cols["email"] = *p.Email
	}
	if p.Phone != nil {
		cols["phone"] = *p.Phone
	}
	if p.Tags != nil {
		cols["tags"] = cloneStrings(*p.Tags)
	}
	if p.Allergies != nil {
		cols["allergies"] = cloneStrings(*p.Allergies)
	}
	if p.DietaryRestrictions != nil {
		cols["dietary_restrictions"] = cloneStrings(*p.DietaryRestrictions)
	}
	if p.Preferences != nil {
		cols["preferences"] = cloneStrings(*p.Preferences)
	}
	if p.Notes != nil {
		cols["notes"] = *p.Notes
	}
	if p.VisitCount != nil {
		cols["visit_count"] = *p.VisitCount
	}
	if p.TotalSpent != nil {
		cols["total_spent"] = *p.TotalSpent
	}
	if p.LastVisit != nil {
		cols["last_visit"] = *p.LastVisit
	}
	return cols
}

// cloneStrings never returns nil so JSON columns store [] instead of null.
func cloneStrings(in []string) datatypes.JSONSlice[string] {
	out := make(datatypes.JSONSlice[string], len(in))
	copy(out, in)
	return out
}
