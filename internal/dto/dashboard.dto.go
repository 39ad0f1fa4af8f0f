package dto

import "github.com/BruksfildServices01/restaurant-floor/internal/views"

type DashboardDTO struct {
	Date         string          `json:"date"`
	Counts       views.Counts    `json:"counts"`
	ActiveOrders []OrderListDTO  `json:"active_orders"`
	Waitlist     []views.WaitRow `json:"waitlist"`
}

type ClientDTO struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Phone      string     `json:"phone"`
	Email      string     `json:"email,omitempty"`
	Tags       []string   `json:"tags"`
	VisitCount int        `json:"visit_count"`
	TotalSpent float64    `json:"total_spent"`
	Tier       views.Tier `json:"tier"`
}
