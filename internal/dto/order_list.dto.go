package dto

import (
	"time"

	"github.com/BruksfildServices01/restaurant-floor/internal/models"
)

type OrderListDTO struct {
	ID          string    `json:"id"`
	TableNumber string    `json:"table_number,omitempty"`
	ClientName  string    `json:"client_name,omitempty"`
	Status      string    `json:"status"`
	ItemCount   int       `json:"item_count"`
	Total       float64   `json:"total"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewOrderList(orders []*models.Order) []OrderListDTO {
	out := make([]OrderListDTO, 0, len(orders))
	for _, o := range orders {
		row := OrderListDTO{
			ID:        o.ID,
			Status:    string(o.Status),
			Total:     o.Total,
			CreatedAt: o.CreatedAt,
		}
		for _, it := range o.Items {
			row.ItemCount += it.Quantity
		}
		if o.Table != nil {
			row.TableNumber = o.Table.Number
		}
		if o.Client != nil {
			row.ClientName = o.Client.FullName()
		}
		out = append(out, row)
	}
	return out
}
