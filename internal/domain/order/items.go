package order

import (
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
)

// Item edits never modify the input slice; they return a new list.

func ValidateItem(it models.OrderItem) error {
	if strings.TrimSpace(it.MenuItemID) == "" && strings.TrimSpace(it.Name) == "" {
		return apperr.Validation("menu_item_required")
	}
	if it.Quantity < 1 {
		return apperr.Validation("invalid_quantity")
	}
	if it.Price < 0 {
		return apperr.Validation("invalid_price")
	}
	return nil
}

// Normalize validates every item and assigns missing ids.
func Normalize(items []models.OrderItem) ([]models.OrderItem, error) {
	out := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		if err := ValidateItem(it); err != nil {
			return nil, err
		}
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		out = append(out, it)
	}
	return out, nil
}

func AddItem(items []models.OrderItem, it models.OrderItem) ([]models.OrderItem, error) {
	added, err := Normalize([]models.OrderItem{it})
	if err != nil {
		return nil, err
	}
	out := make([]models.OrderItem, 0, len(items)+1)
	out = append(out, items...)
	return append(out, added[0]), nil
}

func RemoveItem(items []models.OrderItem, itemID string) ([]models.OrderItem, error) {
	out := make([]models.OrderItem, 0, len(items))
	found := false
	for _, it := range items {
		if it.ID == itemID {
			found = true
			continue
		}
		out = append(out, it)
	}
	if !found {
		return nil, apperr.NotFound("item_not_found")
	}
	return out, nil
}

func SetQuantity(items []models.OrderItem, itemID string, qty int) ([]models.OrderItem, error) {
	if qty < 1 {
		return nil, apperr.Validation("invalid_quantity")
	}
	out := make([]models.OrderItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ID == itemID {
			out[i].Quantity = qty
			return out, nil
		}
	}
	return nil, apperr.NotFound("item_not_found")
}
