package order

import (
	"math"

	"github.com/BruksfildServices01/restaurant-floor/internal/models"
)

// DefaultTaxRate is applied when the configuration does not set one.
const DefaultTaxRate = 0.10

type Totals struct {
	Subtotal float64
	Tax      float64
	Tip      float64
	Total    float64
}

// Compute derives the order totals. Money is summed in whole cents and
// each figure is rounded half away from zero to two decimals.
func Compute(items []models.OrderItem, tip, taxRate float64) Totals {
	var subtotal int64
	for _, it := range items {
		subtotal += Cents(it.Price) * int64(it.Quantity)
	}

	tax := int64(math.Round(float64(subtotal) * taxRate))
	tipCents := Cents(tip)

	return Totals{
		Subtotal: FromCents(subtotal),
		Tax:      FromCents(tax),
		Tip:      FromCents(tipCents),
		Total:    FromCents(subtotal + tax + tipCents),
	}
}

func Cents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func FromCents(cents int64) float64 {
	return float64(cents) / 100
}

// Patch writes the items and every derived figure in one patch.
func (t Totals) Patch(items []models.OrderItem) models.OrderPatch {
	subtotal, tax, tip, total := t.Subtotal, t.Tax, t.Tip, t.Total
	return models.OrderPatch{
		Items:    &items,
		Subtotal: &subtotal,
		Tax:      &tax,
		Tip:      &tip,
		Total:    &total,
	}
}
