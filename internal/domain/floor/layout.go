package floor

import (
	"strings"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
)

const (
	MinTableSide   = 40
	MinElementSide = 20
)

func ValidateTable(t models.Table, existing []*models.Table) error {
	if strings.TrimSpace(t.Number) == "" {
		return apperr.Validation("table_number_required")
	}
	if t.Capacity < 1 {
		return apperr.Validation("invalid_capacity")
	}
	if t.Width < MinTableSide || t.Height < MinTableSide {
		return apperr.Validation("invalid_dimensions")
	}
	if t.Shape != "" && !t.Shape.Valid() {
		return apperr.Validation("invalid_shape")
	}
	for _, other := range existing {
		if other.ID != t.ID && strings.EqualFold(other.Number, t.Number) {
			return apperr.Conflict("table_number_taken")
		}
	}
	return nil
}

func ValidateElement(e models.FloorElement) error {
	if !e.Type.Valid() {
		return apperr.Validation("invalid_element_type")
	}
	if e.Width < MinElementSide || e.Height < MinElementSide {
		return apperr.Validation("invalid_dimensions")
	}
	return nil
}
