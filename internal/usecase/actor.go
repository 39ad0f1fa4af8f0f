// Package usecase holds what every coordinator shares. The coordinators
// themselves live in one subpackage per entity.
package usecase

import "github.com/BruksfildServices01/restaurant-floor/internal/apperr"

// Actor is the signed-in staff member a use case runs for.
type Actor struct {
	RestaurantID string
	UserID       string
}

func (a Actor) Validate() error {
	if a.RestaurantID == "" {
		return apperr.Validation("scope_required")
	}
	return nil
}
