package waitlist

import (
	"strings"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
)

// DefaultEstimatedWait is used when a party joins without an estimate, in minutes.
const DefaultEstimatedWait = 15

var allowed = map[models.WaitlistStatus][]models.WaitlistStatus{
	models.WaitlistWaiting:  {models.WaitlistNotified, models.WaitlistSeated, models.WaitlistCancelled},
	models.WaitlistNotified: {models.WaitlistSeated, models.WaitlistCancelled},
}

func CanTransition(from, to models.WaitlistStatus) error {
	for _, next := range allowed[from] {
		if next == to {
			return nil
		}
	}
	return apperr.Conflict("invalid_transition")
}

// IsOpen reports whether the party is still queued.
func IsOpen(s models.WaitlistStatus) bool {
	return s == models.WaitlistWaiting || s == models.WaitlistNotified
}

type Party struct {
	Name      string
	Phone     string
	PartySize int
	Notes     string
	Estimate  *int
}

func (p Party) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return apperr.Validation("name_required")
	}
	if strings.TrimSpace(p.Phone) == "" {
		return apperr.Validation("phone_required")
	}
	if p.PartySize < 1 {
		return apperr.Validation("invalid_party_size")
	}
	if p.Estimate != nil && *p.Estimate < 0 {
		return apperr.Validation("invalid_estimate")
	}
	return nil
}

// SplitName turns "Ana Maria Souza" into ("Ana", "Maria Souza").
func SplitName(full string) (first, last string) {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}
