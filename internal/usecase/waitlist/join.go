package waitlist

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/audit"
	domain "github.com/BruksfildServices01/restaurant-floor/internal/domain/waitlist"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/stores"
	"github.com/BruksfildServices01/restaurant-floor/internal/usecase"
)

// Join queues a party. The guest is looked up by phone within the
// restaurant and created when unknown.
type Join struct {
	stores *stores.Set
	audit  *audit.Dispatcher
	now    func() time.Time
}

func NewJoin(s *stores.Set, audit *audit.Dispatcher) *Join {
	return &Join{stores: s, audit: audit, now: time.Now}
}

func (uc *Join) Execute(ctx context.Context, actor usecase.Actor, p domain.Party) (*models.WaitlistEntry, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	client, err := uc.getOrCreateClient(ctx, actor, p)
	if err != nil {
		return nil, err
	}

	estimate := domain.DefaultEstimatedWait
	if p.Estimate != nil {
		estimate = *p.Estimate
	}

	entry, err := uc.stores.Waitlist.Create(ctx, &models.WaitlistEntry{
		RestaurantID:      actor.RestaurantID,
		ClientID:          client.ID,
		PartySize:         p.PartySize,
		Status:            models.WaitlistWaiting,
		EstimatedWaitTime: &estimate,
		JoinedAt:          uc.now().UTC(),
		Notes:             strings.TrimSpace(p.Notes),
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		RestaurantID: actor.RestaurantID,
		UserID:       actor.UserID,
		Action:       "waitlist_joined",
		Entity:       "waitlist_entry",
		EntityID:     entry.ID,
		Metadata:     map[string]any{"party_size": entry.PartySize, "client_id": client.ID},
	})
	return entry, nil
}

func (uc *Join) getOrCreateClient(ctx context.Context, actor usecase.Actor, p domain.Party) (*models.Client, error) {
	phone := strings.TrimSpace(p.Phone)

	found, err := uc.stores.ClientFinds.FindByPhone(ctx, actor.RestaurantID, phone)
	if err == nil {
		if _, cached := uc.stores.Clients.Get(found.ID); !cached {
			if err := uc.stores.Clients.Admit(found); err != nil {
				return nil, err
			}
		}
		return found, nil
	}
	if !apperr.IsKind(err, apperr.KindNotFound) {
		return nil, err
	}

	first, last := domain.SplitName(p.Name)
	return uc.stores.Clients.Create(ctx, &models.Client{
		RestaurantID: actor.RestaurantID,
		FirstName:    first,
		LastName:     last,
		Phone:        phone,
	})
}
