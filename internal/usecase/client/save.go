package client

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/audit"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/stores"
	"github.com/BruksfildServices01/restaurant-floor/internal/usecase"
)

type SaveClient struct {
	clients *stores.Clients
	audit   *audit.Dispatcher
}

func NewSaveClient(clients *stores.Clients, audit *audit.Dispatcher) *SaveClient {
	return &SaveClient{clients: clients, audit: audit}
}

func (uc *SaveClient) Create(ctx context.Context, actor usecase.Actor, c models.Client) (*models.Client, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	c.ID = ""
	c.RestaurantID = actor.RestaurantID
	c.FirstName = strings.TrimSpace(c.FirstName)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.VisitCount, c.TotalSpent, c.LastVisit = 0, 0, nil

	if c.FirstName == "" {
		return nil, apperr.Validation("first_name_required")
	}
	if c.Phone == "" && c.Email == "" {
		return nil, apperr.Validation("contact_required")
	}

	created, err := uc.clients.Create(ctx, &c)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		RestaurantID: actor.RestaurantID,
		UserID:       actor.UserID,
		Action:       "client_created",
		Entity:       "client",
		EntityID:     created.ID,
	})
	return created, nil
}

// Update edits contact and preference fields. Visit statistics are only
// written by RecordVisit.
func (uc *SaveClient) Update(ctx context.Context, actor usecase.Actor, id string, p models.ClientPatch) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	p.VisitCount, p.TotalSpent, p.LastVisit = nil, nil, nil
	if p.FirstName != nil && strings.TrimSpace(*p.FirstName) == "" {
		return apperr.Validation("first_name_required")
	}

	err := uc.clients.Mutate(ctx, id, func(c models.Client) (models.ClientPatch, error) {
		if c.RestaurantID != actor.RestaurantID {
			return models.ClientPatch{}, apperr.Validation("scope_mismatch")
		}
		return p, nil
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		RestaurantID: actor.RestaurantID,
		UserID:       actor.UserID,
		Action:       "client_updated",
		Entity:       "client",
		EntityID:     id,
	})
	return nil
}

func (uc *SaveClient) Delete(ctx context.Context, actor usecase.Actor, id string) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if c, ok := uc.clients.Get(id); ok && c.RestaurantID != actor.RestaurantID {
		return apperr.Validation("scope_mismatch")
	}
	if err := uc.clients.Delete(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		RestaurantID: actor.RestaurantID,
		UserID:       actor.UserID,
		Action:       "client_deleted",
		Entity:       "client",
		EntityID:     id,
	})
	return nil
}
