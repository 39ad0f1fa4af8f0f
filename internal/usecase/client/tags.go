package client

import (
	"context"
	"slices"
	"strings"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/audit"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/stores"
	"github.com/BruksfildServices01/restaurant-floor/internal/usecase"
)

type Tags struct {
	clients *stores.Clients
	audit   *audit.Dispatcher
}

func NewTags(clients *stores.Clients, audit *audit.Dispatcher) *Tags {
	return &Tags{clients: clients, audit: audit}
}

// AddTag is a no-op, with no remote call, when the guest already has tag.
func (uc *Tags) AddTag(ctx context.Context, actor usecase.Actor, clientID, tag string) error {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return apperr.Validation("tag_required")
	}

	c, ok := uc.clients.Get(clientID)
	if !ok {
		return apperr.NotFound("client_not_found")
	}
	if slices.Contains(c.Tags, tag) {
		return nil
	}

	return uc.write(ctx, actor, clientID, "client_tag_added", tag, func(tags []string) []string {
		if slices.Contains(tags, tag) {
			return tags
		}
		return append(slices.Clone(tags), tag)
	})
}

func (uc *Tags) RemoveTag(ctx context.Context, actor usecase.Actor, clientID, tag string) error {
	c, ok := uc.clients.Get(clientID)
	if !ok {
		return apperr.NotFound("client_not_found")
	}
	if !slices.Contains(c.Tags, tag) {
		return nil
	}

	return uc.write(ctx, actor, clientID, "client_tag_removed", tag, func(tags []string) []string {
		return slices.DeleteFunc(slices.Clone(tags), func(t string) bool { return t == tag })
	})
}

func (uc *Tags) write(
	ctx context.Context,
	actor usecase.Actor,
	clientID, action, tag string,
	edit func([]string) []string,
) error {

	if err := actor.Validate(); err != nil {
		return err
	}

	err := uc.clients.Mutate(ctx, clientID, func(c models.Client) (models.ClientPatch, error) {
		if c.RestaurantID != actor.RestaurantID {
			return models.ClientPatch{}, apperr.Validation("scope_mismatch")
		}
		tags := edit(c.Tags)
		return models.ClientPatch{Tags: &tags}, nil
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		RestaurantID: actor.RestaurantID,
		UserID:       actor.UserID,
		Action:       action,
		Entity:       "client",
		EntityID:     clientID,
		Metadata:     map[string]any{"tag": tag},
	})
	return nil
}
