package usecase

import (
	"context"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/notify"
	"github.com/BruksfildServices01/restaurant-floor/internal/stores"
)

// Texts addresses guest SMS on behalf of the loaded restaurant.
type Texts struct {
	sender notify.Sender
	stores *stores.Set
}

func NewTexts(sender notify.Sender, s *stores.Set) *Texts {
	return &Texts{sender: sender, stores: s}
}

// Enabled reports whether the restaurant wants automatic guest texts.
// Texts are on until the restaurant record says otherwise.
func (t *Texts) Enabled() bool {
	r, ok := t.stores.Restaurant()
	if !ok {
		return true
	}
	return r.Settings.Data().SMSNotifications
}

func (t *Texts) RestaurantName() string {
	if r, ok := t.stores.Restaurant(); ok && r.Name != "" {
		return r.Name
	}
	return "the restaurant"
}

// PhoneOf prefers the embedded guest and falls back to the client cache.
func (t *Texts) PhoneOf(clientID string, embedded *models.Client) (string, error) {
	if embedded != nil && embedded.Phone != "" {
		return embedded.Phone, nil
	}
	if c, ok := t.stores.Clients.Get(clientID); ok && c.Phone != "" {
		return c.Phone, nil
	}
	return "", apperr.Validation("client_phone_missing")
}

func (t *Texts) Send(ctx context.Context, actor Actor, to, body string) error {
	return t.sender.Send(ctx, notify.SMS{To: to, Body: body, RestaurantID: actor.RestaurantID})
}
