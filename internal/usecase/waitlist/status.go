package waitlist

import (
	"context"
	"time"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/audit"
	"github.com/BruksfildServices01/restaurant-floor/internal/domain/floor"
	domain "github.com/BruksfildServices01/restaurant-floor/internal/domain/waitlist"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/notify"
	"github.com/BruksfildServices01/restaurant-floor/internal/stores"
	"github.com/BruksfildServices01/restaurant-floor/internal/usecase"
)

type ChangeStatus struct {
	stores *stores.Set
	texts  *usecase.Texts
	audit  *audit.Dispatcher
	now    func() time.Time
}

func NewChangeStatus(s *stores.Set, texts *usecase.Texts, audit *audit.Dispatcher) *ChangeStatus {
	return &ChangeStatus{stores: s, texts: texts, audit: audit, now: time.Now}
}

// Execute applies a guarded status change. Seating stamps seated_at.
func (uc *ChangeStatus) Execute(
	ctx context.Context,
	actor usecase.Actor,
	id string,
	status models.WaitlistStatus,
) error {

	if err := actor.Validate(); err != nil {
		return err
	}

	var from models.WaitlistStatus
	err := uc.stores.Waitlist.Mutate(ctx, id, func(e models.WaitlistEntry) (models.WaitlistPatch, error) {
		if e.RestaurantID != actor.RestaurantID {
			return models.WaitlistPatch{}, apperr.Validation("scope_mismatch")
		}
		from = e.Status
		if err := domain.CanTransition(e.Status, status); err != nil {
			return models.WaitlistPatch{}, err
		}

		p := models.WaitlistPatch{Status: &status}
		now := uc.now().UTC()
		switch status {
		case models.WaitlistSeated:
			p.SeatedAt = &now
		case models.WaitlistNotified:
			p.NotifiedAt = &now
		}
		return p, nil
	})
	if err != nil {
		return err
	}

	uc.dispatch(actor, "waitlist_status_changed", id, map[string]any{"from": from, "to": status})
	return nil
}

// Notify texts the party that their table is ready. The entry is marked
// notified only after the text was handed off; a repeated notify resends
// and refreshes notified_at.
func (uc *ChangeStatus) Notify(ctx context.Context, actor usecase.Actor, id string) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if uc.texts == nil {
		return apperr.Validation("sms_unavailable")
	}

	// the text goes out inside Mutate: a second tap while it is in flight
	// fails with mutation_in_flight instead of texting the party twice
	err := uc.stores.Waitlist.Mutate(ctx, id, func(e models.WaitlistEntry) (models.WaitlistPatch, error) {
		if e.RestaurantID != actor.RestaurantID {
			return models.WaitlistPatch{}, apperr.Validation("scope_mismatch")
		}
		if e.Status != models.WaitlistNotified {
			if err := domain.CanTransition(e.Status, models.WaitlistNotified); err != nil {
				return models.WaitlistPatch{}, err
			}
		}

		phone, err := uc.texts.PhoneOf(e.ClientID, e.Client)
		if err != nil {
			return models.WaitlistPatch{}, err
		}
		if err := uc.texts.Send(ctx, actor, phone, notify.WaitlistReady(uc.texts.RestaurantName(), 0)); err != nil {
			return models.WaitlistPatch{}, err
		}

		notified := models.WaitlistNotified
		now := uc.now().UTC()
		return models.WaitlistPatch{Status: &notified, NotifiedAt: &now}, nil
	})
	if err != nil {
		return err
	}

	uc.dispatch(actor, "waitlist_notified", id, nil)
	return nil
}

// Seat moves the party to seated. With a table, the table is occupied in
// the same unit of work.
func (uc *ChangeStatus) Seat(ctx context.Context, actor usecase.Actor, id, tableID string) error {
	if tableID == "" {
		return uc.Execute(ctx, actor, id, models.WaitlistSeated)
	}
	if err := actor.Validate(); err != nil {
		return err
	}

	releaseEntry, err := uc.stores.Waitlist.Reserve(id)
	if err != nil {
		return err
	}
	defer releaseEntry()

	e, ok := uc.stores.Waitlist.Get(id)
	if !ok {
		return apperr.NotFound("waitlist_entry_not_found")
	}
	if e.RestaurantID != actor.RestaurantID {
		return apperr.Validation("scope_mismatch")
	}
	if err := domain.CanTransition(e.Status, models.WaitlistSeated); err != nil {
		return err
	}

	releaseTable, err := uc.stores.Tables.Reserve(tableID)
	if err != nil {
		return err
	}
	defer releaseTable()

	t, ok := uc.stores.Tables.Get(tableID)
	if !ok {
		return apperr.NotFound("table_not_found")
	}

	tablePatch, err := floor.Next(*t, floor.WaitlistSeated, floor.Facts{})
	if err != nil {
		return err
	}

	seated := models.WaitlistSeated
	now := uc.now().UTC()
	entryPatch := models.WaitlistPatch{Status: &seated, SeatedAt: &now}

	if err := uc.stores.Floor.Apply(ctx, actor.RestaurantID,
		floor.WaitlistChange(id, entryPatch),
		floor.TableChange(tableID, tablePatch),
	); err != nil {
		return err
	}

	if err := uc.stores.Waitlist.Reconcile(id, entryPatch); err != nil {
		return err
	}
	if err := uc.stores.Tables.Reconcile(tableID, tablePatch); err != nil {
		return err
	}

	uc.dispatch(actor, "waitlist_seated", id, map[string]any{"table_id": tableID})
	return nil
}

func (uc *ChangeStatus) dispatch(actor usecase.Actor, action, id string, meta map[string]any) {
	uc.audit.Dispatch(audit.Event{
		RestaurantID: actor.RestaurantID,
		UserID:       actor.UserID,
		Action:       action,
		Entity:       "waitlist_entry",
		EntityID:     id,
		Metadata:     meta,
	})
}

// Remove takes the entry off the list entirely, whatever its status.
func (uc *ChangeStatus) Remove(ctx context.Context, actor usecase.Actor, id string) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	e, ok := uc.stores.Waitlist.Get(id)
	if !ok {
		return apperr.NotFound("waitlist_entry_not_found")
	}
	if e.RestaurantID != actor.RestaurantID {
		return apperr.Validation("scope_mismatch")
	}

	if err := uc.stores.Waitlist.Delete(ctx, id); err != nil {
		return err
	}

	uc.dispatch(actor, "waitlist_removed", id, map[string]any{"status": e.Status})
	return nil
}
