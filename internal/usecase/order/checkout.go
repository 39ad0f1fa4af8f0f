package order

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/audit"
	domain "github.com/BruksfildServices01/restaurant-floor/internal/domain/order"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/payment"
	"github.com/BruksfildServices01/restaurant-floor/internal/stores"
	"github.com/BruksfildServices01/restaurant-floor/internal/usecase"
)

// VisitRecorder credits a guest with a settled bill.
type VisitRecorder interface {
	Execute(ctx context.Context, actor usecase.Actor, clientID string, amount float64) error
}

type CheckoutInput struct {
	OrderID string               `json:"order_id"`
	Method  models.PaymentMethod `json:"method"`
}

type Checkout struct {
	stores   *stores.Set
	payments payment.Gateway
	visits   VisitRecorder
	currency string
	audit    *audit.Dispatcher
	log      logrus.FieldLogger
}

func NewCheckout(
	s *stores.Set,
	payments payment.Gateway,
	visits VisitRecorder,
	currency string,
	audit *audit.Dispatcher,
	log logrus.FieldLogger,
) *Checkout {
	return &Checkout{
		stores:   s,
		payments: payments,
		visits:   visits,
		currency: currency,
		audit:    audit,
		log:      log.WithField("usecase", "checkout"),
	}
}

// Execute charges card and mobile payments through the gateway before
// anything is written. A failed charge leaves the order and table as
// they were. The order stays reserved for the whole call, so concurrent
// edits and checkouts fail with mutation_in_flight.
func (uc *Checkout) Execute(
	ctx context.Context,
	actor usecase.Actor,
	in CheckoutInput,
) (*models.Order, error) {

	if err := actor.Validate(); err != nil {
		return nil, err
	}

	switch in.Method {
	case models.PaymentCash, models.PaymentCard, models.PaymentMobile:
	default:
		return nil, apperr.Validation("invalid_payment_method")
	}

	if _, ok := uc.stores.Orders.Get(in.OrderID); !ok {
		return nil, apperr.NotFound("order_not_found")
	}

	// held from before the charge until the order is settled: items can't
	// change under the amount being charged, and a second tap can't charge
	// again
	release, err := uc.stores.Orders.Reserve(in.OrderID)
	if err != nil {
		return nil, err
	}
	defer release()

	o, ok := uc.stores.Orders.Get(in.OrderID)
	if !ok {
		return nil, apperr.NotFound("order_not_found")
	}
	if o.RestaurantID != actor.RestaurantID {
		return nil, apperr.Validation("scope_mismatch")
	}
	if err := domain.CanAdvance(o.Status, models.OrderPaid); err != nil {
		return nil, err
	}

	method := in.Method
	extra := models.OrderPatch{PaymentMethod: &method}

	if method != models.PaymentCash {
		intentID, err := uc.charge(ctx, actor, o)
		if err != nil {
			return nil, err
		}
		extra.PaymentIntentID = &intentID
	}

	paid, err := settleReserved(ctx, uc.stores, actor, in.OrderID, extra)
	if err != nil {
		if extra.PaymentIntentID != nil {
			uc.log.WithError(err).
				WithFields(logrus.Fields{"order": in.OrderID, "intent": *extra.PaymentIntentID}).
				Error("payment confirmed but order not settled")
		}
		return nil, err
	}

	if paid.ClientID != nil && uc.visits != nil {
		if err := uc.visits.Execute(ctx, actor, *paid.ClientID, paid.Total); err != nil {
			uc.log.WithError(err).WithField("client", *paid.ClientID).Warn("record visit failed")
		}
	}

	uc.audit.Dispatch(audit.Event{
		RestaurantID: actor.RestaurantID,
		UserID:       actor.UserID,
		Action:       "order_paid",
		Entity:       "order",
		EntityID:     paid.ID,
		Metadata: map[string]any{
			"method": method,
			"total":  paid.Total,
		},
	})

	return paid, nil
}

func (uc *Checkout) charge(ctx context.Context, actor usecase.Actor, o *models.Order) (string, error) {
	if uc.payments == nil {
		return "", apperr.Validation("payments_unavailable")
	}

	currency := uc.currency
	if r, ok := uc.stores.Restaurant(); ok && r.Currency() != "" {
		currency = r.Currency()
	}

	intent, err := uc.payments.CreateIntent(ctx, payment.IntentRequest{
		AmountMinor:  payment.ToMinor(o.Total),
		Currency:     currency,
		RestaurantID: actor.RestaurantID,
		OrderID:      o.ID,
	})
	if err != nil {
		return "", err
	}

	if _, err := uc.payments.Confirm(ctx, intent.ID); err != nil {
		return "", err
	}
	return intent.ID, nil
}
