package order

import (
	"context"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/audit"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/payment"
	"github.com/BruksfildServices01/restaurant-floor/internal/stores"
	"github.com/BruksfildServices01/restaurant-floor/internal/usecase"
)

// RefundOrder returns money on a settled order. The order itself is left
// paid; the running refunded amount caps later partial refunds.
type RefundOrder struct {
	orders   *stores.Orders
	payments payment.Gateway
	audit    *audit.Dispatcher
}

func NewRefundOrder(orders *stores.Orders, payments payment.Gateway, audit *audit.Dispatcher) *RefundOrder {
	return &RefundOrder{orders: orders, payments: payments, audit: audit}
}

// Execute refunds whatever is left of the order when amount is nil.
func (uc *RefundOrder) Execute(
	ctx context.Context,
	actor usecase.Actor,
	orderID string,
	amount *float64,
) (payment.Refund, error) {

	if err := actor.Validate(); err != nil {
		return payment.Refund{}, err
	}

	if uc.payments == nil {
		return payment.Refund{}, apperr.Validation("payments_unavailable")
	}

	// the gateway call runs inside Mutate, so the order stays reserved
	// until the refunded amount is written back
	var refund payment.Refund
	err := uc.orders.Mutate(ctx, orderID, func(o models.Order) (models.OrderPatch, error) {
		if o.RestaurantID != actor.RestaurantID {
			return models.OrderPatch{}, apperr.Validation("scope_mismatch")
		}
		if o.Status != models.OrderPaid || o.PaymentIntentID == nil {
			return models.OrderPatch{}, apperr.Validation("order_not_refundable")
		}

		already := payment.ToMinor(o.Refunded)
		remaining := payment.ToMinor(o.Total) - already
		if remaining <= 0 {
			return models.OrderPatch{}, apperr.Validation("order_fully_refunded")
		}

		m := remaining
		if amount != nil {
			m = payment.ToMinor(*amount)
			if m <= 0 || m > remaining {
				return models.OrderPatch{}, apperr.Validation("invalid_amount")
			}
		}

		// nil asks the processor for a full refund
		var minor *int64
		if amount != nil || already > 0 {
			minor = &m
		}

		r, err := uc.payments.Refund(ctx, *o.PaymentIntentID, minor)
		if err != nil {
			return models.OrderPatch{}, err
		}
		if r.AmountMinor == 0 {
			r.AmountMinor = m
		}
		refund = r

		refunded := payment.FromMinor(already + m)
		return models.OrderPatch{Refunded: &refunded}, nil
	})
	if err != nil {
		return refund, err
	}

	uc.audit.Dispatch(audit.Event{
		RestaurantID: actor.RestaurantID,
		UserID:       actor.UserID,
		Action:       "order_refunded",
		Entity:       "order",
		EntityID:     orderID,
		Metadata: map[string]any{
			"refund_id": refund.ID,
			"amount":    payment.FromMinor(refund.AmountMinor),
		},
	})

	return refund, nil
}
