package payment

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mercadopago/sdk-go/pkg/config"
	mppayment "github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/refund"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
)

type mpPayments interface {
	Create(ctx context.Context, request mppayment.Request) (*mppayment.Response, error)
	Get(ctx context.Context, id int) (*mppayment.Response, error)
	Capture(ctx context.Context, id int) (*mppayment.Response, error)
}

type mpRefunds interface {
	Create(ctx context.Context, paymentID int) (*refund.Response, error)
	CreatePartialRefund(ctx context.Context, paymentID int, amount float64) (*refund.Response, error)
}

type MercadoPagoOptions struct {
	AccessToken   string
	PayerEmail    string
	PaymentMethod string
}

// MercadoPago maps intents onto Mercado Pago payments. The intent id is
// the payment id.
type MercadoPago struct {
	payments mpPayments
	refunds  mpRefunds
	opts     MercadoPagoOptions
	log      logrus.FieldLogger
}

func NewMercadoPago(opts MercadoPagoOptions, log logrus.FieldLogger) (*MercadoPago, error) {
	cfg, err := config.New(opts.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &MercadoPago{
		payments: mppayment.NewClient(cfg),
		refunds:  refund.NewClient(cfg),
		opts:     opts,
		log:      log.WithField("component", "payment"),
	}, nil
}

func (m *MercadoPago) CreateIntent(ctx context.Context, req IntentRequest) (Intent, error) {
	if req.AmountMinor <= 0 {
		return Intent{}, apperr.Validation("invalid_amount")
	}

	res, err := m.payments.Create(ctx, mppayment.Request{
		TransactionAmount: FromMinor(req.AmountMinor),
		PaymentMethodID:   m.opts.PaymentMethod,
		ExternalReference: req.OrderID,
		Description:       "order " + req.OrderID,
		Payer: &mppayment.PayerRequest{
			Email: m.opts.PayerEmail,
		},
	})
	if err != nil {
		m.log.WithError(err).WithField("order", req.OrderID).Warn("create payment failed")
		return Intent{}, apperr.Remote("payment_create_failed", err)
	}

	return Intent{
		ID:          strconv.Itoa(res.ID),
		Status:      normalize(res.Status),
		AmountMinor: ToMinor(res.TransactionAmount),
		Currency:    req.Currency,
	}, nil
}

// Confirm captures an authorized payment and succeeds only once the
// processor reports it approved.
func (m *MercadoPago) Confirm(ctx context.Context, intentID string) (Intent, error) {
	id, err := strconv.Atoi(intentID)
	if err != nil {
		return Intent{}, apperr.Validation("invalid_intent_id")
	}

	res, err := m.payments.Get(ctx, id)
	if err != nil {
		return Intent{}, apperr.Remote("payment_fetch_failed", err)
	}

	if res.Status == "authorized" {
		if res, err = m.payments.Capture(ctx, id); err != nil {
			return Intent{}, apperr.Remote("payment_capture_failed", err)
		}
	}

	intent := Intent{
		ID:          intentID,
		Status:      normalize(res.Status),
		AmountMinor: ToMinor(res.TransactionAmount),
		Currency:    res.CurrencyID,
	}
	if intent.Status != StatusApproved {
		return intent, apperr.Wrap(apperr.KindRemote, "payment_not_approved", fmt.Errorf("status %q", res.Status))
	}
	return intent, nil
}

func (m *MercadoPago) Refund(ctx context.Context, intentID string, amountMinor *int64) (Refund, error) {
	id, err := strconv.Atoi(intentID)
	if err != nil {
		return Refund{}, apperr.Validation("invalid_intent_id")
	}

	var res *refund.Response
	if amountMinor == nil {
		res, err = m.refunds.Create(ctx, id)
	} else {
		if *amountMinor <= 0 {
			return Refund{}, apperr.Validation("invalid_amount")
		}
		res, err = m.refunds.CreatePartialRefund(ctx, id, FromMinor(*amountMinor))
	}
	if err != nil {
		m.log.WithError(err).WithField("intent", intentID).Warn("refund failed")
		return Refund{}, apperr.Remote("payment_refund_failed", err)
	}

	return Refund{
		ID:          strconv.Itoa(res.ID),
		IntentID:    intentID,
		AmountMinor: ToMinor(res.Amount),
		Status:      res.Status,
	}, nil
}

func normalize(status string) Status {
	switch status {
	case "approved":
		return StatusApproved
	case "rejected", "cancelled":
		return StatusRejected
	case "refunded", "charged_back":
		return StatusRefunded
	}
	return StatusPending
}

var _ Gateway = (*MercadoPago)(nil)
