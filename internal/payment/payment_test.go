package payment

import (
	"context"
	"errors"
	"testing"

	mppayment "github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/refund"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
)

type fakePayments struct {
	created  []mppayment.Request
	status   string
	captured bool
	err      error
}

func (f *fakePayments) Create(_ context.Context, req mppayment.Request) (*mppayment.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, req)
	return &mppayment.Response{ID: 77, Status: "pending", TransactionAmount: req.TransactionAmount}, nil
}

func (f *fakePayments) Get(_ context.Context, id int) (*mppayment.Response, error) {
	return &mppayment.Response{ID: id, Status: f.status, TransactionAmount: 25.85, CurrencyID: "BRL"}, nil
}

func (f *fakePayments) Capture(_ context.Context, id int) (*mppayment.Response, error) {
	f.captured = true
	return &mppayment.Response{ID: id, Status: "approved", TransactionAmount: 25.85, CurrencyID: "BRL"}, nil
}

type fakeRefunds struct {
	partial []float64
	full    []int
}

func (f *fakeRefunds) Create(_ context.Context, paymentID int) (*refund.Response, error) {
	f.full = append(f.full, paymentID)
	return &refund.Response{ID: 1, Amount: 25.85, Status: "approved"}, nil
}

func (f *fakeRefunds) CreatePartialRefund(_ context.Context, paymentID int, amount float64) (*refund.Response, error) {
	f.partial = append(f.partial, amount)
	return &refund.Response{ID: 2, Amount: amount, Status: "approved"}, nil
}

func newMP(p *fakePayments, r *fakeRefunds) *MercadoPago {
	logger, _ := test.NewNullLogger()
	return &MercadoPago{
		payments: p,
		refunds:  r,
		opts:     MercadoPagoOptions{PayerEmail: "guest@floor.local", PaymentMethod: "pix"},
		log:      logger,
	}
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(2585), ToMinor(25.85))
	assert.Equal(t, int64(3685), ToMinor(36.85))
	assert.Equal(t, 25.85, FromMinor(2585))
}

func TestCreateIntent(t *testing.T) {
	p := &fakePayments{}
	mp := newMP(p, &fakeRefunds{})

	intent, err := mp.CreateIntent(context.Background(), IntentRequest{AmountMinor: 2585, Currency: "BRL", RestaurantID: "r1", OrderID: "o1"})
	require.NoError(t, err)
	assert.Equal(t, "77", intent.ID)
	assert.Equal(t, StatusPending, intent.Status)
	assert.Equal(t, int64(2585), intent.AmountMinor)

	require.Len(t, p.created, 1)
	assert.Equal(t, 25.85, p.created[0].TransactionAmount)
	assert.Equal(t, "o1", p.created[0].ExternalReference)
	assert.Equal(t, "guest@floor.local", p.created[0].Payer.Email)

	_, err = mp.CreateIntent(context.Background(), IntentRequest{AmountMinor: 0})
	assert.True(t, apperr.HasCode(err, "invalid_amount"))

	p.err = errors.New("503")
	_, err = mp.CreateIntent(context.Background(), IntentRequest{AmountMinor: 100, OrderID: "o2"})
	assert.True(t, apperr.HasCode(err, "payment_create_failed"))
}

func TestConfirm(t *testing.T) {
	p := &fakePayments{status: "authorized"}
	mp := newMP(p, &fakeRefunds{})

	intent, err := mp.Confirm(context.Background(), "77")
	require.NoError(t, err)
	assert.True(t, p.captured)
	assert.Equal(t, StatusApproved, intent.Status)

	p.status = "rejected"
	p.captured = false
	_, err = mp.Confirm(context.Background(), "77")
	assert.True(t, apperr.HasCode(err, "payment_not_approved"))
	assert.False(t, p.captured)

	_, err = mp.Confirm(context.Background(), "abc")
	assert.True(t, apperr.HasCode(err, "invalid_intent_id"))
}

func TestRefund(t *testing.T) {
	r := &fakeRefunds{}
	mp := newMP(&fakePayments{}, r)

	full, err := mp.Refund(context.Background(), "77", nil)
	require.NoError(t, err)
	assert.Equal(t, []int{77}, r.full)
	assert.Equal(t, int64(2585), full.AmountMinor)

	amount := int64(500)
	part, err := mp.Refund(context.Background(), "77", &amount)
	require.NoError(t, err)
	assert.Equal(t, []float64{5}, r.partial)
	assert.Equal(t, int64(500), part.AmountMinor)

	zero := int64(0)
	_, err = mp.Refund(context.Background(), "77", &zero)
	assert.True(t, apperr.HasCode(err, "invalid_amount"))
}
