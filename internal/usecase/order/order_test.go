package order

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/payment"
	"github.com/BruksfildServices01/restaurant-floor/internal/testutil"
	"github.com/BruksfildServices01/restaurant-floor/internal/usecase"
	"github.com/BruksfildServices01/restaurant-floor/internal/usecase/client"
)

type fakePayments struct {
	intents  []payment.IntentRequest
	refunds  []*int64
	failWith error
	// onCall runs inside CreateIntent and Refund, while the order is
	// reserved.
	onCall func()
}

func (f *fakePayments) CreateIntent(_ context.Context, req payment.IntentRequest) (payment.Intent, error) {
	if f.onCall != nil {
		f.onCall()
	}
	f.intents = append(f.intents, req)
	return payment.Intent{ID: "pi_1", Status: payment.StatusPending, AmountMinor: req.AmountMinor, Currency: req.Currency}, nil
}

func (f *fakePayments) Confirm(_ context.Context, id string) (payment.Intent, error) {
	if f.failWith != nil {
		return payment.Intent{}, f.failWith
	}
	return payment.Intent{ID: id, Status: payment.StatusApproved}, nil
}

func (f *fakePayments) Refund(_ context.Context, id string, amount *int64) (payment.Refund, error) {
	if f.onCall != nil {
		f.onCall()
	}
	f.refunds = append(f.refunds, amount)
	r := payment.Refund{ID: "re_1", IntentID: id, Status: "approved"}
	if amount != nil {
		r.AmountMinor = *amount
	}
	return r, nil
}

type env struct {
	fx     *testutil.Fixture
	actor  usecase.Actor
	table  *models.Table
	client *models.Client
	pay    *fakePayments

	open     *OpenOrder
	edit     *EditOrder
	status   *ChangeOrderStatus
	checkout *Checkout
	refund   *RefundOrder
}

func newEnv(t *testing.T) *env {
	t.Helper()
	fx := testutil.NewFixture(t)
	table := fx.SeedTable(t, "12", 4)
	c := fx.SeedClient(t, "Ana", "+5511999990000")
	fx.Load(t)

	logger, _ := test.NewNullLogger()
	pay := &fakePayments{}
	s := fx.Stores

	return &env{
		fx:       fx,
		actor:    usecase.Actor{RestaurantID: fx.Scope, UserID: fx.UserID},
		table:    table,
		client:   c,
		pay:      pay,
		open:     NewOpenOrder(s, 0.10, nil),
		edit:     NewEditOrder(s.Orders, 0.10, nil),
		status:   NewChangeOrderStatus(s, nil),
		checkout: NewCheckout(s, pay, client.NewRecordVisit(s.Clients), "USD", nil, logger),
		refund:   NewRefundOrder(s.Orders, pay, nil),
	}
}

func (e *env) openDinner(t *testing.T) *models.Order {
	t.Helper()
	o, err := e.open.Execute(context.Background(), e.actor, OpenInput{
		TableID:  e.table.ID,
		ClientID: &e.client.ID,
		Items: []models.OrderItem{
			{ID: "a", MenuItemID: "pasta", Quantity: 2, Price: 10.00},
			{ID: "b", MenuItemID: "soda", Quantity: 1, Price: 3.50},
		},
	})
	require.NoError(t, err)
	return o
}

func TestOpenOrderSeatsTable(t *testing.T) {
	e := newEnv(t)
	o := e.openDinner(t)

	assert.Equal(t, 23.50, o.Subtotal)
	assert.Equal(t, 2.35, o.Tax)
	assert.Equal(t, 25.85, o.Total)
	assert.Equal(t, models.OrderPending, o.Status)

	tbl, _ := e.fx.Stores.Tables.Get(e.table.ID)
	assert.Equal(t, models.TableOccupied, tbl.Status)
	require.NotNil(t, tbl.CurrentOrderID)
	assert.Equal(t, o.ID, *tbl.CurrentOrderID)

	var stored models.Table
	require.NoError(t, e.fx.DB.First(&stored, "id = ?", e.table.ID).Error)
	assert.Equal(t, models.TableOccupied, stored.Status)

	cached, ok := e.fx.Stores.Orders.Get(o.ID)
	require.True(t, ok)
	assert.Same(t, o, cached)
}

func TestOpenOrderValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.open.Execute(ctx, e.actor, OpenInput{TableID: e.table.ID})
	assert.True(t, apperr.HasCode(err, "items_required"))

	_, err = e.open.Execute(ctx, e.actor, OpenInput{Items: []models.OrderItem{{MenuItemID: "x", Quantity: 1}}})
	assert.True(t, apperr.HasCode(err, "table_required"))

	_, err = e.open.Execute(ctx, e.actor, OpenInput{TableID: "nope", Items: []models.OrderItem{{MenuItemID: "x", Quantity: 1}}})
	assert.True(t, apperr.HasCode(err, "table_not_found"))

	_, err = e.open.Execute(ctx, e.actor, OpenInput{TableID: e.table.ID, Items: []models.OrderItem{{MenuItemID: "x", Quantity: 0}}})
	assert.True(t, apperr.HasCode(err, "invalid_quantity"))

	assert.Zero(t, e.fx.Stores.Orders.Len())
}

func TestEditOrderRecomputesTotals(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	o := e.openDinner(t)
	other, _ := e.fx.Stores.Tables.Get(e.table.ID)

	require.NoError(t, e.edit.UpdateItemQuantity(ctx, e.actor, o.ID, "a", 3))

	got, _ := e.fx.Stores.Orders.Get(o.ID)
	assert.Equal(t, 33.50, got.Subtotal)
	assert.Equal(t, 3.35, got.Tax)
	assert.Equal(t, 36.85, got.Total)
	assert.NotSame(t, o, got)
	assert.Equal(t, 2, o.Items[0].Quantity, "previous snapshot is untouched")

	still, _ := e.fx.Stores.Tables.Get(e.table.ID)
	assert.Same(t, other, still)

	require.NoError(t, e.edit.SetTip(ctx, e.actor, o.ID, 5))
	require.NoError(t, e.edit.RemoveItem(ctx, e.actor, o.ID, "b"))
	require.NoError(t, e.edit.AddItem(ctx, e.actor, o.ID, models.OrderItem{MenuItemID: "tiramisu", Quantity: 1, Price: 8}))

	got, _ = e.fx.Stores.Orders.Get(o.ID)
	require.Len(t, got.Items, 2)
	assert.NotEmpty(t, got.Items[1].ID)
	assert.Equal(t, 38.00, got.Subtotal)
	assert.Equal(t, 3.80, got.Tax)
	assert.Equal(t, 5.00, got.Tip)
	assert.Equal(t, 46.80, got.Total)

	var stored models.Order
	require.NoError(t, e.fx.DB.First(&stored, "id = ?", o.ID).Error)
	assert.Equal(t, 46.80, stored.Total)
	assert.Len(t, stored.Items, 2)

	err := e.edit.RemoveItem(ctx, e.actor, o.ID, "zzz")
	assert.True(t, apperr.HasCode(err, "item_not_found"))
	assert.True(t, apperr.HasCode(e.edit.SetTip(ctx, e.actor, o.ID, -1), "invalid_tip"))
}

func TestEditOrderRejectsConcurrentMutation(t *testing.T) {
	e := newEnv(t)
	o := e.openDinner(t)

	release, err := e.fx.Stores.Orders.Reserve(o.ID)
	require.NoError(t, err)

	err = e.edit.UpdateItemQuantity(context.Background(), e.actor, o.ID, "a", 5)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	release()

	got, _ := e.fx.Stores.Orders.Get(o.ID)
	assert.Same(t, o, got)
}

func TestChangeStatusIsForwardOnly(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	o := e.openDinner(t)

	_, err := e.status.Execute(ctx, e.actor, o.ID, models.OrderReady)
	require.NoError(t, err)

	_, err = e.status.Execute(ctx, e.actor, o.ID, models.OrderInProgress)
	assert.True(t, apperr.HasCode(err, "invalid_transition"))

	_, err = e.status.Execute(ctx, e.actor, o.ID, "lost")
	assert.True(t, apperr.HasCode(err, "invalid_status"))
}

func TestCashSettlementFreesTableForCleaning(t *testing.T) {
	e := newEnv(t)
	o := e.openDinner(t)

	paid, err := e.status.Execute(context.Background(), e.actor, o.ID, models.OrderPaid)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPaid, paid.Status)

	tbl, _ := e.fx.Stores.Tables.Get(e.table.ID)
	assert.Equal(t, models.TableCleaning, tbl.Status)
	assert.Nil(t, tbl.CurrentOrderID)

	err = e.edit.SetTip(context.Background(), e.actor, o.ID, 1)
	assert.True(t, apperr.HasCode(err, "order_closed"))
}

func TestSettlingOneOfTwoOrdersKeepsTableOccupied(t *testing.T) {
	e := newEnv(t)
	first := e.openDinner(t)
	second := e.openDinner(t)

	_, err := e.status.Execute(context.Background(), e.actor, second.ID, models.OrderPaid)
	require.NoError(t, err)

	tbl, _ := e.fx.Stores.Tables.Get(e.table.ID)
	assert.Equal(t, models.TableOccupied, tbl.Status)
	require.NotNil(t, tbl.CurrentOrderID)
	assert.Equal(t, first.ID, *tbl.CurrentOrderID)
}

func TestCheckoutByCard(t *testing.T) {
	e := newEnv(t)
	o := e.openDinner(t)

	paid, err := e.checkout.Execute(context.Background(), e.actor, CheckoutInput{OrderID: o.ID, Method: models.PaymentCard})
	require.NoError(t, err)

	require.Len(t, e.pay.intents, 1)
	assert.Equal(t, int64(2585), e.pay.intents[0].AmountMinor)
	assert.Equal(t, "BRL", e.pay.intents[0].Currency, "restaurant currency wins over config")

	assert.Equal(t, models.OrderPaid, paid.Status)
	require.NotNil(t, paid.PaymentIntentID)
	assert.Equal(t, "pi_1", *paid.PaymentIntentID)

	tbl, _ := e.fx.Stores.Tables.Get(e.table.ID)
	assert.Equal(t, models.TableCleaning, tbl.Status)

	c, _ := e.fx.Stores.Clients.Get(e.client.ID)
	assert.Equal(t, 1, c.VisitCount)
	assert.Equal(t, 25.85, c.TotalSpent)
}

func TestCheckoutPaymentFailureChangesNothing(t *testing.T) {
	e := newEnv(t)
	o := e.openDinner(t)
	tblBefore, _ := e.fx.Stores.Tables.Get(e.table.ID)

	e.pay.failWith = apperr.Remote("payment_not_approved", errors.New("rejected"))
	_, err := e.checkout.Execute(context.Background(), e.actor, CheckoutInput{OrderID: o.ID, Method: models.PaymentMobile})
	assert.True(t, apperr.HasCode(err, "payment_not_approved"))

	got, _ := e.fx.Stores.Orders.Get(o.ID)
	assert.Same(t, o, got)
	tbl, _ := e.fx.Stores.Tables.Get(e.table.ID)
	assert.Same(t, tblBefore, tbl)

	var stored models.Order
	require.NoError(t, e.fx.DB.First(&stored, "id = ?", o.ID).Error)
	assert.Equal(t, models.OrderPending, stored.Status)
}

func TestCheckoutRejectsUnknownMethod(t *testing.T) {
	e := newEnv(t)
	o := e.openDinner(t)

	_, err := e.checkout.Execute(context.Background(), e.actor, CheckoutInput{OrderID: o.ID, Method: "barter"})
	assert.True(t, apperr.HasCode(err, "invalid_payment_method"))
	assert.Empty(t, e.pay.intents)
}

func TestCheckoutHoldsOrderWhileCharging(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	o := e.openDinner(t)

	var addErr, secondErr error
	e.pay.onCall = func() {
		e.pay.onCall = nil
		addErr = e.edit.AddItem(ctx, e.actor, o.ID, models.OrderItem{MenuItemID: "wine", Quantity: 1, Price: 40})
		_, secondErr = e.checkout.Execute(ctx, e.actor, CheckoutInput{OrderID: o.ID, Method: models.PaymentCard})
	}

	paid, err := e.checkout.Execute(ctx, e.actor, CheckoutInput{OrderID: o.ID, Method: models.PaymentCard})
	require.NoError(t, err)

	assert.True(t, apperr.HasCode(addErr, "mutation_in_flight"))
	assert.True(t, apperr.HasCode(secondErr, "mutation_in_flight"))

	require.Len(t, e.pay.intents, 1, "one charge per order")
	assert.Equal(t, int64(2585), e.pay.intents[0].AmountMinor)
	assert.Equal(t, 25.85, paid.Total)
	assert.Len(t, paid.Items, 2)
}

func TestRefund(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	o := e.openDinner(t)

	_, err := e.refund.Execute(ctx, e.actor, o.ID, nil)
	assert.True(t, apperr.HasCode(err, "order_not_refundable"))

	_, err = e.checkout.Execute(ctx, e.actor, CheckoutInput{OrderID: o.ID, Method: models.PaymentCard})
	require.NoError(t, err)

	amount := 5.0
	r, err := e.refund.Execute(ctx, e.actor, o.ID, &amount)
	require.NoError(t, err)
	assert.Equal(t, int64(500), r.AmountMinor)

	tooMuch := 25.0
	_, err = e.refund.Execute(ctx, e.actor, o.ID, &tooMuch)
	assert.True(t, apperr.HasCode(err, "invalid_amount"), "only 20.85 is left")

	rest, err := e.refund.Execute(ctx, e.actor, o.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2085), rest.AmountMinor)
	require.Len(t, e.pay.refunds, 2)
	require.NotNil(t, e.pay.refunds[1])
	assert.Equal(t, int64(2085), *e.pay.refunds[1])

	_, err = e.refund.Execute(ctx, e.actor, o.ID, nil)
	assert.True(t, apperr.HasCode(err, "order_fully_refunded"))

	got, _ := e.fx.Stores.Orders.Get(o.ID)
	assert.Equal(t, models.OrderPaid, got.Status)
	assert.Equal(t, 25.85, got.Refunded)

	var stored models.Order
	require.NoError(t, e.fx.DB.First(&stored, "id = ?", o.ID).Error)
	assert.Equal(t, 25.85, stored.Refunded)
}

func TestRefundWhileRefundingIsRejected(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	o := e.openDinner(t)
	_, err := e.checkout.Execute(ctx, e.actor, CheckoutInput{OrderID: o.ID, Method: models.PaymentCard})
	require.NoError(t, err)

	var second error
	e.pay.onCall = func() {
		e.pay.onCall = nil
		_, second = e.refund.Execute(ctx, e.actor, o.ID, nil)
	}

	_, err = e.refund.Execute(ctx, e.actor, o.ID, nil)
	require.NoError(t, err)
	assert.True(t, apperr.HasCode(second, "mutation_in_flight"))
	assert.Len(t, e.pay.refunds, 1)
}

func TestDeleteOrderKeepsTableConsistent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	del := NewDeleteOrder(e.fx.Stores, nil)
	o := e.openDinner(t)

	err := del.Execute(ctx, e.actor, o.ID)
	assert.True(t, apperr.HasCode(err, "order_holds_table"))
	_, ok := e.fx.Stores.Orders.Get(o.ID)
	assert.True(t, ok)

	_, err = e.status.Execute(ctx, e.actor, o.ID, models.OrderPaid)
	require.NoError(t, err)

	require.NoError(t, del.Execute(ctx, e.actor, o.ID))
	_, ok = e.fx.Stores.Orders.Get(o.ID)
	assert.False(t, ok)

	var count int64
	e.fx.DB.Model(&models.Order{}).Where("id = ?", o.ID).Count(&count)
	assert.Zero(t, count)

	assert.True(t, apperr.HasCode(del.Execute(ctx, e.actor, o.ID), "order_not_found"))
}
