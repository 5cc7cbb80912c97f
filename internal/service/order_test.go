package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/studiomart/orderpay/internal/mailer"
	"github.com/studiomart/orderpay/internal/models"
	"github.com/studiomart/orderpay/internal/service/mocks"
	"github.com/studiomart/orderpay/internal/wechatpay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMailer records sent emails on channels so tests can count the
// fire-and-forget dispatches
type fakeMailer struct {
	paid     chan mailer.OrderEmail
	refunded chan mailer.RefundEmail
	err      error
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{
		paid:     make(chan mailer.OrderEmail, 16),
		refunded: make(chan mailer.RefundEmail, 16),
	}
}

func (f *fakeMailer) SendOrderPaid(email mailer.OrderEmail) error {
	f.paid <- email
	return f.err
}

func (f *fakeMailer) SendRefund(email mailer.RefundEmail) error {
	f.refunded <- email
	return f.err
}

func waitOrderEmail(t *testing.T, ch <-chan mailer.OrderEmail) mailer.OrderEmail {
	t.Helper()
	select {
	case email := <-ch:
		return email
	case <-time.After(2 * time.Second):
		t.Fatal("expected order email was not dispatched")
		return mailer.OrderEmail{}
	}
}

func assertNoOrderEmail(t *testing.T, ch <-chan mailer.OrderEmail) {
	t.Helper()
	select {
	case email := <-ch:
		t.Fatalf("unexpected order email dispatched for %s", email.OrderNo)
	case <-time.After(100 * time.Millisecond):
	}
}

func strptr(s string) *string { return &s }

func pendingOrder() *models.Order {
	return &models.Order{
		ID:         "11111111-1111-1111-1111-111111111111",
		OrderNo:    "ORD-1",
		BuyerEmail: "buyer@example.com",
		Amount:     decimal.RequireFromString("99.00"),
		Status:     models.OrderStatusPending,
		WorkID:     "w1",
		Work: &models.Work{
			ID:             "w1",
			Title:          "Poster Pack",
			FigmaURL:       strptr("https://figma.example/work"),
			DeliveryURL:    strptr("https://files.example/work.zip"),
			CurrentVersion: strptr("1.0"),
		},
	}
}

func successEvent() *wechatpay.PaymentEvent {
	return &wechatpay.PaymentEvent{
		OrderNo:       "ORD-1",
		TransactionID: "TXN-1",
		TradeState:    wechatpay.TradeStateSuccess,
	}
}

func TestOrderService_SettlePayment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repoMock := mocks.NewMockOrderRepository(ctrl)
	repoMock.EXPECT().GetOrderByNo(gomock.Any(), "ORD-1").Return(pendingOrder(), nil)
	repoMock.EXPECT().MarkPaid(gomock.Any(), "ORD-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, paymentID *string) (bool, error) {
			require.NotNil(t, paymentID)
			assert.Equal(t, "TXN-1", *paymentID)
			return true, nil
		})

	fm := newFakeMailer()
	svc := NewOrderService(repoMock, fm, "StudioMart")

	err := svc.SettlePayment(context.Background(), successEvent())
	require.NoError(t, err)

	email := waitOrderEmail(t, fm.paid)
	assert.Equal(t, "buyer@example.com", email.To)
	assert.Equal(t, "ORD-1", email.OrderNo)
	assert.Equal(t, "Poster Pack", email.WorkTitle)
	require.NotNil(t, email.DeliveryURL)
	assert.Equal(t, "https://files.example/work.zip", *email.DeliveryURL)
}

func TestOrderService_SettlePayment_DuplicateDelivery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repoMock := mocks.NewMockOrderRepository(ctrl)

	// first delivery finds a PENDING order and wins the transition
	first := repoMock.EXPECT().GetOrderByNo(gomock.Any(), "ORD-1").Return(pendingOrder(), nil)
	repoMock.EXPECT().MarkPaid(gomock.Any(), "ORD-1", gomock.Any()).Return(true, nil).Times(1)

	// second delivery observes PAID and must short-circuit
	settled := pendingOrder()
	settled.Status = models.OrderStatusPaid
	repoMock.EXPECT().GetOrderByNo(gomock.Any(), "ORD-1").Return(settled, nil).After(first)

	fm := newFakeMailer()
	svc := NewOrderService(repoMock, fm, "StudioMart")

	require.NoError(t, svc.SettlePayment(context.Background(), successEvent()))
	require.NoError(t, svc.SettlePayment(context.Background(), successEvent()))

	// exactly one email for two deliveries
	waitOrderEmail(t, fm.paid)
	assertNoOrderEmail(t, fm.paid)
}

func TestOrderService_SettlePayment_LostRace(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// a concurrent delivery transitioned the row between the read and the
	// conditional update, MarkPaid reports no rows affected
	repoMock := mocks.NewMockOrderRepository(ctrl)
	repoMock.EXPECT().GetOrderByNo(gomock.Any(), "ORD-1").Return(pendingOrder(), nil)
	repoMock.EXPECT().MarkPaid(gomock.Any(), "ORD-1", gomock.Any()).Return(false, nil)

	fm := newFakeMailer()
	svc := NewOrderService(repoMock, fm, "StudioMart")

	require.NoError(t, svc.SettlePayment(context.Background(), successEvent()))
	assertNoOrderEmail(t, fm.paid)
}

func TestOrderService_SettlePayment_NonSuccessTradeState(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// nothing may be read or mutated for non-success events
	repoMock := mocks.NewMockOrderRepository(ctrl)

	fm := newFakeMailer()
	svc := NewOrderService(repoMock, fm, "StudioMart")

	event := successEvent()
	event.TradeState = "CLOSED"

	require.NoError(t, svc.SettlePayment(context.Background(), event))
	assertNoOrderEmail(t, fm.paid)
}

func TestOrderService_SettlePayment_OrderNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repoMock := mocks.NewMockOrderRepository(ctrl)
	repoMock.EXPECT().GetOrderByNo(gomock.Any(), "ORD-1").Return(nil, models.ErrOrderNotFound)

	fm := newFakeMailer()
	svc := NewOrderService(repoMock, fm, "StudioMart")

	err := svc.SettlePayment(context.Background(), successEvent())
	assert.ErrorIs(t, err, models.ErrOrderNotFound)
}

func TestOrderService_SettlePayment_TerminalStatusUnchanged(t *testing.T) {
	// REFUNDED and CANCELLED orders must never transition again
	for _, status := range []string{models.OrderStatusRefunded, models.OrderStatusCancelled} {
		t.Run(status, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			order := pendingOrder()
			order.Status = status

			repoMock := mocks.NewMockOrderRepository(ctrl)
			repoMock.EXPECT().GetOrderByNo(gomock.Any(), "ORD-1").Return(order, nil)
			repoMock.EXPECT().MarkPaid(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			fm := newFakeMailer()
			svc := NewOrderService(repoMock, fm, "StudioMart")

			require.NoError(t, svc.SettlePayment(context.Background(), successEvent()))
			assertNoOrderEmail(t, fm.paid)
		})
	}
}

func TestOrderService_SettlePayment_MailerFailureDoesNotPropagate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repoMock := mocks.NewMockOrderRepository(ctrl)
	repoMock.EXPECT().GetOrderByNo(gomock.Any(), "ORD-1").Return(pendingOrder(), nil)
	repoMock.EXPECT().MarkPaid(gomock.Any(), "ORD-1", gomock.Any()).Return(true, nil)

	fm := newFakeMailer()
	fm.err = errors.New("smtp unreachable")
	svc := NewOrderService(repoMock, fm, "StudioMart")

	// transition succeeds even though the notification fails
	require.NoError(t, svc.SettlePayment(context.Background(), successEvent()))
	waitOrderEmail(t, fm.paid)
}

func TestOrderService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repoMock := mocks.NewMockOrderRepository(ctrl)
	repoMock.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, order *models.Order) (*models.Order, error) {
			assert.NotEmpty(t, order.ID)
			assert.NotEmpty(t, order.OrderNo)
			assert.Equal(t, models.OrderStatusPending, order.Status)
			return order, nil
		})

	svc := NewOrderService(repoMock, newFakeMailer(), "StudioMart")

	order, err := svc.Create(context.Background(), &models.Order{
		WorkID:     "w1",
		BuyerEmail: "buyer@example.com",
		Amount:     decimal.RequireFromString("99.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
}
