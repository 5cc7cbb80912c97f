package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/studiomart/orderpay/internal/models"
	"github.com/studiomart/orderpay/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paidOrder(id, orderNo, amount string) models.Order {
	return models.Order{
		ID:         id,
		OrderNo:    orderNo,
		BuyerEmail: "buyer@example.com",
		Amount:     decimal.RequireFromString(amount),
		Status:     models.OrderStatusPaid,
		Work:       &models.Work{Title: "Poster Pack"},
	}
}

func gatewayFactory(client RefundClient, err error) RefundClientFactory {
	return func(ctx context.Context) (RefundClient, error) {
		return client, err
	}
}

func TestBatchService_UpdateStatus_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repoMock := mocks.NewMockOrderRepository(ctrl)
	svc := NewBatchService(repoMock, newFakeMailer(), gatewayFactory(nil, nil), "StudioMart")

	_, err := svc.UpdateStatus(context.Background(), nil, models.OrderStatusPaid)
	assert.ErrorIs(t, err, models.ErrInvalidRequest)

	_, err = svc.UpdateStatus(context.Background(), []string{"id1"}, "SHIPPED")
	assert.ErrorIs(t, err, models.ErrInvalidRequest)

	// PENDING is not a valid admin target
	_, err = svc.UpdateStatus(context.Background(), []string{"id1"}, models.OrderStatusPending)
	assert.ErrorIs(t, err, models.ErrInvalidRequest)
}

func TestBatchService_UpdateStatus_BulkPaths(t *testing.T) {
	for _, status := range []string{models.OrderStatusPaid, models.OrderStatusCancelled} {
		t.Run(status, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// admin override: a blind bulk update without per-order
			// idempotency checks, unlike the webhook path
			repoMock := mocks.NewMockOrderRepository(ctrl)
			repoMock.EXPECT().UpdateStatusByIDs(gomock.Any(), []string{"id1", "id2"}, status).Return(nil)

			svc := NewBatchService(repoMock, newFakeMailer(), gatewayFactory(nil, nil), "StudioMart")

			result, err := svc.UpdateStatus(context.Background(), []string{"id1", "id2"}, status)
			require.NoError(t, err)
			assert.Nil(t, result)
		})
	}
}

func TestBatchService_Refund_NotConfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// no order may be touched when the gateway client cannot be built
	repoMock := mocks.NewMockOrderRepository(ctrl)

	svc := NewBatchService(repoMock, newFakeMailer(), gatewayFactory(nil, models.ErrPaymentNotConfigured), "StudioMart")

	_, err := svc.UpdateStatus(context.Background(), []string{"id1"}, models.OrderStatusRefunded)
	assert.ErrorIs(t, err, models.ErrPaymentNotConfigured)
}

func TestBatchService_Refund_NoRefundableOrders(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repoMock := mocks.NewMockOrderRepository(ctrl)
	repoMock.EXPECT().GetPaidOrdersByIDs(gomock.Any(), []string{"id1"}).Return([]models.Order{}, nil)

	gatewayMock := mocks.NewMockRefundClient(ctrl)

	svc := NewBatchService(repoMock, newFakeMailer(), gatewayFactory(gatewayMock, nil), "StudioMart")

	_, err := svc.UpdateStatus(context.Background(), []string{"id1"}, models.OrderStatusRefunded)
	assert.ErrorIs(t, err, models.ErrNoRefundableOrders)
}

func TestBatchService_Refund_AllSucceed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orders := []models.Order{
		paidOrder("id1", "ORD-1", "99.00"),
		paidOrder("id2", "ORD-2", "12.50"),
	}

	repoMock := mocks.NewMockOrderRepository(ctrl)
	repoMock.EXPECT().GetPaidOrdersByIDs(gomock.Any(), []string{"id1", "id2"}).Return(orders, nil)
	repoMock.EXPECT().MarkRefunded(gomock.Any(), "id1").Return(nil)
	repoMock.EXPECT().MarkRefunded(gomock.Any(), "id2").Return(nil)

	gatewayMock := mocks.NewMockRefundClient(ctrl)
	gatewayMock.EXPECT().Refund(gomock.Any(), "ORD-1", "ORD-1-R", gomock.Any(), int64(9900)).Return(nil)
	gatewayMock.EXPECT().Refund(gomock.Any(), "ORD-2", "ORD-2-R", gomock.Any(), int64(1250)).Return(nil)

	fm := newFakeMailer()
	svc := NewBatchService(repoMock, fm, gatewayFactory(gatewayMock, nil), "StudioMart")

	result, err := svc.UpdateStatus(context.Background(), []string{"id1", "id2"}, models.OrderStatusRefunded)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 0, result.Failed)
	require.Len(t, result.Results, 2)
	assert.True(t, result.Results[0].Success)
	assert.True(t, result.Results[1].Success)

	// one refund email per order
	for i := 0; i < 2; i++ {
		select {
		case <-fm.refunded:
		case <-time.After(2 * time.Second):
			t.Fatal("expected refund email was not dispatched")
		}
	}
}

func TestBatchService_Refund_PartialFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orders := []models.Order{
		paidOrder("id1", "ORD-1", "99.00"),
		paidOrder("id2", "ORD-2", "50.00"),
		paidOrder("id3", "ORD-3", "10.00"),
	}

	repoMock := mocks.NewMockOrderRepository(ctrl)
	repoMock.EXPECT().GetPaidOrdersByIDs(gomock.Any(), gomock.Any()).Return(orders, nil)
	// the failed order keeps its state, MarkRefunded is never called for it
	repoMock.EXPECT().MarkRefunded(gomock.Any(), "id1").Return(nil)
	repoMock.EXPECT().MarkRefunded(gomock.Any(), "id3").Return(nil)

	gatewayMock := mocks.NewMockRefundClient(ctrl)
	gatewayMock.EXPECT().Refund(gomock.Any(), "ORD-1", gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	gatewayMock.EXPECT().Refund(gomock.Any(), "ORD-2", gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("gateway timeout"))
	gatewayMock.EXPECT().Refund(gomock.Any(), "ORD-3", gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	fm := newFakeMailer()
	svc := NewBatchService(repoMock, fm, gatewayFactory(gatewayMock, nil), "StudioMart")

	result, err := svc.UpdateStatus(context.Background(), []string{"id1", "id2", "id3"}, models.OrderStatusRefunded)
	require.NoError(t, err)
	require.NotNil(t, result)

	// outcomes stay in request order, failures isolated per order
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Results, 3)

	assert.True(t, result.Results[0].Success)
	assert.Equal(t, "ORD-1", result.Results[0].OrderNo)

	assert.False(t, result.Results[1].Success)
	assert.Equal(t, "ORD-2", result.Results[1].OrderNo)
	assert.Contains(t, result.Results[1].Error, "gateway timeout")

	assert.True(t, result.Results[2].Success)
	assert.Equal(t, "ORD-3", result.Results[2].OrderNo)
}

func TestBatchService_Refund_OutcomesFollowRequestOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// the store returns rows in insertion order, the request asks for
	// them the other way around
	stored := []models.Order{
		paidOrder("id1", "ORD-1", "99.00"),
		paidOrder("id2", "ORD-2", "50.00"),
		paidOrder("id3", "ORD-3", "10.00"),
	}

	repoMock := mocks.NewMockOrderRepository(ctrl)
	repoMock.EXPECT().GetPaidOrdersByIDs(gomock.Any(), []string{"id3", "id1", "id2"}).Return(stored, nil)
	repoMock.EXPECT().MarkRefunded(gomock.Any(), gomock.Any()).Return(nil).Times(3)

	gatewayMock := mocks.NewMockRefundClient(ctrl)
	gatewayMock.EXPECT().Refund(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).Times(3)

	svc := NewBatchService(repoMock, newFakeMailer(), gatewayFactory(gatewayMock, nil), "StudioMart")

	result, err := svc.UpdateStatus(context.Background(), []string{"id3", "id1", "id2"}, models.OrderStatusRefunded)
	require.NoError(t, err)
	require.Len(t, result.Results, 3)

	assert.Equal(t, "ORD-3", result.Results[0].OrderNo)
	assert.Equal(t, "ORD-1", result.Results[1].OrderNo)
	assert.Equal(t, "ORD-2", result.Results[2].OrderNo)
}

func TestBatchService_Refund_FiltersNonPaidOrders(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// ORD-2 is PENDING; the repository query already excludes it, the
	// response must not mention it at all
	repoMock := mocks.NewMockOrderRepository(ctrl)
	repoMock.EXPECT().GetPaidOrdersByIDs(gomock.Any(), []string{"id1", "id2"}).
		Return([]models.Order{paidOrder("id1", "ORD-1", "99.00")}, nil)
	repoMock.EXPECT().MarkRefunded(gomock.Any(), "id1").Return(nil)

	gatewayMock := mocks.NewMockRefundClient(ctrl)
	gatewayMock.EXPECT().Refund(gomock.Any(), "ORD-1", gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	svc := NewBatchService(repoMock, newFakeMailer(), gatewayFactory(gatewayMock, nil), "StudioMart")

	result, err := svc.UpdateStatus(context.Background(), []string{"id1", "id2"}, models.OrderStatusRefunded)
	require.NoError(t, err)

	require.Len(t, result.Results, 1)
	assert.Equal(t, "ORD-1", result.Results[0].OrderNo)
}

func TestBatchService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repoMock := mocks.NewMockOrderRepository(ctrl)
	repoMock.EXPECT().DeleteByIDs(gomock.Any(), []string{"id1", "id2"}).Return(nil)

	svc := NewBatchService(repoMock, newFakeMailer(), gatewayFactory(nil, nil), "StudioMart")

	assert.NoError(t, svc.Delete(context.Background(), []string{"id1", "id2"}))
	assert.ErrorIs(t, svc.Delete(context.Background(), nil), models.ErrInvalidRequest)
}
