package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/studiomart/orderpay/internal/logger"
	"github.com/studiomart/orderpay/internal/mailer"
	"github.com/studiomart/orderpay/internal/models"
	"github.com/studiomart/orderpay/internal/wechatpay"
	"go.uber.org/zap"
)

const refundReason = "admin batch refund"

// RefundClient issues one gateway refund call
type RefundClient interface {
	Refund(ctx context.Context, orderNo, refundNo, reason string, amountFen int64) error
}

// RefundClientFactory builds a refund-capable client from the current
// merchant configuration
type RefundClientFactory func(ctx context.Context) (RefundClient, error)

// RefundOutcome is the result of one refund attempt inside a batch
type RefundOutcome struct {
	OrderNo string
	Success bool
	Error   string
}

// BatchResult aggregates per-order outcomes of a batch refund
type BatchResult struct {
	Results []RefundOutcome
	Failed  int
}

// BatchService applies admin transitions to sets of orders
type BatchService struct {
	repo       OrderRepository
	mailer     mailer.Mailer
	newGateway RefundClientFactory
	siteName   string
}

// NewBatchService creates new BatchService instance
func NewBatchService(repo OrderRepository, m mailer.Mailer, factory RefundClientFactory, siteName string) *BatchService {
	return &BatchService{
		repo:       repo,
		mailer:     m,
		newGateway: factory,
		siteName:   siteName,
	}
}

// UpdateStatus applies target status to the given orders. PAID and CANCELLED
// are direct bulk updates (authoritative admin override, no idempotency
// guard); REFUNDED dispatches to the per-order refund path and returns its
// aggregated result.
func (bs *BatchService) UpdateStatus(ctx context.Context, ids []string, status string) (*BatchResult, error) {
	if len(ids) == 0 {
		return nil, models.ErrInvalidRequest
	}

	switch status {
	case models.OrderStatusPaid, models.OrderStatusCancelled:
		return nil, bs.repo.UpdateStatusByIDs(ctx, ids, status)
	case models.OrderStatusRefunded:
		return bs.refundOrders(ctx, ids)
	default:
		return nil, models.ErrInvalidRequest
	}
}

// refundOrders performs one gateway refund per PAID order among the requested
// ids. Orders are processed sequentially to respect gateway rate limits and
// keep the outcome list in request order. One order's failure leaves that
// order unchanged and does not abort or roll back its siblings.
func (bs *BatchService) refundOrders(ctx context.Context, ids []string) (*BatchResult, error) {
	gateway, err := bs.newGateway(ctx)
	if err != nil {
		logger.Log.Error("construct refund client", zap.Error(err))
		return nil, models.ErrPaymentNotConfigured
	}

	// only PAID orders are refundable, the rest of the requested set is
	// silently filtered out
	orders, err := bs.repo.GetPaidOrdersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, models.ErrNoRefundableOrders
	}

	// the store returns the subset in its own order, realign with the
	// position of each id in the request
	pos := make(map[string]int, len(ids))
	for i, id := range ids {
		pos[id] = i
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return pos[orders[i].ID] < pos[orders[j].ID]
	})

	result := BatchResult{}

	for _, order := range orders {
		if err := bs.refundOne(ctx, gateway, order); err != nil {
			result.Results = append(result.Results, RefundOutcome{
				OrderNo: order.OrderNo,
				Success: false,
				Error:   err.Error(),
			})
			result.Failed++
			continue
		}

		result.Results = append(result.Results, RefundOutcome{
			OrderNo: order.OrderNo,
			Success: true,
		})
	}

	return &result, nil
}

func (bs *BatchService) refundOne(ctx context.Context, gateway RefundClient, order models.Order) error {
	amountFen := wechatpay.Fen(order.Amount)
	refundNo := wechatpay.RefundNo(order.OrderNo)

	if err := gateway.Refund(ctx, order.OrderNo, refundNo, refundReason, amountFen); err != nil {
		return fmt.Errorf("gateway refund: %w", err)
	}

	if err := bs.repo.MarkRefunded(ctx, order.ID); err != nil {
		return fmt.Errorf("mark refunded: %w", err)
	}

	email := mailer.RefundEmail{
		To:        order.BuyerEmail,
		SiteName:  bs.siteName,
		WorkTitle: workTitle(&order),
		OrderNo:   order.OrderNo,
		Amount:    order.Amount,
	}
	go func() {
		if err := bs.mailer.SendRefund(email); err != nil {
			logger.Log.Error("send refund email", zap.String("order", email.OrderNo), zap.Error(err))
		}
	}()

	return nil
}

// Delete hard-deletes orders by id regardless of status
func (bs *BatchService) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return models.ErrInvalidRequest
	}

	return bs.repo.DeleteByIDs(ctx, ids)
}
