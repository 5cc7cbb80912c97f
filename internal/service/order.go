package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/studiomart/orderpay/internal/logger"
	"github.com/studiomart/orderpay/internal/mailer"
	"github.com/studiomart/orderpay/internal/models"
	"github.com/studiomart/orderpay/internal/wechatpay"
	"go.uber.org/zap"
)

// OrderRepository is interface for interacting with order-related data
type OrderRepository interface {
	// CreateOrder inserts new order to database
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	// GetOrderByNo returns order by external reference with work and version joined
	GetOrderByNo(ctx context.Context, orderNo string) (*models.Order, error)
	// MarkPaid transitions order to PAID if it is still PENDING
	MarkPaid(ctx context.Context, orderNo string, paymentID *string) (bool, error)
	// UpdateStatusByIDs sets status for all orders with given ids
	UpdateStatusByIDs(ctx context.Context, ids []string, status string) error
	// GetPaidOrdersByIDs returns the PAID subset of requested orders
	GetPaidOrdersByIDs(ctx context.Context, ids []string) ([]models.Order, error)
	// MarkRefunded transitions a PAID order to REFUNDED
	MarkRefunded(ctx context.Context, id string) error
	// DeleteByIDs hard-deletes orders by id
	DeleteByIDs(ctx context.Context, ids []string) error
}

// OrderService implements order state transitions
type OrderService struct {
	repo     OrderRepository
	mailer   mailer.Mailer
	siteName string
}

// NewOrderService creates new OrderService instance
func NewOrderService(repo OrderRepository, m mailer.Mailer, siteName string) *OrderService {
	return &OrderService{
		repo:     repo,
		mailer:   m,
		siteName: siteName,
	}
}

// Create inserts a new PENDING order with a generated order reference
func (os *OrderService) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	order.ID = uuid.NewString()
	order.OrderNo = newOrderNo()
	order.Status = models.OrderStatusPending

	return os.repo.CreateOrder(ctx, order)
}

// SettlePayment applies a verified payment event to its order. Non-success
// trade states are acknowledged without mutation. The transition is
// idempotent: an order that is no longer PENDING is treated as already
// settled, so repeated deliveries of the same event never double-apply
// side effects.
func (os *OrderService) SettlePayment(ctx context.Context, event *wechatpay.PaymentEvent) error {
	if event.TradeState != wechatpay.TradeStateSuccess {
		return nil
	}

	order, err := os.repo.GetOrderByNo(ctx, event.OrderNo)
	if err != nil {
		return err
	}

	if order.Status != models.OrderStatusPending {
		// already settled, acknowledge without mutation
		return nil
	}

	var paymentID *string
	if event.TransactionID != "" {
		paymentID = &event.TransactionID
	}

	transitioned, err := os.repo.MarkPaid(ctx, order.OrderNo, paymentID)
	if err != nil {
		return err
	}
	if !transitioned {
		// a concurrent delivery won the transition
		return nil
	}

	order.Status = models.OrderStatusPaid
	delivery := ResolveDelivery(order)

	email := mailer.OrderEmail{
		To:           order.BuyerEmail,
		SiteName:     os.siteName,
		WorkTitle:    workTitle(order),
		OrderNo:      order.OrderNo,
		Amount:       order.Amount,
		FigmaURL:     delivery.FigmaURL,
		DeliveryURL:  delivery.DeliveryURL,
		VersionLabel: resolveVersionLabel(order),
	}
	go func() {
		if err := os.mailer.SendOrderPaid(email); err != nil {
			logger.Log.Error("send order email", zap.String("order", email.OrderNo), zap.Error(err))
		}
	}()

	return nil
}

// Status returns the order with its resolved delivery info. Links are
// populated only when the order is PAID.
func (os *OrderService) Status(ctx context.Context, orderNo string) (*models.Order, models.DeliveryInfo, error) {
	order, err := os.repo.GetOrderByNo(ctx, orderNo)
	if err != nil {
		return nil, models.DeliveryInfo{}, err
	}

	return order, ResolveDelivery(order), nil
}

func workTitle(order *models.Order) string {
	if order.Work != nil {
		return order.Work.Title
	}
	return ""
}

// newOrderNo generates an order reference: timestamp plus random suffix
func newOrderNo() string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return "ORD" + time.Now().Format("20060102150405") + hex.EncodeToString(buf)
}
