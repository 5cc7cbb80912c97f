package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// order status
const (
	OrderStatusPending   = "PENDING"
	OrderStatusPaid      = "PAID"
	OrderStatusCancelled = "CANCELLED"
	OrderStatusRefunded  = "REFUNDED"
)

// IsValidOrderStatus reports whether s is a known order status.
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusCancelled, OrderStatusRefunded:
		return true
	}
	return false
}

// Order is order entity. OrderNo is the externally visible reference assigned
// at creation and used as the idempotency key with the payment gateway.
type Order struct {
	ID            string
	OrderNo       string
	BuyerEmail    string
	Amount        decimal.Decimal
	Status        string
	PaymentID     *string
	DownloadToken *string
	DownloadCount int
	WorkID        string
	VersionID     *string
	CreatedAt     time.Time
	PaidAt        *time.Time

	Work    *Work
	Version *WorkVersion
}

// Work is the purchasable item
type Work struct {
	ID             string
	Title          string
	FigmaURL       *string
	DeliveryURL    *string
	CurrentVersion *string
}

// WorkVersion is a pinned snapshot of a work with its own delivery metadata
type WorkVersion struct {
	ID          string
	WorkID      string
	Version     string
	FigmaURL    *string
	DeliveryURL *string
}

// DeliveryInfo holds the resolved releasable links for a paid order
type DeliveryInfo struct {
	FigmaURL    *string
	DeliveryURL *string
}
