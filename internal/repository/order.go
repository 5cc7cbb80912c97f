package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/studiomart/orderpay/internal/models"
	"github.com/studiomart/orderpay/internal/repository/postgres"
)

const pgErrUniqueViolationCode = "23505"

const (
	insertOrderQuery = `
						INSERT INTO orders (id, order_no, buyer_email, amount, status, work_id, version_id)
						VALUES ($1, $2, $3, $4, $5, $6, $7)
						RETURNING id, order_no, buyer_email, amount, status, download_count, work_id, version_id, created_at
`
	selectOrderByNoQuery = `
						SELECT o.id, o.order_no, o.buyer_email, o.amount, o.status,
						       o.payment_id, o.download_token, o.download_count,
						       o.work_id, o.version_id, o.created_at, o.paid_at,
						       w.title, w.figma_url, w.delivery_url, w.current_version,
						       v.version, v.figma_url, v.delivery_url
						FROM orders o
						JOIN works w ON w.id = o.work_id
						LEFT JOIN work_versions v ON v.id = o.version_id
						WHERE o.order_no = $1
`
	markPaidQuery = `
						UPDATE orders
						SET status = 'PAID', paid_at = now(), payment_id = $2
						WHERE order_no = $1 AND status = 'PENDING'
`
	updateStatusByIDsQuery = `
						UPDATE orders
						SET status = $1
						WHERE id = ANY($2)
`
	markPaidByIDsQuery = `
						UPDATE orders
						SET status = 'PAID', paid_at = now()
						WHERE id = ANY($1)
`
	selectPaidByIDsQuery = `
						SELECT o.id, o.order_no, o.buyer_email, o.amount, o.status, o.paid_at, w.title
						FROM orders o
						JOIN works w ON w.id = o.work_id
						WHERE o.id = ANY($1) AND o.status = 'PAID'
						ORDER BY o.created_at
`
	// paid_at is retained on refund: it records the historical settlement fact
	markRefundedQuery = `
						UPDATE orders
						SET status = 'REFUNDED', download_token = NULL, download_count = 0
						WHERE id = $1 AND status = 'PAID'
`
	deleteByIDsQuery = `
						DELETE FROM orders
						WHERE id = ANY($1)
`
)

// OrderRepository implements OrderRepository interface
type OrderRepository struct {
	db *postgres.DB
}

// NewOrderRepository creates new OrderRepository instance
func NewOrderRepository(db *postgres.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateOrder inserts new order to database
func (or *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	err := or.db.QueryRow(ctx, insertOrderQuery,
		order.ID, order.OrderNo, order.BuyerEmail, order.Amount, order.Status, order.WorkID, order.VersionID).
		Scan(&order.ID, &order.OrderNo, &order.BuyerEmail, &order.Amount, &order.Status,
			&order.DownloadCount, &order.WorkID, &order.VersionID, &order.CreatedAt)
	if err != nil {
		if errCode := or.db.ErrorCode(err); errCode == pgErrUniqueViolationCode {
			return nil, models.ErrConflictData
		}
		return nil, err
	}

	return order, nil
}

// GetOrderByNo returns order by external reference with its work and version joined
func (or *OrderRepository) GetOrderByNo(ctx context.Context, orderNo string) (*models.Order, error) {
	order := models.Order{}
	work := models.Work{}

	var (
		verLabel       *string
		verFigmaURL    *string
		verDeliveryURL *string
	)

	err := or.db.QueryRow(ctx, selectOrderByNoQuery, orderNo).Scan(
		&order.ID, &order.OrderNo, &order.BuyerEmail, &order.Amount, &order.Status,
		&order.PaymentID, &order.DownloadToken, &order.DownloadCount,
		&order.WorkID, &order.VersionID, &order.CreatedAt, &order.PaidAt,
		&work.Title, &work.FigmaURL, &work.DeliveryURL, &work.CurrentVersion,
		&verLabel, &verFigmaURL, &verDeliveryURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrOrderNotFound
		}
		return nil, err
	}

	work.ID = order.WorkID
	order.Work = &work

	if order.VersionID != nil && verLabel != nil {
		order.Version = &models.WorkVersion{
			ID:          *order.VersionID,
			WorkID:      order.WorkID,
			Version:     *verLabel,
			FigmaURL:    verFigmaURL,
			DeliveryURL: verDeliveryURL,
		}
	}

	return &order, nil
}

// MarkPaid transitions order to PAID if it is still PENDING. It returns true
// when this call performed the transition, false when the order was already
// settled. The status guard in the query keeps concurrent webhook deliveries
// from applying the transition twice.
func (or *OrderRepository) MarkPaid(ctx context.Context, orderNo string, paymentID *string) (bool, error) {
	cmd, err := or.db.Exec(ctx, markPaidQuery, orderNo, paymentID)
	if err != nil {
		return false, err
	}

	return cmd.RowsAffected() > 0, nil
}

// UpdateStatusByIDs sets status for all orders with given ids.
// PAID additionally stamps paid_at at the time of the call.
func (or *OrderRepository) UpdateStatusByIDs(ctx context.Context, ids []string, status string) error {
	var err error
	if status == models.OrderStatusPaid {
		_, err = or.db.Exec(ctx, markPaidByIDsQuery, ids)
	} else {
		_, err = or.db.Exec(ctx, updateStatusByIDsQuery, status, ids)
	}
	return err
}

// GetPaidOrdersByIDs returns the subset of requested orders that are currently
// PAID, joined with work title for notification content
func (or *OrderRepository) GetPaidOrdersByIDs(ctx context.Context, ids []string) ([]models.Order, error) {
	rows, err := or.db.Query(ctx, selectPaidByIDsQuery, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}

	for rows.Next() {
		order := models.Order{}
		work := models.Work{}
		err = rows.Scan(&order.ID, &order.OrderNo, &order.BuyerEmail, &order.Amount, &order.Status, &order.PaidAt, &work.Title)
		if err != nil {
			continue
		}
		order.Work = &work
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

// MarkRefunded transitions a PAID order to REFUNDED, clearing the download
// token and resetting the download counter. paid_at is retained.
func (or *OrderRepository) MarkRefunded(ctx context.Context, id string) error {
	cmd, err := or.db.Exec(ctx, markRefundedQuery, id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrOrderNotFound
	}

	return nil
}

// DeleteByIDs hard-deletes orders by id regardless of status
func (or *OrderRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	_, err := or.db.Exec(ctx, deleteByIDsQuery, ids)
	return err
}
