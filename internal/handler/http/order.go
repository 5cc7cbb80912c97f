package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/studiomart/orderpay/internal/models"
	"github.com/studiomart/orderpay/internal/service"
)

type OrderService interface {
	// Create inserts a new PENDING order with a generated order reference
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	// Status returns the order with its resolved delivery info
	Status(ctx context.Context, orderNo string) (*models.Order, models.DeliveryInfo, error)
}

type BatchService interface {
	// UpdateStatus applies target status to the given orders
	UpdateStatus(ctx context.Context, ids []string, status string) (*service.BatchResult, error)
	// Delete hard-deletes orders by id
	Delete(ctx context.Context, ids []string) error
}

// OrderHandler represents HTTP handler for order-related requests
type OrderHandler struct {
	svc   OrderService
	batch BatchService
}

// NewOrderHandler creates new OrderHandler instance
func NewOrderHandler(svc OrderService, batch BatchService) *OrderHandler {
	return &OrderHandler{
		svc:   svc,
		batch: batch,
	}
}

type createOrderRequest struct {
	WorkID     string  `json:"workId"`
	VersionID  *string `json:"versionId"`
	BuyerEmail string  `json:"buyerEmail"`
	Amount     string  `json:"amount"`
}

type createOrderResponse struct {
	OrderNo   string `json:"orderNo"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

// CreateOrder creates a new PENDING order
// 201 — order created.
// 400 — invalid request body.
// 500 — internal error.
func (oh *OrderHandler) CreateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad request")
			return
		}
		defer r.Body.Close()

		if req.WorkID == "" || req.BuyerEmail == "" {
			writeError(w, http.StatusBadRequest, "workId and buyerEmail required")
			return
		}

		amount, err := decimal.NewFromString(req.Amount)
		if err != nil || amount.IsNegative() {
			writeError(w, http.StatusBadRequest, "invalid amount")
			return
		}

		order := models.Order{
			WorkID:     req.WorkID,
			VersionID:  req.VersionID,
			BuyerEmail: req.BuyerEmail,
			Amount:     amount,
		}

		created, err := oh.svc.Create(r.Context(), &order)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusCreated, createOrderResponse{
			OrderNo:   created.OrderNo,
			Status:    created.Status,
			CreatedAt: created.CreatedAt.Format(time.RFC3339),
		})
	}
}

type checkStatusResponse struct {
	Status      string  `json:"status"`
	FigmaURL    *string `json:"figmaUrl"`
	DeliveryURL *string `json:"deliveryUrl"`
}

// CheckOrderStatus returns current order status. Delivery links are present
// only when the order is PAID, mirroring the resolver's suppression rule.
// 200 — current status, with links when PAID.
// 400 — orderNo is missing.
// 404 — order not found.
// 500 — internal error.
func (oh *OrderHandler) CheckOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderNo := strings.TrimSpace(r.URL.Query().Get("orderNo"))
		if orderNo == "" {
			writeError(w, http.StatusBadRequest, "orderNo required")
			return
		}

		order, delivery, err := oh.svc.Status(r.Context(), orderNo)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrOrderNotFound):
				writeError(w, http.StatusNotFound, "order not found")
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusOK, checkStatusResponse{
			Status:      order.Status,
			FigmaURL:    delivery.FigmaURL,
			DeliveryURL: delivery.DeliveryURL,
		})
	}
}

type batchUpdateRequest struct {
	IDs    []string `json:"ids"`
	Status string   `json:"status"`
}

type refundOutcomeResp struct {
	OrderNo string `json:"orderNo"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type batchResponse struct {
	OK      bool                `json:"ok"`
	Results []refundOutcomeResp `json:"results,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// BatchUpdateOrders applies status to a set of orders. REFUNDED triggers one
// gateway refund per order with per-order outcome accounting.
// 200 — all orders updated (or refunded).
// 207 — some refunds failed, response carries per-order outcomes.
// 400 — validation failure.
// 500 — internal error.
func (oh *OrderHandler) BatchUpdateOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req batchUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad request")
			return
		}
		defer r.Body.Close()

		if !models.IsValidOrderStatus(req.Status) || req.Status == models.OrderStatusPending {
			writeError(w, http.StatusBadRequest, "invalid status")
			return
		}

		result, err := oh.batch.UpdateStatus(r.Context(), req.IDs, req.Status)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrInvalidRequest):
				writeError(w, http.StatusBadRequest, "ids required")
			case errors.Is(err, models.ErrPaymentNotConfigured):
				writeError(w, http.StatusBadRequest, "payment gateway is not configured")
			case errors.Is(err, models.ErrNoRefundableOrders):
				writeError(w, http.StatusBadRequest, "no orders eligible for refund")
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		if result == nil {
			// bulk update path has no per-order outcomes
			writeJSON(w, http.StatusOK, batchResponse{OK: true})
			return
		}

		results := make([]refundOutcomeResp, 0, len(result.Results))
		for _, outcome := range result.Results {
			results = append(results, refundOutcomeResp{
				OrderNo: outcome.OrderNo,
				Success: outcome.Success,
				Error:   outcome.Error,
			})
		}

		if result.Failed > 0 {
			writeJSON(w, http.StatusMultiStatus, batchResponse{
				OK:      false,
				Results: results,
				Error:   fmt.Sprintf("%d refunds failed", result.Failed),
			})
			return
		}

		writeJSON(w, http.StatusOK, batchResponse{OK: true, Results: results})
	}
}

type batchDeleteRequest struct {
	IDs []string `json:"ids"`
}

// BatchDeleteOrders hard-deletes orders by id
// 200 — orders deleted.
// 400 — empty id set.
// 500 — internal error.
func (oh *OrderHandler) BatchDeleteOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req batchDeleteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad request")
			return
		}
		defer r.Body.Close()

		if err := oh.batch.Delete(r.Context(), req.IDs); err != nil {
			switch {
			case errors.Is(err, models.ErrInvalidRequest):
				writeError(w, http.StatusBadRequest, "ids required")
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusOK, batchResponse{OK: true})
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		return
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
