package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/studiomart/orderpay/config"
	"github.com/studiomart/orderpay/internal/models"
	"github.com/studiomart/orderpay/internal/wechatpay"
)

type WebhookService interface {
	// SettlePayment applies a verified payment event to its order
	SettlePayment(ctx context.Context, event *wechatpay.PaymentEvent) error
}

// WebhookHandler represents HTTP handler for payment gateway notifications
type WebhookHandler struct {
	svc       WebhookService
	wechatCfg config.WechatConfig
}

// NewWebhookHandler creates new WebhookHandler instance
func NewWebhookHandler(svc WebhookService, wechatCfg config.WechatConfig) *WebhookHandler {
	return &WebhookHandler{
		svc:       svc,
		wechatCfg: wechatCfg,
	}
}

type notifyResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PaymentNotify handles the gateway payment notification. The gateway
// retries on any non-200, so once the payload is authenticated the response
// is 200 even for non-success trade states and already-settled orders.
// 200 — payload authenticated and acknowledged.
// 400 — empty or malformed payload.
// 401 — payload failed authenticated decryption.
// 404 — order reference unknown.
// 500 — merchant not configured or internal error.
func (wh *WebhookHandler) PaymentNotify() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil || len(body) == 0 {
			writeNotify(w, http.StatusBadRequest, "FAIL", "empty body")
			return
		}
		defer r.Body.Close()

		if wh.wechatCfg.APIv3Key == "" {
			writeNotify(w, http.StatusInternalServerError, "FAIL", "merchant not configured")
			return
		}

		event, err := wechatpay.ParseNotify(body, wh.wechatCfg.APIv3Key)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrUntrustedPayload):
				writeNotify(w, http.StatusUnauthorized, "FAIL", "payload is not trusted")
			default:
				writeNotify(w, http.StatusBadRequest, "FAIL", "malformed payload")
			}
			return
		}

		if err := wh.svc.SettlePayment(r.Context(), event); err != nil {
			switch {
			case errors.Is(err, models.ErrOrderNotFound):
				writeNotify(w, http.StatusNotFound, "FAIL", "order not found")
			default:
				writeNotify(w, http.StatusInternalServerError, "FAIL", "internal error")
			}
			return
		}

		writeNotify(w, http.StatusOK, "SUCCESS", "ok")
	}
}

func writeNotify(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(notifyResponse{Code: code, Message: message}); err != nil {
		return
	}
}
