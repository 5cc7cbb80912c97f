package wechatpay

import (
	"encoding/json"
	"strings"

	"github.com/studiomart/orderpay/internal/models"
	"github.com/wechatpay-apiv3/wechatpay-go/utils"
)

// TradeStateSuccess is the trade state of a settled payment. Any other state
// must be acknowledged without applying the transition.
const TradeStateSuccess = "SUCCESS"

type notifyResource struct {
	Ciphertext     string `json:"ciphertext"`
	AssociatedData string `json:"associated_data"`
	Nonce          string `json:"nonce"`
}

type notifyEnvelope struct {
	EventType string          `json:"event_type"`
	Resource  *notifyResource `json:"resource"`
}

type decryptedEvent struct {
	OutTradeNo    string `json:"out_trade_no"`
	TransactionID string `json:"transaction_id"`
	TradeState    string `json:"trade_state"`
}

// PaymentEvent is the authenticated content of a payment notification
type PaymentEvent struct {
	OrderNo       string
	TransactionID string
	TradeState    string
}

// ParseNotify authenticates and decrypts a raw notification body using the
// merchant APIv3 key. Successful AEAD decryption is the sole trust boundary:
// no separate signature check is performed, a payload that decrypts under the
// merchant key is treated as gateway-authentic.
func ParseNotify(rawBody []byte, apiV3Key string) (*PaymentEvent, error) {
	var envelope notifyEnvelope
	if err := json.Unmarshal(rawBody, &envelope); err != nil {
		return nil, models.ErrMalformedPayload
	}

	res := envelope.Resource
	if res == nil || res.Ciphertext == "" || res.AssociatedData == "" || res.Nonce == "" {
		return nil, models.ErrMalformedPayload
	}

	plaintext, err := utils.DecryptAES256GCM(apiV3Key, res.AssociatedData, res.Nonce, res.Ciphertext)
	if err != nil {
		// auth tag mismatch: key does not match or data was tampered with
		return nil, models.ErrUntrustedPayload
	}

	var event decryptedEvent
	if err := json.Unmarshal([]byte(plaintext), &event); err != nil {
		return nil, models.ErrMalformedPayload
	}

	orderNo := strings.TrimSpace(event.OutTradeNo)
	if orderNo == "" {
		return nil, models.ErrMalformedPayload
	}

	return &PaymentEvent{
		OrderNo:       orderNo,
		TransactionID: event.TransactionID,
		TradeState:    event.TradeState,
	}, nil
}
