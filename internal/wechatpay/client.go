package wechatpay

import (
	"context"

	"github.com/studiomart/orderpay/config"
	"github.com/studiomart/orderpay/internal/models"
	"github.com/wechatpay-apiv3/wechatpay-go/core"
	"github.com/wechatpay-apiv3/wechatpay-go/core/option"
	"github.com/wechatpay-apiv3/wechatpay-go/services/refunddomestic"
	"github.com/wechatpay-apiv3/wechatpay-go/utils"
)

const currencyCNY = "CNY"

// Client performs refund calls against the WeChat Pay APIv3
type Client struct {
	refunds refunddomestic.RefundsApiService
}

// NewClient builds refund-capable client from merchant configuration.
// It returns ErrPaymentNotConfigured when credentials are incomplete.
func NewClient(ctx context.Context, cfg config.WechatConfig) (*Client, error) {
	if !cfg.Configured() {
		return nil, models.ErrPaymentNotConfigured
	}

	privateKey, err := utils.LoadPrivateKeyWithPath(cfg.PrivateKeyPath)
	if err != nil {
		return nil, err
	}

	client, err := core.NewClient(ctx,
		option.WithWechatPayAutoAuthCipher(cfg.MchID, cfg.CertSerialNo, privateKey, cfg.APIv3Key))
	if err != nil {
		return nil, err
	}

	return &Client{
		refunds: refunddomestic.RefundsApiService{Client: client},
	}, nil
}

// Refund requests an original-route refund of amountFen for the given order
// reference, using refundNo as the gateway-side refund idempotency key
func (c *Client) Refund(ctx context.Context, orderNo, refundNo, reason string, amountFen int64) error {
	_, _, err := c.refunds.Create(ctx, refunddomestic.CreateRequest{
		OutTradeNo:  core.String(orderNo),
		OutRefundNo: core.String(refundNo),
		Reason:      core.String(reason),
		Amount: &refunddomestic.AmountReq{
			Total:    core.Int64(amountFen),
			Refund:   core.Int64(amountFen),
			Currency: core.String(currencyCNY),
		},
	})
	return err
}
