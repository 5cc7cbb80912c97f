package wechatpay

import "github.com/shopspring/decimal"

// refund reference is derived from the order reference with a fixed suffix
const refundNoSuffix = "-R"

var fenPerYuan = decimal.NewFromInt(100)

// Fen converts a decimal yuan amount to the integer minor-unit (fen)
// representation required by the gateway.
func Fen(amount decimal.Decimal) int64 {
	return amount.Mul(fenPerYuan).Round(0).IntPart()
}

// RefundNo derives the refund reference for an order reference
func RefundNo(orderNo string) string {
	return orderNo + refundNoSuffix
}
