package service

import "github.com/studiomart/orderpay/internal/models"

// ResolveDelivery returns the releasable links for an order. Each field
// independently prefers the pinned version's value, falling back to the
// work's value. Orders that are not PAID get no links regardless of the
// underlying data, so unpaid orders can never see paid assets.
func ResolveDelivery(order *models.Order) models.DeliveryInfo {
	if order == nil || order.Status != models.OrderStatusPaid {
		return models.DeliveryInfo{}
	}

	info := models.DeliveryInfo{}

	if order.Version != nil {
		info.FigmaURL = order.Version.FigmaURL
		info.DeliveryURL = order.Version.DeliveryURL
	}
	if order.Work != nil {
		if info.FigmaURL == nil {
			info.FigmaURL = order.Work.FigmaURL
		}
		if info.DeliveryURL == nil {
			info.DeliveryURL = order.Work.DeliveryURL
		}
	}

	return info
}

// resolveVersionLabel prefers the pinned version's label over the work's
// current version
func resolveVersionLabel(order *models.Order) *string {
	if order.Version != nil {
		return &order.Version.Version
	}
	if order.Work != nil {
		return order.Work.CurrentVersion
	}
	return nil
}
