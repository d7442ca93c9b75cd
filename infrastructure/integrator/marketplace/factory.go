package marketplace

import (
	"strings"
	"time"

	"github.com/vfg2006/marketplace-ingest-api/infrastructure/integrator/marketplace/mpdomain"
	"github.com/vfg2006/marketplace-ingest-api/internal/domain"
)

func FactoryOrder(o mpdomain.Order) domain.OrderRecord {
	purchaseDate, _ := time.Parse(time.RFC3339, o.PurchaseDate)

	return domain.OrderRecord{
		OrderID:      o.AmazonOrderID,
		PurchaseDate: purchaseDate,
		Status:       o.OrderStatus,
		Items:        make([]domain.LineItem, 0),
	}
}

func FactoryLineItems(items []mpdomain.OrderItem) []domain.LineItem {
	lineItems := make([]domain.LineItem, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, domain.LineItem{
			SKU:             item.SellerSKU,
			QuantityOrdered: item.QuantityOrdered,
			ItemPrice:       mpdomain.MoneyValue(item.ItemPrice),
			ShippingPrice:   mpdomain.MoneyValue(item.ShippingPrice),
			ItemTax:         mpdomain.MoneyValue(item.ItemTax),
			ShippingTax:     mpdomain.MoneyValue(item.ShippingTax),
		})
	}
	return lineItems
}

func FactorySalesMetrics(intervals []mpdomain.OrderMetricsInterval) []domain.SalesMetric {
	metrics := make([]domain.SalesMetric, 0, len(intervals))
	for _, m := range intervals {
		var start time.Time
		if parts := strings.SplitN(m.Interval, "--", 2); len(parts) > 0 {
			start, _ = time.Parse(time.RFC3339, parts[0])
		}

		metrics = append(metrics, domain.SalesMetric{
			IntervalStart:    start,
			TotalSales:       m.TotalSales.Amount.Float(),
			Currency:         m.TotalSales.CurrencyCode,
			UnitCount:        m.UnitCount,
			OrderCount:       m.OrderCount,
			OrderItemCount:   m.OrderItemCount,
			AverageUnitPrice: m.AverageUnitPrice.Amount.Float(),
		})
	}
	return metrics
}

func FactoryFeeEstimate(identifier string, price float64, currency string, result *mpdomain.FeesEstimateResult) *domain.FeeEstimate {
	estimate := &domain.FeeEstimate{
		Identifier:   identifier,
		ListingPrice: price,
		Currency:     currency,
		FeeBreakdown: make([]domain.FeeComponent, 0),
	}

	if result == nil || result.FeesEstimate == nil {
		return estimate
	}

	estimate.TotalFeesEstimate = result.FeesEstimate.TotalFeesEstimate.Amount.Float()
	if code := result.FeesEstimate.TotalFeesEstimate.CurrencyCode; code != "" {
		estimate.Currency = code
	}

	for _, fee := range result.FeesEstimate.FeeDetailList {
		amount := fee.FeeAmount.Amount.Float()
		if fee.FinalFee != nil {
			amount = fee.FinalFee.Amount.Float()
		}
		estimate.FeeBreakdown = append(estimate.FeeBreakdown, domain.FeeComponent{
			Type:   fee.FeeType,
			Amount: amount,
		})
	}

	return estimate
}

func FactoryInventorySummary(s mpdomain.InventorySummary) domain.InventorySummary {
	summary := domain.InventorySummary{
		Identifier:    s.SellerSku,
		TotalQuantity: s.TotalQuantity,
	}

	d := s.InventoryDetails
	if d == nil {
		return summary
	}

	snapshot := &domain.InventorySnapshot{
		Identifier:         s.SellerSku,
		Fulfillable:        d.FulfillableQuantity,
		InboundWorking:     d.InboundWorkingQuantity,
		InboundShipped:     d.InboundShippedQuantity,
		InboundReceiving:   d.InboundReceivingQuantity,
		ReservedOrders:     d.ReservedQuantity.PendingCustomerOrderQuantity,
		ReservedTransfer:   d.ReservedQuantity.PendingTransshipmentQuantity,
		ReservedProcessing: d.ReservedQuantity.FcProcessingQuantity,
		Researching: domain.ResearchingQuantity{
			Total: d.ResearchingQuantity.TotalResearchingQuantity,
		},
		Unfulfillable: domain.UnfulfillableQuantity{
			Total:              d.UnfulfillableQuantity.TotalUnfulfillableQuantity,
			CustomerDamaged:    d.UnfulfillableQuantity.CustomerDamagedQuantity,
			WarehouseDamaged:   d.UnfulfillableQuantity.WarehouseDamagedQuantity,
			DistributorDamaged: d.UnfulfillableQuantity.DistributorDamagedQuantity,
			CarrierDamaged:     d.UnfulfillableQuantity.CarrierDamagedQuantity,
			Defective:          d.UnfulfillableQuantity.DefectiveQuantity,
			Expired:            d.UnfulfillableQuantity.ExpiredQuantity,
		},
	}

	for _, entry := range d.ResearchingQuantity.ResearchingQuantityBreakdown {
		switch entry.Name {
		case mpdomain.ResearchingShortTerm:
			snapshot.Researching.Short = entry.Quantity
		case mpdomain.ResearchingMidTerm:
			snapshot.Researching.Mid = entry.Quantity
		case mpdomain.ResearchingLongTerm:
			snapshot.Researching.Long = entry.Quantity
		}
	}

	summary.Details = snapshot
	return summary
}

// FactoryRefundEvents achata os eventos de reembolso em um registro por componente de cobrança
func FactoryRefundEvents(events []mpdomain.ShipmentEvent) []domain.RefundEvent {
	refunds := make([]domain.RefundEvent, 0)
	for _, event := range events {
		for _, adjustment := range event.ShipmentItemAdjustmentList {
			for _, charge := range adjustment.ItemChargeAdjustmentList {
				refunds = append(refunds, domain.RefundEvent{
					OrderID:      event.AmazonOrderID,
					SKU:          adjustment.SellerSKU,
					Quantity:     adjustment.QuantityShipped,
					ChargeType:   charge.ChargeType,
					ChargeAmount: charge.ChargeAmount.CurrencyAmount.Float(),
				})
			}
		}
	}
	return refunds
}
