package ingesting

import (
	"strings"

	"github.com/vfg2006/marketplace-ingest-api/internal/domain"
)

// FeeResult guarda as taxas calculadas para um identificador no mês, sem arredondamento
type FeeResult struct {
	AveragePrice       float64
	ReferralFeeRate    float64
	ReferralFeePerUnit float64
	TotalReferralFee   float64
	FBAFeePerUnit      float64
	TotalFBAFee        float64
	RateMissing        bool
}

// AveragePrice é totalSales/unitCount, zero quando não houve unidades vendidas
func AveragePrice(metric domain.SalesMetric) float64 {
	if metric.UnitCount <= 0 {
		return 0
	}
	return metric.TotalSales / float64(metric.UnitCount)
}

func ComputeFees(metric domain.SalesMetric, rate *float64, estimate *domain.FeeEstimate) FeeResult {
	result := FeeResult{
		AveragePrice: AveragePrice(metric),
		RateMissing:  rate == nil,
	}

	if metric.UnitCount <= 0 {
		if rate != nil {
			result.ReferralFeeRate = *rate
		}
		return result
	}

	if rate != nil {
		result.ReferralFeeRate = *rate
		result.TotalReferralFee = metric.TotalSales * *rate
		result.ReferralFeePerUnit = result.AveragePrice * *rate
	}

	result.FBAFeePerUnit = FBAFeePerUnit(estimate, result.ReferralFeePerUnit)
	result.TotalFBAFee = result.FBAFeePerUnit * float64(metric.UnitCount)

	return result
}

// FBAFeePerUnit usa a primeira linha de taxa de fulfillment da estimativa.
// Sem essa linha, a taxa é o total estimado menos a comissão por unidade, quando positivo.
func FBAFeePerUnit(estimate *domain.FeeEstimate, referralFeePerUnit float64) float64 {
	if estimate == nil {
		return 0
	}

	for _, component := range estimate.FeeBreakdown {
		if isFulfillmentFee(component.Type) {
			return component.Amount
		}
	}

	if fallback := estimate.TotalFeesEstimate - referralFeePerUnit; fallback > 0 {
		return fallback
	}

	return 0
}

func isFulfillmentFee(feeType string) bool {
	t := strings.ToLower(feeType)
	return strings.Contains(t, "fba") || strings.Contains(t, "fulfillment")
}
