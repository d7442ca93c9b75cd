package ingesting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/marketplace-ingest-api/internal/domain"
)

func float64Ptr(v float64) *float64 {
	return &v
}

func TestComputeFees(t *testing.T) {
	metric := domain.SalesMetric{TotalSales: 1000, UnitCount: 20}

	tests := []struct {
		name     string
		metric   domain.SalesMetric
		rate     *float64
		estimate *domain.FeeEstimate
		validate func(t *testing.T, result FeeResult)
	}{
		{
			name:   "Comissão calculada sobre vendas e preço médio",
			metric: metric,
			rate:   float64Ptr(0.15),
			validate: func(t *testing.T, result FeeResult) {
				assert.InDelta(t, 50.0, result.AveragePrice, 1e-9)
				assert.InDelta(t, 150.0, result.TotalReferralFee, 1e-9)
				assert.InDelta(t, 7.5, result.ReferralFeePerUnit, 1e-9)
				assert.Equal(t, 0.15, result.ReferralFeeRate)
				assert.False(t, result.RateMissing)
				assert.Zero(t, result.FBAFeePerUnit)
			},
		},
		{
			name:   "Linha de fulfillment da estimativa define a taxa FBA",
			metric: metric,
			rate:   float64Ptr(0.15),
			estimate: &domain.FeeEstimate{
				TotalFeesEstimate: 10.7,
				FeeBreakdown: []domain.FeeComponent{
					{Type: "ReferralFee", Amount: 7.5},
					{Type: "FBAFees", Amount: 3.2},
				},
			},
			validate: func(t *testing.T, result FeeResult) {
				assert.InDelta(t, 3.2, result.FBAFeePerUnit, 1e-9)
				assert.InDelta(t, 64.0, result.TotalFBAFee, 1e-9)
			},
		},
		{
			name:   "Sem linha de fulfillment usa total menos comissão",
			metric: metric,
			rate:   float64Ptr(0.15),
			estimate: &domain.FeeEstimate{
				TotalFeesEstimate: 10.5,
				FeeBreakdown:      []domain.FeeComponent{{Type: "ReferralFee", Amount: 7.5}},
			},
			validate: func(t *testing.T, result FeeResult) {
				assert.InDelta(t, 3.0, result.FBAFeePerUnit, 1e-9)
				assert.InDelta(t, 60.0, result.TotalFBAFee, 1e-9)
			},
		},
		{
			name:   "Fallback negativo resulta em taxa FBA zero",
			metric: metric,
			rate:   float64Ptr(0.15),
			estimate: &domain.FeeEstimate{
				TotalFeesEstimate: 5,
			},
			validate: func(t *testing.T, result FeeResult) {
				assert.Zero(t, result.FBAFeePerUnit)
				assert.Zero(t, result.TotalFBAFee)
			},
		},
		{
			name:   "Zero unidades não divide por zero",
			metric: domain.SalesMetric{TotalSales: 0, UnitCount: 0},
			rate:   float64Ptr(0.15),
			estimate: &domain.FeeEstimate{
				TotalFeesEstimate: 10,
				FeeBreakdown:      []domain.FeeComponent{{Type: "FBAFees", Amount: 3}},
			},
			validate: func(t *testing.T, result FeeResult) {
				assert.Zero(t, result.AveragePrice)
				assert.Zero(t, result.TotalReferralFee)
				assert.Zero(t, result.ReferralFeePerUnit)
				assert.Zero(t, result.FBAFeePerUnit)
				assert.Zero(t, result.TotalFBAFee)
			},
		},
		{
			name:   "Sem taxa de comissão os campos de comissão ficam zerados",
			metric: metric,
			rate:   nil,
			estimate: &domain.FeeEstimate{
				TotalFeesEstimate: 4,
			},
			validate: func(t *testing.T, result FeeResult) {
				assert.True(t, result.RateMissing)
				assert.Zero(t, result.TotalReferralFee)
				assert.Zero(t, result.ReferralFeePerUnit)
				assert.InDelta(t, 4.0, result.FBAFeePerUnit, 1e-9)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, ComputeFees(tt.metric, tt.rate, tt.estimate))
		})
	}
}

func TestFBAFeePerUnit_ReconheceTiposDeFulfillment(t *testing.T) {
	for _, feeType := range []string{"FBAFees", "FBAPerUnitFulfillmentFee", "FulfillmentFees", "fba_fee"} {
		estimate := &domain.FeeEstimate{FeeBreakdown: []domain.FeeComponent{{Type: feeType, Amount: 2.5}}}
		assert.Equal(t, 2.5, FBAFeePerUnit(estimate, 0), feeType)
	}

	assert.Zero(t, FBAFeePerUnit(nil, 1))
}

func TestSumRefunds(t *testing.T) {
	events := []domain.RefundEvent{
		{OrderID: "1", SKU: "SKU-A", Quantity: 1, ChargeType: "Principal", ChargeAmount: -12.5},
		{OrderID: "1", SKU: "SKU-A", Quantity: 1, ChargeType: "Shipping", ChargeAmount: -4},
		{OrderID: "1", SKU: "SKU-A", Quantity: 1, ChargeType: "Tax", ChargeAmount: -1},
		{OrderID: "2", SKU: "SKU-A", Quantity: 2, ChargeType: "Principal", ChargeAmount: -20},
		{OrderID: "3", SKU: "SKU-B", Quantity: 1, ChargeType: "Principal", ChargeAmount: -99},
	}

	total := SumRefunds(events, "SKU-A")
	assert.InDelta(t, 32.5, total.Amount, 1e-9)
	assert.Equal(t, 3, total.Units)

	assert.Equal(t, RefundTotal{}, SumRefunds(events, "SKU-C"))
}

func TestMergeInventory(t *testing.T) {
	t.Run("Detalhamento tem prioridade", func(t *testing.T) {
		snapshot := MergeInventory(domain.InventorySummary{
			Identifier:    "SKU-A",
			TotalQuantity: 40,
			Details: &domain.InventorySnapshot{
				Fulfillable:    30,
				InboundShipped: 5,
				Researching:    domain.ResearchingQuantity{Total: 3, Short: 1, Mid: 1, Long: 1},
			},
		})

		assert.Equal(t, "SKU-A", snapshot.Identifier)
		assert.Equal(t, 30, snapshot.Fulfillable)
		assert.Equal(t, 5, snapshot.InboundShipped)
		assert.Equal(t, 3, snapshot.Researching.Total)
	})

	t.Run("Sem detalhamento o total vira disponível", func(t *testing.T) {
		snapshot := MergeInventory(domain.InventorySummary{Identifier: "SKU-B", TotalQuantity: 12})

		assert.Equal(t, &domain.InventorySnapshot{Identifier: "SKU-B", Fulfillable: 12}, snapshot)
	})
}
