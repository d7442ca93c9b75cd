package domain

import "time"

// Granularidades aceitas pelo endpoint de métricas de vendas
const (
	GranularityDay   = "Day"
	GranularityWeek  = "Week"
	GranularityMonth = "Month"
	GranularityTotal = "Total"
)

type SalesMetric struct {
	IntervalStart    time.Time `json:"interval_start"`
	TotalSales       float64   `json:"total_sales"`
	Currency         string    `json:"currency"`
	UnitCount        int       `json:"unit_count"`
	OrderCount       int       `json:"order_count"`
	OrderItemCount   int       `json:"order_item_count"`
	AverageUnitPrice float64   `json:"average_unit_price"`
}

// SumSalesMetrics soma os buckets retornados pela API. O intervalo da ingestão nunca passa de um mês civil.
func SumSalesMetrics(metrics []SalesMetric) SalesMetric {
	total := SalesMetric{}
	for i, m := range metrics {
		if i == 0 {
			total.IntervalStart = m.IntervalStart
			total.Currency = m.Currency
		}
		total.TotalSales += m.TotalSales
		total.UnitCount += m.UnitCount
		total.OrderCount += m.OrderCount
		total.OrderItemCount += m.OrderItemCount
	}

	if total.UnitCount > 0 {
		total.AverageUnitPrice = total.TotalSales / float64(total.UnitCount)
	}

	return total
}
