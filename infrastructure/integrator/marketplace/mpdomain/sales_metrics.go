package mpdomain

type OrderMetricsResponse struct {
	Payload []OrderMetricsInterval `json:"payload"`
}

type OrderMetricsInterval struct {
	Interval         string      `json:"interval"`
	UnitCount        int         `json:"unitCount"`
	OrderItemCount   int         `json:"orderItemCount"`
	OrderCount       int         `json:"orderCount"`
	AverageUnitPrice MetricMoney `json:"averageUnitPrice"`
	TotalSales       MetricMoney `json:"totalSales"`
}
