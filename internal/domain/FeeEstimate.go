package domain

type FeeComponent struct {
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
}

type FeeEstimate struct {
	Identifier        string         `json:"identifier"`
	ListingPrice      float64        `json:"listing_price"`
	Currency          string         `json:"currency"`
	TotalFeesEstimate float64        `json:"total_fees_estimate"`
	FeeBreakdown      []FeeComponent `json:"fee_breakdown"`
}

type RefundEvent struct {
	OrderID      string  `json:"order_id"`
	SKU          string  `json:"sku"`
	Quantity     int     `json:"quantity"`
	ChargeType   string  `json:"charge_type"`
	ChargeAmount float64 `json:"charge_amount"`
}
