package mpdomain

type FinancialEventsResponse struct {
	Payload FinancialEventsPayload `json:"payload"`
}

type FinancialEventsPayload struct {
	FinancialEvents FinancialEvents `json:"FinancialEvents"`
	NextToken       string          `json:"NextToken,omitempty"`
}

type FinancialEvents struct {
	RefundEventList []ShipmentEvent `json:"RefundEventList"`
}

type ShipmentEvent struct {
	AmazonOrderID              string                   `json:"AmazonOrderId"`
	PostedDate                 string                   `json:"PostedDate"`
	MarketplaceName            string                   `json:"MarketplaceName"`
	ShipmentItemAdjustmentList []ShipmentItemAdjustment `json:"ShipmentItemAdjustmentList"`
}

type ShipmentItemAdjustment struct {
	SellerSKU                string            `json:"SellerSKU"`
	QuantityShipped          int               `json:"QuantityShipped"`
	ItemChargeAdjustmentList []ChargeComponent `json:"ItemChargeAdjustmentList"`
}

type ChargeComponent struct {
	ChargeType   string         `json:"ChargeType"`
	ChargeAmount CurrencyAmount `json:"ChargeAmount"`
}

// ChargeTypePrincipal é o único tipo de ajuste considerado como valor reembolsado
const ChargeTypePrincipal = "Principal"
