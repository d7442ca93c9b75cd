package mpdomain

type OrdersResponse struct {
	Payload OrdersPayload `json:"payload"`
}

type OrdersPayload struct {
	Orders        []Order `json:"Orders"`
	NextToken     string  `json:"NextToken,omitempty"`
	CreatedBefore string  `json:"CreatedBefore,omitempty"`
}

type Order struct {
	AmazonOrderID string `json:"AmazonOrderId"`
	PurchaseDate  string `json:"PurchaseDate"`
	OrderStatus   string `json:"OrderStatus"`
	OrderTotal    *Money `json:"OrderTotal,omitempty"`
}

type OrderItemsResponse struct {
	Payload OrderItemsPayload `json:"payload"`
}

type OrderItemsPayload struct {
	AmazonOrderID string      `json:"AmazonOrderId"`
	OrderItems    []OrderItem `json:"OrderItems"`
	NextToken     string      `json:"NextToken,omitempty"`
}

type OrderItem struct {
	ASIN            string `json:"ASIN"`
	SellerSKU       string `json:"SellerSKU"`
	OrderItemID     string `json:"OrderItemId"`
	QuantityOrdered int    `json:"QuantityOrdered"`
	ItemPrice       *Money `json:"ItemPrice,omitempty"`
	ShippingPrice   *Money `json:"ShippingPrice,omitempty"`
	ItemTax         *Money `json:"ItemTax,omitempty"`
	ShippingTax     *Money `json:"ShippingTax,omitempty"`
}

// MoneyValue retorna zero para valores ausentes
func MoneyValue(m *Money) float64 {
	if m == nil {
		return 0
	}
	return m.Amount.Float()
}
