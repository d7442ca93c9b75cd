package domain

import "time"

type OrderRecord struct {
	OrderID      string     `json:"order_id"`
	PurchaseDate time.Time  `json:"purchase_date"`
	Status       string     `json:"status"`
	Items        []LineItem `json:"items"`
}

type LineItem struct {
	SKU             string  `json:"sku"`
	QuantityOrdered int     `json:"quantity_ordered"`
	ItemPrice       float64 `json:"item_price"`
	ShippingPrice   float64 `json:"shipping_price"`
	ItemTax         float64 `json:"item_tax"`
	ShippingTax     float64 `json:"shipping_tax"`
}
