package domain

import (
	"fmt"
	"time"
)

// MonthlyAggregateRecord é o fato financeiro mensal persistido, único por (identifier, year, month)
type MonthlyAggregateRecord struct {
	ID         int64  `json:"id,omitempty"`
	Identifier string `json:"identifier"`
	AccountID  string `json:"account_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`

	TotalSales     float64 `json:"total_sales"`
	UnitCount      int     `json:"unit_count"`
	OrderCount     int     `json:"order_count"`
	OrderItemCount int     `json:"order_item_count"`
	AveragePrice   float64 `json:"average_price"`
	Currency       string  `json:"currency"`

	ReferralFeeRate    float64 `json:"referral_fee_rate"`
	ReferralFeePerUnit float64 `json:"referral_fee_per_unit"`
	TotalReferralFee   float64 `json:"total_referral_fee"`
	FBAFeePerUnit      float64 `json:"fba_fee_per_unit"`
	TotalFBAFee        float64 `json:"total_fba_fee"`

	RefundAmount float64 `json:"refund_amount"`
	RefundUnits  int     `json:"refund_units"`

	Inventory           *InventorySnapshot `json:"inventory,omitempty"`
	InventoryCapturedAt *time.Time         `json:"inventory_captured_at,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Period retorna o período no formato mm-yyyy
func (r *MonthlyAggregateRecord) Period() string {
	return PeriodKey(r.Year, r.Month)
}

// PeriodKey formata ano e mês no formato mm-yyyy
func PeriodKey(year, month int) string {
	return fmt.Sprintf("%02d-%04d", month, year)
}

// AggregateKey identifica unicamente um agregado mensal
type AggregateKey struct {
	Identifier string
	AccountID  string
	Year       int
	Month      int
}

func (r *MonthlyAggregateRecord) Key() AggregateKey {
	return AggregateKey{Identifier: r.Identifier, AccountID: r.AccountID, Year: r.Year, Month: r.Month}
}
