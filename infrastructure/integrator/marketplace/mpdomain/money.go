package mpdomain

import (
	"bytes"
	"strconv"
)

// Amount aceita valores monetários enviados como número ou como string ("12.50")
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*a = 0
		return nil
	}

	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}

	*a = Amount(v)
	return nil
}

func (a Amount) Float() float64 {
	return float64(a)
}

type Money struct {
	CurrencyCode string `json:"CurrencyCode"`
	Amount       Amount `json:"Amount"`
}

// MetricMoney segue o formato em camelCase do endpoint de métricas de vendas
type MetricMoney struct {
	CurrencyCode string `json:"currencyCode"`
	Amount       Amount `json:"amount"`
}

// CurrencyAmount é o formato usado pelos eventos financeiros
type CurrencyAmount struct {
	CurrencyCode   string `json:"CurrencyCode"`
	CurrencyAmount Amount `json:"CurrencyAmount"`
}
