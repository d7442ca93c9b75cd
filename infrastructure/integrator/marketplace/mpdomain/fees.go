package mpdomain

type FeesEstimateRequestBody struct {
	FeesEstimateRequest FeesEstimateRequest `json:"FeesEstimateRequest"`
}

type FeesEstimateRequest struct {
	MarketplaceID       string              `json:"MarketplaceId"`
	IsAmazonFulfilled   bool                `json:"IsAmazonFulfilled"`
	PriceToEstimateFees PriceToEstimateFees `json:"PriceToEstimateFees"`
	Identifier          string              `json:"Identifier"`
}

type PriceToEstimateFees struct {
	ListingPrice MoneyRequest `json:"ListingPrice"`
}

// MoneyRequest é serializado com Amount numérico, como o endpoint de taxas exige
type MoneyRequest struct {
	CurrencyCode string  `json:"CurrencyCode"`
	Amount       float64 `json:"Amount"`
}

type FeesEstimateResponse struct {
	Payload FeesEstimatePayload `json:"payload"`
}

type FeesEstimatePayload struct {
	FeesEstimateResult FeesEstimateResult `json:"FeesEstimateResult"`
}

type FeesEstimateResult struct {
	Status                 string                  `json:"Status"`
	FeesEstimateIdentifier *FeesEstimateIdentifier `json:"FeesEstimateIdentifier,omitempty"`
	FeesEstimate           *FeesEstimate           `json:"FeesEstimate,omitempty"`
	Error                  *FeesEstimateError      `json:"Error,omitempty"`
}

type FeesEstimateIdentifier struct {
	MarketplaceID string `json:"MarketplaceId"`
	IDType        string `json:"IdType"`
	IDValue       string `json:"IdValue"`
	SellerInputID string `json:"SellerInputIdentifier"`
}

type FeesEstimate struct {
	TotalFeesEstimate Money       `json:"TotalFeesEstimate"`
	FeeDetailList     []FeeDetail `json:"FeeDetailList"`
}

type FeeDetail struct {
	FeeType   string `json:"FeeType"`
	FeeAmount Money  `json:"FeeAmount"`
	FinalFee  *Money `json:"FinalFee,omitempty"`
}

type FeesEstimateError struct {
	Type    string `json:"Type"`
	Code    string `json:"Code"`
	Message string `json:"Message"`
}

// Status de sucesso do cálculo de taxas
const FeesEstimateStatusSuccess = "Success"
