package mpclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/vfg2006/marketplace-ingest-api/infrastructure/integrator/marketplace/mpdomain"
)

func (c *MarketplaceClient) GetFeesEstimate(ctx context.Context, s Session, sku string, price float64, currency string) (*mpdomain.FeesEstimateResult, error) {
	body := mpdomain.FeesEstimateRequestBody{
		FeesEstimateRequest: mpdomain.FeesEstimateRequest{
			MarketplaceID:     s.MarketplaceID,
			IsAmazonFulfilled: true,
			PriceToEstimateFees: mpdomain.PriceToEstimateFees{
				ListingPrice: mpdomain.MoneyRequest{CurrencyCode: currency, Amount: price},
			},
			Identifier: sku,
		},
	}

	var response mpdomain.FeesEstimateResponse
	err := c.Executor.DoJSON(ctx, Request{
		Method:      http.MethodPost,
		BaseURL:     s.BaseURL,
		Path:        fmt.Sprintf("/products/fees/v0/listings/%s/feesEstimate", url.PathEscape(sku)),
		Body:        body,
		AccessToken: s.AccessToken,
		BestEffort:  true,
		Endpoint:    "feesEstimate",
	}, &response)
	if err != nil {
		return nil, err
	}

	result := response.Payload.FeesEstimateResult
	if result.Status != mpdomain.FeesEstimateStatusSuccess {
		msg := result.Status
		if result.Error != nil {
			msg = result.Error.Code + ": " + result.Error.Message
		}
		return nil, fmt.Errorf("mpclient: estimativa de taxas sem sucesso para %s: %s", sku, msg)
	}

	return &result, nil
}
