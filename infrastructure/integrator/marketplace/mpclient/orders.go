package mpclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vfg2006/marketplace-ingest-api/infrastructure/integrator/marketplace/mpdomain"
)

const defaultOrdersPerPage = 100

func (c *MarketplaceClient) GetOrders(ctx context.Context, s Session, params OrdersParams, nextToken string) (*mpdomain.OrdersPayload, error) {
	query := url.Values{}
	if nextToken != "" {
		// a API rejeita filtros junto com o NextToken, exceto o marketplace
		query.Set("NextToken", nextToken)
	} else {
		query.Set("CreatedAfter", params.CreatedAfter.UTC().Format(time.RFC3339))
		if !params.CreatedBefore.IsZero() {
			query.Set("CreatedBefore", params.CreatedBefore.UTC().Format(time.RFC3339))
		}
		perPage := params.MaxResultsPerPage
		if perPage <= 0 || perPage > defaultOrdersPerPage {
			perPage = defaultOrdersPerPage
		}
		query.Set("MaxResultsPerPage", strconv.Itoa(perPage))
	}
	query.Set("MarketplaceIds", strings.Join(marketplaceIDs(s, params.MarketplaceIDs), ","))

	var response mpdomain.OrdersResponse
	err := c.Executor.DoJSON(ctx, Request{
		Method:      http.MethodGet,
		BaseURL:     s.BaseURL,
		Path:        "/orders/v0/orders",
		Query:       query,
		AccessToken: s.AccessToken,
		Endpoint:    "orders",
	}, &response)
	if err != nil {
		return nil, err
	}

	return &response.Payload, nil
}

// GetOrderItems segue o NextToken até obter todos os itens do pedido
func (c *MarketplaceClient) GetOrderItems(ctx context.Context, s Session, orderID string) ([]mpdomain.OrderItem, error) {
	path := fmt.Sprintf("/orders/v0/orders/%s/orderItems", url.PathEscape(orderID))

	result := Collect(ctx, nil, "", func(ctx context.Context, cursor string) (Page[mpdomain.OrderItem], error) {
		if cursor != "" {
			if err := Pace(ctx, c.Pacing.OrderItemsDelay); err != nil {
				return Page[mpdomain.OrderItem]{}, err
			}
		}

		query := url.Values{}
		if cursor != "" {
			query.Set("NextToken", cursor)
		}

		var response mpdomain.OrderItemsResponse
		err := c.Executor.DoJSON(ctx, Request{
			Method:      http.MethodGet,
			BaseURL:     s.BaseURL,
			Path:        path,
			Query:       query,
			AccessToken: s.AccessToken,
			BestEffort:  true,
			Endpoint:    "orderItems",
		}, &response)
		if err != nil {
			return Page[mpdomain.OrderItem]{}, err
		}

		return Page[mpdomain.OrderItem]{Items: response.Payload.OrderItems, NextCursor: response.Payload.NextToken}, nil
	})

	if result.Err != nil {
		return result.Items, result.Err
	}

	return result.Items, nil
}

func marketplaceIDs(s Session, ids []string) []string {
	if len(ids) > 0 {
		return ids
	}
	return []string{s.MarketplaceID}
}
