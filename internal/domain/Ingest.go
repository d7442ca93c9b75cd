package domain

import "time"

type IngestRequest struct {
	AccountID               string     `json:"accountId,omitempty"`
	MarketplaceIDs          []string   `json:"marketplaceIds"`
	IdentifierFilter        string     `json:"identifierFilter,omitempty"`
	Year                    *int       `json:"year,omitempty"`
	Month                   *int       `json:"month,omitempty"`
	CreatedAfter            *time.Time `json:"createdAfter,omitempty"`
	CreatedBefore           *time.Time `json:"createdBefore,omitempty"`
	SaveToDatabase          *bool      `json:"saveToDatabase,omitempty"`
	FetchInventory          *bool      `json:"fetchInventory,omitempty"`
	FetchOrderList          *bool      `json:"fetchOrderList,omitempty"`
	MaxPages                int        `json:"maxPages,omitempty"`
	MaxOrdersToProcess      int        `json:"maxOrdersToProcess,omitempty"`
	MaxIdentifiersToProcess int        `json:"maxIdentifiersToProcess,omitempty"`
	IdentifierOffset        int        `json:"identifierOffset,omitempty"`
	ContinuationToken       string     `json:"continuationToken,omitempty"`
}

// Etapas do pipeline usadas nos avisos
const (
	StageCredentials = "credentials"
	StageOrders      = "orders"
	StageOrderItems  = "order_items"
	StageMetrics     = "metrics"
	StageFees        = "fees"
	StageRefunds     = "refunds"
	StageInventory   = "inventory"
	StagePersistence = "persistence"
)

type Warning struct {
	Identifier string `json:"identifier,omitempty"`
	Stage      string `json:"stage"`
	Message    string `json:"message"`
}

type IngestResponse struct {
	Success              bool                      `json:"success"`
	RunID                string                    `json:"runId"`
	OrdersCount          int                       `json:"ordersCount"`
	SavedRecordsCount    int                       `json:"savedRecordsCount"`
	SkippedCount         int                       `json:"skippedCount"`
	InventoryUpdated     int                       `json:"inventoryUpdated"`
	SavedRecords         []*MonthlyAggregateRecord `json:"savedRecords"`
	Orders               []OrderRecord             `json:"orders,omitempty"`
	Warnings             []Warning                 `json:"warnings"`
	MoreDataAvailable    bool                      `json:"moreDataAvailable"`
	NextIdentifierOffset int                       `json:"nextIdentifierOffset,omitempty"`
	OrdersNextToken      string                    `json:"ordersNextToken,omitempty"`
	IntervalStart        time.Time                 `json:"intervalStart"`
	IntervalEnd          time.Time                 `json:"intervalEnd"`
	Timestamp            time.Time                 `json:"timestamp"`
}
