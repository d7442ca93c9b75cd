package mpdomain

type InventorySummariesResponse struct {
	Payload    InventorySummariesPayload `json:"payload"`
	Pagination *Pagination               `json:"pagination,omitempty"`
}

type Pagination struct {
	NextToken string `json:"nextToken"`
}

type InventorySummariesPayload struct {
	Granularity        Granularity        `json:"granularity"`
	InventorySummaries []InventorySummary `json:"inventorySummaries"`
}

type Granularity struct {
	GranularityType string `json:"granularityType"`
	GranularityID   string `json:"granularityId"`
}

type InventorySummary struct {
	ASIN             string            `json:"asin"`
	FnSku            string            `json:"fnSku"`
	SellerSku        string            `json:"sellerSku"`
	Condition        string            `json:"condition"`
	ProductName      string            `json:"productName"`
	TotalQuantity    int               `json:"totalQuantity"`
	InventoryDetails *InventoryDetails `json:"inventoryDetails,omitempty"`
}

type InventoryDetails struct {
	FulfillableQuantity      int                   `json:"fulfillableQuantity"`
	InboundWorkingQuantity   int                   `json:"inboundWorkingQuantity"`
	InboundShippedQuantity   int                   `json:"inboundShippedQuantity"`
	InboundReceivingQuantity int                   `json:"inboundReceivingQuantity"`
	ReservedQuantity         ReservedQuantity      `json:"reservedQuantity"`
	ResearchingQuantity      ResearchingQuantity   `json:"researchingQuantity"`
	UnfulfillableQuantity    UnfulfillableQuantity `json:"unfulfillableQuantity"`
}

type ReservedQuantity struct {
	TotalReservedQuantity        int `json:"totalReservedQuantity"`
	PendingCustomerOrderQuantity int `json:"pendingCustomerOrderQuantity"`
	PendingTransshipmentQuantity int `json:"pendingTransshipmentQuantity"`
	FcProcessingQuantity         int `json:"fcProcessingQuantity"`
}

type ResearchingQuantity struct {
	TotalResearchingQuantity     int                        `json:"totalResearchingQuantity"`
	ResearchingQuantityBreakdown []ResearchingQuantityEntry `json:"researchingQuantityBreakdown"`
}

type ResearchingQuantityEntry struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Nomes das faixas de pesquisa retornadas em researchingQuantityBreakdown
const (
	ResearchingShortTerm = "researchingQuantityInShortTerm"
	ResearchingMidTerm   = "researchingQuantityInMidTerm"
	ResearchingLongTerm  = "researchingQuantityInLongTerm"
)

type UnfulfillableQuantity struct {
	TotalUnfulfillableQuantity int `json:"totalUnfulfillableQuantity"`
	CustomerDamagedQuantity    int `json:"customerDamagedQuantity"`
	WarehouseDamagedQuantity   int `json:"warehouseDamagedQuantity"`
	DistributorDamagedQuantity int `json:"distributorDamagedQuantity"`
	CarrierDamagedQuantity     int `json:"carrierDamagedQuantity"`
	DefectiveQuantity          int `json:"defectiveQuantity"`
	ExpiredQuantity            int `json:"expiredQuantity"`
}
