package domain

type ResearchingQuantity struct {
	Total int `json:"total"`
	Short int `json:"short"`
	Mid   int `json:"mid"`
	Long  int `json:"long"`
}

type UnfulfillableQuantity struct {
	Total              int `json:"total"`
	CustomerDamaged    int `json:"customer_damaged"`
	WarehouseDamaged   int `json:"warehouse_damaged"`
	DistributorDamaged int `json:"distributor_damaged"`
	CarrierDamaged     int `json:"carrier_damaged"`
	Defective          int `json:"defective"`
	Expired            int `json:"expired"`
}

type InventorySnapshot struct {
	Identifier         string                `json:"identifier"`
	Fulfillable        int                   `json:"fulfillable"`
	InboundWorking     int                   `json:"inbound_working"`
	InboundShipped     int                   `json:"inbound_shipped"`
	InboundReceiving   int                   `json:"inbound_receiving"`
	ReservedOrders     int                   `json:"reserved_orders"`
	ReservedTransfer   int                   `json:"reserved_transfer"`
	ReservedProcessing int                   `json:"reserved_processing"`
	Researching        ResearchingQuantity   `json:"researching"`
	Unfulfillable      UnfulfillableQuantity `json:"unfulfillable"`
}

// InventorySummary é o retorno bruto do endpoint de inventário já convertido.
// Details é nil quando a consulta foi feita sem o detalhamento.
type InventorySummary struct {
	Identifier    string             `json:"identifier"`
	TotalQuantity int                `json:"total_quantity"`
	Details       *InventorySnapshot `json:"details,omitempty"`
}
