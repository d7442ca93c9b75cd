package domain

import "time"

type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "active"
	AccountStatusInactive AccountStatus = "inactive"
)

// MarketplaceAccount é uma conta de vendedor cadastrada, com as credenciais próprias quando houver
type MarketplaceAccount struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Status      AccountStatus      `json:"status"`
	Credentials AccountCredentials `json:"-"`
	CreatedAt   time.Time          `json:"created_at,omitempty"`
	UpdatedAt   time.Time          `json:"updated_at,omitempty"`
}

// CatalogItem liga um identificador de produto (SKU) à conta dona dele
type CatalogItem struct {
	Identifier string `json:"identifier"`
	AccountID  string `json:"account_id"`
	Title      string `json:"title,omitempty"`
	Active     bool   `json:"active"`
}
