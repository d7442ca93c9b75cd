package domain

import "github.com/golang-jwt/jwt/v5"

// Escopos aceitos nos tokens de serviço
const (
	ScopeIngest     = "ingest"
	ScopeAggregates = "aggregates"
	ScopeCron       = "cron"
)

// ServiceClaims são as claims dos tokens emitidos para o agendador e para os consumidores internos
type ServiceClaims struct {
	Scopes []string `json:"scopes"`
	jwt.RegisteredClaims
}

func (c *ServiceClaims) HasScope(scope string) bool {
	if c == nil {
		return false
	}
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}
