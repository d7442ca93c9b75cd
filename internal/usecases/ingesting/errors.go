package ingesting

import (
	"errors"
	"fmt"
)

var (
	// Erros de validação
	ErrInvalidRequest  = errors.New("invalid ingest request")
	ErrInvalidInterval = errors.New("invalid ingest interval")

	// Erros de autenticação e credenciais
	ErrCredentials    = errors.New("marketplace credentials unavailable")
	ErrAuthentication = errors.New("marketplace authentication failed")

	// Erros de serviços externos
	ErrOrdersFetch  = errors.New("error fetching orders from marketplace")
	ErrMetricsFetch = errors.New("error fetching sales metrics from marketplace")

	// Erros de banco de dados
	ErrFetchIdentifiers = errors.New("error fetching identifiers from catalog")
)

// IngestError carrega o código de API junto ao erro que interrompeu a execução
type IngestError struct {
	Err     error
	Code    string
	Details string
}

func (e *IngestError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *IngestError) Unwrap() error {
	return e.Err
}

func NewIngestError(err error, code string, details string) *IngestError {
	return &IngestError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
