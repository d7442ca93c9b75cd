package mpclient

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/vfg2006/marketplace-ingest-api/infrastructure/integrator/marketplace/mpdomain"
)

var (
	// ErrRetriesExhausted indica que o limite de novas tentativas para respostas 429 foi atingido
	ErrRetriesExhausted = errors.New("mpclient: limite de tentativas excedido após respostas 429")
	// ErrAuthentication indica falha na troca do refresh token. Nunca é repetida.
	ErrAuthentication = errors.New("mpclient: falha de autenticação no marketplace")
)

// APIError representa uma resposta não-2xx da API do marketplace
type APIError struct {
	StatusCode int
	Endpoint   string
	Body       string
	Message    string
	BestEffort bool
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Body
	}
	if len(msg) > 300 {
		msg = msg[:300]
	}
	return fmt.Sprintf("mpclient: %s respondeu com status %d: %s", e.Endpoint, e.StatusCode, msg)
}

func newAPIError(endpoint string, status int, body []byte, bestEffort bool) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Endpoint:   endpoint,
		Body:       string(body),
		BestEffort: bestEffort,
	}

	var errResp mpdomain.ErrorResponse
	if len(body) > 0 && json.Unmarshal(body, &errResp) == nil {
		apiErr.Message = errResp.FirstMessage()
	}

	return apiErr
}

// AsAPIError extrai o *APIError da cadeia de erros
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func hasStatus(err error, status int) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.StatusCode == status
}

func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

func IsThrottled(err error) bool {
	return errors.Is(err, ErrRetriesExhausted) || hasStatus(err, http.StatusTooManyRequests)
}

// IsAuthFailure cobre 401/403 da API e falhas na troca de token
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrAuthentication) || IsUnauthorized(err) || IsForbidden(err)
}

// IsBestEffort informa se o erro veio de uma chamada marcada como opcional
func IsBestEffort(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.BestEffort
}
