package apiErrors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, ErrMissingCredentials, "nenhuma credencial encontrada", map[string]string{"accountId": "loja-x"})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrMissingCredentials, body.Code)
	assert.Equal(t, "nenhuma credencial encontrada", body.Error)
}

func TestWriteError_UnknownCodeIsInternal(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, "XYZ_999", "", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "XYZ_999", body.Error)
}

func TestFromError(t *testing.T) {
	apiErr := FromError(errors.New("falhou"), ErrExternalService)
	assert.Equal(t, ErrExternalService, apiErr.Code)
	assert.Equal(t, "falhou", apiErr.Error)

	assert.Equal(t, ErrInternalServer, FromError(nil, ErrExternalService).Code)
}
