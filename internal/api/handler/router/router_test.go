package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/marketplace-ingest-api/pkg/apiErrors"
)

func TestRouter(t *testing.T) {
	var order []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	rt := New(WithRoutes(Route{
		Path:        "/v1/recurso",
		Method:      http.MethodGet,
		Handler:     http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) }),
		Middlewares: []func(http.Handler) http.Handler{mw("primeiro"), mw("segundo")},
	}))

	t.Run("Middlewares rodam na ordem declarada", func(t *testing.T) {
		order = nil
		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/recurso", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, []string{"primeiro", "segundo"}, order)
	})

	t.Run("Rota inexistente responde JSON 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/nada", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)

		var body apiErrors.APIError
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, apiErrors.ErrRouteNotFound, body.Code)
	})

	t.Run("Método não suportado responde JSON 405", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/recurso", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Contains(t, rec.Header().Get("Allow"), http.MethodGet)

		var body apiErrors.APIError
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, apiErrors.ErrMethodNotAllowed, body.Code)
	})
}
