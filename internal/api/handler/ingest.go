package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/vfg2006/marketplace-ingest-api/internal/domain"
	"github.com/vfg2006/marketplace-ingest-api/internal/usecases/ingesting"
	"github.com/vfg2006/marketplace-ingest-api/pkg/apiErrors"
	"github.com/vfg2006/marketplace-ingest-api/pkg/log"
)

// Ingest executa uma rodada de ingestão; o corpo vazio usa todos os padrões
func Ingest(service ingesting.IngestService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req domain.IngestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		logger.WithFields(log.Fields{
			"account_id":        req.AccountID,
			"identifier_filter": req.IdentifierFilter,
			"identifier_offset": req.IdentifierOffset,
		}).Info("ingest: requisição recebida")

		resp, err := service.Ingest(r.Context(), &req)
		if err != nil {
			logger.WithError(err).Error("ingest: execução falhou")

			var ingestErr *ingesting.IngestError
			if errors.As(err, &ingestErr) {
				apiErrors.WriteError(w, ingestErr.Code, ingestErr.Error(), map[string]any{
					"error_type": ingestErr.Err.Error(),
				})
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.WithError(err).Error("ingest: erro ao codificar resposta")
		}
	})
}
