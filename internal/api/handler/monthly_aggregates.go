package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/vfg2006/marketplace-ingest-api/internal/usecases/reporting"
	"github.com/vfg2006/marketplace-ingest-api/pkg/apiErrors"
	"github.com/vfg2006/marketplace-ingest-api/pkg/log"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// parsePeriod lê year e month da query string
func parsePeriod(r *http.Request) (int, int, error) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 2000 || year > 9999 {
		return 0, 0, errors.New("Ano inválido. Use formato de quatro dígitos (ex: 2025)")
	}

	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, errors.New("Mês inválido. Use um valor entre 1 e 12")
	}

	return year, month, nil
}

// ListMonthlyAggregates retorna os agregados gravados de um período
func ListMonthlyAggregates(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		year, month, err := parsePeriod(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}
		accountID := r.URL.Query().Get("accountId")

		records, err := service.ListMonthly(r.Context(), year, month, accountID)
		if err != nil {
			logger.WithError(err).Error("monthly-aggregates: erro ao buscar agregados")
			if errors.Is(err, reporting.ErrInvalidPeriod) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
				return
			}
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar agregados mensais", nil)
			return
		}

		logger.WithFields(log.Fields{
			"year":    year,
			"month":   month,
			"records": len(records),
		}).Info("monthly-aggregates: agregados recuperados com sucesso")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(records); err != nil {
			logger.WithError(err).Error("monthly-aggregates: erro ao codificar resposta")
		}
	})
}

// GetAvailablePeriods retorna os períodos (meses e anos) já agregados
func GetAvailablePeriods(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		periods, err := service.AvailablePeriods(r.Context())
		if err != nil {
			logger.WithError(err).Error("monthly-aggregates: erro ao buscar períodos disponíveis")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar períodos disponíveis", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(periods); err != nil {
			logger.WithError(err).Error("monthly-aggregates: erro ao codificar resposta")
		}
	})
}

// ExportMonthlyAggregates devolve a planilha XLSX do período
func ExportMonthlyAggregates(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		year, month, err := parsePeriod(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		content, err := service.ExportMonthly(r.Context(), year, month, r.URL.Query().Get("accountId"))
		if err != nil {
			logger.WithError(err).Error("monthly-aggregates: erro ao exportar planilha")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar planilha", nil)
			return
		}

		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="agregados-%04d-%02d.xlsx"`, year, month))
		w.Header().Set("Content-Length", strconv.Itoa(len(content)))
		if _, err := w.Write(content); err != nil {
			logger.WithError(err).Warn("monthly-aggregates: erro ao enviar planilha")
		}
	})
}
