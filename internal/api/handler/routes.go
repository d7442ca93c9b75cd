package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/marketplace-ingest-api/internal/api/handler/router"
	"github.com/vfg2006/marketplace-ingest-api/internal/usecases/ingesting"
	"github.com/vfg2006/marketplace-ingest-api/internal/usecases/reporting"
	"github.com/vfg2006/marketplace-ingest-api/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Ingestion(service ingesting.IngestService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/ingest",
			Method:      http.MethodPost,
			Handler:     Ingest(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.IngestScope()},
		},
	}
}

func MonthlyAggregates(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/monthly-aggregates",
			Method:      http.MethodGet,
			Handler:     ListMonthlyAggregates(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AggregatesScope()},
		},
		{
			Path:        "/v1/monthly-aggregates/periods",
			Method:      http.MethodGet,
			Handler:     GetAvailablePeriods(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AggregatesScope()},
		},
		{
			Path:        "/v1/monthly-aggregates/export",
			Method:      http.MethodGet,
			Handler:     ExportMonthlyAggregates(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AggregatesScope()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/ingest/run",
			Method:      http.MethodPost,
			Handler:     RunIngestSync(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.CronScope()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.CronScope()},
		},
	}
}
