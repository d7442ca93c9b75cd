package middleware

import (
	"net/http"

	"github.com/vfg2006/marketplace-ingest-api/internal/domain"
	"github.com/vfg2006/marketplace-ingest-api/pkg/apiErrors"
	"github.com/vfg2006/marketplace-ingest-api/pkg/log"
)

// ScopeMiddleware restringe a rota aos tokens que carregam ao menos um dos escopos informados
func ScopeMiddleware(allowedScopes []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				log.ForContext(r.Context()).Warn("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Serviço não autenticado", nil)
				return
			}

			for _, scope := range allowedScopes {
				if claims.HasScope(scope) {
					next.ServeHTTP(w, r)
					return
				}
			}

			log.ForContext(r.Context()).Warnf("Acesso negado para serviço=%s, escopos=%v", claims.Subject, claims.Scopes)
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Token sem permissão para acessar este recurso", nil)
		})
	}
}

func IngestScope() func(http.Handler) http.Handler {
	return ScopeMiddleware([]string{domain.ScopeIngest})
}

func AggregatesScope() func(http.Handler) http.Handler {
	return ScopeMiddleware([]string{domain.ScopeAggregates, domain.ScopeIngest})
}

func CronScope() func(http.Handler) http.Handler {
	return ScopeMiddleware([]string{domain.ScopeCron})
}
