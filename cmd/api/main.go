package main

import (
	"context"
	"os"
	"path"
	"runtime"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketplace-ingest-api/infrastructure/cache"
	"github.com/vfg2006/marketplace-ingest-api/infrastructure/database/postgres"
	"github.com/vfg2006/marketplace-ingest-api/infrastructure/integrator/marketplace"
	"github.com/vfg2006/marketplace-ingest-api/infrastructure/integrator/marketplace/mpclient"
	"github.com/vfg2006/marketplace-ingest-api/infrastructure/migration"
	"github.com/vfg2006/marketplace-ingest-api/infrastructure/repository"
	"github.com/vfg2006/marketplace-ingest-api/internal/api"
	"github.com/vfg2006/marketplace-ingest-api/internal/config"
	"github.com/vfg2006/marketplace-ingest-api/internal/scheduler"
	"github.com/vfg2006/marketplace-ingest-api/internal/usecases/credentials"
	"github.com/vfg2006/marketplace-ingest-api/internal/usecases/ingesting"
	"github.com/vfg2006/marketplace-ingest-api/internal/usecases/reporting"
	"github.com/vfg2006/marketplace-ingest-api/pkg/log"
)

func main() {
	chdirToSource()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	if err := log.Setup(cfg.App.LogLevel); err != nil {
		logrus.WithError(err).Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
	}
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	if cfg.Database.AutoMigrate {
		if err := migration.Apply(ctx, pgConn); err != nil {
			logrus.WithError(err).Fatal("Erro ao aplicar migrações")
		}
	}

	accountRepo := repository.NewAccountRepository(pgConn)
	aggregateRepo := repository.NewMonthlyAggregateRepository(pgConn)

	tokenCache := tokenCache(ctx, cfg.Redis)

	httpClient := resty.New().SetTimeout(cfg.Marketplace.RequestTimeout)

	tokenManager := mpclient.NewTokenManager(httpClient, cfg.Marketplace.TokenURL, tokenCache)
	executor := mpclient.NewExecutor(httpClient, mpclient.NewRetryPolicy(cfg.Retry))
	marketplaceClient := mpclient.NewClient(executor, cfg.Pacing)
	marketplaceIntegrator := marketplace.New(cfg, marketplaceClient, tokenManager, mpclient.NewPacer(nil))

	resolver := credentials.NewChainResolver(accountRepo, cfg)

	ingestService := ingesting.NewService(cfg, resolver, marketplaceIntegrator, accountRepo, aggregateRepo)
	reportingService := reporting.NewService(aggregateRepo)

	ingestSyncService := scheduler.NewIngestSyncService(accountRepo, ingestService, cfg)
	if err := ingestSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de ingestão")
	} else {
		logrus.Info("Agendador de ingestão iniciado com sucesso")
	}

	server, err := api.New(cfg, ingestService, reportingService, ingestSyncService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// chdirToSource posiciona o processo no diretório do código-fonte para o .env ser encontrado
func chdirToSource() {
	_, file, _, _ := runtime.Caller(0)
	_ = os.Chdir(path.Dir(file))
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// tokenCache usa o Redis quando configurado; sem ele, cada execução troca o refresh token
func tokenCache(ctx context.Context, redisConfig config.Redis) mpclient.TokenCache {
	if redisConfig.Addr == "" {
		logrus.Info("REDIS_ADDR vazio, cache de tokens desabilitado")
		return cache.NoopTokenCache{}
	}

	redisCache := cache.NewRedisTokenCache(redisConfig.Addr, redisConfig.Password, redisConfig.DB)
	if err := redisCache.Ping(ctx); err != nil {
		logrus.WithError(err).Warn("Redis indisponível, cache de tokens desabilitado")
		return cache.NoopTokenCache{}
	}

	logrus.WithField("addr", redisConfig.Addr).Info("Cache de tokens no Redis habilitado")
	return redisCache
}
