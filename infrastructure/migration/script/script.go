package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketplace-ingest-api/infrastructure/database/postgres"
	"github.com/vfg2006/marketplace-ingest-api/infrastructure/migration"
	"github.com/vfg2006/marketplace-ingest-api/infrastructure/repository"
	"github.com/vfg2006/marketplace-ingest-api/internal/config"
	"github.com/vfg2006/marketplace-ingest-api/internal/domain"
	"github.com/vfg2006/marketplace-ingest-api/pkg/middleware"
	"github.com/vfg2006/marketplace-ingest-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const usage = `uso: script <comando> [opções]

comandos:
  migrate                  aplica os scripts de infrastructure/migration/sql
  seed -file contas.json   cadastra contas e catálogo a partir de um arquivo JSON
  token -subject nome -scopes ingest,cron [-ttl 720h]
                           emite um token de serviço assinado com AUTH_SERVICE_SECRET`

// SeedAccount é uma conta do arquivo de carga, com os identificadores do catálogo dela
type SeedAccount struct {
	Name        string                    `json:"name"`
	Status      domain.AccountStatus      `json:"status"`
	Credentials domain.AccountCredentials `json:"credentials"`
	Catalog     []SeedCatalogItem         `json:"catalog"`
}

type SeedCatalogItem struct {
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
	Inactive   bool   `json:"inactive"`
}

type SeedFile struct {
	Accounts []SeedAccount `json:"accounts"`
}

func setupLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

func main() {
	setupLogger()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("ERRO ao carregar configuração")
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "migrate":
		runMigrate(ctx, cfg)
	case "seed":
		runSeed(ctx, cfg, os.Args[2:])
	case "token":
		runToken(cfg, os.Args[2:])
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
}

func connect(ctx context.Context, cfg *config.Config) *postgres.Connection {
	logrus.Info("Conectando ao banco de dados...")

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("ERRO ao conectar ao banco de dados")
	}

	logrus.Info("Conexão com o banco de dados estabelecida com sucesso")
	return conn
}

func runMigrate(ctx context.Context, cfg *config.Config) {
	conn := connect(ctx, cfg)
	defer conn.Close()

	startTime := time.Now()
	if err := migration.Apply(ctx, conn); err != nil {
		logrus.WithError(err).Fatal("ERRO ao aplicar migrações")
	}

	logrus.Infof("Migrações aplicadas em %v", time.Since(startTime))
}

func runSeed(ctx context.Context, cfg *config.Config, args []string) {
	flags := flag.NewFlagSet("seed", flag.ExitOnError)
	file := flags.String("file", "", "arquivo JSON com contas e catálogo")
	_ = flags.Parse(args)

	if *file == "" {
		logrus.Fatal("ERRO: -file é obrigatório")
	}

	content, err := os.ReadFile(*file)
	if err != nil {
		logrus.WithError(err).Fatal("ERRO ao ler arquivo de carga")
	}

	var seed SeedFile
	if err := json.Unmarshal(content, &seed); err != nil {
		logrus.WithError(err).Fatal("ERRO ao interpretar arquivo de carga")
	}
	logrus.Infof("Total de %d contas definidas para inserção", len(seed.Accounts))

	conn := connect(ctx, cfg)
	defer conn.Close()

	if err := migration.Apply(ctx, conn); err != nil {
		logrus.WithError(err).Fatal("ERRO ao aplicar migrações")
	}

	accountRepo := repository.NewAccountRepository(conn)

	startTime := time.Now()
	successCount, itemCount, errorCount := 0, 0, 0

	for i, sa := range seed.Accounts {
		account, err := seedAccount(ctx, accountRepo, sa)
		if err != nil {
			logrus.WithError(err).Errorf("ERRO ao inserir conta [%d/%d] %s", i+1, len(seed.Accounts), sa.Name)
			errorCount++
			continue
		}
		successCount++

		items := make([]*domain.CatalogItem, 0, len(sa.Catalog))
		for _, item := range sa.Catalog {
			items = append(items, &domain.CatalogItem{
				Identifier: strings.TrimSpace(item.Identifier),
				AccountID:  account.ID,
				Title:      item.Title,
				Active:     !item.Inactive,
			})
		}

		if err := accountRepo.SaveCatalogItems(ctx, items); err != nil {
			logrus.WithError(err).Errorf("ERRO ao inserir catálogo da conta %s", sa.Name)
			errorCount++
			continue
		}
		itemCount += len(items)
	}

	logrus.Infof("Carga concluída em %v. Contas: %d, Itens de catálogo: %d, Erros: %d",
		time.Since(startTime), successCount, itemCount, errorCount)

	if errorCount > 0 {
		os.Exit(1)
	}
}

// seedAccount grava a conta preservando o id já existente, já que o catálogo referencia o id
func seedAccount(ctx context.Context, accountRepo repository.AccountRepository, sa SeedAccount) (*domain.MarketplaceAccount, error) {
	if sa.Name == "" {
		return nil, fmt.Errorf("conta sem nome")
	}

	account := &domain.MarketplaceAccount{
		Name:        sa.Name,
		Status:      sa.Status,
		Credentials: sa.Credentials,
	}

	existing, err := accountRepo.GetByName(ctx, sa.Name)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		account.ID = existing.ID
	} else {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, fmt.Errorf("erro ao gerar id: %w", err)
		}
		account.ID = id
	}

	if err := accountRepo.SaveOrUpdate(ctx, []*domain.MarketplaceAccount{account}); err != nil {
		return nil, err
	}

	return account, nil
}

func runToken(cfg *config.Config, args []string) {
	flags := flag.NewFlagSet("token", flag.ExitOnError)
	subject := flags.String("subject", "scheduler", "nome do serviço consumidor")
	scopes := flags.String("scopes", domain.ScopeIngest, "escopos separados por vírgula")
	ttl := flags.Duration("ttl", 30*24*time.Hour, "validade do token")
	_ = flags.Parse(args)

	if cfg.Auth.ServiceSecret == "" {
		logrus.Fatal("ERRO: AUTH_SERVICE_SECRET não configurado")
	}

	scopeList := make([]string, 0)
	for _, scope := range strings.Split(*scopes, ",") {
		if scope = strings.TrimSpace(scope); scope != "" {
			scopeList = append(scopeList, scope)
		}
	}

	token, err := middleware.IssueServiceToken(cfg.Auth.ServiceSecret, *subject, scopeList, *ttl)
	if err != nil {
		logrus.WithError(err).Fatal("ERRO ao assinar token")
	}

	fmt.Println(token)
}
