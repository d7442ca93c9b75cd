package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App                 App                           `mapstructure:",squash"`
	Server              Server                        `mapstructure:",squash"`
	Database            Database                      `mapstructure:",squash"`
	Redis               Redis                         `mapstructure:",squash"`
	Marketplace         Marketplace                   `mapstructure:",squash"`
	Retry               Retry                         `mapstructure:",squash"`
	Pacing              Pacing                        `mapstructure:",squash"`
	Ingestion           Ingestion                     `mapstructure:",squash"`
	IngestSync          IngestSync                    `mapstructure:",squash"`
	Auth                Auth                          `mapstructure:",squash"`
	MarketplaceAccounts map[string]MarketplaceAccount `mapstructure:"-"`
}

type Server struct {
	Host           string        `mapstructure:"host"`
	Port           string        `mapstructure:"port"`
	AllowedOrigins []string      `mapstructure:"cors_allowed_origins"`
	SlowRequest    time.Duration `mapstructure:"slow_request_threshold"`
}

type Database struct {
	DSN         string `mapstructure:"-"`
	Driver      string `mapstructure:"database_driver"`
	Password    string `mapstructure:"database_password"`
	URL         string `mapstructure:"database_url"`
	User        string `mapstructure:"database_user"`
	AutoMigrate bool   `mapstructure:"database_auto_migrate"`

	MaxOpenConns    int           `mapstructure:"database_max_open_conns"`
	ConnMaxIdleTime time.Duration `mapstructure:"database_conn_max_idle_time"`
}

type Redis struct {
	Addr     string `mapstructure:"redis_addr"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

// Marketplace contém os endpoints e as credenciais padrão usadas quando a conta não possui credenciais próprias
type Marketplace struct {
	BaseURL              string        `mapstructure:"marketplace_base_url"`
	TokenURL             string        `mapstructure:"marketplace_token_url"`
	DefaultMarketplaceID string        `mapstructure:"marketplace_default_id"`
	TimeZone             string        `mapstructure:"marketplace_timezone"`
	Currency             string        `mapstructure:"marketplace_currency"`
	ClientID             string        `mapstructure:"marketplace_client_id"`
	ClientSecret         string        `mapstructure:"marketplace_client_secret"`
	RefreshToken         string        `mapstructure:"marketplace_refresh_token"`
	ReferralFeeRate      float64       `mapstructure:"marketplace_referral_fee_rate"`
	RequestTimeout       time.Duration `mapstructure:"marketplace_request_timeout"`
	AccountsJSON         string        `mapstructure:"marketplace_accounts"`
}

// MarketplaceAccount é uma entrada de credenciais por conta vinda de MARKETPLACE_ACCOUNTS
type MarketplaceAccount struct {
	ClientID        string   `json:"client_id"`
	ClientSecret    string   `json:"client_secret"`
	RefreshToken    string   `json:"refresh_token"`
	APIBaseURL      string   `json:"api_base_url"`
	MarketplaceID   string   `json:"marketplace_id"`
	ReferralFeeRate *float64 `json:"referral_fee_rate"`
}

type Retry struct {
	MaxAttempts int           `mapstructure:"retry_max_attempts"`
	BaseDelay   time.Duration `mapstructure:"retry_base_delay"`
	MaxDelay    time.Duration `mapstructure:"retry_max_delay"`
	Jitter      bool          `mapstructure:"retry_jitter"`
}

// Pacing define os intervalos proativos entre chamadas consecutivas ao mesmo endpoint
type Pacing struct {
	OrdersDelay          time.Duration `mapstructure:"pacing_orders_delay"`
	OrderItemsDelay      time.Duration `mapstructure:"pacing_order_items_delay"`
	MetricsDelay         time.Duration `mapstructure:"pacing_metrics_delay"`
	FeesDelay            time.Duration `mapstructure:"pacing_fees_delay"`
	InventoryDelay       time.Duration `mapstructure:"pacing_inventory_delay"`
	FinancialEventsDelay time.Duration `mapstructure:"pacing_financial_events_delay"`
}

type Ingestion struct {
	MaxPages                int `mapstructure:"ingestion_max_pages"`
	FinancialEventsMaxPages int `mapstructure:"ingestion_financial_events_max_pages"`
	MaxIdentifiersToProcess int `mapstructure:"ingestion_max_identifiers"`
	MaxOrdersToProcess      int `mapstructure:"ingestion_max_orders"`
}

type IngestSync struct {
	CronSchedule  string `mapstructure:"ingest_sync_cron"`
	Enabled       bool   `mapstructure:"ingest_sync_enabled"`
	MonthLookBack int    `mapstructure:"ingest_sync_month_lookback"`
	MaxRounds     int    `mapstructure:"ingest_sync_max_rounds"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	ServiceSecret string `mapstructure:"auth_service_secret"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("SLOW_REQUEST_THRESHOLD", "2m")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/marketplace?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_AUTO_MIGRATE", true)
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DATABASE_CONN_MAX_IDLE_TIME", "5m")

	viper.SetDefault("REDIS_ADDR", "") // vazio desabilita o cache de tokens
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("MARKETPLACE_BASE_URL", "https://sellingpartnerapi-na.amazon.com")
	viper.SetDefault("MARKETPLACE_TOKEN_URL", "https://api.amazon.com/auth/o2/token")
	viper.SetDefault("MARKETPLACE_DEFAULT_ID", "ATVPDKIKX0DER")
	viper.SetDefault("MARKETPLACE_TIMEZONE", "America/Los_Angeles")
	viper.SetDefault("MARKETPLACE_CURRENCY", "USD")
	viper.SetDefault("MARKETPLACE_CLIENT_ID", "")
	viper.SetDefault("MARKETPLACE_CLIENT_SECRET", "")
	viper.SetDefault("MARKETPLACE_REFRESH_TOKEN", "")
	viper.SetDefault("MARKETPLACE_REFERRAL_FEE_RATE", 0.15)
	viper.SetDefault("MARKETPLACE_REQUEST_TIMEOUT", "30s")
	viper.SetDefault("MARKETPLACE_ACCOUNTS", "")

	// Backoff reativo para respostas 429
	viper.SetDefault("RETRY_MAX_ATTEMPTS", 5)
	viper.SetDefault("RETRY_BASE_DELAY", "2s")
	viper.SetDefault("RETRY_MAX_DELAY", "60s")
	viper.SetDefault("RETRY_JITTER", false)

	// Espaçamento proativo entre chamadas do mesmo endpoint
	viper.SetDefault("PACING_ORDERS_DELAY", "1s")
	viper.SetDefault("PACING_ORDER_ITEMS_DELAY", "2s")
	viper.SetDefault("PACING_METRICS_DELAY", "2500ms")
	viper.SetDefault("PACING_FEES_DELAY", "1s")
	viper.SetDefault("PACING_INVENTORY_DELAY", "1s")
	viper.SetDefault("PACING_FINANCIAL_EVENTS_DELAY", "2s")

	viper.SetDefault("INGESTION_MAX_PAGES", 1) // apenas a primeira página de pedidos para evitar timeout
	viper.SetDefault("INGESTION_FINANCIAL_EVENTS_MAX_PAGES", 5)
	viper.SetDefault("INGESTION_MAX_IDENTIFIERS", 50)
	viper.SetDefault("INGESTION_MAX_ORDERS", 100)

	viper.SetDefault("INGEST_SYNC_CRON", "0 4 * * *") // Todos os dias às 4h da manhã
	viper.SetDefault("INGEST_SYNC_ENABLED", false)    // Habilitar sincronização agendada
	viper.SetDefault("INGEST_SYNC_MONTH_LOOKBACK", 1) // Mês anterior além do mês corrente
	viper.SetDefault("INGEST_SYNC_MAX_ROUNDS", 20)    // Limite de reinvocações por mês

	viper.SetDefault("AUTH_SERVICE_SECRET", "your_service_secret")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.MarketplaceAccounts, err = ParseMarketplaceAccounts(config.Marketplace.AccountsJSON)
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// ParseMarketplaceAccounts lê o JSON {"conta": {...credenciais}} de MARKETPLACE_ACCOUNTS
func ParseMarketplaceAccounts(raw string) (map[string]MarketplaceAccount, error) {
	accounts := make(map[string]MarketplaceAccount)
	if raw == "" {
		return accounts, nil
	}

	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal([]byte(raw), &accounts); err != nil {
		return nil, fmt.Errorf("config: MARKETPLACE_ACCOUNTS inválido: %w", err)
	}

	return accounts, nil
}

// Location retorna o fuso horário regional usado para montar intervalos mensais
func (m Marketplace) Location() *time.Location {
	loc, err := time.LoadLocation(m.TimeZone)
	if err != nil {
		logrus.WithError(err).WithField("timezone", m.TimeZone).Warn("Fuso horário inválido, usando UTC")
		return time.UTC
	}
	return loc
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
