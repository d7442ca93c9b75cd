package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketplace-ingest-api/infrastructure/repository"
	"github.com/vfg2006/marketplace-ingest-api/internal/config"
	"github.com/vfg2006/marketplace-ingest-api/internal/domain"
	"github.com/vfg2006/marketplace-ingest-api/internal/usecases/ingesting"
)

// IngestSyncConfig representa a configuração do agendador de ingestão
type IngestSyncConfig struct {
	CronSchedule  string
	SyncEnabled   bool
	MonthLookBack int
	MaxRounds     int
}

// SyncSummary resume a última sincronização executada
type SyncSummary struct {
	Periods   []string `json:"periods"`
	Accounts  int      `json:"accounts"`
	Rounds    int      `json:"rounds"`
	Saved     int      `json:"saved"`
	Skipped   int      `json:"skipped"`
	Inventory int      `json:"inventory"`
	Warnings  int      `json:"warnings"`
	Failures  int      `json:"failures"`
	Truncated int      `json:"truncated"`
}

// IngestSyncService reinvoca a ingestão até cada conta e mês ficarem completos
type IngestSyncService struct {
	scheduler           *gocron.Scheduler
	config              IngestSyncConfig
	location            *time.Location
	accountRepo         repository.AccountRepository
	ingestService       ingesting.IngestService
	now                 func() time.Time
	ctx                 context.Context
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSummary         *SyncSummary
}

func NewIngestSyncService(
	accountRepo repository.AccountRepository,
	ingestService ingesting.IngestService,
	appConfig *config.Config,
) *IngestSyncService {
	syncConfig := IngestSyncConfig{
		CronSchedule:  appConfig.IngestSync.CronSchedule,
		SyncEnabled:   appConfig.IngestSync.Enabled,
		MonthLookBack: appConfig.IngestSync.MonthLookBack,
		MaxRounds:     appConfig.IngestSync.MaxRounds,
	}
	if syncConfig.MaxRounds <= 0 {
		syncConfig.MaxRounds = 1
	}
	if syncConfig.MonthLookBack < 0 {
		syncConfig.MonthLookBack = 0
	}

	location := appConfig.Marketplace.Location()

	logrus.WithFields(logrus.Fields{
		"cron_schedule":   syncConfig.CronSchedule,
		"sync_enabled":    syncConfig.SyncEnabled,
		"month_look_back": syncConfig.MonthLookBack,
		"max_rounds":      syncConfig.MaxRounds,
	}).Info("Configuração do agendador de ingestão carregada")

	return &IngestSyncService{
		scheduler:     gocron.NewScheduler(location),
		config:        syncConfig,
		location:      location,
		accountRepo:   accountRepo,
		ingestService: ingestService,
		now:           time.Now,
		ctx:           context.Background(),
	}
}

// Start inicia o agendador
func (s *IngestSyncService) Start(ctx context.Context) error {
	s.ctx = ctx

	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de ingestão desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de ingestão")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAll(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar ingestão: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de ingestão")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *IngestSyncService) acquire() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	return true
}

func (s *IngestSyncService) release(summary *SyncSummary) {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncCompletedAt = s.now()
	s.lastSummary = summary
}

// syncAll percorre os meses configurados e, para cada um, todas as contas ativas
func (s *IngestSyncService) syncAll(ctx context.Context) *SyncSummary {
	if !s.acquire() {
		logrus.Info("Sincronização de ingestão já em andamento, ignorando")
		return nil
	}

	summary := &SyncSummary{Periods: make([]string, 0)}
	defer s.release(summary)

	startTime := s.now()
	logrus.Info("Iniciando sincronização de ingestão")

	accountIDs, err := s.getActiveAccounts(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar contas para sincronização de ingestão")
		summary.Failures++
		return summary
	}
	summary.Accounts = len(accountIDs)

	for _, period := range s.periods() {
		summary.Periods = append(summary.Periods, domain.PeriodKey(period.year, period.month))

		for _, accountID := range accountIDs {
			if ctx.Err() != nil {
				logrus.Info("Sincronização de ingestão cancelada")
				return summary
			}
			s.syncAccount(ctx, accountID, period.year, period.month, summary)
		}
	}

	logrus.WithFields(logrus.Fields{
		"duration":  time.Since(startTime).String(),
		"accounts":  summary.Accounts,
		"periods":   summary.Periods,
		"rounds":    summary.Rounds,
		"saved":     summary.Saved,
		"failures":  summary.Failures,
		"truncated": summary.Truncated,
	}).Info("Sincronização de ingestão concluída")

	return summary
}

// getActiveAccounts retorna os nomes das contas ativas. Sem contas cadastradas, usa a conta padrão ("").
func (s *IngestSyncService) getActiveAccounts(ctx context.Context) ([]string, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, []domain.AccountStatus{domain.AccountStatusActive})
	if err != nil {
		return nil, err
	}

	if len(accounts) == 0 {
		logrus.Info("Nenhuma conta cadastrada, usando credenciais padrão")
		return []string{""}, nil
	}

	names := make([]string, 0, len(accounts))
	for _, acc := range accounts {
		names = append(names, acc.Name)
	}
	return names, nil
}

type period struct {
	year  int
	month int
}

// periods retorna os meses anteriores configurados e o mês corrente, do mais antigo para o mais recente.
// O mês corrente só entra depois que o intervalo mínimo exigido pela API já passou.
func (s *IngestSyncService) periods() []period {
	now := s.now().Add(-domain.MinIntervalLag).In(s.location)
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.location)

	result := make([]period, 0, s.config.MonthLookBack+1)
	for i := s.config.MonthLookBack; i >= 0; i-- {
		month := current.AddDate(0, -i, 0)
		result = append(result, period{year: month.Year(), month: int(month.Month())})
	}
	return result
}

// syncAccount chama a ingestão repetidamente, alimentando nextIdentifierOffset, até não haver mais dados
func (s *IngestSyncService) syncAccount(ctx context.Context, accountID string, year, month int, summary *SyncSummary) {
	logger := logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"period":     domain.PeriodKey(year, month),
	})

	offset := 0
	for round := 1; round <= s.config.MaxRounds; round++ {
		y, m := year, month
		resp, err := s.ingestService.Ingest(ctx, &domain.IngestRequest{
			AccountID:        accountID,
			Year:             &y,
			Month:            &m,
			IdentifierOffset: offset,
		})
		summary.Rounds++

		if err != nil {
			logger.WithError(err).WithField("round", round).Error("Erro na ingestão agendada")
			summary.Failures++
			return
		}

		summary.Saved += resp.SavedRecordsCount
		summary.Skipped += resp.SkippedCount
		summary.Inventory += resp.InventoryUpdated
		summary.Warnings += len(resp.Warnings)

		if !resp.MoreDataAvailable {
			logger.WithField("rounds", round).Info("Ingestão agendada concluída para a conta")
			return
		}

		if resp.NextIdentifierOffset <= offset {
			logger.WithField("offset", offset).Warn("Ingestão agendada não avançou, interrompendo a conta")
			summary.Truncated++
			return
		}
		offset = resp.NextIdentifierOffset
	}

	logger.WithFields(logrus.Fields{
		"max_rounds": s.config.MaxRounds,
		"offset":     offset,
	}).Warn("Limite de rodadas atingido, restante fica para a próxima execução")
	summary.Truncated++
}

// TriggerManualSync inicia manualmente uma sincronização; retorna false se já houver uma em andamento
func (s *IngestSyncService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	if running {
		logrus.Info("Sincronização de ingestão já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando sincronização manual de ingestão")
	go s.syncAll(s.ctx)
	return true
}

// GetStatus retorna o status atual da sincronização
func (s *IngestSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"month_look_back":        s.config.MonthLookBack,
		"max_rounds":             s.config.MaxRounds,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_summary":           s.lastSummary,
	}
}
