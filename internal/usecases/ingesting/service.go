package ingesting

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/marketplace-ingest-api/infrastructure/integrator/marketplace"
	"github.com/vfg2006/marketplace-ingest-api/infrastructure/integrator/marketplace/mpclient"
	"github.com/vfg2006/marketplace-ingest-api/infrastructure/repository"
	"github.com/vfg2006/marketplace-ingest-api/internal/config"
	"github.com/vfg2006/marketplace-ingest-api/internal/domain"
	"github.com/vfg2006/marketplace-ingest-api/internal/usecases/credentials"
	"github.com/vfg2006/marketplace-ingest-api/pkg/apiErrors"
	"github.com/vfg2006/marketplace-ingest-api/pkg/log"
	"github.com/vfg2006/marketplace-ingest-api/pkg/utils"
)

//go:generate mockgen -source=service.go -destination=mocks/ingest_mock.go -package=mocks

type IngestService interface {
	Ingest(ctx context.Context, req *domain.IngestRequest) (*domain.IngestResponse, error)
}

type Service struct {
	cfg                 *config.Config
	resolver            credentials.Resolver
	integrator          marketplace.Integrator
	accountRepository   repository.AccountRepository
	aggregateRepository repository.MonthlyAggregateRepository
	now                 func() time.Time
}

func NewService(
	cfg *config.Config,
	resolver credentials.Resolver,
	integrator marketplace.Integrator,
	accountRepository repository.AccountRepository,
	aggregateRepository repository.MonthlyAggregateRepository,
) *Service {
	return &Service{
		cfg:                 cfg,
		resolver:            resolver,
		integrator:          integrator,
		accountRepository:   accountRepository,
		aggregateRepository: aggregateRepository,
		now:                 time.Now,
	}
}

// run acumula o estado de uma execução enquanto as etapas avançam
type run struct {
	req      *domain.IngestRequest
	session  mpclient.Session
	interval domain.Interval
	year     int
	month    int
	rate     *float64
	response *domain.IngestResponse
	records  map[string]*domain.MonthlyAggregateRecord
}

func (r *run) warn(identifier, stage, message string) {
	r.response.Warnings = append(r.response.Warnings, domain.Warning{
		Identifier: identifier,
		Stage:      stage,
		Message:    message,
	})
}

func (s *Service) Ingest(ctx context.Context, req *domain.IngestRequest) (*domain.IngestResponse, error) {
	logger := log.ForContext(ctx)
	startedAt := s.now()

	if err := s.normalize(req); err != nil {
		return nil, err
	}

	interval, err := BuildInterval(req, s.cfg.Marketplace.Location(), startedAt)
	if err != nil {
		return nil, NewIngestError(err, apiErrors.ErrInvalidInterval, "Intervalo de datas inválido")
	}

	runID, err := utils.GenerateID()
	if err != nil {
		return nil, NewIngestError(err, apiErrors.ErrInternalServer, "Falha ao gerar identificador da execução")
	}
	ctx = log.WithRunID(ctx, runID)
	logger = log.ForContext(ctx)

	year, month := PeriodOf(interval)
	r := &run{
		req:      req,
		interval: interval,
		year:     year,
		month:    month,
		records:  make(map[string]*domain.MonthlyAggregateRecord),
		response: &domain.IngestResponse{
			RunID:         runID,
			SavedRecords:  make([]*domain.MonthlyAggregateRecord, 0),
			Warnings:      make([]domain.Warning, 0),
			IntervalStart: interval.Start,
			IntervalEnd:   interval.End,
		},
	}

	logger.WithFields(log.Fields{
		"account_id": req.AccountID,
		"period":     domain.PeriodKey(year, month),
	}).Info("ingest: execução iniciada")

	creds, err := s.resolveCredentials(ctx, req)
	if err != nil {
		return nil, err
	}
	r.rate = creds.ReferralFeeRate

	r.session, err = s.integrator.Authenticate(ctx, creds)
	if err != nil {
		return nil, NewIngestError(fmt.Errorf("%w: %w", ErrAuthentication, err), apiErrors.ErrUpstreamAuth, "Falha na troca do token de acesso")
	}
	if len(req.MarketplaceIDs) == 0 {
		req.MarketplaceIDs = []string{r.session.MarketplaceID}
	}

	identifiers, err := s.selectIdentifiers(ctx, r)
	if err != nil {
		return nil, err
	}

	if *req.FetchOrderList {
		if err := s.collectOrders(ctx, r); err != nil {
			return nil, err
		}
	}

	processed, err := s.aggregate(ctx, r, identifiers)
	if err != nil {
		return nil, err
	}

	if *req.FetchInventory && len(processed) > 0 {
		s.captureInventory(ctx, r, processed)
	}

	r.response.Success = true
	r.response.Timestamp = s.now()

	logger.WithFields(log.Fields{
		"saved":           r.response.SavedRecordsCount,
		"skipped":         r.response.SkippedCount,
		"inventory":       r.response.InventoryUpdated,
		"warnings":        len(r.response.Warnings),
		"more_data":       r.response.MoreDataAvailable,
		"next_identifier": r.response.NextIdentifierOffset,
		"elapsed":         s.now().Sub(startedAt).String(),
	}).Info("ingest: execução concluída")

	return r.response, nil
}

// resolveCredentials usa a conta dona do identificador quando só identifierFilter foi informado.
// A conta encontrada passa a ser a conta da execução e das linhas gravadas.
func (s *Service) resolveCredentials(ctx context.Context, req *domain.IngestRequest) (*domain.AccountCredentials, error) {
	missing := func(err error) error {
		return NewIngestError(fmt.Errorf("%w: %w", ErrCredentials, err), apiErrors.ErrMissingCredentials, "Nenhum conjunto completo de credenciais encontrado")
	}

	if req.IdentifierFilter == "" || req.AccountID != "" {
		creds, err := s.resolver.Resolve(ctx, req.AccountID)
		if err != nil {
			return nil, missing(err)
		}
		return creds, nil
	}

	creds, err := s.resolver.ForIdentifier(ctx, req.IdentifierFilter)
	switch {
	case err == nil:
		req.AccountID = creds.AccountID
		log.ForContext(ctx).WithFields(log.Fields{
			"identifier": req.IdentifierFilter,
			"account_id": creds.AccountID,
		}).Debug("ingest: conta resolvida pelo catálogo")
		return creds, nil

	case errors.Is(err, credentials.ErrUnknownIdentifier):
		log.ForContext(ctx).WithField("identifier", req.IdentifierFilter).
			Warn("ingest: identificador fora do catálogo, usando credenciais padrão")
		creds, err = s.resolver.Resolve(ctx, "")
		if err != nil {
			return nil, missing(err)
		}
		return creds, nil

	case errors.Is(err, credentials.ErrNoCredentials):
		return nil, missing(err)
	}

	return nil, NewIngestError(fmt.Errorf("%w: %w", ErrCredentials, err), apiErrors.ErrDatabaseOperation, "Falha ao buscar a conta dona do identificador")
}

func (s *Service) normalize(req *domain.IngestRequest) error {
	if req.IdentifierOffset < 0 {
		return NewIngestError(ErrInvalidRequest, apiErrors.ErrInvalidRequest, "identifierOffset não pode ser negativo")
	}
	if req.MaxPages < 0 || req.MaxOrdersToProcess < 0 || req.MaxIdentifiersToProcess < 0 {
		return NewIngestError(ErrInvalidRequest, apiErrors.ErrInvalidRequest, "Limites não podem ser negativos")
	}

	if req.SaveToDatabase == nil {
		req.SaveToDatabase = boolPtr(true)
	}
	if req.FetchInventory == nil {
		req.FetchInventory = boolPtr(true)
	}
	if req.FetchOrderList == nil {
		req.FetchOrderList = boolPtr(false)
	}

	if req.MaxPages == 0 {
		req.MaxPages = s.cfg.Ingestion.MaxPages
	}
	if req.MaxOrdersToProcess == 0 {
		req.MaxOrdersToProcess = s.cfg.Ingestion.MaxOrdersToProcess
	}
	if req.MaxIdentifiersToProcess == 0 {
		req.MaxIdentifiersToProcess = s.cfg.Ingestion.MaxIdentifiersToProcess
	}

	return nil
}

// selectIdentifiers aplica identifierOffset e o orçamento de identificadores.
// Quando o orçamento corta a lista, a resposta indica onde a próxima execução deve continuar.
func (s *Service) selectIdentifiers(ctx context.Context, r *run) ([]string, error) {
	var all []string
	if r.req.IdentifierFilter != "" {
		all = []string{r.req.IdentifierFilter}
	} else {
		var err error
		all, err = s.accountRepository.ListIdentifiers(ctx, r.req.AccountID)
		if err != nil {
			log.ForContext(ctx).WithError(err).Error("ingest: falha ao listar identificadores do catálogo")
			return nil, NewIngestError(ErrFetchIdentifiers, apiErrors.ErrDatabaseOperation, "Falha ao listar identificadores do catálogo")
		}
	}

	if r.req.IdentifierOffset >= len(all) {
		return []string{}, nil
	}
	window := all[r.req.IdentifierOffset:]

	budget := domain.NewBudget(0, r.req.MaxIdentifiersToProcess)
	selected := make([]string, 0, len(window))
	for _, identifier := range window {
		if !budget.TakeItem() {
			break
		}
		selected = append(selected, identifier)
	}

	if len(selected) < len(window) {
		r.response.MoreDataAvailable = true
		r.response.NextIdentifierOffset = r.req.IdentifierOffset + len(selected)
	}

	return selected, nil
}

// collectOrders lista os pedidos do intervalo e busca os itens de cada um em modo best effort
func (s *Service) collectOrders(ctx context.Context, r *run) error {
	list := s.integrator.ListOrders(ctx, r.session, marketplace.OrderQuery{
		MarketplaceIDs:    r.req.MarketplaceIDs,
		Interval:          r.interval,
		MaxPages:          r.req.MaxPages,
		MaxOrders:         r.req.MaxOrdersToProcess,
		ContinuationToken: r.req.ContinuationToken,
	})

	if list.Err != nil {
		if list.Pages == 0 {
			return upstreamFailure(list.Err, ErrOrdersFetch, "listar pedidos")
		}
		r.warn("", domain.StageOrders, fmt.Sprintf("listagem de pedidos incompleta após %d páginas: %s", list.Pages, list.Err.Error()))
	}

	orders := make([]domain.OrderRecord, 0, len(list.Orders))
	for _, order := range list.Orders {
		items, err := s.integrator.ListOrderItems(ctx, r.session, order.OrderID)
		if err != nil {
			r.warn("", domain.StageOrderItems, fmt.Sprintf("itens do pedido %s indisponíveis: %s", order.OrderID, err.Error()))
		}
		order.Items = items
		orders = append(orders, order)

		if ctx.Err() != nil {
			break
		}
	}

	r.response.Orders = orders
	r.response.OrdersCount = len(orders)
	r.response.OrdersNextToken = list.NextToken
	if list.NextToken != "" {
		r.response.MoreDataAvailable = true
	}

	return nil
}

// aggregate processa os identificadores em sequência e retorna os que chegaram até o fim
func (s *Service) aggregate(ctx context.Context, r *run, identifiers []string) ([]string, error) {
	logger := log.ForContext(ctx)
	processed := make([]string, 0, len(identifiers))
	if len(identifiers) == 0 {
		return processed, nil
	}

	refunds := s.integrator.ListRefunds(ctx, r.session, r.interval, s.cfg.Ingestion.FinancialEventsMaxPages)
	if refunds.Err != nil {
		r.warn("", domain.StageRefunds, fmt.Sprintf("eventos financeiros incompletos após %d páginas: %s", refunds.Pages, refunds.Err.Error()))
	} else if refunds.Exhausted {
		r.warn("", domain.StageRefunds, fmt.Sprintf("limite de %d páginas de eventos financeiros atingido, reembolsos podem estar subestimados", refunds.Pages))
	}

	for i, identifier := range identifiers {
		if ctx.Err() != nil {
			r.response.MoreDataAvailable = true
			r.response.NextIdentifierOffset = r.req.IdentifierOffset + i
			r.warn(identifier, domain.StageMetrics, "execução cancelada antes do fim do lote")
			break
		}

		metric, err := s.integrator.FetchSalesMetrics(ctx, r.session, identifier, r.interval, r.req.MarketplaceIDs)
		if err != nil {
			// falha não best effort na primeira consulta de métricas encerra a execução
			if i == 0 && !mpclient.IsBestEffort(err) {
				return nil, upstreamFailure(err, ErrMetricsFetch, "consultar métricas de vendas")
			}
			r.warn(identifier, domain.StageMetrics, err.Error())
			r.response.SkippedCount++
			continue
		}

		record := s.buildRecord(ctx, r, identifier, *metric, SumRefunds(refunds.Events, identifier))
		processed = append(processed, identifier)
		r.records[identifier] = record
		r.response.SavedRecords = append(r.response.SavedRecords, record)

		if !*r.req.SaveToDatabase {
			continue
		}

		if err := s.aggregateRepository.UpsertSales(ctx, record); err != nil {
			logger.WithFields(log.Fields{
				"identifier": identifier,
				"period":     record.Period(),
				"error":      err.Error(),
			}).Error("ingest: falha ao gravar agregado mensal")
			r.warn(identifier, domain.StagePersistence, errors.Wrap(err, "falha ao gravar agregado").Error())
			r.response.SkippedCount++
			continue
		}
		r.response.SavedRecordsCount++
	}

	return processed, nil
}

func (s *Service) buildRecord(ctx context.Context, r *run, identifier string, metric domain.SalesMetric, refund RefundTotal) *domain.MonthlyAggregateRecord {
	currency := metric.Currency
	if currency == "" {
		currency = s.cfg.Marketplace.Currency
	}

	var estimate *domain.FeeEstimate
	if metric.UnitCount > 0 {
		var err error
		estimate, err = s.integrator.EstimateFees(ctx, r.session, identifier, AveragePrice(metric), currency)
		if err != nil {
			message := err.Error()
			if mpclient.IsForbidden(err) {
				message = "sem permissão para estimar taxas, taxa FBA considerada zero"
			}
			r.warn(identifier, domain.StageFees, message)
			estimate = nil
		}
	}

	fees := ComputeFees(metric, r.rate, estimate)
	if fees.RateMissing {
		r.warn(identifier, domain.StageFees, "conta sem taxa de comissão configurada, comissões consideradas zero")
	}

	return &domain.MonthlyAggregateRecord{
		Identifier:         identifier,
		AccountID:          r.req.AccountID,
		Year:               r.year,
		Month:              r.month,
		TotalSales:         utils.RoundMoney(metric.TotalSales),
		UnitCount:          metric.UnitCount,
		OrderCount:         metric.OrderCount,
		OrderItemCount:     metric.OrderItemCount,
		AveragePrice:       utils.RoundMoney(fees.AveragePrice),
		Currency:           currency,
		ReferralFeeRate:    fees.ReferralFeeRate,
		ReferralFeePerUnit: utils.RoundMoney(fees.ReferralFeePerUnit),
		TotalReferralFee:   utils.RoundMoney(fees.TotalReferralFee),
		FBAFeePerUnit:      utils.RoundMoney(fees.FBAFeePerUnit),
		TotalFBAFee:        utils.RoundMoney(fees.TotalFBAFee),
		RefundAmount:       utils.RoundMoney(refund.Amount),
		RefundUnits:        refund.Units,
	}
}

// captureInventory faz a segunda passada, gravando só as colunas de inventário
func (s *Service) captureInventory(ctx context.Context, r *run, identifiers []string) {
	summaries, err := s.integrator.FetchInventory(ctx, r.session, identifiers)
	if err != nil {
		r.warn("", domain.StageInventory, fmt.Sprintf("inventário incompleto (%d de %d): %s", len(summaries), len(identifiers), err.Error()))
	}

	capturedAt := s.now()
	for _, summary := range summaries {
		snapshot := MergeInventory(summary)

		if record, ok := r.records[summary.Identifier]; ok {
			record.Inventory = snapshot
			record.InventoryCapturedAt = &capturedAt
		}

		if !*r.req.SaveToDatabase {
			continue
		}

		key := domain.AggregateKey{
			Identifier: summary.Identifier,
			AccountID:  r.req.AccountID,
			Year:       r.year,
			Month:      r.month,
		}
		if err := s.aggregateRepository.UpsertInventory(ctx, key, snapshot, capturedAt); err != nil {
			log.ForContext(ctx).WithFields(log.Fields{
				"identifier": summary.Identifier,
				"error":      err.Error(),
			}).Error("ingest: falha ao gravar inventário")
			r.warn(summary.Identifier, domain.StageInventory, errors.Wrap(err, "falha ao gravar inventário").Error())
			continue
		}
		r.response.InventoryUpdated++
	}
}

// upstreamFailure converte uma falha do marketplace que encerra a execução no código de API correspondente
func upstreamFailure(err, cause error, action string) *IngestError {
	switch {
	case mpclient.IsAuthFailure(err):
		return NewIngestError(fmt.Errorf("%w: %w: %w", ErrAuthentication, cause, err), apiErrors.ErrUpstreamAuth, "Marketplace recusou a autorização ao "+action)
	case errors.Is(err, mpclient.ErrRetriesExhausted):
		return NewIngestError(fmt.Errorf("%w: %w", cause, err), apiErrors.ErrRateLimited, "Limite de requisições esgotado ao "+action)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return NewIngestError(fmt.Errorf("%w: %w", cause, err), apiErrors.ErrCommunication, "Execução interrompida ao "+action)
	}

	if _, ok := mpclient.AsAPIError(err); ok {
		return NewIngestError(fmt.Errorf("%w: %w", cause, err), apiErrors.ErrExternalService, "Falha no marketplace ao "+action)
	}
	return NewIngestError(fmt.Errorf("%w: %w", cause, err), apiErrors.ErrCommunication, "Falha de comunicação com o marketplace ao "+action)
}

func boolPtr(v bool) *bool {
	return &v
}
