package mpclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const accessTokenHeader = "x-amz-access-token"

// Sleeper aguarda d ou até o contexto ser cancelado
type Sleeper func(ctx context.Context, d time.Duration) error

func ContextSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Pace aplica o espaçamento proativo entre chamadas consecutivas do mesmo endpoint
func Pace(ctx context.Context, d time.Duration) error {
	return ContextSleep(ctx, d)
}

type Request struct {
	Method      string
	BaseURL     string
	Path        string
	Query       url.Values
	Body        any
	AccessToken string
	// BestEffort marca chamadas cuja falha não deve interromper a execução
	BestEffort bool
	Endpoint   string
}

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Retries    int
}

// Executor envia requisições autenticadas e repete respostas 429 segundo a RetryPolicy
type Executor struct {
	http   *resty.Client
	policy RetryPolicy
	sleep  Sleeper
	now    func() time.Time
}

func NewExecutor(httpClient *resty.Client, policy RetryPolicy) *Executor {
	if httpClient == nil {
		httpClient = resty.New()
	}

	return &Executor{
		http:   httpClient,
		policy: policy,
		sleep:  ContextSleep,
		now:    time.Now,
	}
}

// WithSleeper substitui a espera padrão; usado em testes para observar os atrasos
func (e *Executor) WithSleeper(sleeper Sleeper) *Executor {
	e.sleep = sleeper
	return e
}

func (e *Executor) Policy() RetryPolicy {
	return e.policy
}

func (e *Executor) Do(ctx context.Context, req Request) (*Response, error) {
	endpoint := req.Endpoint
	if endpoint == "" {
		endpoint = req.Path
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var payload []byte
	if req.Body != nil {
		var err error
		payload, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("mpclient: erro ao serializar corpo de %s: %w", endpoint, err)
		}
	}

	target := strings.TrimRight(req.BaseURL, "/") + req.Path

	var lastErr *APIError
	for attempt := 0; ; attempt++ {
		r := e.http.R().
			SetContext(ctx).
			SetHeader(accessTokenHeader, req.AccessToken).
			SetHeader("Accept", "application/json")

		if len(req.Query) > 0 {
			r.SetQueryParamsFromValues(req.Query)
		}
		if payload != nil {
			r.SetHeader("Content-Type", "application/json").SetBody(payload)
		}

		resp, err := r.Execute(method, target)
		if err != nil {
			// falhas de transporte não são repetidas
			return nil, fmt.Errorf("mpclient: erro na requisição para %s: %w", endpoint, err)
		}

		status := resp.StatusCode()
		if status >= 200 && status < 300 {
			return &Response{
				StatusCode: status,
				Header:     resp.Header(),
				Body:       resp.Body(),
				Retries:    attempt,
			}, nil
		}

		if status != http.StatusTooManyRequests {
			apiErr := newAPIError(endpoint, status, resp.Body(), req.BestEffort)
			logrus.WithFields(logrus.Fields{
				"endpoint":    endpoint,
				"status":      status,
				"best_effort": req.BestEffort,
			}).Warn("mpclient: resposta de erro da API do marketplace")
			return nil, apiErr
		}

		lastErr = newAPIError(endpoint, status, resp.Body(), req.BestEffort)
		if attempt >= e.policy.MaxAttempts {
			break
		}

		wait := e.policy.Wait(attempt, resp.Header().Get("Retry-After"), e.now())
		logrus.WithFields(logrus.Fields{
			"endpoint": endpoint,
			"attempt":  attempt + 1,
			"wait":     wait.String(),
		}).Warn("mpclient: limite de requisições atingido, aguardando nova tentativa")

		if err := e.sleep(ctx, wait); err != nil {
			return nil, fmt.Errorf("mpclient: espera interrompida em %s: %w", endpoint, err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"retries":  e.policy.MaxAttempts,
	}).Error("mpclient: tentativas esgotadas")

	return nil, fmt.Errorf("%w: %w", ErrRetriesExhausted, lastErr)
}

// DoJSON executa a requisição e decodifica o corpo em out
func (e *Executor) DoJSON(ctx context.Context, req Request, out any) error {
	resp, err := e.Do(ctx, req)
	if err != nil {
		return err
	}

	if out == nil || len(resp.Body) == 0 {
		return nil
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("mpclient: erro ao decodificar resposta de %s: %w", req.Endpoint, err)
	}

	return nil
}
