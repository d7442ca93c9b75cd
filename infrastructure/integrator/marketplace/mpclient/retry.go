package mpclient

import (
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vfg2006/marketplace-ingest-api/internal/config"
)

// RetryPolicy controla o backoff reativo aplicado às respostas 429.
// MaxAttempts é o número de novas tentativas após a primeira chamada.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Jitter      bool
}

func NewRetryPolicy(cfg config.Retry) RetryPolicy {
	policy := RetryPolicy{
		MaxAttempts: cfg.MaxAttempts,
		BaseDelay:   cfg.BaseDelay,
		MaxDelay:    cfg.MaxDelay,
		Jitter:      cfg.Jitter,
	}

	if policy.MaxAttempts < 0 {
		policy.MaxAttempts = 0
	}
	if policy.BaseDelay <= 0 {
		policy.BaseDelay = 2 * time.Second
	}
	if policy.MaxDelay < policy.BaseDelay {
		policy.MaxDelay = policy.BaseDelay
	}

	return policy
}

// Backoff retorna min(BaseDelay * 2^attempt, MaxDelay), attempt começando em zero
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	delay := p.BaseDelay
	for i := 0; i < attempt; i++ {
		delay *= 2
		if delay >= p.MaxDelay || delay <= 0 {
			return p.MaxDelay
		}
	}

	if delay > p.MaxDelay {
		return p.MaxDelay
	}

	return delay
}

// Wait calcula a espera antes da próxima tentativa. O cabeçalho Retry-After,
// quando válido, tem precedência sobre o backoff exponencial.
func (p RetryPolicy) Wait(attempt int, retryAfter string, now time.Time) time.Duration {
	if d, ok := ParseRetryAfter(retryAfter, now); ok {
		return d
	}

	delay := p.Backoff(attempt)
	if p.Jitter && delay > 0 {
		// até 10% a mais, nunca ultrapassando MaxDelay
		delay += time.Duration(rand.Int63n(int64(delay)/10 + 1))
		if delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}

	return delay
}

// MaxTotalWait é a soma das esperas quando nenhuma resposta traz Retry-After
func (p RetryPolicy) MaxTotalWait() time.Duration {
	var total time.Duration
	for i := 0; i < p.MaxAttempts; i++ {
		total += p.Backoff(i)
	}
	return total
}

// ParseRetryAfter aceita segundos inteiros ou uma data HTTP
func ParseRetryAfter(value string, now time.Time) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0, false
		}
		return time.Duration(seconds) * time.Second, true
	}

	at, err := http.ParseTime(value)
	if err != nil {
		return 0, false
	}

	d := at.Sub(now)
	if d < 0 {
		d = 0
	}

	return d, true
}
