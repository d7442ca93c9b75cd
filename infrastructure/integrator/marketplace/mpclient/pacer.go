package mpclient

import (
	"context"
	"sync"
	"time"
)

// Pacer garante um intervalo mínimo entre chamadas consecutivas ao mesmo endpoint
type Pacer struct {
	mu    sync.Mutex
	last  map[string]time.Time
	sleep Sleeper
	now   func() time.Time
}

func NewPacer(sleeper Sleeper) *Pacer {
	if sleeper == nil {
		sleeper = ContextSleep
	}

	return &Pacer{
		last:  make(map[string]time.Time),
		sleep: sleeper,
		now:   time.Now,
	}
}

// Wait aguarda o restante de gap desde a última chamada ao endpoint e registra a nova chamada
func (p *Pacer) Wait(ctx context.Context, endpoint string, gap time.Duration) error {
	p.mu.Lock()
	last, seen := p.last[endpoint]
	p.mu.Unlock()

	if seen && gap > 0 {
		if remaining := gap - p.now().Sub(last); remaining > 0 {
			if err := p.sleep(ctx, remaining); err != nil {
				return err
			}
		}
	}

	p.mu.Lock()
	p.last[endpoint] = p.now()
	p.mu.Unlock()

	return nil
}
