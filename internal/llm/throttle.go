package llm

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"essay-scorer/internal/domain"
)

// Throttled limita las llamadas concurrentes al backend y su ritmo por segundo.
// Se comparte entre todos los requests del proceso.
type Throttled struct {
	next    LLMClient
	sem     *semaphore.Weighted
	limiter *rate.Limiter
}

// NewThrottled envuelve next. maxInFlight <= 0 o perSecond <= 0 desactivan cada limite.
func NewThrottled(next LLMClient, maxInFlight int, perSecond float64, burst int) *Throttled {
	t := &Throttled{next: next}
	if maxInFlight > 0 {
		t.sem = semaphore.NewWeighted(int64(maxInFlight))
	}
	if perSecond > 0 {
		if burst < 1 {
			burst = 1
		}
		t.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
	return t
}

func (t *Throttled) Send(ctx context.Context, model string, messages []domain.Message) (string, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return "", &domain.BackendError{Cause: fmt.Errorf("rate limit wait: %w", err)}
		}
	}
	if t.sem != nil {
		if err := t.sem.Acquire(ctx, 1); err != nil {
			return "", &domain.BackendError{Cause: fmt.Errorf("acquire backend slot: %w", err)}
		}
		defer t.sem.Release(1)
	}
	return t.next.Send(ctx, model, messages)
}
