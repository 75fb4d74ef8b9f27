package llm

import (
	"context"
	"sync/atomic"
	"time"

	"essay-scorer/internal/domain"
)

// MockClient permite tests sin llamar a un LLM real.
// Si Respond esta definido tiene prioridad sobre Response/Err.
type MockClient struct {
	Response string
	Err      error
	Respond  func(ctx context.Context, model string, messages []domain.Message) (string, error)
	Delay    time.Duration

	calls atomic.Int64
}

func (m *MockClient) Send(ctx context.Context, model string, messages []domain.Message) (string, error) {
	m.calls.Add(1)
	if m.Delay > 0 {
		timer := time.NewTimer(m.Delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return "", &domain.BackendError{Cause: ctx.Err()}
		}
	}
	if m.Respond != nil {
		return m.Respond(ctx, model, messages)
	}
	return m.Response, m.Err
}

// Calls devuelve cuantas veces se invoco Send.
func (m *MockClient) Calls() int {
	return int(m.calls.Load())
}
