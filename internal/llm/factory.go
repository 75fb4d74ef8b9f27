package llm

import (
	"go.uber.org/zap"

	"essay-scorer/internal/config"
)

// NewFromConfig construye el cliente de streaming envuelto en el limitador compartido del proceso.
func NewFromConfig(cfg *config.Config, logger *zap.Logger) LLMClient {
	stream := NewStreamClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMCallTimeout, nil, logger)
	if cfg.LLMMaxInFlight <= 0 && cfg.LLMRatePerSecond <= 0 {
		return stream
	}
	return NewThrottled(stream, cfg.LLMMaxInFlight, cfg.LLMRatePerSecond, cfg.LLMRateBurst)
}
