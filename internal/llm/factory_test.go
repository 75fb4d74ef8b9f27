package llm

import (
	"testing"
	"time"

	"essay-scorer/internal/config"
)

func TestNewFromConfig_WrapsWithThrottleWhenLimited(t *testing.T) {
	cfg := &config.Config{LLMAPIKey: "k", LLMCallTimeout: time.Second, LLMMaxInFlight: 4}
	if _, ok := NewFromConfig(cfg, nil).(*Throttled); !ok {
		t.Fatalf("expected throttled client")
	}
}

func TestNewFromConfig_PlainStreamWithoutLimits(t *testing.T) {
	cfg := &config.Config{LLMAPIKey: "k", LLMCallTimeout: time.Second}
	if _, ok := NewFromConfig(cfg, nil).(*StreamClient); !ok {
		t.Fatalf("expected stream client")
	}
}
