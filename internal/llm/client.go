package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"

	"essay-scorer/internal/domain"
	"essay-scorer/internal/metrics"
)

// Parametros de decodificacion fijos para todas las llamadas.
const (
	Temperature = 0.2
	MaxTokens   = 1024
	TopP        = 0.9
)

const DefaultBaseURL = "https://api.groq.com/openai/v1"

var (
	ErrNoMessages       = errors.New("messages must not be empty")
	ErrStreamIncomplete = errors.New("stream ended before completion")
)

// LLMClient define la interfaz para generar texto a partir de mensajes con rol.
type LLMClient interface {
	Send(ctx context.Context, model string, messages []domain.Message) (string, error)
}

// StreamClient implementa LLMClient consumiendo chat completions en streaming
// de una API compatible con OpenAI.
type StreamClient struct {
	sdk     openai.Client
	timeout time.Duration
	logger  *zap.Logger
}

// NewStreamClient construye el cliente; timeout acota cada llamada (0 = sin limite).
func NewStreamClient(baseURL, apiKey string, timeout time.Duration, httpClient *http.Client, logger *zap.Logger) *StreamClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	return &StreamClient{
		sdk:     openai.NewClient(opts...),
		timeout: timeout,
		logger:  logger,
	}
}

func (c *StreamClient) Send(ctx context.Context, model string, messages []domain.Message) (out string, err error) {
	if len(messages) == 0 {
		return "", ErrNoMessages
	}
	params, err := buildParams(model, messages)
	if err != nil {
		return "", err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	done := metrics.BackendCallStarted(model)
	defer func() { done(err) }()

	stream := c.sdk.Chat.Completions.NewStreaming(ctx, params)
	defer stream.Close()

	var b strings.Builder
	completed := false
	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		choice := chunk.Choices[0]
		b.WriteString(choice.Delta.Content)
		if choice.FinishReason != "" {
			completed = true
		}
	}
	if err := stream.Err(); err != nil {
		c.logger.Warn("llm stream failed", zap.String("model", model), zap.Error(err))
		return "", &domain.BackendError{Cause: describeStreamError(ctx, err)}
	}
	if !completed {
		c.logger.Warn("llm stream incomplete", zap.String("model", model), zap.Int("received_bytes", b.Len()))
		return "", &domain.BackendError{Cause: ErrStreamIncomplete}
	}

	return strings.TrimSpace(b.String()), nil
}

func buildParams(model string, messages []domain.Message) (openai.ChatCompletionNewParams, error) {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for i, m := range messages {
		switch m.Role {
		case domain.RoleSystem:
			msgs = append(msgs, openai.SystemMessage(m.Content))
		case domain.RoleUser:
			msgs = append(msgs, openai.UserMessage(m.Content))
		default:
			return openai.ChatCompletionNewParams{}, fmt.Errorf("message %d: unsupported role %q", i, m.Role)
		}
	}
	return openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(model),
		Messages:    msgs,
		Temperature: openai.Float(Temperature),
		MaxTokens:   openai.Int(MaxTokens),
		TopP:        openai.Float(TopP),
	}, nil
}

func describeStreamError(ctx context.Context, err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("llm http error: status=%d: %w", apiErr.StatusCode, err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
		return fmt.Errorf("%w: %w", ctxErr, err)
	}
	return err
}
