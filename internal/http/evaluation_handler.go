package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"essay-scorer/internal/domain"
	"essay-scorer/internal/service"
)

// EvaluationHandler expone la evaluacion de ensayos por HTTP.
type EvaluationHandler struct {
	logger  *zap.Logger
	evalSvc *service.EvaluationService
	timeout time.Duration
}

// NewEvaluationHandler crea el handler; timeout acota cada evaluacion completa (0 = sin limite).
func NewEvaluationHandler(logger *zap.Logger, evalSvc *service.EvaluationService, timeout time.Duration) *EvaluationHandler {
	return &EvaluationHandler{
		logger:  logger,
		evalSvc: evalSvc,
		timeout: timeout,
	}
}

type evaluateRequest struct {
	Essay string `json:"essay"`
	Topic string `json:"topic"`
	// Prompt es el nombre alternativo de topic que usa el cliente web.
	Prompt string `json:"prompt"`
}

type failedTrait struct {
	Trait string `json:"trait"`
	Stage string `json:"stage,omitempty"`
	Error string `json:"error"`
}

// Evaluate maneja POST /api/evaluate.
func (h *EvaluationHandler) Evaluate(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid evaluate request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	topic := req.Topic
	if strings.TrimSpace(topic) == "" {
		topic = req.Prompt
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	result, err := h.evalSvc.EvaluateEssay(ctx, domain.EvaluationRequest{Essay: req.Essay, Topic: topic})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListTraits maneja GET /api/traits.
func (h *EvaluationHandler) ListTraits(c *gin.Context) {
	cat := h.evalSvc.Catalog()
	c.JSON(http.StatusOK, gin.H{
		"version": cat.Version,
		"model":   h.evalSvc.Model(),
		"traits":  cat.Names(),
	})
}

func (h *EvaluationHandler) writeError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
		return
	}

	var evalErr *domain.EvaluationError
	if errors.As(err, &evalErr) {
		status := http.StatusBadGateway
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		failed := make([]failedTrait, 0, len(evalErr.Failures))
		for _, f := range evalErr.Failures {
			ft := failedTrait{Trait: f.Trait, Error: f.Err.Error()}
			var be *domain.BackendError
			if errors.As(f.Err, &be) {
				ft.Stage = string(be.Stage)
			}
			failed = append(failed, ft)
		}
		h.logger.Error("evaluation failed", zap.Strings("failed_traits", evalErr.Traits()), zap.Int("status", status))
		c.JSON(status, gin.H{"error": "evaluation failed", "failed_traits": failed})
		return
	}

	h.logger.Error("evaluation error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "could not evaluate essay"})
}
