package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"essay-scorer/internal/domain"
	"essay-scorer/internal/llm"
)

// TraitEvaluator ejecuta la cadena de dos etapas de un rasgo: citas y luego puntaje.
type TraitEvaluator struct {
	llmClient llm.LLMClient
	prompts   EssayPromptBuilder
	logger    *zap.Logger
}

func NewTraitEvaluator(llmClient llm.LLMClient, logger *zap.Logger) *TraitEvaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TraitEvaluator{
		llmClient: llmClient,
		logger:    logger,
	}
}

// Evaluate devuelve el puntaje del rasgo. La llamada de puntuacion solo empieza
// cuando terminaron las citas, porque el prompt las incluye.
func (e *TraitEvaluator) Evaluate(ctx context.Context, model, topic, essay string, trait domain.TraitSpec) (float64, error) {
	log := e.logger.With(zap.String("trait", trait.Name))

	start := time.Now()
	quotations, err := e.llmClient.Send(ctx, model, []domain.Message{
		domain.SystemMessage(e.prompts.BuildSetupPrompt(trait.Name, trait.Description)),
		domain.UserMessage(e.prompts.BuildQuotationPrompt(topic, essay, trait.Name)),
	})
	if err != nil {
		return 0, tagBackendError(err, trait.Name, domain.StageQuotation)
	}
	log.Debug("quotations received", zap.Int("chars", len(quotations)), zap.Duration("elapsed", time.Since(start)))

	raw, err := e.llmClient.Send(ctx, model, []domain.Message{
		domain.SystemMessage(e.prompts.BuildScoringPrompt(quotations, trait.Name, trait.Rubric)),
	})
	if err != nil {
		return 0, tagBackendError(err, trait.Name, domain.StageScoring)
	}
	result := domain.TraitResult{Trait: trait.Name, RawScore: raw}

	score, err := ExtractScore(result.Trait, result.RawScore)
	if err != nil {
		log.Warn("score extraction failed", zap.Error(err))
		return 0, err
	}
	log.Debug("trait scored", zap.Float64("score", score), zap.Duration("elapsed", time.Since(start)))
	return score, nil
}

// tagBackendError completa trait y etapa. Errores que no son BackendError
// (por ejemplo ErrNoMessages) se envuelven igual para no perder el contexto.
func tagBackendError(err error, trait string, stage domain.Stage) error {
	var be *domain.BackendError
	if errors.As(err, &be) {
		tagged := *be
		tagged.Trait = trait
		tagged.Stage = stage
		return &tagged
	}
	return &domain.BackendError{Trait: trait, Stage: stage, Cause: err}
}
