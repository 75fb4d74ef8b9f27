package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"essay-scorer/internal/catalog"
	"essay-scorer/internal/domain"
	"essay-scorer/internal/metrics"
)

// TraitScorer puntua un rasgo individual; TraitEvaluator es la implementacion real.
type TraitScorer interface {
	Evaluate(ctx context.Context, model, topic, essay string, trait domain.TraitSpec) (float64, error)
}

// EvaluationService lanza una cadena por rasgo en paralelo y agrega los puntajes.
type EvaluationService struct {
	scorer      TraitScorer
	catalog     catalog.Catalog
	model       string
	concurrency int
	logger      *zap.Logger
}

// NewEvaluationService crea el orquestador. concurrency <= 0 lanza todos los rasgos a la vez.
func NewEvaluationService(scorer TraitScorer, cat catalog.Catalog, model string, concurrency int, logger *zap.Logger) *EvaluationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EvaluationService{
		scorer:      scorer,
		catalog:     cat,
		model:       model,
		concurrency: concurrency,
		logger:      logger,
	}
}

func (s *EvaluationService) Catalog() catalog.Catalog { return s.catalog }

func (s *EvaluationService) Model() string { return s.model }

// EvaluateEssay evalua con el modelo y catalogo configurados.
func (s *EvaluationService) EvaluateEssay(ctx context.Context, req domain.EvaluationRequest) (domain.EvaluationResult, error) {
	return s.Evaluate(ctx, s.model, req, s.catalog.Traits)
}

// Evaluate corre todas las cadenas y devuelve un puntaje por rasgo, o EvaluationError
// si alguna fallo. El primer fallo cancela las cadenas hermanas y las que aun no empezaron
// no llegan a llamar al backend.
func (s *EvaluationService) Evaluate(ctx context.Context, model string, req domain.EvaluationRequest, traits []domain.TraitSpec) (domain.EvaluationResult, error) {
	if err := req.Validate(); err != nil {
		metrics.ObserveEvaluation(metrics.OutcomeRejected, 0)
		return nil, err
	}
	req = req.Normalize()

	start := time.Now()
	log := s.logger.With(
		zap.String("evaluation_id", uuid.NewString()),
		zap.String("model", model),
		zap.Int("traits", len(traits)),
	)
	log.Info("evaluation started")

	scores := make([]float64, len(traits))
	errs := make([]error, len(traits))
	completed := make([]bool, len(traits))

	g, gctx := errgroup.WithContext(ctx)
	if limit := s.limit(len(traits)); limit > 0 {
		g.SetLimit(limit)
	}
	for i, trait := range traits {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				errs[i] = err
				return err
			}
			score, err := s.scorer.Evaluate(gctx, model, req.Topic, req.Essay, trait)
			if err != nil {
				errs[i] = err
				return err
			}
			scores[i] = score
			completed[i] = true
			return nil
		})
	}
	_ = g.Wait()

	if failures := collectFailures(ctx.Err(), traits, completed, errs); len(failures) > 0 {
		evalErr := &domain.EvaluationError{Failures: failures}
		for _, f := range failures {
			metrics.ObserveTraitFailure(f.Trait, failureKind(f.Err))
		}
		metrics.ObserveEvaluation(metrics.OutcomeFailure, time.Since(start))
		log.Warn("evaluation failed", zap.Strings("failed_traits", evalErr.Traits()), zap.Error(evalErr))
		return nil, evalErr
	}

	result := make(domain.EvaluationResult, len(traits))
	for i, trait := range traits {
		result[trait.Name] = scores[i]
		metrics.ObserveTraitScore(trait.Name, scores[i])
	}
	metrics.ObserveEvaluation(metrics.OutcomeSuccess, time.Since(start))
	log.Info("evaluation finished", zap.Duration("elapsed", time.Since(start)))
	return result, nil
}

func (s *EvaluationService) limit(n int) int {
	if s.concurrency <= 0 || s.concurrency > n {
		return n
	}
	return s.concurrency
}

// collectFailures arma la lista de rasgos fallidos. Si el contexto del llamador sigue vivo,
// las cadenas abortadas por el fallo de una hermana no se reportan: solo las causas reales.
// Si el llamador cancelo o vencio, todo rasgo incompleto se reporta con su error.
func collectFailures(parentErr error, traits []domain.TraitSpec, completed []bool, errs []error) []domain.TraitFailure {
	var failures []domain.TraitFailure
	for i, trait := range traits {
		if completed[i] {
			continue
		}
		err := errs[i]
		if parentErr == nil {
			if err == nil || errors.Is(err, context.Canceled) {
				continue
			}
		} else if err == nil {
			err = parentErr
		}
		failures = append(failures, domain.TraitFailure{Trait: trait.Name, Err: err})
	}
	if len(failures) > 0 {
		return failures
	}
	// Nunca devolver un resultado con rasgos faltantes.
	for i, trait := range traits {
		if !completed[i] && errs[i] != nil {
			failures = append(failures, domain.TraitFailure{Trait: trait.Name, Err: errs[i]})
		}
	}
	return failures
}

func failureKind(err error) string {
	var be *domain.BackendError
	var se *domain.ScoreExtractionError
	switch {
	case errors.As(err, &se):
		return "extraction"
	case errors.As(err, &be):
		return "backend"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "cancelled"
	default:
		return "other"
	}
}
