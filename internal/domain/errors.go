package domain

import (
	"fmt"
	"strings"
)

// Stage identifica la etapa de la cadena de un rasgo.
type Stage string

const (
	StageQuotation Stage = "quotation"
	StageScoring   Stage = "scoring"
)

// BackendError envuelve fallos de red o del backend durante una llamada de generacion.
// Trait y Stage se completan cuando el error sube por el evaluador.
type BackendError struct {
	Trait string
	Stage Stage
	Cause error
}

func (e *BackendError) Error() string {
	var b strings.Builder
	b.WriteString("backend error")
	if e.Trait != "" {
		fmt.Fprintf(&b, " (trait=%q", e.Trait)
		if e.Stage != "" {
			fmt.Fprintf(&b, " stage=%s", e.Stage)
		}
		b.WriteString(")")
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *BackendError) Unwrap() error { return e.Cause }

// ScoreExtractionError indica que la respuesta de puntuacion no trae un numero entre sentinelas.
type ScoreExtractionError struct {
	Trait   string
	RawText string
}

func (e *ScoreExtractionError) Error() string {
	return fmt.Sprintf("score extraction failed for trait %q: no <final>SCORE<final> in %q", e.Trait, truncate(e.RawText, 200))
}

// ValidationError rechaza requests invalidos antes de llamar al backend.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %s %s", e.Field, e.Reason)
}

// TraitFailure asocia un rasgo con el error que aborto su cadena.
type TraitFailure struct {
	Trait string
	Err   error
}

// EvaluationError agrega los rasgos fallidos de una evaluacion.
type EvaluationError struct {
	Failures []TraitFailure
}

func (e *EvaluationError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s: %v", f.Trait, f.Err))
	}
	return fmt.Sprintf("evaluation failed for %d trait(s): %s", len(e.Failures), strings.Join(parts, "; "))
}

// Unwrap permite errors.Is/As sobre cualquiera de las causas.
func (e *EvaluationError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}

// Traits devuelve los nombres de los rasgos fallidos en orden.
func (e *EvaluationError) Traits() []string {
	names := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		names = append(names, f.Trait)
	}
	return names
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
