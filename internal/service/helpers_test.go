package service

import (
	"context"
	"fmt"
	"strings"

	"essay-scorer/internal/catalog"
	"essay-scorer/internal/domain"
	"essay-scorer/internal/llm"
)

const testModel = "llama3-8b-8192"

// traitOf identifica el rasgo de una llamada por el nombre entre comillas que incluyen todos los prompts.
func traitOf(traits []domain.TraitSpec, messages []domain.Message) string {
	var all strings.Builder
	for _, m := range messages {
		all.WriteString(m.Content)
	}
	text := all.String()
	for _, t := range traits {
		if strings.Contains(text, `"`+t.Name+`"`) {
			return t.Name
		}
	}
	return ""
}

// stageOf distingue las etapas por la forma de la conversacion.
func stageOf(messages []domain.Message) domain.Stage {
	if len(messages) == 2 {
		return domain.StageQuotation
	}
	return domain.StageScoring
}

type scriptedBackend struct {
	traits []domain.TraitSpec
	scores map[string]float64
	// fail permite inyectar errores por rasgo y etapa; nil sigue el camino feliz.
	fail func(ctx context.Context, trait string, stage domain.Stage) error
}

func (b scriptedBackend) client() *llm.MockClient {
	return &llm.MockClient{Respond: b.respond}
}

func (b scriptedBackend) respond(ctx context.Context, _ string, messages []domain.Message) (string, error) {
	trait := traitOf(b.traits, messages)
	stage := stageOf(messages)
	if b.fail != nil {
		if err := b.fail(ctx, trait, stage); err != nil {
			return "", err
		}
	}
	if stage == domain.StageQuotation {
		return fmt.Sprintf(`"quote for %s" - well written`, trait), nil
	}
	return fmt.Sprintf("Reasoning for %s. <final>%g<final>", trait, b.scores[trait]), nil
}

func defaultTraits() catalog.Catalog {
	c, err := catalog.Default()
	if err != nil {
		panic(err)
	}
	return c
}

func defaultScores() map[string]float64 {
	return map[string]float64{
		"Task Response":                  7,
		"Coherence and Cohesion":         6.5,
		"Lexical Resource":               7.6,
		"Grammatical Range and Accuracy": 8,
	}
}

const sampleEssay = `In recent years technology has become part of almost every classroom.
Some people argue that it distracts students, while others believe it improves learning.
In my opinion, when used with clear goals, technology makes education more accessible.`
