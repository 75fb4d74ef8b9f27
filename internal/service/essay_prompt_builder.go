package service

import "fmt"

// ScoreSentinel es el delimitador que el prompt de puntuacion pide y que ExtractScore busca.
// El formato real es <final>SCORE<final>, con la etiqueta de apertura repetida al cierre.
const ScoreSentinel = "<final>"

// EssayPromptBuilder arma los tres prompts de la cadena de un rasgo.
type EssayPromptBuilder struct{}

// BuildSetupPrompt presenta al evaluador y el rasgo que debe puntuar.
func (EssayPromptBuilder) BuildSetupPrompt(trait, description string) string {
	return fmt.Sprintf(
		`You are a member of the English essay writing test evaluation committee. Your responsibility is to score the essay in terms of "%s". Description: %s`,
		trait, description,
	)
}

// BuildQuotationPrompt pide citas del ensayo relevantes al rasgo, cada una con un juicio breve.
func (EssayPromptBuilder) BuildQuotationPrompt(topic, essay, trait string) string {
	return fmt.Sprintf(
		`[Prompt] %s [Essay] %s Task: List quotations from the essay relevant to the trait "%s" and evaluate whether each quotation is well-written.`,
		topic, essay, trait,
	)
}

// BuildScoringPrompt pide el puntaje 0-10 usando la rubrica y las citas ya extraidas.
// Debe cerrar con la instruccion de sentinela que consume ExtractScore.
func (EssayPromptBuilder) BuildScoringPrompt(quotations, trait, rubric string) string {
	return fmt.Sprintf(
		`[Quotations] %s [Scoring Rubric] %s Task: Based on the scoring rubric and the quotations provided above, rate the "%s" of this essay from 0 to 10. `+
			`IMPORTANT: AFTER EXPLAINING WHY YOU GAVE THE SCORE IN DETAIL, PLEASE PROVIDE THE SCORE IN THIS FORMAT AT THE END OF THE PARAGRAPH '%snumber%s' where 'number' is the final score , example: [explanation of the evaluation] %s7.6%s.`,
		quotations, rubric, trait, ScoreSentinel, ScoreSentinel, ScoreSentinel, ScoreSentinel,
	)
}
