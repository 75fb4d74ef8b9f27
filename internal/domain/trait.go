package domain

// TraitSpec describe un rasgo evaluable del ensayo y la rubrica con la que se puntua.
type TraitSpec struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Rubric      string `json:"rubric" yaml:"rubric"`
}

// TraitResult guarda la respuesta cruda de la etapa de puntuacion antes de extraer el numero.
type TraitResult struct {
	Trait    string
	RawScore string
}

// EvaluationResult mapea nombre de rasgo a puntaje numerico.
type EvaluationResult map[string]float64
