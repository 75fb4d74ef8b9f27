package domain

import "strings"

// EvaluationRequest es el ensayo y el tema recibidos en una llamada.
type EvaluationRequest struct {
	Essay string `json:"essay"`
	Topic string `json:"topic"`
}

// Normalize devuelve una copia con los campos recortados.
func (r EvaluationRequest) Normalize() EvaluationRequest {
	return EvaluationRequest{
		Essay: strings.TrimSpace(r.Essay),
		Topic: strings.TrimSpace(r.Topic),
	}
}

// Validate exige essay y topic no vacios despues de recortar espacios.
func (r EvaluationRequest) Validate() error {
	n := r.Normalize()
	if n.Essay == "" {
		return &ValidationError{Field: "essay", Reason: "must not be empty"}
	}
	if n.Topic == "" {
		return &ValidationError{Field: "topic", Reason: "must not be empty"}
	}
	return nil
}
