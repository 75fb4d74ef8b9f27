package service

import (
	"regexp"
	"strconv"
	"strings"

	"essay-scorer/internal/domain"
)

const (
	MinScore = 0.0
	MaxScore = 10.0
)

// <final> NUMBER (<final> | </final>), espacios opcionales alrededor del numero.
var finalScoreRe = regexp.MustCompile(`(?i)<final>\s*([+-]?(?:\d+(?:\.\d+)?|\.\d+))\s*</?final>`)

var (
	fenceStartRe = regexp.MustCompile("(?is)^\\s*```[a-z]*\\s*")
	fenceEndRe   = regexp.MustCompile("(?is)\\s*```\\s*$")
)

// ExtractScore toma el ultimo <final>SCORE<final> del texto y lo convierte a float.
// Valores fuera de [0, 10] se recortan al rango. Sin sentinela valida devuelve ScoreExtractionError.
func ExtractScore(trait, raw string) (float64, error) {
	text := stripFences(raw)
	matches := finalScoreRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return 0, &domain.ScoreExtractionError{Trait: trait, RawText: raw}
	}
	last := matches[len(matches)-1]
	score, err := strconv.ParseFloat(last[1], 64)
	if err != nil {
		return 0, &domain.ScoreExtractionError{Trait: trait, RawText: raw}
	}
	return clampScore(score), nil
}

func clampScore(v float64) float64 {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}

// stripFences quita fences ``` que algunos modelos agregan alrededor de la respuesta.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "\uFEFF")
	s = fenceStartRe.ReplaceAllString(s, "")
	s = fenceEndRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
