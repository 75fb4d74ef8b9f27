package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"essay-scorer/internal/domain"
)

const (
	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorCyan  = "\033[36m"
	colorReset = "\033[0m"
)

// writeReport imprime los puntajes en orden de catalogo y el promedio.
func writeReport(w io.Writer, names []string, result domain.EvaluationResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	var total float64
	for _, name := range names {
		score := result[name]
		total += score
		fmt.Fprintf(w, "%s%-32s%s %s%4.1f%s/10\n", colorCyan, name, colorReset, colorGreen, score, colorReset)
	}
	if len(names) > 0 {
		fmt.Fprintln(w, "==== Promedio ====")
		fmt.Fprintf(w, "%.2f/10\n", total/float64(len(names)))
	}
	return nil
}

func writeFailures(w io.Writer, evalErr *domain.EvaluationError) {
	for _, f := range evalErr.Failures {
		stage := "-"
		var be *domain.BackendError
		if errors.As(f.Err, &be) && be.Stage != "" {
			stage = string(be.Stage)
		}
		fmt.Fprintf(w, "%s[%s]%s stage=%s %v\n", colorRed, f.Trait, colorReset, stage, f.Err)
	}
}
