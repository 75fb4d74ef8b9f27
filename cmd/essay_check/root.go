package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"essay-scorer/internal/catalog"
	"essay-scorer/internal/config"
	"essay-scorer/internal/domain"
	"essay-scorer/internal/llm"
	"essay-scorer/internal/service"
)

type evaluateOptions struct {
	essayFile   string
	topic       string
	model       string
	catalogPath string
	asJSON      bool
	verbose     bool
}

func newRootCmd() *cobra.Command {
	var opts evaluateOptions
	cmd := &cobra.Command{
		Use:          "essay_check",
		Short:        "Score an essay against the trait catalog from the terminal",
		Long:         `Runs the same per-trait quotation and scoring chains as the API and prints one score per trait.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEvaluate(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.essayFile, "essay-file", "f", "", "path to the essay text ('-' reads stdin)")
	cmd.Flags().StringVarP(&opts.topic, "topic", "t", "", "essay prompt or topic")
	cmd.Flags().StringVar(&opts.model, "model", "", "override LLM_MODEL")
	cmd.Flags().StringVar(&opts.catalogPath, "catalog", "", "override TRAIT_CATALOG_PATH")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the result as JSON")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every backend call")
	_ = cmd.MarkFlagRequired("essay-file")
	_ = cmd.MarkFlagRequired("topic")

	cmd.AddCommand(newTokenCmd())
	return cmd
}

func runEvaluate(cmd *cobra.Command, opts evaluateOptions) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	catalogPath := cfg.TraitCatalogPath
	if opts.catalogPath != "" {
		catalogPath = opts.catalogPath
	}
	traitCatalog, err := catalog.FromPath(catalogPath)
	if err != nil {
		return err
	}

	essay, err := readEssay(cmd.InOrStdin(), opts.essayFile)
	if err != nil {
		return err
	}

	logger := zap.NewNop()
	if opts.verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			return err
		}
		defer logger.Sync()
	}

	model := cfg.LLMModel
	if opts.model != "" {
		model = opts.model
	}

	evaluator := service.NewTraitEvaluator(llm.NewFromConfig(cfg, logger), logger)
	evalSvc := service.NewEvaluationService(evaluator, traitCatalog, model, cfg.EvalTraitConcurrency, logger)

	ctx := cmd.Context()
	if cfg.EvalTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.EvalTimeout)
		defer cancel()
	}

	result, err := evalSvc.Evaluate(ctx, model, domain.EvaluationRequest{Essay: essay, Topic: opts.topic}, traitCatalog.Traits)
	if err != nil {
		var evalErr *domain.EvaluationError
		if errors.As(err, &evalErr) {
			writeFailures(cmd.ErrOrStderr(), evalErr)
		}
		return err
	}
	return writeReport(cmd.OutOrStdout(), traitCatalog.Names(), result, opts.asJSON)
}

func readEssay(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read essay: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
