package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cardmeta/internal/catalog"
	"cardmeta/internal/config"
	"cardmeta/internal/logging"
	"cardmeta/internal/ranker"
	"cardmeta/internal/similarity"
	"cardmeta/internal/source"
)

type similarityFlags struct {
	dir       string
	threshold float64
	topN      int
	normalize string
}

func (f *similarityFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.dir, "dir", "", "Directory holding the card JSON files")
	cmd.Flags().Float64Var(&f.threshold, "threshold", 0, "Minimum similarity for a card to be listed")
	cmd.Flags().IntVar(&f.topN, "top-n", 0, "Maximum number of similar cards per record")
	cmd.Flags().StringVar(&f.normalize, "normalize", "", "Name normalization (none, nfkc, nfkc_casefold)")
}

// apply copies explicitly set flags into cfg and revalidates it.
func (f *similarityFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	if err := resolveDir(cfg, f.dir); err != nil {
		return err
	}
	if cmd.Flags().Changed("threshold") {
		cfg.Similarity.Threshold = f.threshold
	}
	if cmd.Flags().Changed("top-n") {
		cfg.Similarity.TopN = f.topN
	}
	if cmd.Flags().Changed("normalize") {
		cfg.Similarity.Normalize = f.normalize
	}
	return cfg.Validate()
}

func newSimilarityRanker(cfg *config.Config) (similarity.Ranker, error) {
	normalize, err := similarity.NewNormalizer(cfg.Similarity.Normalize)
	if err != nil {
		return similarity.Ranker{}, err
	}
	return similarity.Ranker{
		Threshold: cfg.Similarity.Threshold,
		TopN:      cfg.Similarity.TopN,
		Normalize: normalize,
	}, nil
}

func newRankCommand(ctx *commandContext) *cobra.Command {
	var flags similarityFlags
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Annotate every card with its most similar peers (similar_ids)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.jobConfig()
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, &cfg); err != nil {
				return err
			}
			rank, err := newSimilarityRanker(&cfg)
			if err != nil {
				return err
			}
			logger, closeLog, err := ctx.newLogger(cmd, &cfg, "ranker")
			if err != nil {
				return err
			}
			defer closeLog()

			src := source.Dir(cfg.Paths.InputDir)
			if err := catalog.CheckInputs(src); err != nil {
				logging.ErrorWithContext(logger, "no input files", "missing_input",
					logging.String("input_dir", cfg.Paths.InputDir),
					logging.String(logging.FieldErrorHint, "check paths.input_dir or pass --dir"),
				)
				return err
			}

			var summary ranker.Summary
			err = withLock(&cfg, logger, func() error {
				var runErr error
				summary, runErr = ranker.Run(cmd.Context(), ranker.Options{
					Source: src,
					Ranker: rank,
					DryRun: dryRun,
					Logger: logger,
				})
				return runErr
			})
			if err != nil {
				return err
			}

			logger.Info("ranking complete",
				logging.Int("ranked", summary.Ranked),
				logging.Int("written", summary.Written),
				logging.Int("write_failures", summary.WriteFailures),
				logging.Int("skipped", summary.Load.Skipped()),
				logging.String("elapsed", summary.Elapsed.String()),
			)
			fmt.Fprintln(cmd.OutOrStdout(), renderRankSummary(summary, dryRun))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute neighbor lists without writing files")
	return cmd
}
