package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cardmeta/internal/aggregate"
	"cardmeta/internal/catalog"
	"cardmeta/internal/config"
	"cardmeta/internal/logging"
	"cardmeta/internal/source"
)

func newMergeCommand(ctx *commandContext) *cobra.Command {
	var dir string
	var output string

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Concatenate every card JSON file into one aggregate array",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.jobConfig()
			if err != nil {
				return err
			}
			if err := resolveDir(&cfg, dir); err != nil {
				return err
			}
			if strings.TrimSpace(output) != "" {
				expanded, err := config.ExpandPath(strings.TrimSpace(output))
				if err != nil {
					return fmt.Errorf("resolve --output: %w", err)
				}
				cfg.Paths.OutputFile = expanded
			}
			logger, closeLog, err := ctx.newLogger(cmd, &cfg, "aggregate")
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

			var summary aggregate.Summary
			err = withLock(&cfg, logger, func() error {
				var runErr error
				summary, runErr = aggregate.Run(cmd.Context(), aggregate.Options{
					Source:     src,
					OutputFile: cfg.Paths.OutputFile,
					Logger:     logger,
				})
				return runErr
			})
			if err != nil {
				logging.ErrorWithContext(logger, "aggregation failed", "aggregate_failed",
					logging.Error(err),
					logging.String("output", cfg.Paths.OutputFile),
				)
				return err
			}

			logger.Info("aggregation complete",
				logging.Int("files", summary.Files),
				logging.Int("elements", summary.Elements),
				logging.String("output", summary.Output),
			)
			fmt.Fprintln(cmd.OutOrStdout(), renderMergeSummary(summary))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory holding the card JSON files")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Aggregate output file")
	return cmd
}
