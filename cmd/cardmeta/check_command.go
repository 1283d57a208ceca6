package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cardmeta/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify that the input directory, output file and lock are usable",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.jobConfig()
			if err != nil {
				return err
			}
			if err := resolveDir(&cfg, dir); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Configuration", colorize) {
				fmt.Fprintln(out, line)
			}
			configDetail := ctx.configPath
			if !ctx.configSeen {
				configDetail += " (not found, defaults used)"
			}
			fmt.Fprintln(out, renderStatusLine("Config file", statusInfo, configDetail, colorize))
			fmt.Fprintln(out, renderStatusLine("Similarity", statusInfo,
				fmt.Sprintf("threshold %.2f, top %d, normalize %s", cfg.Similarity.Threshold, cfg.Similarity.TopN, cfg.Similarity.Normalize), colorize))
			fmt.Fprintln(out)

			for _, line := range renderSectionHeader("Preflight", colorize) {
				fmt.Fprintln(out, line)
			}
			results := preflight.RunAll(&cfg)
			for _, r := range results {
				kind := statusOK
				if !r.Passed {
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine(r.Name, kind, r.Detail, colorize))
			}
			if failed := preflight.Failed(results); len(failed) > 0 {
				return fmt.Errorf("%d of %d checks failed", len(failed), len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory holding the card JSON files")
	return cmd
}
