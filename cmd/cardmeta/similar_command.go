package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cardmeta/internal/catalog"
	"cardmeta/internal/ranker"
	"cardmeta/internal/record"
	"cardmeta/internal/similarity"
	"cardmeta/internal/source"
)

type similarJSON struct {
	CardID    record.ID         `json:"card_id"`
	Name      string            `json:"name_ruby"`
	Neighbors []similarNeighbor `json:"similar"`
}

type similarNeighbor struct {
	CardID record.ID `json:"card_id"`
	Name   string    `json:"name_ruby"`
	Score  float64   `json:"score"`
}

func newSimilarCommand(ctx *commandContext) *cobra.Command {
	var flags similarityFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "similar <card_id>",
		Short: "Show the most similar cards for one card without writing",
		Args:  cobra.ExactArgs(1),
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
			logger, closeLog, err := ctx.newLogger(cmd, &cfg, "similar")
			if err != nil {
				return err
			}
			defer closeLog()

			store, _, err := catalog.Load(source.Dir(cfg.Paths.InputDir), logger)
			if err != nil {
				return err
			}
			entry, neighbors, err := lookupNeighbors(store, rank, args[0])
			if err != nil {
				return err
			}

			out := similarJSON{CardID: entry.ID, Name: entry.Name, Neighbors: make([]similarNeighbor, 0, len(neighbors))}
			for _, n := range neighbors {
				peer, _ := store.Get(n.ID)
				out.Neighbors = append(out.Neighbors, similarNeighbor{CardID: n.ID, Name: peer.Name, Score: n.Score})
			}
			if asJSON {
				return writeJSON(cmd, out)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s  %s\n", entry.ID, entry.Name)
			if len(out.Neighbors) == 0 {
				fmt.Fprintf(w, "No cards at or above threshold %.2f\n", cfg.Similarity.Threshold)
				return nil
			}
			rows := make([][]string, 0, len(out.Neighbors))
			for i, n := range out.Neighbors {
				rows = append(rows, []string{
					fmt.Sprintf("%d", i+1),
					n.CardID.String(),
					n.Name,
					fmt.Sprintf("%.3f", n.Score),
				})
			}
			fmt.Fprintln(w, renderTable([]string{"#", "Card ID", "Name", "Score"}, rows, []columnAlignment{alignRight, alignLeft, alignLeft, alignRight}))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

// lookupNeighbors resolves arg as a string card_id first and falls back to a
// numeric card_id when arg is a JSON number.
func lookupNeighbors(store *catalog.Store, rank similarity.Ranker, arg string) (*catalog.Entry, []similarity.Neighbor, error) {
	arg = strings.TrimSpace(arg)
	entry, neighbors, err := ranker.Neighbors(store, rank, record.StringID(arg))
	if !errors.Is(err, ranker.ErrUnknownCard) {
		return entry, neighbors, err
	}
	id, idErr := record.ParseID(json.RawMessage(arg))
	if idErr != nil || strings.HasPrefix(id.Key(), `"`) {
		return nil, nil, err
	}
	return ranker.Neighbors(store, rank, id)
}
