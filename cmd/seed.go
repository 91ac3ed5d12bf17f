/*
seed.go - Seed the default wood type catalog

Opening the engine seeds the catalog on first start; this command exists to
re-seed explicitly after the catalog was emptied.
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/alamer/timber-engine/engine"
	"github.com/alamer/timber-engine/journal"
	"github.com/alamer/timber-engine/store/sqlite"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the default wood type catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}

		kv, err := sqlite.New(cfg.DB.Path)
		if err != nil {
			return err
		}
		defer kv.Close()

		eng, err := engine.New(cmd.Context(), kv, log, engine.Options{})
		if err != nil {
			return err
		}

		existing := make(map[string]bool)
		for _, wt := range eng.WoodTypes() {
			existing[wt.Name] = true
		}

		added := 0
		for _, wt := range journal.DefaultWoodTypes() {
			if existing[wt.Name] {
				continue
			}
			if _, err := eng.AddWoodType(cmd.Context(), wt); err != nil {
				return err
			}
			added++
		}
		log.Info().Int("added", added).Msg("catalog seeded")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
