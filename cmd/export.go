/*
export.go - CSV export command

Writes the invoice journal as UTF-8 CSV, optionally filtered by direction.
The output path defaults to the conventional invoices_{scope}_{date}.csv in
the working directory.
*/
package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alamer/timber-engine/engine"
	"github.com/alamer/timber-engine/export"
	"github.com/alamer/timber-engine/journal"
	"github.com/alamer/timber-engine/store/sqlite"
)

var (
	exportDirection string
	exportOutput    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the invoice journal to a CSV file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}

		direction := journal.Direction(exportDirection)
		if direction != "" && !direction.Valid() {
			return fmt.Errorf("direction must be incoming or outgoing, got %q", exportDirection)
		}

		kv, err := sqlite.New(cfg.DB.Path)
		if err != nil {
			return err
		}
		defer kv.Close()

		eng, err := engine.New(cmd.Context(), kv, log, engine.Options{FoldByDate: cfg.Engine.FoldByDate})
		if err != nil {
			return err
		}

		path := exportOutput
		if path == "" {
			path = export.Filename(direction, time.Now())
		}
		if err := export.ToFile(path, eng.Invoices(), direction); err != nil {
			return err
		}
		log.Info().Str("path", path).Msg("export written")
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportDirection, "direction", "", "filter by direction: incoming or outgoing")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file path")
	rootCmd.AddCommand(exportCmd)
}
