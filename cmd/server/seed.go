package main

import (
	"fmt"

	"restoran-inventory/internal/seed"

	"github.com/spf13/cobra"
)

var (
	seedDir    string
	seedExport bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import Branches.txt, Items.txt, Stocks.txt and Transfer.txt into empty tables, or export them with --export",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		dir := seedDir
		if dir == "" {
			dir = cfg.SeedDir
		}

		mode := "import"
		run := func() (*seed.Result, error) { return seed.Import(cmd.Context(), db, dir, log) }
		if seedExport {
			mode = "export"
			run = func() (*seed.Result, error) { return seed.Export(cmd.Context(), db, dir) }
		}

		res, err := run()
		if err != nil {
			return fmt.Errorf("seed %s failed: %w", mode, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), `
=== Seed Report ===
Mode:       %s
Directory:  %s
Branches:   %d
Items:      %d
Stocks:     %d
Transfers:  %d
===================
`, mode, dir, res.Branches, res.Items, res.Stocks, res.Transfers)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedDir, "dir", "", "Directory holding the seed files (default SEED_DIR)")
	seedCmd.Flags().BoolVar(&seedExport, "export", false, "Write the current tables to --dir instead of importing")
	rootCmd.AddCommand(seedCmd)
}
