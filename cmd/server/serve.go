package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restoran-inventory/internal/seed"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveSeed bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		if err := cfg.ValidateServer(); err != nil {
			return err
		}

		if serveSeed {
			if _, err := seed.Import(cmd.Context(), db, cfg.SeedDir, log); err != nil {
				return err
			}
		}

		app := newApp(cfg, db, log)

		go func() {
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
			<-quit

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := app.ShutdownWithContext(ctx); err != nil {
				log.Error("shutdown failed", zap.Error(err))
			}
		}()

		log.Info("server listening", zap.String("port", cfg.HTTPPort))
		return app.Listen(":" + cfg.HTTPPort)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveSeed, "seed", false, "Import the seed files from SEED_DIR before serving")
	rootCmd.AddCommand(serveCmd)
}
