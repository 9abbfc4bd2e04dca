package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mynx-softwares/billgen/internal/layout"
	"github.com/mynx-softwares/billgen/internal/ledger"
	"github.com/mynx-softwares/billgen/internal/logging"
	"github.com/mynx-softwares/billgen/internal/server"
	"github.com/mynx-softwares/billgen/internal/statement"
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the billing statement HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := loadConfig(cmd, configPath)
			if err != nil {
				return err
			}

			logger := logging.Setup(cfg.LogFormat)
			store := ledger.NewStore(cfg.LedgerPath, logger)
			engine := layout.NewEngine(cfg.FacilityLocation)
			gen := statement.NewGenerator(store, engine, logger)

			e := server.New(gen, store, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- e.Start(cfg.ListenAddr)
			}()

			logger.Info().
				Str("addr", cfg.ListenAddr).
				Str("ledger", cfg.LedgerPath).
				Bool("ledger_exists", store.Health().DataFileExists).
				Msg("server starting")

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := e.Shutdown(shutdownCtx); err != nil {
					return err
				}
				logger.Info().Msg("server stopped")
			}
			return nil
		},
	}

	cmd.Flags().String("config", "", "Path to billgen.yaml")
	cmd.Flags().String("ledger", "", "Path to the financials ledger file")
	cmd.Flags().String("listen", "", "Listen address (e.g. :5000)")
	cmd.Flags().String("location", "", "Facility location printed on statements")
	cmd.Flags().String("log-format", "", "Log format: text or json")
	return cmd
}
