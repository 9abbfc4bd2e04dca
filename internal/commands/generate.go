package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mynx-softwares/billgen/internal/layout"
	"github.com/mynx-softwares/billgen/internal/ledger"
	"github.com/mynx-softwares/billgen/internal/logging"
	"github.com/mynx-softwares/billgen/internal/statement"
)

func newGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate PATIENT_ID",
		Short: "Generate a billing statement and write it to disk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patientID := args[0]
			configPath, _ := cmd.Flags().GetString("config")
			outDir, _ := cmd.Flags().GetString("out")
			asArchive, _ := cmd.Flags().GetBool("zip")

			cfg, err := loadConfig(cmd, configPath)
			if err != nil {
				return err
			}

			logger := logging.Setup(cfg.LogFormat)
			store := ledger.NewStore(cfg.LedgerPath, logger)
			engine := layout.NewEngine(cfg.FacilityLocation)
			gen := statement.NewGenerator(store, engine, logger)

			build := gen.Build
			if asArchive {
				build = gen.BuildArchive
			}

			art, err := build(patientID)
			if errors.Is(err, statement.ErrNoRecords) {
				return fmt.Errorf("no records found for patient ID: %s", patientID)
			}
			if err != nil {
				return fmt.Errorf("generating bill: %w", err)
			}

			outPath := filepath.Join(outDir, art.Filename)
			if err := os.WriteFile(outPath, art.Data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", outPath, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), outPath)
			return nil
		},
	}

	cmd.Flags().String("config", "", "Path to billgen.yaml")
	cmd.Flags().String("ledger", "", "Path to the financials ledger file")
	cmd.Flags().String("location", "", "Facility location printed on statements")
	cmd.Flags().String("log-format", "", "Log format: text or json")
	cmd.Flags().String("out", ".", "Directory to write the statement into")
	cmd.Flags().Bool("zip", false, "Write one statement per service date, zipped")
	return cmd
}
