package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mynx-softwares/billgen/internal/buildinfo"
	"github.com/mynx-softwares/billgen/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "billgen",
		Short:   "Patient billing statement generator",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newGenerateCommand())

	return rootCmd
}

// loadConfig resolves the effective configuration: defaults, overlaid by
// an optional config file, overlaid by any flags the user set.
func loadConfig(cmd *cobra.Command, configPath string) (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("ledger") {
		cfg.LedgerPath, _ = cmd.Flags().GetString("ledger")
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat, _ = cmd.Flags().GetString("log-format")
	}
	if cmd.Flags().Changed("listen") {
		cfg.ListenAddr, _ = cmd.Flags().GetString("listen")
	}
	if cmd.Flags().Changed("location") {
		cfg.FacilityLocation, _ = cmd.Flags().GetString("location")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
