package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/exply-app/exply/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an exply configuration file interactively",
	Long: `Walks through the client setup: direct API access or relay mode, the
provider and model, and the response language, then writes .exply.yml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(cfgFile); err == nil {
			return fmt.Errorf("%s already exists; edit it directly or remove it first", cfgFile)
		}

		cfg, err := config.RunWizard()
		if err != nil {
			return fmt.Errorf("running setup: %w", err)
		}

		if err := cfg.Save(cfgFile); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}

		fmt.Printf("Configuration written to %s\n", cfgFile)
		if cfg.Client.Mode == config.ModeDirect {
			fmt.Printf("Set %s to authenticate with the provider.\n", config.APIKeyEnvVar(cfg.Client.Provider))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
