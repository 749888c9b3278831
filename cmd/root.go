package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "exply",
	Short: "Contextual AI explanations for highlighted text",
	Long: `Exply explains highlighted text in its surrounding context. It extracts
the sentence and paragraph around a selection, builds a context-aware
prompt, and fetches a concise explanation from a generative API, either
directly with your own key or through a relay that holds the key
server-side.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".exply.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
