package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/exply-app/exply/internal/config"
	"github.com/exply-app/exply/internal/creds"
	"github.com/exply-app/exply/internal/explain"
	"github.com/exply-app/exply/internal/extract"
	"github.com/exply-app/exply/internal/llm"
	"github.com/exply-app/exply/internal/progress"
	"github.com/exply-app/exply/internal/prompt"
	"github.com/exply-app/exply/internal/session"
)

var (
	explainFile     string
	explainURL      string
	explainMode     string
	explainLang     string
	explainFollowUp string
	explainHTML     bool
)

var explainCmd = &cobra.Command{
	Use:   "explain [text]",
	Short: "Explain a piece of text in context",
	Long: `Fetches an AI explanation for the given text. With --file, the text is
located inside the HTML page and the surrounding sentence and paragraph
are extracted as context; without it, the text stands on its own.

The client mode (direct API key or relay) comes from the config file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		selected := strings.TrimSpace(args[0])
		if utf8.RuneCountInString(selected) < session.MinSelectionLength {
			return fmt.Errorf("selection too short: need at least %d characters", session.MinSelectionLength)
		}

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		sc := extract.Synthetic(selected)
		if explainFile != "" {
			f, err := os.Open(explainFile)
			if err != nil {
				return fmt.Errorf("opening page: %w", err)
			}
			page, err := extract.ParsePage(f, explainURL)
			f.Close()
			if err != nil {
				return fmt.Errorf("parsing page: %w", err)
			}
			sc = page.Context(selected)
		}

		client, err := buildClient(cfg)
		if err != nil {
			return err
		}

		lang := explainLang
		if lang == "" {
			lang = cfg.Client.Language
		}

		reporter := progress.NewReporter()
		reporter.Start("Analyzing...")
		result, err := client.Explain(context.Background(), explain.Request{
			Context:          sc,
			Mode:             prompt.Mode(explainMode),
			Language:         lang,
			FollowUpQuestion: explainFollowUp,
		})
		reporter.Finish()
		if err != nil {
			return err
		}

		if explainHTML {
			fmt.Println(session.FormatExplanation(result))
		} else {
			fmt.Println(result)
		}
		return nil
	},
}

// buildClient selects the explanation client from the configured mode:
// a relay client with cached credentials, or a direct client holding the
// provider key.
func buildClient(cfg *config.Config) (explain.Client, error) {
	if cfg.Client.Mode == config.ModeRelay {
		if cfg.Client.RelayURL == "" {
			return nil, fmt.Errorf("relay mode requires client.relay_url")
		}
		source, err := credentialCache()
		if err != nil {
			return nil, err
		}
		return explain.NewRelayClient(cfg.Client.RelayURL, source), nil
	}

	apiKey := config.APIKey(cfg.Client.Provider)
	provider, err := llm.NewProvider(cfg.Client.Provider, apiKey, cfg.Client.Model)
	if err != nil {
		return nil, fmt.Errorf("creating provider: %w", err)
	}
	return explain.NewDirectClient(provider), nil
}

// credentialCache opens the file-backed token cache used for relay auth.
func credentialCache() (*creds.Cache, error) {
	path, err := creds.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("resolving credentials path: %w", err)
	}
	return creds.NewCache(creds.NewFileStore(path)), nil
}

func init() {
	explainCmd.Flags().StringVar(&explainFile, "file", "", "HTML page containing the text")
	explainCmd.Flags().StringVar(&explainURL, "url", "", "page URL, used for the context domain")
	explainCmd.Flags().StringVar(&explainMode, "mode", "explain", "explanation style: explain, simplify, implication")
	explainCmd.Flags().StringVar(&explainLang, "lang", "", "response language code (default from config)")
	explainCmd.Flags().StringVar(&explainFollowUp, "follow-up", "", "follow-up question about the text")
	explainCmd.Flags().BoolVar(&explainHTML, "html", false, "print the card markup instead of plain text")
	rootCmd.AddCommand(explainCmd)
}
