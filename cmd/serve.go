package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/exply-app/exply/internal/auth"
	"github.com/exply-app/exply/internal/config"
	"github.com/exply-app/exply/internal/llm"
	"github.com/exply-app/exply/internal/server"
	"github.com/exply-app/exply/internal/usage"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the explanation relay service",
	Long: `Starts the relay that accepts explanation requests over HTTP, builds
the prompt server-side, and calls the generative API with a server-held
key. Bearer-token authentication and usage metering are enabled through
the server section of the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is fine; environment variables may come from
		// anywhere.
		_ = godotenv.Load()

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}

		apiKey := config.APIKey(cfg.Server.Provider)
		provider, err := llm.NewProvider(cfg.Server.Provider, apiKey, cfg.Server.Model)
		if err != nil {
			return fmt.Errorf("creating provider: %w", err)
		}
		if cfg.Server.RPM > 0 {
			provider = llm.NewRateLimitedProvider(provider, cfg.Server.RPM)
		}

		var verifier auth.Verifier
		if cfg.Server.SupabaseURL != "" {
			verifier = auth.NewSupabaseVerifier(cfg.Server.SupabaseURL, cfg.Server.SupabaseServiceKey)
		}

		var meter *usage.Store
		if cfg.Server.UsageDB != "" {
			meter, err = usage.Open(cfg.Server.UsageDB)
			if err != nil {
				return fmt.Errorf("opening usage store: %w", err)
			}
			defer meter.Close()
		}

		srv := server.New(cfg.Server, provider, verifier, meter)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down relay...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "exply relay v%s starting on port %d\n", Version, cfg.Server.Port)
		fmt.Fprintf(os.Stderr, "  Provider: %s (%s)\n", cfg.Server.Provider, cfg.Server.Model)
		fmt.Fprintf(os.Stderr, "  Auth policy: %s\n", cfg.Server.AuthPolicy)
		if meter != nil {
			fmt.Fprintf(os.Stderr, "  Usage DB: %s\n", cfg.Server.UsageDB)
		}

		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 3000, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}
