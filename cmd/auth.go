package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/exply-app/exply/internal/creds"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the relay session token",
	Long: `Manage the bearer token attached to relay requests.

The token is stored in ~/.exply/credentials.json. It can be pasted
directly with set-token, or received from the companion website through
the bridge listener.`,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a session token is stored",
	RunE:  runAuthStatus,
}

var authSetTokenCmd = &cobra.Command{
	Use:   "set-token",
	Short: "Store a session token for relay requests",
	RunE:  runAuthSetToken,
}

var authListenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Receive a session token from the companion website",
	Long: `Starts the bridge listener. When you sign in on the companion website,
it broadcasts your session token to the listener, which caches it for
subsequent relay requests. Stop with Ctrl-C.`,
	RunE: runAuthListen,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored session token",
	RunE:  runAuthLogout,
}

var authListenAddr string

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authSetTokenCmd)
	authCmd.AddCommand(authListenCmd)
	authCmd.AddCommand(authLogoutCmd)
	authListenCmd.Flags().StringVar(&authListenAddr, "addr", "127.0.0.1:8765", "bridge listen address")
}

func openFileStore() (*creds.FileStore, error) {
	path, err := creds.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("resolving credentials path: %w", err)
	}
	return creds.NewFileStore(path), nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	store, err := openFileStore()
	if err != nil {
		return err
	}

	saved, err := store.Load()
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}

	path, _ := creds.DefaultPath()
	fmt.Printf("Credentials file: %s\n\n", path)
	if saved.BearerToken != "" {
		fmt.Println("Session token: stored")
	} else {
		fmt.Println("Session token: not stored (relay requests are unauthenticated)")
	}
	return nil
}

func runAuthSetToken(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Session token: ")
	input, _ := reader.ReadString('\n')
	token := strings.TrimSpace(input)
	if token == "" {
		return fmt.Errorf("token is required")
	}

	store, err := openFileStore()
	if err != nil {
		return err
	}
	cache := creds.NewCache(store)
	cache.Set(token)

	fmt.Println("Session token stored.")
	return nil
}

func runAuthListen(cmd *cobra.Command, args []string) error {
	store, err := openFileStore()
	if err != nil {
		return err
	}
	cache := creds.NewCache(store)
	cache.OnUpdate(func(string) {
		fmt.Fprintln(os.Stderr, "Session token received and stored.")
	})

	bridge := creds.NewBridge(cache)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nStopping bridge listener...")
		bridge.Shutdown(context.Background())
	}()

	fmt.Fprintf(os.Stderr, "Bridge listening on ws://%s/bridge\n", authListenAddr)
	fmt.Fprintln(os.Stderr, "Sign in on the companion website to receive a session token.")

	err = bridge.Listen(authListenAddr)
	if err != nil && ctx.Err() != nil {
		return nil // clean shutdown
	}
	return err
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	store, err := openFileStore()
	if err != nil {
		return err
	}
	if err := store.Clear(); err != nil {
		return fmt.Errorf("removing credentials: %w", err)
	}
	fmt.Println("Session token removed.")
	return nil
}
