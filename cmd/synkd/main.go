// Synk Daemon - the local companion service
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/synkhq/synk/internal/api"
	"github.com/synkhq/synk/internal/chat"
	"github.com/synkhq/synk/internal/checkin"
	"github.com/synkhq/synk/internal/config"
	"github.com/synkhq/synk/internal/diagnosis"
	"github.com/synkhq/synk/internal/logging"
	"github.com/synkhq/synk/internal/oracle"
	"github.com/synkhq/synk/internal/router"
	"github.com/synkhq/synk/internal/state"
	"github.com/synkhq/synk/internal/storage"
	"github.com/synkhq/synk/internal/survey"
)

var (
	dataDir string
	port    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "synkd",
		Short: "Synk Daemon - your social practice companion",
		RunE:  runDaemon,
	}

	home, _ := os.UserHomeDir()
	defaultDataDir := filepath.Join(home, ".synk")

	rootCmd.Flags().StringVar(&dataDir, "data-dir", defaultDataDir, "Data directory")
	rootCmd.Flags().IntVar(&port, "port", 0, "HTTP server port (overrides config)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runDaemon(cmd *cobra.Command, args []string) error {
	fmt.Println("🚀 Starting Synk Daemon...")

	cfg, err := config.Load(filepath.Join(dataDir, "config.json"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.DataDir = dataDir
	if port != 0 {
		cfg.Server.Port = port
	}

	// Open database
	dbPath := filepath.Join(dataDir, "synk.db")
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	db, err := storage.Open(storage.Config{Path: dbPath})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	// Session state, rehydrated from the last run
	st := state.NewManager(storage.NewStateStore(db))

	// Connect to Gemini
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var client oracle.Client
	gemini, err := oracle.NewGemini(ctx, cfg.Gemini)
	switch {
	case err == nil:
		defer gemini.Close()
		client = gemini
		fmt.Println("✅ Gemini configured")
	case errors.Is(err, oracle.ErrNoAPIKey):
		client = oracle.Disabled{}
		fmt.Println("⚠️  GEMINI_API_KEY not set - AI features will be limited")
	default:
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Services
	nav := router.New(cfg.Auth)
	intake := survey.NewIntake()
	diagSvc := diagnosis.New(client, st)
	checkinSvc := checkin.New(client, st)
	chats := chat.NewManager(client, st)

	// Create and start API server
	server := api.New(api.Config{
		Host:      cfg.Server.Host,
		Port:      cfg.Server.Port,
		Router:    nav,
		State:     st,
		Intake:    intake,
		Diagnosis: diagSvc,
		Checkin:   checkinSvc,
		Chats:     chats,
	})

	// Handle shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh

		fmt.Println("\n🛑 Shutting down...")
		server.Stop(context.Background())
		cancel()
	}()

	// Start server (blocks)
	fmt.Printf("🌐 Open http://%s:%d in your browser\n", cfg.Server.Host, cfg.Server.Port)
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	logging.Info("Synk daemon stopped")
	return nil
}
