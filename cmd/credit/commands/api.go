package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/creditlens/internal/api"
	"github.com/wonny/creditlens/internal/api/handlers"
	"github.com/wonny/creditlens/pkg/logger"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the REST + websocket API server.

Endpoints:
  GET  /health                   - Health check
  POST /api/assessments          - Full assessment of one year
  POST /api/assessments/years    - Assessment of several years
  POST /api/validation           - Data-quality report
  POST /api/loan/schedule        - Amortization + repayment health
  POST /api/cad/assessments      - CAD facility score
  GET  /ws/loan                  - Loan what-if session

Example:
  go run ./cmd/credit api
  go run ./cmd/credit api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (default $PORT or 8080)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== CreditLens API Server ===")

	// 1. Load config
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Override port if flag is set
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port":          cfg.Port,
		"env":           cfg.Env,
		"cache_enabled": cfg.Cache.Enabled,
	}).Info("Initializing API server")

	// 3. Create assessment service
	service, err := newService(cfg, log)
	if err != nil {
		return fmt.Errorf("create assessment service: %w", err)
	}
	log.WithField("config_hash", service.ConfigHash()).Info("Scoring tables ready")

	// 4. Create handlers + router
	router := api.NewRouter(
		handlers.NewAssessmentHandler(service, log),
		handlers.NewLoanSocket(service, log),
		api.RateLimit{PerSecond: cfg.API.RateLimit, Burst: cfg.API.RateBurst},
		log,
	)

	// 5. Create server
	server := api.New(cfg, log, router)

	// 6. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
