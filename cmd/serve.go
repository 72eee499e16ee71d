package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/firmsite/site-api/api"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the Firm Site API server with the configured settings.

The server proxies the headless CMS, answers search requests, manages the
language cookie and accepts newsletter subscriptions.

Example:
  site-api serve
  site-api serve --port 9090
  site-api serve --host 127.0.0.1 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serverHost
	}
	if cmd.Flags().Changed("port") {
		if serverPort < 0 || serverPort > 65535 {
			return fmt.Errorf("invalid server port: %d", serverPort)
		}
		cfg.Server.Port = serverPort
	}

	if cfg.Environment == "production" || cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, cleanup, err := buildDependencies(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	go deps.HeroRotator.Run(ctx)

	if deps.Scheduler != nil {
		deps.Scheduler.Start()
		defer deps.Scheduler.Stop(context.Background())
		// Warm the cache in the background so startup does not wait on the CMS
		go func() {
			if err := deps.Scheduler.RunOnce(ctx); err != nil {
				log.Warn().Err(err).Msg("initial cache warm-up failed")
			}
		}()
	}

	server := api.NewServer(cfg)
	server.SetDependencies(deps)
	if err := server.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	log.Info().Str("addr", server.Addr()).Msg("server is ready to handle requests")

	var runErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server")
	case runErr = <-serverErr:
		log.Error().Err(runErr).Msg("shutting down server")
	}

	timeout := cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	log.Info().Msg("server gracefully stopped")
	return runErr
}
