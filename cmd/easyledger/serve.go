package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/SscSPs/easyledger/internal/adapters/email"
	"github.com/SscSPs/easyledger/internal/adapters/export"
	"github.com/SscSPs/easyledger/internal/adapters/extraction"
	"github.com/SscSPs/easyledger/internal/adapters/pdfdoc"
	"github.com/SscSPs/easyledger/internal/core/services"
	"github.com/SscSPs/easyledger/internal/handlers"
	"github.com/SscSPs/easyledger/internal/middleware"
	"github.com/SscSPs/easyledger/internal/platform/config"
	"github.com/SscSPs/easyledger/internal/platform/ratelimit"
	"github.com/SscSPs/easyledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/easyledger/internal/utils"
	"github.com/SscSPs/easyledger/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var skipMigrations bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Start the HTTP API. Pending migrations are applied first unless
--skip-migrations is given.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "Do not apply pending migrations on startup")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := openPool(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer database.ClosePgxPool(dbPool)

	if !skipMigrations {
		logger.Info("Running database migrations...")
		if err := database.RunMigrations(logger, cfg.DatabaseURL, cfg.MigrationsPath, database.MigrateUp); err != nil {
			return err
		}
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	rl, err := ratelimit.NewLimiter(logger, cfg.RateLimit, cfg.RedisURL)
	if err != nil {
		return err
	}

	gw, err := buildGateways(cfg, logger)
	if err != nil {
		return err
	}
	container := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(dbPool), gw)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(cfg),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.PosthogMiddleware(posthogClient))

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	handlers.RegisterRoutes(r, cfg, container, rl)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed to run: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func allowedOrigins(cfg *config.Config) []string {
	origins := []string{}
	for _, o := range strings.Split(cfg.FrontendBaseURL, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, strings.TrimRight(o, "/"))
		}
	}
	if len(origins) == 0 {
		origins = append(origins, "http://localhost:3000")
	}
	return origins
}

// buildGateways wires the outbound adapters. Features whose provider is not
// configured are left nil so the services report them as unavailable.
func buildGateways(cfg *config.Config, logger *slog.Logger) (services.Gateways, error) {
	gw := services.Gateways{
		PDFText:  pdfdoc.NewTextExtractor(),
		Renderer: pdfdoc.NewFPDFRenderer(),
		Exporter: export.NewXLSXExporter(),
	}

	if cfg.OpenAIAPIKey != "" {
		extractor, err := extraction.NewOpenAIExtractor(extraction.Config{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
		})
		if err != nil {
			return gw, fmt.Errorf("failed to configure document extraction: %w", err)
		}
		gw.Extractor = extractor
	} else {
		logger.Warn("Document extraction disabled, OPENAI_API_KEY not set")
	}

	if cfg.ResendAPIKey != "" {
		gw.Mailer = email.NewResendMailer(cfg.ResendAPIKey)
	} else {
		logger.Warn("Invoice email disabled, RESEND_API_KEY not set")
	}

	return gw, nil
}
