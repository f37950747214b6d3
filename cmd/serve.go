package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/papersmith/papersmith/internal/httpapi"
	"github.com/papersmith/papersmith/internal/llm"
	"github.com/papersmith/papersmith/internal/paper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP service",
	Long: `Starts the HTTP service:

  GET  /                    liveness text
  GET  /healthz             {"status":"UP"}
  POST /generate-questions  {syllabusText, subjectName} -> question paper`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration, refusing to start",
			zap.String("config_file", cfg.File),
			zap.Error(err),
		)
		return err
	}

	logger.Info("starting papersmith",
		zap.String("version", buildVersion()),
		zap.String("config_file", cfg.File),
		zap.Int("port", cfg.Server.Port),
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.ProviderModel()),
		zap.Duration("timeout", cfg.LLM.Timeout),
		zap.Int("max_retries", cfg.LLM.Retry.MaxRetries),
		zap.Bool("structured_output", cfg.LLM.StructuredOutput),
		zap.Int("min_syllabus_length", cfg.Paper.MinSyllabusLength),
	)

	repo, closeLedger, err := openLedger()
	if err != nil {
		return err
	}
	defer closeLedger()

	provider, err := llm.NewProvider(ctx, cfg.LLM, logger.Named("llm"), repo)
	if err != nil {
		logger.Error("LLM provider not configured", zap.Error(err))
		return err
	}

	gen := paper.New(provider, cfg.PaperConfig(), logger.Named("paper"))

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpapi.NewRouter(
		httpapi.NewHandler(gen, logger.Named("http")),
		httpapi.RouterOptions{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		},
		logger.Named("http"),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("backend running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", zap.Duration("grace", cfg.Server.ShutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
