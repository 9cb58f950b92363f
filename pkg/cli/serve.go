package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/drover-ci/drover/pkg/cli/config"
	controller "github.com/drover-ci/drover/pkg/controller/http"
	githubinfra "github.com/drover-ci/drover/pkg/infra/github"
	"github.com/drover-ci/drover/pkg/infra/jenkins"
	"github.com/drover-ci/drover/pkg/infra/memory"
	"github.com/drover-ci/drover/pkg/usecase"
)

func cmdServe() *cli.Command {
	var (
		serverCfg  config.Server
		githubCfg  config.GitHub
		jenkinsCfg config.Jenkins
	)

	flags := append(serverCfg.Flags(), githubCfg.Flags()...)
	flags = append(flags, jenkinsCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting drover server",
				slog.String("addr", serverCfg.Addr),
				slog.String("public_url", serverCfg.PublicURL),
				slog.String("jenkins_url", jenkinsCfg.BaseURL),
			)

			// Infrastructure: secrets live only for the process lifetime
			store := memory.NewSecretStore()
			githubClient := githubinfra.NewClient(githubCfg.Token, serverCfg.Timeout)
			buildTrigger := jenkins.NewClient(jenkinsCfg.BaseURL, jenkinsCfg.User, jenkinsCfg.APIToken, serverCfg.Timeout)

			// Use cases
			registrarUC := usecase.NewRegistrar(store, githubClient, buildTrigger, serverCfg.PublicURL)
			webhookUC := usecase.NewWebhook(store, buildTrigger)

			// Create HTTP server with options
			server, err := controller.NewServer(
				ctx,
				registrarUC,
				webhookUC,
				store,
				controller.WithAddr(serverCfg.Addr),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
