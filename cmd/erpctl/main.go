// Command erpctl runs one-off operator tasks against the ERP database:
// seeding, creating the first administrator and warming report caches.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/garments-erp/backend/internal/bootstrap"
	"github.com/garments-erp/backend/internal/infrastructure/config"
	"github.com/garments-erp/backend/internal/infrastructure/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

type globalFlags struct {
	logLevel string
}

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "erpctl",
		Short:         "Operator tasks for the garments ERP backend",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newSeedCommand(flags),
		newCreateAdminCommand(flags),
		newCacheCommand(flags),
	)
	return root
}

// withContainer loads configuration, builds the service container and hands it to fn
func withContainer(ctx context.Context, flags *globalFlags, fn func(*bootstrap.Container) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	log, err := logger.New(logger.ForEnvironment(cfg.App.Env, flags.logLevel, "console", "stderr"))
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	c, err := bootstrap.Build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(context.Background()); err != nil {
			log.Warn("error releasing resources", zap.Error(err))
		}
	}()

	return fn(c)
}
