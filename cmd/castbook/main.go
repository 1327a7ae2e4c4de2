package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/castbooklabs/castbook/internal/clock"
	"github.com/castbooklabs/castbook/internal/config"
	"github.com/castbooklabs/castbook/internal/migration"
	"github.com/castbooklabs/castbook/internal/observability"
	"github.com/castbooklabs/castbook/internal/payment"
	"github.com/castbooklabs/castbook/internal/pricing"
	"github.com/castbooklabs/castbook/internal/server"
	"github.com/castbooklabs/castbook/internal/talent"
	"github.com/castbooklabs/castbook/pkg/db"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "castbook",
		Short:   "Castbook talent pricing service",
		Version: readVersionFromEnv(),
	}
	root.AddCommand(newMigrateCmd(), newServeCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate()
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the pricing API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			runServe()
			return nil
		},
	}
}

func runMigrate() error {
	app := fx.New(
		config.Module,
		observability.Module,
		db.Module,
		migration.Module,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("migrate failed: %w", err)
	}
	_ = app.Stop(context.Background())
	return nil
}

func runServe() {
	app := fx.New(
		config.Module,
		observability.Module,
		db.Module,
		clock.Module,
		talent.Module,
		payment.Module,
		pricing.Module,
		server.Module,
	)
	app.Run()
}

func readVersionFromEnv() string {
	if v := strings.TrimSpace(os.Getenv("APP_VERSION")); v != "" {
		return v
	}
	return "dev"
}
