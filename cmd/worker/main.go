package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/itjpay/billing-dashboard/config"
	"github.com/itjpay/billing-dashboard/internal/bootstrap"
	"github.com/itjpay/billing-dashboard/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:           "worker",
	Short:         "Batch jobs for the billing dashboard",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// app holds what every command needs; close releases the stores.
type app struct {
	cfg      *config.Config
	stores   *bootstrap.Stores
	services *bootstrap.Services
}

func (rt *app) close() { rt.stores.Close() }

// requirePersistent refuses commands whose writes would vanish with the process.
func requirePersistent(cfg *config.Config, name string) error {
	if cfg.Storage.Driver != config.StoragePostgres {
		return fmt.Errorf("%s needs STORAGE_DRIVER=%s; %s storage is discarded on exit", name, config.StoragePostgres, cfg.Storage.Driver)
	}
	return nil
}

func setup(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logging.SetLevel(cfg.App.LogLevel)

	st, err := bootstrap.BuildStores(ctx, cfg)
	if err != nil {
		return nil, err
	}
	svc, err := bootstrap.BuildServices(ctx, cfg, st)
	if err != nil {
		st.Close()
		return nil, err
	}
	if err := svc.Start(ctx, st); err != nil {
		st.Close()
		return nil, err
	}
	return &app{cfg: cfg, stores: st, services: svc}, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.AddCommand(importClientsCmd(), exportPaymentsCmd(), weeklyReportCmd(), scheduleCmd(), seedCmd())
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
