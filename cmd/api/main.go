package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/itjpay/billing-dashboard/config"
	"github.com/itjpay/billing-dashboard/internal/auth"
	authmw "github.com/itjpay/billing-dashboard/internal/auth/middleware"
	"github.com/itjpay/billing-dashboard/internal/bootstrap"
	"github.com/itjpay/billing-dashboard/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logging.SetLevel(cfg.App.LogLevel)
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := bootstrap.BuildStores(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open stores: %v", err)
	}
	defer stores.Close()

	services, err := bootstrap.BuildServices(ctx, cfg, stores)
	if err != nil {
		log.Fatalf("failed to build services: %v", err)
	}
	if err := services.Start(ctx, stores); err != nil {
		log.Fatalf("failed to start event relay: %v", err)
	}

	var verifier authmw.TokenVerifier
	if cfg.Firebase.CredentialsPath != "" {
		client, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
		if err != nil {
			log.Fatalf("failed to initialize firebase: %v", err)
		}
		verifier = client
	} else {
		log.Println("FIREBASE_CREDENTIALS_PATH not set, admin API runs as the demo admin")
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:   cfg.App.ServiceName,
		Version:       cfg.App.Version,
		CORSOrigins:   cfg.Server.CORSOrigins,
		Stores:        stores,
		Services:      services,
		TokenVerifier: verifier,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("%s listening on :%s (storage=%s)", cfg.App.ServiceName, cfg.Server.Port, cfg.Storage.Driver)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
		log.Println("server stopped")
	}
}
