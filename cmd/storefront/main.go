package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	authapp "github.com/CristalT/elico-storefront/internal/auth/app"
	authremote "github.com/CristalT/elico-storefront/internal/auth/infra/remote"
	catalogapp "github.com/CristalT/elico-storefront/internal/catalog/app"
	catalogremote "github.com/CristalT/elico-storefront/internal/catalog/infra/remote"
	"github.com/CristalT/elico-storefront/internal/httpapi"
	"github.com/CristalT/elico-storefront/internal/session"
	"github.com/CristalT/elico-storefront/internal/settings"
	"github.com/CristalT/elico-storefront/pkg/commerce"
	"github.com/CristalT/elico-storefront/pkg/config"
	"github.com/CristalT/elico-storefront/pkg/localstore"
	"github.com/CristalT/elico-storefront/pkg/logger"
	"github.com/CristalT/elico-storefront/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service:   "storefront",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	root := context.Background()
	ctx, cancel := shutdown.WithSignals(root)
	defer cancel()

	store, err := localstore.Open(cfg.LocalStorePath)
	if err != nil {
		log.Error("local store open failed", slog.Any("err", err))
		return
	}
	defer store.Close()

	client := commerce.NewClient(cfg.CommerceAPIURL)
	catalog := catalogapp.NewService(catalogremote.NewGateway(client))
	auth := authapp.NewService(authremote.NewGateway(client))
	st := settings.NewService(client)

	registry := session.NewRegistry(store, client, catalog, log, cfg.SessionTTL)

	api := httpapi.New(registry, catalog, auth, st, log)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           api.Router(cfg.CORSAllowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				registry.Sweep(ctx)
			}
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	wg.Wait()
	log.Info("bye")
}
