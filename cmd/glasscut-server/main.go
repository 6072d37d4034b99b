// GlassCut HTTP API.
//
// Environment:
//   PORT              listen port (default 8080)
//   ENV               "production" switches gin to release mode
//   GLASSCUT_DB_PATH  saved quotes database (default ~/.glasscut/quotes.db)
//   READ_TIMEOUT      seconds (default 10)
//   WRITE_TIMEOUT     seconds (default 30)

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

	"github.com/gin-gonic/gin"
	"github.com/piwi3910/GlassCut/internal/model"
	"github.com/piwi3910/GlassCut/internal/project"
	"github.com/piwi3910/GlassCut/internal/server"
)

func main() {
	cfg := server.LoadConfig()
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	appCfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		log.Fatalf("[SERVER] load settings: %v", err)
	}
	catalog, err := project.LoadCatalog(project.DefaultCatalogPath())
	if err != nil {
		log.Fatalf("[SERVER] load catalog: %v", err)
	}
	prices, err := project.LoadPriceList(project.DefaultPricesPath())
	if err != nil {
		log.Fatalf("[SERVER] load prices: %v", err)
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = project.DefaultStorePath()
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := project.OpenStore(ctx, dbPath)
	if err != nil {
		log.Fatalf("[SERVER] open db: %v", err)
	}
	defer store.Close()

	settings := model.DefaultSettings()
	appCfg.ApplyToSettings(&settings)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      server.New(settings, catalog, prices, store).Router(),
		ReadTimeout:  cfg.ReadTimeoutDuration(),
		WriteTimeout: cfg.WriteTimeoutDuration(),
	}

	go func() {
		log.Printf("[SERVER] Starting GlassCut API on %s (env: %s, db: %s)", srv.Addr, cfg.Environment, dbPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[SERVER] Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("[SERVER] Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[SERVER] Shutdown: %v", err)
	}
}
