// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"barcode-inventory/cache"
	"barcode-inventory/config"
	"barcode-inventory/controllers"
	"barcode-inventory/events"
	"barcode-inventory/history"
	"barcode-inventory/lookup"
	"barcode-inventory/routes"
	"barcode-inventory/service"
	"barcode-inventory/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application failed: %v", err)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Stock history log: CSV file by default, SQLite when configured.
	var historyLog history.Log
	switch cfg.HistoryBackend {
	case config.HistoryBackendSQLite:
		db, err := config.OpenHistoryDB(cfg.HistoryDB)
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer db.Close()
		historyLog = history.NewSQLLog(db)
		log.Printf("Stock history stored in %s", cfg.HistoryDB)
	default:
		historyLog = history.NewFileLog(cfg.HistoryFile)
		log.Printf("Stock history stored in %s", cfg.HistoryFile)
	}

	// Optional Redis cache for barcode lookups.
	var lookupCache lookup.Cache
	if cfg.RedisAddr != "" {
		redisClient, err := cache.NewRedisClient(cfg.RedisAddr, cfg.LookupCacheTTL)
		if err != nil {
			log.Printf("Barcode lookup cache disabled: %v", err)
		} else {
			defer redisClient.Close()
			lookupCache = redisClient
		}
	}

	publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer publisher.Close()

	inventoryService := service.NewInventoryService(
		store.NewInventoryStore(cfg.InventoryFile),
		store.NewOrderStore(cfg.OrdersFile),
		historyLog,
		publisher,
	)
	lookupClient := lookup.NewDefaultClient(cfg.OpenFoodFactsURL, cfg.UPCItemDBURL, cfg.LookupTimeout, lookupCache)
	h := controllers.NewHandler(inventoryService, lookupClient, cfg.UploadDir)

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	router := gin.Default()

	routes.RegisterRoutes(router, h)
	router.Static("/static", cfg.StaticDir)
	router.Static("/uploads", cfg.UploadDir)
	router.StaticFile("/", cfg.StaticDir+"/index.html")

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      corsHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Starting server on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to run server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("Server exited gracefully")
	return nil
}
