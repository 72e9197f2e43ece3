package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"rental-dashboard-backend/config"
	"rental-dashboard-backend/internal/backend"
	"rental-dashboard-backend/internal/db"
	"rental-dashboard-backend/internal/notify"
	"rental-dashboard-backend/internal/session"
	"rental-dashboard-backend/internal/store"
	"rental-dashboard-backend/internal/web"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "rental-dashboard ", log.LstdFlags)

	// A .env file is optional; deployments set real environment variables.
	if err := godotenv.Load(); err == nil {
		logger.Println("loaded environment overrides from .env")
	}

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	if cfg.Backend.BaseURL == "" {
		logger.Fatalf("backend.base_url must be configured (or set BACKEND_BASE_URL)")
	}

	// Session store plays the browser cookie's role: the backend client
	// reads its token on every request.
	sessions := session.NewStore(cfg.Session.PrimaryPath, cfg.Session.FallbackPath, cfg.Session.TTL)

	client := backend.NewClient(
		cfg.Backend.BaseURL,
		cfg.Backend.Timeout,
		cfg.Backend.RatePerSec,
		cfg.Backend.RateBurst,
		sessions,
	)

	authAPI := backend.NewAuthAPI(client)
	adminAPI := backend.NewAdminAPI(client)
	jenisAPI := backend.NewJenisMotorAPI(client)
	unitAPI := backend.NewUnitMotorAPI(client)
	transaksiAPI := backend.NewTransaksiAPI(client)
	blogAPI := backend.NewBlogAPI(client)
	waAPI := backend.NewWhatsAppAPI(client)

	admins := store.NewAdminStore(adminAPI)
	jenis := store.NewJenisMotorStore(jenisAPI)
	units := store.NewUnitMotorStore(unitAPI)
	transaksi := store.NewTransaksiStore(transaksiAPI)
	blog := store.NewBlogStore(blogAPI)
	whatsapp := store.NewWhatsAppStore(waAPI, cfg.WhatsApp.PollInterval, cfg.WhatsApp.PollAttempts)

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Push notifications are optional: without VAPID keys the dashboard
	// still works, only the alert channel stays dark.
	var webpushOptions *webpush.Options
	if cfg.Push.PublicKey != "" && cfg.Push.PrivateKey != "" {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
	} else {
		logger.Println("VAPID keys not configured; push notifications disabled")
	}

	var database *gorm.DB
	if webpushOptions != nil {
		database, err = db.Init(&cfg.Database)
		if err != nil {
			logger.Fatalf("failed to initialize database: %v", err)
		}
		logger.Println("database initialized successfully")

		pool := notify.NewWorkerPool(cfg.Push.PoolSize, database, webpushOptions)
		pool.Start(ctx)

		if cfg.Watcher.Enabled {
			watcher := notify.NewWatcher(transaksiAPI, waAPI, pool, cfg.Watcher.Interval)
			go watcher.Run(ctx)
		}
	}

	handler := web.NewHandler(
		sessions,
		authAPI,
		waAPI,
		admins,
		jenis,
		units,
		transaksi,
		blog,
		whatsapp,
		database,
		webpushOptions,
	)

	router := web.NewRouter(cfg.Server, handler)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	// Create a deadline to wait for.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
