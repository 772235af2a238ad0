package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/service-booking/cache"
	"github.com/yeremiapane/service-booking/config"
	"github.com/yeremiapane/service-booking/database"
	"github.com/yeremiapane/service-booking/mq"
	"github.com/yeremiapane/service-booking/router"
	"github.com/yeremiapane/service-booking/services"
	"github.com/yeremiapane/service-booking/telemetry"
	"github.com/yeremiapane/service-booking/utils"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"gorm.io/gorm"
)

const serviceName = "service-booking"

func main() {
	utils.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load config: %v", err)
	}
	if err := utils.ConfigureLogger(cfg.LogLevel, cfg.LogFormat); err != nil {
		utils.ErrorLogger.Fatalf("Failed to configure logger: %v", err)
	}

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	shutdownTracing := telemetry.Setup(serviceName, cfg.OTELEndpoint, cfg.OTELInsecure)

	// Initialize DB
	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}

	if cfg.AdminEmail != "" {
		if err := database.SeedAdmin(db, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			utils.ErrorLogger.Printf("Error seeding admin: %v", err)
		}
	}

	store, janitor := setupCache(cfg, db)
	if janitor != nil {
		janitor.Start()
		defer janitor.Stop()
	}

	dispatcher, closeMailer := setupNotifier(cfg)
	dispatcher.Start()
	defer closeMailer()
	defer dispatcher.Stop()

	r := router.SetupRouter(router.Dependencies{
		DB:                  db,
		Cache:               store,
		CacheTTL:            cfg.CacheTTL(),
		Notifier:            dispatcher,
		Mailbox:             cfg.NotifyMailbox,
		Tokens:              utils.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL()),
		AppURL:              cfg.AppURL,
		CORSOrigin:          cfg.CORSOrigin,
		PublicRatePerMinute: cfg.PublicRatePerMinute,
		AdminRatePerMinute:  cfg.AdminRatePerMinute,
		LoginRatePerMinute:  cfg.LoginRatePerMinute,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(r, serviceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.InfoLogger.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.ErrorLogger.Printf("Server forced to shutdown: %v", err)
	}
	if err := shutdownTracing(ctx); err != nil {
		utils.ErrorLogger.Printf("Error shutting down tracer: %v", err)
	}
}

// setupCache returns a nil store for CACHE_DRIVER=none; every read then goes
// straight to the database.
func setupCache(cfg *config.Config, db *gorm.DB) (cache.Store, *cache.Janitor) {
	switch cfg.CacheDriver {
	case "memory":
		store := cache.NewMemoryStore()
		return store, cache.NewJanitor(store, cfg.CacheSweepInterval())
	case "database":
		store := cache.NewDatabaseStore(db)
		return store, cache.NewJanitor(store, cfg.CacheSweepInterval())
	default:
		utils.InfoLogger.Println("Cache disabled")
		return nil, nil
	}
}

// setupNotifier falls back to the log mailer when the broker is unreachable so
// booking creation never depends on it.
func setupNotifier(cfg *config.Config) (*services.NotificationDispatcher, func()) {
	var mailer services.Mailer = services.LogMailer{}
	closeFn := func() {}

	if cfg.NotifyDriver == "amqp" {
		publisher, err := mq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			utils.ErrorLogger.Printf("AMQP unavailable, falling back to log mailer: %v", err)
		} else {
			mailer = services.QueueMailer{Publisher: publisher, RoutingKey: cfg.AMQPRoutingKey}
			closeFn = func() {
				if err := publisher.Close(); err != nil {
					utils.ErrorLogger.Printf("Error closing AMQP publisher: %v", err)
				}
			}
		}
	}

	dispatcher := services.NewNotificationDispatcher(mailer, cfg.NotifyBuffer)
	dispatcher.MaxAttempts = cfg.NotifyMaxAttempts
	return dispatcher, closeFn
}
