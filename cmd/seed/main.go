// Command seed fills the database with an admin account, one service per
// category and a batch of fake pending bookings.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/yeremiapane/service-booking/config"
	"github.com/yeremiapane/service-booking/database"
	"github.com/yeremiapane/service-booking/utils"
)

func main() {
	total := flag.Int("bookings", 1000000, "number of bookings to generate")
	chunk := flag.Int("chunk", 5000, "bookings per insert job")
	workers := flag.Int("workers", 4, "concurrent insert workers")
	skipAdmin := flag.Bool("skip-admin", false, "do not create the admin account")
	flag.Parse()

	utils.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load config: %v", err)
	}
	if err := utils.ConfigureLogger(cfg.LogLevel, cfg.LogFormat); err != nil {
		utils.ErrorLogger.Fatalf("Failed to configure logger: %v", err)
	}
	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}

	if !*skipAdmin {
		email, password := cfg.AdminEmail, cfg.AdminPassword
		if email == "" {
			email, password = "admin@admin.com", "123456"
		}
		if err := database.SeedAdmin(db, cfg.AdminName, email, password); err != nil {
			utils.ErrorLogger.Fatalf("Error seeding admin: %v", err)
		}
	}

	if _, err := database.SeedServices(db); err != nil {
		utils.ErrorLogger.Fatalf("Error seeding services: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	inserted, err := database.SeedBookings(ctx, db, database.BookingSeedOptions{
		Total:   *total,
		Chunk:   *chunk,
		Workers: *workers,
	})
	if err != nil {
		utils.ErrorLogger.Fatalf("Error seeding bookings after %d rows: %v", inserted, err)
	}
	utils.InfoLogger.Printf("Successfully seeded %d bookings.", inserted)
}
