package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hostelops/backend/internal/infrastructure/config"
	"github.com/hostelops/backend/internal/infrastructure/logger"
	"github.com/hostelops/backend/internal/infrastructure/persistence"
	"github.com/hostelops/backend/internal/infrastructure/persistence/models"
)

func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Migrations log their SQL, unlike the server's silent connection.
	database, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormlogger.Info)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Warn("Failed to close database", zap.Error(err))
		}
	}()

	log.Info("Running schema migration",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName))

	err = database.DB.AutoMigrate(
		&models.HostelModel{},
		&models.RoomModel{},
		&models.TenantProfileModel{},
		&models.ExpenseCategoryModel{},
		&models.TenancyModel{},
		&models.RentChargeModel{},
		&models.BillModel{},
		&models.SharedUtilityChargeModel{},
		&models.PaymentModel{},
		&models.AllocationModel{},
	)
	if err != nil {
		log.Fatal("Schema migration failed", zap.Error(err))
	}

	log.Info("Schema migration completed")
}
