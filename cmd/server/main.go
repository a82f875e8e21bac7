package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	billingapp "github.com/hostelops/backend/internal/application/billing"
	propertyapp "github.com/hostelops/backend/internal/application/property"
	"github.com/hostelops/backend/internal/infrastructure/audit"
	"github.com/hostelops/backend/internal/infrastructure/config"
	"github.com/hostelops/backend/internal/infrastructure/logger"
	"github.com/hostelops/backend/internal/infrastructure/persistence"
	"github.com/hostelops/backend/internal/infrastructure/scheduler"
	"github.com/hostelops/backend/internal/interfaces/http/handler"
	"github.com/hostelops/backend/internal/interfaces/http/middleware"
	"github.com/hostelops/backend/internal/interfaces/http/router"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

	database, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Warn("failed to close database", zap.Error(err))
		}
	}()

	db := database.DB

	// Repositories
	hostelRepo := persistence.NewGormHostelRepository(db)
	roomRepo := persistence.NewGormRoomRepository(db)
	tenantRepo := persistence.NewGormTenantProfileRepository(db)
	categoryRepo := persistence.NewGormExpenseCategoryRepository(db)
	tenancyRepo := persistence.NewGormTenancyRepository(db)
	rentChargeRepo := persistence.NewGormRentChargeRepository(db)
	billRepo := persistence.NewGormBillRepository(db)
	utilityRepo := persistence.NewGormUtilityChargeRepository(db)
	txScope := persistence.NewGormTransactionScope(db)

	auditLogger := audit.NewZapAuditLogger(log)

	// Application services
	hostelService := propertyapp.NewHostelService(hostelRepo, roomRepo, auditLogger, log)
	tenantService := propertyapp.NewTenantService(tenantRepo, tenancyRepo, auditLogger, log)
	categoryService := propertyapp.NewCategoryService(categoryRepo, log)

	tenancyService := billingapp.NewTenancyService(txScope, roomRepo, auditLogger, log)
	chargeService := billingapp.NewChargeService(txScope, categoryRepo, auditLogger, log)
	duesService := billingapp.NewDuesService(tenancyRepo, rentChargeRepo, billRepo, utilityRepo, log)
	allocationService := billingapp.NewAllocationService(tenancyRepo, rentChargeRepo, billRepo, log)
	paymentService := billingapp.NewPaymentService(txScope, auditLogger, log)
	rolloverService := billingapp.NewRolloverService(txScope, tenancyRepo, cfg.Billing.DueDay, auditLogger, log)

	// Rollover scheduler
	schedulerCfg := scheduler.DefaultRolloverSchedulerConfig()
	schedulerCfg.Enabled = cfg.Scheduler.Enabled
	if cfg.Scheduler.CheckInterval > 0 {
		schedulerCfg.CheckInterval = cfg.Scheduler.CheckInterval
	}
	rolloverScheduler := scheduler.NewRolloverScheduler(rolloverService, log, schedulerCfg)
	if err := rolloverScheduler.Start(context.Background()); err != nil {
		return fmt.Errorf("failed to start rollover scheduler: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := rolloverScheduler.Stop(stopCtx); err != nil {
			log.Warn("failed to stop rollover scheduler", zap.Error(err))
		}
	}()

	engine, err := buildEngine(cfg, log, db,
		hostelService, tenantService, categoryService,
		tenancyService, chargeService, duesService,
		allocationService, paymentService, rolloverService,
		rolloverScheduler)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}

func buildEngine(
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	hostelService *propertyapp.HostelService,
	tenantService *propertyapp.TenantService,
	categoryService *propertyapp.CategoryService,
	tenancyService *billingapp.TenancyService,
	chargeService *billingapp.ChargeService,
	duesService *billingapp.DuesService,
	allocationService *billingapp.AllocationService,
	paymentService *billingapp.PaymentService,
	rolloverService *billingapp.RolloverService,
	rolloverScheduler *scheduler.RolloverScheduler,
) (*gin.Engine, error) {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS())
	engine.Use(middleware.Actor())

	// Handlers
	systemHandler := handler.NewSystemHandler(db)
	hostelHandler := handler.NewHostelHandler(hostelService)
	tenantHandler := handler.NewTenantHandler(tenantService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	tenancyHandler := handler.NewTenancyHandler(tenancyService)
	chargeHandler := handler.NewChargeHandler(chargeService)
	duesHandler := handler.NewDuesHandler(duesService)
	paymentHandler := handler.NewPaymentHandler(paymentService, allocationService)
	rolloverHandler := handler.NewRolloverHandler(rolloverService, rolloverScheduler)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Property domain
	propertyRoutes := router.NewDomainGroup("property", "/property")
	propertyRoutes.POST("/hostels", hostelHandler.Create)
	propertyRoutes.GET("/hostels", hostelHandler.List)
	propertyRoutes.GET("/hostels/:id", hostelHandler.Get)
	propertyRoutes.PUT("/hostels/:id", hostelHandler.Update)
	propertyRoutes.DELETE("/hostels/:id", hostelHandler.Deactivate)
	propertyRoutes.GET("/hostels/:id/rooms", hostelHandler.ListRooms)
	propertyRoutes.POST("/rooms", hostelHandler.CreateRoom)
	propertyRoutes.PUT("/rooms/:id", hostelHandler.UpdateRoom)
	propertyRoutes.POST("/tenants", tenantHandler.Create)
	propertyRoutes.GET("/tenants", tenantHandler.List)
	propertyRoutes.GET("/tenants/:id", tenantHandler.Get)
	propertyRoutes.PUT("/tenants/:id", tenantHandler.Update)
	propertyRoutes.DELETE("/tenants/:id", tenantHandler.Deactivate)
	propertyRoutes.POST("/categories", categoryHandler.Create)
	propertyRoutes.GET("/categories", categoryHandler.List)
	propertyRoutes.PUT("/categories/:id", categoryHandler.Update)

	// Billing domain
	billingRoutes := router.NewDomainGroup("billing", "/billing")
	billingRoutes.POST("/tenancies", tenancyHandler.Create)
	billingRoutes.GET("/tenancies/:id", tenancyHandler.Get)
	billingRoutes.POST("/tenancies/:id/end", tenancyHandler.End)
	billingRoutes.POST("/tenancies/:id/balance-correction", tenancyHandler.CorrectBalance)
	billingRoutes.PUT("/tenancies/:id/utility-override", tenancyHandler.SetUtilityOverride)
	billingRoutes.GET("/tenants/:id/tenancies", tenancyHandler.ListByTenant)
	billingRoutes.GET("/tenants/:id/dues", duesHandler.GetOutstanding)
	billingRoutes.GET("/tenants/:id/balance", duesHandler.GetBalance)
	billingRoutes.GET("/tenants/:id/payments", paymentHandler.ListByTenant)
	billingRoutes.POST("/bills", chargeHandler.CreateBill)
	billingRoutes.POST("/utility-charges", chargeHandler.CreateUtilityCharge)
	billingRoutes.POST("/payments", paymentHandler.Create)
	billingRoutes.GET("/payments/:id", paymentHandler.Get)
	billingRoutes.POST("/payments/suggest-allocation", paymentHandler.SuggestAllocation)

	// Admin operations
	adminRoutes := router.NewDomainGroup("admin", "/admin")
	adminRoutes.POST("/rollover", rolloverHandler.Run)
	adminRoutes.GET("/rollover/scheduler", rolloverHandler.SchedulerStatus)
	adminRoutes.POST("/rollover/scheduler/trigger", rolloverHandler.TriggerScheduler)

	// System endpoints
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/health", systemHandler.Health)

	r.Register(propertyRoutes).
		Register(billingRoutes).
		Register(adminRoutes).
		Register(systemRoutes)
	r.Setup()

	engine.GET("/health", systemHandler.Health)

	return engine, nil
}
