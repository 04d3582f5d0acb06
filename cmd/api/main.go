package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/kofiannan/biztrack-api/internal/application/achievements"
	"github.com/kofiannan/biztrack-api/internal/application/auth"
	"github.com/kofiannan/biztrack-api/internal/application/costing"
	"github.com/kofiannan/biztrack-api/internal/application/expenses"
	"github.com/kofiannan/biztrack-api/internal/application/inventory"
	"github.com/kofiannan/biztrack-api/internal/application/ledger"
	"github.com/kofiannan/biztrack-api/internal/application/reminders"
	"github.com/kofiannan/biztrack-api/internal/application/summary"
	"github.com/kofiannan/biztrack-api/internal/application/tips"
	"github.com/kofiannan/biztrack-api/internal/application/trust"
	"github.com/kofiannan/biztrack-api/internal/infrastructure/cache"
	"github.com/kofiannan/biztrack-api/internal/infrastructure/postgres"
	httpRouter "github.com/kofiannan/biztrack-api/internal/interfaces/http"
	"github.com/kofiannan/biztrack-api/pkg/config"
	"github.com/kofiannan/biztrack-api/pkg/logger"
	"github.com/kofiannan/biztrack-api/pkg/refresh"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	businessRepo := postgres.NewBusinessRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	reminderRepo := postgres.NewReminderRepository(pool)
	achievementRepo := postgres.NewAchievementRepository(pool)
	trustRepo := postgres.NewTrustRepository(pool)
	snapshotRepo := postgres.NewSnapshotRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Refresh bus: every write path publishes, read-side caches invalidate.
	bus := refresh.NewBus()

	// Trust score cache; a missing redis degrades to no caching.
	var scoreCache trust.ScoreCache = trust.NoopScoreCache{}
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, trust-score caching disabled")
		} else {
			defer redisCache.Close()
			scoreCache = redisCache
		}
	}

	authUC := auth.NewUseCase(userRepo, businessRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := inventory.NewProductUseCase(productRepo, businessRepo)
	saleReader := ledger.NewReader(saleRepo)
	recordSaleUC := ledger.NewRecordSaleUseCase(txRunner, productRepo, businessRepo, bus)
	reverseSaleUC := ledger.NewReverseSaleUseCase(txRunner, saleRepo, productRepo, bus)
	receiveStockUC := inventory.NewReceiveStockUseCase(txRunner, productRepo, bus)
	recordMovementUC := inventory.NewRecordMovementUseCase(txRunner, productRepo, bus)
	reconciler := inventory.NewReconciler(productRepo, inventoryRepo, log)
	costingEngine := costing.NewEngine(productRepo, inventoryRepo, saleRepo)
	expenseUC := expenses.NewUseCase(expenseRepo, bus)
	summaryCalc := summary.NewCalculator(saleRepo, inventoryRepo, expenseRepo, snapshotRepo, log)
	tipPrioritizer := tips.NewPrioritizer(saleRepo, productRepo)
	trustEval := trust.NewEvaluator(trustRepo, scoreCache, bus)
	achievementUC := achievements.NewEvaluator(businessRepo, achievementRepo, saleRepo, reminderRepo, log)
	reminderUC := reminders.NewUseCase(reminderRepo, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ProductUC:      productUC,
		SaleReader:     saleReader,
		RecordSale:     recordSaleUC,
		ReverseSale:    reverseSaleUC,
		ReceiveStock:   receiveStockUC,
		RecordMovement: recordMovementUC,
		Reconciler:     reconciler,
		CostingEngine:  costingEngine,
		ExpenseUC:      expenseUC,
		SummaryCalc:    summaryCalc,
		TipPrioritizer: tipPrioritizer,
		TrustEval:      trustEval,
		AchievementUC:  achievementUC,
		ReminderUC:     reminderUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	// Background scan that flips due reminders to notified.
	scanCtx, stopScan := context.WithCancel(ctx)
	defer stopScan()
	go runReminderScan(scanCtx, reminderUC, log)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}

// runReminderScan marks reminders due within the next hour as notified,
// once per reminder. Delivery itself is handled by the clients polling
// the reminders endpoint.
func runReminderScan(ctx context.Context, uc *reminders.UseCase, log *logger.Logger) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			due, err := uc.ScanDue(ctx, now.UTC(), time.Hour)
			if err != nil {
				log.Warn().Err(err).Msg("reminder scan failed")
				continue
			}
			if len(due) > 0 {
				log.Info().Int("count", len(due)).Msg("reminders due")
			}
		}
	}
}
