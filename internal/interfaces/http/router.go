package http

import (
	"github.com/gofiber/fiber/v2"

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
)

// RouterDeps carries everything the router wires into handlers.
type RouterDeps struct {
	AuthUC         *auth.UseCase
	ProductUC      *inventory.ProductUseCase
	SaleReader     *ledger.Reader
	RecordSale     *ledger.RecordSaleUseCase
	ReverseSale    *ledger.ReverseSaleUseCase
	ReceiveStock   *inventory.ReceiveStockUseCase
	RecordMovement *inventory.RecordMovementUseCase
	Reconciler     *inventory.Reconciler
	CostingEngine  *costing.Engine
	ExpenseUC      *expenses.UseCase
	SummaryCalc    *summary.Calculator
	TipPrioritizer *tips.Prioritizer
	TrustEval      *trust.Evaluator
	AchievementUC  *achievements.Evaluator
	ReminderUC     *reminders.UseCase
	JWTSecret      string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Protected routes (Bearer token required)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Business profile
	business := protected.Group("/business")
	business.Post("/", authHandler.CreateBusiness)
	business.Get("/", authHandler.GetBusiness)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)

	// Sales ledger
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleReader, deps.RecordSale, deps.ReverseSale)
	sales.Post("/", saleHandler.Record)
	sales.Get("/", saleHandler.List)
	sales.Post("/:id/reverse", saleHandler.Reverse)

	// Inventory
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.ReceiveStock, deps.RecordMovement, deps.Reconciler, deps.CostingEngine)
	invGroup.Post("/receipts", inventoryHandler.ReceiveStock)
	invGroup.Post("/movements", inventoryHandler.RecordMovement)
	invGroup.Get("/stock-report", inventoryHandler.StockReport)
	invGroup.Post("/reconcile", inventoryHandler.Reconcile)

	// Expenses
	expGroup := protected.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expGroup.Post("/", expenseHandler.Record)
	expGroup.Get("/", expenseHandler.List)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.SummaryCalc, deps.TipPrioritizer, deps.TrustEval, deps.AuthUC, deps.AchievementUC)
	protected.Get("/summary", dashboardHandler.Summary)
	protected.Get("/dashboard", dashboardHandler.Home)

	// Market tips
	tipHandler := NewTipHandler(deps.TipPrioritizer)
	protected.Get("/tips", tipHandler.List)

	// Trust score
	trustHandler := NewTrustHandler(deps.AuthUC, deps.TrustEval)
	protected.Get("/trust-score", trustHandler.Score)

	// Achievements
	achGroup := protected.Group("/achievements")
	achievementHandler := NewAchievementHandler(deps.AchievementUC)
	achGroup.Get("/", achievementHandler.List)
	achGroup.Post("/evaluate", achievementHandler.Evaluate)

	// Reminders
	remGroup := protected.Group("/reminders")
	reminderHandler := NewReminderHandler(deps.ReminderUC)
	remGroup.Post("/", reminderHandler.Create)
	remGroup.Get("/", reminderHandler.List)
	remGroup.Patch("/:id/completed", reminderHandler.SetCompleted)
}
