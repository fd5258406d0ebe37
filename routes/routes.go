package routes

import (
	"madrasha_go/controllers"
	"madrasha_go/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all application routes
func SetupRoutes(app *fiber.App) {
	// Initialize controllers
	authController := &controllers.AuthController{}
	assistantController := &controllers.AssistantController{}
	accountingController := &controllers.AccountingController{}
	expenseController := &controllers.ExpenseController{}
	batchController := &controllers.BatchController{}
	feeController := &controllers.FeeController{}

	// API group
	api := app.Group("/api")

	// Authentication routes (no middleware)
	auth := api.Group("/auth")
	auth.Post("/login", authController.Login)

	// Protected routes (require authentication)
	protected := api.Group("/", middleware.JWTMiddleware())

	// Profile routes (authenticated users)
	protected.Get("/profile", authController.GetProfile)
	protected.Put("/profile/password", authController.ChangePassword)
	protected.Post("/auth/logout", authController.Logout)

	// Assistant teacher management (super_user and teacher only)
	assistants := protected.Group("/assistant-teachers", middleware.RequireCapability(middleware.CapManageAssistantAccounts))
	assistants.Get("/", assistantController.GetAssistants)
	assistants.Post("/", assistantController.CreateAssistant)
	assistants.Put("/:id", assistantController.UpdateAssistant)
	assistants.Delete("/:id", assistantController.ArchiveAssistant)
	assistants.Post("/:id/toggle-status", assistantController.ToggleStatus)

	// Legacy alias kept for existing clients; same handlers, same guard
	legacy := protected.Group("/junior-ustads", middleware.RequireCapability(middleware.CapManageAssistantAccounts))
	legacy.Get("/", assistantController.GetAssistants)
	legacy.Post("/", assistantController.CreateAssistant)
	legacy.Put("/:id", assistantController.UpdateAssistant)
	legacy.Delete("/:id", assistantController.ArchiveAssistant)
	legacy.Post("/:id/toggle-status", assistantController.ToggleStatus)

	// Accounting routes (super_user and teacher only)
	accounting := protected.Group("/accounting", middleware.RequireCapability(middleware.CapViewAccounting))
	accounting.Get("/income-summary", accountingController.GetIncomeSummary)
	accounting.Get("/summary", accountingController.GetSummary)
	accounting.Get("/categories", accountingController.GetCategories)
	accounting.Get("/expenses", expenseController.GetExpenses)
	accounting.Get("/expenses/export", expenseController.ExportExpenses)
	accounting.Post("/expenses", expenseController.CreateExpense)
	accounting.Put("/expenses/:id", expenseController.UpdateExpense)
	accounting.Delete("/expenses/:id", expenseController.DeleteExpense)
	accounting.Post("/expenses/:id/receipt", expenseController.UploadReceipt)

	// Batch management routes
	batches := protected.Group("/batches", middleware.RequireStaff())
	batches.Get("/", batchController.GetBatches)
	batches.Get("/:id", batchController.GetBatch)
	batches.Post("/", batchController.CreateBatch)
	batches.Put("/:id", batchController.UpdateBatch)
	batches.Delete("/:id", batchController.DeleteBatch)
	batches.Post("/:id/enroll", batchController.EnrollStudent)

	// Fee management routes
	fees := protected.Group("/fees", middleware.RequireCapability(middleware.CapViewAccounting))
	fees.Get("/", feeController.GetFees)
	fees.Post("/generate", feeController.GenerateFees)
	fees.Post("/:id/pay", feeController.PayFee)
	fees.Post("/:id/mark-overdue", feeController.MarkOverdue)
}
