package router

import (
	"github.com/bruno-duarte/afinpe-api/internal/config"
	"github.com/bruno-duarte/afinpe-api/internal/handler"
	"github.com/bruno-duarte/afinpe-api/internal/middleware"
	"github.com/bruno-duarte/afinpe-api/internal/models"
	"github.com/bruno-duarte/afinpe-api/internal/planning"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and the full API route table.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api")

	// auth endpoints, no token required
	authHandler := handler.NewAuthHandler(db, cfg.JWT, cfg.Security.BcryptCost)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/jwt/create", authHandler.CreateToken)
	api.POST("/auth/jwt/refresh", authHandler.RefreshToken)
	api.POST("/auth/jwt/verify", authHandler.VerifyToken)
	api.POST("/auth/social", authHandler.SocialLogin)

	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(cfg.JWT.Secret, db),
		middleware.AuditMiddleware(db),
	)

	pageSize := cfg.App.PageSize

	// entity resources; people and users are created through registration
	handler.NewResource[models.Person](db, pageSize).RegisterWithoutCreate(protected, "people")
	handler.NewResource[models.User](db, pageSize).RegisterWithoutCreate(protected, "users")
	handler.NewResource[models.Color](db, pageSize).Register(protected, "colors")
	handler.NewResource[models.Icon](db, pageSize).Register(protected, "icons")
	handler.NewResource[models.Bank](db, pageSize).Register(protected, "banks")
	handler.NewResource[models.Currency](db, pageSize).Register(protected, "currencies")
	handler.NewResource[models.BankAccount](db, pageSize).Register(protected, "bank-accounts")
	handler.NewResource[models.BankAccountLimit](db, pageSize).Register(protected, "bank-account-limits")
	handler.NewResource[models.CreditCardFlag](db, pageSize).Register(protected, "credit-card-flags")
	handler.NewResource[models.CreditCard](db, pageSize).Register(protected, "credit-cards")
	handler.NewResource[models.Invoice](db, pageSize).Register(protected, "invoices")
	handler.NewResource[models.Category](db, pageSize).Register(protected, "categories")
	handler.NewResource[models.Subcategory](db, pageSize).Register(protected, "subcategories")
	handler.NewResource[models.Planning](db, pageSize).Register(protected, "plannings")
	handler.NewResource[models.Budget](db, pageSize).Register(protected, "budgets")
	handler.NewResource[models.Loan](db, pageSize).Register(protected, "loans")
	handler.NewResource[models.Goal](db, pageSize).Register(protected, "goals")
	handler.NewResource[models.GoalTransaction](db, pageSize).Register(protected, "goal-transactions")
	handler.NewResource[models.Alert](db, pageSize).Register(protected, "alerts")

	// transactions: custom listing with summary block, generic item routes
	txHandler := handler.NewTransactionHandler(db, pageSize)
	txResource := handler.NewResource[models.Transaction](db, pageSize)
	protected.GET("/transactions", txHandler.List)
	protected.POST("/transactions", txResource.Create)
	protected.GET("/transactions/:id", txResource.Get)
	protected.PUT("/transactions/:id", txResource.Update)
	protected.PATCH("/transactions/:id", txResource.Patch)
	protected.DELETE("/transactions/:id", txResource.Delete)

	// planning aggregation
	planningHandler := handler.NewPlanningHandler(planning.NewService(db))
	protected.GET("/planning/summary", planningHandler.GetSummary)
	protected.GET("/planning/categories", planningHandler.GetCategories)

	// transaction export
	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	// audit trail
	auditHandler := handler.NewAuditHandler(db, pageSize)
	protected.GET("/logs", auditHandler.ListLogs)

	return r
}
