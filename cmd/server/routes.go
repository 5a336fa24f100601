package main

import (
	"errors"
	"strings"

	"restoran-inventory/internal/admin"
	"restoran-inventory/internal/auth"
	"restoran-inventory/internal/config"
	"restoran-inventory/internal/inventory"
	"restoran-inventory/internal/models"
	"restoran-inventory/internal/report"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newApp(cfg *config.Config, db *gorm.DB, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var e *fiber.Error
			if errors.As(err, &e) {
				if e.Code >= fiber.StatusInternalServerError {
					log.Error("request failed", zap.String("path", c.Path()), zap.String("error", e.Message))
				}
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Error("unexpected error", zap.String("path", c.Path()), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	app.Use(recover.New())

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	stockSvc := inventory.NewService(db, log)
	branchSvc := admin.NewBranchService(db, log)
	itemSvc := admin.NewItemService(db, log)

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-super-admin", auth.RegisterSuperAdminHandler(db))
	api.Post("/auth/login", auth.LoginHandler(cfg.JWTSecret, db))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg.JWTSecret))

	protected.Get("/auth/me", auth.MeHandler(db))

	// Super admin routes
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleSuperAdmin))

	// Branches
	adminRoutes.Post("/branches", admin.CreateBranchHandler(branchSvc))
	adminRoutes.Get("/branches", admin.ListBranchesHandler(branchSvc))
	adminRoutes.Get("/branches/:id", admin.GetBranchHandler(branchSvc))
	adminRoutes.Put("/branches/:id", admin.UpdateBranchHandler(branchSvc))
	adminRoutes.Delete("/branches/:id", admin.DeleteBranchHandler(branchSvc))
	adminRoutes.Post("/branches/:id/admin", admin.CreateBranchAdminHandler(db, branchSvc))
	adminRoutes.Get("/branches/:id/admins", admin.ListBranchAdminsHandler(db))

	// Items
	adminRoutes.Post("/items", admin.CreateItemHandler(itemSvc))
	adminRoutes.Put("/items/:id", admin.UpdateItemHandler(itemSvc))
	adminRoutes.Delete("/items/:id", admin.DeleteItemHandler(itemSvc))

	// Catalog lookups
	protected.Get("/branches", admin.ListBranchesHandler(branchSvc))
	protected.Get("/branches/:id/validate", admin.ValidateBranchHandler(branchSvc))
	protected.Get("/items", admin.ListItemsHandler(itemSvc))
	protected.Get("/items/search", admin.SearchItemsHandler(itemSvc))
	protected.Get("/items/average-cost", admin.AverageCostHandler(itemSvc))
	protected.Get("/items/expensive", admin.ExpensiveItemsHandler(itemSvc))
	protected.Get("/items/:id", admin.GetItemHandler(itemSvc))

	// Stock
	protected.Get("/stocks", inventory.ListStocksHandler(stockSvc))
	protected.Get("/stocks/:id", inventory.GetStockHandler(stockSvc))
	protected.Post("/stocks/in", inventory.StockInHandler(stockSvc))
	protected.Post("/stocks/out", inventory.StockOutHandler(stockSvc))

	// Transfers
	protected.Post("/transfers", inventory.CreateTransferHandler(stockSvc))
	protected.Get("/transfers", inventory.ListTransfersHandler(stockSvc))

	// Reports
	protected.Get("/reports/low-stock", report.LowStockHandler(db))
	protected.Get("/reports/overstock", report.OverstockHandler(db))
	protected.Get("/reports/summary", report.InventorySummaryHandler(db))
	protected.Get("/reports/category-cost", report.CategoryCostHandler(db))
	protected.Get("/reports/branches", report.BranchReportHandler(db))
	protected.Get("/reports/stocks", report.StockReportHandler(db))
	protected.Get("/reports/inventory.xlsx", report.InventoryWorkbookHandler(db))

	return app
}
