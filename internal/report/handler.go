package report

import (
	"fmt"
	"sort"
	"time"

	"restoran-inventory/internal/apperr"
	"restoran-inventory/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StockLevelResponse struct {
	ItemID     string `json:"item_id"`
	ItemName   string `json:"item_name"`
	BranchID   string `json:"branch_id"`
	BranchName string `json:"branch_name"`
	Quantity   int    `json:"quantity"`
	MinStock   int    `json:"min_stock"`
	MaxStock   int    `json:"max_stock"`
}

func toStockLevels(rows []StockRow) []StockLevelResponse {
	res := make([]StockLevelResponse, 0, len(rows))
	for _, r := range rows {
		item := StockLevelResponse{
			ItemID:   r.Stock.ItemID,
			BranchID: r.Stock.BranchID,
			Quantity: r.Stock.Quantity,
		}
		if r.Item != nil {
			item.ItemName = r.Item.ItemName
			item.MinStock = r.Item.MinStock
			item.MaxStock = r.Item.MaxStock
		}
		if r.Branch != nil {
			item.BranchName = r.Branch.BranchName
		}
		res = append(res, item)
	}
	return res
}

// GET /api/reports/low-stock
func LowStockHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap, err := LoadSnapshot(c.UserContext(), db)
		if err != nil {
			return apperr.Fiber(err)
		}
		return c.JSON(toStockLevels(LowStock(snap.Rows)))
	}
}

// GET /api/reports/overstock
func OverstockHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap, err := LoadSnapshot(c.UserContext(), db)
		if err != nil {
			return apperr.Fiber(err)
		}
		return c.JSON(toStockLevels(Overstock(snap.Rows)))
	}
}

// GET /api/reports/summary
func InventorySummaryHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap, err := LoadSnapshot(c.UserContext(), db)
		if err != nil {
			return apperr.Fiber(err)
		}
		return c.JSON(InventorySummary(snap.Rows))
	}
}

type CategoryCostResponse struct {
	Category    string          `json:"category"`
	AverageCost decimal.Decimal `json:"average_cost"`
}

// GET /api/reports/category-cost
func CategoryCostHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap, err := LoadSnapshot(c.UserContext(), db)
		if err != nil {
			return apperr.Fiber(err)
		}
		return c.JSON(CategoryCosts(snap.Items))
	}
}

// CategoryCosts is AverageCostByCategory as a slice sorted by category.
func CategoryCosts(items []models.Item) []CategoryCostResponse {
	avg := AverageCostByCategory(items)
	res := make([]CategoryCostResponse, 0, len(avg))
	for cat, cost := range avg {
		res = append(res, CategoryCostResponse{Category: cat, AverageCost: cost.Round(2)})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Category < res[j].Category })
	return res
}

type reportResponse struct {
	Report  any    `json:"report"`
	Summary string `json:"summary"`
}

// GET /api/reports/branches
func BranchReportHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap, err := LoadSnapshot(c.UserContext(), db)
		if err != nil {
			return apperr.Fiber(err)
		}
		rep := BuildBranchReport(len(snap.Branches), snap.Rows)
		return c.JSON(reportResponse{Report: rep, Summary: rep.Summary()})
	}
}

// GET /api/reports/stocks
func StockReportHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap, err := LoadSnapshot(c.UserContext(), db)
		if err != nil {
			return apperr.Fiber(err)
		}
		rep := BuildStockReport(snap.Rows)
		return c.JSON(reportResponse{Report: rep, Summary: rep.Summary()})
	}
}

// GET /api/reports/inventory.xlsx
func InventoryWorkbookHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap, err := LoadSnapshot(c.UserContext(), db)
		if err != nil {
			return apperr.Fiber(err)
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition,
			fmt.Sprintf("attachment; filename=\"inventory_%s.xlsx\"", time.Now().Format("20060102")))

		if err := WriteInventoryWorkbook(c.Response().BodyWriter(), snap.Rows); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build workbook")
		}
		return nil
	}
}
