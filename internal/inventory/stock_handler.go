package inventory

import (
	"context"
	"strings"

	"restoran-inventory/internal/apperr"
	"restoran-inventory/internal/models"

	"github.com/gofiber/fiber/v2"
)

type StockMovementRequest struct {
	ItemID   string `json:"item_id"`
	BranchID string `json:"branch_id"` // super_admin only, branch_admin uses its own branch
	Quantity int    `json:"quantity"`
}

type StockResponse struct {
	StockID    string `json:"stock_id"`
	ItemID     string `json:"item_id"`
	ItemName   string `json:"item_name"`
	Unit       string `json:"unit"`
	BranchID   string `json:"branch_id"`
	BranchName string `json:"branch_name"`
	Quantity   int    `json:"quantity"`
	UpdatedAt  string `json:"updated_at"`
}

func toStockResponse(s models.Stock) StockResponse {
	res := StockResponse{
		StockID:   s.StockID,
		ItemID:    s.ItemID,
		BranchID:  s.BranchID,
		Quantity:  s.Quantity,
		UpdatedAt: s.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if s.Item != nil {
		res.ItemName = s.Item.ItemName
		res.Unit = s.Item.Unit
	}
	if s.Branch != nil {
		res.BranchName = s.Branch.BranchName
	}
	return res
}

// GET /api/stocks?branch_id=
func ListStocksHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID, err := branchFilter(c, strings.TrimSpace(c.Query("branch_id")))
		if err != nil {
			return err
		}

		stocks, err := svc.ListStocks(c.UserContext(), branchID)
		if err != nil {
			return apperr.Fiber(err)
		}

		res := make([]StockResponse, 0, len(stocks))
		for _, s := range stocks {
			res = append(res, toStockResponse(s))
		}
		return c.JSON(res)
	}
}

// GET /api/stocks/:id
func GetStockHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stock, err := svc.GetStock(c.UserContext(), c.Params("id"))
		if err != nil {
			return apperr.Fiber(err)
		}
		if _, err := branchFilter(c, stock.BranchID); err != nil {
			return err
		}
		return c.JSON(toStockResponse(*stock))
	}
}

// POST /api/stocks/in
func StockInHandler(svc *Service) fiber.Handler {
	return stockMovementHandler(svc, svc.StockIn)
}

// POST /api/stocks/out
func StockOutHandler(svc *Service) fiber.Handler {
	return stockMovementHandler(svc, svc.StockOut)
}

func stockMovementHandler(svc *Service, move func(ctx context.Context, itemID, branchID string, quantity int) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body StockMovementRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		branchID, err := resolveBranchID(c, strings.TrimSpace(body.BranchID))
		if err != nil {
			return err
		}
		itemID := strings.TrimSpace(body.ItemID)

		if err := move(c.UserContext(), itemID, branchID, body.Quantity); err != nil {
			return apperr.Fiber(err)
		}

		qty, err := svc.Quantity(c.UserContext(), itemID, branchID)
		if err != nil {
			return apperr.Fiber(err)
		}
		return c.JSON(fiber.Map{
			"item_id":   itemID,
			"branch_id": branchID,
			"quantity":  qty,
		})
	}
}
