package admin

import (
	"restoran-inventory/internal/apperr"
	"restoran-inventory/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ItemRequest struct {
	ItemID      string          `json:"item_id"` // Optional, generated when empty
	ItemName    string          `json:"item_name"`
	Category    string          `json:"category"`
	Unit        string          `json:"unit"`
	Supplier    string          `json:"supplier"`
	CostPerUnit decimal.Decimal `json:"cost_per_unit"`
	MinStock    int             `json:"min_stock"`
	MaxStock    int             `json:"max_stock"`
}

type UpdateItemRequest struct {
	ItemName    *string          `json:"item_name"`
	Category    *string          `json:"category"`
	Unit        *string          `json:"unit"`
	Supplier    *string          `json:"supplier"`
	CostPerUnit *decimal.Decimal `json:"cost_per_unit"`
	MinStock    *int             `json:"min_stock"`
	MaxStock    *int             `json:"max_stock"`
}

func itemList(items []models.Item) []models.Item {
	if items == nil {
		return []models.Item{}
	}
	return items
}

func CreateItemHandler(svc *ItemService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		item, err := svc.Create(c.UserContext(), ItemInput(body))
		if err != nil {
			return apperr.Fiber(err)
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	}
}

func ListItemsHandler(svc *ItemService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return apperr.Fiber(err)
		}
		return c.JSON(itemList(items))
	}
}

func GetItemHandler(svc *ItemService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		item, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return apperr.Fiber(err)
		}
		return c.JSON(item)
	}
}

func UpdateItemHandler(svc *ItemService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		item, err := svc.Update(c.UserContext(), c.Params("id"), ItemPatch(body))
		if err != nil {
			return apperr.Fiber(err)
		}
		if item == nil {
			return fiber.NewError(fiber.StatusNotFound, "Item not found")
		}
		return c.JSON(item)
	}
}

func DeleteItemHandler(svc *ItemService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return apperr.Fiber(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/items/search?q=...
func SearchItemsHandler(svc *ItemService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.Search(c.UserContext(), c.Query("q"))
		if err != nil {
			return apperr.Fiber(err)
		}
		return c.JSON(itemList(items))
	}
}

// GET /api/items/average-cost
func AverageCostHandler(svc *ItemService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.AverageCostByCategory(c.UserContext())
		if err != nil {
			return apperr.Fiber(err)
		}
		return c.JSON(res)
	}
}

// GET /api/items/expensive?min=20
func ExpensiveItemsHandler(svc *ItemService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		threshold, err := decimal.NewFromString(c.Query("min", "0"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "min must be a number")
		}

		items, err := svc.Expensive(c.UserContext(), threshold)
		if err != nil {
			return apperr.Fiber(err)
		}
		return c.JSON(itemList(items))
	}
}
