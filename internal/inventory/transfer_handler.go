package inventory

import (
	"errors"
	"strings"

	"restoran-inventory/internal/apperr"
	"restoran-inventory/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateTransferRequest struct {
	ItemID     string `json:"item_id"`
	FromBranch string `json:"from_branch"` // branch_admin: must be its own branch
	ToBranch   string `json:"to_branch"`
	Quantity   int    `json:"quantity"`
	Unit       string `json:"unit"`
}

type TransferResponse struct {
	TransferID   string `json:"transfer_id"`
	ItemID       string `json:"item_id"`
	Quantity     int    `json:"quantity"`
	Unit         string `json:"unit"`
	FromBranch   string `json:"from_branch"`
	ToBranch     string `json:"to_branch"`
	TransferDate string `json:"transfer_date"`
}

func toTransferResponse(t models.Transfer) TransferResponse {
	return TransferResponse{
		TransferID:   t.TransferID,
		ItemID:       t.ItemID,
		Quantity:     t.Quantity,
		Unit:         t.Unit,
		FromBranch:   t.FromBranch,
		ToBranch:     t.ToBranch,
		TransferDate: t.TransferDate.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/transfers
func CreateTransferHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTransferRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		from, err := resolveBranchID(c, strings.TrimSpace(body.FromBranch))
		if err != nil {
			return err
		}

		tr, err := svc.Transfer(c.UserContext(), TransferRequest{
			ItemID:     strings.TrimSpace(body.ItemID),
			FromBranch: from,
			ToBranch:   strings.TrimSpace(body.ToBranch),
			Quantity:   body.Quantity,
			Unit:       strings.TrimSpace(body.Unit),
		})
		if err != nil {
			var ise *apperr.InsufficientStockError
			if errors.As(err, &ise) {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{
					"error":     err.Error(),
					"available": ise.Available,
					"requested": ise.Requested,
				})
			}
			return apperr.Fiber(err)
		}

		return c.Status(fiber.StatusCreated).JSON(toTransferResponse(*tr))
	}
}

// GET /api/transfers
func ListTransfersHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		transfers, err := svc.TransferHistory(c.UserContext())
		if err != nil {
			return apperr.Fiber(err)
		}

		res := make([]TransferResponse, 0, len(transfers))
		for _, t := range transfers {
			res = append(res, toTransferResponse(t))
		}
		return c.JSON(res)
	}
}
