package admin

import (
	"strings"

	"restoran-inventory/internal/apperr"
	"restoran-inventory/internal/auth"
	"restoran-inventory/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type BranchResponse struct {
	BranchID   string `json:"branch_id"`
	BranchName string `json:"branch_name"`
	Address    string `json:"address"`
	Postcode   string `json:"postcode"`
	Phone      string `json:"phone"`
	CreatedAt  string `json:"created_at"`
}

type CreateBranchRequest struct {
	BranchID   string  `json:"branch_id"` // Optional, generated when empty
	BranchName string  `json:"branch_name"`
	Address    string  `json:"address"`
	Postcode   string  `json:"postcode"`
	Phone      *string `json:"phone"` // Optional
}

type UpdateBranchRequest struct {
	BranchName *string `json:"branch_name"`
	Address    *string `json:"address"`
	Postcode   *string `json:"postcode"`
	Phone      *string `json:"phone"`
}

type CreateBranchAdminRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type BranchAdminResponse struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	BranchID  *string `json:"branch_id"`
	CreatedAt string  `json:"created_at"`
}

func toBranchResponse(b *models.Branch) BranchResponse {
	return BranchResponse{
		BranchID:   b.ID,
		BranchName: b.BranchName,
		Address:    b.Address,
		Postcode:   b.Postcode,
		Phone:      b.Phone,
		CreatedAt:  b.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// ----------------------------------------
// BRANCH CRUD
// ----------------------------------------

func CreateBranchHandler(svc *BranchService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateBranchRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		in := BranchInput{
			BranchID:   body.BranchID,
			BranchName: body.BranchName,
			Address:    body.Address,
			Postcode:   body.Postcode,
		}
		if body.Phone != nil {
			in.Phone = *body.Phone
		}

		branch, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return apperr.Fiber(err)
		}
		return c.Status(fiber.StatusCreated).JSON(toBranchResponse(branch))
	}
}

func ListBranchesHandler(svc *BranchService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		branches, err := svc.List(c.UserContext())
		if err != nil {
			return apperr.Fiber(err)
		}

		res := make([]BranchResponse, 0, len(branches))
		for i := range branches {
			res = append(res, toBranchResponse(&branches[i]))
		}
		return c.JSON(res)
	}
}

func GetBranchHandler(svc *BranchService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		branch, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return apperr.Fiber(err)
		}
		return c.JSON(toBranchResponse(branch))
	}
}

func UpdateBranchHandler(svc *BranchService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateBranchRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		branch, err := svc.Update(c.UserContext(), c.Params("id"), BranchPatch{
			BranchName: body.BranchName,
			Address:    body.Address,
			Postcode:   body.Postcode,
			Phone:      body.Phone,
		})
		if err != nil {
			return apperr.Fiber(err)
		}
		if branch == nil {
			return fiber.NewError(fiber.StatusNotFound, "Branch not found")
		}
		return c.JSON(toBranchResponse(branch))
	}
}

func DeleteBranchHandler(svc *BranchService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return apperr.Fiber(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/branches/:id/validate
func ValidateBranchHandler(svc *BranchService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		exists, err := svc.Validate(c.UserContext(), id)
		if err != nil {
			return apperr.Fiber(err)
		}
		return c.JSON(fiber.Map{"branch_id": id, "exists": exists})
	}
}

// ----------------------------------------
// BRANCH ADMINS
// ----------------------------------------

func CreateBranchAdminHandler(db *gorm.DB, svc *BranchService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		branch, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return apperr.Fiber(err)
		}

		var body CreateBranchAdminRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Email = strings.ToLower(strings.TrimSpace(body.Email))
		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" || body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name, email and password are required")
		}

		var exist models.User
		if err := db.Where("email = ?", body.Email).First(&exist).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Email is already registered")
		}

		hash, err := auth.HashPassword(body.Password)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not hash password")
		}

		user := models.User{
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: hash,
			Role:         models.RoleBranchAdmin,
			BranchID:     &branch.ID,
		}
		if err := db.WithContext(c.UserContext()).Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create branch admin")
		}

		return c.Status(fiber.StatusCreated).JSON(BranchAdminResponse{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			Role:      string(user.Role),
			BranchID:  user.BranchID,
			CreatedAt: user.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

// GET /api/admin/branches/:id/admins
func ListBranchAdminsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := db.WithContext(c.UserContext()).
			Where("branch_id = ? AND role = ?", c.Params("id"), models.RoleBranchAdmin).
			Order("created_at DESC").
			Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list admins")
		}

		res := make([]BranchAdminResponse, 0, len(users))
		for _, u := range users {
			res = append(res, BranchAdminResponse{
				ID:        u.ID,
				Name:      u.Name,
				Email:     u.Email,
				Role:      string(u.Role),
				BranchID:  u.BranchID,
				CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		return c.JSON(res)
	}
}
