package inventory

import (
	"restoran-inventory/internal/auth"
	"restoran-inventory/internal/models"

	"github.com/gofiber/fiber/v2"
)

// resolveBranchID: branch_admin -> branch from the JWT, super_admin -> the requested branch
func resolveBranchID(c *fiber.Ctx, requested string) (string, error) {
	role, ok := c.Locals(auth.CtxUserRoleKey).(models.UserRole)
	if !ok {
		return "", fiber.NewError(fiber.StatusForbidden, "Role information missing")
	}

	if role == models.RoleBranchAdmin {
		bPtr, ok := c.Locals(auth.CtxBranchIDKey).(*string)
		if !ok || bPtr == nil {
			return "", fiber.NewError(fiber.StatusForbidden, "Branch information missing")
		}
		if requested != "" && requested != *bPtr {
			return "", fiber.NewError(fiber.StatusForbidden, "You can only manage stock of your own branch")
		}
		return *bPtr, nil
	}

	if requested == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "branch_id is required")
	}
	return requested, nil
}

// branchFilter: branch_admin -> own branch only, super_admin -> the optional
// requested branch, "" meaning all branches
func branchFilter(c *fiber.Ctx, requested string) (string, error) {
	role, _ := c.Locals(auth.CtxUserRoleKey).(models.UserRole)
	if role == models.RoleSuperAdmin {
		return requested, nil
	}
	return resolveBranchID(c, requested)
}
