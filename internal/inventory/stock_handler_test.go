package inventory

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"restoran-inventory/internal/auth"
	"restoran-inventory/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newStockApp serves the stock read routes as the given user.
func newStockApp(t *testing.T, role models.UserRole, branchID *string) *fiber.App {
	t.Helper()
	db := newFixture(t)
	setStock(t, db, "I0001", "B0001", 5)
	setStock(t, db, "I0001", "B0002", 9)
	svc := NewService(db, nil)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(auth.CtxUserRoleKey, role)
		c.Locals(auth.CtxBranchIDKey, branchID)
		return c.Next()
	})
	app.Get("/stocks", ListStocksHandler(svc))
	app.Get("/stocks/:id", GetStockHandler(svc))
	return app
}

func get(t *testing.T, app *fiber.App, path string) (int, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestListStocksSuperAdmin(t *testing.T) {
	app := newStockApp(t, models.RoleSuperAdmin, nil)

	code, body := get(t, app, "/stocks")
	require.Equal(t, fiber.StatusOK, code, string(body))
	var all []StockResponse
	require.NoError(t, json.Unmarshal(body, &all))
	assert.Len(t, all, 2)

	code, body = get(t, app, "/stocks?branch_id=B0002")
	require.Equal(t, fiber.StatusOK, code, string(body))
	var one []StockResponse
	require.NoError(t, json.Unmarshal(body, &one))
	require.Len(t, one, 1)
	assert.Equal(t, "Camden", one[0].BranchName)
}

func TestListStocksBranchAdminSeesOwnBranch(t *testing.T) {
	branch := "B0001"
	app := newStockApp(t, models.RoleBranchAdmin, &branch)

	code, body := get(t, app, "/stocks")
	require.Equal(t, fiber.StatusOK, code, string(body))
	var got []StockResponse
	require.NoError(t, json.Unmarshal(body, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "B0001", got[0].BranchID)
	assert.Equal(t, 5, got[0].Quantity)

	code, _ = get(t, app, "/stocks?branch_id=B0002")
	assert.Equal(t, fiber.StatusForbidden, code)

	code, _ = get(t, app, "/stocks/I0001-B0001")
	assert.Equal(t, fiber.StatusOK, code)
	code, _ = get(t, app, "/stocks/I0001-B0002")
	assert.Equal(t, fiber.StatusForbidden, code)
}

func TestListStocksBranchAdminWithoutBranch(t *testing.T) {
	app := newStockApp(t, models.RoleBranchAdmin, nil)

	code, _ := get(t, app, "/stocks")
	assert.Equal(t, fiber.StatusForbidden, code)
}
