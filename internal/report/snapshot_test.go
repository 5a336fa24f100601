package report

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	"restoran-inventory/internal/database/dbtest"
	"restoran-inventory/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func seedSnapshot(t *testing.T) *gorm.DB {
	t.Helper()
	db := dbtest.Open(t)

	require.NoError(t, db.Create(&[]models.Branch{
		{ID: "B0001", BranchName: "Soho"},
		{ID: "B0002", BranchName: "Camden"},
	}).Error)
	require.NoError(t, db.Create(&[]models.Item{
		{ID: "I0001", ItemName: "Salmon", Category: "Fish", Unit: "kg", CostPerUnit: decimal.RequireFromString("12.50"), MinStock: 10, MaxStock: 50},
		{ID: "I0002", ItemName: "Rice", Category: "Dry", Unit: "kg", CostPerUnit: decimal.RequireFromString("2.00"), MinStock: 5, MaxStock: 8},
	}).Error)
	require.NoError(t, db.Create(&[]models.Stock{
		{StockID: "s1", ItemID: "I0001", BranchID: "B0001", Quantity: 3},
		{StockID: "s2", ItemID: "I0002", BranchID: "B0001", Quantity: 7},
		{StockID: "s3", ItemID: "I0001", BranchID: "B0002", Quantity: 10},
	}).Error)
	return db
}

func TestLoadSnapshotJoinsInMemory(t *testing.T) {
	db := seedSnapshot(t)

	snap, err := LoadSnapshot(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, snap.Rows, 3)
	assert.Len(t, snap.Items, 2)
	assert.Len(t, snap.Branches, 2)

	for _, r := range snap.Rows {
		require.NotNil(t, r.Item)
		require.NotNil(t, r.Branch)
		assert.Equal(t, r.Stock.ItemID, r.Item.ID)
		assert.Equal(t, r.Stock.BranchID, r.Branch.ID)
	}

	rep := BuildBranchReport(len(snap.Branches), snap.Rows)
	assert.InDelta(t, 7.5, rep.AvgStockPerBranch, 1e-9)

	low := LowStock(snap.Rows)
	require.Len(t, low, 1)
	assert.Equal(t, "s1", low[0].Stock.StockID)
}

func TestLoadSnapshotEmpty(t *testing.T) {
	snap, err := LoadSnapshot(context.Background(), dbtest.Open(t))
	require.NoError(t, err)
	assert.Empty(t, snap.Rows)
	assert.Zero(t, BuildBranchReport(len(snap.Branches), snap.Rows).AvgStockPerBranch)
}

func TestWriteInventoryWorkbook(t *testing.T) {
	snap, err := LoadSnapshot(context.Background(), seedSnapshot(t))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteInventoryWorkbook(&buf, snap.Rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(inventorySheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, inventoryHeaders, rows[0])

	// stocks come ordered by branch then item
	assert.Equal(t, []string{"B0001", "Soho", "I0001", "Salmon"}, rows[1][:4])
	assert.Equal(t, "LOW", rows[1][11])
	assert.Equal(t, "OK", rows[2][11])
	assert.Equal(t, "OK", rows[3][11])
}

func TestReportHandlers(t *testing.T) {
	db := seedSnapshot(t)
	app := fiber.New()
	app.Get("/low", LowStockHandler(db))
	app.Get("/branches", BranchReportHandler(db))
	app.Get("/inventory.xlsx", InventoryWorkbookHandler(db))

	resp, err := app.Test(httptest.NewRequest("GET", "/low", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/branches", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/inventory.xlsx", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "inventory_")
}
