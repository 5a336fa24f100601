package inventory

import (
	"context"
	"testing"

	"restoran-inventory/internal/database/dbtest"
	"restoran-inventory/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newFixture opens an empty database with two branches and one item.
func newFixture(t *testing.T) *gorm.DB {
	t.Helper()
	db := dbtest.Open(t)

	require.NoError(t, db.Create(&[]models.Branch{
		{ID: "B0001", BranchName: "Soho"},
		{ID: "B0002", BranchName: "Camden"},
	}).Error)
	require.NoError(t, db.Create(&models.Item{
		ID:          "I0001",
		ItemName:    "Salmon",
		Category:    "Fish",
		Unit:        "kg",
		CostPerUnit: decimal.RequireFromString("12.50"),
		MinStock:    10,
		MaxStock:    50,
	}).Error)
	return db
}

func setStock(t *testing.T, db *gorm.DB, itemID, branchID string, qty int) {
	t.Helper()
	require.NoError(t, db.Create(&models.Stock{
		StockID:  itemID + "-" + branchID,
		ItemID:   itemID,
		BranchID: branchID,
		Quantity: qty,
	}).Error)
}

func quantity(t *testing.T, svc *Service, itemID, branchID string) int {
	t.Helper()
	q, err := svc.Quantity(context.Background(), itemID, branchID)
	require.NoError(t, err)
	return q
}

func transferCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Transfer{}).Count(&n).Error)
	return n
}
